package statsui

import (
	"context"
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/tuivocab/internal/model"
	"github.com/verte-zerg/tuivocab/internal/vocab"
)

// levelChoices cycles the browser level filter; the empty level means all.
var levelChoices = append([]model.Level{""}, model.Levels...)

func (m *Model) updateWords(msg tea.KeyMsg) bool {
	page := 1
	switch msg.String() {
	case "s":
		m.sortIdx = (m.sortIdx + 1) % len(vocab.SortKeys)
		m.query.Sort = vocab.SortKeys[m.sortIdx]
	case "v":
		m.levelIdx = (m.levelIdx + 1) % len(levelChoices)
		m.query.Level = levelChoices[m.levelIdx]
		m.topicIdx = 0
		m.query.Topic = ""
	case "t":
		topics := append([]string{""}, m.library.Topics(m.query.Level)...)
		m.topicIdx = (m.topicIdx + 1) % len(topics)
		m.query.Topic = topics[m.topicIdx]
	case "]", "n":
		if m.page.Page >= m.page.TotalPages {
			return true
		}
		page = m.page.Page + 1
	case "[", "p":
		if m.page.Page <= 1 {
			return true
		}
		page = m.page.Page - 1
	case "f":
		m.toggleFavorite()
		return true
	default:
		return false
	}
	m.query.Page = page
	m.refreshWords()
	m.tables[tabWords].GotoTop()
	return true
}

func (m *Model) startSearch() (tea.Model, tea.Cmd) {
	m.searchMode = true
	m.searchInput.SetValue(m.query.Search)
	return m, m.searchInput.Focus()
}

func (m *Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.searchMode = false
		m.searchInput.Blur()
		return m, nil
	case tea.KeyEnter:
		m.searchMode = false
		m.searchInput.Blur()
		m.query.Search = m.searchInput.Value()
		m.query.Page = 1
		m.refreshWords()
		return m, nil
	}
	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

func (m *Model) refreshWords() {
	page, err := m.library.Browse(context.Background(), m.query)
	if err != nil {
		m.errMsg = fmt.Sprintf("failed to browse words: %v", err)
		return
	}
	m.page = page
	m.query.Page = page.Page
	m.setRows(tabWords, wordColumns(), wordRows(page.Entries))
}

func (m *Model) toggleFavorite() {
	t := m.tables[tabWords]
	row := t.Cursor()
	if row < 0 || row >= len(m.page.Entries) {
		return
	}
	entry := m.page.Entries[row]
	ctx := context.Background()
	var err error
	if entry.Favorite {
		err = m.library.RemoveFromFavorites(ctx, entry.Word.English)
	} else {
		err = m.library.AddToFavorites(ctx, entry.Word.English)
	}
	if err != nil {
		m.errMsg = fmt.Sprintf("failed to update favorites: %v", err)
		return
	}
	m.refreshWords()
	t.SetCursor(row)
	if vstats, err := m.library.Statistics(ctx); err == nil {
		m.vstats = vstats
		m.renderTabContents()
	}
}

func wordColumns() []table.Column {
	return []table.Column{
		{Title: "★", Width: 1},
		{Title: "English", Width: 18},
		{Title: "Vietnamese", Width: 22},
		{Title: "Level", Width: 12},
		{Title: "Topic", Width: 12},
		{Title: "Accuracy", Width: 8},
		{Title: "Tries", Width: 5},
	}
}

func wordRows(entries []vocab.Entry) []table.Row {
	rows := make([]table.Row, 0, len(entries))
	for _, e := range entries {
		star := ""
		if e.Favorite {
			star = "★"
		}
		acc := "-"
		if e.Studied {
			acc = fmt.Sprintf("%.0f%%", e.Progress.Accuracy()*100)
		}
		rows = append(rows, table.Row{
			star,
			e.Word.English,
			e.Word.Vietnamese,
			string(e.Word.Level),
			e.Word.Topic,
			acc,
			strconv.Itoa(e.Progress.Attempts),
		})
	}
	return rows
}
