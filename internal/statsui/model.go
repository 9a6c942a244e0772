// Package statsui provides the Bubble Tea stats and vocabulary browser interface.
package statsui

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/tuivocab/internal/model"
	"github.com/verte-zerg/tuivocab/internal/stats"
	"github.com/verte-zerg/tuivocab/internal/store"
	"github.com/verte-zerg/tuivocab/internal/vocab"
)

const (
	tabOverview = iota
	tabModes
	tabLeaderboard
	tabHistory
	tabWords
)

const leaderboardSize = 10

var (
	activeNavStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A"))
	inactiveNavStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#B0B0B0")).
				Padding(0, 1).
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#4A4A4A"))
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	cardStyle   = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
	cardTitleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	cardValueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	tableMutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#B8B8B8"))
)

// Model implements the Bubble Tea stats UI.
type Model struct {
	store     *store.Store
	persisted *stats.Store
	library   *vocab.Library
	cfg       model.StatsConfig
	modes     []model.ModeID

	report stats.Report
	vstats vocab.Statistics
	errMsg string

	tabs       []string
	activeTab  int
	viewports  map[int]*viewport.Model
	tables     map[int]*table.Model
	tableSizes map[int]tableLayout

	width  int
	height int

	filterMode   bool
	filterFields []filterField
	filterInputs []textinput.Model
	filterIndex  int
	filterError  string

	query       vocab.Query
	page        vocab.Page
	levelIdx    int
	topicIdx    int
	sortIdx     int
	searchMode  bool
	searchInput textinput.Model
}

type tableLayout struct {
	width    int
	height   int
	rowCount int
}

// NewModel constructs a stats UI model. modes fixes the row order of the modes tab.
func NewModel(st *store.Store, persisted *stats.Store, lib *vocab.Library, cfg model.StatsConfig, modes []model.ModeID) *Model {
	m := &Model{
		store:      st,
		persisted:  persisted,
		library:    lib,
		cfg:        cfg,
		modes:      modes,
		tabs:       []string{"Overview", "Modes", "Leaderboard", "History", "Words"},
		tableSizes: map[int]tableLayout{},
		query:      vocab.Query{Sort: vocab.SortAlphabetical, Page: 1},
	}
	m.viewports = map[int]*viewport.Model{}
	for _, tab := range []int{tabOverview, tabHistory} {
		vp := viewport.New(0, 0)
		m.viewports[tab] = &vp
	}
	m.tables = map[int]*table.Model{}
	for _, tab := range []int{tabModes, tabLeaderboard, tabWords} {
		t := newTable(nil, 80, 10)
		m.tables[tab] = &t
	}
	m.filterFields = historyFilterFields(modes)
	m.filterInputs = newFilterInputs(m.filterFields)
	m.searchInput = newFilterInput("Search: ")
	m.refreshReport()
	m.refreshWords()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		m.renderTabContents()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.filterMode {
			return m.updateFilter(msg)
		}
		if m.searchMode {
			return m.updateSearch(msg)
		}
		m.focusActiveTable()
		switch msg.String() {
		case "q":
			return m, tea.Quit
		case "left", "h":
			m.moveTab(-1)
			return m, tea.ClearScreen
		case "right", "l":
			m.moveTab(1)
			return m, tea.ClearScreen
		case "=":
			m.cfg.CurveWindow = nextCurveWindow(m.cfg.CurveWindow)
			m.refreshReport()
			return m, nil
		case "-":
			m.cfg.CurveWindow = prevCurveWindow(m.cfg.CurveWindow)
			m.refreshReport()
			return m, nil
		case "/":
			if m.activeTab == tabWords {
				return m.startSearch()
			}
			return m.startFilter()
		case "g", "home":
			if t, ok := m.tables[m.activeTab]; ok {
				t.GotoTop()
			} else {
				m.viewports[m.activeTab].GotoTop()
			}
			return m, nil
		case "G", "end":
			if t, ok := m.tables[m.activeTab]; ok {
				t.GotoBottom()
			} else {
				m.viewports[m.activeTab].GotoBottom()
			}
			return m, nil
		}
		if m.activeTab == tabWords {
			if handled := m.updateWords(msg); handled {
				return m, nil
			}
		}
		if t, ok := m.tables[m.activeTab]; ok {
			updated, cmd := t.Update(msg)
			*t = updated
			return m, cmd
		}
		vp := m.viewports[m.activeTab]
		updated, cmd := vp.Update(msg)
		*vp = updated
		return m, cmd
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	headerHeight, bodyHeight, footerHeight := m.layoutHeights()
	header := fitLines(m.renderHeader(), m.width, headerHeight)
	body := fitLines(m.renderBody(bodyHeight), m.width, bodyHeight)
	footer := fitLines(m.renderFooter(), m.width, footerHeight)
	return strings.Join([]string{header, body, footer}, "\n")
}

func newTable(cols []table.Column, width, height int) table.Model {
	t := table.New(
		table.WithColumns(cols),
		table.WithHeight(max(1, height-1)),
	)
	t.SetWidth(width)
	t.SetStyles(tableStyles())
	return t
}

func tableStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true).
		Padding(0, 1).
		PaddingLeft(0)
	styles.Cell = styles.Cell.
		Padding(0, 1).
		PaddingLeft(0)
	styles.Selected = styles.Cell.
		Foreground(lipgloss.Color("#F0F0F0")).
		Bold(true)
	return styles
}

func (m *Model) layoutHeights() (headerHeight, bodyHeight, footerHeight int) {
	tabsHeight := max(1, lipgloss.Height(activeNavStyle.Render("X")))
	headerHeight = tabsHeight + 1
	footerHeight = 1
	if !m.filterMode && m.errMsg != "" {
		footerHeight++
	}
	bodyHeight = max(1, m.height-headerHeight-footerHeight)
	return headerHeight, bodyHeight, footerHeight
}

func (m *Model) updateLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	_, bodyHeight, _ := m.layoutHeights()
	for _, vp := range m.viewports {
		vp.Width = m.width
		vp.Height = bodyHeight
	}
	for tab := range m.tables {
		m.setTableSize(tab, m.width, bodyHeight)
	}
	for i := range m.filterInputs {
		promptWidth := lipgloss.Width(m.filterInputs[i].Prompt)
		m.filterInputs[i].Width = max(10, m.width-promptWidth-2)
	}
	m.searchInput.Width = max(10, m.width-lipgloss.Width(m.searchInput.Prompt)-2)
}

func (m *Model) setTableSize(tab, width, height int) {
	t := m.tables[tab]
	layout := m.tableSizes[tab]
	viewportHeight := max(1, height-1)
	if layout.width == width && layout.height == viewportHeight && layout.rowCount == len(t.Rows()) {
		return
	}
	t.SetWidth(width)
	t.SetHeight(viewportHeight)
	// The header border takes lines of its own; shrink until the view fits.
	if extra := lipgloss.Height(t.View()) - height; extra > 0 {
		t.SetHeight(max(1, viewportHeight-extra))
	}
	m.tableSizes[tab] = tableLayout{width: width, height: viewportHeight, rowCount: len(t.Rows())}
}

func (m *Model) moveTab(delta int) {
	count := len(m.tabs)
	next := (m.activeTab + delta + count) % count
	m.activeTab = next
	m.focusActiveTable()
}

func (m *Model) focusActiveTable() {
	for tab, t := range m.tables {
		if tab == m.activeTab {
			t.Focus()
		} else {
			t.Blur()
		}
	}
}

func (m *Model) renderTabs() string {
	parts := make([]string, 0, len(m.tabs))
	for i, tab := range m.tabs {
		if i == m.activeTab {
			parts = append(parts, activeNavStyle.Render(tab))
		} else {
			parts = append(parts, inactiveNavStyle.Render(tab))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m *Model) renderHeader() string {
	tabs := padLines(m.renderTabs(), m.width)
	var summary string
	if m.activeTab == tabWords {
		summary = m.renderWordsSummary()
	} else {
		summary = m.renderFilterSummary()
	}
	return tabs + "\n" + padLines(summary, m.width)
}

func (m *Model) renderFilterSummary() string {
	mode := string(m.cfg.Mode)
	if mode == "" {
		mode = "any"
	}
	since := "any"
	if m.cfg.Since != nil {
		since = m.cfg.Since.Format("2006-01-02")
	}
	last := "all"
	if m.cfg.Last > 0 {
		last = strconv.Itoa(m.cfg.Last)
	}
	summary := fmt.Sprintf("Settings: mode=%s  since=%s  last=%s  window=%d", mode, since, last, m.cfg.CurveWindow)
	return headerStyle.Render(truncateLine(summary, m.width))
}

func (m *Model) renderWordsSummary() string {
	level := "all"
	if m.query.Level != "" {
		level = string(m.query.Level)
	}
	topic := "all"
	if m.query.Topic != "" {
		topic = m.query.Topic
	}
	search := m.query.Search
	if search == "" {
		search = "-"
	}
	summary := fmt.Sprintf("Level=%s  topic=%s  search=%s  sort=%s  page %d/%d (%d words)",
		level, topic, search, m.query.Sort, m.page.Page, m.page.TotalPages, m.page.Total)
	return headerStyle.Render(truncateLine(summary, m.width))
}

func (m *Model) renderHelp() string {
	switch m.activeTab {
	case tabWords:
		return headerStyle.Render("Nav: left/right  Search: /  Sort: s  Level: v  Topic: t  Page: [ ]  Favorite: f  Quit: q")
	case tabOverview, tabHistory:
		return headerStyle.Render("Nav: left/right  Scroll: up/down/pgup/pgdn  Window: -/=  Settings: /  Quit: q")
	default:
		return headerStyle.Render("Nav: left/right  Scroll: up/down  Settings: /  Quit: q")
	}
}

func (m *Model) renderFooter() string {
	if m.filterMode {
		return headerStyle.Render("tab/shift+tab: next field  enter: apply  esc: cancel")
	}
	if m.searchMode {
		return m.searchInput.View()
	}
	if m.errMsg != "" {
		return m.renderHelp() + "\n" + errorStyle.Render(m.errMsg)
	}
	return m.renderHelp()
}

func (m *Model) renderFilterForm() string {
	lines := []string{"Settings (enter to apply, esc to cancel)"}
	for _, input := range m.filterInputs {
		lines = append(lines, input.View())
	}
	if m.filterError != "" {
		lines = append(lines, errorStyle.Render(m.filterError))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderBody(height int) string {
	if m.filterMode {
		return fitLines(m.renderFilterForm(), m.width, height)
	}
	if t, ok := m.tables[m.activeTab]; ok {
		if len(t.Rows()) == 0 {
			return fitLines(emptyMessage(m.activeTab), m.width, height)
		}
		return fitLines(tableMutedStyle.Render(t.View()), m.width, height)
	}
	return fitLines(m.viewports[m.activeTab].View(), m.width, height)
}

func emptyMessage(tab int) string {
	switch tab {
	case tabLeaderboard:
		return "Leaderboard is empty. Set a player name to record scores."
	case tabWords:
		return "No words match."
	default:
		return "No data."
	}
}

func (m *Model) refreshReport() {
	ctx := context.Background()
	report, err := stats.BuildReport(ctx, m.store, m.persisted, m.cfg)
	if err != nil {
		m.errMsg = err.Error()
		for _, vp := range m.viewports {
			vp.SetContent("Failed to load stats.")
		}
		return
	}
	vstats, err := m.library.Statistics(ctx)
	if err != nil {
		m.errMsg = err.Error()
		return
	}
	m.errMsg = ""
	m.report = report
	m.vstats = vstats
	m.setRows(tabModes, modeColumns(), modeRows(report.Aggregate, m.modes))
	m.setRows(tabLeaderboard, boardColumns(), boardRows(report.Leaderboard))
	m.renderTabContents()
}

func (m *Model) setRows(tab int, cols []table.Column, rows []table.Row) {
	t := m.tables[tab]
	t.SetRows(nil)
	t.SetColumns(cols)
	t.SetRows(rows)
	if m.width > 0 && m.height > 0 {
		_, bodyHeight, _ := m.layoutHeights()
		m.setTableSize(tab, m.width, bodyHeight)
	}
}

func (m *Model) renderTabContents() {
	if m.errMsg != "" {
		return
	}
	width := m.width
	if width <= 0 {
		width = 80
	}
	m.viewports[tabOverview].SetContent(renderOverview(m.report, m.vstats, width))
	m.viewports[tabHistory].SetContent(renderHistory(m.report.Sessions, m.cfg.CurveWindow, width))
}

func renderOverview(report stats.Report, vstats vocab.Statistics, width int) string {
	agg := report.Aggregate
	last := "never"
	if agg.LastPlayDate != nil {
		last = *agg.LastPlayDate
	}
	cards := []string{
		metricCard("Total score", strconv.Itoa(agg.TotalScore)),
		metricCard("Games", strconv.Itoa(agg.GamesPlayed)),
		metricCard("Streak", fmt.Sprintf("%d day(s)", agg.Streak)),
		metricCard("Last played", last),
		metricCard("Words", strconv.Itoa(vstats.TotalWords)),
		metricCard("Favorites", strconv.Itoa(vstats.FavoritesCount)),
		metricCard("Accuracy", fmt.Sprintf("%d%%", vstats.OverallAccuracy)),
		metricCard("To review", strconv.Itoa(vstats.WordsToReview)),
	}
	var summary string
	if width < 80 {
		summary = strings.Join(cards, "\n")
	} else {
		row1 := lipgloss.JoinHorizontal(lipgloss.Top, cards[:4]...)
		row2 := lipgloss.JoinHorizontal(lipgloss.Top, cards[4:]...)
		summary = lipgloss.JoinVertical(lipgloss.Left, row1, row2)
	}
	if len(report.Curve) == 0 {
		return summary + "\n\nNo sessions found."
	}
	const label = "Score trend "
	trend := label + stats.Sparkline(report.Curve, stats.SparkWidthFor(width, len(label)))
	return summary + "\n\n" + trend
}

func metricCard(label, value string) string {
	content := fmt.Sprintf("%s\n%s", cardTitleStyle.Render(label), cardValueStyle.Render(value))
	return cardStyle.Render(content)
}

func renderHistory(sessions []model.SessionAggregate, window, width int) string {
	var buf bytes.Buffer
	if err := stats.RenderHistory(&buf, sessions, window, width); err != nil {
		return fmt.Sprintf("Failed to render history: %v", err)
	}
	return strings.TrimRight(buf.String(), "\n")
}

func modeColumns() []table.Column {
	return []table.Column{
		{Title: "Mode", Width: 16},
		{Title: "High Score", Width: 10},
		{Title: "Plays", Width: 6},
	}
}

func modeRows(agg model.AggregateStats, modes []model.ModeID) []table.Row {
	rows := make([]table.Row, 0, len(modes))
	for _, mode := range modes {
		stat := agg.Stat(mode)
		rows = append(rows, table.Row{string(mode), strconv.Itoa(stat.HighScore), strconv.Itoa(stat.Plays)})
	}
	return rows
}

func boardColumns() []table.Column {
	return []table.Column{
		{Title: "#", Width: 3},
		{Title: "Player", Width: 24},
		{Title: "Score", Width: 8},
	}
}

func boardRows(entries []model.LeaderboardEntry) []table.Row {
	ranked := stats.Ranked(entries, leaderboardSize)
	rows := make([]table.Row, 0, len(ranked))
	for i, e := range ranked {
		rows = append(rows, table.Row{strconv.Itoa(i + 1), e.Name, strconv.Itoa(e.Score)})
	}
	return rows
}
