package tui

import (
	"context"
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	clog "github.com/charmbracelet/log"

	"github.com/verte-zerg/tuivocab/internal/vocab"
)

// StudyModel walks a study run one card at a time: reveal, then self-grade.
type StudyModel struct {
	run    *vocab.StudyRun
	title  string
	logger *clog.Logger
	ctx    context.Context

	width  int
	height int
	errMsg string
}

// NewStudyModel constructs the study UI for run.
func NewStudyModel(run *vocab.StudyRun, title string, logger *clog.Logger) *StudyModel {
	if logger == nil {
		logger = clog.New(io.Discard)
	}
	return &StudyModel{run: run, title: title, logger: logger, ctx: context.Background()}
}

// Init implements tea.Model.
func (m *StudyModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *StudyModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.String() == "q" || msg.Type == tea.KeyEsc {
			return m, tea.Quit
		}
		if m.run.Done() {
			if msg.Type == tea.KeyEnter {
				return m, tea.Quit
			}
			return m, nil
		}
		switch msg.String() {
		case " ", "enter":
			m.run.Reveal()
		case "y":
			m.grade(true)
		case "n":
			m.grade(false)
		}
	}
	return m, nil
}

func (m *StudyModel) grade(knew bool) {
	if !m.run.Revealed() {
		return
	}
	if err := m.run.Grade(m.ctx, knew); err != nil {
		m.errMsg = fmt.Sprintf("failed to save progress: %v", err)
		m.logger.Error("failed to save progress", "err", err)
	}
}

// View implements tea.Model.
func (m *StudyModel) View() string {
	graded, known, total := m.run.Progress()
	lines := []string{titleStyle.Render("Study · " + m.title), ""}
	if m.run.Done() {
		lines = append(lines,
			accentStyle.Render(fmt.Sprintf("Done! You knew %d of %d words.", known, total)),
			"",
			footerStyle.Render("enter: quit"),
		)
	} else {
		lines = append(lines, m.viewCard()...)
	}
	footer := footerStyle.Render(fmt.Sprintf("Card %d/%d  Known %d", min(graded+1, total), total, known))
	if m.errMsg != "" {
		footer = incorrectStyle.Render(m.errMsg) + "\n" + footer
	}
	body := strings.Join(lines, "\n")
	if m.width == 0 || m.height == 0 {
		return body + "\n\n" + footer
	}
	footerHeight := lipgloss.Height(footer)
	if m.height <= footerHeight {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, body)
	}
	content := lipgloss.Place(m.width, m.height-footerHeight, lipgloss.Center, lipgloss.Center, body)
	return content + "\n" + lipgloss.Place(m.width, footerHeight, lipgloss.Center, lipgloss.Center, footer)
}

func (m *StudyModel) viewCard() []string {
	w, ok := m.run.Current()
	if !ok {
		return nil
	}
	width := 60
	if m.width > 0 {
		width = max(20, int(float64(m.width)*0.70))
	}
	lines := []string{accentStyle.Render(w.English)}
	if w.Pronunciation != "" {
		lines = append(lines, pendingStyle.Render(w.Pronunciation))
	}
	lines = append(lines, "")
	if !m.run.Revealed() {
		return append(lines, footerStyle.Render("space: show meaning  q: quit"))
	}
	lines = append(lines, textStyle.Render(w.Vietnamese))
	if w.Example != "" {
		lines = append(lines, wrapText(w.Example, pendingStyle, width))
	}
	return append(lines, "", footerStyle.Render("y: I knew it  n: not yet"))
}
