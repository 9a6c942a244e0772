package statsui

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/tuivocab/internal/model"
)

const (
	dateLayout = "2006-01-02"
	curveStep  = 5
)

// filterField binds one settings input to a StatsConfig field.
type filterField struct {
	prompt string
	show   func(model.StatsConfig) string
	parse  func(raw string, cfg *model.StatsConfig) error
}

func historyFilterFields(modes []model.ModeID) []filterField {
	return []filterField{
		{
			prompt: "Mode: ",
			show:   func(c model.StatsConfig) string { return string(c.Mode) },
			parse: func(raw string, c *model.StatsConfig) error {
				mode := model.ModeID(raw)
				if mode != "" && !slices.Contains(modes, mode) {
					return fmt.Errorf("unknown mode %q", raw)
				}
				c.Mode = mode
				return nil
			},
		},
		{
			prompt: "Since (YYYY-MM-DD): ",
			show: func(c model.StatsConfig) string {
				if c.Since == nil {
					return ""
				}
				return c.Since.Format(dateLayout)
			},
			parse: func(raw string, c *model.StatsConfig) error {
				if raw == "" {
					return nil
				}
				day, err := time.ParseInLocation(dateLayout, raw, time.Local)
				if err != nil {
					return errors.New("since must be a date like 2026-03-01")
				}
				c.Since = &day
				return nil
			},
		},
		{
			prompt: "Last: ",
			show: func(c model.StatsConfig) string {
				if c.Last <= 0 {
					return ""
				}
				return strconv.Itoa(c.Last)
			},
			parse: func(raw string, c *model.StatsConfig) error {
				n, err := atoiOr(raw, 0)
				if err != nil || n < 0 {
					return errors.New("last must be a session count (0 for all)")
				}
				c.Last = n
				return nil
			},
		},
		{
			prompt: "Curve window: ",
			show:   func(c model.StatsConfig) string { return strconv.Itoa(c.CurveWindow) },
			parse: func(raw string, c *model.StatsConfig) error {
				n, err := atoiOr(raw, 1)
				if err != nil || n < 1 {
					return errors.New("curve window must be a whole number of sessions, at least 1")
				}
				c.CurveWindow = n
				return nil
			},
		},
	}
}

func atoiOr(raw string, fallback int) (int, error) {
	if raw == "" {
		return fallback, nil
	}
	return strconv.Atoi(raw)
}

func newFilterInputs(fields []filterField) []textinput.Model {
	inputs := make([]textinput.Model, len(fields))
	for i, f := range fields {
		inputs[i] = newFilterInput(f.prompt)
	}
	return inputs
}

func newFilterInput(prompt string) textinput.Model {
	input := textinput.New()
	input.Prompt = prompt
	input.Cursor.SetMode(cursor.CursorBlink)
	return input
}

func (m *Model) startFilter() (tea.Model, tea.Cmd) {
	for i, f := range m.filterFields {
		m.filterInputs[i].SetValue(f.show(m.cfg))
	}
	m.filterMode = true
	m.filterError = ""
	m.filterIndex = 0
	return m, m.focusFilter(0)
}

func (m *Model) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closeFilter()
		return m, nil
	case "enter":
		if err := m.applyFilter(); err != nil {
			m.filterError = err.Error()
			return m, nil
		}
		m.closeFilter()
		m.refreshReport()
		m.updateLayout()
		return m, nil
	case "tab", "down":
		return m, m.focusFilter(1)
	case "shift+tab", "up":
		return m, m.focusFilter(-1)
	}
	var cmd tea.Cmd
	m.filterInputs[m.filterIndex], cmd = m.filterInputs[m.filterIndex].Update(msg)
	return m, cmd
}

func (m *Model) closeFilter() {
	m.filterMode = false
	m.filterError = ""
	for i := range m.filterInputs {
		m.filterInputs[i].Blur()
	}
}

// focusFilter moves focus delta inputs forward, wrapping around.
func (m *Model) focusFilter(delta int) tea.Cmd {
	n := len(m.filterInputs)
	if n == 0 {
		return nil
	}
	m.filterIndex = ((m.filterIndex+delta)%n + n) % n
	for i := range m.filterInputs {
		m.filterInputs[i].Blur()
	}
	return m.filterInputs[m.filterIndex].Focus()
}

// applyFilter replaces the report settings only when every input parses.
func (m *Model) applyFilter() error {
	cfg := model.StatsConfig{CurveWindow: 1}
	for i, f := range m.filterFields {
		if err := f.parse(strings.TrimSpace(m.filterInputs[i].Value()), &cfg); err != nil {
			return err
		}
	}
	m.cfg = cfg
	return nil
}

// nextCurveWindow and prevCurveWindow step through 1, 5, 10, 15, ...
func nextCurveWindow(n int) int {
	return (n/curveStep + 1) * curveStep
}

func prevCurveWindow(n int) int {
	if n <= curveStep {
		return 1
	}
	return (n - 1) / curveStep * curveStep
}

func padLine(line string, width int) string {
	if gap := width - lipgloss.Width(line); gap > 0 {
		return line + strings.Repeat(" ", gap)
	}
	return line
}

func padLines(s string, width int) string {
	if width <= 0 || s == "" {
		return s
	}
	return fitLines(s, width, strings.Count(s, "\n")+1)
}

// fitLines pads or clips s to exactly height rows of width cells.
func fitLines(s string, width, height int) string {
	if width <= 0 || height <= 0 {
		return s
	}
	rows := strings.SplitN(s, "\n", height+1)
	out := make([]string, height)
	for i := range out {
		row := ""
		if i < len(rows) && i < height {
			row = rows[i]
		}
		out[i] = padLine(row, width)
	}
	return strings.Join(out, "\n")
}

func truncateLine(s string, width int) string {
	switch {
	case width <= 0:
		return s
	case width <= 3:
		return runewidth.Truncate(s, width, "")
	}
	return runewidth.Truncate(s, width, "...")
}
