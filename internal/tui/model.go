// Package tui provides the Bubble Tea game interface.
package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"
	"unicode"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	clog "github.com/charmbracelet/log"
	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/tuivocab/internal/game"
	"github.com/verte-zerg/tuivocab/internal/model"
)

type screen int

const (
	screenMenu screen = iota
	screenPlay
	screenOver
)

const (
	tickInterval = 250 * time.Millisecond
	fieldRows    = 12
	memoryCols   = 4
)

type tickMsg struct {
	gen int
	at  time.Time
}

var modeTitles = map[model.ModeID]string{
	model.ModeFlashcard:      "Flashcards",
	model.ModeMultipleChoice: "Multiple Choice",
	model.ModeTyping:         "Typing",
	model.ModeSpeed:          "Speed Round",
	model.ModeShooter:        "Shooter",
	model.ModePuzzle:         "Word Puzzle",
	model.ModeMemory:         "Memory",
	model.ModeWordShooter:    "Word Shooter",
}

var (
	correctStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#52C41A"))
	incorrectStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	pendingStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	accentStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	textStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	titleStyle     = textStyle.Copy().Bold(true)
	footerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	cardStyle      = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
	activeCardStyle = cardStyle.Copy().BorderForeground(lipgloss.Color("#C89A3A"))
)

// Model implements the Bubble Tea game UI.
type Model struct {
	engine *game.Engine
	logger *clog.Logger
	ctx    context.Context

	width  int
	height int

	screen   screen
	groupIdx int
	modes    []model.ModeID
	cursor   int

	inputRunes []rune
	review     []rune
	outcome    *game.Outcome
	answerWord model.WordRecord
	cardCursor int

	tickGen  int
	lastTick time.Time

	errMsg string
}

// NewModel constructs a game UI that opens on the mode menu.
func NewModel(engine *game.Engine, logger *clog.Logger) *Model {
	if logger == nil {
		logger = clog.New(io.Discard)
	}
	m := &Model{
		engine: engine,
		logger: logger,
		ctx:    context.Background(),
	}
	m.refreshModes()
	return m
}

// Start begins mode immediately, skipping the menu.
func (m *Model) Start(mode model.ModeID) error {
	if err := m.engine.Start(mode); err != nil {
		return err
	}
	m.enterPlay()
	return nil
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	if m.screen == screenPlay {
		return m.tickCmd()
	}
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tickMsg:
		return m.handleTick(msg)
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.engine.Close()
			return m, tea.Quit
		}
		switch m.screen {
		case screenMenu:
			return m.updateMenu(msg)
		case screenPlay:
			return m.updatePlay(msg)
		default:
			return m.updateOver(msg)
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	var body string
	switch m.screen {
	case screenMenu:
		body = m.viewMenu()
	case screenPlay:
		body = m.viewPlay()
	default:
		body = m.viewOver()
	}
	footer := m.renderFooter()
	if m.errMsg != "" {
		footer = incorrectStyle.Render(m.errMsg) + "\n" + footer
	}
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

func (m *Model) refreshModes() {
	modes, err := m.engine.Registry().ModesForGroup(game.Groups[m.groupIdx])
	if err != nil {
		m.logger.Warn("unknown mode group", "group", game.Groups[m.groupIdx], "err", err)
		modes = m.engine.Registry().Modes()
	}
	m.modes = modes
	if m.cursor >= len(m.modes) {
		m.cursor = max(0, len(m.modes)-1)
	}
}

func (m *Model) enterPlay() {
	m.screen = screenPlay
	m.resetTurn()
	m.cardCursor = 0
	m.errMsg = ""
	m.tickGen++
	m.lastTick = time.Now()
}

func (m *Model) resetTurn() {
	m.inputRunes = nil
	m.review = nil
	m.outcome = nil
}

func (m *Model) tickCmd() tea.Cmd {
	snap, ok := m.engine.Snapshot()
	if !ok || snap.TurnBased || snap.Status != game.StatusRunning {
		return nil
	}
	gen := m.tickGen
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg{gen: gen, at: t}
	})
}

func (m *Model) handleTick(msg tickMsg) (tea.Model, tea.Cmd) {
	if msg.gen != m.tickGen || m.screen != screenPlay {
		return m, nil
	}
	elapsed := msg.at.Sub(m.lastTick)
	m.lastTick = msg.at
	if err := m.engine.Tick(m.ctx, elapsed); err != nil {
		m.fail("failed to advance game clock", err)
	}
	if m.checkFinished() {
		return m, nil
	}
	return m, m.tickCmd()
}

func (m *Model) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.modes)-1 {
			m.cursor++
		}
	case "tab", "right", "l":
		m.groupIdx = (m.groupIdx + 1) % len(game.Groups)
		m.refreshModes()
	case "shift+tab", "left", "h":
		m.groupIdx = (m.groupIdx + len(game.Groups) - 1) % len(game.Groups)
		m.refreshModes()
	case "enter", " ":
		if len(m.modes) == 0 {
			return m, nil
		}
		if err := m.Start(m.modes[m.cursor]); err != nil {
			m.fail("failed to start game", err)
			return m, nil
		}
		return m, m.tickCmd()
	}
	return m, nil
}

func (m *Model) updateOver(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		m.engine.Close()
		return m, tea.Quit
	case "enter", " ":
		m.engine.Close()
		m.screen = screenMenu
		m.errMsg = ""
		m.refreshModes()
	}
	return m, nil
}

func (m *Model) updatePlay(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyEsc {
		m.finish()
		return m, nil
	}
	q, ok := m.engine.CurrentQuestion()
	snap, _ := m.engine.Snapshot()
	if !ok {
		m.checkFinished()
		return m, nil
	}
	if snap.TurnBased {
		if msg.Type == tea.KeyTab {
			m.advance()
			return m, nil
		}
		if snap.Answered {
			if msg.Type == tea.KeyEnter || msg.Type == tea.KeySpace {
				m.advance()
			}
			return m, nil
		}
	}

	switch q.Kind {
	case game.KindFlashcard:
		m.keyFlashcard(msg)
	case game.KindChoice:
		m.keyChoice(msg, q)
	case game.KindTyping:
		m.keyText(msg)
	case game.KindPuzzle:
		m.keyPuzzle(msg, q)
	case game.KindShooter:
		if snap.Mode == model.ModeWordShooter {
			m.keyCannon(msg)
		} else {
			m.keyText(msg)
		}
	case game.KindMemory:
		m.keyMemory(msg)
	}
	m.checkFinished()
	return m, nil
}

func (m *Model) keyFlashcard(msg tea.KeyMsg) {
	if !m.engine.Revealed() {
		if msg.Type == tea.KeySpace || msg.Type == tea.KeyEnter {
			m.engine.Reveal()
		}
		return
	}
	switch msg.String() {
	case "y":
		m.submit(game.Answer{Knew: true})
	case "n":
		m.submit(game.Answer{Knew: false})
	}
}

func (m *Model) keyChoice(msg tea.KeyMsg, q game.Question) {
	if msg.Type != tea.KeyRunes || len(msg.Runes) != 1 {
		return
	}
	idx := int(msg.Runes[0] - '1')
	if idx < 0 || idx >= len(q.Options) {
		return
	}
	m.review = []rune(q.Options[idx])
	m.submit(game.Answer{Text: q.Options[idx]})
}

func (m *Model) keyText(msg tea.KeyMsg) {
	switch msg.Type {
	case tea.KeyBackspace, tea.KeyDelete:
		if len(m.inputRunes) > 0 {
			m.inputRunes = m.inputRunes[:len(m.inputRunes)-1]
		}
	case tea.KeySpace:
		m.inputRunes = append(m.inputRunes, ' ')
	case tea.KeyRunes:
		m.inputRunes = append(m.inputRunes, msg.Runes...)
	case tea.KeyEnter:
		typed := m.inputRunes
		m.inputRunes = nil
		m.review = typed
		m.submit(game.Answer{Text: string(typed)})
	}
}

func (m *Model) keyPuzzle(msg tea.KeyMsg, q game.Question) {
	switch msg.Type {
	case tea.KeyBackspace, tea.KeyDelete:
		m.engine.UndoLetter()
	case tea.KeyEnter:
		m.review = []rune(m.engine.Assembled())
		m.submit(game.Answer{})
	case tea.KeyRunes:
		for _, r := range msg.Runes {
			if i := freeTile(q.Letters, m.engine.Picked(), r); i >= 0 {
				m.engine.PickLetter(i)
			}
		}
	}
}

// freeTile returns the first unpicked tile showing r, ignoring case.
func freeTile(letters []rune, picked []int, r rune) int {
	used := make(map[int]bool, len(picked))
	for _, i := range picked {
		used[i] = true
	}
	for i, l := range letters {
		if !used[i] && unicode.ToLower(l) == unicode.ToLower(r) {
			return i
		}
	}
	return -1
}

func (m *Model) keyCannon(msg tea.KeyMsg) {
	switch msg.String() {
	case "left", "h":
		m.engine.MoveCannon(-1)
	case "right", "l":
		m.engine.MoveCannon(1)
	case " ", "enter", "up":
		m.submit(game.Answer{Fire: true})
	}
}

func (m *Model) keyMemory(msg tea.KeyMsg) {
	cards := m.engine.Cards()
	if len(cards) == 0 {
		return
	}
	switch msg.String() {
	case "left", "h":
		m.cardCursor = max(0, m.cardCursor-1)
	case "right", "l":
		m.cardCursor = min(len(cards)-1, m.cardCursor+1)
	case "up", "k":
		if m.cardCursor-memoryCols >= 0 {
			m.cardCursor -= memoryCols
		}
	case "down", "j":
		if m.cardCursor+memoryCols < len(cards) {
			m.cardCursor += memoryCols
		}
	case " ", "enter":
		m.submit(game.Answer{Card: m.cardCursor})
	}
}

func (m *Model) submit(a game.Answer) {
	if q, ok := m.engine.CurrentQuestion(); ok {
		m.answerWord = q.Word
	}
	out, err := m.engine.Submit(m.ctx, a)
	if err != nil {
		if errors.Is(err, game.ErrAlreadyAnswered) {
			return
		}
		m.fail("failed to submit answer", err)
		return
	}
	if !out.Pending {
		m.outcome = &out
	}
}

func (m *Model) advance() {
	if err := m.engine.Advance(m.ctx); err != nil {
		m.fail("failed to advance", err)
	}
	m.resetTurn()
	m.checkFinished()
}

func (m *Model) finish() {
	if m.engine.Status() == game.StatusRunning {
		if err := m.engine.Finish(m.ctx); err != nil {
			m.fail("failed to finish game", err)
			return
		}
	}
	m.screen = screenOver
}

func (m *Model) checkFinished() bool {
	if m.engine.Status() != game.StatusFinished {
		return false
	}
	m.screen = screenOver
	return true
}

func (m *Model) fail(msg string, err error) {
	m.errMsg = fmt.Sprintf("%s: %v", msg, err)
	m.logger.Error(msg, "err", err)
}

func (m *Model) contentWidth() int {
	if m.width == 0 {
		return 60
	}
	return max(20, int(float64(m.width)*0.70))
}

func (m *Model) viewMenu() string {
	lines := []string{titleStyle.Render("tuivocab"), ""}
	groups := make([]string, 0, len(game.Groups))
	for i, g := range game.Groups {
		if i == m.groupIdx {
			groups = append(groups, accentStyle.Render("["+string(g)+"]"))
		} else {
			groups = append(groups, pendingStyle.Render(string(g)))
		}
	}
	lines = append(lines, strings.Join(groups, "  "), "")
	if len(m.modes) == 0 {
		lines = append(lines, pendingStyle.Render("No games in this group."))
	}
	for i, mode := range m.modes {
		label := modeTitle(mode)
		if i == m.cursor {
			lines = append(lines, accentStyle.Render("› "+label))
		} else {
			lines = append(lines, textStyle.Render("  "+label))
		}
	}
	return strings.Join(lines, "\n")
}

func (m *Model) viewPlay() string {
	q, ok := m.engine.CurrentQuestion()
	if !ok {
		return ""
	}
	snap, _ := m.engine.Snapshot()
	width := m.contentWidth()
	lines := []string{titleStyle.Render(modeTitle(snap.Mode)), ""}
	switch q.Kind {
	case game.KindFlashcard:
		lines = append(lines, m.viewFlashcard(q, width)...)
	case game.KindChoice:
		lines = append(lines, m.viewChoice(q, snap, width)...)
	case game.KindTyping:
		lines = append(lines, m.viewTyping(q, snap, width)...)
	case game.KindPuzzle:
		lines = append(lines, m.viewPuzzle(q, snap, width)...)
	case game.KindShooter:
		lines = append(lines, m.viewShooter(q, snap, width)...)
	case game.KindMemory:
		lines = append(lines, m.viewMemory(q, width)...)
	}
	return strings.Join(lines, "\n")
}

func (m *Model) viewFlashcard(q game.Question, width int) []string {
	lines := []string{accentStyle.Render(q.Prompt)}
	if q.Word.Pronunciation != "" {
		lines = append(lines, pendingStyle.Render(q.Word.Pronunciation))
	}
	lines = append(lines, "")
	if !m.engine.Revealed() {
		return append(lines, footerStyle.Render("space: show meaning  tab: skip"))
	}
	lines = append(lines, textStyle.Render(q.Word.Vietnamese))
	if q.Word.Example != "" {
		lines = append(lines, wrapText(q.Word.Example, pendingStyle, width))
	}
	lines = append(lines, "")
	if m.outcome != nil {
		return append(lines, footerStyle.Render("enter: next"))
	}
	return append(lines, footerStyle.Render("y: I knew it  n: not yet"))
}

func (m *Model) viewChoice(q game.Question, snap game.Snapshot, width int) []string {
	lines := []string{wrapText(q.Prompt, accentStyle, width), ""}
	answered := snap.TurnBased && snap.Answered
	for i, opt := range q.Options {
		label := fmt.Sprintf("%d. %s", i+1, opt)
		style := textStyle
		if answered {
			switch {
			case opt == q.Word.English:
				style = correctStyle
			case opt == string(m.review):
				style = incorrectStyle
			default:
				style = pendingStyle
			}
		}
		lines = append(lines, style.Render(label))
	}
	lines = append(lines, "", m.outcomeLine())
	if answered {
		lines = append(lines, footerStyle.Render("enter: next"))
	}
	return lines
}

func (m *Model) viewTyping(q game.Question, snap game.Snapshot, width int) []string {
	lines := []string{wrapText(q.Prompt, accentStyle, width), ""}
	if snap.Answered {
		target := []rune(q.Word.English)
		lines = append(lines,
			renderStyledRunes(reviewRunes(target, m.review)),
			"",
			m.outcomeLine(),
			footerStyle.Render("enter: next"),
		)
		return lines
	}
	return append(lines, inputLine(m.inputRunes), "", footerStyle.Render("enter: check  tab: skip"))
}

func (m *Model) viewPuzzle(q game.Question, snap game.Snapshot, width int) []string {
	lines := []string{wrapText(q.Prompt, accentStyle, width), ""}
	picked := map[int]bool{}
	for _, i := range m.engine.Picked() {
		picked[i] = true
	}
	tiles := make([]string, 0, len(q.Letters))
	for i, r := range q.Letters {
		style := activeCardStyle
		if picked[i] {
			style = cardStyle.Copy().Foreground(lipgloss.Color("#4A4A4A"))
		}
		tiles = append(tiles, style.Render(string(r)))
	}
	lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, tiles...), "")
	if snap.Answered {
		lines = append(lines,
			renderStyledRunes(reviewRunes([]rune(q.Word.English), m.review)),
			"",
			m.outcomeLine(),
			footerStyle.Render("enter: next"),
		)
		return lines
	}
	return append(lines, inputLine([]rune(m.engine.Assembled())), "", footerStyle.Render("type letters  backspace: undo  enter: check  tab: skip"))
}

func (m *Model) viewShooter(q game.Question, snap game.Snapshot, width int) []string {
	aimed := snap.Mode == model.ModeWordShooter
	cannon := -1
	if aimed {
		cannon = m.engine.Cannon()
	}
	lines := []string{pendingStyle.Render(q.Prompt), ""}
	lines = append(lines, renderField(m.engine.Falling(), width, cannon)...)
	lines = append(lines, "")
	if m.outcome != nil {
		if m.outcome.Correct {
			lines = append(lines, correctStyle.Render(fmt.Sprintf("Hit! +%d", m.outcome.Delta)))
		} else {
			lines = append(lines, incorrectStyle.Render(fmt.Sprintf("Miss %d", m.outcome.Delta)))
		}
	} else {
		lines = append(lines, "")
	}
	if aimed {
		return append(lines, footerStyle.Render("left/right: aim  space: fire  esc: stop"))
	}
	return append(lines, inputLine(m.inputRunes), footerStyle.Render("enter: shoot  esc: stop"))
}

// renderField draws falling words by lane and age. cannon < 0 hides the cannon row.
func renderField(words []game.FallingWord, width, cannon int) []string {
	rows := make([][]rune, fieldRows)
	for i := range rows {
		rows[i] = []rune(strings.Repeat(" ", width))
	}
	for _, f := range words {
		row := min(fieldRows-1, int(f.Fall()*float64(fieldRows)))
		text := runewidth.Truncate(f.Word.English, width, "")
		col := laneColumn(f.Lane, width) - runewidth.StringWidth(text)/2
		col = max(0, min(col, width-runewidth.StringWidth(text)))
		for i, r := range []rune(text) {
			if col+i < len(rows[row]) {
				rows[row][col+i] = r
			}
		}
	}
	out := make([]string, 0, fieldRows+1)
	for _, r := range rows {
		out = append(out, textStyle.Render(string(r)))
	}
	if cannon >= 0 {
		col := min(width-1, laneColumn(cannon, width))
		out = append(out, strings.Repeat(" ", col)+accentStyle.Render("▲"))
	}
	return out
}

func laneColumn(percent, width int) int {
	return percent * width / 100
}

func (m *Model) viewMemory(q game.Question, width int) []string {
	cards := m.engine.Cards()
	cellWidth := max(8, width/memoryCols-4)
	var rows []string
	var row []string
	for i, c := range cards {
		face := "?"
		style := cardStyle
		switch {
		case c.Matched:
			face = c.Face
			style = style.Copy().Foreground(lipgloss.Color("#52C41A"))
		case c.FaceUp:
			face = c.Face
		}
		if i == m.cardCursor {
			style = activeCardStyle.Copy().Foreground(style.GetForeground())
		}
		cell := runewidth.FillRight(runewidth.Truncate(face, cellWidth, "…"), cellWidth)
		row = append(row, style.Render(cell))
		if len(row) == memoryCols {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}
	lines := []string{pendingStyle.Render(q.Prompt), ""}
	lines = append(lines, rows...)
	return append(lines, "", footerStyle.Render("arrows: move  space: flip  esc: stop"))
}

// outcomeLine reports the last judged answer. Rolling modes have already
// moved on, so the answer shown is the one recorded at submit time.
func (m *Model) outcomeLine() string {
	if m.outcome == nil {
		return ""
	}
	if m.outcome.Correct {
		return correctStyle.Render(fmt.Sprintf("Correct! +%d", m.outcome.Delta))
	}
	return incorrectStyle.Render(fmt.Sprintf("Answer: %s (%d)", m.answerWord.English, m.outcome.Delta))
}

func (m *Model) viewOver() string {
	snap, ok := m.engine.Snapshot()
	if !ok {
		return ""
	}
	lines := []string{
		titleStyle.Render("Game over · " + modeTitle(snap.Mode)),
		"",
		accentStyle.Render(fmt.Sprintf("Score %d", snap.Score)),
		textStyle.Render(fmt.Sprintf("Correct %d  Wrong %d", snap.Correct, snap.Incorrect)),
	}
	if agg, ok := m.engine.LastCommit(); ok {
		stat := agg.Stat(snap.Mode)
		if snap.Score > 0 && snap.Score == stat.HighScore {
			lines = append(lines, correctStyle.Render("New high score!"))
		} else {
			lines = append(lines, textStyle.Render(fmt.Sprintf("High score %d", stat.HighScore)))
		}
		lines = append(lines,
			textStyle.Render(fmt.Sprintf("Streak %d day(s) · Total %d", agg.Streak, agg.TotalScore)),
		)
	}
	return strings.Join(append(lines, "", footerStyle.Render("enter: menu  q: quit")), "\n")
}

func (m *Model) renderFooter() string {
	if m.screen == screenMenu {
		return footerStyle.Render("up/down: choose  tab: group  enter: play  q: quit")
	}
	snap, ok := m.engine.Snapshot()
	if !ok || m.screen != screenPlay {
		return ""
	}
	segments := []string{fmt.Sprintf("Score %d", snap.Score)}
	if snap.TurnBased {
		segments = append(segments, fmt.Sprintf("Question %d/%d", min(snap.Index+1, snap.Length), snap.Length))
	} else {
		segments = append(segments, "Time "+formatClock(snap.Remaining))
	}
	segments = append(segments, fmt.Sprintf("✓ %d  ✗ %d", snap.Correct, snap.Incorrect))
	return footerStyle.Render(strings.Join(segments, "  "))
}

func formatClock(d time.Duration) string {
	secs := int((d + time.Second - 1) / time.Second)
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}

func inputLine(runes []rune) string {
	return accentStyle.Render("> ") + textStyle.Render(string(runes)) + pendingStyle.Copy().Underline(true).Render(" ")
}

func modeTitle(mode model.ModeID) string {
	if t, ok := modeTitles[mode]; ok {
		return t
	}
	return string(mode)
}
