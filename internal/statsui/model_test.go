package statsui

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/tuivocab/internal/model"
	"github.com/verte-zerg/tuivocab/internal/stats"
	"github.com/verte-zerg/tuivocab/internal/store"
	"github.com/verte-zerg/tuivocab/internal/vocab"
)

var testModes = []model.ModeID{model.ModeFlashcard, model.ModeTyping}

func newTestModel(t *testing.T) (*Model, *stats.Store) {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "tuivocab.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	words := []model.WordRecord{
		{English: "cat", Vietnamese: "con mèo", Level: model.LevelBeginner, Topic: "animals"},
		{English: "dog", Vietnamese: "con chó", Level: model.LevelBeginner, Topic: "animals"},
		{English: "weather", Vietnamese: "thời tiết", Level: model.LevelIntermediate, Topic: "weather"},
	}
	persisted := stats.NewStore(st, nil)
	lib := vocab.NewLibrary(words, st)
	m := NewModel(st, persisted, lib, model.StatsConfig{CurveWindow: 5}, testModes)
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return m, persisted
}

func key(m *Model, s string) {
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
}

func TestModeRowsFollowGivenOrder(t *testing.T) {
	m, persisted := newTestModel(t)
	agg := stats.Fold(stats.DefaultAggregate(), model.ModeTyping, 45, "2026-03-01")
	if err := persisted.Save(context.Background(), agg); err != nil {
		t.Fatalf("save: %v", err)
	}
	m.refreshReport()
	rows := m.tables[tabModes].Rows()
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0][0] != "flashcard" || rows[0][1] != "0" {
		t.Fatalf("unexpected first row: %v", rows[0])
	}
	if rows[1][0] != "typing" || rows[1][1] != "45" || rows[1][2] != "1" {
		t.Fatalf("unexpected second row: %v", rows[1])
	}
}

func TestLeaderboardRowsRanked(t *testing.T) {
	m, persisted := newTestModel(t)
	ctx := context.Background()
	for _, e := range []model.LeaderboardEntry{{Name: "an", Score: 10}, {Name: "binh", Score: 30}, {Name: "chi", Score: 10}} {
		if err := persisted.AddLeaderboardEntry(ctx, e); err != nil {
			t.Fatalf("add entry: %v", err)
		}
	}
	m.refreshReport()
	rows := m.tables[tabLeaderboard].Rows()
	if len(rows) != 3 || rows[0][1] != "binh" || rows[1][1] != "an" || rows[2][1] != "chi" {
		t.Fatalf("unexpected leaderboard rows: %v", rows)
	}
}

func TestOverviewShowsAggregate(t *testing.T) {
	m, persisted := newTestModel(t)
	agg := stats.Fold(stats.DefaultAggregate(), model.ModeFlashcard, 70, "2026-03-01")
	if err := persisted.Save(context.Background(), agg); err != nil {
		t.Fatalf("save: %v", err)
	}
	m.refreshReport()
	view := m.View()
	for _, want := range []string{"Total score", "70", "2026-03-01", "No sessions found."} {
		if !strings.Contains(view, want) {
			t.Fatalf("overview missing %q", want)
		}
	}
}

func TestTabNavigationWraps(t *testing.T) {
	m, _ := newTestModel(t)
	m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	if m.activeTab != tabWords {
		t.Fatalf("expected wrap to words tab, got %d", m.activeTab)
	}
	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	if m.activeTab != tabOverview {
		t.Fatalf("expected wrap to overview, got %d", m.activeTab)
	}
}

func TestWordBrowserKeys(t *testing.T) {
	m, _ := newTestModel(t)
	m.activeTab = tabWords
	if m.page.Total != 3 {
		t.Fatalf("expected 3 words, got %d", m.page.Total)
	}
	key(m, "v")
	if m.query.Level != model.LevelBeginner || m.page.Total != 2 {
		t.Fatalf("expected beginner filter, got %q with %d words", m.query.Level, m.page.Total)
	}
	key(m, "f")
	rows := m.tables[tabWords].Rows()
	if rows[0][0] != "★" || rows[0][1] != "cat" {
		t.Fatalf("expected cat marked favorite, got %v", rows[0])
	}
	if m.vstats.FavoritesCount != 1 {
		t.Fatalf("expected favorites count 1, got %d", m.vstats.FavoritesCount)
	}
	key(m, "f")
	if rows := m.tables[tabWords].Rows(); rows[0][0] != "" {
		t.Fatalf("expected favorite removed, got %v", rows[0])
	}
}

func TestWordSearch(t *testing.T) {
	m, _ := newTestModel(t)
	m.activeTab = tabWords
	key(m, "/")
	if !m.searchMode {
		t.Fatalf("expected search mode")
	}
	key(m, "THỜI")
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.searchMode {
		t.Fatalf("expected search to close on enter")
	}
	if m.page.Total != 1 || m.page.Entries[0].Word.English != "weather" {
		t.Fatalf("unexpected search result: %+v", m.page)
	}
}

func TestApplyFilterValidates(t *testing.T) {
	m, _ := newTestModel(t)
	m.filterInputs[0].SetValue("speed")
	if err := m.applyFilter(); err == nil {
		t.Fatalf("expected error for mode outside the list")
	}
	m.filterInputs[0].SetValue("typing")
	m.filterInputs[1].SetValue("2026/03/01")
	if err := m.applyFilter(); err == nil {
		t.Fatalf("expected error for bad date")
	}
	m.filterInputs[1].SetValue("2026-03-01")
	m.filterInputs[2].SetValue("5")
	m.filterInputs[3].SetValue("3")
	if err := m.applyFilter(); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if m.cfg.Mode != model.ModeTyping || m.cfg.Last != 5 || m.cfg.CurveWindow != 3 || m.cfg.Since == nil {
		t.Fatalf("unexpected config: %+v", m.cfg)
	}
}

func TestCurveWindowSteps(t *testing.T) {
	cases := []struct{ in, next, prev int }{
		{1, 5, 1},
		{5, 10, 1},
		{7, 10, 5},
		{20, 25, 15},
	}
	for _, c := range cases {
		if got := nextCurveWindow(c.in); got != c.next {
			t.Fatalf("next(%d) = %d, want %d", c.in, got, c.next)
		}
		if got := prevCurveWindow(c.in); got != c.prev {
			t.Fatalf("prev(%d) = %d, want %d", c.in, got, c.prev)
		}
	}
}

func TestFitLinesPadsAndClips(t *testing.T) {
	out := fitLines("a\nb\nc", 3, 2)
	if out != "a  \nb  " {
		t.Fatalf("unexpected fit: %q", out)
	}
	if got := truncateLine("abcdefgh", 6); got != "abc..." {
		t.Fatalf("unexpected truncate: %q", got)
	}
}

func TestFilterFormKeys(t *testing.T) {
	m, _ := newTestModel(t)
	m.activeTab = tabHistory
	key(m, "/")
	if !m.filterMode || m.filterIndex != 0 {
		t.Fatalf("expected filter form focused on mode")
	}
	if got := m.filterInputs[3].Value(); got != "5" {
		t.Fatalf("expected curve window prefilled, got %q", got)
	}
	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if m.filterIndex != 1 {
		t.Fatalf("expected tab to move focus, got %d", m.filterIndex)
	}
	m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.filterIndex != 3 {
		t.Fatalf("expected focus to wrap to the last input, got %d", m.filterIndex)
	}

	m.filterInputs[3].SetValue("0")
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if !m.filterMode || m.filterError == "" || m.cfg.CurveWindow != 5 {
		t.Fatalf("expected rejected window to keep the form open")
	}
	m.filterInputs[3].SetValue("10")
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.filterMode || m.cfg.CurveWindow != 10 {
		t.Fatalf("expected window 10 applied, got %+v", m.cfg)
	}

	key(m, "/")
	m.filterInputs[0].SetValue("typing")
	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.filterMode || m.cfg.Mode != "" {
		t.Fatalf("esc must discard edits, got %+v", m.cfg)
	}
}
