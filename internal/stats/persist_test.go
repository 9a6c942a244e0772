package stats

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	clog "github.com/charmbracelet/log"

	"github.com/verte-zerg/tuivocab/internal/model"
)

type failingKV struct{ err error }

func (f failingKV) Get(context.Context, string) (string, error) { return "", f.err }
func (f failingKV) Set(context.Context, string, string) error   { return f.err }

func TestLoadDefaultsWhenMissing(t *testing.T) {
	st := NewStore(NewMemoryKV(), nil)
	agg, err := st.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if agg.TotalScore != 0 || agg.GamesPlayed != 0 || agg.Streak != 0 || agg.LastPlayDate != nil {
		t.Fatalf("expected zero aggregate, got %+v", agg)
	}
	if agg.GameStats == nil || len(agg.GameStats) != 0 {
		t.Fatalf("expected empty game stats map, got %v", agg.GameStats)
	}
	board, err := st.LoadLeaderboard(context.Background())
	if err != nil || len(board) != 0 {
		t.Fatalf("expected empty leaderboard, got %v %v", board, err)
	}
}

func TestSaveLoadRoundTripIsByteStable(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	st := NewStore(kv, nil)

	agg := DefaultAggregate()
	agg = Fold(agg, model.ModeFlashcard, 80, "2026-03-01")
	agg = Fold(agg, model.ModeMemory, 100, "2026-03-02")
	if err := st.Save(ctx, agg); err != nil {
		t.Fatalf("save: %v", err)
	}
	first, _ := kv.Get(ctx, AggregateKey)

	loaded, err := st.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if err := st.Save(ctx, loaded); err != nil {
		t.Fatalf("save: %v", err)
	}
	second, _ := kv.Get(ctx, AggregateKey)
	if first != second {
		t.Fatalf("round trip changed data:\n%s\n%s", first, second)
	}
	if !strings.Contains(first, `"lastPlayDate":"2026-03-02"`) {
		t.Fatalf("unexpected encoding: %s", first)
	}
}

func TestDefaultAggregateEncodesNullDate(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	if err := NewStore(kv, nil).Save(ctx, DefaultAggregate()); err != nil {
		t.Fatalf("save: %v", err)
	}
	raw, _ := kv.Get(ctx, AggregateKey)
	want := `{"totalScore":0,"gamesPlayed":0,"streak":0,"lastPlayDate":null,"gameStats":{}}`
	if raw != want {
		t.Fatalf("expected %s, got %s", want, raw)
	}
}

func TestLoadRecoversCorruptState(t *testing.T) {
	ctx := context.Background()
	for _, raw := range []string{"{not json", `{"totalScore":-4}`, `{"lastPlayDate":"yesterday"}`} {
		kv := NewMemoryKV()
		_ = kv.Set(ctx, AggregateKey, raw)
		_ = kv.Set(ctx, LeaderboardKey, "[{")
		var logs bytes.Buffer
		st := NewStore(kv, clog.New(&logs))

		agg, err := st.Load(ctx)
		if err != nil {
			t.Fatalf("expected recovery for %q, got %v", raw, err)
		}
		if agg.TotalScore != 0 || agg.GameStats == nil {
			t.Fatalf("expected default aggregate for %q, got %+v", raw, agg)
		}
		board, err := st.LoadLeaderboard(ctx)
		if err != nil || len(board) != 0 {
			t.Fatalf("expected empty leaderboard, got %v %v", board, err)
		}
		if !strings.Contains(logs.String(), "corrupt persisted state") {
			t.Fatalf("expected corruption warning, got %q", logs.String())
		}
	}
}

func TestLoadPropagatesBackendErrors(t *testing.T) {
	boom := errors.New("disk gone")
	st := NewStore(failingKV{err: boom}, nil)
	if _, err := st.Load(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected backend error, got %v", err)
	}
	if err := st.Save(context.Background(), DefaultAggregate()); !errors.Is(err, boom) {
		t.Fatalf("expected backend error, got %v", err)
	}
}

func TestCorruptStateErrorMatchesSentinel(t *testing.T) {
	err := error(&CorruptStateError{Key: AggregateKey, Err: errors.New("bad")})
	if !errors.Is(err, ErrCorruptState) {
		t.Fatalf("expected ErrCorruptState match")
	}
}

func TestFoldStreakOncePerDay(t *testing.T) {
	agg := DefaultAggregate()
	agg = Fold(agg, model.ModeTyping, 15, "2026-03-01")
	agg = Fold(agg, model.ModeTyping, 30, "2026-03-01")
	if agg.Streak != 1 {
		t.Fatalf("expected streak 1 on same day, got %d", agg.Streak)
	}
	agg = Fold(agg, model.ModeSpeed, 0, "2026-03-02")
	if agg.Streak != 2 || *agg.LastPlayDate != "2026-03-02" {
		t.Fatalf("expected streak 2, got %d (%v)", agg.Streak, *agg.LastPlayDate)
	}
	if agg.TotalScore != 45 || agg.GamesPlayed != 3 {
		t.Fatalf("unexpected totals: %+v", agg)
	}
	plays := 0
	for _, s := range agg.GameStats {
		plays += s.Plays
	}
	if plays != agg.GamesPlayed {
		t.Fatalf("plays %d do not sum to games played %d", plays, agg.GamesPlayed)
	}
}

func TestFoldHighScore(t *testing.T) {
	agg := DefaultAggregate()
	agg.GameStats[model.ModeFlashcard] = model.GameStat{HighScore: 50}
	agg = Fold(agg, model.ModeFlashcard, 80, "2026-03-01")
	if got := agg.Stat(model.ModeFlashcard).HighScore; got != 80 {
		t.Fatalf("expected high score 80, got %d", got)
	}
	agg = Fold(agg, model.ModeFlashcard, 40, "2026-03-01")
	stat := agg.Stat(model.ModeFlashcard)
	if stat.HighScore != 80 || stat.Plays != 2 {
		t.Fatalf("unexpected flashcard stat: %+v", stat)
	}
}

func TestFoldDoesNotMutateInput(t *testing.T) {
	agg := DefaultAggregate()
	_ = Fold(agg, model.ModeTyping, 10, "2026-03-01")
	if len(agg.GameStats) != 0 || agg.GamesPlayed != 0 {
		t.Fatalf("input aggregate was mutated: %+v", agg)
	}
}

func TestAddLeaderboardEntryAppends(t *testing.T) {
	ctx := context.Background()
	st := NewStore(NewMemoryKV(), nil)
	for _, e := range []model.LeaderboardEntry{{Name: "an", Score: 10}, {Name: "binh", Score: 20}} {
		if err := st.AddLeaderboardEntry(ctx, e); err != nil {
			t.Fatalf("add: %v", err)
		}
	}
	board, err := st.LoadLeaderboard(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(board) != 2 || board[0].Name != "an" || board[1].Name != "binh" {
		t.Fatalf("expected insertion order, got %+v", board)
	}
}

func TestRankedStableTies(t *testing.T) {
	entries := []model.LeaderboardEntry{
		{Name: "a", Score: 10},
		{Name: "b", Score: 20},
		{Name: "c", Score: 10},
		{Name: "d", Score: 20},
	}
	got := Ranked(entries, 3)
	want := []string{"b", "d", "a"}
	for i, name := range want {
		if got[i].Name != name {
			t.Fatalf("expected %v, got %+v", want, got)
		}
	}
	if entries[0].Name != "a" {
		t.Fatalf("input was reordered")
	}
}

func TestWeakWeights(t *testing.T) {
	words := []model.WordRecord{{English: "cat"}, {English: "dog"}, {English: "bird"}}
	progress := map[string]model.ProgressRecord{
		"cat":  {English: "cat", Attempts: 4, Correct: 1},
		"dog":  {English: "dog", Attempts: 2, Correct: 2},
		"fish": {English: "fish"},
	}
	weights := WeakWeights(words, progress, 1, 2)
	if weights[0] != 2.5 || weights[1] != 1 || weights[2] != 1 {
		t.Fatalf("unexpected weights: %v", weights)
	}
	weak := SelectWeakWords(progress, 0)
	if len(weak) != 2 || weak[0].English != "cat" {
		t.Fatalf("unexpected weak words: %+v", weak)
	}
}
