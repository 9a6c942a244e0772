package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/verte-zerg/tuivocab/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "tuivocab.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	return st
}

func TestKeyValueRoundTrip(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	if _, err := st.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := st.Set(ctx, "k", "v1"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := st.Set(ctx, "k", "v2"); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	got, err := st.Get(ctx, "k")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != "v2" {
		t.Fatalf("expected v2, got %q", got)
	}
}

func TestSaveProgressAccumulates(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	first := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	second := first.Add(time.Hour)

	if _, err := st.GetProgress(ctx, "cat"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound before study, got %v", err)
	}
	if err := st.SaveProgress(ctx, "cat", true, first); err != nil {
		t.Fatalf("save progress: %v", err)
	}
	if err := st.SaveProgress(ctx, "cat", false, second); err != nil {
		t.Fatalf("save progress: %v", err)
	}
	rec, err := st.GetProgress(ctx, "cat")
	if err != nil {
		t.Fatalf("get progress: %v", err)
	}
	if rec.Attempts != 2 || rec.Correct != 1 {
		t.Fatalf("unexpected progress: %+v", rec)
	}
	if !rec.LastStudied.Equal(second) {
		t.Fatalf("expected last studied %v, got %v", second, rec.LastStudied)
	}

	all, err := st.ListProgress(ctx)
	if err != nil {
		t.Fatalf("list progress: %v", err)
	}
	if len(all) != 1 || all["cat"].Attempts != 2 {
		t.Fatalf("unexpected progress list: %+v", all)
	}
}

func TestFavorites(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	for i, w := range []string{"dog", "cat", "dog"} {
		if err := st.AddFavorite(ctx, w, base.Add(time.Duration(i)*time.Minute)); err != nil {
			t.Fatalf("add favorite: %v", err)
		}
	}
	favs, err := st.ListFavorites(ctx)
	if err != nil {
		t.Fatalf("list favorites: %v", err)
	}
	if len(favs) != 2 || favs[0] != "dog" || favs[1] != "cat" {
		t.Fatalf("unexpected favorites: %v", favs)
	}
	if err := st.RemoveFavorite(ctx, "dog"); err != nil {
		t.Fatalf("remove favorite: %v", err)
	}
	favs, err = st.ListFavorites(ctx)
	if err != nil {
		t.Fatalf("list favorites: %v", err)
	}
	if len(favs) != 1 || favs[0] != "cat" {
		t.Fatalf("unexpected favorites after remove: %v", favs)
	}
}

func TestListSessionsFilters(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	modes := []model.ModeID{model.ModeTyping, model.ModeSpeed, model.ModeTyping, model.ModeTyping}
	for i, mode := range modes {
		start := base.Add(time.Duration(i) * time.Hour)
		_, err := st.InsertSession(ctx, model.SessionRecord{
			SessionID: string(rune('a' + i)),
			Mode:      mode,
			Level:     model.LevelBeginner,
			Score:     10 * (i + 1),
			Correct:   i,
			StartedAt: start,
			EndedAt:   start.Add(30 * time.Second),
		})
		if err != nil {
			t.Fatalf("insert session: %v", err)
		}
	}

	all, err := st.ListSessions(ctx, model.StatsConfig{})
	if err != nil {
		t.Fatalf("list sessions: %v", err)
	}
	if len(all) != 4 {
		t.Fatalf("expected 4 sessions, got %d", len(all))
	}
	if all[0].DurationMs != 30000 {
		t.Fatalf("expected 30000ms duration, got %d", all[0].DurationMs)
	}

	typing, err := st.ListSessions(ctx, model.StatsConfig{Mode: model.ModeTyping, Last: 2})
	if err != nil {
		t.Fatalf("list sessions: %v", err)
	}
	if len(typing) != 2 || typing[0].Score != 30 || typing[1].Score != 40 {
		t.Fatalf("unexpected typing sessions: %+v", typing)
	}

	since := base.Add(150 * time.Minute)
	recent, err := st.ListSessions(ctx, model.StatsConfig{Since: &since})
	if err != nil {
		t.Fatalf("list sessions: %v", err)
	}
	if len(recent) != 1 || recent[0].Score != 40 {
		t.Fatalf("unexpected recent sessions: %+v", recent)
	}
}
