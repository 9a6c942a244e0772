package vocab

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/verte-zerg/tuivocab/internal/model"
	"github.com/verte-zerg/tuivocab/internal/store"
)

func testWords() []model.WordRecord {
	return []model.WordRecord{
		{English: "cat", Vietnamese: "con mèo", Level: model.LevelBeginner, Topic: "animals"},
		{English: "dog", Vietnamese: "con chó", Level: model.LevelBeginner, Topic: "animals"},
		{English: "red", Vietnamese: "màu đỏ", Level: model.LevelBeginner, Topic: "colors"},
		{English: "Weather", Vietnamese: "thời tiết", Level: model.LevelIntermediate, Topic: "weather"},
	}
}

type testClock struct{ now time.Time }

func (c *testClock) Now() time.Time {
	c.now = c.now.Add(time.Minute)
	return c.now
}

func newTestLibrary(t *testing.T, words []model.WordRecord) *Library {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "tuivocab.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	clock := &testClock{now: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
	return NewLibrary(words, st, WithClock(clock.Now))
}

func TestProviderProgressAndFavorites(t *testing.T) {
	ctx := context.Background()
	var p Provider = newTestLibrary(t, testWords())

	if got := p.GetWords(model.LevelBeginner); len(got) != 3 {
		t.Fatalf("expected 3 beginner words, got %d", len(got))
	}
	if _, ok, err := p.GetProgress(ctx, "cat"); err != nil || ok {
		t.Fatalf("expected no progress, got ok=%v err=%v", ok, err)
	}
	if err := p.SaveProgress(ctx, "cat", true); err != nil {
		t.Fatalf("save progress: %v", err)
	}
	if err := p.SaveProgress(ctx, "cat", false); err != nil {
		t.Fatalf("save progress: %v", err)
	}
	rec, ok, err := p.GetProgress(ctx, "cat")
	if err != nil || !ok || rec.Attempts != 2 || rec.Correct != 1 {
		t.Fatalf("unexpected progress %+v ok=%v err=%v", rec, ok, err)
	}
	if err := p.SaveProgress(ctx, "zebra", true); !errors.Is(err, ErrUnknownWord) {
		t.Fatalf("expected ErrUnknownWord, got %v", err)
	}

	if err := p.AddToFavorites(ctx, "dog"); err != nil {
		t.Fatalf("add favorite: %v", err)
	}
	if fav, err := p.IsFavorite(ctx, "dog"); err != nil || !fav {
		t.Fatalf("expected dog favorite, got %v %v", fav, err)
	}
	if err := p.RemoveFromFavorites(ctx, "dog"); err != nil {
		t.Fatalf("remove favorite: %v", err)
	}
	if fav, _ := p.IsFavorite(ctx, "dog"); fav {
		t.Fatalf("expected dog not favorite")
	}
}

func TestNormalizeFoldsCaseAndComposition(t *testing.T) {
	decomposed := "Me\u0300o"
	if Normalize(decomposed) != Normalize(" mèo ") {
		t.Fatalf("expected %q and mèo to normalize equal", decomposed)
	}
}

func TestBrowseFiltersAndSearch(t *testing.T) {
	ctx := context.Background()
	lib := newTestLibrary(t, testWords())

	page, err := lib.Browse(ctx, Query{Level: model.LevelBeginner, Topic: "animals"})
	if err != nil {
		t.Fatalf("browse: %v", err)
	}
	if page.Total != 2 {
		t.Fatalf("expected 2 animals, got %d", page.Total)
	}

	page, err = lib.Browse(ctx, Query{Search: "MÈO"})
	if err != nil {
		t.Fatalf("browse: %v", err)
	}
	if page.Total != 1 || page.Entries[0].Word.English != "cat" {
		t.Fatalf("expected vietnamese search to find cat, got %+v", page.Entries)
	}

	page, err = lib.Browse(ctx, Query{Search: "weath"})
	if err != nil {
		t.Fatalf("browse: %v", err)
	}
	if page.Total != 1 {
		t.Fatalf("expected case-insensitive english search, got %d", page.Total)
	}

	if _, err := lib.Browse(ctx, Query{Sort: "random"}); err == nil {
		t.Fatalf("expected unknown sort error")
	}
}

func TestBrowseSorts(t *testing.T) {
	ctx := context.Background()
	lib := newTestLibrary(t, testWords())
	_ = lib.SaveProgress(ctx, "red", true)
	_ = lib.SaveProgress(ctx, "dog", false)
	_ = lib.SaveProgress(ctx, "dog", true)
	_ = lib.AddToFavorites(ctx, "red")

	firsts := map[SortKey]string{
		SortAlphabetical: "cat",
		SortAccuracy:     "red",
		SortRecent:       "dog",
		SortFavorites:    "red",
	}
	for key, want := range firsts {
		page, err := lib.Browse(ctx, Query{Sort: key})
		if err != nil {
			t.Fatalf("browse %s: %v", key, err)
		}
		if got := page.Entries[0].Word.English; got != want {
			t.Fatalf("sort %s: expected %s first, got %s", key, want, got)
		}
	}
}

func TestBrowsePagination(t *testing.T) {
	ctx := context.Background()
	var words []model.WordRecord
	for i := 0; i < 30; i++ {
		words = append(words, model.WordRecord{
			English: string(rune('a'+i%26)) + string(rune('a'+i/26)),
			Level:   model.LevelBeginner,
			Topic:   "letters",
		})
	}
	lib := newTestLibrary(t, words)

	page, err := lib.Browse(ctx, Query{Page: 3})
	if err != nil {
		t.Fatalf("browse: %v", err)
	}
	if page.TotalPages != 3 || len(page.Entries) != 6 || page.Page != 3 {
		t.Fatalf("unexpected page: page=%d pages=%d entries=%d", page.Page, page.TotalPages, len(page.Entries))
	}
	page, err = lib.Browse(ctx, Query{Page: 99})
	if err != nil {
		t.Fatalf("browse: %v", err)
	}
	if page.Page != 3 {
		t.Fatalf("expected page clamp to 3, got %d", page.Page)
	}
	page, err = lib.Browse(ctx, Query{Search: "zzz"})
	if err != nil {
		t.Fatalf("browse: %v", err)
	}
	if page.Total != 0 || page.TotalPages != 1 || len(page.Entries) != 0 {
		t.Fatalf("unexpected empty page: %+v", page)
	}
}

func TestStatisticsAndReview(t *testing.T) {
	ctx := context.Background()
	lib := newTestLibrary(t, testWords())
	_ = lib.SaveProgress(ctx, "cat", false)
	_ = lib.SaveProgress(ctx, "cat", true)
	_ = lib.SaveProgress(ctx, "dog", false)
	_ = lib.SaveProgress(ctx, "red", true)
	_ = lib.AddToFavorites(ctx, "cat")

	review, err := lib.WordsToReview(ctx)
	if err != nil {
		t.Fatalf("review: %v", err)
	}
	if len(review) != 2 || review[0].English != "dog" || review[1].English != "cat" {
		t.Fatalf("unexpected review list: %+v", review)
	}

	stats, err := lib.Statistics(ctx)
	if err != nil {
		t.Fatalf("statistics: %v", err)
	}
	want := Statistics{TotalWords: 4, TotalTopics: 3, FavoritesCount: 1, OverallAccuracy: 50, WordsToReview: 2}
	if stats != want {
		t.Fatalf("expected %+v, got %+v", want, stats)
	}
}

func TestStudyRunRecordsProgress(t *testing.T) {
	ctx := context.Background()
	lib := newTestLibrary(t, testWords())

	words, err := lib.StudyWords(ctx, StudyTopic, "animals")
	if err != nil {
		t.Fatalf("study words: %v", err)
	}
	run := NewStudyRun(lib, words)
	if err := run.Grade(ctx, true); err == nil {
		t.Fatalf("expected grading before reveal to fail")
	}
	run.Reveal()
	if err := run.Grade(ctx, true); err != nil {
		t.Fatalf("grade: %v", err)
	}
	run.Reveal()
	if err := run.Grade(ctx, false); err != nil {
		t.Fatalf("grade: %v", err)
	}
	if !run.Done() {
		t.Fatalf("expected run done")
	}
	graded, known, total := run.Progress()
	if graded != 2 || known != 1 || total != 2 {
		t.Fatalf("unexpected progress %d/%d/%d", graded, known, total)
	}
	rec, ok, _ := lib.GetProgress(ctx, "dog")
	if !ok || rec.Attempts != 1 || rec.Correct != 0 {
		t.Fatalf("unexpected dog progress %+v", rec)
	}
}

func TestStudyWordsErrors(t *testing.T) {
	ctx := context.Background()
	lib := newTestLibrary(t, testWords())
	if _, err := lib.StudyWords(ctx, StudyReview, ""); !errors.Is(err, ErrNoWordsToStudy) {
		t.Fatalf("expected ErrNoWordsToStudy, got %v", err)
	}
	if _, err := lib.StudyWords(ctx, StudyLevel, "expert"); err == nil {
		t.Fatalf("expected invalid level error")
	}
	if _, err := lib.StudyWords(ctx, StudyWord, "zebra"); !errors.Is(err, ErrUnknownWord) {
		t.Fatalf("expected ErrUnknownWord, got %v", err)
	}
	words, err := lib.StudyWords(ctx, StudyLevel, "Intermediate")
	if err != nil || len(words) != 1 {
		t.Fatalf("unexpected level words %v %v", words, err)
	}
}
