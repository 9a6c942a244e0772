package vocab

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"

	"github.com/verte-zerg/tuivocab/internal/model"
	"github.com/verte-zerg/tuivocab/internal/wordlist"
)

// PageSize is the number of entries per browser page.
const PageSize = 12

// ReviewThreshold is the accuracy below which a studied word needs review.
const ReviewThreshold = 0.7

// SortKey orders browser results.
type SortKey string

const (
	SortAlphabetical SortKey = "alphabetical"
	SortAccuracy     SortKey = "accuracy"
	SortRecent       SortKey = "recent"
	SortFavorites    SortKey = "favorites"
)

// SortKeys lists the supported orderings.
var SortKeys = []SortKey{SortAlphabetical, SortAccuracy, SortRecent, SortFavorites}

// Query selects a page of the vocabulary browser.
type Query struct {
	Level  model.Level // empty means all levels
	Topic  string
	Search string
	Sort   SortKey
	Page   int // 1-based
}

// Entry is one browser row.
type Entry struct {
	Word     model.WordRecord
	Progress model.ProgressRecord
	Studied  bool
	Favorite bool
}

// Page is one page of browser results.
type Page struct {
	Entries    []Entry
	Page       int
	TotalPages int
	Total      int
}

// Statistics summarizes the corpus and study progress.
type Statistics struct {
	TotalWords      int
	TotalTopics     int
	FavoritesCount  int
	OverallAccuracy int // percent, rounded
	WordsToReview   int
}

// Normalize folds case and composes diacritics so equivalent spellings compare equal.
func Normalize(s string) string {
	return norm.NFC.String(cases.Fold().String(strings.TrimSpace(s)))
}

// BySearch keeps words whose English or Vietnamese text contains needle.
func BySearch(needle string) wordlist.FilterFunc {
	needle = Normalize(needle)
	if needle == "" {
		return func(model.WordRecord) bool { return true }
	}
	return func(w model.WordRecord) bool {
		return strings.Contains(Normalize(w.English), needle) ||
			strings.Contains(Normalize(w.Vietnamese), needle)
	}
}

// Browse filters, sorts, and paginates the corpus.
func (l *Library) Browse(ctx context.Context, q Query) (Page, error) {
	switch q.Sort {
	case "", SortAlphabetical, SortAccuracy, SortRecent, SortFavorites:
	default:
		return Page{}, fmt.Errorf("unknown sort %q", q.Sort)
	}
	progress, err := l.Progress(ctx)
	if err != nil {
		return Page{}, err
	}
	favs, err := l.favoriteSet(ctx)
	if err != nil {
		return Page{}, err
	}

	words := wordlist.Apply(l.words, wordlist.ByLevel(q.Level), wordlist.ByTopic(q.Topic), BySearch(q.Search))
	entries := make([]Entry, len(words))
	for i, w := range words {
		rec, studied := progress[w.English]
		_, fav := favs[w.English]
		entries[i] = Entry{Word: w, Progress: rec, Studied: studied, Favorite: fav}
	}
	sortEntries(entries, q.Sort)

	total := len(entries)
	pages := max(1, (total+PageSize-1)/PageSize)
	page := min(max(q.Page, 1), pages)
	start := (page - 1) * PageSize
	end := min(start+PageSize, total)
	return Page{
		Entries:    entries[start:end],
		Page:       page,
		TotalPages: pages,
		Total:      total,
	}, nil
}

func sortEntries(entries []Entry, key SortKey) {
	var less func(a, b Entry) bool
	switch key {
	case SortAlphabetical:
		less = func(a, b Entry) bool { return Normalize(a.Word.English) < Normalize(b.Word.English) }
	case SortAccuracy:
		less = func(a, b Entry) bool { return a.Progress.Accuracy() > b.Progress.Accuracy() }
	case SortRecent:
		less = func(a, b Entry) bool { return a.Progress.LastStudied.After(b.Progress.LastStudied) }
	case SortFavorites:
		less = func(a, b Entry) bool { return a.Favorite && !b.Favorite }
	default:
		return
	}
	sort.SliceStable(entries, func(i, j int) bool { return less(entries[i], entries[j]) })
}

// WordsToReview returns studied words below ReviewThreshold, lowest accuracy first.
func (l *Library) WordsToReview(ctx context.Context) ([]model.WordRecord, error) {
	progress, err := l.Progress(ctx)
	if err != nil {
		return nil, err
	}
	type item struct {
		word model.WordRecord
		acc  float64
	}
	var items []item
	for english, rec := range progress {
		w, ok := l.known[english]
		if !ok || rec.Attempts == 0 || rec.Accuracy() >= ReviewThreshold {
			continue
		}
		items = append(items, item{word: w, acc: rec.Accuracy()})
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].acc == items[j].acc {
			return items[i].word.English < items[j].word.English
		}
		return items[i].acc < items[j].acc
	})
	out := make([]model.WordRecord, len(items))
	for i, it := range items {
		out[i] = it.word
	}
	return out, nil
}

// Statistics computes corpus and progress totals.
func (l *Library) Statistics(ctx context.Context) (Statistics, error) {
	progress, err := l.Progress(ctx)
	if err != nil {
		return Statistics{}, err
	}
	favs, err := l.favoriteSet(ctx)
	if err != nil {
		return Statistics{}, err
	}
	review, err := l.WordsToReview(ctx)
	if err != nil {
		return Statistics{}, err
	}
	var attempts, correct int
	for _, rec := range progress {
		attempts += rec.Attempts
		correct += rec.Correct
	}
	accuracy := 0
	if attempts > 0 {
		accuracy = int(math.Round(float64(correct) / float64(attempts) * 100))
	}
	return Statistics{
		TotalWords:      len(l.words),
		TotalTopics:     len(l.Topics("")),
		FavoritesCount:  len(favs),
		OverallAccuracy: accuracy,
		WordsToReview:   len(review),
	}, nil
}
