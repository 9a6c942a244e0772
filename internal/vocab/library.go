// Package vocab serves vocabulary, study progress, and favorites.
package vocab

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"time"

	clog "github.com/charmbracelet/log"

	"github.com/verte-zerg/tuivocab/internal/model"
	"github.com/verte-zerg/tuivocab/internal/store"
	"github.com/verte-zerg/tuivocab/internal/wordlist"
)

// Provider supplies words and consumes study feedback.
type Provider interface {
	GetWords(level model.Level) []model.WordRecord
	GetProgress(ctx context.Context, english string) (model.ProgressRecord, bool, error)
	SaveProgress(ctx context.Context, english string, correct bool) error
	IsFavorite(ctx context.Context, english string) (bool, error)
	AddToFavorites(ctx context.Context, english string) error
	RemoveFromFavorites(ctx context.Context, english string) error
}

// Backend is the persistence capability behind a Library.
type Backend interface {
	GetProgress(ctx context.Context, english string) (model.ProgressRecord, error)
	SaveProgress(ctx context.Context, english string, correct bool, at time.Time) error
	ListProgress(ctx context.Context) (map[string]model.ProgressRecord, error)
	AddFavorite(ctx context.Context, english string, at time.Time) error
	RemoveFavorite(ctx context.Context, english string) error
	ListFavorites(ctx context.Context) ([]string, error)
}

// ErrUnknownWord is returned for words outside the corpus.
var ErrUnknownWord = errors.New("unknown word")

// Library implements Provider over an in-memory corpus and a Backend.
type Library struct {
	words   []model.WordRecord
	byLevel map[model.Level][]model.WordRecord
	known   map[string]model.WordRecord
	backend Backend
	now     func() time.Time
	logger  *clog.Logger
}

// Option configures a Library.
type Option func(*Library)

// WithClock overrides the study timestamp source.
func WithClock(now func() time.Time) Option {
	return func(l *Library) { l.now = now }
}

// WithLogger sets the library logger.
func WithLogger(logger *clog.Logger) Option {
	return func(l *Library) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// NewLibrary indexes words. The first record wins when an English word
// appears under several topics.
func NewLibrary(words []model.WordRecord, backend Backend, opts ...Option) *Library {
	lib := &Library{
		words:   words,
		byLevel: map[model.Level][]model.WordRecord{},
		known:   map[string]model.WordRecord{},
		backend: backend,
		now:     time.Now,
		logger:  clog.New(io.Discard),
	}
	for _, opt := range opts {
		opt(lib)
	}
	for _, w := range words {
		lib.byLevel[w.Level] = append(lib.byLevel[w.Level], w)
		if _, ok := lib.known[w.English]; !ok {
			lib.known[w.English] = w
		}
	}
	return lib
}

// Words returns the whole corpus in corpus order.
func (l *Library) Words() []model.WordRecord {
	return l.words
}

// GetWords returns the words of one level.
func (l *Library) GetWords(level model.Level) []model.WordRecord {
	return l.byLevel[level]
}

// Lookup finds a corpus word by English text.
func (l *Library) Lookup(english string) (model.WordRecord, bool) {
	w, ok := l.known[english]
	return w, ok
}

// GetProgress returns progress for a word; ok is false if never studied.
func (l *Library) GetProgress(ctx context.Context, english string) (model.ProgressRecord, bool, error) {
	rec, err := l.backend.GetProgress(ctx, english)
	if errors.Is(err, store.ErrNotFound) {
		return model.ProgressRecord{}, false, nil
	}
	if err != nil {
		return model.ProgressRecord{}, false, fmt.Errorf("failed to load progress for %q: %w", english, err)
	}
	return rec, true, nil
}

// SaveProgress records one study attempt stamped with the current time.
func (l *Library) SaveProgress(ctx context.Context, english string, correct bool) error {
	if _, ok := l.known[english]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownWord, english)
	}
	if err := l.backend.SaveProgress(ctx, english, correct, l.now()); err != nil {
		return fmt.Errorf("failed to save progress for %q: %w", english, err)
	}
	l.logger.Debug("progress saved", "word", english, "correct", correct)
	return nil
}

// IsFavorite reports whether a word is marked favorite.
func (l *Library) IsFavorite(ctx context.Context, english string) (bool, error) {
	favs, err := l.favoriteSet(ctx)
	if err != nil {
		return false, err
	}
	_, ok := favs[english]
	return ok, nil
}

// AddToFavorites marks a corpus word as favorite.
func (l *Library) AddToFavorites(ctx context.Context, english string) error {
	if _, ok := l.known[english]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownWord, english)
	}
	if err := l.backend.AddFavorite(ctx, english, l.now()); err != nil {
		return fmt.Errorf("failed to add favorite %q: %w", english, err)
	}
	return nil
}

// RemoveFromFavorites clears a favorite mark. Removing a non-favorite is a no-op.
func (l *Library) RemoveFromFavorites(ctx context.Context, english string) error {
	if err := l.backend.RemoveFavorite(ctx, english); err != nil {
		return fmt.Errorf("failed to remove favorite %q: %w", english, err)
	}
	return nil
}

// Favorites returns favorite corpus words in the order they were added.
func (l *Library) Favorites(ctx context.Context) ([]model.WordRecord, error) {
	names, err := l.backend.ListFavorites(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}
	out := make([]model.WordRecord, 0, len(names))
	for _, name := range names {
		w, ok := l.known[name]
		if !ok {
			l.logger.Warn("favorite not in corpus", "word", name)
			continue
		}
		out = append(out, w)
	}
	return out, nil
}

// Progress returns every progress record keyed by English text.
func (l *Library) Progress(ctx context.Context) (map[string]model.ProgressRecord, error) {
	progress, err := l.backend.ListProgress(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list progress: %w", err)
	}
	return progress, nil
}

// Topics returns the distinct topics of a level, sorted. An empty level means all.
func (l *Library) Topics(level model.Level) []string {
	seen := map[string]struct{}{}
	var topics []string
	for _, w := range wordlist.Apply(l.words, wordlist.ByLevel(level)) {
		if _, ok := seen[w.Topic]; ok {
			continue
		}
		seen[w.Topic] = struct{}{}
		topics = append(topics, w.Topic)
	}
	sort.Strings(topics)
	return topics
}

func (l *Library) favoriteSet(ctx context.Context) (map[string]struct{}, error) {
	names, err := l.backend.ListFavorites(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}
	set := make(map[string]struct{}, len(names))
	for _, name := range names {
		set[name] = struct{}{}
	}
	return set, nil
}
