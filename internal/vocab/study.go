package vocab

import (
	"context"
	"errors"
	"fmt"

	"github.com/verte-zerg/tuivocab/internal/model"
	"github.com/verte-zerg/tuivocab/internal/wordlist"
)

// StudyKind selects the word list of a study run.
type StudyKind string

const (
	StudyReview    StudyKind = "review"
	StudyFavorites StudyKind = "favorites"
	StudyLevel     StudyKind = "level"
	StudyTopic     StudyKind = "topic"
	StudyWord      StudyKind = "word"
)

// StudyKinds lists the supported study lists.
var StudyKinds = []StudyKind{StudyReview, StudyFavorites, StudyLevel, StudyTopic, StudyWord}

// ErrNoWordsToStudy is returned when a study list is empty.
var ErrNoWordsToStudy = errors.New("no words to study")

// StudyWords resolves a study list. arg names the level, topic, or word
// for the kinds that need one.
func (l *Library) StudyWords(ctx context.Context, kind StudyKind, arg string) ([]model.WordRecord, error) {
	var words []model.WordRecord
	switch kind {
	case StudyReview:
		review, err := l.WordsToReview(ctx)
		if err != nil {
			return nil, err
		}
		words = review
	case StudyFavorites:
		favs, err := l.Favorites(ctx)
		if err != nil {
			return nil, err
		}
		words = favs
	case StudyLevel:
		level, ok := model.ParseLevel(arg)
		if !ok {
			return nil, fmt.Errorf("invalid level %q", arg)
		}
		words = l.GetWords(level)
	case StudyTopic:
		if arg == "" {
			return nil, errors.New("topic is required")
		}
		words = wordlist.Apply(l.words, wordlist.ByTopic(arg))
	case StudyWord:
		w, ok := l.Lookup(arg)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownWord, arg)
		}
		words = []model.WordRecord{w}
	default:
		return nil, fmt.Errorf("unknown study list %q", kind)
	}
	if len(words) == 0 {
		return nil, ErrNoWordsToStudy
	}
	return words, nil
}

// StudyRun walks a word list one card at a time: reveal, then self-grade.
// It records progress only and never touches game aggregates.
type StudyRun struct {
	provider Provider
	words    []model.WordRecord
	index    int
	revealed bool
	correct  int
}

// NewStudyRun starts a run over words.
func NewStudyRun(provider Provider, words []model.WordRecord) *StudyRun {
	return &StudyRun{provider: provider, words: words}
}

// Current returns the card on display; ok is false once the run is done.
func (r *StudyRun) Current() (model.WordRecord, bool) {
	if r.Done() {
		return model.WordRecord{}, false
	}
	return r.words[r.index], true
}

// Reveal shows the answer side of the current card.
func (r *StudyRun) Reveal() {
	if !r.Done() {
		r.revealed = true
	}
}

// Revealed reports whether the current card shows its answer.
func (r *StudyRun) Revealed() bool {
	return r.revealed
}

// Grade records self-assessed recall for the current card and moves on.
// Grading before Reveal is rejected.
func (r *StudyRun) Grade(ctx context.Context, knew bool) error {
	if r.Done() {
		return errors.New("study run finished")
	}
	if !r.revealed {
		return errors.New("reveal the card before grading")
	}
	if err := r.provider.SaveProgress(ctx, r.words[r.index].English, knew); err != nil {
		return err
	}
	if knew {
		r.correct++
	}
	r.index++
	r.revealed = false
	return nil
}

// Done reports whether every card was graded.
func (r *StudyRun) Done() bool {
	return r.index >= len(r.words)
}

// Progress returns graded cards, cards known, and total cards.
func (r *StudyRun) Progress() (graded, known, total int) {
	return r.index, r.correct, len(r.words)
}
