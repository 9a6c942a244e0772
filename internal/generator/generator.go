// Package generator builds randomized quiz material.
package generator

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/verte-zerg/tuivocab/internal/model"
)

// ErrInsufficientVocabulary reports a word pool too small for the requested draw.
var ErrInsufficientVocabulary = errors.New("insufficient vocabulary")

// InsufficientVocabularyError carries the pool size that failed a draw.
type InsufficientVocabularyError struct {
	Need int
	Have int
}

func (e *InsufficientVocabularyError) Error() string {
	return fmt.Sprintf("insufficient vocabulary: need %d distinct words, have %d", e.Need, e.Have)
}

func (e *InsufficientVocabularyError) Unwrap() error {
	return ErrInsufficientVocabulary
}

// Generator produces randomized draws, options, and scrambles.
type Generator struct {
	rnd *rand.Rand
}

// New returns a Generator seeded with the current time.
func New() *Generator {
	return NewWithSeed(time.Now().UnixNano())
}

// NewWithSeed returns a deterministic Generator.
func NewWithSeed(seed int64) *Generator {
	return &Generator{rnd: rand.New(rand.NewSource(seed))}
}

// Intn returns a uniform int in [0, n).
func (g *Generator) Intn(n int) int {
	return g.rnd.Intn(n)
}

// Pick selects one word uniformly.
func (g *Generator) Pick(words []model.WordRecord) (model.WordRecord, error) {
	if len(words) == 0 {
		return model.WordRecord{}, &InsufficientVocabularyError{Need: 1, Have: 0}
	}
	return words[g.rnd.Intn(len(words))], nil
}

// PickWeighted selects one word with probability proportional to its weight.
// Missing or non-positive weights fall back to a uniform pick.
func (g *Generator) PickWeighted(words []model.WordRecord, weights []float64) (model.WordRecord, error) {
	if len(words) == 0 {
		return model.WordRecord{}, &InsufficientVocabularyError{Need: 1, Have: 0}
	}
	if len(weights) != len(words) {
		return g.Pick(words)
	}
	total := 0.0
	for _, w := range weights {
		if w > 0 {
			total += w
		}
	}
	if total <= 0 {
		return g.Pick(words)
	}
	r := g.rnd.Float64() * total
	acc := 0.0
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		acc += w
		if r < acc {
			return words[i], nil
		}
	}
	return words[len(words)-1], nil
}

// Key maps text to the form compared for equality. A nil Key compares raw text.
type Key func(string) string

func (k Key) of(s string) string {
	if k == nil {
		return s
	}
	return k(s)
}

// PickDistinct selects n words whose English texts differ under key, as do
// their non-empty Vietnamese texts.
func (g *Generator) PickDistinct(words []model.WordRecord, n int, key Key) ([]model.WordRecord, error) {
	unique := distinctWords(words, key)
	if len(unique) < n {
		return nil, &InsufficientVocabularyError{Need: n, Have: len(unique)}
	}
	Shuffle(g, unique)
	return unique[:n], nil
}

// Options returns correct plus count-1 distractors drawn from pool, shuffled.
// Distractors never equal the correct answer or each other under key.
func (g *Generator) Options(correct string, pool []model.WordRecord, count int, key Key) ([]string, error) {
	candidates := make([]string, 0, len(pool))
	seen := map[string]struct{}{key.of(correct): {}}
	for _, w := range pool {
		k := key.of(w.English)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		candidates = append(candidates, w.English)
	}
	if len(candidates)+1 < count {
		return nil, &InsufficientVocabularyError{Need: count, Have: len(candidates) + 1}
	}

	options := []string{correct}
	taken := make(map[int]struct{}, count)
	for len(options) < count {
		i := g.rnd.Intn(len(candidates))
		if _, ok := taken[i]; ok {
			continue
		}
		taken[i] = struct{}{}
		options = append(options, candidates[i])
	}
	Shuffle(g, options)
	return options, nil
}

// Scramble returns a uniformly random permutation of word's letters that differs
// from word whenever such a permutation exists.
func (g *Generator) Scramble(word string) string {
	runes := []rune(word)
	if len(runes) < 2 || allSame(runes) {
		return word
	}
	out := make([]rune, len(runes))
	for {
		copy(out, runes)
		Shuffle(g, out)
		if string(out) != word {
			return string(out)
		}
	}
}

// Shuffle permutes items in place with Fisher-Yates.
func Shuffle[T any](g *Generator, items []T) {
	for i := len(items) - 1; i > 0; i-- {
		j := g.rnd.Intn(i + 1)
		items[i], items[j] = items[j], items[i]
	}
}

func distinctWords(words []model.WordRecord, key Key) []model.WordRecord {
	english := make(map[string]struct{}, len(words))
	vietnamese := make(map[string]struct{}, len(words))
	out := make([]model.WordRecord, 0, len(words))
	for _, w := range words {
		en := key.of(w.English)
		if _, ok := english[en]; ok {
			continue
		}
		vi := key.of(w.Vietnamese)
		if vi != "" {
			if _, ok := vietnamese[vi]; ok {
				continue
			}
			vietnamese[vi] = struct{}{}
		}
		english[en] = struct{}{}
		out = append(out, w)
	}
	return out
}

func allSame(runes []rune) bool {
	for _, r := range runes[1:] {
		if r != runes[0] {
			return false
		}
	}
	return true
}
