package game

import (
	"slices"
	"time"

	"github.com/verte-zerg/tuivocab/internal/generator"
	"github.com/verte-zerg/tuivocab/internal/model"
	"github.com/verte-zerg/tuivocab/internal/vocab"
)

const memoryPairs = 4

type memoryStrategy struct{}

func (memoryStrategy) Mode() model.ModeID { return model.ModeMemory }

func (memoryStrategy) Rules() Rules {
	return Rules{Duration: 60 * time.Second, Reward: 25}
}

// NextQuestion deals memoryPairs words as English and Vietnamese cards. No two
// cards of one side read the same.
func (memoryStrategy) NextQuestion(s *Session) (Question, error) {
	words, err := s.gen.PickDistinct(s.pool, memoryPairs, vocab.Normalize)
	if err != nil {
		return Question{}, err
	}
	cards := make([]Card, 0, len(words)*2)
	for i, w := range words {
		cards = append(cards,
			Card{Face: w.English, Side: SideEnglish, Pair: i},
			Card{Face: w.Vietnamese, Side: SideVietnamese, Pair: i},
		)
	}
	generator.Shuffle(s.gen, cards)
	s.cards = cards
	s.open = nil
	s.mismatch = nil
	return Question{Kind: KindMemory, Prompt: "Match each English word with its meaning"}, nil
}

// Score flips one card. A mismatched pair stays face up until the next flip.
func (m memoryStrategy) Score(s *Session, a Answer) Verdict {
	for _, j := range s.mismatch {
		s.cards[j].FaceUp = false
	}
	s.mismatch = nil

	i := a.Card
	if i < 0 || i >= len(s.cards) || s.cards[i].Matched || s.cards[i].FaceUp {
		return Verdict{Pending: true}
	}
	s.cards[i].FaceUp = true
	if len(s.open) == 0 {
		s.open = []int{i}
		return Verdict{Pending: true}
	}
	first := s.open[0]
	s.open = nil
	if s.cards[first].Pair == s.cards[i].Pair {
		s.cards[first].Matched = true
		s.cards[i].Matched = true
		return judge(m.Rules(), true)
	}
	s.mismatch = []int{first, i}
	return judge(m.Rules(), false)
}

func (memoryStrategy) Complete(s *Session) bool {
	for _, c := range s.cards {
		if !c.Matched {
			return false
		}
	}
	return len(s.cards) > 0
}

// Cards returns the memory board.
func (e *Engine) Cards() []Card {
	s := e.running()
	if s == nil {
		return nil
	}
	return slices.Clone(s.cards)
}
