package game

import (
	"slices"

	"github.com/verte-zerg/tuivocab/internal/model"
)

type puzzleStrategy struct{}

func (puzzleStrategy) Mode() model.ModeID { return model.ModePuzzle }

func (puzzleStrategy) Rules() Rules {
	return Rules{TurnBased: true, Reward: 20, Penalty: 5}
}

func (puzzleStrategy) NextQuestion(s *Session) (Question, error) {
	w, err := s.Draw()
	if err != nil {
		return Question{}, err
	}
	s.picked = nil
	return Question{
		Kind:    KindPuzzle,
		Word:    w,
		Prompt:  w.Vietnamese,
		Letters: []rune(s.gen.Scramble(w.English)),
	}, nil
}

// Score checks typed text, falling back to the tiles picked so far.
func (p puzzleStrategy) Score(s *Session, a Answer) Verdict {
	attempt := a.Text
	if attempt == "" {
		attempt = assembled(s)
	}
	return judge(p.Rules(), matches(attempt, s.question.Word.English))
}

func assembled(s *Session) string {
	out := make([]rune, 0, len(s.picked))
	for _, i := range s.picked {
		out = append(out, s.question.Letters[i])
	}
	return string(out)
}

// PickLetter appends tile i to the puzzle answer. Each tile is usable once.
func (e *Engine) PickLetter(i int) bool {
	s := e.running()
	if s == nil || s.question.Kind != KindPuzzle || s.answered {
		return false
	}
	if i < 0 || i >= len(s.question.Letters) || slices.Contains(s.picked, i) {
		return false
	}
	s.picked = append(s.picked, i)
	return true
}

// UndoLetter removes the most recently picked tile.
func (e *Engine) UndoLetter() bool {
	s := e.running()
	if s == nil || len(s.picked) == 0 || s.answered {
		return false
	}
	s.picked = s.picked[:len(s.picked)-1]
	return true
}

// Picked returns the tile indexes in pick order.
func (e *Engine) Picked() []int {
	s := e.running()
	if s == nil {
		return nil
	}
	return slices.Clone(s.picked)
}

// Assembled returns the puzzle answer built from picked tiles.
func (e *Engine) Assembled() string {
	s := e.running()
	if s == nil || s.question.Kind != KindPuzzle {
		return ""
	}
	return assembled(s)
}
