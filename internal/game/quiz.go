package game

import (
	"github.com/verte-zerg/tuivocab/internal/model"
	"github.com/verte-zerg/tuivocab/internal/vocab"
)

const choiceOptions = 4

func matches(input, target string) bool {
	in := vocab.Normalize(input)
	return in != "" && in == vocab.Normalize(target)
}

func judge(rules Rules, correct bool) Verdict {
	if correct {
		return Verdict{Correct: true, Delta: rules.Reward}
	}
	return Verdict{Delta: -rules.Penalty}
}

type flashcardStrategy struct{}

func (flashcardStrategy) Mode() model.ModeID { return model.ModeFlashcard }

func (flashcardStrategy) Rules() Rules {
	return Rules{TurnBased: true, Reward: 10}
}

func (flashcardStrategy) NextQuestion(s *Session) (Question, error) {
	w, err := s.Draw()
	if err != nil {
		return Question{}, err
	}
	s.revealed = false
	return Question{Kind: KindFlashcard, Word: w, Prompt: w.English}, nil
}

// Score trusts the player's self-grade.
func (f flashcardStrategy) Score(_ *Session, a Answer) Verdict {
	return judge(f.Rules(), a.Knew)
}

// choiceStrategy serves multiple choice and speed, which differ only in rules.
type choiceStrategy struct {
	mode  model.ModeID
	rules Rules
}

func (c choiceStrategy) Mode() model.ModeID { return c.mode }

func (c choiceStrategy) Rules() Rules { return c.rules }

func (c choiceStrategy) NextQuestion(s *Session) (Question, error) {
	w, err := s.Draw()
	if err != nil {
		return Question{}, err
	}
	options, err := s.gen.Options(w.English, s.pool, choiceOptions, vocab.Normalize)
	if err != nil {
		return Question{}, err
	}
	return Question{Kind: KindChoice, Word: w, Prompt: w.Vietnamese, Options: options}, nil
}

func (c choiceStrategy) Score(s *Session, a Answer) Verdict {
	return judge(c.rules, matches(a.Text, s.question.Word.English))
}

type typingStrategy struct{}

func (typingStrategy) Mode() model.ModeID { return model.ModeTyping }

func (typingStrategy) Rules() Rules {
	return Rules{TurnBased: true, Reward: 15, Penalty: 3}
}

func (typingStrategy) NextQuestion(s *Session) (Question, error) {
	w, err := s.Draw()
	if err != nil {
		return Question{}, err
	}
	return Question{Kind: KindTyping, Word: w, Prompt: w.Vietnamese}, nil
}

func (t typingStrategy) Score(s *Session, a Answer) Verdict {
	return judge(t.Rules(), matches(a.Text, s.question.Word.English))
}

// Reveal turns the current flashcard to its answer side.
func (e *Engine) Reveal() bool {
	s := e.running()
	if s == nil || s.question.Kind != KindFlashcard {
		return false
	}
	s.revealed = true
	return true
}

// Revealed reports whether the current flashcard shows its answer side.
func (e *Engine) Revealed() bool {
	s := e.running()
	return s != nil && s.revealed
}
