package game

import (
	"time"

	"github.com/verte-zerg/tuivocab/internal/generator"
	"github.com/verte-zerg/tuivocab/internal/model"
)

// Session is the state of one game. Strategies mutate it only through the engine.
type Session struct {
	ID        string
	Mode      model.ModeID
	Level     model.Level
	Index     int
	Score     int
	Correct   int
	Incorrect int
	Status    Status
	StartedAt time.Time
	Remaining time.Duration

	rules    Rules
	question Question
	answered bool
	pool     []model.WordRecord
	weights  []float64
	gen      *generator.Generator

	// flashcard
	revealed bool

	// puzzle
	picked []int

	// shooter
	falling    []FallingWord
	nextID     int
	spawnClock time.Duration
	cannon     int

	// memory
	cards    []Card
	open     []int
	mismatch []int
}

// Question returns the question on display.
func (s *Session) Question() Question {
	return s.question
}

// Pool returns the candidate words of the session level.
func (s *Session) Pool() []model.WordRecord {
	return s.pool
}

// Generator returns the session's random source.
func (s *Session) Generator() *generator.Generator {
	return s.gen
}

// Draw picks one candidate, weighted when focus weights are set.
func (s *Session) Draw() (model.WordRecord, error) {
	if len(s.weights) == len(s.pool) {
		return s.gen.PickWeighted(s.pool, s.weights)
	}
	return s.gen.Pick(s.pool)
}

// Snapshot is a read-only copy of the session counters.
type Snapshot struct {
	ID        string
	Mode      model.ModeID
	Level     model.Level
	Index     int
	Length    int
	Score     int
	Correct   int
	Incorrect int
	Status    Status
	Remaining time.Duration
	TurnBased bool
	Answered  bool
	StartedAt time.Time
}

func (s *Session) snapshot() Snapshot {
	length := 0
	if s.rules.TurnBased {
		length = SessionLength
	}
	return Snapshot{
		ID:        s.ID,
		Mode:      s.Mode,
		Level:     s.Level,
		Index:     s.Index,
		Length:    length,
		Score:     s.Score,
		Correct:   s.Correct,
		Incorrect: s.Incorrect,
		Status:    s.Status,
		Remaining: s.Remaining,
		TurnBased: s.rules.TurnBased,
		Answered:  s.answered,
		StartedAt: s.StartedAt,
	}
}
