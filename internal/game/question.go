package game

import (
	"time"

	"github.com/verte-zerg/tuivocab/internal/model"
)

// Kind tells the presentation layer how to render a question.
type Kind int

const (
	KindFlashcard Kind = iota
	KindChoice
	KindTyping
	KindPuzzle
	KindShooter
	KindMemory
)

// Question is the material currently on display.
type Question struct {
	Kind  Kind
	Word  model.WordRecord
	Index int
	// Prompt is the text shown to the player.
	Prompt  string
	Options []string
	Letters []rune
}

// Answer is one player input. Fields not used by the active mode are ignored.
type Answer struct {
	// Text is typed text, a chosen option, or a puzzle attempt.
	Text string
	// Knew is the flashcard self-grade.
	Knew bool
	// Card is the memory card to flip.
	Card int
	// Fire shoots the cannon in cannon-aimed shooter modes.
	Fire bool
}

// Outcome reports the effect of one answer.
type Outcome struct {
	Correct bool
	// Pending is set when the input was accepted but not judged yet,
	// such as the first card of a memory pair.
	Pending  bool
	Delta    int
	Score    int
	Finished bool
}

// Verdict is a strategy's judgment of one answer.
type Verdict struct {
	Correct bool
	Pending bool
	Delta   int
}

// FallingWord is a live shooter target.
type FallingWord struct {
	ID       int
	Word     model.WordRecord
	Lane     int // horizontal position in percent
	Age      time.Duration
	Lifetime time.Duration
}

// Fall returns how far the word has fallen, from 0 to 1.
func (f FallingWord) Fall() float64 {
	if f.Lifetime <= 0 {
		return 1
	}
	return min(1, float64(f.Age)/float64(f.Lifetime))
}

// Side marks which language a memory card shows.
type Side int

const (
	SideEnglish Side = iota
	SideVietnamese
)

// Card is one memory board cell.
type Card struct {
	Face    string
	Side    Side
	Pair    int
	FaceUp  bool
	Matched bool
}

// Status is the lifecycle of a session.
type Status int

const (
	StatusIdle Status = iota
	StatusRunning
	StatusFinished
)

func (s Status) String() string {
	switch s {
	case StatusRunning:
		return "running"
	case StatusFinished:
		return "finished"
	default:
		return "idle"
	}
}
