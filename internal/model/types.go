// Package model defines shared data structures.
package model

import (
	"strings"
	"time"
)

// Level is a vocabulary difficulty tier.
type Level string

const (
	LevelBeginner     Level = "beginner"
	LevelIntermediate Level = "intermediate"
	LevelAdvanced     Level = "advanced"
)

// Levels lists every level in ascending difficulty.
var Levels = []Level{LevelBeginner, LevelIntermediate, LevelAdvanced}

// ParseLevel normalizes a raw level name. ok is false for unknown values.
func ParseLevel(raw string) (Level, bool) {
	switch Level(strings.ToLower(strings.TrimSpace(raw))) {
	case LevelBeginner:
		return LevelBeginner, true
	case LevelIntermediate:
		return LevelIntermediate, true
	case LevelAdvanced:
		return LevelAdvanced, true
	default:
		return "", false
	}
}

// ModeID names a minigame rule set.
type ModeID string

const (
	ModeFlashcard      ModeID = "flashcard"
	ModeMultipleChoice ModeID = "multiple-choice"
	ModeTyping         ModeID = "typing"
	ModeSpeed          ModeID = "speed"
	ModeShooter        ModeID = "shooter"
	ModePuzzle         ModeID = "puzzle"
	ModeMemory         ModeID = "memory"
	ModeWordShooter    ModeID = "word-shooter"
)

// Config defines game settings resolved from flags and the config file.
type Config struct {
	Level      string  `validate:"required,oneof=beginner intermediate advanced"`
	Player     string  `validate:"max=32"`
	FocusWeak  bool
	WeakTop    int     `validate:"gte=0"`
	WeakFactor float64 `validate:"gte=0"`
	Seed       int64
	CorpusPath string
}

// StatsConfig defines filters and options for stats output.
type StatsConfig struct {
	Mode        ModeID
	Since       *time.Time
	Last        int
	CurveWindow int
}

// WordRecord is one English-Vietnamese vocabulary entry.
type WordRecord struct {
	English       string `yaml:"english"`
	Vietnamese    string `yaml:"vietnamese"`
	Pronunciation string `yaml:"pronunciation"`
	Example       string `yaml:"example"`
	Level         Level  `yaml:"-"`
	Topic         string `yaml:"-"`
}

// ProgressRecord tracks study feedback for one word, keyed by English text.
type ProgressRecord struct {
	English     string
	Attempts    int
	Correct     int
	LastStudied time.Time
}

// Accuracy returns correct/attempts, or 0 when the word was never studied.
func (p ProgressRecord) Accuracy() float64 {
	if p.Attempts <= 0 {
		return 0
	}
	return float64(p.Correct) / float64(p.Attempts)
}

// GameStat holds per-mode aggregates.
type GameStat struct {
	HighScore int `json:"highScore"`
	Plays     int `json:"plays"`
}

// AggregateStats is the durable cross-session score record.
type AggregateStats struct {
	TotalScore   int                 `json:"totalScore"`
	GamesPlayed  int                 `json:"gamesPlayed"`
	Streak       int                 `json:"streak"`
	LastPlayDate *string             `json:"lastPlayDate"`
	GameStats    map[ModeID]GameStat `json:"gameStats"`
}

// Stat returns the aggregate for a mode, zero-valued when the mode was never played.
func (a AggregateStats) Stat(mode ModeID) GameStat {
	if a.GameStats == nil {
		return GameStat{}
	}
	return a.GameStats[mode]
}

// LeaderboardEntry is one recorded score.
type LeaderboardEntry struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
}

// SessionRecord captures a committed game session for history reporting.
type SessionRecord struct {
	SessionID string
	Mode      ModeID
	Level     Level
	Score     int
	Correct   int
	Incorrect int
	StartedAt time.Time
	EndedAt   time.Time
}

// SessionAggregate summarizes a stored session for reporting.
type SessionAggregate struct {
	ID         int64
	SessionID  string
	Mode       ModeID
	Score      int
	Correct    int
	Incorrect  int
	EndedAt    time.Time
	DurationMs int64
}
