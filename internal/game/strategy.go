package game

import (
	"fmt"
	"time"

	"github.com/verte-zerg/tuivocab/internal/model"
)

// SessionLength is the question count of every turn-based mode.
const SessionLength = 10

// Rules are the static parameters of a mode.
type Rules struct {
	TurnBased bool
	// Duration bounds time-based modes.
	Duration time.Duration
	Reward   int
	Penalty  int
	// RollOnAnswer draws a new question right after each answer.
	RollOnAnswer bool
}

// Strategy generates and scores questions for one mode.
type Strategy interface {
	Mode() model.ModeID
	Rules() Rules
	NextQuestion(s *Session) (Question, error)
	Score(s *Session, a Answer) Verdict
}

// Ticker is implemented by strategies with time-driven state.
type Ticker interface {
	Tick(s *Session, elapsed time.Duration)
}

// Completer is implemented by strategies that can end before their time runs out.
type Completer interface {
	Complete(s *Session) bool
}

// Registry maps mode IDs to strategies.
type Registry struct {
	strategies map[model.ModeID]Strategy
	order      []model.ModeID
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{strategies: map[model.ModeID]Strategy{}}
}

// Register adds or replaces the strategy for its mode.
func (r *Registry) Register(s Strategy) {
	if _, ok := r.strategies[s.Mode()]; !ok {
		r.order = append(r.order, s.Mode())
	}
	r.strategies[s.Mode()] = s
}

// Lookup returns the strategy for mode.
func (r *Registry) Lookup(mode model.ModeID) (Strategy, bool) {
	s, ok := r.strategies[mode]
	return s, ok
}

// Modes lists registered modes in registration order.
func (r *Registry) Modes() []model.ModeID {
	out := make([]model.ModeID, len(r.order))
	copy(out, r.order)
	return out
}

// DefaultRegistry registers every built-in mode.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(flashcardStrategy{})
	r.Register(choiceStrategy{mode: model.ModeMultipleChoice, rules: Rules{TurnBased: true, Reward: 10, Penalty: 5}})
	r.Register(typingStrategy{})
	r.Register(choiceStrategy{mode: model.ModeSpeed, rules: Rules{Duration: 30 * time.Second, Reward: 20, Penalty: 10, RollOnAnswer: true}})
	r.Register(newShooter(basicShooter))
	r.Register(puzzleStrategy{})
	r.Register(memoryStrategy{})
	r.Register(newShooter(cannonShooter))
	return r
}

// Group is a difficulty bucket of modes shown together in menus.
type Group string

const (
	GroupAll          Group = "all"
	GroupBeginner     Group = "beginner"
	GroupIntermediate Group = "intermediate"
	GroupAdvanced     Group = "advanced"
)

// Groups lists the menu groups.
var Groups = []Group{GroupAll, GroupBeginner, GroupIntermediate, GroupAdvanced}

var groupModes = map[Group][]model.ModeID{
	GroupBeginner:     {model.ModeFlashcard, model.ModeMultipleChoice, model.ModeTyping},
	GroupIntermediate: {model.ModeWordShooter, model.ModePuzzle, model.ModeMemory},
	GroupAdvanced:     {model.ModeSpeed},
}

// ModesForGroup filters the registered modes by group, keeping registry order.
func (r *Registry) ModesForGroup(g Group) ([]model.ModeID, error) {
	if g == "" || g == GroupAll {
		return r.Modes(), nil
	}
	members, ok := groupModes[g]
	if !ok {
		return nil, fmt.Errorf("unknown group %q", g)
	}
	in := map[model.ModeID]bool{}
	for _, m := range members {
		in[m] = true
	}
	var out []model.ModeID
	for _, m := range r.order {
		if in[m] {
			out = append(out, m)
		}
	}
	return out, nil
}

// ModesForGroup filters the built-in modes by group.
func ModesForGroup(g Group) ([]model.ModeID, error) {
	return DefaultRegistry().ModesForGroup(g)
}
