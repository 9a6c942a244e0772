package game

import (
	"slices"
	"time"

	"github.com/verte-zerg/tuivocab/internal/generator"
	"github.com/verte-zerg/tuivocab/internal/model"
)

const (
	cannonStart  = 50
	cannonMin    = 10
	cannonMax    = 90
	cannonStep   = 10
	aimTolerance = 10

	laneMin  = 10
	laneSpan = 80
)

type shooterConfig struct {
	mode       model.ModeID
	rules      Rules
	spawnEvery time.Duration
	lifetime   time.Duration
	// aimed shooters fire at the word nearest the cannon instead of matching typed text.
	aimed bool
}

var basicShooter = shooterConfig{
	mode:       model.ModeShooter,
	rules:      Rules{Duration: 60 * time.Second, Reward: 25, Penalty: 5},
	spawnEvery: 2 * time.Second,
	lifetime:   5 * time.Second,
}

var cannonShooter = shooterConfig{
	mode:       model.ModeWordShooter,
	rules:      Rules{Duration: 45 * time.Second, Reward: 30, Penalty: 3},
	spawnEvery: 2500 * time.Millisecond,
	lifetime:   4 * time.Second,
	aimed:      true,
}

type shooterStrategy struct {
	cfg shooterConfig
}

func newShooter(cfg shooterConfig) shooterStrategy {
	return shooterStrategy{cfg: cfg}
}

func (sh shooterStrategy) Mode() model.ModeID { return sh.cfg.mode }

func (sh shooterStrategy) Rules() Rules { return sh.cfg.rules }

// NextQuestion sets up an empty sky. Words start falling one spawn interval in.
func (sh shooterStrategy) NextQuestion(s *Session) (Question, error) {
	if len(s.pool) == 0 {
		return Question{}, &generator.InsufficientVocabularyError{Need: 1, Have: 0}
	}
	s.falling = nil
	s.spawnClock = 0
	prompt := "Type a falling word and press enter"
	if sh.cfg.aimed {
		prompt = "Move the cannon and fire at a word"
	}
	return Question{Kind: KindShooter, Prompt: prompt}, nil
}

// Tick ages live words, drops expired ones, and spawns on a fixed interval.
// Words spawned inside a long tick start with the time left over.
func (sh shooterStrategy) Tick(s *Session, elapsed time.Duration) {
	live := s.falling[:0]
	for _, f := range s.falling {
		f.Age += elapsed
		if f.Age < f.Lifetime {
			live = append(live, f)
		}
	}
	s.falling = live

	s.spawnClock += elapsed
	for s.spawnClock >= sh.cfg.spawnEvery {
		s.spawnClock -= sh.cfg.spawnEvery
		if s.spawnClock >= sh.cfg.lifetime {
			continue
		}
		w, err := s.Draw()
		if err != nil {
			return
		}
		s.nextID++
		s.falling = append(s.falling, FallingWord{
			ID:       s.nextID,
			Word:     w,
			Lane:     laneMin + s.gen.Intn(laneSpan+1),
			Age:      s.spawnClock,
			Lifetime: sh.cfg.lifetime,
		})
	}
}

func (sh shooterStrategy) Score(s *Session, a Answer) Verdict {
	target := -1
	if sh.cfg.aimed {
		target = nearestToCannon(s)
	} else {
		// Oldest match first: it is closest to the ground.
		for i, f := range s.falling {
			if matches(a.Text, f.Word.English) {
				target = i
				break
			}
		}
	}
	if target < 0 {
		return judge(sh.cfg.rules, false)
	}
	s.falling = slices.Delete(s.falling, target, target+1)
	return judge(sh.cfg.rules, true)
}

func nearestToCannon(s *Session) int {
	best, bestDist := -1, aimTolerance+1
	for i, f := range s.falling {
		dist := f.Lane - s.cannon
		if dist < 0 {
			dist = -dist
		}
		if dist < bestDist {
			best, bestDist = i, dist
		}
	}
	return best
}

// Falling returns the live shooter words, oldest first.
func (e *Engine) Falling() []FallingWord {
	s := e.running()
	if s == nil {
		return nil
	}
	return slices.Clone(s.falling)
}

// MoveCannon shifts the cannon one step left (dir < 0) or right (dir > 0)
// and returns its position in percent.
func (e *Engine) MoveCannon(dir int) int {
	s := e.running()
	if s == nil {
		return cannonStart
	}
	switch {
	case dir < 0:
		s.cannon = max(cannonMin, s.cannon-cannonStep)
	case dir > 0:
		s.cannon = min(cannonMax, s.cannon+cannonStep)
	}
	return s.cannon
}

// Cannon returns the cannon position in percent.
func (e *Engine) Cannon() int {
	s := e.running()
	if s == nil {
		return cannonStart
	}
	return s.cannon
}
