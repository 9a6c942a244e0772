// Package game runs quiz sessions and folds their results into persisted stats.
package game

import (
	"context"
	"fmt"
	"io"
	"time"

	clog "github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/verte-zerg/tuivocab/internal/generator"
	"github.com/verte-zerg/tuivocab/internal/model"
	"github.com/verte-zerg/tuivocab/internal/stats"
)

// WordSource supplies the candidate words of a level.
type WordSource interface {
	GetWords(level model.Level) []model.WordRecord
}

// StatsStore persists aggregates and the leaderboard.
type StatsStore interface {
	Load(ctx context.Context) (model.AggregateStats, error)
	Save(ctx context.Context, agg model.AggregateStats) error
	AddLeaderboardEntry(ctx context.Context, entry model.LeaderboardEntry) error
}

// HistoryRecorder stores one row per committed session.
type HistoryRecorder interface {
	InsertSession(ctx context.Context, rec model.SessionRecord) (int64, error)
}

// Engine owns at most one session at a time. It is not safe for concurrent use;
// callers feed it events from a single goroutine.
type Engine struct {
	words    WordSource
	stats    StatsStore
	history  HistoryRecorder
	registry *Registry
	gen      *generator.Generator
	now      func() time.Time
	logger   *clog.Logger
	level    model.Level
	player   string
	weightFn func([]model.WordRecord) []float64

	session    *Session
	strategy   Strategy
	lastCommit *model.AggregateStats
}

// Option configures an Engine.
type Option func(*Engine)

// WithGenerator sets the random source.
func WithGenerator(g *generator.Generator) Option {
	return func(e *Engine) { e.gen = g }
}

// WithClock sets the time source used for commit dates and history rows.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithLogger sets the engine logger.
func WithLogger(logger *clog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithLevel sets the vocabulary level of new sessions.
func WithLevel(level model.Level) Option {
	return func(e *Engine) { e.level = level }
}

// WithPlayer appends each committed score to the leaderboard under name.
func WithPlayer(name string) Option {
	return func(e *Engine) { e.player = name }
}

// WithHistory records committed sessions.
func WithHistory(h HistoryRecorder) Option {
	return func(e *Engine) { e.history = h }
}

// WithWeights sets per-word draw weights, computed once per session from its pool.
func WithWeights(fn func([]model.WordRecord) []float64) Option {
	return func(e *Engine) { e.weightFn = fn }
}

// WithRegistry replaces the built-in strategies.
func WithRegistry(r *Registry) Option {
	return func(e *Engine) { e.registry = r }
}

// New returns an idle engine.
func New(words WordSource, st StatsStore, opts ...Option) *Engine {
	e := &Engine{
		words:    words,
		stats:    st,
		registry: DefaultRegistry(),
		now:      time.Now,
		logger:   clog.New(io.Discard),
		level:    model.LevelBeginner,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.gen == nil {
		e.gen = generator.New()
	}
	return e
}

// Registry returns the strategies known to the engine.
func (e *Engine) Registry() *Registry {
	return e.registry
}

// Level returns the vocabulary level of new sessions.
func (e *Engine) Level() model.Level {
	return e.level
}

// Start begins a session of mode, abandoning any unfinished one without commit.
// On error the previous session is left untouched.
func (e *Engine) Start(mode model.ModeID) error {
	strategy, ok := e.registry.Lookup(mode)
	if !ok {
		return &InvalidModeError{Mode: mode}
	}
	rules := strategy.Rules()
	pool := e.words.GetWords(e.level)
	s := &Session{
		ID:        uuid.NewString(),
		Mode:      mode,
		Level:     e.level,
		Status:    StatusRunning,
		StartedAt: e.now(),
		Remaining: rules.Duration,
		rules:     rules,
		pool:      pool,
		gen:       e.gen,
		cannon:    cannonStart,
	}
	if e.weightFn != nil {
		s.weights = e.weightFn(pool)
	}
	q, err := strategy.NextQuestion(s)
	if err != nil {
		return fmt.Errorf("failed to start %s: %w", mode, err)
	}
	s.question = q

	if prev := e.session; prev != nil && prev.Status == StatusRunning {
		e.logger.Info("abandoning unfinished session", "session", prev.ID, "mode", prev.Mode, "score", prev.Score)
	}
	e.session = s
	e.strategy = strategy
	e.logger.Debug("session started", "session", s.ID, "mode", mode, "level", e.level, "pool", len(pool))
	return nil
}

// Status returns the lifecycle state of the current session.
func (e *Engine) Status() Status {
	if e.session == nil {
		return StatusIdle
	}
	return e.session.Status
}

// Snapshot returns the session counters; ok is false when idle.
func (e *Engine) Snapshot() (Snapshot, bool) {
	if e.session == nil {
		return Snapshot{}, false
	}
	return e.session.snapshot(), true
}

// Score returns the running score, 0 when idle.
func (e *Engine) Score() int {
	if e.session == nil {
		return 0
	}
	return e.session.Score
}

// Remaining returns the countdown of time-based sessions.
func (e *Engine) Remaining() time.Duration {
	if e.session == nil {
		return 0
	}
	return e.session.Remaining
}

// CurrentQuestion returns the question on display; ok is false unless running.
func (e *Engine) CurrentQuestion() (Question, bool) {
	s := e.running()
	if s == nil {
		return Question{}, false
	}
	q := s.question
	q.Index = s.Index
	return q, true
}

// Submit scores one answer. Malformed input scores as incorrect.
func (e *Engine) Submit(ctx context.Context, a Answer) (Outcome, error) {
	s := e.running()
	if s == nil {
		return Outcome{}, ErrNotRunning
	}
	if s.rules.TurnBased && s.answered {
		return Outcome{}, ErrAlreadyAnswered
	}
	v := e.strategy.Score(s, a)
	if v.Pending {
		return Outcome{Pending: true, Score: s.Score}, nil
	}
	s.Score = max(0, s.Score+v.Delta)
	if v.Correct {
		s.Correct++
	} else {
		s.Incorrect++
	}
	if s.rules.TurnBased {
		s.answered = true
	}
	out := Outcome{Correct: v.Correct, Delta: v.Delta, Score: s.Score}

	if c, ok := e.strategy.(Completer); ok && c.Complete(s) {
		if err := e.commit(ctx, s); err != nil {
			return out, err
		}
		out.Finished = true
		return out, nil
	}
	if s.rules.RollOnAnswer {
		q, err := e.strategy.NextQuestion(s)
		if err != nil {
			return out, fmt.Errorf("failed to draw next question: %w", err)
		}
		s.Index++
		s.question = q
	}
	return out, nil
}

// Advance moves a turn-based session to its next question, finishing after
// SessionLength questions. Unanswered questions are skipped without scoring.
func (e *Engine) Advance(ctx context.Context) error {
	s := e.running()
	if s == nil {
		return ErrNotRunning
	}
	if !s.rules.TurnBased {
		return nil
	}
	s.Index++
	if s.Index >= SessionLength {
		return e.commit(ctx, s)
	}
	q, err := e.strategy.NextQuestion(s)
	if err != nil {
		return fmt.Errorf("failed to draw next question: %w", err)
	}
	s.question = q
	s.answered = false
	s.picked = nil
	return nil
}

// Tick consumes elapsed wall time in time-based sessions. The session
// finishes once the cumulative elapsed time reaches the mode duration.
func (e *Engine) Tick(ctx context.Context, elapsed time.Duration) error {
	s := e.running()
	if s == nil || s.rules.TurnBased || elapsed <= 0 {
		return nil
	}
	if elapsed >= s.Remaining {
		s.Remaining = 0
		return e.commit(ctx, s)
	}
	s.Remaining -= elapsed
	if t, ok := e.strategy.(Ticker); ok {
		t.Tick(s, elapsed)
	}
	return nil
}

// Finish ends the session and commits it. Finishing twice commits once; a
// commit that failed is retried.
func (e *Engine) Finish(ctx context.Context) error {
	if e.session == nil {
		return ErrNotRunning
	}
	if e.session.Status == StatusFinished {
		return nil
	}
	return e.commit(ctx, e.session)
}

// Close discards the session without committing.
func (e *Engine) Close() {
	if s := e.session; s != nil && s.Status == StatusRunning {
		e.logger.Info("closing unfinished session", "session", s.ID, "mode", s.Mode)
	}
	e.session = nil
	e.strategy = nil
}

// LastCommit returns the aggregate written by the most recent commit.
func (e *Engine) LastCommit() (model.AggregateStats, bool) {
	if e.lastCommit == nil {
		return model.AggregateStats{}, false
	}
	return *e.lastCommit, true
}

func (e *Engine) running() *Session {
	if e.session == nil || e.session.Status != StatusRunning {
		return nil
	}
	return e.session
}

// commit folds the session into the aggregate and marks it Finished. The
// session stays Running until Save succeeds, so a failed commit can be
// retried with Finish.
func (e *Engine) commit(ctx context.Context, s *Session) error {
	endedAt := e.now()

	agg, err := e.stats.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load stats: %w", err)
	}
	agg = stats.Fold(agg, s.Mode, s.Score, stats.Today(endedAt))
	if err := e.stats.Save(ctx, agg); err != nil {
		return fmt.Errorf("failed to save stats: %w", err)
	}
	s.Status = StatusFinished
	e.lastCommit = &agg

	if e.player != "" {
		if err := e.stats.AddLeaderboardEntry(ctx, model.LeaderboardEntry{Name: e.player, Score: s.Score}); err != nil {
			return fmt.Errorf("failed to update leaderboard: %w", err)
		}
	}
	if e.history != nil {
		_, err := e.history.InsertSession(ctx, model.SessionRecord{
			SessionID: s.ID,
			Mode:      s.Mode,
			Level:     s.Level,
			Score:     s.Score,
			Correct:   s.Correct,
			Incorrect: s.Incorrect,
			StartedAt: s.StartedAt,
			EndedAt:   endedAt,
		})
		if err != nil {
			e.logger.Error("failed to record session history", "session", s.ID, "err", err)
		}
	}
	e.logger.Info("session committed", "session", s.ID, "mode", s.Mode, "score", s.Score, "streak", agg.Streak)
	return nil
}
