package stats

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	clog "github.com/charmbracelet/log"

	"github.com/verte-zerg/tuivocab/internal/model"
	"github.com/verte-zerg/tuivocab/internal/store"
)

const (
	// AggregateKey holds the serialized AggregateStats record.
	AggregateKey = "gameData"
	// LeaderboardKey holds the serialized leaderboard list.
	LeaderboardKey = "leaderboard"

	dateLayout = "2006-01-02"
)

// ErrCorruptState reports a persisted record that failed to parse.
var ErrCorruptState = errors.New("corrupt persisted state")

// CorruptStateError names the record that failed to parse.
type CorruptStateError struct {
	Key string
	Err error
}

func (e *CorruptStateError) Error() string {
	return fmt.Sprintf("corrupt persisted state under %q: %v", e.Key, e.Err)
}

func (e *CorruptStateError) Unwrap() []error {
	return []error{ErrCorruptState, e.Err}
}

// KV is the key-value capability backing persisted stats.
// Get returns store.ErrNotFound for absent keys.
type KV interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}

// Store persists aggregate stats and the leaderboard as two JSON records.
type Store struct {
	kv     KV
	logger *clog.Logger
}

// NewStore wraps kv. A nil logger discards recovery warnings.
func NewStore(kv KV, logger *clog.Logger) *Store {
	if logger == nil {
		logger = clog.New(io.Discard)
	}
	return &Store{kv: kv, logger: logger}
}

// DefaultAggregate returns zeroed counters with an empty per-mode map.
func DefaultAggregate() model.AggregateStats {
	return model.AggregateStats{GameStats: map[model.ModeID]model.GameStat{}}
}

// Load returns the persisted aggregate, or defaults when absent or corrupt.
// Corrupt records are logged and replaced in memory only.
func (s *Store) Load(ctx context.Context) (model.AggregateStats, error) {
	raw, err := s.kv.Get(ctx, AggregateKey)
	if errors.Is(err, store.ErrNotFound) {
		return DefaultAggregate(), nil
	}
	if err != nil {
		return model.AggregateStats{}, fmt.Errorf("failed to read aggregate stats: %w", err)
	}
	agg, err := decodeAggregate(raw)
	if err != nil {
		s.logger.Warn("resetting aggregate stats", "err", &CorruptStateError{Key: AggregateKey, Err: err})
		return DefaultAggregate(), nil
	}
	return agg, nil
}

// Save overwrites the persisted aggregate.
func (s *Store) Save(ctx context.Context, agg model.AggregateStats) error {
	if agg.GameStats == nil {
		agg.GameStats = map[model.ModeID]model.GameStat{}
	}
	data, err := json.Marshal(agg)
	if err != nil {
		return fmt.Errorf("failed to encode aggregate stats: %w", err)
	}
	if err := s.kv.Set(ctx, AggregateKey, string(data)); err != nil {
		return fmt.Errorf("failed to write aggregate stats: %w", err)
	}
	return nil
}

// LoadLeaderboard returns entries in insertion order.
func (s *Store) LoadLeaderboard(ctx context.Context) ([]model.LeaderboardEntry, error) {
	raw, err := s.kv.Get(ctx, LeaderboardKey)
	if errors.Is(err, store.ErrNotFound) {
		return []model.LeaderboardEntry{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read leaderboard: %w", err)
	}
	var entries []model.LeaderboardEntry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		s.logger.Warn("resetting leaderboard", "err", &CorruptStateError{Key: LeaderboardKey, Err: err})
		return []model.LeaderboardEntry{}, nil
	}
	if entries == nil {
		entries = []model.LeaderboardEntry{}
	}
	return entries, nil
}

// SaveLeaderboard overwrites the persisted leaderboard.
func (s *Store) SaveLeaderboard(ctx context.Context, entries []model.LeaderboardEntry) error {
	if entries == nil {
		entries = []model.LeaderboardEntry{}
	}
	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("failed to encode leaderboard: %w", err)
	}
	if err := s.kv.Set(ctx, LeaderboardKey, string(data)); err != nil {
		return fmt.Errorf("failed to write leaderboard: %w", err)
	}
	return nil
}

// AddLeaderboardEntry appends one entry and writes the list back.
func (s *Store) AddLeaderboardEntry(ctx context.Context, entry model.LeaderboardEntry) error {
	entries, err := s.LoadLeaderboard(ctx)
	if err != nil {
		return err
	}
	return s.SaveLeaderboard(ctx, append(entries, entry))
}

func decodeAggregate(raw string) (model.AggregateStats, error) {
	var agg model.AggregateStats
	if err := json.Unmarshal([]byte(raw), &agg); err != nil {
		return model.AggregateStats{}, err
	}
	if agg.TotalScore < 0 || agg.GamesPlayed < 0 || agg.Streak < 0 {
		return model.AggregateStats{}, errors.New("negative counter")
	}
	if agg.LastPlayDate != nil {
		if _, err := time.Parse(dateLayout, *agg.LastPlayDate); err != nil {
			return model.AggregateStats{}, fmt.Errorf("invalid lastPlayDate: %w", err)
		}
	}
	if agg.GameStats == nil {
		agg.GameStats = map[model.ModeID]model.GameStat{}
	}
	return agg, nil
}

// Today formats t as the calendar date used for streak tracking.
func Today(t time.Time) string {
	return t.Format(dateLayout)
}

// Fold returns agg with one finished session of mode applied.
// The streak grows at most once per calendar day.
func Fold(agg model.AggregateStats, mode model.ModeID, score int, today string) model.AggregateStats {
	out := agg
	out.GameStats = make(map[model.ModeID]model.GameStat, len(agg.GameStats)+1)
	for k, v := range agg.GameStats {
		out.GameStats[k] = v
	}
	if out.LastPlayDate == nil || *out.LastPlayDate != today {
		out.Streak++
		day := today
		out.LastPlayDate = &day
	}
	out.TotalScore += score
	out.GamesPlayed++
	stat := out.GameStats[mode]
	stat.Plays++
	if score > stat.HighScore {
		stat.HighScore = score
	}
	out.GameStats[mode] = stat
	return out
}

// Ranked returns entries sorted by descending score, ties in insertion order.
func Ranked(entries []model.LeaderboardEntry, limit int) []model.LeaderboardEntry {
	out := make([]model.LeaderboardEntry, len(entries))
	copy(out, entries)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// MemoryKV is an in-process KV used for ephemeral sessions.
type MemoryKV struct {
	mu   sync.Mutex
	data map[string]string
}

// NewMemoryKV returns an empty MemoryKV.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{data: map[string]string{}}
}

// Get implements KV.
func (m *MemoryKV) Get(_ context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	value, ok := m.data[key]
	if !ok {
		return "", store.ErrNotFound
	}
	return value, nil
}

// Set implements KV.
func (m *MemoryKV) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}
