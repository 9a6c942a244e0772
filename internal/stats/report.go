package stats

import (
	"context"

	"github.com/verte-zerg/tuivocab/internal/model"
	"github.com/verte-zerg/tuivocab/internal/store"
)

// Report contains precomputed data for stats rendering.
type Report struct {
	Aggregate   model.AggregateStats
	Leaderboard []model.LeaderboardEntry
	Sessions    []model.SessionAggregate
	Curve       []float64
}

// BuildReport loads aggregates, the leaderboard, and filtered session history.
func BuildReport(ctx context.Context, st *store.Store, persisted *Store, cfg model.StatsConfig) (Report, error) {
	agg, err := persisted.Load(ctx)
	if err != nil {
		return Report{}, err
	}
	board, err := persisted.LoadLeaderboard(ctx)
	if err != nil {
		return Report{}, err
	}
	sessions, err := st.ListSessions(ctx, cfg)
	if err != nil {
		return Report{}, err
	}
	return Report{
		Aggregate:   agg,
		Leaderboard: board,
		Sessions:    sessions,
		Curve:       ScoreCurve(sessions, cfg.CurveWindow),
	}, nil
}

// ScoreCurve returns the moving average of session scores.
func ScoreCurve(sessions []model.SessionAggregate, window int) []float64 {
	scores := make([]float64, len(sessions))
	for i, s := range sessions {
		scores[i] = float64(s.Score)
	}
	return MovingAverage(scores, window)
}
