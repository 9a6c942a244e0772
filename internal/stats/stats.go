package stats

import (
	"fmt"
	"io"

	"github.com/verte-zerg/tuivocab/internal/model"
)

// SessionAccuracy returns correct/(correct+incorrect), or 0 with no answers.
func SessionAccuracy(correct, incorrect int) float64 {
	den := correct + incorrect
	if den == 0 {
		return 0
	}
	return float64(correct) / float64(den)
}

// RenderSummary prints the aggregate counters.
func RenderSummary(w io.Writer, agg model.AggregateStats) error {
	last := "never"
	if agg.LastPlayDate != nil {
		last = *agg.LastPlayDate
	}
	lines := []string{
		"Summary",
		fmt.Sprintf("Total score: %d", agg.TotalScore),
		fmt.Sprintf("Games played: %d", agg.GamesPlayed),
		fmt.Sprintf("Streak: %d day(s)", agg.Streak),
		fmt.Sprintf("Last played: %s", last),
		"",
	}
	return writeLines(w, lines)
}

// RenderModeTable prints high score and plays per mode, in the given order.
func RenderModeTable(w io.Writer, agg model.AggregateStats, modes []model.ModeID) error {
	rows := make([][]string, 0, len(modes))
	for _, mode := range modes {
		stat := agg.Stat(mode)
		rows = append(rows, []string{
			string(mode),
			fmt.Sprintf("%d", stat.HighScore),
			fmt.Sprintf("%d", stat.Plays),
		})
	}
	lines := append([]string{"Modes"}, formatTable([]string{"Mode", "High Score", "Plays"}, rows, map[int]bool{1: true, 2: true})...)
	return writeLines(w, append(lines, ""))
}

// RenderLeaderboard prints the ranked leaderboard.
func RenderLeaderboard(w io.Writer, entries []model.LeaderboardEntry, limit int) error {
	ranked := Ranked(entries, limit)
	if len(ranked) == 0 {
		_, err := fmt.Fprintln(w, "Leaderboard is empty.")
		return err
	}
	rows := make([][]string, 0, len(ranked))
	for i, e := range ranked {
		rows = append(rows, []string{fmt.Sprintf("%d", i+1), e.Name, fmt.Sprintf("%d", e.Score)})
	}
	lines := append([]string{"Leaderboard"}, formatTable([]string{"#", "Player", "Score"}, rows, map[int]bool{0: true, 2: true})...)
	return writeLines(w, append(lines, ""))
}

// RenderHistory prints recent sessions and a score trend sized to totalWidth.
func RenderHistory(w io.Writer, sessions []model.SessionAggregate, window, totalWidth int) error {
	if len(sessions) == 0 {
		_, err := fmt.Fprintln(w, "No sessions found.")
		return err
	}
	rows := make([][]string, 0, len(sessions))
	for _, s := range sessions {
		rows = append(rows, []string{
			s.EndedAt.Local().Format("2006-01-02 15:04"),
			string(s.Mode),
			fmt.Sprintf("%d", s.Score),
			fmt.Sprintf("%.0f%%", SessionAccuracy(s.Correct, s.Incorrect)*100),
			fmt.Sprintf("%.0fs", float64(s.DurationMs)/1000),
		})
	}
	lines := append([]string{"History"}, formatTable(
		[]string{"Ended", "Mode", "Score", "Accuracy", "Time"},
		rows,
		map[int]bool{2: true, 3: true, 4: true},
	)...)
	lines = append(lines, "")

	const label = "Score trend "
	curve := ScoreCurve(sessions, window)
	lines = append(lines, label+Sparkline(curve, SparkWidthFor(totalWidth, len(label))), "")
	return writeLines(w, lines)
}

func writeLines(w io.Writer, lines []string) error {
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
