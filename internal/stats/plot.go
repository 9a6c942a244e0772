package stats

import (
	"math"
	"os"
	"strings"

	"golang.org/x/term"
)

const (
	terminalWidthBackup = 80
	minSparkWidth       = 8
)

var sparkBlocks = []rune("▁▂▃▄▅▆▇█")

// MovingAverage computes a rolling mean over the provided window size.
// The first window-1 points average over what is available.
func MovingAverage(values []float64, window int) []float64 {
	out := make([]float64, len(values))
	if window <= 1 {
		copy(out, values)
		return out
	}
	var sum float64
	for i, v := range values {
		sum += v
		n := i + 1
		if i >= window {
			sum -= values[i-window]
			n = window
		}
		out[i] = sum / float64(n)
	}
	return out
}

// Sparkline renders values as block characters, at most width cells wide.
// Longer series are averaged into buckets.
func Sparkline(values []float64, width int) string {
	if len(values) == 0 {
		return ""
	}
	if width > 0 && len(values) > width {
		values = bucketAverage(values, width)
	}
	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	var b strings.Builder
	for _, v := range values {
		idx := len(sparkBlocks) / 2
		if hi-lo > 1e-9 {
			idx = int(math.Round((v - lo) / (hi - lo) * float64(len(sparkBlocks)-1)))
		}
		b.WriteRune(sparkBlocks[idx])
	}
	return b.String()
}

func bucketAverage(values []float64, width int) []float64 {
	out := make([]float64, width)
	for i := range out {
		start := i * len(values) / width
		end := (i + 1) * len(values) / width
		if end <= start {
			end = start + 1
		}
		var sum float64
		for _, v := range values[start:end] {
			sum += v
		}
		out[i] = sum / float64(end-start)
	}
	return out
}

// SparkWidthFor leaves room for a label column of labelWidth cells.
func SparkWidthFor(totalWidth, labelWidth int) int {
	w := totalWidth - labelWidth
	if w < minSparkWidth {
		return minSparkWidth
	}
	return w
}

// TerminalWidth returns the stdout width, or a fallback when stdout is not a terminal.
func TerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}
