package wordlist

import "github.com/verte-zerg/tuivocab/internal/model"

// FilterFunc returns true when a word should be kept.
type FilterFunc func(model.WordRecord) bool

// ByLevel keeps words of one level. An empty level keeps everything.
func ByLevel(level model.Level) FilterFunc {
	if level == "" {
		return func(model.WordRecord) bool { return true }
	}
	return func(w model.WordRecord) bool { return w.Level == level }
}

// ByTopic keeps words of one topic. An empty topic keeps everything.
func ByTopic(topic string) FilterFunc {
	if topic == "" {
		return func(model.WordRecord) bool { return true }
	}
	return func(w model.WordRecord) bool { return w.Topic == topic }
}

// Apply returns the words accepted by every filter, preserving order.
func Apply(words []model.WordRecord, filters ...FilterFunc) []model.WordRecord {
	out := make([]model.WordRecord, 0, len(words))
	for _, w := range words {
		keep := true
		for _, f := range filters {
			if !f(w) {
				keep = false
				break
			}
		}
		if keep {
			out = append(out, w)
		}
	}
	return out
}
