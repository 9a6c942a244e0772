package stats

import (
	"sort"

	"github.com/verte-zerg/tuivocab/internal/model"
)

// SelectWeakWords returns the lowest-accuracy studied words, at most top of them.
// Unstudied words are never weak. top <= 0 keeps every studied word.
func SelectWeakWords(progress map[string]model.ProgressRecord, top int) []model.ProgressRecord {
	candidates := make([]model.ProgressRecord, 0, len(progress))
	for _, rec := range progress {
		if rec.Attempts > 0 {
			candidates = append(candidates, rec)
		}
	}
	sort.Slice(candidates, func(i, j int) bool {
		ai, aj := candidates[i].Accuracy(), candidates[j].Accuracy()
		if ai == aj {
			return candidates[i].English < candidates[j].English
		}
		return ai < aj
	})
	if top > 0 && top < len(candidates) {
		candidates = candidates[:top]
	}
	return candidates
}

// WeakWeights returns one draw weight per word. Weak words get
// 1 + (1-accuracy)*factor, everything else 1.
func WeakWeights(words []model.WordRecord, progress map[string]model.ProgressRecord, top int, factor float64) []float64 {
	boost := map[string]float64{}
	for _, rec := range SelectWeakWords(progress, top) {
		boost[rec.English] = 1 + (1-rec.Accuracy())*factor
	}
	weights := make([]float64, len(words))
	for i, w := range words {
		weights[i] = 1
		if b, ok := boost[w.English]; ok {
			weights[i] = b
		}
	}
	return weights
}
