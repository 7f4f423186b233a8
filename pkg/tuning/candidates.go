package tuning

import (
	"fmt"

	"github.com/yeojin-dev/hangulsearch/pkg/similarity"
)

var coreScaleFactors = []float64{0.65, 0.8, 1.0, 1.2, 1.35}
var bonusScaleFactors = []float64{0.5, 0.8, 1.0, 1.2, 1.5}

// candidateWeightVectors generates up to opts.MaxCandidates weight
// vectors around opts.BaseWeights: the base itself, each core weight
// scaled singly and all four scaled together, each bonus scaled singly
// and both scaled together, then deterministic LCG perturbations until
// the budget is exhausted. Candidates are clamped to the weight domain
// and deduplicated by a four-decimal-place fingerprint.
func candidateWeightVectors(opts SimilarityTuningOptions) []similarity.Weights {
	seen := make(map[string]struct{})
	candidates := make([]similarity.Weights, 0, opts.MaxCandidates)

	add := func(w similarity.Weights) bool {
		if len(candidates) >= opts.MaxCandidates {
			return false
		}
		w = similarity.ClampWeights(w)
		fp := fingerprint(w)
		if _, ok := seen[fp]; ok {
			return true
		}
		seen[fp] = struct{}{}
		candidates = append(candidates, w)
		return true
	}

	base := opts.BaseWeights
	if !add(base) {
		return candidates
	}

	for _, factor := range coreScaleFactors {
		if !add(scaleCore(base, factor, factor, factor, factor)) {
			return candidates
		}
	}
	for i := 0; i < 4; i++ {
		for _, factor := range coreScaleFactors {
			if !add(scaleCoreSingle(base, i, factor)) {
				return candidates
			}
		}
	}
	for _, factor := range bonusScaleFactors {
		if !add(scaleBonus(base, factor, factor)) {
			return candidates
		}
	}
	for i := 0; i < 2; i++ {
		for _, factor := range bonusScaleFactors {
			if !add(scaleBonusSingle(base, i, factor)) {
				return candidates
			}
		}
	}

	rng := newLCG(opts.Seed)
	maxAttempts := opts.MaxCandidates * 20
	for attempt := 0; attempt < maxAttempts && len(candidates) < opts.MaxCandidates; attempt++ {
		perturbed := similarity.Weights{
			EditDistance: base.EditDistance * rng.between(0.5, 1.5),
			Jaccard:      base.Jaccard * rng.between(0.5, 1.5),
			Keyboard:     base.Keyboard * rng.between(0.5, 1.5),
			Jamo:         base.Jamo * rng.between(0.5, 1.5),
			Exact:        base.Exact * rng.between(0.2, 2.0),
			Prefix:       base.Prefix * rng.between(0.2, 2.0),
		}
		if !add(perturbed) {
			break
		}
	}

	return candidates
}

func scaleCore(w similarity.Weights, editFactor, jaccardFactor, keyboardFactor, jamoFactor float64) similarity.Weights {
	out := w
	out.EditDistance *= editFactor
	out.Jaccard *= jaccardFactor
	out.Keyboard *= keyboardFactor
	out.Jamo *= jamoFactor
	return out
}

func scaleCoreSingle(w similarity.Weights, index int, factor float64) similarity.Weights {
	out := w
	switch index {
	case 0:
		out.EditDistance *= factor
	case 1:
		out.Jaccard *= factor
	case 2:
		out.Keyboard *= factor
	case 3:
		out.Jamo *= factor
	}
	return out
}

func scaleBonus(w similarity.Weights, exactFactor, prefixFactor float64) similarity.Weights {
	out := w
	out.Exact *= exactFactor
	out.Prefix *= prefixFactor
	return out
}

func scaleBonusSingle(w similarity.Weights, index int, factor float64) similarity.Weights {
	out := w
	switch index {
	case 0:
		out.Exact *= factor
	case 1:
		out.Prefix *= factor
	}
	return out
}

func fingerprint(w similarity.Weights) string {
	return fmt.Sprintf("%.4f|%.4f|%.4f|%.4f|%.4f|%.4f",
		w.EditDistance, w.Jaccard, w.Keyboard, w.Jamo, w.Exact, w.Prefix)
}
