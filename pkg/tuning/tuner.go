package tuning

import "sort"

// TuneSimilarityWeights evaluates opts.BaseWeights as a baseline, then
// searches nearby weight vectors (see candidateWeightVectors) for the
// one maximizing Metrics.Objective. The leaderboard holds the top
// opts.LeaderboardSize candidates by the same ordering.
func TuneSimilarityWeights(samples []Sample, opts SimilarityTuningOptions) (Result, error) {
	opts = opts.WithDefaults()
	if len(samples) == 0 {
		return Result{}, ErrInsufficientSamples
	}

	idx := buildEvaluationIndex(samples, opts.NgramSize)
	baseline := evaluateWeights(idx, samples, opts.BaseWeights, opts)

	candidates := candidateWeightVectors(opts)
	entries := make([]LeaderboardEntry, len(candidates))
	for i, w := range candidates {
		metrics := evaluateWeights(idx, samples, w, opts)
		entries[i] = LeaderboardEntry{Weights: w, Metrics: metrics, Objective: metrics.Objective()}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.Objective != b.Objective {
			return a.Objective > b.Objective
		}
		if a.Metrics.MRR != b.Metrics.MRR {
			return a.Metrics.MRR > b.Metrics.MRR
		}
		if a.Metrics.Top1 != b.Metrics.Top1 {
			return a.Metrics.Top1 > b.Metrics.Top1
		}
		return a.Metrics.Top3 > b.Metrics.Top3
	})

	leaderboard := entries
	if len(leaderboard) > opts.LeaderboardSize {
		leaderboard = leaderboard[:opts.LeaderboardSize]
	}

	best := opts.BaseWeights
	bestMetrics := baseline
	if len(entries) > 0 {
		best = entries[0].Weights
		bestMetrics = entries[0].Metrics
	}

	return Result{
		BaselineMetrics: baseline,
		BestWeights:     best,
		BestMetrics:     bestMetrics,
		Leaderboard:     leaderboard,
	}, nil
}
