package tuning

import (
	"github.com/yeojin-dev/hangulsearch/pkg/ranking"
	"github.com/yeojin-dev/hangulsearch/pkg/search"
	"github.com/yeojin-dev/hangulsearch/pkg/similarity"
)

func identityKey(s string) string { return s }

// buildEvaluationIndex indexes the distinct expected keys across samples
// so each sample's query can be ranked against exactly the universe of
// keys it was trained to expect a hit from.
func buildEvaluationIndex(samples []Sample, ngramSize int) *search.Index[string] {
	seen := make(map[string]struct{}, len(samples))
	keys := make([]string, 0, len(samples))
	for _, s := range samples {
		if _, ok := seen[s.ExpectedKey]; ok {
			continue
		}
		seen[s.ExpectedKey] = struct{}{}
		keys = append(keys, s.ExpectedKey)
	}

	policy := search.DefaultPolicy()
	policy.IndexStrategy = search.Ngram
	policy.NgramSize = ngramSize
	return search.New(keys, identityKey, policy)
}

// EvaluateSimilarity ranks every sample's query against an ephemeral
// index built from the samples' expected keys using opts.BaseWeights,
// and reports aggregate ranking quality.
func EvaluateSimilarity(samples []Sample, opts SimilarityTuningOptions) (Metrics, error) {
	opts = opts.WithDefaults()
	if len(samples) == 0 {
		return Metrics{}, ErrInsufficientSamples
	}
	idx := buildEvaluationIndex(samples, opts.NgramSize)
	return evaluateWeights(idx, samples, opts.BaseWeights, opts), nil
}

func evaluateWeights(idx *search.Index[string], samples []Sample, weights similarity.Weights, opts SimilarityTuningOptions) Metrics {
	rankingOpts := ranking.Options{
		Limit:                    opts.Limit,
		Weights:                  weights,
		IncludeLayoutVariants:    opts.IncludeLayoutVariants,
		CandidateLimitPerVariant: opts.CandidateLimitPerVariant,
		MinimumScore:             opts.MinimumScore,
	}.WithDefaults()

	var mrrSum, hits, top1, top3 float64
	for _, sample := range samples {
		results := ranking.Rank(sample.Query, rankingOpts, idx)
		rank := firstMatchRank(results, idx, sample.ExpectedKey)
		if rank == 0 {
			continue
		}
		hits++
		mrrSum += 1.0 / float64(rank)
		if rank == 1 {
			top1++
		}
		if rank <= 3 {
			top3++
		}
	}

	total := float64(len(samples))
	return Metrics{
		Top1:    top1 / total,
		Top3:    top3 / total,
		MRR:     mrrSum / total,
		HitRate: hits / total,
	}
}

// firstMatchRank returns the 1-based position of expectedKey in results,
// or 0 if absent.
func firstMatchRank(results []ranking.Result, idx *search.Index[string], expectedKey string) int {
	for i, r := range results {
		if idx.Item(r.Index) == expectedKey {
			return i + 1
		}
	}
	return 0
}
