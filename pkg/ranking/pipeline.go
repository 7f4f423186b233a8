package ranking

import (
	"context"
	"runtime"
	"sort"
	"sync"

	"github.com/yeojin-dev/hangulsearch/pkg/similarity"
)

const (
	gateTrimTarget          = 6   // per-variant trim target multiplier against limit
	minGateTrimFloor        = 256 // absolute floor for the size that triggers a trim
	parallelCandidatePerCPU = 256 // candidates-per-worker threshold to go parallel
)

// Rank runs the full fuzzy ranking pipeline against source and returns up
// to opts.Limit results, best first.
func Rank(query string, opts Options, source Source) []Result {
	results, _ := rank(context.Background(), query, opts, source, false)
	return results
}

// RankContext is Rank with cooperative cancellation: it checks ctx at each
// variant boundary and every 32 candidates scored, returning ctx.Err() if
// cancelled partway through.
func RankContext(ctx context.Context, query string, opts Options, source Source) ([]Result, error) {
	return rank(ctx, query, opts, source, true)
}

func rank(ctx context.Context, query string, opts Options, source Source, cancellable bool) ([]Result, error) {
	opts = opts.WithDefaults()
	if query == "" || source.Size() == 0 {
		return nil, nil
	}

	variants := queryVariants(query, opts.IncludeLayoutVariants)
	targetPerVariant := maxInt(opts.CandidateLimitPerVariant, opts.Limit*10)
	trimThreshold := maxInt(opts.Limit*gateTrimTarget, minGateTrimFloor)

	best := make(map[int]Result)
	gate := opts.MinimumScore

	for _, variant := range variants {
		if cancellable && ctx.Err() != nil {
			return aggregateResults(best, opts.Limit), ctx.Err()
		}

		variantChoseong := source.ProjectChoseong(variant)
		base := source.CandidateIndices(variantChoseong, variant)
		candidates := prefilterCandidates(base, variant, variantChoseong, source, targetPerVariant, opts.Limit)

		coarseCutoff := maxFloat(0.05, gate*0.6)

		survivors, err := scoreCandidates(ctx, candidates, variant, variantChoseong, source, opts.Weights, coarseCutoff, gate, opts.MinimumScore, cancellable)
		if err != nil {
			return aggregateResults(best, opts.Limit), err
		}

		for _, r := range survivors {
			existing, ok := best[r.Index]
			if !ok || r.Breakdown.Total > existing.Breakdown.Total {
				best[r.Index] = r
			}
		}

		if len(best) > trimThreshold {
			best = trimBest(best, opts.Limit*gateTrimTarget)
		}
		gate = maxFloat(gate, kthHighestScore(best, opts.Limit))
	}

	return aggregateResults(best, opts.Limit), nil
}

func scoreCandidates(ctx context.Context, candidates []int, variant, variantChoseong string, source Source, weights similarity.Weights, coarseCutoff, gate, minimumScore float64, cancellable bool) ([]Result, error) {
	numWorkers := runtime.GOMAXPROCS(0)
	if !cancellable && len(candidates) >= parallelCandidatePerCPU*numWorkers {
		return scoreParallel(candidates, variant, variantChoseong, source, weights, coarseCutoff, gate, minimumScore, numWorkers), nil
	}
	return scoreSerial(ctx, candidates, variant, variantChoseong, source, weights, coarseCutoff, gate, minimumScore, cancellable)
}

func scoreSerial(ctx context.Context, candidates []int, variant, variantChoseong string, source Source, weights similarity.Weights, coarseCutoff, gate, minimumScore float64, cancellable bool) ([]Result, error) {
	var out []Result
	for i, idx := range candidates {
		if cancellable && i%32 == 0 && ctx.Err() != nil {
			return out, ctx.Err()
		}
		if r, ok := scoreOne(idx, variant, variantChoseong, source, weights, coarseCutoff, gate, minimumScore); ok {
			out = append(out, r)
		}
	}
	return out, nil
}

func scoreParallel(candidates []int, variant, variantChoseong string, source Source, weights similarity.Weights, coarseCutoff, gate, minimumScore float64, numWorkers int) []Result {
	chunks := partition(candidates, numWorkers)
	var mu sync.Mutex
	var out []Result
	var wg sync.WaitGroup

	for _, chunk := range chunks {
		chunk := chunk
		wg.Add(1)
		go func() {
			defer wg.Done()
			var local []Result
			for _, idx := range chunk {
				if r, ok := scoreOne(idx, variant, variantChoseong, source, weights, coarseCutoff, gate, minimumScore); ok {
					local = append(local, r)
				}
			}
			if len(local) == 0 {
				return
			}
			mu.Lock()
			out = append(out, local...)
			mu.Unlock()
		}()
	}
	wg.Wait()
	return out
}

func scoreOne(idx int, variant, variantChoseong string, source Source, weights similarity.Weights, coarseCutoff, gate, minimumScore float64) (Result, bool) {
	rawKey := source.NormalizedKey(idx)
	choKey := source.ChoseongKey(idx)
	strong := isStrongMatch(variant, variantChoseong, rawKey, choKey)

	if !strong {
		coarse := similarity.CoarseSimilarity(variant, variantChoseong, rawKey, choKey)
		if coarse < coarseCutoff {
			return Result{}, false
		}
	}

	breakdown, detail := similarity.Explain(variant, source.RawKey(idx), variantChoseong, choKey, weights)
	if breakdown.Total < minimumScore || breakdown.Total < gate {
		return Result{}, false
	}

	return Result{Index: idx, Breakdown: breakdown, Variant: variant, DetailText: detail}, true
}

func partition(candidates []int, numWorkers int) [][]int {
	if numWorkers < 1 {
		numWorkers = 1
	}
	chunkSize := (len(candidates) + numWorkers - 1) / numWorkers
	if chunkSize == 0 {
		return [][]int{candidates}
	}
	var chunks [][]int
	for i := 0; i < len(candidates); i += chunkSize {
		end := i + chunkSize
		if end > len(candidates) {
			end = len(candidates)
		}
		chunks = append(chunks, candidates[i:end])
	}
	return chunks
}

func trimBest(best map[int]Result, target int) map[int]Result {
	entries := make([]Result, 0, len(best))
	for _, r := range best {
		entries = append(entries, r)
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Breakdown.Total != entries[j].Breakdown.Total {
			return entries[i].Breakdown.Total > entries[j].Breakdown.Total
		}
		return entries[i].Index < entries[j].Index
	})
	if len(entries) > target {
		entries = entries[:target]
	}
	trimmed := make(map[int]Result, len(entries))
	for _, r := range entries {
		trimmed[r.Index] = r
	}
	return trimmed
}

// kthHighestScore returns the score of the k-th highest-scoring entry
// (1-indexed), or 0 if best has fewer than k entries.
func kthHighestScore(best map[int]Result, k int) float64 {
	if k <= 0 || len(best) < k {
		return 0
	}
	scores := make([]float64, 0, len(best))
	for _, r := range best {
		scores = append(scores, r.Breakdown.Total)
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(scores)))
	return scores[k-1]
}

func aggregateResults(best map[int]Result, limit int) []Result {
	entries := make([]Result, 0, len(best))
	for _, r := range best {
		entries = append(entries, r)
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Breakdown.Total != entries[j].Breakdown.Total {
			return entries[i].Breakdown.Total > entries[j].Breakdown.Total
		}
		return entries[i].Index < entries[j].Index
	})
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
