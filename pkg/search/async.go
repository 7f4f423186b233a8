package search

import (
	"context"
	"time"

	"github.com/yeojin-dev/hangulsearch/pkg/ranking"
	"github.com/yeojin-dev/hangulsearch/pkg/telemetry"
)

const cancellationCheckpointStride = 16

// SearchContext is Search with cooperative cancellation: ctx is checked at
// each phase boundary and every 16 candidates scanned. On cancellation it
// reports to telemetry and returns ctx.Err().
func (idx *Index[T]) SearchContext(ctx context.Context, query string, mode Mode) ([]T, error) {
	start := time.Now()

	if err := ctx.Err(); err != nil {
		idx.recordCancelled(telemetry.AsyncSearch, start)
		return nil, err
	}

	choseongQuery := idx.boundedChoseongQuery(query)
	if choseongQuery == "" {
		idx.recordSuccess(telemetry.AsyncSearch, start, 0)
		return nil, nil
	}

	key := cacheKeyFor(mode, choseongQuery)
	if idx.resultCache != nil {
		if indices, ok := idx.resultCache.Get(key); ok {
			idx.recordCacheHit()
			idx.recordSuccess(telemetry.AsyncSearch, start, len(indices))
			return idx.itemsFor(indices), nil
		}
	}

	if err := ctx.Err(); err != nil {
		idx.recordCancelled(telemetry.AsyncSearch, start)
		return nil, err
	}
	candidates := idx.applyMaxCandidateScan(idx.computeCandidateIndices(choseongQuery))
	keys, err := idx.resolveChoseongKeysContext(ctx, candidates)
	if err != nil {
		idx.recordCancelled(telemetry.AsyncSearch, start)
		return nil, err
	}

	matched := make([]int, 0, len(candidates))
	for i, candidate := range candidates {
		if i%cancellationCheckpointStride == 0 {
			if err := ctx.Err(); err != nil {
				idx.recordCancelled(telemetry.AsyncSearch, start)
				return nil, err
			}
		}
		if mode.Matches(keys(candidate), choseongQuery) {
			matched = append(matched, candidate)
		}
	}

	if idx.resultCache != nil {
		idx.resultCache.Set(key, matched)
	}
	idx.recordSuccess(telemetry.AsyncSearch, start, len(matched))
	return idx.itemsFor(matched), nil
}

// resolveChoseongKeysContext is resolveChoseongKeys for the cancellable
// path: it never calls Materializer.GetOrBuild(), which would block the
// caller on a full, uncancellable build of every item's key. Instead it
// projects each candidate's key on demand, checking ctx at the usual
// stride, and only offers the result to the materializer when candidates
// happened to cover the whole index (so a bounded or Ngram-narrowed scan
// never short-circuits the real background build with a partial vector).
func (idx *Index[T]) resolveChoseongKeysContext(ctx context.Context, candidates []int) (func(int) string, error) {
	if idx.choseongVector != nil {
		return func(i int) string { return idx.choseongVector[i] }, nil
	}
	if idx.materializer == nil {
		return func(i int) string { return idx.ProjectChoseong(idx.rawKeys[i]) }, nil
	}
	if vector, ok := idx.materializer.ReadyKeys(); ok {
		return func(i int) string { return vector[i] }, nil
	}

	built := make([]string, len(idx.items))
	for i, candidate := range candidates {
		if i%cancellationCheckpointStride == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		built[candidate] = idx.ProjectChoseong(idx.rawKeys[candidate])
	}
	if len(candidates) == len(idx.items) {
		idx.materializer.TryStore(built)
	}
	return func(i int) string { return built[i] }, nil
}

// SearchSimilarContext is SearchSimilar with cooperative cancellation,
// adding checkpoints before variant generation, key materialization, and
// inside each scoring batch (see pkg/ranking.RankContext).
func (idx *Index[T]) SearchSimilarContext(ctx context.Context, query string, opts ranking.Options) ([]RankedItem[T], error) {
	start := time.Now()
	results, err := ranking.RankContext(ctx, query, opts, idx)
	if err != nil {
		idx.recordCancelled(telemetry.AsyncSimilar, start)
		return idx.toRankedItems(results), err
	}
	idx.recordSuccess(telemetry.AsyncSimilar, start, len(results))
	return idx.toRankedItems(results), nil
}

// ExplainSimilarContext is ExplainSimilar with cooperative cancellation.
func (idx *Index[T]) ExplainSimilarContext(ctx context.Context, query string, opts ranking.Options) ([]ExplainedRankedItem[T], error) {
	start := time.Now()
	results, err := ranking.ExplainContext(ctx, query, opts, idx)
	out := make([]ExplainedRankedItem[T], len(results))
	for i, r := range results {
		out[i] = ExplainedRankedItem[T]{Item: idx.items[r.Index], ExplainedResult: r}
	}
	if err != nil {
		idx.recordCancelled(telemetry.AsyncExplain, start)
		return out, err
	}
	idx.recordSuccess(telemetry.AsyncExplain, start, len(out))
	return out, nil
}
