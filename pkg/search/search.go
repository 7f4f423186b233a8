package search

import (
	"time"

	"github.com/yeojin-dev/hangulsearch/pkg/ranking"
	"github.com/yeojin-dev/hangulsearch/pkg/telemetry"
)

// SetTelemetry attaches a recorder that Search/SearchSimilar/ExplainSimilar
// (and their async counterparts) report outcomes and latencies to. Passing
// nil detaches it; telemetry is optional.
func (idx *Index[T]) SetTelemetry(r *telemetry.Recorder) {
	idx.telemetry = r
}

// boundedChoseongQuery truncates query to MaxQueryLength characters (if
// set), then projects it onto choseong under the index's ChoseongOptions.
func (idx *Index[T]) boundedChoseongQuery(query string) string {
	if idx.policy.MaxQueryLength > 0 {
		runes := []rune(query)
		if len(runes) > idx.policy.MaxQueryLength {
			query = string(runes[:idx.policy.MaxQueryLength])
		}
	}
	return idx.ProjectChoseong(query)
}

func cacheKeyFor(mode Mode, normalizedQuery string) string {
	return mode.String() + "|" + normalizedQuery
}

// Search runs a synchronous choseong substring/prefix/exact match and
// returns the matching items, preserving candidate order. Never fails:
// an empty query yields an empty result, and a query longer than the
// policy's MaxQueryLength is truncated to that length before matching.
func (idx *Index[T]) Search(query string, mode Mode) []T {
	start := time.Now()
	result := idx.search(query, mode)
	idx.recordSuccess(telemetry.SyncSearch, start, len(result))
	return result
}

func (idx *Index[T]) search(query string, mode Mode) []T {
	choseongQuery := idx.boundedChoseongQuery(query)
	if choseongQuery == "" {
		return nil
	}

	key := cacheKeyFor(mode, choseongQuery)
	if idx.resultCache != nil {
		if indices, ok := idx.resultCache.Get(key); ok {
			idx.recordCacheHit()
			return idx.itemsFor(indices)
		}
	}

	candidates := idx.applyMaxCandidateScan(idx.computeCandidateIndices(choseongQuery))
	keys := idx.resolveChoseongKeys(candidates)

	matched := make([]int, 0, len(candidates))
	for _, i := range candidates {
		if mode.Matches(keys(i), choseongQuery) {
			matched = append(matched, i)
		}
	}

	if idx.resultCache != nil {
		idx.resultCache.Set(key, matched)
	}
	return idx.itemsFor(matched)
}

// resolveChoseongKeys returns an accessor for candidate choseong keys,
// resolving the LazyCache materializer once up front (rather than per
// candidate) when it isn't already built.
func (idx *Index[T]) resolveChoseongKeys(candidates []int) func(int) string {
	if idx.choseongVector != nil {
		return func(i int) string { return idx.choseongVector[i] }
	}
	if idx.materializer != nil {
		if vector, ok := idx.materializer.ReadyKeys(); ok {
			return func(i int) string { return vector[i] }
		}
		vector := idx.materializer.GetOrBuild()
		return func(i int) string { return vector[i] }
	}
	return func(i int) string { return idx.ProjectChoseong(idx.rawKeys[i]) }
}

func (idx *Index[T]) itemsFor(indices []int) []T {
	out := make([]T, len(indices))
	for i, idxVal := range indices {
		out[i] = idx.items[idxVal]
	}
	return out
}

func (idx *Index[T]) recordCacheHit() {
	if idx.telemetry != nil {
		idx.telemetry.RecordCacheHit()
	}
}

func (idx *Index[T]) recordSuccess(kind telemetry.OperationKind, start time.Time, returned int) {
	if idx.telemetry != nil {
		idx.telemetry.RecordSuccess(kind, time.Since(start), returned)
	}
}

func (idx *Index[T]) recordFailure(kind telemetry.OperationKind, start time.Time) {
	if idx.telemetry != nil {
		idx.telemetry.RecordFailure(kind, time.Since(start))
	}
}

func (idx *Index[T]) recordCancelled(kind telemetry.OperationKind, start time.Time) {
	if idx.telemetry != nil {
		idx.telemetry.RecordCancelled(kind, time.Since(start))
	}
}

// SearchSimilar runs the fuzzy ranking pipeline (pkg/ranking) over this
// index and returns up to opts.Limit ranked items.
func (idx *Index[T]) SearchSimilar(query string, opts ranking.Options) []RankedItem[T] {
	start := time.Now()
	results := ranking.Rank(query, opts, idx)
	idx.recordSuccess(telemetry.SyncSimilar, start, len(results))
	return idx.toRankedItems(results)
}

// ExplainSimilar runs SearchSimilar and returns the full signal breakdown
// behind each surviving result.
func (idx *Index[T]) ExplainSimilar(query string, opts ranking.Options) []ExplainedRankedItem[T] {
	start := time.Now()
	results := ranking.Explain(query, opts, idx)
	idx.recordSuccess(telemetry.SyncExplain, start, len(results))
	out := make([]ExplainedRankedItem[T], len(results))
	for i, r := range results {
		out[i] = ExplainedRankedItem[T]{
			Item:            idx.items[r.Index],
			ExplainedResult: r,
		}
	}
	return out
}

// RankedItem pairs a ranking.Result with the caller's item.
type RankedItem[T any] struct {
	Item T
	ranking.Result
}

// ExplainedRankedItem pairs a ranking.ExplainedResult with the caller's item.
type ExplainedRankedItem[T any] struct {
	Item T
	ranking.ExplainedResult
}

func (idx *Index[T]) toRankedItems(results []ranking.Result) []RankedItem[T] {
	out := make([]RankedItem[T], len(results))
	for i, r := range results {
		out[i] = RankedItem[T]{Item: idx.items[r.Index], Result: r}
	}
	return out
}
