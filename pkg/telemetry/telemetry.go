// Package telemetry tracks per-operation-kind outcome counters and latency
// accumulators for the search index's query surface.
package telemetry

import (
	"sync"
	"time"
)

// OperationKind identifies one of the six tracked query shapes: three
// operation families, each sync and async.
type OperationKind int

const (
	SyncSearch OperationKind = iota
	AsyncSearch
	SyncSimilar
	AsyncSimilar
	SyncExplain
	AsyncExplain

	operationKindCount = AsyncExplain + 1
)

func (k OperationKind) String() string {
	switch k {
	case SyncSearch:
		return "search"
	case AsyncSearch:
		return "search.async"
	case SyncSimilar:
		return "similar"
	case AsyncSimilar:
		return "similar.async"
	case SyncExplain:
		return "explain"
	case AsyncExplain:
		return "explain.async"
	default:
		return "unknown"
	}
}

type counters struct {
	success   int64
	cancelled int64
	failure   int64
	latencyNs int64
}

// Recorder tracks outcome counts and latency accumulators across the six
// operation kinds, plus overall cache-hit and returned-item counts. Safe
// for concurrent use.
type Recorder struct {
	mu                sync.Mutex
	byKind            [operationKindCount]counters
	cacheHitCount     int64
	returnedItemCount int64
	startedAt         time.Time
}

// New returns a Recorder with all counters zeroed and startedAt set to now.
func New() *Recorder {
	return &Recorder{startedAt: time.Now()}
}

// RecordSuccess records a successful operation of the given kind with the
// given latency and number of items returned.
func (r *Recorder) RecordSuccess(kind OperationKind, latency time.Duration, returnedItems int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := &r.byKind[kind]
	c.success++
	c.latencyNs += latency.Nanoseconds()
	r.returnedItemCount += int64(returnedItems)
}

// RecordCancelled records a cancelled async operation of the given kind.
func (r *Recorder) RecordCancelled(kind OperationKind, latency time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := &r.byKind[kind]
	c.cancelled++
	c.latencyNs += latency.Nanoseconds()
}

// RecordFailure records a failed operation of the given kind.
func (r *Recorder) RecordFailure(kind OperationKind, latency time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := &r.byKind[kind]
	c.failure++
	c.latencyNs += latency.Nanoseconds()
}

// RecordCacheHit increments the overall cache-hit counter.
func (r *Recorder) RecordCacheHit() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cacheHitCount++
}

// KindSnapshot is one operation kind's counters at snapshot time.
type KindSnapshot struct {
	Kind          OperationKind
	Success       int64
	Cancelled     int64
	Failure       int64
	MeanLatencyNs float64
}

// Snapshot is a point-in-time report across all operation kinds.
type Snapshot struct {
	ByKind            [operationKindCount]KindSnapshot
	CacheHitCount     int64
	ReturnedItemCount int64
	StartedAt         time.Time
	TakenAt           time.Time
}

// Snapshot reports current counts and mean latencies (nanoseconds; divide
// by 1e6 for milliseconds) for each operation kind. Mean latency is total
// latency divided by the sum of that kind's success/cancelled/failure
// counters, or 0 if that kind has no recorded operations.
func (r *Recorder) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := Snapshot{
		CacheHitCount:     r.cacheHitCount,
		ReturnedItemCount: r.returnedItemCount,
		StartedAt:         r.startedAt,
		TakenAt:           time.Now(),
	}
	for i, c := range r.byKind {
		total := c.success + c.cancelled + c.failure
		mean := 0.0
		if total > 0 {
			mean = float64(c.latencyNs) / float64(total)
		}
		out.ByKind[i] = KindSnapshot{
			Kind:          OperationKind(i),
			Success:       c.success,
			Cancelled:     c.cancelled,
			Failure:       c.failure,
			MeanLatencyNs: mean,
		}
	}
	return out
}

// Reset zeros every counter and resets the started-at timestamp to now.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byKind = [operationKindCount]counters{}
	r.cacheHitCount = 0
	r.returnedItemCount = 0
	r.startedAt = time.Now()
}
