package feedback

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/yeojin-dev/hangulsearch/internal/choseong"
)

// Store is an append-only ring of feedback events bounded by a maximum
// count and a time-to-live. All mutators serialize under mu; readers take
// a consistent snapshot under the same lock.
type Store struct {
	events            []Event
	maxEvents         int
	ttl               time.Duration
	droppedByTTL      int64
	droppedByCapacity int64
	mu                sync.Mutex
}

// New creates a Store bounded by maxEvents entries and ttl age. maxEvents
// below 1 is coerced to 1; a non-positive ttl disables age-based eviction.
func New(maxEvents int, ttl time.Duration) *Store {
	if maxEvents < 1 {
		maxEvents = 1
	}
	return &Store{maxEvents: maxEvents, ttl: ttl}
}

// Record appends one event, then evicts by TTL and then by capacity.
func (s *Store) Record(event Event) {
	s.RecordBatch([]Event{event})
}

// RecordBatch appends events in order, then evicts by TTL and then by
// capacity, as a single atomic operation.
func (s *Store) RecordBatch(events []Event) {
	if len(events) == 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.events = append(s.events, events...)
	s.evictByTTLLocked(time.Now())
	s.evictByCapacityLocked()
}

func (s *Store) evictByTTLLocked(now time.Time) {
	if s.ttl <= 0 {
		return
	}
	cutoff := now.Add(-s.ttl)
	kept := s.events[:0:0]
	for _, e := range s.events {
		if e.Timestamp.Before(cutoff) {
			s.droppedByTTL++
			continue
		}
		kept = append(kept, e)
	}
	s.events = kept
}

func (s *Store) evictByCapacityLocked() {
	if len(s.events) <= s.maxEvents {
		return
	}
	excess := len(s.events) - s.maxEvents
	s.droppedByCapacity += int64(excess)
	s.events = append([]Event(nil), s.events[excess:]...)
	log.Debugf("feedback store trimmed %d oldest events to stay at capacity %d", excess, s.maxEvents)
}

// Snapshot is a consistent point-in-time copy of the store's events and
// eviction counters.
type Snapshot struct {
	Events            []Event
	DroppedByTTL      int64
	DroppedByCapacity int64
}

// Snapshot returns a copy of the store's current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	events := make([]Event, len(s.events))
	copy(events, s.events)
	return Snapshot{
		Events:            events,
		DroppedByTTL:      s.droppedByTTL,
		DroppedByCapacity: s.droppedByCapacity,
	}
}

func normalizedPairKey(query, selectedKey string) string {
	return choseong.NormalizedSearchToken(query) + "\x00" + choseong.NormalizedSearchToken(selectedKey)
}
