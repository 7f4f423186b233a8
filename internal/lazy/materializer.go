// Package lazy provides a one-shot background materializer: a value that is
// either built eagerly inline by the first caller that needs it, or built
// once in the background while other callers wait, whichever comes first.
// It backs the search index's LazyCache choseong-key strategy (pkg/search).
package lazy

import "sync"

type state int

const (
	empty state = iota
	building
	ready
)

// Materializer lazily builds a []string exactly once, regardless of how
// many goroutines request or trigger the build.
type Materializer struct {
	mu     sync.Mutex
	cond   *sync.Cond
	state  state
	values []string
	build  func() []string
}

// New returns an empty Materializer that computes its value with build.
func New(build func() []string) *Materializer {
	m := &Materializer{state: empty, build: build}
	m.cond = sync.NewCond(&m.mu)
	return m
}

// StartBackgroundBuild transitions empty->building and spawns a goroutine
// that computes the value and stores it. A no-op if a build is already in
// flight or the value is already ready.
func (m *Materializer) StartBackgroundBuild() {
	m.mu.Lock()
	if m.state != empty {
		m.mu.Unlock()
		return
	}
	m.state = building
	m.mu.Unlock()

	go func() {
		values := m.build()
		m.storeBuiltKeysIfNeeded(values)
	}()
}

// ReadyKeys returns the materialized values iff the state is ready.
func (m *Materializer) ReadyKeys() ([]string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != ready {
		return nil, false
	}
	return m.values, true
}

// GetOrBuild returns the materialized value, building it if necessary: if
// ready it returns immediately; if building it waits on the broadcast; if
// empty it builds inline on the calling goroutine.
func (m *Materializer) GetOrBuild() []string {
	m.mu.Lock()
	switch m.state {
	case ready:
		defer m.mu.Unlock()
		return m.values
	case building:
		for m.state == building {
			m.cond.Wait()
		}
		defer m.mu.Unlock()
		return m.values
	default: // empty
		m.state = building
		m.mu.Unlock()
		values := m.build()
		m.storeBuiltKeysIfNeeded(values)
		return values
	}
}

// TryStore offers an externally-computed value to the materializer: if
// it isn't already ready, values becomes the materialized value and any
// waiters are woken; otherwise values is discarded. Lets a caller that
// progressively built the full key vector itself (see pkg/search's
// cancellable search path) hand it off instead of leaving the
// materializer empty.
func (m *Materializer) TryStore(values []string) {
	m.storeBuiltKeysIfNeeded(values)
}

// storeBuiltKeysIfNeeded idempotently transitions to ready and wakes all
// waiters. Calling it more than once (e.g. a background build racing an
// inline build that already completed) is safe: only the first call wins.
func (m *Materializer) storeBuiltKeysIfNeeded(values []string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == ready {
		return
	}
	m.values = values
	m.state = ready
	m.cond.Broadcast()
}

// IsReady reports whether the value has been materialized.
func (m *Materializer) IsReady() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state == ready
}
