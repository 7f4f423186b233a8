// Package search implements the immutable, once-built search index: choseong
// substring/prefix/exact matching with pluggable indexing strategies, an
// optional LRU result cache, and the fuzzy ranking pipeline built on top of
// it (pkg/ranking, pkg/similarity).
package search

import (
	"strings"

	"github.com/yeojin-dev/hangulsearch/internal/choseong"
)

// Mode selects how a candidate's choseong key is compared against the
// bounded query.
type Mode int

const (
	Contains Mode = iota
	Prefix
	Exact
)

func (m Mode) String() string {
	switch m {
	case Contains:
		return "contains"
	case Prefix:
		return "prefix"
	case Exact:
		return "exact"
	default:
		return "unknown"
	}
}

// Matches reports whether key satisfies the mode's relationship to query.
func (m Mode) Matches(key, query string) bool {
	switch m {
	case Exact:
		return key == query
	case Prefix:
		return strings.HasPrefix(key, query)
	default:
		return strings.Contains(key, query)
	}
}

// IndexStrategyKind selects how the index's choseong keys, and any
// acceleration structure over them, are built.
type IndexStrategyKind int

const (
	Precompute IndexStrategyKind = iota
	LazyCache
	Ngram
)

// CacheKind selects the result-cache behavior.
type CacheKind int

const (
	NoCache CacheKind = iota
	LruCache
)

// LazyWarmupKind selects whether a LazyCache index starts a background
// build at construction time.
type LazyWarmupKind int

const (
	NoWarmup LazyWarmupKind = iota
	BackgroundWarmup
)

// SearchPolicy configures one Index's construction.
type SearchPolicy struct {
	ChoseongOptions choseong.Options

	IndexStrategy IndexStrategyKind
	NgramSize     int // used when IndexStrategy == Ngram; clamped to {2,3}

	Cache         CacheKind
	CacheCapacity int // used when Cache == LruCache

	LazyWarmup LazyWarmupKind

	MaxQueryLength   int // 0 means unbounded
	MaxCandidateScan int // 0 means unbounded
}

// DefaultPolicy returns a Precompute strategy with no cache, the
// conventional choseong projection options, and no bounds.
func DefaultPolicy() SearchPolicy {
	return SearchPolicy{
		ChoseongOptions: choseong.DefaultOptions(),
		IndexStrategy:   Precompute,
	}
}

func (p SearchPolicy) clampedNgramSize() int {
	if p.NgramSize == 3 {
		return 3
	}
	return 2
}

