package search

import (
	"sort"

	"github.com/tchap/go-patricia/v2/patricia"

	"github.com/yeojin-dev/hangulsearch/internal/cache"
	"github.com/yeojin-dev/hangulsearch/internal/choseong"
	"github.com/yeojin-dev/hangulsearch/internal/lazy"
	"github.com/yeojin-dev/hangulsearch/pkg/similarity"
	"github.com/yeojin-dev/hangulsearch/pkg/telemetry"
)

// Index is an immutable search index over a fixed item set, built once
// from (items, key projection, policy). T is the caller's opaque item type.
type Index[T any] struct {
	items          []T
	rawKeys        []string
	normalizedKeys []string
	policy         SearchPolicy

	choseongVector []string           // populated for Precompute/Ngram
	materializer   *lazy.Materializer // populated for LazyCache

	ngramPostings map[string][]int // sorted postings, populated for Ngram
	trie          *patricia.Trie   // populated for Precompute; not consulted by Search, which scans choseongVector

	resultCache *cache.LRU[string, []int]
	telemetry   *telemetry.Recorder
}

// New builds an Index from items using keyFn to project each item's
// search key, under policy.
func New[T any](items []T, keyFn func(T) string, policy SearchPolicy) *Index[T] {
	rawKeys := make([]string, len(items))
	for i, item := range items {
		rawKeys[i] = keyFn(item)
	}
	return newFromRawKeys(items, rawKeys, policy)
}

func newFromRawKeys[T any](items []T, rawKeys []string, policy SearchPolicy) *Index[T] {
	idx := &Index[T]{
		items:          items,
		rawKeys:        rawKeys,
		normalizedKeys: make([]string, len(items)),
		policy:         policy,
	}

	for i, raw := range rawKeys {
		idx.normalizedKeys[i] = choseong.NormalizedSearchToken(raw)
	}

	if policy.Cache == LruCache {
		capacity := policy.CacheCapacity
		idx.resultCache = cache.New[string, []int](capacity)
	}

	switch policy.IndexStrategy {
	case Precompute:
		idx.buildChoseongVector()
		idx.buildTrie()
	case Ngram:
		idx.buildChoseongVector()
		idx.buildNgramPostings()
	case LazyCache:
		idx.materializer = lazy.New(func() []string { return idx.computeChoseongVector() })
		if policy.LazyWarmup == BackgroundWarmup {
			idx.materializer.StartBackgroundBuild()
		}
	}

	return idx
}

func (idx *Index[T]) computeChoseongVector() []string {
	vector := make([]string, len(idx.items))
	for i, raw := range idx.rawKeys {
		vector[i] = choseong.Extract(raw, idx.policy.ChoseongOptions)
	}
	return vector
}

func (idx *Index[T]) buildChoseongVector() {
	idx.choseongVector = idx.computeChoseongVector()
}

func (idx *Index[T]) buildTrie() {
	idx.trie = patricia.NewTrie()
	for i, key := range idx.choseongVector {
		if key == "" {
			continue
		}
		prefix := patricia.Prefix(key)
		if existing := idx.trie.Get(prefix); existing != nil {
			list := existing.(*[]int)
			*list = append(*list, i)
			continue
		}
		list := []int{i}
		idx.trie.Insert(prefix, &list)
	}
}

func (idx *Index[T]) buildNgramPostings() {
	k := idx.policy.clampedNgramSize()
	idx.ngramPostings = make(map[string][]int)
	for i, key := range idx.choseongVector {
		for g := range similarity.KGrams(key, k) {
			idx.ngramPostings[g] = append(idx.ngramPostings[g], i)
		}
	}
	for g, postings := range idx.ngramPostings {
		sort.Ints(postings)
		idx.ngramPostings[g] = postings
	}
}

// Size returns the number of items in the index.
func (idx *Index[T]) Size() int { return len(idx.items) }

// RawKey returns item i's un-normalized key.
func (idx *Index[T]) RawKey(i int) string { return idx.rawKeys[i] }

// NormalizedKey returns item i's canonical-composed, case-folded key.
func (idx *Index[T]) NormalizedKey(i int) string { return idx.normalizedKeys[i] }

// ChoseongKey returns item i's choseong projection, resolving it through
// the LazyCache materializer (blocking) if the index uses that strategy.
func (idx *Index[T]) ChoseongKey(i int) string {
	if idx.choseongVector != nil {
		return idx.choseongVector[i]
	}
	if idx.materializer != nil {
		return idx.materializer.GetOrBuild()[i]
	}
	return choseong.Extract(idx.rawKeys[i], idx.policy.ChoseongOptions)
}

// ProjectChoseong applies this index's ChoseongOptions to an arbitrary
// string, the same way item keys were projected at construction.
func (idx *Index[T]) ProjectChoseong(s string) string {
	return choseong.Extract(s, idx.policy.ChoseongOptions)
}

// Item returns item i.
func (idx *Index[T]) Item(i int) T { return idx.items[i] }
