package search

// computeCandidateIndices returns the base candidate index set for a
// choseong-projected query: for Ngram, the sorted-merge intersection of
// the query's k-gram postings (all indices if the query has no k-grams,
// empty if any gram is unposted); for Precompute/LazyCache, every index.
func (idx *Index[T]) computeCandidateIndices(choseongQuery string) []int {
	if idx.policy.IndexStrategy != Ngram {
		return idx.allIndices()
	}

	k := idx.policy.clampedNgramSize()
	grams := kGramList(choseongQuery, k)
	if len(grams) == 0 {
		return idx.allIndices()
	}

	result := idx.ngramPostings[grams[0]]
	if result == nil {
		return nil
	}
	for _, g := range grams[1:] {
		postings := idx.ngramPostings[g]
		if len(postings) == 0 {
			return nil
		}
		result = sortedIntersect(result, postings)
		if len(result) == 0 {
			return nil
		}
	}
	return result
}

func (idx *Index[T]) allIndices() []int {
	all := make([]int, len(idx.items))
	for i := range all {
		all[i] = i
	}
	return all
}

// CandidateIndices implements pkg/ranking.Source: the base candidate set
// for one query variant's choseong projection, bounded by maxCandidateScan.
func (idx *Index[T]) CandidateIndices(choseongVariant, rawVariant string) []int {
	candidates := idx.computeCandidateIndices(choseongVariant)
	return idx.applyMaxCandidateScan(candidates)
}

func (idx *Index[T]) applyMaxCandidateScan(candidates []int) []int {
	if idx.policy.MaxCandidateScan > 0 && len(candidates) > idx.policy.MaxCandidateScan {
		return candidates[:idx.policy.MaxCandidateScan]
	}
	return candidates
}

func kGramList(s string, k int) []string {
	runes := []rune(s)
	if k <= 0 || len(runes) < k {
		return nil
	}
	grams := make([]string, 0, len(runes)-k+1)
	for i := 0; i+k <= len(runes); i++ {
		grams = append(grams, string(runes[i:i+k]))
	}
	return grams
}

// sortedIntersect intersects two ascending-sorted, duplicate-free int
// slices by merge.
func sortedIntersect(a, b []int) []int {
	out := make([]int, 0, minInt(len(a), len(b)))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] == b[j]:
			out = append(out, a[i])
			i++
			j++
		case a[i] < b[j]:
			i++
		default:
			j++
		}
	}
	return out
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
