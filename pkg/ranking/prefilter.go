package ranking

import (
	"sort"
	"strings"

	"github.com/yeojin-dev/hangulsearch/pkg/similarity"
)

type scoredCandidate struct {
	index int
	score float64
}

// prefilterCandidates narrows base down to at most target entries, when
// base is larger than target: strong matches (the raw or choseong key
// equals, starts with, or contains the query) come first, shortest key
// first, cut to target if there are more of them; any room left is filled
// from coarse-scored candidates, highest coarse score
// first. If neither strong nor coarse candidates exist, it falls back to
// the first limit entries of base.
func prefilterCandidates(base []int, query, queryChoseong string, source Source, target, limit int) []int {
	if len(base) <= target {
		return base
	}

	var strong []int
	var coarse []scoredCandidate

	for _, idx := range base {
		rawKey := source.NormalizedKey(idx)
		choKey := source.ChoseongKey(idx)

		if isStrongMatch(query, queryChoseong, rawKey, choKey) {
			strong = append(strong, idx)
			continue
		}
		score := similarity.CoarseSimilarity(query, queryChoseong, rawKey, choKey)
		if score > 0 {
			coarse = append(coarse, scoredCandidate{index: idx, score: score})
		}
	}

	sort.Slice(strong, func(i, j int) bool {
		li, lj := len([]rune(source.NormalizedKey(strong[i]))), len([]rune(source.NormalizedKey(strong[j])))
		if li != lj {
			return li < lj
		}
		return strong[i] < strong[j]
	})
	sort.Slice(coarse, func(i, j int) bool {
		if coarse[i].score != coarse[j].score {
			return coarse[i].score > coarse[j].score
		}
		return coarse[i].index < coarse[j].index
	})

	if len(strong) == 0 && len(coarse) == 0 {
		if len(base) <= limit {
			return base
		}
		return base[:limit]
	}

	result := make([]int, 0, target)
	result = append(result, strong...)
	if len(result) > target {
		result = result[:target]
	}
	for _, c := range coarse {
		if len(result) >= target {
			break
		}
		result = append(result, c.index)
	}
	return result
}

func isStrongMatch(query, queryChoseong, rawKey, choKey string) bool {
	if query == rawKey || strings.HasPrefix(rawKey, query) || strings.Contains(rawKey, query) {
		return true
	}
	if queryChoseong != "" && (queryChoseong == choKey || strings.HasPrefix(choKey, queryChoseong) || strings.Contains(choKey, queryChoseong)) {
		return true
	}
	return false
}
