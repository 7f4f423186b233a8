package ranking

import (
	"github.com/yeojin-dev/hangulsearch/internal/choseong"
	"github.com/yeojin-dev/hangulsearch/internal/layout"
)

// queryVariants returns the normalized query, and, if includeLayoutVariants
// is set, its QWERTY->Hangul and Hangul->QWERTY conversions, deduplicated
// in first-seen order.
func queryVariants(query string, includeLayoutVariants bool) []string {
	normalized := choseong.NormalizedSearchToken(query)
	seen := map[string]bool{normalized: true}
	variants := []string{normalized}

	if !includeLayoutVariants {
		return variants
	}

	candidates := []string{
		choseong.NormalizedSearchToken(layout.ConvertQwertyToHangul(query)),
		choseong.NormalizedSearchToken(layout.ConvertHangulToQwerty(query)),
	}
	for _, v := range candidates {
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		variants = append(variants, v)
	}
	return variants
}
