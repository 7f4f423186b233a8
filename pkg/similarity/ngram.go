package similarity

// KGrams returns the set of overlapping k-length rune windows of s. Strings
// shorter than k have no k-grams (the returned set is empty).
func KGrams(s string, k int) map[string]struct{} {
	runes := []rune(s)
	grams := make(map[string]struct{})
	if k <= 0 || len(runes) < k {
		return grams
	}
	for i := 0; i+k <= len(runes); i++ {
		grams[string(runes[i:i+k])] = struct{}{}
	}
	return grams
}

// JaccardSimilarity computes |a∩b| / |a∪b| over two k-gram sets. If either
// side has no k-grams, the result is 1 when both are empty (treated as
// equal) and 0 otherwise.
func JaccardSimilarity(a, b map[string]struct{}) float64 {
	if len(a) == 0 || len(b) == 0 {
		if len(a) == 0 && len(b) == 0 {
			return 1
		}
		return 0
	}

	intersection := 0
	for g := range a {
		if _, ok := b[g]; ok {
			intersection++
		}
	}
	union := len(a) + len(b) - intersection
	if union == 0 {
		return 1
	}
	return float64(intersection) / float64(union)
}

// CharSetJaccard computes Jaccard similarity over the distinct-rune sets of
// a and b, used by CoarseSimilarity's overlap term.
func CharSetJaccard(a, b string) float64 {
	setA := runeSet(a)
	setB := runeSet(b)
	if len(setA) == 0 || len(setB) == 0 {
		if len(setA) == 0 && len(setB) == 0 {
			return 1
		}
		return 0
	}
	intersection := 0
	for r := range setA {
		if _, ok := setB[r]; ok {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection
	if union == 0 {
		return 1
	}
	return float64(intersection) / float64(union)
}

func runeSet(s string) map[rune]struct{} {
	set := make(map[rune]struct{}, len(s))
	for _, r := range s {
		set[r] = struct{}{}
	}
	return set
}
