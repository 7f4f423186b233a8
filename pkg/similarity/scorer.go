// Package similarity implements the pure scoring functions behind fuzzy
// matching: edit distance, choseong k-gram overlap, keyboard-distance
// tolerance, and jamo-level distance, combined into one weighted score.
package similarity

import (
	"strings"

	"github.com/yeojin-dev/hangulsearch/internal/choseong"
	"github.com/yeojin-dev/hangulsearch/internal/jamo"
	"github.com/yeojin-dev/hangulsearch/internal/layout"
)

const minDenominator = 1e-6

// Weight domain bounds (data model §3): core signal weights must stay
// positive enough to matter without letting one signal dominate; bonus
// weights are capped well below 1 so they can only nudge, not override,
// the weighted core.
const (
	minCoreWeight  = 0.01
	maxCoreWeight  = 2.0
	minBonusWeight = 0.0
	maxBonusWeight = 0.5
)

// Weights are the six tunable coefficients behind a score: four core
// signal weights and two match-quality bonuses. Fields are declared in
// alphabetical order of their JSON tag so encoders that preserve struct
// field order (encoding/json.MarshalIndent) emit sorted keys.
type Weights struct {
	EditDistance float64 `json:"editDistance"`
	Exact        float64 `json:"exact"`
	Jaccard      float64 `json:"jaccard"`
	Jamo         float64 `json:"jamo"`
	Keyboard     float64 `json:"keyboard"`
	Prefix       float64 `json:"prefix"`
}

// DefaultWeights returns a balanced starting point: core signals weighted
// equally, modest exact/prefix bonuses.
func DefaultWeights() Weights {
	return Weights{
		EditDistance: 1.0,
		Jaccard:      1.0,
		Keyboard:     1.0,
		Jamo:         1.0,
		Exact:        0.3,
		Prefix:       0.15,
	}
}

// ClampWeights restricts w to the weight domain: core signal weights to
// [0.01, 2.0], bonus weights to [0, 0.5].
func ClampWeights(w Weights) Weights {
	return Weights{
		EditDistance: clip(w.EditDistance, minCoreWeight, maxCoreWeight),
		Jaccard:      clip(w.Jaccard, minCoreWeight, maxCoreWeight),
		Keyboard:     clip(w.Keyboard, minCoreWeight, maxCoreWeight),
		Jamo:         clip(w.Jamo, minCoreWeight, maxCoreWeight),
		Exact:        clip(w.Exact, minBonusWeight, maxBonusWeight),
		Prefix:       clip(w.Prefix, minBonusWeight, maxBonusWeight),
	}
}

// Breakdown is the full set of signals behind one query/target score.
type Breakdown struct {
	EditSim      float64
	JaccardSim   float64
	KeyboardSim  float64
	JamoSim      float64
	PrefixBonus  float64
	ExactBonus   float64
	WeightedCore float64
	Total        float64
}

// Explain computes the full score breakdown for one query/target pair,
// along with a short human-readable explanation of the dominant signal.
// queryChoseong and targetChoseong must already be choseong projections of
// query and target (see internal/choseong.Extract); Explain does not
// recompute them.
func Explain(query, target, queryChoseong, targetChoseong string, weights Weights) (Breakdown, string) {
	normQuery := choseong.NormalizedSearchToken(query)
	normTarget := choseong.NormalizedSearchToken(target)

	editSim := editSimilarity(normQuery, normTarget)
	jaccardSim := JaccardSimilarity(KGrams(queryChoseong, 2), KGrams(targetChoseong, 2))
	keyboardSim := keyboardSimilarity(normQuery, normTarget)
	jamoSim := jamoSimilarity(normQuery, normTarget)

	denom := weights.EditDistance + weights.Jaccard + weights.Keyboard + weights.Jamo
	if denom < minDenominator {
		denom = minDenominator
	}
	weightedCore := (editSim*weights.EditDistance +
		jaccardSim*weights.Jaccard +
		keyboardSim*weights.Keyboard +
		jamoSim*weights.Jamo) / denom

	exactBonus := 0.0
	if normQuery == normTarget {
		exactBonus = weights.Exact
	}

	prefixBonus := 0.0
	if exactBonus == 0 && (strings.HasPrefix(normTarget, normQuery) || strings.HasPrefix(targetChoseong, queryChoseong)) {
		prefixBonus = weights.Prefix
	}

	total := clip(weightedCore+exactBonus+prefixBonus, 0, 1)

	b := Breakdown{
		EditSim:      editSim,
		JaccardSim:   jaccardSim,
		KeyboardSim:  keyboardSim,
		JamoSim:      jamoSim,
		PrefixBonus:  prefixBonus,
		ExactBonus:   exactBonus,
		WeightedCore: weightedCore,
		Total:        total,
	}
	return b, explainDetail(b)
}

func explainDetail(b Breakdown) string {
	switch {
	case b.ExactBonus > 0:
		return "exact match"
	case b.PrefixBonus > 0:
		return "prefix match"
	case b.KeyboardSim >= b.EditSim && b.KeyboardSim >= b.JaccardSim && b.KeyboardSim >= b.JamoSim:
		return "keyboard-distance tolerant match"
	case b.JamoSim >= b.EditSim && b.JamoSim >= b.JaccardSim:
		return "jamo-level tolerant match"
	case b.JaccardSim >= b.EditSim:
		return "choseong overlap match"
	default:
		return "edit-distance match"
	}
}

func editSimilarity(a, b string) float64 {
	ar, br := []rune(a), []rune(b)
	maxLen := len(ar)
	if len(br) > maxLen {
		maxLen = len(br)
	}
	if maxLen == 0 {
		return 1
	}
	return 1 - float64(Levenshtein(ar, br))/float64(maxLen)
}

// keyboardSimilarity converts both sides to their Latin QWERTY projection,
// restricts to runes with a key mapping, and runs the keyboard-weighted
// Levenshtein.
func keyboardSimilarity(a, b string) float64 {
	qa := filterMapped(strings.ToLower(layout.ConvertHangulToQwerty(a)))
	qb := filterMapped(strings.ToLower(layout.ConvertHangulToQwerty(b)))
	maxLen := len(qa)
	if len(qb) > maxLen {
		maxLen = len(qb)
	}
	if maxLen == 0 {
		return 1
	}
	d := WeightedLevenshtein(qa, qb, layout.SubstitutionCost)
	return 1 - d/float64(maxLen)
}

func filterMapped(s string) []rune {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if _, ok := layout.PointForKey(r); ok {
			out = append(out, r)
		}
	}
	return out
}

func jamoSimilarity(a, b string) float64 {
	ja := jamo.Disassemble(a, false)
	jb := jamo.Disassemble(b, false)
	if len(ja) == 0 || len(jb) == 0 {
		return editSimilarity(a, b)
	}
	maxLen := len(ja)
	if len(jb) > maxLen {
		maxLen = len(jb)
	}
	return 1 - float64(Levenshtein(ja, jb))/float64(maxLen)
}

// CoarseSimilarity is the cheap prefilter heuristic: character-set Jaccard
// overlap on choseong strings (or raw strings, if the caller passes raw
// fallback values through qc/kc), a length-closeness term, and a
// first-character bonus.
func CoarseSimilarity(q, qc, k, kc string) float64 {
	overlap := CharSetJaccard(qc, kc)
	if overlap == 0 {
		return 0
	}
	lengthCloseness := lengthCloseness(qc, kc)
	firstEq := firstRune(q) != 0 && firstRune(q) == firstRune(k)
	bonus := 0.0
	if firstEq {
		bonus = 0.1
	}
	score := 0.65*overlap + 0.35*lengthCloseness + bonus
	if score > 1 {
		score = 1
	}
	return score
}

func lengthCloseness(a, b string) float64 {
	la, lb := len([]rune(a)), len([]rune(b))
	maxLen := la
	if lb > maxLen {
		maxLen = lb
	}
	if maxLen == 0 {
		return 1
	}
	diff := la - lb
	if diff < 0 {
		diff = -diff
	}
	return 1 - float64(diff)/float64(maxLen)
}

func firstRune(s string) rune {
	for _, r := range s {
		return r
	}
	return 0
}

func clip(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
