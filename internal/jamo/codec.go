package jamo

import "errors"

// ErrInvalidComponents is returned by ComposeStrict when a jamo index is
// out of its declared range.
var ErrInvalidComponents = errors.New("jamo: invalid (L,V,T) components")

// Triple is a decomposed syllable: L is the initial index [0,19), V is the
// medial index [0,21), T is the final index [0,28) where 0 means no final.
type Triple struct {
	L, V, T int
}

// Decompose returns the (L,V,T) index triple for a modern Hangul syllable
// code point. It is total on the declared block and absent (ok=false)
// everywhere else.
func Decompose(s rune) (Triple, bool) {
	if !IsSyllable(s) {
		return Triple{}, false
	}
	offset := int(s) - SyllableBase
	l := offset / (medialCount * finalCount)
	v := (offset / finalCount) % medialCount
	t := offset % finalCount
	return Triple{L: l, V: v, T: t}, true
}

// Compose returns the syllable code point for a valid (L,V,T) index triple.
// It is absent (ok=false) when any index falls outside its declared range.
func Compose(l, v, t int) (rune, bool) {
	if l < 0 || l >= initialCount || v < 0 || v >= medialCount || t < 0 || t >= finalCount {
		return 0, false
	}
	offset := l*medialCount*finalCount + v*finalCount + t
	return rune(SyllableBase + offset), true
}

// ComposeStrict is Compose but returns ErrInvalidComponents instead of a
// false ok, for callers that want boundary-style error handling over a
// total query (see the strict syllable builder in SPEC_FULL.md §7).
func ComposeStrict(l, v, t int) (rune, error) {
	s, ok := Compose(l, v, t)
	if !ok {
		return 0, ErrInvalidComponents
	}
	return s, nil
}

// InitialOf returns the leading-consonant jamo of a modern Hangul syllable.
// Absent (ok=false) for non-syllable code points.
func InitialOf(s rune) (rune, bool) {
	t, ok := Decompose(s)
	if !ok {
		return 0, false
	}
	return Initials[t.L], true
}
