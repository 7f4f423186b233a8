package jamo

import "strings"

// Disassemble splits every modern Hangul syllable in s into its simple jamo
// components, in order, splitting any compound medial or compound final into
// its two declared components (so the two components stay adjacent in the
// output). Hangul Compatibility Jamo code points pass through unchanged.
// Other code points are emitted only when preserveNonHangul is true.
func Disassemble(s string, preserveNonHangul bool) []rune {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		switch {
		case IsSyllable(r):
			t, _ := Decompose(r)
			out = append(out, Initials[t.L])
			if pair, ok := DecomposeVowel(Medials[t.V]); ok {
				out = append(out, pair.First, pair.Second)
			} else {
				out = append(out, Medials[t.V])
			}
			if t.T != 0 {
				if pair, ok := DecomposeFinal(Finals[t.T]); ok {
					out = append(out, pair.First, pair.Second)
				} else {
					out = append(out, Finals[t.T])
				}
			}
		case IsCompatConsonant(r) || IsCompatVowel(r):
			out = append(out, r)
		default:
			if preserveNonHangul {
				out = append(out, r)
			}
		}
	}
	return out
}

// Assembler reconstructs Hangul syllables from a stream of simple jamo,
// applying the LVT merge rules: two medial components that form a declared
// compound vowel merge into one medial, two final components that form a
// declared compound final merge into one final, and a pending simple final
// is reassigned to the next syllable's initial when a vowel follows it
// (splitting a compound final's last component off to do so), mirroring how
// a two-set Korean keyboard greedily assembles keystrokes into syllables.
type Assembler struct {
	b          strings.Builder
	l, v, t    int  // -1 when absent; otherwise an index into Initials/Medials/Finals
	hasL, hasV bool
}

// NewAssembler returns an empty Assembler.
func NewAssembler() *Assembler {
	return &Assembler{l: -1, v: -1, t: -1}
}

// Feed appends one jamo or passthrough code point to the stream.
func (a *Assembler) Feed(r rune) {
	switch {
	case a.hasV && a.t >= 0 && isVowelRune(r):
		a.reassignFinalAndStartVowel(r)
	case a.hasL && a.hasV && isVowelRune(r):
		if merged, ok := ComposeVowel(Medials[a.v], r); ok {
			a.v = MedialIndex(merged)
			return
		}
		a.flushSyllable()
		a.feedFresh(r)
	case a.hasL && !a.hasV && isVowelRune(r):
		a.v = MedialIndex(r)
		a.hasV = true
	case a.hasL && a.hasV && a.t >= 0 && isConsonantRune(r):
		if merged, ok := ComposeFinal(Finals[a.t], r); ok {
			a.t = FinalIndex(merged)
			return
		}
		a.flushSyllable()
		a.feedFresh(r)
	case a.hasL && a.hasV && isConsonantRune(r):
		a.t = FinalIndex(r)
	case a.hasL && !a.hasV && isConsonantRune(r):
		a.flushLoneConsonant()
		a.feedFresh(r)
	default:
		a.flushSyllable()
		a.feedFresh(r)
	}
}

func (a *Assembler) feedFresh(r rune) {
	switch {
	case isConsonantRune(r):
		a.l = InitialIndex(r)
		a.hasL, a.hasV, a.t = true, false, -1
	case isVowelRune(r):
		a.b.WriteRune(r) // lone vowel, no initial: passes through verbatim
	default:
		a.b.WriteRune(r)
	}
}

// reassignFinalAndStartVowel handles "L V T" + vowel: T (or its last
// component, if compound) becomes the next syllable's initial.
func (a *Assembler) reassignFinalAndStartVowel(r rune) {
	finalRune := Finals[a.t]
	var nextL rune
	if pair, ok := DecomposeFinal(finalRune); ok {
		a.t = FinalIndex(pair.First)
		nextL = pair.Second
	} else {
		a.t = -1
		nextL = finalRune
	}
	a.flushSyllable()
	a.l = InitialIndex(nextL)
	a.hasL = true
	a.v = MedialIndex(r)
	a.hasV = true
}

func (a *Assembler) flushSyllable() {
	switch {
	case a.hasL && a.hasV:
		final := 0
		if a.t >= 0 {
			final = a.t
		}
		if s, ok := Compose(a.l, a.v, final); ok {
			a.b.WriteRune(s)
		}
	case a.hasL:
		a.b.WriteRune(Initials[a.l])
	}
	a.l, a.v, a.t = -1, -1, -1
	a.hasL, a.hasV = false, false
}

func (a *Assembler) flushLoneConsonant() {
	if a.hasL {
		a.b.WriteRune(Initials[a.l])
	}
	a.l, a.v, a.t = -1, -1, -1
	a.hasL, a.hasV = false, false
}

// String finalizes and returns the assembled text. The Assembler must not
// be fed further input after calling String.
func (a *Assembler) String() string {
	a.flushSyllable()
	return a.b.String()
}

func isConsonantRune(r rune) bool {
	return InitialIndex(r) >= 0
}

func isVowelRune(r rune) bool {
	return MedialIndex(r) >= 0
}

// Assemble is a convenience wrapper around Assembler for a full jamo slice.
func Assemble(jamos []rune) string {
	a := NewAssembler()
	for _, r := range jamos {
		a.Feed(r)
	}
	return a.String()
}
