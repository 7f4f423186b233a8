// Package choseong projects strings onto their leading-consonant (choseong)
// form and provides the canonical-form normalization all matching in this
// module compares against.
package choseong

import (
	"strings"
	"unicode"

	"github.com/yeojin-dev/hangulsearch/internal/jamo"
)

// WhitespacePolicy controls how whitespace is handled while projecting a
// string onto its choseong form.
type WhitespacePolicy int

const (
	// WhitespaceKeep preserves whitespace runs exactly as they appear,
	// subject to preserveNonHangul.
	WhitespaceKeep WhitespacePolicy = iota
	// WhitespaceNormalize collapses any run of whitespace to a single
	// space, and never emits a leading space.
	WhitespaceNormalize
	// WhitespaceRemove drops all whitespace.
	WhitespaceRemove
)

// Options configures choseong extraction.
type Options struct {
	// PreserveNonHangul controls whether non-Hangul, non-whitespace code
	// points (and, under WhitespaceKeep, whitespace) are copied through.
	PreserveNonHangul bool
	WhitespacePolicy  WhitespacePolicy
}

// DefaultOptions returns the conventional extraction policy: non-Hangul
// code points are dropped and whitespace is normalized.
func DefaultOptions() Options {
	return Options{PreserveNonHangul: false, WhitespacePolicy: WhitespaceNormalize}
}

// Extract projects s onto its choseong string under opts.
func Extract(s string, opts Options) string {
	var b strings.Builder
	prevWasSpace := false

	for _, r := range s {
		switch {
		case jamo.IsSyllable(r):
			init, _ := jamo.InitialOf(r)
			b.WriteRune(init)
			prevWasSpace = false
		case jamo.IsCompatConsonant(r):
			b.WriteRune(r)
			prevWasSpace = false
		case unicode.IsSpace(r):
			switch opts.WhitespacePolicy {
			case WhitespaceKeep:
				if opts.PreserveNonHangul {
					b.WriteRune(r)
				}
				prevWasSpace = true
			case WhitespaceNormalize:
				if b.Len() > 0 && !prevWasSpace {
					b.WriteRune(' ')
				}
				prevWasSpace = true
			case WhitespaceRemove:
				// dropped entirely; prevWasSpace intentionally untouched
			}
		default:
			if opts.PreserveNonHangul {
				b.WriteRune(r)
			}
			prevWasSpace = false
		}
	}
	return b.String()
}

// NormalizedSearchToken returns the canonical comparison form of s:
// compatibility-decomposed jamo runs are recomposed into precomposed
// syllables, then the result is case-folded. All matching in this module
// compares NormalizedSearchToken outputs rather than raw strings.
func NormalizedSearchToken(s string) string {
	composed := jamo.Assemble(jamo.Disassemble(s, true))
	return strings.ToLower(composed)
}
