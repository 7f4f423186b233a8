package layout

import (
	"strings"

	"github.com/yeojin-dev/hangulsearch/internal/jamo"
)

// ConvertQwertyToHangul maps each Latin keystroke in s to its jamo, then
// runs the resulting jamo stream through the streaming assembler (see
// internal/jamo.Assembler) so compound vowels and finals merge the same way
// a two-set keyboard driver would. Keys with no jamo mapping pass through
// unchanged, flushing any syllable in progress first.
func ConvertQwertyToHangul(s string) string {
	a := jamo.NewAssembler()
	for _, r := range s {
		if j, ok := JamoForKey(r); ok {
			a.Feed(j)
			continue
		}
		a.Feed(r)
	}
	return a.String()
}

// ConvertHangulToQwerty disassembles s (compound vowels/finals split into
// their two components, which stay adjacent) and writes each resulting
// jamo to its Latin key. Code points with no key mapping are preserved
// verbatim.
func ConvertHangulToQwerty(s string) string {
	var b strings.Builder
	for _, r := range jamo.Disassemble(s, true) {
		if k, ok := KeyForJamo(r); ok {
			b.WriteRune(k)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
