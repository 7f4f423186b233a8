package jamo

// Pair is a two-jamo decomposition of a compound vowel or compound final.
type Pair struct {
	First, Second rune
}

// compoundVowels maps each compound medial to its two-component decomposition.
var compoundVowels = map[rune]Pair{
	'ㅘ': {'ㅗ', 'ㅏ'},
	'ㅙ': {'ㅗ', 'ㅐ'},
	'ㅚ': {'ㅗ', 'ㅣ'},
	'ㅝ': {'ㅜ', 'ㅓ'},
	'ㅞ': {'ㅜ', 'ㅔ'},
	'ㅟ': {'ㅜ', 'ㅣ'},
	'ㅢ': {'ㅡ', 'ㅣ'},
}

// compoundFinals maps each compound final consonant to its two-component
// decomposition.
var compoundFinals = map[rune]Pair{
	'ㄳ': {'ㄱ', 'ㅅ'},
	'ㄵ': {'ㄴ', 'ㅈ'},
	'ㄶ': {'ㄴ', 'ㅎ'},
	'ㄺ': {'ㄹ', 'ㄱ'},
	'ㄻ': {'ㄹ', 'ㅁ'},
	'ㄼ': {'ㄹ', 'ㅂ'},
	'ㄽ': {'ㄹ', 'ㅅ'},
	'ㄾ': {'ㄹ', 'ㅌ'},
	'ㄿ': {'ㄹ', 'ㅍ'},
	'ㅀ': {'ㄹ', 'ㅎ'},
	'ㅄ': {'ㅂ', 'ㅅ'},
}

var (
	composeVowels = reverse(compoundVowels)
	composeFinals = reverse(compoundFinals)
)

func reverse(m map[rune]Pair) map[Pair]rune {
	r := make(map[Pair]rune, len(m))
	for k, v := range m {
		r[v] = k
	}
	return r
}

// DecomposeVowel splits a compound medial into its two components. Simple
// (non-compound) medials are absent (ok=false).
func DecomposeVowel(v rune) (Pair, bool) {
	p, ok := compoundVowels[v]
	return p, ok
}

// ComposeVowel joins two medial components into their compound medial, if
// the pair is a declared compound. Absent (ok=false) otherwise.
func ComposeVowel(first, second rune) (rune, bool) {
	v, ok := composeVowels[Pair{first, second}]
	return v, ok
}

// DecomposeFinal splits a compound final consonant into its two components.
// Simple (non-compound) finals, and the empty final, are absent (ok=false).
func DecomposeFinal(t rune) (Pair, bool) {
	p, ok := compoundFinals[t]
	return p, ok
}

// ComposeFinal joins two final components into their compound final, if the
// pair is a declared compound. Absent (ok=false) otherwise.
func ComposeFinal(first, second rune) (rune, bool) {
	t, ok := composeFinals[Pair{first, second}]
	return t, ok
}

// IsCompoundVowel reports whether v is a declared compound medial.
func IsCompoundVowel(v rune) bool {
	_, ok := compoundVowels[v]
	return ok
}

// IsCompoundFinal reports whether t is a declared compound final.
func IsCompoundFinal(t rune) bool {
	_, ok := compoundFinals[t]
	return ok
}
