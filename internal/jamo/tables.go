// Package jamo provides the Unicode-level codec between precomposed Hangul
// syllables and their (initial, medial, final) jamo triples, plus the static
// jamo tables the rest of the module builds on.
package jamo

// SyllableBase is the first code point of the modern Hangul syllable block.
const SyllableBase = 0xAC00

// SyllableMax is the last code point of the modern Hangul syllable block.
const SyllableMax = 0xD7A3

const (
	initialCount = 19
	medialCount  = 21
	finalCount   = 28
)

// Initials holds the 19 leading consonants (choseong), in composition order.
var Initials = [initialCount]rune{
	'ㄱ', 'ㄲ', 'ㄴ', 'ㄷ', 'ㄸ', 'ㄹ', 'ㅁ', 'ㅂ', 'ㅃ', 'ㅅ',
	'ㅆ', 'ㅇ', 'ㅈ', 'ㅉ', 'ㅊ', 'ㅋ', 'ㅌ', 'ㅍ', 'ㅎ',
}

// Medials holds the 21 medial vowels (jungseong), in composition order.
var Medials = [medialCount]rune{
	'ㅏ', 'ㅐ', 'ㅑ', 'ㅒ', 'ㅓ', 'ㅔ', 'ㅕ', 'ㅖ', 'ㅗ', 'ㅘ',
	'ㅙ', 'ㅚ', 'ㅛ', 'ㅜ', 'ㅝ', 'ㅞ', 'ㅟ', 'ㅠ', 'ㅡ', 'ㅢ',
	'ㅣ',
}

// Finals holds the 28 final consonants (jongseong), index 0 is "no final".
var Finals = [finalCount]rune{
	0, 'ㄱ', 'ㄲ', 'ㄳ', 'ㄴ', 'ㄵ', 'ㄶ', 'ㄷ', 'ㄹ', 'ㄺ',
	'ㄻ', 'ㄼ', 'ㄽ', 'ㄾ', 'ㄿ', 'ㅀ', 'ㅁ', 'ㅂ', 'ㅄ', 'ㅅ',
	'ㅆ', 'ㅇ', 'ㅈ', 'ㅊ', 'ㅋ', 'ㅌ', 'ㅍ', 'ㅎ',
}

var (
	initialIndex = buildIndex(Initials[:])
	medialIndex  = buildIndex(Medials[:])
	finalIndex   = buildFinalIndex(Finals[:])
)

func buildIndex(runes []rune) map[rune]int {
	m := make(map[rune]int, len(runes))
	for i, r := range runes {
		m[r] = i
	}
	return m
}

func buildFinalIndex(runes []rune) map[rune]int {
	m := make(map[rune]int, len(runes))
	for i, r := range runes {
		if i == 0 {
			continue // reserve the zero rune for "no final"
		}
		m[r] = i
	}
	return m
}

// InitialIndex returns the composition index of a leading consonant, or -1.
func InitialIndex(r rune) int {
	if i, ok := initialIndex[r]; ok {
		return i
	}
	return -1
}

// MedialIndex returns the composition index of a medial vowel, or -1.
func MedialIndex(r rune) int {
	if i, ok := medialIndex[r]; ok {
		return i
	}
	return -1
}

// FinalIndex returns the composition index of a final consonant, or -1.
// The empty final is index 0 but is not reachable through this lookup;
// callers represent "no final" with the literal index 0 directly.
func FinalIndex(r rune) int {
	if i, ok := finalIndex[r]; ok {
		return i
	}
	return -1
}

// compatConsonants is the set of Hangul Compatibility Jamo consonants
// (U+3131-U+314E) that are passed through unchanged by choseong extraction,
// independent of whether they also double as a final-consonant-only letter.
var compatConsonants = map[rune]bool{
	'ㄱ': true, 'ㄲ': true, 'ㄳ': true, 'ㄴ': true, 'ㄵ': true, 'ㄶ': true,
	'ㄷ': true, 'ㄸ': true, 'ㄹ': true, 'ㄺ': true, 'ㄻ': true, 'ㄼ': true,
	'ㄽ': true, 'ㄾ': true, 'ㄿ': true, 'ㅀ': true, 'ㅁ': true, 'ㅂ': true,
	'ㅃ': true, 'ㅄ': true, 'ㅅ': true, 'ㅆ': true, 'ㅇ': true, 'ㅈ': true,
	'ㅉ': true, 'ㅊ': true, 'ㅋ': true, 'ㅌ': true, 'ㅍ': true, 'ㅎ': true,
}

// IsCompatConsonant reports whether r is a Hangul Compatibility Jamo
// consonant code point.
func IsCompatConsonant(r rune) bool {
	return compatConsonants[r]
}

// IsCompatVowel reports whether r is a Hangul Compatibility Jamo vowel
// code point (U+314F-U+3163).
func IsCompatVowel(r rune) bool {
	return r >= 0x314F && r <= 0x3163
}

// IsSyllable reports whether r falls in the modern precomposed Hangul
// syllable block.
func IsSyllable(r rune) bool {
	return r >= SyllableBase && r <= SyllableMax
}
