// Package layout converts between Latin QWERTY keystrokes and Hangul jamo,
// and exposes the keyboard geometry used by the keyboard-distance similarity
// signal in pkg/similarity.
package layout

// keyToJamo is the standard two-set (2-beolsik) Korean keyboard mapping:
// unshifted letters to their base jamo, shifted (uppercase) letters to the
// five tensed consonants and two compound-class vowels that have a
// dedicated shifted key.
var keyToJamo = map[rune]rune{
	'q': 'ㅂ', 'w': 'ㅈ', 'e': 'ㄷ', 'r': 'ㄱ', 't': 'ㅅ',
	'y': 'ㅛ', 'u': 'ㅕ', 'i': 'ㅑ', 'o': 'ㅐ', 'p': 'ㅔ',
	'a': 'ㅁ', 's': 'ㄴ', 'd': 'ㅇ', 'f': 'ㄹ', 'g': 'ㅎ',
	'h': 'ㅗ', 'j': 'ㅓ', 'k': 'ㅏ', 'l': 'ㅣ',
	'z': 'ㅋ', 'x': 'ㅌ', 'c': 'ㅊ', 'v': 'ㅍ', 'b': 'ㅠ',
	'n': 'ㅜ', 'm': 'ㅡ',

	'Q': 'ㅃ', 'W': 'ㅉ', 'E': 'ㄸ', 'R': 'ㄲ', 'T': 'ㅆ',
	'O': 'ㅒ', 'P': 'ㅖ',
}

// jamoToKey is the inverse of keyToJamo, preferring the unshifted key when a
// jamo is reachable both shifted and unshifted (none are, in this layout,
// but built defensively via buildInverse's first-writer-wins order).
var jamoToKey = buildInverse(keyToJamo)

func buildInverse(m map[rune]rune) map[rune]rune {
	inv := make(map[rune]rune, len(m))
	// Iterate lowercase keys first so they win ties; Go map iteration order
	// is random, so collect and sort deterministically by rune value with
	// lowercase letters (already < uppercase is false for ASCII, so sort
	// explicitly instead of relying on ASCII ordering).
	keys := make([]rune, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	for pass := 0; pass < 2; pass++ {
		for _, k := range keys {
			lower := k >= 'a' && k <= 'z'
			if (pass == 0) != lower {
				continue
			}
			if _, exists := inv[m[k]]; !exists {
				inv[m[k]] = k
			}
		}
	}
	return inv
}

// JamoForKey returns the jamo produced by a single Latin keystroke.
func JamoForKey(r rune) (rune, bool) {
	j, ok := keyToJamo[r]
	return j, ok
}

// KeyForJamo returns the Latin key that types a given jamo.
func KeyForJamo(r rune) (rune, bool) {
	k, ok := jamoToKey[r]
	return k, ok
}

// Point is a key's position on the fixed 3-row keyboard geometry.
type Point struct {
	X, Y float64
}

// rowOffsets holds each row's horizontal stagger; keyPitch is the spacing
// between adjacent keys within a row.
var rowOffsets = [3]float64{0.0, 0.2, 0.6}

const keyPitch = 1.0

// rows lists each physical row's keys in left-to-right order, lowercase
// only: geometry does not distinguish shifted keys from their base key.
var rows = [3]string{
	"qwertyuiop",
	"asdfghjkl",
	"zxcvbnm",
}

var keyPoints = buildKeyPoints()

func buildKeyPoints() map[rune]Point {
	pts := make(map[rune]Point, 26)
	for rowIdx, row := range rows {
		for col, r := range row {
			pts[r] = Point{X: rowOffsets[rowIdx] + float64(col)*keyPitch, Y: float64(rowIdx)}
		}
	}
	return pts
}

// PointForKey returns a Latin letter key's geometric position.
func PointForKey(r rune) (Point, bool) {
	p, ok := keyPoints[lowerASCII(r)]
	return p, ok
}

func lowerASCII(r rune) rune {
	if r >= 'A' && r <= 'Z' {
		return r + ('a' - 'A')
	}
	return r
}

// manhattan returns the Manhattan distance between two key positions.
func manhattan(a, b Point) float64 {
	dx := a.X - b.X
	if dx < 0 {
		dx = -dx
	}
	dy := a.Y - b.Y
	if dy < 0 {
		dy = -dy
	}
	return dx + dy
}

// SubstitutionCost returns the keyboard-distance substitution cost between
// two Latin letter keys: 0 if identical, 0.35 within distance 1, 0.65 within
// distance 2, else 1.0. Keys absent from the geometry cost the maximum.
func SubstitutionCost(a, b rune) float64 {
	if lowerASCII(a) == lowerASCII(b) {
		return 0
	}
	pa, okA := PointForKey(a)
	pb, okB := PointForKey(b)
	if !okA || !okB {
		return 1.0
	}
	d := manhattan(pa, pb)
	switch {
	case d <= 1:
		return 0.35
	case d <= 2:
		return 0.65
	default:
		return 1.0
	}
}
