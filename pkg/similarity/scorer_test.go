package similarity

import (
	"testing"

	"github.com/yeojin-dev/hangulsearch/internal/choseong"
)

func chs(s string) string {
	return choseong.Extract(s, choseong.DefaultOptions())
}

func TestLevenshteinIdentical(t *testing.T) {
	if d := Levenshtein([]rune("가나다"), []rune("가나다")); d != 0 {
		t.Fatalf("Levenshtein identical = %d; want 0", d)
	}
}

func TestLevenshteinOneEdit(t *testing.T) {
	if d := Levenshtein([]rune("가나다"), []rune("가나타")); d != 1 {
		t.Fatalf("Levenshtein one substitution = %d; want 1", d)
	}
}

func TestLevenshteinEmpty(t *testing.T) {
	if d := Levenshtein(nil, []rune("abc")); d != 3 {
		t.Fatalf("Levenshtein(nil, abc) = %d; want 3", d)
	}
}

func TestWeightedLevenshteinZeroCostSubstitution(t *testing.T) {
	always0 := func(x, y rune) float64 { return 0 }
	d := WeightedLevenshtein([]rune("abc"), []rune("xyz"), always0)
	if d != 0 {
		t.Fatalf("WeightedLevenshtein with zero substitution cost = %v; want 0", d)
	}
}

func TestKGramsShortString(t *testing.T) {
	if g := KGrams("a", 2); len(g) != 0 {
		t.Fatalf("KGrams('a', 2) should be empty, got %v", g)
	}
}

func TestJaccardSimilarityIdentical(t *testing.T) {
	a := KGrams("abcd", 2)
	if JaccardSimilarity(a, a) != 1 {
		t.Fatalf("JaccardSimilarity(a,a) should be 1")
	}
}

func TestJaccardSimilarityBothEmpty(t *testing.T) {
	empty := KGrams("a", 2)
	if JaccardSimilarity(empty, empty) != 1 {
		t.Fatalf("JaccardSimilarity of two empty sets should be 1 (equal by convention)")
	}
}

func TestJaccardSimilarityOneEmpty(t *testing.T) {
	empty := KGrams("a", 2)
	nonEmpty := KGrams("abcd", 2)
	if JaccardSimilarity(empty, nonEmpty) != 0 {
		t.Fatalf("JaccardSimilarity with exactly one side empty should be 0")
	}
}

func TestExplainExactMatch(t *testing.T) {
	b, detail := Explain("한글", "한글", chs("한글"), chs("한글"), DefaultWeights())
	if b.ExactBonus != DefaultWeights().Exact {
		t.Fatalf("ExactBonus = %v; want %v", b.ExactBonus, DefaultWeights().Exact)
	}
	if b.Total != 1 {
		t.Fatalf("Total for exact match = %v; want 1 (clipped)", b.Total)
	}
	if detail != "exact match" {
		t.Fatalf("detail = %q; want exact match", detail)
	}
}

func TestExplainPrefixMatch(t *testing.T) {
	b, detail := Explain("한", "한글", chs("한"), chs("한글"), DefaultWeights())
	if b.ExactBonus != 0 {
		t.Fatalf("ExactBonus should be 0 for a non-exact prefix query")
	}
	if b.PrefixBonus != DefaultWeights().Prefix {
		t.Fatalf("PrefixBonus = %v; want %v", b.PrefixBonus, DefaultWeights().Prefix)
	}
	if detail != "prefix match" {
		t.Fatalf("detail = %q; want prefix match", detail)
	}
}

func TestExplainUnrelatedStringsScoreLow(t *testing.T) {
	b, _ := Explain("가나다", "abcxyz", chs("가나다"), chs("abcxyz"), DefaultWeights())
	if b.Total > 0.5 {
		t.Fatalf("Total for unrelated strings = %v; expected low", b.Total)
	}
}

func TestExplainTotalAlwaysClipped(t *testing.T) {
	w := Weights{EditDistance: 2, Jaccard: 2, Keyboard: 2, Jamo: 2, Exact: 0.5, Prefix: 0.5}
	b, _ := Explain("한글", "한글", chs("한글"), chs("한글"), w)
	if b.Total < 0 || b.Total > 1 {
		t.Fatalf("Total = %v; must be clipped to [0,1]", b.Total)
	}
}

func TestCoarseSimilarityNoOverlapIsZero(t *testing.T) {
	if s := CoarseSimilarity("가", "ㄱ", "z", "x"); s != 0 {
		t.Fatalf("CoarseSimilarity with no overlap = %v; want 0", s)
	}
}

func TestCoarseSimilarityIdenticalIsHigh(t *testing.T) {
	s := CoarseSimilarity("한글", "ㅎㄱ", "한글", "ㅎㄱ")
	if s < 0.9 {
		t.Fatalf("CoarseSimilarity for identical input = %v; want close to 1", s)
	}
}

func TestClip(t *testing.T) {
	if clip(-1, 0, 1) != 0 {
		t.Fatalf("clip below range failed")
	}
	if clip(2, 0, 1) != 1 {
		t.Fatalf("clip above range failed")
	}
	if clip(0.5, 0, 1) != 0.5 {
		t.Fatalf("clip within range failed")
	}
}
