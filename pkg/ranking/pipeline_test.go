package ranking

import (
	"testing"

	"github.com/yeojin-dev/hangulsearch/internal/choseong"
	"github.com/yeojin-dev/hangulsearch/pkg/similarity"
)

// fakeSource is a minimal in-memory Source for pipeline tests: no
// indexing strategy, CandidateIndices always returns every item.
type fakeSource struct {
	raw []string
}

func newFakeSource(items ...string) *fakeSource {
	return &fakeSource{raw: items}
}

func (f *fakeSource) Size() int { return len(f.raw) }

func (f *fakeSource) RawKey(i int) string { return f.raw[i] }

func (f *fakeSource) NormalizedKey(i int) string {
	return choseong.NormalizedSearchToken(f.raw[i])
}

func (f *fakeSource) ChoseongKey(i int) string {
	return choseong.Extract(f.raw[i], choseong.DefaultOptions())
}

func (f *fakeSource) CandidateIndices(choseongVariant, rawVariant string) []int {
	all := make([]int, len(f.raw))
	for i := range f.raw {
		all[i] = i
	}
	return all
}

func (f *fakeSource) ProjectChoseong(s string) string {
	return choseong.Extract(s, choseong.DefaultOptions())
}

func TestQueryVariantsNoLayout(t *testing.T) {
	v := queryVariants("검색", false)
	if len(v) != 1 || v[0] != "검색" {
		t.Fatalf("queryVariants without layout = %v", v)
	}
}

func TestQueryVariantsDeduplicates(t *testing.T) {
	v := queryVariants("abc", true)
	seen := map[string]bool{}
	for _, x := range v {
		if seen[x] {
			t.Fatalf("queryVariants produced a duplicate: %v", v)
		}
		seen[x] = true
	}
}

func TestRankExactMatchRanksFirst(t *testing.T) {
	src := newFakeSource("검색", "개발", "결제", "검사")
	results := Rank("검색", Options{Limit: 3, MinimumScore: 0.1}, src)
	if len(results) == 0 || src.RawKey(results[0].Index) != "검색" {
		t.Fatalf("Rank exact match first = %v", results)
	}
}

func TestRankTypoToleratesOneEdit(t *testing.T) {
	src := newFakeSource("검색", "개발", "결제", "검사")
	results := Rank("검삭", Options{Limit: 3, MinimumScore: 0.3}, src)
	if len(results) == 0 {
		t.Fatalf("Rank(검삭) returned nothing")
	}
	if src.RawKey(results[0].Index) != "검색" {
		t.Fatalf("Rank(검삭) top result = %q; want 검색", src.RawKey(results[0].Index))
	}
	if results[0].Breakdown.Total <= 0.5 {
		t.Fatalf("Rank(검삭) top score = %v; want > 0.5", results[0].Breakdown.Total)
	}
}

func TestRankEmptyQueryReturnsNil(t *testing.T) {
	src := newFakeSource("a", "b")
	if got := Rank("", Options{Limit: 3}, src); got != nil {
		t.Fatalf("Rank('') = %v; want nil", got)
	}
}

func TestRankRespectsLimit(t *testing.T) {
	src := newFakeSource("가", "나", "다", "라", "마")
	results := Rank("가", Options{Limit: 2, MinimumScore: 0}, src)
	if len(results) > 2 {
		t.Fatalf("Rank returned %d results; limit was 2", len(results))
	}
}

func TestRankDeterministic(t *testing.T) {
	src := newFakeSource("프론트엔드", "백엔드", "데이터")
	opts := Options{Limit: 3, MinimumScore: 0.1, IncludeLayoutVariants: true}
	first := Rank("프론트", opts, src)
	for i := 0; i < 5; i++ {
		again := Rank("프론트", opts, src)
		if len(again) != len(first) {
			t.Fatalf("Rank is not deterministic across runs: %v vs %v", first, again)
		}
		for j := range first {
			if first[j].Index != again[j].Index || first[j].Breakdown.Total != again[j].Breakdown.Total {
				t.Fatalf("Rank is not deterministic at position %d", j)
			}
		}
	}
}

func TestRankScoresAreClipped(t *testing.T) {
	src := newFakeSource("가나다", "라마바")
	results := Rank("가나다", Options{Limit: 2, MinimumScore: 0}, src)
	for _, r := range results {
		if r.Breakdown.Total < 0 || r.Breakdown.Total > 1 {
			t.Fatalf("score %v out of [0,1]", r.Breakdown.Total)
		}
	}
}

func TestExplainIncludesJamoAndDistance(t *testing.T) {
	src := newFakeSource("검색", "개발")
	results := Explain("검색", Options{Limit: 2, MinimumScore: 0.1}, src)
	if len(results) == 0 {
		t.Fatalf("Explain returned nothing")
	}
	if results[0].QueryJamo == "" {
		t.Fatalf("Explain result missing QueryJamo")
	}
}

func TestPartitionCoversAllElements(t *testing.T) {
	candidates := make([]int, 37)
	for i := range candidates {
		candidates[i] = i
	}
	chunks := partition(candidates, 4)
	total := 0
	for _, c := range chunks {
		total += len(c)
	}
	if total != len(candidates) {
		t.Fatalf("partition lost elements: got %d, want %d", total, len(candidates))
	}
}

func TestKthHighestScoreFewerThanK(t *testing.T) {
	best := map[int]Result{0: {Breakdown: similarity.Breakdown{Total: 0.5}}}
	if got := kthHighestScore(best, 3); got != 0 {
		t.Fatalf("kthHighestScore with too few entries = %v; want 0", got)
	}
}
