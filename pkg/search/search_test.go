package search

import (
	"context"
	"testing"

	"github.com/yeojin-dev/hangulsearch/pkg/ranking"
)

func identity(s string) string { return s }

func TestSearchContainsScenario(t *testing.T) {
	idx := New([]string{"프론트엔드", "백엔드", "데이터"}, identity, DefaultPolicy())
	got := idx.Search("ㅍㄹㅌ", Contains)
	if len(got) != 1 || got[0] != "프론트엔드" {
		t.Fatalf("Search(contains) = %v; want [프론트엔드]", got)
	}
}

func TestSearchPrefixAndExactScenario(t *testing.T) {
	idx := New([]string{"프론트", "프론트엔드", "백엔드"}, identity, DefaultPolicy())

	prefixGot := idx.Search("ㅍㄹㅌ", Prefix)
	if len(prefixGot) != 2 {
		t.Fatalf("Search(prefix) = %v; want 2 results", prefixGot)
	}

	exactGot := idx.Search("ㅍㄹㅌㅇㄷ", Exact)
	if len(exactGot) != 1 || exactGot[0] != "프론트엔드" {
		t.Fatalf("Search(exact) = %v; want [프론트엔드]", exactGot)
	}
}

func TestSearchEmptyQueryReturnsEmpty(t *testing.T) {
	idx := New([]string{"a", "b"}, identity, DefaultPolicy())
	if got := idx.Search("", Contains); len(got) != 0 {
		t.Fatalf("Search('') = %v; want empty", got)
	}
}

func TestSearchSimilarTypoScenario(t *testing.T) {
	idx := New([]string{"검색", "개발", "결제", "검사"}, identity, DefaultPolicy())
	results := idx.SearchSimilar("검삭", ranking.Options{Limit: 3, MinimumScore: 0.3})
	if len(results) == 0 {
		t.Fatalf("SearchSimilar(검삭) returned nothing")
	}
	if results[0].Item != "검색" {
		t.Fatalf("SearchSimilar(검삭) top = %q; want 검색", results[0].Item)
	}
	if results[0].Breakdown.Total <= 0.5 {
		t.Fatalf("SearchSimilar(검삭) top score = %v; want > 0.5", results[0].Breakdown.Total)
	}
}

func TestSearchSimilarLayoutVariantScenario(t *testing.T) {
	idx := New([]string{"프론트엔드", "백엔드", "데이터"}, identity, DefaultPolicy())

	withLayout := idx.SearchSimilar("vmfhsxmdpsem", ranking.Options{Limit: 3, IncludeLayoutVariants: true, MinimumScore: 0.1})
	if len(withLayout) == 0 || withLayout[0].Item != "프론트엔드" {
		t.Fatalf("SearchSimilar with layout variants = %v; want 프론트엔드 first", withLayout)
	}

	withoutLayout := idx.SearchSimilar("vmfhsxmdpsem", ranking.Options{Limit: 3, IncludeLayoutVariants: false, MinimumScore: 0.85})
	if len(withoutLayout) != 0 {
		t.Fatalf("SearchSimilar without layout variants at high minimumScore = %v; want empty", withoutLayout)
	}
}

func TestSearchSimilarChoseongQueryScenario(t *testing.T) {
	idx := New([]string{"search", "service", "season"}, identity, DefaultPolicy())
	results := idx.SearchSimilar("ㄴㄷㅁㄱ초", ranking.Options{Limit: 3, IncludeLayoutVariants: true, MinimumScore: 0.1})
	if len(results) == 0 || results[0].Item != "search" {
		t.Fatalf("SearchSimilar(ㄴㄷㅁㄱ초) = %v; want search first", results)
	}
}

func TestNgramStrategyCandidateNarrowing(t *testing.T) {
	policy := DefaultPolicy()
	policy.IndexStrategy = Ngram
	policy.NgramSize = 2
	idx := New([]string{"검색엔진", "개발환경", "결제시스템"}, identity, policy)

	got := idx.Search("ㄱㅅ", Contains)
	if len(got) != 1 || got[0] != "검색엔진" {
		t.Fatalf("Ngram Search = %v; want [검색엔진]", got)
	}
}

func TestLazyCacheStrategyBuildsOnDemand(t *testing.T) {
	policy := DefaultPolicy()
	policy.IndexStrategy = LazyCache
	idx := New([]string{"가나다", "라마바"}, identity, policy)

	got := idx.Search("ㄱㄴㄷ", Exact)
	if len(got) != 1 || got[0] != "가나다" {
		t.Fatalf("LazyCache Search = %v; want [가나다]", got)
	}
}

func TestLazyCacheBackgroundWarmup(t *testing.T) {
	policy := DefaultPolicy()
	policy.IndexStrategy = LazyCache
	policy.LazyWarmup = BackgroundWarmup
	idx := New([]string{"가나다"}, identity, policy)

	got := idx.Search("ㄱㄴㄷ", Exact)
	if len(got) != 1 {
		t.Fatalf("LazyCache with background warmup Search = %v", got)
	}
}

func TestCacheHitReturnsSameResult(t *testing.T) {
	policy := DefaultPolicy()
	policy.Cache = LruCache
	policy.CacheCapacity = 8
	idx := New([]string{"가나다", "라마바"}, identity, policy)

	first := idx.Search("ㄱㄴㄷ", Exact)
	second := idx.Search("ㄱㄴㄷ", Exact)
	if len(first) != len(second) || first[0] != second[0] {
		t.Fatalf("cached Search mismatch: %v vs %v", first, second)
	}
}

func TestSearchContextCancellation(t *testing.T) {
	idx := New([]string{"가", "나", "다"}, identity, DefaultPolicy())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := idx.SearchContext(ctx, "ㄱ", Contains)
	if err == nil {
		t.Fatalf("SearchContext with a pre-cancelled context should return an error")
	}
}

func TestSearchContextSucceedsWithLiveContext(t *testing.T) {
	idx := New([]string{"가나다"}, identity, DefaultPolicy())
	got, err := idx.SearchContext(context.Background(), "ㄱㄴㄷ", Exact)
	if err != nil {
		t.Fatalf("SearchContext unexpected error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("SearchContext = %v; want 1 result", got)
	}
}

func TestSearchContextWithLazyCacheBuildsProgressively(t *testing.T) {
	policy := DefaultPolicy()
	policy.IndexStrategy = LazyCache
	idx := New([]string{"가나다", "라마바"}, identity, policy)

	got, err := idx.SearchContext(context.Background(), "ㄱㄴㄷ", Exact)
	if err != nil {
		t.Fatalf("SearchContext unexpected error: %v", err)
	}
	if len(got) != 1 || got[0] != "가나다" {
		t.Fatalf("SearchContext with LazyCache = %v; want [가나다]", got)
	}
	if _, ready := idx.materializer.ReadyKeys(); !ready {
		t.Fatalf("materializer should be populated after a full-index candidate scan")
	}
}

func TestSearchContextWithLazyCacheHonorsCancellation(t *testing.T) {
	policy := DefaultPolicy()
	policy.IndexStrategy = LazyCache
	idx := New([]string{"가나다", "라마바"}, identity, policy)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := idx.SearchContext(ctx, "ㄱㄴㄷ", Exact); err == nil {
		t.Fatalf("SearchContext with LazyCache and a pre-cancelled context should return an error")
	}
}

func TestExplainSimilarReturnsDetail(t *testing.T) {
	idx := New([]string{"검색", "개발"}, identity, DefaultPolicy())
	results := idx.ExplainSimilar("검색", ranking.Options{Limit: 2, MinimumScore: 0.1})
	if len(results) == 0 {
		t.Fatalf("ExplainSimilar returned nothing")
	}
	if results[0].QueryJamo == "" {
		t.Fatalf("ExplainSimilar result missing QueryJamo")
	}
}

type product struct {
	Name string
}

func TestIndexWithStructItemsAndKeyProjection(t *testing.T) {
	items := []product{{Name: "검색엔진"}, {Name: "개발도구"}}
	idx := New(items, func(p product) string { return p.Name }, DefaultPolicy())

	got := idx.Search("ㄱㅅㅇㅈ", Exact)
	if len(got) != 1 || got[0].Name != "검색엔진" {
		t.Fatalf("Search over struct items = %v", got)
	}
}
