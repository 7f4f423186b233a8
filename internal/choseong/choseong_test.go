package choseong

import "testing"

func TestExtractSingleSyllableIsInitial(t *testing.T) {
	cases := map[rune]rune{
		'한': 'ㅎ',
		'글': 'ㄱ',
		'가': 'ㄱ',
		'다': 'ㄷ',
	}
	for s, want := range cases {
		got := Extract(string(s), DefaultOptions())
		if got != string(want) {
			t.Fatalf("Extract(%q) = %q; want %q", s, got, string(want))
		}
	}
}

func TestExtractWord(t *testing.T) {
	got := Extract("한글", DefaultOptions())
	if got != "ㅎㄱ" {
		t.Fatalf("Extract(한글) = %q; want ㅎㄱ", got)
	}
}

func TestExtractCompatConsonantPassthrough(t *testing.T) {
	got := Extract("ㄱㄴ", DefaultOptions())
	if got != "ㄱㄴ" {
		t.Fatalf("Extract(compat) = %q; want ㄱㄴ", got)
	}
}

func TestExtractWhitespaceKeep(t *testing.T) {
	opts := Options{PreserveNonHangul: true, WhitespacePolicy: WhitespaceKeep}
	got := Extract("한 글", opts)
	if got != "ㅎ ㄱ" {
		t.Fatalf("Extract whitespace-keep = %q; want %q", got, "ㅎ ㄱ")
	}
}

func TestExtractWhitespaceNormalizeCollapses(t *testing.T) {
	got := Extract("한   글", DefaultOptions())
	if got != "ㅎ ㄱ" {
		t.Fatalf("Extract whitespace-normalize = %q; want %q", got, "ㅎ ㄱ")
	}
}

func TestExtractWhitespaceNormalizeNoLeadingSpace(t *testing.T) {
	got := Extract("  한글", DefaultOptions())
	if got != "ㅎㄱ" {
		t.Fatalf("Extract whitespace-normalize leading = %q; want ㅎㄱ", got)
	}
}

func TestExtractWhitespaceRemove(t *testing.T) {
	opts := Options{PreserveNonHangul: false, WhitespacePolicy: WhitespaceRemove}
	got := Extract("한 글 이", opts)
	if got != "ㅎㄱㅇ" {
		t.Fatalf("Extract whitespace-remove = %q; want ㅎㄱㅇ", got)
	}
}

func TestExtractDropsNonHangulByDefault(t *testing.T) {
	got := Extract("h한ello글", DefaultOptions())
	if got != "ㅎㄱ" {
		t.Fatalf("Extract non-hangul dropped = %q; want ㅎㄱ", got)
	}
}

func TestExtractPreservesNonHangulWhenRequested(t *testing.T) {
	opts := Options{PreserveNonHangul: true, WhitespacePolicy: WhitespaceNormalize}
	got := Extract("a한b", opts)
	if got != "aㅎb" {
		t.Fatalf("Extract preserve-non-hangul = %q; want aㅎb", got)
	}
}

func TestNormalizedSearchTokenRecomposesAndLowercases(t *testing.T) {
	got := NormalizedSearchToken("Hello")
	if got != "hello" {
		t.Fatalf("NormalizedSearchToken(Hello) = %q; want hello", got)
	}
}

func TestNormalizedSearchTokenStableOnPrecomposed(t *testing.T) {
	got := NormalizedSearchToken("한글")
	if got != "한글" {
		t.Fatalf("NormalizedSearchToken(한글) = %q; want 한글", got)
	}
}
