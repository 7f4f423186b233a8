package jamo

import "testing"

func TestDecomposeCompose(t *testing.T) {
	cases := []rune{'가', '닭', '와', '값', '한', '글'}
	for _, s := range cases {
		tr, ok := Decompose(s)
		if !ok {
			t.Fatalf("Decompose(%q): expected ok", s)
		}
		got, ok := Compose(tr.L, tr.V, tr.T)
		if !ok || got != s {
			t.Fatalf("Compose(%v) = %q, %v; want %q", tr, got, ok, s)
		}
	}
}

func TestDecomposeNonSyllable(t *testing.T) {
	if _, ok := Decompose('a'); ok {
		t.Fatalf("Decompose('a') should not be ok")
	}
	if _, ok := Decompose('ㄱ'); ok {
		t.Fatalf("Decompose(compat jamo) should not be ok")
	}
}

func TestComposeOutOfRange(t *testing.T) {
	if _, ok := Compose(-1, 0, 0); ok {
		t.Fatalf("Compose with negative L should not be ok")
	}
	if _, ok := Compose(0, 0, 28); ok {
		t.Fatalf("Compose with out-of-range T should not be ok")
	}
	if _, err := ComposeStrict(100, 0, 0); err != ErrInvalidComponents {
		t.Fatalf("ComposeStrict should return ErrInvalidComponents, got %v", err)
	}
}

func TestInitialOf(t *testing.T) {
	init, ok := InitialOf('한')
	if !ok || init != 'ㅎ' {
		t.Fatalf("InitialOf('한') = %q, %v; want 'ㅎ', true", init, ok)
	}
	if _, ok := InitialOf('a'); ok {
		t.Fatalf("InitialOf('a') should not be ok")
	}
}

func TestCompoundVowelRoundTrip(t *testing.T) {
	for compound, pair := range compoundVowels {
		got, ok := ComposeVowel(pair.First, pair.Second)
		if !ok || got != compound {
			t.Fatalf("ComposeVowel(%q, %q) = %q, %v; want %q", pair.First, pair.Second, got, ok, compound)
		}
	}
}

func TestCompoundFinalRoundTrip(t *testing.T) {
	for compound, pair := range compoundFinals {
		got, ok := ComposeFinal(pair.First, pair.Second)
		if !ok || got != compound {
			t.Fatalf("ComposeFinal(%q, %q) = %q, %v; want %q", pair.First, pair.Second, got, ok, compound)
		}
	}
}

func TestDisassembleAssembleRoundTrip(t *testing.T) {
	cases := []string{"가다", "와", "닭", "한글", "값어치", "안녕하세요"}
	for _, s := range cases {
		jamos := Disassemble(s, true)
		got := Assemble(jamos)
		if got != s {
			t.Fatalf("Assemble(Disassemble(%q)) = %q", s, got)
		}
	}
}

func TestDisassembleCompoundSplitsAdjacent(t *testing.T) {
	jamos := Disassemble("와", true)
	want := []rune{'ㅇ', 'ㅗ', 'ㅏ'}
	if len(jamos) != len(want) {
		t.Fatalf("Disassemble('와') = %q; want %q", jamos, want)
	}
	for i := range want {
		if jamos[i] != want[i] {
			t.Fatalf("Disassemble('와')[%d] = %q; want %q", i, jamos[i], want[i])
		}
	}
}

func TestDisassemblePreservesCompatJamo(t *testing.T) {
	got := Disassemble("ㄱㅏㄴ", true)
	want := []rune{'ㄱ', 'ㅏ', 'ㄴ'}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Disassemble(compat) = %q; want %q", got, want)
		}
	}
}

func TestDisassembleDropsNonHangulWhenNotPreserved(t *testing.T) {
	got := Disassemble("a가b", false)
	want := Disassemble("가", false)
	if string(got) != string(want) {
		t.Fatalf("Disassemble with preserveNonHangul=false = %q; want %q", got, want)
	}
}

func TestIsSyllableBounds(t *testing.T) {
	if !IsSyllable(SyllableBase) || !IsSyllable(SyllableMax) {
		t.Fatalf("IsSyllable should include both block boundaries")
	}
	if IsSyllable(SyllableBase - 1) {
		t.Fatalf("IsSyllable should exclude SyllableBase-1")
	}
}
