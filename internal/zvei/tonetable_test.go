package zvei

import "testing"

func TestFrequencyTable(t *testing.T) {
	cases := map[Symbol]float64{
		Symbol1: 1060, Symbol2: 1160, Symbol3: 1270, Symbol4: 1400,
		Symbol5: 1530, Symbol6: 1670, Symbol7: 1830, Symbol8: 2000,
		Symbol9: 2200, SymbolA: 2800, SymbolB: 810, SymbolC: 970,
		SymbolD: 885, SymbolE: 2600, SymbolF: 680, Symbol0: 2400,
	}
	for sym, want := range cases {
		got, ok := Frequency(sym)
		if !ok {
			t.Fatalf("Frequency(%v): not found", sym)
		}
		if got != want {
			t.Errorf("Frequency(%v) = %v, want %v", sym, got, want)
		}
	}
}

func TestRepeatAliasesZero(t *testing.T) {
	f0, _ := Frequency(Symbol0)
	fr, _ := Frequency(SymbolRepeat)
	if f0 != fr {
		t.Errorf("REPEAT should alias 0's frequency: %v != %v", f0, fr)
	}
	if SymbolRepeat != Symbol0 {
		t.Errorf("SymbolRepeat must equal Symbol0")
	}
}

func TestIsValidSymbol(t *testing.T) {
	for _, b := range []byte("0123456789ABCDEF") {
		if !IsValidSymbol(b) {
			t.Errorf("IsValidSymbol(%q) = false, want true", b)
		}
	}
	for _, b := range []byte("GXZ! ") {
		if IsValidSymbol(b) {
			t.Errorf("IsValidSymbol(%q) = true, want false", b)
		}
	}
}
