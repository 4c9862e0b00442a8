// Package zvei implements the ZVEI/CCIR sequential-tone paging decoder:
// FM demodulation, decimation, spectral tone classification, and
// temporal aggregation of tone hits into validated code strings.
package zvei

import "fmt"

// Symbol is one element of the 16-symbol ZVEI alphabet.
type Symbol byte

const (
	Symbol0 Symbol = '0'
	Symbol1 Symbol = '1'
	Symbol2 Symbol = '2'
	Symbol3 Symbol = '3'
	Symbol4 Symbol = '4'
	Symbol5 Symbol = '5'
	Symbol6 Symbol = '6'
	Symbol7 Symbol = '7'
	Symbol8 Symbol = '8'
	Symbol9 Symbol = '9'
	SymbolA Symbol = 'A'
	SymbolB Symbol = 'B'
	SymbolC Symbol = 'C'
	SymbolD Symbol = 'D'
	SymbolE Symbol = 'E'
	SymbolF Symbol = 'F'

	// SymbolRepeat aliases Symbol0: both key the same 2400 Hz tone and
	// the classifier cannot tell them apart from the spectrum alone.
	// Disambiguating REPEAT from a literal 0 is a protocol-layer
	// concern, out of scope here.
	SymbolRepeat = Symbol0
)

// toneFreq is the authoritative ZVEI/CCIR tone table: nominal tone
// frequency in Hz for every symbol. Order matters only for the tie-break
// in Classify when two entries are equidistant from a measured peak
// (not achievable with this table at the default 20 Hz tolerance, but
// the order is still the one enforced defensively).
var toneOrder = []Symbol{
	Symbol1, Symbol2, Symbol3, Symbol4, Symbol5, Symbol6, Symbol7, Symbol8,
	Symbol9, SymbolA, SymbolB, SymbolC, SymbolD, SymbolE, SymbolF, Symbol0,
}

var toneFreq = map[Symbol]float64{
	Symbol1: 1060,
	Symbol2: 1160,
	Symbol3: 1270,
	Symbol4: 1400,
	Symbol5: 1530,
	Symbol6: 1670,
	Symbol7: 1830,
	Symbol8: 2000,
	Symbol9: 2200,
	SymbolA: 2800,
	SymbolB: 810,
	SymbolC: 970,
	SymbolD: 885,
	SymbolE: 2600,
	SymbolF: 680,
	Symbol0: 2400,
}

// Frequency returns the nominal tone frequency in Hz for a symbol, and
// whether the symbol is a recognized member of the ZVEI alphabet.
func Frequency(s Symbol) (float64, bool) {
	f, ok := toneFreq[s]
	return f, ok
}

// IsValidSymbol reports whether b is a member of the ZVEI alphabet
// {0-9, A-F}.
func IsValidSymbol(b byte) bool {
	_, ok := toneFreq[Symbol(b)]
	return ok
}

func (s Symbol) String() string {
	if _, ok := toneFreq[s]; !ok {
		return fmt.Sprintf("Symbol(%#x)", byte(s))
	}
	return string(rune(s))
}
