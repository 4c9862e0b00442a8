package zvei

// ToneHit is a single classified tone and the offset in seconds from
// the start of the current audio frame (§3). It never crosses block
// boundaries.
type ToneHit struct {
	Symbol Symbol
	T      float64
}

// Aggregator implements the temporal scan, dedup, cleaning, and
// validity gate, plus inter-block full-sequence dedup. It holds state
// (lastEmitted) across blocks but never accumulates partial tone hits
// across a block boundary — each block is scanned and validated
// independently.
type Aggregator struct {
	classifier  *Classifier
	sampleRate  float64
	minLen      int
	lastEmitted string
}

// NewAggregator creates an Aggregator that scans frames with classifier
// at the given (decimated) sample rate, requiring at least minLen
// symbols for a sequence to be emitted.
func NewAggregator(classifier *Classifier, sampleRate float64, minLen int) *Aggregator {
	return &Aggregator{
		classifier: classifier,
		sampleRate: sampleRate,
		minLen:     minLen,
	}
}

// Process scans one decimated audio block and returns a completed code
// string, or ("", false) if the block yields no emission: too few
// symbols, or a repeat of the last emitted sequence.
func (a *Aggregator) Process(audio []float64) (string, bool) {
	hits := a.scan(audio)
	cleaned := clean(hits)

	if len(cleaned) < a.minLen {
		return "", false
	}

	s := make([]byte, len(cleaned))
	for i, h := range cleaned {
		s[i] = byte(h.Symbol)
	}
	code := string(s)

	if code == a.lastEmitted {
		return "", false
	}
	a.lastEmitted = code
	return code, true
}

// scan slides a window of classifier.FrameLength() samples across audio
// with 50% hop, classifying each position in strictly increasing offset
// order, and collapses the duplicate hits a sustained tone produces
// under overlap (§4.4 step 2).
func (a *Aggregator) scan(audio []float64) []ToneHit {
	frameLen := a.classifier.FrameLength()
	hop := frameLen / 2
	if hop < 1 {
		hop = 1
	}

	var raw []ToneHit
	for start := 0; start+frameLen <= len(audio); start += hop {
		frame := audio[start : start+frameLen]
		sym, ok := a.classifier.Classify(frame)
		if !ok {
			continue
		}
		t := float64(start) / a.sampleRate

		if len(raw) == 0 || raw[len(raw)-1].Symbol != sym || t-raw[len(raw)-1].T > 0.1 {
			raw = append(raw, ToneHit{Symbol: sym, T: t})
		}
	}
	return raw
}

// clean walks the raw hit sequence and drops a hit that falls within
// 0.05s of its predecessor, removing residual flicker near tone
// boundaries (§4.4 step 3).
func clean(hits []ToneHit) []ToneHit {
	if len(hits) == 0 {
		return nil
	}
	cleaned := make([]ToneHit, 0, len(hits))
	i := 0
	for i < len(hits) {
		cleaned = append(cleaned, hits[i])
		if i+1 < len(hits) && hits[i+1].T-hits[i].T < 0.05 {
			i += 2
			continue
		}
		i++
	}
	return cleaned
}
