package zvei

import "math"

// testDeviationHz is the peak FM deviation applied to the tone message
// in synthesizeIQFreqs, matching the round-trip property's reference
// capture (250 kHz IQ, 3 kHz FM deviation).
const testDeviationHz = 3000.0

// synthesizeIQ builds a complex baseband IQ stream at rfSampleRate
// that FM-modulates the carrier with toneSeq: each symbol's nominal
// tone frequency held for toneDurS seconds, separated by gapDurS seconds
// of silence (zero instantaneous frequency). It exercises the real
// Demodulator/Decimator/Classifier/Aggregator chain end to end without
// needing real RF hardware or a full SDR capture file.
func synthesizeIQ(rfSampleRate float64, toneSeq []Symbol, toneDurS, gapDurS float64) []complex128 {
	freqs := make([]float64, len(toneSeq))
	for i, sym := range toneSeq {
		freqs[i] = toneFreq[sym]
	}
	return synthesizeIQFreqs(rfSampleRate, freqs, toneDurS, gapDurS)
}

// synthesizeIQFreqs is the frequency-list generalization of
// synthesizeIQ, used to test off-table frequencies (e.g. a tone
// perturbed outside the matching tolerance). During a tone segment the
// carrier's instantaneous frequency is the FM message
// testDeviationHz*sin(2*pi*freq*t), not a constant offset of freq
// itself — frequency-translating the carrier would demodulate to a DC
// level, not the sinusoid at freq the Classifier looks for.
func synthesizeIQFreqs(rfSampleRate float64, freqs []float64, toneDurS, gapDurS float64) []complex128 {
	samplesPerTone := int(toneDurS * rfSampleRate)
	samplesPerGap := int(gapDurS * rfSampleRate)

	total := len(freqs)*samplesPerTone + (len(freqs)+1)*samplesPerGap
	iq := make([]complex128, 0, total)

	phase := 0.0
	emitGap := func(n int) {
		for i := 0; i < n; i++ {
			iq = append(iq, cmplxRect(phase))
		}
	}
	emitTone := func(freq float64, n int) {
		for i := 0; i < n; i++ {
			tLocal := float64(i) / rfSampleRate
			instFreq := testDeviationHz * math.Sin(2*math.Pi*freq*tLocal)
			phase += 2 * math.Pi * instFreq / rfSampleRate
			iq = append(iq, cmplxRect(phase))
		}
	}

	emitGap(samplesPerGap)
	for _, freq := range freqs {
		emitTone(freq, samplesPerTone)
		emitGap(samplesPerGap)
	}

	return iq
}

// synthesizeDecimatedAudio builds an already-decimated (audio-rate) real
// signal directly, for exercising the Aggregator without routing
// through the Demodulator/Decimator.
func synthesizeDecimatedAudio(sampleRate float64, toneSeq []Symbol, toneDurS, gapDurS float64) []float64 {
	samplesPerTone := int(toneDurS * sampleRate)
	samplesPerGap := int(gapDurS * sampleRate)

	out := make([]float64, 0, len(toneSeq)*samplesPerTone+(len(toneSeq)+1)*samplesPerGap)
	out = append(out, make([]float64, samplesPerGap)...)
	for _, sym := range toneSeq {
		out = append(out, synthesizeTone(toneFreq[sym], sampleRate, samplesPerTone)...)
		out = append(out, make([]float64, samplesPerGap)...)
	}
	return out
}

func cmplxRect(phase float64) complex128 {
	return complex(math.Cos(phase), math.Sin(phase))
}

// synthesizeTone returns samples sinusoid samples at freq Hz, sampled
// at sampleRate Hz — a pure audio-rate tone for exercising the
// Classifier in isolation.
func synthesizeTone(freq, sampleRate float64, samples int) []float64 {
	out := make([]float64, samples)
	for i := range out {
		out[i] = math.Sin(2 * math.Pi * freq * float64(i) / sampleRate)
	}
	return out
}
