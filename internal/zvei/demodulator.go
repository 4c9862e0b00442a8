package zvei

import (
	"math"
	"math/cmplx"
)

// firTaps is the length of the post-discriminator low-pass filter.
// 129 taps gives a reasonably sharp transition band relative to the
// 3 kHz cutoff at the sample rates this package targets (hundreds of
// kHz) without costing much per block.
const firTaps = 129

// Demodulator recovers instantaneous frequency (FM discrimination) from
// a stream of complex baseband IQ samples, then low-pass filters the
// result to the ZVEI tone band.
//
// The instantaneous frequency at sample i is the phase of
// iq[i] * conj(iq[i-1]), scaled to Hz. Because this phase comes from a
// single complex multiply it is already wrapped into (-pi, pi], so
// successive values differ by less than pi without any separate
// unwrapping or Hilbert-transform step.
type Demodulator struct {
	sampleRate float64
	taps       []float64
}

// NewDemodulator creates a Demodulator for IQ sampled at rfSampleRate Hz.
func NewDemodulator(rfSampleRate float64) *Demodulator {
	return &Demodulator{
		sampleRate: rfSampleRate,
		taps:       designLowpassFIR(lowpassCutoffHz, rfSampleRate, firTaps),
	}
}

// Demodulate returns the filtered instantaneous-frequency signal (in Hz)
// for one IQ block, at the input's sample rate. An empty or single-
// sample block yields an empty signal — no error is raised (§4.1
// Failure).
func (d *Demodulator) Demodulate(iq []complex128) []float64 {
	if len(iq) < 2 {
		return []float64{}
	}

	raw := make([]float64, len(iq)-1)
	scale := d.sampleRate / (2 * math.Pi)
	for i := 1; i < len(iq); i++ {
		diff := cmplx.Phase(iq[i] * cmplx.Conj(iq[i-1]))
		raw[i-1] = diff * scale
	}

	return applyFIR(raw, d.taps)
}
