package zvei

import (
	"math"

	"gonum.org/v1/gonum/dsp/fourier"
)

// Classifier performs the per-frame spectral tone classification of
// §4.3: Hamming window, real FFT, normalize, peak-pick, and match
// against the tone table within tolerance.
type Classifier struct {
	sampleRate float64
	frameLen   int
	threshold  float64
	toleranceHz float64

	window []float64
	fft    *fourier.FFT
}

// NewClassifier creates a Classifier for frames of frameLen samples at
// sampleRate Hz, using the given peak-prominence threshold (on the
// normalized spectrum) and frequency match tolerance in Hz.
func NewClassifier(sampleRate float64, frameLen int, threshold, toleranceHz float64) *Classifier {
	window := make([]float64, frameLen)
	for i := 0; i < frameLen; i++ {
		// Hamming window.
		window[i] = 0.54 - 0.46*math.Cos(2*math.Pi*float64(i)/float64(frameLen-1))
	}
	return &Classifier{
		sampleRate:  sampleRate,
		frameLen:    frameLen,
		threshold:   threshold,
		toleranceHz: toleranceHz,
		window:      window,
		fft:         fourier.NewFFT(frameLen),
	}
}

// FrameLength returns the number of samples a frame must contain.
func (c *Classifier) FrameLength() int {
	return c.frameLen
}

// Classify returns the matched ZVEI symbol for one audio frame, or
// (0, false) for the "no tone" outcome: silence, a sub-threshold
// spectrum, or a peak that matches no table entry within tolerance.
// A degenerate (empty or all-zero) frame is recovered locally here,
// never as an error (§4.3 step 3, §7 NumericDegenerate).
func (c *Classifier) Classify(frame []float64) (Symbol, bool) {
	if len(frame) != c.frameLen {
		return 0, false
	}

	windowed := make([]float64, c.frameLen)
	for i, s := range frame {
		windowed[i] = s * c.window[i]
	}

	coeffs := c.fft.Coefficients(nil, windowed)
	mag := make([]float64, len(coeffs))
	maxMag := 0.0
	for i, v := range coeffs {
		m := math.Hypot(real(v), imag(v))
		mag[i] = m
		if m > maxMag {
			maxMag = m
		}
	}
	if maxMag == 0 {
		return 0, false
	}
	for i := range mag {
		mag[i] /= maxMag
	}

	peakBin, peakMag, found := 0, 0.0, false
	for i := 1; i < len(mag)-1; i++ {
		if mag[i] > mag[i-1] && mag[i] > mag[i+1] && mag[i] > c.threshold {
			if !found || mag[i] > peakMag {
				peakBin, peakMag, found = i, mag[i], true
			}
		}
	}
	if !found {
		return 0, false
	}

	df := c.sampleRate / float64(c.frameLen)
	peakFreq := float64(peakBin) * df

	return c.matchTone(peakFreq)
}

// matchTone finds the unique tone-table symbol within toleranceHz of
// freq, breaking ties by smallest absolute error and then table order
// (§4.3 step 6). With the current table and default 20 Hz tolerance no
// two entries can ever tie, but the tie-break is enforced defensively.
func (c *Classifier) matchTone(freq float64) (Symbol, bool) {
	var best Symbol
	bestErr := math.Inf(1)
	found := false

	for _, sym := range toneOrder {
		nominal := toneFreq[sym]
		err := math.Abs(freq - nominal)
		if err > c.toleranceHz {
			continue
		}
		if !found || err < bestErr {
			best, bestErr, found = sym, err, true
		}
	}
	return best, found
}
