package zvei

// Decimator downsamples the demodulated audio from Fs_rf to Fs_audio by
// keeping every k-th sample (§4.2). Anti-alias protection is provided
// upstream by the Demodulator's 3 kHz low-pass filter, whose cutoff sits
// below the decimated Nyquist whenever Fs_audio is above 6 kHz (as with
// the default 25 kHz). Config.Validate does not enforce that floor.
type Decimator struct {
	factor int
}

// NewDecimator creates a Decimator for the given decimation factor
// (Fs_rf / Fs_audio).
func NewDecimator(factor int) *Decimator {
	if factor < 1 {
		factor = 1
	}
	return &Decimator{factor: factor}
}

// Decimate returns every factor-th sample of audio, at Fs_audio.
func (d *Decimator) Decimate(audio []float64) []float64 {
	if d.factor <= 1 {
		out := make([]float64, len(audio))
		copy(out, audio)
		return out
	}
	out := make([]float64, 0, len(audio)/d.factor+1)
	for i := 0; i < len(audio); i += d.factor {
		out = append(out, audio[i])
	}
	return out
}
