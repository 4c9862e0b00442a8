package zvei

import (
	"fmt"
)

// Config is the pipeline's recognized configuration surface.
type Config struct {
	RFSampleRate      int     `yaml:"rf_sample_rate"`
	AudioSampleRate   int     `yaml:"audio_sample_rate"`
	DetectionThresh   float64 `yaml:"detection_threshold"`
	ToneToleranceHz   float64 `yaml:"tone_tolerance_hz"`
	ToneDurationS     float64 `yaml:"tone_duration_s"`
	MinSequenceLength int     `yaml:"min_sequence_length"`
	BlockSamples      int     `yaml:"block_samples"`
}

// DefaultConfig returns the reference configuration values.
//
// 22050 Hz is the commonly quoted reference audio_sample_rate, but it
// does not evenly divide the reference rf_sample_rate of 250000 Hz,
// which Validate requires. DefaultConfig uses 25000 Hz instead — the
// nearest rate that both divides evenly and still comfortably clears
// the classifier's minimum Nyquist margin — so the defaults construct
// a valid Pipeline out of the box; see DESIGN.md.
func DefaultConfig() Config {
	return Config{
		RFSampleRate:      250000,
		AudioSampleRate:   25000,
		DetectionThresh:   0.1,
		ToneToleranceHz:   20,
		ToneDurationS:     0.07,
		MinSequenceLength: 5,
		BlockSamples:      262144,
	}
}

// Validate checks the configuration for the conditions that make a
// Pipeline unbuildable: audio_sample_rate must divide rf_sample_rate,
// and the tone duration must yield at least 64 samples per classifier
// frame.
func (c Config) Validate() error {
	if c.RFSampleRate <= 0 {
		return fmt.Errorf("%w: rf_sample_rate must be positive", ErrConfigInvalid)
	}
	if c.AudioSampleRate <= 0 {
		return fmt.Errorf("%w: audio_sample_rate must be positive", ErrConfigInvalid)
	}
	if c.RFSampleRate%c.AudioSampleRate != 0 {
		return fmt.Errorf("%w: audio_sample_rate (%d) does not divide rf_sample_rate (%d)",
			ErrConfigInvalid, c.AudioSampleRate, c.RFSampleRate)
	}
	if c.ToneDurationS <= 0 {
		return fmt.Errorf("%w: tone_duration_s must be positive", ErrConfigInvalid)
	}
	frameLen := c.FrameLength()
	if frameLen < 64 {
		return fmt.Errorf("%w: tone_duration_s (%.4f) at audio_sample_rate (%d) yields only %d samples per frame, need >= 64",
			ErrConfigInvalid, c.ToneDurationS, c.AudioSampleRate, frameLen)
	}
	if c.MinSequenceLength <= 0 {
		return fmt.Errorf("%w: min_sequence_length must be positive", ErrConfigInvalid)
	}
	if c.BlockSamples <= 0 {
		return fmt.Errorf("%w: block_samples must be positive", ErrConfigInvalid)
	}
	if c.DetectionThresh <= 0 || c.DetectionThresh >= 1 {
		return fmt.Errorf("%w: detection_threshold must be in (0, 1)", ErrConfigInvalid)
	}
	if c.ToneToleranceHz <= 0 {
		return fmt.Errorf("%w: tone_tolerance_hz must be positive", ErrConfigInvalid)
	}
	return nil
}

// DecimationFactor is k = Fs_rf / Fs_audio (§4.2). Callers must Validate
// first to guarantee this divides evenly.
func (c Config) DecimationFactor() int {
	return c.RFSampleRate / c.AudioSampleRate
}

// FrameLength is L = floor(D * Fs_audio), the classifier's frame length
// in samples (§4.3).
func (c Config) FrameLength() int {
	return int(c.ToneDurationS * float64(c.AudioSampleRate))
}
