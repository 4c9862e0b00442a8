package zvei

import (
	"errors"
	"testing"
)

func TestDefaultConfigIsValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("DefaultConfig() failed validation: %v", err)
	}
}

func TestValidateNonDividingRates(t *testing.T) {
	cfg := DefaultConfig()
	cfg.AudioSampleRate = 22050 // does not evenly divide 250000
	err := cfg.Validate()
	if !errors.Is(err, ErrConfigInvalid) {
		t.Errorf("Validate() = %v, want an ErrConfigInvalid wrap", err)
	}
}

func TestValidateShortFrame(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ToneDurationS = 0.0001 // yields far fewer than 64 samples per frame
	if err := cfg.Validate(); !errors.Is(err, ErrConfigInvalid) {
		t.Errorf("Validate() = %v, want an ErrConfigInvalid wrap", err)
	}
}

func TestDecimationFactorAndFrameLength(t *testing.T) {
	cfg := DefaultConfig()
	if got := cfg.DecimationFactor(); got != cfg.RFSampleRate/cfg.AudioSampleRate {
		t.Errorf("DecimationFactor() = %d", got)
	}
	want := int(cfg.ToneDurationS * float64(cfg.AudioSampleRate))
	if got := cfg.FrameLength(); got != want {
		t.Errorf("FrameLength() = %d, want %d", got, want)
	}
}
