package zvei

import (
	"math/rand"
	"testing"
)

func testConfig() Config {
	return DefaultConfig()
}

func TestPipelinePureFiveToneSequence(t *testing.T) {
	cfg := testConfig()
	p, err := NewPipeline(cfg)
	if err != nil {
		t.Fatalf("NewPipeline: %v", err)
	}

	seq := []Symbol{Symbol1, Symbol2, Symbol3, Symbol4, Symbol5}
	iq := synthesizeIQ(float64(cfg.RFSampleRate), seq, cfg.ToneDurationS, 0.01)

	code, ok := p.Process(iq)
	if !ok {
		t.Fatalf("expected an emission for a clean 5-tone sequence, got none")
	}
	if code != "12345" {
		t.Errorf("code = %q, want %q", code, "12345")
	}
}

func TestPipelineRepeatSuppression(t *testing.T) {
	cfg := testConfig()
	p, err := NewPipeline(cfg)
	if err != nil {
		t.Fatalf("NewPipeline: %v", err)
	}

	seq := []Symbol{Symbol1, Symbol2, Symbol3, Symbol4, Symbol5}
	iq := synthesizeIQ(float64(cfg.RFSampleRate), seq, cfg.ToneDurationS, 0.01)

	code, ok := p.Process(iq)
	if !ok || code != "12345" {
		t.Fatalf("first call: got (%q, %v), want (\"12345\", true)", code, ok)
	}

	code, ok = p.Process(iq)
	if ok {
		t.Errorf("second call on an identical block: expected no emission, got %q", code)
	}
}

func TestPipelineSubMinimumSequence(t *testing.T) {
	cfg := testConfig()
	p, err := NewPipeline(cfg)
	if err != nil {
		t.Fatalf("NewPipeline: %v", err)
	}

	seq := []Symbol{Symbol1, Symbol2, Symbol3}
	iq := synthesizeIQ(float64(cfg.RFSampleRate), seq, cfg.ToneDurationS, 0.01)

	if code, ok := p.Process(iq); ok {
		t.Errorf("3-tone sequence below min_sequence_length: expected no emission, got %q", code)
	}
}

func TestPipelineToneOutsideTolerance(t *testing.T) {
	cfg := testConfig()
	p, err := NewPipeline(cfg)
	if err != nil {
		t.Fatalf("NewPipeline: %v", err)
	}

	// Tone 1 perturbed 35 Hz off-table; tones 2-5 are clean.
	freqs := []float64{
		toneFreq[Symbol1] + 35,
		toneFreq[Symbol2], toneFreq[Symbol3], toneFreq[Symbol4], toneFreq[Symbol5],
	}
	iq := synthesizeIQFreqs(float64(cfg.RFSampleRate), freqs, cfg.ToneDurationS, 0.01)

	if code, ok := p.Process(iq); ok {
		t.Errorf("off-tolerance first tone should drop the sequence below min length, got emission %q", code)
	}
}

func TestPipelineNoiseOnly(t *testing.T) {
	cfg := testConfig()
	p, err := NewPipeline(cfg)
	if err != nil {
		t.Fatalf("NewPipeline: %v", err)
	}

	rng := rand.New(rand.NewSource(42))
	n := cfg.BlockSamples // enough to exercise many classifier scan windows after decimation
	iq := make([]complex128, n)
	for i := range iq {
		iq[i] = complex(rng.NormFloat64()*0.01, rng.NormFloat64()*0.01)
	}

	if code, ok := p.Process(iq); ok {
		t.Errorf("noise-only block: expected no emission, got %q", code)
	}
}

func TestPipelineAlphabetClosure(t *testing.T) {
	cfg := testConfig()
	p, err := NewPipeline(cfg)
	if err != nil {
		t.Fatalf("NewPipeline: %v", err)
	}

	seq := []Symbol{SymbolA, SymbolB, SymbolC, SymbolD, SymbolE, SymbolF}
	iq := synthesizeIQ(float64(cfg.RFSampleRate), seq, cfg.ToneDurationS, 0.01)

	code, ok := p.Process(iq)
	if !ok {
		t.Fatalf("expected an emission")
	}
	for i := 0; i < len(code); i++ {
		if !IsValidSymbol(code[i]) {
			t.Errorf("code %q contains invalid symbol %q", code, code[i])
		}
	}
}

func TestPipelineEmptyBlock(t *testing.T) {
	cfg := testConfig()
	p, err := NewPipeline(cfg)
	if err != nil {
		t.Fatalf("NewPipeline: %v", err)
	}
	if code, ok := p.Process(nil); ok {
		t.Errorf("empty block: expected no emission, got %q", code)
	}
	if p.SamplesProcessed() != 0 {
		t.Errorf("SamplesProcessed() = %d, want 0", p.SamplesProcessed())
	}
}

func TestNewPipelineRejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RFSampleRate = 250000
	cfg.AudioSampleRate = 22050 // does not evenly divide 250000
	if _, err := NewPipeline(cfg); err == nil {
		t.Errorf("expected ErrConfigInvalid for a non-dividing sample rate pair")
	}
}
