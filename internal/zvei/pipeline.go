package zvei

import (
	"fmt"
	"sync/atomic"
)

// Pipeline composes the Demodulator, Decimator, and Aggregator into the
// single per-block operation of §4.5. One Pipeline value owns its
// Aggregator state exclusively; concurrent calls to Process on the same
// instance are not supported (§5).
type Pipeline struct {
	config Config

	demod      *Demodulator
	decim      *Decimator
	classifier *Classifier
	aggregator *Aggregator

	samplesProcessed atomic.Uint64
}

// NewPipeline builds a Pipeline from a validated Config. It returns
// ErrConfigInvalid if cfg fails validation.
func NewPipeline(cfg Config) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	classifier := NewClassifier(
		float64(cfg.AudioSampleRate),
		cfg.FrameLength(),
		cfg.DetectionThresh,
		cfg.ToneToleranceHz,
	)

	return &Pipeline{
		config:     cfg,
		demod:      NewDemodulator(float64(cfg.RFSampleRate)),
		decim:      NewDecimator(cfg.DecimationFactor()),
		classifier: classifier,
		aggregator: NewAggregator(classifier, float64(cfg.AudioSampleRate), cfg.MinSequenceLength),
	}, nil
}

// Process runs one IQ block through demodulation, decimation, and
// aggregation, returning at most one completed code string (§4.5). It
// never returns an error for ordinary signal conditions; errors are
// reserved for conditions the caller must treat as fatal, but Process
// itself has none to report — upstream failures are the IQSource's
// concern (§7 UpstreamFailure), not Process's.
func (p *Pipeline) Process(iq []complex128) (string, bool) {
	p.samplesProcessed.Add(uint64(len(iq)))

	audioRF := p.demod.Demodulate(iq)
	audio := p.decim.Decimate(audioRF)

	return p.aggregator.Process(audio)
}

// SamplesProcessed returns the monotonic count of IQ samples passed to
// Process so far (§4.5 observability).
func (p *Pipeline) SamplesProcessed() uint64 {
	return p.samplesProcessed.Load()
}

// Config returns the configuration the pipeline was built with.
func (p *Pipeline) Config() Config {
	return p.config
}

func (p *Pipeline) String() string {
	return fmt.Sprintf("Pipeline(rf=%dHz audio=%dHz block=%d)",
		p.config.RFSampleRate, p.config.AudioSampleRate, p.config.BlockSamples)
}
