// Package sdrsource provides zvei.IQSource implementations: a synthetic
// tone generator for bench testing and demos, and a file-backed source
// that replays raw interleaved IQ captures recorded by a real front end.
package sdrsource

import (
	"context"
	"fmt"
	"math"
	"math/rand"

	"github.com/google/uuid"

	"github.com/n0zvei/zveimonitor/internal/zvei"
)

// defaultDeviationHz is the FM deviation applied to the ZVEI tone
// message when a SyntheticSourceConfig doesn't specify one.
const defaultDeviationHz = 3000.0

// SyntheticSource generates complex baseband IQ samples by FM-modulating
// a carrier at zero frequency offset with a configurable
// sequence of ZVEI tones (plus silent gaps and optional Gaussian noise).
// It never touches a real radio front end; it exists for bench tests,
// demos, and CI where no SDR hardware is available.
type SyntheticSource struct {
	id          string
	sampleRate  float64
	toneHz      []float64
	toneDurS    float64
	gapDurS     float64
	deviationHz float64
	noiseSigma  float64
	rng         *rand.Rand

	phase   float64
	toneIdx int
	inTone  bool
	emitted int
}

// SyntheticSourceConfig configures a SyntheticSource.
type SyntheticSourceConfig struct {
	SampleRateHz  float64
	Tones         []zvei.Symbol // sequence of ZVEI symbols to emit, repeating
	ToneDurationS float64
	GapDurationS  float64
	DeviationHz   float64 // peak FM deviation while a tone is active; 0 uses defaultDeviationHz
	NoiseSigma    float64 // stddev of additive Gaussian I/Q noise; 0 disables
	Seed          int64
}

// NewSyntheticSource builds a SyntheticSource from cfg. An empty Tones
// list produces pure noise (or silence, if NoiseSigma is 0).
func NewSyntheticSource(cfg SyntheticSourceConfig) *SyntheticSource {
	toneHz := make([]float64, len(cfg.Tones))
	for i, sym := range cfg.Tones {
		toneHz[i], _ = zvei.Frequency(sym)
	}
	deviationHz := cfg.DeviationHz
	if deviationHz == 0 {
		deviationHz = defaultDeviationHz
	}
	return &SyntheticSource{
		id:          uuid.NewString(),
		sampleRate:  cfg.SampleRateHz,
		toneHz:      toneHz,
		toneDurS:    cfg.ToneDurationS,
		gapDurS:     cfg.GapDurationS,
		deviationHz: deviationHz,
		noiseSigma:  cfg.NoiseSigma,
		rng:         rand.New(rand.NewSource(cfg.Seed)),
		inTone:      false,
	}
}

// ID identifies this source instance, suitable for log/metric labels.
func (s *SyntheticSource) ID() string { return s.id }

// ReadBlock synthesizes numSamples of IQ data. It checks ctx for
// cancellation once, before generating; once started, a block is always
// generated in full. Synthesis itself never blocks on I/O.
func (s *SyntheticSource) ReadBlock(ctx context.Context, numSamples int) ([]complex128, error) {
	if numSamples <= 0 {
		return nil, nil
	}
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: %v", zvei.ErrUpstreamFailure, ctx.Err())
	default:
	}

	out := make([]complex128, numSamples)
	for i := range out {
		freq := s.currentFreq()
		s.phase += 2 * math.Pi * freq / s.sampleRate
		if s.phase > math.Pi {
			s.phase -= 2 * math.Pi
		}
		sample := complex(math.Cos(s.phase), math.Sin(s.phase))
		if s.noiseSigma > 0 {
			sample += complex(s.rng.NormFloat64()*s.noiseSigma, s.rng.NormFloat64()*s.noiseSigma)
		}
		out[i] = sample
		s.advance()
	}
	return out, nil
}

// currentFreq returns the carrier's instantaneous frequency offset: 0
// during a gap, or, while a tone is active, the FM message
// deviationHz*sin(2*pi*f_tone*t) for the active tone's frequency. This
// is frequency modulation by the tone, not frequency translation to
// it — after demodulation the recovered signal is a sinusoid at
// f_tone, which is what the Classifier's FFT looks for.
func (s *SyntheticSource) currentFreq() float64 {
	if !s.inTone || len(s.toneHz) == 0 {
		return 0
	}
	toneHz := s.toneHz[s.toneIdx]
	tLocal := float64(s.emitted) / s.sampleRate
	return s.deviationHz * math.Sin(2*math.Pi*toneHz*tLocal)
}

func (s *SyntheticSource) advance() {
	s.emitted++
	var limit int
	if s.inTone {
		limit = int(s.toneDurS * s.sampleRate)
	} else {
		limit = int(s.gapDurS * s.sampleRate)
	}
	if limit <= 0 {
		limit = 1
	}
	if s.emitted < limit {
		return
	}
	s.emitted = 0
	if s.inTone {
		n := len(s.toneHz)
		if n < 1 {
			n = 1
		}
		s.toneIdx = (s.toneIdx + 1) % n
	}
	s.inTone = !s.inTone
}

// Close is a no-op; SyntheticSource holds no external resources.
func (s *SyntheticSource) Close() error { return nil }
