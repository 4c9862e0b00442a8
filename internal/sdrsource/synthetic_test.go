package sdrsource

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/n0zvei/zveimonitor/internal/zvei"
)

func TestSyntheticSourceReadBlockLength(t *testing.T) {
	src := NewSyntheticSource(SyntheticSourceConfig{
		SampleRateHz:  250000,
		Tones:         []zvei.Symbol{zvei.Symbol1, zvei.Symbol2},
		ToneDurationS: 0.07,
		GapDurationS:  0.01,
	})
	defer src.Close()

	iq, err := src.ReadBlock(context.Background(), 1000)
	require.NoError(t, err)
	assert.Len(t, iq, 1000)
	for _, s := range iq {
		mag := real(s)*real(s) + imag(s)*imag(s)
		assert.InDelta(t, 1.0, mag, 1e-6, "unit-magnitude IQ sample expected with no noise")
	}
}

func TestSyntheticSourceEmptyToneListIsSilence(t *testing.T) {
	src := NewSyntheticSource(SyntheticSourceConfig{
		SampleRateHz: 250000,
	})
	iq, err := src.ReadBlock(context.Background(), 100)
	require.NoError(t, err)
	for _, s := range iq {
		assert.Equal(t, complex(1, 0), s, "zero-frequency carrier with phase never advancing")
	}
}

func TestSyntheticSourceRespectsCanceledContext(t *testing.T) {
	src := NewSyntheticSource(SyntheticSourceConfig{SampleRateHz: 250000})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := src.ReadBlock(ctx, 10)
	assert.ErrorIs(t, err, zvei.ErrUpstreamFailure)
}

func TestSyntheticSourceIDIsStable(t *testing.T) {
	src := NewSyntheticSource(SyntheticSourceConfig{SampleRateHz: 250000})
	id1 := src.ID()
	id2 := src.ID()
	assert.Equal(t, id1, id2)
	assert.NotEmpty(t, id1)
}
