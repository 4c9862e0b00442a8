package sdrsource

import (
	"bytes"
	"context"
	"encoding/binary"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeInt16Capture(t *testing.T, pairs [][2]int16) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "capture.iq")
	var buf bytes.Buffer
	for _, p := range pairs {
		require.NoError(t, binary.Write(&buf, binary.LittleEndian, p))
	}
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	return path
}

func TestFileSourceReadsInt16Samples(t *testing.T) {
	path := writeInt16Capture(t, [][2]int16{{32767, 0}, {0, 32767}, {-32768, 0}})

	src, err := NewFileSource(path, FormatInt16)
	require.NoError(t, err)
	defer src.Close()

	iq, err := src.ReadBlock(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, iq, 3)
	assert.InDelta(t, 1.0, real(iq[0]), 1e-3)
	assert.InDelta(t, 1.0, imag(iq[1]), 1e-3)
	assert.InDelta(t, -1.0, real(iq[2]), 1e-3)
}

func TestFileSourceShortReadAtEOF(t *testing.T) {
	path := writeInt16Capture(t, [][2]int16{{1, 1}, {2, 2}})

	src, err := NewFileSource(path, FormatInt16)
	require.NoError(t, err)
	defer src.Close()

	iq, err := src.ReadBlock(context.Background(), 10)
	require.NoError(t, err)
	assert.Len(t, iq, 2, "short read at EOF returns what's available, no error")

	_, err = src.ReadBlock(context.Background(), 10)
	assert.ErrorIs(t, err, io.EOF)
}

func TestFileSourceUnknownFormat(t *testing.T) {
	path := writeInt16Capture(t, [][2]int16{{1, 1}})
	src, err := NewFileSource(path, SampleFormat(99))
	require.NoError(t, err)
	defer src.Close()

	_, err = src.ReadBlock(context.Background(), 1)
	assert.ErrorIs(t, err, ErrFileFormat)
}
