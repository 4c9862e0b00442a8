package sdrsource

import (
	"bufio"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/n0zvei/zveimonitor/internal/zvei"
)

// ErrFileFormat indicates a capture file with an unsupported or corrupt
// sample format.
var ErrFileFormat = errors.New("sdrsource: unsupported capture file format")

// SampleFormat names the on-disk IQ sample encoding FileSource understands.
type SampleFormat int

const (
	// FormatInt16 is interleaved little-endian signed 16-bit I/Q pairs,
	// the format most common SDR IQ recorder clients write.
	FormatInt16 SampleFormat = iota
	// FormatFloat32 is interleaved little-endian 32-bit float I/Q pairs.
	FormatFloat32
)

// FileSource replays a raw interleaved IQ capture from disk, one block
// at a time, implementing zvei.IQSource. It supports both the int16
// and float32 interleaved encodings used across the capture tooling in
// the wild; int16 samples are normalized to [-1, 1).
type FileSource struct {
	f      *os.File
	r      *bufio.Reader
	format SampleFormat
	eof    bool
}

// NewFileSource opens path for replay. format selects the on-disk sample
// encoding; callers that don't know it up front can probe the file
// extension or a sidecar metadata file before calling this.
func NewFileSource(path string, format SampleFormat) (*FileSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("sdrsource: open %s: %w", path, err)
	}
	return &FileSource{
		f:      f,
		r:      bufio.NewReaderSize(f, 1<<20),
		format: format,
	}, nil
}

// ReadBlock reads up to numSamples complex IQ samples from the file. It
// returns a short (possibly empty) slice with a nil error at end of
// file, matching io.Reader's "short read is not an error" convention;
// callers distinguish end-of-capture by comparing len(result) against
// numSamples. Repeated calls after EOF return (nil, io.EOF).
func (s *FileSource) ReadBlock(ctx context.Context, numSamples int) ([]complex128, error) {
	if s.eof {
		return nil, io.EOF
	}
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: %v", zvei.ErrUpstreamFailure, ctx.Err())
	default:
	}

	out := make([]complex128, 0, numSamples)
	for i := 0; i < numSamples; i++ {
		sample, err := s.readSample()
		if err == io.EOF {
			s.eof = true
			break
		}
		if err != nil {
			return out, fmt.Errorf("sample %d: %w: %w", i, zvei.ErrUpstreamFailure, err)
		}
		out = append(out, sample)
	}
	return out, nil
}

func (s *FileSource) readSample() (complex128, error) {
	switch s.format {
	case FormatInt16:
		var iq [2]int16
		if err := binary.Read(s.r, binary.LittleEndian, &iq); err != nil {
			return 0, err
		}
		const scale = 1.0 / 32768.0
		return complex(float64(iq[0])*scale, float64(iq[1])*scale), nil
	case FormatFloat32:
		var iq [2]float32
		if err := binary.Read(s.r, binary.LittleEndian, &iq); err != nil {
			return 0, err
		}
		return complex(float64(iq[0]), float64(iq[1])), nil
	default:
		return 0, fmt.Errorf("%w: format code %d", ErrFileFormat, s.format)
	}
}

// Close releases the underlying file handle.
func (s *FileSource) Close() error {
	return s.f.Close()
}
