package zvei

import "context"

// IQSource is the upstream contract: a producer that, once initialized
// with a center frequency, sample rate, and gain, repeatedly delivers
// blocks of complex baseband IQ samples of a caller-chosen size, or
// signals end-of-stream. A read failure is terminal; the pipeline does
// not retry (see ErrUpstreamFailure).
//
// The core package depends only on this interface — concrete sources
// (an SDR device driver, a file replay, a synthetic generator) are
// external collaborators and live outside this package.
type IQSource interface {
	// ReadBlock blocks until numSamples complex samples are available,
	// ctx is canceled, or the source is exhausted/fails. A read failure
	// or cancellation error wraps ErrUpstreamFailure; a source that has
	// run out of data may instead return io.EOF.
	ReadBlock(ctx context.Context, numSamples int) ([]complex128, error)

	// Close releases any resources held by the source.
	Close() error
}

// SourceConfig carries the parameters an IQSource is initialized with:
// center frequency in Hz, sample rate in Hz, and gain (device-specific
// units; "auto" is represented by a negative value by convention).
type SourceConfig struct {
	CenterFreqHz float64
	SampleRateHz float64
	Gain         float64
}
