package zvei

import "errors"

// ErrConfigInvalid is wrapped by configuration validation failures:
// audio_sample_rate not dividing rf_sample_rate, or a tone duration
// yielding fewer than 64 samples per frame. Fatal at pipeline
// construction.
var ErrConfigInvalid = errors.New("zvei: invalid configuration")

// ErrUpstreamFailure is wrapped by IQSource termination or read errors.
// It is returned by an IQSource's ReadBlock, never by Pipeline.Process;
// once a source returns it, that source is no longer usable.
var ErrUpstreamFailure = errors.New("zvei: upstream IQ source failure")

// NumericDegenerate conditions (an FFT on an empty or all-zero frame)
// are never surfaced as errors: the classifier recovers locally by
// returning the no-tone result. There is deliberately no exported error
// value for this case.
