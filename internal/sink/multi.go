package sink

import "fmt"

// MultiSink fans a single Emit out to every wrapped sink, continuing on
// individual failures and reporting them jointly rather than aborting
// after the first error.
type MultiSink struct {
	sinks []DetectionSink
}

// NewMultiSink wraps sinks for fan-out. A nil or empty sinks list is
// valid and simply discards every detection.
func NewMultiSink(sinks ...DetectionSink) *MultiSink {
	return &MultiSink{sinks: sinks}
}

// Emit calls Emit on every wrapped sink. If one or more fail, Emit
// returns a combined error after attempting all of them.
func (m *MultiSink) Emit(d Detection) error {
	var firstErr error
	failures := 0
	for _, s := range m.sinks {
		if err := s.Emit(d); err != nil {
			failures++
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	if failures > 0 {
		return fmt.Errorf("sink: %d/%d sinks failed, first error: %w", failures, len(m.sinks), firstErr)
	}
	return nil
}

// Close closes every wrapped sink, continuing past individual failures.
func (m *MultiSink) Close() error {
	var firstErr error
	for _, s := range m.sinks {
		if err := s.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
