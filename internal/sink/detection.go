// Package sink provides the DetectionSink implementations a monitor
// process fans a decoded ZVEI sequence out to: rotating on-disk logs,
// an MQTT publisher, and a live websocket broadcaster.
package sink

import "time"

// Detection is one decoded ZVEI sequence, timestamped and tagged with
// the channel it came from. This is the record every DetectionSink
// consumes.
type Detection struct {
	Code      string    `json:"code"`
	Timestamp time.Time `json:"timestamp"`
	Channel   string    `json:"channel"`
	RFHz      float64   `json:"rf_hz"`
}

// DetectionSink receives decoded sequences as they're emitted by a
// running Pipeline. Implementations must not block the decode loop for
// long; slow sinks (network publishers) should buffer or drop rather
// than stall the caller.
type DetectionSink interface {
	Emit(d Detection) error
	Close() error
}
