package sink

import (
	"fmt"
	"io"
	"sync"
)

// TextLogger writes one human-readable line per detection to w, for
// operators tailing a terminal or a plain append-only file. It does not
// rotate; pair it with an external logrotate policy or use JSONLogger
// for unattended long-running capture.
type TextLogger struct {
	mu sync.Mutex
	w  io.Writer
}

// NewTextLogger wraps w.
func NewTextLogger(w io.Writer) *TextLogger {
	return &TextLogger{w: w}
}

// Emit writes d as a single formatted line.
func (t *TextLogger) Emit(d Detection) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, err := fmt.Fprintf(t.w, "%s  %-16s  %-10s  %.1f Hz\n",
		d.Timestamp.Format("2006-01-02T15:04:05Z07:00"), d.Code, d.Channel, d.RFHz)
	return err
}

// Close is a no-op; TextLogger does not own w's lifecycle.
func (t *TextLogger) Close() error { return nil }
