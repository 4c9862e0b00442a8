// Package health reports process and host vitals alongside the
// decoder's own liveness, for a JSON status endpoint an operator or
// load balancer can poll.
package health

import (
	"context"
	"encoding/json"
	"net/http"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

// Status is the JSON body served by Handler.
type Status struct {
	Status           string    `json:"status"`
	UptimeSeconds    float64   `json:"uptime_seconds"`
	SamplesProcessed uint64    `json:"samples_processed"`
	LastDetectionAt  time.Time `json:"last_detection_at,omitempty"`
	Goroutines       int       `json:"goroutines"`
	CPUPercent       float64   `json:"cpu_percent"`
	MemUsedPercent   float64   `json:"mem_used_percent"`
}

// PipelineStats is the narrow view of pipeline state Reporter needs;
// a *zvei.Pipeline plus the detection latch in the caller satisfies it
// without this package importing zvei directly.
type PipelineStats interface {
	SamplesProcessed() uint64
}

// Reporter builds Status snapshots for a running monitor process.
type Reporter struct {
	start    time.Time
	pipeline PipelineStats
	lastDet  func() time.Time
}

// NewReporter returns a Reporter whose uptime is measured from start.
// lastDetection may be nil if the caller doesn't track one.
func NewReporter(start time.Time, pipeline PipelineStats, lastDetection func() time.Time) *Reporter {
	return &Reporter{start: start, pipeline: pipeline, lastDet: lastDetection}
}

// Snapshot gathers a point-in-time Status. Host CPU/memory sampling is
// best-effort: a gopsutil failure degrades the corresponding field to
// zero rather than failing the whole report.
func (r *Reporter) Snapshot(ctx context.Context) Status {
	s := Status{
		Status:           "ok",
		UptimeSeconds:    time.Since(r.start).Seconds(),
		SamplesProcessed: r.pipeline.SamplesProcessed(),
		Goroutines:       runtime.NumGoroutine(),
	}
	if r.lastDet != nil {
		s.LastDetectionAt = r.lastDet()
	}

	if pcts, err := cpu.PercentWithContext(ctx, 200*time.Millisecond, false); err == nil && len(pcts) > 0 {
		s.CPUPercent = pcts[0]
	}
	if vm, err := mem.VirtualMemoryWithContext(ctx); err == nil {
		s.MemUsedPercent = vm.UsedPercent
	}
	return s
}

// Handler serves the current Status as JSON at GET /healthz.
func (r *Reporter) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		s := r.Snapshot(req.Context())
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(s)
	})
}
