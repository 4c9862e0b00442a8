// Package metrics exposes the monitor's runtime counters as Prometheus
// instruments.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collector holds every Prometheus instrument the monitor updates,
// labeled per-channel where a value is naturally per-SDR-channel.
type Collector struct {
	samplesProcessedTotal *prometheus.CounterVec
	blocksProcessedTotal  *prometheus.CounterVec
	detectionsTotal       *prometheus.CounterVec
	decodeLatencySeconds  *prometheus.HistogramVec
	upstreamFailuresTotal *prometheus.CounterVec
	sinkFailuresTotal     *prometheus.CounterVec
	lastDetectionUnixTime *prometheus.GaugeVec
}

// NewCollector registers and returns the monitor's metric set against
// the default Prometheus registry.
func NewCollector() *Collector {
	return NewCollectorWith(prometheus.DefaultRegisterer)
}

// NewCollectorWith registers the monitor's metric set against reg
// instead of the global default registry, so tests can construct an
// isolated Collector without colliding with other registrations.
func NewCollectorWith(reg prometheus.Registerer) *Collector {
	factory := promauto.With(reg)
	return &Collector{
		samplesProcessedTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "zvei_samples_processed_total",
				Help: "Total IQ samples processed, per channel.",
			},
			[]string{"channel"},
		),
		blocksProcessedTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "zvei_blocks_processed_total",
				Help: "Total IQ blocks processed, per channel.",
			},
			[]string{"channel"},
		),
		detectionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "zvei_detections_total",
				Help: "Total decoded ZVEI sequences emitted, per channel.",
			},
			[]string{"channel"},
		),
		decodeLatencySeconds: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "zvei_decode_latency_seconds",
				Help:    "Wall-clock time spent processing one IQ block through the pipeline.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"channel"},
		),
		upstreamFailuresTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "zvei_upstream_failures_total",
				Help: "Total IQ source read failures, per channel.",
			},
			[]string{"channel"},
		),
		sinkFailuresTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "zvei_sink_failures_total",
				Help: "Total detection sink emit failures, per channel.",
			},
			[]string{"channel"},
		),
		lastDetectionUnixTime: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "zvei_last_detection_unixtime",
				Help: "Unix timestamp of the most recent detection, per channel.",
			},
			[]string{"channel"},
		),
	}
}

// ObserveBlock records one processed IQ block of numSamples samples
// taking elapsedSeconds to run through the pipeline.
func (c *Collector) ObserveBlock(channel string, numSamples int, elapsedSeconds float64) {
	c.blocksProcessedTotal.WithLabelValues(channel).Inc()
	c.samplesProcessedTotal.WithLabelValues(channel).Add(float64(numSamples))
	c.decodeLatencySeconds.WithLabelValues(channel).Observe(elapsedSeconds)
}

// ObserveDetection records a successful decode at unixTime.
func (c *Collector) ObserveDetection(channel string, unixTime int64) {
	c.detectionsTotal.WithLabelValues(channel).Inc()
	c.lastDetectionUnixTime.WithLabelValues(channel).Set(float64(unixTime))
}

// ObserveUpstreamFailure increments the upstream failure counter.
func (c *Collector) ObserveUpstreamFailure(channel string) {
	c.upstreamFailuresTotal.WithLabelValues(channel).Inc()
}

// ObserveSinkFailure increments the sink failure counter.
func (c *Collector) ObserveSinkFailure(channel string) {
	c.sinkFailuresTotal.WithLabelValues(channel).Inc()
}
