// Command zvei-monitor runs a long-lived ZVEI/CCIR tone-sequence
// decoder: it pulls IQ blocks from a configured source, feeds them
// through the decode pipeline, and fans any decoded sequence out to the
// configured logging, MQTT, and websocket sinks.
package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/n0zvei/zveimonitor/internal/config"
	"github.com/n0zvei/zveimonitor/internal/health"
	"github.com/n0zvei/zveimonitor/internal/metrics"
	"github.com/n0zvei/zveimonitor/internal/sdrsource"
	"github.com/n0zvei/zveimonitor/internal/sink"
	"github.com/n0zvei/zveimonitor/internal/zvei"
)

func main() {
	configPath := flag.String("config", "monitor.yaml", "Path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("zvei-monitor: %v", err)
	}

	source, err := buildSource(cfg.SDR)
	if err != nil {
		log.Fatalf("zvei-monitor: %v", err)
	}
	defer source.Close()

	pipeline, err := zvei.NewPipeline(cfg.Decoder)
	if err != nil {
		log.Fatalf("zvei-monitor: %v", err)
	}

	detSink, err := buildSink(cfg)
	if err != nil {
		log.Fatalf("zvei-monitor: %v", err)
	}
	defer detSink.Close()

	collector := metrics.NewCollector()

	var lastDetMu sync.Mutex
	var lastDet time.Time

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan
		log.Println("zvei-monitor: shutting down")
		cancel()
	}()

	startOptionalServers(cfg, pipeline, func() time.Time {
		lastDetMu.Lock()
		defer lastDetMu.Unlock()
		return lastDet
	})

	log.Printf("zvei-monitor: starting decode loop on channel %q", cfg.SDR.Channel)
	runDecodeLoop(ctx, pipeline, source, detSink, collector, cfg.SDR.Channel, cfg.Decoder.BlockSamples, &lastDetMu, &lastDet)
}

func buildSource(cfg config.SDRConfig) (zvei.IQSource, error) {
	switch cfg.Source {
	case "file":
		format := sdrsource.FormatInt16
		if cfg.SampleFormat == "float32" {
			format = sdrsource.FormatFloat32
		}
		return sdrsource.NewFileSource(cfg.FilePath, format)
	default:
		return sdrsource.NewSyntheticSource(sdrsource.SyntheticSourceConfig{
			SampleRateHz:  250000,
			Tones:         []zvei.Symbol{zvei.Symbol1, zvei.Symbol2, zvei.Symbol3, zvei.Symbol4, zvei.Symbol5},
			ToneDurationS: 0.07,
			GapDurationS:  0.01,
		}), nil
	}
}

func buildSink(cfg config.Config) (sink.DetectionSink, error) {
	var sinks []sink.DetectionSink

	switch cfg.Logging.Format {
	case "json":
		l, err := sink.NewJSONLogger(sink.JSONLoggerConfig{
			Path:       cfg.Logging.Path,
			MaxSizeMB:  cfg.Logging.MaxSizeMB,
			MaxAgeDays: cfg.Logging.MaxAgeDays,
			MaxBackups: cfg.Logging.MaxBackups,
			Compress:   cfg.Logging.Compress,
		})
		if err != nil {
			return nil, err
		}
		sinks = append(sinks, l)
	case "csv":
		l, err := sink.NewCSVLogger(cfg.Logging.Path)
		if err != nil {
			return nil, err
		}
		sinks = append(sinks, l)
	case "text":
		sinks = append(sinks, sink.NewTextLogger(os.Stdout))
	}

	if cfg.MQTT.Enabled {
		mp, err := sink.NewMQTTPublisher(sink.MQTTConfig{
			Broker:   cfg.MQTT.Broker,
			ClientID: cfg.MQTT.ClientID,
			Username: cfg.MQTT.Username,
			Password: cfg.MQTT.Password,
			Topic:    cfg.MQTT.Topic,
			QoS:      cfg.MQTT.QoS,
			Retain:   cfg.MQTT.Retain,
			TLS: sink.MQTTTLSConfig{
				Enabled:    cfg.MQTT.TLS.Enabled,
				CACert:     cfg.MQTT.TLS.CACert,
				ClientCert: cfg.MQTT.TLS.ClientCert,
				ClientKey:  cfg.MQTT.TLS.ClientKey,
			},
		})
		if err != nil {
			return nil, err
		}
		sinks = append(sinks, mp)
	}

	if cfg.WebSocket.Enabled {
		bc := sink.NewWebSocketBroadcaster()
		mux := http.NewServeMux()
		mux.Handle(cfg.WebSocket.Path, bc)
		go func() {
			if err := http.ListenAndServe(cfg.WebSocket.Listen, mux); err != nil {
				log.Printf("zvei-monitor: websocket server stopped: %v", err)
			}
		}()
		sinks = append(sinks, bc)
	}

	return sink.NewMultiSink(sinks...), nil
}

func startOptionalServers(cfg config.Config, pipeline *zvei.Pipeline, lastDetection func() time.Time) {
	if cfg.Prometheus.Enabled {
		mux := http.NewServeMux()
		mux.Handle(cfg.Prometheus.Path, promhttp.Handler())
		go func() {
			if err := http.ListenAndServe(cfg.Prometheus.Listen, mux); err != nil {
				log.Printf("zvei-monitor: prometheus server stopped: %v", err)
			}
		}()
	}

	if cfg.Health.Enabled {
		reporter := health.NewReporter(time.Now(), pipeline, lastDetection)
		mux := http.NewServeMux()
		mux.Handle(cfg.Health.Path, reporter.Handler())
		go func() {
			if err := http.ListenAndServe(cfg.Health.Listen, mux); err != nil {
				log.Printf("zvei-monitor: health server stopped: %v", err)
			}
		}()
	}
}

func runDecodeLoop(
	ctx context.Context,
	pipeline *zvei.Pipeline,
	source zvei.IQSource,
	detSink sink.DetectionSink,
	collector *metrics.Collector,
	channel string,
	blockSamples int,
	lastDetMu *sync.Mutex,
	lastDet *time.Time,
) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		iq, err := source.ReadBlock(ctx, blockSamples)
		if err != nil {
			collector.ObserveUpstreamFailure(channel)
			log.Printf("zvei-monitor: upstream read failed, stopping: %v", err)
			return
		}

		start := time.Now()
		code, ok := pipeline.Process(iq)
		collector.ObserveBlock(channel, len(iq), time.Since(start).Seconds())
		if !ok {
			continue
		}

		now := time.Now()
		lastDetMu.Lock()
		*lastDet = now
		lastDetMu.Unlock()

		collector.ObserveDetection(channel, now.Unix())
		log.Printf("zvei-monitor: decoded %q on channel %q", code, channel)

		if err := detSink.Emit(sink.Detection{
			Code:      code,
			Timestamp: now,
			Channel:   channel,
		}); err != nil {
			collector.ObserveSinkFailure(channel)
			log.Printf("zvei-monitor: sink emit failed: %v", err)
		}
	}
}
