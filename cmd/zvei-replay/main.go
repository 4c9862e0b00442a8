// Command zvei-replay decodes a previously captured raw IQ file
// offline, printing every decoded sequence to stdout. It's the bench
// tool for validating a capture against the decoder without standing
// up the full monitor daemon and its network sinks.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/n0zvei/zveimonitor/internal/sdrsource"
	"github.com/n0zvei/zveimonitor/internal/sink"
	"github.com/n0zvei/zveimonitor/internal/zvei"
)

func main() {
	path := flag.String("file", "", "Path to a raw interleaved IQ capture file")
	format := flag.String("format", "int16", "Sample format: int16 or float32")
	rfRate := flag.Int("rf-rate", 250000, "Capture sample rate in Hz")
	audioRate := flag.Int("audio-rate", 25000, "Decimated audio sample rate in Hz")
	blockSamples := flag.Int("block-samples", 262144, "IQ samples read per decode block")
	flag.Parse()

	if *path == "" {
		fmt.Fprintln(os.Stderr, "zvei-replay: -file is required")
		os.Exit(2)
	}

	sampleFormat := sdrsource.FormatInt16
	if *format == "float32" {
		sampleFormat = sdrsource.FormatFloat32
	}

	src, err := sdrsource.NewFileSource(*path, sampleFormat)
	if err != nil {
		log.Fatalf("zvei-replay: %v", err)
	}
	defer src.Close()

	cfg := zvei.DefaultConfig()
	cfg.RFSampleRate = *rfRate
	cfg.AudioSampleRate = *audioRate
	cfg.BlockSamples = *blockSamples

	pipeline, err := zvei.NewPipeline(cfg)
	if err != nil {
		log.Fatalf("zvei-replay: %v", err)
	}

	logger := sink.NewTextLogger(os.Stdout)
	ctx := context.Background()

	for {
		iq, err := src.ReadBlock(ctx, cfg.BlockSamples)
		if len(iq) == 0 && err != nil {
			if err == io.EOF {
				break
			}
			log.Fatalf("zvei-replay: read block: %v", err)
		}

		code, ok := pipeline.Process(iq)
		if ok {
			if emitErr := logger.Emit(sink.Detection{Code: code}); emitErr != nil {
				log.Printf("zvei-replay: emit: %v", emitErr)
			}
		}

		if len(iq) < cfg.BlockSamples {
			break
		}
	}

	fmt.Printf("zvei-replay: processed %d samples\n", pipeline.SamplesProcessed())
}
