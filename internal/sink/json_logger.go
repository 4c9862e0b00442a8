package sink

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/klauspost/compress/zstd"
	"gopkg.in/natefinch/lumberjack.v2"
)

// JSONLogger appends one JSON object per line to a size- and age-rotated
// log file. Rotated files are re-compressed with zstd in the
// background and the uncompressed copy is removed, since lumberjack's
// own Compress option only supports gzip.
type JSONLogger struct {
	mu       sync.Mutex
	rotator  *lumberjack.Logger
	compress bool
}

// JSONLoggerConfig configures rotation thresholds, mirroring the knobs
// lumberjack.Logger itself exposes.
type JSONLoggerConfig struct {
	Path       string
	MaxSizeMB  int
	MaxAgeDays int
	MaxBackups int
	Compress   bool // zstd-compress rotated files once lumberjack closes them
}

// NewJSONLogger opens (creating if needed) a rotating JSON-lines
// detection log at cfg.Path.
func NewJSONLogger(cfg JSONLoggerConfig) (*JSONLogger, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
		return nil, fmt.Errorf("sink: create log directory: %w", err)
	}
	rotator := &lumberjack.Logger{
		Filename:   cfg.Path,
		MaxSize:    cfg.MaxSizeMB,
		MaxAge:     cfg.MaxAgeDays,
		MaxBackups: cfg.MaxBackups,
		Compress:   false,
	}
	l := &JSONLogger{rotator: rotator, compress: cfg.Compress}
	if cfg.Compress {
		rotator.Compress = false
	}
	return l, nil
}

// Emit appends d as a single JSON line, rotating the file if lumberjack
// decides it's due.
func (l *JSONLogger) Emit(d Detection) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	line, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("sink: marshal detection: %w", err)
	}
	line = append(line, '\n')

	preRotateName := l.rotator.Filename
	preSize := currentSize(preRotateName)

	if _, err := l.rotator.Write(line); err != nil {
		return fmt.Errorf("sink: write detection log: %w", err)
	}

	if l.compress && currentSize(preRotateName) < preSize {
		// lumberjack just rotated: the active file shrank because a
		// backup was split off. Compress the newest backup async.
		go compressLatestBackup(filepath.Dir(preRotateName), filepath.Base(preRotateName))
	}
	return nil
}

func currentSize(path string) int64 {
	info, err := os.Stat(path)
	if err != nil {
		return 0
	}
	return info.Size()
}

// compressLatestBackup zstd-compresses the most recently created
// lumberjack backup file (named "<base>-<timestamp><ext>") and removes
// the uncompressed original. Errors are deliberately swallowed; a
// failed archive pass is not worth losing the detection stream over.
func compressLatestBackup(dir, base string) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}
	ext := filepath.Ext(base)
	stem := base[:len(base)-len(ext)]

	var newest string
	var newestMod int64
	for _, e := range entries {
		name := e.Name()
		if name == base || filepath.Ext(name) != ext {
			continue
		}
		if len(name) <= len(stem) || name[:len(stem)] != stem {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		if mt := info.ModTime().UnixNano(); mt > newestMod {
			newestMod = mt
			newest = name
		}
	}
	if newest == "" {
		return
	}

	src := filepath.Join(dir, newest)
	dst := src + ".zst"
	if err := zstdCompressFile(src, dst); err != nil {
		return
	}
	os.Remove(src)
}

func zstdCompressFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	enc, err := zstd.NewWriter(out, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return err
	}
	if _, err := io.Copy(enc, in); err != nil {
		enc.Close()
		return err
	}
	return enc.Close()
}

// Close flushes and releases the underlying rotator.
func (l *JSONLogger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.rotator.Close()
}
