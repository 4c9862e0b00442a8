package sink

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// CSVLogger writes detections to one CSV file per UTC day, organized as
// dataDir/YYYY/MM/DD/detections.csv, rotating to a new file at day
// boundaries.
type CSVLogger struct {
	dataDir string

	mu         sync.Mutex
	openFile   *os.File
	csvWriter  *csv.Writer
	currentDay string
}

// NewCSVLogger creates a CSVLogger rooted at dataDir, which is created
// if it doesn't already exist.
func NewCSVLogger(dataDir string) (*CSVLogger, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("sink: create csv log directory: %w", err)
	}
	return &CSVLogger{dataDir: dataDir}, nil
}

// Emit appends d as one CSV record to the current day's file.
func (cl *CSVLogger) Emit(d Detection) error {
	cl.mu.Lock()
	defer cl.mu.Unlock()

	writer, err := cl.getOrCreateWriter(d.Timestamp)
	if err != nil {
		return err
	}

	record := []string{
		d.Timestamp.Format(time.RFC3339),
		d.Code,
		d.Channel,
		fmt.Sprintf("%.1f", d.RFHz),
	}
	if err := writer.Write(record); err != nil {
		return fmt.Errorf("sink: write csv record: %w", err)
	}
	writer.Flush()
	return writer.Error()
}

func (cl *CSVLogger) getOrCreateWriter(ts time.Time) (*csv.Writer, error) {
	utc := ts.UTC()
	dateStr := utc.Format("2006-01-02")

	if cl.currentDay != dateStr {
		if cl.openFile != nil {
			cl.csvWriter.Flush()
			cl.openFile.Close()
		}

		dirPath := filepath.Join(
			cl.dataDir,
			fmt.Sprintf("%04d", utc.Year()),
			fmt.Sprintf("%02d", utc.Month()),
			fmt.Sprintf("%02d", utc.Day()),
		)
		if err := os.MkdirAll(dirPath, 0o755); err != nil {
			return nil, fmt.Errorf("sink: create csv day directory: %w", err)
		}

		filename := filepath.Join(dirPath, "detections.csv")
		file, err := os.OpenFile(filename, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, fmt.Errorf("sink: open csv log file: %w", err)
		}

		stat, _ := file.Stat()
		needsHeader := stat.Size() == 0

		writer := csv.NewWriter(file)
		cl.openFile = file
		cl.csvWriter = writer
		cl.currentDay = dateStr

		if needsHeader {
			header := []string{"timestamp", "code", "channel", "rf_hz"}
			if err := writer.Write(header); err != nil {
				return nil, fmt.Errorf("sink: write csv header: %w", err)
			}
			writer.Flush()
		}
		log.Printf("sink: csv logger writing to %s", filename)
	}

	return cl.csvWriter, nil
}

// Close flushes and closes the currently open day file, if any.
func (cl *CSVLogger) Close() error {
	cl.mu.Lock()
	defer cl.mu.Unlock()
	if cl.openFile == nil {
		return nil
	}
	cl.csvWriter.Flush()
	err := cl.openFile.Close()
	cl.openFile = nil
	return err
}
