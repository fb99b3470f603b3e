// Package storage provides the append-only event log and the durable user
// registry behind the HabitHack bot.
//
// The log is a CSV file with a single header row and one record per line
// (Username, Datetime, Choice, Weight). Records are never updated or deleted;
// aggregates are always recomputed from the full per-user history, and the
// export collaborator reads the file verbatim. Physical appends are
// serialized and each record is written with a single write call, so a
// concurrent reader sees either the whole record or none of it.
package storage

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/habithack/habithack/internal/logger"
	"github.com/habithack/habithack/internal/models"
)

// EventStore is the append-only log abstraction. Implementations must be safe
// for concurrent use.
type EventStore interface {
	Append(event models.Event) error
	ScanByUser(username string) ([]models.Event, error)
	ScanAll() ([]models.Event, error)
}

// header is the CSV header row, written exactly once when the file is created.
var header = []string{"Username", "Datetime", "Choice", "Weight"}

// CSVLog is the file-backed EventStore.
type CSVLog struct {
	path string
	mu   sync.Mutex
}

// NewCSVLog creates the log file with its header row if it does not exist yet.
func NewCSVLog(path string) (*CSVLog, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	l := &CSVLog{path: path}

	info, err := os.Stat(path)
	if os.IsNotExist(err) || (err == nil && info.Size() == 0) {
		if err := l.writeRow(header, os.O_CREATE|os.O_WRONLY|os.O_TRUNC); err != nil {
			return nil, fmt.Errorf("failed to write log header: %w", err)
		}
		return l, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to stat log file: %w", err)
	}
	return l, nil
}

// Path returns the location of the underlying file, for the export collaborator.
func (l *CSVLog) Path() string {
	return l.path
}

// Append durably writes one event record. Unknown categories are accepted;
// validity of the category is not this layer's concern. I/O errors are
// surfaced to the caller, never swallowed.
func (l *CSVLog) Append(event models.Event) error {
	if err := event.Validate(); err != nil {
		return fmt.Errorf("invalid event: %w", err)
	}

	row := []string{
		event.Username,
		event.Timestamp.Format(models.TimeLayout),
		string(event.Category),
		strconv.Itoa(event.Weight),
	}
	if err := l.writeRow(row, os.O_CREATE|os.O_WRONLY|os.O_APPEND); err != nil {
		return fmt.Errorf("failed to append event: %w", err)
	}
	return nil
}

// writeRow encodes one CSV row and writes it with a single Write call.
func (l *CSVLog) writeRow(row []string, flags int) error {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(row); err != nil {
		return err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := os.OpenFile(l.path, flags, 0o644)
	if err != nil {
		return err
	}
	if _, err := f.Write(buf.Bytes()); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// ScanByUser returns all events for one user in append order, which is
// chronological order since every record is stamped at write time.
func (l *CSVLog) ScanByUser(username string) ([]models.Event, error) {
	all, err := l.ScanAll()
	if err != nil {
		return nil, err
	}
	var events []models.Event
	for _, e := range all {
		if e.Username == username {
			events = append(events, e)
		}
	}
	return events, nil
}

// ScanAll returns every event in the log in append order. A missing file is
// treated as an empty history and malformed rows are skipped with a warning,
// so a corrupt line can never take the bot down.
func (l *CSVLog) ScanAll() ([]models.Event, error) {
	l.mu.Lock()
	f, err := os.Open(l.path)
	l.mu.Unlock()
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	var events []models.Event
	first := true
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			logger.Warn("Skipping malformed log row: %v", err)
			continue
		}
		if first {
			first = false
			if len(row) > 0 && row[0] == header[0] {
				continue
			}
		}
		event, ok := parseRow(row)
		if !ok {
			logger.Warn("Skipping malformed log row: %q", row)
			continue
		}
		events = append(events, event)
	}
	return events, nil
}

func parseRow(row []string) (models.Event, bool) {
	if len(row) != len(header) {
		return models.Event{}, false
	}
	ts, err := time.ParseInLocation(models.TimeLayout, row[1], time.Local)
	if err != nil {
		return models.Event{}, false
	}
	weight, err := strconv.Atoi(row[3])
	if err != nil {
		return models.Event{}, false
	}
	return models.Event{
		Username:  row[0],
		Timestamp: ts,
		Category:  models.Category(row[2]),
		Weight:    weight,
	}, true
}
