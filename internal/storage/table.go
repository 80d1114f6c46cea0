package storage

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"cletaeats-be/internal/logger"

	"go.uber.org/zap"
)

// ErrIO marks any storage failure so callers can tell "file broken" apart
// from "no records yet". Check with errors.Is.
var ErrIO = errors.New("storage i/o failure")

// Table is one delimited-record file. Each record is a CSV line; free-text
// fields that may contain the separator are quoted by the codec.
// All operations are serialized on an internal mutex.
type Table struct {
	path string
	mu   sync.Mutex
}

func NewTable(path string) *Table {
	return &Table{path: path}
}

func (t *Table) Path() string { return t.path }

// LoadAll reads every record from the file. A missing file is an empty
// table, not an error. Malformed lines are skipped, not surfaced.
func (t *Table) LoadAll() ([][]string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	f, err := os.Open(t.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: open %s: %v", ErrIO, t.path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	var records [][]string
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				logger.L().Warn("skipping malformed record",
					zap.String("file", t.path),
					zap.Int("line", parseErr.Line),
				)
				continue
			}
			return nil, fmt.Errorf("%w: read %s: %v", ErrIO, t.path, err)
		}
		records = append(records, record)
	}
	return records, nil
}

// AppendOne writes a single record to the end of the file, creating it if
// needed.
func (t *Table) AppendOne(record []string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	f, err := os.OpenFile(t.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("%w: open %s: %v", ErrIO, t.path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(record); err != nil {
		return fmt.Errorf("%w: append %s: %v", ErrIO, t.path, err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("%w: flush %s: %v", ErrIO, t.path, err)
	}
	return nil
}

// ReplaceAll atomically swaps the full record set: the new content is
// written to a temp file which is renamed over the original.
func (t *Table) ReplaceAll(records [][]string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	tmp := t.path + ".tmp"
	f, err := os.OpenFile(tmp, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("%w: open %s: %v", ErrIO, tmp, err)
	}

	w := csv.NewWriter(f)
	if err := w.WriteAll(records); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("%w: write %s: %v", ErrIO, tmp, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("%w: close %s: %v", ErrIO, tmp, err)
	}

	if err := os.Rename(tmp, t.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("%w: replace %s: %v", ErrIO, t.path, err)
	}
	return nil
}
