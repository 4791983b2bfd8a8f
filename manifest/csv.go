package manifest

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/rustyeddy/optfixture/fixture"
)

var csvHeader = []string{"run_id", "day", "minute", "path", "rows", "written_at"}

// CSV appends records to a flat file. The file is truncated on open.
type CSV struct {
	w *csv.Writer
	f *os.File
}

func NewCSV(path string) (*CSV, error) {
	if path == "" {
		return nil, fmt.Errorf("csv manifest: path is required")
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		f.Close()
		return nil, err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return nil, err
	}

	return &CSV{w: w, f: f}, nil
}

func (m *CSV) RecordFile(r fixture.FileWritten) error {
	err := m.w.Write([]string{
		r.RunID,
		r.Day,
		r.Minute,
		r.Path,
		strconv.Itoa(r.Rows),
		r.WrittenAt.UTC().Format(time.RFC3339Nano),
	})
	if err != nil {
		return err
	}
	m.w.Flush()
	return m.w.Error()
}

func (m *CSV) Close() error {
	m.w.Flush()
	if err := m.w.Error(); err != nil {
		m.f.Close()
		return err
	}
	return m.f.Close()
}
