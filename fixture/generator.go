package fixture

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/rs/zerolog"

	"github.com/rustyeddy/optfixture/pkg/id"
)

const (
	DefaultRoot        = "dataset"
	DefaultDays        = 50
	DefaultFilesPerDay = 40
	DefaultRowsPerFile = 50
)

// DefaultStart is 2024-05-02 09:30.
var DefaultStart = time.Date(2024, time.May, 2, 9, 30, 0, 0, time.UTC)

// Options controls the shape of a generated dataset.
type Options struct {
	Root        string
	Start       time.Time
	Days        int
	FilesPerDay int
	RowsPerFile int
	Ranges      Ranges

	// Seed fixes the random stream. Zero seeds from the clock.
	Seed int64
}

func DefaultOptions() Options {
	return Options{
		Root:        DefaultRoot,
		Start:       DefaultStart,
		Days:        DefaultDays,
		FilesPerDay: DefaultFilesPerDay,
		RowsPerFile: DefaultRowsPerFile,
		Ranges:      DefaultRanges(),
	}
}

func (o Options) Validate() error {
	if o.Root == "" {
		return errors.New("root is required")
	}
	if o.Start.IsZero() {
		return errors.New("start is required")
	}
	if o.Days <= 0 {
		return errors.New("days must be positive")
	}
	if o.FilesPerDay <= 0 {
		return errors.New("files_per_day must be positive")
	}
	// HHMM names must stay inside one calendar day.
	if first := o.Start.Hour()*60 + o.Start.Minute(); first+o.FilesPerDay > minutesPerDay {
		return fmt.Errorf("files_per_day %d runs past midnight from %s", o.FilesPerDay, o.Start.Format("15:04"))
	}
	if o.RowsPerFile <= 0 {
		return errors.New("rows_per_file must be positive")
	}
	return o.Ranges.Validate()
}

// FileWritten describes a minute file that has been flushed to disk.
type FileWritten struct {
	RunID     string
	Day       string
	Minute    string
	Path      string
	Rows      int
	WrittenAt time.Time
}

// Recorder is notified after each file is written. A recorder error
// aborts the run.
type Recorder interface {
	RecordFile(FileWritten) error
}

type multiRecorder []Recorder

func (m multiRecorder) RecordFile(f FileWritten) error {
	for _, r := range m {
		if err := r.RecordFile(f); err != nil {
			return err
		}
	}
	return nil
}

// MultiRecorder fans each event out to every non-nil recorder in order.
func MultiRecorder(rs ...Recorder) Recorder {
	out := make(multiRecorder, 0, len(rs))
	for _, r := range rs {
		if r != nil {
			out = append(out, r)
		}
	}
	return out
}

// Summary reports what a run produced.
type Summary struct {
	RunID   string
	Root    string
	Days    int
	Files   int
	Rows    int
	Started time.Time
	Elapsed time.Duration
}

type Generator struct {
	opts Options
	rng  *rand.Rand
	rec  Recorder
	log  zerolog.Logger
	now  func() time.Time
}

// New validates opts and prepares a generator. rec may be nil.
func New(opts Options, rec Recorder, log zerolog.Logger) (*Generator, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	if rec == nil {
		rec = MultiRecorder()
	}
	return &Generator{
		opts: opts,
		rng:  rand.New(rand.NewSource(seed)),
		rec:  rec,
		log:  log,
		now:  time.Now,
	}, nil
}

// Generate writes the whole tree sequentially. Existing directories are
// reused and existing files are overwritten. The first filesystem error
// stops the run and is returned with the partial summary.
func (g *Generator) Generate(ctx context.Context) (Summary, error) {
	o := g.opts
	sum := Summary{
		RunID:   id.New(),
		Root:    o.Root,
		Started: g.now(),
	}

	if err := os.MkdirAll(o.Root, 0o755); err != nil {
		return sum, fmt.Errorf("create dataset root: %w", err)
	}

	for day := 0; day < o.Days; day++ {
		ds := DayStart(o.Start, day)
		dayName := DayFolderName(ds)
		dir := filepath.Join(o.Root, dayName)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return sum, fmt.Errorf("create day folder: %w", err)
		}

		for i := 0; i < o.FilesPerDay; i++ {
			if err := ctx.Err(); err != nil {
				return sum, err
			}

			ts := ds.Add(time.Duration(i) * time.Minute)
			rows := NewRows(g.rng, o.RowsPerFile, o.Ranges)
			path := filepath.Join(dir, MinuteFileName(ts))
			if err := WriteFile(path, rows); err != nil {
				return sum, err
			}
			sum.Files++
			sum.Rows += len(rows)

			err := g.rec.RecordFile(FileWritten{
				RunID:     sum.RunID,
				Day:       dayName,
				Minute:    ts.Format(MinuteFileLayout),
				Path:      path,
				Rows:      len(rows),
				WrittenAt: g.now().UTC(),
			})
			if err != nil {
				return sum, fmt.Errorf("record %s: %w", path, err)
			}
		}

		sum.Days++
		g.log.Debug().Str("day", dayName).Int("files", o.FilesPerDay).Msg("day folder written")
	}

	sum.Elapsed = g.now().Sub(sum.Started)
	g.log.Info().
		Str("run_id", sum.RunID).
		Str("root", sum.Root).
		Int("days", sum.Days).
		Int("files", sum.Files).
		Int("rows", sum.Rows).
		Dur("elapsed", sum.Elapsed).
		Msg("dataset generated")
	return sum, nil
}

// WriteFile creates or truncates path and writes rows as CSV with a header
// and no index column.
func WriteFile(path string, rows []Row) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := gocsv.MarshalFile(&rows, f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}
