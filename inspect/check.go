package inspect

import (
	"fmt"
	"path/filepath"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/rustyeddy/optfixture/fixture"
)

// ColumnStats summarizes one column across every file checked.
type ColumnStats struct {
	Name   string
	Count  int
	Min    float64
	Max    float64
	Mean   float64
	StdDev float64
}

// Violation is a single value outside its column range.
type Violation struct {
	Path   string
	Line   int
	Column string
	Value  float64
}

func (v Violation) String() string {
	return fmt.Sprintf("%s:%d %s=%g", v.Path, v.Line, v.Column, v.Value)
}

type Report struct {
	Root        string
	Days        int
	Files       int
	Rows        int
	FilesPerDay map[string]int
	RowsPerFile map[string]int
	Columns     []ColumnStats
	Malformed   []string
	Violations  []Violation

	// GammaWindow holds one GammaWindowSum per readable file, in file
	// order, taken around the middle of the strike range.
	GammaWindow []float64
	GammaTrend  Trend
}

// Err is non-nil when any file was malformed, held the wrong number of
// rows, or any value was out of range.
func (r Report) Err() error {
	if len(r.Malformed) > 0 {
		return fmt.Errorf("%w: %d of %d files, first: %s", ErrMalformed, len(r.Malformed), r.Files, r.Malformed[0])
	}
	if len(r.Violations) > 0 {
		return fmt.Errorf("%w: %d values, first: %s", ErrOutOfRange, len(r.Violations), r.Violations[0])
	}
	return nil
}

// Check reads every minute file under root. A file whose row count differs
// from rowsPerFile is reported as malformed. Problems inside files are
// collected in the report; the returned error covers walking root only.
func Check(root string, ranges fixture.Ranges, rowsPerFile int) (Report, error) {
	rep := Report{
		Root:        root,
		FilesPerDay: map[string]int{},
		RowsPerFile: map[string]int{},
	}

	files, err := ListFiles(root)
	if err != nil {
		return rep, err
	}

	cols := make([][]float64, len(fixture.Header))
	ref := float64(ranges.Strike.Min) + float64(ranges.Strike.Max-ranges.Strike.Min)/2
	for _, path := range files {
		rep.Files++
		rep.FilesPerDay[filepath.Base(filepath.Dir(path))]++

		rows, err := ReadFile(path)
		if err != nil {
			rep.Malformed = append(rep.Malformed, err.Error())
			continue
		}
		rep.RowsPerFile[path] = len(rows)
		rep.Rows += len(rows)
		if len(rows) != rowsPerFile {
			rep.Malformed = append(rep.Malformed, fmt.Sprintf("%s: %d rows, want %d", path, len(rows), rowsPerFile))
		}
		rep.GammaWindow = append(rep.GammaWindow, GammaWindowSum(rows, ref))

		for i, row := range rows {
			line := i + 2
			if !ranges.Strike.Contains(row.StrikePrice) {
				rep.Violations = append(rep.Violations, Violation{path, line, fixture.Header[0], float64(row.StrikePrice)})
			}
			for j, c := range []struct {
				r fixture.FloatRange
				v float64
			}{
				{ranges.CallLTP, row.CallLTP},
				{ranges.PutLTP, row.PutLTP},
				{ranges.GammaCall, row.GammaCall},
			} {
				if !c.r.Contains(c.v) {
					rep.Violations = append(rep.Violations, Violation{path, line, fixture.Header[j+1], c.v})
				}
			}

			cols[0] = append(cols[0], float64(row.StrikePrice))
			cols[1] = append(cols[1], row.CallLTP)
			cols[2] = append(cols[2], row.PutLTP)
			cols[3] = append(cols[3], row.GammaCall)
		}
	}
	rep.Days = len(rep.FilesPerDay)
	rep.GammaTrend = gammaTrend(rep.GammaWindow)

	for i, name := range fixture.Header {
		rep.Columns = append(rep.Columns, summarize(name, cols[i]))
	}
	return rep, nil
}

func summarize(name string, x []float64) ColumnStats {
	cs := ColumnStats{Name: name, Count: len(x)}
	if len(x) == 0 {
		return cs
	}
	cs.Min = floats.Min(x)
	cs.Max = floats.Max(x)
	if len(x) == 1 {
		cs.Mean = x[0]
		return cs
	}
	cs.Mean, cs.StdDev = stat.MeanStdDev(x, nil)
	return cs
}
