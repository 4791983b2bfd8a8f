package manifest

import (
	"fmt"
	"time"

	"github.com/rustyeddy/optfixture/fixture"
)

// RunInfo summarizes one run in the catalog.
type RunInfo struct {
	RunID     string
	Days      int
	Files     int
	Rows      int
	FirstDay  string
	LastDay   string
	StartedAt time.Time
	EndedAt   time.Time
}

// ListRuns returns every run, oldest first.
func (m *SQLite) ListRuns() ([]RunInfo, error) {
	rows, err := m.db.Query(`
		SELECT run_id, COUNT(DISTINCT day), COUNT(*), SUM(row_count),
		       MIN(day), MAX(day), MIN(written_at), MAX(written_at)
		FROM files
		GROUP BY run_id
		ORDER BY run_id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RunInfo
	for rows.Next() {
		var (
			ri         RunInfo
			first, end int64
		)
		if err := rows.Scan(&ri.RunID, &ri.Days, &ri.Files, &ri.Rows, &ri.FirstDay, &ri.LastDay, &first, &end); err != nil {
			return nil, err
		}
		ri.StartedAt = time.UnixMilli(first).UTC()
		ri.EndedAt = time.UnixMilli(end).UTC()
		out = append(out, ri)
	}
	return out, rows.Err()
}

// ListFiles returns the files of runID in write order.
func (m *SQLite) ListFiles(runID string) ([]fixture.FileWritten, error) {
	rows, err := m.db.Query(`
		SELECT run_id, day, minute, path, row_count, written_at
		FROM files
		WHERE run_id = ?
		ORDER BY day ASC, minute ASC`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []fixture.FileWritten
	for rows.Next() {
		var (
			f  fixture.FileWritten
			ms int64
		)
		if err := rows.Scan(&f.RunID, &f.Day, &f.Minute, &f.Path, &f.Rows, &ms); err != nil {
			return nil, err
		}
		f.WrittenAt = time.UnixMilli(ms).UTC()
		out = append(out, f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("run %q not found", runID)
	}
	return out, nil
}
