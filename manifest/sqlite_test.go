package manifest

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/optfixture/fixture"
)

func newTestSQLite(t *testing.T) (*SQLite, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.sqlite")
	m, err := NewSQLite(path)
	require.NoError(t, err)
	t.Cleanup(func() { m.Close() })
	return m, path
}

func TestSQLiteListRunsEmpty(t *testing.T) {
	t.Parallel()

	m, _ := newTestSQLite(t)
	runs, err := m.ListRuns()
	require.NoError(t, err)
	assert.Empty(t, runs)

	_, err = m.ListFiles("missing")
	assert.ErrorContains(t, err, "not found")
}

func TestSQLiteRecordAndQuery(t *testing.T) {
	t.Parallel()

	m, _ := newTestSQLite(t)
	t0 := time.Date(2024, 5, 2, 9, 30, 0, 0, time.UTC)

	records := []fixture.FileWritten{
		{RunID: "A", Day: "20240503", Minute: "0930", Path: "d/20240503/0930.csv", Rows: 50, WrittenAt: t0.Add(2 * time.Second)},
		{RunID: "A", Day: "20240502", Minute: "0931", Path: "d/20240502/0931.csv", Rows: 50, WrittenAt: t0.Add(time.Second)},
		{RunID: "A", Day: "20240502", Minute: "0930", Path: "d/20240502/0930.csv", Rows: 50, WrittenAt: t0},
		{RunID: "B", Day: "20240502", Minute: "0930", Path: "d/20240502/0930.csv", Rows: 10, WrittenAt: t0.Add(time.Hour)},
	}
	for _, r := range records {
		require.NoError(t, m.RecordFile(r))
	}

	runs, err := m.ListRuns()
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, RunInfo{
		RunID:     "A",
		Days:      2,
		Files:     3,
		Rows:      150,
		FirstDay:  "20240502",
		LastDay:   "20240503",
		StartedAt: t0,
		EndedAt:   t0.Add(2 * time.Second),
	}, runs[0])
	assert.Equal(t, "B", runs[1].RunID)
	assert.Equal(t, 10, runs[1].Rows)

	files, err := m.ListFiles("A")
	require.NoError(t, err)
	require.Len(t, files, 3)
	assert.Equal(t, records[2], files[0])
	assert.Equal(t, "0931", files[1].Minute)
	assert.Equal(t, "20240503", files[2].Day)
}

func TestSQLiteCatalogSurvivesReopen(t *testing.T) {
	t.Parallel()

	m, path := newTestSQLite(t)
	require.NoError(t, m.RecordFile(fixture.FileWritten{RunID: "A", Day: "20240502", Minute: "0930", Path: "x", Rows: 1, WrittenAt: time.Now()}))
	require.NoError(t, m.Close())

	again, err := NewSQLite(path)
	require.NoError(t, err)
	defer again.Close()
	runs, err := again.ListRuns()
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}

func TestSQLiteRecordsGeneratorRun(t *testing.T) {
	t.Parallel()

	m, _ := newTestSQLite(t)

	opts := fixture.DefaultOptions()
	opts.Root = filepath.Join(t.TempDir(), "dataset")
	opts.Days = 2
	opts.FilesPerDay = 3
	opts.RowsPerFile = 4
	opts.Seed = 1

	g, err := fixture.New(opts, m, zerolog.Nop())
	require.NoError(t, err)
	sum, err := g.Generate(context.Background())
	require.NoError(t, err)

	files, err := m.ListFiles(sum.RunID)
	require.NoError(t, err)
	require.Len(t, files, 6)
	assert.Equal(t, filepath.Join(opts.Root, "20240502", "0930.csv"), files[0].Path)
	assert.Equal(t, filepath.Join(opts.Root, "20240503", "0932.csv"), files[5].Path)

	runs, err := m.ListRuns()
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, 24, runs[0].Rows)
	assert.Equal(t, 2, runs[0].Days)
}
