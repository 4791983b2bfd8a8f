package manifest

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/rustyeddy/optfixture/fixture"
)

// SQLite keeps a catalog of every run in one database file. Rows from
// earlier runs are kept; a rerun adds a new run_id.
type SQLite struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLite, error) {
	if path == "" {
		return nil, fmt.Errorf("sqlite manifest: path is required")
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLite{db: db}, nil
}

func (m *SQLite) RecordFile(r fixture.FileWritten) error {
	_, err := m.db.Exec(`
		INSERT OR REPLACE INTO files
		(run_id, day, minute, path, row_count, written_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		r.RunID, r.Day, r.Minute, r.Path, r.Rows, r.WrittenAt.UnixMilli(),
	)
	return err
}

func (m *SQLite) Close() error {
	return m.db.Close()
}
