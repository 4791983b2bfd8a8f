package manifest

const Schema = `
CREATE TABLE IF NOT EXISTS files (
	run_id TEXT NOT NULL,
	day TEXT NOT NULL,
	minute TEXT NOT NULL,
	path TEXT NOT NULL,
	row_count INTEGER NOT NULL,
	written_at INTEGER NOT NULL,
	PRIMARY KEY (run_id, day, minute)
);

CREATE INDEX IF NOT EXISTS idx_files_day ON files(day, minute);
`
