package sqlite

// Schema defines the SQLite database schema
const Schema = `
-- Export audit table
CREATE TABLE IF NOT EXISTS exports (
	id TEXT PRIMARY KEY,
	view TEXT NOT NULL,
	filters_json TEXT NOT NULL,
	filename TEXT NOT NULL,
	row_count INTEGER NOT NULL,
	column_count INTEGER NOT NULL,
	byte_size INTEGER NOT NULL,
	created_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_exports_view ON exports(view);
CREATE INDEX IF NOT EXISTS idx_exports_created_at ON exports(created_at DESC);

-- Latest export table (one row per view)
CREATE TABLE IF NOT EXISTS latest_exports (
	view TEXT PRIMARY KEY,
	export_id TEXT NOT NULL,
	updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (export_id) REFERENCES exports(id)
);
`
