package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/johnspacemuller/datadotfutidotlive/internal/storage"
)

// Store implements ExportStorage using SQLite
type Store struct {
	db *sql.DB
}

// NewStore creates a new SQLite storage with the given database path
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	// Run migrations
	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &Store{db: db}, nil
}

// SaveExport persists an export record and marks it the latest for
// its view
func (s *Store) SaveExport(record *storage.ExportRecord) error {
	filtersJSON, err := json.Marshal(record.Filters)
	if err != nil {
		return fmt.Errorf("failed to marshal filters: %w", err)
	}

	query := `
		INSERT INTO exports (id, view, filters_json, filename, row_count, column_count, byte_size, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = s.db.Exec(query,
		record.ID,
		record.View,
		string(filtersJSON),
		record.Filename,
		record.RowCount,
		record.ColumnCount,
		record.ByteSize,
		record.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to store export: %w", err)
	}

	latest := `
		INSERT INTO latest_exports (view, export_id)
		VALUES (?, ?)
		ON CONFLICT(view) DO UPDATE SET
			export_id = excluded.export_id,
			updated_at = CURRENT_TIMESTAMP
	`

	if _, err := s.db.Exec(latest, record.View, record.ID); err != nil {
		return fmt.Errorf("failed to update latest export: %w", err)
	}

	return nil
}

// QueryExports retrieves export records with optional filtering
func (s *Store) QueryExports(filter storage.ExportFilter) ([]storage.ExportRecord, error) {
	query := `
		SELECT id, view, filters_json, filename, row_count, column_count, byte_size, created_at
		FROM exports
		WHERE 1=1
	`
	args := []interface{}{}

	if filter.View != "" {
		query += " AND view = ?"
		args = append(args, filter.View)
	}

	if filter.StartTime != nil {
		query += " AND created_at >= ?"
		args = append(args, filter.StartTime)
	}

	if filter.EndTime != nil {
		query += " AND created_at <= ?"
		args = append(args, filter.EndTime)
	}

	query += " ORDER BY created_at DESC"

	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	} else {
		query += " LIMIT 100" // Default limit
	}

	if filter.Offset > 0 {
		query += " OFFSET ?"
		args = append(args, filter.Offset)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query exports: %w", err)
	}
	defer rows.Close()

	var records []storage.ExportRecord
	for rows.Next() {
		var record storage.ExportRecord
		var filtersJSON string

		err := rows.Scan(
			&record.ID,
			&record.View,
			&filtersJSON,
			&record.Filename,
			&record.RowCount,
			&record.ColumnCount,
			&record.ByteSize,
			&record.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}

		if err := json.Unmarshal([]byte(filtersJSON), &record.Filters); err != nil {
			return nil, fmt.Errorf("failed to unmarshal filters: %w", err)
		}

		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return records, nil
}

// GetExport retrieves one export record by ID
func (s *Store) GetExport(id string) (*storage.ExportRecord, error) {
	query := `
		SELECT id, view, filters_json, filename, row_count, column_count, byte_size, created_at
		FROM exports
		WHERE id = ?
	`

	var record storage.ExportRecord
	var filtersJSON string

	err := s.db.QueryRow(query, id).Scan(
		&record.ID,
		&record.View,
		&filtersJSON,
		&record.Filename,
		&record.RowCount,
		&record.ColumnCount,
		&record.ByteSize,
		&record.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get export: %w", err)
	}

	if err := json.Unmarshal([]byte(filtersJSON), &record.Filters); err != nil {
		return nil, fmt.Errorf("failed to unmarshal filters: %w", err)
	}

	return &record, nil
}

// GetLatestExport retrieves the most recent export for a view
func (s *Store) GetLatestExport(view string) (*storage.ExportRecord, error) {
	query := `
		SELECT e.id, e.view, e.filters_json, e.filename, e.row_count, e.column_count, e.byte_size, e.created_at
		FROM latest_exports l
		JOIN exports e ON e.id = l.export_id
		WHERE l.view = ?
	`

	var record storage.ExportRecord
	var filtersJSON string

	err := s.db.QueryRow(query, view).Scan(
		&record.ID,
		&record.View,
		&filtersJSON,
		&record.Filename,
		&record.RowCount,
		&record.ColumnCount,
		&record.ByteSize,
		&record.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest export: %w", err)
	}

	if err := json.Unmarshal([]byte(filtersJSON), &record.Filters); err != nil {
		return nil, fmt.Errorf("failed to unmarshal filters: %w", err)
	}

	return &record, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}
