// Package storage persists the export audit trail.
package storage

import "time"

// ExportStorage defines the interface for persisting export records
type ExportStorage interface {
	// SaveExport persists an export record and marks it the latest
	// for its view
	SaveExport(record *ExportRecord) error

	// QueryExports retrieves export records with optional filtering
	QueryExports(filter ExportFilter) ([]ExportRecord, error)

	// GetExport retrieves one export record by ID
	GetExport(id string) (*ExportRecord, error)

	// GetLatestExport retrieves the most recent export for a view
	GetLatestExport(view string) (*ExportRecord, error)

	// Close closes the storage connection
	Close() error
}

// ExportFilter defines filtering options for export queries
type ExportFilter struct {
	View      string
	StartTime *time.Time
	EndTime   *time.Time
	Limit     int
	Offset    int
}

// ExportRecord represents a single CSV export artifact
type ExportRecord struct {
	ID          string
	View        string
	Filters     map[string]string
	Filename    string
	RowCount    int
	ColumnCount int
	ByteSize    int64
	CreatedAt   time.Time
}
