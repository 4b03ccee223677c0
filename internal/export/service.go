package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/johnspacemuller/datadotfutidotlive/internal/storage"
)

// Service writes CSV artifacts to the export directory and records
// them in the audit store.
type Service struct {
	dir   string
	store storage.ExportStorage
}

// NewService creates an export service, creating the artifact
// directory if needed.
func NewService(dir string, store storage.ExportStorage) (*Service, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create export directory: %w", err)
	}
	return &Service{dir: dir, store: store}, nil
}

// Export renders a view to a new artifact file and records it. The
// render callback writes the CSV body; rows and columns describe the
// rendered table for the audit record. A failed render leaves no
// artifact behind.
func (s *Service) Export(view string, filters map[string]string, rows, columns int, render func(io.Writer) error) (*storage.ExportRecord, error) {
	id := uuid.NewString()
	name := fmt.Sprintf("%s-%s-%s.csv", view, time.Now().UTC().Format("20060102T150405Z"), id[:8])
	path := filepath.Join(s.dir, name)

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create artifact: %w", err)
	}

	if err := render(f); err != nil {
		f.Close()
		os.Remove(path)
		return nil, fmt.Errorf("render artifact: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("close artifact: %w", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat artifact: %w", err)
	}

	record := &storage.ExportRecord{
		ID:          id,
		View:        view,
		Filters:     filters,
		Filename:    name,
		RowCount:    rows,
		ColumnCount: columns,
		ByteSize:    info.Size(),
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.store.SaveExport(record); err != nil {
		return nil, fmt.Errorf("record artifact: %w", err)
	}

	return record, nil
}

// List returns audit records matching the filter.
func (s *Service) List(filter storage.ExportFilter) ([]storage.ExportRecord, error) {
	return s.store.QueryExports(filter)
}

// Get returns one audit record, or nil when unknown.
func (s *Service) Get(id string) (*storage.ExportRecord, error) {
	return s.store.GetExport(id)
}

// Latest returns the most recent record for a view, or nil when the
// view has never been exported.
func (s *Service) Latest(view string) (*storage.ExportRecord, error) {
	return s.store.GetLatestExport(view)
}

// Path returns the on-disk location of a recorded artifact.
func (s *Service) Path(record *storage.ExportRecord) string {
	return filepath.Join(s.dir, record.Filename)
}
