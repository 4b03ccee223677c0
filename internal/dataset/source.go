package dataset

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"sync"
)

// Source supplies raw CSV content plus a version token for cache
// keying. A version change means the content must be reparsed; an
// empty version marks the source as uncacheable.
type Source interface {
	// Name identifies the source in cache keys and errors.
	Name() string
	// Version returns the current version token.
	Version() (string, error)
	// Open returns the CSV content for reading.
	Open(ctx context.Context) (io.ReadCloser, error)
}

// FileSource reads a CSV file from disk. The file's modification time
// is the version token, so edits invalidate cached parses.
type FileSource struct {
	path string
}

// NewFileSource creates a file-backed source.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Name returns the file path.
func (s *FileSource) Name() string {
	return s.path
}

// Version returns the file's mtime in nanoseconds. A missing file is
// an error.
func (s *FileSource) Version() (string, error) {
	info, err := os.Stat(s.path)
	if err != nil {
		return "", fmt.Errorf("stat dataset: %w", err)
	}
	return strconv.FormatInt(info.ModTime().UnixNano(), 10), nil
}

// Open opens the file for reading.
func (s *FileSource) Open(ctx context.Context) (io.ReadCloser, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	return f, nil
}

// StaticSource serves fixed CSV content from memory. Useful for tests
// and dry runs.
type StaticSource struct {
	mu   sync.Mutex
	name string
	data []byte
	rev  int
}

// NewStaticSource creates an in-memory source.
func NewStaticSource(name string, data []byte) *StaticSource {
	return &StaticSource{name: name, data: data, rev: 1}
}

// Name returns the source's identifier.
func (s *StaticSource) Name() string {
	return s.name
}

// SetData replaces the content and bumps the version.
func (s *StaticSource) SetData(data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = data
	s.rev++
}

// Version returns the revision counter.
func (s *StaticSource) Version() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return "rev-" + strconv.Itoa(s.rev), nil
}

// Open returns the current content.
func (s *StaticSource) Open(ctx context.Context) (io.ReadCloser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return io.NopCloser(bytes.NewReader(s.data)), nil
}
