package api

import (
	"time"

	"github.com/johnspacemuller/datadotfutidotlive/internal/storage"
	"github.com/johnspacemuller/datadotfutidotlive/internal/style"
	"github.com/johnspacemuller/datadotfutidotlive/internal/table"
)

// TeamsResponse lists the selectable teams
type TeamsResponse struct {
	Teams []string `json:"teams"`
}

// CategoriesResponse lists the selectable phase categories
type CategoriesResponse struct {
	Categories []string `json:"categories"`
}

// ConferencesResponse lists the selectable conferences
type ConferencesResponse struct {
	Conferences []string `json:"conferences"`
}

// PhaseTableResponse represents the wide phase table
type PhaseTableResponse struct {
	Columns []table.Column `json:"columns"`
	Rows    []table.Row    `json:"rows"`
	Empty   bool           `json:"empty"`
}

// StyleTableResponse represents the team styles table
type StyleTableResponse struct {
	Columns []style.Column `json:"columns"`
	Rows    []style.Row    `json:"rows"`
	Empty   bool           `json:"empty"`
}

// ExportRequest asks for a CSV artifact of one view
type ExportRequest struct {
	View       string `json:"view"`
	Team       string `json:"team,omitempty"`
	Conference string `json:"conference,omitempty"`
	Category   string `json:"category,omitempty"`
	Mode       string `json:"mode,omitempty"`
}

// ExportResponse represents one recorded export artifact
type ExportResponse struct {
	ID          string            `json:"id"`
	View        string            `json:"view"`
	Filters     map[string]string `json:"filters"`
	Filename    string            `json:"filename"`
	RowCount    int               `json:"rowCount"`
	ColumnCount int               `json:"columnCount"`
	ByteSize    int64             `json:"byteSize"`
	CreatedAt   time.Time         `json:"createdAt"`
}

// ExportListResponse represents a list of export records
type ExportListResponse struct {
	Exports []ExportResponse `json:"exports"`
	Total   int              `json:"total"`
}

// HealthResponse represents health check response
type HealthResponse struct {
	Status string `json:"status"`
}

// ReadyResponse represents readiness check response
type ReadyResponse struct {
	Ready   bool     `json:"ready"`
	Reasons []string `json:"reasons,omitempty"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

func exportResponse(record *storage.ExportRecord) ExportResponse {
	return ExportResponse{
		ID:          record.ID,
		View:        record.View,
		Filters:     record.Filters,
		Filename:    record.Filename,
		RowCount:    record.RowCount,
		ColumnCount: record.ColumnCount,
		ByteSize:    record.ByteSize,
		CreatedAt:   record.CreatedAt,
	}
}
