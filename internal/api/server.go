package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/johnspacemuller/datadotfutidotlive/internal/export"
	"github.com/johnspacemuller/datadotfutidotlive/internal/metrics"
	"github.com/johnspacemuller/datadotfutidotlive/internal/phase"
	"github.com/johnspacemuller/datadotfutidotlive/internal/service"
	"github.com/johnspacemuller/datadotfutidotlive/internal/storage"
)

// Server is the HTTP API server
type Server struct {
	service *service.Service
	metrics *metrics.Metrics
	server  *http.Server
}

// NewServer creates a new API server
func NewServer(svc *service.Service, m *metrics.Metrics, addr string) *Server {
	s := &Server{
		service: svc,
		metrics: m,
	}

	mux := http.NewServeMux()

	// Health endpoints
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/readyz", s.handleReady)

	// Selection lists
	mux.HandleFunc("/v1/teams", s.handleTeams)
	mux.HandleFunc("/v1/categories", s.handleCategories)
	mux.HandleFunc("/v1/conferences", s.handleConferences)

	// Tables
	mux.HandleFunc("/v1/phases/table", s.handlePhaseTable)
	mux.HandleFunc("/v1/styles/table", s.handleStyleTable)

	// Export endpoints
	mux.HandleFunc("/v1/exports", s.handleExports)
	mux.HandleFunc("/v1/exports/", s.handleExportGet)

	// Prometheus exposition
	mux.Handle("/metrics", m.Handler())

	s.server = &http.Server{
		Addr:         addr,
		Handler:      loggingMiddleware(m.Middleware(mux)),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	return s
}

// Start starts the HTTP server
func (s *Server) Start() error {
	log.Printf("Starting API server on %s", s.server.Addr)
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	log.Println("Shutting down API server...")
	return s.server.Shutdown(ctx)
}

// handleHealth handles GET /healthz
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	respondJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}

// handleReady handles GET /readyz
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	reasons := []string{}
	if err := s.service.Ready(r.Context()); err != nil {
		reasons = append(reasons, err.Error())
	}

	ready := len(reasons) == 0
	status := http.StatusOK
	if !ready {
		status = http.StatusServiceUnavailable
	}

	respondJSON(w, status, ReadyResponse{Ready: ready, Reasons: reasons})
}

// handleTeams handles GET /v1/teams
func (s *Server) handleTeams(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	teams, err := s.service.Teams(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, fmt.Sprintf("failed to load teams: %v", err))
		return
	}

	respondJSON(w, http.StatusOK, TeamsResponse{Teams: teams})
}

// handleCategories handles GET /v1/categories
func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	respondJSON(w, http.StatusOK, CategoriesResponse{Categories: s.service.Categories()})
}

// handleConferences handles GET /v1/conferences
func (s *Server) handleConferences(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	respondJSON(w, http.StatusOK, ConferencesResponse{Conferences: s.service.Conferences()})
}

// handlePhaseTable handles GET /v1/phases/table
func (s *Server) handlePhaseTable(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	filter := filterFromQuery(r)
	tbl, err := s.service.PhaseTable(r.Context(), filter)
	if err != nil {
		respondError(w, http.StatusInternalServerError, fmt.Sprintf("failed to build phase table: %v", err))
		return
	}

	if wantsCSV(r) {
		serveCSV(w, "phases.csv", func(cw io.Writer) error {
			return export.WritePhaseTable(cw, tbl)
		})
		return
	}

	respondJSON(w, http.StatusOK, PhaseTableResponse{
		Columns: tbl.Columns,
		Rows:    tbl.Rows,
		Empty:   tbl.Empty(),
	})
}

// handleStyleTable handles GET /v1/styles/table
func (s *Server) handleStyleTable(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	conference := r.URL.Query().Get("conference")
	tbl, err := s.service.StyleTable(r.Context(), conference)
	if err != nil {
		respondError(w, http.StatusInternalServerError, fmt.Sprintf("failed to build style table: %v", err))
		return
	}

	if wantsCSV(r) {
		serveCSV(w, "styles.csv", func(cw io.Writer) error {
			return export.WriteStyleTable(cw, tbl)
		})
		return
	}

	respondJSON(w, http.StatusOK, StyleTableResponse{
		Columns: tbl.Columns,
		Rows:    tbl.Rows,
		Empty:   tbl.Empty(),
	})
}

// handleExports handles GET and POST /v1/exports
func (s *Server) handleExports(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.handleExportList(w, r)
	case http.MethodPost:
		s.handleExportCreate(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleExportList(w http.ResponseWriter, r *http.Request) {
	exporter := s.service.Exporter()
	if exporter == nil {
		respondError(w, http.StatusServiceUnavailable, "export storage not configured")
		return
	}

	query := r.URL.Query()
	filter := storage.ExportFilter{
		View: query.Get("view"),
	}

	if limitStr := query.Get("limit"); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil {
			filter.Limit = limit
		}
	}

	if offsetStr := query.Get("offset"); offsetStr != "" {
		if offset, err := strconv.Atoi(offsetStr); err == nil {
			filter.Offset = offset
		}
	}

	if startTimeStr := query.Get("startTime"); startTimeStr != "" {
		if startTime, err := time.Parse(time.RFC3339, startTimeStr); err == nil {
			filter.StartTime = &startTime
		}
	}

	if endTimeStr := query.Get("endTime"); endTimeStr != "" {
		if endTime, err := time.Parse(time.RFC3339, endTimeStr); err == nil {
			filter.EndTime = &endTime
		}
	}

	records, err := exporter.List(filter)
	if err != nil {
		respondError(w, http.StatusInternalServerError, fmt.Sprintf("failed to query exports: %v", err))
		return
	}

	exports := make([]ExportResponse, len(records))
	for i := range records {
		exports[i] = exportResponse(&records[i])
	}

	respondJSON(w, http.StatusOK, ExportListResponse{Exports: exports, Total: len(exports)})
}

func (s *Server) handleExportCreate(w http.ResponseWriter, r *http.Request) {
	var req ExportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid request: %v", err))
		return
	}

	var record *storage.ExportRecord
	var err error
	switch req.View {
	case "phases":
		record, err = s.service.ExportPhaseTable(r.Context(), service.Filter{
			Team:       req.Team,
			Conference: req.Conference,
			Category:   req.Category,
			Mode:       phase.ParseMode(req.Mode),
		})
	case "styles":
		record, err = s.service.ExportStyleTable(r.Context(), req.Conference)
	default:
		respondError(w, http.StatusBadRequest, `view must be "phases" or "styles"`)
		return
	}

	if err == service.ErrNoExporter {
		respondError(w, http.StatusServiceUnavailable, err.Error())
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, fmt.Sprintf("export failed: %v", err))
		return
	}

	s.metrics.RecordExport(req.View)
	respondJSON(w, http.StatusCreated, exportResponse(record))
}

// handleExportGet handles GET /v1/exports/{id}. The ID "latest"
// resolves the most recent export for the view query parameter.
// CSV negotiation downloads the stored artifact instead of the record.
func (s *Server) handleExportGet(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	exporter := s.service.Exporter()
	if exporter == nil {
		respondError(w, http.StatusServiceUnavailable, "export storage not configured")
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/v1/exports/")
	if id == "" {
		respondError(w, http.StatusBadRequest, "export ID required")
		return
	}

	var record *storage.ExportRecord
	var err error
	if id == "latest" {
		view := r.URL.Query().Get("view")
		if view == "" {
			respondError(w, http.StatusBadRequest, "view required for latest export")
			return
		}
		record, err = exporter.Latest(view)
	} else {
		record, err = exporter.Get(id)
	}

	if err != nil {
		respondError(w, http.StatusInternalServerError, fmt.Sprintf("failed to load export: %v", err))
		return
	}
	if record == nil {
		respondError(w, http.StatusNotFound, fmt.Sprintf("export not found: %s", id))
		return
	}

	if wantsCSV(r) {
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", record.Filename))
		http.ServeFile(w, r, exporter.Path(record))
		return
	}

	respondJSON(w, http.StatusOK, exportResponse(record))
}

// Helper functions

func filterFromQuery(r *http.Request) service.Filter {
	query := r.URL.Query()
	return service.Filter{
		Team:       query.Get("team"),
		Conference: query.Get("conference"),
		Category:   query.Get("category"),
		Mode:       phase.ParseMode(query.Get("mode")),
	}
}

// wantsCSV reports whether the request asked for CSV, either via the
// format query parameter or content negotiation.
func wantsCSV(r *http.Request) bool {
	if r.URL.Query().Get("format") == "csv" {
		return true
	}
	return strings.Contains(r.Header.Get("Accept"), "text/csv")
}

func serveCSV(w http.ResponseWriter, filename string, render func(io.Writer) error) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if err := render(w); err != nil {
		log.Printf("Warning: failed to stream CSV: %v", err)
	}
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s %s", r.Method, r.URL.Path, time.Since(start))
	})
}
