// Package service answers dashboard requests: it loads datasets,
// applies filters, and builds the phase and style tables.
package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/johnspacemuller/datadotfutidotlive/internal/dataset"
	"github.com/johnspacemuller/datadotfutidotlive/internal/export"
	"github.com/johnspacemuller/datadotfutidotlive/internal/league"
	"github.com/johnspacemuller/datadotfutidotlive/internal/phase"
	"github.com/johnspacemuller/datadotfutidotlive/internal/storage"
	"github.com/johnspacemuller/datadotfutidotlive/internal/style"
	"github.com/johnspacemuller/datadotfutidotlive/internal/table"
)

// ErrNoExporter is returned when an export is requested but no export
// backend is configured.
var ErrNoExporter = errors.New("export storage not configured")

// Filter narrows a phase table request. Zero values and the "All"
// pseudo-selections select everything.
type Filter struct {
	Team       string
	Conference string
	Category   string
	Mode       phase.Mode
}

// Service orchestrates the dataset loader and the table builders.
type Service struct {
	loader *dataset.Loader

	mu       sync.RWMutex
	exporter *export.Service
}

// New creates a service over a dataset loader.
func New(loader *dataset.Loader) *Service {
	return &Service{loader: loader}
}

// SetExporter sets the export backend (optional).
func (s *Service) SetExporter(exporter *export.Service) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.exporter = exporter
}

// Exporter returns the configured export backend, or nil.
func (s *Service) Exporter() *export.Service {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.exporter
}

// PhaseTable builds the wide phase table for a filter. Unknown teams,
// conferences, or categories yield an empty table, not an error.
func (s *Service) PhaseTable(ctx context.Context, f Filter) (*table.Table, error) {
	records, err := s.loader.Phases(ctx)
	if err != nil {
		return nil, err
	}

	filtered := filterPhases(records, f.Team, f.Conference)
	keys := phase.ForCategory(orDefault(f.Category, phase.AllCategory))
	return table.Build(filtered, keys, f.Mode), nil
}

// StyleTable builds the styles table for a conference selection.
// Tendency ranks are recomputed within exactly the filtered
// selection.
func (s *Service) StyleTable(ctx context.Context, conference string) (*style.Table, error) {
	records, err := s.loader.Styles(ctx)
	if err != nil {
		return nil, err
	}

	if conference != "" && conference != league.AllConference {
		filtered := make([]dataset.StyleRecord, 0, len(records))
		for _, rec := range records {
			if league.Contains(conference, rec.Team) {
				filtered = append(filtered, rec)
			}
		}
		records = filtered
	}
	return style.BuildTable(records), nil
}

// Teams returns the selectable team list: the all-teams option first,
// then every team in the phases dataset, sorted.
func (s *Service) Teams(ctx context.Context) ([]string, error) {
	records, err := s.loader.Phases(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	teams := make([]string, 0, 32)
	for _, rec := range records {
		if !seen[rec.Team] {
			seen[rec.Team] = true
			teams = append(teams, rec.Team)
		}
	}
	league.SortTeams(teams)

	return append([]string{league.AllTeams}, teams...), nil
}

// Categories returns the selectable phase categories.
func (s *Service) Categories() []string {
	return phase.CategoryNames()
}

// Conferences returns the selectable conference names.
func (s *Service) Conferences() []string {
	return league.ConferenceNames()
}

// Ready reports whether both datasets load.
func (s *Service) Ready(ctx context.Context) error {
	if _, err := s.loader.Phases(ctx); err != nil {
		return fmt.Errorf("phases dataset: %w", err)
	}
	if _, err := s.loader.Styles(ctx); err != nil {
		return fmt.Errorf("styles dataset: %w", err)
	}
	return nil
}

// CacheSize reports how many datasets are memoized.
func (s *Service) CacheSize() int {
	return s.loader.CacheSize()
}

// Invalidate drops memoized datasets; the next request reparses.
func (s *Service) Invalidate() {
	s.loader.Invalidate()
}

// ExportPhaseTable renders the filtered phase table to a CSV artifact
// and records it in the audit store.
func (s *Service) ExportPhaseTable(ctx context.Context, f Filter) (*storage.ExportRecord, error) {
	exporter := s.Exporter()
	if exporter == nil {
		return nil, ErrNoExporter
	}

	tbl, err := s.PhaseTable(ctx, f)
	if err != nil {
		return nil, err
	}

	return exporter.Export("phases", phaseFilterSummary(f), len(tbl.Rows), len(tbl.Columns), func(w io.Writer) error {
		return export.WritePhaseTable(w, tbl)
	})
}

// ExportStyleTable renders the styles table to a CSV artifact and
// records it in the audit store.
func (s *Service) ExportStyleTable(ctx context.Context, conference string) (*storage.ExportRecord, error) {
	exporter := s.Exporter()
	if exporter == nil {
		return nil, ErrNoExporter
	}

	tbl, err := s.StyleTable(ctx, conference)
	if err != nil {
		return nil, err
	}

	filters := map[string]string{"conference": orDefault(conference, league.AllConference)}
	return exporter.Export("styles", filters, len(tbl.Rows), len(tbl.Columns), func(w io.Writer) error {
		return export.WriteStyleTable(w, tbl)
	})
}

// filterPhases keeps records matching the team and conference
// selections.
func filterPhases(records []dataset.PhaseRecord, team, conference string) []dataset.PhaseRecord {
	teamAll := team == "" || team == league.AllTeams
	confAll := conference == "" || conference == league.AllConference
	if teamAll && confAll {
		return records
	}

	out := make([]dataset.PhaseRecord, 0, len(records))
	for _, rec := range records {
		if !teamAll && rec.Team != team {
			continue
		}
		if !confAll && !league.Contains(conference, rec.Team) {
			continue
		}
		out = append(out, rec)
	}
	return out
}

func phaseFilterSummary(f Filter) map[string]string {
	return map[string]string{
		"team":       orDefault(f.Team, league.AllTeams),
		"conference": orDefault(f.Conference, league.AllConference),
		"category":   orDefault(f.Category, phase.AllCategory),
		"mode":       string(phase.ParseMode(string(f.Mode))),
	}
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
