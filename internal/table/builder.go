package table

import (
	"math"
	"strings"

	"github.com/johnspacemuller/datadotfutidotlive/internal/dataset"
	"github.com/johnspacemuller/datadotfutidotlive/internal/league"
	"github.com/johnspacemuller/datadotfutidotlive/internal/phase"
)

// GamesPlayed is the regular-season match count used to convert raw
// phase counts to per-game averages.
const GamesPlayed = 34

type cellKey struct {
	team  string
	phase string
}

// Build pivots long-format records into a wide table. Only the given
// phase keys are considered, in the given order, and of those only
// phases present in at least one record produce columns. Teams sort
// alphabetically. When the same (team, phase) pair appears more than
// once the later record wins.
func Build(records []dataset.PhaseRecord, keys []string, mode phase.Mode) *Table {
	wanted := make(map[string]bool, len(keys))
	for _, k := range keys {
		wanted[k] = true
	}

	byCell := make(map[cellKey]dataset.PhaseRecord)
	present := make(map[string]bool)
	teamSet := make(map[string]bool)
	for _, rec := range records {
		if !wanted[rec.Phase] {
			continue
		}
		byCell[cellKey{rec.Team, rec.Phase}] = rec
		present[rec.Phase] = true
		teamSet[rec.Team] = true
	}

	if len(teamSet) == 0 {
		return &Table{}
	}

	teams := make([]string, 0, len(teamSet))
	for team := range teamSet {
		teams = append(teams, team)
	}
	league.SortTeams(teams)

	metrics := phase.MetricsFor(mode)
	columns := make([]Column, 0, len(keys)*len(metrics))
	for _, key := range keys {
		if !present[key] {
			continue
		}
		for _, m := range metrics {
			columns = append(columns, Column{
				Phase:       key,
				Metric:      m.Key,
				PhaseLabel:  phase.DisplayName(key),
				MetricLabel: m.Label,
				Format:      m.Format,
			})
		}
	}

	rows := make([]Row, 0, len(teams))
	for _, team := range teams {
		cells := make([]Cell, len(columns))
		for i, col := range columns {
			rec, ok := byCell[cellKey{team, col.Phase}]
			if !ok {
				continue
			}
			v, ok := rec.Metric(col.Metric)
			if !ok {
				continue
			}
			cells[i] = Cell{Value: displayValue(col.Metric, v), Valid: true}
		}
		rows = append(rows, Row{Team: team, Cells: cells})
	}

	return &Table{Columns: columns, Rows: rows}
}

// displayValue converts a raw statistic to its display scale.
// Percentiles become whole-number ranks, counts become per-game
// averages, and fractions become percentages.
func displayValue(metric string, v float64) float64 {
	switch {
	case strings.HasSuffix(metric, "_percentile"):
		return math.Round(v * 100)
	case metric == "count":
		return Round1(v / GamesPlayed)
	default:
		return Round1(v * 100)
	}
}

// Round1 rounds to one decimal place, halves away from zero.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}
