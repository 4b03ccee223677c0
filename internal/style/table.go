package style

import (
	"math"

	"github.com/johnspacemuller/datadotfutidotlive/internal/dataset"
	"github.com/johnspacemuller/datadotfutidotlive/internal/league"
	"github.com/johnspacemuller/datadotfutidotlive/internal/phase"
	"github.com/johnspacemuller/datadotfutidotlive/internal/table"
)

// Columns returns the styles-table column set: shares, tendency
// ranks, the derived style label, and the presentation-only crest.
func Columns() []Column {
	cols := make([]Column, 0, len(ShareColumns)+len(TendencyColumns)+2)
	cols = append(cols, ShareColumns...)
	cols = append(cols, TendencyColumns...)
	cols = append(cols,
		Column{Key: "style", Label: "Style", Format: phase.FormatText},
		Column{Key: "crest", Label: "Crest", Format: phase.FormatText, Presentation: true},
	)
	return cols
}

// BuildTable builds the styles table over a filtered selection of
// records. Rows sort alphabetically; a duplicated team keeps the
// later record. Tendency ranks are computed within exactly this
// selection.
func BuildTable(records []dataset.StyleRecord) *Table {
	byTeam := make(map[string]dataset.StyleRecord, len(records))
	for _, rec := range records {
		byTeam[rec.Team] = rec
	}
	if len(byTeam) == 0 {
		return &Table{}
	}

	teams := make([]string, 0, len(byTeam))
	for team := range byTeam {
		teams = append(teams, team)
	}
	league.SortTeams(teams)

	// Ranks are column-wise over the whole selection, aligned with
	// the sorted team order.
	ranks := make(map[string][]Cell, len(TendencyColumns))
	for _, col := range TendencyColumns {
		values := make([]float64, len(teams))
		for i, team := range teams {
			v, ok := byTeam[team].Value(col.Key)
			if !ok {
				v = math.NaN()
			}
			values[i] = v
		}
		ranks[col.Key] = RankWithin(values)
	}

	columns := Columns()
	rows := make([]Row, 0, len(teams))
	for i, team := range teams {
		rec := byTeam[team]
		cells := make([]Cell, 0, len(columns))

		for _, col := range ShareColumns {
			if v, ok := rec.Value(col.Key); ok {
				cells = append(cells, Cell{Value: table.Round1(v * 100), Valid: true})
			} else {
				cells = append(cells, Cell{})
			}
		}
		for _, col := range TendencyColumns {
			cells = append(cells, ranks[col.Key][i])
		}

		if label := DominantCategories(rec); label != "" {
			cells = append(cells, Cell{Text: label, Valid: true})
		} else {
			cells = append(cells, Cell{})
		}
		if rec.Crest != "" {
			cells = append(cells, Cell{Text: rec.Crest, Valid: true})
		} else {
			cells = append(cells, Cell{})
		}

		rows = append(rows, Row{Team: team, Cells: cells})
	}

	return &Table{Columns: columns, Rows: rows}
}
