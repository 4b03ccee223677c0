// Package style builds the team-style comparison table: attack-origin
// shares, tendency percentile ranks computed within the filtered team
// selection, and the dominant style derivation.
package style

import (
	"encoding/json"

	"github.com/johnspacemuller/datadotfutidotlive/internal/phase"
)

// Column describes one styles-table column. Presentation columns
// carry rendering assets and are excluded from exports.
type Column struct {
	Key          string       `json:"key"`
	Label        string       `json:"label"`
	Format       phase.Format `json:"format"`
	Presentation bool         `json:"presentation,omitempty"`
}

// ShareColumns are the attack-origin share columns, in declared
// order. Declared order also fixes how dominant-style ties list.
var ShareColumns = []Column{
	{Key: "organized_share", Label: "Organized", Format: phase.FormatPercent},
	{Key: "transition_share", Label: "Transition", Format: phase.FormatPercent},
	{Key: "contested_share", Label: "Contested", Format: phase.FormatPercent},
	{Key: "set_piece_share", Label: "Set piece", Format: phase.FormatPercent},
}

// TendencyColumns are the style tendency columns, in declared order.
// Tendency cells hold within-selection percentile ranks.
var TendencyColumns = []Column{
	{Key: "directness", Label: "Directness", Format: phase.FormatInteger},
	{Key: "tempo", Label: "Tempo", Format: phase.FormatInteger},
	{Key: "pressing_intensity", Label: "Pressing", Format: phase.FormatInteger},
	{Key: "field_tilt", Label: "Field tilt", Format: phase.FormatInteger},
}

// Cell is one styles-table value. Numeric cells hold shares and
// ranks; text cells hold the style label and crest path. Invalid
// cells mark missing data.
type Cell struct {
	Value float64
	Text  string
	Valid bool
}

// MarshalJSON renders invalid cells as null and text cells as
// strings.
func (c Cell) MarshalJSON() ([]byte, error) {
	switch {
	case !c.Valid:
		return []byte("null"), nil
	case c.Text != "":
		return json.Marshal(c.Text)
	default:
		return json.Marshal(c.Value)
	}
}

// Row holds one team's cells, aligned with the table's columns.
type Row struct {
	Team  string `json:"team"`
	Cells []Cell `json:"cells"`
}

// Table is the styles comparison table.
type Table struct {
	Columns []Column `json:"columns"`
	Rows    []Row    `json:"rows"`
}

// Empty reports whether the table has no rows.
func (t *Table) Empty() bool {
	return len(t.Rows) == 0
}
