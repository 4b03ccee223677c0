// Package table pivots long-format phase records into the wide
// dashboard table: one row per team, one column per (phase, metric)
// pair.
package table

import (
	"encoding/json"

	"github.com/johnspacemuller/datadotfutidotlive/internal/phase"
)

// Column describes one wide-table column.
type Column struct {
	Phase       string       `json:"phase"`
	Metric      string       `json:"metric"`
	PhaseLabel  string       `json:"phaseLabel"`
	MetricLabel string       `json:"metricLabel"`
	Format      phase.Format `json:"format"`
}

// Cell is one table value. Invalid cells mark data absent from the
// source, which is not the same as zero.
type Cell struct {
	Value float64
	Valid bool
}

// MarshalJSON renders invalid cells as null.
func (c Cell) MarshalJSON() ([]byte, error) {
	if !c.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(c.Value)
}

// Row holds one team's cells, aligned with the table's columns.
type Row struct {
	Team  string `json:"team"`
	Cells []Cell `json:"cells"`
}

// Table is the wide pivot of the phases dataset.
type Table struct {
	Columns []Column `json:"columns"`
	Rows    []Row    `json:"rows"`
}

// Empty reports whether the table has no rows.
func (t *Table) Empty() bool {
	return len(t.Rows) == 0
}
