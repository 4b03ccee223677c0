// Package export renders tables to CSV and records export artifacts
// in the audit store.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/johnspacemuller/datadotfutidotlive/internal/phase"
	"github.com/johnspacemuller/datadotfutidotlive/internal/style"
	"github.com/johnspacemuller/datadotfutidotlive/internal/table"
)

// Missing is the marker written for cells without data.
const Missing = "-"

// WritePhaseTable renders the wide phase table as CSV: a Team column
// followed by one "<Phase> / <Metric>" column per table column.
func WritePhaseTable(w io.Writer, t *table.Table) error {
	cw := csv.NewWriter(w)

	header := make([]string, 0, len(t.Columns)+1)
	header = append(header, "Team")
	for _, col := range t.Columns {
		header = append(header, col.PhaseLabel+" / "+col.MetricLabel)
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, r := range t.Rows {
		row := make([]string, 0, len(t.Columns)+1)
		row = append(row, r.Team)
		for i, cell := range r.Cells {
			if !cell.Valid {
				row = append(row, Missing)
				continue
			}
			row = append(row, formatValue(t.Columns[i].Format, cell.Value))
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteStyleTable renders the styles table as CSV. Presentation-only
// columns and columns whose key begins with "_" are excluded.
func WriteStyleTable(w io.Writer, t *style.Table) error {
	cw := csv.NewWriter(w)

	keep := make([]int, 0, len(t.Columns))
	header := make([]string, 0, len(t.Columns)+1)
	header = append(header, "Team")
	for i, col := range t.Columns {
		if col.Presentation || strings.HasPrefix(col.Key, "_") {
			continue
		}
		keep = append(keep, i)
		header = append(header, col.Label)
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, r := range t.Rows {
		row := make([]string, 0, len(keep)+1)
		row = append(row, r.Team)
		for _, i := range keep {
			cell := r.Cells[i]
			switch {
			case !cell.Valid:
				row = append(row, Missing)
			case t.Columns[i].Format == phase.FormatText:
				row = append(row, cell.Text)
			default:
				row = append(row, formatValue(t.Columns[i].Format, cell.Value))
			}
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// formatValue renders a numeric cell per its column's format hint.
func formatValue(format phase.Format, v float64) string {
	switch format {
	case phase.FormatPercent:
		return strconv.FormatFloat(v, 'f', 1, 64) + "%"
	case phase.FormatInteger:
		return strconv.FormatFloat(v, 'f', 0, 64)
	default:
		return strconv.FormatFloat(v, 'f', 1, 64)
	}
}
