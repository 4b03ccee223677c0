package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// ParsePhases reads long-format phase rows from CSV content. Header
// names are trimmed; columns whose name begins with "unnamed" (any
// case) are export artifacts and are dropped. Empty numeric cells
// parse as NaN; malformed cells fail the parse.
func ParsePhases(r io.Reader) ([]PhaseRecord, error) {
	rows, header, err := readCSV(r)
	if err != nil {
		return nil, err
	}
	if err := requireColumns(header, "team_name", "phase"); err != nil {
		return nil, err
	}

	records := make([]PhaseRecord, 0, len(rows))
	for i, row := range rows {
		rec := PhaseRecord{
			Team:  row.text(header, "team_name"),
			Phase: row.text(header, "phase"),
		}

		line := i + 2 // header is line 1
		if err := row.number(header, "count", line, &rec.Count); err != nil {
			return nil, err
		}
		if err := row.number(header, "success_rate", line, &rec.SuccessRate); err != nil {
			return nil, err
		}
		if err := row.number(header, "percent_of_total", line, &rec.PercentOfTotal); err != nil {
			return nil, err
		}
		if err := row.number(header, "count_percentile", line, &rec.CountPercentile); err != nil {
			return nil, err
		}
		if err := row.number(header, "success_rate_percentile", line, &rec.SuccessRatePercentile); err != nil {
			return nil, err
		}
		if err := row.number(header, "percent_of_total_percentile", line, &rec.PercentOfTotalPercentile); err != nil {
			return nil, err
		}

		records = append(records, rec)
	}
	return records, nil
}

// ParseStyles reads the styles dataset. Same header rules as
// ParsePhases.
func ParseStyles(r io.Reader) ([]StyleRecord, error) {
	rows, header, err := readCSV(r)
	if err != nil {
		return nil, err
	}
	if err := requireColumns(header, "team_name"); err != nil {
		return nil, err
	}

	records := make([]StyleRecord, 0, len(rows))
	for i, row := range rows {
		rec := StyleRecord{
			Team:  row.text(header, "team_name"),
			Crest: row.text(header, "crest"),
		}

		line := i + 2
		numeric := []struct {
			column string
			dst    *float64
		}{
			{"organized_share", &rec.OrganizedShare},
			{"transition_share", &rec.TransitionShare},
			{"contested_share", &rec.ContestedShare},
			{"set_piece_share", &rec.SetPieceShare},
			{"directness", &rec.Directness},
			{"tempo", &rec.Tempo},
			{"pressing_intensity", &rec.PressingIntensity},
			{"field_tilt", &rec.FieldTilt},
		}
		for _, n := range numeric {
			if err := row.number(header, n.column, line, n.dst); err != nil {
				return nil, err
			}
		}

		records = append(records, rec)
	}
	return records, nil
}

type csvRow []string

// readCSV parses the content into a header index and data rows.
func readCSV(r io.Reader) ([]csvRow, map[string]int, error) {
	cr := csv.NewReader(r)

	raw, err := cr.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("read csv: %w", err)
	}
	if len(raw) == 0 {
		return nil, nil, fmt.Errorf("read csv: missing header row")
	}

	header := make(map[string]int, len(raw[0]))
	for i, name := range raw[0] {
		name = strings.TrimSpace(name)
		if strings.HasPrefix(strings.ToLower(name), "unnamed") {
			continue
		}
		header[name] = i
	}

	rows := make([]csvRow, 0, len(raw)-1)
	for _, row := range raw[1:] {
		rows = append(rows, csvRow(row))
	}
	return rows, header, nil
}

func requireColumns(header map[string]int, names ...string) error {
	for _, name := range names {
		if _, ok := header[name]; !ok {
			return fmt.Errorf("read csv: missing required column %q", name)
		}
	}
	return nil
}

// text returns the trimmed cell under a column, or "" when the column
// is absent.
func (row csvRow) text(header map[string]int, column string) string {
	i, ok := header[column]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// number parses the cell under a column into dst. Absent columns and
// empty cells become NaN; anything non-numeric is an error naming the
// line and column.
func (row csvRow) number(header map[string]int, column string, line int, dst *float64) error {
	s := row.text(header, column)
	if s == "" {
		*dst = math.NaN()
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("line %d: column %q: invalid number %q", line, column, s)
	}
	*dst = v
	return nil
}
