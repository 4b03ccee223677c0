package style

import (
	"math"
	"sort"
)

// RankWithin computes percentile ranks over one column of the
// filtered selection: round(100 * count(value <= v) / n). Ties share
// a rank by construction. NaN inputs are excluded from both sides of
// the ratio and receive an invalid cell. Ranks depend on the
// selection, so the same value ranks differently under different
// filters.
func RankWithin(values []float64) []Cell {
	present := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			present = append(present, v)
		}
	}

	cells := make([]Cell, len(values))
	if len(present) == 0 {
		return cells
	}
	sort.Float64s(present)

	n := float64(len(present))
	for i, v := range values {
		if math.IsNaN(v) {
			continue
		}
		le := sort.Search(len(present), func(j int) bool { return present[j] > v })
		cells[i] = Cell{Value: math.Round(100 * float64(le) / n), Valid: true}
	}
	return cells
}
