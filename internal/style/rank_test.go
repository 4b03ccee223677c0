package style

import (
	"math"
	"testing"
)

func TestRankWithin(t *testing.T) {
	nan := math.NaN()

	tests := []struct {
		name   string
		values []float64
		want   []float64 // NaN marks an expected invalid cell
	}{
		{
			name:   "distinct values",
			values: []float64{0.5, 0.9, 0.7},
			want:   []float64{33, 100, 67},
		},
		{
			name:   "ties share the rank",
			values: []float64{5, 5, 3},
			want:   []float64{100, 100, 33},
		},
		{
			name:   "missing values excluded from both sides",
			values: []float64{4, nan, 2},
			want:   []float64{100, nan, 50},
		},
		{
			name:   "single value",
			values: []float64{7},
			want:   []float64{100},
		},
		{
			name:   "all missing",
			values: []float64{nan, nan},
			want:   []float64{nan, nan},
		},
		{
			name:   "empty",
			values: nil,
			want:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cells := RankWithin(tt.values)
			if len(cells) != len(tt.want) {
				t.Fatalf("expected %d cells, got %d", len(tt.want), len(cells))
			}
			for i, want := range tt.want {
				if math.IsNaN(want) {
					if cells[i].Valid {
						t.Errorf("cell %d: expected invalid, got %v", i, cells[i].Value)
					}
					continue
				}
				if !cells[i].Valid {
					t.Errorf("cell %d: expected rank %v, got invalid cell", i, want)
					continue
				}
				if cells[i].Value != want {
					t.Errorf("cell %d: expected rank %v, got %v", i, want, cells[i].Value)
				}
			}
		})
	}
}

func TestRankWithin_SelectionDependence(t *testing.T) {
	full := RankWithin([]float64{0.5, 0.6, 0.7, 0.8})
	sub := RankWithin([]float64{0.5, 0.7})

	// The same raw value 0.7 ranks 75 among four values but 100 among
	// two.
	if full[2].Value != 75 {
		t.Errorf("expected rank 75 in full selection, got %v", full[2].Value)
	}
	if sub[1].Value != 100 {
		t.Errorf("expected rank 100 in subset, got %v", sub[1].Value)
	}
}
