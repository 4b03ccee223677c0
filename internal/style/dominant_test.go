package style

import (
	"math"
	"testing"

	"github.com/johnspacemuller/datadotfutidotlive/internal/dataset"
)

func shares(organized, transition, contested, setPiece float64) dataset.StyleRecord {
	return dataset.StyleRecord{
		Team:            "Austin FC",
		OrganizedShare:  organized,
		TransitionShare: transition,
		ContestedShare:  contested,
		SetPieceShare:   setPiece,
	}
}

func TestDominantCategories(t *testing.T) {
	nan := math.NaN()

	tests := []struct {
		name string
		rec  dataset.StyleRecord
		want string
	}{
		{
			name: "single maximum",
			rec:  shares(0.5, 0.2, 0.2, 0.1),
			want: "Organized",
		},
		{
			name: "maximum in a later column",
			rec:  shares(0.1, 0.2, 0.5, 0.2),
			want: "Contested",
		},
		{
			name: "tie joins labels in declared order",
			rec:  shares(0.3, 0.2, 0.2, 0.3),
			want: "Organized\nSet piece",
		},
		{
			name: "three-way tie",
			rec:  shares(0.3, 0.3, 0.3, 0.1),
			want: "Organized\nTransition\nContested",
		},
		{
			name: "missing shares excluded",
			rec:  shares(nan, 0.4, 0.3, 0.3),
			want: "Transition",
		},
		{
			name: "all shares missing",
			rec:  shares(nan, nan, nan, nan),
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DominantCategories(tt.rec); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}
