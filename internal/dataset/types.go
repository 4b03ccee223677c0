// Package dataset loads and caches the CSV datasets behind the
// dashboards.
package dataset

import "math"

// PhaseRecord is one long-format row of the phases dataset: a single
// (team, phase) observation with raw statistics and league-wide
// percentiles. Fractional fields are 0..1. Absent cells are NaN.
type PhaseRecord struct {
	Team  string
	Phase string

	Count          float64
	SuccessRate    float64
	PercentOfTotal float64

	CountPercentile          float64
	SuccessRatePercentile    float64
	PercentOfTotalPercentile float64
}

// Metric returns the named statistic. Absent cells report ok=false.
func (r PhaseRecord) Metric(key string) (float64, bool) {
	var v float64
	switch key {
	case "count":
		v = r.Count
	case "success_rate":
		v = r.SuccessRate
	case "percent_of_total":
		v = r.PercentOfTotal
	case "count_percentile":
		v = r.CountPercentile
	case "success_rate_percentile":
		v = r.SuccessRatePercentile
	case "percent_of_total_percentile":
		v = r.PercentOfTotalPercentile
	default:
		return 0, false
	}
	if math.IsNaN(v) {
		return 0, false
	}
	return v, true
}

// StyleRecord is one row of the styles dataset: per-team attack origin
// shares (0..1) and style tendency scores. Absent cells are NaN.
// Crest is a presentation-only asset path.
type StyleRecord struct {
	Team string

	OrganizedShare  float64
	TransitionShare float64
	ContestedShare  float64
	SetPieceShare   float64

	Directness        float64
	Tempo             float64
	PressingIntensity float64
	FieldTilt         float64

	Crest string
}

// Value returns the named style statistic. Absent cells report
// ok=false.
func (r StyleRecord) Value(key string) (float64, bool) {
	var v float64
	switch key {
	case "organized_share":
		v = r.OrganizedShare
	case "transition_share":
		v = r.TransitionShare
	case "contested_share":
		v = r.ContestedShare
	case "set_piece_share":
		v = r.SetPieceShare
	case "directness":
		v = r.Directness
	case "tempo":
		v = r.Tempo
	case "pressing_intensity":
		v = r.PressingIntensity
	case "field_tilt":
		v = r.FieldTilt
	default:
		return 0, false
	}
	if math.IsNaN(v) {
		return 0, false
	}
	return v, true
}
