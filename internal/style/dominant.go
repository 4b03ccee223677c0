package style

import (
	"math"
	"strings"

	"github.com/johnspacemuller/datadotfutidotlive/internal/dataset"
)

// DominantSeparator joins tied style labels.
const DominantSeparator = "\n"

// DominantCategories derives a team's style label: the share
// column(s) holding the maximum raw value. Exact ties all appear,
// joined in declared column order. Teams with no share values get an
// empty label.
func DominantCategories(rec dataset.StyleRecord) string {
	max := math.Inf(-1)
	found := false
	for _, col := range ShareColumns {
		v, ok := rec.Value(col.Key)
		if !ok {
			continue
		}
		found = true
		if v > max {
			max = v
		}
	}
	if !found {
		return ""
	}

	var labels []string
	for _, col := range ShareColumns {
		if v, ok := rec.Value(col.Key); ok && v == max {
			labels = append(labels, col.Label)
		}
	}
	return strings.Join(labels, DominantSeparator)
}
