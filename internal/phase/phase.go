package phase

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Category groups related phases of play. Declaration order is
// display order.
type Category struct {
	Name   string
	Phases []string
}

// Categories lists every phase category. Each phase key belongs to
// exactly one category.
var Categories = []Category{
	{
		Name: "Organized possession",
		Phases: []string{
			"buildup",
			"progression",
			"accelerated_possession",
			"finishing",
		},
	},
	{
		Name: "Transition",
		Phases: []string{
			"securing_possession",
			"counterattack",
			"high_transition",
		},
	},
	{
		Name: "Contested",
		Phases: []string{
			"high_ball",
			"loose_ball",
		},
	},
	{
		Name: "Attacking set piece",
		Phases: []string{
			"corner",
			"corner_second_phase",
			"attacking_throw_in",
			"attacking_freekick",
			"attacking_freekick_second_phase",
			"penalty",
		},
	},
	{
		Name: "Possession set piece",
		Phases: []string{
			"kickoff",
			"long_goalkick",
			"short_goalkick",
			"possession_throw_in",
			"possession_freekick",
		},
	},
}

// AllCategory is the pseudo-category selecting every phase. It is
// always first in selection lists.
const AllCategory = "All phases"

// displayNames overrides the default underscore-to-space formatting
// for phases whose generated name reads poorly.
var displayNames = map[string]string{
	"accelerated_possession": "Fast break",
	"long_goalkick":          "Goal kick (long)",
	"short_goalkick":         "Goal kick (short)",
}

// CategoryNames returns the selectable category names, AllCategory
// first, then each category in declaration order.
func CategoryNames() []string {
	names := make([]string, 0, len(Categories)+1)
	names = append(names, AllCategory)
	for _, c := range Categories {
		names = append(names, c.Name)
	}
	return names
}

// All returns every phase key, flattened in category order.
func All() []string {
	var keys []string
	for _, c := range Categories {
		keys = append(keys, c.Phases...)
	}
	return keys
}

// ForCategory returns the phase keys a category name selects.
// AllCategory selects every phase. Unknown names select nothing.
func ForCategory(name string) []string {
	if name == AllCategory {
		return All()
	}
	for _, c := range Categories {
		if c.Name == name {
			return append([]string(nil), c.Phases...)
		}
	}
	return nil
}

// DisplayName converts a phase key to its display form. Overrides win;
// otherwise underscores become spaces and the first character is
// upper-cased.
func DisplayName(key string) string {
	if name, ok := displayNames[key]; ok {
		return name
	}
	s := strings.ReplaceAll(key, "_", " ")
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}

// Mode selects which metric set a table shows.
type Mode string

const (
	ModeValues      Mode = "values"
	ModePercentiles Mode = "percentiles"
)

// ParseMode maps a request string to a Mode. Anything other than
// "percentiles" is the values mode.
func ParseMode(s string) Mode {
	if strings.EqualFold(strings.TrimSpace(s), string(ModePercentiles)) {
		return ModePercentiles
	}
	return ModeValues
}

// Format hints how a value is rendered.
type Format string

const (
	FormatDecimal Format = "decimal" // one decimal place
	FormatPercent Format = "percent" // one decimal place with a % sign
	FormatInteger Format = "integer" // whole number
	FormatText    Format = "text"
)

// Metric describes one statistic column within a phase.
type Metric struct {
	Key    string
	Label  string
	Format Format
}

// ValueMetrics are the raw statistic columns, in display order.
var ValueMetrics = []Metric{
	{Key: "count", Label: "Count", Format: FormatDecimal},
	{Key: "success_rate", Label: "Won", Format: FormatPercent},
	{Key: "percent_of_total", Label: "Share", Format: FormatPercent},
}

// PercentileMetrics are the league-percentile columns. Order and
// labels match ValueMetrics so toggling modes keeps the table shape.
var PercentileMetrics = []Metric{
	{Key: "count_percentile", Label: "Count", Format: FormatInteger},
	{Key: "success_rate_percentile", Label: "Won", Format: FormatInteger},
	{Key: "percent_of_total_percentile", Label: "Share", Format: FormatInteger},
}

// MetricsFor returns the metric set for a mode.
func MetricsFor(mode Mode) []Metric {
	if mode == ModePercentiles {
		return PercentileMetrics
	}
	return ValueMetrics
}
