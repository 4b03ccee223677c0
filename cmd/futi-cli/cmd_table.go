package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/johnspacemuller/datadotfutidotlive/internal/export"
	"github.com/johnspacemuller/datadotfutidotlive/internal/phase"
	"github.com/johnspacemuller/datadotfutidotlive/internal/service"
)

var (
	tableTeam       string
	tableConference string
	tableCategory   string
	tableMode       string
)

// tableCmd prints the wide phase table as CSV
var tableCmd = &cobra.Command{
	Use:   "table",
	Short: "Print the phase statistics table as CSV",
	Long: `Builds the wide phase table (one row per team, one column per
phase and metric) and writes it to stdout as CSV. Filters narrow the
teams and phases; --mode percentiles swaps in league percentile ranks.`,
	RunE: runTable,
}

var stylesConference string

// stylesCmd prints the team styles table as CSV
var stylesCmd = &cobra.Command{
	Use:   "styles",
	Short: "Print the team styles table as CSV",
	Long: `Builds the styles table (share of attacking play by origin,
tendency ranks within the selection, and the dominant category) and
writes it to stdout as CSV.`,
	RunE: runStyles,
}

func init() {
	tableCmd.Flags().StringVar(&tableTeam, "team", "", "Filter to a single team")
	tableCmd.Flags().StringVar(&tableConference, "conference", "", "Filter to a conference")
	tableCmd.Flags().StringVar(&tableCategory, "category", "", "Filter to a phase category")
	tableCmd.Flags().StringVar(&tableMode, "mode", "values", "Metric mode (values|percentiles)")

	stylesCmd.Flags().StringVar(&stylesConference, "conference", "", "Filter to a conference")
}

func runTable(cmd *cobra.Command, args []string) error {
	svc, err := newService()
	if err != nil {
		return err
	}

	tbl, err := svc.PhaseTable(cmd.Context(), service.Filter{
		Team:       tableTeam,
		Conference: tableConference,
		Category:   tableCategory,
		Mode:       phase.ParseMode(tableMode),
	})
	if err != nil {
		return err
	}

	return export.WritePhaseTable(os.Stdout, tbl)
}

func runStyles(cmd *cobra.Command, args []string) error {
	svc, err := newService()
	if err != nil {
		return err
	}

	tbl, err := svc.StyleTable(cmd.Context(), stylesConference)
	if err != nil {
		return err
	}

	return export.WriteStyleTable(os.Stdout, tbl)
}
