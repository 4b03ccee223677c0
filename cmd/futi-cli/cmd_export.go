package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/johnspacemuller/datadotfutidotlive/internal/export"
	"github.com/johnspacemuller/datadotfutidotlive/internal/phase"
	"github.com/johnspacemuller/datadotfutidotlive/internal/service"
	"github.com/johnspacemuller/datadotfutidotlive/internal/storage"
	"github.com/johnspacemuller/datadotfutidotlive/internal/storage/sqlite"
)

var (
	exportView       string
	exportTeam       string
	exportConference string
	exportCategory   string
	exportMode       string
	exportDir        string
	auditDBPath      string

	exportsView  string
	exportsLimit int
)

// exportCmd writes a CSV artifact and records it in the audit store
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write a CSV export artifact and record it",
	Long: `Builds the requested view with the given filters, writes it to
the export directory, and records the artifact in the audit database.`,
	RunE: runExport,
}

// exportsCmd lists recorded export artifacts
var exportsCmd = &cobra.Command{
	Use:   "exports",
	Short: "List recorded export artifacts",
	RunE:  runExports,
}

func init() {
	exportCmd.Flags().StringVar(&exportView, "view", "phases", "View to export (phases|styles)")
	exportCmd.Flags().StringVar(&exportTeam, "team", "", "Filter to a single team")
	exportCmd.Flags().StringVar(&exportConference, "conference", "", "Filter to a conference")
	exportCmd.Flags().StringVar(&exportCategory, "category", "", "Filter to a phase category")
	exportCmd.Flags().StringVar(&exportMode, "mode", "values", "Metric mode (values|percentiles)")
	exportCmd.Flags().StringVar(&exportDir, "export-dir", "exports", "Directory for CSV export artifacts")
	exportCmd.Flags().StringVar(&auditDBPath, "audit-db", "futi.db", "SQLite database recording exports")

	exportsCmd.Flags().StringVar(&exportsView, "view", "", "Filter records by view")
	exportsCmd.Flags().IntVar(&exportsLimit, "limit", 0, "Maximum records to list")
	exportsCmd.Flags().StringVar(&auditDBPath, "audit-db", "futi.db", "SQLite database recording exports")
}

func runExport(cmd *cobra.Command, args []string) error {
	svc, err := newService()
	if err != nil {
		return err
	}

	store, err := sqlite.NewStore(auditDBPath)
	if err != nil {
		return fmt.Errorf("failed to open audit store: %w", err)
	}
	defer store.Close()

	exporter, err := export.NewService(exportDir, store)
	if err != nil {
		return err
	}
	svc.SetExporter(exporter)

	var record *storage.ExportRecord
	switch exportView {
	case "phases":
		record, err = svc.ExportPhaseTable(cmd.Context(), service.Filter{
			Team:       exportTeam,
			Conference: exportConference,
			Category:   exportCategory,
			Mode:       phase.ParseMode(exportMode),
		})
	case "styles":
		record, err = svc.ExportStyleTable(cmd.Context(), exportConference)
	default:
		return fmt.Errorf(`view must be "phases" or "styles"`)
	}
	if err != nil {
		return err
	}

	fmt.Printf("Wrote %s (%d rows, %d columns, %d bytes)\n",
		exporter.Path(record), record.RowCount, record.ColumnCount, record.ByteSize)
	return nil
}

func runExports(cmd *cobra.Command, args []string) error {
	store, err := sqlite.NewStore(auditDBPath)
	if err != nil {
		return fmt.Errorf("failed to open audit store: %w", err)
	}
	defer store.Close()

	records, err := store.QueryExports(storage.ExportFilter{
		View:  exportsView,
		Limit: exportsLimit,
	})
	if err != nil {
		return err
	}

	if len(records) == 0 {
		fmt.Println("No exports recorded")
		return nil
	}

	for _, r := range records {
		fmt.Printf("%s  %-7s %4d rows %3d cols %8d bytes  %s  %s\n",
			r.CreatedAt.Format(time.RFC3339), r.View, r.RowCount, r.ColumnCount, r.ByteSize, r.ID, r.Filename)
	}
	return nil
}
