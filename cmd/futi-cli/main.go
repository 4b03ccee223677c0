package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/johnspacemuller/datadotfutidotlive/internal/dataset"
	"github.com/johnspacemuller/datadotfutidotlive/internal/service"
)

var (
	// Global flags
	dataDir    string
	schemaPath string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "futi",
	Short: "futi - MLS match statistics tables from the command line",
	Long: `futi builds the data.futi.live dashboard tables without a server.

It loads the phase and style datasets from a data directory, applies
team, conference, and category filters, and prints tables as CSV or
records export artifacts in the audit store.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "data", "Directory containing datasets.yaml and CSV files")
	rootCmd.PersistentFlags().StringVar(&schemaPath, "schema", "schemas/dataset_v1.json", "Path to the dataset manifest JSON schema")

	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(tableCmd)
	rootCmd.AddCommand(stylesCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(exportsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newService builds a service over the configured data directory.
func newService() (*service.Service, error) {
	manifest, err := dataset.LoadManifest(dataDir)
	if err != nil {
		return nil, err
	}

	phasesSource, stylesSource, err := manifest.Sources(dataDir)
	if err != nil {
		return nil, err
	}

	return service.New(dataset.NewLoader(phasesSource, stylesSource)), nil
}
