package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/johnspacemuller/datadotfutidotlive/internal/dataset"
)

// validateCmd checks the data directory against the manifest schema
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the dataset manifest and referenced files",
	Long: `Checks datasets.yaml against the JSON schema and verifies that
every referenced dataset file exists.`,
	RunE: runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	validator, err := dataset.NewValidator(schemaPath)
	if err != nil {
		return fmt.Errorf("failed to initialize validator: %w", err)
	}

	errors := validator.ValidateDirectory(dataDir)
	if len(errors) == 0 {
		fmt.Println("✓ Data directory is valid")
		return nil
	}

	// Group errors by file
	errorsByFile := make(map[string][]dataset.ValidationError)
	for _, err := range errors {
		errorsByFile[err.File] = append(errorsByFile[err.File], err)
	}

	var files []string
	for file := range errorsByFile {
		files = append(files, file)
	}
	sort.Strings(files)

	fmt.Fprintf(os.Stderr, "✗ Validation failed with %d error(s):\n\n", len(errors))
	for _, file := range files {
		for _, err := range errorsByFile[file] {
			if err.Path != "" {
				fmt.Fprintf(os.Stderr, "%s: %s: %s\n", filepath.Base(err.File), err.Path, err.Message)
			} else {
				fmt.Fprintf(os.Stderr, "%s: %s\n", filepath.Base(err.File), err.Message)
			}
		}
	}

	return fmt.Errorf("validation failed")
}
