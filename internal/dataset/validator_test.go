package dataset

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const validManifest = `version: 1
datasets:
  phases:
    file: phases.csv
  styles:
    file: styles.csv
`

// writeDataDir lays out a data directory with a manifest and any
// referenced dataset files.
func writeDataDir(t *testing.T, manifest string, files ...string) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ManifestName), []byte(manifest), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	for _, name := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(phasesCSV), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	return dir
}

func mustNewValidator(t *testing.T) *Validator {
	t.Helper()
	validator, err := NewValidator("../../schemas/dataset_v1.json")
	if err != nil {
		t.Fatalf("failed to create validator: %v", err)
	}
	return validator
}

func TestValidator_ValidateDirectory_Valid(t *testing.T) {
	dir := writeDataDir(t, validManifest, "phases.csv", "styles.csv")

	errors := mustNewValidator(t).ValidateDirectory(dir)
	if len(errors) != 0 {
		t.Errorf("expected no errors, got %d:", len(errors))
		for _, err := range errors {
			t.Logf("  %v", err)
		}
	}
}

func TestValidator_ValidateDirectory_ValidURL(t *testing.T) {
	manifest := `version: 1
datasets:
  phases:
    url: https://example.com/phases.csv
  styles:
    file: styles.csv
`
	dir := writeDataDir(t, manifest, "styles.csv")

	errors := mustNewValidator(t).ValidateDirectory(dir)
	if len(errors) != 0 {
		t.Errorf("expected no errors, got %v", errors)
	}
}

func TestValidator_ValidateDirectory_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		manifest string
		files    []string
		wantErr  string
	}{
		{
			name:     "wrong version",
			manifest: "version: 2\ndatasets:\n  phases:\n    file: phases.csv\n  styles:\n    file: styles.csv\n",
			files:    []string{"phases.csv", "styles.csv"},
			wantErr:  "version",
		},
		{
			name:     "missing styles dataset",
			manifest: "version: 1\ndatasets:\n  phases:\n    file: phases.csv\n",
			files:    []string{"phases.csv"},
			wantErr:  "styles",
		},
		{
			name:     "dataset without file or url",
			manifest: "version: 1\ndatasets:\n  phases: {}\n  styles:\n    file: styles.csv\n",
			files:    []string{"styles.csv"},
			wantErr:  "phases",
		},
		{
			name:     "unknown top-level key",
			manifest: validManifest + "refresh: hourly\n",
			files:    []string{"phases.csv", "styles.csv"},
			wantErr:  "refresh",
		},
		{
			name:     "both file and url",
			manifest: "version: 1\ndatasets:\n  phases:\n    file: phases.csv\n    url: https://example.com/phases.csv\n  styles:\n    file: styles.csv\n",
			files:    []string{"phases.csv", "styles.csv"},
			wantErr:  "not both",
		},
		{
			name:     "referenced file missing",
			manifest: validManifest,
			files:    []string{"styles.csv"},
			wantErr:  `referenced file "phases.csv" does not exist`,
		},
		{
			name:     "malformed yaml",
			manifest: "version: [\n",
			files:    nil,
			wantErr:  "failed to parse YAML",
		},
	}

	validator := mustNewValidator(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := writeDataDir(t, tt.manifest, tt.files...)

			errors := validator.ValidateDirectory(dir)
			if len(errors) == 0 {
				t.Fatal("expected validation errors, got none")
			}

			found := false
			for _, err := range errors {
				if strings.Contains(err.Error(), tt.wantErr) {
					found = true
					break
				}
			}
			if !found {
				t.Errorf("expected an error containing %q, got: %v", tt.wantErr, errors)
			}
		})
	}
}

func TestValidator_ValidateDirectory_MissingManifest(t *testing.T) {
	errors := mustNewValidator(t).ValidateDirectory(t.TempDir())
	if len(errors) != 1 {
		t.Fatalf("expected 1 error, got %d", len(errors))
	}
	if !strings.Contains(errors[0].Message, "failed to read manifest") {
		t.Errorf("unexpected error: %v", errors[0])
	}
}

func TestValidationError_Error(t *testing.T) {
	withPath := ValidationError{File: "datasets.yaml", Path: "datasets.phases", Message: "boom"}
	if got := withPath.Error(); got != "datasets.yaml: datasets.phases: boom" {
		t.Errorf("unexpected error string: %q", got)
	}

	withoutPath := ValidationError{File: "datasets.yaml", Message: "boom"}
	if got := withoutPath.Error(); got != "datasets.yaml: boom" {
		t.Errorf("unexpected error string: %q", got)
	}
}

func TestLoadManifest(t *testing.T) {
	dir := writeDataDir(t, validManifest, "phases.csv", "styles.csv")

	m, err := LoadManifest(dir)
	if err != nil {
		t.Fatalf("LoadManifest returned error: %v", err)
	}
	if m.Version != 1 {
		t.Errorf("expected version 1, got %d", m.Version)
	}
	if m.Datasets.Phases.File != "phases.csv" {
		t.Errorf("unexpected phases ref: %+v", m.Datasets.Phases)
	}
	if m.Datasets.Styles.File != "styles.csv" {
		t.Errorf("unexpected styles ref: %+v", m.Datasets.Styles)
	}
}

func TestManifest_Sources(t *testing.T) {
	dir := t.TempDir()

	m := &Manifest{
		Version: 1,
		Datasets: ManifestSpec{
			Phases: DatasetRef{File: "phases.csv"},
			Styles: DatasetRef{URL: "https://example.com/styles.csv"},
		},
	}

	phases, styles, err := m.Sources(dir)
	if err != nil {
		t.Fatalf("Sources returned error: %v", err)
	}

	if _, ok := phases.(*FileSource); !ok {
		t.Errorf("expected *FileSource for file ref, got %T", phases)
	}
	if phases.Name() != filepath.Join(dir, "phases.csv") {
		t.Errorf("unexpected file source path: %s", phases.Name())
	}

	if _, ok := styles.(*HTTPSource); !ok {
		t.Errorf("expected *HTTPSource for url ref, got %T", styles)
	}
	if styles.Name() != "https://example.com/styles.csv" {
		t.Errorf("unexpected http source name: %s", styles.Name())
	}
}

func TestManifest_Sources_Empty(t *testing.T) {
	m := &Manifest{Version: 1}

	_, _, err := m.Sources(t.TempDir())
	if err == nil {
		t.Fatal("expected error for empty dataset ref, got nil")
	}
	if !strings.Contains(err.Error(), "datasets.phases") {
		t.Errorf("unexpected error: %v", err)
	}
}
