package dataset

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"gopkg.in/yaml.v3"
)

// ValidationError represents a single problem found in a manifest
type ValidationError struct {
	File    string
	Path    string
	Message string
}

func (e ValidationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s: %s", e.File, e.Path, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.File, e.Message)
}

// Validator handles manifest validation
type Validator struct {
	schema *jsonschema.Schema
}

// NewValidator creates a new validator with the given schema file
func NewValidator(schemaPath string) (*Validator, error) {
	compiler := jsonschema.NewCompiler()

	// Load schema from file path
	// The schema will be auto-detected based on $schema field
	schema, err := compiler.Compile(schemaPath)
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema: %w", err)
	}

	return &Validator{schema: schema}, nil
}

// ValidateDirectory validates the manifest in a data directory together
// with the dataset files it references
func (v *Validator) ValidateDirectory(dirPath string) []ValidationError {
	raw, err := os.ReadFile(filepath.Join(dirPath, ManifestName))
	if err != nil {
		return []ValidationError{{
			File:    ManifestName,
			Message: fmt.Sprintf("failed to read manifest: %v", err),
		}}
	}

	var doc interface{}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return []ValidationError{{
			File:    ManifestName,
			Message: fmt.Sprintf("failed to parse YAML: %v", err),
		}}
	}

	// Validate against schema
	if err := v.schema.Validate(doc); err != nil {
		if validationErr, ok := err.(*jsonschema.ValidationError); ok {
			return extractSchemaErrors(ManifestName, validationErr)
		}
		return []ValidationError{{File: ManifestName, Message: err.Error()}}
	}

	manifest, err := LoadManifest(dirPath)
	if err != nil {
		return []ValidationError{{File: ManifestName, Message: err.Error()}}
	}

	return v.validateExtraRules(dirPath, manifest)
}

// extractSchemaErrors converts JSON schema validation errors to ValidationErrors
func extractSchemaErrors(file string, err *jsonschema.ValidationError) []ValidationError {
	var errors []ValidationError

	// Add the main error
	path := strings.Join(err.InstanceLocation, ".")
	if path == "" {
		path = "(root)"
	}

	errors = append(errors, ValidationError{
		File:    file,
		Path:    path,
		Message: err.Error(),
	})

	// Add any nested errors
	for _, cause := range err.Causes {
		errors = append(errors, extractSchemaErrors(file, cause)...)
	}

	return errors
}

// validateExtraRules applies additional validation rules beyond JSON schema
func (v *Validator) validateExtraRules(dirPath string, m *Manifest) []ValidationError {
	var errors []ValidationError

	refs := []struct {
		path string
		ref  DatasetRef
	}{
		{"datasets.phases", m.Datasets.Phases},
		{"datasets.styles", m.Datasets.Styles},
	}

	for _, r := range refs {
		if r.ref.File != "" && r.ref.URL != "" {
			errors = append(errors, ValidationError{
				File:    ManifestName,
				Path:    r.path,
				Message: "declare either file or url, not both",
			})
			continue
		}
		if r.ref.File == "" {
			continue
		}
		if _, err := os.Stat(filepath.Join(dirPath, r.ref.File)); err != nil {
			errors = append(errors, ValidationError{
				File:    ManifestName,
				Path:    r.path + ".file",
				Message: fmt.Sprintf("referenced file %q does not exist", r.ref.File),
			})
		}
	}

	return errors
}
