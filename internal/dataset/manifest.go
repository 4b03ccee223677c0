package dataset

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ManifestName is the manifest file expected in a data directory.
const ManifestName = "datasets.yaml"

// Manifest declares where each dataset lives. File paths are relative
// to the data directory; URLs are fetched over HTTP.
type Manifest struct {
	Version  int          `yaml:"version"`
	Datasets ManifestSpec `yaml:"datasets"`
}

// ManifestSpec names the two datasets the dashboards need.
type ManifestSpec struct {
	Phases DatasetRef `yaml:"phases"`
	Styles DatasetRef `yaml:"styles"`
}

// DatasetRef points at one dataset, either on disk or over HTTP.
type DatasetRef struct {
	File string `yaml:"file,omitempty"`
	URL  string `yaml:"url,omitempty"`
}

// LoadManifest reads and parses the manifest in a data directory.
func LoadManifest(dir string) (*Manifest, error) {
	path := filepath.Join(dir, ManifestName)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	return &m, nil
}

// Sources resolves the manifest's dataset references into loader
// sources.
func (m *Manifest) Sources(dir string) (phases, styles Source, err error) {
	phases, err = m.Datasets.Phases.source(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("datasets.phases: %w", err)
	}
	styles, err = m.Datasets.Styles.source(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("datasets.styles: %w", err)
	}
	return phases, styles, nil
}

func (r DatasetRef) source(dir string) (Source, error) {
	switch {
	case r.URL != "" && r.File != "":
		return nil, fmt.Errorf("declare either file or url, not both")
	case r.URL != "":
		return NewHTTPSource(DefaultHTTPConfig(r.URL)), nil
	case r.File != "":
		return NewFileSource(filepath.Join(dir, r.File)), nil
	default:
		return nil, fmt.Errorf("declare a file or url")
	}
}
