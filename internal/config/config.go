package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds server configuration
type Config struct {
	// Server settings
	Port int    `yaml:"port"`
	Host string `yaml:"host"`

	// Dataset settings
	DataDirectory string `yaml:"dataDirectory"`
	SchemaPath    string `yaml:"schemaPath"`

	// Export settings. An empty AuditDBPath disables exports.
	ExportDirectory string `yaml:"exportDirectory"`
	AuditDBPath     string `yaml:"auditDBPath"`

	// Operational settings
	GracefulShutdownTimeout Duration `yaml:"gracefulShutdownTimeout"`
}

// Validate checks if configuration is valid
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}

	if c.DataDirectory == "" {
		return fmt.Errorf("data directory is required")
	}

	if c.SchemaPath == "" {
		return fmt.Errorf("schema path is required")
	}

	if c.AuditDBPath != "" && c.ExportDirectory == "" {
		return fmt.Errorf("export directory required when audit DB is set")
	}

	return nil
}

// DefaultConfig returns default configuration
func DefaultConfig() Config {
	return Config{
		Port:                    8080,
		Host:                    "0.0.0.0",
		DataDirectory:           "data",
		SchemaPath:              "schemas/dataset_v1.json",
		ExportDirectory:         "exports",
		AuditDBPath:             "futi.db",
		GracefulShutdownTimeout: Duration(30 * time.Second),
	}
}

// Load reads a YAML config file over the defaults. Fields absent from
// the file keep their default values.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}
