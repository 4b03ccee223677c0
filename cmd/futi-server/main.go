package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/johnspacemuller/datadotfutidotlive/internal/api"
	"github.com/johnspacemuller/datadotfutidotlive/internal/config"
	"github.com/johnspacemuller/datadotfutidotlive/internal/dataset"
	"github.com/johnspacemuller/datadotfutidotlive/internal/export"
	"github.com/johnspacemuller/datadotfutidotlive/internal/metrics"
	"github.com/johnspacemuller/datadotfutidotlive/internal/service"
	"github.com/johnspacemuller/datadotfutidotlive/internal/storage/sqlite"
)

func main() {
	// Parse flags
	cfg := parseFlags()

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	log.Printf("Starting futi server...")
	log.Printf("Config: port=%d, data-dir=%s", cfg.Port, cfg.DataDirectory)

	// Validate the data directory before serving from it
	validator, err := dataset.NewValidator(cfg.SchemaPath)
	if err != nil {
		log.Fatalf("Failed to load dataset schema: %v", err)
	}
	if errs := validator.ValidateDirectory(cfg.DataDirectory); len(errs) > 0 {
		for _, e := range errs {
			log.Printf("Validation error: %v", e)
		}
		log.Fatalf("Data directory failed validation: %s", cfg.DataDirectory)
	}

	// Resolve dataset sources from the manifest
	manifest, err := dataset.LoadManifest(cfg.DataDirectory)
	if err != nil {
		log.Fatalf("Failed to load manifest: %v", err)
	}
	phasesSource, stylesSource, err := manifest.Sources(cfg.DataDirectory)
	if err != nil {
		log.Fatalf("Failed to resolve dataset sources: %v", err)
	}

	loader := dataset.NewLoader(phasesSource, stylesSource)
	svc := service.New(loader)

	// Optional export backend
	var store *sqlite.Store
	if cfg.AuditDBPath != "" {
		store, err = sqlite.NewStore(cfg.AuditDBPath)
		if err != nil {
			log.Fatalf("Failed to open audit store: %v", err)
		}

		exporter, err := export.NewService(cfg.ExportDirectory, store)
		if err != nil {
			log.Fatalf("Failed to create export service: %v", err)
		}
		svc.SetExporter(exporter)
		log.Printf("Exports enabled: dir=%s, audit=%s", cfg.ExportDirectory, cfg.AuditDBPath)
	} else {
		log.Printf("Exports disabled (no audit DB configured)")
	}

	// Create and start HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	apiServer := api.NewServer(svc, metrics.New(), addr)

	// Start server in goroutine
	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- apiServer.Start()
	}()

	// Wait for interrupt signal or server error
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		log.Fatalf("Server error: %v", err)

	case sig := <-shutdown:
		log.Printf("Received signal: %v", sig)

		// Graceful shutdown
		ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.GracefulShutdownTimeout))
		defer cancel()

		if err := apiServer.Shutdown(ctx); err != nil {
			log.Printf("Error shutting down server: %v", err)
		}

		if store != nil {
			if err := store.Close(); err != nil {
				log.Printf("Error closing audit store: %v", err)
			}
		}

		log.Println("Shutdown complete")
	}
}

func parseFlags() config.Config {
	defaults := config.DefaultConfig()

	configPath := flag.String("config", "", "Path to YAML config file")
	port := flag.Int("port", defaults.Port, "HTTP server port")
	host := flag.String("host", defaults.Host, "HTTP server host")
	dataDir := flag.String("data-dir", defaults.DataDirectory, "Directory containing datasets.yaml and CSV files")
	schemaPath := flag.String("schema", defaults.SchemaPath, "Path to the dataset manifest JSON schema")
	exportDir := flag.String("export-dir", defaults.ExportDirectory, "Directory for CSV export artifacts")
	auditDB := flag.String("audit-db", defaults.AuditDBPath, "SQLite database recording exports (empty disables exports)")

	flag.Parse()

	cfg := defaults
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("Failed to load config file: %v", err)
		}
		cfg = loaded
	}

	// Explicitly set flags win over the config file
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "port":
			cfg.Port = *port
		case "host":
			cfg.Host = *host
		case "data-dir":
			cfg.DataDirectory = *dataDir
		case "schema":
			cfg.SchemaPath = *schemaPath
		case "export-dir":
			cfg.ExportDirectory = *exportDir
		case "audit-db":
			cfg.AuditDBPath = *auditDB
		}
	})

	return cfg
}
