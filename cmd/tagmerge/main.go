package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/linguadata/tagmerge/api"
	"github.com/linguadata/tagmerge/config"
	"github.com/linguadata/tagmerge/internal/experiments"
	"github.com/linguadata/tagmerge/internal/jobs"
	"github.com/linguadata/tagmerge/internal/merge"
	"github.com/linguadata/tagmerge/internal/strategy"
	"github.com/linguadata/tagmerge/internal/taxonomy"
)

const maxRequestBodySize = 32 << 20 // record batches can be large

func main() {
	// Define command-line flags
	var (
		help         = flag.Bool("help", false, "Show help message")
		version      = flag.Bool("version", false, "Show version information")
		port         = flag.String("port", "8080", "Port to run the server on")
		dataDir      = flag.String("data-dir", "./tagmerge_data", "Directory to store experiment and dataset files")
		taxonomyFile = flag.String("taxonomy", "", "Path to a taxonomy YAML file (built-in taxonomy if empty)")
		maxWorkers   = flag.Int("max-workers", 2, "Maximum concurrent dataset build jobs")
	)

	flag.Parse()

	// Handle help flag
	if *help {
		fmt.Printf("Tagmerge - deterministic tag category merging for fine-tuning datasets\n\n")
		fmt.Printf("Usage: %s [options]\n\n", os.Args[0])
		fmt.Printf("Options:\n")
		flag.PrintDefaults()
		fmt.Printf("\nExamples:\n")
		fmt.Printf("  %s                              # Start server on default port 8080\n", os.Args[0])
		fmt.Printf("  %s --port 9000                  # Start server on port 9000\n", os.Args[0])
		fmt.Printf("  %s --taxonomy grammar.yaml      # Use a custom tag taxonomy\n", os.Args[0])
		return
	}

	// Handle version flag
	if *version {
		fmt.Printf("Tagmerge v1.0.0\n")
		fmt.Printf("Deterministic merge engine, strategy presets and dataset builds\n")
		return
	}

	settings := config.Settings{
		Port:         *port,
		DataDir:      *dataDir,
		TaxonomyFile: *taxonomyFile,
		MaxWorkers:   *maxWorkers,
	}
	settings.ApplyDefaults()

	// Load the tag taxonomy
	taxonomyCfg := config.DefaultTaxonomy()
	if settings.TaxonomyFile != "" {
		loaded, err := config.LoadTaxonomy(settings.TaxonomyFile)
		if err != nil {
			log.Fatalf("Failed to load taxonomy: %v", err)
		}
		taxonomyCfg = loaded
	}
	log.Printf("Using taxonomy '%s' (%s) with %d tags", taxonomyCfg.Name, taxonomyCfg.Version, len(taxonomyCfg.Tags))

	registry, err := taxonomy.NewRegistry(taxonomyCfg.Tags)
	if err != nil {
		log.Fatalf("Invalid taxonomy: %v", err)
	}

	// Build the merge engine and strategy resolver
	engine := merge.NewEngine(registry)
	resolver := strategy.NewResolver(registry, engine)

	// Initialize stores and the job manager
	log.Printf("Using data directory: %s", settings.DataDir)
	experimentStore := experiments.NewFileStore(settings.DataDir)

	jobManager := jobs.NewManager(settings.MaxWorkers)
	jobManager.Start()
	defer jobManager.Stop()

	// Initialize Gin router
	router := gin.Default()
	router.Use(api.RequestSizeLimitMiddleware(maxRequestBodySize))
	router.Use(api.CORSMiddleware())

	// Setup API routes
	apiHandler := api.NewAPI(settings, registry, resolver, experimentStore, jobManager)
	api.SetupRoutes(router, apiHandler)

	// Start the server
	log.Printf("Starting server on port %s...", settings.Port)
	if err := router.Run(":" + settings.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
