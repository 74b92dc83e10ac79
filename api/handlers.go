package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/linguadata/tagmerge/config"
	"github.com/linguadata/tagmerge/internal/jobs"
	"github.com/linguadata/tagmerge/services"
)

// API holds dependencies for API handlers.
type API struct {
	settings    config.Settings
	registry    services.TaxonomyReader
	resolver    services.StrategyProvider
	experiments services.ExperimentStore
	jobs        *jobs.Manager
}

// NewAPI creates a new API handler structure.
func NewAPI(settings config.Settings, registry services.TaxonomyReader, resolver services.StrategyProvider, experiments services.ExperimentStore, jobManager *jobs.Manager) *API {
	return &API{
		settings:    settings,
		registry:    registry,
		resolver:    resolver,
		experiments: experiments,
		jobs:        jobManager,
	}
}

// SetupRoutes defines all the API routes for the tag merge service.
func SetupRoutes(router *gin.Engine, apiHandler *API) {
	// Health check route
	router.GET("/health", apiHandler.HealthCheckHandler)

	// Taxonomy route
	router.GET("/taxonomy", apiHandler.GetTaxonomyHandler)

	// Strategy routes
	strategyRoutes := router.Group("/strategies")
	{
		strategyRoutes.GET("", apiHandler.ListStrategiesHandler)              // List known presets
		strategyRoutes.POST("/resolve", apiHandler.ResolveStrategyHandler)    // Resolve a preset or dynamic count
		strategyRoutes.GET("/:name/export", apiHandler.ExportStrategyHandler) // Export a preset as YAML
	}

	// Relabeling route
	router.POST("/relabel", apiHandler.RelabelHandler)

	// Dataset build route
	router.POST("/datasets", apiHandler.BuildDatasetHandler)

	// Experiment routes
	experimentRoutes := router.Group("/experiments")
	{
		experimentRoutes.POST("", apiHandler.CreateExperimentHandler) // Register an experiment
		experimentRoutes.GET("", apiHandler.ListExperimentsHandler)   // List experiments, newest first
		experimentRoutes.GET("/:id", apiHandler.GetExperimentHandler) // Get experiment by ID
	}

	// Job management routes
	jobRoutes := router.Group("/jobs")
	{
		jobRoutes.GET("/metrics", apiHandler.GetJobMetricsHandler) // Get job performance metrics
		jobRoutes.GET("/:jobId", apiHandler.GetJobHandler)         // Get job status by ID
		jobRoutes.GET("", apiHandler.ListJobsHandler)              // List jobs, optionally filtered
	}
}

// HealthCheckHandler provides a simple health check endpoint
func (api *API) HealthCheckHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"service":   "tagmerge",
		"timestamp": fmt.Sprintf("%d", time.Now().Unix()),
	})
}

// GetTaxonomyHandler returns the tag catalog the service was started with.
func (api *API) GetTaxonomyHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"tags":  api.registry.Tags(),
		"total": api.registry.Size(),
	})
}
