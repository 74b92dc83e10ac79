package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/linguadata/tagmerge/model"
	"github.com/linguadata/tagmerge/services"
)

// CreateExperimentRequest registers an experiment without starting a
// dataset build, for runs prepared outside the service.
type CreateExperimentRequest struct {
	Name        string                   `json:"name"`
	Description string                   `json:"description,omitempty"`
	Strategy    services.StrategyRequest `json:"strategy"`
}

// CreateExperimentHandler registers a new experiment.
func (api *API) CreateExperimentHandler(c *gin.Context) {
	var req CreateExperimentRequest
	if result := ValidateJSONBinding(c, &req); result.HasErrors() {
		SendValidationError(c, result)
		return
	}

	validation := &ValidationResult{Valid: true}
	if req.Name == "" {
		validation.AddError("name", "Experiment name is required")
	}
	if strategyResult := ValidateStrategyRequest(req.Strategy); strategyResult.HasErrors() {
		validation.Valid = false
		validation.Errors = append(validation.Errors, strategyResult.Errors...)
	}
	if validation.HasErrors() {
		SendValidationError(c, validation)
		return
	}

	resolved, err := api.resolveStrategy(req.Strategy)
	if err != nil {
		SendDomainError(c, "experiment creation", err)
		return
	}

	experiment, err := api.experiments.Create(model.Experiment{
		Name:        req.Name,
		Description: req.Description,
		Strategy:    resolved.Name,
		Categories:  resolved.LabelCount(),
	})
	if err != nil {
		SendInternalError(c, "experiment creation", err)
		return
	}

	c.JSON(http.StatusCreated, experiment)
}

// ListExperimentsHandler lists experiments, newest first.
func (api *API) ListExperimentsHandler(c *gin.Context) {
	experiments := api.experiments.List()
	c.JSON(http.StatusOK, gin.H{
		"experiments": experiments,
		"total":       len(experiments),
	})
}

// GetExperimentHandler returns a single experiment by ID.
func (api *API) GetExperimentHandler(c *gin.Context) {
	experiment, err := api.experiments.Get(c.Param("id"))
	if err != nil {
		SendDomainError(c, "experiment lookup", err)
		return
	}

	c.JSON(http.StatusOK, experiment)
}
