// Package api exposes the tag merge engine over HTTP: strategy
// resolution, record relabeling, dataset builds and experiment tracking.
package api

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/linguadata/tagmerge/model"
	"github.com/linguadata/tagmerge/services"
)

// ValidationError represents a validation error with field context
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationResult holds the result of validation operations
type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

// AddError adds a validation error to the result
func (vr *ValidationResult) AddError(field, message string) {
	vr.Valid = false
	vr.Errors = append(vr.Errors, ValidationError{
		Field:   field,
		Message: message,
	})
}

// HasErrors returns true if there are validation errors
func (vr *ValidationResult) HasErrors() bool {
	return len(vr.Errors) > 0
}

// ValidateStrategyRequest validates a strategy selector: exactly one of
// preset or categories must be usable.
func ValidateStrategyRequest(req services.StrategyRequest) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if req.Preset == "" && req.Categories == 0 {
		result.AddError("strategy", "Either 'preset' or 'categories' is required")
		return result
	}

	if req.Preset != "" && strings.TrimSpace(req.Preset) != req.Preset {
		result.AddError("preset", "Preset name cannot have leading or trailing whitespace")
	}

	if req.Preset == "" && req.Categories < 0 {
		result.AddError("categories", "Category count must be positive")
	}

	return result
}

// ValidateRecords validates a batch of sentence records for relabeling.
func ValidateRecords(records []model.SentenceRecord) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if len(records) == 0 {
		result.AddError("records", "No records provided")
		return result
	}

	for i, rec := range records {
		if strings.TrimSpace(rec.Sentence) == "" {
			result.AddError(fmt.Sprintf("records[%d].sentence", i), "Record must have a non-empty sentence")
		}
		for j, ann := range rec.Annotations {
			if strings.TrimSpace(ann.TagID) == "" {
				result.AddError(fmt.Sprintf("records[%d].annotations[%d].tag_id", i, j), "Annotation must have a tag_id")
			}
		}
	}

	return result
}

// ValidateDatasetRequest validates a dataset build request.
func ValidateDatasetRequest(req *DatasetRequest) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if req == nil {
		result.AddError("request", "Request body is required")
		return result
	}

	if strings.TrimSpace(req.ExperimentName) == "" {
		result.AddError("experiment_name", "Experiment name is required")
	}

	if strategyResult := ValidateStrategyRequest(req.Strategy); strategyResult.HasErrors() {
		result.Valid = false
		result.Errors = append(result.Errors, strategyResult.Errors...)
	}

	if recordsResult := ValidateRecords(req.Records); recordsResult.HasErrors() {
		result.Valid = false
		result.Errors = append(result.Errors, recordsResult.Errors...)
	}

	if req.TrainRatio < 0 || req.TrainRatio >= 1 {
		result.AddError("train_ratio", "Train ratio must be in [0, 1)")
	}
	if req.ValidRatio < 0 || req.ValidRatio >= 1 {
		result.AddError("valid_ratio", "Valid ratio must be in [0, 1)")
	}
	if req.TrainRatio+req.ValidRatio >= 1 {
		result.AddError("valid_ratio", "Train and valid ratios must leave room for a test set")
	}

	return result
}

// SendValidationError sends a standardized validation error response
func SendValidationError(c *gin.Context, result *ValidationResult) {
	SendStructuredValidationError(c, result)
}

// ValidateJSONBinding validates JSON binding and returns a standardized error
func ValidateJSONBinding(c *gin.Context, target interface{}) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if err := c.ShouldBindJSON(target); err != nil {
		result.AddError("request_body", "Invalid request body: "+err.Error())
	}

	return result
}
