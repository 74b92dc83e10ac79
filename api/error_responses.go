package api

import (
	goerrors "errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/linguadata/tagmerge/internal/errors"
)

// ErrorCode represents standardized error codes for the API
type ErrorCode string

const (
	// Client Error Codes (4xx)
	ErrorCodeValidationFailed   ErrorCode = "VALIDATION_FAILED"
	ErrorCodeInvalidCount       ErrorCode = "INVALID_COUNT"
	ErrorCodeUnknownStrategy    ErrorCode = "UNKNOWN_STRATEGY"
	ErrorCodeUnknownTag         ErrorCode = "UNKNOWN_TAG"
	ErrorCodeTagNotFound        ErrorCode = "TAG_NOT_FOUND"
	ErrorCodeExperimentNotFound ErrorCode = "EXPERIMENT_NOT_FOUND"
	ErrorCodeJobNotFound        ErrorCode = "JOB_NOT_FOUND"
	ErrorCodeInvalidJSON        ErrorCode = "INVALID_JSON"

	// Server Error Codes (5xx)
	ErrorCodeInternalError      ErrorCode = "INTERNAL_ERROR"
	ErrorCodePersistenceFailed  ErrorCode = "PERSISTENCE_FAILED"
	ErrorCodeJobExecutionFailed ErrorCode = "JOB_EXECUTION_FAILED"
)

// ErrorDetail provides additional context for an error
type ErrorDetail struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// APIError represents a standardized API error response
type APIError struct {
	Error     string        `json:"error"`
	Code      ErrorCode     `json:"code"`
	Message   string        `json:"message"`
	Details   []ErrorDetail `json:"details,omitempty"`
	Timestamp time.Time     `json:"timestamp"`
	RequestID string        `json:"request_id,omitempty"`
}

// APIErrorResponse creates a standardized error response
func APIErrorResponse(code ErrorCode, message string, details ...ErrorDetail) *APIError {
	return &APIError{
		Error:     "Request failed",
		Code:      code,
		Message:   message,
		Details:   details,
		Timestamp: time.Now(),
	}
}

// SendError sends a standardized error response
func SendError(c *gin.Context, statusCode int, code ErrorCode, message string, details ...ErrorDetail) {
	errorResponse := APIErrorResponse(code, message, details...)

	if requestID, exists := c.Get("request_id"); exists {
		if id, ok := requestID.(string); ok {
			errorResponse.RequestID = id
		}
	}

	c.JSON(statusCode, errorResponse)
}

// SendStructuredValidationError sends a validation error with structured details
func SendStructuredValidationError(c *gin.Context, result *ValidationResult) {
	details := make([]ErrorDetail, len(result.Errors))
	for i, err := range result.Errors {
		details[i] = ErrorDetail{
			Field:   err.Field,
			Message: err.Message,
			Code:    "VALIDATION_ERROR",
		}
	}

	SendError(c, http.StatusBadRequest, ErrorCodeValidationFailed, "Request validation failed", details...)
}

// SendInvalidJSONError sends a standardized invalid JSON error
func SendInvalidJSONError(c *gin.Context, err error) {
	SendError(c, http.StatusBadRequest, ErrorCodeInvalidJSON,
		"Invalid JSON in request body: "+err.Error())
}

// SendInternalError sends a standardized internal server error
func SendInternalError(c *gin.Context, operation string, err error) {
	SendError(c, http.StatusInternalServerError, ErrorCodeInternalError,
		"Internal error during "+operation+": "+err.Error())
}

// SendJobExecutionError sends a standardized job execution error
func SendJobExecutionError(c *gin.Context, operation string, err error) {
	SendError(c, http.StatusInternalServerError, ErrorCodeJobExecutionFailed,
		"Failed to start "+operation+" job: "+err.Error())
}

// SendDomainError maps domain errors to their HTTP status and error code.
// Unknown errors fall through to a 500.
func SendDomainError(c *gin.Context, operation string, err error) {
	var unknownStrategy *errors.UnknownStrategyError
	if goerrors.As(err, &unknownStrategy) {
		details := make([]ErrorDetail, len(unknownStrategy.Known))
		for i, name := range unknownStrategy.Known {
			details[i] = ErrorDetail{Field: "preset", Message: name, Code: "KNOWN_STRATEGY"}
		}
		SendError(c, http.StatusNotFound, ErrorCodeUnknownStrategy, err.Error(), details...)
		return
	}

	switch {
	case goerrors.Is(err, errors.ErrInvalidCount):
		SendError(c, http.StatusBadRequest, ErrorCodeInvalidCount, err.Error())
	case goerrors.Is(err, errors.ErrUnknownTag):
		SendError(c, http.StatusBadRequest, ErrorCodeUnknownTag, err.Error())
	case goerrors.Is(err, errors.ErrTagNotFound):
		SendError(c, http.StatusNotFound, ErrorCodeTagNotFound, err.Error())
	case goerrors.Is(err, errors.ErrExperimentNotFound):
		SendError(c, http.StatusNotFound, ErrorCodeExperimentNotFound, err.Error())
	case goerrors.Is(err, errors.ErrJobNotFound):
		SendError(c, http.StatusNotFound, ErrorCodeJobNotFound, err.Error())
	default:
		SendInternalError(c, operation, err)
	}
}
