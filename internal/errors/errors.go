package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common error conditions
var (
	// ErrInvalidCount is returned when a requested target category count is
	// outside the valid range for the taxonomy
	ErrInvalidCount = errors.New("invalid target category count")

	// ErrUnknownStrategy is returned when a preset strategy name is not recognized
	ErrUnknownStrategy = errors.New("unknown strategy")

	// ErrUnknownTag is returned when a dataset record references a tag that is
	// not part of the taxonomy
	ErrUnknownTag = errors.New("unknown tag")

	// ErrTagNotFound is returned when a taxonomy lookup misses; this indicates
	// a programming or configuration invariant violation
	ErrTagNotFound = errors.New("tag not found")

	// ErrInvalidTaxonomy is returned when a taxonomy declaration violates its
	// invariants (duplicate IDs, unknown tiers or groups)
	ErrInvalidTaxonomy = errors.New("invalid taxonomy")

	// ErrExperimentNotFound is returned when an experiment is not found
	ErrExperimentNotFound = errors.New("experiment not found")

	// ErrJobNotFound is returned when a job is not found
	ErrJobNotFound = errors.New("job not found")
)

// InvalidCountError represents an out-of-range target category count with context
type InvalidCountError struct {
	Count int
	Min   int
	Max   int
}

func (e *InvalidCountError) Error() string {
	return fmt.Sprintf("target category count %d is outside the valid range [%d, %d]", e.Count, e.Min, e.Max)
}

func (e *InvalidCountError) Is(target error) bool {
	return target == ErrInvalidCount
}

// NewInvalidCountError creates a new InvalidCountError
func NewInvalidCountError(count, min, max int) *InvalidCountError {
	return &InvalidCountError{Count: count, Min: min, Max: max}
}

// UnknownStrategyError represents an unrecognized preset name with the list of
// known presets for user-facing diagnostics
type UnknownStrategyError struct {
	Name  string
	Known []string
}

func (e *UnknownStrategyError) Error() string {
	return fmt.Sprintf("strategy '%s' not found (known strategies: %s)", e.Name, strings.Join(e.Known, ", "))
}

func (e *UnknownStrategyError) Is(target error) bool {
	return target == ErrUnknownStrategy
}

// NewUnknownStrategyError creates a new UnknownStrategyError
func NewUnknownStrategyError(name string, known []string) *UnknownStrategyError {
	return &UnknownStrategyError{Name: name, Known: known}
}

// UnknownTagError represents a record referencing a tag absent from the
// taxonomy; this indicates upstream data drift and must be surfaced rather
// than silently dropped
type UnknownTagError struct {
	TagID    string
	RecordID string
}

func (e *UnknownTagError) Error() string {
	if e.RecordID != "" {
		return fmt.Sprintf("record '%s' references unknown tag '%s'", e.RecordID, e.TagID)
	}
	return fmt.Sprintf("unknown tag '%s'", e.TagID)
}

func (e *UnknownTagError) Is(target error) bool {
	return target == ErrUnknownTag
}

// NewUnknownTagError creates a new UnknownTagError
func NewUnknownTagError(tagID string, recordID ...string) *UnknownTagError {
	err := &UnknownTagError{TagID: tagID}
	if len(recordID) > 0 {
		err.RecordID = recordID[0]
	}
	return err
}

// TagNotFoundError represents an internal taxonomy lookup miss with context
type TagNotFoundError struct {
	TagID string
}

func (e *TagNotFoundError) Error() string {
	return fmt.Sprintf("tag '%s' not found in taxonomy", e.TagID)
}

func (e *TagNotFoundError) Is(target error) bool {
	return target == ErrTagNotFound
}

// NewTagNotFoundError creates a new TagNotFoundError
func NewTagNotFoundError(tagID string) *TagNotFoundError {
	return &TagNotFoundError{TagID: tagID}
}

// InvalidTaxonomyError represents a taxonomy declaration that violates its
// invariants, with the full list of problems found
type InvalidTaxonomyError struct {
	Problems []string
}

func (e *InvalidTaxonomyError) Error() string {
	return fmt.Sprintf("invalid taxonomy: %s", strings.Join(e.Problems, "; "))
}

func (e *InvalidTaxonomyError) Is(target error) bool {
	return target == ErrInvalidTaxonomy
}

// NewInvalidTaxonomyError creates a new InvalidTaxonomyError
func NewInvalidTaxonomyError(problems []string) *InvalidTaxonomyError {
	return &InvalidTaxonomyError{Problems: problems}
}

// ExperimentNotFoundError represents an experiment not found error with context
type ExperimentNotFoundError struct {
	ExperimentID string
}

func (e *ExperimentNotFoundError) Error() string {
	return fmt.Sprintf("experiment with ID '%s' not found", e.ExperimentID)
}

func (e *ExperimentNotFoundError) Is(target error) bool {
	return target == ErrExperimentNotFound
}

// NewExperimentNotFoundError creates a new ExperimentNotFoundError
func NewExperimentNotFoundError(experimentID string) *ExperimentNotFoundError {
	return &ExperimentNotFoundError{ExperimentID: experimentID}
}

// JobNotFoundError represents a job not found error with context
type JobNotFoundError struct {
	JobID string
}

func (e *JobNotFoundError) Error() string {
	return fmt.Sprintf("job with ID '%s' not found", e.JobID)
}

func (e *JobNotFoundError) Is(target error) bool {
	return target == ErrJobNotFound
}

// NewJobNotFoundError creates a new JobNotFoundError
func NewJobNotFoundError(jobID string) *JobNotFoundError {
	return &JobNotFoundError{JobID: jobID}
}
