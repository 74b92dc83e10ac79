package model

import "time"

// ExperimentStatus tracks an experiment through its lifecycle.
type ExperimentStatus string

const (
	ExperimentStatusPending      ExperimentStatus = "pending"
	ExperimentStatusDatasetReady ExperimentStatus = "dataset_ready"
	ExperimentStatusCompleted    ExperimentStatus = "completed"
	ExperimentStatusFailed       ExperimentStatus = "failed"
)

// Experiment records one fine-tuning data preparation run: which strategy
// was applied, when, and what came out of it. Results is an opaque payload
// written by the dataset builder (counts, split sizes, file paths).
type Experiment struct {
	ID          string                 `json:"id"`
	Name        string                 `json:"name"`
	Strategy    string                 `json:"strategy"`
	Categories  int                    `json:"categories"`
	Status      ExperimentStatus       `json:"status"`
	Description string                 `json:"description,omitempty"`
	Results     map[string]interface{} `json:"results,omitempty"`
	CreatedAt   time.Time              `json:"created_at"`
	UpdatedAt   time.Time              `json:"updated_at"`
}
