package services

import (
	"github.com/linguadata/tagmerge/model"
)

// StrategyRequest asks for a strategy either by preset name or by a target
// category count. Exactly one of the two fields should be set; Preset wins
// when both are.
type StrategyRequest struct {
	Preset     string `json:"preset,omitempty"`
	Categories int    `json:"categories,omitempty"`
}

// StrategyInfo is the catalog entry for a known preset.
type StrategyInfo struct {
	Name        string `json:"name"`
	Version     string `json:"version,omitempty"`
	Description string `json:"description,omitempty"`
	Categories  int    `json:"categories"`
}

// TaxonomyReader exposes the immutable tag catalog.
type TaxonomyReader interface {
	Tags() []model.Tag
	IDs() []string
	Size() int
	Contains(id string) bool
	Tag(id string) (model.Tag, error)
}

// PartitionComputer produces category partitions at a requested
// granularity. Implementations must be deterministic: the same taxonomy
// and the same count always yield the same partition.
type PartitionComputer interface {
	ComputePartition(targetCount int) (model.Partition, error)
}

// StrategyProvider resolves named presets and dynamic category counts
// into concrete strategies.
type StrategyProvider interface {
	ResolvePreset(name string) (*model.Strategy, error)
	ResolveCount(count int) (*model.Strategy, error)
	Known() []string
	List() []StrategyInfo
	Export(s *model.Strategy) ([]byte, error)
}

// ExperimentStore manages the lifecycle of data preparation experiments.
type ExperimentStore interface {
	Create(exp model.Experiment) (model.Experiment, error)
	Get(id string) (model.Experiment, error)
	List() []model.Experiment
	UpdateStatus(id string, status model.ExperimentStatus, results map[string]interface{}) error
}

// JobManager defines operations for tracking background jobs.
type JobManager interface {
	GetJob(jobID string) (*model.Job, error)
	ListJobs(experimentID string, status *model.JobStatus) []*model.Job
}
