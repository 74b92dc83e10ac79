package api

import (
	"context"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/linguadata/tagmerge/internal/dataset"
	"github.com/linguadata/tagmerge/model"
	"github.com/linguadata/tagmerge/services"
)

// DatasetRequest asks for a full dataset build: relabel the records under
// a strategy, split them, and write the JSONL files.
type DatasetRequest struct {
	ExperimentName string                   `json:"experiment_name"`
	Description    string                   `json:"description,omitempty"`
	Strategy       services.StrategyRequest `json:"strategy"`
	Records        []model.SentenceRecord   `json:"records"`
	TrainRatio     float64                  `json:"train_ratio,omitempty"`
	ValidRatio     float64                  `json:"valid_ratio,omitempty"`
	Seed           int64                    `json:"seed,omitempty"`
}

// BuildDatasetHandler starts an asynchronous dataset build. It registers
// an experiment, kicks off a background job and returns both IDs so the
// caller can poll.
func (api *API) BuildDatasetHandler(c *gin.Context) {
	var req DatasetRequest
	if result := ValidateJSONBinding(c, &req); result.HasErrors() {
		SendValidationError(c, result)
		return
	}

	if result := ValidateDatasetRequest(&req); result.HasErrors() {
		SendValidationError(c, result)
		return
	}

	resolved, err := api.resolveStrategy(req.Strategy)
	if err != nil {
		SendDomainError(c, "dataset build", err)
		return
	}

	experiment, err := api.experiments.Create(model.Experiment{
		Name:        req.ExperimentName,
		Description: req.Description,
		Strategy:    resolved.Name,
		Categories:  resolved.LabelCount(),
	})
	if err != nil {
		SendInternalError(c, "experiment creation", err)
		return
	}

	jobID := api.jobs.CreateJob(model.JobTypeBuildDataset, experiment.ID, resolved.Name, map[string]string{
		"experiment_name": req.ExperimentName,
	})

	records := req.Records
	opts := dataset.Options{
		TrainRatio: req.TrainRatio,
		ValidRatio: req.ValidRatio,
		Seed:       req.Seed,
	}

	err = api.jobs.ExecuteJob(jobID, func(ctx context.Context, job *model.Job) error {
		opts.Progress = func(current, total int) {
			api.jobs.UpdateJobProgress(job.ID, current, total, "converting records")
		}

		builder := dataset.NewBuilder(resolved)
		split, stats, buildErr := builder.Build(records, opts)
		if buildErr != nil {
			_ = api.experiments.UpdateStatus(experiment.ID, model.ExperimentStatusFailed, map[string]interface{}{
				"error": buildErr.Error(),
			})
			return buildErr
		}

		outputDir := filepath.Join(api.settings.DataDir, "datasets", experiment.ID)
		paths, writeErr := dataset.WriteSplit(outputDir, split)
		if writeErr != nil {
			_ = api.experiments.UpdateStatus(experiment.ID, model.ExperimentStatusFailed, map[string]interface{}{
				"error": writeErr.Error(),
			})
			return writeErr
		}

		return api.experiments.UpdateStatus(experiment.ID, model.ExperimentStatusDatasetReady, map[string]interface{}{
			"total_examples": stats.TotalExamples,
			"train_examples": stats.TrainExamples,
			"valid_examples": stats.ValidExamples,
			"test_examples":  stats.TestExamples,
			"skipped":        stats.SkippedRecords,
			"categories":     stats.CategoryCounts,
			"seed":           stats.Seed,
			"files":          paths,
		})
	})
	if err != nil {
		SendJobExecutionError(c, "dataset build", err)
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"status":        "accepted",
		"message":       "Dataset build started for experiment '" + req.ExperimentName + "'",
		"job_id":        jobID,
		"experiment_id": experiment.ID,
		"strategy":      resolved.Name,
	})
}
