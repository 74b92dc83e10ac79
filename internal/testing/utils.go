// Package testing provides shared fixtures and helpers for testing the
// tag merge service.
package testing

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linguadata/tagmerge/model"
	"github.com/linguadata/tagmerge/services"
)

// SampleRecords returns n annotated sentence records covering the
// high-frequency tags of the built-in taxonomy.
func SampleRecords(n int) []model.SentenceRecord {
	records := make([]model.SentenceRecord, 0, n)
	for i := 0; i < n; i++ {
		records = append(records, model.SentenceRecord{
			ID:       fmt.Sprintf("rec-%d", i),
			Sentence: fmt.Sprintf("She walked to station number %d.", i),
			Annotations: []model.TagAnnotation{
				{
					TagID:  "verb_tense",
					Detail: "simple past",
					Words:  []model.AnnotatedWord{{Word: "walked", Index: 1, PartOfSpeech: "VERB"}},
				},
				{
					TagID:  "prepositions",
					Detail: "preposition of place",
					Words:  []model.AnnotatedWord{{Word: "to", Index: 2, PartOfSpeech: "ADP"}},
				},
			},
		})
	}
	return records
}

// JobPollingOptions configures job polling behavior
type JobPollingOptions struct {
	Timeout      time.Duration
	PollInterval time.Duration
	LogProgress  bool
}

// DefaultJobPollingOptions returns sensible defaults for job polling
func DefaultJobPollingOptions() JobPollingOptions {
	return JobPollingOptions{
		Timeout:      10 * time.Second,
		PollInterval: 20 * time.Millisecond,
		LogProgress:  true,
	}
}

// WaitForJobCompletion polls a job until it completes or times out
func WaitForJobCompletion(t *testing.T, jobManager services.JobManager, jobID string, opts JobPollingOptions) *model.Job {
	timeout := time.After(opts.Timeout)
	ticker := time.NewTicker(opts.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-timeout:
			t.Fatalf("Job %s did not complete within %v timeout", jobID, opts.Timeout)
		case <-ticker.C:
			job, err := jobManager.GetJob(jobID)
			require.NoError(t, err, "Failed to get job status")

			switch job.Status {
			case model.JobStatusCompleted:
				if opts.LogProgress {
					t.Logf("Job %s completed successfully in %v", jobID, job.CompletedAt.Sub(job.CreatedAt))
				}
				return job
			case model.JobStatusFailed:
				t.Fatalf("Job %s failed: %s", jobID, job.Error)
			case model.JobStatusRunning:
				if opts.LogProgress && job.Progress != nil {
					t.Logf("Job %s progress: %d/%d - %s",
						jobID,
						job.Progress.Current,
						job.Progress.Total,
						job.Progress.Message)
				}
			}
		}
	}
}

// AssertJobCompleted verifies that a job completed successfully
func AssertJobCompleted(t *testing.T, job *model.Job, expectedType model.JobType, expectedExperiment string) {
	assert.Equal(t, model.JobStatusCompleted, job.Status, "Job should be completed")
	assert.Equal(t, expectedType, job.Type, "Job type should match")
	assert.Equal(t, expectedExperiment, job.ExperimentID, "Job experiment should match")
	assert.NotNil(t, job.CompletedAt, "Job should have completion timestamp")
	assert.Empty(t, job.Error, "Job should not have error")
}
