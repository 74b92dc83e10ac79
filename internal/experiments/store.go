// Package experiments keeps the bookkeeping for fine-tuning data
// preparation runs: which strategy was applied, with what outcome.
package experiments

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/linguadata/tagmerge/internal/errors"
	"github.com/linguadata/tagmerge/internal/persistence"
	"github.com/linguadata/tagmerge/model"
)

// FileStore is a file-backed experiment store. Experiments are held in
// memory and mirrored to a JSON file on every mutation; a failed save
// rolls the in-memory change back.
type FileStore struct {
	mu           sync.RWMutex
	experiments  map[string]model.Experiment
	dataFilePath string
}

// NewFileStore creates a store backed by <dataDir>/experiments.json,
// loading any existing data.
func NewFileStore(dataDir string) *FileStore {
	store := &FileStore{
		experiments:  make(map[string]model.Experiment),
		dataFilePath: filepath.Join(dataDir, "experiments.json"),
	}

	if err := store.loadData(); err != nil {
		if !os.IsNotExist(err) {
			fmt.Printf("Warning: Failed to load experiments data: %v\n", err)
		}
	}

	return store
}

// Create registers a new experiment. A missing ID is generated; the status
// starts as pending.
func (s *FileStore) Create(exp model.Experiment) (model.Experiment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if exp.ID == "" {
		exp.ID = uuid.New().String()
	}
	if _, exists := s.experiments[exp.ID]; exists {
		return model.Experiment{}, fmt.Errorf("experiment with ID %s already exists", exp.ID)
	}
	if exp.Name == "" {
		return model.Experiment{}, fmt.Errorf("experiment name cannot be empty")
	}
	if exp.Strategy == "" {
		return model.Experiment{}, fmt.Errorf("experiment strategy cannot be empty")
	}

	now := time.Now()
	exp.CreatedAt = now
	exp.UpdatedAt = now
	if exp.Status == "" {
		exp.Status = model.ExperimentStatusPending
	}

	s.experiments[exp.ID] = exp

	if err := s.saveData(); err != nil {
		delete(s.experiments, exp.ID)
		return model.Experiment{}, fmt.Errorf("failed to persist experiment: %w", err)
	}

	return exp, nil
}

// Get retrieves an experiment by ID.
func (s *FileStore) Get(id string) (model.Experiment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	exp, exists := s.experiments[id]
	if !exists {
		return model.Experiment{}, errors.NewExperimentNotFoundError(id)
	}
	return exp, nil
}

// List returns all experiments, newest first.
func (s *FileStore) List() []model.Experiment {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := make([]model.Experiment, 0, len(s.experiments))
	for _, exp := range s.experiments {
		all = append(all, exp)
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})
	return all
}

// UpdateStatus transitions an experiment to a new status, merging the given
// results into its payload.
func (s *FileStore) UpdateStatus(id string, status model.ExperimentStatus, results map[string]interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, exists := s.experiments[id]
	if !exists {
		return errors.NewExperimentNotFoundError(id)
	}

	updated := existing
	updated.Status = status
	updated.UpdatedAt = time.Now()
	if len(results) > 0 {
		if updated.Results == nil {
			updated.Results = make(map[string]interface{}, len(results))
		} else {
			merged := make(map[string]interface{}, len(updated.Results)+len(results))
			for k, v := range updated.Results {
				merged[k] = v
			}
			updated.Results = merged
		}
		for k, v := range results {
			updated.Results[k] = v
		}
	}

	s.experiments[id] = updated

	if err := s.saveData(); err != nil {
		s.experiments[id] = existing
		return fmt.Errorf("failed to persist experiment update: %w", err)
	}

	return nil
}

func (s *FileStore) loadData() error {
	var all []model.Experiment
	if err := persistence.LoadJSON(s.dataFilePath, &all); err != nil {
		return err
	}

	s.experiments = make(map[string]model.Experiment, len(all))
	for _, exp := range all {
		s.experiments[exp.ID] = exp
	}
	return nil
}

func (s *FileStore) saveData() error {
	all := make([]model.Experiment, 0, len(s.experiments))
	for _, exp := range s.experiments {
		all = append(all, exp)
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].CreatedAt.Before(all[j].CreatedAt)
	})
	return persistence.SaveJSON(s.dataFilePath, all)
}
