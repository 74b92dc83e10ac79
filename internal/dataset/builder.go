// Package dataset turns relabeled sentence records into fine-tuning
// datasets: chat-format training examples, a seeded shuffle, and
// train/valid/test JSONL files.
package dataset

import (
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"

	"github.com/linguadata/tagmerge/internal/assign"
	"github.com/linguadata/tagmerge/model"
)

const (
	DefaultTrainRatio = 0.8
	DefaultValidRatio = 0.15
	DefaultSeed       = 42

	TrainFileName = "train.jsonl"
	ValidFileName = "valid.jsonl"
	TestFileName  = "test_local.jsonl"
)

// Message is one turn of a chat-format training example.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// TrainingExample is a single fine-tuning example in the chat format
// expected by OpenAI-style fine-tuning APIs.
type TrainingExample struct {
	Messages []Message `json:"messages"`
}

// Options control how a dataset build shuffles and splits its examples.
type Options struct {
	TrainRatio float64
	ValidRatio float64
	Seed       int64

	// Progress, when set, is called with (processed, total) as records
	// are converted. Used by the job manager to report progress.
	Progress func(current, total int)
}

// ApplyDefaults fills zero-valued options with the standard split.
func (o *Options) ApplyDefaults() {
	if o.TrainRatio == 0 {
		o.TrainRatio = DefaultTrainRatio
	}
	if o.ValidRatio == 0 {
		o.ValidRatio = DefaultValidRatio
	}
	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}
}

func (o Options) validate() error {
	if o.TrainRatio <= 0 || o.ValidRatio < 0 || o.TrainRatio+o.ValidRatio >= 1 {
		return fmt.Errorf("invalid split ratios: train=%.2f valid=%.2f (must leave room for a test set)", o.TrainRatio, o.ValidRatio)
	}
	return nil
}

// Split holds the three portions of a built dataset.
type Split struct {
	Train []TrainingExample
	Valid []TrainingExample
	Test  []TrainingExample
}

// Stats summarizes a dataset build for the experiment record.
type Stats struct {
	TotalExamples  int            `json:"total_examples"`
	TrainExamples  int            `json:"train_examples"`
	ValidExamples  int            `json:"valid_examples"`
	TestExamples   int            `json:"test_examples"`
	SkippedRecords int            `json:"skipped_records"`
	CategoryCounts map[string]int `json:"category_counts"`
	Strategy       string         `json:"strategy"`
	Seed           int64          `json:"seed"`
}

// Builder converts annotated sentence records into training examples
// under a fixed strategy.
type Builder struct {
	strategy *model.Strategy
}

// NewBuilder creates a builder for the given strategy.
func NewBuilder(strategy *model.Strategy) *Builder {
	return &Builder{strategy: strategy}
}

// Build relabels the records, converts them to chat-format examples,
// shuffles them with the configured seed and splits them into
// train/valid/test portions. Records that cannot be relabeled or that
// produce empty analysis strings are skipped and counted, never fatal.
func (b *Builder) Build(records []model.SentenceRecord, opts Options) (Split, Stats, error) {
	opts.ApplyDefaults()
	if err := opts.validate(); err != nil {
		return Split{}, Stats{}, err
	}

	result := assign.ApplyAll(b.strategy, records)

	stats := Stats{
		SkippedRecords: len(result.Skipped),
		CategoryCounts: make(map[string]int),
		Strategy:       b.strategy.Name,
		Seed:           opts.Seed,
	}

	examples := make([]TrainingExample, 0, len(result.Records))
	for i, rec := range result.Records {
		example, ok := formatExample(rec)
		if !ok {
			stats.SkippedRecords++
			continue
		}
		examples = append(examples, example)
		for _, ann := range rec.Annotations {
			stats.CategoryCounts[ann.Category]++
		}
		if opts.Progress != nil {
			opts.Progress(i+1, len(result.Records))
		}
	}

	if len(examples) == 0 {
		return Split{}, stats, fmt.Errorf("no valid training examples produced (%d records skipped)", stats.SkippedRecords)
	}

	// Same seed, same record order, same dataset.
	rng := rand.New(rand.NewSource(opts.Seed))
	rng.Shuffle(len(examples), func(i, j int) {
		examples[i], examples[j] = examples[j], examples[i]
	})

	trainEnd := int(float64(len(examples)) * opts.TrainRatio)
	validEnd := int(float64(len(examples)) * (opts.TrainRatio + opts.ValidRatio))

	split := Split{
		Train: examples[:trainEnd],
		Valid: examples[trainEnd:validEnd],
		Test:  examples[validEnd:],
	}

	stats.TotalExamples = len(examples)
	stats.TrainExamples = len(split.Train)
	stats.ValidExamples = len(split.Valid)
	stats.TestExamples = len(split.Test)

	log.Printf("Built dataset for strategy '%s': %d examples (train=%d valid=%d test=%d, skipped=%d)",
		b.strategy.Name, stats.TotalExamples, stats.TrainExamples, stats.ValidExamples, stats.TestExamples, stats.SkippedRecords)

	return split, stats, nil
}

// analysis is the assistant-side payload. Field order matters for
// byte-stable output.
type analysis struct {
	Chunks           string `json:"chunks"`
	POSTags          string `json:"pos_tags"`
	GrammaticalRoles string `json:"grammatical_roles"`
}

func formatExample(rec model.LabeledRecord) (TrainingExample, bool) {
	if rec.Sentence == "" || rec.Chunks == "" || rec.POSTags == "" || rec.Roles == "" {
		return TrainingExample{}, false
	}

	payload, err := json.Marshal(analysis{
		Chunks:           rec.Chunks,
		POSTags:          rec.POSTags,
		GrammaticalRoles: rec.Roles,
	})
	if err != nil {
		return TrainingExample{}, false
	}

	return TrainingExample{
		Messages: []Message{
			{Role: "user", Content: "Analyze this sentence syntactically: " + rec.Sentence},
			{Role: "assistant", Content: string(payload)},
		},
	}, true
}

// WriteSplit writes the three portions as JSONL files under dir and
// returns the file paths keyed by portion name.
func WriteSplit(dir string, split Split) (map[string]string, error) {
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create dataset directory: %w", err)
	}

	paths := map[string]string{
		"train": filepath.Join(dir, TrainFileName),
		"valid": filepath.Join(dir, ValidFileName),
		"test":  filepath.Join(dir, TestFileName),
	}

	portions := map[string][]TrainingExample{
		"train": split.Train,
		"valid": split.Valid,
		"test":  split.Test,
	}

	for name, examples := range portions {
		if err := writeJSONL(paths[name], examples); err != nil {
			return nil, err
		}
	}
	return paths, nil
}

func writeJSONL(path string, examples []TrainingExample) error {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	for _, example := range examples {
		if err := enc.Encode(example); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
	}
	return nil
}
