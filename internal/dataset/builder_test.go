package dataset

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linguadata/tagmerge/model"
)

func testStrategy() *model.Strategy {
	return &model.Strategy{
		Name:   "test_pair",
		Source: model.StrategySourcePreset,
		Partition: model.Partition{
			Categories: []model.Category{
				{ID: "prepositions", Name: "prepositions", Members: []string{"prepositions"}},
				{ID: "verb_tense", Name: "verbs", Members: []string{"verb_tense"}},
			},
		},
	}
}

func makeRecords(n int) []model.SentenceRecord {
	records := make([]model.SentenceRecord, 0, n)
	for i := 0; i < n; i++ {
		records = append(records, model.SentenceRecord{
			ID:       fmt.Sprintf("rec-%d", i),
			Sentence: fmt.Sprintf("The cat sat on mat number %d.", i),
			Annotations: []model.TagAnnotation{
				{
					TagID:  "prepositions",
					Detail: "preposition of place",
					Words:  []model.AnnotatedWord{{Word: "on", Index: 3, PartOfSpeech: "ADP"}},
				},
				{
					TagID:  "verb_tense",
					Detail: "simple past",
					Words:  []model.AnnotatedWord{{Word: "sat", Index: 2, PartOfSpeech: "VERB"}},
				},
			},
		})
	}
	return records
}

func TestBuildSplitSizes(t *testing.T) {
	builder := NewBuilder(testStrategy())

	split, stats, err := builder.Build(makeRecords(20), Options{})
	require.NoError(t, err)

	assert.Equal(t, 20, stats.TotalExamples)
	assert.Equal(t, 16, stats.TrainExamples)
	assert.Equal(t, 3, stats.ValidExamples)
	assert.Equal(t, 1, stats.TestExamples)
	assert.Equal(t, 0, stats.SkippedRecords)
	assert.Len(t, split.Train, 16)
	assert.Len(t, split.Valid, 3)
	assert.Len(t, split.Test, 1)

	assert.Equal(t, 20, stats.CategoryCounts["prepositions"])
	assert.Equal(t, 20, stats.CategoryCounts["verbs"])
	assert.Equal(t, int64(DefaultSeed), stats.Seed)
}

func TestBuildDeterminism(t *testing.T) {
	records := makeRecords(30)

	first, _, err := NewBuilder(testStrategy()).Build(records, Options{Seed: 7})
	require.NoError(t, err)
	second, _, err := NewBuilder(testStrategy()).Build(records, Options{Seed: 7})
	require.NoError(t, err)

	assert.Equal(t, first, second, "same seed and input must produce the same split")
}

func TestBuildExampleFormat(t *testing.T) {
	builder := NewBuilder(testStrategy())

	split, _, err := builder.Build(makeRecords(1), Options{})
	require.NoError(t, err)
	require.Len(t, split.Test, 1)

	example := split.Test[0]
	require.Len(t, example.Messages, 2)
	assert.Equal(t, "user", example.Messages[0].Role)
	assert.Equal(t, "Analyze this sentence syntactically: The cat sat on mat number 0.", example.Messages[0].Content)

	assert.Equal(t, "assistant", example.Messages[1].Role)
	var payload map[string]string
	require.NoError(t, json.Unmarshal([]byte(example.Messages[1].Content), &payload))
	assert.Contains(t, payload, "chunks")
	assert.Contains(t, payload, "pos_tags")
	assert.Contains(t, payload, "grammatical_roles")
	assert.NotEmpty(t, payload["chunks"])
}

func TestBuildSkipsBadRecords(t *testing.T) {
	records := makeRecords(10)
	records = append(records,
		model.SentenceRecord{
			ID:       "rec-unknown",
			Sentence: "This one uses a tag outside the taxonomy.",
			Annotations: []model.TagAnnotation{
				{TagID: "made_up_tag", Words: []model.AnnotatedWord{{Word: "this", Index: 0, PartOfSpeech: "DET"}}},
			},
		},
		model.SentenceRecord{
			ID:       "rec-empty",
			Sentence: "No annotations at all.",
		},
	)

	_, stats, err := NewBuilder(testStrategy()).Build(records, Options{})
	require.NoError(t, err)

	assert.Equal(t, 10, stats.TotalExamples)
	assert.Equal(t, 2, stats.SkippedRecords)
}

func TestBuildNoValidExamples(t *testing.T) {
	records := []model.SentenceRecord{
		{ID: "only-bad", Sentence: "x", Annotations: []model.TagAnnotation{{TagID: "nope"}}},
	}

	_, stats, err := NewBuilder(testStrategy()).Build(records, Options{})
	assert.Error(t, err)
	assert.Equal(t, 1, stats.SkippedRecords)
}

func TestBuildInvalidRatios(t *testing.T) {
	_, _, err := NewBuilder(testStrategy()).Build(makeRecords(5), Options{TrainRatio: 0.9, ValidRatio: 0.2})
	assert.Error(t, err)
}

func TestBuildProgressCallback(t *testing.T) {
	var calls int
	var lastCurrent, lastTotal int

	_, _, err := NewBuilder(testStrategy()).Build(makeRecords(8), Options{
		Progress: func(current, total int) {
			calls++
			lastCurrent, lastTotal = current, total
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 8, calls)
	assert.Equal(t, 8, lastCurrent)
	assert.Equal(t, 8, lastTotal)
}

func TestWriteSplit(t *testing.T) {
	builder := NewBuilder(testStrategy())
	split, _, err := builder.Build(makeRecords(20), Options{})
	require.NoError(t, err)

	dir := t.TempDir()
	paths, err := WriteSplit(dir, split)
	require.NoError(t, err)
	require.Len(t, paths, 3)

	counts := map[string]int{"train": 16, "valid": 3, "test": 1}
	for name, want := range counts {
		file, err := os.Open(paths[name])
		require.NoError(t, err)

		lines := 0
		scanner := bufio.NewScanner(file)
		for scanner.Scan() {
			var example TrainingExample
			require.NoError(t, json.Unmarshal(scanner.Bytes(), &example), "each line must be a valid example")
			lines++
		}
		require.NoError(t, scanner.Err())
		file.Close()

		assert.Equal(t, want, lines, "portion %s", name)
	}
}
