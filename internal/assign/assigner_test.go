package assign

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linguadata/tagmerge/config"
	apperrors "github.com/linguadata/tagmerge/internal/errors"
	"github.com/linguadata/tagmerge/internal/merge"
	"github.com/linguadata/tagmerge/internal/strategy"
	"github.com/linguadata/tagmerge/internal/taxonomy"
	"github.com/linguadata/tagmerge/model"
)

func newTestStrategy(t *testing.T, req strategy.Request) *model.Strategy {
	t.Helper()
	reg, err := taxonomy.NewRegistry(config.DefaultTaxonomy().Tags)
	require.NoError(t, err)
	resolver := strategy.NewResolver(reg, merge.NewEngine(reg))
	resolved, err := resolver.Resolve(req)
	require.NoError(t, err)
	return resolved
}

func sampleRecord() model.SentenceRecord {
	return model.SentenceRecord{
		ID:       "rec-1",
		Sentence: "She has finished the report after lunch.",
		Annotations: []model.TagAnnotation{
			{
				TagID:  "verb_tense",
				Detail: "present perfect",
				Words: []model.AnnotatedWord{
					{Word: "has", Index: 1, PartOfSpeech: "AUX"},
					{Word: "finished", Index: 2, PartOfSpeech: "VERB"},
				},
			},
			{
				TagID:  "prepositions",
				Detail: "preposition of time",
				Words: []model.AnnotatedWord{
					{Word: "after", Index: 5, PartOfSpeech: "ADP"},
				},
			},
		},
		Metadata: map[string]string{"source": "textbook"},
	}
}

func TestApplyRelabelsAnnotations(t *testing.T) {
	resolved := newTestStrategy(t, strategy.Request{Preset: strategy.PresetSimplified})

	labeled, err := Apply(resolved, sampleRecord())
	require.NoError(t, err)

	require.Len(t, labeled.Annotations, 2)
	assert.Equal(t, "verbs", labeled.Annotations[0].Category)
	assert.Equal(t, "verb_tense", labeled.Annotations[0].TagID, "original tag kept for audit")
	assert.Equal(t, "prepositions", labeled.Annotations[1].Category)

	assert.Equal(t, "[verbs has finished] [prepositions after]", labeled.Chunks)
	assert.Equal(t, "AUX VERB ADP", labeled.POSTags)
	assert.Equal(t, "verbs:present perfect | prepositions:preposition of time", labeled.Roles)

	// Non-tag fields pass through unchanged.
	assert.Equal(t, "rec-1", labeled.ID)
	assert.Equal(t, "She has finished the report after lunch.", labeled.Sentence)
	assert.Equal(t, map[string]string{"source": "textbook"}, labeled.Metadata)
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	resolved := newTestStrategy(t, strategy.Request{Preset: strategy.PresetSimplified})
	rec := sampleRecord()

	labeled, err := Apply(resolved, rec)
	require.NoError(t, err)

	labeled.Annotations[0].Words[0].Word = "mutated"
	labeled.Metadata["source"] = "mutated"

	assert.Equal(t, "has", rec.Annotations[0].Words[0].Word, "input words must stay intact")
	assert.Equal(t, "textbook", rec.Metadata["source"], "input metadata must stay intact")
	assert.Equal(t, "verb_tense", rec.Annotations[0].TagID)
}

func TestApplyRefinements(t *testing.T) {
	resolved := newTestStrategy(t, strategy.Request{Preset: strategy.PresetDetailed})

	labeled, err := Apply(resolved, sampleRecord())
	require.NoError(t, err)

	// "present perfect" matches the past/perfect pattern before present,
	// in declaration order.
	assert.Equal(t, "verb_tense_past", labeled.Annotations[0].Category)
	assert.Equal(t, "prepositions_time", labeled.Annotations[1].Category)
}

func TestApplyUnknownTag(t *testing.T) {
	resolved := newTestStrategy(t, strategy.Request{Preset: strategy.PresetSimplified})

	rec := model.SentenceRecord{
		ID:       "rec-9",
		Sentence: "Unknown things happen.",
		Annotations: []model.TagAnnotation{
			{TagID: "gerunds", Detail: "not in taxonomy"},
		},
	}

	_, err := Apply(resolved, rec)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrUnknownTag))

	var unknown *apperrors.UnknownTagError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, "gerunds", unknown.TagID)
	assert.Equal(t, "rec-9", unknown.RecordID)
}

func TestApplyAllSkipsBadRecords(t *testing.T) {
	resolved := newTestStrategy(t, strategy.Request{Categories: 5})

	records := []model.SentenceRecord{
		sampleRecord(),
		{
			ID:          "rec-bad",
			Sentence:    "Bad record.",
			Annotations: []model.TagAnnotation{{TagID: "gerunds"}},
		},
		{
			ID:       "rec-3",
			Sentence: "They arrived because of the rain.",
			Annotations: []model.TagAnnotation{
				{TagID: "connectives", Detail: "causal connective", Words: []model.AnnotatedWord{{Word: "because", Index: 2, PartOfSpeech: "SCONJ"}}},
			},
		},
	}

	result := ApplyAll(resolved, records)

	require.Len(t, result.Records, 2)
	require.Len(t, result.Skipped, 1)

	assert.Equal(t, "rec-1", result.Records[0].ID, "output keeps input order")
	assert.Equal(t, "rec-3", result.Records[1].ID)
	assert.Equal(t, 1, result.Skipped[0].Index)
	assert.Equal(t, "rec-bad", result.Skipped[0].RecordID)
	assert.Contains(t, result.Skipped[0].Reason, "gerunds")
}

func TestApplyAllDeterministicUnderConcurrency(t *testing.T) {
	resolved := newTestStrategy(t, strategy.Request{Preset: strategy.PresetFrequencyBased})

	records := make([]model.SentenceRecord, 50)
	for i := range records {
		records[i] = sampleRecord()
		records[i].ID = ""
	}

	first := ApplyAll(resolved, records)
	second := ApplyAll(resolved, records)

	require.Len(t, first.Records, 50)
	assert.Equal(t, first, second, "parallel batches must produce identical output")
}
