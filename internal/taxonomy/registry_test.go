package taxonomy

import (
	"errors"
	"testing"

	apperrors "github.com/linguadata/tagmerge/internal/errors"
	"github.com/linguadata/tagmerge/model"
)

func validTags() []model.Tag {
	return []model.Tag{
		{ID: "prepositions", Tier: model.TierHigh, Group: model.GroupPrepositions},
		{ID: "verb_tense", Tier: model.TierHigh, Group: model.GroupVerbs},
		{ID: "verb_voice", Tier: model.TierLow, Group: model.GroupVerbs},
		{ID: "connectives", Tier: model.TierLow, Group: model.GroupConnectors},
	}
}

func TestNewRegistry(t *testing.T) {
	reg, err := NewRegistry(validTags())
	if err != nil {
		t.Fatalf("Failed to build registry: %v", err)
	}

	if reg.Size() != 4 {
		t.Errorf("Expected 4 tags, got %d", reg.Size())
	}

	tier, err := reg.FrequencyTier("verb_voice")
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if tier != model.TierLow {
		t.Errorf("Expected tier 'low', got '%s'", tier)
	}

	group, err := reg.SemanticGroup("connectives")
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if group != model.GroupConnectors {
		t.Errorf("Expected group 'connectors', got '%s'", group)
	}
}

func TestNewRegistryRejectsInvalidDeclarations(t *testing.T) {
	tests := []struct {
		name string
		tags []model.Tag
	}{
		{
			name: "empty taxonomy",
			tags: nil,
		},
		{
			name: "duplicate tag ID",
			tags: []model.Tag{
				{ID: "nouns", Tier: model.TierMedium, Group: model.GroupWords},
				{ID: "nouns", Tier: model.TierLow, Group: model.GroupWords},
			},
		},
		{
			name: "empty tag ID",
			tags: []model.Tag{
				{ID: "", Tier: model.TierLow, Group: model.GroupWords},
			},
		},
		{
			name: "unknown tier",
			tags: []model.Tag{
				{ID: "nouns", Tier: "huge", Group: model.GroupWords},
			},
		},
		{
			name: "unknown semantic group",
			tags: []model.Tag{
				{ID: "nouns", Tier: model.TierLow, Group: "nounlike"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRegistry(tt.tags)
			if err == nil {
				t.Fatal("Expected an error, got nil")
			}
			if !errors.Is(err, apperrors.ErrInvalidTaxonomy) {
				t.Errorf("Expected ErrInvalidTaxonomy, got %v", err)
			}
		})
	}
}

func TestTagLookupMiss(t *testing.T) {
	reg, err := NewRegistry(validTags())
	if err != nil {
		t.Fatalf("Failed to build registry: %v", err)
	}

	_, err = reg.Tag("gerunds")
	if err == nil {
		t.Fatal("Expected an error for unknown tag, got nil")
	}
	if !errors.Is(err, apperrors.ErrTagNotFound) {
		t.Errorf("Expected ErrTagNotFound, got %v", err)
	}

	if reg.Contains("gerunds") {
		t.Error("Contains should report false for unknown tag")
	}
	if !reg.Contains("prepositions") {
		t.Error("Contains should report true for declared tag")
	}
}

func TestTagsReturnsCopy(t *testing.T) {
	reg, err := NewRegistry(validTags())
	if err != nil {
		t.Fatalf("Failed to build registry: %v", err)
	}

	tags := reg.Tags()
	tags[0].ID = "mutated"

	fresh := reg.Tags()
	if fresh[0].ID != "prepositions" {
		t.Error("Mutating the returned slice must not affect the registry")
	}
}

func TestIDsSorted(t *testing.T) {
	reg, err := NewRegistry(validTags())
	if err != nil {
		t.Fatalf("Failed to build registry: %v", err)
	}

	ids := reg.IDs()
	expected := []string{"connectives", "prepositions", "verb_tense", "verb_voice"}
	if len(ids) != len(expected) {
		t.Fatalf("Expected %d IDs, got %d", len(expected), len(ids))
	}
	for i, id := range expected {
		if ids[i] != id {
			t.Errorf("Expected ID '%s' at position %d, got '%s'", id, i, ids[i])
		}
	}
}
