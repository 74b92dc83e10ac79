package strategy

import (
	"sort"

	"github.com/linguadata/tagmerge/internal/taxonomy"
	"github.com/linguadata/tagmerge/model"
)

// Preset names bound to fixed configurations.
const (
	PresetBaseline       = "baseline"
	PresetSimplified     = "simplified"
	PresetDetailed       = "detailed"
	PresetFrequencyBased = "frequency_based"
)

// builtinPresets returns the hand-authored preset strategies. The baseline
// preset is derived from the taxonomy itself (one category per tag); the
// others are fixed literals curated for the built-in grammar taxonomy and
// are dropped at load time if they do not cover the configured one.
func builtinPresets(reg *taxonomy.Registry) []*model.Strategy {
	return []*model.Strategy{
		baselinePreset(reg),
		simplifiedPreset(),
		detailedPreset(reg),
		frequencyBasedPreset(),
	}
}

// baselinePreset keeps every tag as its own category under its own name.
func baselinePreset(reg *taxonomy.Registry) *model.Strategy {
	tags := reg.Tags()
	categories := make([]model.Category, 0, len(tags))
	for _, tag := range tags {
		categories = append(categories, model.Category{
			ID:      tag.ID,
			Name:    tag.ID,
			Members: []string{tag.ID},
		})
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i].ID < categories[j].ID })

	return &model.Strategy{
		Name:        PresetBaseline,
		Version:     "2.1",
		Description: "Original fine-grained tags, one category per tag",
		Source:      model.StrategySourcePreset,
		Categories:  len(categories),
		Partition:   model.Partition{Categories: categories},
	}
}

// simplifiedPreset collapses the taxonomy into 8 coarse semantic buckets.
func simplifiedPreset() *model.Strategy {
	partition := literalPartition(map[string][]string{
		"verbs":        {"verb_tense", "verb_voice", "auxiliary_verbs"},
		"connectors":   {"conjunctions", "connectives", "relative_clauses"},
		"prepositions": {"prepositions"},
		"structures":   {"sentence_forms", "syntax_patterns"},
		"words":        {"nouns", "verbals"},
		"phrases":      {"phrasal_verbs_idioms"},
		"modifiers":    {"negation", "comparatives"},
		"special":      {"interrogatives", "subjunctive", "inversion"},
	})

	return &model.Strategy{
		Name:        PresetSimplified,
		Version:     "1.3",
		Description: "Semantic-group buckets for coarse-grained classification",
		Source:      model.StrategySourcePreset,
		Categories:  partition.Size(),
		Partition:   partition,
	}
}

// detailedPreset keeps every base tag and splits the densest ones into
// subcategories via annotation-detail patterns, for 25 labels in total.
// Detail patterns are matched case-insensitively as substrings.
func detailedPreset(reg *taxonomy.Registry) *model.Strategy {
	base := baselinePreset(reg)

	refinements := []model.Refinement{
		{TagID: "verb_tense", Patterns: []string{"past", "perfect"}, Category: "verb_tense_past"},
		{TagID: "verb_tense", Patterns: []string{"present"}, Category: "verb_tense_present"},
		{TagID: "verb_tense", Patterns: []string{"future"}, Category: "verb_tense_future"},
		{TagID: "prepositions", Patterns: []string{"time", "temporal"}, Category: "prepositions_time"},
		{TagID: "prepositions", Patterns: []string{"place", "location"}, Category: "prepositions_place"},
		{TagID: "conjunctions", Patterns: []string{"subordinat"}, Category: "conjunctions_subordinating"},
		{TagID: "conjunctions", Patterns: []string{"coordinat"}, Category: "conjunctions_coordinating"},
		{TagID: "verbals", Patterns: []string{"gerund"}, Category: "verbals_gerund"},
	}

	strategy := &model.Strategy{
		Name:        PresetDetailed,
		Version:     "1.1",
		Description: "Expanded classification with pattern-refined subcategories",
		Source:      model.StrategySourcePreset,
		Partition:   base.Partition,
		Refinements: refinements,
	}
	strategy.Categories = strategy.LabelCount()
	return strategy
}

// frequencyBasedPreset keeps high- and medium-frequency tags distinct,
// folds the low-frequency tail into two buckets, and refines the most
// frequent tags by detail patterns, for 19 labels in total.
func frequencyBasedPreset() *model.Strategy {
	partition := literalPartition(map[string][]string{
		"prepositions":         {"prepositions"},
		"verb_tense":           {"verb_tense"},
		"conjunctions":         {"conjunctions"},
		"verbals":              {"verbals"},
		"syntax_patterns":      {"syntax_patterns"},
		"phrasal_verbs_idioms": {"phrasal_verbs_idioms"},
		"sentence_forms":       {"sentence_forms"},
		"auxiliary_verbs":      {"auxiliary_verbs"},
		"relative_clauses":     {"relative_clauses"},
		"nouns":                {"nouns"},
		"comparatives":         {"comparatives"},
		"special":              {"interrogatives", "subjunctive", "inversion"},
		"low_frequency":        {"negation", "verb_voice", "connectives"},
	})

	refinements := []model.Refinement{
		{TagID: "verb_tense", Patterns: []string{"past", "perfect"}, Category: "verb_tense_past"},
		{TagID: "verb_tense", Patterns: []string{"present"}, Category: "verb_tense_present"},
		{TagID: "verb_tense", Patterns: []string{"future"}, Category: "verb_tense_future"},
		{TagID: "prepositions", Patterns: []string{"time", "temporal"}, Category: "prepositions_time"},
		{TagID: "prepositions", Patterns: []string{"place", "location"}, Category: "prepositions_place"},
		{TagID: "conjunctions", Patterns: []string{"coordinat"}, Category: "conjunctions_coordinating"},
	}

	strategy := &model.Strategy{
		Name:        PresetFrequencyBased,
		Version:     "1.0",
		Description: "Frequency-weighted classification: common tags refined, rare tags pooled",
		Source:      model.StrategySourcePreset,
		Partition:   partition,
		Refinements: refinements,
	}
	strategy.Categories = strategy.LabelCount()
	return strategy
}

// literalPartition builds a partition from a name -> members literal,
// following the engine's conventions: category ID is the lexicographically
// smallest member, categories and members are sorted.
func literalPartition(groups map[string][]string) model.Partition {
	categories := make([]model.Category, 0, len(groups))
	for name, members := range groups {
		sorted := make([]string, len(members))
		copy(sorted, members)
		sort.Strings(sorted)

		categories = append(categories, model.Category{
			ID:      sorted[0],
			Name:    name,
			Members: sorted,
		})
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i].ID < categories[j].ID })
	return model.Partition{Categories: categories}
}
