package model

// FrequencyTier is a coarse corpus-frequency bucket for a grammar tag.
// Low-frequency tags are merged away first, so high-frequency tags stay
// distinguishable for as long as possible.
type FrequencyTier string

const (
	TierLow    FrequencyTier = "low"
	TierMedium FrequencyTier = "medium"
	TierHigh   FrequencyTier = "high"
)

// tierRanks orders tiers by merge priority (lowest merges first).
var tierRanks = map[FrequencyTier]int{
	TierLow:    0,
	TierMedium: 1,
	TierHigh:   2,
}

// Rank returns the merge-priority rank of the tier (low < medium < high).
func (t FrequencyTier) Rank() int {
	return tierRanks[t]
}

// Valid reports whether the tier is one of the declared constants.
func (t FrequencyTier) Valid() bool {
	_, ok := tierRanks[t]
	return ok
}

// SemanticGroup is a linguistic grouping used to keep merges meaningful:
// tags are only merged with tags of the same group until the group pool
// is exhausted.
type SemanticGroup string

const (
	GroupPrepositions SemanticGroup = "prepositions"
	GroupVerbs        SemanticGroup = "verbs"
	GroupConnectors   SemanticGroup = "connectors"
	GroupStructures   SemanticGroup = "structures"
	GroupWords        SemanticGroup = "words"
	GroupModifiers    SemanticGroup = "modifiers"
	GroupSpecial      SemanticGroup = "special"
)

// SemanticGroups lists every declared group in a fixed order.
func SemanticGroups() []SemanticGroup {
	return []SemanticGroup{
		GroupPrepositions,
		GroupVerbs,
		GroupConnectors,
		GroupStructures,
		GroupWords,
		GroupModifiers,
		GroupSpecial,
	}
}

// Valid reports whether the group is one of the declared constants.
func (g SemanticGroup) Valid() bool {
	for _, known := range SemanticGroups() {
		if g == known {
			return true
		}
	}
	return false
}

// Tag is a single fine-grained grammatical annotation unit in the taxonomy,
// e.g. "verb_tense". Tags are immutable: they are declared once at process
// start and never change afterwards.
type Tag struct {
	ID    string        `json:"id" yaml:"id"`
	Tier  FrequencyTier `json:"frequency_tier" yaml:"frequency_tier"`
	Group SemanticGroup `json:"semantic_group" yaml:"semantic_group"`
}
