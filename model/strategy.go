package model

// StrategySource says how a strategy's partition was produced.
type StrategySource string

const (
	// StrategySourcePreset marks a hand-authored, versioned preset.
	StrategySourcePreset StrategySource = "preset"
	// StrategySourceDynamic marks a partition computed by the merge engine
	// for an explicit target category count.
	StrategySourceDynamic StrategySource = "dynamic"
)

// Refinement is a hand-curated override carried by the wide presets
// ("detailed", "frequency_based"): annotations on TagID whose detail text
// contains one of the patterns (case-insensitive) are labeled with Category
// instead of the tag's base partition category. Refinements only add
// labels; the base partition still covers every tag.
type Refinement struct {
	TagID    string   `json:"tag_id" yaml:"tag_id"`
	Patterns []string `json:"patterns" yaml:"patterns"`
	Category string   `json:"category" yaml:"category"`
}

// Strategy is a resolved, immutable tag classification strategy: a full
// partition of the taxonomy bound either to a named preset or to an
// explicit target category count. A Strategy is reused across all records
// of one experiment run, so every sentence sees an identical mapping.
type Strategy struct {
	Name        string         `json:"name"`
	Version     string         `json:"version,omitempty"`
	Description string         `json:"description,omitempty"`
	Source      StrategySource `json:"source"`
	// Categories is the number of distinct labels the strategy can emit:
	// the partition size plus any refinement-only labels.
	Categories  int          `json:"categories"`
	Partition   Partition    `json:"partition"`
	Refinements []Refinement `json:"refinements,omitempty"`
}

// LabelCount returns the number of distinct labels the strategy can emit:
// one per partition category plus every refinement-only label.
func (s *Strategy) LabelCount() int {
	extra := make(map[string]bool)
	for _, ref := range s.Refinements {
		extra[ref.Category] = true
	}
	return s.Partition.Size() + len(extra)
}
