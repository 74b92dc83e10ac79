// Package config provides configuration structures for the tag merge service.
// It defines the taxonomy declaration loaded at process start and the
// server settings.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/linguadata/tagmerge/model"
)

// Settings contains process-level configuration.
type Settings struct {
	Port         string `yaml:"port"`
	DataDir      string `yaml:"data_dir"`
	TaxonomyFile string `yaml:"taxonomy_file"`
	// MaxWorkers bounds concurrent background dataset builds.
	MaxWorkers int `yaml:"max_workers"`
}

// ApplyDefaults applies default values to the settings
func (s *Settings) ApplyDefaults() {
	if s.Port == "" {
		s.Port = "8080"
	}
	if s.DataDir == "" {
		s.DataDir = "./tagmerge_data"
	}
	if s.MaxWorkers == 0 {
		s.MaxWorkers = 2
	}
}

// TaxonomyConfig is the static tag declaration supplied at process start.
// Each entry names a tag with its frequency tier and semantic group.
type TaxonomyConfig struct {
	Name    string      `yaml:"name"`
	Version string      `yaml:"version"`
	Tags    []model.Tag `yaml:"tags"`
}

// LoadTaxonomy reads a taxonomy declaration from a YAML file.
func LoadTaxonomy(path string) (*TaxonomyConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read taxonomy file: %w", err)
	}

	var cfg TaxonomyConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse taxonomy file %s: %w", path, err)
	}
	return &cfg, nil
}

// DefaultTaxonomy returns the built-in 17-tag grammar taxonomy used when no
// taxonomy file is supplied. Tiers and groups reflect the corpus frequency
// analysis the merge priorities were derived from.
func DefaultTaxonomy() *TaxonomyConfig {
	return &TaxonomyConfig{
		Name:    "english-grammar",
		Version: "1.0",
		Tags: []model.Tag{
			// High frequency: remain distinguishable longest.
			{ID: "prepositions", Tier: model.TierHigh, Group: model.GroupPrepositions},
			{ID: "verb_tense", Tier: model.TierHigh, Group: model.GroupVerbs},
			{ID: "conjunctions", Tier: model.TierHigh, Group: model.GroupConnectors},
			{ID: "verbals", Tier: model.TierHigh, Group: model.GroupWords},
			{ID: "syntax_patterns", Tier: model.TierHigh, Group: model.GroupStructures},

			// Medium frequency.
			{ID: "phrasal_verbs_idioms", Tier: model.TierMedium, Group: model.GroupWords},
			{ID: "sentence_forms", Tier: model.TierMedium, Group: model.GroupStructures},
			{ID: "auxiliary_verbs", Tier: model.TierMedium, Group: model.GroupVerbs},
			{ID: "relative_clauses", Tier: model.TierMedium, Group: model.GroupConnectors},
			{ID: "nouns", Tier: model.TierMedium, Group: model.GroupWords},
			{ID: "comparatives", Tier: model.TierMedium, Group: model.GroupModifiers},

			// Low frequency: first to merge.
			{ID: "negation", Tier: model.TierLow, Group: model.GroupModifiers},
			{ID: "verb_voice", Tier: model.TierLow, Group: model.GroupVerbs},
			{ID: "interrogatives", Tier: model.TierLow, Group: model.GroupSpecial},
			{ID: "connectives", Tier: model.TierLow, Group: model.GroupConnectors},
			{ID: "subjunctive", Tier: model.TierLow, Group: model.GroupSpecial},
			{ID: "inversion", Tier: model.TierLow, Group: model.GroupSpecial},
		},
	}
}
