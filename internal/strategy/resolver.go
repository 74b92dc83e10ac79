// Package strategy resolves tag classification strategy requests into
// immutable, fully-validated strategies: either named presets from the
// built-in registry or partitions computed on demand by the merge engine.
package strategy

import (
	"fmt"
	"log"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/linguadata/tagmerge/internal/errors"
	"github.com/linguadata/tagmerge/internal/taxonomy"
	"github.com/linguadata/tagmerge/model"
	"github.com/linguadata/tagmerge/services"
)

// Request asks for a strategy either by preset name or by an explicit
// target category count. Preset takes precedence when both are set.
type Request struct {
	Preset     string `json:"preset,omitempty"`
	Categories int    `json:"categories,omitempty"`
}

// Resolver turns strategy requests into resolved strategies. Dynamic
// results are memoized per target count for the lifetime of the run, so
// every record in a run sees an identical mapping and each distinct count
// is computed at most once.
type Resolver struct {
	mu      sync.Mutex
	reg     *taxonomy.Registry
	engine  services.PartitionComputer
	presets map[string]*model.Strategy
	order   []string
	cache   map[int]*model.Strategy
}

// NewResolver loads the built-in presets, validates each against the
// configured taxonomy, and drops (with a logged warning) any preset whose
// hand-authored partition does not cover it.
func NewResolver(reg *taxonomy.Registry, engine services.PartitionComputer) *Resolver {
	r := &Resolver{
		reg:     reg,
		engine:  engine,
		presets: make(map[string]*model.Strategy),
		cache:   make(map[int]*model.Strategy),
	}

	for _, preset := range builtinPresets(reg) {
		if problems := preset.Partition.Validate(reg.IDs()); len(problems) > 0 {
			log.Printf("Warning: Skipping preset '%s': %v", preset.Name, problems)
			continue
		}
		r.presets[preset.Name] = preset
		r.order = append(r.order, preset.Name)
	}
	sort.Strings(r.order)

	return r
}

// Resolve resolves a request into a strategy. Unrecognized preset names
// fail with UnknownStrategyError; dynamic counts outside the valid range
// fail with InvalidCountError.
func (r *Resolver) Resolve(req Request) (*model.Strategy, error) {
	if req.Preset != "" {
		return r.ResolvePreset(req.Preset)
	}
	return r.ResolveCount(req.Categories)
}

// ResolvePreset returns the named preset.
func (r *Resolver) ResolvePreset(name string) (*model.Strategy, error) {
	preset, ok := r.presets[name]
	if !ok {
		return nil, errors.NewUnknownStrategyError(name, r.Known())
	}
	return preset, nil
}

// ResolveCount returns the strategy for an explicit target category count,
// computing and caching it on first request. The lock makes resolution
// at-most-once per count: concurrent requests for the same count always
// receive the same Strategy instance.
func (r *Resolver) ResolveCount(count int) (*model.Strategy, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if cached, ok := r.cache[count]; ok {
		return cached, nil
	}

	partition, err := r.engine.ComputePartition(count)
	if err != nil {
		return nil, err
	}

	resolved := &model.Strategy{
		Name:        fmt.Sprintf("dynamic_%dcats", count),
		Version:     "dynamic_v1.0",
		Description: fmt.Sprintf("Dynamic strategy with %d categories, merged by frequency and semantic similarity", count),
		Source:      model.StrategySourceDynamic,
		Categories:  count,
		Partition:   partition,
	}
	r.cache[count] = resolved

	return resolved, nil
}

// Known returns the names of all loaded presets, sorted.
func (r *Resolver) Known() []string {
	known := make([]string, len(r.order))
	copy(known, r.order)
	return known
}

// List returns preset summaries for the strategy listing endpoint.
func (r *Resolver) List() []services.StrategyInfo {
	infos := make([]services.StrategyInfo, 0, len(r.order))
	for _, name := range r.order {
		preset := r.presets[name]
		infos = append(infos, services.StrategyInfo{
			Name:        preset.Name,
			Version:     preset.Version,
			Description: preset.Description,
			Categories:  preset.Categories,
		})
	}
	return infos
}

// Export serializes a resolved strategy to YAML, the format strategy
// configurations are exchanged in.
func (r *Resolver) Export(s *model.Strategy) ([]byte, error) {
	data, err := yaml.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal strategy '%s': %w", s.Name, err)
	}
	return data, nil
}
