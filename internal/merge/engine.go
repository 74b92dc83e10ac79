// Package merge implements the deterministic tag category merge engine.
//
// Given a taxonomy of fine-grained grammar tags, the engine builds a single
// canonical merge sequence: starting from one singleton group per tag, each
// step merges exactly two groups, reducing the group count by one, until a
// single group remains. The partition for a target count N is the state of
// that sequence after size−N steps, which makes every partition a coarsening
// of the next finer one (nesting property) and makes repeated computations
// byte-identical.
package merge

import (
	"sort"

	"github.com/linguadata/tagmerge/internal/errors"
	"github.com/linguadata/tagmerge/internal/taxonomy"
	"github.com/linguadata/tagmerge/model"
)

// MinCategories is the smallest target count the engine accepts.
const MinCategories = 2

// Step records one merge in the canonical sequence. Source and Target are
// the category IDs of the two groups as they existed before the merge; the
// merged group takes the lexicographically smaller of the two.
type Step struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

// group is the mutable state of one category while the sequence is built.
type group struct {
	id      string // lexicographically smallest member tag ID
	members []model.Tag
}

// minTierRank returns the rank of the lowest frequency tier in the group.
func (g *group) minTierRank() int {
	rank := g.members[0].Tier.Rank()
	for _, tag := range g.members[1:] {
		if r := tag.Tier.Rank(); r < rank {
			rank = r
		}
	}
	return rank
}

// uniformGroup returns the shared semantic group of all members, or false
// when members span more than one group.
func (g *group) uniformGroup() (model.SemanticGroup, bool) {
	first := g.members[0].Group
	for _, tag := range g.members[1:] {
		if tag.Group != first {
			return "", false
		}
	}
	return first, true
}

// Engine computes partitions of a fixed taxonomy. The full merge sequence
// and every intermediate partition are derived once at construction, so
// Engine is immutable afterwards and safe for concurrent use.
type Engine struct {
	reg   *taxonomy.Registry
	steps []Step
	// snapshots[i] is the partition after i merge steps: size−i categories.
	snapshots []model.Partition
}

// NewEngine builds the canonical merge sequence for the given taxonomy.
func NewEngine(reg *taxonomy.Registry) *Engine {
	eng := &Engine{reg: reg}
	eng.build()
	return eng
}

// Steps returns the canonical merge sequence in order.
func (e *Engine) Steps() []Step {
	steps := make([]Step, len(e.steps))
	copy(steps, e.steps)
	return steps
}

// ComputePartition returns the partition with exactly targetCount categories.
// It fails with InvalidCountError when targetCount < 2 or targetCount exceeds
// the taxonomy size; targetCount == size yields the identity partition.
func (e *Engine) ComputePartition(targetCount int) (model.Partition, error) {
	size := e.reg.Size()
	if targetCount < MinCategories || targetCount > size {
		return model.Partition{}, errors.NewInvalidCountError(targetCount, MinCategories, size)
	}

	index := size - targetCount
	if index >= len(e.snapshots) {
		// Sequence exhausted before reaching the requested count: return the
		// coarsest achievable partition. Unreachable while the sequence runs
		// down to a single group, kept as a terminal fallback.
		index = len(e.snapshots) - 1
	}
	return e.snapshots[index], nil
}

// build constructs the merge sequence and its partition snapshots.
//
// Tags merge in canonical priority order: frequency tier ascending (low,
// medium, high), then semantic group, then tag ID. Merging has two phases:
//
//  1. Within semantic groups, tier by tier: each still-singleton tag merges
//     into the same-semantic-group category with the fewest members
//     (tie-break: lexicographically smallest category ID). A singleton with
//     no same-group company seeds its own category.
//  2. Cross-group collapse: once same-group targets are exhausted, whole
//     categories merge. The source is the category ranked cheapest by
//     (member count, lowest member tier, category ID); the target is the
//     remaining category with the fewest members (tie-break: smallest ID).
//
// The cross-group tie-breaks are a committed contract of this engine, chosen
// to keep rare tags merging ahead of common ones.
func (e *Engine) build() {
	ordered := canonicalOrder(e.reg.Tags())

	groups := make([]*group, 0, len(ordered))
	byTag := make(map[string]*group, len(ordered))
	for _, tag := range ordered {
		g := &group{id: tag.ID, members: []model.Tag{tag}}
		groups = append(groups, g)
		byTag[tag.ID] = g
	}

	e.snapshots = append(e.snapshots, snapshot(groups))

	merge := func(source, target *group) {
		e.steps = append(e.steps, Step{Source: source.id, Target: target.id})
		target.members = append(target.members, source.members...)
		sort.Slice(target.members, func(i, j int) bool {
			return target.members[i].ID < target.members[j].ID
		})
		if source.id < target.id {
			target.id = source.id
		}
		for i, g := range groups {
			if g == source {
				groups = append(groups[:i], groups[i+1:]...)
				break
			}
		}
		for _, tag := range target.members {
			byTag[tag.ID] = target
		}
		e.snapshots = append(e.snapshots, snapshot(groups))
	}

	// Phase 1: singleton tags merge within their semantic group, low tier
	// first. The canonical order already walks tiers strictly in sequence.
	for _, tag := range ordered {
		g := byTag[tag.ID]
		if len(g.members) > 1 {
			continue
		}

		var target *group
		for _, candidate := range groups {
			if candidate == g {
				continue
			}
			cg, uniform := candidate.uniformGroup()
			if !uniform || cg != tag.Group {
				continue
			}
			if target == nil ||
				len(candidate.members) < len(target.members) ||
				(len(candidate.members) == len(target.members) && candidate.id < target.id) {
				target = candidate
			}
		}
		if target == nil {
			continue // seeds its semantic group
		}
		merge(g, target)
	}

	// Phase 2: collapse whole categories until one remains.
	for len(groups) > 1 {
		source := groups[0]
		for _, g := range groups[1:] {
			if groupRankLess(g, source) {
				source = g
			}
		}

		var target *group
		for _, g := range groups {
			if g == source {
				continue
			}
			if target == nil ||
				len(g.members) < len(target.members) ||
				(len(g.members) == len(target.members) && g.id < target.id) {
				target = g
			}
		}
		merge(source, target)
	}
}

// groupRankLess orders phase 2 merge sources: fewest members first, then
// lowest member tier, then smallest category ID.
func groupRankLess(a, b *group) bool {
	if len(a.members) != len(b.members) {
		return len(a.members) < len(b.members)
	}
	if ar, br := a.minTierRank(), b.minTierRank(); ar != br {
		return ar < br
	}
	return a.id < b.id
}

// canonicalOrder sorts tags by merge priority: tier ascending, then semantic
// group, then tag ID.
func canonicalOrder(tags []model.Tag) []model.Tag {
	ordered := make([]model.Tag, len(tags))
	copy(ordered, tags)
	sort.Slice(ordered, func(i, j int) bool {
		a, b := ordered[i], ordered[j]
		if a.Tier.Rank() != b.Tier.Rank() {
			return a.Tier.Rank() < b.Tier.Rank()
		}
		if a.Group != b.Group {
			return a.Group < b.Group
		}
		return a.ID < b.ID
	})
	return ordered
}

// snapshot freezes the current group state into an immutable partition,
// with categories ordered by ID.
func snapshot(groups []*group) model.Partition {
	categories := make([]model.Category, 0, len(groups))
	for _, g := range groups {
		members := make([]string, 0, len(g.members))
		for _, tag := range g.members {
			members = append(members, tag.ID)
		}

		name := model.CatchAllName
		if sg, uniform := g.uniformGroup(); uniform {
			name = string(sg)
		}

		categories = append(categories, model.Category{
			ID:      g.id,
			Name:    name,
			Members: members,
		})
	}

	sort.Slice(categories, func(i, j int) bool {
		return categories[i].ID < categories[j].ID
	})

	return model.Partition{Categories: categories}
}
