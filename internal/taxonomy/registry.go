// Package taxonomy holds the immutable catalog of fine-grained grammar tags:
// their frequency tiers and semantic groups. A Registry is built once at
// process start and never mutated, so it is safe to share across goroutines
// without locking.
package taxonomy

import (
	"fmt"
	"sort"

	"github.com/linguadata/tagmerge/internal/errors"
	"github.com/linguadata/tagmerge/model"
)

// Registry is a read-only, ordered set of tags with metadata lookups by ID.
type Registry struct {
	tags []model.Tag
	byID map[string]model.Tag
}

// NewRegistry builds a registry from a tag declaration. The declaration is
// validated as a whole: duplicate or empty IDs and unknown tiers or groups
// are all reported together in a single InvalidTaxonomyError.
func NewRegistry(tags []model.Tag) (*Registry, error) {
	var problems []string

	if len(tags) == 0 {
		problems = append(problems, "taxonomy has no tags")
	}

	byID := make(map[string]model.Tag, len(tags))
	for i, tag := range tags {
		if tag.ID == "" {
			problems = append(problems, fmt.Sprintf("tag at position %d has an empty ID", i))
			continue
		}
		if _, exists := byID[tag.ID]; exists {
			problems = append(problems, fmt.Sprintf("duplicate tag ID '%s'", tag.ID))
			continue
		}
		if !tag.Tier.Valid() {
			problems = append(problems, fmt.Sprintf("tag '%s' has unknown frequency tier '%s'", tag.ID, tag.Tier))
		}
		if !tag.Group.Valid() {
			problems = append(problems, fmt.Sprintf("tag '%s' has unknown semantic group '%s'", tag.ID, tag.Group))
		}
		byID[tag.ID] = tag
	}

	if len(problems) > 0 {
		return nil, errors.NewInvalidTaxonomyError(problems)
	}

	ordered := make([]model.Tag, len(tags))
	copy(ordered, tags)

	return &Registry{tags: ordered, byID: byID}, nil
}

// Tags returns the full taxonomy in declaration order. The returned slice
// is a copy; callers cannot mutate the registry through it.
func (r *Registry) Tags() []model.Tag {
	tags := make([]model.Tag, len(r.tags))
	copy(tags, r.tags)
	return tags
}

// Size returns the number of tags in the taxonomy.
func (r *Registry) Size() int {
	return len(r.tags)
}

// Contains reports whether the taxonomy declares the given tag ID.
func (r *Registry) Contains(id string) bool {
	_, ok := r.byID[id]
	return ok
}

// Tag returns the tag declared under the given ID.
func (r *Registry) Tag(id string) (model.Tag, error) {
	tag, ok := r.byID[id]
	if !ok {
		return model.Tag{}, errors.NewTagNotFoundError(id)
	}
	return tag, nil
}

// FrequencyTier returns the frequency tier of the given tag.
func (r *Registry) FrequencyTier(id string) (model.FrequencyTier, error) {
	tag, err := r.Tag(id)
	if err != nil {
		return "", err
	}
	return tag.Tier, nil
}

// SemanticGroup returns the semantic group of the given tag.
func (r *Registry) SemanticGroup(id string) (model.SemanticGroup, error) {
	tag, err := r.Tag(id)
	if err != nil {
		return "", err
	}
	return tag.Group, nil
}

// IDs returns all tag IDs sorted lexicographically.
func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.tags))
	for _, tag := range r.tags {
		ids = append(ids, tag.ID)
	}
	sort.Strings(ids)
	return ids
}
