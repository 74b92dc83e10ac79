package model

import "sort"

// CatchAllName is the label given to a merged category whose members span
// more than one semantic group.
const CatchAllName = "others"

// Category is a (possibly merged) group of tags exposed to the dataset
// consumer as one label. The ID is the lexicographically smallest member
// tag ID, which keeps IDs stable as the partition coarsens; the Name is
// the shared semantic group name, or "others" for mixed groups.
type Category struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Members []string `json:"members"`
}

// Partition is a complete, non-overlapping assignment of every taxonomy tag
// to exactly one category. Partitions are immutable once built.
type Partition struct {
	Categories []Category `json:"categories"`
}

// CategoryOf returns the category containing the given tag ID.
func (p Partition) CategoryOf(tagID string) (Category, bool) {
	for _, cat := range p.Categories {
		for _, member := range cat.Members {
			if member == tagID {
				return cat, true
			}
		}
	}
	return Category{}, false
}

// Mapping returns tag ID -> category name for every tag in the partition.
func (p Partition) Mapping() map[string]string {
	mapping := make(map[string]string)
	for _, cat := range p.Categories {
		for _, member := range cat.Members {
			mapping[member] = cat.Name
		}
	}
	return mapping
}

// Size returns the number of categories.
func (p Partition) Size() int {
	return len(p.Categories)
}

// TagCount returns the total number of member tags across all categories.
func (p Partition) TagCount() int {
	total := 0
	for _, cat := range p.Categories {
		total += len(cat.Members)
	}
	return total
}

// Validate checks the partition invariants against a full tag ID set:
// every tag appears in exactly one non-empty category, no category contains
// a tag outside the set, and category IDs are unique. It returns a list of
// human-readable problems, empty when the partition is valid.
func (p Partition) Validate(tagIDs []string) []string {
	var problems []string

	want := make(map[string]bool, len(tagIDs))
	for _, id := range tagIDs {
		want[id] = true
	}

	seenTags := make(map[string]bool)
	seenCats := make(map[string]bool)
	for _, cat := range p.Categories {
		if len(cat.Members) == 0 {
			problems = append(problems, "category '"+cat.ID+"' has no members")
		}
		if seenCats[cat.ID] {
			problems = append(problems, "duplicate category ID '"+cat.ID+"'")
		}
		seenCats[cat.ID] = true

		for _, member := range cat.Members {
			if !want[member] {
				problems = append(problems, "category '"+cat.ID+"' references unknown tag '"+member+"'")
				continue
			}
			if seenTags[member] {
				problems = append(problems, "tag '"+member+"' is mapped more than once")
			}
			seenTags[member] = true
		}
	}

	var missing []string
	for _, id := range tagIDs {
		if !seenTags[id] {
			missing = append(missing, id)
		}
	}
	sort.Strings(missing)
	for _, id := range missing {
		problems = append(problems, "tag '"+id+"' is not mapped to any category")
	}

	return problems
}
