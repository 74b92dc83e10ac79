package merge

import (
	"encoding/json"
	"errors"
	"testing"

	apperrors "github.com/linguadata/tagmerge/internal/errors"
	"github.com/linguadata/tagmerge/internal/taxonomy"
	"github.com/linguadata/tagmerge/model"
)

// scenarioRegistry is the 4-tag taxonomy used by the boundary scenarios:
// two low-tier prepositions, one high-tier verb, one medium-tier connector.
func scenarioRegistry(t *testing.T) *taxonomy.Registry {
	t.Helper()
	reg, err := taxonomy.NewRegistry([]model.Tag{
		{ID: "A", Tier: model.TierLow, Group: model.GroupPrepositions},
		{ID: "B", Tier: model.TierLow, Group: model.GroupPrepositions},
		{ID: "C", Tier: model.TierHigh, Group: model.GroupVerbs},
		{ID: "D", Tier: model.TierMedium, Group: model.GroupConnectors},
	})
	if err != nil {
		t.Fatalf("Failed to build registry: %v", err)
	}
	return reg
}

// wideRegistry is a 10-tag taxonomy spanning four semantic groups and all
// three tiers, for coverage and nesting properties.
func wideRegistry(t *testing.T) *taxonomy.Registry {
	t.Helper()
	reg, err := taxonomy.NewRegistry([]model.Tag{
		{ID: "verb_tense", Tier: model.TierHigh, Group: model.GroupVerbs},
		{ID: "verb_voice", Tier: model.TierLow, Group: model.GroupVerbs},
		{ID: "auxiliary_verbs", Tier: model.TierMedium, Group: model.GroupVerbs},
		{ID: "conjunctions", Tier: model.TierHigh, Group: model.GroupConnectors},
		{ID: "connectives", Tier: model.TierLow, Group: model.GroupConnectors},
		{ID: "relative_clauses", Tier: model.TierMedium, Group: model.GroupConnectors},
		{ID: "prepositions", Tier: model.TierHigh, Group: model.GroupPrepositions},
		{ID: "sentence_forms", Tier: model.TierMedium, Group: model.GroupStructures},
		{ID: "syntax_patterns", Tier: model.TierHigh, Group: model.GroupStructures},
		{ID: "inversion", Tier: model.TierLow, Group: model.GroupStructures},
	})
	if err != nil {
		t.Fatalf("Failed to build registry: %v", err)
	}
	return reg
}

func TestComputePartitionCoverage(t *testing.T) {
	reg := wideRegistry(t)
	eng := NewEngine(reg)

	for n := 2; n <= reg.Size(); n++ {
		partition, err := eng.ComputePartition(n)
		if err != nil {
			t.Fatalf("ComputePartition(%d) failed: %v", n, err)
		}

		if partition.Size() != n {
			t.Errorf("ComputePartition(%d) returned %d categories", n, partition.Size())
		}

		if problems := partition.Validate(reg.IDs()); len(problems) > 0 {
			t.Errorf("ComputePartition(%d) violated invariants: %v", n, problems)
		}
	}
}

func TestNestingProperty(t *testing.T) {
	reg := wideRegistry(t)
	eng := NewEngine(reg)

	// Every category at N must be a union of categories at N+1: no tag pair
	// grouped at N+1 may be separated at N.
	for n := 2; n < reg.Size(); n++ {
		coarse, err := eng.ComputePartition(n)
		if err != nil {
			t.Fatalf("ComputePartition(%d) failed: %v", n, err)
		}
		fine, err := eng.ComputePartition(n + 1)
		if err != nil {
			t.Fatalf("ComputePartition(%d) failed: %v", n+1, err)
		}

		coarseOf := coarse.Mapping()
		for _, cat := range fine.Categories {
			parent := coarseOf[cat.Members[0]]
			for _, member := range cat.Members[1:] {
				if coarseOf[member] != parent {
					t.Errorf("category %q at N=%d is split across %q and %q at N=%d",
						cat.ID, n+1, parent, coarseOf[member], n)
				}
			}
		}
	}
}

func TestDeterminism(t *testing.T) {
	reg := wideRegistry(t)

	// Two engines built from the same taxonomy must agree byte for byte.
	first := NewEngine(reg)
	second := NewEngine(reg)

	for n := 2; n <= reg.Size(); n++ {
		p1, err := first.ComputePartition(n)
		if err != nil {
			t.Fatalf("ComputePartition(%d) failed: %v", n, err)
		}
		p2, err := second.ComputePartition(n)
		if err != nil {
			t.Fatalf("ComputePartition(%d) failed: %v", n, err)
		}

		b1, _ := json.Marshal(p1)
		b2, _ := json.Marshal(p2)
		if string(b1) != string(b2) {
			t.Errorf("ComputePartition(%d) is not deterministic:\n%s\n%s", n, b1, b2)
		}
	}
}

func TestIdentityPartition(t *testing.T) {
	reg := wideRegistry(t)
	eng := NewEngine(reg)

	partition, err := eng.ComputePartition(reg.Size())
	if err != nil {
		t.Fatalf("ComputePartition(size) failed: %v", err)
	}

	if partition.Size() != reg.Size() {
		t.Fatalf("Expected %d categories, got %d", reg.Size(), partition.Size())
	}
	for _, cat := range partition.Categories {
		if len(cat.Members) != 1 {
			t.Errorf("Identity partition category %q has %d members", cat.ID, len(cat.Members))
		}
		if cat.ID != cat.Members[0] {
			t.Errorf("Identity category ID %q does not match its member %q", cat.ID, cat.Members[0])
		}
	}
}

func TestInvalidCounts(t *testing.T) {
	reg := wideRegistry(t)
	eng := NewEngine(reg)

	for _, n := range []int{1, 0, -3, reg.Size() + 1} {
		_, err := eng.ComputePartition(n)
		if err == nil {
			t.Errorf("ComputePartition(%d) should fail", n)
			continue
		}
		if !errors.Is(err, apperrors.ErrInvalidCount) {
			t.Errorf("ComputePartition(%d): expected ErrInvalidCount, got %v", n, err)
		}
		var counted *apperrors.InvalidCountError
		if !errors.As(err, &counted) {
			t.Errorf("ComputePartition(%d): expected InvalidCountError with context", n)
		} else if counted.Count != n {
			t.Errorf("Expected offending count %d in error, got %d", n, counted.Count)
		}
	}
}

func TestScenarioFourTags(t *testing.T) {
	reg := scenarioRegistry(t)
	eng := NewEngine(reg)

	// N=3: the two low-tier prepositions merge, verb and connector stay.
	p3, err := eng.ComputePartition(3)
	if err != nil {
		t.Fatalf("ComputePartition(3) failed: %v", err)
	}
	assertCategory(t, p3, "A", string(model.GroupPrepositions), []string{"A", "B"})
	assertCategory(t, p3, "C", string(model.GroupVerbs), []string{"C"})
	assertCategory(t, p3, "D", string(model.GroupConnectors), []string{"D"})

	// N=2: the medium-tier connector merges into the next cheapest target
	// (the verb singleton), producing a mixed "others" category.
	p2, err := eng.ComputePartition(2)
	if err != nil {
		t.Fatalf("ComputePartition(2) failed: %v", err)
	}
	if p2.Size() != 2 {
		t.Fatalf("Expected 2 categories, got %d", p2.Size())
	}
	assertCategory(t, p2, "A", string(model.GroupPrepositions), []string{"A", "B"})
	assertCategory(t, p2, "C", model.CatchAllName, []string{"C", "D"})
}

func TestBoundaryTwoCategories(t *testing.T) {
	reg := wideRegistry(t)
	eng := NewEngine(reg)

	partition, err := eng.ComputePartition(2)
	if err != nil {
		t.Fatalf("ComputePartition(2) failed: %v", err)
	}
	if partition.Size() != 2 {
		t.Fatalf("Expected exactly 2 categories, got %d", partition.Size())
	}
	if problems := partition.Validate(reg.IDs()); len(problems) > 0 {
		t.Errorf("Boundary partition violated invariants: %v", problems)
	}
}

func TestMergeSequenceLength(t *testing.T) {
	reg := wideRegistry(t)
	eng := NewEngine(reg)

	// Each step reduces the group count by exactly one, so the full
	// sequence has size−1 steps.
	if got, want := len(eng.Steps()), reg.Size()-1; got != want {
		t.Errorf("Expected %d merge steps, got %d", want, got)
	}
}

func assertCategory(t *testing.T, p model.Partition, id, name string, members []string) {
	t.Helper()

	for _, cat := range p.Categories {
		if cat.ID != id {
			continue
		}
		if cat.Name != name {
			t.Errorf("Category %q: expected name %q, got %q", id, name, cat.Name)
		}
		if len(cat.Members) != len(members) {
			t.Errorf("Category %q: expected members %v, got %v", id, members, cat.Members)
			return
		}
		for i, member := range members {
			if cat.Members[i] != member {
				t.Errorf("Category %q: expected members %v, got %v", id, members, cat.Members)
				return
			}
		}
		return
	}
	t.Errorf("Category %q not found in partition %+v", id, p.Categories)
}
