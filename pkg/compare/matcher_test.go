package compare

import (
	"testing"

	"github.com/coolbeans/nofodiff/pkg/nofo"
)

func sub(name string, order int, body string) *nofo.Subsection {
	return &nofo.Subsection{Name: name, Order: order, Body: body}
}

func section(name string, subs ...*nofo.Subsection) *nofo.Section {
	return &nofo.Section{Name: name, Subsections: subs}
}

func document(id string, sections ...*nofo.Section) *nofo.Document {
	return &nofo.Document{ID: id, Sections: sections}
}

func TestIsMatching_Named(t *testing.T) {
	oldEligibility := sub("Eligibility", 1, "old")
	oldBudget := sub("Budget", 2, "old")
	oldOther := sub("Eligibility", 1, "old")
	newEligibility := sub("Eligibility", 1, "new")
	newBudget := sub("budget", 2, "new")
	newOther := sub("Eligibility", 1, "new")

	oldDoc := document("old", section("Step 1", oldEligibility, oldBudget), section("Step 2", oldOther))
	newDoc := document("new", section("Step 1", newEligibility, newBudget), section("Step 2", newOther))
	m := NewMatcher(oldDoc, newDoc)

	tests := []struct {
		name     string
		a, b     *nofo.Subsection
		expected bool
	}{
		{"equal names", oldEligibility, newEligibility, true},
		{"symmetric", newEligibility, oldEligibility, true},
		{"case sensitive", oldBudget, newBudget, false},
		{"different names", oldEligibility, newBudget, false},
		{"different section names", oldEligibility, newOther, false},
		{"same document", oldEligibility, oldBudget, false},
		{"unknown subsection", oldEligibility, sub("Eligibility", 1, ""), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := m.IsMatching(tc.a, tc.b); got != tc.expected {
				t.Errorf("expected %v, got %v", tc.expected, got)
			}
		})
	}
}

func TestIsMatching_SameDocumentInstance(t *testing.T) {
	named := sub("Eligibility", 1, "body")
	unnamed := sub("", 2, "body")
	doc := document("only", section("Step 1", named, unnamed))

	for _, m := range []*Matcher{NewMatcher(doc), NewMatcher(doc, doc)} {
		for _, s := range []*nofo.Subsection{named, unnamed} {
			if m.IsMatching(s, s) {
				t.Errorf("subsection %q matched itself", s.Name)
			}
		}
	}
}

func TestIsMatching_Unnamed(t *testing.T) {
	oldPrev, oldUnnamed, oldNext := sub("Prev", 1, ""), sub("", 2, ""), sub("Next", 3, "")
	newPrev, newUnnamed, newNext := sub("Prev", 1, ""), sub("", 2, ""), sub("Next", 3, "")
	m := NewMatcher(
		document("old", section("Step 1", oldPrev, oldUnnamed, oldNext)),
		document("new", section("Step 1", newPrev, newUnnamed, newNext)),
	)

	if !m.IsMatching(oldUnnamed, newUnnamed) {
		t.Error("expected unnamed subsections with matching neighbours to match")
	}
	if m.IsMatching(oldUnnamed, newPrev) {
		t.Error("expected unnamed subsection not to match a named one with different neighbours")
	}
}

func TestIsMatching_UnnamedNeighbourMismatch(t *testing.T) {
	oldUnnamed := sub("", 2, "")
	newUnnamed := sub("", 2, "")
	m := NewMatcher(
		document("old", section("Step 1", sub("Prev", 1, ""), oldUnnamed, sub("Next", 3, ""))),
		document("new", section("Step 1", sub("Other", 1, ""), newUnnamed, sub("Next", 3, ""))),
	)

	if m.IsMatching(oldUnnamed, newUnnamed) {
		t.Error("expected mismatch when previous neighbours differ")
	}
}

func TestIsMatching_WalksPastUnnamedNeighbours(t *testing.T) {
	oldFirst, oldSecond := sub("", 2, ""), sub("", 3, "")
	newFirst, newSecond := sub("", 2, ""), sub("", 3, "")
	m := NewMatcher(
		document("old", section("Step 1", sub("Intro", 1, ""), oldFirst, oldSecond, sub("Outro", 4, ""))),
		document("new", section("Step 1", sub("Intro", 1, ""), newFirst, newSecond, sub("Outro", 4, ""))),
	)

	if !m.IsMatching(oldFirst, newFirst) {
		t.Error("expected first unnamed pair to match")
	}
	if !m.IsMatching(oldSecond, newSecond) {
		t.Error("expected second unnamed pair to match")
	}
	if m.IsMatching(oldFirst, newSecond) {
		t.Error("expected shifted unnamed subsections not to match")
	}
}

func TestIsMatching_BoundaryNeighbours(t *testing.T) {
	oldOnly, newOnly := sub("", 1, "a"), sub("", 1, "b")
	m := NewMatcher(
		document("old", section("Step 1", oldOnly)),
		document("new", section("Step 1", newOnly)),
	)
	if !m.IsMatching(oldOnly, newOnly) {
		t.Error("expected lone unnamed subsections to match")
	}

	oldLead := sub("", 1, "")
	newLead := sub("", 1, "")
	m = NewMatcher(
		document("old", section("Step 1", oldLead)),
		document("new", section("Step 1", newLead, sub("Added", 2, ""))),
	)
	if m.IsMatching(oldLead, newLead) {
		t.Error("expected mismatch when only one side has a next neighbour")
	}
}

func TestFindMatch(t *testing.T) {
	first := sub("Eligibility", 1, "")
	second := sub("Eligibility", 2, "")
	candidate := sub("Eligibility", 1, "")
	m := NewMatcher(
		document("old", section("Step 1", first, second)),
		document("new", section("Step 1", candidate)),
	)
	pool := []*nofo.Subsection{first, second}

	if got := m.FindMatch(candidate, pool, map[*nofo.Subsection]bool{}); got != first {
		t.Errorf("expected first pool member, got %+v", got)
	}
	if got := m.FindMatch(candidate, pool, map[*nofo.Subsection]bool{first: true}); got != second {
		t.Errorf("expected already matched member to be skipped, got %+v", got)
	}
	if got := m.FindMatch(candidate, pool, map[*nofo.Subsection]bool{first: true, second: true}); got != nil {
		t.Errorf("expected nil, got %+v", got)
	}
}
