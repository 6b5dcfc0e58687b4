package compare

import (
	"strings"

	"github.com/coolbeans/nofodiff/pkg/nofo"
	"github.com/coolbeans/nofodiff/pkg/worddiff"
)

// CompareDocuments compares every section of newDoc with the first section
// of oldDoc that has the same name. Sections of oldDoc that were not paired
// follow in their original order with every subsection reported as DELETE.
//
// Each section's rows go through MergeRenamedSubsections and then
// ApplyComparisonTypes. Only sections left with at least one row other than
// MATCH are returned, so comparing two identical documents yields an empty
// slice.
func CompareDocuments(oldDoc, newDoc *nofo.Document) []SectionDiff {
	m := NewMatcher(oldDoc, newDoc)
	results := []SectionDiff{}
	paired := make(map[*nofo.Section]bool)

	for _, newSection := range sectionsOf(newDoc) {
		oldSection := oldDoc.Section(newSection.Name)
		if oldSection != nil {
			paired[oldSection] = true
		}
		if diff, changed := finalize(m.CompareSections(oldSection, newSection)); changed {
			results = append(results, diff)
		}
	}

	for _, oldSection := range sectionsOf(oldDoc) {
		if paired[oldSection] {
			continue
		}
		if diff, changed := finalize(m.CompareSections(oldSection, nil)); changed {
			results = append(results, diff)
		}
	}

	return results
}

func sectionsOf(doc *nofo.Document) []*nofo.Section {
	if doc == nil {
		return nil
	}
	sections := make([]*nofo.Section, 0, len(doc.Sections))
	for _, section := range doc.Sections {
		if section != nil {
			sections = append(sections, section)
		}
	}
	return sections
}

// finalize runs the post-processing steps on a section and reports whether
// anything other than MATCH rows remain.
func finalize(diff SectionDiff) (SectionDiff, bool) {
	diff.Subsections = ApplyComparisonTypes(MergeRenamedSubsections(diff.Subsections))
	return diff, hasChanges(diff.Subsections)
}

// CompareSections classifies the subsections of a section pair.
//
// Either section may be nil: a nil oldSection reports every new subsection
// as ADD and a nil newSection reports every old subsection as DELETE. Rows
// are emitted by walking both ordered lists by index. A new subsection is
// searched in the old list; an old subsection that is still unmatched at its
// index produces DELETE only if it matches nothing in the new list, since a
// moved subsection is reported at the new list's position.
func (m *Matcher) CompareSections(oldSection, newSection *nofo.Section) SectionDiff {
	result := SectionDiff{Subsections: []SubsectionDiff{}}
	switch {
	case newSection != nil:
		result.Name = newSection.Name
	case oldSection != nil:
		result.Name = oldSection.Name
	}

	var newList, oldList []*nofo.Subsection
	if newSection != nil {
		newList = newSection.Ordered()
	}
	if oldSection != nil {
		oldList = oldSection.Ordered()
	}

	matched := make(map[*nofo.Subsection]bool)
	for index := 0; index < max(len(newList), len(oldList)); index++ {
		if index < len(newList) {
			newSub := newList[index]
			if oldSub := m.FindMatch(newSub, oldList, matched); oldSub != nil {
				matched[oldSub] = true
				matched[newSub] = true
				result.Subsections = append(result.Subsections, matchedRow(oldSub, newSub))
			} else {
				result.Subsections = append(result.Subsections, addedRow(newSub))
			}
		}

		if index < len(oldList) {
			oldSub := oldList[index]
			if !matched[oldSub] && !m.matchesAny(oldSub, newList) {
				result.Subsections = append(result.Subsections, deletedRow(oldSub))
			}
		}
	}

	return result
}

func matchedRow(oldSub, newSub *nofo.Subsection) SubsectionDiff {
	row := SubsectionDiff{
		Name:           newSub.Name,
		Status:         StatusMatch,
		OldValue:       oldSub.Body,
		NewValue:       newSub.Body,
		ComparisonType: newSub.ComparisonType,
		DiffStrings:    newSub.DiffStrings,
	}
	if oldSub.Body != newSub.Body {
		if diff := worddiff.Diff(strings.TrimSpace(oldSub.Body), strings.TrimSpace(newSub.Body)); diff != "" {
			row.Status = StatusUpdate
			row.Diff = diff
		}
	}
	return row
}

func addedRow(newSub *nofo.Subsection) SubsectionDiff {
	return SubsectionDiff{
		Name:           newSub.Name,
		Status:         StatusAdd,
		NewValue:       newSub.Body,
		ComparisonType: newSub.ComparisonType,
		DiffStrings:    newSub.DiffStrings,
	}
}

func deletedRow(oldSub *nofo.Subsection) SubsectionDiff {
	return SubsectionDiff{
		Name:           oldSub.Name,
		Status:         StatusDelete,
		OldValue:       oldSub.Body,
		ComparisonType: oldSub.ComparisonType,
		DiffStrings:    oldSub.DiffStrings,
	}
}
