package nofo

import (
	"errors"
	"fmt"
)

// ErrNilDocument is returned by Validate when given a nil document.
var ErrNilDocument = errors.New("document is nil")

// Validate checks the structural invariants the comparison engine relies on:
// every section has a name, its subsection orders are unique and contiguous
// from 1, and every comparison_type is Known. All problems are reported
// together.
//
// The engine never fails on an invalid tree, but its pairing of subsections
// is only meaningful for trees that pass Validate.
func Validate(doc *Document) error {
	if doc == nil {
		return ErrNilDocument
	}

	var problems []error
	for i, section := range doc.Sections {
		if section == nil {
			problems = append(problems, fmt.Errorf("section %d: section is nil", i+1))
			continue
		}
		label := section.Name
		if label == "" {
			label = fmt.Sprintf("#%d", i+1)
			problems = append(problems, fmt.Errorf("section %d: name is required", i+1))
		}
		problems = append(problems, validateOrders(label, section)...)
		for _, subsection := range section.Subsections {
			if subsection != nil && !subsection.ComparisonType.Known() {
				problems = append(problems, fmt.Errorf("section %s: subsection %d: unknown comparison_type %q", label, subsection.Order, subsection.ComparisonType))
			}
		}
	}
	return errors.Join(problems...)
}

// validateOrders checks that subsection orders form the sequence 1..n.
func validateOrders(label string, section *Section) []error {
	var problems []error
	seen := make(map[int]bool, len(section.Subsections))
	count := 0
	for i, subsection := range section.Subsections {
		if subsection == nil {
			problems = append(problems, fmt.Errorf("section %s: subsection %d is nil", label, i+1))
			continue
		}
		count++
		if seen[subsection.Order] {
			problems = append(problems, fmt.Errorf("section %s: duplicate subsection order %d", label, subsection.Order))
		}
		seen[subsection.Order] = true
	}
	for order := 1; order <= count; order++ {
		if !seen[order] {
			problems = append(problems, fmt.Errorf("section %s: subsection orders are not contiguous, missing %d", label, order))
		}
	}
	return problems
}
