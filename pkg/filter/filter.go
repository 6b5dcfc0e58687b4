// Package filter narrows comparison results for presentation.
//
// A Filter keeps rows whose status is in an allow-list and, optionally,
// rows for which a boolean expression holds. Expressions are written in the
// expr language against the fields of Row, for example:
//
//	status == "UPDATE" && section startsWith "Step 1"
//	name contains "Eligibility" or diff contains "<del>"
//
// Sections left without rows are dropped.
package filter

import (
	"fmt"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/coolbeans/nofodiff/pkg/compare"
)

// Row is the environment an expression is evaluated against.
type Row struct {
	Kind           string `expr:"kind"`
	Section        string `expr:"section"`
	Key            string `expr:"key"`
	Name           string `expr:"name"`
	Status         string `expr:"status"`
	OldValue       string `expr:"old_value"`
	NewValue       string `expr:"new_value"`
	Diff           string `expr:"diff"`
	ComparisonType string `expr:"comparison_type"`
}

// Row kinds.
const (
	KindSubsection = "subsection"
	KindMetadata   = "metadata"
)

// Filter is a compiled set of row predicates. The zero value keeps
// everything.
type Filter struct {
	statuses map[compare.Status]bool
	where    string
	program  *vm.Program
}

// New compiles a filter. An empty statuses slice keeps every status and an
// empty where keeps every row.
func New(statuses []compare.Status, where string) (*Filter, error) {
	f := &Filter{where: strings.TrimSpace(where)}
	if len(statuses) > 0 {
		f.statuses = make(map[compare.Status]bool, len(statuses))
		for _, status := range statuses {
			f.statuses[status] = true
		}
	}
	if f.where != "" {
		program, err := expr.Compile(f.where, expr.Env(Row{}), expr.AsBool())
		if err != nil {
			return nil, fmt.Errorf("failed to compile filter %q: %w", f.where, err)
		}
		f.program = program
	}
	return f, nil
}

// ParseStatuses converts status labels such as "update,add" into statuses.
// Labels may be given separately or comma separated.
func ParseStatuses(labels []string) ([]compare.Status, error) {
	var statuses []compare.Status
	for _, label := range labels {
		for _, part := range strings.Split(label, ",") {
			if strings.TrimSpace(part) == "" {
				continue
			}
			status, err := compare.ParseStatus(part)
			if err != nil {
				return nil, err
			}
			statuses = append(statuses, status)
		}
	}
	return statuses, nil
}

// Changed returns a filter that drops MATCH rows.
func Changed() *Filter {
	f, _ := New([]compare.Status{compare.StatusUpdate, compare.StatusAdd, compare.StatusDelete}, "")
	return f
}

// Sections returns the rows of sections the filter keeps, dropping sections
// left empty. The input is not modified.
func (f *Filter) Sections(sections []compare.SectionDiff) ([]compare.SectionDiff, error) {
	out := []compare.SectionDiff{}
	for _, section := range sections {
		kept := []compare.SubsectionDiff{}
		for _, row := range section.Subsections {
			ok, err := f.keep(row.Status, Row{
				Kind:           KindSubsection,
				Section:        section.Name,
				Name:           row.Name,
				Status:         row.Status.String(),
				OldValue:       row.OldValue,
				NewValue:       row.NewValue,
				Diff:           row.Diff,
				ComparisonType: string(row.ComparisonType),
			})
			if err != nil {
				return nil, fmt.Errorf("section %q, subsection %q: %w", section.Name, row.Name, err)
			}
			if ok {
				kept = append(kept, row)
			}
		}
		if len(kept) > 0 {
			out = append(out, compare.SectionDiff{Name: section.Name, Subsections: kept})
		}
	}
	return out, nil
}

// Metadata returns the metadata rows the filter keeps.
func (f *Filter) Metadata(rows []compare.MetadataDiff) ([]compare.MetadataDiff, error) {
	out := []compare.MetadataDiff{}
	for _, row := range rows {
		ok, err := f.keep(row.Status, Row{
			Kind:     KindMetadata,
			Key:      row.Key,
			Name:     row.Name,
			Status:   row.Status.String(),
			OldValue: row.OldValue,
			NewValue: row.NewValue,
			Diff:     row.Diff,
		})
		if err != nil {
			return nil, fmt.Errorf("metadata %q: %w", row.Key, err)
		}
		if ok {
			out = append(out, row)
		}
	}
	return out, nil
}

func (f *Filter) keep(status compare.Status, row Row) (bool, error) {
	if f == nil {
		return true, nil
	}
	if f.statuses != nil && !f.statuses[status] {
		return false, nil
	}
	if f.program == nil {
		return true, nil
	}
	result, err := expr.Run(f.program, row)
	if err != nil {
		return false, fmt.Errorf("failed to evaluate filter %q: %w", f.where, err)
	}
	matched, ok := result.(bool)
	if !ok {
		return false, fmt.Errorf("filter %q returned %T, expected bool", f.where, result)
	}
	return matched, nil
}
