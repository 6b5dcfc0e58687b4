package compare

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/coolbeans/nofodiff/pkg/nofo"
)

func TestMergeRenamedSubsections(t *testing.T) {
	tests := []struct {
		name     string
		input    []SubsectionDiff
		expected []SubsectionDiff
	}{
		{
			name: "rename only",
			input: []SubsectionDiff{
				{Name: "Apply", Status: StatusAdd, NewValue: " Same body. "},
				{Name: "Submit", Status: StatusDelete, OldValue: "Same body."},
			},
			expected: []SubsectionDiff{
				{Name: "<del>Submit</del><ins>Apply</ins>", Status: StatusUpdate, OldValue: "Same body.", NewValue: "Same body."},
			},
		},
		{
			name: "shared heading",
			input: []SubsectionDiff{
				{Name: "Visit SAM.gov", Status: StatusAdd, NewValue: "New."},
				{Name: "<p>SAM.gov</p>", Status: StatusDelete, OldValue: "Old.", ComparisonType: nofo.ComparisonName},
			},
			expected: []SubsectionDiff{
				{
					Name:           "<ins>Visit </ins>SAM.gov",
					Status:         StatusUpdate,
					OldValue:       "Old.",
					NewValue:       "New.",
					Diff:           "<del>Old</del><ins>New</ins>.",
					ComparisonType: nofo.ComparisonName,
				},
			},
		},
		{
			name: "unrelated pair",
			input: []SubsectionDiff{
				{Name: "Budget", Status: StatusAdd, NewValue: "Ten."},
				{Name: "Contacts", Status: StatusDelete, OldValue: "Call."},
			},
			expected: []SubsectionDiff{
				{Name: "Budget", Status: StatusAdd, NewValue: "Ten."},
				{Name: "Contacts", Status: StatusDelete, OldValue: "Call."},
			},
		},
		{
			name: "delete before add",
			input: []SubsectionDiff{
				{Name: "Submit", Status: StatusDelete, OldValue: "Same."},
				{Name: "Apply", Status: StatusAdd, NewValue: "Same."},
			},
			expected: []SubsectionDiff{
				{Name: "Submit", Status: StatusDelete, OldValue: "Same."},
				{Name: "Apply", Status: StatusAdd, NewValue: "Same."},
			},
		},
		{
			name: "second pair merges",
			input: []SubsectionDiff{
				{Name: "Budget", Status: StatusAdd, NewValue: "Ten."},
				{Name: "Apply", Status: StatusAdd, NewValue: "Same."},
				{Name: "Submit", Status: StatusDelete, OldValue: "Same."},
			},
			expected: []SubsectionDiff{
				{Name: "Budget", Status: StatusAdd, NewValue: "Ten."},
				{Name: "<del>Submit</del><ins>Apply</ins>", Status: StatusUpdate, OldValue: "Same.", NewValue: "Same."},
			},
		},
		{
			name:     "empty",
			input:    []SubsectionDiff{},
			expected: []SubsectionDiff{},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := MergeRenamedSubsections(tc.input)
			if diff := cmp.Diff(tc.expected, got); diff != "" {
				t.Errorf("MergeRenamedSubsections mismatch (-want +got):\n%s", diff)
			}
			if len(got) > len(tc.input) {
				t.Errorf("result grew from %d to %d rows", len(tc.input), len(got))
			}
			again := MergeRenamedSubsections(got)
			if diff := cmp.Diff(got, again); diff != "" {
				t.Errorf("second merge changed the result (-first +second):\n%s", diff)
			}
		})
	}
}

func TestMergeRenamedSubsections_DoesNotModifyInput(t *testing.T) {
	input := []SubsectionDiff{
		{Name: "Apply", Status: StatusAdd, NewValue: "Same."},
		{Name: "Submit", Status: StatusDelete, OldValue: "Same."},
	}
	snapshot := append([]SubsectionDiff(nil), input...)

	MergeRenamedSubsections(input)

	if diff := cmp.Diff(snapshot, input); diff != "" {
		t.Errorf("input modified (-want +got):\n%s", diff)
	}
}
