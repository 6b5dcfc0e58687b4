package compare

import (
	"strings"

	"github.com/coolbeans/nofodiff/pkg/markup"
	"github.com/coolbeans/nofodiff/pkg/worddiff"
)

// MergeRenamedSubsections collapses an ADD row immediately followed by a
// DELETE row into a single UPDATE when the pair looks like one renamed
// subsection: either the bodies are identical after trimming, or the two
// headings still share some text once the changed words are removed.
//
// The merged row carries the heading diff as its name and takes its
// comparison policy from the DELETE row. The input slice is not modified.
// The result is never longer than diffs and merging it again is a no-op.
func MergeRenamedSubsections(diffs []SubsectionDiff) []SubsectionDiff {
	merged := make([]SubsectionDiff, 0, len(diffs))
	for i := 0; i < len(diffs); {
		if i+1 < len(diffs) && diffs[i].Status == StatusAdd && diffs[i+1].Status == StatusDelete {
			if row, ok := mergeRename(diffs[i], diffs[i+1]); ok {
				merged = append(merged, row)
				i += 2
				continue
			}
		}
		merged = append(merged, diffs[i])
		i++
	}
	return merged
}

func mergeRename(added, deleted SubsectionDiff) (SubsectionDiff, bool) {
	newBody := strings.TrimSpace(added.NewValue)
	oldBody := strings.TrimSpace(deleted.OldValue)
	newName := added.Name
	oldName := markup.StripTags(deleted.Name)

	headingDiff := worddiff.Diff(oldName, newName)
	renameOnly := oldBody == newBody
	sharedHeading := strings.TrimSpace(markup.StripChanges(headingDiff)) != ""
	if !renameOnly && !sharedHeading {
		return SubsectionDiff{}, false
	}

	name := headingDiff
	if name == "" {
		name = newName
	}
	return SubsectionDiff{
		Name:           name,
		Status:         StatusUpdate,
		OldValue:       oldBody,
		NewValue:       newBody,
		Diff:           worddiff.Diff(oldBody, newBody),
		ComparisonType: deleted.ComparisonType,
		DiffStrings:    deleted.DiffStrings,
	}, true
}
