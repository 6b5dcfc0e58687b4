// Package compare produces change reports between two versions of a NOFO.
//
// CompareDocuments pairs the subsections of each section across versions
// and classifies every one as MATCH, UPDATE, ADD or DELETE with a word-level
// markup diff. CompareMetadata does the same for flat document attributes.
// AnnotateSections and AnnotateMetadata add separate old/new renderings of
// each diff for side-by-side display.
//
// All functions are pure: they read the input trees, never modify them, and
// return freshly built result slices.
package compare

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/coolbeans/nofodiff/pkg/nofo"
)

// Status classifies a compared unit.
type Status int

const (
	// StatusMatch indicates the unit is unchanged.
	StatusMatch Status = iota
	// StatusUpdate indicates the unit exists in both versions with changes.
	StatusUpdate
	// StatusAdd indicates the unit only exists in the new version.
	StatusAdd
	// StatusDelete indicates the unit only exists in the old version.
	StatusDelete
)

// statusLabels maps statuses to their report labels.
var statusLabels = [...]string{
	StatusMatch:  "MATCH",
	StatusUpdate: "UPDATE",
	StatusAdd:    "ADD",
	StatusDelete: "DELETE",
}

// String returns the upper-case label of the status.
func (s Status) String() string {
	if s >= 0 && int(s) < len(statusLabels) {
		return statusLabels[s]
	}
	return "UNKNOWN"
}

// ParseStatus converts a label such as "update" or "UPDATE" into a Status.
func ParseStatus(label string) (Status, error) {
	normalized := strings.ToUpper(strings.TrimSpace(label))
	for status, candidate := range statusLabels {
		if candidate == normalized {
			return Status(status), nil
		}
	}
	return StatusMatch, fmt.Errorf("unknown status %q", label)
}

// MarshalJSON implements json.Marshaler for Status.
func (s Status) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON implements json.Unmarshaler for Status.
func (s *Status) UnmarshalJSON(data []byte) error {
	var label string
	if err := json.Unmarshal(data, &label); err != nil {
		return err
	}
	parsed, err := ParseStatus(label)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// SubsectionDiff is one row of a section comparison.
type SubsectionDiff struct {
	// Name is the subsection heading. Rows merged from a rename carry a
	// heading diff with <ins>/<del> markup.
	Name string `json:"name"`

	// Status classifies the row.
	Status Status `json:"status"`

	// OldValue is the body in the old version (empty for ADD).
	OldValue string `json:"old_value"`

	// NewValue is the body in the new version (empty for DELETE).
	NewValue string `json:"new_value"`

	// Diff is the word-level markup diff, a policy placeholder, or empty.
	Diff string `json:"diff"`

	// ComparisonType and DiffStrings are carried from the subsection.
	ComparisonType nofo.ComparisonType `json:"comparison_type,omitempty"`
	DiffStrings    []string            `json:"diff_strings,omitempty"`

	// OldDiff and NewDiff are the side-by-side renderings of Diff, set by
	// AnnotateSections. Both are empty when Diff is empty.
	OldDiff string `json:"old_diff,omitempty"`
	NewDiff string `json:"new_diff,omitempty"`
}

// SectionDiff groups the subsection rows of one section.
type SectionDiff struct {
	Name        string           `json:"name"`
	Subsections []SubsectionDiff `json:"subsections"`
}

// MetadataDiff is one row of a metadata comparison, keyed by field label.
type MetadataDiff struct {
	// Key is the metadata attribute compared.
	Key string `json:"key"`

	// Name is the human-readable field label.
	Name string `json:"name"`

	Status   Status `json:"status"`
	OldValue string `json:"old_value"`
	NewValue string `json:"new_value"`
	Diff     string `json:"diff"`
	OldDiff  string `json:"old_diff,omitempty"`
	NewDiff  string `json:"new_diff,omitempty"`
}

// hasChanges reports whether any row is not a MATCH.
func hasChanges(rows []SubsectionDiff) bool {
	for _, row := range rows {
		if row.Status != StatusMatch {
			return true
		}
	}
	return false
}
