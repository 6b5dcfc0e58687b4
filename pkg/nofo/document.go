// Package nofo defines the document tree compared by nofodiff: a notice of
// funding opportunity (NOFO) made of ordered sections, each holding ordered
// subsections with markup bodies, plus a flat map of metadata attributes.
//
// The tree is built by an import pipeline outside this module (or loaded
// from a YAML/JSON file with Load) and is treated as read-only by the
// comparison engine.
package nofo

import "sort"

// ComparisonType selects how strictly a subsection body is compared when it
// changes between two versions.
type ComparisonType string

const (
	// ComparisonDefault applies the full body comparison.
	ComparisonDefault ComparisonType = ""
	// ComparisonNone drops the subsection from comparison reports entirely.
	ComparisonNone ComparisonType = "none"
	// ComparisonName only reports changes to the subsection heading.
	ComparisonName ComparisonType = "name"
	// ComparisonDiffStrings only checks that a set of required strings is present.
	ComparisonDiffStrings ComparisonType = "diff_strings"
	// ComparisonBody explicitly requests the full body comparison.
	ComparisonBody ComparisonType = "body"
)

// Known reports whether t is one of the comparison types understood by the
// policy step. Unknown values behave like ComparisonBody.
func (t ComparisonType) Known() bool {
	switch t {
	case ComparisonDefault, ComparisonNone, ComparisonName, ComparisonDiffStrings, ComparisonBody:
		return true
	default:
		return false
	}
}

// Document is one version of a NOFO.
type Document struct {
	// ID identifies the document version (file path, database key, ...).
	ID string `yaml:"id,omitempty" json:"id,omitempty"`

	// Metadata holds flat document attributes such as title or agency.
	Metadata map[string]string `yaml:"metadata,omitempty" json:"metadata,omitempty"`

	// Sections are the top-level divisions in document order.
	Sections []*Section `yaml:"sections" json:"sections"`
}

// Section is a top-level structural division. Sections are matched across
// versions by Name.
type Section struct {
	Name        string        `yaml:"name" json:"name"`
	Subsections []*Subsection `yaml:"subsections" json:"subsections"`
}

// Subsection is a content unit within a Section. Name may be empty.
type Subsection struct {
	// Name is the subsection heading; unnamed subsections are common.
	Name string `yaml:"name,omitempty" json:"name,omitempty"`

	// Order is the 1-based position within the parent section.
	Order int `yaml:"order" json:"order"`

	// Body is the semi-structured markup content.
	Body string `yaml:"body" json:"body"`

	// ComparisonType overrides how changes to this subsection are reported.
	ComparisonType ComparisonType `yaml:"comparison_type,omitempty" json:"comparison_type,omitempty"`

	// DiffStrings lists substrings that must remain present when
	// ComparisonType is ComparisonDiffStrings.
	DiffStrings []string `yaml:"diff_strings,omitempty" json:"diff_strings,omitempty"`
}

// Attr returns the metadata attribute stored under key, or "" when absent.
func (d *Document) Attr(key string) string {
	if d == nil || d.Metadata == nil {
		return ""
	}
	return d.Metadata[key]
}

// Section returns the first section named name, or nil.
func (d *Document) Section(name string) *Section {
	if d == nil {
		return nil
	}
	for _, section := range d.Sections {
		if section != nil && section.Name == name {
			return section
		}
	}
	return nil
}

// SubsectionCount returns the number of subsections across all sections.
func (d *Document) SubsectionCount() int {
	if d == nil {
		return 0
	}
	count := 0
	for _, section := range d.Sections {
		if section != nil {
			count += len(section.Subsections)
		}
	}
	return count
}

// Ordered returns the section's subsections sorted by Order. Subsections
// sharing an order keep their slice position. Nil entries are skipped. The
// section itself is not modified.
func (s *Section) Ordered() []*Subsection {
	if s == nil {
		return nil
	}
	ordered := make([]*Subsection, 0, len(s.Subsections))
	for _, subsection := range s.Subsections {
		if subsection != nil {
			ordered = append(ordered, subsection)
		}
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Order < ordered[j].Order
	})
	return ordered
}

// Named reports whether the subsection carries a non-empty heading.
func (s *Subsection) Named() bool {
	return s != nil && s.Name != ""
}
