package compare

import (
	"strings"

	"github.com/coolbeans/nofodiff/pkg/nofo"
	"github.com/coolbeans/nofodiff/pkg/worddiff"
)

// titlePrefix is prepended to the title of comparison copies.
const titlePrefix = "(COMPARE) "

// MetadataField names a document attribute to compare and its report label.
type MetadataField struct {
	Key   string `yaml:"key" json:"key"`
	Label string `yaml:"label" json:"label"`
}

// Name returns the label, falling back to the key.
func (f MetadataField) Name() string {
	if f.Label != "" {
		return f.Label
	}
	return f.Key
}

// DefaultMetadataFields returns the attributes compared by
// CompareDocumentMetadata, in report order.
func DefaultMetadataFields() []MetadataField {
	return []MetadataField{
		{Key: "title", Label: "NOFO title"},
		{Key: "short_name", Label: "Short name"},
		{Key: "number", Label: "Opportunity number"},
		{Key: "opdiv", Label: "Operating division"},
		{Key: "agency", Label: "Agency"},
		{Key: "subagency", Label: "Subagency"},
		{Key: "subagency2", Label: "Subagency 2"},
		{Key: "tagline", Label: "Tagline"},
		{Key: "application_deadline", Label: "Application deadline"},
		{Key: "cover", Label: "Cover style"},
		{Key: "theme", Label: "Theme"},
	}
}

// CompareDocumentMetadata compares the DefaultMetadataFields of two documents.
func CompareDocumentMetadata(oldDoc, newDoc *nofo.Document) []MetadataDiff {
	return CompareMetadata(oldDoc, newDoc, DefaultMetadataFields())
}

// CompareMetadata classifies each field in fields, in the given order.
// Attributes that are not listed are ignored. Only the empty string counts as
// unset; two set values that differ are an UPDATE even when their word diff
// is empty.
func CompareMetadata(oldDoc, newDoc *nofo.Document, fields []MetadataField) []MetadataDiff {
	results := make([]MetadataDiff, 0, len(fields))
	for _, field := range fields {
		oldValue := oldDoc.Attr(field.Key)
		newValue := newDoc.Attr(field.Key)
		if field.Key == "title" {
			newValue = strings.TrimPrefix(newValue, titlePrefix)
		}
		results = append(results, compareValues(field, oldValue, newValue))
	}
	return results
}

func compareValues(field MetadataField, oldValue, newValue string) MetadataDiff {
	row := MetadataDiff{
		Key:      field.Key,
		Name:     field.Name(),
		Status:   StatusMatch,
		OldValue: oldValue,
		NewValue: newValue,
	}

	switch {
	case oldValue == newValue:
	case oldValue == "":
		row.Status = StatusAdd
		row.Diff = worddiff.Diff("", newValue)
	case newValue == "":
		row.Status = StatusDelete
		row.Diff = worddiff.Diff(oldValue, "")
	default:
		row.Status = StatusUpdate
		row.Diff = worddiff.Diff(oldValue, newValue)
	}
	return row
}
