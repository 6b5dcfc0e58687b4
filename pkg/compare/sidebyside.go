package compare

import "github.com/coolbeans/nofodiff/pkg/markup"

// SideBySide splits a combined diff into its old and new renderings. The old
// rendering keeps <del> spans and empties <ins> spans; the new rendering
// does the reverse. An empty diff yields two empty renderings.
func SideBySide(diff string) (oldDiff, newDiff string) {
	if diff == "" {
		return "", ""
	}
	return markup.OldSide(diff), markup.NewSide(diff)
}

// AnnotateSections returns a copy of sections with OldDiff and NewDiff set
// on every row.
func AnnotateSections(sections []SectionDiff) []SectionDiff {
	out := make([]SectionDiff, len(sections))
	for i, section := range sections {
		out[i] = SectionDiff{
			Name:        section.Name,
			Subsections: AnnotateSubsections(section.Subsections),
		}
	}
	return out
}

// AnnotateSubsections returns a copy of rows with OldDiff and NewDiff set.
func AnnotateSubsections(rows []SubsectionDiff) []SubsectionDiff {
	out := make([]SubsectionDiff, len(rows))
	for i, row := range rows {
		row.OldDiff, row.NewDiff = SideBySide(row.Diff)
		out[i] = row
	}
	return out
}

// AnnotateMetadata returns a copy of rows with OldDiff and NewDiff set.
func AnnotateMetadata(rows []MetadataDiff) []MetadataDiff {
	out := make([]MetadataDiff, len(rows))
	for i, row := range rows {
		row.OldDiff, row.NewDiff = SideBySide(row.Diff)
		out[i] = row
	}
	return out
}
