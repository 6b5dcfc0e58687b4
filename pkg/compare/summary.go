package compare

// StatusCounts tallies rows per status.
type StatusCounts struct {
	Match  int `json:"match"`
	Update int `json:"update"`
	Add    int `json:"add"`
	Delete int `json:"delete"`
}

func (c *StatusCounts) add(status Status) {
	switch status {
	case StatusMatch:
		c.Match++
	case StatusUpdate:
		c.Update++
	case StatusAdd:
		c.Add++
	case StatusDelete:
		c.Delete++
	}
}

// Total returns the number of rows counted.
func (c StatusCounts) Total() int {
	return c.Match + c.Update + c.Add + c.Delete
}

// Changed returns the number of rows that are not MATCH.
func (c StatusCounts) Changed() int {
	return c.Update + c.Add + c.Delete
}

// Summary aggregates a comparison.
type Summary struct {
	Sections    int          `json:"sections"`
	Subsections StatusCounts `json:"subsections"`
	Metadata    StatusCounts `json:"metadata"`
}

// Summarize counts the rows of a section and metadata comparison.
func Summarize(sections []SectionDiff, metadata []MetadataDiff) Summary {
	summary := Summary{Sections: len(sections)}
	for _, section := range sections {
		for _, row := range section.Subsections {
			summary.Subsections.add(row.Status)
		}
	}
	for _, row := range metadata {
		summary.Metadata.add(row.Status)
	}
	return summary
}
