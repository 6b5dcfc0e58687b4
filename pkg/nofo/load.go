package nofo

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads a document from a YAML or JSON file. The document ID defaults to
// the file path when the file does not set one.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}

	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if doc.ID == "" {
		doc.ID = path
	}
	return doc, nil
}

// Parse decodes a document from YAML (JSON is accepted as a YAML subset).
// Subsections without an explicit order are numbered by their position in
// the section.
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}

	for _, section := range doc.Sections {
		if section == nil {
			continue
		}
		for i, subsection := range section.Subsections {
			if subsection != nil && subsection.Order == 0 {
				subsection.Order = i + 1
			}
		}
	}
	return &doc, nil
}
