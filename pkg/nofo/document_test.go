package nofo

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleYAML = `id: nofo-v2
metadata:
  title: Community Health Grants
  agency: CDC
sections:
  - name: "Step 1: Review the Opportunity"
    subsections:
      - name: Basic information
        body: <p>Apply by Jan 1.</p>
      - body: <p>Unnamed paragraph.</p>
        comparison_type: diff_strings
        diff_strings: [data, program]
  - name: "Step 2: Get Ready to Apply"
    subsections:
      - name: SAM.gov
        order: 1
        body: Visit the website to sign up.
`

func TestParse(t *testing.T) {
	doc, err := Parse([]byte(sampleYAML))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if doc.ID != "nofo-v2" {
		t.Errorf("expected id %q, got %q", "nofo-v2", doc.ID)
	}
	if got := doc.Attr("agency"); got != "CDC" {
		t.Errorf("expected agency CDC, got %q", got)
	}
	if got := doc.Attr("missing"); got != "" {
		t.Errorf("expected empty attribute, got %q", got)
	}
	if len(doc.Sections) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(doc.Sections))
	}

	first := doc.Sections[0]
	if first.Subsections[0].Order != 1 || first.Subsections[1].Order != 2 {
		t.Errorf("expected positional orders 1,2, got %d,%d",
			first.Subsections[0].Order, first.Subsections[1].Order)
	}
	unnamed := first.Subsections[1]
	if unnamed.Named() {
		t.Error("expected second subsection to be unnamed")
	}
	if unnamed.ComparisonType != ComparisonDiffStrings {
		t.Errorf("expected diff_strings comparison type, got %q", unnamed.ComparisonType)
	}
	if len(unnamed.DiffStrings) != 2 {
		t.Errorf("expected 2 diff strings, got %v", unnamed.DiffStrings)
	}
	if doc.SubsectionCount() != 3 {
		t.Errorf("expected 3 subsections, got %d", doc.SubsectionCount())
	}
	if doc.Section("Step 2: Get Ready to Apply") == nil {
		t.Error("expected to find section by name")
	}
	if doc.Section("Step 9") != nil {
		t.Error("expected nil for unknown section")
	}
}

func TestParse_JSON(t *testing.T) {
	data := `{"metadata": {"title": "JSON NOFO"}, "sections": [{"name": "A", "subsections": [{"name": "x", "body": "y"}]}]}`
	doc, err := Parse([]byte(data))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if doc.Attr("title") != "JSON NOFO" {
		t.Errorf("unexpected title %q", doc.Attr("title"))
	}
	if doc.Sections[0].Subsections[0].Order != 1 {
		t.Errorf("expected default order 1, got %d", doc.Sections[0].Subsections[0].Order)
	}
}

func TestParse_Invalid(t *testing.T) {
	if _, err := Parse([]byte("sections: [unterminated")); err == nil {
		t.Error("expected error for malformed YAML")
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nofo.yaml")
	content := strings.Replace(sampleYAML, "id: nofo-v2\n", "", 1)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	doc, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if doc.ID != path {
		t.Errorf("expected ID to default to path %q, got %q", path, doc.ID)
	}

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestOrdered(t *testing.T) {
	section := &Section{
		Name: "S",
		Subsections: []*Subsection{
			{Name: "c", Order: 3},
			nil,
			{Name: "a", Order: 1},
			{Name: "b", Order: 2},
		},
	}

	ordered := section.Ordered()
	var names []string
	for _, subsection := range ordered {
		names = append(names, subsection.Name)
	}
	if strings.Join(names, ",") != "a,b,c" {
		t.Errorf("expected a,b,c, got %v", names)
	}
	if section.Subsections[0].Name != "c" {
		t.Error("Ordered must not reorder the section")
	}
}

func TestComparisonTypeKnown(t *testing.T) {
	tests := []struct {
		input    ComparisonType
		expected bool
	}{
		{ComparisonDefault, true},
		{ComparisonNone, true},
		{ComparisonName, true},
		{ComparisonDiffStrings, true},
		{ComparisonBody, true},
		{ComparisonType("everything"), false},
	}

	for _, tc := range tests {
		if got := tc.input.Known(); got != tc.expected {
			t.Errorf("ComparisonType(%q).Known(): expected %v, got %v", tc.input, tc.expected, got)
		}
	}
}

func TestValidate(t *testing.T) {
	valid, err := Parse([]byte(sampleYAML))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if err := Validate(valid); err != nil {
		t.Errorf("expected valid document, got %v", err)
	}

	if !errors.Is(Validate(nil), ErrNilDocument) {
		t.Error("expected ErrNilDocument for nil document")
	}

	invalid := &Document{
		Sections: []*Section{
			{
				Name: "Eligibility",
				Subsections: []*Subsection{
					{Name: "a", Order: 1},
					{Name: "b", Order: 1},
					{Name: "c", Order: 4, ComparisonType: "everything"},
				},
			},
			{Name: ""},
		},
	}
	err = Validate(invalid)
	if err == nil {
		t.Fatal("expected validation errors")
	}
	message := err.Error()
	for _, want := range []string{
		"duplicate subsection order 1",
		"missing 2",
		"missing 3",
		"section 2: name is required",
		`section Eligibility: subsection 4: unknown comparison_type "everything"`,
	} {
		if !strings.Contains(message, want) {
			t.Errorf("expected error to mention %q, got:\n%s", want, message)
		}
	}
}
