package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const oldNOFO = `
id: v1
metadata:
  title: Rural Health Outreach
  subagency2: AGDP text
sections:
  - name: "Step 1: Review the Opportunity"
    subsections:
      - name: Deadlines
        order: 1
        body: Submit before Jan 1.
      - name: Eligibility
        order: 2
        body: States may apply.
`

const newNOFO = `
id: v2
metadata:
  title: (COMPARE) Rural Health Outreach
sections:
  - name: "Step 1: Review the Opportunity"
    subsections:
      - name: Deadlines
        order: 1
        body: Submit before Feb 1.
      - name: Eligibility
        order: 2
        body: States may apply.
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := rootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestCompare_JSON(t *testing.T) {
	dir := t.TempDir()
	oldPath := writeFile(t, dir, "old.yaml", oldNOFO)
	newPath := writeFile(t, dir, "new.yaml", newNOFO)

	out, err := run(t, "compare", oldPath, newPath, "--format", "json", "--changed")
	if err != nil {
		t.Fatalf("compare: %v", err)
	}

	var decoded struct {
		Sections []struct {
			Subsections []struct {
				Name   string `json:"name"`
				Status string `json:"status"`
				Diff   string `json:"diff"`
			} `json:"subsections"`
		} `json:"sections"`
		Metadata []struct {
			Key    string `json:"key"`
			Status string `json:"status"`
		} `json:"metadata"`
	}
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}

	if len(decoded.Sections) != 1 || len(decoded.Sections[0].Subsections) != 1 {
		t.Fatalf("expected one changed subsection, got %+v", decoded.Sections)
	}
	row := decoded.Sections[0].Subsections[0]
	if row.Name != "Deadlines" || row.Status != "UPDATE" || !strings.Contains(row.Diff, "<del>Jan</del><ins>Feb</ins>") {
		t.Errorf("unexpected row %+v", row)
	}
	if len(decoded.Metadata) != 1 || decoded.Metadata[0].Key != "subagency2" || decoded.Metadata[0].Status != "DELETE" {
		t.Errorf("unexpected metadata %+v", decoded.Metadata)
	}
}

func TestCompare_TextToFile(t *testing.T) {
	dir := t.TempDir()
	oldPath := writeFile(t, dir, "old.yaml", oldNOFO)
	newPath := writeFile(t, dir, "new.yaml", newNOFO)
	reportPath := filepath.Join(dir, "report.txt")

	if _, err := run(t, "compare", oldPath, newPath, "--output", reportPath, "--color", "always"); err != nil {
		t.Fatalf("compare: %v", err)
	}

	data, err := os.ReadFile(reportPath)
	if err != nil {
		t.Fatalf("report not written: %v", err)
	}
	if !strings.Contains(string(data), "[-Jan-]{+Feb+}") {
		t.Errorf("expected plain markers in file output:\n%s", data)
	}
}

func TestCompare_ExitCode(t *testing.T) {
	dir := t.TempDir()
	oldPath := writeFile(t, dir, "old.yaml", oldNOFO)
	newPath := writeFile(t, dir, "new.yaml", newNOFO)

	if _, err := run(t, "compare", oldPath, newPath, "--exit-code"); !errors.Is(err, errChanges) {
		t.Errorf("expected errChanges, got %v", err)
	}
	if _, err := run(t, "compare", oldPath, oldPath, "--exit-code"); err != nil {
		t.Errorf("expected no error comparing a file with itself, got %v", err)
	}
}

func TestCompare_InvalidFlags(t *testing.T) {
	dir := t.TempDir()
	oldPath := writeFile(t, dir, "old.yaml", oldNOFO)

	tests := [][]string{
		{"compare", oldPath, oldPath, "--format", "pdf"},
		{"compare", oldPath, oldPath, "--where", "status =="},
		{"compare", oldPath, filepath.Join(dir, "missing.yaml")},
		{"compare", oldPath},
	}
	for _, args := range tests {
		if _, err := run(t, args...); err == nil {
			t.Errorf("expected error for %v", args)
		}
	}
}

func TestMetadata(t *testing.T) {
	dir := t.TempDir()
	oldPath := writeFile(t, dir, "old.yaml", oldNOFO)
	newPath := writeFile(t, dir, "new.yaml", newNOFO)

	out, err := run(t, "metadata", oldPath, newPath, "--color", "never")
	if err != nil {
		t.Fatalf("metadata: %v", err)
	}
	if !strings.Contains(out, "[-AGDP text-]") {
		t.Errorf("expected subagency 2 deletion:\n%s", out)
	}
	if strings.Contains(out, "Deadlines") {
		t.Errorf("expected no section rows:\n%s", out)
	}
}

func TestValidate(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.yaml", oldNOFO)
	bad := writeFile(t, dir, "bad.yaml", `
sections:
  - name: Step 1
    subsections:
      - name: A
        order: 1
      - name: B
        order: 3
`)

	out, err := run(t, "validate", good)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if !strings.Contains(out, "ok") || !strings.Contains(out, "1 sections, 2 subsections") {
		t.Errorf("unexpected output %q", out)
	}

	out, err = run(t, "validate", good, bad)
	if err == nil {
		t.Fatal("expected validation failure")
	}
	if !strings.Contains(out, "FAIL "+bad) || !strings.Contains(out, "missing 2") {
		t.Errorf("unexpected output %q", out)
	}
}
