package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRunPrintsValuesFromStdin(t *testing.T) {
	var stdout bytes.Buffer
	exitCode := run(
		[]string{"jpq", "$.items[*].name"},
		strings.NewReader(`{"items": [{"name": "a"}, {"name": "b"}]}`),
		&stdout,
	)
	if exitCode != 0 {
		t.Fatalf("run() exitCode = %d, want 0; stdout: %s", exitCode, stdout.String())
	}
	if got := stdout.String(); got != "a\nb\n" {
		t.Fatalf("stdout = %q, want %q", got, "a\nb\n")
	}
}

func TestRunPrintsPathsFromFile(t *testing.T) {
	tempDir := t.TempDir()
	docFile := filepath.Join(tempDir, "doc.json")
	if err := os.WriteFile(docFile, []byte(`{"a": {"b": 1}}`), 0644); err != nil {
		t.Fatal(err)
	}

	var stdout bytes.Buffer
	exitCode := run(
		[]string{"jpq", "-paths", "-file", docFile, "$.a.b"},
		strings.NewReader(""),
		&stdout,
	)
	if exitCode != 0 {
		t.Fatalf("run() exitCode = %d, want 0", exitCode)
	}
	if got := strings.TrimSpace(stdout.String()); got != "$['a']['b']" {
		t.Fatalf("stdout = %q, want %q", got, "$['a']['b']")
	}
}

func TestRunReturnsNonZeroForMalformedQuery(t *testing.T) {
	var stdout bytes.Buffer
	exitCode := run(
		[]string{"jpq", "$.a{"},
		strings.NewReader(`{}`),
		&stdout,
	)
	if exitCode != 1 {
		t.Fatalf("run() exitCode = %d, want 1", exitCode)
	}
}

func TestRunReturnsNonZeroWithoutAQueryOrBatchFile(t *testing.T) {
	var stdout bytes.Buffer
	exitCode := run([]string{"jpq"}, strings.NewReader(""), &stdout)
	if exitCode != 1 {
		t.Fatalf("run() exitCode = %d, want 1", exitCode)
	}
}

func TestRunBatchModeReportsPerEntryResults(t *testing.T) {
	tempDir := t.TempDir()
	manifestFile := filepath.Join(tempDir, "manifest.yaml")
	manifest := `
entries:
  - id: names
    document: '{"items": [{"name": "a"}]}'
    query: "$.items[*].name"
`
	if err := os.WriteFile(manifestFile, []byte(manifest), 0644); err != nil {
		t.Fatal(err)
	}

	var stdout bytes.Buffer
	exitCode := run(
		[]string{"jpq", "-batch", manifestFile},
		strings.NewReader(""),
		&stdout,
	)
	if exitCode != 0 {
		t.Fatalf("run() exitCode = %d, want 0; stdout: %s", exitCode, stdout.String())
	}
	if !strings.Contains(stdout.String(), "$['items'][0]['name'] a") {
		t.Fatalf("stdout = %q, want it to contain the matched node", stdout.String())
	}
}
