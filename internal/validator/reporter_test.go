package validator

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/fatih/color"
)

func TestReporter_Report(t *testing.T) {
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = false })

	result := &Result{Title: "Checking YAML validity for 2 skills...", Checked: 2}
	result.AddWarning("foo", "No frontmatter in foo")
	result.AddInfo("bar", "No \"When to Use\" section in bar")
	result.Summary = "ok (1 skills with frontmatter warnings)"

	t.Run("text format", func(t *testing.T) {
		var buf bytes.Buffer
		if err := NewReporter(&buf, FormatText, false).Report(result); err != nil {
			t.Fatalf("Report() error: %v", err)
		}

		want := "Checking YAML validity for 2 skills...\n" +
			"[WARN] No frontmatter in foo\n" +
			"ok (1 skills with frontmatter warnings)\n"
		if buf.String() != want {
			t.Errorf("output = %q, want %q", buf.String(), want)
		}
	})

	t.Run("verbose text shows info", func(t *testing.T) {
		var buf bytes.Buffer
		if err := NewReporter(&buf, FormatText, true).Report(result); err != nil {
			t.Fatalf("Report() error: %v", err)
		}
		if !strings.Contains(buf.String(), "[INFO] No \"When to Use\" section in bar") {
			t.Errorf("output missing info line: %q", buf.String())
		}
	})

	t.Run("json format", func(t *testing.T) {
		var buf bytes.Buffer
		if err := NewReporter(&buf, FormatJSON, false).Report(result); err != nil {
			t.Fatalf("Report() error: %v", err)
		}

		var decoded Result
		if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
			t.Fatalf("failed to decode JSON output: %v", err)
		}
		if len(decoded.Issues) != 2 {
			t.Errorf("decoded issues count = %d, want 2", len(decoded.Issues))
		}
		if decoded.Issues[0].Severity != SeverityWarning || decoded.Issues[0].Subject != "foo" {
			t.Errorf("first issue = %+v", decoded.Issues[0])
		}
		if !strings.Contains(buf.String(), `"severity": "warning"`) {
			t.Error("severity should be encoded by name")
		}
	})

	t.Run("errors", func(t *testing.T) {
		r := &Result{}
		r.AddError("bundles.json", "bundles.json bundle 'web' lists missing skill: nope")
		var buf bytes.Buffer
		if err := NewReporter(&buf, FormatText, false).Report(r); err != nil {
			t.Fatalf("Report() error: %v", err)
		}
		if buf.String() != "[ERROR] bundles.json bundle 'web' lists missing skill: nope\n" {
			t.Errorf("output = %q", buf.String())
		}
	})

	t.Run("empty json has issues array", func(t *testing.T) {
		var buf bytes.Buffer
		if err := NewReporter(&buf, FormatJSON, false).Report(&Result{}); err != nil {
			t.Fatalf("Report() error: %v", err)
		}
		if !strings.Contains(buf.String(), `"issues": []`) {
			t.Errorf("output = %q", buf.String())
		}
	})
}
