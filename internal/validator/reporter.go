package validator

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/sickn33/agskills/internal/errors"
)

// Format specifies the output format for validation reports.
type Format string

const (
	// FormatText produces human-readable text output.
	FormatText Format = "text"
	// FormatJSON produces machine-readable JSON output.
	FormatJSON Format = "json"
)

// ParseFormat maps a --format style value to a Format.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatText, "":
		return FormatText, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return "", errors.Newf("unknown report format %q (want text or json)", s)
	}
}

// Reporter formats and writes validation results.
type Reporter struct {
	out     io.Writer
	format  Format
	verbose bool
}

// NewReporter creates a new Reporter. Info issues are printed in text output
// only when verbose is set.
func NewReporter(out io.Writer, format Format, verbose bool) *Reporter {
	return &Reporter{
		out:     out,
		format:  format,
		verbose: verbose,
	}
}

// Report writes the validation result to the output.
func (r *Reporter) Report(result *Result) error {
	if result == nil {
		return nil
	}

	switch r.format {
	case FormatJSON:
		return r.reportJSON(result)
	default:
		return r.reportText(result)
	}
}

func (r *Reporter) reportJSON(result *Result) error {
	if result.Issues == nil {
		result.Issues = []Issue{}
	}
	encoder := json.NewEncoder(r.out)
	encoder.SetIndent("", "  ")
	return errors.Wrap(encoder.Encode(result), "encoding JSON report")
}

func (r *Reporter) reportText(result *Result) error {
	if result.Title != "" {
		fmt.Fprintln(r.out, result.Title)
	}

	for _, issue := range result.Issues {
		switch issue.Severity {
		case SeverityError:
			fmt.Fprintf(r.out, "%s %s\n", color.RedString("[ERROR]"), issue.Message)
		case SeverityWarning:
			fmt.Fprintf(r.out, "%s %s\n", color.YellowString("[WARN]"), issue.Message)
		default:
			if r.verbose {
				fmt.Fprintf(r.out, "%s %s\n", color.New(color.FgHiBlack).Sprint("[INFO]"), issue.Message)
			}
		}
	}

	if result.Summary != "" {
		fmt.Fprintln(r.out, result.Summary)
	}
	return nil
}
