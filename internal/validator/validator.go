package validator

import (
	"github.com/sickn33/agskills/internal/errors"
)

// Severity represents the impact of a validation issue.
type Severity int

const (
	// SeverityError indicates a broken reference or other blocking problem.
	SeverityError Severity = iota
	// SeverityWarning indicates an advisory problem.
	SeverityWarning
	// SeverityInfo indicates a note shown only in verbose output.
	SeverityInfo
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityInfo:
		return "info"
	default:
		return "unknown"
	}
}

// MarshalText renders the severity by name in JSON reports.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText parses a severity name.
func (s *Severity) UnmarshalText(text []byte) error {
	switch string(text) {
	case "error":
		*s = SeverityError
	case "warning":
		*s = SeverityWarning
	case "info":
		*s = SeverityInfo
	default:
		return errors.Newf("unknown severity %q", text)
	}
	return nil
}

// Issue represents a single validation problem.
type Issue struct {
	Severity Severity `json:"severity"`
	// Subject is the skill id or file the issue is about.
	Subject string `json:"subject"`
	// Message is the complete human-readable line.
	Message string `json:"message"`
}

// Result aggregates the issues of one check.
type Result struct {
	// Title is printed before the issues in text output.
	Title string `json:"title,omitempty"`
	// Checked is the number of items examined.
	Checked int `json:"checked"`
	// Issues in the order they were found.
	Issues []Issue `json:"issues"`
	// Summary is printed after the issues in text output.
	Summary string `json:"summary,omitempty"`
	// Counts holds named tallies for machine-readable output.
	Counts map[string]int `json:"counts,omitempty"`
}

// HasErrors returns true if any issue has SeverityError.
func (r *Result) HasErrors() bool {
	return r.count(SeverityError) > 0
}

// HasWarnings returns true if any issue has SeverityWarning.
func (r *Result) HasWarnings() bool {
	return r.count(SeverityWarning) > 0
}

// AddError adds an error issue to the result.
func (r *Result) AddError(subject, message string) {
	r.add(SeverityError, subject, message)
}

// AddWarning adds a warning issue to the result.
func (r *Result) AddWarning(subject, message string) {
	r.add(SeverityWarning, subject, message)
}

// AddInfo adds an info issue to the result.
func (r *Result) AddInfo(subject, message string) {
	r.add(SeverityInfo, subject, message)
}

func (r *Result) add(sev Severity, subject, message string) {
	r.Issues = append(r.Issues, Issue{Severity: sev, Subject: subject, Message: message})
}

// Errors returns a slice of all issues with SeverityError.
func (r *Result) Errors() []Issue {
	return r.filter(SeverityError)
}

// Warnings returns a slice of all issues with SeverityWarning.
func (r *Result) Warnings() []Issue {
	return r.filter(SeverityWarning)
}

// SubjectsWith returns the number of distinct subjects with at least one
// issue of the given severity.
func (r *Result) SubjectsWith(sev Severity) int {
	seen := map[string]bool{}
	for _, i := range r.filter(sev) {
		seen[i.Subject] = true
	}
	return len(seen)
}

func (r *Result) count(sev Severity) int {
	return len(r.filter(sev))
}

func (r *Result) filter(sev Severity) []Issue {
	if r == nil {
		return nil
	}
	var res []Issue
	for _, i := range r.Issues {
		if i.Severity == sev {
			res = append(res, i)
		}
	}
	return res
}
