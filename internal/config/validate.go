package config

import (
	"fmt"
	"strings"

	"github.com/sickn33/agskills/internal/errors"
	"github.com/sickn33/agskills/internal/paths"
)

// Validation errors for configuration fields.
var (
	// ErrVersionTooLow indicates the version field is below the minimum.
	ErrVersionTooLow = errors.New("version must be >= 1")

	// ErrInvalidAgent indicates an unrecognized default_agent value.
	ErrInvalidAgent = errors.New("invalid agent")

	// ErrEmptyField indicates a required string field is blank.
	ErrEmptyField = errors.New("must not be empty")

	// ErrOutOfRange indicates a numeric field outside its allowed range.
	ErrOutOfRange = errors.Newf("must be between 1 and %d", MaxCloneAttempts)
)

// MaxCloneAttempts bounds clone_attempts.
const MaxCloneAttempts = 5

// FieldError ties a validation error to a config key.
type FieldError struct {
	Field string
	Value string
	Err   error
}

func (e *FieldError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("%s: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("%s %q: %v", e.Field, e.Value, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// Validate checks a Config for validity.
// Returns nil if valid, or every problem found.
func Validate(cfg *Config) []error {
	if cfg == nil {
		return []error{errors.New("config is nil")}
	}

	var errs []error

	if cfg.Version < 1 {
		errs = append(errs, ErrVersionTooLow)
	}

	if cfg.DefaultAgent != "" && !paths.ValidAgent(cfg.DefaultAgent) {
		errs = append(errs, &FieldError{
			Field: "default_agent",
			Value: cfg.DefaultAgent,
			Err:   errors.WithDetail(ErrInvalidAgent, "valid: "+strings.Join(paths.Agents(), ", ")),
		})
	}

	if strings.TrimSpace(cfg.RepoURL) == "" {
		errs = append(errs, &FieldError{Field: "repo_url", Err: ErrEmptyField})
	}
	if strings.TrimSpace(cfg.GitBinary) == "" {
		errs = append(errs, &FieldError{Field: "git_binary", Err: ErrEmptyField})
	}

	if cfg.CloneAttempts < 1 || cfg.CloneAttempts > MaxCloneAttempts {
		errs = append(errs, &FieldError{Field: "clone_attempts", Value: fmt.Sprint(cfg.CloneAttempts), Err: ErrOutOfRange})
	}

	return errs
}
