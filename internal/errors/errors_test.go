package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestExitError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *ExitError
		want string
	}{
		{
			name: "with underlying error",
			err:  NewExitError(ErrNotFound, ExitUser),
			want: "not found",
		},
		{
			name: "with wrapped error",
			err:  NewExitError(fmt.Errorf("loading config: %w", ErrInvalidConfig), ExitUser),
			want: "loading config: invalid configuration",
		},
		{
			name: "nil underlying error",
			err:  NewExitError(nil, 128),
			want: "exit code 128",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("ExitError.Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExitError_Unwrap(t *testing.T) {
	err := NewExitError(Wrap(ErrNotFound, "reading skills"), ExitUser)
	if !Is(err, ErrNotFound) {
		t.Error("Is() should find ErrNotFound through ExitError and Wrap")
	}
	if Is(err, ErrInvalidConfig) {
		t.Error("Is() matched an unrelated sentinel")
	}
	if !stderrors.Is(err, ErrNotFound) {
		t.Error("standard library errors.Is should also see the sentinel")
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"plain error", New("boom"), ExitUser},
		{"user error", NewUserError(New("bad flag"), ""), ExitUser},
		{"system error", NewSystemError(New("disk full"), ""), ExitSystem},
		{"child status", NewExitError(New("git clone failed"), 128), 128},
		{"wrapped exit error", Wrap(NewExitError(New("git checkout failed"), 1), "install"), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExitCode(tt.err); got != tt.want {
				t.Errorf("ExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestSuggestion(t *testing.T) {
	inner := NewUserError(New("home directory not found"), "Use --path <absolute-path>.")
	outer := NewExitError(Wrap(inner, "resolving target"), ExitUser)

	if got := Suggestion(outer); got != "Use --path <absolute-path>." {
		t.Errorf("Suggestion() = %q, want inner suggestion", got)
	}
	if got := Suggestion(New("plain")); got != "" {
		t.Errorf("Suggestion() on plain error = %q, want empty", got)
	}
}

func TestConstructors(t *testing.T) {
	t.Run("NewExitErrorWithSuggestion", func(t *testing.T) {
		e := NewExitErrorWithSuggestion(New("x"), ExitSystem, "try this")
		if e.Code != ExitSystem {
			t.Errorf("Code = %d, want %d", e.Code, ExitSystem)
		}
		if e.Suggestion != "try this" {
			t.Errorf("Suggestion = %q, want 'try this'", e.Suggestion)
		}
	})

	t.Run("NewConfigError", func(t *testing.T) {
		e := NewConfigError(ErrInvalidConfig)
		if e.Code != ExitUser {
			t.Errorf("Code = %d, want %d", e.Code, ExitUser)
		}
		if e.Suggestion == "" {
			t.Error("NewConfigError should carry a suggestion")
		}
	})
}

func TestNewf(t *testing.T) {
	err := Newf("skill %q missing", "foo")
	if err.Error() != `skill "foo" missing` {
		t.Errorf("Newf() = %q", err.Error())
	}
	if Wrap(nil, "ctx") != nil {
		t.Error("Wrap(nil) should return nil")
	}
}

func TestJoin(t *testing.T) {
	if Join(nil, nil) != nil {
		t.Error("Join(nil, nil) should be nil")
	}
	err := Join(New("first"), nil, ErrNotFound)
	if !Is(err, ErrNotFound) {
		t.Error("Join() result should match a joined sentinel")
	}
}

func TestMark(t *testing.T) {
	err := Mark(New("default_agent: invalid agent"), ErrInvalidConfig)
	if !Is(err, ErrInvalidConfig) {
		t.Error("Mark() result should match the reference")
	}
	if err.Error() != "default_agent: invalid agent" {
		t.Errorf("Mark() changed the message: %q", err.Error())
	}
}
