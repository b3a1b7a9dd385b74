package logging

import (
	"bytes"
	"testing"
)

func TestSupportsColor(t *testing.T) {
	tests := []struct {
		name  string
		env   map[string]string
		isTTY bool
		want  bool
	}{
		{"NO_COLOR prevents color", map[string]string{"NO_COLOR": "1"}, true, false},
		{"TERM=dumb prevents color", map[string]string{"TERM": "dumb"}, true, false},
		{"non-TTY prevents color", map[string]string{"TERM": "xterm"}, false, false},
		{"TTY with normal TERM", map[string]string{"TERM": "xterm-256color"}, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TERM", "")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if _, ok := tt.env["NO_COLOR"]; !ok {
				unsetForTest(t, "NO_COLOR")
			}

			if got := supportsColor(&bytes.Buffer{}, tt.isTTY); got != tt.want {
				t.Errorf("supportsColor() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsTTY_NonFile(t *testing.T) {
	if IsTTY(&bytes.Buffer{}) {
		t.Error("IsTTY should return false for a bytes.Buffer")
	}
}
