package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestMultiHandler_RespectsEachLevel(t *testing.T) {
	var warnBuf, debugBuf bytes.Buffer
	h := NewMultiHandler(
		NewHandler(&warnBuf, &slog.HandlerOptions{Level: slog.LevelWarn}),
		slog.NewJSONHandler(&debugBuf, &slog.HandlerOptions{Level: slog.LevelDebug}),
	)
	logger := slog.New(h).With("run", 1)

	logger.Debug("copying skill", "name", "brainstorming")
	logger.Warn("no frontmatter", "skill", "legacy")

	if strings.Contains(warnBuf.String(), "copying skill") {
		t.Error("warn handler received a debug record")
	}
	if !strings.Contains(warnBuf.String(), "no frontmatter") {
		t.Error("warn handler missed a warn record")
	}
	if strings.Count(debugBuf.String(), "\n") != 2 {
		t.Errorf("debug handler should receive both records, got %q", debugBuf.String())
	}
	if !strings.Contains(debugBuf.String(), `"run":1`) {
		t.Errorf("WithAttrs not propagated: %q", debugBuf.String())
	}
}
