// Package logging provides structured logging for the agskills CLI using slog.
//
// Human-facing progress lines ("Installed to ...") are written directly to
// the command's stdout. Everything else goes through a [log/slog] logger
// configured here: a colorized text handler on a terminal, JSON on request,
// and an optional JSON log file fanned out through [MultiHandler].
//
// # Basic Usage
//
//	logger := logging.New(logging.Config{
//		Level:  slog.LevelInfo,
//		Format: logging.FormatText,
//		Output: os.Stderr,
//	})
//	ctx = logging.NewContext(ctx, logger)
//	logging.FromContext(ctx).Debug("cloning", "url", url)
//
// # Testing
//
// Use [ForTest] to route log output through the testing framework.
//
// # Redaction
//
// Attribute values whose key looks sensitive, values carrying a known token
// prefix, and credentials embedded in URLs are masked before they are
// written.
package logging
