// Package errors provides error handling conventions for the agskills CLI.
//
// It is a thin facade over [github.com/cockroachdb/errors] so that callers
// import a single errors package, plus an [ExitError] type that carries the
// process exit code and an optional suggestion for the user.
//
// # Exit Codes
//
//   - ExitSuccess (0): Command completed successfully
//   - ExitUser (1): User-related error (invalid input, configuration, etc.)
//   - ExitSystem (2): System-related error (I/O, permissions, etc.)
//
// Errors from a failed git subprocess carry the child's own exit status.
//
// # ExitError
//
//	err := errors.NewUserError(errors.ErrInvalidConfig, "Check your config file")
//	os.Exit(errors.ExitCode(err))
package errors
