package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/sickn33/agskills/internal/doctor"
	"github.com/sickn33/agskills/internal/errors"
	"github.com/sickn33/agskills/internal/paths"
)

var doctorJSON bool

func init() {
	doctorCmd.Flags().BoolVar(&doctorJSON, "json", false,
		"output results as JSON")
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Diagnose problems with the install environment",
	Long: `Check that git can be run, that a home directory is known, that the
temporary and lock directories are writable, and report the skills directory
of every supported agent.

Errors and warnings are always shown; use -v to also list passed checks.

Exit codes:
  0 - All checks passed (no errors or warnings)
  1 - Warnings present, no errors
  2 - Errors present`,
	Args: cobra.NoArgs,
	RunE: runDoctor,
}

func runDoctor(cmd *cobra.Command, _ []string) error {
	runner := doctor.NewRunner()
	runner.AddCheck(&doctor.ConfigCheck{Err: configLoadErr})
	runner.AddCheck(&doctor.GitCheck{Binary: cfg.GitBinary})
	runner.AddCheck(&doctor.HomeCheck{Lookup: os.LookupEnv})
	runner.AddCheck(&doctor.WritableDirCheck{CheckName: "temp-dir", Dir: os.TempDir()})
	if cfg.Lock {
		runner.AddCheck(&doctor.WritableDirCheck{CheckName: "lock-dir", Dir: paths.LockDir()})
	}
	for _, agent := range paths.Agents() {
		runner.AddCheck(&doctor.AgentCheck{Agent: agent, Lookup: os.LookupEnv})
	}

	report := runner.Run(cmd.Context())

	out := cmd.OutOrStdout()
	if doctorJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return errors.Wrap(err, "encoding JSON")
		}
	} else {
		writeDoctorText(out, report, verbosity > 0)
	}

	if report.HasErrors() {
		return errors.NewSystemError(errDoctorErrors, "")
	}
	if report.HasWarnings() {
		return errors.NewUserError(errDoctorWarnings, "")
	}
	return nil
}

func writeDoctorText(w io.Writer, report *doctor.Report, showAll bool) {
	hasOutput := false
	for _, result := range report.Results {
		problem := result.Status == doctor.SeverityError || result.Status == doctor.SeverityWarning
		if !showAll && !problem {
			continue
		}

		hasOutput = true
		fmt.Fprintf(w, "%s [%s] %s: %s\n", statusIcon(result.Status), result.Category, result.Name, result.Message)
		if result.FixHint != "" && problem {
			fmt.Fprintf(w, "  hint: %s\n", result.FixHint)
		}
	}

	if hasOutput {
		fmt.Fprintln(w)
	}
	fmt.Fprintf(w, "Summary: %d passed, %d info, %d warnings, %d errors\n",
		report.Summary.Passed, report.Summary.Info, report.Summary.Warnings, report.Summary.Errors)
}

func statusIcon(s doctor.Severity) string {
	switch s {
	case doctor.SeverityPass:
		return "✓"
	case doctor.SeverityInfo:
		return "ℹ"
	case doctor.SeverityWarning:
		return "⚠"
	case doctor.SeverityError:
		return "✗"
	default:
		return "?"
	}
}

// errDoctorWarnings is reported with exit code 1.
var errDoctorWarnings = errors.New("doctor found warnings")

// errDoctorErrors is reported with exit code 2.
var errDoctorErrors = errors.New("doctor found errors")
