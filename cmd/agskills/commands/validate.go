package commands

import (
	"github.com/spf13/cobra"

	"github.com/sickn33/agskills/internal/errors"
	"github.com/sickn33/agskills/internal/skill"
	"github.com/sickn33/agskills/internal/validator"
)

var (
	validateJSON   bool
	validateFormat string
)

func init() {
	validateCmd.Flags().BoolVar(&validateJSON, "json", false,
		"output results as JSON (same as --format json)")
	validateCmd.Flags().StringVar(&validateFormat, "format", string(validator.FormatText),
		"report format: text or json")
	rootCmd.AddCommand(validateCmd)
}

var validateCmd = &cobra.Command{
	Use:   "validate [dir]",
	Short: "Check the frontmatter of every skill",
	Long: `Check the YAML frontmatter of every SKILL.md below dir (default: the
configured skills_dir, "skills").

Missing or unparseable frontmatter is reported as a warning. Skills without
a "When to Use" heading are listed with -v. Warnings never fail the command.

Exit codes:
  0 - Check completed (warnings do not count)
  1 - The skills directory could not be read`,
	Args: cobra.MaximumNArgs(1),
	RunE: runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	dir := cfg.SkillsDir
	if len(args) > 0 {
		dir = args[0]
	}

	format, err := reportFormat(validateFormat, validateJSON)
	if err != nil {
		return err
	}

	result, err := skill.Validate(cmd.Context(), dir)
	if err != nil {
		return err
	}
	return validator.NewReporter(cmd.OutOrStdout(), format, verbosity > 0).Report(result)
}

// reportFormat resolves --format, with --json taking precedence.
func reportFormat(name string, asJSON bool) (validator.Format, error) {
	if asJSON {
		return validator.FormatJSON, nil
	}
	format, err := validator.ParseFormat(name)
	if err != nil {
		return "", errors.NewUserError(err, "Use --format text or --format json.")
	}
	return format, nil
}
