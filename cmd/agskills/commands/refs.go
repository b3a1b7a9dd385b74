package commands

import (
	"github.com/spf13/cobra"

	"github.com/sickn33/agskills/internal/refs"
	"github.com/sickn33/agskills/internal/validator"
)

var (
	refsJSON   bool
	refsFormat string
)

func init() {
	refsCmd.Flags().BoolVar(&refsJSON, "json", false,
		"output results as JSON (same as --format json)")
	refsCmd.Flags().StringVar(&refsFormat, "format", string(validator.FormatText),
		"report format: text or json")
	rootCmd.AddCommand(refsCmd)
}

var refsCmd = &cobra.Command{
	Use:   "refs [root]",
	Short: "Check workflow and bundle references against the skills",
	Long: `Check that every skill named by data/workflows.json, data/bundles.json
and docs/BUNDLES.md exists under skills/, and that workflows only relate to
bundles that exist. root is the repository root (default: ".").

Exit codes:
  0 - All references resolve
  1 - A reference is broken or a catalog file is missing`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRefs,
}

func runRefs(cmd *cobra.Command, args []string) error {
	root := "."
	if len(args) > 0 {
		root = args[0]
	}

	format, err := reportFormat(refsFormat, refsJSON)
	if err != nil {
		return err
	}

	result, err := refs.Check(cmd.Context(), root)
	if err != nil {
		return err
	}
	if err := validator.NewReporter(cmd.OutOrStdout(), format, verbosity > 0).Report(result); err != nil {
		return err
	}
	return refs.Err(result)
}
