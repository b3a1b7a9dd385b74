package commands

import (
	"github.com/spf13/cobra"

	"github.com/sickn33/agskills/internal/fix"
)

var (
	fixDryRun bool
	fixGlob   string
)

func init() {
	fixCmd.PersistentFlags().BoolVarP(&fixDryRun, "dry-run", "n", false,
		"print a diff of each change instead of writing it")
	fixLinksCmd.Flags().StringVar(&fixGlob, "glob", fix.DefaultLinkPattern,
		"doublestar `pattern` selecting the markdown files to scan")

	fixCmd.AddCommand(fixMetadataCmd, fixQuotesCmd, fixLinksCmd)
	rootCmd.AddCommand(fixCmd)
}

var fixCmd = &cobra.Command{
	Use:   "fix",
	Short: "Repair common problems in a skills repository",
	Long: `Repair common problems in the SKILL.md files of a skills repository.

Each fixer takes the directory to scan (default: "skills"), prints every file
it changes and a total. Use --dry-run to preview the edits as diffs.`,
}

var fixMetadataCmd = &cobra.Command{
	Use:   "metadata [dir]",
	Short: "Set name to the skill folder and shorten long descriptions",
	Long: `Rewrite the frontmatter of every SKILL.md so that name matches the
folder that holds it, and truncate descriptions longer than 200 characters.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := newFixRunner(cmd).Metadata(cmd.Context(), fixDir(args))
		return err
	},
}

var fixQuotesCmd = &cobra.Command{
	Use:   "quotes [dir]",
	Short: "Quote descriptions that would not parse as YAML",
	Long: `Re-encode every description as a double-quoted string so that colons,
hashes and other YAML indicators inside it no longer break the frontmatter.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := newFixRunner(cmd).Quotes(cmd.Context(), fixDir(args))
		return err
	},
}

var fixLinksCmd = &cobra.Command{
	Use:   "links [dir]",
	Short: "Replace relative links to missing files with their text",
	Long: `Scan markdown files for relative links whose target does not exist
and replace each with its link text. Web, mailto, anchor-only and absolute
links are left alone.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := newFixRunner(cmd).Links(cmd.Context(), fixDir(args), fixGlob)
		return err
	},
}

func newFixRunner(cmd *cobra.Command) *fix.Runner {
	return &fix.Runner{Out: cmd.OutOrStdout(), DryRun: fixDryRun}
}

func fixDir(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return "skills"
}
