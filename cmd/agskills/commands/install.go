package commands

import (
	"fmt"
	"os"

	"github.com/ktr0731/go-fuzzyfinder"
	"github.com/spf13/cobra"

	"github.com/sickn33/agskills/internal/errors"
	"github.com/sickn33/agskills/internal/git"
	"github.com/sickn33/agskills/internal/install"
	"github.com/sickn33/agskills/internal/logging"
	"github.com/sickn33/agskills/internal/paths"
)

// installFlags holds the installer flag values of one command.
type installFlags struct {
	path    string
	version string
	tag     string
	repo    string
	pick    bool
	agents  map[string]*bool
}

// rootInstall and subInstall back the same flags on the root command and
// on the install subcommand.
var rootInstall, subInstall installFlags

func init() {
	addInstallFlags(installCmd, &subInstall)
	installCmd.FParseErrWhitelist = cobra.FParseErrWhitelist{UnknownFlags: true}
	rootCmd.AddCommand(installCmd)
}

func addInstallFlags(cmd *cobra.Command, f *installFlags) {
	flags := cmd.Flags()
	flags.StringVar(&f.path, "path", "", "install to `dir` (default: ~/.gemini/antigravity/skills)")
	flags.StringVar(&f.version, "version", "", "after clone, check out tag v<`ver`> (e.g. 4.6.0 -> v4.6.0)")
	flags.StringVar(&f.tag, "tag", "", "after clone, check out this `tag` (e.g. v4.6.0)")
	flags.StringVar(&f.repo, "repo", "", "clone this repository `url` instead of the configured one")
	flags.BoolVar(&f.pick, "select", false, "choose the agent interactively")

	f.agents = make(map[string]*bool, len(paths.Agents()))
	for _, agent := range paths.Agents() {
		f.agents[agent] = flags.Bool(agent, false, "install to "+agentHint(agent))
	}
}

func agentHint(agent string) string {
	dir := paths.SkillsDir(agent, "~", nil)
	return fmt.Sprintf("%s (%s)", dir, paths.DisplayName(agent))
}

// selected returns the agents whose flags are set.
func (f *installFlags) selected() []string {
	var out []string
	for _, agent := range paths.Agents() {
		if p := f.agents[agent]; p != nil && *p {
			out = append(out, agent)
		}
	}
	return out
}

var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Install or update the skills (same as running agskills with no command)",
	Long: `Clone the skills repository into a temporary directory and copy its
skills into the target directory, one directory per skill. docs/ is copied
to <target>/docs.

The target is --path if given, otherwise the directory of the highest
priority agent flag (cursor, claude, gemini, codex, kiro, antigravity),
otherwise the configured default_agent, otherwise Antigravity.

An existing target is updated in place. A target that is a full git
checkout from an older install is emptied first.`,
	Args: cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runInstall(cmd, &subInstall)
	},
}

func runInstall(cmd *cobra.Command, f *installFlags) error {
	ctx := cmd.Context()
	logger := logging.FromContext(ctx)
	out := cmd.OutOrStdout()

	opts := install.Options{
		Path:    f.path,
		Version: f.version,
		Tag:     f.tag,
		Agents:  f.selected(),
	}

	if f.pick && opts.Path == "" {
		agent, err := pickAgent()
		if err != nil {
			return err
		}
		if agent == "" {
			return nil
		}
		opts.Agents = []string{agent}
	}

	target, err := install.ResolveTarget(opts, cfg.DefaultAgent, os.LookupEnv)
	if err != nil {
		return err
	}

	repoURL := f.repo
	if repoURL == "" {
		repoURL = cfg.RepoURL
	}
	logger.Info("installing skills", "repo", logging.MaskURL(repoURL), "target", target)

	runner := git.NewRunner(cfg.GitBinary)
	runner.Stdout = out
	runner.Stderr = cmd.ErrOrStderr()

	in := &install.Installer{
		Git:           runner,
		RepoURL:       repoURL,
		Out:           out,
		CloneAttempts: cfg.CloneAttempts,
		RetryDelay:    install.DefaultRetryDelay,
	}
	if cfg.Lock {
		in.LockDir = paths.LockDir()
	}

	res, err := in.Run(ctx, opts, target)
	if err != nil {
		return err
	}
	logger.Info("install complete", "target", res.Target, "state", res.State, "skills", res.Entries)
	return nil
}

// pickAgent lets the user choose an agent with a fuzzy finder.
// Returns "" if the user aborts.
func pickAgent() (string, error) {
	if !logging.IsInteractive() {
		return "", errors.NewUserError(errors.New("--select needs an interactive terminal"), "Use an agent flag such as --claude instead")
	}

	agents := paths.Agents()
	idx, err := fuzzyfinder.Find(
		agents,
		func(i int) string {
			return paths.DisplayName(agents[i])
		},
		fuzzyfinder.WithPreviewWindow(func(i, _, _ int) string {
			if i == -1 {
				return ""
			}
			return "Installs to " + paths.SkillsDir(agents[i], "~", nil)
		}),
	)
	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			return "", nil
		}
		return "", errors.Wrap(err, "agent selection failed")
	}
	return agents[idx], nil
}
