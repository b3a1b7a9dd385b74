// Package commands implements the CLI commands for agskills.
package commands

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/sickn33/agskills/internal/config"
	"github.com/sickn33/agskills/internal/errors"
	"github.com/sickn33/agskills/internal/logging"
)

// verbosity holds the count of -v flags.
var verbosity int

// quiet holds the value of the -q/--quiet flag.
var quiet bool

// logFormat holds the value of the --log-format flag.
var logFormat string

// logFile holds the path to the log file.
var logFile string

// configFile holds the value of the --config flag.
var configFile string

// cfg is the loaded configuration. It is replaced by initConfig.
var cfg = config.Default()

// configLoadErr holds any error that occurred during config loading.
var configLoadErr error

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v",
		"increase verbosity level (e.g., -v, -vv)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false,
		"suppress non-error output")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text",
		"log format: text, json")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "",
		"write logs to file in JSON format")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "",
		"config file (default: $XDG_CONFIG_HOME/agskills/config.yaml)")

	addInstallFlags(rootCmd, &rootInstall)

	// unknown flags and stray words such as "install" are ignored
	rootCmd.FParseErrWhitelist = cobra.FParseErrWhitelist{UnknownFlags: true}
	rootCmd.Args = cobra.ArbitraryArgs

	rootCmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		return errors.NewUserError(err, "Run '"+c.CommandPath()+" --help' for usage")
	})

	// Silence errors and usage so main controls error output
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
}

func initConfig() {
	config.Init()
	loaded, err := config.Load(configFile)
	if err != nil {
		configLoadErr = err
		return
	}
	cfg = loaded
}

var rootCmd = &cobra.Command{
	Use:   "agskills [install] [flags]",
	Short: "Install the agent skills collection into your AI assistant",
	Long: `agskills clones the skills repository and copies its skills into the
skills directory of your AI coding assistant, one directory per skill.

Without flags the skills go to ~/.gemini/antigravity/skills. Pick another
assistant with an agent flag, or any directory with --path. Running it again
updates an existing install in place; an old full-repository checkout is
migrated to the skills-only layout.`,
	Example: `  agskills
  agskills --cursor
  agskills --kiro
  agskills --antigravity
  agskills --version 4.6.0
  agskills --path ./my-skills

  See Also: agskills validate, agskills refs, agskills fix`,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if err := setupLogging(cmd); err != nil {
			return err
		}
		switch cmd.Name() {
		case "help", "version", "doctor":
			// doctor reports config errors itself
			return nil
		}
		if configLoadErr != nil {
			return errors.NewConfigError(configLoadErr)
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runInstall(cmd, &rootInstall)
	},
}

// setupLogging configures the default logger based on verbosity flags.
func setupLogging(cmd *cobra.Command) error {
	if quiet && verbosity > 0 {
		return errors.NewUserError(errors.New("--quiet and --verbose are mutually exclusive"), "Use only one of -q or -v")
	}

	var level slog.Level
	if quiet {
		level = slog.LevelError
	} else {
		v := verbosity

		// CLI flags take precedence, but if not set, check env var
		if v == 0 {
			if val, ok := os.LookupEnv("AGSKILLS_DEBUG"); ok {
				switch val {
				case "1", "true":
					v = 2
				case "2":
					v = 3
				}
			}
		}
		level = logging.LevelFromVerbosity(v)
	}

	var file *os.File
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return errors.NewUserError(errors.Wrapf(err, "opening log file %s", logFile), "Check the --log-file path")
		}
		file = f
	}

	lc := logging.Config{
		Level:  level,
		Format: logging.Format(logFormat),
		Output: cmd.ErrOrStderr(),
	}
	if file != nil {
		lc.File = file
	}
	logger := logging.New(lc)
	slog.SetDefault(logger)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(logging.NewContext(ctx, logger))

	return nil
}

// Execute runs the root command with ctx, which is cancelled on interrupt.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}
