// Package config provides configuration management for agskills using Viper.
package config

import (
	"github.com/spf13/viper"

	"github.com/sickn33/agskills/internal/errors"
	"github.com/sickn33/agskills/internal/paths"
)

// DefaultRepoURL is the upstream skills collection.
const DefaultRepoURL = "https://github.com/sickn33/antigravity-awesome-skills.git"

// Config represents the top-level configuration structure.
type Config struct {
	Version int `mapstructure:"version" yaml:"version"`
	// RepoURL is the repository cloned by install.
	RepoURL string `mapstructure:"repo_url" yaml:"repo_url"`
	// GitBinary is the git executable name or path.
	GitBinary string `mapstructure:"git_binary" yaml:"git_binary"`
	// DefaultAgent is used when no agent flag and no --path are given.
	DefaultAgent string `mapstructure:"default_agent" yaml:"default_agent"`
	// Lock serializes concurrent installs into the same target.
	Lock bool `mapstructure:"lock" yaml:"lock"`
	// CloneAttempts is how many times a failed clone is tried in total.
	CloneAttempts int `mapstructure:"clone_attempts" yaml:"clone_attempts"`
	// SkillsDir is the directory checked by validate when no argument is given.
	SkillsDir string `mapstructure:"skills_dir" yaml:"skills_dir"`
}

// Init configures Viper's search path, environment binding and defaults.
// Call this once at application startup before accessing config values.
func Init() {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(paths.ConfigDir())

	// AGSKILLS_REPO_URL, AGSKILLS_LOCK, ...
	viper.SetEnvPrefix("AGSKILLS")
	viper.AutomaticEnv()

	viper.SetDefault("version", 1)
	viper.SetDefault("repo_url", DefaultRepoURL)
	viper.SetDefault("git_binary", "git")
	viper.SetDefault("default_agent", "")
	viper.SetDefault("lock", true)
	viper.SetDefault("clone_attempts", 1)
	viper.SetDefault("skills_dir", "skills")
}

// Load reads the configuration file.
// If path is provided, it reads from that specific file and a missing file is
// an error. If path is empty, the default location is searched and a missing
// file yields the defaults.
func Load(path string) (*Config, error) {
	if path != "" {
		viper.SetConfigFile(path)
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case errors.As(err, &notFound) && path == "":
			// implicit load, defaults apply
		case errors.As(err, &notFound):
			return nil, errors.Wrapf(err, "config file not found at %s", path)
		default:
			return nil, errors.Wrap(err, "reading config file")
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshaling config")
	}

	if errs := Validate(&cfg); len(errs) > 0 {
		return nil, errors.Wrap(errors.Mark(errs[0], errors.ErrInvalidConfig), "validating config")
	}

	return &cfg, nil
}

// Default returns the configuration used when no file or environment
// overrides exist.
func Default() *Config {
	return &Config{
		Version:       1,
		RepoURL:       DefaultRepoURL,
		GitBinary:     "git",
		Lock:          true,
		CloneAttempts: 1,
		SkillsDir:     "skills",
	}
}
