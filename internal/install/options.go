package install

import (
	"path/filepath"
	"slices"

	"github.com/sickn33/agskills/internal/errors"
	"github.com/sickn33/agskills/internal/paths"
)

// Options are the user's installer choices.
type Options struct {
	// Path is an explicit target directory. It overrides agent selection.
	// A leading "~" expands to the home directory; relative paths are made
	// absolute against the working directory.
	Path string
	// Version checks out tag "v<Version>" after cloning.
	Version string
	// Tag checks out this ref after cloning. It takes precedence over Version.
	Tag string
	// Agents are the agent flags given, in any order.
	Agents []string
}

// HomeSuggestion is shown when the home directory cannot be resolved.
const HomeSuggestion = "Could not resolve home directory. Use --path <absolute-path>."

// Agent returns the agent whose directory is used when no Path is given:
// the highest priority agent flag, else fallback, else paths.DefaultAgent.
func (o Options) Agent(fallback string) string {
	for _, a := range paths.Agents() {
		if slices.Contains(o.Agents, a) {
			return a
		}
	}
	if fallback != "" {
		return fallback
	}
	return paths.DefaultAgent
}

// ResolveTarget computes the absolute install directory for opts.
// defaultAgent is the configured agent used when no agent flag is given.
//
// The home directory comes from HOME, then USERPROFILE. When neither is set
// only an absolute Path can be used; anything else fails with
// paths.ErrHomeDirNotFound before the file system is touched.
func ResolveTarget(opts Options, defaultAgent string, lookup paths.LookupFunc) (string, error) {
	home, homeErr := paths.ResolveHome(lookup)

	if opts.Path != "" {
		p, err := paths.ExpandHome(opts.Path, home)
		if err != nil {
			return "", errors.NewUserError(err, HomeSuggestion)
		}
		if homeErr != nil && !filepath.IsAbs(p) {
			return "", errors.NewUserError(homeErr, HomeSuggestion)
		}
		abs, err := filepath.Abs(p)
		if err != nil {
			return "", errors.NewUserError(errors.Wrapf(err, "resolving %s", opts.Path), "")
		}
		return abs, nil
	}

	if homeErr != nil {
		return "", errors.NewUserError(homeErr, HomeSuggestion)
	}

	agent := opts.Agent(defaultAgent)
	dir := paths.SkillsDir(agent, home, lookup)
	if dir == "" {
		return "", errors.NewUserError(errors.Newf("unknown agent %q", agent), "")
	}
	return filepath.Abs(dir)
}
