package doctor

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/sickn33/agskills/internal/errors"
	"github.com/sickn33/agskills/internal/git"
	"github.com/sickn33/agskills/internal/paths"
	"github.com/sickn33/agskills/internal/skill"
)

const (
	categoryEnvironment = "environment"
	categoryInstall     = "install"
)

// GitCheck verifies that the git client can be run.
type GitCheck struct {
	// Binary is the git executable. Defaults to "git".
	Binary string
}

var _ Check = (*GitCheck)(nil)

func (c *GitCheck) Name() string     { return "git" }
func (c *GitCheck) Category() string { return categoryEnvironment }

func (c *GitCheck) Run(ctx context.Context) *CheckResult {
	bin := c.Binary
	if bin == "" {
		bin = "git"
	}

	path, err := exec.LookPath(bin)
	if err != nil {
		return &CheckResult{
			Status:  SeverityError,
			Message: fmt.Sprintf("%s not found", bin),
			FixHint: "Install git and make sure it is on your PATH",
		}
	}

	out, err := exec.CommandContext(ctx, path, "--version").Output()
	if err != nil {
		return &CheckResult{
			Status:  SeverityError,
			Message: fmt.Sprintf("%s --version failed: %v", path, err),
			Details: map[string]any{"path": path},
		}
	}

	version := strings.TrimSpace(string(out))
	return &CheckResult{
		Status:  SeverityPass,
		Message: version,
		Details: map[string]any{"path": path, "version": version},
	}
}

// HomeCheck verifies that a home directory can be resolved.
type HomeCheck struct {
	Lookup paths.LookupFunc
}

var _ Check = (*HomeCheck)(nil)

func (c *HomeCheck) Name() string     { return "home" }
func (c *HomeCheck) Category() string { return categoryEnvironment }

func (c *HomeCheck) Run(_ context.Context) *CheckResult {
	home, err := paths.ResolveHome(c.Lookup)
	if err != nil {
		return &CheckResult{
			Status:  SeverityError,
			Message: "neither HOME nor USERPROFILE is set",
			FixHint: "Set HOME, or install with --path <absolute-path>",
		}
	}
	return &CheckResult{
		Status:  SeverityPass,
		Message: "home directory is " + home,
		Details: map[string]any{"path": home},
	}
}

// ConfigCheck reports the outcome of loading the configuration file.
type ConfigCheck struct {
	// Err is the error returned by config.Load, if any.
	Err error
}

var _ Check = (*ConfigCheck)(nil)

func (c *ConfigCheck) Name() string     { return "config" }
func (c *ConfigCheck) Category() string { return categoryEnvironment }

func (c *ConfigCheck) Run(_ context.Context) *CheckResult {
	if c.Err != nil {
		return &CheckResult{
			Status:  SeverityError,
			Message: c.Err.Error(),
			FixHint: "Check your agskills config.yaml",
		}
	}
	return &CheckResult{Status: SeverityPass, Message: "configuration loaded"}
}

// WritableDirCheck verifies that files can be created in Dir. A missing Dir
// is not created; its nearest existing ancestor is checked instead.
type WritableDirCheck struct {
	CheckName string
	Dir       string
}

var _ Check = (*WritableDirCheck)(nil)

func (c *WritableDirCheck) Name() string     { return c.CheckName }
func (c *WritableDirCheck) Category() string { return categoryEnvironment }

func (c *WritableDirCheck) Run(_ context.Context) *CheckResult {
	details := map[string]any{"path": c.Dir}

	dir, err := existingAncestor(c.Dir)
	if err != nil {
		return &CheckResult{
			Status:  SeverityError,
			Message: fmt.Sprintf("cannot create %s: %v", c.Dir, err),
			Details: details,
		}
	}

	f, err := os.CreateTemp(dir, ".agskills-doctor-*")
	if err != nil {
		return &CheckResult{
			Status:  SeverityError,
			Message: fmt.Sprintf("%s is not writable: %v", dir, err),
			Details: details,
			FixHint: "Check the permissions of " + dir,
		}
	}
	name := f.Name()
	_ = f.Close()
	_ = os.Remove(name)

	if dir != c.Dir {
		details["ancestor"] = dir
		return &CheckResult{Status: SeverityPass, Message: c.Dir + " can be created", Details: details}
	}
	return &CheckResult{Status: SeverityPass, Message: c.Dir + " is writable", Details: details}
}

// existingAncestor returns dir itself or the closest ancestor that exists.
// It fails when that path is not a directory.
func existingAncestor(dir string) (string, error) {
	for {
		info, err := os.Stat(dir)
		switch {
		case err == nil && info.IsDir():
			return dir, nil
		case err == nil:
			return "", errors.Newf("%s is not a directory", dir)
		case !errors.Is(err, fs.ErrNotExist) && !errors.Is(err, syscall.ENOTDIR):
			return "", err
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", err
		}
		dir = parent
	}
}

// AgentCheck reports the state of one agent's skills directory.
type AgentCheck struct {
	Agent  string
	Lookup paths.LookupFunc
}

var _ Check = (*AgentCheck)(nil)

func (c *AgentCheck) Name() string     { return "agent-" + c.Agent }
func (c *AgentCheck) Category() string { return categoryInstall }

func (c *AgentCheck) Run(_ context.Context) *CheckResult {
	home, _ := paths.ResolveHome(c.Lookup)
	dir := paths.SkillsDir(c.Agent, home, c.Lookup)
	name := paths.DisplayName(c.Agent)
	if dir == "" {
		return &CheckResult{Status: SeverityInfo, Message: name + ": skills directory unknown without a home directory"}
	}

	details := map[string]any{"path": dir}
	info, err := os.Stat(dir)
	switch {
	case os.IsNotExist(err):
		return &CheckResult{Status: SeverityInfo, Message: name + ": not installed", Details: details}
	case err != nil:
		return &CheckResult{Status: SeverityError, Message: fmt.Sprintf("%s: cannot stat %s: %v", name, dir, err), Details: details}
	case !info.IsDir():
		return &CheckResult{
			Status:  SeverityError,
			Message: fmt.Sprintf("%s: %s is not a directory", name, dir),
			Details: details,
			FixHint: "Move the file away, then run agskills --" + c.Agent,
		}
	}

	if git.IsRepo(dir) {
		return &CheckResult{
			Status:  SeverityWarning,
			Message: fmt.Sprintf("%s: %s is a full repository checkout from an older installer", name, dir),
			Details: details,
			FixHint: "Run 'agskills --" + c.Agent + "' to migrate to the skills-only layout",
		}
	}

	ids, err := skill.ListIDs(dir)
	if err != nil {
		return &CheckResult{Status: SeverityError, Message: fmt.Sprintf("%s: %v", name, err), Details: details}
	}
	details["skills"] = len(ids)
	return &CheckResult{
		Status:  SeverityPass,
		Message: fmt.Sprintf("%s: %d skills in %s", name, len(ids), dir),
		Details: details,
	}
}
