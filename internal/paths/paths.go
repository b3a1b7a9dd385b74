package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/cockroachdb/errors"
)

// AppName is used for the config and cache subdirectories.
const AppName = "agskills"

// Agent identifiers for supported AI coding assistants.
const (
	AgentCursor      = "cursor"
	AgentClaude      = "claude"
	AgentGemini      = "gemini"
	AgentCodex       = "codex"
	AgentKiro        = "kiro"
	AgentAntigravity = "antigravity"
)

// DefaultAgent is used when neither --path nor an agent flag is given.
const DefaultAgent = AgentAntigravity

// agentDir describes where an agent keeps its skills.
type agentDir struct {
	display string
	// rel is relative to the home directory.
	rel []string
	// homeEnv, when set in the environment, replaces "<home>/<rel[0]>".
	homeEnv string
}

var agentDirs = map[string]agentDir{
	AgentCursor:      {display: "Cursor", rel: []string{".cursor", "skills"}},
	AgentClaude:      {display: "Claude Code", rel: []string{".claude", "skills"}},
	AgentGemini:      {display: "Gemini CLI", rel: []string{".gemini", "skills"}},
	AgentCodex:       {display: "Codex CLI", rel: []string{".codex", "skills"}, homeEnv: "CODEX_HOME"},
	AgentKiro:        {display: "Kiro CLI", rel: []string{".kiro", "skills"}},
	AgentAntigravity: {display: "Antigravity", rel: []string{".gemini", "antigravity", "skills"}},
}

// ErrHomeDirNotFound indicates the user's home directory could not be determined.
var ErrHomeDirNotFound = errors.New("home directory not found")

// LookupFunc reads an environment variable. os.LookupEnv satisfies it.
type LookupFunc func(key string) (string, bool)

// Agents returns all agent identifiers in flag priority order.
func Agents() []string {
	return []string{
		AgentCursor,
		AgentClaude,
		AgentGemini,
		AgentCodex,
		AgentKiro,
		AgentAntigravity,
	}
}

// ValidAgent returns true if the agent name is recognized.
func ValidAgent(agent string) bool {
	_, ok := agentDirs[agent]
	return ok
}

// DisplayName returns a human-readable agent name, or the identifier itself
// for unknown agents.
func DisplayName(agent string) string {
	if d, ok := agentDirs[agent]; ok {
		return d.display
	}
	return agent
}

// ResolveHome returns HOME, falling back to USERPROFILE.
// Returns ErrHomeDirNotFound if neither is set to a non-empty value.
func ResolveHome(lookup LookupFunc) (string, error) {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	for _, key := range []string{"HOME", "USERPROFILE"} {
		if v, ok := lookup(key); ok && v != "" {
			return v, nil
		}
	}
	return "", errors.WithDetail(ErrHomeDirNotFound, "neither HOME nor USERPROFILE is set")
}

// SkillsDir returns the skills directory for agent.
//
//   - cursor: ~/.cursor/skills
//   - claude: ~/.claude/skills
//   - gemini: ~/.gemini/skills
//   - codex: $CODEX_HOME/skills, else ~/.codex/skills
//   - kiro: ~/.kiro/skills
//   - antigravity: ~/.gemini/antigravity/skills
//
// Returns an empty string for unknown agents, or when home is empty and no
// environment override applies.
func SkillsDir(agent, home string, lookup LookupFunc) string {
	d, ok := agentDirs[agent]
	if !ok {
		return ""
	}
	if d.homeEnv != "" && lookup != nil {
		if v, ok := lookup(d.homeEnv); ok && v != "" {
			return filepath.Join(append([]string{v}, d.rel[1:]...)...)
		}
	}
	if home == "" {
		return ""
	}
	return filepath.Join(append([]string{home}, d.rel...)...)
}

// ExpandHome replaces a leading "~" segment in p with home.
// "~" and "~/x" are expanded; "~user/x" is left alone.
// Returns ErrHomeDirNotFound if expansion is needed and home is empty.
func ExpandHome(p, home string) (string, error) {
	if p != "~" && !strings.HasPrefix(p, "~/") && !strings.HasPrefix(p, `~\`) {
		return p, nil
	}
	if home == "" {
		return "", errors.WithDetailf(ErrHomeDirNotFound, "cannot expand %q", p)
	}
	if p == "~" {
		return home, nil
	}
	return filepath.Join(home, p[2:]), nil
}

// ConfigDir returns the XDG config directory for agskills.
// On Linux: ~/.config/agskills
func ConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// LockDir returns the directory holding per-target install locks.
// On Linux: ~/.cache/agskills/locks
func LockDir() string {
	return filepath.Join(xdg.CacheHome, AppName, "locks")
}

// DefaultDirPerm is the permission for directories created by the installer.
const DefaultDirPerm = 0o755

// EnsureDir creates the directory and any necessary parents.
// If perm is 0, DefaultDirPerm is used. Existing directories are not an error.
func EnsureDir(path string, perm os.FileMode) error {
	if perm == 0 {
		perm = DefaultDirPerm
	}
	return os.MkdirAll(path, perm)
}
