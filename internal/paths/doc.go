// Package paths resolves the directories agskills reads and writes: the
// user's home, each agent's skills directory, and the XDG config and cache
// locations used for the config file and install locks.
//
// # Agent Skills Directories
//
//	| Agent       | Skills directory               |
//	|-------------|--------------------------------|
//	| cursor      | ~/.cursor/skills               |
//	| claude      | ~/.claude/skills               |
//	| gemini      | ~/.gemini/skills               |
//	| codex       | $CODEX_HOME/skills or ~/.codex/skills |
//	| kiro        | ~/.kiro/skills                 |
//	| antigravity | ~/.gemini/antigravity/skills   |
//
// [Agents] lists them in the priority order used when several agent flags
// are given at once.
//
// # Home Directory
//
// [ResolveHome] reads HOME, then USERPROFILE, through an injectable lookup
// function so tests never depend on the real environment.
package paths
