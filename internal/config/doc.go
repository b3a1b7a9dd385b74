// Package config provides configuration management for the agskills CLI.
//
// Configuration is optional. The file is ~/.config/agskills/config.yaml
// (XDG config home) and every key can be overridden from the environment
// with an AGSKILLS_ prefix:
//
//	version: 1
//	repo_url: https://github.com/sickn33/antigravity-awesome-skills.git
//	git_binary: git
//	default_agent: claude   # optional
//	lock: true
//	skills_dir: skills
//
// Use [Init] once at startup, then [Load] with an empty path to search the
// default location, or with an explicit path (--config).
package config
