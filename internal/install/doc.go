// Package install places the skills of a repository into an agent's skills
// directory.
//
// An install resolves the target directory from [Options], clones the
// repository into a temporary directory, optionally checks out a release,
// reconciles whatever already lives at the target, and copies the
// repository's skills/ (and docs/) subtree into it:
//
//	target, err := install.ResolveTarget(opts, cfg.DefaultAgent, os.LookupEnv)
//	...
//	in := &install.Installer{Git: git.NewRunner("git"), RepoURL: cfg.RepoURL, Out: os.Stdout}
//	res, err := in.Run(ctx, opts, target)
//
// A target holding a legacy full-repository checkout (it has a .git entry)
// is emptied first. Any other existing target is updated in place: files
// from the repository overwrite their counterparts and nothing is deleted.
package install
