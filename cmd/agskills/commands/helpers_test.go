package commands

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/sickn33/agskills/internal/config"
)

// executeCommand runs the root command with args after restoring every flag
// to its default, and returns the combined output.
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	// keep installs in tests away from the user's cache directory
	t.Setenv("AGSKILLS_LOCK", "false")

	resetFlags(rootCmd)
	cfg = config.Default()
	configLoadErr = nil

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.ExecuteContext(t.Context())
	return out.String(), err
}

// resetFlags also drops the context a previous run left on each command;
// cobra only hands the root context to subcommands without one.
func resetFlags(cmd *cobra.Command) {
	cmd.SetContext(nil) //nolint:staticcheck
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func requireGit(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}
}

func runGit(t *testing.T, dir string, args ...string) {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("git %v failed: %v\n%s", args, err, out)
	}
}

func writeTestFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

// createSkillsRepo creates a git repository laid out like the upstream
// skills collection, tagged v1.0.0.
func createSkillsRepo(t *testing.T) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "source")

	writeTestFile(t, filepath.Join(dir, "skills", "alpha", "SKILL.md"), "---\nname: alpha\ndescription: first\n---\n## When to Use\n")
	writeTestFile(t, filepath.Join(dir, "skills", "beta", "SKILL.md"), "---\nname: beta\ndescription: second\n---\n")
	writeTestFile(t, filepath.Join(dir, "docs", "BUNDLES.md"), "# Bundles\n")
	writeTestFile(t, filepath.Join(dir, "README.md"), "# Skills\n")

	runGit(t, dir, "init")
	runGit(t, dir, "config", "user.email", "test@example.com")
	runGit(t, dir, "config", "user.name", "Test User")
	runGit(t, dir, "config", "commit.gpgsign", "false")
	runGit(t, dir, "add", ".")
	runGit(t, dir, "commit", "-m", "Initial commit")
	runGit(t, dir, "tag", "v1.0.0")
	return dir
}
