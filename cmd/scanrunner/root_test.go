// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"context"
	"testing"

	"github.com/scanrunner/scanrunner/internal/config"
	"github.com/scanrunner/scanrunner/internal/engine"
)

// runCLI executes the command tree with args against a static configuration.
func runCLI(t *testing.T, cfg *config.Config, launcher engine.Launcher, args ...string) (stdout, stderr string, err error) {
	t.Helper()

	var out, errOut bytes.Buffer
	app := NewApp(Dependencies{
		Config:   config.StaticProvider{Config: cfg},
		Launcher: launcher,
		Stdout:   &out,
		Stderr:   &errOut,
	})
	rootCmd := NewRootCommand(app)
	rootCmd.SetArgs(args)
	err = rootCmd.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func TestGetVersionString(t *testing.T) {
	// Not parallel: subtests mutate package-level Version/Commit/BuildDate vars.

	t.Run("ldflags version", func(t *testing.T) {
		origVersion, origCommit, origBuildDate := Version, Commit, BuildDate
		t.Cleanup(func() {
			Version, Commit, BuildDate = origVersion, origCommit, origBuildDate
		})

		Version = "v1.2.3"
		Commit = "abc1234"
		BuildDate = "2026-06-15T10:00:00Z"

		got := getVersionString()
		want := "v1.2.3 (commit: abc1234, built: 2026-06-15T10:00:00Z)"
		if got != want {
			t.Errorf("getVersionString() = %q, want %q", got, want)
		}
	})

	t.Run("dev build", func(t *testing.T) {
		origVersion := Version
		t.Cleanup(func() { Version = origVersion })

		Version = "dev"
		if got := getVersionString(); got != "dev (built from source)" {
			t.Errorf("getVersionString() = %q", got)
		}
	})
}

func TestVersionCommand(t *testing.T) {
	t.Parallel()

	out, _, err := runCLI(t, nil, nil, "version")
	if err != nil {
		t.Fatalf("version error: %v", err)
	}
	if !bytes.Contains([]byte(out), []byte("scanrunner ")) {
		t.Errorf("output = %q", out)
	}
}

func TestRootCommand_Subcommands(t *testing.T) {
	t.Parallel()

	rootCmd := NewRootCommand(NewApp(Dependencies{Config: config.StaticProvider{}}))
	for _, name := range []string{"project", "analyze", "engine", "config", "version"} {
		if c, _, err := rootCmd.Find([]string{name}); err != nil || c.Name() != name {
			t.Errorf("subcommand %q not registered", name)
		}
	}
	for _, flag := range []string{"verbose", "config", "define", "project-file"} {
		if rootCmd.PersistentFlags().Lookup(flag) == nil {
			t.Errorf("persistent flag --%s missing", flag)
		}
	}
}
