// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for scanrunner.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/scanrunner/scanrunner/internal/issue"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// NewRootCommand creates the scanrunner command tree bound to app.
func NewRootCommand(app *App) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "scanrunner",
		Short: "Build and analyze multi-module projects",
		Long: TitleStyle.Render("scanrunner") + SubtitleStyle.Render(" - Build and analyze multi-module projects") + `

scanrunner turns a flat set of analysis properties into a tree of module
definitions, validates it, and hands it to the analysis engine.

Properties come from the config file 'properties' list, then the project
file (sonar-project.properties by default), then -D key=value flags.

` + SubtitleStyle.Render("Examples:") + `
  scanrunner project validate         Check the project definition
  scanrunner project tree             Show the module tree
  scanrunner analyze --dump-to out    Hand the project to the engine
  scanrunner config show              Show current configuration`,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if _, skip := cmd.Annotations[skipConfigAnnotation]; skip {
				return nil
			}
			if err := app.loadConfig(cmd.Context()); err != nil {
				return app.serviceError(err)
			}
			return nil
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&app.flags.verbose, "verbose", "v", false, "enable verbose output")
	flags.StringVar(&app.flags.configPath, "config", "", "config file (default is $HOME/.config/scanrunner/config.cue)")
	flags.StringArrayVarP(&app.flags.defines, "define", "D", nil, "set an analysis property (key=value, repeatable)")
	flags.StringVar(&app.flags.projectFile, "project-file", "", "project properties file (default is ./sonar-project.properties)")

	rootCmd.AddCommand(newProjectCommand(app))
	rootCmd.AddCommand(newAnalyzeCommand(app))
	rootCmd.AddCommand(newEngineCommand(app))
	rootCmd.AddCommand(newConfigCommand(app))
	rootCmd.AddCommand(newVersionCommand())

	rootCmd.SetOut(app.stdout)
	rootCmd.SetErr(app.stderr)
	return rootCmd
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute builds the command tree and runs it. This is called by main.main().
func Execute() {
	app := NewApp(Dependencies{})
	rootCmd := NewRootCommand(app)

	// Pass version via fang.WithVersion() since fang overrides rootCmd.Version
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
		fang.WithErrorHandler(app.handleError),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(int(exitErr.Code))
		}
		os.Exit(1)
	}
}

// handleError renders service errors with their catalog entry and falls back
// to fang's default rendering for everything else.
func (a *App) handleError(w io.Writer, styles fang.Styles, err error) {
	var svcErr *ServiceError
	if errors.As(err, &svcErr) {
		renderServiceError(w, svcErr, a.colorScheme(), a.logger)
		return
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) && exitErr.Err == nil {
		return
	}
	fang.DefaultErrorHandler(w, styles, err)
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}
