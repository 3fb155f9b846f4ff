// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/charmbracelet/lipgloss/tree"
	"github.com/spf13/cobra"

	"github.com/scanrunner/scanrunner/pkg/projectdef"
	"github.com/scanrunner/scanrunner/pkg/props"
	"github.com/scanrunner/scanrunner/pkg/types"
)

// newProjectCommand creates the `scanrunner project` command tree.
func newProjectCommand(app *App) *cobra.Command {
	projectCmd := &cobra.Command{
		Use:   "project",
		Short: "Inspect the project definition",
		Long: `Build the project definition tree from the layered properties and
inspect it without running an analysis.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	projectCmd.AddCommand(&cobra.Command{
		Use:   "validate",
		Short: "Build the project definition and report errors",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			root, err := app.runner().BuildProject(cmd.Context(), app.request())
			if err != nil {
				return app.fail(err)
			}
			count := 0
			_ = root.Walk(func(*projectdef.Definition) error {
				count++
				return nil
			})
			fmt.Fprintf(cmd.OutOrStdout(), "%s Project %s is valid (%d %s)\n",
				SuccessStyle.Render("✓"), CmdStyle.Render(root.Key()), count, plural(count, "module", "modules"))
			return nil
		},
	})

	projectCmd.AddCommand(&cobra.Command{
		Use:   "tree",
		Short: "Show the module tree",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			root, err := app.runner().BuildProject(cmd.Context(), app.request())
			if err != nil {
				return app.fail(err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTree(root, app.verbose()))
			return nil
		},
	})

	projectCmd.AddCommand(&cobra.Command{
		Use:   "dump",
		Short: "Print the resolved properties as a .properties file",
		Long: `Print the flattened properties of the built tree, the form handed to the
analysis engine. Module properties are prefixed with their module id chain.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			root, err := app.runner().BuildProject(cmd.Context(), app.request())
			if err != nil {
				return app.fail(err)
			}
			return writeProperties(cmd.OutOrStdout(), projectdef.Flatten(root))
		},
	})

	return projectCmd
}

// renderTree draws root and its modules. Verbose mode adds base directories.
func renderTree(root *projectdef.Definition, verbose bool) string {
	t := tree.Root(treeLabel(root, verbose)).
		Enumerator(tree.RoundedEnumerator).
		EnumeratorStyle(treeEnumeratorStyle).
		RootStyle(TitleStyle)
	addChildren(t, root, verbose)
	return t.String()
}

func addChildren(t *tree.Tree, d *projectdef.Definition, verbose bool) {
	for _, child := range d.Children() {
		if !child.IsAggregator() {
			t.Child(treeLabel(child, verbose))
			continue
		}
		sub := tree.Root(treeLabel(child, verbose))
		addChildren(sub, child, verbose)
		t.Child(sub)
	}
}

func treeLabel(d *projectdef.Definition, verbose bool) string {
	label := d.Key()
	if d.Name() != "" && d.Name() != d.Key() {
		label += " " + SubtitleStyle.Render("("+d.Name()+")")
	}
	if id := d.ModuleID(); id != "" {
		label = CmdStyle.Render(string(id)) + ": " + label
	}
	if verbose {
		label += " " + SubtitleStyle.Render(filepath.ToSlash(d.BaseDir()))
	}
	return label
}

// fail wraps a runner error for rendering and a non-zero exit.
func (a *App) fail(err error) error {
	return &ExitError{Code: types.ExitFailure, Err: a.serviceError(err)}
}

func writeProperties(w io.Writer, p props.Set) error {
	if err := props.Write(w, p); err != nil {
		return fmt.Errorf("failed to write properties: %w", err)
	}
	return nil
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
