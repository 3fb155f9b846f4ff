// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/scanrunner/scanrunner/internal/engine"
)

// newAnalyzeCommand creates the `scanrunner analyze` command.
func newAnalyzeCommand(app *App) *cobra.Command {
	var dumpTo string

	analyzeCmd := &cobra.Command{
		Use:   "analyze",
		Short: "Build the project and hand it to the analysis engine",
		Long: `Build the project definition, retrieve the engine from the configured
server (when server_url or -D sonar.host.url is set), and hand the flattened
properties to the engine.

The bundled engine runs in simulation mode: it writes the analysis properties
to the file given by --dump-to (or -D sonar.scanner.dumpToFile) and the global
properties next to it with a .global suffix.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			req := app.request()
			if dumpTo != "" {
				req.Overrides = append(req.Overrides, engine.KeyDumpToFile+"="+dumpTo)
			}

			res, err := app.runner().Analyze(cmd.Context(), req)
			if err != nil {
				return app.fail(err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s Analysis of %s handed to the engine\n", SuccessStyle.Render("✓"), CmdStyle.Render(res.Root.Key()))
			if len(res.EngineFiles) > 0 {
				fmt.Fprintf(out, "  engine files: %d\n", len(res.EngineFiles))
			}
			if file, ok := res.Analysis.Get(engine.KeyDumpToFile); ok {
				fmt.Fprintf(out, "  properties dumped to %s\n", file)
			}
			return nil
		},
	}

	analyzeCmd.Flags().StringVar(&dumpTo, "dump-to", "", "file receiving the analysis properties")
	return analyzeCmd
}
