// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/scanrunner/scanrunner/internal/config"
)

// errNoServer is returned by 'engine fetch' without a configured server.
var errNoServer = errors.New("no server configured, set server_url in the config file or SCANRUNNER_SERVER_URL")

// newEngineCommand creates the `scanrunner engine` command tree.
func newEngineCommand(app *App) *cobra.Command {
	engineCmd := &cobra.Command{
		Use:   "engine",
		Short: "Manage the analysis engine cache",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	var server string
	fetchCmd := &cobra.Command{
		Use:   "fetch",
		Short: "Download the engine files into the cache",
		Long: `Download the files listed by the server's bootstrap index into
<user_home>/cache. Files already cached with a matching hash are reused.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			target := config.ServerURL(server)
			if target == "" {
				target = app.cfg.ServerURL
			}
			if !target.IsSet() {
				return app.fail(errNoServer)
			}
			if valid, errs := target.IsValid(); !valid {
				return app.fail(errs[0])
			}

			r := app.runner()
			home, err := r.UserHome()
			if err != nil {
				return app.fail(err)
			}
			files, err := r.FetchEngine(cmd.Context(), string(target), home)
			if err != nil {
				return app.fail(err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s Engine ready (%d %s)\n", SuccessStyle.Render("✓"), len(files), plural(len(files), "file", "files"))
			for _, f := range files {
				fmt.Fprintf(out, "  %s\n", f)
			}
			return nil
		},
	}
	fetchCmd.Flags().StringVar(&server, "server", "", "server URL (default is server_url from the config)")

	engineCmd.AddCommand(fetchCmd)
	return engineCmd
}
