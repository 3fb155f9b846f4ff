// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/scanrunner/scanrunner/internal/app/execute"
	"github.com/scanrunner/scanrunner/internal/config"
	"github.com/scanrunner/scanrunner/internal/engine"
)

// skipConfigAnnotation marks commands that must work with a broken config file.
const skipConfigAnnotation = "scanrunner/skip-config"

type (
	// App wires CLI services and shared dependencies. It is the composition root for
	// the CLI layer: all Cobra command handlers receive an App reference and delegate
	// work to the runner service.
	App struct {
		Config   ConfigProvider
		Launcher engine.Launcher
		stdout   io.Writer
		stderr   io.Writer

		flags  rootFlags
		cfg    *config.Config
		logger *log.Logger
	}

	// Dependencies defines the injection points for building an App. Nil fields are
	// replaced with production defaults by NewApp.
	Dependencies struct {
		Config   ConfigProvider
		Launcher engine.Launcher
		Stdout   io.Writer
		Stderr   io.Writer
	}

	// ConfigProvider loads configuration using explicit options.
	ConfigProvider interface {
		Load(ctx context.Context, opts config.LoadOptions) (*config.Config, error)
	}

	// rootFlags holds the persistent flag values.
	rootFlags struct {
		verbose     bool
		configPath  string
		defines     []string
		projectFile string
	}
)

// NewApp creates an App from deps.
func NewApp(deps Dependencies) *App {
	if deps.Config == nil {
		deps.Config = config.NewProvider()
	}
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	return &App{
		Config:   deps.Config,
		Launcher: deps.Launcher,
		stdout:   deps.Stdout,
		stderr:   deps.Stderr,
		cfg:      config.DefaultConfig(),
		logger:   newLogger(deps.Stderr, config.DefaultConfig()),
	}
}

// loadConfig loads the configuration selected by --config and applies the
// verbose and log level settings to the logger.
func (a *App) loadConfig(ctx context.Context) error {
	cfg, err := a.Config.Load(ctx, a.loadOptions())
	if err != nil {
		return err
	}
	if a.flags.verbose {
		cfg.UI.Verbose = true
	}
	a.cfg = cfg
	a.logger = newLogger(a.stderr, cfg)
	return nil
}

func (a *App) loadOptions() config.LoadOptions {
	return config.LoadOptions{ConfigFilePath: a.flags.configPath}
}

// verbose reports whether verbose output is enabled by flag or config.
func (a *App) verbose() bool {
	return a.flags.verbose || (a.cfg != nil && a.cfg.UI.Verbose)
}

// colorScheme returns the glamour style for catalog rendering.
func (a *App) colorScheme() string {
	if a.cfg == nil || a.cfg.UI.ColorScheme == "" {
		return string(config.ColorSchemeAuto)
	}
	return string(a.cfg.UI.ColorScheme)
}

// runner creates the runner service for the loaded configuration.
func (a *App) runner() *execute.Runner {
	opts := []execute.Option{
		execute.WithLogger(a.logger),
		execute.WithVersion(Version),
	}
	if a.Launcher != nil {
		opts = append(opts, execute.WithLauncher(a.Launcher))
	}
	return execute.NewRunner(a.cfg, opts...)
}

// request captures the property-source flags.
func (a *App) request() execute.Request {
	return execute.Request{
		ProjectFile: a.flags.projectFile,
		Overrides:   append([]string(nil), a.flags.defines...),
	}
}

func newLogger(w io.Writer, cfg *config.Config) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Level:  cfg.LogLevel(),
		Prefix: "scanrunner",
	})
}
