// SPDX-License-Identifier: MPL-2.0

package execute

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/scanrunner/scanrunner/internal/config"
	"github.com/scanrunner/scanrunner/internal/engine"
	"github.com/scanrunner/scanrunner/pkg/projectdef"
	"github.com/scanrunner/scanrunner/pkg/props"
)

const (
	// KeyHostURL is the analysis server URL handed to the engine. When present
	// in the input properties it takes precedence over the configured server_url.
	KeyHostURL = "sonar.host.url"
	// KeyUserHome is the engine cache location handed to the engine.
	KeyUserHome = "sonar.userHome"
	// KeyRunnerVersion is the runner version handed to the engine.
	KeyRunnerVersion = "scanrunner.version"
	// KeyEngineFiles lists the retrieved engine files, comma-separated.
	KeyEngineFiles = "scanrunner.engine.files"
)

type (
	// Runner builds project definitions and hands them to the engine.
	Runner struct {
		cfg        *config.Config
		logger     *log.Logger
		aliases    projectdef.AliasTable
		launcher   engine.Launcher
		connection engine.Connection
		version    string
	}

	// Option configures a Runner.
	Option func(*Runner)

	// AnalysisResult reports what Analyze handed to the engine.
	AnalysisResult struct {
		Root        *projectdef.Definition
		EngineFiles []string
		Global      props.Set
		Analysis    props.Set
	}
)

// WithLogger sets the logger shared by the builder and the engine components.
func WithLogger(logger *log.Logger) Option {
	return func(r *Runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithAliases replaces the deprecated-property table.
func WithAliases(aliases projectdef.AliasTable) Option {
	return func(r *Runner) { r.aliases = aliases }
}

// WithLauncher replaces the engine launcher. Default is a SimulatedLauncher.
func WithLauncher(l engine.Launcher) Option {
	return func(r *Runner) { r.launcher = l }
}

// WithConnection replaces the server connection derived from the server URL.
func WithConnection(c engine.Connection) Option {
	return func(r *Runner) { r.connection = c }
}

// WithVersion sets the runner version reported to the server and the engine.
func WithVersion(v string) Option {
	return func(r *Runner) { r.version = v }
}

// NewRunner creates a Runner for cfg. A nil cfg means DefaultConfig.
func NewRunner(cfg *config.Config, opts ...Option) *Runner {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	r := &Runner{
		cfg:     cfg,
		logger:  log.New(io.Discard),
		aliases: projectdef.DeprecatedAliases(),
		version: "dev",
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.launcher == nil {
		r.launcher = engine.NewSimulatedLauncher(r.version, r.logger)
	}
	return r
}

// LoadProperties layers the configured properties, the project file and the
// overrides of req into the input set of the builder.
func (r *Runner) LoadProperties(ctx context.Context, req Request) (props.Set, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	workDir, err := resolveWorkDir(req)
	if err != nil {
		return nil, err
	}

	p, projectFile, err := layerProperties(r.cfg.Properties, req, workDir)
	if err != nil {
		return nil, wrapError("load project properties", req.ProjectFile, err)
	}
	if projectFile != "" {
		r.logger.Debug("loaded project file", "path", projectFile)
	}
	return p, nil
}

// BuildProject loads the input properties and builds the definition tree.
func (r *Runner) BuildProject(ctx context.Context, req Request) (*projectdef.Definition, error) {
	root, _, err := r.build(ctx, req)
	return root, err
}

func (r *Runner) build(ctx context.Context, req Request) (*projectdef.Definition, props.Set, error) {
	p, err := r.LoadProperties(ctx, req)
	if err != nil {
		return nil, nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	b := projectdef.NewBuilder(projectdef.WithLogger(r.logger), projectdef.WithAliases(r.aliases))
	root, err := b.Build(p)
	if err != nil {
		return nil, nil, wrapError("build project definition", p[projectdef.KeyBaseDir], err)
	}
	r.logger.Info("project definition built", "key", root.Key(), "modules", len(root.Children()))
	return root, p, nil
}

// Analyze builds the tree, retrieves the engine when a server is configured,
// and hands the flattened tree to the launcher. Nothing reaches the launcher
// unless the build succeeded and ctx is still live.
func (r *Runner) Analyze(ctx context.Context, req Request) (*AnalysisResult, error) {
	root, input, err := r.build(ctx, req)
	if err != nil {
		return nil, err
	}

	global, err := r.globalProperties(input)
	if err != nil {
		return nil, err
	}

	var files []string
	if server := global[KeyHostURL]; server != "" {
		files, err = r.FetchEngine(ctx, server, global[KeyUserHome])
		if err != nil {
			return nil, err
		}
		global[KeyEngineFiles] = strings.Join(files, ",")
	} else {
		r.logger.Info("no server configured, skipping engine retrieval")
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	analysis := projectdef.Flatten(root)
	if err := r.launcher.Start(ctx, global); err != nil {
		return nil, wrapError("start engine", r.launcher.Version(), err)
	}
	if err := r.launcher.Execute(ctx, analysis); err != nil {
		return nil, wrapError("execute analysis", root.Key(), err)
	}

	return &AnalysisResult{Root: root, EngineFiles: files, Global: global, Analysis: analysis}, nil
}

// FetchEngine downloads the engine files listed by server into the cache under
// userHome and returns their local paths.
func (r *Runner) FetchEngine(ctx context.Context, server, userHome string) ([]string, error) {
	cache, err := engine.NewFileCache(userHome, r.logger)
	if err != nil {
		return nil, wrapError("prepare engine cache", userHome, err)
	}

	conn := r.connection
	if conn == nil {
		conn = engine.NewServerConnection(server, engine.WithUserAgent("scanrunner/"+r.version))
	}

	files, err := engine.NewFetcher(conn, cache, r.logger).Fetch(ctx)
	if err != nil {
		return nil, wrapError("fetch engine", server, err)
	}
	r.logger.Info("engine ready", "files", len(files), "cache", cache.Dir())
	return files, nil
}

// globalProperties derives the engine-wide properties from the configuration
// and the input set.
func (r *Runner) globalProperties(input props.Set) (props.Set, error) {
	userHome, err := r.UserHome()
	if err != nil {
		return nil, err
	}

	server := strings.TrimSpace(input[KeyHostURL])
	if server == "" {
		server = strings.TrimSpace(string(r.cfg.ServerURL))
	}
	if server != "" {
		if valid, errs := config.ServerURL(server).IsValid(); !valid {
			return nil, wrapError("resolve server", server, errs[0])
		}
	}

	return props.New(map[string]string{
		KeyHostURL:       server,
		KeyUserHome:      userHome,
		KeyRunnerVersion: r.version,
	}), nil
}

// UserHome returns the configured engine cache root.
func (r *Runner) UserHome() (string, error) {
	home, err := r.cfg.ResolveUserHome()
	if err != nil {
		return "", fmt.Errorf("failed to resolve user home: %w", err)
	}
	return home, nil
}
