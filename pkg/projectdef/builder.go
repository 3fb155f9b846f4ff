// SPDX-License-Identifier: MPL-2.0

package projectdef

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/scanrunner/scanrunner/pkg/fspath"
	"github.com/scanrunner/scanrunner/pkg/props"
	"github.com/scanrunner/scanrunner/pkg/types"
)

// rootLabel names the root node in error messages.
const rootLabel = "root project"

type (
	// Builder turns a flat property set into a validated Definition tree.
	// A Builder holds no per-build state and may be reused.
	Builder struct {
		logger  *log.Logger
		aliases AliasTable
	}

	// Option configures a Builder.
	Option func(*Builder)
)

// WithLogger sets the logger receiving deprecation warnings and debug traces.
func WithLogger(logger *log.Logger) Option {
	return func(b *Builder) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// WithAliases replaces the legacy property table.
func WithAliases(aliases AliasTable) Option {
	return func(b *Builder) {
		b.aliases = append(AliasTable(nil), aliases...)
	}
}

// NewBuilder creates a Builder. Without options it warns on stderr and accepts
// DeprecatedAliases.
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{
		logger:  log.NewWithOptions(os.Stderr, log.Options{Level: log.WarnLevel}),
		aliases: DeprecatedAliases(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build constructs the full tree from properties and runs the clean/validate pass.
// properties is never modified.
func (b *Builder) Build(properties props.Set) (*Definition, error) {
	root, err := b.defineRoot(properties.Clone())
	if err != nil {
		return nil, err
	}
	if err := CleanAndCheck(root); err != nil {
		return nil, err
	}
	return root, nil
}

// defineRoot makes the root base directory absolute before the common node path.
// A blank base directory is rejected rather than taken as the process working directory.
func (b *Builder) defineRoot(p props.Set) (*Definition, error) {
	ResolveDeprecated(p, b.aliases, b.logger)
	if err := checkMandatory(rootLabel, p, rootMandatory); err != nil {
		return nil, err
	}

	raw := strings.TrimSpace(p[KeyBaseDir])
	if raw == "" {
		return nil, &InvalidBaseDirError{Module: rootLabel, Path: p[KeyBaseDir]}
	}
	baseDir, err := filepath.Abs(raw)
	if err != nil {
		return nil, &fspath.InvalidPathError{Path: raw, Err: err}
	}
	if !fspath.IsDir(baseDir) {
		return nil, &InvalidBaseDirError{Module: rootLabel, Path: baseDir}
	}
	p[KeyBaseDir] = baseDir

	return b.defineProject(p, "")
}

// defineProject builds one node and, recursively, its children. p must already carry
// an absolute base directory.
func (b *Builder) defineProject(p props.Set, id types.ModuleID) (*Definition, error) {
	label := rootLabel
	if id != "" {
		label = string(id)
	}

	ResolveDeprecated(p, b.aliases, b.logger)
	if err := checkMandatory(label, p, rootMandatory); err != nil {
		return nil, err
	}

	baseDir := p[KeyBaseDir]
	node := &Definition{
		moduleID:   id,
		baseDir:    baseDir,
		workDir:    resolveWorkDir(p, baseDir),
		properties: p,
	}
	b.logger.Debug("defined project", "key", node.Key(), "baseDir", baseDir, "workDir", node.workDir)

	if err := b.defineChildren(node); err != nil {
		return nil, err
	}
	return node, nil
}

// defineChildren builds and attaches the modules listed by the node, in declaration order.
func (b *Builder) defineChildren(parent *Definition) error {
	seen := make(map[types.ModuleID]struct{})
	for _, raw := range parent.properties.List(KeyModules) {
		id := types.ModuleID(raw)
		if err := id.Validate(); err != nil {
			return err
		}
		if _, dup := seen[id]; dup {
			return &DuplicateModuleError{Project: parent.Key(), Module: id}
		}
		seen[id] = struct{}{}

		child, err := b.defineChild(parent, id)
		if err != nil {
			return err
		}
		child.parent = parent
		parent.children = append(parent.children, child)
	}
	return nil
}

// defineChild assembles the child's own property set, merges the parent's inheritable
// properties, pins its base directory and recurses.
func (b *Builder) defineChild(parent *Definition, id types.ModuleID) (*Definition, error) {
	scoped := props.Extract(string(id), parent.properties)

	var (
		childProps props.Set
		relativeTo string
		defaultDir string
	)
	if cfg, ok := scoped[KeyConfigFile]; ok {
		file := fspath.ResolveFile(cfg, parent.baseDir)
		if !fspath.IsFile(file) {
			return nil, &ConfigFileNotFoundError{Module: id, Path: file}
		}
		loaded, err := props.LoadFile(file)
		if err != nil {
			return nil, &ConfigFileReadError{Path: file, Err: err}
		}
		b.logger.Debug("loaded module properties", "module", id, "file", file)
		childProps = loaded
		relativeTo = filepath.Dir(file)
		defaultDir = relativeTo
	} else {
		childProps = scoped
		relativeTo = parent.baseDir
		defaultDir = filepath.Join(parent.baseDir, string(id))
	}

	ResolveDeprecated(childProps, b.aliases, b.logger)
	if err := checkMandatory(string(id), childProps, childMandatory); err != nil {
		return nil, err
	}
	MergeParent(childProps, parent.properties)

	baseDir := defaultDir
	if v, ok := childProps[KeyBaseDir]; ok {
		baseDir = fspath.ResolveFile(v, relativeTo)
	}
	if !fspath.IsDir(baseDir) {
		return nil, &InvalidBaseDirError{Module: string(id), Path: baseDir}
	}
	childProps[KeyBaseDir] = baseDir

	return b.defineProject(childProps, id)
}

// checkMandatory reports every missing key at once, in mandatory-list order.
func checkMandatory(project string, p props.Set, mandatory []string) error {
	var missing []string
	for _, key := range mandatory {
		if !p.Has(key) {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return &MissingPropertyError{Project: project, Keys: missing}
	}
	return nil
}

// resolveWorkDir honours a non-blank working-directory override, absolute or relative
// to baseDir, and falls back to DefaultWorkDir under baseDir.
func resolveWorkDir(p props.Set, baseDir string) string {
	wd := strings.TrimSpace(p[KeyWorkDir])
	switch {
	case wd == "":
		return filepath.Join(baseDir, DefaultWorkDir)
	case filepath.IsAbs(wd):
		return filepath.Clean(wd)
	default:
		return filepath.Join(baseDir, wd)
	}
}
