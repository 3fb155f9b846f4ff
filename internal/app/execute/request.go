// SPDX-License-Identifier: MPL-2.0

package execute

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/scanrunner/scanrunner/internal/config"
	"github.com/scanrunner/scanrunner/pkg/fspath"
	"github.com/scanrunner/scanrunner/pkg/projectdef"
	"github.com/scanrunner/scanrunner/pkg/props"
)

const (
	// DefaultProjectFile is looked up in the working directory when no project
	// file is requested.
	DefaultProjectFile = "sonar-project.properties"
	// KeyProjectSettings names the project file from a -D override.
	KeyProjectSettings = "project.settings"
)

var (
	// ErrProjectFileNotFound is the sentinel error wrapped by ProjectFileNotFoundError.
	ErrProjectFileNotFound = errors.New("project file not found")
	// ErrInvalidOverride is the sentinel error wrapped by InvalidOverrideError.
	ErrInvalidOverride = errors.New("invalid property override")
)

type (
	// Request captures the property sources of one run as an immutable value.
	Request struct {
		// ProjectFile is the --project-file value. Zero value means the
		// project.settings override, then DefaultProjectFile when present.
		ProjectFile string
		// Overrides are -D key=value assignments (highest precedence).
		// A bare key is set to "true".
		Overrides []string
		// WorkDir resolves relative paths. Zero value means the process working directory.
		WorkDir string
	}

	// ProjectFileNotFoundError is returned when an explicitly requested project
	// file does not exist.
	ProjectFileNotFoundError struct {
		Path string
	}

	// InvalidOverrideError is returned when a -D assignment has an empty key.
	InvalidOverrideError struct {
		Value string
	}
)

// Error implements the error interface.
func (e *ProjectFileNotFoundError) Error() string {
	return fmt.Sprintf("project file %q not found", e.Path)
}

// Unwrap returns ErrProjectFileNotFound for errors.Is() compatibility.
func (e *ProjectFileNotFoundError) Unwrap() error { return ErrProjectFileNotFound }

// Error implements the error interface.
func (e *InvalidOverrideError) Error() string {
	return fmt.Sprintf("invalid property override %q: expected key=value", e.Value)
}

// Unwrap returns ErrInvalidOverride for errors.Is() compatibility.
func (e *InvalidOverrideError) Unwrap() error { return ErrInvalidOverride }

// layerProperties applies the input precedence, lowest to highest:
//  1. config properties
//  2. project file
//  3. -D overrides
//
// A missing sonar.projectBaseDir defaults to the project file's directory, or
// workDir when no project file was read. A relative base directory is resolved
// against workDir.
func layerProperties(cfgProps []config.PropertyAssignment, req Request, workDir string) (props.Set, string, error) {
	out := props.New(nil)
	for _, a := range cfgProps {
		k, v, err := a.Split()
		if err != nil {
			return nil, "", err
		}
		out[k] = v
	}

	overrides, err := parseOverrides(req.Overrides)
	if err != nil {
		return nil, "", err
	}

	projectFile, err := locateProjectFile(req.ProjectFile, overrides[KeyProjectSettings], workDir)
	if err != nil {
		return nil, "", err
	}
	if projectFile != "" {
		fileProps, loadErr := props.LoadFile(projectFile)
		if loadErr != nil {
			return nil, "", &projectdef.ConfigFileReadError{Path: projectFile, Err: loadErr}
		}
		for k, v := range fileProps {
			out[k] = v
		}
	}

	for k, v := range overrides {
		out[k] = v
	}

	baseDir := strings.TrimSpace(out[projectdef.KeyBaseDir])
	switch {
	case baseDir == "" && projectFile != "":
		out[projectdef.KeyBaseDir] = filepath.Dir(projectFile)
	case baseDir == "":
		out[projectdef.KeyBaseDir] = workDir
	default:
		out[projectdef.KeyBaseDir] = fspath.ResolveFile(baseDir, workDir)
	}
	return out, projectFile, nil
}

// parseOverrides turns -D assignments into a property set; later ones win.
func parseOverrides(values []string) (props.Set, error) {
	out := props.New(nil)
	for _, raw := range values {
		k, v, ok := strings.Cut(raw, "=")
		k = strings.TrimSpace(k)
		if k == "" {
			return nil, &InvalidOverrideError{Value: raw}
		}
		if !ok {
			v = "true"
		}
		out[k] = v
	}
	return out, nil
}

// locateProjectFile returns the absolute project file to read, or "" when none applies.
// Explicit requests must exist; the default file is optional.
func locateProjectFile(requested, fromOverride, workDir string) (string, error) {
	if requested == "" {
		requested = fromOverride
	}
	if strings.TrimSpace(requested) != "" {
		path := fspath.ResolveFile(requested, workDir)
		if !fspath.IsFile(path) {
			return "", &ProjectFileNotFoundError{Path: path}
		}
		return path, nil
	}

	path := filepath.Join(workDir, DefaultProjectFile)
	if fspath.IsFile(path) {
		return path, nil
	}
	return "", nil
}

// resolveWorkDir returns an absolute working directory for req.
func resolveWorkDir(req Request) (string, error) {
	if req.WorkDir != "" {
		return filepath.Abs(req.WorkDir)
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get working directory: %w", err)
	}
	return wd, nil
}
