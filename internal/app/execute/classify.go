// SPDX-License-Identifier: MPL-2.0

package execute

import (
	"errors"
	"os"

	"github.com/scanrunner/scanrunner/internal/engine"
	"github.com/scanrunner/scanrunner/internal/issue"
	"github.com/scanrunner/scanrunner/pkg/fspath"
	"github.com/scanrunner/scanrunner/pkg/projectdef"
	"github.com/scanrunner/scanrunner/pkg/types"
)

// ClassifyError maps a runner failure to its issue catalog entry.
// It returns zero when no entry applies.
func ClassifyError(err error) issue.Id {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, projectdef.ErrMissingProperty):
		return issue.MissingPropertyId
	case errors.Is(err, projectdef.ErrInvalidBaseDir):
		return issue.InvalidBaseDirId
	case errors.Is(err, projectdef.ErrConfigFileNotFound):
		return issue.ConfigFileNotFoundId
	case errors.Is(err, projectdef.ErrConfigFileRead):
		return issue.ConfigFileReadId
	case errors.Is(err, projectdef.ErrMissingSourceDirectory):
		return issue.MissingSourceDirectoryId
	case errors.Is(err, fspath.ErrNoMatch):
		return issue.NoMatchingLibraryId
	case errors.Is(err, types.ErrInvalidModuleID), errors.Is(err, projectdef.ErrDuplicateModule):
		return issue.InvalidModuleId
	case errors.Is(err, ErrProjectFileNotFound):
		return issue.ProjectFileNotFoundId
	case errors.Is(err, engine.ErrIndexUnavailable), errors.Is(err, engine.ErrBootstrap):
		return issue.EngineDownloadFailedId
	case errors.Is(err, engine.ErrNoDumpFile):
		return issue.NoDumpFileId
	case errors.Is(err, os.ErrPermission):
		return issue.PermissionDeniedId
	default:
		return 0
	}
}

// suggestionsFor returns the short remediation hints printed under the error.
func suggestionsFor(id issue.Id) []string {
	switch id {
	case issue.MissingPropertyId:
		return []string{
			"Add the missing properties to " + DefaultProjectFile + " or pass them with -D key=value",
			"Module properties may also be prefixed with the module id (<module>.sonar.projectKey)",
		}
	case issue.InvalidBaseDirId:
		return []string{"Check sonar.projectBaseDir, relative paths resolve against the parent module"}
	case issue.ConfigFileNotFoundId, issue.ConfigFileReadId:
		return []string{"Check the sonar.projectConfigFile path and its syntax (.properties or .toml)"}
	case issue.MissingSourceDirectoryId:
		return []string{"Create the directory or fix sonar.sources"}
	case issue.NoMatchingLibraryId:
		return []string{"Check the sonar.libraries patterns, only '*' and '?' are wildcards"}
	case issue.InvalidModuleId:
		return []string{"Module ids in sonar.modules must be unique plain names without path separators"}
	case issue.ConfigLoadFailedId:
		return []string{"Run 'scanrunner config show' to inspect the effective configuration"}
	case issue.ProjectFileNotFoundId:
		return []string{"Check the --project-file path"}
	case issue.EngineDownloadFailedId:
		return []string{"Check server_url and that the server is reachable", "Use 'scanrunner engine fetch -v' for details"}
	case issue.NoDumpFileId:
		return []string{"Pass --dump-to <file> or -D " + engine.KeyDumpToFile + "=<file>"}
	case issue.PermissionDeniedId:
		return []string{"Check the file permissions"}
	default:
		return nil
	}
}

// wrapError attaches operation context and the matching catalog entry to err.
// Errors that are already actionable pass through unchanged.
func wrapError(operation, resource string, err error) error {
	if err == nil {
		return nil
	}
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return err
	}

	id := ClassifyError(err)
	return issue.NewErrorContext().
		WithOperation(operation).
		WithResource(resource).
		WithIssue(id).
		WithSuggestions(suggestionsFor(id)...).
		Wrap(err).
		BuildError()
}
