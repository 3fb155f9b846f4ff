// SPDX-License-Identifier: MPL-2.0

package execute

import (
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/scanrunner/scanrunner/internal/engine"
	"github.com/scanrunner/scanrunner/internal/issue"
	"github.com/scanrunner/scanrunner/pkg/fspath"
	"github.com/scanrunner/scanrunner/pkg/projectdef"
	"github.com/scanrunner/scanrunner/pkg/types"
)

func TestClassifyError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want issue.Id
	}{
		{"nil", nil, 0},
		{"missing property", &projectdef.MissingPropertyError{Project: "root", Keys: []string{"k"}}, issue.MissingPropertyId},
		{"invalid base dir", &projectdef.InvalidBaseDirError{Module: "a", Path: "/x"}, issue.InvalidBaseDirId},
		{"config file not found", &projectdef.ConfigFileNotFoundError{Module: "a", Path: "/x"}, issue.ConfigFileNotFoundId},
		{"config file read beats permission", &projectdef.ConfigFileReadError{Path: "/x", Err: os.ErrPermission}, issue.ConfigFileReadId},
		{"missing source dir", &projectdef.MissingSourceDirectoryError{Project: "a", Path: "src"}, issue.MissingSourceDirectoryId},
		{"no matching library", &fspath.NoMatchError{Pattern: "*.jar", Dir: "/libs"}, issue.NoMatchingLibraryId},
		{"invalid module id", fmt.Errorf("define: %w", types.ErrInvalidModuleID), issue.InvalidModuleId},
		{"duplicate module", &projectdef.DuplicateModuleError{Project: "root", Module: "a"}, issue.InvalidModuleId},
		{"project file", &ProjectFileNotFoundError{Path: "/x"}, issue.ProjectFileNotFoundId},
		{"index unavailable", fmt.Errorf("%w: boom", engine.ErrIndexUnavailable), issue.EngineDownloadFailedId},
		{"bootstrap", &engine.BootstrapError{Index: "x|y", Err: engine.ErrHashMismatch}, issue.EngineDownloadFailedId},
		{"no dump file", engine.ErrNoDumpFile, issue.NoDumpFileId},
		{"permission", fmt.Errorf("open: %w", os.ErrPermission), issue.PermissionDeniedId},
		{"unknown", errors.New("boom"), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := ClassifyError(tt.err); got != tt.want {
				t.Errorf("ClassifyError() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestWrapError(t *testing.T) {
	t.Parallel()

	if wrapError("op", "res", nil) != nil {
		t.Error("nil error should stay nil")
	}

	cause := &fspath.NoMatchError{Pattern: "*.jar", Dir: "/libs"}
	err := wrapError("build project definition", "/base", cause)

	var ae *issue.ActionableError
	if !errors.As(err, &ae) {
		t.Fatalf("expected *issue.ActionableError, got %T", err)
	}
	if ae.IssueID != issue.NoMatchingLibraryId || ae.Resource != "/base" {
		t.Errorf("ActionableError = %+v", ae)
	}
	if ae.Issue() == nil {
		t.Error("catalog entry should resolve")
	}
	if !errors.Is(err, fspath.ErrNoMatch) {
		t.Error("cause must stay reachable through errors.Is")
	}

	if again := wrapError("other", "", err); again != err {
		t.Error("actionable errors should pass through unchanged")
	}
}

func TestSuggestionsFor_EveryIssue(t *testing.T) {
	t.Parallel()

	for _, is := range issue.Values() {
		if len(suggestionsFor(is.Id())) == 0 {
			t.Errorf("issue %d has no suggestions", is.Id())
		}
	}
}
