// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/scanrunner/scanrunner/internal/config"
	"github.com/scanrunner/scanrunner/internal/issue"
	"github.com/scanrunner/scanrunner/pkg/types"
)

// writeProject lays out a two-module project and returns its project file.
func writeProject(t *testing.T, extra ...string) string {
	t.Helper()
	dir := t.TempDir()
	for _, d := range []string{"core/src", "web/src"} {
		if err := os.MkdirAll(filepath.Join(dir, d), 0o755); err != nil {
			t.Fatal(err)
		}
	}
	lines := append([]string{
		"sonar.projectKey=shop",
		"sonar.projectName=Shop",
		"sonar.projectVersion=2.1",
		"sonar.sources=src",
		"sonar.modules=core,web",
		"core.sonar.projectName=Core",
		"core.sonar.projectKey=shop-core",
		"web.sonar.projectName=Web",
		"web.sonar.projectKey=shop-web",
	}, extra...)
	path := filepath.Join(dir, "sonar-project.properties")
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestProjectValidate(t *testing.T) {
	t.Parallel()

	out, _, err := runCLI(t, nil, nil, "project", "validate", "--project-file", writeProject(t))
	if err != nil {
		t.Fatalf("validate error: %v", err)
	}
	if !strings.Contains(out, "shop") || !strings.Contains(out, "3 modules") {
		t.Errorf("output = %q", out)
	}
}

func TestProjectValidate_Failure(t *testing.T) {
	t.Parallel()

	_, _, err := runCLI(t, nil, nil, "project", "validate",
		"--project-file", writeProject(t), "-D", "sonar.modules=core,web,api")
	if err == nil {
		t.Fatal("expected failure")
	}

	var exitErr *ExitError
	if !errors.As(err, &exitErr) || exitErr.Code != types.ExitFailure {
		t.Fatalf("error = %v, want ExitError code 1", err)
	}
	var svcErr *ServiceError
	if !errors.As(err, &svcErr) {
		t.Fatalf("error should carry a *ServiceError, got %T", err)
	}
	if svcErr.IssueID != issue.MissingPropertyId {
		t.Errorf("IssueID = %d, want MissingPropertyId", svcErr.IssueID)
	}
}

func TestProjectTree(t *testing.T) {
	t.Parallel()

	out, _, err := runCLI(t, nil, nil, "project", "tree", "--project-file", writeProject(t))
	if err != nil {
		t.Fatalf("tree error: %v", err)
	}
	for _, want := range []string{"shop", "core", "shop-core", "web", "(Web)"} {
		if !strings.Contains(out, want) {
			t.Errorf("tree output missing %q:\n%s", want, out)
		}
	}
}

func TestProjectTree_VerboseShowsBaseDirs(t *testing.T) {
	t.Parallel()

	projectFile := writeProject(t)
	out, _, err := runCLI(t, nil, nil, "project", "tree", "-v", "--project-file", projectFile)
	if err != nil {
		t.Fatalf("tree error: %v", err)
	}
	coreDir := filepath.ToSlash(filepath.Join(filepath.Dir(projectFile), "core"))
	if !strings.Contains(out, coreDir) {
		t.Errorf("verbose tree should show %q:\n%s", coreDir, out)
	}
}

func TestProjectDump(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	cfg.Properties = []config.PropertyAssignment{"sonar.sourceEncoding=UTF-8"}

	out, _, err := runCLI(t, cfg, nil, "project", "dump", "--project-file", writeProject(t))
	if err != nil {
		t.Fatalf("dump error: %v", err)
	}
	for _, want := range []string{
		"core.sonar.projectKey=shop-core",
		"web.sonar.projectVersion=2.1",
		"sonar.sourceEncoding=UTF-8",
		"core.sonar.sourceEncoding=UTF-8",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("dump missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "\nsonar.sources=") {
		t.Error("aggregator root must not carry sonar.sources")
	}
}

func TestAnalyze_DumpTo(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	cfg.UserHome = config.UserHomePath(t.TempDir())
	dump := filepath.Join(t.TempDir(), "analysis.properties")

	out, _, err := runCLI(t, cfg, nil, "analyze", "--project-file", writeProject(t), "--dump-to", dump)
	if err != nil {
		t.Fatalf("analyze error: %v", err)
	}
	if !strings.Contains(out, dump) {
		t.Errorf("output should name the dump file: %q", out)
	}
	data, err := os.ReadFile(dump)
	if err != nil {
		t.Fatalf("dump not written: %v", err)
	}
	if !strings.Contains(string(data), "web.sonar.projectKey=shop-web") {
		t.Errorf("dump content:\n%s", data)
	}
}

func TestAnalyze_NoDumpFile(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	cfg.UserHome = config.UserHomePath(t.TempDir())

	_, _, err := runCLI(t, cfg, nil, "analyze", "--project-file", writeProject(t))
	var svcErr *ServiceError
	if !errors.As(err, &svcErr) || svcErr.IssueID != issue.NoDumpFileId {
		t.Fatalf("error = %v, want NoDumpFile service error", err)
	}
}

func TestEngineFetch_NoServer(t *testing.T) {
	t.Parallel()

	_, _, err := runCLI(t, nil, nil, "engine", "fetch")
	if !errors.Is(err, errNoServer) {
		t.Fatalf("error = %v, want errNoServer", err)
	}
}
