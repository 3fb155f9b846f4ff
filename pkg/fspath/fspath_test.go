// SPDX-License-Identifier: MPL-2.0

package fspath

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"runtime"
	"testing"
)

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestResolveFile(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	abs := filepath.Join(base, "abs", "file.properties")

	tests := []struct {
		name string
		path string
		want string
	}{
		{"relative", "mod/file.properties", filepath.Join(base, "mod", "file.properties")},
		{"trimmed relative", "  mod  ", filepath.Join(base, "mod")},
		{"absolute unchanged", abs, abs},
		{"absolute trimmed", " " + abs + "\t", abs},
		{"dot", ".", base},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := ResolveFile(tt.path, base); got != tt.want {
				t.Errorf("ResolveFile(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestResolveGlob(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	touch(t, filepath.Join(base, "libs", "a.jar"))
	touch(t, filepath.Join(base, "libs", "b.jar"))
	touch(t, filepath.Join(base, "libs", "notes.txt"))
	touch(t, filepath.Join(base, "root.jar"))
	if err := os.MkdirAll(filepath.Join(base, "libs", "dir.jar"), 0o755); err != nil {
		t.Fatal(err)
	}

	aJar := filepath.Join(base, "libs", "a.jar")
	bJar := filepath.Join(base, "libs", "b.jar")

	tests := []struct {
		name    string
		pattern string
		want    []string
	}{
		{"star in subdir", "libs/*.jar", []string{aJar, bJar}},
		{"question mark", "libs/?.jar", []string{aJar, bJar}},
		{"exact name", "libs/notes.txt", []string{filepath.Join(base, "libs", "notes.txt")}},
		{"no separator uses base", "*.jar", []string{filepath.Join(base, "root.jar")}},
		{"parent traversal", "libs/../*.jar", []string{filepath.Join(base, "root.jar")}},
		{"absolute dir", filepath.Join(base, "libs") + string(filepath.Separator) + "a.*", []string{aJar}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := ResolveGlob(base, tt.pattern)
			if err != nil {
				t.Fatalf("ResolveGlob(%q) error: %v", tt.pattern, err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ResolveGlob(%q) = %v, want %v", tt.pattern, got, tt.want)
			}
		})
	}
}

func TestResolveGlob_NoMatch(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	touch(t, filepath.Join(base, "libs", "readme.md"))

	tests := []struct {
		name    string
		pattern string
		wantDir string
	}{
		{"nothing matches", "libs/*.jar", filepath.Join(base, "libs")},
		{"missing directory", "nope/*.jar", filepath.Join(base, "nope")},
		{"directories are skipped", "lib*", base},
		{"file used as directory", "libs/readme.md/*.jar", filepath.Join(base, "libs", "readme.md")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := ResolveGlob(base, tt.pattern)
			if !errors.Is(err, ErrNoMatch) {
				t.Fatalf("ResolveGlob(%q) error = %v, want ErrNoMatch", tt.pattern, err)
			}
			var nm *NoMatchError
			if !errors.As(err, &nm) {
				t.Fatalf("error should be *NoMatchError, got %T", err)
			}
			if nm.Dir != tt.wantDir {
				t.Errorf("NoMatchError.Dir = %q, want %q", nm.Dir, tt.wantDir)
			}
		})
	}
}

func TestResolveGlob_BracketsAreLiteral(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("bracket file names are not portable to Windows")
	}
	t.Parallel()

	base := t.TempDir()
	touch(t, filepath.Join(base, "lib[1].jar"))
	touch(t, filepath.Join(base, "lib1.jar"))

	got, err := ResolveGlob(base, "lib[1].jar")
	if err != nil {
		t.Fatalf("ResolveGlob() error: %v", err)
	}
	want := []string{filepath.Join(base, "lib[1].jar")}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ResolveGlob() = %v, want %v", got, want)
	}
}

func TestSplitPattern(t *testing.T) {
	t.Parallel()

	tests := []struct {
		pattern  string
		wantDir  string
		wantFile string
	}{
		{"*.jar", ".", "*.jar"},
		{"libs/*.jar", "libs", "*.jar"},
		{`libs\win\*.jar`, `libs\win`, "*.jar"},
		{`a/b\c/*.jar`, `a/b\c`, "*.jar"},
	}

	for _, tt := range tests {
		dir, file := splitPattern(tt.pattern)
		if dir != tt.wantDir || file != tt.wantFile {
			t.Errorf("splitPattern(%q) = (%q, %q), want (%q, %q)", tt.pattern, dir, file, tt.wantDir, tt.wantFile)
		}
	}
}

func TestIsDirIsFile(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	file := filepath.Join(base, "f")
	touch(t, file)

	if !IsDir(base) || IsDir(file) || IsDir(filepath.Join(base, "missing")) {
		t.Error("IsDir() returned unexpected results")
	}
	if !IsFile(file) || IsFile(base) || IsFile(filepath.Join(base, "missing")) {
		t.Error("IsFile() returned unexpected results")
	}
}
