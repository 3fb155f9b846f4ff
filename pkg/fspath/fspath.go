// SPDX-License-Identifier: MPL-2.0

// Package fspath resolves user-supplied paths against a base directory and expands
// library wildcard patterns into concrete file lists.
package fspath

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

var (
	// ErrNoMatch is the sentinel error wrapped by NoMatchError.
	ErrNoMatch = errors.New("no files matching pattern")
	// ErrInvalidPath is the sentinel error wrapped by InvalidPathError.
	ErrInvalidPath = errors.New("unable to resolve path")
)

type (
	// NoMatchError is returned when a wildcard pattern matches no regular file.
	NoMatchError struct {
		// Pattern is the file-name wildcard (directory component stripped).
		Pattern string
		// Dir is the absolute directory that was searched.
		Dir string
	}

	// InvalidPathError is returned when a path cannot be made absolute or read.
	InvalidPathError struct {
		Path string
		Err  error
	}
)

// Error implements the error interface.
func (e *NoMatchError) Error() string {
	return fmt.Sprintf("no files matching pattern %q in directory %q", e.Pattern, e.Dir)
}

// Unwrap returns ErrNoMatch for errors.Is() compatibility.
func (e *NoMatchError) Unwrap() error { return ErrNoMatch }

// Error implements the error interface.
func (e *InvalidPathError) Error() string {
	return fmt.Sprintf("unable to resolve path %q: %v", e.Path, e.Err)
}

// Unwrap returns ErrInvalidPath for errors.Is() compatibility.
func (e *InvalidPathError) Unwrap() error { return ErrInvalidPath }

// ResolveFile returns the file denoted by path, which may be absolute or relative
// to baseDir. Surrounding whitespace is trimmed first.
func ResolveFile(path, baseDir string) string {
	path = strings.TrimSpace(path)
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(baseDir, path)
}

// ResolveGlob expands pattern into the absolute paths of the regular files it
// matches, in lexical order. The pattern is split at its last path separator:
// the left side is a directory (relative to baseDir unless absolute), the right
// side a file-name wildcard where only '*' and '?' are special.
func ResolveGlob(baseDir, pattern string) ([]string, error) {
	dirPath, filePattern := splitPattern(pattern)

	dir := filepath.Clean(dirPath)
	if !filepath.IsAbs(dir) {
		abs, err := filepath.Abs(filepath.Join(baseDir, dirPath))
		if err != nil {
			return nil, &InvalidPathError{Path: dirPath, Err: err}
		}
		dir = abs
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) || isNonDir(dir) {
			return nil, &NoMatchError{Pattern: filePattern, Dir: dir}
		}
		return nil, &InvalidPathError{Path: dir, Err: err}
	}

	wildcard := escapeWildcard(filePattern)
	var files []string
	for _, entry := range entries {
		matched, matchErr := doublestar.Match(wildcard, entry.Name())
		if matchErr != nil {
			return nil, &InvalidPathError{Path: pattern, Err: matchErr}
		}
		if !matched {
			continue
		}
		full := filepath.Join(dir, entry.Name())
		if IsFile(full) {
			files = append(files, full)
		}
	}

	if len(files) == 0 {
		return nil, &NoMatchError{Pattern: filePattern, Dir: dir}
	}
	return files, nil
}

// IsDir reports whether path exists and is a directory (symlinks followed).
func IsDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// IsFile reports whether path exists and is a regular file (symlinks followed).
func IsFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// splitPattern separates the directory component from the file-name wildcard.
// Both '/' and '\' count as separators; without one the directory is ".".
func splitPattern(pattern string) (dir, file string) {
	i := strings.LastIndexAny(pattern, `/\`)
	if i == -1 {
		return ".", pattern
	}
	dir = pattern[:i]
	if dir == "" {
		dir = string(filepath.Separator)
	}
	return dir, pattern[i+1:]
}

// escapeWildcard neutralizes every glob metacharacter except '*' and '?'.
func escapeWildcard(pattern string) string {
	var b strings.Builder
	for _, r := range pattern {
		if strings.ContainsRune(`[]{}\`, r) {
			b.WriteRune('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

func isNonDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
