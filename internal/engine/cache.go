// SPDX-License-Identifier: MPL-2.0

package engine

import (
	"context"
	"crypto/md5" //nolint:gosec // the server publishes MD5 digests
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
)

const (
	// cacheDirName is the cache directory under the user home.
	cacheDirName = "cache"
	// tmpDirName holds in-flight downloads so the final rename stays on one filesystem.
	tmpDirName = "_tmp"
)

// ErrHashMismatch is the sentinel error wrapped by HashMismatchError.
var ErrHashMismatch = errors.New("hash mismatch")

type (
	// Downloader fetches one file into dst.
	Downloader interface {
		Download(ctx context.Context, filename, dst string) error
	}

	// DownloaderFunc adapts a function to the Downloader interface.
	DownloaderFunc func(ctx context.Context, filename, dst string) error

	// HashMismatchError is returned when a downloaded file does not have the
	// digest announced by the index. The downloaded file is discarded.
	HashMismatchError struct {
		Filename string
		Expected string
		Got      string
	}

	// FileCache stores engine files at <userHome>/cache/<hash>/<filename>.
	// A file present under its hash directory is trusted without re-hashing.
	FileCache struct {
		dir    string
		logger *log.Logger
	}
)

// Download calls f.
func (f DownloaderFunc) Download(ctx context.Context, filename, dst string) error {
	return f(ctx, filename, dst)
}

// Error implements the error interface.
func (e *HashMismatchError) Error() string {
	return fmt.Sprintf("invalid hash for file %s\nExpected: %s\nGot:      %s", e.Filename, e.Expected, e.Got)
}

// Unwrap returns ErrHashMismatch for errors.Is() compatibility.
func (e *HashMismatchError) Unwrap() error { return ErrHashMismatch }

// NewFileCache creates the cache directory under userHome if needed.
// A nil logger discards output.
func NewFileCache(userHome string, logger *log.Logger) (*FileCache, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	dir := filepath.Join(userHome, cacheDirName)
	if err := os.MkdirAll(filepath.Join(dir, tmpDirName), 0o755); err != nil {
		return nil, fmt.Errorf("creating file cache %s: %w", dir, err)
	}
	return &FileCache{dir: dir, logger: logger}, nil
}

// Dir returns the absolute cache directory.
func (c *FileCache) Dir() string { return c.dir }

// Get returns the cached path of filename, downloading it through d on a miss.
// The download lands in a temp file, is verified against hash, then renamed into place.
// filename must be a single path element and hash a hex MD5 digest (InvalidEntryError).
func (c *FileCache) Get(ctx context.Context, filename, hash string, d Downloader) (string, error) {
	hash = strings.ToLower(strings.TrimSpace(hash))
	if reason := checkEntry(filename, hash); reason != "" {
		return "", &InvalidEntryError{Filename: filename, Hash: hash, Reason: reason}
	}
	target := filepath.Join(c.dir, hash, filename)
	if info, err := os.Stat(target); err == nil && info.Mode().IsRegular() {
		c.logger.Debug("engine file found in cache", "file", filename, "path", target)
		return target, nil
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	tmp, err := os.CreateTemp(filepath.Join(c.dir, tmpDirName), "fileCache-*.tmp")
	if err != nil {
		return "", fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()
	_ = tmp.Close()
	defer func() { _ = os.Remove(tmpPath) }() // no-op once renamed

	c.logger.Debug("downloading engine file", "file", filename)
	if err := d.Download(ctx, filename, tmpPath); err != nil {
		return "", fmt.Errorf("downloading %s: %w", filename, err)
	}

	got, err := md5File(tmpPath)
	if err != nil {
		return "", err
	}
	if got != hash {
		return "", &HashMismatchError{Filename: filename, Expected: hash, Got: got}
	}

	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return "", fmt.Errorf("creating cache entry %s: %w", filepath.Dir(target), err)
	}
	if err := os.Rename(tmpPath, target); err != nil {
		// Another process may have stored the same entry first.
		if info, statErr := os.Stat(target); statErr == nil && info.Mode().IsRegular() {
			return target, nil
		}
		return "", fmt.Errorf("storing %s in cache: %w", filename, err)
	}
	return target, nil
}

// md5File returns the lowercase hex MD5 digest of the file at path.
func md5File(path string) (_ string, err error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer func() { _ = f.Close() }() // read-only file handle

	h := md5.New() //nolint:gosec // see import
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("hashing file %s: %w", path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
