// SPDX-License-Identifier: MPL-2.0

package engine

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
)

var (
	// ErrIndexUnavailable is returned when the bootstrap index cannot be downloaded.
	ErrIndexUnavailable = errors.New("fail to get bootstrap index from server")

	// ErrBootstrap is the sentinel error wrapped by BootstrapError.
	ErrBootstrap = errors.New("fail to bootstrap from server")
)

type (
	// BootstrapError reports a failure while fetching the files of a valid index.
	// Index carries the full index text for diagnostics.
	BootstrapError struct {
		Index string
		Err   error
	}

	// Fetcher downloads every engine file listed by the server's bootstrap index
	// through a FileCache.
	Fetcher struct {
		conn   Connection
		cache  *FileCache
		logger *log.Logger
	}
)

// Error implements the error interface.
func (e *BootstrapError) Error() string {
	return fmt.Sprintf("%s. Bootstrap index was:\n%s\ncause: %v", ErrBootstrap, e.Index, e.Err)
}

// Unwrap returns ErrBootstrap and the underlying cause.
func (e *BootstrapError) Unwrap() []error { return []error{ErrBootstrap, e.Err} }

// NewFetcher creates a Fetcher. A nil logger discards output.
func NewFetcher(conn Connection, cache *FileCache, logger *log.Logger) *Fetcher {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Fetcher{conn: conn, cache: cache, logger: logger}
}

// Fetch returns the local paths of the engine files, in index order.
func (f *Fetcher) Fetch(ctx context.Context) ([]string, error) {
	f.logger.Debug("get bootstrap index")
	index, err := f.conn.DownloadString(ctx, IndexPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIndexUnavailable, err)
	}
	f.logger.Debug("get bootstrap completed")

	entries, err := ParseIndex(index)
	if err != nil {
		return nil, &BootstrapError{Index: index, Err: err}
	}

	files := make([]string, 0, len(entries))
	for _, entry := range entries {
		path, err := f.cache.Get(ctx, entry.Filename, entry.Hash, DownloaderFunc(f.download))
		if err != nil {
			return nil, &BootstrapError{Index: index, Err: err}
		}
		files = append(files, path)
	}
	return files, nil
}

func (f *Fetcher) download(ctx context.Context, filename, dst string) error {
	return f.conn.DownloadFile(ctx, filePath(filename), dst)
}
