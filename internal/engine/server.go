// SPDX-License-Identifier: MPL-2.0

package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
)

const (
	// IndexPath lists the engine files and their digests.
	IndexPath = "/batch/index"

	// filePathFormat downloads one engine file by name.
	filePathFormat = "/batch/file?name=%s"

	// maxIndexBytes bounds the size of the bootstrap index (1 MB).
	maxIndexBytes = 1 << 20

	defaultUserAgent = "scanrunner/dev"
)

var (
	// ErrUnexpectedStatus is the sentinel error wrapped by StatusError.
	ErrUnexpectedStatus = errors.New("unexpected HTTP status")
	// ErrResponseTooLarge is returned when a text response exceeds the size limit.
	ErrResponseTooLarge = errors.New("response too large")
)

type (
	// Connection is the subset of server operations the Fetcher needs.
	Connection interface {
		DownloadString(ctx context.Context, path string) (string, error)
		DownloadFile(ctx context.Context, path, dst string) error
	}

	// StatusError is returned when the server answers with a non-200 status.
	StatusError struct {
		URL        string
		StatusCode int
	}

	// ServerConnection talks to the analysis server over HTTP.
	ServerConnection struct {
		httpClient *http.Client
		baseURL    string
		userAgent  string
	}

	// ConnectionOption configures a ServerConnection during construction.
	ConnectionOption func(*ServerConnection)
)

// Error implements the error interface.
func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: status %d %s", e.URL, e.StatusCode, http.StatusText(e.StatusCode))
}

// Unwrap returns ErrUnexpectedStatus for errors.Is() compatibility.
func (e *StatusError) Unwrap() error { return ErrUnexpectedStatus }

// WithHTTPClient sets a custom HTTP client, useful for tests or proxy configurations.
func WithHTTPClient(c *http.Client) ConnectionOption {
	return func(s *ServerConnection) {
		s.httpClient = c
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) ConnectionOption {
	return func(s *ServerConnection) {
		s.userAgent = ua
	}
}

// NewServerConnection creates a connection to baseURL. A trailing slash is ignored.
func NewServerConnection(baseURL string, opts ...ConnectionOption) *ServerConnection {
	s := &ServerConnection{
		httpClient: http.DefaultClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		userAgent:  defaultUserAgent,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// BaseURL returns the server URL without trailing slash.
func (s *ServerConnection) BaseURL() string { return s.baseURL }

// DownloadString returns the body of path as text. Bodies over 1 MB fail with
// ErrResponseTooLarge.
func (s *ServerConnection) DownloadString(ctx context.Context, path string) (string, error) {
	resp, err := s.get(ctx, path)
	if err != nil {
		return "", err
	}
	defer func() { _ = resp.Body.Close() }() // read-only response body

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxIndexBytes+1))
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	if len(body) > maxIndexBytes {
		return "", fmt.Errorf("reading %s: %w (limit %d bytes)", path, ErrResponseTooLarge, maxIndexBytes)
	}
	return string(body), nil
}

// DownloadFile streams the body of path into dst, creating or truncating it.
func (s *ServerConnection) DownloadFile(ctx context.Context, path, dst string) (err error) {
	resp, err := s.get(ctx, path)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }() // read-only response body

	f, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("creating %s: %w", dst, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	if _, err := io.Copy(f, resp.Body); err != nil {
		return fmt.Errorf("writing %s: %w", dst, err)
	}
	return nil
}

// get issues a GET request and returns the response only for a 200 status.
func (s *ServerConnection) get(ctx context.Context, path string) (*http.Response, error) {
	reqURL := s.baseURL + path
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		return nil, &StatusError{URL: reqURL, StatusCode: resp.StatusCode}
	}
	return resp, nil
}

// filePath returns the server path serving filename.
func filePath(filename string) string {
	return fmt.Sprintf(filePathFormat, url.QueryEscape(filename))
}
