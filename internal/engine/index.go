// SPDX-License-Identifier: MPL-2.0

package engine

import (
	"bufio"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

// md5HexLen is the length of a hex-encoded MD5 digest.
const md5HexLen = 32

var (
	// ErrInvalidIndex is the sentinel error wrapped by IndexLineError.
	ErrInvalidIndex = errors.New("invalid bootstrap index")
	// ErrInvalidEntry is the sentinel error wrapped by InvalidEntryError.
	ErrInvalidEntry = errors.New("invalid engine file entry")
)

type (
	// IndexEntry is one engine file listed by the bootstrap index.
	IndexEntry struct {
		Filename string
		Hash     string // Lowercase hex MD5 digest
	}

	// IndexLineError reports a bootstrap index line that is not "filename|hash".
	IndexLineError struct {
		Line   int
		Text   string
		Reason string
	}

	// InvalidEntryError is returned by FileCache.Get for a (filename, hash) pair
	// that cannot name a cache entry.
	InvalidEntryError struct {
		Filename string
		Hash     string
		Reason   string
	}
)

// Error implements the error interface.
func (e *IndexLineError) Error() string {
	return fmt.Sprintf("bootstrap index line %d %q: %s", e.Line, e.Text, e.Reason)
}

// Unwrap returns ErrInvalidIndex for errors.Is() compatibility.
func (e *IndexLineError) Unwrap() error { return ErrInvalidIndex }

// Error implements the error interface.
func (e *InvalidEntryError) Error() string {
	return fmt.Sprintf("engine file %q with hash %q: %s", e.Filename, e.Hash, e.Reason)
}

// Unwrap returns ErrInvalidEntry for errors.Is() compatibility.
func (e *InvalidEntryError) Unwrap() error { return ErrInvalidEntry }

// ParseIndex parses the bootstrap index returned by the server. Lines are trimmed
// and blank lines skipped; every other line must be "filename|hash".
func ParseIndex(text string) ([]IndexEntry, error) {
	var entries []IndexEntry

	scanner := bufio.NewScanner(strings.NewReader(text))
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		filename, hash, ok := strings.Cut(line, "|")
		filename, hash = strings.TrimSpace(filename), strings.ToLower(strings.TrimSpace(hash))
		switch {
		case !ok:
			return nil, &IndexLineError{Line: lineNo, Text: line, Reason: "missing '|' separator"}
		case filename == "":
			return nil, &IndexLineError{Line: lineNo, Text: line, Reason: "empty file name"}
		case hash == "":
			return nil, &IndexLineError{Line: lineNo, Text: line, Reason: "empty hash"}
		}
		if reason := checkEntry(filename, hash); reason != "" {
			return nil, &IndexLineError{Line: lineNo, Text: line, Reason: reason}
		}

		entries = append(entries, IndexEntry{Filename: filename, Hash: hash})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading bootstrap index: %w", err)
	}

	return entries, nil
}

// checkEntry returns why filename and hash cannot name a cache entry, or "" when
// they can. hash must already be lowercase.
func checkEntry(filename, hash string) string {
	if filename == "" || filename == "." || filename == ".." || strings.ContainsAny(filename, `/\`) {
		return "file name must be a single path element"
	}
	if len(hash) != md5HexLen || strings.ToLower(hash) != hash {
		return "hash must be a 32-character lowercase hex MD5 digest"
	}
	if _, err := hex.DecodeString(hash); err != nil {
		return "hash must be a 32-character lowercase hex MD5 digest"
	}
	return ""
}
