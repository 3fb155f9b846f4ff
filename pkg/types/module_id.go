// SPDX-License-Identifier: MPL-2.0

package types

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidModuleID is the sentinel error wrapped by InvalidModuleIDError.
var ErrInvalidModuleID = errors.New("invalid module id")

type (
	// ModuleID identifies a child module inside its parent's module list.
	// It is both the property-key prefix for inline scoped properties and the
	// default subdirectory name of the module, so it must be a single path element.
	ModuleID string

	// InvalidModuleIDError is returned when a ModuleID is empty, a relative
	// path element ("." or ".."), or contains a path separator.
	InvalidModuleIDError struct {
		Value  ModuleID
		Reason string
	}
)

// String returns the string representation of the ModuleID.
func (id ModuleID) String() string { return string(id) }

// Prefix returns the property-key prefix owned by this module ("<id>.").
func (id ModuleID) Prefix() string { return string(id) + "." }

// Validate returns an error if the ModuleID cannot be used as a key prefix and
// a directory name at the same time.
func (id ModuleID) Validate() error {
	s := string(id)
	switch {
	case strings.TrimSpace(s) == "":
		return &InvalidModuleIDError{Value: id, Reason: "must be non-empty"}
	case s == "." || s == "..":
		return &InvalidModuleIDError{Value: id, Reason: "must not be a relative path element"}
	case strings.ContainsAny(s, `/\`):
		return &InvalidModuleIDError{Value: id, Reason: "must not contain a path separator"}
	}
	return nil
}

// IsValid reports whether Validate would accept the ModuleID.
func (id ModuleID) IsValid() bool { return id.Validate() == nil }

// Error implements the error interface.
func (e *InvalidModuleIDError) Error() string {
	return fmt.Sprintf("invalid module id %q: %s", e.Value, e.Reason)
}

// Unwrap returns ErrInvalidModuleID for errors.Is() compatibility.
func (e *InvalidModuleIDError) Unwrap() error { return ErrInvalidModuleID }
