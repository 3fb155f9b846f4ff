// SPDX-License-Identifier: MPL-2.0

package projectdef

import (
	"errors"
	"fmt"
	"strings"

	"github.com/scanrunner/scanrunner/pkg/types"
)

var (
	// ErrMissingProperty is the sentinel error wrapped by MissingPropertyError.
	ErrMissingProperty = errors.New("missing mandatory property")
	// ErrInvalidBaseDir is the sentinel error wrapped by InvalidBaseDirError.
	ErrInvalidBaseDir = errors.New("invalid base directory")
	// ErrConfigFileNotFound is the sentinel error wrapped by ConfigFileNotFoundError.
	ErrConfigFileNotFound = errors.New("module properties file not found")
	// ErrConfigFileRead is the sentinel error wrapped by ConfigFileReadError.
	ErrConfigFileRead = errors.New("unreadable module properties file")
	// ErrMissingSourceDirectory is the sentinel error wrapped by MissingSourceDirectoryError.
	ErrMissingSourceDirectory = errors.New("missing source directory")
	// ErrDuplicateModule is the sentinel error wrapped by DuplicateModuleError.
	ErrDuplicateModule = errors.New("duplicate module id")
)

type (
	// MissingPropertyError lists every mandatory property absent at one node,
	// in the order the properties are declared mandatory.
	MissingPropertyError struct {
		Project string
		Keys    []string
	}

	// InvalidBaseDirError is returned when a resolved base directory does not exist.
	InvalidBaseDirError struct {
		Module string
		Path   string
	}

	// ConfigFileNotFoundError is returned when a module's property file is not a regular file.
	ConfigFileNotFoundError struct {
		Module types.ModuleID
		Path   string
	}

	// ConfigFileReadError is returned when a module's property file cannot be parsed.
	ConfigFileReadError struct {
		Path string
		Err  error
	}

	// MissingSourceDirectoryError is returned when a leaf declares a source directory
	// that does not exist.
	MissingSourceDirectoryError struct {
		Project string
		Path    string
		BaseDir string
	}

	// DuplicateModuleError is returned when a module list declares the same id twice.
	DuplicateModuleError struct {
		Project string
		Module  types.ModuleID
	}
)

// Error implements the error interface.
func (e *MissingPropertyError) Error() string {
	return fmt.Sprintf("you must define the following mandatory properties for '%s': %s",
		e.Project, strings.Join(e.Keys, ", "))
}

// Unwrap returns ErrMissingProperty for errors.Is() compatibility.
func (e *MissingPropertyError) Unwrap() error { return ErrMissingProperty }

// Error implements the error interface.
func (e *InvalidBaseDirError) Error() string {
	return fmt.Sprintf("the base directory of the module '%s' does not exist: %s", e.Module, e.Path)
}

// Unwrap returns ErrInvalidBaseDir for errors.Is() compatibility.
func (e *InvalidBaseDirError) Unwrap() error { return ErrInvalidBaseDir }

// Error implements the error interface.
func (e *ConfigFileNotFoundError) Error() string {
	return fmt.Sprintf("the properties file of the module '%s' does not exist: %s", e.Module, e.Path)
}

// Unwrap returns ErrConfigFileNotFound for errors.Is() compatibility.
func (e *ConfigFileNotFoundError) Unwrap() error { return ErrConfigFileNotFound }

// Error implements the error interface.
func (e *ConfigFileReadError) Error() string {
	return fmt.Sprintf("impossible to read the property file %s: %v", e.Path, e.Err)
}

// Unwrap returns ErrConfigFileRead and the underlying cause.
func (e *ConfigFileReadError) Unwrap() []error { return []error{ErrConfigFileRead, e.Err} }

// Error implements the error interface.
func (e *MissingSourceDirectoryError) Error() string {
	return fmt.Sprintf("the source folder '%s' does not exist for '%s' project/module (base directory = %s)",
		e.Path, e.Project, e.BaseDir)
}

// Unwrap returns ErrMissingSourceDirectory for errors.Is() compatibility.
func (e *MissingSourceDirectoryError) Unwrap() error { return ErrMissingSourceDirectory }

// Error implements the error interface.
func (e *DuplicateModuleError) Error() string {
	return fmt.Sprintf("module '%s' is declared more than once in %s of '%s'", e.Module, KeyModules, e.Project)
}

// Unwrap returns ErrDuplicateModule for errors.Is() compatibility.
func (e *DuplicateModuleError) Unwrap() error { return ErrDuplicateModule }
