// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/charmbracelet/log"
)

const (
	// ColorSchemeAuto detects the terminal color scheme automatically.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces dark color scheme.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces light color scheme.
	ColorSchemeLight ColorScheme = "light"

	// LogLevelDebug logs the tree construction steps.
	LogLevelDebug LogLevel = "debug"
	// LogLevelInfo logs progress messages.
	LogLevelInfo LogLevel = "info"
	// LogLevelWarn logs deprecation warnings and problems only.
	LogLevelWarn LogLevel = "warn"
	// LogLevelError logs failures only.
	LogLevelError LogLevel = "error"
)

var (
	// ErrInvalidColorScheme is returned when a ColorScheme value is not recognized.
	ErrInvalidColorScheme = errors.New("invalid color scheme")
	// ErrInvalidLogLevel is returned when a LogLevel value is not recognized.
	ErrInvalidLogLevel = errors.New("invalid log level")
	// ErrInvalidServerURL is the sentinel error wrapped by InvalidServerURLError.
	ErrInvalidServerURL = errors.New("invalid server URL")
	// ErrInvalidUserHome is returned when a UserHomePath value is whitespace-only.
	ErrInvalidUserHome = errors.New("invalid user home")
	// ErrInvalidPropertyAssignment is the sentinel error wrapped by InvalidPropertyAssignmentError.
	ErrInvalidPropertyAssignment = errors.New("invalid property assignment")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// ColorScheme specifies the terminal color scheme preference.
	ColorScheme string

	// InvalidColorSchemeError is returned when a ColorScheme value is not recognized.
	// It wraps ErrInvalidColorScheme for errors.Is() compatibility.
	InvalidColorSchemeError struct {
		Value ColorScheme
	}

	// LogLevel is the minimum level written by the CLI logger.
	LogLevel string

	// InvalidLogLevelError is returned when a LogLevel value is not recognized.
	InvalidLogLevelError struct {
		Value LogLevel
	}

	// ServerURL is the base URL of the analysis server. The zero value disables
	// engine retrieval.
	ServerURL string

	// InvalidServerURLError is returned when a ServerURL is not an absolute http(s) URL.
	InvalidServerURLError struct {
		Value  ServerURL
		Reason string
	}

	// UserHomePath is the directory holding the engine file cache. The zero
	// value means DefaultUserHome.
	UserHomePath string

	// InvalidUserHomeError is returned when a UserHomePath is whitespace-only.
	InvalidUserHomeError struct {
		Value UserHomePath
	}

	// PropertyAssignment is one "key=value" analysis property.
	PropertyAssignment string

	// InvalidPropertyAssignmentError is returned when a PropertyAssignment has no
	// '=' or an empty key.
	InvalidPropertyAssignmentError struct {
		Value PropertyAssignment
	}

	// InvalidConfigError aggregates the field errors of a Config.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// Config holds the application configuration.
	Config struct {
		// ServerURL is the analysis server used by 'engine fetch' and 'analyze'
		ServerURL ServerURL `json:"server_url" mapstructure:"server_url"`
		// UserHome holds the engine file cache
		UserHome UserHomePath `json:"user_home" mapstructure:"user_home"`
		// Log configures the CLI logger
		Log LogConfig `json:"log" mapstructure:"log"`
		// UI configures the user interface
		UI UIConfig `json:"ui" mapstructure:"ui"`
		// Properties are analysis properties with the lowest precedence
		Properties []PropertyAssignment `json:"properties" mapstructure:"properties"`
	}

	// LogConfig configures the CLI logger.
	LogConfig struct {
		// Level sets the minimum level (debug, info, warn, error)
		Level LogLevel `json:"level" mapstructure:"level"`
	}

	// UIConfig configures the user interface.
	UIConfig struct {
		// ColorScheme sets the color scheme
		ColorScheme ColorScheme `json:"color_scheme" mapstructure:"color_scheme"`
		// Verbose enables debug logging and error chains
		Verbose bool `json:"verbose" mapstructure:"verbose"`
	}
)

// Error implements the error interface for InvalidColorSchemeError.
func (e *InvalidColorSchemeError) Error() string {
	return fmt.Sprintf("invalid color scheme %q (valid: auto, dark, light)", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidColorSchemeError) Unwrap() error { return ErrInvalidColorScheme }

// String returns the string representation of the ColorScheme.
func (cs ColorScheme) String() string { return string(cs) }

// IsValid returns whether the ColorScheme is one of the defined color schemes,
// and a list of validation errors if it is not.
func (cs ColorScheme) IsValid() (bool, []error) {
	switch cs {
	case ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight:
		return true, nil
	default:
		return false, []error{&InvalidColorSchemeError{Value: cs}}
	}
}

// Error implements the error interface for InvalidLogLevelError.
func (e *InvalidLogLevelError) Error() string {
	return fmt.Sprintf("invalid log level %q (valid: debug, info, warn, error)", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidLogLevelError) Unwrap() error { return ErrInvalidLogLevel }

// String returns the string representation of the LogLevel.
func (l LogLevel) String() string { return string(l) }

// IsValid returns whether the LogLevel is one of the defined levels.
func (l LogLevel) IsValid() (bool, []error) {
	switch l {
	case LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError:
		return true, nil
	default:
		return false, []error{&InvalidLogLevelError{Value: l}}
	}
}

// Level converts the LogLevel to a charmbracelet/log level. Unknown values map to warn.
func (l LogLevel) Level() log.Level {
	switch l {
	case LogLevelDebug:
		return log.DebugLevel
	case LogLevelInfo:
		return log.InfoLevel
	case LogLevelError:
		return log.ErrorLevel
	default:
		return log.WarnLevel
	}
}

// Error implements the error interface for InvalidServerURLError.
func (e *InvalidServerURLError) Error() string {
	return fmt.Sprintf("invalid server URL %q: %s", e.Value, e.Reason)
}

// Unwrap returns ErrInvalidServerURL for errors.Is() compatibility.
func (e *InvalidServerURLError) Unwrap() error { return ErrInvalidServerURL }

// String returns the string representation of the ServerURL.
func (u ServerURL) String() string { return string(u) }

// IsSet reports whether a server is configured.
func (u ServerURL) IsSet() bool { return strings.TrimSpace(string(u)) != "" }

// IsValid returns whether the ServerURL is empty or an absolute http(s) URL.
func (u ServerURL) IsValid() (bool, []error) {
	if u == "" {
		return true, nil
	}
	parsed, err := url.Parse(string(u))
	switch {
	case err != nil:
		return false, []error{&InvalidServerURLError{Value: u, Reason: err.Error()}}
	case parsed.Scheme != "http" && parsed.Scheme != "https":
		return false, []error{&InvalidServerURLError{Value: u, Reason: "scheme must be http or https"}}
	case parsed.Host == "":
		return false, []error{&InvalidServerURLError{Value: u, Reason: "missing host"}}
	}
	return true, nil
}

// Error implements the error interface for InvalidUserHomeError.
func (e *InvalidUserHomeError) Error() string {
	return fmt.Sprintf("invalid user home %q: must not be whitespace-only", e.Value)
}

// Unwrap returns ErrInvalidUserHome for errors.Is() compatibility.
func (e *InvalidUserHomeError) Unwrap() error { return ErrInvalidUserHome }

// String returns the string representation of the UserHomePath.
func (p UserHomePath) String() string { return string(p) }

// IsValid returns whether the UserHomePath is valid. The zero value is valid.
func (p UserHomePath) IsValid() (bool, []error) {
	if p != "" && strings.TrimSpace(string(p)) == "" {
		return false, []error{&InvalidUserHomeError{Value: p}}
	}
	return true, nil
}

// Error implements the error interface for InvalidPropertyAssignmentError.
func (e *InvalidPropertyAssignmentError) Error() string {
	return fmt.Sprintf("invalid property %q: expected key=value", e.Value)
}

// Unwrap returns ErrInvalidPropertyAssignment for errors.Is() compatibility.
func (e *InvalidPropertyAssignmentError) Unwrap() error { return ErrInvalidPropertyAssignment }

// Split returns the trimmed key and the raw value.
func (a PropertyAssignment) Split() (key, value string, err error) {
	k, v, ok := strings.Cut(string(a), "=")
	k = strings.TrimSpace(k)
	if !ok || k == "" {
		return "", "", &InvalidPropertyAssignmentError{Value: a}
	}
	return k, v, nil
}

// IsValid returns whether the assignment has a non-empty key and a '='.
func (a PropertyAssignment) IsValid() (bool, []error) {
	if _, _, err := a.Split(); err != nil {
		return false, []error{err}
	}
	return true, nil
}

// Error implements the error interface for InvalidConfigError.
func (e *InvalidConfigError) Error() string {
	msgs := make([]string, len(e.FieldErrors))
	for i, err := range e.FieldErrors {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("invalid config: %s", strings.Join(msgs, "; "))
}

// Unwrap returns ErrInvalidConfig for errors.Is() compatibility.
func (e *InvalidConfigError) Unwrap() error { return ErrInvalidConfig }

// IsValid returns whether every field of the Config is valid.
func (c Config) IsValid() (bool, []error) {
	var errs []error
	for _, check := range []func() (bool, []error){
		c.ServerURL.IsValid,
		c.UserHome.IsValid,
		c.Log.Level.IsValid,
		c.UI.ColorScheme.IsValid,
	} {
		if valid, fieldErrs := check(); !valid {
			errs = append(errs, fieldErrs...)
		}
	}
	for _, p := range c.Properties {
		if valid, fieldErrs := p.IsValid(); !valid {
			errs = append(errs, fieldErrs...)
		}
	}
	if len(errs) > 0 {
		return false, []error{&InvalidConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// LogLevel returns the effective logger level: debug when verbose, the configured level otherwise.
func (c Config) LogLevel() log.Level {
	if c.UI.Verbose {
		return log.DebugLevel
	}
	return c.Log.Level.Level()
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		ServerURL: "",
		UserHome:  "", // DefaultUserHome() when empty
		Log: LogConfig{
			Level: LogLevelWarn,
		},
		UI: UIConfig{
			ColorScheme: ColorSchemeAuto,
			Verbose:     false,
		},
		Properties: []PropertyAssignment{},
	}
}
