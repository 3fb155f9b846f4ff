// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"testing"

	"github.com/charmbracelet/log"
)

func TestColorScheme_IsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		value ColorScheme
		want  bool
	}{
		{ColorSchemeAuto, true},
		{ColorSchemeDark, true},
		{ColorSchemeLight, true},
		{"", false},
		{"neon", false},
	}

	for _, tt := range tests {
		valid, errs := tt.value.IsValid()
		if valid != tt.want {
			t.Errorf("ColorScheme(%q).IsValid() = %v, want %v", tt.value, valid, tt.want)
		}
		if !valid && (len(errs) != 1 || !errors.Is(errs[0], ErrInvalidColorScheme)) {
			t.Errorf("ColorScheme(%q) errors = %v, want ErrInvalidColorScheme", tt.value, errs)
		}
	}
}

func TestLogLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		value     LogLevel
		wantValid bool
		wantLevel log.Level
	}{
		{LogLevelDebug, true, log.DebugLevel},
		{LogLevelInfo, true, log.InfoLevel},
		{LogLevelWarn, true, log.WarnLevel},
		{LogLevelError, true, log.ErrorLevel},
		{"trace", false, log.WarnLevel},
	}

	for _, tt := range tests {
		valid, errs := tt.value.IsValid()
		if valid != tt.wantValid {
			t.Errorf("LogLevel(%q).IsValid() = %v, want %v", tt.value, valid, tt.wantValid)
		}
		if !valid && !errors.Is(errs[0], ErrInvalidLogLevel) {
			t.Errorf("LogLevel(%q) error = %v, want ErrInvalidLogLevel", tt.value, errs[0])
		}
		if got := tt.value.Level(); got != tt.wantLevel {
			t.Errorf("LogLevel(%q).Level() = %v, want %v", tt.value, got, tt.wantLevel)
		}
	}
}

func TestServerURL_IsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		value ServerURL
		want  bool
	}{
		{"", true},
		{"http://localhost:9000", true},
		{"https://sq.example.com/context", true},
		{"ftp://example.com", false},
		{"https://", false},
		{"localhost:9000", false},
		{"http://[::1", false},
	}

	for _, tt := range tests {
		valid, errs := tt.value.IsValid()
		if valid != tt.want {
			t.Errorf("ServerURL(%q).IsValid() = %v, want %v", tt.value, valid, tt.want)
		}
		if !valid {
			var ue *InvalidServerURLError
			if !errors.As(errs[0], &ue) || !errors.Is(errs[0], ErrInvalidServerURL) {
				t.Errorf("ServerURL(%q) error = %v, want *InvalidServerURLError", tt.value, errs[0])
			}
		}
	}

	if ServerURL("  ").IsSet() || !ServerURL("http://x").IsSet() {
		t.Error("IsSet() returned unexpected results")
	}
}

func TestUserHomePath_IsValid(t *testing.T) {
	t.Parallel()

	for _, tt := range []struct {
		value UserHomePath
		want  bool
	}{
		{"", true},
		{"/home/me/.scanrunner", true},
		{" \t", false},
	} {
		if valid, _ := tt.value.IsValid(); valid != tt.want {
			t.Errorf("UserHomePath(%q).IsValid() = %v, want %v", tt.value, valid, tt.want)
		}
	}
}

func TestPropertyAssignment_Split(t *testing.T) {
	t.Parallel()

	tests := []struct {
		value     PropertyAssignment
		wantKey   string
		wantValue string
		wantErr   bool
	}{
		{"sonar.projectKey=foo", "sonar.projectKey", "foo", false},
		{" padded = value ", "padded", " value ", false},
		{"empty=", "empty", "", false},
		{"url=http://x?a=b", "url", "http://x?a=b", false},
		{"noequals", "", "", true},
		{"=value", "", "", true},
		{"  =value", "", "", true},
	}

	for _, tt := range tests {
		key, value, err := tt.value.Split()
		if (err != nil) != tt.wantErr {
			t.Errorf("Split(%q) error = %v, wantErr %v", tt.value, err, tt.wantErr)
			continue
		}
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidPropertyAssignment) {
				t.Errorf("Split(%q) error = %v, want ErrInvalidPropertyAssignment", tt.value, err)
			}
			continue
		}
		if key != tt.wantKey || value != tt.wantValue {
			t.Errorf("Split(%q) = (%q, %q), want (%q, %q)", tt.value, key, value, tt.wantKey, tt.wantValue)
		}
	}
}

func TestConfig_IsValid(t *testing.T) {
	t.Parallel()

	if valid, errs := DefaultConfig().IsValid(); !valid {
		t.Fatalf("DefaultConfig() should be valid, got %v", errs)
	}

	cfg := DefaultConfig()
	cfg.ServerURL = "nope"
	cfg.Log.Level = "loud"
	cfg.Properties = []PropertyAssignment{"ok=1", "broken"}

	valid, errs := cfg.IsValid()
	if valid {
		t.Fatal("expected invalid config")
	}
	var ice *InvalidConfigError
	if len(errs) != 1 || !errors.As(errs[0], &ice) {
		t.Fatalf("errors = %v, want one *InvalidConfigError", errs)
	}
	if len(ice.FieldErrors) != 3 {
		t.Errorf("FieldErrors = %v, want 3 entries", ice.FieldErrors)
	}
	if !errors.Is(errs[0], ErrInvalidConfig) {
		t.Error("InvalidConfigError should unwrap to ErrInvalidConfig")
	}
}

func TestConfig_LogLevel(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	if got := cfg.LogLevel(); got != log.WarnLevel {
		t.Errorf("default LogLevel() = %v, want warn", got)
	}
	cfg.Log.Level = LogLevelError
	cfg.UI.Verbose = true
	if got := cfg.LogLevel(); got != log.DebugLevel {
		t.Errorf("verbose LogLevel() = %v, want debug", got)
	}
}
