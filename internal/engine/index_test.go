// SPDX-License-Identifier: MPL-2.0

package engine

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestParseIndex(t *testing.T) {
	t.Parallel()

	engine, plugin, last := md5Hex("engine"), md5Hex("plugin"), md5Hex("last")
	text := "engine.jar|" + strings.ToUpper(engine) + "\r\n\r\n  plugin.jar | " + plugin + "  \nlast.jar|" + last + "\n"
	got, err := ParseIndex(text)
	if err != nil {
		t.Fatalf("ParseIndex() error: %v", err)
	}

	want := []IndexEntry{
		{Filename: "engine.jar", Hash: engine},
		{Filename: "plugin.jar", Hash: plugin},
		{Filename: "last.jar", Hash: last},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ParseIndex() = %v, want %v", got, want)
	}
}

func TestParseIndex_Empty(t *testing.T) {
	t.Parallel()

	got, err := ParseIndex("\n\n")
	if err != nil {
		t.Fatalf("ParseIndex() error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("ParseIndex() = %v, want no entries", got)
	}
}

func TestParseIndex_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		text     string
		wantLine int
	}{
		{"no separator", "engine.jar", 1},
		{"empty name", "ok.jar|" + md5Hex("ok") + "\n|" + md5Hex("x"), 2},
		{"empty hash", "engine.jar|", 1},
		{"path in name", "../evil.jar|" + md5Hex("evil"), 1},
		{"path in hash", "secret.jar|../outside", 1},
		{"short hash", "ok.jar|" + md5Hex("ok") + "\nengine.jar|abc123", 2},
		{"non-hex hash", "engine.jar|" + strings.Repeat("g", 32), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := ParseIndex(tt.text)
			if !errors.Is(err, ErrInvalidIndex) {
				t.Fatalf("ParseIndex() error = %v, want ErrInvalidIndex", err)
			}
			var lineErr *IndexLineError
			if !errors.As(err, &lineErr) {
				t.Fatalf("error should be *IndexLineError, got %T", err)
			}
			if lineErr.Line != tt.wantLine {
				t.Errorf("Line = %d, want %d", lineErr.Line, tt.wantLine)
			}
		})
	}
}
