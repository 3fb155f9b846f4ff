// SPDX-License-Identifier: MPL-2.0

package projectdef

import (
	"bytes"
	"reflect"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/scanrunner/scanrunner/pkg/props"
)

func TestDeprecatedAliases(t *testing.T) {
	t.Parallel()

	aliases := DeprecatedAliases()
	for i := 1; i < len(aliases); i++ {
		if aliases[i-1].Legacy >= aliases[i].Legacy {
			t.Errorf("aliases not sorted: %q before %q", aliases[i-1].Legacy, aliases[i].Legacy)
		}
	}

	aliases[0].Canonical = "mutated"
	if DeprecatedAliases()[0].Canonical == "mutated" {
		t.Error("DeprecatedAliases() shares its backing array between calls")
	}
}

func TestResolveDeprecated(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		in      map[string]string
		want    map[string]string
		applied int
	}{
		{
			name:    "legacy only",
			in:      map[string]string{"sources": "src", "tests": "test"},
			want:    map[string]string{KeySources: "src", KeyTests: "test"},
			applied: 2,
		},
		{
			name:    "canonical wins",
			in:      map[string]string{"sources": "old", KeySources: "new"},
			want:    map[string]string{KeySources: "new"},
			applied: 1,
		},
		{
			name:    "nothing to do",
			in:      map[string]string{KeyBinaries: "bin"},
			want:    map[string]string{KeyBinaries: "bin"},
			applied: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			p := props.New(tt.in)
			applied := ResolveDeprecated(p, DeprecatedAliases(), nil)
			if len(applied) != tt.applied {
				t.Errorf("applied %d aliases, want %d", len(applied), tt.applied)
			}
			if !reflect.DeepEqual(map[string]string(p), tt.want) {
				t.Errorf("got %v, want %v", p, tt.want)
			}

			again := p.Clone()
			if n := len(ResolveDeprecated(again, DeprecatedAliases(), nil)); n != 0 {
				t.Errorf("second pass applied %d aliases", n)
			}
			if !reflect.DeepEqual(again, p) {
				t.Error("second pass changed the set")
			}
		})
	}
}

func TestResolveDeprecated_LogsWarning(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := log.New(&buf)
	ResolveDeprecated(props.New(map[string]string{"binaries": "bin"}), DeprecatedAliases(), logger)

	out := buf.String()
	if !strings.Contains(out, "property=binaries") {
		t.Errorf("warning should name the legacy key, got %q", out)
	}
	if !strings.Contains(out, "replacement="+KeyBinaries) {
		t.Errorf("warning should name the replacement, got %q", out)
	}
}
