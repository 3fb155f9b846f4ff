// SPDX-License-Identifier: MPL-2.0

package engine

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/scanrunner/scanrunner/pkg/props"
)

func TestSimulatedLauncher_Dump(t *testing.T) {
	t.Parallel()

	for _, key := range []string{KeyDumpToFile, KeyDumpToFileDeprecated} {
		t.Run(key, func(t *testing.T) {
			t.Parallel()

			filename := filepath.Join(t.TempDir(), "props")
			global := props.New(map[string]string{"key1_true": "value1", "key2_true": "value2", key: filename})
			analysis := props.New(map[string]string{"key1_false": "value1", "key2_false": "value2", key: filename})

			l := NewSimulatedLauncher("5.2", nil)
			if err := l.Start(context.Background(), global); err != nil {
				t.Fatalf("Start() error: %v", err)
			}
			if err := l.Execute(context.Background(), analysis); err != nil {
				t.Fatalf("Execute() error: %v", err)
			}

			gotAnalysis, err := props.LoadFile(filename)
			if err != nil {
				t.Fatalf("loading analysis dump: %v", err)
			}
			if !reflect.DeepEqual(gotAnalysis, analysis) {
				t.Errorf("analysis dump = %v, want %v", gotAnalysis, analysis)
			}
			gotGlobal, err := props.LoadFile(filename + ".global")
			if err != nil {
				t.Fatalf("loading global dump: %v", err)
			}
			if !reflect.DeepEqual(gotGlobal, global) {
				t.Errorf("global dump = %v, want %v", gotGlobal, global)
			}
		})
	}
}

func TestSimulatedLauncher_WithoutStart(t *testing.T) {
	t.Parallel()

	filename := filepath.Join(t.TempDir(), "props")
	l := NewSimulatedLauncher("5.2", nil)
	if err := l.Execute(context.Background(), props.New(map[string]string{KeyDumpToFile: filename})); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if _, err := os.Stat(filename + ".global"); !os.IsNotExist(err) {
		t.Error("global dump written although Start was never called")
	}
}

func TestSimulatedLauncher_NoDumpFile(t *testing.T) {
	t.Parallel()

	err := NewSimulatedLauncher("5.2", nil).Execute(context.Background(), props.New(nil))
	if !errors.Is(err, ErrNoDumpFile) {
		t.Fatalf("Execute() error = %v, want ErrNoDumpFile", err)
	}
}

func TestSimulatedLauncher_UnwritableDump(t *testing.T) {
	t.Parallel()

	filename := filepath.Join(t.TempDir(), "missing", "dir", "props")
	err := NewSimulatedLauncher("5.2", nil).Execute(context.Background(), props.New(map[string]string{KeyDumpToFile: filename}))
	if err == nil {
		t.Fatal("Execute() should fail when the dump file cannot be created")
	}
}

func TestSimulatedLauncher_Version(t *testing.T) {
	t.Parallel()

	if got := NewSimulatedLauncher("5.2", nil).Version(); got != "5.2" {
		t.Errorf("Version() = %q, want 5.2", got)
	}
}
