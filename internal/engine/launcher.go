// SPDX-License-Identifier: MPL-2.0

package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/scanrunner/scanrunner/pkg/props"
)

const (
	// KeyDumpToFile makes the simulated engine write the analysis properties to a file.
	KeyDumpToFile = "sonar.scanner.dumpToFile"
	// KeyDumpToFileDeprecated is the legacy name of KeyDumpToFile.
	KeyDumpToFileDeprecated = "sonarRunner.dumpToFile"

	// globalDumpSuffix is appended to the dump file name for the global properties.
	globalDumpSuffix = ".global"
)

// ErrNoDumpFile is returned by SimulatedLauncher.Execute without a dump file property.
var ErrNoDumpFile = errors.New("no dump file configured, set " + KeyDumpToFile)

type (
	// Launcher is the hand-off point to the analysis engine. Start receives the
	// global (server-level) properties once; Execute runs one analysis.
	Launcher interface {
		Start(ctx context.Context, global props.Set) error
		Execute(ctx context.Context, analysis props.Set) error
		Version() string
	}

	// SimulatedLauncher stands in for the engine: Execute dumps the analysis
	// properties to the file named by KeyDumpToFile and the global properties
	// to the same name with a ".global" suffix.
	SimulatedLauncher struct {
		version string
		logger  *log.Logger
		global  props.Set
	}
)

// NewSimulatedLauncher creates a SimulatedLauncher reporting version.
// A nil logger discards output.
func NewSimulatedLauncher(version string, logger *log.Logger) *SimulatedLauncher {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &SimulatedLauncher{version: version, logger: logger}
}

// Version returns the simulated engine version.
func (l *SimulatedLauncher) Version() string { return l.version }

// Start records the global properties.
func (l *SimulatedLauncher) Start(ctx context.Context, global props.Set) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	l.global = global.Clone()
	return nil
}

// Execute writes the dump files.
func (l *SimulatedLauncher) Execute(ctx context.Context, analysis props.Set) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	filename := dumpFile(analysis)
	if filename == "" {
		return ErrNoDumpFile
	}

	if err := writeDump(filename, analysis); err != nil {
		return err
	}
	l.logger.Info("simulation mode, analysis properties dumped", "file", filename)

	if l.global != nil {
		if err := writeDump(filename+globalDumpSuffix, l.global); err != nil {
			return err
		}
	}
	return nil
}

// dumpFile returns the dump target, preferring the canonical key.
func dumpFile(p props.Set) string {
	if v := strings.TrimSpace(p[KeyDumpToFile]); v != "" {
		return v
	}
	return strings.TrimSpace(p[KeyDumpToFileDeprecated])
}

func writeDump(filename string, p props.Set) (err error) {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("fail to export scanner properties: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	if err := props.Write(f, p); err != nil {
		return fmt.Errorf("fail to export scanner properties: %w", err)
	}
	return nil
}
