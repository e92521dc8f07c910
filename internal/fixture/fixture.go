// Package fixture writes day files for tests.
package fixture

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/machine-timeline/internal/domain/machine"
)

// High returns signals whose levels alone classify as state.
func High(state machine.State) []machine.Signal {
	switch state {
	case machine.StateAlarm:
		return []machine.Signal{machine.SignalAlarm}
	case machine.StateAutoRunning:
		return []machine.Signal{machine.SignalMem, machine.SignalCut, machine.SignalSTL, machine.SignalOP}
	case machine.StateFeedHold:
		return []machine.Signal{machine.SignalMem, machine.SignalSMZ, machine.SignalINP, machine.SignalAFC}
	case machine.StateSetup:
		return []machine.Signal{machine.SignalJog, machine.SignalINP}
	default:
		return nil
	}
}

// Record returns the cells of one row in machine.Signals order.
func Record(state machine.State) []string {
	high := make(map[machine.Signal]bool)
	for _, s := range High(state) {
		high[s] = true
	}

	cells := make([]string, 0, len(machine.Signals()))

	for _, s := range machine.Signals() {
		if high[s] {
			cells = append(cells, "1")
		} else {
			cells = append(cells, "0")
		}
	}

	return cells
}

// WriteDay writes <dir>/<stem>.csv with one row per state and returns its path.
func WriteDay(t *testing.T, dir, stem string, states ...machine.State) string {
	t.Helper()

	columns := make([]string, 0, len(machine.Signals()))
	for _, s := range machine.Signals() {
		columns = append(columns, s.String())
	}

	lines := []string{strings.Join(columns, ",")}
	for _, state := range states {
		lines = append(lines, strings.Join(Record(state), ","))
	}

	path := filepath.Join(dir, stem+".csv")
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o600))

	return path
}

// WriteFile writes raw contents to <dir>/<name> and returns its path.
func WriteFile(t *testing.T, dir, name, contents string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))

	return path
}
