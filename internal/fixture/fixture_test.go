package fixture

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/machine-timeline/internal/domain/machine"
)

// TestRecord checks that every fixture row classifies as its state.
func TestRecord(t *testing.T) {
	t.Parallel()

	for _, state := range machine.States() {
		fields := make(map[string]string)

		for i, s := range machine.Signals() {
			fields[s.String()] = Record(state)[i]
		}

		row, err := machine.ParseRow("fixture", 0, fields)
		require.NoError(t, err)
		require.Equal(t, state, machine.Classify(row), state.String())
	}
}
