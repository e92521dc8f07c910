package machine

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// fullFields returns raw cells for every required signal set to "0".
func fullFields() map[string]string {
	fields := make(map[string]string, len(vocabulary))
	for _, s := range vocabulary {
		fields[string(s)] = "0"
	}

	return fields
}

// TestParseRow_MissingSignal verifies absent and empty cells surface MissingSignalError.
func TestParseRow_MissingSignal(t *testing.T) {
	t.Parallel()

	fields := fullFields()
	delete(fields, string(SignalOP))

	_, err := ParseRow("2024-01-03", 4, fields)

	var missing *MissingSignalError
	require.ErrorAs(t, err, &missing)
	require.Equal(t, SignalOP, missing.Signal)

	fields = fullFields()
	fields[string(SignalNA3)] = "  "

	_, err = ParseRow("2024-01-03", 4, fields)
	require.ErrorAs(t, err, &missing)
	require.Equal(t, SignalNA3, missing.Signal)
}

// TestParseRow_InvalidSignal rejects values other than 0 and 1.
func TestParseRow_InvalidSignal(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{"2", "-1", "0.5", "on", "NaN"} {
		fields := fullFields()
		fields[string(SignalCXF)] = raw

		_, err := ParseRow("", 0, fields)

		var invalid *InvalidSignalError
		require.ErrorAs(t, err, &invalid, raw)
		require.Equal(t, SignalCXF, invalid.Signal)
		require.Equal(t, raw, invalid.Value)
	}
}

// TestParseRow_Encodings accepts the numeric and boolean spellings spreadsheets produce.
func TestParseRow_Encodings(t *testing.T) {
	t.Parallel()

	for raw, want := range map[string]bool{
		"1": true, "0": false, "1.0": true, "0.0": false, " 1 ": true,
		"true": true, "False": false, "TRUE": true,
	} {
		fields := fullFields()
		fields[string(SignalSTL)] = raw

		row, err := ParseRow("", 0, fields)
		require.NoError(t, err, raw)
		require.Equal(t, want, row.STL, raw)
	}
}

// TestParseRow_ExtraColumns ignores columns outside the vocabulary and keeps provenance.
func TestParseRow_ExtraColumns(t *testing.T) {
	t.Parallel()

	fields := fullFields()
	fields["SPINDLE_LOAD"] = "73.2"
	fields[string(SignalJog)] = "1"

	row, err := ParseRow("2024-01-05", 17, fields)
	require.NoError(t, err)
	require.Equal(t, "2024-01-05", row.Source)
	require.Equal(t, 17, row.Index)
	require.True(t, row.Jog)
	require.True(t, row.Level(SignalJog))
	require.False(t, row.Level(Signal("SPINDLE_LOAD")))
}

// TestRow_Values encodes levels back to 0/1 for every signal.
func TestRow_Values(t *testing.T) {
	t.Parallel()

	row := rowOf(t, SignalAlarm, SignalNA3)
	values := row.Values()

	require.Len(t, values, len(vocabulary))
	require.Equal(t, 1, values["ATMD_ALARM"])
	require.Equal(t, 1, values["ATMD_NA.3"])
	require.Equal(t, 0, values["SGNL_OP"])
}

// TestSignals returns a copy of the vocabulary.
func TestSignals(t *testing.T) {
	t.Parallel()

	got := Signals()
	require.Len(t, got, 18)
	require.True(t, got[0].IsKnown())

	got[0] = "BROKEN"
	require.Equal(t, SignalAlarm, Signals()[0])
	require.False(t, Signal("BROKEN").IsKnown())
}
