package timeline

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/machine-timeline/internal/domain/machine"
	"github.com/oshokin/machine-timeline/internal/repository/signals"
)

// fakeSource serves a fixed listing and per-file rows or errors.
type fakeSource struct {
	listing *signals.Listing
	err     error
	rows    map[string][]machine.Row
	fail    map[string]error
}

// Discover returns the configured listing.
func (f *fakeSource) Discover(context.Context, time.Time, time.Time) (*signals.Listing, error) {
	return f.listing, f.err
}

// Load returns the rows or the error registered for the file name.
func (f *fakeSource) Load(_ context.Context, file signals.DayFile) ([]machine.Row, error) {
	if err, ok := f.fail[file.Name]; ok {
		return nil, err
	}

	return f.rows[file.Name], nil
}

// day builds a DayFile for the given January date.
func day(d int) signals.DayFile {
	date := time.Date(2024, time.January, d, 0, 0, 0, 0, time.UTC)

	return signals.DayFile{Name: date.Format("20060102") + ".csv", Format: "csv", Date: date}
}

var (
	from = time.Date(2024, time.January, 3, 0, 0, 0, 0, time.UTC)
	to   = time.Date(2024, time.January, 9, 0, 0, 0, 0, time.UTC)
)

// TestAssemble_IsolatesFailures keeps good days when other files fail.
func TestAssemble_IsolatesFailures(t *testing.T) {
	t.Parallel()

	badName := &signals.InvalidDateFilenameError{Name: "notes.csv", Err: errors.New("not a number")}
	missing := &machine.MissingSignalError{Signal: machine.SignalOP}

	src := &fakeSource{
		listing: &signals.Listing{
			Files:   []signals.DayFile{day(3), day(4), day(5)},
			Skipped: []error{badName},
		},
		rows: map[string][]machine.Row{
			"20240103.csv": {{Alarm: true}, {}},
			"20240105.csv": {{Mem: true, Cut: true, STL: true, OP: true}},
		},
		fail: map[string]error{"20240104.csv": missing},
	}

	result, err := Assemble(context.Background(), src, from, to)
	require.NoError(t, err)
	require.Len(t, result.Dataset.Timelines, 2)
	require.Equal(t, "2024-01-03", result.Dataset.Timelines[0].Resource)
	require.Equal(t, machine.StateAlarm, result.Dataset.Timelines[0].Intervals[0].State)
	require.Equal(t, machine.StateEmpty, result.Dataset.Timelines[0].Intervals[1].State)
	require.Equal(t, machine.StateAutoRunning, result.Dataset.Timelines[1].Intervals[0].State)

	require.Len(t, result.Failed(), 2)
	require.ErrorIs(t, result.Failures, badName)
	require.ErrorIs(t, result.Failures, missing)
}

// TestAssemble_Empty surfaces ErrEmptyDataset before any rendering.
func TestAssemble_Empty(t *testing.T) {
	t.Parallel()

	src := &fakeSource{listing: new(signals.Listing)}
	_, err := Assemble(context.Background(), src, from, to)
	require.ErrorIs(t, err, ErrEmptyDataset)

	src = &fakeSource{
		listing: &signals.Listing{Files: []signals.DayFile{day(3), day(4)}},
		rows:    map[string][]machine.Row{"20240103.csv": nil},
		fail:    map[string]error{"20240104.csv": errors.New("permission denied")},
	}
	_, err = Assemble(context.Background(), src, from, to)
	require.ErrorIs(t, err, ErrEmptyDataset)
	require.Contains(t, err.Error(), "1 file(s) failed")
}

// TestAssemble_DiscoverError fails the batch when the folder cannot be listed.
func TestAssemble_DiscoverError(t *testing.T) {
	t.Parallel()

	boom := errors.New("no such folder")
	_, err := Assemble(context.Background(), &fakeSource{err: boom}, from, to)
	require.ErrorIs(t, err, boom)
}

// TestAssemble_Canceled stops between files.
func TestAssemble_Canceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	src := &fakeSource{listing: &signals.Listing{Files: []signals.DayFile{day(3)}}}
	_, err := Assemble(ctx, src, from, to)
	require.ErrorIs(t, err, context.Canceled)
}
