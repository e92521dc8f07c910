package machine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// at returns the reference day at the given clock time.
func at(h, m, s int) time.Time {
	return time.Date(2024, time.January, 1, h, m, s, 0, time.UTC)
}

// TestSequence places three rows on a contiguous 10 second grid.
func TestSequence(t *testing.T) {
	t.Parallel()

	rows := []Row{
		rowOf(t, SignalAlarm),
		rowOf(t, autoRunning...),
		rowOf(t),
	}

	tl := Sequence("2024-01-03", rows)
	require.Equal(t, "2024-01-03", tl.Resource)
	require.Equal(t, []Interval{
		{Resource: "2024-01-03", Start: at(0, 0, 0), End: at(0, 0, 10), State: StateAlarm},
		{Resource: "2024-01-03", Start: at(0, 0, 10), End: at(0, 0, 20), State: StateAutoRunning},
		{Resource: "2024-01-03", Start: at(0, 0, 20), End: at(0, 0, 30), State: StateEmpty},
	}, tl.Intervals)

	for i := 1; i < len(tl.Intervals); i++ {
		require.True(t, tl.Intervals[i-1].End.Equal(tl.Intervals[i].Start))
		require.Equal(t, IntervalWidth, tl.Intervals[i].Duration())
	}
}

// TestReferenceEpoch stays fixed even when a caller shifts the returned time.
func TestReferenceEpoch(t *testing.T) {
	t.Parallel()

	epoch := ReferenceEpoch()
	require.Equal(t, at(0, 0, 0), epoch)

	epoch = epoch.AddDate(1, 0, 0)
	require.NotEqual(t, epoch, ReferenceEpoch())
	require.Equal(t, at(0, 0, 0), Sequence("2024-01-03", []Row{rowOf(t)}).Intervals[0].Start)
}

// TestSequence_Empty yields an empty timeline for no rows.
func TestSequence_Empty(t *testing.T) {
	t.Parallel()

	tl := Sequence("2024-01-03", nil)
	require.Empty(t, tl.Intervals)

	ds := &Dataset{Timelines: []Timeline{tl}}
	require.True(t, ds.IsEmpty())
	require.True(t, (*Dataset)(nil).IsEmpty())
}

// TestSegments merges runs of equal states and keeps boundaries between resources.
func TestSegments(t *testing.T) {
	t.Parallel()

	a := Sequence("2024-01-03", []Row{
		rowOf(t, SignalAlarm),
		rowOf(t, SignalAlarm),
		rowOf(t),
		rowOf(t, SignalAlarm),
	})

	got := Segments(a.Intervals)
	require.Equal(t, []Interval{
		{Resource: "2024-01-03", Start: at(0, 0, 0), End: at(0, 0, 20), State: StateAlarm},
		{Resource: "2024-01-03", Start: at(0, 0, 20), End: at(0, 0, 30), State: StateEmpty},
		{Resource: "2024-01-03", Start: at(0, 0, 30), End: at(0, 0, 40), State: StateAlarm},
	}, got)

	b := Sequence("2024-01-04", []Row{rowOf(t, SignalAlarm)})
	ds := &Dataset{Timelines: []Timeline{a, b}}
	require.Len(t, ds.Intervals(), 5)
	require.Len(t, Segments(ds.Intervals()), 4)
	require.Nil(t, Segments(nil))
}

// TestSummarize accumulates time per state.
func TestSummarize(t *testing.T) {
	t.Parallel()

	tl := Sequence("2024-01-03", []Row{
		rowOf(t, autoRunning...),
		rowOf(t, autoRunning...),
		rowOf(t, autoRunning...),
		rowOf(t, SignalAlarm),
	})

	s := Summarize(tl)
	require.Equal(t, 4, s.Samples)
	require.Equal(t, 30*time.Second, s.Durations[StateAutoRunning])
	require.Equal(t, 10*time.Second, s.Durations[StateAlarm])
	require.Equal(t, time.Duration(0), s.Durations[StateSetup])
	require.Len(t, s.Durations, 5)
	require.Equal(t, 40*time.Second, s.Total())
	require.InDelta(t, 0.75, s.Utilization(), 1e-9)
	require.Zero(t, Summarize(Timeline{}).Utilization())
}
