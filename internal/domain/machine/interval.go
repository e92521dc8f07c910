package machine

import "time"

// IntervalWidth is the duration covered by one sample.
const IntervalWidth = 10 * time.Second

// ReferenceEpoch returns the anchor of every resource's time grid. Only the
// relative spacing matters: each day is drawn on the same 24-hour axis.
func ReferenceEpoch() time.Time {
	return time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
}

// Interval is one classified time window of a resource.
type Interval struct {
	// Resource identifies the day, formatted as YYYY-MM-DD.
	Resource string
	// Start is the inclusive beginning of the window.
	Start time.Time
	// End is the exclusive end of the window.
	End time.Time
	// State is the classification of the sample.
	State State
}

// Duration returns End - Start.
func (i Interval) Duration() time.Duration {
	return i.End.Sub(i.Start)
}

// Timeline is the ordered sequence of intervals of one resource.
type Timeline struct {
	// Resource identifies the day, formatted as YYYY-MM-DD.
	Resource string
	// Intervals are contiguous, non-overlapping and ordered by Start.
	Intervals []Interval
}

// Dataset is the combined set of timelines handed to renderers and reports.
type Dataset struct {
	// Timelines are ordered by resource.
	Timelines []Timeline
}

// IsEmpty reports whether the dataset holds no interval at all.
func (d *Dataset) IsEmpty() bool {
	if d == nil {
		return true
	}

	for _, tl := range d.Timelines {
		if len(tl.Intervals) > 0 {
			return false
		}
	}

	return true
}

// Intervals returns every interval of every timeline, concatenated in order.
func (d *Dataset) Intervals() []Interval {
	if d == nil {
		return nil
	}

	var total int
	for _, tl := range d.Timelines {
		total += len(tl.Intervals)
	}

	result := make([]Interval, 0, total)
	for _, tl := range d.Timelines {
		result = append(result, tl.Intervals...)
	}

	return result
}

// Sequence classifies rows and places them on the time grid of resource.
// The row at position i covers [ReferenceEpoch()+i*IntervalWidth, +IntervalWidth).
func Sequence(resource string, rows []Row) Timeline {
	intervals := make([]Interval, len(rows))

	for i, row := range rows {
		start := ReferenceEpoch().Add(time.Duration(i) * IntervalWidth)
		intervals[i] = Interval{
			Resource: resource,
			Start:    start,
			End:      start.Add(IntervalWidth),
			State:    Classify(row),
		}
	}

	return Timeline{
		Resource:  resource,
		Intervals: intervals,
	}
}

// Segments coalesces runs of adjacent intervals with the same state.
// Input intervals must belong to one resource and be ordered by Start.
func Segments(intervals []Interval) []Interval {
	if len(intervals) == 0 {
		return nil
	}

	result := make([]Interval, 0, len(intervals))
	current := intervals[0]

	for _, next := range intervals[1:] {
		if next.State == current.State && next.Resource == current.Resource && next.Start.Equal(current.End) {
			current.End = next.End
			continue
		}

		result = append(result, current)
		current = next
	}

	return append(result, current)
}
