package machine

import "time"

// Summary is the time spent in each state by one resource.
type Summary struct {
	// Resource identifies the day.
	Resource string
	// Samples is the number of classified intervals.
	Samples int
	// Durations holds the accumulated time per state.
	Durations map[State]time.Duration
}

// Summarize accumulates the durations of a timeline per state.
// Every state is present in the result, with zero when unseen.
func Summarize(tl Timeline) Summary {
	summary := Summary{
		Resource:  tl.Resource,
		Samples:   len(tl.Intervals),
		Durations: make(map[State]time.Duration, len(states)),
	}

	for _, s := range states {
		summary.Durations[s] = 0
	}

	for _, interval := range tl.Intervals {
		summary.Durations[interval.State] += interval.Duration()
	}

	return summary
}

// Total returns the covered time of the resource.
func (s Summary) Total() time.Duration {
	var total time.Duration
	for _, d := range s.Durations {
		total += d
	}

	return total
}

// Utilization returns the share of the covered time spent in StateAutoRunning.
func (s Summary) Utilization() float64 {
	total := s.Total()
	if total == 0 {
		return 0
	}

	return float64(s.Durations[StateAutoRunning]) / float64(total)
}
