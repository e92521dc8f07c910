package machine

// Rule pairs a predicate over a Row with the State it yields.
type Rule struct {
	// State is returned when Match holds.
	State State
	// Match reports whether the row satisfies the rule.
	Match func(Row) bool
}

// rules is evaluated top to bottom and the first match wins.
// The predicates overlap, so the order is alarm > auto running > feed hold > setup.
//
//nolint:gochecknoglobals // Fixed rule set, never mutated.
var rules = []Rule{
	{State: StateAlarm, Match: isAlarm},
	{State: StateAutoRunning, Match: isAutoRunning},
	{State: StateFeedHold, Match: isFeedHold},
	{State: StateSetup, Match: isSetup},
}

// Rules returns the ordered rule set, highest priority first.
// StateEmpty has no rule: it is what Classify returns when nothing matches.
func Rules() []Rule {
	result := make([]Rule, len(rules))
	copy(result, rules)

	return result
}

// Classify returns the operating state of a row. It is pure and total.
func Classify(row Row) State {
	for _, rule := range rules {
		if rule.Match(row) {
			return rule.State
		}
	}

	return StateEmpty
}

func isAlarm(r Row) bool {
	return r.Alarm
}

// inProgramMode reports whether the control runs from memory or tape.
func inProgramMode(r Row) bool {
	return r.Mem || r.Tape
}

func isAutoRunning(r Row) bool {
	return inProgramMode(r) &&
		!r.Den2 &&
		!r.SMZ && !r.INP && !r.AFC &&
		(r.Cut || r.CXF) &&
		r.STL && r.OP
}

// isFeedHold ignores DEN2, CXF and OP: any binary level satisfies them.
// ParseRow has already rejected rows where they are absent or not binary.
func isFeedHold(r Row) bool {
	return inProgramMode(r) &&
		r.SMZ && r.INP && r.AFC
}

func isSetup(r Row) bool {
	manual := r.MDI || r.NA3 || r.Ret || r.PTP || r.Step || r.Hand || r.Jog
	positioning := r.SMZ || r.INP || r.AFC

	return manual && positioning
}
