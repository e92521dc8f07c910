package machine

import (
	"fmt"
	"strings"
)

// State is the classified operating mode of one sampled interval.
type State uint8

// The zero value is StateEmpty: a row that commits to nothing.
const (
	StateEmpty State = iota
	StateAlarm
	StateAutoRunning
	StateFeedHold
	StateSetup
)

// states lists every State in priority order, highest first.
//
//nolint:gochecknoglobals // Fixed enumeration, never mutated.
var states = []State{StateAlarm, StateAutoRunning, StateFeedHold, StateSetup, StateEmpty}

// States returns all states in priority order, highest first.
func States() []State {
	result := make([]State, len(states))
	copy(result, states)

	return result
}

// String returns the canonical name of the state.
func (s State) String() string {
	switch s {
	case StateAlarm:
		return "ALARM"
	case StateAutoRunning:
		return "AUTO_RUNNING"
	case StateFeedHold:
		return "FEED_HOLD"
	case StateSetup:
		return "SETUP"
	case StateEmpty:
		return "EMPTY"
	default:
		return fmt.Sprintf("State(%d)", uint8(s))
	}
}

// Label returns the operator-facing label shown on charts and reports.
func (s State) Label() string {
	switch s {
	case StateAlarm:
		return "ALARM"
	case StateAutoRunning:
		return "AUTO KJØRING"
	case StateFeedHold:
		return "FEED HOLD"
	case StateSetup:
		return "OPPSETT"
	case StateEmpty:
		return "empty"
	default:
		return s.String()
	}
}

// IsValid reports whether s is one of the enumerated states.
func (s State) IsValid() bool {
	return s <= StateSetup
}

// ParseState accepts either the canonical name or the operator label, case-insensitively.
func ParseState(name string) (State, error) {
	name = strings.TrimSpace(name)

	for _, s := range states {
		if strings.EqualFold(name, s.String()) || strings.EqualFold(name, s.Label()) {
			return s, nil
		}
	}

	return StateEmpty, fmt.Errorf("%w: %q", ErrUnknownState, name)
}

// MarshalText implements encoding.TextMarshaler.
func (s State) MarshalText() ([]byte, error) {
	if !s.IsValid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownState, uint8(s))
	}

	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *State) UnmarshalText(text []byte) error {
	parsed, err := ParseState(string(text))
	if err != nil {
		return err
	}

	*s = parsed

	return nil
}
