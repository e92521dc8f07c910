package machine

import (
	"strconv"
	"strings"
)

// Row is one sample of the signal vocabulary. It is immutable once built by ParseRow.
type Row struct {
	// Source identifies the resource (day) the sample was read from.
	Source string
	// Index is the 0-based position of the sample within its source.
	Index int

	Alarm bool
	Mem   bool
	Tape  bool
	MDI   bool
	NA3   bool

	Ret  bool
	PTP  bool
	Step bool
	Hand bool
	Jog  bool

	Den2 bool
	SMZ  bool
	INP  bool
	AFC  bool
	Cut  bool
	CXF  bool
	STL  bool
	OP   bool
}

// ParseRow builds a Row from raw cell values keyed by column name.
// Columns outside the vocabulary are ignored. Every required signal must be
// present and hold 0 or 1, otherwise a *MissingSignalError or
// *InvalidSignalError is returned.
func ParseRow(source string, index int, fields map[string]string) (Row, error) {
	row := Row{
		Source: source,
		Index:  index,
	}

	for _, signal := range vocabulary {
		raw, ok := fields[string(signal)]
		if !ok {
			return Row{}, &MissingSignalError{Signal: signal}
		}

		value, err := ParseLevel(signal, raw)
		if err != nil {
			return Row{}, err
		}

		*row.field(signal) = value
	}

	return row, nil
}

// ParseLevel converts a raw cell into a binary level.
// Spreadsheet tools write levels as 1, 0, 1.0 or 0.0; boolean literals are accepted too.
func ParseLevel(signal Signal, raw string) (bool, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return false, &MissingSignalError{Signal: signal}
	}

	if number, err := strconv.ParseFloat(value, 64); err == nil {
		switch number {
		case 0:
			return false, nil
		case 1:
			return true, nil
		default:
			return false, &InvalidSignalError{Signal: signal, Value: raw}
		}
	}

	level, err := strconv.ParseBool(value)
	if err != nil {
		return false, &InvalidSignalError{Signal: signal, Value: raw}
	}

	return level, nil
}

// Level returns the value of the given signal.
// Signals outside the vocabulary read as false.
func (r Row) Level(signal Signal) bool {
	if ptr := r.field(signal); ptr != nil {
		return *ptr
	}

	return false
}

// Values returns the signal levels encoded as 0 or 1, keyed by column name.
func (r Row) Values() map[string]int {
	result := make(map[string]int, len(vocabulary))

	for _, signal := range vocabulary {
		result[string(signal)] = 0
		if r.Level(signal) {
			result[string(signal)] = 1
		}
	}

	return result
}

// field maps a signal to its storage. It returns nil for unknown signals.
//
//nolint:cyclop // One case per vocabulary entry.
func (r *Row) field(signal Signal) *bool {
	switch signal {
	case SignalAlarm:
		return &r.Alarm
	case SignalMem:
		return &r.Mem
	case SignalTape:
		return &r.Tape
	case SignalMDI:
		return &r.MDI
	case SignalNA3:
		return &r.NA3
	case SignalRet:
		return &r.Ret
	case SignalPTP:
		return &r.PTP
	case SignalStep:
		return &r.Step
	case SignalHand:
		return &r.Hand
	case SignalJog:
		return &r.Jog
	case SignalDen2:
		return &r.Den2
	case SignalSMZ:
		return &r.SMZ
	case SignalINP:
		return &r.INP
	case SignalAFC:
		return &r.AFC
	case SignalCut:
		return &r.Cut
	case SignalCXF:
		return &r.CXF
	case SignalSTL:
		return &r.STL
	case SignalOP:
		return &r.OP
	default:
		return nil
	}
}
