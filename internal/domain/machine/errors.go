package machine

import (
	"errors"
	"fmt"
)

// ErrUnknownState is returned by ParseState for names outside the State enumeration.
var ErrUnknownState = errors.New("unknown machine state")

// MissingSignalError reports a required signal that is absent or empty in a row.
type MissingSignalError struct {
	// Signal is the missing column.
	Signal Signal
}

// Error implements the error interface.
func (e *MissingSignalError) Error() string {
	return fmt.Sprintf("missing signal %s", e.Signal)
}

// InvalidSignalError reports a signal value that is present but not 0 or 1.
type InvalidSignalError struct {
	// Signal is the offending column.
	Signal Signal
	// Value is the raw cell content.
	Value string
}

// Error implements the error interface.
func (e *InvalidSignalError) Error() string {
	return fmt.Sprintf("signal %s has non-binary value %q", e.Signal, e.Value)
}

// RowError attaches the ordinal position of a sample to a row-level failure.
type RowError struct {
	// Index is the 0-based sample index within its source.
	Index int
	// Err is the underlying failure.
	Err error
}

// Error implements the error interface.
func (e *RowError) Error() string {
	return fmt.Sprintf("row %d: %v", e.Index, e.Err)
}

// Unwrap exposes the underlying failure to errors.Is and errors.As.
func (e *RowError) Unwrap() error {
	return e.Err
}
