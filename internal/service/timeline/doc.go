// Package timeline assembles the classified dataset of a date range.
//
// Each day file is loaded, classified and sequenced on its own. A file that
// cannot be dated, read or validated is reported in the result and logged,
// never fatal to the batch. An assembly without any interval is an error.
package timeline
