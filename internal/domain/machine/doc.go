// Package machine contains the core domain types for machine state classification.
//
// A Row is one sample of the fixed signal vocabulary read from a day file.
// Classify maps a Row to exactly one State by evaluating an ordered rule set,
// first match wins. Sequence places the classified rows of one resource (day)
// on a fixed-width time grid, producing the Intervals that renderers and
// reports consume.
package machine
