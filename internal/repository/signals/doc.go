// Package signals reads the per-day signal files of a machine.
//
// A folder holds one file per day named YYYYMMDD.<ext>. Repository.Discover
// selects the files of an inclusive date range, and Repository.Load reads one
// of them through the Reader registered for its extension, strips fully
// empty columns and validates every row against the signal vocabulary.
package signals
