// Package report writes an assembled dataset as an XLSX workbook: a Summary
// sheet with the time spent per state and one sheet of state segments per day.
package report
