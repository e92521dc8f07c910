// Package export implements the export command: it writes an assembled
// dataset as an XLSX report or a JSON snapshot.
package export
