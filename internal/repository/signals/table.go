package signals

import (
	"strings"

	"github.com/oshokin/machine-timeline/internal/domain/machine"
)

// Table is a decoded day file: named columns and string cells.
type Table struct {
	// Columns are the header names.
	Columns []string
	// Records hold one cell per column.
	Records [][]string
}

// NewTable builds a table, padding or truncating records to the header width.
func NewTable(columns []string, records [][]string) *Table {
	width := len(columns)
	normalized := make([][]string, len(records))

	for i, record := range records {
		row := make([]string, width)
		copy(row, record)
		normalized[i] = row
	}

	return &Table{
		Columns: columns,
		Records: normalized,
	}
}

// DropEmptyColumns returns a copy without the columns whose cells are all blank.
// A table without records is returned unchanged.
func (t *Table) DropEmptyColumns() *Table {
	if len(t.Records) == 0 {
		return t
	}

	keep := make([]int, 0, len(t.Columns))

	for col := range t.Columns {
		for _, record := range t.Records {
			if strings.TrimSpace(record[col]) != "" {
				keep = append(keep, col)
				break
			}
		}
	}

	columns := make([]string, len(keep))
	for i, col := range keep {
		columns[i] = t.Columns[col]
	}

	records := make([][]string, len(t.Records))

	for i, record := range t.Records {
		row := make([]string, len(keep))
		for j, col := range keep {
			row[j] = record[col]
		}

		records[i] = row
	}

	return &Table{
		Columns: columns,
		Records: records,
	}
}

// Rows validates every record and returns them as machine rows of source.
// A required column absent from the header fails the whole table with
// *machine.MissingSignalError; a bad cell fails it with *machine.RowError.
func (t *Table) Rows(source string) ([]machine.Row, error) {
	index := make(map[string]int, len(t.Columns))

	for i, name := range t.Columns {
		// Unrelated columns are neither validated nor copied.
		if signal := machine.Signal(strings.TrimSpace(name)); signal.IsKnown() {
			index[signal.String()] = i
		}
	}

	for _, signal := range machine.Signals() {
		if _, ok := index[signal.String()]; !ok {
			return nil, &machine.MissingSignalError{Signal: signal}
		}
	}

	rows := make([]machine.Row, len(t.Records))
	fields := make(map[string]string, len(index))

	for i, record := range t.Records {
		for name, col := range index {
			fields[name] = record[col]
		}

		row, err := machine.ParseRow(source, i, fields)
		if err != nil {
			return nil, &machine.RowError{Index: i, Err: err}
		}

		rows[i] = row
	}

	return rows, nil
}
