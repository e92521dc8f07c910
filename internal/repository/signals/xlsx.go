package signals

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// errNoSheet is returned for workbooks without any sheet.
var errNoSheet = errors.New("workbook has no sheet")

// XLSXReader reads the first sheet of a workbook.
type XLSXReader struct{}

// Formats implements Reader.
func (*XLSXReader) Formats() []string { return []string{"xlsx"} }

// Read implements Reader.
func (*XLSXReader) Read(ctx context.Context, path string) (*Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := excelize.OpenFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}

	defer func() {
		_ = f.Close()
	}()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errNoSheet
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}

	if len(rows) == 0 {
		return nil, errNoHeader
	}

	// GetRows reports a blank line between records as an empty row; the CSV reader never sees one.
	records := make([][]string, 0, len(rows)-1)

	for _, row := range rows[1:] {
		if !isBlank(row) {
			records = append(records, row)
		}
	}

	return NewTable(rows[0], records), nil
}

func isBlank(cells []string) bool {
	for _, cell := range cells {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}

	return true
}
