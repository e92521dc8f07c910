package signals

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// errNoHeader is returned for files without a header row.
var errNoHeader = errors.New("no header row")

// CSVReader reads comma-separated day files.
type CSVReader struct{}

// Formats implements Reader.
func (*CSVReader) Formats() []string { return []string{"csv"} }

// Read implements Reader.
func (*CSVReader) Read(ctx context.Context, path string) (*Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}

	defer func() {
		_ = f.Close()
	}()

	return decodeCSV(f)
}

// decodeCSV reads a header row followed by records. Short records are padded.
func decodeCSV(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("decode csv: %w", err)
	}

	if len(rows) == 0 {
		return nil, errNoHeader
	}

	header := rows[0]
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	return NewTable(header, rows[1:]), nil
}
