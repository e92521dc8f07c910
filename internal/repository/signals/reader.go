package signals

import (
	"context"
	"errors"
	"fmt"
	"sort"
)

// ErrUnsupportedFormat is returned for extensions without a registered Reader.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// Reader decodes one day file into a Table.
type Reader interface {
	// Formats lists the lower-case extensions handled by the reader.
	Formats() []string
	// Read decodes the file at path. The first row holds the column names.
	Read(ctx context.Context, path string) (*Table, error)
}

// Registry maps file extensions to readers.
type Registry struct {
	readers map[string]Reader
}

// NewRegistry returns a registry with the CSV and XLSX readers.
func NewRegistry() *Registry {
	r := &Registry{readers: make(map[string]Reader)}

	for _, reader := range []Reader{new(CSVReader), new(XLSXReader)} {
		r.Register(reader)
	}

	return r
}

// Register adds reader for every format it declares, replacing earlier ones.
func (r *Registry) Register(reader Reader) {
	for _, format := range reader.Formats() {
		r.readers[format] = reader
	}
}

// Get returns the reader of format.
//
//nolint:ireturn // Readers are selected at runtime.
func (r *Registry) Get(format string) (Reader, error) {
	reader, ok := r.readers[format]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	return reader, nil
}

// Supports reports whether format has a reader.
func (r *Registry) Supports(format string) bool {
	_, ok := r.readers[format]

	return ok
}

// Formats lists the registered extensions in lexical order.
func (r *Registry) Formats() []string {
	result := make([]string, 0, len(r.readers))
	for format := range r.readers {
		result = append(result, format)
	}

	sort.Strings(result)

	return result
}
