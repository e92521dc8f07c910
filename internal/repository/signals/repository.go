package signals

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/oshokin/machine-timeline/internal/domain/machine"
)

// Repository reads the day files of one folder.
type Repository struct {
	// dir is the folder holding the day files.
	dir string
	// registry selects a Reader per extension.
	registry *Registry
}

// NewRepository creates a repository over dir. A nil registry selects NewRegistry.
func NewRepository(dir string, registry *Registry) *Repository {
	if registry == nil {
		registry = NewRegistry()
	}

	return &Repository{
		dir:      filepath.Clean(dir),
		registry: registry,
	}
}

// Dir returns the folder of the repository.
func (r *Repository) Dir() string {
	return r.dir
}

// Discover lists the day files within [from, to].
func (r *Repository) Discover(ctx context.Context, from, to time.Time) (*Listing, error) {
	return Discover(ctx, r.dir, r.registry, from, to)
}

// Load reads, cleans and validates the rows of one day file.
func (r *Repository) Load(ctx context.Context, file DayFile) ([]machine.Row, error) {
	reader, err := r.registry.Get(file.Format)
	if err != nil {
		return nil, err
	}

	table, err := reader.Read(ctx, file.Path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", file.Name, err)
	}

	rows, err := table.DropEmptyColumns().Rows(file.Resource())
	if err != nil {
		return nil, fmt.Errorf("validate %s: %w", file.Name, err)
	}

	return rows, nil
}
