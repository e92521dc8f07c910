package snapshot

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/oshokin/machine-timeline/internal/codec"
	"github.com/oshokin/machine-timeline/internal/config"
	"github.com/oshokin/machine-timeline/internal/domain/machine"
)

// Repository defines persistence operations for a dataset snapshot.
type Repository interface {
	Load(ctx context.Context) (*machine.Dataset, error)
	Save(ctx context.Context, ds *machine.Dataset) error
}

// FileRepository stores a dataset snapshot in a JSON file.
type FileRepository struct {
	// path is the location of the snapshot file.
	path string
	// mu serializes access to the file.
	mu sync.Mutex
}

// ErrNotFound is returned when the snapshot file does not exist.
var ErrNotFound = errors.New("snapshot not found")

// NewFileRepository creates a repository reading and writing path.
func NewFileRepository(path string) *FileRepository {
	return &FileRepository{
		path: filepath.Clean(path),
	}
}

// Path returns the snapshot location.
func (r *FileRepository) Path() string {
	return r.path
}

// Load reads the snapshot from disk.
func (r *FileRepository) Load(_ context.Context) (*machine.Dataset, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	contents, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("read snapshot file: %w", err)
	}

	var msg structpb.Struct
	if err = protojson.Unmarshal(contents, &msg); err != nil {
		return nil, fmt.Errorf("decode snapshot file: %w", err)
	}

	ds, err := codec.DecodeDataset(&msg)
	if err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}

	return ds, nil
}

// Save writes the snapshot to disk.
func (r *FileRepository) Save(_ context.Context, ds *machine.Dataset) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	msg, err := codec.EncodeDataset(ds)
	if err != nil {
		return err
	}

	marshalOptions := protojson.MarshalOptions{
		Multiline: true,
		Indent:    "  ",
	}

	data, err := marshalOptions.Marshal(msg)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	if err = os.WriteFile(r.path, data, config.DefaultFilePermissions); err != nil {
		return fmt.Errorf("write snapshot file: %w", err)
	}

	return nil
}
