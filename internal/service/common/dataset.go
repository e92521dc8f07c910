//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common

import (
	"context"
	"fmt"

	api "github.com/oshokin/machine-timeline/internal/api/grpc/timeline"
	"github.com/oshokin/machine-timeline/internal/config"
	"github.com/oshokin/machine-timeline/internal/domain/machine"
	"github.com/oshokin/machine-timeline/internal/logger"
	"github.com/oshokin/machine-timeline/internal/repository/signals"
	"github.com/oshokin/machine-timeline/internal/repository/snapshot"
	"github.com/oshokin/machine-timeline/internal/service/timeline"
)

// Origin selects where a dataset comes from. At most one field may be set;
// when both are empty the day files of the configured folder are assembled.
type Origin struct {
	// Snapshot is the path of a JSON snapshot written by the export command.
	Snapshot string
	// Remote is true to fetch the dataset from the configured gRPC server.
	Remote bool
}

// Dataset obtains the dataset of the configured date range from origin.
func Dataset(ctx context.Context, cfg *config.Config, origin Origin) (*machine.Dataset, error) {
	switch {
	case origin.Snapshot != "":
		return fromSnapshot(ctx, origin.Snapshot)
	case origin.Remote:
		return fromServer(ctx, cfg)
	default:
		result, err := Assemble(ctx, cfg)
		if err != nil {
			return nil, err
		}

		return result.Dataset, nil
	}
}

// Assemble builds the dataset of the configured folder and date range,
// logging every file that had to be left out.
func Assemble(ctx context.Context, cfg *config.Config) (*timeline.Result, error) {
	if err := config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("validate settings: %w", err)
	}

	from, to, err := cfg.DateRange()
	if err != nil {
		return nil, err
	}

	repo := signals.NewRepository(cfg.FolderPath, nil)

	logger.InfoKV(ctx, "Assembling dataset",
		"folder", repo.Dir(),
		"start_date", cfg.StartDate,
		"end_date", cfg.EndDate,
	)

	result, err := timeline.Assemble(ctx, repo, from, to)
	if err != nil {
		return nil, fmt.Errorf("assemble dataset: %w", err)
	}

	for _, failure := range result.Failed() {
		logger.WarnKV(ctx, "File left out of the dataset", "error", failure)
	}

	return result, nil
}

func fromSnapshot(ctx context.Context, path string) (*machine.Dataset, error) {
	repo := snapshot.NewFileRepository(path)

	ds, err := repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load snapshot %s: %w", repo.Path(), err)
	}

	if ds.IsEmpty() {
		return nil, fmt.Errorf("%w: snapshot %s", timeline.ErrEmptyDataset, repo.Path())
	}

	logger.InfoKV(ctx, "Snapshot loaded", "path", repo.Path(), "days", len(ds.Timelines))

	return ds, nil
}

func fromServer(ctx context.Context, cfg *config.Config) (*machine.Dataset, error) {
	from, to, err := cfg.DateRange()
	if err != nil {
		return nil, err
	}

	client, err := api.Dial(ctx, cfg.ServerAddress, api.WithCallTimeout(cfg.Timeout))
	if err != nil {
		return nil, fmt.Errorf("dial server: %w", err)
	}

	defer func() {
		_ = client.Close()
	}()

	ds, err := client.Timeline(ctx, from, to)
	if err != nil {
		return nil, err
	}

	logger.InfoKV(ctx, "Dataset fetched", "server_address", cfg.ServerAddress, "days", len(ds.Timelines))

	return ds, nil
}
