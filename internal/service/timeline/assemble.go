package timeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/multierr"

	"github.com/oshokin/machine-timeline/internal/domain/machine"
	"github.com/oshokin/machine-timeline/internal/logger"
	"github.com/oshokin/machine-timeline/internal/repository/signals"
)

// ErrEmptyDataset is returned when no file of the range produced an interval.
var ErrEmptyDataset = errors.New("no data in date range")

// Source lists and loads day files.
type Source interface {
	Discover(ctx context.Context, from, to time.Time) (*signals.Listing, error)
	Load(ctx context.Context, file signals.DayFile) ([]machine.Row, error)
}

// Result is an assembled dataset and the files left out of it.
type Result struct {
	// Dataset holds one timeline per loaded day, ordered by date.
	Dataset *machine.Dataset
	// Failures aggregates the per-file errors, nil when every file loaded.
	Failures error
}

// Failed returns the per-file errors one by one.
func (r *Result) Failed() []error {
	return multierr.Errors(r.Failures)
}

// Assemble loads every day file of [from, to] from src and classifies it.
func Assemble(ctx context.Context, src Source, from, to time.Time) (*Result, error) {
	ctx = logger.WithName(ctx, "assembly")

	listing, err := src.Discover(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("discover day files: %w", err)
	}

	result := &Result{
		Dataset: new(machine.Dataset),
	}

	for _, skipped := range listing.Skipped {
		logger.WarnKV(ctx, "Skipping day file", "error", skipped)
		result.Failures = multierr.Append(result.Failures, skipped)
	}

	for _, file := range listing.Files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		fileCtx := logger.WithKV(ctx, "file", file.Name)

		rows, err := src.Load(fileCtx, file)
		if err != nil {
			logger.WarnKV(fileCtx, "Skipping unreadable file", "error", err)
			result.Failures = multierr.Append(result.Failures, err)

			continue
		}

		if len(rows) == 0 {
			logger.WarnKV(fileCtx, "Day file has no samples")
			continue
		}

		tl := machine.Sequence(file.Resource(), rows)
		result.Dataset.Timelines = append(result.Dataset.Timelines, tl)

		logger.DebugKV(fileCtx, "Timeline built", "resource", tl.Resource, "intervals", len(tl.Intervals))
	}

	if result.Dataset.IsEmpty() {
		return nil, fmt.Errorf(
			"%w: %s..%s, %d file(s) failed",
			ErrEmptyDataset,
			from.Format(time.DateOnly),
			to.Format(time.DateOnly),
			len(result.Failed()),
		)
	}

	logger.InfoKV(ctx, "Dataset assembled",
		"days", len(result.Dataset.Timelines),
		"failed", len(result.Failed()),
	)

	return result, nil
}
