package server

import (
	"context"
	"errors"
	"fmt"
	"time"

	api "github.com/oshokin/machine-timeline/internal/api/grpc/timeline"
	"github.com/oshokin/machine-timeline/internal/domain/machine"
	"github.com/oshokin/machine-timeline/internal/logger"
	"github.com/oshokin/machine-timeline/internal/service/timeline"
)

// service classifies rows and assembles datasets on behalf of the transport.
// It is unexported to keep the transport decoupled from the implementation.
type service struct {
	// source lists and loads the day files.
	source timeline.Source
}

// newService creates a service reading day files from source.
func newService(source timeline.Source) *service {
	return &service{
		source: source,
	}
}

// Classify returns the state of one row.
func (s *service) Classify(ctx context.Context, row machine.Row) machine.State {
	state := machine.Classify(row)

	logger.DebugKV(ctx, "Row classified", "state", state.String(), "signals", row.Values())

	return state
}

// Timeline assembles the day files of [from, to]. Files that fail are logged and left out.
func (s *service) Timeline(ctx context.Context, from, to time.Time) (*machine.Dataset, error) {
	result, err := timeline.Assemble(ctx, s.source, from, to)

	switch {
	case err == nil:
	case errors.Is(err, timeline.ErrEmptyDataset):
		return nil, fmt.Errorf("%w: %w", api.ErrNoData, err)
	default:
		logger.ErrorKV(ctx, "Assembly failed", "error", err)
		return nil, err
	}

	for _, failure := range result.Failed() {
		logger.WarnKV(ctx, "File left out of the response", "error", failure)
	}

	return result.Dataset, nil
}
