package timeline

import (
	"context"
	"errors"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/oshokin/machine-timeline/internal/codec"
	"github.com/oshokin/machine-timeline/internal/domain/machine"
)

// ErrNoData is returned by a Service when the requested range holds no interval.
var ErrNoData = errors.New("no data")

// Service abstracts the business operations the transport layer depends on.
type Service interface {
	Classify(ctx context.Context, row machine.Row) machine.State
	Timeline(ctx context.Context, from, to time.Time) (*machine.Dataset, error)
}

// Server implements TimelineServiceServer on top of a Service.
type Server struct {
	// service provides the classification and assembly logic.
	service Service
}

// NewServer wires the provided service implementation into a gRPC handler.
func NewServer(service Service) *Server {
	return &Server{
		service: service,
	}
}

// Classify validates the signals of req and returns their state.
func (s *Server) Classify(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	row, err := codec.DecodeRow(req)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	return codec.EncodeState(s.service.Classify(ctx, row)), nil
}

// GetTimeline assembles the dataset of the requested date range.
func (s *Server) GetTimeline(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	from, to, err := codec.DecodeRange(req)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	if from.After(to) {
		return nil, status.Error(codes.InvalidArgument, "start date is after end date")
	}

	ds, err := s.service.Timeline(ctx, from, to)

	switch {
	case err == nil:
	case errors.Is(err, ErrNoData):
		return nil, status.Error(codes.NotFound, err.Error())
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return nil, status.FromContextError(err).Err()
	default:
		return nil, status.Error(codes.Internal, "unable to assemble timeline")
	}

	msg, err := codec.EncodeDataset(ds)
	if err != nil {
		return nil, status.Error(codes.Internal, "unable to encode timeline")
	}

	return msg, nil
}
