package timeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/oshokin/machine-timeline/internal/codec"
	"github.com/oshokin/machine-timeline/internal/config"
	"github.com/oshokin/machine-timeline/internal/domain/machine"
)

// maxMessageSize bounds timeline responses; a week of 10 second samples exceeds the 4 MiB default.
const maxMessageSize = 64 << 20

// Client wraps a connection to the TimelineService.
type Client struct {
	// conn is the underlying gRPC connection.
	conn *grpc.ClientConn
	// callTimeout is the default timeout for individual RPC calls.
	callTimeout time.Duration
	// dialOptions are appended to the defaults when dialing.
	dialOptions []grpc.DialOption
}

// Option configures client behaviour.
type Option func(*Client)

// WithCallTimeout sets a default timeout for service calls.
func WithCallTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.callTimeout = timeout
		}
	}
}

// WithDialOptions appends raw gRPC dial options, e.g. a custom dialer.
func WithDialOptions(opts ...grpc.DialOption) Option {
	return func(c *Client) {
		c.dialOptions = append(c.dialOptions, opts...)
	}
}

// errAddressRequired is returned when no address is given.
var errAddressRequired = errors.New("address must be provided")

// Dial creates a client of the TimelineService at address.
// The transport is insecure: run it on a trusted network.
func Dial(_ context.Context, address string, opts ...Option) (*Client, error) {
	if address == "" {
		return nil, errAddressRequired
	}

	client := &Client{
		callTimeout: config.DefaultTimeout,
	}

	for _, opt := range opts {
		opt(client)
	}

	dialOptions := append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithDefaultCallOptions(grpc.MaxCallRecvMsgSize(maxMessageSize)),
	}, client.dialOptions...)

	conn, err := grpc.NewClient(address, dialOptions...)
	if err != nil {
		return nil, fmt.Errorf("dial timeline server: %w", err)
	}

	client.conn = conn

	return client, nil
}

// Close releases the underlying connection.
func (c *Client) Close() error {
	if c == nil || c.conn == nil {
		return nil
	}

	return c.conn.Close()
}

// Classify asks the server for the state of one set of signal levels.
func (c *Client) Classify(ctx context.Context, levels map[string]int) (machine.State, error) {
	callCtx, cancel := c.callContext(ctx)
	defer cancel()

	out := new(structpb.Struct)
	if err := c.conn.Invoke(callCtx, ClassifyMethod, codec.EncodeSignals(levels), out); err != nil {
		return machine.StateEmpty, fmt.Errorf("classify: %w", err)
	}

	return codec.DecodeState(out)
}

// Timeline fetches the dataset of [from, to].
func (c *Client) Timeline(ctx context.Context, from, to time.Time) (*machine.Dataset, error) {
	callCtx, cancel := c.callContext(ctx)
	defer cancel()

	out := new(structpb.Struct)
	if err := c.conn.Invoke(callCtx, GetTimelineMethod, codec.EncodeRange(from, to), out); err != nil {
		return nil, fmt.Errorf("get timeline: %w", err)
	}

	return codec.DecodeDataset(out)
}

// callContext returns a context with the client's call timeout if configured.
func (c *Client) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.callTimeout <= 0 {
		return context.WithCancel(ctx)
	}

	return context.WithTimeout(ctx, c.callTimeout)
}
