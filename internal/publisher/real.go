package publisher

import (
	"context"
	"errors"
	"fmt"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"

	"github.com/oshokin/machine-timeline/internal/domain/machine"
)

const (
	// qosAtLeastOnce is used for summaries: a lost day would go unnoticed.
	qosAtLeastOnce = 1
	// disconnectQuiesce is how long Close waits for in-flight work, in milliseconds.
	disconnectQuiesce = 1000
)

var (
	// errBrokerRequired is returned when no broker URL is configured.
	errBrokerRequired = errors.New("broker must be provided")
	// errTimeout is returned when the broker does not acknowledge in time.
	errTimeout = errors.New("timed out")
)

// Options configures a RealPublisher.
type Options struct {
	// Broker is the broker URL, e.g. tcp://localhost:1883.
	Broker string
	// ClientID identifies the client at the broker.
	ClientID string
	// Topic is the prefix under which one retained message per resource is published.
	Topic string
	// Timeout bounds connecting and every publish.
	Timeout time.Duration
}

// RealPublisher publishes to an actual MQTT broker.
type RealPublisher struct {
	client  paho.Client
	topic   string
	timeout time.Duration
}

// NewRealPublisher creates a publisher connected to the configured broker.
func NewRealPublisher(ctx context.Context, opts Options) (*RealPublisher, error) {
	if opts.Broker == "" {
		return nil, errBrokerRequired
	}

	clientOptions := paho.NewClientOptions().
		AddBroker(opts.Broker).
		SetClientID(opts.ClientID).
		SetCleanSession(true).
		SetAutoReconnect(false).
		SetConnectTimeout(opts.Timeout)

	client := paho.NewClient(clientOptions)
	if err := wait(ctx, client.Connect(), opts.Timeout); err != nil {
		return nil, fmt.Errorf("connect to broker: %w", err)
	}

	return &RealPublisher{
		client:  client,
		topic:   opts.Topic,
		timeout: opts.Timeout,
	}, nil
}

// Publish sends the summary as a retained message to <topic>/<resource>.
func (p *RealPublisher) Publish(ctx context.Context, summary machine.Summary) error {
	payload, err := FormatPayload(summary)
	if err != nil {
		return fmt.Errorf("format payload: %w", err)
	}

	token := p.client.Publish(Topic(p.topic, summary.Resource), qosAtLeastOnce, true, payload)
	if err := wait(ctx, token, p.timeout); err != nil {
		return fmt.Errorf("publish %s: %w", summary.Resource, err)
	}

	return nil
}

// Close disconnects from the broker.
func (p *RealPublisher) Close() error {
	p.client.Disconnect(disconnectQuiesce)

	return nil
}

// wait blocks until token completes, ctx is done or timeout elapses.
func wait(ctx context.Context, token paho.Token, timeout time.Duration) error {
	var expired <-chan time.Time

	if timeout > 0 {
		timer := time.NewTimer(timeout)
		defer timer.Stop()

		expired = timer.C
	}

	select {
	case <-token.Done():
		return token.Error()
	case <-ctx.Done():
		return ctx.Err()
	case <-expired:
		return errTimeout
	}
}
