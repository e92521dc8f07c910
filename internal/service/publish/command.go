package publish

import (
	"context"
	"fmt"

	"go.uber.org/multierr"

	"github.com/oshokin/machine-timeline/internal/config"
	"github.com/oshokin/machine-timeline/internal/domain/machine"
	"github.com/oshokin/machine-timeline/internal/logger"
	"github.com/oshokin/machine-timeline/internal/publisher"
	"github.com/oshokin/machine-timeline/internal/service/common"
)

// Options controls one publication run.
type Options struct {
	// Settings holds the settings file path and the folder and date overrides.
	Settings common.Overrides
	// Origin selects the dataset source: folder, snapshot or server.
	Origin common.Origin
	// Broker overrides mqtt.broker.
	Broker string
	// Topic overrides mqtt.topic.
	Topic string
	// Connect creates the publisher; nil connects to the configured broker.
	Connect func(ctx context.Context, opts publisher.Options) (publisher.Publisher, error)
}

// Run publishes the summary of every day in the configured range.
// A failed day does not stop the others; all failures are returned together.
func Run(ctx context.Context, opts *Options) error {
	ctx = logger.WithName(ctx, "publish")

	cfg, err := common.LoadSettings(&opts.Settings)
	if err != nil {
		return err
	}

	publisherOptions := brokerOptions(cfg, opts)

	ds, err := common.Dataset(ctx, cfg, opts.Origin)
	if err != nil {
		return err
	}

	connect := opts.Connect
	if connect == nil {
		connect = connectBroker
	}

	pub, err := connect(ctx, publisherOptions)
	if err != nil {
		return fmt.Errorf("connect publisher: %w", err)
	}

	defer func() {
		_ = pub.Close()
	}()

	var failures error

	for _, tl := range ds.Timelines {
		summary := machine.Summarize(tl)

		if err := pub.Publish(ctx, summary); err != nil {
			logger.WarnKV(ctx, "Summary not published", "resource", tl.Resource, "error", err)
			failures = multierr.Append(failures, err)

			continue
		}

		logger.InfoKV(ctx, "Summary published",
			"topic", publisher.Topic(publisherOptions.Topic, tl.Resource),
			"utilization", summary.Utilization(),
		)
	}

	return failures
}

// brokerOptions merges the command-line overrides into the MQTT settings.
func brokerOptions(cfg *config.Config, opts *Options) publisher.Options {
	result := publisher.Options{
		Broker:   cfg.MQTT.Broker,
		ClientID: cfg.MQTT.ClientID,
		Topic:    cfg.MQTT.Topic,
		Timeout:  cfg.Timeout,
	}

	if opts.Broker != "" {
		result.Broker = opts.Broker
	}

	if opts.Topic != "" {
		result.Topic = opts.Topic
	}

	return result
}

func connectBroker(ctx context.Context, opts publisher.Options) (publisher.Publisher, error) {
	return publisher.NewRealPublisher(ctx, opts)
}
