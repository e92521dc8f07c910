package cmd

import (
	"github.com/spf13/cobra"

	"github.com/oshokin/machine-timeline/internal/service/publish"
)

var (
	// publishOptions collects the flags of the publish command.
	publishOptions publish.Options

	publishCmd = &cobra.Command{
		Use:   "publish",
		Short: "Publish the daily state summaries to MQTT.",
		Long: `Assembles the day files of the date range and publishes one retained JSON
message per day to <topic>/<YYYY-MM-DD>, holding the time spent in each
state and the share of the day spent in AUTO_RUNNING.`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			ctx, stop := signalContext()
			defer stop()

			opts := publishOptions
			opts.Settings = settings

			return publish.Run(ctx, &opts)
		},
	}
)

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	publishCmd.Flags().StringVar(&publishOptions.Broker, "broker", "", "MQTT broker URL, e.g. tcp://localhost:1883")
	publishCmd.Flags().StringVar(&publishOptions.Topic, "topic", "", "MQTT topic prefix")
	publishCmd.Flags().StringVar(&publishOptions.Origin.Snapshot, "snapshot", "", "read the dataset from a JSON snapshot")
	publishCmd.Flags().BoolVar(&publishOptions.Origin.Remote, "remote", false, "fetch the dataset from the gRPC server")
	publishCmd.MarkFlagsMutuallyExclusive("snapshot", "remote")

	rootCmd.AddCommand(publishCmd)
}
