package cmd

import (
	"github.com/spf13/cobra"

	"github.com/oshokin/machine-timeline/internal/service/server"
)

// serveCmd runs the gRPC TimelineService.
var serveCmd = &cobra.Command{
	Use:   "serve [listen-address]",
	Short: "Run the gRPC timeline service.",
	Long: `Starts the TimelineService over the configured folder.

Classify returns the state of one set of signal values; GetTimeline assembles
the day files of a date range on every call, so new files are picked up
without a restart.

Only the port of server_addr is used for listening (e.g., :50061).
Listen address can be provided as argument to override it (e.g., :9090, 0.0.0.0:8080).`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		ctx, stop := signalContext()
		defer stop()

		var listenAddress string
		if len(args) > 0 {
			listenAddress = args[0]
		}

		return server.Run(ctx, &server.Options{
			Settings:      settings,
			ListenAddress: listenAddress,
		})
	},
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	rootCmd.AddCommand(serveCmd)
}
