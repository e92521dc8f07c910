package cmd

import (
	"github.com/spf13/cobra"

	"github.com/oshokin/machine-timeline/internal/service/common"
	"github.com/oshokin/machine-timeline/internal/service/render"
)

var (
	// renderOrigin selects where the rendered dataset comes from.
	renderOrigin common.Origin
	// renderTitle overrides the chart title.
	renderTitle string

	renderCmd = &cobra.Command{
		Use:   "render",
		Short: "Draw the timeline chart of a date range.",
		Long: `Assembles the day files of the date range and draws one horizontal lane per day,
colored by operating state, with a 24 hour time axis.

The output extension selects the image format: png, svg, pdf, jpg, tiff or eps.
The dataset can also be read from a JSON snapshot (--snapshot) or fetched
from a running server (--remote).`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			ctx, stop := signalContext()
			defer stop()

			return render.Run(ctx, &render.Options{
				Settings: settings,
				Origin:   renderOrigin,
				Title:    renderTitle,
			})
		},
	}
)

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	renderCmd.Flags().StringVar(&renderOrigin.Snapshot, "snapshot", "", "read the dataset from a JSON snapshot")
	renderCmd.Flags().BoolVar(&renderOrigin.Remote, "remote", false, "fetch the dataset from the gRPC server")
	renderCmd.Flags().StringVarP(&renderTitle, "title", "t", "", "chart title")
	renderCmd.MarkFlagsMutuallyExclusive("snapshot", "remote")

	rootCmd.AddCommand(renderCmd)
}
