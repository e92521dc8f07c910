package cmd

import (
	"github.com/spf13/cobra"

	"github.com/oshokin/machine-timeline/internal/service/common"
	"github.com/oshokin/machine-timeline/internal/service/export"
)

var (
	// exportOrigin selects where the exported dataset comes from.
	exportOrigin common.Origin
	// exportFormat is xlsx or json.
	exportFormat string

	exportCmd = &cobra.Command{
		Use:   "export",
		Short: "Write the timelines of a date range as XLSX or JSON.",
		Long: `Assembles the day files of the date range and writes them either as an XLSX
report (a Summary sheet plus one sheet of state segments per day) or as a JSON
snapshot that render --snapshot can read back.

Without --output the file is named timeline.<format>.`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			ctx, stop := signalContext()
			defer stop()

			return export.Run(ctx, &export.Options{
				Settings: settings,
				Origin:   exportOrigin,
				Format:   exportFormat,
				Output:   settings.Output,
			})
		},
	}
)

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", export.FormatXLSX, "export format: xlsx or json")
	exportCmd.Flags().StringVar(&exportOrigin.Snapshot, "snapshot", "", "read the dataset from a JSON snapshot")
	exportCmd.Flags().BoolVar(&exportOrigin.Remote, "remote", false, "fetch the dataset from the gRPC server")
	exportCmd.MarkFlagsMutuallyExclusive("snapshot", "remote")

	rootCmd.AddCommand(exportCmd)
}
