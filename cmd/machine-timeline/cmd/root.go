package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oshokin/machine-timeline/internal/config"
	"github.com/oshokin/machine-timeline/internal/logger"
	"github.com/oshokin/machine-timeline/internal/service/common"
	"github.com/oshokin/machine-timeline/internal/version"
)

// errUnknownLogLevel is returned for --log-level values zap does not know.
var errUnknownLogLevel = errors.New("unknown log level")

var (
	// settings collects the persistent flags shared by every command.
	settings common.Overrides
	// logLevel is the minimum level written to stderr.
	logLevel string

	// rootCmd represents the base command; the work is done by its subcommands.
	rootCmd = &cobra.Command{
		Use:   "machine-timeline",
		Short: "Classify CNC machine signals into an operating-state timeline.",
		Long: `Reads one signal file per day (YYYYMMDD.csv or YYYYMMDD.xlsx) from a folder,
classifies every 10 second sample as ALARM, AUTO_RUNNING, FEED_HOLD, SETUP or EMPTY
and turns the resulting timelines into a chart, a report, a gRPC service or MQTT messages.

Settings are read from a YAML file; the folder, date range and output flags override it.`,
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			level, ok := logger.ParseLogLevel(logLevel)
			if !ok {
				return fmt.Errorf("%w: %q", errUnknownLogLevel, logLevel)
			}

			logger.SetLevel(level)

			return nil
		},
	}
)

// Execute runs the machine-timeline CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// signalContext is canceled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	flags := rootCmd.PersistentFlags()

	flags.StringVarP(&settings.ConfigPath, "config", "c", config.DefaultConfigFilename, "path to configuration file")
	flags.StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error")
	flags.StringVarP(&settings.FolderPath, "folder", "f", "", "folder holding one YYYYMMDD file per day")
	flags.StringVar(&settings.StartDate, "from", "", "first day of the range, YYYY-MM-DD")
	flags.StringVar(&settings.EndDate, "to", "", "last day of the range, YYYY-MM-DD")
	flags.StringVarP(&settings.Output, "output", "o", "", "output path")
	flags.StringVarP(&settings.ServerAddress, "server", "s", "", "gRPC server address")
}
