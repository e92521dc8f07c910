package export

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/oshokin/machine-timeline/internal/logger"
	"github.com/oshokin/machine-timeline/internal/render"
	"github.com/oshokin/machine-timeline/internal/report"
	"github.com/oshokin/machine-timeline/internal/repository/snapshot"
	"github.com/oshokin/machine-timeline/internal/service/common"
)

// Supported export formats.
const (
	FormatXLSX = "xlsx"
	FormatJSON = "json"
)

// DefaultBasename is the output path without extension used when none is given.
const DefaultBasename = "timeline"

// ErrUnknownFormat is returned for formats other than FormatXLSX and FormatJSON.
var ErrUnknownFormat = errors.New("unknown export format")

// Options controls one export.
type Options struct {
	// Settings holds the settings file path and the folder and date overrides.
	// Its Output field is ignored: it names the chart, not the export.
	Settings common.Overrides
	// Origin selects the dataset source: folder, snapshot or server.
	Origin common.Origin
	// Format is FormatXLSX or FormatJSON.
	Format string
	// Output is the destination path; empty selects DefaultBasename.<format>.
	Output string
}

// Run writes the dataset of the configured date range in the requested format.
func Run(ctx context.Context, opts *Options) error {
	ctx = logger.WithName(ctx, "export")

	format := strings.ToLower(opts.Format)
	if format != FormatXLSX && format != FormatJSON {
		return fmt.Errorf("%w: %q", ErrUnknownFormat, opts.Format)
	}

	output := opts.Output
	if output == "" {
		output = DefaultBasename + "." + format
	}

	settings := opts.Settings
	settings.Output = ""

	cfg, err := common.LoadSettings(&settings)
	if err != nil {
		return err
	}

	ds, err := common.Dataset(ctx, cfg, opts.Origin)
	if err != nil {
		return err
	}

	switch format {
	case FormatXLSX:
		err = report.SaveXLSX(output, ds, render.DefaultPalette())
	case FormatJSON:
		err = snapshot.NewFileRepository(output).Save(ctx, ds)
	}

	if err != nil {
		return fmt.Errorf("export %s: %w", format, err)
	}

	logger.InfoKV(ctx, "Dataset exported",
		"format", format,
		"output", output,
		"days", len(ds.Timelines),
	)

	return nil
}
