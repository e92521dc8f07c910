package render

import (
	"context"
	"fmt"

	"gonum.org/v1/plot/vg"

	"github.com/oshokin/machine-timeline/internal/logger"
	chart "github.com/oshokin/machine-timeline/internal/render"
	"github.com/oshokin/machine-timeline/internal/service/common"
)

// Options controls one rendering.
type Options struct {
	// Settings holds the settings file path and its command-line overrides.
	Settings common.Overrides
	// Origin selects the dataset source: folder, snapshot or server.
	Origin common.Origin
	// Title overrides chart.title.
	Title string
}

// Run draws the chart of the configured date range.
func Run(ctx context.Context, opts *Options) error {
	ctx = logger.WithName(ctx, "render")

	cfg, err := common.LoadSettings(&opts.Settings)
	if err != nil {
		return err
	}

	ds, err := common.Dataset(ctx, cfg, opts.Origin)
	if err != nil {
		return err
	}

	title := cfg.Chart.Title
	if opts.Title != "" {
		title = opts.Title
	}

	chartOptions := chart.Options{
		Width:  vg.Points(float64(cfg.Chart.Width)),
		Height: vg.Points(float64(cfg.Chart.Height)),
		Title:  title,
	}

	if err := chart.Save(cfg.Output, ds, chartOptions); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}

	logger.InfoKV(ctx, "Chart written",
		"output", cfg.Output,
		"days", len(ds.Timelines),
	)

	return nil
}
