package render

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/colornames"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/oshokin/machine-timeline/internal/domain/machine"
)

const (
	// hoursPerDay is the minimum width of the time axis.
	hoursPerDay = 24
	// majorTickHours spaces the labeled ticks; other hours get a dotted gridline.
	majorTickHours = 3
	// laneThickness is the share of a lane covered by its bars.
	laneThickness = 0.8
)

var (
	// ErrNothingToDraw is returned for datasets without any interval.
	ErrNothingToDraw = errors.New("nothing to draw")
	// ErrUnsupportedFormat is returned for image formats gonum/plot cannot write.
	ErrUnsupportedFormat = errors.New("unsupported image format")
)

// formats lists the image formats accepted by plot.WriterTo.
//
//nolint:gochecknoglobals // Fixed lookup table.
var formats = map[string]struct{}{
	"eps": {}, "jpg": {}, "jpeg": {}, "pdf": {}, "png": {}, "svg": {}, "tif": {}, "tiff": {},
}

// background is the dark theme of the figure.
//
//nolint:gochecknoglobals // Fixed theme color.
var background = color.RGBA{R: 0x11, G: 0x11, B: 0x11, A: 0xff}

// Options controls one rendering.
type Options struct {
	// Width and Height size the figure.
	Width  vg.Length
	Height vg.Length
	// Title is drawn above the chart; empty leaves it out.
	Title string
	// Palette colors the states; nil selects DefaultPalette.
	Palette Palette
}

// withDefaults fills unset options.
func (o Options) withDefaults() Options {
	if o.Width <= 0 {
		o.Width = 1000
	}

	if o.Height <= 0 {
		o.Height = 500
	}

	if o.Palette == nil {
		o.Palette = DefaultPalette()
	}

	return o
}

// Chart builds the timeline plot of ds.
func Chart(ds *machine.Dataset, opts Options) (*plot.Plot, error) {
	if ds.IsEmpty() {
		return nil, ErrNothingToDraw
	}

	opts = opts.withDefaults()

	var (
		layout = layoutBars(ds, opts.Palette)
		p      = plot.New()
	)

	applyTheme(p)

	p.Title.Text = opts.Title
	p.X.Label.Text = "Time of day"

	p.Add(&hourGrid{
		hours: layout.hours,
		style: draw.LineStyle{
			Color:  color.RGBA{R: 0x80, G: 0x80, B: 0x80, A: 0x80},
			Width:  vg.Points(0.5),
			Dashes: []vg.Length{vg.Points(1), vg.Points(2)},
		},
	})
	p.Add(layout)

	p.X.Min, p.X.Max = 0, layout.hours
	p.X.Tick.Marker = plot.ConstantTicks(hourTicks(layout.hours))
	p.Y.Min, p.Y.Max = -0.5, float64(len(layout.lanes))-0.5
	p.Y.Tick.Marker = plot.ConstantTicks(laneTicks(layout.lanes))

	for _, s := range machine.States() {
		if !layout.present[s] || isTransparent(opts.Palette.Color(s)) {
			continue
		}

		p.Legend.Add(s.Label(), swatch{color: opts.Palette.Color(s)})
	}

	return p, nil
}

// Write renders ds to w in format (png, svg, pdf, ...).
func Write(w io.Writer, format string, ds *machine.Dataset, opts Options) error {
	format = strings.ToLower(strings.TrimPrefix(format, "."))
	if _, ok := formats[format]; !ok {
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	p, err := Chart(ds, opts)
	if err != nil {
		return err
	}

	opts = opts.withDefaults()

	writer, err := p.WriterTo(opts.Width, opts.Height, format)
	if err != nil {
		return fmt.Errorf("prepare %s canvas: %w", format, err)
	}

	if _, err = writer.WriteTo(w); err != nil {
		return fmt.Errorf("write %s chart: %w", format, err)
	}

	return nil
}

// Save renders ds to path; the extension selects the format.
func Save(path string, ds *machine.Dataset, opts Options) error {
	format := filepath.Ext(path)

	// Refuse early so a rejected chart does not leave an empty file behind.
	if _, ok := formats[strings.ToLower(strings.TrimPrefix(format, "."))]; !ok {
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	if ds.IsEmpty() {
		return ErrNothingToDraw
	}

	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("create chart file: %w", err)
	}

	if err = Write(f, format, ds, opts); err != nil {
		_ = f.Close()
		return err
	}

	if err = f.Close(); err != nil {
		return fmt.Errorf("close chart file: %w", err)
	}

	return nil
}

// applyTheme gives the plot a dark background with light text.
func applyTheme(p *plot.Plot) {
	p.BackgroundColor = background
	p.Title.TextStyle.Color = colornames.White
	p.Legend.TextStyle.Color = colornames.White
	p.Legend.Top = true

	for _, axis := range []*plot.Axis{&p.X, &p.Y} {
		axis.Color = colornames.Gray
		axis.Label.TextStyle.Color = colornames.Lightgray
		axis.Tick.Color = colornames.Gray
		axis.Tick.Label.Color = colornames.Lightgray
	}
}

// hourTicks labels every third hour of [0, hours].
func hourTicks(hours float64) []plot.Tick {
	var ticks []plot.Tick

	for h := 0; float64(h) <= hours; h += majorTickHours {
		ticks = append(ticks, plot.Tick{Value: float64(h), Label: fmt.Sprintf("%02d:00", h%hoursPerDay)})
	}

	return ticks
}

// laneTicks labels each lane with its resource.
func laneTicks(lanes []string) []plot.Tick {
	ticks := make([]plot.Tick, len(lanes))
	for i, resource := range lanes {
		ticks[i] = plot.Tick{Value: laneY(i, len(lanes)), Label: resource}
	}

	return ticks
}

// laneY puts the first resource on the top lane.
func laneY(lane, lanes int) float64 {
	return float64(lanes - 1 - lane)
}

// minorHours lists the whole hours of (0, hours) that are not a multiple of three.
func minorHours(hours float64) []float64 {
	var result []float64

	for h := 1; float64(h) < hours; h++ {
		if h%majorTickHours != 0 {
			result = append(result, float64(h))
		}
	}

	return result
}

// axisHours returns the width of the time axis: a full day, or more when samples run past it.
func axisHours(last float64) float64 {
	return math.Max(hoursPerDay, math.Ceil(last))
}
