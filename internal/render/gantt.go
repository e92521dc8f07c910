package render

import (
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/oshokin/machine-timeline/internal/domain/machine"
)

// bar is one colored segment of a lane, in hours since machine.ReferenceEpoch().
type bar struct {
	lane  int
	from  float64
	to    float64
	state machine.State
	color color.Color
}

// gantt draws the bars of every lane. It implements plot.Plotter and plot.DataRanger.
type gantt struct {
	// lanes lists the resources, top lane first.
	lanes []string
	// bars hold the visible segments; transparent states are left out.
	bars []bar
	// present marks the states seen in the dataset.
	present map[machine.State]bool
	// hours is the width of the time axis.
	hours float64
}

// layoutBars coalesces each timeline into segments and assigns them to lanes.
func layoutBars(ds *machine.Dataset, palette Palette) *gantt {
	g := &gantt{
		present: make(map[machine.State]bool),
	}

	var last float64

	for lane, tl := range ds.Timelines {
		g.lanes = append(g.lanes, tl.Resource)

		for _, segment := range machine.Segments(tl.Intervals) {
			g.present[segment.State] = true

			to := segment.End.Sub(machine.ReferenceEpoch()).Hours()
			if to > last {
				last = to
			}

			c := palette.Color(segment.State)
			if isTransparent(c) {
				continue
			}

			g.bars = append(g.bars, bar{
				lane:  lane,
				from:  segment.Start.Sub(machine.ReferenceEpoch()).Hours(),
				to:    to,
				state: segment.State,
				color: c,
			})
		}
	}

	g.hours = axisHours(last)

	return g
}

// Plot implements plot.Plotter.
func (g *gantt) Plot(c draw.Canvas, plt *plot.Plot) {
	trX, trY := plt.Transforms(&c)
	half := laneThickness / 2

	for _, b := range g.bars {
		y := laneY(b.lane, len(g.lanes))
		x0, x1 := trX(b.from), trX(b.to)
		y0, y1 := trY(y-half), trY(y+half)

		c.FillPolygon(b.color, c.ClipPolygonXY([]vg.Point{
			{X: x0, Y: y0},
			{X: x1, Y: y0},
			{X: x1, Y: y1},
			{X: x0, Y: y1},
		}))
	}
}

// DataRange implements plot.DataRanger.
func (g *gantt) DataRange() (xmin, xmax, ymin, ymax float64) {
	return 0, g.hours, -0.5, float64(len(g.lanes)) - 0.5
}

// hourGrid draws dotted vertical lines at the minor hours.
type hourGrid struct {
	hours float64
	style draw.LineStyle
}

// Plot implements plot.Plotter.
func (g *hourGrid) Plot(c draw.Canvas, plt *plot.Plot) {
	trX, _ := plt.Transforms(&c)

	for _, h := range minorHours(g.hours) {
		x := trX(h)
		c.StrokeLine2(g.style, x, c.Min.Y, x, c.Max.Y)
	}
}

// swatch is a legend thumbnail filled with one color.
type swatch struct {
	color color.Color
}

// Thumbnail implements plot.Thumbnailer.
func (s swatch) Thumbnail(c *draw.Canvas) {
	c.FillPolygon(s.color, []vg.Point{
		{X: c.Min.X, Y: c.Min.Y},
		{X: c.Max.X, Y: c.Min.Y},
		{X: c.Max.X, Y: c.Max.Y},
		{X: c.Min.X, Y: c.Max.Y},
	})
}
