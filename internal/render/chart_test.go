package render

import (
	"bytes"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/machine-timeline/internal/domain/machine"
)

// dataset returns two days: an alarm then idle, and a run of auto cycles.
func dataset() *machine.Dataset {
	auto := machine.Row{Mem: true, Cut: true, STL: true, OP: true}

	return &machine.Dataset{
		Timelines: []machine.Timeline{
			machine.Sequence("2024-01-03", []machine.Row{{Alarm: true}, {Alarm: true}, {}, {}}),
			machine.Sequence("2024-01-05", []machine.Row{auto, auto, auto}),
		},
	}
}

// TestLayoutBars coalesces segments, drops transparent ones and orders lanes.
func TestLayoutBars(t *testing.T) {
	t.Parallel()

	g := layoutBars(dataset(), DefaultPalette())

	require.Equal(t, []string{"2024-01-03", "2024-01-05"}, g.lanes)
	require.Len(t, g.bars, 2)

	require.Equal(t, 0, g.bars[0].lane)
	require.Equal(t, machine.StateAlarm, g.bars[0].state)
	require.InDelta(t, 0, g.bars[0].from, 1e-9)
	require.InDelta(t, 20.0/3600, g.bars[0].to, 1e-9)

	require.Equal(t, 1, g.bars[1].lane)
	require.Equal(t, machine.StateAutoRunning, g.bars[1].state)
	require.InDelta(t, 30.0/3600, g.bars[1].to, 1e-9)

	require.True(t, g.present[machine.StateEmpty])
	require.InDelta(t, 24, g.hours, 1e-9)

	xmin, xmax, ymin, ymax := g.DataRange()
	require.InDelta(t, 0, xmin, 1e-9)
	require.InDelta(t, 24, xmax, 1e-9)
	require.InDelta(t, -0.5, ymin, 1e-9)
	require.InDelta(t, 1.5, ymax, 1e-9)
}

// TestAxis checks the labeled hours and the dotted minor hours.
func TestAxis(t *testing.T) {
	t.Parallel()

	ticks := hourTicks(24)
	require.Len(t, ticks, 9)
	require.Equal(t, "00:00", ticks[0].Label)
	require.Equal(t, "21:00", ticks[7].Label)

	minor := minorHours(24)
	require.Len(t, minor, 16)
	require.Equal(t, []float64{1, 2, 4, 5}, minor[:4])
	require.NotContains(t, minor, 3.0)
	require.NotContains(t, minor, 12.0)

	require.InDelta(t, 24, axisHours(0.5), 1e-9)
	require.InDelta(t, 26, axisHours(25.2), 1e-9)

	lanes := laneTicks([]string{"2024-01-03", "2024-01-04", "2024-01-05"})
	require.InDelta(t, 2, lanes[0].Value, 1e-9)
	require.InDelta(t, 0, lanes[2].Value, 1e-9)
}

// TestPalette checks the fixed state colors.
func TestPalette(t *testing.T) {
	t.Parallel()

	p := DefaultPalette()
	require.Equal(t, "#cce619", p.Hex(machine.StateSetup))
	require.Equal(t, "#3617e8", p.Hex(machine.StateAutoRunning))
	require.Equal(t, "#2ed140", p.Hex(machine.StateFeedHold))
	require.Equal(t, "#f80d07", p.Hex(machine.StateAlarm))
	require.Empty(t, p.Hex(machine.StateEmpty))
	require.Equal(t, color.Transparent, Palette{}.Color(machine.StateAlarm))
}

// TestWrite renders PNG and SVG charts and rejects unknown formats.
func TestWrite(t *testing.T) {
	t.Parallel()

	var png bytes.Buffer
	require.NoError(t, Write(&png, "png", dataset(), Options{Title: "Machine state"}))
	require.True(t, bytes.HasPrefix(png.Bytes(), []byte("\x89PNG")))

	var svg bytes.Buffer
	require.NoError(t, Write(&svg, ".svg", dataset(), Options{}))
	require.Contains(t, svg.String(), "<svg")
	require.Contains(t, svg.String(), "2024-01-05")

	err := Write(&svg, "bmp", dataset(), Options{})
	require.ErrorIs(t, err, ErrUnsupportedFormat)

	err = Write(&svg, "png", new(machine.Dataset), Options{})
	require.ErrorIs(t, err, ErrNothingToDraw)
}

// TestSave writes the chart file named by the caller.
func TestSave(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "timeline.svg")

	require.NoError(t, Save(path, dataset(), Options{}))

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Positive(t, info.Size())

	err = Save(filepath.Join(dir, "timeline.gif"), dataset(), Options{})
	require.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = os.Stat(filepath.Join(dir, "timeline.gif"))
	require.ErrorIs(t, err, os.ErrNotExist)

	err = Save(filepath.Join(dir, "empty.png"), new(machine.Dataset), Options{})
	require.ErrorIs(t, err, ErrNothingToDraw)

	_, err = os.Stat(filepath.Join(dir, "empty.png"))
	require.ErrorIs(t, err, os.ErrNotExist)
}
