package report

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/oshokin/machine-timeline/internal/domain/machine"
	"github.com/oshokin/machine-timeline/internal/render"
)

// SummarySheet is the name of the first sheet.
const SummarySheet = "Summary"

// ErrDuplicateSheet is returned when two timelines would share one sheet.
var ErrDuplicateSheet = errors.New("sheet already exists")

// WriteXLSX writes the workbook of ds to w. The palette colors the state cells.
func WriteXLSX(w io.Writer, ds *machine.Dataset, palette render.Palette) error {
	if palette == nil {
		palette = render.DefaultPalette()
	}

	f := excelize.NewFile()

	defer func() {
		_ = f.Close()
	}()

	if err := f.SetSheetName(f.GetSheetName(0), SummarySheet); err != nil {
		return fmt.Errorf("rename summary sheet: %w", err)
	}

	styles, err := stateStyles(f, palette)
	if err != nil {
		return err
	}

	if err = writeSummary(f, ds, styles); err != nil {
		return err
	}

	for _, tl := range ds.Timelines {
		if err = writeDay(f, tl, styles); err != nil {
			return err
		}
	}

	if err = f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}

	return nil
}

// SaveXLSX writes the workbook of ds to path.
func SaveXLSX(path string, ds *machine.Dataset, palette render.Palette) error {
	out, err := os.Create(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("create report file: %w", err)
	}

	if err = WriteXLSX(out, ds, palette); err != nil {
		_ = out.Close()
		return err
	}

	if err = out.Close(); err != nil {
		return fmt.Errorf("close report file: %w", err)
	}

	return nil
}

// stateStyles creates one filled cell style per visible state.
func stateStyles(f *excelize.File, palette render.Palette) (map[machine.State]int, error) {
	styles := make(map[machine.State]int)

	for _, s := range machine.States() {
		hex := palette.Hex(s)
		if hex == "" {
			continue
		}

		id, err := f.NewStyle(&excelize.Style{
			Fill: excelize.Fill{
				Type:    "pattern",
				Pattern: 1,
				Color:   []string{strings.ToUpper(strings.TrimPrefix(hex, "#"))},
			},
		})
		if err != nil {
			return nil, fmt.Errorf("create style for %s: %w", s, err)
		}

		styles[s] = id
	}

	return styles, nil
}

// writeSummary fills one row per day with the hours spent in each state.
func writeSummary(f *excelize.File, ds *machine.Dataset, styles map[machine.State]int) error {
	header := []any{"Resource", "Samples"}
	for _, s := range machine.States() {
		header = append(header, s.Label()+" (h)")
	}

	header = append(header, "Utilization (%)")

	if err := f.SetSheetRow(SummarySheet, "A1", &header); err != nil {
		return fmt.Errorf("write summary header: %w", err)
	}

	for col, s := range machine.States() {
		if err := styleCell(f, SummarySheet, col+3, 1, styles, s); err != nil {
			return err
		}
	}

	for i, tl := range ds.Timelines {
		summary := machine.Summarize(tl)
		row := []any{summary.Resource, summary.Samples}

		for _, s := range machine.States() {
			row = append(row, roundHours(summary.Durations[s]))
		}

		row = append(row, roundPercent(summary.Utilization()))

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("summary cell: %w", err)
		}

		if err = f.SetSheetRow(SummarySheet, cell, &row); err != nil {
			return fmt.Errorf("write summary of %s: %w", tl.Resource, err)
		}
	}

	return nil
}

// writeDay lists the state segments of one day on its own sheet.
func writeDay(f *excelize.File, tl machine.Timeline, styles map[machine.State]int) error {
	sheet := tl.Resource

	// NewSheet hands back an existing sheet, which would merge two days.
	index, err := f.GetSheetIndex(sheet)
	if err != nil {
		return fmt.Errorf("look up sheet %s: %w", sheet, err)
	}

	if index != -1 {
		return fmt.Errorf("%w: %s", ErrDuplicateSheet, sheet)
	}

	if _, err = f.NewSheet(sheet); err != nil {
		return fmt.Errorf("create sheet %s: %w", sheet, err)
	}

	header := []any{"Start", "End", "Duration (s)", "State"}
	if err = f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("write header of %s: %w", sheet, err)
	}

	for i, segment := range machine.Segments(tl.Intervals) {
		row := []any{
			clock(segment.Start),
			clock(segment.End),
			segment.Duration().Seconds(),
			segment.State.Label(),
		}

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("day cell: %w", err)
		}

		if err = f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write segment %d of %s: %w", i, sheet, err)
		}

		if err = styleCell(f, sheet, 4, i+2, styles, segment.State); err != nil {
			return err
		}
	}

	return nil
}

// styleCell fills the cell at (col, row) with the color of s, if it has one.
func styleCell(f *excelize.File, sheet string, col, row int, styles map[machine.State]int, s machine.State) error {
	id, ok := styles[s]
	if !ok {
		return nil
	}

	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return fmt.Errorf("style cell: %w", err)
	}

	if err = f.SetCellStyle(sheet, cell, cell, id); err != nil {
		return fmt.Errorf("style %s!%s: %w", sheet, cell, err)
	}

	return nil
}

// clock formats the offset of t from the reference epoch as hh:mm:ss.
// The end of a full day reads 24:00:00 rather than wrapping to midnight.
func clock(t time.Time) string {
	offset := t.Sub(machine.ReferenceEpoch()).Round(time.Second)
	total := int(offset.Seconds())

	return fmt.Sprintf("%02d:%02d:%02d", total/3600, total/60%60, total%60)
}

func roundHours(d time.Duration) float64 {
	return math.Round(d.Hours()*1000) / 1000
}

func roundPercent(share float64) float64 {
	return math.Round(share*10000) / 100
}
