package render

import (
	"fmt"
	"image/color"

	"github.com/oshokin/machine-timeline/internal/domain/machine"
)

// Palette maps each state to its bar color.
type Palette map[machine.State]color.Color

// DefaultPalette returns the fixed state colors. Empty intervals are transparent.
func DefaultPalette() Palette {
	return Palette{
		machine.StateSetup:       color.RGBA{R: 0xcc, G: 0xe6, B: 0x19, A: 0xff},
		machine.StateAutoRunning: color.RGBA{R: 0x36, G: 0x17, B: 0xe8, A: 0xff},
		machine.StateFeedHold:    color.RGBA{R: 0x2e, G: 0xd1, B: 0x40, A: 0xff},
		machine.StateAlarm:       color.RGBA{R: 0xf8, G: 0x0d, B: 0x07, A: 0xff},
		machine.StateEmpty:       color.Transparent,
	}
}

// Color returns the color of s, transparent when the palette has none.
//
//nolint:ireturn // Palettes hold any color model.
func (p Palette) Color(s machine.State) color.Color {
	if c, ok := p[s]; ok && c != nil {
		return c
	}

	return color.Transparent
}

// Hex returns the color of s as #rrggbb, or an empty string when it is invisible.
func (p Palette) Hex(s machine.State) string {
	c := p.Color(s)
	if isTransparent(c) {
		return ""
	}

	rgba := color.NRGBAModel.Convert(c).(color.NRGBA) //nolint:forcetypeassert // NRGBAModel always returns NRGBA.

	return fmt.Sprintf("#%02x%02x%02x", rgba.R, rgba.G, rgba.B)
}

func isTransparent(c color.Color) bool {
	_, _, _, a := c.RGBA()

	return a == 0
}
