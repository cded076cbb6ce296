package circlez

import (
	"fmt"
	"image/color"
	"strconv"
)

// Pixel is an opaque RGB color with 8 bits per channel.
type Pixel struct {
	R, G, B uint8
}

// Common colors.
var (
	Black = Pixel{0, 0, 0}
	White = Pixel{255, 255, 255}
)

// RGB creates a pixel from its three channels.
func RGB(r, g, b uint8) Pixel {
	return Pixel{R: r, G: g, B: b}
}

// RGBA implements color.Color. Pixels are always fully opaque.
func (p Pixel) RGBA() (r, g, b, a uint32) {
	r = uint32(p.R) * 0x101
	g = uint32(p.G) * 0x101
	b = uint32(p.B) * 0x101
	return r, g, b, 0xffff
}

// Color converts the pixel to a color.NRGBA.
func (p Pixel) Color() color.NRGBA {
	return color.NRGBA{R: p.R, G: p.G, B: p.B, A: 255}
}

// String returns the pixel as "#rrggbb".
func (p Pixel) String() string {
	return fmt.Sprintf("#%02x%02x%02x", p.R, p.G, p.B)
}

// PixelFromColor converts any color.Color to a Pixel, dropping alpha.
// Colors are un-premultiplied first so translucent inputs keep their hue.
func PixelFromColor(c color.Color) Pixel {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return Pixel{R: n.R, G: n.G, B: n.B}
}

// Hex parses a color in "RGB" or "RRGGBB" form, with an optional leading '#'.
func Hex(hex string) (Pixel, error) {
	s := hex
	if s != "" && s[0] == '#' {
		s = s[1:]
	}

	switch len(s) {
	case 3:
		v, err := strconv.ParseUint(s, 16, 16)
		if err != nil {
			return Pixel{}, fmt.Errorf("circlez: invalid hex color %q: %w", hex, err)
		}
		r, g, b := uint8(v>>8&0xf), uint8(v>>4&0xf), uint8(v&0xf)
		return Pixel{R: r * 17, G: g * 17, B: b * 17}, nil
	case 6:
		v, err := strconv.ParseUint(s, 16, 32)
		if err != nil {
			return Pixel{}, fmt.Errorf("circlez: invalid hex color %q: %w", hex, err)
		}
		return Pixel{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
	default:
		return Pixel{}, fmt.Errorf("circlez: invalid hex color %q", hex)
	}
}
