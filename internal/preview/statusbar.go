package preview

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/gogpu/circlez"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// statusBarHeight fits one line of basicfont.Face7x13 plus padding.
const statusBarHeight = 18

var (
	barBackground = color.NRGBA{R: 24, G: 24, B: 24, A: 255}
	barForeground = color.NRGBA{R: 220, G: 220, B: 220, A: 255}
)

// printer formats counters with thousands separators.
var printer = message.NewPrinter(language.English)

// StatusLine renders stats as a single human-readable line.
func StatusLine(st circlez.Stats) string {
	return printer.Sprintf("steps %d  circles %d  similarity %.2f%%",
		st.Steps, st.Accepted, st.Similarity*100)
}

// Compose returns the canvas with a status bar appended below it.
func Compose(buf *circlez.PixelBuffer, st circlez.Stats) *image.NRGBA {
	w, h := buf.Width(), buf.Height()
	dst := image.NewNRGBA(image.Rect(0, 0, w, h+statusBarHeight))

	draw.Draw(dst, image.Rect(0, 0, w, h), buf.ToImage(), image.Point{}, draw.Src)
	bar := image.Rect(0, h, w, h+statusBarHeight)
	draw.Draw(dst, bar, image.NewUniform(barBackground), image.Point{}, draw.Src)

	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(barForeground),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(4, h+statusBarHeight-5),
	}
	d.DrawString(StatusLine(st))
	return dst
}
