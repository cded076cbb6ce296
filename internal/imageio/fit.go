package imageio

import (
	"image"

	"github.com/gogpu/circlez"
	xdraw "golang.org/x/image/draw"
)

// Fit returns buf scaled down so that neither side exceeds maxSide,
// preserving the aspect ratio. Buffers that already fit, and maxSide <= 0,
// return buf unchanged.
func Fit(buf *circlez.PixelBuffer, maxSide int) *circlez.PixelBuffer {
	w, h := buf.Width(), buf.Height()
	if maxSide <= 0 || (w <= maxSide && h <= maxSide) {
		return buf
	}

	nw, nh := maxSide, maxSide
	if w >= h {
		nh = max(h*maxSide/w, 1)
	} else {
		nw = max(w*maxSide/h, 1)
	}

	dst := image.NewNRGBA(image.Rect(0, 0, nw, nh))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), buf.ToImage(), buf.Bounds(), xdraw.Src, nil)

	circlez.Logger().Debug("imageio: target downscaled",
		"from_width", w, "from_height", h,
		"to_width", nw, "to_height", nh)
	return circlez.FromImage(dst)
}
