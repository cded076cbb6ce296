package circlez

import (
	"image"
	"image/color"
)

// PixelBuffer is a fixed-size, row-major grid of RGB pixels.
//
// Dimensions are set at construction and never change. Write operations
// require external synchronization.
type PixelBuffer struct {
	width  int
	height int
	pix    []Pixel
}

// NewPixelBuffer creates a black buffer with the given dimensions.
// Negative dimensions are treated as zero.
func NewPixelBuffer(width, height int) *PixelBuffer {
	width = max(width, 0)
	height = max(height, 0)
	return &PixelBuffer{
		width:  width,
		height: height,
		pix:    make([]Pixel, width*height),
	}
}

// Width returns the width of the buffer.
func (b *PixelBuffer) Width() int {
	return b.width
}

// Height returns the height of the buffer.
func (b *PixelBuffer) Height() int {
	return b.height
}

// Empty reports whether the buffer has zero area.
func (b *PixelBuffer) Empty() bool {
	return b.width == 0 || b.height == 0
}

// SameSize reports whether both buffers have identical dimensions.
func (b *PixelBuffer) SameSize(other *PixelBuffer) bool {
	return b.width == other.width && b.height == other.height
}

// Pixels returns the backing row-major slice. Mutating it mutates the buffer.
func (b *PixelBuffer) Pixels() []Pixel {
	return b.pix
}

// Row returns the pixels of row y. The slice aliases the buffer.
func (b *PixelBuffer) Row(y int) []Pixel {
	i := y * b.width
	return b.pix[i : i+b.width : i+b.width]
}

// PixelAt returns the pixel at (x, y), or Black when out of bounds.
func (b *PixelBuffer) PixelAt(x, y int) Pixel {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return Black
	}
	return b.pix[y*b.width+x]
}

// Set sets the pixel at (x, y). Out-of-bounds writes are ignored.
func (b *PixelBuffer) Set(x, y int, p Pixel) {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return
	}
	b.pix[y*b.width+x] = p
}

// Fill sets every pixel to p.
func (b *PixelBuffer) Fill(p Pixel) {
	for i := range b.pix {
		b.pix[i] = p
	}
}

// Clone returns a deep copy of the buffer.
func (b *PixelBuffer) Clone() *PixelBuffer {
	c := &PixelBuffer{width: b.width, height: b.height, pix: make([]Pixel, len(b.pix))}
	copy(c.pix, b.pix)
	return c
}

// Equal reports whether both buffers have the same size and contents.
func (b *PixelBuffer) Equal(other *PixelBuffer) bool {
	if !b.SameSize(other) {
		return false
	}
	for i, p := range b.pix {
		if other.pix[i] != p {
			return false
		}
	}
	return true
}

// ToImage converts the buffer to an opaque image.NRGBA.
func (b *PixelBuffer) ToImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, b.width, b.height))
	for i, p := range b.pix {
		o := i * 4
		img.Pix[o+0] = p.R
		img.Pix[o+1] = p.G
		img.Pix[o+2] = p.B
		img.Pix[o+3] = 255
	}
	return img
}

// FromImage creates a buffer from an image, discarding alpha.
func FromImage(img image.Image) *PixelBuffer {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	buf := NewPixelBuffer(width, height)

	// Fast path for the decoders' most common output
	if nrgba, ok := img.(*image.NRGBA); ok {
		for y := range height {
			src := nrgba.Pix[y*nrgba.Stride:]
			row := buf.Row(y)
			for x := range row {
				row[x] = Pixel{R: src[x*4], G: src[x*4+1], B: src[x*4+2]}
			}
		}
		return buf
	}

	for y := range height {
		row := buf.Row(y)
		for x := range row {
			row[x] = PixelFromColor(img.At(bounds.Min.X+x, bounds.Min.Y+y))
		}
	}
	return buf
}

// At implements the image.Image interface.
func (b *PixelBuffer) At(x, y int) color.Color {
	return b.PixelAt(x, y)
}

// Bounds implements the image.Image interface.
func (b *PixelBuffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, b.width, b.height)
}

// ColorModel implements the image.Image interface.
func (b *PixelBuffer) ColorModel() color.Model {
	return color.NRGBAModel
}
