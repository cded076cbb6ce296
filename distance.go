package circlez

import "fmt"

// maxPixelDistance is the largest possible PixelDistance: 3 * 255².
const maxPixelDistance = 3 * 255 * 255

// PixelDistance returns the squared RGB distance between two pixels,
// Δr² + Δg² + Δb² with each Δ widened before squaring.
func PixelDistance(a, b Pixel) uint64 {
	dr := int64(a.R) - int64(b.R)
	dg := int64(a.G) - int64(b.G)
	db := int64(a.B) - int64(b.B)
	return uint64(dr*dr + dg*dg + db*db)
}

// Distance returns the summed PixelDistance over two index-aligned pixel
// sequences. It panics if the lengths differ.
func Distance(a, b []Pixel) uint64 {
	if len(a) != len(b) {
		panic(fmt.Sprintf("circlez: distance over sequences of length %d and %d", len(a), len(b)))
	}
	var sum uint64
	for i, p := range a {
		sum += PixelDistance(p, b[i])
	}
	return sum
}

// UniformDistance returns Distance(fill, seq) where fill is len(seq) copies
// of c. It scores a freshly painted span without materializing it.
func UniformDistance(c Pixel, seq []Pixel) uint64 {
	var sum uint64
	for _, p := range seq {
		sum += PixelDistance(c, p)
	}
	return sum
}

// BufferDistance returns the whole-buffer distance between a and b.
// It panics if the buffers differ in size.
func BufferDistance(a, b *PixelBuffer) uint64 {
	if !a.SameSize(b) {
		panic(fmt.Sprintf("circlez: distance between %dx%d and %dx%d buffers",
			a.width, a.height, b.width, b.height))
	}
	return Distance(a.pix, b.pix)
}

// MaxDistance returns the largest distance two buffers of the given size can have.
func MaxDistance(width, height int) uint64 {
	return uint64(width) * uint64(height) * maxPixelDistance
}
