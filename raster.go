package circlez

import "image"

// Span is a horizontal run of pixels on row Y from X0 to X1 inclusive.
type Span struct {
	Y, X0, X1 int
}

// Len returns the number of pixels in the span.
func (s Span) Len() int {
	return s.X1 - s.X0 + 1
}

// Rasterizer converts circles into clipped scanline spans using the integer
// midpoint (Bresenham) circle algorithm.
//
// The rasterizer keeps its scratch buffers between calls, so steady-state
// rasterization does not allocate. The returned slices are only valid until
// the next call. A Rasterizer is not safe for concurrent use.
type Rasterizer struct {
	halfWidth []int
	spans     []Span
	points    []image.Point
	ring      []image.Point
}

// NewRasterizer creates a rasterizer.
func NewRasterizer() *Rasterizer {
	return &Rasterizer{}
}

// Spans returns the filled disk of c as one span per covered row, ordered
// top to bottom and clipped to [0,width) x [0,height). A disk entirely
// outside the canvas yields no spans.
func (r *Rasterizer) Spans(c Circle, width, height int) []Span {
	r.spans = r.spans[:0]
	rad := max(c.R, 1)

	// Trivially outside: no row or column of the bounding box is visible.
	if c.X+rad < 0 || c.X-rad >= width || c.Y+rad < 0 || c.Y-rad >= height {
		return r.spans
	}

	hw := r.outline(rad)

	for dy := -rad; dy <= rad; dy++ {
		y := c.Y + dy
		if y < 0 {
			continue
		}
		if y >= height {
			break
		}
		w := hw[abs(dy)]
		x0 := max(c.X-w, 0)
		x1 := min(c.X+w, width-1)
		if x0 > x1 {
			continue
		}
		r.spans = append(r.spans, Span{Y: y, X0: x0, X1: x1})
	}
	return r.spans
}

// outline runs the midpoint algorithm for radius rad and returns, for every
// row offset 0..rad, the half width of the filled disk on that row.
func (r *Rasterizer) outline(rad int) []int {
	if cap(r.halfWidth) < rad+1 {
		r.halfWidth = make([]int, rad+1)
	}
	hw := r.halfWidth[:rad+1]
	for i := range hw {
		hw[i] = 0
	}

	// Each (x, y) is one boundary point of the first octant; the eight
	// symmetric points fall on rows ±y (half width x) and ±x (half width y).
	x, y := 0, rad
	d := 3 - 2*rad
	for x <= y {
		hw[y] = max(hw[y], x)
		hw[x] = max(hw[x], y)
		if d < 0 {
			d += 4*x + 6
		} else {
			d += 4*(x-y) + 10
			y--
		}
		x++
	}

	// Rows nearer the center are never narrower than rows further out.
	for i := rad - 1; i >= 0; i-- {
		hw[i] = max(hw[i], hw[i+1])
	}
	return hw
}

// Outline returns the eight-way symmetric boundary points of c produced by
// the midpoint algorithm, dropping those outside [0,width) x [0,height).
// Points where octants meet appear more than once.
func (r *Rasterizer) Outline(c Circle, width, height int) []image.Point {
	r.ring = r.ring[:0]
	rad := max(c.R, 1)
	in := func(px, py int) {
		if px >= 0 && py >= 0 && px < width && py < height {
			r.ring = append(r.ring, image.Point{X: px, Y: py})
		}
	}

	x, y := 0, rad
	d := 3 - 2*rad
	for x <= y {
		in(c.X+x, c.Y+y)
		in(c.X-x, c.Y+y)
		in(c.X+x, c.Y-y)
		in(c.X-x, c.Y-y)
		in(c.X+y, c.Y+x)
		in(c.X-y, c.Y+x)
		in(c.X+y, c.Y-x)
		in(c.X-y, c.Y-x)
		if d < 0 {
			d += 4*x + 6
		} else {
			d += 4*(x-y) + 10
			y--
		}
		x++
	}
	return r.ring
}

// Points returns every pixel covered by the clipped disk of c, row by row.
// It is a convenience for diagnostics; the engine works on spans.
func (r *Rasterizer) Points(c Circle, width, height int) []image.Point {
	r.points = r.points[:0]
	for _, s := range r.Spans(c, width, height) {
		for x := s.X0; x <= s.X1; x++ {
			r.points = append(r.points, image.Point{X: x, Y: s.Y})
		}
	}
	return r.points
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
