package circlez

import (
	"fmt"
	"math/rand/v2"
)

// Circle describes a filled, opaque disk of integer geometry.
type Circle struct {
	X, Y  int // center
	R     int // radius, at least 1
	Color Pixel
}

// String returns a compact description, e.g. "circle(12,40 r=7 #ff8800)".
func (c Circle) String() string {
	return fmt.Sprintf("circle(%d,%d r=%d %s)", c.X, c.Y, c.R, c.Color)
}

// MaxRadius returns the largest radius sampled on a width x height canvas:
// floor(min(width, height) / 4), but never less than 1.
func MaxRadius(width, height int) int {
	return max(min(width, height)/4, 1)
}

// Sampler produces uniformly random candidate circles.
//
// A Sampler is a pure function of its random source: the same source state
// yields the same sequence of circles. Sample does not allocate.
type Sampler struct {
	rng *rand.Rand
}

// NewSampler creates a sampler drawing from src.
func NewSampler(src rand.Source) *Sampler {
	return &Sampler{rng: rand.New(src)}
}

// Sample returns a circle with its center uniform in [0,width) x [0,height),
// radius uniform in [1, MaxRadius(width, height)] and each color channel
// uniform in [0,255]. Width and height must be positive.
func (s *Sampler) Sample(width, height int) Circle {
	c := Circle{
		X: s.rng.IntN(width),
		Y: s.rng.IntN(height),
		R: 1 + s.rng.IntN(MaxRadius(width, height)),
	}
	// One draw covers all three channels.
	v := s.rng.Uint32()
	c.Color = Pixel{R: uint8(v), G: uint8(v >> 8), B: uint8(v >> 16)}
	return c
}
