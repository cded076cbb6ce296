// Package circlez approximates a raster image with randomly sampled circles.
//
// # Overview
//
// circlez keeps two pixel buffers of identical size: the target image and a
// canvas that starts out black. Every step samples a random circle, works out
// which canvas pixels it would cover and keeps the circle only if painting it
// lowers the squared RGB distance between canvas and target. Repeating this
// millions of times converges on a painterly rendition of the target.
//
// # Quick Start
//
//	import "github.com/gogpu/circlez"
//
//	target := circlez.FromImage(img)
//
//	e := circlez.NewEngine(circlez.WithSeed(42))
//	if err := e.Initialize(target); err != nil {
//	    return err
//	}
//	for i := 0; i < 1_000_000; i++ {
//	    e.Step()
//	}
//	canvas := e.Finalize()
//
// # Scoring
//
// The engine never rescans the whole canvas. For a candidate covering the
// pixel set S it computes the distance over S before and after the
// hypothetical draw and derives the new total as
//
//	best - old(S) + new(S)
//
// Scores are exact unsigned integers, so the running total always equals a
// from-scratch [BufferDistance] of canvas and target.
//
// # Rasterization
//
// Circles are filled with integer-only midpoint (Bresenham) spans, one span
// per row, clipped to the canvas. See [Rasterizer].
//
// # Coordinate System
//
// Origin (0,0) is the top-left pixel, X increases right, Y increases down.
//
// # Concurrency
//
// An [Engine] is not safe for concurrent use. The driver owns it and may read
// the canvas only between steps.
package circlez

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)
