package circlez

import (
	"fmt"
	"math/rand/v2"
	"strings"
)

// ColorMode selects how a candidate circle gets its color.
type ColorMode int

const (
	// ColorRandom draws each channel uniformly from [0,255].
	ColorRandom ColorMode = iota

	// ColorWeighted blends the target color under the circle's center with
	// the mean target color along its boundary. Larger circles lean towards
	// the boundary mean.
	ColorWeighted
)

// String returns the mode name as accepted by ParseColorMode.
func (m ColorMode) String() string {
	switch m {
	case ColorRandom:
		return "random"
	case ColorWeighted:
		return "weighted"
	default:
		return fmt.Sprintf("ColorMode(%d)", int(m))
	}
}

// ParseColorMode parses "random" or "weighted".
func ParseColorMode(s string) (ColorMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "random", "":
		return ColorRandom, nil
	case "weighted":
		return ColorWeighted, nil
	default:
		return 0, fmt.Errorf("circlez: unknown color mode %q", s)
	}
}

// EngineOption configures an Engine during creation.
//
// Example:
//
//	// Reproducible run
//	e := circlez.NewEngine(circlez.WithSeed(7))
//
//	// Target-guided colors
//	e := circlez.NewEngine(circlez.WithColorMode(circlez.ColorWeighted))
type EngineOption func(*engineOptions)

// engineOptions holds optional configuration for Engine creation.
type engineOptions struct {
	src        rand.Source
	colorMode  ColorMode
	background Pixel
}

// defaultEngineOptions returns the default engine options.
func defaultEngineOptions() engineOptions {
	return engineOptions{
		src:        nil, // seeded from the runtime if nil
		colorMode:  ColorRandom,
		background: Black,
	}
}

// WithSeed makes the engine deterministic by seeding a PCG source.
func WithSeed(seed uint64) EngineOption {
	return func(o *engineOptions) {
		o.src = rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)
	}
}

// WithRand sets the random source used for sampling.
func WithRand(src rand.Source) EngineOption {
	return func(o *engineOptions) {
		o.src = src
	}
}

// WithColorMode sets how candidate colors are chosen.
func WithColorMode(m ColorMode) EngineOption {
	return func(o *engineOptions) {
		o.colorMode = m
	}
}

// WithBackground sets the color the canvas is cleared to on Initialize.
func WithBackground(p Pixel) EngineOption {
	return func(o *engineOptions) {
		o.background = p
	}
}
