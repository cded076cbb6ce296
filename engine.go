package circlez

import (
	"errors"
	"fmt"
	"math/rand/v2"
)

// ErrEmptyTarget is returned by Initialize when the target has zero area.
var ErrEmptyTarget = errors.New("circlez: target image has zero width or height")

// State is the lifecycle state of an Engine.
type State int

const (
	// StateIdle is the state of a new engine before Initialize.
	StateIdle State = iota

	// StateRunning accepts Step calls.
	StateRunning

	// StateFinished is terminal; only Finalize and accessors remain valid.
	StateFinished
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateFinished:
		return "finished"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// StepResult reports what a single step did with its candidate.
type StepResult struct {
	// Circle is the evaluated candidate, with its final color.
	Circle Circle

	// Accepted is true if the circle was committed to the canvas.
	Accepted bool

	// Pixels is the number of canvas pixels the circle covers after clipping.
	// Zero means the candidate fell entirely outside the canvas.
	Pixels int

	// Delta is newPartial - oldPartial: the change in total distance the
	// circle would cause. Negative deltas are improvements.
	Delta int64
}

// Stats summarizes the progress of an Engine.
type Stats struct {
	Steps        uint64 // candidates evaluated
	Accepted     uint64 // candidates committed
	Rejected     uint64 // candidates scored and discarded
	Empty        uint64 // candidates with no visible pixels
	BestDistance uint64 // current canvas-to-target distance

	// Similarity is 1 - BestDistance/MaxDistance, in [0, 1].
	Similarity float64
}

// Engine approximates a target image by committing random circles that
// reduce the distance between its canvas and the target.
//
// Engine is a state machine: NewEngine returns an idle engine, Initialize
// starts a run, Step advances it and Finalize ends it. Calling an operation
// out of order panics, as do any violations of the equal-size invariant
// between target and canvas.
//
// Engine is not safe for concurrent use.
type Engine struct {
	opts  engineOptions
	state State

	target *PixelBuffer
	canvas *PixelBuffer
	best   uint64

	sampler *Sampler
	raster  *Rasterizer

	steps    uint64
	accepted uint64
	rejected uint64
	empty    uint64
}

// NewEngine creates an idle engine.
func NewEngine(opts ...EngineOption) *Engine {
	o := defaultEngineOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Engine{
		opts:   o,
		state:  StateIdle,
		raster: NewRasterizer(),
	}
}

// Initialize starts a run against target. The engine keeps its own copy of
// the target, allocates a canvas of the same size cleared to the background
// color and records the initial distance.
//
// It returns ErrEmptyTarget if target is nil or has zero area; the engine then
// stays idle. Calling Initialize on an engine that is not idle panics.
func (e *Engine) Initialize(target *PixelBuffer) error {
	e.mustBe(StateIdle, "Initialize")
	if target == nil || target.Empty() {
		return ErrEmptyTarget
	}

	e.target = target.Clone()
	e.canvas = NewPixelBuffer(target.Width(), target.Height())
	e.canvas.Fill(e.opts.background)
	e.best = BufferDistance(e.canvas, e.target)

	src := e.opts.src
	if src == nil {
		src = rand.NewPCG(rand.Uint64(), rand.Uint64())
	}
	e.sampler = NewSampler(src)
	e.state = StateRunning

	Logger().Debug("circlez: engine initialized",
		"width", target.Width(),
		"height", target.Height(),
		"max_radius", MaxRadius(target.Width(), target.Height()),
		"color_mode", e.opts.colorMode.String(),
		"distance", e.best)
	return nil
}

// Step samples one candidate circle and commits it if it strictly lowers
// the total distance. Ties are rejected. Step panics unless the engine is
// running.
func (e *Engine) Step() StepResult {
	e.mustBe(StateRunning, "Step")
	c := e.sampler.Sample(e.canvas.width, e.canvas.height)
	return e.evaluate(c, e.opts.colorMode == ColorWeighted)
}

// StepWith evaluates the given candidate instead of sampling one. Its color
// is used as is, whatever the engine's color mode. StepWith panics unless
// the engine is running.
func (e *Engine) StepWith(c Circle) StepResult {
	e.mustBe(StateRunning, "StepWith")
	return e.evaluate(c, false)
}

func (e *Engine) evaluate(c Circle, weighted bool) StepResult {
	e.steps++

	spans := e.raster.Spans(c, e.canvas.width, e.canvas.height)
	if len(spans) == 0 {
		e.empty++
		return StepResult{Circle: c}
	}
	if weighted {
		c.Color = e.weightedColor(c)
	}

	var oldPartial, newPartial uint64
	n := 0
	for _, s := range spans {
		cur := e.canvas.Row(s.Y)[s.X0 : s.X1+1]
		tgt := e.target.Row(s.Y)[s.X0 : s.X1+1]
		oldPartial += Distance(cur, tgt)
		newPartial += UniformDistance(c.Color, tgt)
		n += len(cur)
	}

	// oldPartial is a part of best, so this cannot underflow.
	candidate := e.best - oldPartial + newPartial
	res := StepResult{
		Circle: c,
		Pixels: n,
		Delta:  int64(newPartial) - int64(oldPartial),
	}
	if candidate >= e.best {
		e.rejected++
		return res
	}

	for _, s := range spans {
		row := e.canvas.Row(s.Y)[s.X0 : s.X1+1]
		for i := range row {
			row[i] = c.Color
		}
	}
	e.best = candidate
	e.accepted++
	res.Accepted = true
	return res
}

// weightedColor blends the target color at the circle's center with the
// mean target color over the in-bounds midpoint outline points, weighting
// the outline by r/MaxRadius. Channel means and the blend truncate.
func (e *Engine) weightedColor(c Circle) Pixel {
	center := e.target.PixelAt(c.X, c.Y)

	var sr, sg, sb float32
	ring := e.raster.Outline(c, e.canvas.width, e.canvas.height)
	for _, p := range ring {
		px := e.target.PixelAt(p.X, p.Y)
		sr += float32(px.R)
		sg += float32(px.G)
		sb += float32(px.B)
	}
	if len(ring) == 0 {
		return center
	}

	n := float32(len(ring))
	w := min(float32(c.R)/float32(MaxRadius(e.canvas.width, e.canvas.height)), 1)
	blend := func(cv uint8, sum float32) uint8 {
		edge := float32(uint8(sum / n))
		// Explicit conversions keep each product rounded, never fused.
		return uint8(float32((1-w)*float32(cv)) + float32(w*edge))
	}
	return Pixel{
		R: blend(center.R, sr),
		G: blend(center.G, sg),
		B: blend(center.B, sb),
	}
}

// Finalize ends the run and returns the canvas. Further calls return the
// same buffer without touching it. Finalize panics on an idle engine.
func (e *Engine) Finalize() *PixelBuffer {
	switch e.state {
	case StateIdle:
		panic("circlez: Finalize called on an idle engine")
	case StateRunning:
		e.state = StateFinished
		st := e.Stats()
		Logger().Info("circlez: engine finalized",
			"steps", st.Steps,
			"accepted", st.Accepted,
			"rejected", st.Rejected,
			"empty", st.Empty,
			"distance", st.BestDistance,
			"similarity", st.Similarity)
	}
	return e.canvas
}

// State returns the current lifecycle state.
func (e *Engine) State() State {
	return e.state
}

// BestDistance returns the current distance between canvas and target.
func (e *Engine) BestDistance() uint64 {
	return e.best
}

// Canvas returns the canvas. Callers must treat it as read-only and only
// read it between steps.
func (e *Engine) Canvas() *PixelBuffer {
	return e.canvas
}

// Target returns the engine's copy of the target. It must not be modified.
func (e *Engine) Target() *PixelBuffer {
	return e.target
}

// Stats returns a snapshot of the engine's counters.
func (e *Engine) Stats() Stats {
	st := Stats{
		Steps:        e.steps,
		Accepted:     e.accepted,
		Rejected:     e.rejected,
		Empty:        e.empty,
		BestDistance: e.best,
	}
	if e.canvas != nil {
		if m := MaxDistance(e.canvas.width, e.canvas.height); m > 0 {
			st.Similarity = 1 - float64(e.best)/float64(m)
		}
	}
	return st
}

func (e *Engine) mustBe(want State, op string) {
	if e.state != want {
		panic(fmt.Sprintf("circlez: %s called on a %s engine", op, e.state))
	}
}
