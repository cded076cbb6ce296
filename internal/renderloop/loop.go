// Package renderloop drives an approximation engine in batches and hands
// the canvas to a display between batches.
package renderloop

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gogpu/circlez"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Display receives frames between batches. Done is closed when the user
// asks to stop.
type Display interface {
	Show(canvas *circlez.PixelBuffer, st circlez.Stats) error
	Done() <-chan struct{}
}

// Finisher is implemented by displays that can show the run as over, e.g.
// the browser preview. Run calls Finish after the final frame.
type Finisher interface {
	Finish()
}

// Options controls Run.
type Options struct {
	// StepsPerFrame is the number of steps between two frames.
	StepsPerFrame int

	// MaxSteps ends the run once the engine has taken this many steps.
	// Zero runs until the context or the display stops it.
	MaxSteps uint64

	// FrameInterval is the minimum time between two frames shown during
	// the run. The final frame is always shown.
	FrameInterval time.Duration

	// ProgressEvery is the interval between progress log lines. Zero
	// disables them.
	ProgressEvery time.Duration
}

// StopReason tells why Run returned.
type StopReason int

const (
	StoppedByDisplay StopReason = iota
	StoppedByContext
	StoppedAtMaxSteps
)

// String returns the reason in words.
func (r StopReason) String() string {
	switch r {
	case StoppedByDisplay:
		return "display"
	case StoppedByContext:
		return "interrupted"
	case StoppedAtMaxSteps:
		return "max steps"
	default:
		return fmt.Sprintf("StopReason(%d)", int(r))
	}
}

// Result is what Run produced.
type Result struct {
	Canvas  *circlez.PixelBuffer
	Stats   circlez.Stats
	Reason  StopReason
	Elapsed time.Duration
}

// ErrInvalidOptions is returned for a non-positive StepsPerFrame.
var ErrInvalidOptions = errors.New("renderloop: steps per frame must be positive")

var printer = message.NewPrinter(language.English)

// Run steps e until ctx is done, d.Done is closed or MaxSteps is reached,
// then finalizes the engine. Stop requests are only honored between
// batches, so the canvas handed back is always consistent. e must be
// running. A display error aborts the run; the engine is finalized anyway.
func Run(ctx context.Context, e *circlez.Engine, d Display, opts Options) (Result, error) {
	if opts.StepsPerFrame <= 0 {
		return Result{}, ErrInvalidOptions
	}
	log := circlez.Logger()
	start := time.Now()
	var lastFrame, lastProgress time.Time
	lastProgress = start

	reason := StoppedByDisplay
	var runErr error
loop:
	for {
		select {
		case <-ctx.Done():
			reason = StoppedByContext
			break loop
		case <-d.Done():
			reason = StoppedByDisplay
			break loop
		default:
		}

		n := opts.StepsPerFrame
		if opts.MaxSteps > 0 {
			taken := e.Stats().Steps
			if taken >= opts.MaxSteps {
				reason = StoppedAtMaxSteps
				break loop
			}
			left := opts.MaxSteps - taken
			if left < uint64(n) {
				n = int(left)
			}
		}
		for range n {
			e.Step()
		}

		now := time.Now()
		if opts.FrameInterval <= 0 || now.Sub(lastFrame) >= opts.FrameInterval {
			if err := d.Show(e.Canvas(), e.Stats()); err != nil {
				runErr = fmt.Errorf("renderloop: show frame: %w", err)
				break loop
			}
			lastFrame = now
		}
		if opts.ProgressEvery > 0 && now.Sub(lastProgress) >= opts.ProgressEvery {
			st := e.Stats()
			log.Info("renderloop: progress",
				"steps", printer.Sprintf("%d", st.Steps),
				"circles", printer.Sprintf("%d", st.Accepted),
				"similarity", printer.Sprintf("%.2f%%", st.Similarity*100))
			lastProgress = now
		}
	}

	canvas := e.Finalize()
	st := e.Stats()
	if runErr == nil {
		if err := d.Show(canvas, st); err != nil {
			runErr = fmt.Errorf("renderloop: show final frame: %w", err)
		}
	}
	if f, ok := d.(Finisher); ok {
		f.Finish()
	}
	res := Result{Canvas: canvas, Stats: st, Reason: reason, Elapsed: time.Since(start)}
	log.Info("renderloop: stopped",
		"reason", reason.String(),
		"steps", st.Steps,
		"elapsed", res.Elapsed)
	return res, runErr
}
