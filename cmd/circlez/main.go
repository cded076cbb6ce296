// Command circlez approximates an image with filled circles.
//
// Usage:
//
//	circlez [flags] <image>
//
// Circles are added one at a time and kept only when they bring the canvas
// closer to the image. Progress can be watched in a browser; the search
// runs until stopped (Escape in the preview, "q" on the terminal or
// Ctrl+C) and the result is written to generated_images/<name>_circlez.jpg.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/gogpu/circlez"
	"github.com/gogpu/circlez/internal/config"
	"github.com/gogpu/circlez/internal/imageio"
	"github.com/gogpu/circlez/internal/logging"
	"github.com/gogpu/circlez/internal/preview"
	"github.com/gogpu/circlez/internal/renderloop"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	cyan   = color.New(color.FgCyan, color.Bold)
	green  = color.New(color.FgGreen, color.Bold)
	yellow = color.New(color.FgYellow)
	red    = color.New(color.FgRed, color.Bold)
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// First signal stops the search and saves, second exits immediately.
	sigs := make(chan os.Signal, 2)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
	go func() {
		count := 0
		for range sigs {
			count++
			if count == 1 {
				yellow.Fprintln(os.Stderr, "\nStopping, saving result... (press Ctrl+C again to force)")
				cancel()
				continue
			}
			red.Fprintln(os.Stderr, "Forced exit")
			os.Exit(130)
		}
	}()

	os.Exit(run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run executes one approximation and returns the process exit code.
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cfg, err := config.Load(args)
	if err == nil {
		err = cfg.Validate()
	}
	if err != nil {
		red.Fprintf(stderr, "circlez: %v\n", err)
		fmt.Fprintln(stderr, "usage: circlez [flags] <image>")
		return 1
	}

	logger, err := logging.New(logging.Options{
		Level:   cfg.LogLevel,
		File:    cfg.LogFile,
		JSON:    cfg.LogJSON,
		Console: zapcore.Lock(zapcore.AddSync(stderr)),
	})
	if err != nil {
		red.Fprintf(stderr, "circlez: %v\n", err)
		return 1
	}
	defer func() { _ = logger.Sync() }()
	circlez.SetLogger(slog.New(logging.NewSlogHandler(logger)))
	defer circlez.SetLogger(nil)

	printBanner(stdout, cfg)

	target, err := imageio.Load(cfg.Input)
	if err != nil {
		logger.Error("cannot load target", zap.String("path", cfg.Input), zap.Error(err))
		red.Fprintf(stderr, "circlez: %v\n", err)
		return 1
	}
	target = imageio.Fit(target, cfg.MaxSide)

	engine, err := newEngine(cfg, target)
	if err != nil {
		red.Fprintf(stderr, "circlez: %v\n", err)
		return 1
	}

	runCtx, stopRun := context.WithCancel(ctx)
	defer stopRun()

	var display renderloop.Display
	if cfg.Preview {
		srv := preview.New(cfg.PreviewAddr)
		if err := srv.Start(runCtx); err != nil {
			red.Fprintf(stderr, "circlez: %v\n", err)
			return 1
		}
		// Kept open until the result is saved.
		defer func() { _ = srv.Close() }()
		green.Fprintf(stdout, "Preview: %s\n", srv.URL())
		go preview.WatchKeys(runCtx, stdin, srv.RequestStop)
		display = srv
	} else {
		h := preview.NewHeadless()
		go preview.WatchKeys(runCtx, stdin, h.Stop)
		display = h
	}
	fmt.Fprintln(stdout, "Press Escape in the preview, enter q or hit Ctrl+C to stop.")

	res, err := renderloop.Run(runCtx, engine, display, renderloop.Options{
		StepsPerFrame: cfg.StepsPerFrame,
		MaxSteps:      cfg.MaxSteps,
		FrameInterval: cfg.FrameInterval,
		ProgressEvery: cfg.ProgressEvery,
	})
	if err != nil {
		logger.Warn("render loop ended with an error", zap.Error(err))
	}

	out := cfg.OutputPath()
	if err := imageio.Save(out, res.Canvas, cfg.JPEGQuality); err != nil {
		logger.Error("cannot save result", zap.String("path", out), zap.Error(err))
		red.Fprintf(stderr, "circlez: %v\n", err)
		return 1
	}
	logger.Info("result saved",
		zap.String("path", out),
		zap.Uint64("steps", res.Stats.Steps),
		zap.Uint64("circles", res.Stats.Accepted),
		zap.Duration("elapsed", res.Elapsed))

	green.Fprintf(stdout, "Saved %s\n", out)
	fmt.Fprintln(stdout, preview.StatusLine(res.Stats))
	return 0
}

func newEngine(cfg config.Config, target *circlez.PixelBuffer) (*circlez.Engine, error) {
	mode, err := circlez.ParseColorMode(cfg.ColorMode)
	if err != nil {
		return nil, err
	}
	bg, err := circlez.Hex(cfg.Background)
	if err != nil {
		return nil, err
	}
	opts := []circlez.EngineOption{circlez.WithColorMode(mode), circlez.WithBackground(bg)}
	if cfg.Seed != 0 {
		opts = append(opts, circlez.WithSeed(cfg.Seed))
	}
	engine := circlez.NewEngine(opts...)
	if err := engine.Initialize(target); err != nil {
		return nil, fmt.Errorf("%s: %w", cfg.Input, err)
	}
	return engine, nil
}

func printBanner(w io.Writer, cfg config.Config) {
	cyan.Fprintf(w, "circlez %s\n", circlez.Version)
	fmt.Fprintf(w, "  target:     %s\n", cfg.Input)
	fmt.Fprintf(w, "  output:     %s\n", cfg.OutputPath())
	fmt.Fprintf(w, "  colors:     %s\n", cfg.ColorMode)
	fmt.Fprintf(w, "  iterations: %d per frame\n", cfg.StepsPerFrame)
}
