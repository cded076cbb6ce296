package circlez

import (
	"bytes"
	"context"
	"log/slog"
	"math/rand/v2"
	"strings"
	"sync"
	"testing"
)

func TestNopHandler(t *testing.T) {
	var h slog.Handler = nopHandler{}
	for _, level := range []slog.Level{slog.LevelDebug, slog.LevelInfo, slog.LevelWarn, slog.LevelError} {
		if h.Enabled(context.Background(), level) {
			t.Errorf("Enabled(%v) = true, want false", level)
		}
	}
	if err := h.Handle(context.Background(), slog.Record{}); err != nil {
		t.Errorf("Handle() = %v, want nil", err)
	}
	if _, ok := h.WithAttrs([]slog.Attr{slog.Int("steps", 1)}).(nopHandler); !ok {
		t.Error("WithAttrs() did not stay a nopHandler")
	}
	if _, ok := h.WithGroup("engine").(nopHandler); !ok {
		t.Error("WithGroup() did not stay a nopHandler")
	}
}

func TestLogger_SilentUntilSet(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	SetLogger(nil)
	if Logger() == nil {
		t.Fatal("Logger() = nil after SetLogger(nil)")
	}
	if Logger().Enabled(context.Background(), slog.LevelError) {
		t.Error("logger enabled after SetLogger(nil)")
	}

	var buf bytes.Buffer
	custom := slog.New(slog.NewTextHandler(&buf, nil))
	SetLogger(custom)
	if Logger() != custom {
		t.Error("Logger() did not return the logger passed to SetLogger")
	}
	Logger().Info("canvas saved", "path", "out.jpg")
	if !strings.Contains(buf.String(), "path=out.jpg") {
		t.Errorf("log output = %q, want path=out.jpg", buf.String())
	}
}

func TestLogger_SwapDuringRun(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	e := NewEngine(WithSeed(5))
	if err := e.Initialize(randomBuffer(rand.New(rand.NewPCG(5, 5)), 16, 16)); err != nil {
		t.Fatal(err)
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for range 50 {
			SetLogger(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))
			SetLogger(nil)
		}
	}()
	for range 500 {
		e.Step()
	}
	wg.Wait()
	e.Finalize()
}

func TestEngineLogsThroughSetLogger(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))

	e := NewEngine(WithSeed(1))
	if err := e.Initialize(NewPixelBuffer(8, 8)); err != nil {
		t.Fatalf("Initialize() = %v", err)
	}
	e.Finalize()

	out := buf.String()
	for _, want := range []string{"engine initialized", "engine finalized", "width=8"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q, got: %s", want, out)
		}
	}
}
