package preview

import (
	"bufio"
	"context"
	"io"
	"strings"
	"sync"

	"github.com/gogpu/circlez"
)

// Headless is a display without a window. Show does nothing; Done closes
// when Stop is called, e.g. from WatchKeys.
type Headless struct {
	once sync.Once
	stop chan struct{}
}

// NewHeadless creates a headless display.
func NewHeadless() *Headless {
	return &Headless{stop: make(chan struct{})}
}

// Show implements the display contract and discards the frame.
func (h *Headless) Show(*circlez.PixelBuffer, circlez.Stats) error { return nil }

// Done is closed once Stop has been called.
func (h *Headless) Done() <-chan struct{} { return h.stop }

// Stop closes Done. Calling it more than once is harmless.
func (h *Headless) Stop() {
	h.once.Do(func() { close(h.stop) })
}

// WatchKeys reads lines from r and calls stop when the user enters "q",
// "quit" or an empty line. It returns when stop was called, r is exhausted
// or ctx is done. Reading blocks, so run it on its own goroutine.
func WatchKeys(ctx context.Context, r io.Reader, stop func()) {
	lines := make(chan string)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(r)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case line, ok := <-lines:
			if !ok {
				return
			}
			switch strings.ToLower(strings.TrimSpace(line)) {
			case "", "q", "quit":
				circlez.Logger().Info("preview: stop requested from terminal")
				stop()
				return
			}
		}
	}
}
