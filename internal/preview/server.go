// Package preview shows the live canvas in a browser window.
//
// The server keeps the most recent frame as an encoded PNG. The page served
// at "/" reloads it continuously and posts to "/stop" when the Escape key or
// the stop button is pressed. The render loop publishes frames with Show
// between engine steps and watches Done for the stop request.
package preview

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"image/png"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gogpu/circlez"
)

//go:embed assets/index.html
var indexHTML []byte

// Server is an HTTP live preview of the canvas. It is safe for concurrent
// use: Show is called from the render loop while handlers read.
type Server struct {
	addr string
	srv  *http.Server
	ln   net.Listener

	mu     sync.RWMutex
	frame  []byte
	stats  circlez.Stats
	width  int
	height int

	stopOnce sync.Once
	stop     chan struct{}
	finished bool
}

// New creates a preview server for addr (e.g. "localhost:8080").
func New(addr string) *Server {
	s := &Server{
		addr: addr,
		stop: make(chan struct{}),
	}
	s.srv = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// Handler returns the preview's HTTP routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /frame.png", s.handleFrame)
	mux.HandleFunc("GET /stats", s.handleStats)
	mux.HandleFunc("POST /stop", s.handleStop)
	return mux
}

// Start begins listening and serves in the background until ctx is done
// or Close is called. It returns once the listener is bound.
func (s *Server) Start(ctx context.Context) error {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", s.addr)
	if err != nil {
		return fmt.Errorf("preview: listen on %s: %w", s.addr, err)
	}
	s.ln = ln

	go func() {
		<-ctx.Done()
		_ = s.Close()
	}()
	go func() {
		if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			circlez.Logger().Warn("preview: server stopped", "error", err)
		}
	}()

	circlez.Logger().Info("preview: serving", "url", s.URL())
	return nil
}

// URL returns the address the preview is reachable at.
func (s *Server) URL() string {
	if s.ln != nil {
		return "http://" + s.ln.Addr().String() + "/"
	}
	return "http://" + s.addr + "/"
}

// Close shuts the HTTP server down.
func (s *Server) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return s.srv.Shutdown(ctx)
}

// Show publishes buf and st as the current frame. It must be called between
// engine steps; the buffer is encoded before Show returns.
func (s *Server) Show(buf *circlez.PixelBuffer, st circlez.Stats) error {
	var out bytes.Buffer
	if err := png.Encode(&out, Compose(buf, st)); err != nil {
		return fmt.Errorf("preview: encode frame: %w", err)
	}

	s.mu.Lock()
	s.frame = out.Bytes()
	s.stats = st
	s.width, s.height = buf.Width(), buf.Height()
	s.mu.Unlock()
	return nil
}

// Finish marks the run as finished so the page can say so.
func (s *Server) Finish() {
	s.mu.Lock()
	s.finished = true
	s.mu.Unlock()
}

// Done is closed once a stop has been requested from the page.
func (s *Server) Done() <-chan struct{} {
	return s.stop
}

// RequestStop closes Done. Calling it more than once is harmless.
func (s *Server) RequestStop() {
	s.stopOnce.Do(func() {
		close(s.stop)
		circlez.Logger().Info("preview: stop requested")
	})
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(indexHTML)
}

func (s *Server) handleFrame(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	frame := s.frame
	s.mu.RUnlock()

	if frame == nil {
		http.Error(w, "no frame yet", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(frame)
}

// statsResponse is the JSON body of /stats.
type statsResponse struct {
	Width        int     `json:"width"`
	Height       int     `json:"height"`
	Steps        uint64  `json:"steps"`
	Accepted     uint64  `json:"accepted"`
	Rejected     uint64  `json:"rejected"`
	Empty        uint64  `json:"empty"`
	BestDistance uint64  `json:"best_distance"`
	Similarity   float64 `json:"similarity"`
	Done         bool    `json:"done"`
}

func (s *Server) handleStats(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	resp := statsResponse{
		Width:        s.width,
		Height:       s.height,
		Steps:        s.stats.Steps,
		Accepted:     s.stats.Accepted,
		Rejected:     s.stats.Rejected,
		Empty:        s.stats.Empty,
		BestDistance: s.stats.BestDistance,
		Similarity:   s.stats.Similarity,
		Done:         s.finished,
	}
	s.mu.RUnlock()

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	_ = json.NewEncoder(w).Encode(resp)
}

func (s *Server) handleStop(w http.ResponseWriter, _ *http.Request) {
	s.RequestStop()
	w.WriteHeader(http.StatusAccepted)
}
