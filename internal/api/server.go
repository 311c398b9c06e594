// Package api provides the HTTP API for browsing shapes and computing layouts.
// All endpoints are read-only GETs. The layout endpoint runs a full search
// per request and sits behind a per-IP rate limiter.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/talgya/hexplanner/internal/persistence"
	"github.com/talgya/hexplanner/internal/planner"
	"github.com/talgya/hexplanner/internal/world"
)

// Catalog is the shape lookup the server needs.
type Catalog interface {
	ListShapes() ([]world.Shape, error)
	GetShape(id int64) (*world.Shape, error)
	ShapeCount() (int, error)
}

// Server serves the shape catalog and layouts over HTTP.
type Server struct {
	Catalog           Catalog
	Addr              string
	CORSOrigins       []string // Allowed in addition to localhost dev servers
	MaxNodes          int      // Search node cap per layout request. 0 = unbounded.
	MaxAnchors        int      // Largest n override accepted. 0 = unbounded.
	LayoutRatePerHour int      // Layout requests per IP per hour. 0 = unlimited.
	TrustedProxies    []string // Peers whose X-Forwarded-For is used for rate limiting
	Logger            *slog.Logger

	started time.Time
	srv     *http.Server
	errc    chan error
}

// Handler builds the routed, wrapped handler.
func (s *Server) Handler() http.Handler {
	if s.Logger == nil {
		s.Logger = slog.Default()
	}
	if s.started.IsZero() {
		s.started = time.Now()
	}

	mux := http.NewServeMux()

	mux.HandleFunc("/api/v1/status", s.handleStatus)
	mux.HandleFunc("/api/v1/shapes", s.handleShapes)
	mux.HandleFunc("/api/v1/shape/", s.handleShapeDetail)
	mux.HandleFunc("/api/v1/sample", s.handleSample)

	layout := s.handleLayout
	if s.LayoutRatePerHour > 0 {
		proxies, err := ParseTrustedProxies(s.TrustedProxies)
		if err != nil {
			s.Logger.Warn("ignoring trusted proxies", "error", err)
			proxies = nil
		}
		layout = RateLimitMiddleware(NewRateLimiter(s.LayoutRatePerHour, time.Hour), proxies, layout)
	}
	mux.HandleFunc("/api/v1/layout", layout)

	var h http.Handler = mux
	h = getOnly(h)
	h = corsMiddleware(s.CORSOrigins, h)
	h = s.accessLog(h)
	h = requestID(h)
	return h
}

// Start binds s.Addr and serves the HTTP API in a goroutine. Bind failures
// are returned directly; later serve failures arrive on Err.
func (s *Server) Start() error {
	handler := s.Handler()
	ln, err := net.Listen("tcp", s.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.Addr, err)
	}
	s.srv = &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.errc = make(chan error, 1)
	s.Logger.Info("HTTP API starting", "addr", ln.Addr().String(), "layout_rate_per_hour", s.LayoutRatePerHour, "max_nodes", s.MaxNodes)

	go func() {
		if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.Logger.Error("HTTP server error", "error", err)
			s.errc <- err
		}
	}()
	return nil
}

// Err delivers the error that stopped a started server, if any.
func (s *Server) Err() <-chan error {
	return s.errc
}

// Shutdown stops accepting requests and waits for in-flight ones.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.srv == nil {
		return nil
	}
	return s.srv.Shutdown(ctx)
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	count, err := s.Catalog.ShapeCount()
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	writeJSON(w, map[string]any{
		"name":   "hexplanner",
		"shapes": count,
		"uptime": time.Since(s.started).Round(time.Second).String(),
	})
}

func (s *Server) handleShapes(w http.ResponseWriter, r *http.Request) {
	shapes, err := s.Catalog.ListShapes()
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	writeJSON(w, shapes)
}

// handleShapeDetail serves GET /api/v1/shape/:id.
func (s *Server) handleShapeDetail(w http.ResponseWriter, r *http.Request) {
	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	if len(parts) < 4 || parts[3] == "" {
		writeError(w, http.StatusBadRequest, "missing shape id")
		return
	}
	id, err := strconv.ParseInt(parts[3], 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid shape id")
		return
	}

	shape, err := s.Catalog.GetShape(id)
	if err != nil {
		s.lookupError(w, r, err)
		return
	}
	writeJSON(w, shape)
}

// handleLayout serves GET /api/v1/layout?id=:id[&n=:n]. Without n, the
// shape's own score count sets the number of anchors.
func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.URL.Query().Get("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid shape id")
		return
	}

	shape, err := s.Catalog.GetShape(id)
	if err != nil {
		s.lookupError(w, r, err)
		return
	}

	n := shape.Iterations()
	if v := r.URL.Query().Get("n"); v != "" {
		n, err = strconv.Atoi(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid anchor count")
			return
		}
		if s.MaxAnchors > 0 && n > s.MaxAnchors {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("anchor count above limit of %d", s.MaxAnchors))
			return
		}
	}

	p, err := planner.New(shape.Pattern, n, planner.Options{MaxNodes: s.MaxNodes, Logger: s.Logger})
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	sols, st, err := p.Solve(r.Context())
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}

	s.Logger.Info("layout computed",
		"request_id", w.Header().Get(requestIDHeader),
		"shape", shape.ID,
		"anchors", n,
		"nodes", humanize.Comma(int64(st.Nodes)),
		"solutions", st.Solutions,
		"duration", st.Duration,
	)
	w.Header().Set("X-Search-Nodes", strconv.Itoa(st.Nodes))
	writeJSON(w, sols)
}

// handleSample serves GET /api/v1/sample?seed=&radius=&cells=.
func (s *Server) handleSample(w http.ResponseWriter, r *http.Request) {
	cfg := world.DefaultSampleConfig()
	q := r.URL.Query()
	for _, p := range []struct {
		name string
		dst  *int
		max  int
	}{
		{"radius", &cfg.Radius, 4},
		{"cells", &cfg.Cells, 12},
	} {
		v := q.Get(p.name)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > p.max {
			writeError(w, http.StatusBadRequest, "invalid "+p.name)
			return
		}
		*p.dst = n
	}
	if v := q.Get("seed"); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid seed")
			return
		}
		cfg.Seed = seed
	}

	writeJSON(w, world.SampleShape(cfg))
}

func (s *Server) lookupError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, persistence.ErrShapeNotFound) {
		writeError(w, http.StatusNotFound, "shape not found")
		return
	}
	s.internalError(w, r, err)
}

func (s *Server) internalError(w http.ResponseWriter, r *http.Request, err error) {
	s.Logger.Error("request failed", "path", r.URL.Path, "error", err)
	writeError(w, http.StatusInternalServerError, "internal error")
}

// statusFor maps planner errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, planner.ErrMalformedShape), errors.Is(err, planner.ErrInvalidCount):
		return http.StatusUnprocessableEntity
	case errors.Is(err, planner.ErrSearchLimit):
		return http.StatusServiceUnavailable
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, data any) {
	writeJSONStatus(w, http.StatusOK, data)
}

func writeJSONStatus(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.Encode(data)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSONStatus(w, status, map[string]string{"error": msg})
}
