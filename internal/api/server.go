// Package api exposes the engine over HTTP: state queries, commands, an
// SSE state stream, and Prometheus metrics.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"path-follower/internal/guidance"
	"path-follower/internal/metrics"
	"path-follower/internal/sim"
)

type Server struct {
	eng    *sim.Engine
	router chi.Router
	logger *zap.Logger
}

func NewServer(eng *sim.Engine, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{eng: eng, router: chi.NewRouter(), logger: logger}
	s.routes()
	return s
}

func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) routes() {
	s.router.Use(requestMetrics)

	s.router.Get("/health", s.health)
	s.router.Get("/state", s.state)

	s.router.Post("/command/goto", s.gotoCmd)
	s.router.Post("/command/orbit", s.orbitCmd)
	s.router.Post("/command/route", s.routeCmd)
	s.router.Post("/command/segment", s.segmentCmd)
	s.router.Post("/command/hold", s.holdCmd)
	s.router.Post("/command/stop", s.stopCmd)

	s.router.Get("/stream", s.streamSSE)
	s.router.Handle("/metrics", metrics.Handler())
}

// requestMetrics records method/route/status counters per request.
func requestMetrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(ww, r)

		route := chi.RouteContext(r.Context()).RoutePattern()
		if route == "" {
			route = "unknown"
		}
		metrics.ObserveHTTPRequest(r.Method, route, ww.statusCode, time.Since(start))
	})
}

type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (rec *statusRecorder) WriteHeader(code int) {
	rec.statusCode = code
	rec.ResponseWriter.WriteHeader(code)
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Server) state(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	st, err := s.eng.GetState(ctx)
	if err != nil {
		http.Error(w, err.Error(), http.StatusRequestTimeout)
		return
	}
	writeJSON(w, st)
}

func (s *Server) gotoCmd(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Lat   float64 `json:"lat"`
		Lon   float64 `json:"lon"`
		Alt   float64 `json:"alt"`
		Speed float64 `json:"speed,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}

	s.eng.Submit(sim.GoToCommand{
		At:    time.Now(),
		Lat:   body.Lat,
		Lon:   body.Lon,
		Alt:   body.Alt,
		Speed: body.Speed,
	})

	writeJSON(w, map[string]any{"status": "accepted", "type": "goto"})
}

func (s *Server) orbitCmd(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Lat       float64 `json:"lat"`
		Lon       float64 `json:"lon"`
		Alt       float64 `json:"alt"`
		RadiusM   float64 `json:"radiusM"`
		Clockwise bool    `json:"clockwise,omitempty"`
		Speed     float64 `json:"speed,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	if body.RadiusM <= 0 {
		http.Error(w, "radiusM must be > 0", http.StatusBadRequest)
		return
	}

	s.eng.Submit(sim.OrbitCommand{
		At:        time.Now(),
		Lat:       body.Lat,
		Lon:       body.Lon,
		Alt:       body.Alt,
		RadiusM:   body.RadiusM,
		Clockwise: body.Clockwise,
		Speed:     body.Speed,
	})

	writeJSON(w, map[string]any{"status": "accepted", "type": "orbit"})
}

func (s *Server) routeCmd(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Waypoints []sim.Waypoint `json:"waypoints"`
		Loop      bool           `json:"loop,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	if len(body.Waypoints) == 0 {
		http.Error(w, "waypoints required", http.StatusBadRequest)
		return
	}

	s.eng.Submit(sim.RouteCommand{
		At:        time.Now(),
		Waypoints: body.Waypoints,
		Loop:      body.Loop,
	})

	writeJSON(w, map[string]any{"status": "accepted", "type": "route", "count": len(body.Waypoints)})
}

func (s *Server) segmentCmd(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Segment guidance.PathSegment `json:"segment"`
		Speed   float64              `json:"speed,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}

	s.eng.Submit(sim.SegmentCommand{
		At:      time.Now(),
		Segment: body.Segment,
		Speed:   body.Speed,
	})

	writeJSON(w, map[string]any{"status": "accepted", "type": "segment"})
}

func (s *Server) holdCmd(w http.ResponseWriter, r *http.Request) {
	s.eng.Submit(sim.HoldCommand{At: time.Now()})
	writeJSON(w, map[string]any{"status": "accepted", "type": "hold"})
}

func (s *Server) stopCmd(w http.ResponseWriter, r *http.Request) {
	s.eng.Submit(sim.StopCommand{At: time.Now()})
	writeJSON(w, map[string]any{"status": "accepted", "type": "stop"})
}

func (s *Server) streamSSE(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ctx := r.Context()
	ch, unsub := s.eng.Subscribe(ctx)
	defer unsub()

	fmt.Fprintf(w, ": connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-ctx.Done():
			return
		case st, ok := <-ch:
			if !ok {
				return
			}
			b, err := json.Marshal(st)
			if err != nil {
				s.logger.Error("marshal state", zap.Error(err))
				return
			}
			fmt.Fprintf(w, "event: state\n")
			fmt.Fprintf(w, "data: %s\n\n", b)
			flusher.Flush()
		}
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}
