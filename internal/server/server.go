// Package server exposes the planner over a small JSON HTTP API.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"rrt-planner/internal/config"
	"rrt-planner/internal/geometry"
	"rrt-planner/internal/render"
	"rrt-planner/internal/rrt"
	"rrt-planner/internal/session"
	"rrt-planner/internal/tree"
	"rrt-planner/internal/workspace"
)

// DefaultPlanTimeout bounds a single /plan request.
const DefaultPlanTimeout = 30 * time.Second

// PlanRequest is the body of POST /plan. Omitted fields fall back to the
// server configuration; omitted start or goal are drawn at random.
type PlanRequest struct {
	Seed          *uint64          `json:"seed,omitempty"`
	Start         *geometry.Point  `json:"start,omitempty"`
	Goal          *geometry.Point  `json:"goal,omitempty"`
	Obstacles     []geometry.Point `json:"obstacles,omitempty"`
	ObstacleCount *int             `json:"obstacleCount,omitempty"`
	StepSize      int              `json:"stepSize,omitempty"`
	MinExpansion  *int             `json:"minExpansion,omitempty"`
	MaxIterations int              `json:"maxIterations,omitempty"`
}

// Server handles planning requests. Each request runs its own search; the
// most recent result is kept for GET /lines.
type Server struct {
	cfg         config.Config
	log         *zap.SugaredLogger
	planTimeout time.Duration

	mu   sync.RWMutex
	last *rrt.Result
	runs int
}

// New returns a server using cfg for request defaults.
func New(cfg config.Config, log *zap.SugaredLogger) *Server {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Server{cfg: cfg, log: log, planTimeout: DefaultPlanTimeout}
}

// Handler returns the routed handler with CORS applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/plan", corsMiddleware(s.planHandler))
	mux.HandleFunc("/lines", corsMiddleware(s.linesHandler))
	mux.HandleFunc("/health", corsMiddleware(s.healthHandler))
	return mux
}

// ListenAndServe serves on cfg.Listen until ctx is done, then shuts down.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Listen,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Infow("server starting", "addr", s.cfg.Listen)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return errors.Wrap(err, "server")
	case <-ctx.Done():
		s.log.Infow("server shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return errors.Wrap(srv.Shutdown(shutdownCtx), "server shutdown")
	}
}

// corsMiddleware adds CORS headers to allow frontend requests
func corsMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		// Handle preflight
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next(w, r)
	}
}

// POST /plan - Grow a tree and return the result. ?format=geojson or
// ?format=png switch the response encoding.
func (s *Server) planHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req PlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.log.Debugw("invalid plan request", "error", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	cfg, e := s.apply(req)
	if err := cfg.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.planTimeout)
	defer cancel()

	search, err := session.Prepare(ctx, cfg, e, s.log)
	if err != nil {
		status := http.StatusBadRequest
		switch {
		case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
			status = http.StatusServiceUnavailable
		case errors.Is(err, workspace.ErrOverfull):
			status = http.StatusUnprocessableEntity
		}
		s.log.Infow("plan rejected", "status", status, "error", err)
		http.Error(w, err.Error(), status)
		return
	}

	res, err := search.Run(ctx)
	if err != nil {
		s.log.Infow("plan failed", "run", res.ID, "iterations", res.Iterations, "error", err)
	} else {
		s.log.Infow("plan connected", "run", res.ID, "iterations", res.Iterations, "waypoints", len(res.Path))
	}

	s.mu.Lock()
	s.last = res
	s.runs++
	s.mu.Unlock()

	s.write(w, r.URL.Query().Get("format"), res)
}

func (s *Server) write(w http.ResponseWriter, format string, res *rrt.Result) {
	switch strings.ToLower(format) {
	case "", "json":
		writeJSON(w, http.StatusOK, res)
	case "geojson":
		data, err := render.GeoJSON(res)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/geo+json")
		_, _ = w.Write(data)
	case "png":
		w.Header().Set("Content-Type", "image/png")
		if err := render.PNG(w, res); err != nil {
			s.log.Warnw("png encode failed", "run", res.ID, "error", err)
		}
	default:
		http.Error(w, "unknown format "+format, http.StatusBadRequest)
	}
}

// apply overlays req onto the server configuration.
func (s *Server) apply(req PlanRequest) (config.Config, session.Environment) {
	cfg := s.cfg
	if req.Seed != nil {
		cfg.Seed = *req.Seed
	}
	if req.StepSize > 0 {
		cfg.StepSize = req.StepSize
	}
	if req.MinExpansion != nil {
		cfg.MinExpansion = *req.MinExpansion
	}
	if req.MaxIterations > 0 {
		cfg.MaxIterations = req.MaxIterations
	}

	e := session.Environment{Start: req.Start, Goal: req.Goal}
	switch {
	case req.Obstacles != nil:
		e.Obstacles = req.Obstacles
		e.Count = len(req.Obstacles)
	case req.ObstacleCount != nil:
		e.Count = *req.ObstacleCount
	case len(cfg.ObstacleCounts) > 0:
		e.Count = cfg.ObstacleCounts[0]
	}
	cfg.ObstacleCounts = []int{e.Count}
	return cfg, e
}

// GET /lines - Tree edges of the most recent run as line strings
func (s *Server) linesHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	s.mu.RLock()
	last := s.last
	s.mu.RUnlock()

	if last == nil {
		http.Error(w, "No run yet. Call /plan first", http.StatusNotFound)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"run":      last.ID,
		"lines":    lineStrings(last.Edges),
		"path":     last.Path,
		"numNodes": len(last.Nodes),
		"numEdges": len(last.Edges),
	})
}

func lineStrings(edges []tree.Edge) [][]geometry.Point {
	lines := make([][]geometry.Point, len(edges))
	for i, e := range edges {
		lines[i] = []geometry.Point{e.From, e.To}
	}
	return lines
}

// GET /health - Health check endpoint
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	runs := s.runs
	s.mu.RUnlock()

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ready",
		"runs":   runs,
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
