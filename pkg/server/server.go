// Package server exposes the design pipeline over HTTP.
//
// Routes:
//
//	GET  /healthz                         liveness
//	GET  /v1/poles/{family}?order=N[&ripple=dB]  pole table
//	POST /v1/designs[?format=F]           run the pipeline
//
// POST /v1/designs takes [pipeline.Options] as JSON. Without a format
// query the response is a JSON [DesignResponse] whose artifacts are
// base64 encoded; with one, the single artifact is returned with its own
// content type.
//
// Errors are JSON objects {"error": message, "code": code}. Validation
// errors map to 400, NOT_FOUND to 404 and everything else to 500.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/bson/filtergen/pkg/buildinfo"
	"github.com/bson/filtergen/pkg/cache"
	"github.com/bson/filtergen/pkg/errors"
	"github.com/bson/filtergen/pkg/filter"
	"github.com/bson/filtergen/pkg/observability"
	"github.com/bson/filtergen/pkg/pipeline"
	"github.com/bson/filtergen/pkg/schematic"
)

// maxBodyBytes bounds design requests.
const maxBodyBytes = 1 << 20

// KeyPrefix scopes server cache entries in a shared store.
const KeyPrefix = "api:"

var contentTypes = map[string]string{
	pipeline.FormatSch:  "text/plain; charset=utf-8",
	pipeline.FormatJSON: "application/json",
	pipeline.FormatPDF:  "application/pdf",
	pipeline.FormatDOT:  "text/vnd.graphviz; charset=utf-8",
	pipeline.FormatSVG:  "image/svg+xml",
}

// Server routes HTTP requests to a pipeline runner.
type Server struct {
	runner *pipeline.Runner
	logger *log.Logger
	router chi.Router
}

// New returns a server executing designs with runner.
func New(runner *pipeline.Runner, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{runner: runner, logger: logger}
	s.router = s.routes()
	return s
}

// NewFromConfig builds the runner described by cfg: a redis cache when
// RedisURL is set, otherwise no caching.
func NewFromConfig(ctx context.Context, cfg *Config, logger *log.Logger) (*Server, error) {
	c := cache.NewNullCache()
	if cfg.RedisURL != "" {
		rc, err := cache.NewRedisCache(ctx, cfg.RedisURL)
		if err != nil {
			return nil, err
		}
		c = rc
	}
	runner := pipeline.NewRunner(c, cache.NewScopedKeyer(nil, KeyPrefix), logger)
	if cfg.CacheTTL > 0 {
		runner.TTL = cfg.CacheTTL
	}
	return New(runner, logger), nil
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/healthz", s.health)
	r.Route("/v1", func(r chi.Router) {
		r.Get("/poles/{family}", s.poles)
		r.Post("/designs", s.design)
	})
	return r
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

// Close releases the runner's cache.
func (s *Server) Close() error {
	return s.runner.Close()
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		route := r.URL.Path
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}
		observability.HTTP().OnResponse(r.Context(), r.Method, route, ww.Status(), time.Since(start))
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"id", middleware.GetReqID(r.Context()),
			"duration", time.Since(start))
	})
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

func (s *Server) poles(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	order, err := strconv.Atoi(q.Get("order"))
	if err != nil {
		respondError(w, errors.New(errors.ErrCodeInvalidOrder, "order must be an integer, got %q", q.Get("order")))
		return
	}
	var ripple float64
	if v := q.Get("ripple"); v != "" {
		if ripple, err = strconv.ParseFloat(v, 64); err != nil {
			respondError(w, errors.New(errors.ErrCodeInvalidParameter, "ripple must be a number, got %q", v))
			return
		}
	}

	table, err := s.runner.Poles(r.Context(), chi.URLParam(r, "family"), order, ripple)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, table)
}

// DesignResponse is the JSON body returned by POST /v1/designs.
type DesignResponse struct {
	ID        string            `json:"id"`
	Seed      uint32            `json:"seed"`
	Page      schematic.Page    `json:"page"`
	Summary   filter.Summary    `json:"summary"`
	Parts     schematic.Parts   `json:"parts,omitempty"`
	Artifacts map[string][]byte `json:"artifacts"`
	Cached    bool              `json:"cached"`
}

func (s *Server) design(w http.ResponseWriter, r *http.Request) {
	opts := pipeline.NewOptions()
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&opts); err != nil {
		respondError(w, errors.Wrap(errors.ErrCodeInvalidParameter, err, "decode options"))
		return
	}

	format := r.URL.Query().Get("format")
	if format != "" {
		if err := pipeline.ValidateFormat(format); err != nil {
			respondError(w, err)
			return
		}
		opts.Formats = []string{format}
	}

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		respondError(w, err)
		return
	}

	if format != "" {
		w.Header().Set("Content-Type", contentTypes[format])
		w.Header().Set("X-Design-ID", result.ID)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(result.Artifacts[format])
		return
	}

	respondJSON(w, http.StatusOK, DesignResponse{
		ID:        result.ID,
		Seed:      result.Seed,
		Page:      result.Page,
		Summary:   result.Summary,
		Parts:     result.Parts,
		Artifacts: result.Artifacts,
		Cached:    result.CacheInfo.Hit,
	})
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.IsValidation(err):
		status = http.StatusBadRequest
	case errors.Is(err, errors.ErrCodeNotFound):
		status = http.StatusNotFound
	}
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	respondJSON(w, status, map[string]string{
		"error": errors.UserMessage(err),
		"code":  string(code),
	})
}
