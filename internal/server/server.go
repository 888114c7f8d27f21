// Package server exposes the screenshot service and its collaborators over HTTP.
package server

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ibeckermayer/mockshot/internal/screenshot"
	"github.com/ibeckermayer/mockshot/internal/serializer"
	"github.com/ibeckermayer/mockshot/internal/store"
	"github.com/ibeckermayer/mockshot/internal/types"
)

// DefaultMaxBodyBytes fits four inlined images
const DefaultMaxBodyBytes = 25 << 20

// Capturer renders and screenshots mockups
type Capturer interface {
	Capture(ctx context.Context, req serializer.Request) (*screenshot.Result, error)
	Render(req serializer.Request) (string, error)
}

// Profiles stores saved authors
type Profiles interface {
	SaveProfile(ctx context.Context, name string, author types.Author) (*store.Profile, error)
	ListProfiles(ctx context.Context) ([]store.Profile, error)
	DeleteProfile(ctx context.Context, id string) error
}

// History reads recorded exports
type History interface {
	ListExports(ctx context.Context, limit int) ([]store.Export, error)
	Stats(ctx context.Context) ([]store.ExportStats, error)
}

// Server routes HTTP requests to the capture service
type Server struct {
	router       *mux.Router
	handler      http.Handler
	screenshots  Capturer
	profiles     Profiles
	history      History
	registry     *prometheus.Registry
	metrics      *httpMetrics
	tracing      func(http.Handler) http.Handler
	maxBodyBytes int64
}

// Option configures optional collaborators
type Option func(*Server)

// WithProfiles enables the /api/profiles routes
func WithProfiles(p Profiles) Option {
	return func(s *Server) { s.profiles = p }
}

// WithHistory enables the /api/exports routes
func WithHistory(h History) Option {
	return func(s *Server) { s.history = h }
}

// WithRegistry serves and registers metrics on reg
func WithRegistry(reg *prometheus.Registry) Option {
	return func(s *Server) { s.registry = reg }
}

// WithTracing wraps every request in mw
func WithTracing(mw func(http.Handler) http.Handler) Option {
	return func(s *Server) { s.tracing = mw }
}

// WithMaxBodyBytes limits request bodies
func WithMaxBodyBytes(n int64) Option {
	return func(s *Server) { s.maxBodyBytes = n }
}

// NewRegistry returns a registry with the Go runtime and process collectors
func NewRegistry() *prometheus.Registry {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return registry
}

// New creates a server around the capture service
func New(screenshots Capturer, opts ...Option) *Server {
	s := &Server{
		router:       mux.NewRouter(),
		screenshots:  screenshots,
		maxBodyBytes: DefaultMaxBodyBytes,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.registry == nil {
		s.registry = NewRegistry()
	}
	s.metrics = newHTTPMetrics(s.registry)

	s.routes()

	s.handler = s.router
	if s.tracing != nil {
		s.handler = s.tracing(s.router)
	}
	return s
}

func (s *Server) routes() {
	// Panicking requests are counted as 500s
	s.router.Use(s.countRequests, s.recoverPanics, s.limitBody)

	s.router.HandleFunc("/healthz", s.handleHealth).Methods("GET")
	s.router.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})).Methods("GET")

	// Every route stays on s.router so any method mismatch is a 405
	s.router.HandleFunc("/api/screenshot", s.handleScreenshot).Methods("POST")
	s.router.HandleFunc("/api/render", s.handleRender).Methods("POST")

	if s.profiles != nil {
		s.router.HandleFunc("/api/profiles", s.handleListProfiles).Methods("GET")
		s.router.HandleFunc("/api/profiles", s.handleSaveProfile).Methods("POST")
		s.router.HandleFunc("/api/profiles/{id}", s.handleDeleteProfile).Methods("DELETE")
	}
	if s.history != nil {
		s.router.HandleFunc("/api/exports", s.handleListExports).Methods("GET")
		s.router.HandleFunc("/api/exports/stats", s.handleExportStats).Methods("GET")
	}

	s.router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, ErrorNotFound)
	})
	s.router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, ErrorMethodNotAllowed)
	})
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}
