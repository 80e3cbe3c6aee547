// Package server is the glossary HTTP API the viewer reads from.
package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/jask/glossview/internal/database/repository"
)

// Options configures the router.
type Options struct {
	// GraphPath is the JSON document served by GET /graph. It is read on every request.
	GraphPath string
	// AllowedOrigins defaults to every origin.
	AllowedOrigins []string
}

type Server struct {
	terms   *repository.TermRepo
	opts    Options
	log     *zap.Logger
	metrics *metrics
}

func New(terms *repository.TermRepo, opts Options, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	if len(opts.AllowedOrigins) == 0 {
		opts.AllowedOrigins = []string{"*"}
	}
	return &Server{terms: terms, opts: opts, log: log, metrics: newMetrics("glossary")}
}

// Handler builds the router with all routes and middleware.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(requestLogger(s.log))
	r.Use(s.metrics.middleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.opts.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"*"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	r.Get("/", s.root)
	r.Get("/graph", s.graph)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.metrics.registry, promhttp.HandlerOpts{}))

	// The mounted subrouter also answers /terms without the trailing slash.
	r.Route("/terms", func(r chi.Router) {
		r.Post("/", s.createTerm)
		r.Get("/", s.listTerms)
		r.Get("/{termID}", s.getTerm)
		r.Put("/{termID}", s.updateTerm)
		r.Delete("/{termID}", s.deleteTerm)
	})

	return r
}
