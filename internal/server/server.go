// Package server wires the site, visit tracking and metrics into a gin engine.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Boredoom17/portfolio/internal/content"
	"github.com/Boredoom17/portfolio/internal/metrics"
	"github.com/Boredoom17/portfolio/internal/route"
	"github.com/Boredoom17/portfolio/internal/site"
	"github.com/Boredoom17/portfolio/internal/visits"
)

const (
	shutdownTimeout = 10 * time.Second
	cleanupInterval = 24 * time.Hour
)

// Options configures the HTTP server.
type Options struct {
	Addr           string
	PublicDir      string
	AdminToken     string
	VisitRetention time.Duration
}

// Server is the portfolio HTTP server.
type Server struct {
	opts    Options
	site    *site.Site
	visits  *visits.Store
	metrics *metrics.Metrics
	logger  *slog.Logger
	engine  *gin.Engine
}

// New builds the engine. visitStore may be nil to disable tracking.
func New(opts Options, s *site.Site, visitStore *visits.Store, m *metrics.Metrics, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	srv := &Server{opts: opts, site: s, visits: visitStore, metrics: m, logger: logger}
	srv.engine = srv.routes()
	return srv
}

// Handler exposes the engine, mainly for tests.
func (s *Server) Handler() http.Handler { return s.engine }

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestID(), s.accessLog(), s.observe())
	r.HTMLRender = s.site

	r.StaticFS("/static", http.FS(site.Static()))
	r.StaticFile(content.DefaultAvatar.Src, filepath.Join(s.opts.PublicDir, filepath.FromSlash(content.DefaultAvatar.Src)))

	pages := r.Group("/", s.trackVisits())
	for _, rt := range route.All() {
		pages.GET(rt.Path(), s.page(rt))
	}

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.metrics.Registry, promhttp.HandlerOpts{})))

	s.adminRoutes(r)
	return r
}

const reducedMotionHint = "Sec-CH-Prefers-Reduced-Motion"

func (s *Server) page(rt route.Route) gin.HandlerFunc {
	return func(c *gin.Context) {
		// The reveal markup depends on this hint.
		c.Header("Accept-CH", reducedMotionHint)
		c.Header("Critical-CH", reducedMotionHint)
		c.Header("Vary", reducedMotionHint)
		opts := site.RenderOptions{StaticReveal: prefersReducedMotion(c.Request)}
		s.metrics.PageViews.WithLabelValues(rt.String()).Inc()
		c.HTML(http.StatusOK, site.TemplateName(rt), s.site.Page(rt, opts))
	}
}

func prefersReducedMotion(r *http.Request) bool {
	return r.Header.Get(reducedMotionHint) == "reduce"
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:              s.opts.Addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 5 * time.Second,
	}

	bg, stop := context.WithCancel(ctx)
	defer stop()
	if s.visits != nil {
		go s.visits.RunCleanup(bg, s.opts.VisitRetention, cleanupInterval)
	}
	go func() {
		if err := s.site.Watch(bg); err != nil {
			s.logger.Error("template watcher stopped", "error", err)
		}
	}()

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("serving portfolio", "addr", s.opts.Addr)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	s.logger.Info("shutting down")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
