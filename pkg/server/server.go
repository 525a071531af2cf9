/*
Author: Amjad Yaseen
Email: ayaseen@redhat.com
Date: 2025-06-02

This file assembles the HTTP server for the monitor web application. It:

- Wires the JSON API routes for categories, reports and monitor runs
- Serves generated HTML reports and the optional static UI bundle
- Exposes health and Prometheus metrics endpoints
- Installs recovery and request-logging middleware so a faulty request can
  never take down the handling of concurrent requests

Every error response uses the same JSON envelope: {"success": false,
"error": <message>}. No stack traces or internal paths are exposed.
*/

package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/ayaseen/openshift-monitor-web/pkg/config"
	"github.com/ayaseen/openshift-monitor-web/pkg/manifest"
	"github.com/ayaseen/openshift-monitor-web/pkg/monitor"
)

// Server serves the monitor web API
type Server struct {
	cfg        config.Config
	store      *manifest.Store
	runner     monitor.Runner
	log        *zap.SugaredLogger
	engine     *gin.Engine
	httpServer *http.Server
}

// New creates a server with all routes and middleware installed
func New(cfg config.Config, store *manifest.Store, runner monitor.Runner, log *zap.SugaredLogger) *Server {
	gin.SetMode(gin.ReleaseMode)

	s := &Server{
		cfg:    cfg,
		store:  store,
		runner: runner,
		log:    log,
	}

	engine := gin.New()
	engine.Use(s.requestLogger())
	engine.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Errorw("panic recovered in request handler", "path", c.Request.URL.Path, "panic", recovered)
		respondError(c, http.StatusInternalServerError, "Internal server error")
	}))

	api := engine.Group("/api")
	api.GET("/categories", s.handleCategories)
	api.GET("/reports", s.handleReports)
	api.POST("/run-monitor", s.handleRunMonitor)

	engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "timestamp": time.Now().Format(time.RFC3339)})
	})
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Generated reports are served statically alongside the API
	engine.Static("/reports", cfg.Execution.ReportsDir)

	if cfg.Server.WebDir != "" {
		engine.Static("/ui", cfg.Server.WebDir)
		engine.GET("/", func(c *gin.Context) {
			c.Redirect(http.StatusMovedPermanently, "/ui/")
		})
	}

	engine.NoRoute(func(c *gin.Context) {
		respondError(c, http.StatusNotFound, "Unknown endpoint: "+c.Request.URL.Path)
	})

	s.engine = engine
	s.httpServer = &http.Server{
		Addr:    cfg.Server.Listen,
		Handler: engine,
	}

	return s
}

// Engine exposes the router, primarily for tests
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// ListenAndServe starts the HTTP listener and blocks until it stops
func (s *Server) ListenAndServe() error {
	s.log.Infow("http server listening", "addr", s.cfg.Server.Listen)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the HTTP listener
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// requestLogger logs each request with method, path, status and latency
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.Infow("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(start),
		)
	}
}

// respondError writes the shared error envelope
func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": false, "error": message})
}
