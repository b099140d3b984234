// Package apiserver provides the JSON API HTTP server for the import
// and translation pipelines.
package apiserver

import (
	"context"
	"fmt"
	"net"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/net/netutil"

	"github.com/cookingwith/core/internal/infrastructure/config"
	"github.com/cookingwith/core/internal/infrastructure/http/middleware"
	"github.com/cookingwith/core/internal/infrastructure/monitoring"
	"github.com/cookingwith/core/pkg/healthcheck"
)

// Server represents the API HTTP server
type Server struct {
	config   *config.Config
	logger   *zap.Logger
	server   *http.Server
	router   *gin.Engine
	handlers *Handlers
	metrics  *monitoring.MetricsCollector
	health   *healthcheck.HealthCheck
}

// NewServer creates a new API server instance
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	handlers *Handlers,
	metrics *monitoring.MetricsCollector,
	health *healthcheck.HealthCheck,
) *Server {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		config:   cfg,
		logger:   logger.Named("api-server"),
		handlers: handlers,
		metrics:  metrics,
		health:   health,
	}

	s.router = s.setupRoutes()
	s.server = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      s.router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return s
}

// Router exposes the gin engine, used by tests
func (s *Server) Router() *gin.Engine {
	return s.router
}

// setupRoutes configures the API routes and middleware chain
func (s *Server) setupRoutes() *gin.Engine {
	r := gin.New()
	m := middleware.New(s.config, s.logger)

	r.Use(m.RequestID())
	r.Use(m.Logger())
	r.Use(m.Recovery())
	r.Use(m.Security())
	r.Use(m.RateLimit())
	if s.config.Monitoring.EnableMetrics {
		r.Use(s.metrics.HTTPMiddleware())
		r.GET(s.config.Monitoring.MetricsPath, s.metrics.Handler())
	}

	r.GET(s.config.Monitoring.HealthCheckPath, s.health.Handler())

	v1 := r.Group("/api/v1")
	{
		recipes := v1.Group("/recipes")
		{
			recipes.POST("/import", s.handlers.ImportRecipe)
			recipes.GET("/:id", s.handlers.GetRecipe)
		}

		translations := v1.Group("/translations")
		{
			translations.POST("", s.handlers.EnqueueTranslation)
			translations.GET("/:id", s.handlers.GetTranslationJob)
			translations.POST("/:id/process", s.handlers.ProcessTranslationJob)
			translations.GET("/content/:type/:id/:lang", s.handlers.GetTranslations)
		}
	}

	return r
}

// Start begins listening for requests. The listener is capped at the
// configured connection limit so a scrape burst degrades to queueing
// instead of exhausting file descriptors.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.server.Addr)
	if err != nil {
		return fmt.Errorf("api server listen: %w", err)
	}
	if max := s.config.Server.MaxConnections; max > 0 {
		ln = netutil.LimitListener(ln, max)
	}

	s.logger.Info("Starting API server",
		zap.String("addr", s.server.Addr),
		zap.Int("max_connections", s.config.Server.MaxConnections))
	if err := s.server.Serve(ln); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("api server failed: %w", err)
	}
	return nil
}

// Shutdown gracefully stops the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down API server")
	return s.server.Shutdown(ctx)
}
