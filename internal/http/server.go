package http

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/allisson/ai-service/internal/config"
	"github.com/allisson/ai-service/internal/database"
	"github.com/allisson/ai-service/internal/httputil"
	"github.com/allisson/ai-service/internal/metrics"
	userHTTP "github.com/allisson/ai-service/internal/user/http"
	vectorHTTP "github.com/allisson/ai-service/internal/vector/http"
)

// VectorReadiness reports whether the vector store accepts requests.
type VectorReadiness interface {
	Ready(ctx context.Context) error
}

// Server represents the API HTTP server.
type Server struct {
	server          *http.Server
	db              *sql.DB
	vectorReadiness VectorReadiness
	logger          *slog.Logger
	stopBackground  context.CancelFunc
}

// NewServer creates the API server with all routes and middleware installed.
// The metrics provider and the readiness dependencies may be nil; the
// corresponding middleware and checks are skipped.
func NewServer(
	cfg *config.Config,
	db *sql.DB,
	sessionFactory database.SessionFactory,
	userHandler *userHTTP.UserHandler,
	vectorHandler *vectorHTTP.VectorHandler,
	vectorReadiness VectorReadiness,
	metricsProvider *metrics.Provider,
	logger *slog.Logger,
) *Server {
	backgroundCtx, stopBackground := context.WithCancel(context.Background())
	server := &Server{
		db:              db,
		vectorReadiness: vectorReadiness,
		logger:          logger,
		stopBackground:  stopBackground,
	}

	router := gin.New()
	router.Use(requestid.New(
		requestid.WithCustomHeaderStrKey("X-Trace-Id"),
		requestid.WithGenerator(func() string {
			return strings.ReplaceAll(uuid.NewString(), "-", "")
		}),
	))
	router.Use(RecoveryMiddleware(logger))
	router.Use(CustomLoggerMiddleware(logger))

	if metricsProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(metricsProvider.MeterProvider(), cfg.MetricsNamespace))
	}
	if corsMiddleware := createCORSMiddleware(cfg.CORSEnabled, cfg.CORSAllowOrigins, logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}
	if cfg.RateLimitEnabled {
		router.Use(RateLimitMiddleware(backgroundCtx, cfg.RateLimitRequestsPerSec, cfg.RateLimitBurst, logger))
	}

	router.Use(httputil.SessionContextMiddleware(sessionFactory, logger))

	router.NoRoute(func(c *gin.Context) {
		httputil.WriteJSON(c, http.StatusNotFound, httputil.Fail(
			httputil.CodeHTTPError,
			fmt.Sprintf("no route for %s %s", c.Request.Method, c.Request.URL.Path),
		))
	})
	router.HandleMethodNotAllowed = true
	router.NoMethod(func(c *gin.Context) {
		httputil.WriteJSON(c, http.StatusMethodNotAllowed, httputil.Fail(
			httputil.CodeHTTPError,
			fmt.Sprintf("method %s not allowed", c.Request.Method),
		))
	})

	router.GET("/health", server.healthHandler)
	router.GET("/ready", server.readinessHandler)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/hello", server.helloHandler)
		v1.POST("/users", userHandler.CreateHandler)

		weaviate := v1.Group("/weaviate")
		{
			weaviate.POST("/embed", vectorHandler.EmbedHandler)
			weaviate.POST("/search", vectorHandler.SearchHandler)
		}
	}

	server.server = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.ServerHost, cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return server
}

// GetHandler returns the http.Handler for testing purposes.
func (s *Server) GetHandler() http.Handler {
	return s.server.Handler
}

// Start starts the API HTTP server.
func (s *Server) Start(ctx context.Context) error {
	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the API HTTP server and stops its
// background goroutines.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	s.stopBackground()
	return s.server.Shutdown(ctx)
}

// helloHandler answers the health-check greeting.
func (s *Server) helloHandler(c *gin.Context) {
	response := httputil.OK(gin.H{"message": "Hello, World!"}, "")
	httputil.WriteJSON(c, http.StatusOK, response)
}

// healthHandler reports process liveness.
func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// readinessHandler reports whether the backing stores are reachable.
func (s *Server) readinessHandler(c *gin.Context) {
	components := gin.H{}
	ready := true

	if s.db == nil {
		components["database"] = "error"
		ready = false
	} else if err := s.db.PingContext(c.Request.Context()); err != nil {
		components["database"] = "error"
		ready = false
	} else {
		components["database"] = "ok"
	}

	if s.vectorReadiness != nil {
		if err := s.vectorReadiness.Ready(c.Request.Context()); err != nil {
			components["vector_store"] = "error"
			ready = false
		} else {
			components["vector_store"] = "ok"
		}
	}

	if !ready {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready", "components": components})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ready", "components": components})
}
