// Package api exposes the locator over HTTP.
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/UnknownOlympus/locator/internal/geocoding"
	"github.com/UnknownOlympus/locator/internal/metrics"
	"github.com/UnknownOlympus/locator/internal/models"
	"github.com/UnknownOlympus/locator/internal/resolver"
	"github.com/UnknownOlympus/locator/internal/view"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Applications is the application workflow used by the handlers.
type Applications interface {
	Submit(ctx context.Context, app models.Application) (models.Application, error)
	List(ctx context.Context, status models.ApplicationStatus) ([]models.Application, error)
	Get(ctx context.Context, id string) (models.Application, error)
	Deny(ctx context.Context, id string, review models.Review) (models.Application, error)
	Approve(ctx context.Context, id string, review models.Review) (models.Application, models.LawFirm, error)
}

// Config configures the HTTP server.
type Config struct {
	AllowedOrigins  []string
	Resolver        resolver.Config
	DefaultLocation models.Coordinates
}

// Server serves the public search API and the admin application review API.
type Server struct {
	cfg          Config
	provider     geocoding.Provider
	registry     *view.Registry
	applications Applications
	log          *slog.Logger
	metrics      *metrics.Metrics
	engine       *gin.Engine
}

// New builds a Server with all routes registered.
func New(
	cfg Config,
	provider geocoding.Provider,
	registry *view.Registry,
	applications Applications,
	log *slog.Logger,
	m *metrics.Metrics,
) *Server {
	s := &Server{
		cfg:          cfg,
		provider:     provider,
		registry:     registry,
		applications: applications,
		log:          log,
		metrics:      m,
	}

	engine := gin.New()
	engine.Use(gin.Recovery(), RequestID(), RequestLogger(log))
	if len(cfg.AllowedOrigins) > 0 {
		engine.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.AllowedOrigins,
			AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
			AllowHeaders:     []string{"Origin", "Content-Type", requestIDHeader},
			ExposeHeaders:    []string{requestIDHeader},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	v1 := engine.Group("/api/v1")
	v1.GET("/addresses/suggest", s.suggest)
	v1.GET("/addresses/resolve", s.resolve)
	v1.GET("/attorneys/nearby", s.nearby)

	sessions := v1.Group("/sessions")
	sessions.POST("", s.createSession)
	sessions.GET("/:id", s.getSession)
	sessions.PUT("/:id/query", s.typeQuery)
	sessions.POST("/:id/select", s.selectSuggestion)
	sessions.POST("/:id/search", s.searchSession)
	sessions.DELETE("/:id", s.deleteSession)

	v1.POST("/applications", s.submitApplication)

	admin := v1.Group("/admin/applications")
	admin.GET("", s.listApplications)
	admin.GET("/:id", s.getApplication)
	admin.POST("/:id/approve", s.approveApplication)
	admin.POST("/:id/deny", s.denyApplication)

	s.engine = engine
	return s
}

// Handler returns the root http.Handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// newResolver returns a resolver for one stateless request. Stateless
// requests never share supersession state with each other.
func (s *Server) newResolver() *resolver.Resolver {
	return resolver.New(s.provider, s.cfg.Resolver, s.log, s.metrics)
}
