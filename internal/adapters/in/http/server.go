// Package http exposes the operational endpoints of the order service: liveness
// with a storage check, and Prometheus metrics.
package http

import (
	"context"
	"net/http"
	"time"

	"orders/internal/pkg/metrics"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
)

const healthCheckTimeout = 2 * time.Second

// Pinger reports whether a dependency is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// Server serves /health and /metrics.
type Server struct {
	db       Pinger
	gatherer prometheus.Gatherer
}

// NewServer creates the operational server. db may be nil, in which case /health
// reports the process only.
func NewServer(db Pinger, gatherer prometheus.Gatherer) *Server {
	return &Server{db: db, gatherer: gatherer}
}

// Register mounts the routes on e.
func (s *Server) Register(e *echo.Echo) {
	e.GET("/health", s.GetHealth)
	e.GET("/metrics", echo.WrapHandler(metrics.Handler(s.gatherer)))
}

// GetHealth handles GET /health. It answers 503 when the database does not respond.
func (s *Server) GetHealth(ctx echo.Context) error {
	if s.db != nil {
		pingCtx, cancel := context.WithTimeout(ctx.Request().Context(), healthCheckTimeout)
		defer cancel()

		if err := s.db.PingContext(pingCtx); err != nil {
			return ctx.JSON(http.StatusServiceUnavailable, HealthResponse{
				Status:  "unavailable",
				Message: "database is unreachable",
			})
		}
	}

	return ctx.JSON(http.StatusOK, HealthResponse{Status: "healthy"})
}
