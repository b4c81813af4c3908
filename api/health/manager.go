package health

import (
	"bookcatalog_server/services"
	"context"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// HealthChecker reports process and dependency health.
type HealthChecker interface {
	GetServerHealthStatus() services.ServerHealthStatus
	GetDatabaseHealthStatus(ctx context.Context) (services.DependencyHealthStatus, error)
	GetCacheHealthStatus(ctx context.Context) (services.DependencyHealthStatus, error)
}

type HealthRoutesManager struct {
	healthService HealthChecker
}

func NewHealthRoutesManager(healthService HealthChecker) *HealthRoutesManager {
	return &HealthRoutesManager{
		healthService: healthService,
	}
}

func (hrm *HealthRoutesManager) RegisterRoutes(r chi.Router) {
	r.Get("/health/server", hrm.GetServerHealth)
	r.Get("/health/database", hrm.GetDatabaseHealth)
	r.Get("/health/cache", hrm.GetCacheHealth)

	// Prometheus metrics endpoint
	RegisterMetrics()
	r.Get("/metrics", promhttp.Handler().ServeHTTP)
}
