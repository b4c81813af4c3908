package debug

import (
	"context"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type CacheClearer interface {
	ClearBookCaches(ctx context.Context) (int, error)
}

type DebugRoutesManager struct {
	logger       *gecho.Logger
	cacheService CacheClearer
	enabled      bool
}

func NewDebugRoutesManager(logger *gecho.Logger, cacheService CacheClearer, enabled bool) *DebugRoutesManager {
	return &DebugRoutesManager{
		logger:       logger,
		cacheService: cacheService,
		enabled:      enabled,
	}
}

func (drm *DebugRoutesManager) RegisterRoutes(r chi.Router) {
	// Debug routes - only in non-production environments
	if !drm.enabled {
		return
	}
	r.Route("/debug", func(r chi.Router) {
		r.Post("/cache/clear", drm.ClearCache)
	})
}
