package api

import (
	"bookcatalog_server/api/accounts"
	"bookcatalog_server/api/admin"
	"bookcatalog_server/api/books"
	"bookcatalog_server/api/debug"
	"bookcatalog_server/api/health"
	"bookcatalog_server/api/middleware"
	"bookcatalog_server/config"
	"bookcatalog_server/services"
	"bookcatalog_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type routerManager struct {
	accountRoutes *accounts.AccountRoutesManager
	bookRoutes    *books.BookRoutesManager
	adminRoutes   *admin.AdminRoutesManager
	healthRoutes  *health.HealthRoutesManager
	debugRoutes   *debug.DebugRoutesManager
}

func NewRouterManager(logger *gecho.Logger, cfg *structs.Config, sm *services.ServiceManager, mw *middleware.Middleware) *routerManager {
	return &routerManager{
		accountRoutes: accounts.NewAccountRoutesManager(logger, sm.AuthService, cfg),
		bookRoutes:    books.NewBookRoutesManager(logger, sm.BookService, sm.FavoriteService, mw),
		adminRoutes:   admin.NewAdminRoutesManager(logger, sm.CatalogAdminService, mw),
		healthRoutes:  health.NewHealthRoutesManager(sm.HealthService),
		debugRoutes:   debug.NewDebugRoutesManager(logger, sm.CacheService, !config.IsProduction()),
	}
}

func (rm *routerManager) RegisterRoutes(r chi.Router) {
	rm.accountRoutes.RegisterRoutes(r)
	rm.bookRoutes.RegisterRoutes(r)
	rm.adminRoutes.RegisterRoutes(r)
	rm.healthRoutes.RegisterRoutes(r)
	rm.debugRoutes.RegisterRoutes(r)
}
