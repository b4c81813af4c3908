package admin

import (
	"bookcatalog_server/api/middleware"
	"bookcatalog_server/structs"
	"bookcatalog_server/structs/tables"
	"context"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

// CatalogAdmin manages the genres, authors and books of the catalog.
type CatalogAdmin interface {
	CreateGenre(ctx context.Context, req *structs.CreateGenreRequest) (*tables.Genre, error)
	CreateAuthor(ctx context.Context, req *structs.CreateAuthorRequest) (*tables.Author, error)
	CreateBook(ctx context.Context, req *structs.CreateBookRequest) (*structs.BookSummary, error)
	DeleteBook(ctx context.Context, id int64) error
}

type AdminRoutesManager struct {
	logger       *gecho.Logger
	adminService CatalogAdmin
	mw           *middleware.Middleware
}

func NewAdminRoutesManager(logger *gecho.Logger, adminService CatalogAdmin, mw *middleware.Middleware) *AdminRoutesManager {
	return &AdminRoutesManager{
		logger:       logger,
		adminService: adminService,
		mw:           mw,
	}
}

func (ar *AdminRoutesManager) RegisterRoutes(r chi.Router) {
	r.Route("/api/admin", func(r chi.Router) {
		r.Use(ar.mw.UserAuthMiddleware)
		r.Use(ar.mw.StaffAuthMiddleware)

		r.Post("/genres", ar.CreateGenre)
		r.Post("/authors", ar.CreateAuthor)
		r.Post("/books", ar.CreateBook)
		r.Delete("/books/{id}", ar.DeleteBook)
	})
}
