package books

import (
	"bookcatalog_server/api/middleware"
	"bookcatalog_server/structs"
	"bookcatalog_server/structs/tables"
	"context"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type CatalogService interface {
	ListBooks(ctx context.Context, opts structs.BookListOptions, viewer *tables.User) ([]structs.BookSummary, error)
	GetBookDetail(ctx context.Context, id int64, viewer *tables.User) (*structs.BookDetail, error)
	AddReview(ctx context.Context, user *tables.User, bookID int64, rating int, text string) (*structs.ReviewView, error)
}

type FavoritesService interface {
	AddFavorite(ctx context.Context, user *tables.User, bookID int64) (*structs.FavoriteView, error)
	RemoveFavorite(ctx context.Context, user *tables.User, bookID int64) error
	ListFavorites(ctx context.Context, user *tables.User) ([]structs.FavoriteView, error)
}

type BookRoutesManager struct {
	logger          *gecho.Logger
	bookService     CatalogService
	favoriteService FavoritesService
	mw              *middleware.Middleware
}

func NewBookRoutesManager(logger *gecho.Logger, bookService CatalogService, favoriteService FavoritesService, mw *middleware.Middleware) *BookRoutesManager {
	return &BookRoutesManager{
		logger:          logger,
		bookService:     bookService,
		favoriteService: favoriteService,
		mw:              mw,
	}
}

func (brm *BookRoutesManager) RegisterRoutes(r chi.Router) {
	r.Route("/api/books", func(r chi.Router) {
		// Public routes, personalised when a token is sent
		r.Group(func(r chi.Router) {
			r.Use(brm.mw.OptionalAuthMiddleware)
			r.Get("/home", brm.HandleListBooks)
			r.Get("/book-detail/{id}", brm.HandleBookDetail)
		})

		r.Group(func(r chi.Router) {
			r.Use(brm.mw.UserAuthMiddleware)
			r.Post("/book-detail/{id}/reviews", brm.HandleAddReview)
			r.Get("/favorite", brm.HandleListFavorites)
			r.Post("/favorite", brm.HandleAddFavorite)
			r.Delete("/favorite/{id}", brm.HandleRemoveFavorite)
		})
	})
}

func viewer(ctx context.Context) *tables.User {
	user, _ := middleware.GetUserFromContext(ctx)
	return user
}
