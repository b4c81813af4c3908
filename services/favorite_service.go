package services

import (
	"bookcatalog_server/lib"
	"bookcatalog_server/structs"
	"bookcatalog_server/structs/tables"
	"context"

	"github.com/MonkyMars/gecho"
)

type FavoriteService struct {
	logger    *gecho.Logger
	books     BookStore
	favorites FavoriteStore
}

func NewFavoriteService(logger *gecho.Logger, books BookStore, favorites FavoriteStore) *FavoriteService {
	return &FavoriteService{logger: logger, books: books, favorites: favorites}
}

// AddFavorite marks a book as favorite for the user. A repeat yields lib.ErrConflict.
func (fs *FavoriteService) AddFavorite(ctx context.Context, user *tables.User, bookID int64) (*structs.FavoriteView, error) {
	if bookID <= 0 {
		return nil, lib.NewValidationError("book_id", "is required")
	}

	book, err := fs.books.Get(ctx, bookID, 0)
	if err != nil {
		return nil, err
	}

	fav, err := fs.favorites.Add(ctx, user.ID, bookID)
	if err != nil {
		if !lib.IsUniqueViolation(err) && !lib.IsNotFound(err) {
			fs.logger.Error("Failed to add favorite", gecho.Field("error", err), gecho.Field("book_id", bookID))
		}
		return nil, err
	}

	return &structs.FavoriteView{
		ID:   fav.ID,
		Book: structs.FavoriteBook{ID: book.ID, Name: book.Title},
	}, nil
}

func (fs *FavoriteService) RemoveFavorite(ctx context.Context, user *tables.User, bookID int64) error {
	if err := fs.favorites.Remove(ctx, user.ID, bookID); err != nil {
		if !lib.IsNotFound(err) {
			fs.logger.Error("Failed to remove favorite", gecho.Field("error", err), gecho.Field("book_id", bookID))
		}
		return err
	}
	return nil
}

func (fs *FavoriteService) ListFavorites(ctx context.Context, user *tables.User) ([]structs.FavoriteView, error) {
	rows, err := fs.favorites.List(ctx, user.ID)
	if err != nil {
		fs.logger.Error("Failed to list favorites", gecho.Field("error", err))
		return nil, err
	}
	out := make([]structs.FavoriteView, 0, len(rows))
	for _, r := range rows {
		out = append(out, structs.FavoriteView{
			ID:   r.ID,
			Book: structs.FavoriteBook{ID: r.BookID, Name: r.BookTitle},
		})
	}
	return out, nil
}
