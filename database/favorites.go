package database

import (
	"bookcatalog_server/lib"
	"bookcatalog_server/structs/tables"
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

type FavoriteRow struct {
	ID        int64  `bun:"id"`
	BookID    int64  `bun:"book_id"`
	BookTitle string `bun:"book_title"`
}

type FavoriteStore struct {
	db bun.IDB
}

func NewFavoriteStore(db bun.IDB) *FavoriteStore {
	return &FavoriteStore{db: db}
}

// Add favorites the book for the user. It returns lib.ErrConflict when the
// pair already exists and lib.ErrNotFound when the book does not.
func (s *FavoriteStore) Add(ctx context.Context, userID, bookID int64) (*tables.Favorite, error) {
	fav := &tables.Favorite{UserID: userID, BookID: bookID}
	inserted, err := Query[tables.Favorite](s.db).InsertIgnore(ctx, fav, "user_id, book_id")
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	if !inserted {
		return nil, lib.ErrConflict
	}
	return fav, nil
}

// Remove deletes the user's favorite for the book, lib.ErrNotFound if there is none.
func (s *FavoriteStore) Remove(ctx context.Context, userID, bookID int64) error {
	n, err := Query[tables.Favorite](s.db).
		Where("user_id", userID).
		Where("book_id", bookID).
		Delete(ctx)
	if err != nil {
		return lib.MapPgError(err)
	}
	if n == 0 {
		return lib.ErrNotFound
	}
	return nil
}

// List returns the user's favorites with the book title, ordered by id.
func (s *FavoriteStore) List(ctx context.Context, userID int64) ([]FavoriteRow, error) {
	var rows []FavoriteRow
	err := retryOn(ctx, s.db, func() error {
		rows = nil
		return s.db.NewSelect().
			TableExpr("favorites AS f").
			ColumnExpr("f.id, f.book_id, b.title AS book_title").
			Join("JOIN books AS b ON b.id = f.book_id").
			Where("f.user_id = ?", userID).
			OrderExpr("f.id ASC").
			Scan(ctx, &rows)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", lib.MapPgError(err))
	}
	return rows, nil
}

func (s *FavoriteStore) IsFavorite(ctx context.Context, userID, bookID int64) (bool, error) {
	ok, err := Query[tables.Favorite](s.db).
		Where("user_id", userID).
		Where("book_id", bookID).
		Exists(ctx)
	if err != nil {
		return false, lib.MapPgError(err)
	}
	return ok, nil
}
