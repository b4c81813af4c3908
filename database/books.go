package database

import (
	"bookcatalog_server/lib"
	"bookcatalog_server/structs"
	"bookcatalog_server/structs/tables"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"
)

// BookRow is a book joined with its genre, author and aggregated rating.
type BookRow struct {
	ID              int64     `bun:"id"`
	Title           string    `bun:"title"`
	GenreID         int64     `bun:"genre_id"`
	GenreName       string    `bun:"genre_name"`
	AuthorID        int64     `bun:"author_id"`
	AuthorFullName  string    `bun:"author_full_name"`
	PublicationDate time.Time `bun:"publication_date"`
	Description     string    `bun:"description"`
	AverageRating   *float64  `bun:"average_rating"`
	IsFavorite      *bool     `bun:"is_favorite"` // only selected for authenticated viewers
}

type ReviewRow struct {
	ID        int64  `bun:"id"`
	UserEmail string `bun:"user_email"`
	Rating    int    `bun:"rating"`
	Text      string `bun:"text"`
}

type BookStore struct {
	db bun.IDB
}

func NewBookStore(db bun.IDB) *BookStore {
	return &BookStore{db: db}
}

// selectBooks builds the shared projection. viewerID 0 means anonymous.
func (s *BookStore) selectBooks(viewerID int64) *bun.SelectQuery {
	query := s.db.NewSelect().
		TableExpr("books AS b").
		ColumnExpr("b.id, b.title, b.publication_date, b.description").
		ColumnExpr("g.id AS genre_id, g.name AS genre_name").
		ColumnExpr("a.id AS author_id, a.full_name AS author_full_name").
		ColumnExpr("ROUND(AVG(r.rating), 1)::float8 AS average_rating").
		Join("JOIN genres AS g ON g.id = b.genre_id").
		Join("JOIN authors AS a ON a.id = b.author_id").
		Join("LEFT JOIN reviews AS r ON r.book_id = b.id").
		GroupExpr("b.id, g.id, a.id")

	if viewerID > 0 {
		query = query.ColumnExpr(
			"EXISTS (SELECT 1 FROM favorites AS f WHERE f.book_id = b.id AND f.user_id = ?) AS is_favorite",
			viewerID,
		)
	}
	return query
}

// List returns the books matching opts ordered by id.
func (s *BookStore) List(ctx context.Context, opts structs.BookListOptions, viewerID int64) ([]BookRow, error) {
	query := s.selectBooks(viewerID)

	if len(opts.GenreIDs) > 0 {
		query = query.Where("b.genre_id IN (?)", bun.In(opts.GenreIDs))
	}
	if len(opts.AuthorIDs) > 0 {
		query = query.Where("b.author_id IN (?)", bun.In(opts.AuthorIDs))
	}
	if opts.HasDateRange() {
		query = query.Where("b.publication_date BETWEEN ?::date AND ?::date",
			opts.StartDate.Format(structs.DateLayout),
			opts.EndDate.Format(structs.DateLayout),
		)
	}

	var rows []BookRow
	err := retryOn(ctx, s.db, func() error {
		rows = nil
		return query.OrderExpr("b.id ASC").Scan(ctx, &rows)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list books: %w", lib.MapPgError(err))
	}
	return rows, nil
}

// Get returns lib.ErrNotFound for unknown ids.
func (s *BookStore) Get(ctx context.Context, id, viewerID int64) (*BookRow, error) {
	var row BookRow
	err := retryOn(ctx, s.db, func() error {
		return s.selectBooks(viewerID).Where("b.id = ?", id).Limit(1).Scan(ctx, &row)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return nil, lib.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get book %d: %w", id, lib.MapPgError(err))
	}
	return &row, nil
}

func (s *BookStore) Exists(ctx context.Context, id int64) (bool, error) {
	ok, err := ExistsByID[tables.Book](ctx, s.db, id)
	if err != nil {
		return false, lib.MapPgError(err)
	}
	return ok, nil
}

// Reviews returns the book's reviews with the reviewer's email, ordered by id.
func (s *BookStore) Reviews(ctx context.Context, bookID int64) ([]ReviewRow, error) {
	var rows []ReviewRow
	err := retryOn(ctx, s.db, func() error {
		rows = nil
		return s.db.NewSelect().
			TableExpr("reviews AS r").
			ColumnExpr("r.id, u.email AS user_email, r.rating, r.text").
			Join("JOIN users AS u ON u.id = r.user_id").
			Where("r.book_id = ?", bookID).
			OrderExpr("r.id ASC").
			Scan(ctx, &rows)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews for book %d: %w", bookID, lib.MapPgError(err))
	}
	return rows, nil
}

// CreateReview inserts a review. A second review by the same user yields lib.ErrConflict.
func (s *BookStore) CreateReview(ctx context.Context, review *tables.Review) (*tables.Review, error) {
	created, err := Query[tables.Review](s.db).Insert(ctx, review)
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	return created, nil
}

func (s *BookStore) CreateGenre(ctx context.Context, genre *tables.Genre) (*tables.Genre, error) {
	created, err := Create(ctx, s.db, genre)
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	return created, nil
}

func (s *BookStore) CreateAuthor(ctx context.Context, author *tables.Author) (*tables.Author, error) {
	created, err := Create(ctx, s.db, author)
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	return created, nil
}

// CreateBook inserts a book. An unknown genre or author yields lib.ErrNotFound.
func (s *BookStore) CreateBook(ctx context.Context, book *tables.Book) (*tables.Book, error) {
	created, err := Create(ctx, s.db, book)
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	return created, nil
}

// DeleteBook removes the book; reviews and favorites go with it.
func (s *BookStore) DeleteBook(ctx context.Context, id int64) error {
	n, err := DeleteByID[tables.Book](ctx, s.db, id)
	if err != nil {
		return lib.MapPgError(err)
	}
	if n == 0 {
		return lib.ErrNotFound
	}
	return nil
}
