package services

import (
	"bookcatalog_server/database"
	"bookcatalog_server/lib"
	"bookcatalog_server/structs"
	"bookcatalog_server/structs/tables"
	"context"
	"strings"

	"github.com/MonkyMars/gecho"
)

const (
	minRating = 1
	maxRating = 5
)

type BookService struct {
	logger    *gecho.Logger
	cfg       *structs.Config
	books     BookStore
	favorites FavoriteStore
	cache     Cache
}

func NewBookService(logger *gecho.Logger, cfg *structs.Config, books BookStore, favorites FavoriteStore, cache Cache) *BookService {
	return &BookService{
		logger:    logger,
		cfg:       cfg,
		books:     books,
		favorites: favorites,
		cache:     cache,
	}
}

func viewerID(viewer *tables.User) int64 {
	if viewer == nil {
		return 0
	}
	return viewer.ID
}

func (bs *BookService) toSummary(row database.BookRow) structs.BookSummary {
	return structs.BookSummary{
		ID:              row.ID,
		URL:             lib.BookDetailURL(bs.cfg.Server.PublicURL, row.ID),
		Title:           row.Title,
		Genre:           structs.GenreRef{ID: row.GenreID, Name: row.GenreName},
		Author:          structs.AuthorRef{ID: row.AuthorID, FullName: row.AuthorFullName},
		PublicationDate: row.PublicationDate.Format(structs.DateLayout),
		Description:     row.Description,
		AverageRating:   row.AverageRating,
		IsFavorite:      row.IsFavorite,
	}
}

// ListBooks returns the filtered catalog. is_favorite is only filled in for a non-nil viewer.
func (bs *BookService) ListBooks(ctx context.Context, opts structs.BookListOptions, viewer *tables.User) ([]structs.BookSummary, error) {
	if opts.StartDate.IsZero() != opts.EndDate.IsZero() {
		return nil, lib.NewValidationError("date", "start_date and end_date must be provided together")
	}
	if opts.HasDateRange() && opts.EndDate.Before(opts.StartDate) {
		return nil, lib.NewValidationError("end_date", "must not be before start_date")
	}

	rows, err := bs.books.List(ctx, opts, viewerID(viewer))
	if err != nil {
		bs.logger.Error("Failed to list books", gecho.Field("error", err))
		return nil, err
	}

	out := make([]structs.BookSummary, 0, len(rows))
	for _, row := range rows {
		out = append(out, bs.toSummary(row))
	}
	return out, nil
}

// GetBookDetail returns the book with its reviews. The viewer-independent part is cached.
func (bs *BookService) GetBookDetail(ctx context.Context, id int64, viewer *tables.User) (*structs.BookDetail, error) {
	detail, err := bs.cache.GetBookDetail(ctx, id)
	if err != nil {
		bs.logger.Warn("Failed to read book detail from cache", gecho.Field("error", err), gecho.Field("book_id", id))
		detail = nil
	}

	if detail == nil {
		detail, err = bs.loadBookDetail(ctx, id)
		if err != nil {
			return nil, err
		}
		if err := bs.cache.SetBookDetail(ctx, detail); err != nil {
			bs.logger.Warn("Failed to cache book detail", gecho.Field("error", err), gecho.Field("book_id", id))
		}
	}

	if viewer != nil {
		fav, err := bs.favorites.IsFavorite(ctx, viewer.ID, id)
		if err != nil {
			bs.logger.Error("Failed to resolve favorite flag", gecho.Field("error", err), gecho.Field("book_id", id))
			return nil, err
		}
		detail.IsFavorite = &fav
	}
	return detail, nil
}

func (bs *BookService) loadBookDetail(ctx context.Context, id int64) (*structs.BookDetail, error) {
	row, err := bs.books.Get(ctx, id, 0)
	if err != nil {
		if !lib.IsNotFound(err) {
			bs.logger.Error("Failed to load book", gecho.Field("error", err), gecho.Field("book_id", id))
		}
		return nil, err
	}

	reviews, err := bs.books.Reviews(ctx, id)
	if err != nil {
		bs.logger.Error("Failed to load reviews", gecho.Field("error", err), gecho.Field("book_id", id))
		return nil, err
	}

	detail := &structs.BookDetail{
		BookSummary: bs.toSummary(*row),
		Reviews:     make([]structs.ReviewView, 0, len(reviews)),
	}
	detail.IsFavorite = nil
	for _, r := range reviews {
		detail.Reviews = append(detail.Reviews, structs.ReviewView{
			ID:     r.ID,
			User:   r.UserEmail,
			Rating: r.Rating,
			Text:   r.Text,
		})
	}
	return detail, nil
}

// AddReview records the user's single review of a book.
func (bs *BookService) AddReview(ctx context.Context, user *tables.User, bookID int64, rating int, text string) (*structs.ReviewView, error) {
	if rating < minRating || rating > maxRating {
		return nil, lib.NewValidationError("rating", "must be between 1 and 5")
	}

	exists, err := bs.books.Exists(ctx, bookID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, lib.ErrNotFound
	}

	review, err := bs.books.CreateReview(ctx, &tables.Review{
		BookID: bookID,
		UserID: user.ID,
		Rating: rating,
		Text:   strings.TrimSpace(text),
	})
	if err != nil {
		if lib.IsUniqueViolation(err) {
			return nil, lib.ErrConflict
		}
		bs.logger.Error("Failed to create review", gecho.Field("error", err), gecho.Field("book_id", bookID))
		return nil, err
	}

	if err := bs.cache.InvalidateBook(ctx, bookID); err != nil {
		bs.logger.Warn("Failed to invalidate book detail cache", gecho.Field("error", err), gecho.Field("book_id", bookID))
	}

	return &structs.ReviewView{
		ID:     review.ID,
		User:   user.Email,
		Rating: review.Rating,
		Text:   review.Text,
	}, nil
}
