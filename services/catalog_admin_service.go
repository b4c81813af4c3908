package services

import (
	"bookcatalog_server/lib"
	"bookcatalog_server/structs"
	"bookcatalog_server/structs/tables"
	"context"
	"strings"
	"time"

	"github.com/MonkyMars/gecho"
)

// CatalogAdminService holds the staff-only catalog write operations.
type CatalogAdminService struct {
	logger *gecho.Logger
	books  BookStore
	cache  Cache
	bookSv *BookService
}

func NewCatalogAdminService(logger *gecho.Logger, books BookStore, cache Cache, bookService *BookService) *CatalogAdminService {
	return &CatalogAdminService{logger: logger, books: books, cache: cache, bookSv: bookService}
}

func (cs *CatalogAdminService) CreateGenre(ctx context.Context, req *structs.CreateGenreRequest) (*tables.Genre, error) {
	genre, err := cs.books.CreateGenre(ctx, &tables.Genre{Name: strings.TrimSpace(req.Name)})
	if err != nil {
		cs.logger.Error("Failed to create genre", gecho.Field("error", err))
		return nil, err
	}
	cs.logger.Info("Genre created", gecho.Field("genre_id", genre.ID))
	return genre, nil
}

func (cs *CatalogAdminService) CreateAuthor(ctx context.Context, req *structs.CreateAuthorRequest) (*tables.Author, error) {
	author, err := cs.books.CreateAuthor(ctx, &tables.Author{FullName: strings.TrimSpace(req.FullName)})
	if err != nil {
		cs.logger.Error("Failed to create author", gecho.Field("error", err))
		return nil, err
	}
	cs.logger.Info("Author created", gecho.Field("author_id", author.ID))
	return author, nil
}

// CreateBook inserts a book and returns its catalog projection.
// An unknown genre or author yields lib.ErrNotFound.
func (cs *CatalogAdminService) CreateBook(ctx context.Context, req *structs.CreateBookRequest) (*structs.BookSummary, error) {
	published, err := time.Parse(structs.DateLayout, req.PublicationDate)
	if err != nil {
		return nil, lib.NewValidationError("publication_date", "must be a date in YYYY-MM-DD format")
	}

	book, err := cs.books.CreateBook(ctx, &tables.Book{
		Title:           strings.TrimSpace(req.Title),
		GenreID:         req.GenreID,
		AuthorID:        req.AuthorID,
		PublicationDate: published,
		Description:     req.Description,
	})
	if err != nil {
		if !lib.IsNotFound(err) {
			cs.logger.Error("Failed to create book", gecho.Field("error", err))
		}
		return nil, err
	}

	row, err := cs.books.Get(ctx, book.ID, 0)
	if err != nil {
		return nil, err
	}
	summary := cs.bookSv.toSummary(*row)
	cs.logger.Info("Book created", gecho.Field("book_id", book.ID))
	return &summary, nil
}

// DeleteBook removes a book with its reviews and favorites.
func (cs *CatalogAdminService) DeleteBook(ctx context.Context, id int64) error {
	if err := cs.books.DeleteBook(ctx, id); err != nil {
		if !lib.IsNotFound(err) {
			cs.logger.Error("Failed to delete book", gecho.Field("error", err), gecho.Field("book_id", id))
		}
		return err
	}
	if err := cs.cache.InvalidateBook(ctx, id); err != nil {
		cs.logger.Warn("Failed to invalidate book detail cache", gecho.Field("error", err), gecho.Field("book_id", id))
	}
	cs.logger.Info("Book deleted", gecho.Field("book_id", id))
	return nil
}
