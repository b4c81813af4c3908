package services

import (
	"bookcatalog_server/lib"
	"bookcatalog_server/mocks"
	"bookcatalog_server/structs"
	"bookcatalog_server/structs/tables"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newCatalogAdminService(t *testing.T) (*CatalogAdminService, *mocks.BookStore, *mocks.Cache) {
	t.Helper()
	books, cache := &mocks.BookStore{}, &mocks.Cache{}
	t.Cleanup(func() {
		books.AssertExpectations(t)
		cache.AssertExpectations(t)
	})
	bookSvc := NewBookService(testLogger(), testConfig(), books, &mocks.FavoriteStore{}, cache)
	return NewCatalogAdminService(testLogger(), books, cache, bookSvc), books, cache
}

func TestCreateGenreAndAuthorTrimNames(t *testing.T) {
	svc, books, _ := newCatalogAdminService(t)
	ctx := context.Background()

	books.On("CreateGenre", ctx, &tables.Genre{Name: "Poetry"}).Return(&tables.Genre{ID: 1, Name: "Poetry"}, nil)
	books.On("CreateAuthor", ctx, &tables.Author{FullName: "Mary Oliver"}).Return(&tables.Author{ID: 2, FullName: "Mary Oliver"}, nil)

	genre, err := svc.CreateGenre(ctx, &structs.CreateGenreRequest{Name: " Poetry "})
	require.NoError(t, err)
	assert.Equal(t, int64(1), genre.ID)

	author, err := svc.CreateAuthor(ctx, &structs.CreateAuthorRequest{FullName: "Mary Oliver\n"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), author.ID)
}

func TestCreateBook(t *testing.T) {
	svc, books, _ := newCatalogAdminService(t)
	ctx := context.Background()
	row := sampleRow()

	books.On("CreateBook", ctx, mock.MatchedBy(func(b *tables.Book) bool {
		return b.Title == "Dune" && b.PublicationDate.Equal(time.Date(1965, 8, 1, 0, 0, 0, 0, time.UTC))
	})).Return(&tables.Book{ID: 3}, nil)
	books.On("Get", ctx, int64(3), int64(0)).Return(&row, nil)

	book, err := svc.CreateBook(ctx, &structs.CreateBookRequest{
		Title: "Dune", GenreID: 1, AuthorID: 2, PublicationDate: "1965-08-01",
	})
	require.NoError(t, err)
	assert.Equal(t, "http://books.test/api/books/book-detail/3/", book.URL)
	assert.Equal(t, "Frank Herbert", book.Author.FullName)
}

func TestCreateBookRejectsBadDate(t *testing.T) {
	svc, _, _ := newCatalogAdminService(t)

	_, err := svc.CreateBook(context.Background(), &structs.CreateBookRequest{Title: "X", PublicationDate: "1965-13-40"})
	assert.True(t, lib.IsValidation(err))
}

func TestCreateBookUnknownGenre(t *testing.T) {
	svc, books, _ := newCatalogAdminService(t)
	ctx := context.Background()

	books.On("CreateBook", ctx, mock.Anything).Return(nil, lib.ErrNotFound)

	_, err := svc.CreateBook(ctx, &structs.CreateBookRequest{Title: "X", GenreID: 9, AuthorID: 9, PublicationDate: "2001-01-01"})
	assert.ErrorIs(t, err, lib.ErrNotFound)
}

func TestDeleteBook(t *testing.T) {
	svc, books, cache := newCatalogAdminService(t)
	ctx := context.Background()

	books.On("DeleteBook", ctx, int64(3)).Return(nil)
	books.On("DeleteBook", ctx, int64(4)).Return(lib.ErrNotFound)
	cache.On("InvalidateBook", ctx, int64(3)).Return(nil).Once()

	assert.NoError(t, svc.DeleteBook(ctx, 3))
	assert.ErrorIs(t, svc.DeleteBook(ctx, 4), lib.ErrNotFound)
}
