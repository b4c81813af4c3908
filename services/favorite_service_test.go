package services

import (
	"bookcatalog_server/database"
	"bookcatalog_server/lib"
	"bookcatalog_server/mocks"
	"bookcatalog_server/structs"
	"bookcatalog_server/structs/tables"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFavoriteService(t *testing.T) (*FavoriteService, *mocks.BookStore, *mocks.FavoriteStore) {
	t.Helper()
	books, favorites := &mocks.BookStore{}, &mocks.FavoriteStore{}
	t.Cleanup(func() {
		books.AssertExpectations(t)
		favorites.AssertExpectations(t)
	})
	return NewFavoriteService(testLogger(), books, favorites), books, favorites
}

func TestAddFavorite(t *testing.T) {
	ctx := context.Background()
	user := &tables.User{ID: 2}

	t.Run("missing book id", func(t *testing.T) {
		svc, _, _ := newFavoriteService(t)
		_, err := svc.AddFavorite(ctx, user, 0)
		assert.True(t, lib.IsValidation(err))
	})

	t.Run("unknown book", func(t *testing.T) {
		svc, books, _ := newFavoriteService(t)
		books.On("Get", ctx, int64(5), int64(0)).Return(nil, lib.ErrNotFound)
		_, err := svc.AddFavorite(ctx, user, 5)
		assert.ErrorIs(t, err, lib.ErrNotFound)
	})

	t.Run("already favorite", func(t *testing.T) {
		svc, books, favorites := newFavoriteService(t)
		books.On("Get", ctx, int64(5), int64(0)).Return(&database.BookRow{ID: 5, Title: "Emma"}, nil)
		favorites.On("Add", ctx, int64(2), int64(5)).Return(nil, lib.ErrConflict)
		_, err := svc.AddFavorite(ctx, user, 5)
		assert.ErrorIs(t, err, lib.ErrConflict)
	})

	t.Run("added", func(t *testing.T) {
		svc, books, favorites := newFavoriteService(t)
		books.On("Get", ctx, int64(5), int64(0)).Return(&database.BookRow{ID: 5, Title: "Emma"}, nil)
		favorites.On("Add", ctx, int64(2), int64(5)).Return(&tables.Favorite{ID: 12, UserID: 2, BookID: 5}, nil)

		fav, err := svc.AddFavorite(ctx, user, 5)
		require.NoError(t, err)
		assert.Equal(t, &structs.FavoriteView{ID: 12, Book: structs.FavoriteBook{ID: 5, Name: "Emma"}}, fav)
	})
}

func TestRemoveFavorite(t *testing.T) {
	svc, _, favorites := newFavoriteService(t)
	ctx := context.Background()
	user := &tables.User{ID: 2}

	favorites.On("Remove", ctx, int64(2), int64(5)).Return(nil).Once()
	favorites.On("Remove", ctx, int64(2), int64(6)).Return(lib.ErrNotFound).Once()

	assert.NoError(t, svc.RemoveFavorite(ctx, user, 5))
	assert.ErrorIs(t, svc.RemoveFavorite(ctx, user, 6), lib.ErrNotFound)
}

func TestListFavorites(t *testing.T) {
	svc, _, favorites := newFavoriteService(t)
	ctx := context.Background()

	favorites.On("List", ctx, int64(2)).Return([]database.FavoriteRow{
		{ID: 1, BookID: 5, BookTitle: "Emma"},
		{ID: 2, BookID: 6, BookTitle: "Persuasion"},
	}, nil)

	favs, err := svc.ListFavorites(ctx, &tables.User{ID: 2})
	require.NoError(t, err)
	assert.Equal(t, []structs.FavoriteView{
		{ID: 1, Book: structs.FavoriteBook{ID: 5, Name: "Emma"}},
		{ID: 2, Book: structs.FavoriteBook{ID: 6, Name: "Persuasion"}},
	}, favs)
}

func TestListFavoritesEmptyIsNotNil(t *testing.T) {
	svc, _, favorites := newFavoriteService(t)
	ctx := context.Background()

	favorites.On("List", ctx, int64(2)).Return(nil, nil)

	favs, err := svc.ListFavorites(ctx, &tables.User{ID: 2})
	require.NoError(t, err)
	assert.NotNil(t, favs)
	assert.Empty(t, favs)
}
