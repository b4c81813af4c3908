// Package mocks holds testify mocks for the store and service contracts.
package mocks

import (
	"bookcatalog_server/database"
	"bookcatalog_server/structs"
	"bookcatalog_server/structs/tables"
	"context"
	"time"

	"github.com/stretchr/testify/mock"
)

func userOrNil(v any) *tables.User {
	u, _ := v.(*tables.User)
	return u
}

// Return values may be given as a function with the method's signature.
type UserStore struct {
	mock.Mock
}

func (m *UserStore) Create(ctx context.Context, user *tables.User) (*tables.User, error) {
	args := m.Called(ctx, user)
	return userOrNil(args.Get(0)), args.Error(1)
}

func (m *UserStore) CreateWithActivationCode(ctx context.Context, user *tables.User, code func(u *tables.User) string) (*tables.User, error) {
	args := m.Called(ctx, user, code)
	if fn, ok := args.Get(0).(func(context.Context, *tables.User, func(*tables.User) string) (*tables.User, error)); ok {
		return fn(ctx, user, code)
	}
	return userOrNil(args.Get(0)), args.Error(1)
}

func (m *UserStore) Activate(ctx context.Context, code string) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}

func (m *UserStore) GetByEmail(ctx context.Context, email string) (*tables.User, error) {
	args := m.Called(ctx, email)
	return userOrNil(args.Get(0)), args.Error(1)
}

func (m *UserStore) GetByID(ctx context.Context, id int64) (*tables.User, error) {
	args := m.Called(ctx, id)
	return userOrNil(args.Get(0)), args.Error(1)
}

func (m *UserStore) UpdateLastLogin(ctx context.Context, id int64, at time.Time) error {
	return m.Called(ctx, id, at).Error(0)
}

type TokenStore struct {
	mock.Mock
}

func (m *TokenStore) GetOrCreate(ctx context.Context, userID int64, newKey func() (string, error)) (*tables.AuthToken, error) {
	args := m.Called(ctx, userID, newKey)
	if fn, ok := args.Get(0).(func(context.Context, int64, func() (string, error)) (*tables.AuthToken, error)); ok {
		return fn(ctx, userID, newKey)
	}
	t, _ := args.Get(0).(*tables.AuthToken)
	return t, args.Error(1)
}

func (m *TokenStore) GetByKey(ctx context.Context, key string) (*tables.AuthToken, error) {
	args := m.Called(ctx, key)
	t, _ := args.Get(0).(*tables.AuthToken)
	return t, args.Error(1)
}

type BookStore struct {
	mock.Mock
}

func (m *BookStore) List(ctx context.Context, opts structs.BookListOptions, viewerID int64) ([]database.BookRow, error) {
	args := m.Called(ctx, opts, viewerID)
	rows, _ := args.Get(0).([]database.BookRow)
	return rows, args.Error(1)
}

func (m *BookStore) Get(ctx context.Context, id, viewerID int64) (*database.BookRow, error) {
	args := m.Called(ctx, id, viewerID)
	row, _ := args.Get(0).(*database.BookRow)
	return row, args.Error(1)
}

func (m *BookStore) Exists(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *BookStore) Reviews(ctx context.Context, bookID int64) ([]database.ReviewRow, error) {
	args := m.Called(ctx, bookID)
	rows, _ := args.Get(0).([]database.ReviewRow)
	return rows, args.Error(1)
}

func (m *BookStore) CreateReview(ctx context.Context, review *tables.Review) (*tables.Review, error) {
	args := m.Called(ctx, review)
	r, _ := args.Get(0).(*tables.Review)
	return r, args.Error(1)
}

func (m *BookStore) CreateGenre(ctx context.Context, genre *tables.Genre) (*tables.Genre, error) {
	args := m.Called(ctx, genre)
	g, _ := args.Get(0).(*tables.Genre)
	return g, args.Error(1)
}

func (m *BookStore) CreateAuthor(ctx context.Context, author *tables.Author) (*tables.Author, error) {
	args := m.Called(ctx, author)
	a, _ := args.Get(0).(*tables.Author)
	return a, args.Error(1)
}

func (m *BookStore) CreateBook(ctx context.Context, book *tables.Book) (*tables.Book, error) {
	args := m.Called(ctx, book)
	b, _ := args.Get(0).(*tables.Book)
	return b, args.Error(1)
}

func (m *BookStore) DeleteBook(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type FavoriteStore struct {
	mock.Mock
}

func (m *FavoriteStore) Add(ctx context.Context, userID, bookID int64) (*tables.Favorite, error) {
	args := m.Called(ctx, userID, bookID)
	f, _ := args.Get(0).(*tables.Favorite)
	return f, args.Error(1)
}

func (m *FavoriteStore) Remove(ctx context.Context, userID, bookID int64) error {
	return m.Called(ctx, userID, bookID).Error(0)
}

func (m *FavoriteStore) List(ctx context.Context, userID int64) ([]database.FavoriteRow, error) {
	args := m.Called(ctx, userID)
	rows, _ := args.Get(0).([]database.FavoriteRow)
	return rows, args.Error(1)
}

func (m *FavoriteStore) IsFavorite(ctx context.Context, userID, bookID int64) (bool, error) {
	args := m.Called(ctx, userID, bookID)
	return args.Bool(0), args.Error(1)
}
