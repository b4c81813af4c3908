package mocks

import (
	"bookcatalog_server/structs"
	"bookcatalog_server/structs/tables"
	"context"
	"time"

	"github.com/stretchr/testify/mock"
)

type NotificationQueue struct {
	mock.Mock
}

func (m *NotificationQueue) Enqueue(ctx context.Context, job structs.ActivationJob) error {
	return m.Called(ctx, job).Error(0)
}

type Mailer struct {
	mock.Mock
}

func (m *Mailer) SendActivationEmail(ctx context.Context, email, activationURL string) error {
	return m.Called(ctx, email, activationURL).Error(0)
}

// Cache misses on every read unless expectations are set.
type Cache struct {
	mock.Mock
}

func (m *Cache) GetTokenUser(ctx context.Context, key string) (*tables.User, error) {
	args := m.Called(ctx, key)
	return userOrNil(args.Get(0)), args.Error(1)
}

func (m *Cache) SetTokenUser(ctx context.Context, key string, user *tables.User) error {
	return m.Called(ctx, key, user).Error(0)
}

func (m *Cache) GetBookDetail(ctx context.Context, id int64) (*structs.BookDetail, error) {
	args := m.Called(ctx, id)
	d, _ := args.Get(0).(*structs.BookDetail)
	return d, args.Error(1)
}

func (m *Cache) SetBookDetail(ctx context.Context, detail *structs.BookDetail) error {
	return m.Called(ctx, detail).Error(0)
}

func (m *Cache) InvalidateBook(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type AccountService struct {
	mock.Mock
}

func (m *AccountService) Register(ctx context.Context, email, password string) (*tables.User, error) {
	args := m.Called(ctx, email, password)
	return userOrNil(args.Get(0)), args.Error(1)
}

func (m *AccountService) RegisterConfirm(ctx context.Context, email, password string) (*tables.User, error) {
	args := m.Called(ctx, email, password)
	return userOrNil(args.Get(0)), args.Error(1)
}

func (m *AccountService) Activate(ctx context.Context, code string) error {
	return m.Called(ctx, code).Error(0)
}

func (m *AccountService) Login(ctx context.Context, email, password string) (*structs.LoginResponse, error) {
	args := m.Called(ctx, email, password)
	r, _ := args.Get(0).(*structs.LoginResponse)
	return r, args.Error(1)
}

type Authenticator struct {
	mock.Mock
}

func (m *Authenticator) Authenticate(ctx context.Context, key string) (*tables.User, error) {
	args := m.Called(ctx, key)
	return userOrNil(args.Get(0)), args.Error(1)
}

type RateLimiter struct {
	mock.Mock
}

func (m *RateLimiter) IncrementRateLimit(ctx context.Context, tier, clientKey string, window time.Duration) (int64, error) {
	args := m.Called(ctx, tier, clientKey, window)
	return args.Get(0).(int64), args.Error(1)
}

type CatalogService struct {
	mock.Mock
}

func (m *CatalogService) ListBooks(ctx context.Context, opts structs.BookListOptions, viewer *tables.User) ([]structs.BookSummary, error) {
	args := m.Called(ctx, opts, viewer)
	b, _ := args.Get(0).([]structs.BookSummary)
	return b, args.Error(1)
}

func (m *CatalogService) GetBookDetail(ctx context.Context, id int64, viewer *tables.User) (*structs.BookDetail, error) {
	args := m.Called(ctx, id, viewer)
	d, _ := args.Get(0).(*structs.BookDetail)
	return d, args.Error(1)
}

func (m *CatalogService) AddReview(ctx context.Context, user *tables.User, bookID int64, rating int, text string) (*structs.ReviewView, error) {
	args := m.Called(ctx, user, bookID, rating, text)
	r, _ := args.Get(0).(*structs.ReviewView)
	return r, args.Error(1)
}

type FavoritesService struct {
	mock.Mock
}

func (m *FavoritesService) AddFavorite(ctx context.Context, user *tables.User, bookID int64) (*structs.FavoriteView, error) {
	args := m.Called(ctx, user, bookID)
	f, _ := args.Get(0).(*structs.FavoriteView)
	return f, args.Error(1)
}

func (m *FavoritesService) RemoveFavorite(ctx context.Context, user *tables.User, bookID int64) error {
	return m.Called(ctx, user, bookID).Error(0)
}

func (m *FavoritesService) ListFavorites(ctx context.Context, user *tables.User) ([]structs.FavoriteView, error) {
	args := m.Called(ctx, user)
	f, _ := args.Get(0).([]structs.FavoriteView)
	return f, args.Error(1)
}

type CatalogAdmin struct {
	mock.Mock
}

func (m *CatalogAdmin) CreateGenre(ctx context.Context, req *structs.CreateGenreRequest) (*tables.Genre, error) {
	args := m.Called(ctx, req)
	g, _ := args.Get(0).(*tables.Genre)
	return g, args.Error(1)
}

func (m *CatalogAdmin) CreateAuthor(ctx context.Context, req *structs.CreateAuthorRequest) (*tables.Author, error) {
	args := m.Called(ctx, req)
	a, _ := args.Get(0).(*tables.Author)
	return a, args.Error(1)
}

func (m *CatalogAdmin) CreateBook(ctx context.Context, req *structs.CreateBookRequest) (*structs.BookSummary, error) {
	args := m.Called(ctx, req)
	b, _ := args.Get(0).(*structs.BookSummary)
	return b, args.Error(1)
}

func (m *CatalogAdmin) DeleteBook(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}
