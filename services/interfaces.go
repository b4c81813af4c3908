package services

import (
	"bookcatalog_server/database"
	"bookcatalog_server/structs"
	"bookcatalog_server/structs/tables"
	"context"
	"time"
)

// Store contracts implemented by the database package.

type UserStore interface {
	Create(ctx context.Context, user *tables.User) (*tables.User, error)
	CreateWithActivationCode(ctx context.Context, user *tables.User, code func(u *tables.User) string) (*tables.User, error)
	Activate(ctx context.Context, code string) (bool, error)
	GetByEmail(ctx context.Context, email string) (*tables.User, error)
	GetByID(ctx context.Context, id int64) (*tables.User, error)
	UpdateLastLogin(ctx context.Context, id int64, at time.Time) error
}

type TokenStore interface {
	GetOrCreate(ctx context.Context, userID int64, newKey func() (string, error)) (*tables.AuthToken, error)
	GetByKey(ctx context.Context, key string) (*tables.AuthToken, error)
}

type BookStore interface {
	List(ctx context.Context, opts structs.BookListOptions, viewerID int64) ([]database.BookRow, error)
	Get(ctx context.Context, id, viewerID int64) (*database.BookRow, error)
	Exists(ctx context.Context, id int64) (bool, error)
	Reviews(ctx context.Context, bookID int64) ([]database.ReviewRow, error)
	CreateReview(ctx context.Context, review *tables.Review) (*tables.Review, error)
	CreateGenre(ctx context.Context, genre *tables.Genre) (*tables.Genre, error)
	CreateAuthor(ctx context.Context, author *tables.Author) (*tables.Author, error)
	CreateBook(ctx context.Context, book *tables.Book) (*tables.Book, error)
	DeleteBook(ctx context.Context, id int64) error
}

type FavoriteStore interface {
	Add(ctx context.Context, userID, bookID int64) (*tables.Favorite, error)
	Remove(ctx context.Context, userID, bookID int64) error
	List(ctx context.Context, userID int64) ([]database.FavoriteRow, error)
	IsFavorite(ctx context.Context, userID, bookID int64) (bool, error)
}

// NotificationQueue accepts activation jobs for asynchronous delivery.
type NotificationQueue interface {
	Enqueue(ctx context.Context, job structs.ActivationJob) error
}

type Mailer interface {
	SendActivationEmail(ctx context.Context, email, activationURL string) error
}

// Cache is the subset of CacheService the domain services rely on.
type Cache interface {
	GetTokenUser(ctx context.Context, key string) (*tables.User, error)
	SetTokenUser(ctx context.Context, key string, user *tables.User) error
	GetBookDetail(ctx context.Context, id int64) (*structs.BookDetail, error)
	SetBookDetail(ctx context.Context, detail *structs.BookDetail) error
	InvalidateBook(ctx context.Context, id int64) error
}
