package structs

import "time"

const DateLayout = "2006-01-02"

type GenreRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type AuthorRef struct {
	ID       int64  `json:"id"`
	FullName string `json:"full_name"`
}

// BookSummary is the projection returned by the catalog listing.
type BookSummary struct {
	ID              int64     `json:"id"`
	URL             string    `json:"url"`
	Title           string    `json:"title"`
	Genre           GenreRef  `json:"genre"`
	Author          AuthorRef `json:"author"`
	PublicationDate string    `json:"publication_date"`
	Description     string    `json:"description"`
	AverageRating   *float64  `json:"average_rating"`
	IsFavorite      *bool     `json:"is_favorite,omitempty"`
}

type BookDetail struct {
	BookSummary
	Reviews []ReviewView `json:"reviews"`
}

type ReviewView struct {
	ID     int64  `json:"id"`
	User   string `json:"user"`
	Rating int    `json:"rating"`
	Text   string `json:"text"`
}

type FavoriteBook struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type FavoriteView struct {
	ID   int64        `json:"id"`
	Book FavoriteBook `json:"book"`
}

// BookListOptions holds the optional catalog filters. A zero Start/End means unbounded.
type BookListOptions struct {
	GenreIDs  []int64
	AuthorIDs []int64
	StartDate time.Time
	EndDate   time.Time
}

// HasDateRange reports whether both date bounds are set.
func (o BookListOptions) HasDateRange() bool {
	return !o.StartDate.IsZero() && !o.EndDate.IsZero()
}

type FavoriteRequest struct {
	BookID int64 `json:"book_id" validate:"required,gt=0"`
}

type ReviewRequest struct {
	Rating int    `json:"rating" validate:"required,min=1,max=5"`
	Text   string `json:"text" validate:"max=5000"`
}

type CreateGenreRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

type CreateAuthorRequest struct {
	FullName string `json:"full_name" validate:"required,max=255"`
}

type CreateBookRequest struct {
	Title           string `json:"title" validate:"required,max=255"`
	GenreID         int64  `json:"genre_id" validate:"required,gt=0"`
	AuthorID        int64  `json:"author_id" validate:"required,gt=0"`
	PublicationDate string `json:"publication_date" validate:"required,datetime=2006-01-02"`
	Description     string `json:"description"`
}
