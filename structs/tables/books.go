package tables

import (
	"time"

	"github.com/uptrace/bun"
)

type Genre struct {
	bun.BaseModel `bun:"table:genres,alias:g"`
	ID            int64  `bun:"id,pk,autoincrement" json:"id"`
	Name          string `bun:"name,type:varchar(100),notnull" json:"name"`
}

type Author struct {
	bun.BaseModel `bun:"table:authors,alias:a"`
	ID            int64  `bun:"id,pk,autoincrement" json:"id"`
	FullName      string `bun:"full_name,type:varchar(255),notnull" json:"full_name"`
}

type Book struct {
	bun.BaseModel   `bun:"table:books,alias:b"`
	ID              int64     `bun:"id,pk,autoincrement" json:"id"`
	Title           string    `bun:"title,type:varchar(255),notnull" json:"title"`
	GenreID         int64     `bun:"genre_id,notnull" json:"genre_id"`
	Genre           *Genre    `bun:"rel:belongs-to,join:genre_id=id" json:"genre,omitempty"`
	AuthorID        int64     `bun:"author_id,notnull" json:"author_id"`
	Author          *Author   `bun:"rel:belongs-to,join:author_id=id" json:"author,omitempty"`
	PublicationDate time.Time `bun:"publication_date,type:date,notnull" json:"publication_date"`
	Description     string    `bun:"description,type:text,notnull,default:''" json:"description"`
}

type Review struct {
	bun.BaseModel `bun:"table:reviews,alias:r"`
	ID            int64  `bun:"id,pk,autoincrement" json:"id"`
	BookID        int64  `bun:"book_id,notnull,unique:reviews_book_user_key" json:"book_id"`
	UserID        int64  `bun:"user_id,notnull,unique:reviews_book_user_key" json:"user_id"`
	User          *User  `bun:"rel:belongs-to,join:user_id=id" json:"-"`
	Rating        int    `bun:"rating,type:smallint,notnull" json:"rating"`
	Text          string `bun:"text,type:text,notnull,default:''" json:"text"`
}

type Favorite struct {
	bun.BaseModel `bun:"table:favorites,alias:f"`
	ID            int64 `bun:"id,pk,autoincrement" json:"id"`
	UserID        int64 `bun:"user_id,notnull,unique:favorites_user_book_key" json:"user_id"`
	BookID        int64 `bun:"book_id,notnull,unique:favorites_user_book_key" json:"book_id"`
	Book          *Book `bun:"rel:belongs-to,join:book_id=id" json:"-"`
}
