package database

import (
	"bookcatalog_server/structs/tables"
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

type tableSpec struct {
	model       any
	foreignKeys []string
}

// schema lists tables in dependency order.
var schema = []tableSpec{
	{model: (*tables.User)(nil)},
	{model: (*tables.AuthToken)(nil), foreignKeys: []string{
		`("user_id") REFERENCES "users" ("id") ON DELETE CASCADE`,
	}},
	{model: (*tables.Genre)(nil)},
	{model: (*tables.Author)(nil)},
	{model: (*tables.Book)(nil), foreignKeys: []string{
		`("genre_id") REFERENCES "genres" ("id") ON DELETE CASCADE`,
		`("author_id") REFERENCES "authors" ("id") ON DELETE CASCADE`,
	}},
	{model: (*tables.Review)(nil), foreignKeys: []string{
		`("book_id") REFERENCES "books" ("id") ON DELETE CASCADE`,
		`("user_id") REFERENCES "users" ("id") ON DELETE CASCADE`,
	}},
	{model: (*tables.Favorite)(nil), foreignKeys: []string{
		`("user_id") REFERENCES "users" ("id") ON DELETE CASCADE`,
		`("book_id") REFERENCES "books" ("id") ON DELETE CASCADE`,
	}},
}

var postCreate = []string{
	`ALTER TABLE reviews DROP CONSTRAINT IF EXISTS reviews_rating_check`,
	`ALTER TABLE reviews ADD CONSTRAINT reviews_rating_check CHECK (rating BETWEEN 1 AND 5)`,
	`CREATE INDEX IF NOT EXISTS books_publication_date_idx ON books (publication_date)`,
	`CREATE INDEX IF NOT EXISTS reviews_book_id_idx ON reviews (book_id)`,
}

// Migrate creates the schema if it does not exist yet. It is safe to run on every start.
func Migrate(ctx context.Context, db *DB) error {
	return Transaction(ctx, db, func(ctx context.Context, tx bun.Tx) error {
		for _, t := range schema {
			query := tx.NewCreateTable().Model(t.model).IfNotExists()
			for _, fk := range t.foreignKeys {
				query = query.ForeignKey(fk)
			}
			if _, err := query.Exec(ctx); err != nil {
				return fmt.Errorf("failed to create table for %T: %w", t.model, err)
			}
		}
		for _, stmt := range postCreate {
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("failed to apply %q: %w", stmt, err)
			}
		}
		return nil
	})
}
