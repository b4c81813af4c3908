package database

import (
	"bookcatalog_server/lib"
	"bookcatalog_server/structs/tables"
	"context"

	"github.com/uptrace/bun"
)

type TokenStore struct {
	db bun.IDB
}

func NewTokenStore(db bun.IDB) *TokenStore {
	return &TokenStore{db: db}
}

// GetOrCreate returns the user's token, creating one with newKey if none exists.
// Concurrent callers converge on the single stored row.
func (s *TokenStore) GetOrCreate(ctx context.Context, userID int64, newKey func() (string, error)) (*tables.AuthToken, error) {
	existing, err := Query[tables.AuthToken](s.db).Where("user_id", userID).First(ctx)
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	if existing != nil {
		return existing, nil
	}

	key, err := newKey()
	if err != nil {
		return nil, err
	}
	token := &tables.AuthToken{Key: key, UserID: userID}
	inserted, err := Query[tables.AuthToken](s.db).InsertIgnore(ctx, token, "user_id")
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	if inserted {
		return token, nil
	}

	// Lost the race to another login; read the winner back.
	winner, err := Query[tables.AuthToken](s.db).Where("user_id", userID).First(ctx)
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	if winner == nil {
		return nil, lib.ErrNotFound
	}
	return winner, nil
}

// GetByKey returns lib.ErrNotFound for unknown keys.
func (s *TokenStore) GetByKey(ctx context.Context, key string) (*tables.AuthToken, error) {
	token, err := Query[tables.AuthToken](s.db).Where("key", key).First(ctx)
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	if token == nil {
		return nil, lib.ErrNotFound
	}
	return token, nil
}
