package database

import (
	"bookcatalog_server/lib"
	"bookcatalog_server/structs/tables"
	"context"
	"time"

	"github.com/uptrace/bun"
)

type UserStore struct {
	db bun.IDB
}

func NewUserStore(db bun.IDB) *UserStore {
	return &UserStore{db: db}
}

// Create inserts the user. A duplicate email yields lib.ErrConflict.
func (s *UserStore) Create(ctx context.Context, user *tables.User) (*tables.User, error) {
	created, err := Query[tables.User](s.db).Insert(ctx, user)
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	return created, nil
}

// CreateWithActivationCode inserts the user and then stores the code derived
// from the generated id, both in one transaction.
func (s *UserStore) CreateWithActivationCode(ctx context.Context, user *tables.User, code func(u *tables.User) string) (*tables.User, error) {
	created, err := TransactionWithResult(ctx, s.db, func(ctx context.Context, tx bun.Tx) (*tables.User, error) {
		// a retried transaction starts again from the caller's row
		row := *user
		u, err := Query[tables.User](tx).Insert(ctx, &row)
		if err != nil {
			return nil, err
		}
		u.ActivationCode = code(u)
		if _, err := Query[tables.User](tx).Where("id", u.ID).Update(ctx, map[string]any{
			"activation_code": u.ActivationCode,
		}); err != nil {
			return nil, err
		}
		return u, nil
	})
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	return created, nil
}

// Activate consumes an activation code in a single conditional update.
// It reports whether a user matched.
func (s *UserStore) Activate(ctx context.Context, code string) (bool, error) {
	if code == "" {
		return false, nil
	}
	n, err := Query[tables.User](s.db).
		Where("activation_code", code).
		Update(ctx, map[string]any{
			"is_active":       true,
			"activation_code": "",
		})
	if err != nil {
		return false, lib.MapPgError(err)
	}
	return n > 0, nil
}

// GetByEmail returns lib.ErrNotFound when no user has the email.
func (s *UserStore) GetByEmail(ctx context.Context, email string) (*tables.User, error) {
	user, err := Query[tables.User](s.db).Where("email", email).First(ctx)
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	if user == nil {
		return nil, lib.ErrNotFound
	}
	return user, nil
}

func (s *UserStore) GetByID(ctx context.Context, id int64) (*tables.User, error) {
	user, err := FindByID[tables.User](ctx, s.db, id)
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	if user == nil {
		return nil, lib.ErrNotFound
	}
	return user, nil
}

func (s *UserStore) UpdateLastLogin(ctx context.Context, id int64, at time.Time) error {
	if _, err := UpdateByID[tables.User](ctx, s.db, id, map[string]any{"last_login": at}); err != nil {
		return lib.MapPgError(err)
	}
	return nil
}
