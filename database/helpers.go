package database

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

// Transaction executes fn within a database transaction. The transaction is
// rolled back when fn returns an error or panics, and the whole transaction is
// retried on transient errors. fn must therefore be safe to run again.
func Transaction(ctx context.Context, db bun.IDB, fn func(ctx context.Context, tx bun.Tx) error) error {
	if db == nil {
		return fmt.Errorf("database instance not initialized")
	}
	return retryOn(ctx, db, func() error {
		return db.RunInTx(ctx, nil, fn)
	})
}

// TransactionWithResult executes a function within a transaction and returns a result
func TransactionWithResult[T any](ctx context.Context, db bun.IDB, fn func(ctx context.Context, tx bun.Tx) (T, error)) (T, error) {
	var result T
	err := Transaction(ctx, db, func(ctx context.Context, tx bun.Tx) error {
		var err error
		result, err = fn(ctx, tx)
		return err
	})
	return result, err
}

// FindByID is a helper to find a record by ID
func FindByID[T any](ctx context.Context, db bun.IDB, id any) (*T, error) {
	return Query[T](db).Where("id", id).First(ctx)
}

// ExistsByID reports whether a record with the given ID exists
func ExistsByID[T any](ctx context.Context, db bun.IDB, id any) (bool, error) {
	return Query[T](db).Where("id", id).Exists(ctx)
}

// Create is a helper to insert a single record
func Create[T any](ctx context.Context, db bun.IDB, data *T) (*T, error) {
	return Query[T](db).Insert(ctx, data)
}

// UpdateByID is a helper to update a record by ID
func UpdateByID[T any](ctx context.Context, db bun.IDB, id any, data map[string]any) (int, error) {
	return Query[T](db).Where("id", id).Update(ctx, data)
}

// DeleteByID is a helper to delete a record by ID
func DeleteByID[T any](ctx context.Context, db bun.IDB, id any) (int, error) {
	return Query[T](db).Where("id", id).Delete(ctx)
}
