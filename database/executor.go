package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/uptrace/bun"
)

func (q *QueryBuilder[T]) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if q.timeout > 0 {
		return context.WithTimeout(ctx, q.timeout)
	}
	return ctx, func() {}
}

// All executes the query and returns all matching records with automatic retry
func (q *QueryBuilder[T]) All(ctx context.Context) ([]T, error) {
	start := time.Now()
	ctx, cancel := q.withTimeout(ctx)
	defer cancel()

	var data []T
	err := retryOn(ctx, q.db, func() error {
		data = nil // Reset on retry

		// Relations need the slice as the model
		if len(q.relations) > 0 {
			return q.buildBunQueryWithModel(&data).Scan(ctx)
		}
		return q.buildBunQuery().Scan(ctx, &data)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to execute select query: %w (took %v)", err, time.Since(start))
	}

	return data, nil
}

// First executes the query and returns the first matching record, or nil when nothing matches.
func (q *QueryBuilder[T]) First(ctx context.Context) (*T, error) {
	start := time.Now()
	ctx, cancel := q.withTimeout(ctx)
	defer cancel()

	data := new(T)
	err := retryOn(ctx, q.db, func() error {
		if len(q.relations) > 0 {
			return q.buildBunQueryWithModel(data).Limit(1).Scan(ctx)
		}
		return q.buildBunQuery().Limit(1).Scan(ctx, data)
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to execute first query: %w (took %v)", err, time.Since(start))
	}

	return data, nil
}

// Count executes the query and returns the count of matching records with automatic retry
func (q *QueryBuilder[T]) Count(ctx context.Context) (int, error) {
	start := time.Now()
	ctx, cancel := q.withTimeout(ctx)
	defer cancel()

	var count int
	err := retryOn(ctx, q.db, func() error {
		var err error
		count, err = q.buildBunQuery().Count(ctx)
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("failed to execute count query: %w (took %v)", err, time.Since(start))
	}

	return count, nil
}

// Exists checks if any records match the query
func (q *QueryBuilder[T]) Exists(ctx context.Context) (bool, error) {
	start := time.Now()
	ctx, cancel := q.withTimeout(ctx)
	defer cancel()

	var exists bool
	err := retryOn(ctx, q.db, func() error {
		var err error
		exists, err = q.buildBunQuery().Exists(ctx)
		return err
	})
	if err != nil {
		return false, fmt.Errorf("failed to execute exists query: %w (took %v)", err, time.Since(start))
	}

	return exists, nil
}

// Insert inserts a new record; generated columns are scanned back into data.
func (q *QueryBuilder[T]) Insert(ctx context.Context, data *T) (*T, error) {
	start := time.Now()
	ctx, cancel := q.withTimeout(ctx)
	defer cancel()

	err := retryOn(ctx, q.db, func() error {
		query := q.db.NewInsert().Model(data)
		if q.tableName != "" {
			query = query.ModelTableExpr(q.tableName)
		}
		_, err := query.Exec(ctx)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to execute insert query: %w (took %v)", err, time.Since(start))
	}

	return data, nil
}

// InsertIgnore inserts data unless a row with the same conflict columns already exists.
// It reports whether a row was written.
func (q *QueryBuilder[T]) InsertIgnore(ctx context.Context, data *T, conflictColumns string) (bool, error) {
	start := time.Now()
	ctx, cancel := q.withTimeout(ctx)
	defer cancel()

	var inserted bool
	err := retryOn(ctx, q.db, func() error {
		res, err := q.db.NewInsert().
			Model(data).
			On(fmt.Sprintf("CONFLICT (%s) DO NOTHING", conflictColumns)).
			Exec(ctx)
		if errors.Is(err, sql.ErrNoRows) {
			inserted = false
			return nil
		}
		if err != nil {
			return err
		}
		n, _ := res.RowsAffected()
		inserted = n > 0
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to execute insert query: %w (took %v)", err, time.Since(start))
	}

	return inserted, nil
}

// Update sets the given columns on every record matching the query and returns the affected row count.
func (q *QueryBuilder[T]) Update(ctx context.Context, data map[string]any) (int, error) {
	start := time.Now()
	ctx, cancel := q.withTimeout(ctx)
	defer cancel()

	if len(q.wheres) == 0 {
		return 0, fmt.Errorf("refusing to update without conditions")
	}

	var rowsAffected int64
	err := retryOn(ctx, q.db, func() error {
		res, err := q.buildUpdate(data).Exec(ctx)
		if err != nil {
			return err
		}
		rowsAffected, _ = res.RowsAffected()
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to execute update query: %w (took %v)", err, time.Since(start))
	}

	return int(rowsAffected), nil
}

// UpdateReturning updates records and returns them with automatic retry
func (q *QueryBuilder[T]) UpdateReturning(ctx context.Context, data map[string]any) ([]T, error) {
	start := time.Now()
	ctx, cancel := q.withTimeout(ctx)
	defer cancel()

	if len(q.wheres) == 0 {
		return nil, fmt.Errorf("refusing to update without conditions")
	}

	var results []T
	err := retryOn(ctx, q.db, func() error {
		results = nil // Reset on retry
		return q.buildUpdate(data).Returning("*").Scan(ctx, &results)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to execute update query: %w (took %v)", err, time.Since(start))
	}

	return results, nil
}

func (q *QueryBuilder[T]) buildUpdate(data map[string]any) *bun.UpdateQuery {
	query := q.db.NewUpdate().Model((*T)(nil))
	if q.tableName != "" {
		query = query.ModelTableExpr(q.tableName)
	}

	// Stable column order keeps generated SQL deterministic
	keys := make([]string, 0, len(data))
	for key := range data {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		query = query.Set("? = ?", bun.Ident(key), data[key])
	}

	for _, c := range q.conditions() {
		query = query.Where(c.sql, c.args...)
	}
	return query
}

// Delete deletes records matching the query with automatic retry
func (q *QueryBuilder[T]) Delete(ctx context.Context) (int, error) {
	start := time.Now()
	ctx, cancel := q.withTimeout(ctx)
	defer cancel()

	if len(q.wheres) == 0 {
		return 0, fmt.Errorf("refusing to delete without conditions")
	}

	var rowsAffected int64
	err := retryOn(ctx, q.db, func() error {
		query := q.db.NewDelete().Model((*T)(nil))
		if q.tableName != "" {
			query = query.ModelTableExpr(q.tableName)
		}
		for _, c := range q.conditions() {
			query = query.Where(c.sql, c.args...)
		}

		res, err := query.Exec(ctx)
		if err != nil {
			return err
		}
		rowsAffected, _ = res.RowsAffected()
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to execute delete query: %w (took %v)", err, time.Since(start))
	}

	return int(rowsAffected), nil
}
