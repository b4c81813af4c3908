package database

import (
	"fmt"
	"strings"
	"time"

	"github.com/uptrace/bun"
)

// QueryBuilder provides a fluent, type-safe API for building model queries on top of bun.
type QueryBuilder[T any] struct {
	db        bun.IDB
	tableName string

	selectCols []string
	wheres     []*WhereClause
	orders     []*OrderClause
	limitVal   *int
	offsetVal  *int

	// Relations to preload
	relations []string

	forUpdate bool
	timeout   time.Duration
}

// WhereClause represents a WHERE condition
type WhereClause struct {
	Column   string
	Operator string
	Value    any
	IsRaw    bool
	RawSQL   string
	RawArgs  []any
	Negate   bool
}

// OrderClause represents an ORDER BY clause
type OrderClause struct {
	Column    string
	Direction string
}

// OrderDirection represents sort direction
type OrderDirection string

const (
	ASC  OrderDirection = "ASC"
	DESC OrderDirection = "DESC"
)

// Query creates a new QueryBuilder bound to a database handle or a running transaction.
func Query[T any](db bun.IDB) *QueryBuilder[T] {
	return &QueryBuilder[T]{db: db}
}

// Table sets the table name explicitly
func (q *QueryBuilder[T]) Table(name string) *QueryBuilder[T] {
	q.tableName = name
	return q
}

// Select specifies the columns to select
func (q *QueryBuilder[T]) Select(columns ...string) *QueryBuilder[T] {
	q.selectCols = append(q.selectCols, columns...)
	return q
}

// Where adds a simple WHERE condition (column = value)
func (q *QueryBuilder[T]) Where(column string, value any) *QueryBuilder[T] {
	return q.WhereOp(column, "=", value)
}

// WhereOp adds a WHERE condition with a custom operator
func (q *QueryBuilder[T]) WhereOp(column, operator string, value any) *QueryBuilder[T] {
	q.wheres = append(q.wheres, &WhereClause{Column: column, Operator: operator, Value: value})
	return q
}

// WhereNot adds a WHERE NOT condition
func (q *QueryBuilder[T]) WhereNot(column string, value any) *QueryBuilder[T] {
	q.wheres = append(q.wheres, &WhereClause{Column: column, Operator: "=", Value: value, Negate: true})
	return q
}

// WhereIn adds a WHERE IN condition
func (q *QueryBuilder[T]) WhereIn(column string, values any) *QueryBuilder[T] {
	q.wheres = append(q.wheres, &WhereClause{Column: column, Operator: "IN", Value: values})
	return q
}

// WhereNull adds a WHERE IS NULL condition
func (q *QueryBuilder[T]) WhereNull(column string) *QueryBuilder[T] {
	q.wheres = append(q.wheres, &WhereClause{Column: column, Operator: "IS NULL"})
	return q
}

// WhereRaw adds a raw WHERE condition
func (q *QueryBuilder[T]) WhereRaw(sql string, args ...any) *QueryBuilder[T] {
	q.wheres = append(q.wheres, &WhereClause{IsRaw: true, RawSQL: sql, RawArgs: args})
	return q
}

// OrderBy adds an ORDER BY clause
func (q *QueryBuilder[T]) OrderBy(column string, direction OrderDirection) *QueryBuilder[T] {
	q.orders = append(q.orders, &OrderClause{Column: column, Direction: string(direction)})
	return q
}

// Limit sets the LIMIT clause
func (q *QueryBuilder[T]) Limit(limit int) *QueryBuilder[T] {
	q.limitVal = &limit
	return q
}

// Offset sets the OFFSET clause
func (q *QueryBuilder[T]) Offset(offset int) *QueryBuilder[T] {
	q.offsetVal = &offset
	return q
}

// Relation specifies a bun relation to preload
func (q *QueryBuilder[T]) Relation(name string) *QueryBuilder[T] {
	q.relations = append(q.relations, name)
	return q
}

// ForUpdate adds FOR UPDATE clause (for row locking)
func (q *QueryBuilder[T]) ForUpdate() *QueryBuilder[T] {
	q.forUpdate = true
	return q
}

// Timeout sets a timeout for the query
func (q *QueryBuilder[T]) Timeout(duration time.Duration) *QueryBuilder[T] {
	q.timeout = duration
	return q
}

type condition struct {
	sql  string
	args []any
}

// conditions renders the WHERE clauses into bun-formatted fragments.
func (q *QueryBuilder[T]) conditions() []condition {
	out := make([]condition, 0, len(q.wheres))
	for _, w := range q.wheres {
		if w.IsRaw {
			out = append(out, condition{sql: w.RawSQL, args: w.RawArgs})
			continue
		}
		switch w.Operator {
		case "IS NULL", "IS NOT NULL":
			out = append(out, condition{sql: fmt.Sprintf("%s %s", w.Column, w.Operator)})
		case "IN":
			c := condition{sql: fmt.Sprintf("%s IN (?)", w.Column), args: []any{bun.In(w.Value)}}
			if w.Negate {
				c.sql = "NOT (" + c.sql + ")"
			}
			out = append(out, c)
		default:
			c := condition{sql: fmt.Sprintf("%s %s ?", w.Column, w.Operator), args: []any{w.Value}}
			if w.Negate {
				c.sql = "NOT (" + c.sql + ")"
			}
			out = append(out, c)
		}
	}
	return out
}

func (q *QueryBuilder[T]) orderExpr() string {
	parts := make([]string, 0, len(q.orders))
	for _, o := range q.orders {
		parts = append(parts, o.Column+" "+o.Direction)
	}
	return strings.Join(parts, ", ")
}

// buildBunQuery builds a select that only uses the model for its table.
func (q *QueryBuilder[T]) buildBunQuery() *bun.SelectQuery {
	return q.applySelect(q.db.NewSelect().Model((*T)(nil)))
}

// buildBunQueryWithModel builds a select scanning into dest, needed for relation preloading.
func (q *QueryBuilder[T]) buildBunQueryWithModel(dest any) *bun.SelectQuery {
	query := q.db.NewSelect().Model(dest)
	for _, rel := range q.relations {
		query = query.Relation(rel)
	}
	return q.applySelect(query)
}

func (q *QueryBuilder[T]) applySelect(query *bun.SelectQuery) *bun.SelectQuery {
	if q.tableName != "" {
		query = query.ModelTableExpr(q.tableName)
	}
	if len(q.selectCols) > 0 {
		query = query.Column(q.selectCols...)
	}
	for _, c := range q.conditions() {
		query = query.Where(c.sql, c.args...)
	}
	if len(q.orders) > 0 {
		query = query.OrderExpr(q.orderExpr())
	}
	if q.limitVal != nil {
		query = query.Limit(*q.limitVal)
	}
	if q.offsetVal != nil {
		query = query.Offset(*q.offsetVal)
	}
	if q.forUpdate {
		query = query.For("UPDATE")
	}
	return query
}
