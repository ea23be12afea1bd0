package model

import (
	"context"
	"fmt"
	"sort"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Record is one row, keyed by column name.
type Record map[string]any

// Querier is the slice of the pgx connection API the store needs.
// *pgx.Conn satisfies it; tests provide fakes.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// Store executes schema-derived SQL against a relational database. It
// performs no locking; concurrency safety of the underlying connection is
// the caller's concern.
type Store struct {
	db Querier
}

// NewStore wraps an existing connection.
func NewStore(db Querier) *Store {
	return &Store{db: db}
}

// Connect opens a postgres connection and wraps it in a Store.
func Connect(ctx context.Context, url string) (*Store, error) {
	conn, err := pgx.Connect(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to database: %w", err)
	}
	return NewStore(conn), nil
}

// CreateTable creates the schema's table if it does not exist.
func (s *Store) CreateTable(ctx context.Context, schema Schema) error {
	if _, err := s.db.Exec(ctx, schema.CreateTableSQL()); err != nil {
		return fmt.Errorf("create table %s: %w", schema.Table, err)
	}
	return nil
}

// Insert stores one record. Values are taken in field declaration order;
// fields absent from the record are inserted as NULL.
func (s *Store) Insert(ctx context.Context, schema Schema, rec Record) error {
	args := make([]any, len(schema.Fields))
	for i, f := range schema.Fields {
		args[i] = rec[f.Name]
	}
	if _, err := s.db.Exec(ctx, schema.InsertSQL(), args...); err != nil {
		return fmt.Errorf("insert into %s: %w", schema.Table, err)
	}
	return nil
}

// All returns every record of the schema's table.
func (s *Store) All(ctx context.Context, schema Schema) ([]Record, error) {
	rows, err := s.db.Query(ctx, schema.SelectSQL())
	if err != nil {
		return nil, fmt.Errorf("select from %s: %w", schema.Table, err)
	}
	return collect(rows, schema)
}

// Filter returns the records matching every given column/value equality
// condition. Condition order is made deterministic by sorting the keys;
// an empty condition map matches everything.
func (s *Store) Filter(ctx context.Context, schema Schema, conds map[string]any) ([]Record, error) {
	if len(conds) == 0 {
		return s.All(ctx, schema)
	}
	columns := make([]string, 0, len(conds))
	for col := range conds {
		columns = append(columns, col)
	}
	sort.Strings(columns)

	args := make([]any, len(columns))
	for i, col := range columns {
		args[i] = conds[col]
	}

	rows, err := s.db.Query(ctx, schema.FilterSQL(columns), args...)
	if err != nil {
		return nil, fmt.Errorf("filter %s: %w", schema.Table, err)
	}
	return collect(rows, schema)
}

func collect(rows pgx.Rows, schema Schema) ([]Record, error) {
	defer rows.Close()

	var records []Record
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, err
		}
		rec := Record{}
		for i, f := range schema.Fields {
			if i < len(values) {
				rec[f.Name] = values[i]
			}
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
