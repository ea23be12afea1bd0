package model

import (
	"fmt"
	"strings"
)

// Field is one column of an entity: name, storage type and an optional
// constraint clause, e.g. {"name", "TEXT", "NOT NULL"}.
type Field struct {
	Name       string
	Type       string
	Constraint string
}

// Schema is a declarative descriptor of an entity type, consumed by the
// mapping layer. Field order is the DDL and insert column order. Schemas
// are declared as constants or built once at startup; there is no runtime
// type introspection.
type Schema struct {
	Table  string
	Fields []Field
}

// Columns returns the column names in declaration order.
func (s Schema) Columns() []string {
	cols := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		cols[i] = f.Name
	}
	return cols
}

// CreateTableSQL renders the CREATE TABLE IF NOT EXISTS statement.
func (s Schema) CreateTableSQL() string {
	cols := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		cols[i] = strings.TrimSpace(f.Name + " " + f.Type + " " + f.Constraint)
	}
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)", s.Table, strings.Join(cols, ", "))
}

// InsertSQL renders the INSERT statement with positional placeholders in
// field declaration order.
func (s Schema) InsertSQL() string {
	placeholders := make([]string, len(s.Fields))
	for i := range s.Fields {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		s.Table, strings.Join(s.Columns(), ", "), strings.Join(placeholders, ", "))
}

// SelectSQL renders the statement selecting every column.
func (s Schema) SelectSQL() string {
	return fmt.Sprintf("SELECT %s FROM %s", strings.Join(s.Columns(), ", "), s.Table)
}

// FilterSQL renders SelectSQL with AND-joined equality conditions for the
// given columns, placeholders numbered in the given order. No columns
// means no WHERE clause.
func (s Schema) FilterSQL(columns []string) string {
	if len(columns) == 0 {
		return s.SelectSQL()
	}
	conds := make([]string, len(columns))
	for i, col := range columns {
		conds[i] = fmt.Sprintf("%s = $%d", col, i+1)
	}
	return fmt.Sprintf("%s WHERE %s", s.SelectSQL(), strings.Join(conds, " AND "))
}
