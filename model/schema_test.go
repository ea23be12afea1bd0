package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var userSchema = Schema{
	Table: "user",
	Fields: []Field{
		{Name: "name", Type: "TEXT", Constraint: "NOT NULL"},
		{Name: "email", Type: "TEXT"},
		{Name: "age", Type: "INTEGER"},
	},
}

func TestCreateTableSQL(t *testing.T) {
	assert.Equal(t,
		"CREATE TABLE IF NOT EXISTS user (name TEXT NOT NULL, email TEXT, age INTEGER)",
		userSchema.CreateTableSQL())
}

func TestInsertSQL(t *testing.T) {
	assert.Equal(t,
		"INSERT INTO user (name, email, age) VALUES ($1, $2, $3)",
		userSchema.InsertSQL())
}

func TestSelectSQL(t *testing.T) {
	assert.Equal(t, "SELECT name, email, age FROM user", userSchema.SelectSQL())
}

func TestFilterSQL(t *testing.T) {
	assert.Equal(t,
		"SELECT name, email, age FROM user WHERE age = $1 AND name = $2",
		userSchema.FilterSQL([]string{"age", "name"}))

	// Test: no columns renders the plain select, never a dangling WHERE
	assert.Equal(t, userSchema.SelectSQL(), userSchema.FilterSQL(nil))
}

func TestColumns(t *testing.T) {
	assert.Equal(t, []string{"name", "email", "age"}, userSchema.Columns())
}
