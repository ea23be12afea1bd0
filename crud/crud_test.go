package crud

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skeletohq/skeleto/docs"
	"github.com/skeletohq/skeleto/model"
	"github.com/skeletohq/skeleto/request"
	"github.com/skeletohq/skeleto/response"
	"github.com/skeletohq/skeleto/router"
)

var noteSchema = model.Schema{
	Table: "note",
	Fields: []model.Field{
		{Name: "title", Type: "TEXT", Constraint: "NOT NULL"},
		{Name: "priority", Type: "INTEGER"},
	},
}

type fakeQuerier struct {
	execSQL []string
	rows    *fakeRows
}

func (f *fakeQuerier) Exec(_ context.Context, sql string, _ ...any) (pgconn.CommandTag, error) {
	f.execSQL = append(f.execSQL, sql)
	return pgconn.CommandTag{}, nil
}

func (f *fakeQuerier) Query(_ context.Context, _ string, _ ...any) (pgx.Rows, error) {
	if f.rows == nil {
		f.rows = &fakeRows{}
	}
	return f.rows, nil
}

type fakeRows struct {
	data [][]any
	pos  int
}

func (r *fakeRows) Close()                        {}
func (r *fakeRows) Err() error                    { return nil }
func (r *fakeRows) CommandTag() pgconn.CommandTag { return pgconn.CommandTag{} }

func (r *fakeRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *fakeRows) Next() bool {
	if r.pos >= len(r.data) {
		return false
	}
	r.pos++
	return true
}
func (r *fakeRows) Scan(_ ...any) error    { return nil }
func (r *fakeRows) Values() ([]any, error) { return r.data[r.pos-1], nil }
func (r *fakeRows) RawValues() [][]byte    { return nil }
func (r *fakeRows) Conn() *pgx.Conn        { return nil }

func setup(q *fakeQuerier) (*router.Router, *docs.Registry) {
	r := router.New()
	reg := docs.NewRegistry(docs.FormatHTML)
	Register(r, reg, "/notes", noteSchema, model.NewStore(q))
	return r, reg
}

func TestListView(t *testing.T) {
	q := &fakeQuerier{rows: &fakeRows{data: [][]any{
		{"first note", 1},
		{"second note", 2},
	}}}
	r, _ := setup(q)

	handler, _, ok := r.Resolve("/notes/list")
	require.True(t, ok)

	resp := handler(&request.Context{Method: request.GET})
	assert.Equal(t, response.StatusOK, resp.Status)
	body := string(resp.Body)
	assert.Contains(t, body, "first note")
	assert.Contains(t, body, "second note")
}

func TestAddViewGet(t *testing.T) {
	r, _ := setup(&fakeQuerier{})

	handler, _, ok := r.Resolve("/notes/add")
	require.True(t, ok)

	// Test: GET renders an empty form, nothing is inserted
	resp := handler(&request.Context{Method: request.GET, Form: map[string]string{}})
	assert.Equal(t, response.StatusOK, resp.Status)
	assert.Contains(t, string(resp.Body), "<form method='post'>")
}

func TestAddViewPost(t *testing.T) {
	q := &fakeQuerier{}
	r, _ := setup(q)
	handler, _, ok := r.Resolve("/notes/add")
	require.True(t, ok)

	// Test: valid form inserts and redirects to the list page
	resp := handler(&request.Context{
		Method: request.POST,
		Form:   map[string]string{"title": "hello", "priority": "3"},
	})
	assert.Equal(t, response.StatusFound, resp.Status)
	assert.Equal(t, "/notes/list", resp.Headers.Get("location"))
	require.Len(t, q.execSQL, 1)
	assert.Equal(t, noteSchema.InsertSQL(), q.execSQL[0])

	// Test: invalid form re-renders with errors, nothing inserted
	resp = handler(&request.Context{
		Method: request.POST,
		Form:   map[string]string{"title": "hello"},
	})
	assert.Equal(t, response.StatusOK, resp.Status)
	assert.Contains(t, string(resp.Body), "Field required")
	assert.Len(t, q.execSQL, 1)
}

func TestDocRegistration(t *testing.T) {
	_, reg := setup(&fakeQuerier{})

	body := string(reg.Handler()(&request.Context{}).Body)
	assert.Contains(t, body, "/notes/list")
	assert.Contains(t, body, "List all note")
	assert.Contains(t, body, "/notes/add")
	assert.Contains(t, body, "Add new note")
}
