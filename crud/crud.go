// Package crud scaffolds list and add pages for an entity schema.
package crud

import (
	"context"
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/skeletohq/skeleto/docs"
	"github.com/skeletohq/skeleto/form"
	"github.com/skeletohq/skeleto/model"
	"github.com/skeletohq/skeleto/request"
	"github.com/skeletohq/skeleto/response"
	"github.com/skeletohq/skeleto/router"
)

// Register wires {base}/list and {base}/add routes for the schema. The
// list page renders every record; the add page renders an empty form on
// GET and validates/inserts on POST, redirecting to the list page on
// success or re-rendering the form with errors otherwise. Doc strings for
// both routes land in the registry when one is given.
func Register(r *router.Router, reg *docs.Registry, base string, schema model.Schema, store *model.Store) {
	listPath := base + "/list"
	addPath := base + "/add"

	listView := func(_ *request.Context) *response.Response {
		records, err := store.All(context.Background(), schema)
		if err != nil {
			return response.NewError("unable to load records", response.StatusInternalServerError)
		}

		var b strings.Builder
		b.WriteString("<ul>")
		for _, rec := range records {
			fmt.Fprintf(&b, "<li>%s</li>", html.EscapeString(fmt.Sprint(rec)))
		}
		b.WriteString("</ul>")
		return response.New(b.String())
	}

	addView := func(ctx *request.Context) *response.Response {
		if ctx.Method != request.POST {
			return response.New(form.Build(schema, nil, nil))
		}

		errs := form.Validate(schema, ctx.Form)
		if len(errs) != 0 {
			return response.New(form.Build(schema, ctx.Form, errs))
		}

		rec := model.Record{}
		for _, f := range schema.Fields {
			rec[f.Name] = ctx.Form[f.Name]
		}
		if err := store.Insert(context.Background(), schema, rec); err != nil {
			return response.NewError("unable to save record", response.StatusInternalServerError)
		}
		return response.NewRedirect(listPath)
	}

	r.Handle(regexp.QuoteMeta(listPath), listView)
	r.Handle(regexp.QuoteMeta(addPath), addView)

	if reg != nil {
		reg.Add(listPath, "List all "+schema.Table)
		reg.Add(addPath, "Add new "+schema.Table)
	}
}
