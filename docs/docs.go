// Package docs renders the API documentation page from doc strings
// registered alongside routes.
package docs

import (
	"bytes"
	"fmt"
	"html"
	"strings"

	"github.com/yuin/goldmark"

	"github.com/skeletohq/skeleto/request"
	"github.com/skeletohq/skeleto/response"
	"github.com/skeletohq/skeleto/server"
)

// Format selects how the documentation page is rendered.
type Format string

const (
	FormatHTML     Format = "html"
	FormatMarkdown Format = "markdown"
)

type entry struct {
	path string
	doc  string
}

// Registry is an ordered path → doc-string mapping. Populate it at
// configuration time; it is read-only while serving.
type Registry struct {
	format  Format
	entries []entry
}

// NewRegistry creates a registry rendering in the given format.
func NewRegistry(format Format) *Registry {
	return &Registry{format: format}
}

// Add registers a doc string for a path. Registration order is the
// rendering order.
func (r *Registry) Add(path, doc string) {
	r.entries = append(r.entries, entry{path: path, doc: doc})
}

// Handler returns the handler serving the documentation page.
func (r *Registry) Handler() server.Handler {
	return func(_ *request.Context) *response.Response {
		if r.format == FormatMarkdown {
			return r.renderMarkdown()
		}
		return r.renderHTML()
	}
}

func (r *Registry) renderHTML() *response.Response {
	var b strings.Builder
	b.WriteString("<h1>API Documentation</h1><ul>")
	for _, e := range r.entries {
		fmt.Fprintf(&b, "<li><b>%s</b>: %s</li>", html.EscapeString(e.path), html.EscapeString(e.doc))
	}
	b.WriteString("</ul>")
	return response.New(b.String())
}

func (r *Registry) renderMarkdown() *response.Response {
	var src strings.Builder
	src.WriteString("# API Documentation\n")
	for _, e := range r.entries {
		fmt.Fprintf(&src, "- **%s**: %s\n", e.path, e.doc)
	}

	var out bytes.Buffer
	if err := goldmark.Convert([]byte(src.String()), &out); err != nil {
		return response.NewError("unable to render documentation", response.StatusInternalServerError)
	}
	return response.New(out.String())
}
