package router

import (
	"regexp"
	"slices"

	"github.com/skeletohq/skeleto/request"
	"github.com/skeletohq/skeleto/response"
	"github.com/skeletohq/skeleto/server"
)

var defaultNotFoundHandler server.Handler = func(_ *request.Context) *response.Response {
	return response.NewError(response.GetStatusReason(response.StatusNotFound), response.StatusNotFound)
}

type route struct {
	pattern *regexp.Regexp
	handler server.Handler
}

// Router holds an ordered table of path patterns. Registration order is
// the match priority: the first pattern that fully matches wins, there is
// no specificity ranking.
type Router struct {
	routes   []route
	notFound server.Handler
}

// New creates an empty router.
func New() *Router {
	return &Router{
		notFound: defaultNotFoundHandler,
	}
}

// Handle registers a handler for a path pattern. The pattern is a regular
// expression matched against the whole decoded path; named capture groups
// become path params. Panics on an invalid pattern, since registration
// happens at configuration time.
func (r *Router) Handle(pattern string, handler server.Handler) {
	compiled := regexp.MustCompile(`^(?:` + pattern + `)$`)
	r.routes = append(r.routes, route{pattern: compiled, handler: handler})
}

// NotFound sets the handler invoked when no pattern matches.
func (r *Router) NotFound(handler server.Handler) {
	r.notFound = handler
}

// Resolve returns the handler of the first pattern in registration order
// that fully matches path, along with the captured groups. The third
// return value is false when nothing matched.
func (r *Router) Resolve(path string) (server.Handler, map[string]string, bool) {
	return resolve(r.routes, path)
}

func resolve(routes []route, path string) (server.Handler, map[string]string, bool) {
	for _, rt := range routes {
		matches := rt.pattern.FindStringSubmatch(path)
		if matches == nil {
			continue
		}
		params := map[string]string{}
		for i, name := range rt.pattern.SubexpNames() {
			if i == 0 || name == "" {
				continue
			}
			params[name] = matches[i]
		}
		return rt.handler, params, true
	}
	return nil, nil, false
}

// Handler snapshots the route table into a terminal dispatch handler. The
// router must not be mutated after this call; the snapshot is what serves
// traffic.
func (r *Router) Handler() server.Handler {
	routes := slices.Clone(r.routes)
	notFound := r.notFound

	return func(ctx *request.Context) *response.Response {
		handler, params, ok := resolve(routes, ctx.Path)
		if !ok {
			return notFound(ctx)
		}
		ctx.PathParams = params
		return handler(ctx)
	}
}
