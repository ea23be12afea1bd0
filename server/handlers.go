package server

import (
	"github.com/skeletohq/skeleto/request"
	"github.com/skeletohq/skeleto/response"
)

// Handler takes a parsed request context and returns a response. Captured
// path groups arrive in ctx.PathParams. A panicking handler is contained
// at the server boundary and answered with a 500 error.
type Handler func(*request.Context) *response.Response
