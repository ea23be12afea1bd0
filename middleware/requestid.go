package middleware

import (
	"github.com/google/uuid"

	"github.com/skeletohq/skeleto/request"
	"github.com/skeletohq/skeleto/response"
)

const requestIDHeader = "x-request-id"

// RequestID stamps every response with a request ID. An inbound
// x-request-id header is propagated; otherwise a fresh UUID is generated.
func RequestID() Middleware {
	return func(ctx *request.Context, next Next) *response.Response {
		id := ctx.Headers.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		return next().WithHeader(requestIDHeader, id)
	}
}
