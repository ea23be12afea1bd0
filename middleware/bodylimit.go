package middleware

import (
	"github.com/skeletohq/skeleto/request"
	"github.com/skeletohq/skeleto/response"
)

// BodyLimit rejects requests whose body exceeds maxBytes with 413. A
// non-positive limit disables the check.
func BodyLimit(maxBytes int) Middleware {
	return func(ctx *request.Context, next Next) *response.Response {
		if maxBytes > 0 && len(ctx.Body) > maxBytes {
			return response.NewError("request body too large", response.StatusPayloadTooLarge)
		}
		return next()
	}
}
