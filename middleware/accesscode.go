package middleware

import (
	"crypto/subtle"

	"github.com/skeletohq/skeleto/request"
	"github.com/skeletohq/skeleto/response"
)

// AccessCode gates requests behind the server-run admin access code. The
// caller presents the code either as a `code` query parameter or an
// `access_code` cookie; anything else is answered with 403.
func AccessCode(code string) Middleware {
	return func(ctx *request.Context, next Next) *response.Response {
		if codeMatches(ctx.Query["code"], code) || codeMatches(ctx.Cookies["access_code"], code) {
			return next()
		}
		return response.NewError("valid access code required", response.StatusForbidden)
	}
}

func codeMatches(presented, expected string) bool {
	if presented == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(presented), []byte(expected)) == 1
}
