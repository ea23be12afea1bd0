package middleware

import (
	"fmt"
	"net/url"
	"slices"
	"strings"

	"github.com/skeletohq/skeleto/request"
	"github.com/skeletohq/skeleto/response"
)

var safeMethods = []request.MethodType{request.GET, request.HEAD, request.OPTIONS}

func validateOrigin(o string) error {
	u, err := url.Parse(o)
	if err != nil {
		return fmt.Errorf("invalid origin %q: %w", o, err)
	}
	if u.Scheme == "" {
		return fmt.Errorf("invalid origin %q: scheme is required", o)
	}
	if u.Host == "" {
		return fmt.Errorf("invalid origin %q: host is required", o)
	}
	if u.Path != "" || u.RawQuery != "" || u.Fragment != "" {
		return fmt.Errorf("invalid origin %q: path, query, and fragment are not allowed", o)
	}
	return nil
}

// CSRF protects unsafe methods against cross-origin request forgery.
// Requests must come from a trusted origin, the same origin, or carry a
// same-origin Sec-Fetch-Site header; everything else is denied with 403.
// The trusted set is fixed at construction time, before serving starts.
type CSRF struct {
	trustedOrigins map[string]bool
}

// NewCSRF constructs a CSRF guard and validates the trusted origins.
func NewCSRF(trustedOrigins ...string) (*CSRF, error) {
	c := &CSRF{trustedOrigins: make(map[string]bool)}
	for _, origin := range trustedOrigins {
		if err := validateOrigin(origin); err != nil {
			return nil, err
		}
		c.trustedOrigins[origin] = true
	}
	return c, nil
}

func deny() *response.Response {
	return response.NewError("cross-origin request denied", response.StatusForbidden)
}

// Middleware returns the chain step enforcing the CSRF rules.
func (c *CSRF) Middleware() Middleware {
	return func(ctx *request.Context, next Next) *response.Response {
		if slices.Contains(safeMethods, ctx.Method) {
			return next()
		}

		origin := ctx.Headers.Get("Origin")
		originPresent := len(origin) != 0
		if originPresent && c.trustedOrigins[origin] {
			return next()
		}

		secFetchSite := strings.ToLower(ctx.Headers.Get("Sec-Fetch-Site"))
		if len(secFetchSite) != 0 {
			if secFetchSite == "same-origin" || secFetchSite == "none" {
				return next()
			}
			return deny()
		}

		if !originPresent {
			return next()
		}

		host := ctx.Headers.Get("Host")
		if o, err := url.Parse(origin); err == nil && o.Host == host {
			// origin matches host
			return next()
		}

		return deny()
	}
}
