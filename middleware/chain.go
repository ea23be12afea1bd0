package middleware

import (
	"slices"

	"github.com/skeletohq/skeleto/request"
	"github.com/skeletohq/skeleto/response"
	"github.com/skeletohq/skeleto/server"
)

// Next continues the chain at the following step and returns its response.
type Next func() *response.Response

// Middleware receives the request context and an explicit continuation.
// It must return a response on every path: either the continuation's
// result, or its own response to short-circuit the rest of the chain.
type Middleware func(*request.Context, Next) *response.Response

// Chain is an ordered middleware sequence. Order is registration order
// and is binding: no reordering, no priority.
type Chain struct {
	steps []Middleware
}

// NewChain creates a chain running the given middlewares in order.
func NewChain(steps ...Middleware) *Chain {
	return &Chain{steps: slices.Clone(steps)}
}

// Append adds middlewares to the end of the chain. Must happen before
// Then; the composed handler works on a snapshot.
func (c *Chain) Append(steps ...Middleware) {
	c.steps = append(c.steps, steps...)
}

// Then composes the chain with a terminal dispatch step (usually the
// router's handler) into a single entry point. Invoking it runs every
// middleware strictly in order up to the first one that does not call its
// continuation; the terminal step runs only when the cursor walks past
// the last middleware.
func (c *Chain) Then(terminal server.Handler) server.Handler {
	steps := slices.Clone(c.steps)

	return func(ctx *request.Context) *response.Response {
		return dispatch(steps, 0, ctx, terminal)
	}
}

// Wrap guards a single handler with the given middlewares, for steps that
// apply to one route rather than the whole chain.
func Wrap(handler server.Handler, steps ...Middleware) server.Handler {
	return NewChain(steps...).Then(handler)
}

func dispatch(steps []Middleware, cursor int, ctx *request.Context, terminal server.Handler) *response.Response {
	if cursor == len(steps) {
		return terminal(ctx)
	}
	return steps[cursor](ctx, func() *response.Response {
		return dispatch(steps, cursor+1, ctx, terminal)
	})
}
