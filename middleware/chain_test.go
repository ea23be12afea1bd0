package middleware

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skeletohq/skeleto/request"
	"github.com/skeletohq/skeleto/response"
)

func recording(name string, trace *[]string) Middleware {
	return func(_ *request.Context, next Next) *response.Response {
		*trace = append(*trace, name)
		return next()
	}
}

func TestChainOrder(t *testing.T) {
	// Test: middlewares run in registration order, terminal last
	var trace []string
	chain := NewChain(
		recording("m1", &trace),
		recording("m2", &trace),
		recording("m3", &trace),
	)
	handler := chain.Then(func(_ *request.Context) *response.Response {
		trace = append(trace, "terminal")
		return response.New("done")
	})

	resp := handler(&request.Context{})
	require.NotNil(t, resp)
	assert.Equal(t, []string{"m1", "m2", "m3", "terminal"}, trace)
	assert.Equal(t, "done", string(resp.Body))

	// Test: every request runs the full pass again, same order
	trace = nil
	handler(&request.Context{})
	assert.Equal(t, []string{"m1", "m2", "m3", "terminal"}, trace)
}

func TestChainShortCircuit(t *testing.T) {
	// Test: a middleware that never calls its continuation stops the chain
	var trace []string
	chain := NewChain(
		recording("m1", &trace),
		func(_ *request.Context, _ Next) *response.Response {
			trace = append(trace, "m2")
			return response.NewError("halt", response.StatusForbidden)
		},
		recording("m3", &trace),
	)
	handler := chain.Then(func(_ *request.Context) *response.Response {
		trace = append(trace, "terminal")
		return response.New("unreached")
	})

	resp := handler(&request.Context{})
	assert.Equal(t, []string{"m1", "m2"}, trace)
	assert.Equal(t, response.StatusForbidden, resp.Status)
}

func TestEmptyChain(t *testing.T) {
	// Test: an empty chain is just the terminal step
	handler := NewChain().Then(func(_ *request.Context) *response.Response {
		return response.New("bare")
	})
	assert.Equal(t, "bare", string(handler(&request.Context{}).Body))
}

func TestChainSnapshot(t *testing.T) {
	// Test: appending after Then does not affect the composed handler
	var trace []string
	chain := NewChain(recording("m1", &trace))
	handler := chain.Then(func(_ *request.Context) *response.Response {
		return response.New("done")
	})
	chain.Append(recording("late", &trace))

	handler(&request.Context{})
	assert.Equal(t, []string{"m1"}, trace)
}

func TestWrap(t *testing.T) {
	var trace []string
	handler := Wrap(func(_ *request.Context) *response.Response {
		trace = append(trace, "handler")
		return response.New("ok")
	}, recording("guard", &trace))

	handler(&request.Context{})
	assert.Equal(t, []string{"guard", "handler"}, trace)
}
