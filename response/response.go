package response

import (
	"fmt"
	"io"
	"strconv"

	"github.com/skeletohq/skeleto/headers"
)

// Response is a status code, a byte body and a header mapping. A Response
// is fixed once constructed: the fluent With* methods derive a new value
// and never modify their receiver, so a middleware stamping a header on a
// handler's response leaves the handler's value untouched.
type Response struct {
	Status  StatusCode
	Body    []byte
	Headers *headers.Headers
}

// New creates a 200 response with an HTML body.
func New(body string) *Response {
	hs := headers.New()
	hs.Set("connection", "close")
	hs.Set("content-type", "text/html")
	hs.Set("content-length", strconv.Itoa(len(body)))
	return &Response{
		Status:  StatusOK,
		Body:    []byte(body),
		Headers: hs,
	}
}

// WithStatus derives a response with the given status code.
func (r *Response) WithStatus(code StatusCode) *Response {
	derived := r.clone()
	derived.Status = code
	return derived
}

// WithHeader derives a response with the header field set.
func (r *Response) WithHeader(key, value string) *Response {
	derived := r.clone()
	derived.Headers.Set(key, value)
	return derived
}

// WithBody derives a response with the body replaced and the
// content-length field updated.
func (r *Response) WithBody(body []byte) *Response {
	derived := r.clone()
	derived.Body = body
	derived.Headers.Set("content-length", strconv.Itoa(len(body)))
	return derived
}

func (r *Response) clone() *Response {
	return &Response{
		Status:  r.Status,
		Body:    r.Body,
		Headers: r.Headers.Clone(),
	}
}

// Write serializes the response to w: status line, then every header
// field, then the body bytes verbatim.
func (r *Response) Write(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "HTTP/1.1 %d %s\r\n", r.Status, GetStatusReason(r.Status)); err != nil {
		return err
	}
	for k, v := range r.Headers.All() {
		if _, err := fmt.Fprintf(w, "%s: %s\r\n", k, v); err != nil {
			return err
		}
	}
	if _, err := io.WriteString(w, "\r\n"); err != nil {
		return err
	}
	if len(r.Body) > 0 {
		if _, err := w.Write(r.Body); err != nil {
			return err
		}
	}
	return nil
}
