package response

import (
	"fmt"
	"html"
)

// NewError creates an error response with a rendered HTML body. The
// message is escaped before being embedded. Status defaults to 500 when
// zero.
func NewError(message string, status StatusCode) *Response {
	if status == 0 {
		status = StatusInternalServerError
	}
	body := fmt.Sprintf("<h1>Error %d</h1><p>%s</p>", status, html.EscapeString(message))
	return New(body).WithStatus(status)
}
