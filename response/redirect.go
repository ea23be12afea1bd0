package response

// NewRedirect creates a redirect response. Uses status code 302 (Found),
// forces a Location header and carries no body.
func NewRedirect(location string) *Response {
	return New("").
		WithStatus(StatusFound).
		WithHeader("location", location)
}
