package request

import "errors"

// ErrMalformedRequestLine is returned when the request line does not match
// `METHOD target HTTP/1.1`.
var ErrMalformedRequestLine = errors.New("malformed request line")

// ErrIncompleteRequest is returned when the stream ends before the header
// section is terminated.
var ErrIncompleteRequest = errors.New("incomplete request")

// ErrBodyTooShort is returned when fewer body bytes are available than the
// content-length header declared.
var ErrBodyTooShort = errors.New("request body shorter than declared content-length")
