package request

import (
	"bufio"
	"fmt"
	"io"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/skeletohq/skeleto/headers"
)

// MethodType is an HTTP request verb.
type MethodType string

const (
	GET     MethodType = "GET"
	HEAD    MethodType = "HEAD"
	POST    MethodType = "POST"
	PUT     MethodType = "PUT"
	PATCH   MethodType = "PATCH"
	DELETE  MethodType = "DELETE"
	OPTIONS MethodType = "OPTIONS"
)

var requestLineRegex = regexp.MustCompile(`^(GET|HEAD|POST|PUT|PATCH|DELETE|OPTIONS) ([^\s]*) HTTP/1\.1$`)

// bodyMethods are the verbs for which a request body is read.
var bodyMethods = map[MethodType]bool{POST: true, PUT: true, PATCH: true}

// Context holds everything parsed from one inbound request. It is fully
// populated before any middleware runs, never re-parsed, and owned by a
// single request-handling flow.
type Context struct {
	Method    MethodType
	RawTarget string
	Path      string
	Query     map[string]string
	Headers   *headers.Headers
	Cookies   map[string]string
	Body      []byte
	Form      map[string]string

	// PathParams is filled by the router from named capture groups.
	PathParams map[string]string

	// RemoteAddr is the peer address of the owning connection, set by
	// the server after parsing.
	RemoteAddr string
}

// FromReader parses a raw request into a Context. The body is read exactly
// once, for exactly the declared content-length; a shorter stream is a
// fatal parse error for the owning request.
func FromReader(reader io.Reader) (*Context, error) {
	br := bufio.NewReader(reader)

	line, err := readLine(br)
	if err != nil {
		return nil, err
	}
	matches := requestLineRegex.FindStringSubmatch(line)
	if matches == nil {
		return nil, ErrMalformedRequestLine
	}

	ctx := &Context{
		Method:     MethodType(matches[1]),
		RawTarget:  matches[2],
		Headers:    headers.New(),
		PathParams: map[string]string{},
	}

	for {
		line, err := readLine(br)
		if err != nil {
			return nil, err
		}
		if line == "" {
			// double CRLF, header section over
			break
		}
		if err := ctx.Headers.ParseFieldLine([]byte(line)); err != nil {
			return nil, err
		}
	}

	ctx.parseTarget()
	ctx.parseCookies()

	if err := ctx.readBody(br); err != nil {
		return nil, err
	}
	ctx.parseForm()

	return ctx, nil
}

// parseTarget splits the raw target into decoded path and query mapping.
func (c *Context) parseTarget() {
	rawPath, rawQuery, _ := strings.Cut(c.RawTarget, "?")
	if decoded, err := url.PathUnescape(rawPath); err == nil {
		c.Path = decoded
	} else {
		c.Path = rawPath
	}
	c.Query = parseURLEncoded(rawQuery)
}

// parseCookies splits the cookie header on "; " and each part on the first
// "=". Parts without "=" are dropped. Cookie values are not decoded.
func (c *Context) parseCookies() {
	c.Cookies = map[string]string{}
	raw := c.Headers.Get("cookie")
	if raw == "" {
		return
	}
	for _, part := range strings.Split(raw, "; ") {
		name, value, found := strings.Cut(part, "=")
		if !found {
			continue
		}
		c.Cookies[name] = value
	}
}

// readBody reads exactly content-length bytes for body-bearing methods.
// A missing or invalid content-length header means zero length by policy.
func (c *Context) readBody(br *bufio.Reader) error {
	if !bodyMethods[c.Method] {
		return nil
	}
	length, err := strconv.Atoi(c.Headers.Get("content-length"))
	if err != nil || length <= 0 {
		return nil
	}
	body := make([]byte, length)
	if _, err := io.ReadFull(br, body); err != nil {
		return fmt.Errorf("%w: %w", ErrBodyTooShort, err)
	}
	c.Body = body
	return nil
}

// parseForm decodes the body into the form mapping when the content type
// indicates a URL-encoded form. Other content types leave the form empty
// and the raw body available.
func (c *Context) parseForm() {
	c.Form = map[string]string{}
	if !bodyMethods[c.Method] || len(c.Body) == 0 {
		return
	}
	if !strings.Contains(c.Headers.Get("content-type"), "application/x-www-form-urlencoded") {
		return
	}
	c.Form = parseURLEncoded(string(c.Body))
}

// parseURLEncoded decodes `k=v&k2=v2` pairs with percent-decoding and
// `+` as space. Duplicate keys keep the last occurrence. Undecodable
// tokens are kept raw rather than rejected.
func parseURLEncoded(s string) map[string]string {
	pairs := map[string]string{}
	for _, pair := range strings.Split(s, "&") {
		if pair == "" {
			continue
		}
		key, value, _ := strings.Cut(pair, "=")
		pairs[unescapeLenient(key)] = unescapeLenient(value)
	}
	return pairs
}

func unescapeLenient(s string) string {
	decoded, err := url.QueryUnescape(s)
	if err != nil {
		return s
	}
	return decoded
}
