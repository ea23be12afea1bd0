package headers

import (
	"iter"
	"maps"
	"strings"
)

// Headers is a case-insensitive collection of HTTP header fields. Names
// are validated against the RFC 9110 token grammar and stored lowercased;
// values admit HTAB, SP, VCHAR and obs-text. Invalid fields are dropped
// rather than written to the wire.
type Headers struct {
	fields map[string]string
}

// New creates an empty Headers collection.
func New() *Headers {
	return &Headers{fields: map[string]string{}}
}

// isTokenByte reports whether c may appear in a field name.
// https://datatracker.ietf.org/doc/html/rfc9110#name-tokens
func isTokenByte(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	switch c {
	case '!', '#', '$', '%', '&', '\'', '*', '+', '-', '.', '^', '_', '`', '|', '~':
		return true
	}
	return false
}

func isValidFieldName(name string) bool {
	if name == "" {
		return false
	}
	for i := 0; i < len(name); i++ {
		if !isTokenByte(name[i]) {
			return false
		}
	}
	return true
}

func isValidFieldValue(value string) bool {
	for i := 0; i < len(value); i++ {
		c := value[i]
		if c == '\t' || c == ' ' || (0x21 <= c && c <= 0x7E) || c >= 0x80 {
			continue
		}
		return false
	}
	return true
}

// Add adds a field. A repeated name appends to the existing value,
// comma-separated, per the list-field rule.
func (h *Headers) Add(name, value string) {
	if !isValidFieldName(name) || !isValidFieldValue(value) {
		return
	}
	name = strings.ToLower(name)
	if existing, ok := h.fields[name]; ok {
		h.fields[name] = existing + ", " + value
		return
	}
	h.fields[name] = value
}

// Set replaces the value of a field, discarding any previous value.
func (h *Headers) Set(name, value string) {
	if !isValidFieldName(name) || !isValidFieldValue(value) {
		return
	}
	h.fields[strings.ToLower(name)] = value
}

// Get returns the value of a field, or "" if absent.
func (h *Headers) Get(name string) string {
	return h.fields[strings.ToLower(name)]
}

// Remove deletes a field.
func (h *Headers) Remove(name string) {
	delete(h.fields, strings.ToLower(name))
}

// All returns an iterator over all fields.
func (h *Headers) All() iter.Seq2[string, string] {
	return maps.All(h.fields)
}

// Size returns the number of fields.
func (h *Headers) Size() int {
	return len(h.fields)
}

// Clone returns an independent copy of the collection.
func (h *Headers) Clone() *Headers {
	return &Headers{fields: maps.Clone(h.fields)}
}

// ParseFieldLine parses one `name: value` wire line into the collection.
// Whitespace around the value is optional; whitespace between the name
// and the colon is a parse error.
func (h *Headers) ParseFieldLine(data []byte) error {
	name, value, found := strings.Cut(string(data), ":")
	if !found {
		return ErrMalformedHeader
	}
	name = strings.TrimLeft(name, " \t")
	if strings.TrimRight(name, " \t") != name {
		return ErrMalformedHeader
	}
	value = strings.Trim(value, " \t")
	if !isValidFieldName(name) || !isValidFieldValue(value) {
		return ErrMalformedHeader
	}
	h.Add(name, value)
	return nil
}
