package request

import (
	"bufio"
	"strings"
)

// readLine reads one CRLF-terminated line from br and returns it without
// the terminator. A bufio.Reader is used instead of a Scanner so the body
// bytes that follow the header section stay readable.
func readLine(br *bufio.Reader) (string, error) {
	line, err := br.ReadString('\n')
	if err != nil {
		return "", ErrIncompleteRequest
	}
	if !strings.HasSuffix(line, "\r\n") {
		return "", ErrIncompleteRequest
	}
	return strings.TrimSuffix(line, "\r\n"), nil
}
