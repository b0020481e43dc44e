// Package rawhttp decodes HTTP responses captured as a single text blob, e.g. with `curl -i`.
package rawhttp

import (
	"strconv"
	"strings"
)

// StatusUnknown is reported when the blob carries no usable status line.
const StatusUnknown = 0

const (
	headerBodySeparator = "\r\n\r\n"
	statusLinePrefix    = "http/"
)

type Response struct {
	StatusCode int
	Headers    map[string]string
	Body       string
}

// Decode splits raw at the first blank line into header section and body. The body is returned
// verbatim. Header lines without a colon are ignored and the last value of a repeated header wins.
func Decode(raw string) Response {
	head, body, _ := strings.Cut(raw, headerBodySeparator)

	resp := Response{
		StatusCode: StatusUnknown,
		Headers:    map[string]string{},
		Body:       body,
	}

	statusSeen := false
	for _, line := range strings.Split(head, "\r\n") {
		if !statusSeen && strings.HasPrefix(strings.ToLower(line), statusLinePrefix) {
			statusSeen = true
			resp.StatusCode = parseStatusCode(line)
			continue
		}

		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		resp.Headers[key] = strings.TrimSpace(value)
	}

	return resp
}

// parseStatusCode reads the second token of a status line like "HTTP/1.1 200 OK".
func parseStatusCode(line string) int {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return StatusUnknown
	}
	code, err := strconv.Atoi(fields[1])
	if err != nil || code < 100 || code > 999 {
		return StatusUnknown
	}
	return code
}
