package cliconfig

import (
	"fmt"
	"net/http"
	"strings"

	"golang.org/x/net/http/httpguts"
)

// ParseHeader splits a "Name: value" line. The value may be empty.
func ParseHeader(line string) (string, string, error) {
	name, value, ok := strings.Cut(line, ":")
	name = strings.TrimSpace(name)
	if !ok || name == "" {
		return "", "", fmt.Errorf("header %q: want \"Name: value\"", line)
	}
	return name, strings.TrimSpace(value), nil
}

// ParseHeaderList parses "Name: value; Name2: value2" as used by
// HTTPMETHODS_HEADERS. A piece that does not start with a "token:" prefix
// continues the previous value, so "Content-Type: text/plain; charset=utf-8"
// stays one header. Names are canonicalized.
func ParseHeaderList(list string) (map[string]string, error) {
	out := map[string]string{}
	last := ""
	for _, item := range strings.Split(list, ";") {
		if strings.TrimSpace(item) == "" {
			continue
		}
		if !startsHeader(item) {
			if last == "" {
				return nil, fmt.Errorf("header %q: want \"Name: value\"", item)
			}
			out[last] += "; " + strings.TrimSpace(item)
			continue
		}
		name, value, err := ParseHeader(item)
		if err != nil {
			return nil, err
		}
		last = http.CanonicalHeaderKey(name)
		out[last] = value
	}
	return out, nil
}

// startsHeader reports whether item begins with a valid header name and a colon.
func startsHeader(item string) bool {
	name, _, ok := strings.Cut(item, ":")
	return ok && httpguts.ValidHeaderFieldName(strings.TrimSpace(name))
}
