package bws

import (
	"strings"
)

var validMethods = map[string]bool{
	"OPTIONS": true,
	"GET":     true,
	"HEAD":    true,
	"POST":    true,
	"PUT":     true,
	"DELETE":  true,
	"TRACE":   true,
	"CONNECT": true,
}

// Request is a validated request head.
//
// Lines holds the raw header block as received, request line first, and is
// what TRACE echoes and the access log quotes.
type Request struct {
	Method  string
	Path    string
	Version string // text after "HTTP/", e.g. "1.1"
	Lines   []string
}

// RequestLine returns the first received line.
func (r *Request) RequestLine() string {
	if r == nil || len(r.Lines) == 0 {
		return ""
	}
	return r.Lines[0]
}

// Header returns the trimmed value of the first header whose key matches
// name case-insensitively.
func (r *Request) Header(name string) (string, bool) {
	if r == nil || len(r.Lines) < 2 {
		return "", false
	}
	for _, line := range r.Lines[1:] {
		i := strings.IndexByte(line, ':')
		if i < 0 {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(line[:i]), name) {
			return strings.TrimSpace(line[i+1:]), true
		}
	}
	return "", false
}

// ParseRequest validates a header block read off the wire. Failures are
// *StatusError values of kind BadRequest.
func ParseRequest(lines []string) (*Request, error) {
	if len(lines) == 0 {
		return nil, statusErr(BadRequest, "empty request")
	}
	parts := strings.Fields(lines[0])
	if len(parts) != 3 {
		return nil, statusErr(BadRequest, "malformed request line")
	}
	method, path, proto := parts[0], parts[1], parts[2]
	if !validMethods[method] {
		return nil, statusErr(BadRequest, "invalid method "+method)
	}
	if !strings.HasPrefix(path, "/") {
		return nil, statusErr(BadRequest, "path must start with /")
	}
	if !strings.HasPrefix(proto, "HTTP/") {
		return nil, statusErr(BadRequest, "invalid protocol "+proto)
	}
	r := &Request{
		Method:  method,
		Path:    path,
		Version: strings.TrimPrefix(proto, "HTTP/"),
		Lines:   lines,
	}
	if r.Version == "1.1" {
		if _, ok := r.Header("Host"); !ok {
			return nil, statusErr(BadRequest, "missing Host header")
		}
	}
	return r, nil
}
