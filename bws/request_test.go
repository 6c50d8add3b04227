package bws

import (
	"errors"
	"testing"
)

func TestParseRequest_Valid(t *testing.T) {
	r, err := ParseRequest([]string{"GET /a/b.txt HTTP/1.1", "User-Agent: t", "hOsT:  example.com "})
	if err != nil {
		t.Fatalf("ParseRequest: %v", err)
	}
	if r.Method != "GET" || r.Path != "/a/b.txt" || r.Version != "1.1" {
		t.Fatalf("got %+v", r)
	}
	if v, ok := r.Header("HOST"); !ok || v != "example.com" {
		t.Fatalf("Host=%q ok=%v", v, ok)
	}
	if _, ok := r.Header("Accept"); ok {
		t.Fatal("Accept should be absent")
	}
	if r.RequestLine() != "GET /a/b.txt HTTP/1.1" {
		t.Fatalf("RequestLine=%q", r.RequestLine())
	}
}

func TestParseRequest_HTTP10NoHost(t *testing.T) {
	r, err := ParseRequest([]string{"HEAD / HTTP/1.0"})
	if err != nil {
		t.Fatalf("ParseRequest: %v", err)
	}
	if r.Version != "1.0" {
		t.Fatalf("Version=%q", r.Version)
	}
}

func TestParseRequest_HeaderValueKeepsColons(t *testing.T) {
	r, err := ParseRequest([]string{"GET / HTTP/1.1", "Host: example.com:8080"})
	if err != nil {
		t.Fatal(err)
	}
	if v, _ := r.Header("host"); v != "example.com:8080" {
		t.Fatalf("Host=%q", v)
	}
}

func TestParseRequest_BadRequest(t *testing.T) {
	cases := []struct {
		name  string
		lines []string
	}{
		{"empty", nil},
		{"two tokens", []string{"GET /"}},
		{"four tokens", []string{"GET / HTTP/1.0 extra"}},
		{"unknown method", []string{"FETCH / HTTP/1.0"}},
		{"lowercase method", []string{"get / HTTP/1.0"}},
		{"relative path", []string{"GET index.html HTTP/1.0"}},
		{"bad proto", []string{"GET / HTTPS/1.0"}},
		{"1.1 without host", []string{"GET / HTTP/1.1", "Accept: */*"}},
		{"host in request line only", []string{"GET /host:x HTTP/1.1"}},
	}
	for _, tc := range cases {
		_, err := ParseRequest(tc.lines)
		var se *StatusError
		if !errors.As(err, &se) || se.Kind != BadRequest {
			t.Fatalf("%s: err=%v", tc.name, err)
		}
		if !errors.Is(err, ErrBadRequest) {
			t.Fatalf("%s: not ErrBadRequest", tc.name)
		}
	}
}

func TestRequestMethod(t *testing.T) {
	cases := map[string]string{
		"HEAD / HTTP/1.1":  "HEAD",
		"HEAD x HTTP/1.1":  "HEAD",
		"HEAD /":           "",
		"BREW / HTTP/1.1":  "",
		"POST /x HTTP/1.0": "POST",
	}
	for line, want := range cases {
		if got := requestMethod([]string{line}); got != want {
			t.Fatalf("%q: got %q want %q", line, got, want)
		}
	}
	if got := requestMethod(nil); got != "" {
		t.Fatalf("nil lines: %q", got)
	}
}
