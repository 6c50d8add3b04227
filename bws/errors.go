package bws

import "errors"

var (
	ErrBadRequest     = errors.New("bws: bad request")
	ErrNotFound       = errors.New("bws: not found")
	ErrNotImplemented = errors.New("bws: not implemented")
)

// ErrorKind names the request failures that are answered with an HTTP
// error response rather than a dropped connection.
type ErrorKind int

const (
	BadRequest ErrorKind = iota + 1
	NotFound
	NotImplemented
)

func (k ErrorKind) String() string {
	switch k {
	case BadRequest:
		return "BadRequest"
	case NotFound:
		return "NotFound"
	case NotImplemented:
		return "NotImplemented"
	default:
		return "Unknown"
	}
}

// StatusError carries an ErrorKind out of the parse, resolve and dispatch
// stages. It unwraps to the matching sentinel.
type StatusError struct {
	Kind   ErrorKind
	Detail string
}

func (e *StatusError) Error() string {
	msg := e.Unwrap().Error()
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

func (e *StatusError) Unwrap() error {
	switch e.Kind {
	case BadRequest:
		return ErrBadRequest
	case NotFound:
		return ErrNotFound
	default:
		return ErrNotImplemented
	}
}

func statusErr(kind ErrorKind, detail string) error {
	return &StatusError{Kind: kind, Detail: detail}
}

// errorPage is the fixed status and HTML body sent for each ErrorKind.
type errorPage struct {
	status int
	body   string
}

var errorPages = map[ErrorKind]errorPage{
	BadRequest:     {400, "<h1>Bad Request</h1>\r\n"},
	NotFound:       {404, "<h1>Page Not Found</h1>\r\n"},
	NotImplemented: {501, "<h1>Not Implemented</h1>\r\n"},
}

// ErrServerClosed is returned by Serve after Shutdown.
var ErrServerClosed = errors.New("bws: server closed")
