package bws

import (
	"bufio"
	"io"
	"strconv"
	"strings"
	"time"

	"dqx0.com/go/bws/bws/internal/http1"
)

// TimeFormat is used for the Date and Last-Modified headers.
const TimeFormat = "Mon, 02 Jan 2006 15:04:05 GMT"

// ResponseHeader is the header block of a single response. Every response
// closes the connection.
type ResponseHeader struct {
	Status        int
	Reason        string
	Date          time.Time
	Server        string
	LastModified  time.Time // omitted when zero
	ContentLength int64
	ContentType   string
}

func (h *ResponseHeader) StatusLine() string {
	return http1.StatusLine(h.Status, h.Reason)
}

func (h *ResponseHeader) fields() []http1.Field {
	f := make([]http1.Field, 0, 6)
	f = append(f,
		http1.Field{Name: "Date", Value: h.Date.UTC().Format(TimeFormat)},
		http1.Field{Name: "Connection", Value: "close"},
		http1.Field{Name: "Server", Value: h.Server},
	)
	if !h.LastModified.IsZero() {
		f = append(f, http1.Field{Name: "Last-Modified", Value: h.LastModified.UTC().Format(TimeFormat)})
	}
	return append(f,
		http1.Field{Name: "Content-Length", Value: strconv.FormatInt(h.ContentLength, 10)},
		http1.Field{Name: "Content-Type", Value: h.ContentType},
	)
}

// response is a header plus an optional body. A nil body sends the header
// only.
type response struct {
	header ResponseHeader
	body   io.Reader
	closer io.Closer
}

func (r *response) close() error {
	if r.closer == nil {
		return nil
	}
	return r.closer.Close()
}

// writeTo sends the response and reports how many body bytes went out.
func (r *response) writeTo(bw *bufio.Writer) (int64, error) {
	if err := http1.WriteHeader(bw, r.header.StatusLine(), r.header.fields()); err != nil {
		return 0, err
	}
	var n int64
	if r.body != nil {
		var err error
		if n, err = io.Copy(bw, r.body); err != nil {
			return n, err
		}
	}
	return n, bw.Flush()
}

func (s *Server) fileResponse(res *Resource, now time.Time) *response {
	return &response{header: ResponseHeader{
		Status:        200,
		Date:          now,
		Server:        s.serverName(),
		LastModified:  res.ModTime,
		ContentLength: res.Size,
		ContentType:   res.ContentType,
	}}
}

func (s *Server) traceResponse(req *Request, now time.Time) *response {
	var sb strings.Builder
	for _, l := range req.Lines {
		sb.WriteString(l)
		sb.WriteString("\r\n")
	}
	sb.WriteString("\r\n")
	echo := sb.String()
	return &response{
		header: ResponseHeader{
			Status:        200,
			Date:          now,
			Server:        s.serverName(),
			ContentLength: int64(len(echo)),
			ContentType:   "message/http",
		},
		body: strings.NewReader(echo),
	}
}

// errorResponse builds the fixed page for kind. When the request was a HEAD
// the body is withheld but Content-Length still describes it.
func (s *Server) errorResponse(kind ErrorKind, method string, now time.Time) *response {
	page := errorPages[kind]
	resp := &response{header: ResponseHeader{
		Status:        page.status,
		Date:          now,
		Server:        s.serverName(),
		ContentLength: int64(len(page.body)),
		ContentType:   "text/html",
	}}
	if method != "HEAD" {
		resp.body = strings.NewReader(page.body)
	}
	return resp
}

// dispatch routes a validated request to its method handler.
func (s *Server) dispatch(req *Request, now time.Time) (*response, error) {
	switch req.Method {
	case "GET", "HEAD":
		res, err := Resolve(s.root(), req.Path, s.probe)
		if err != nil {
			return nil, err
		}
		resp := s.fileResponse(res, now)
		if req.Method == "HEAD" {
			return resp, nil
		}
		f, err := res.Open()
		if err != nil {
			return nil, statusErr(NotFound, err.Error())
		}
		resp.body, resp.closer = io.LimitReader(f, res.Size), f
		return resp, nil
	case "TRACE":
		return s.traceResponse(req, now), nil
	default:
		return nil, statusErr(NotImplemented, req.Method)
	}
}
