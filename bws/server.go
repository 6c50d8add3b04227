package bws

import (
	"bufio"
	"context"
	"errors"
	"net"
	"strconv"
	"strings"
	"sync"
	"time"

	"dqx0.com/go/bws/bws/internal/http1"
	"dqx0.com/go/bws/internal/obs"
)

// Server serves GET, HEAD and TRACE from a document root, one request per
// connection.
type Server struct {
	Addr       string
	Root       string // document root, "www" when empty
	ServerName string // Server header value, "bws" when empty
	// AccessLog receives one line per answered connection. Nil disables it.
	AccessLog *AccessLog
	Logger    obs.Logger
	Meter     obs.Meter
	// MaxLineBytes overrides the request line limit when positive.
	MaxLineBytes int

	now func() time.Time

	mu        sync.Mutex
	listeners map[net.Listener]struct{}
	closed    bool
	active    sync.WaitGroup
}

func (s *Server) ListenAndServe() error {
	addr := s.Addr
	if addr == "" {
		addr = ":8080"
	}
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ln)
}

// Serve accepts connections on l and handles each on its own goroutine.
func (s *Server) Serve(l net.Listener) error {
	if !s.track(l, true) {
		l.Close()
		return ErrServerClosed
	}
	defer s.track(l, false)
	defer l.Close()
	s.logf(obs.Info, "listening on %s", l.Addr())
	for {
		c, err := l.Accept()
		if err != nil {
			if s.shuttingDown() {
				return ErrServerClosed
			}
			return err
		}
		s.active.Add(1)
		go func() {
			defer s.active.Done()
			s.serveConn(c)
		}()
	}
}

// Shutdown stops accepting and waits for in-flight connections to finish
// or ctx to end. Connections are never interrupted.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	s.closed = true
	for l := range s.listeners {
		l.Close()
	}
	s.mu.Unlock()

	done := make(chan struct{})
	go func() {
		s.active.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Server) track(l net.Listener, add bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if add {
		if s.closed {
			return false
		}
		if s.listeners == nil {
			s.listeners = make(map[net.Listener]struct{})
		}
		s.listeners[l] = struct{}{}
	} else {
		delete(s.listeners, l)
	}
	return true
}

func (s *Server) shuttingDown() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// serveConn runs one connection from first byte to close. Request failures
// become error pages; transport failures drop the connection silently.
func (s *Server) serveConn(c net.Conn) {
	id := genID()
	br := bufio.NewReader(c)
	bw := bufio.NewWriter(c)
	defer s.release(id, c)
	s.meter().Counter("bws_connections_total", 1)

	now := s.clock()
	rr := &http1.Reader{BR: br, MaxLineBytes: s.MaxLineBytes}
	lines, err := rr.ReadHeaderBlock()
	if err != nil {
		s.transportError(id, err)
		return
	}
	for i, l := range lines {
		s.logf(obs.Debug, "conn=%s (%d) %s", id, i, l)
	}

	resp, err := s.respond(lines, now)
	if err != nil {
		var se *StatusError
		if !errors.As(err, &se) {
			s.transportError(id, err)
			return
		}
		s.logf(obs.Debug, "conn=%s %v", id, se)
		switch se.Kind {
		case BadRequest, NotFound, NotImplemented:
			resp = s.errorResponse(se.Kind, requestMethod(lines), now)
		default:
			s.transportError(id, err)
			return
		}
	}
	defer resp.close()

	n, err := resp.writeTo(bw)
	if err != nil {
		s.transportError(id, err)
		return
	}
	status := resp.header.StatusLine()
	s.logf(obs.Debug, "conn=%s sent %q body=%d", id, status, n)
	s.meter().Counter("bws_responses_total", 1, obs.Label{Key: "status", Value: strconv.Itoa(resp.header.Status)})
	s.meter().Histogram("bws_response_body_bytes", float64(n))

	var first string
	if len(lines) > 0 {
		first = lines[0]
	}
	s.logAccess(LogEntry{Time: now, ClientIP: clientIP(c), RequestLine: first, StatusLine: status})
}

func (s *Server) respond(lines []string, now time.Time) (*response, error) {
	req, err := ParseRequest(lines)
	if err != nil {
		return nil, err
	}
	return s.dispatch(req, now)
}

func (s *Server) transportError(id string, err error) {
	s.meter().Counter("bws_transport_errors_total", 1)
	s.logf(obs.Debug, "conn=%s io error: %v", id, err)
}

func (s *Server) logAccess(e LogEntry) {
	if s.AccessLog == nil {
		return
	}
	s.logf(obs.Debug, "logged: %s", e)
	if err := s.AccessLog.Append(e); err != nil {
		s.logf(obs.Error, "access log: %v", err)
	}
}

// release closes the read side, the write side and the socket, attempting
// each even when an earlier one fails.
func (s *Server) release(id string, c net.Conn) {
	if cr, ok := c.(interface{ CloseRead() error }); ok {
		if err := cr.CloseRead(); err != nil {
			s.logf(obs.Debug, "conn=%s close read: %v", id, err)
		}
	}
	if cw, ok := c.(interface{ CloseWrite() error }); ok {
		if err := cw.CloseWrite(); err != nil {
			s.logf(obs.Debug, "conn=%s close write: %v", id, err)
		}
	}
	if err := c.Close(); err != nil {
		s.logf(obs.Warn, "conn=%s close: %v", id, err)
	}
	s.logf(obs.Debug, "conn=%s closed", id)
}

func (s *Server) probe(candidate string, found bool) {
	s.logf(obs.Debug, "checking %s found=%t", candidate, found)
}

// requestMethod returns the method of a request line whose shape and method
// are valid, or "".
func requestMethod(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	parts := strings.Fields(lines[0])
	if len(parts) != 3 || !validMethods[parts[0]] {
		return ""
	}
	return parts[0]
}

func clientIP(c net.Conn) string {
	addr := c.RemoteAddr()
	if addr == nil {
		return ""
	}
	if tcp, ok := addr.(*net.TCPAddr); ok {
		return tcp.IP.String()
	}
	if host, _, err := net.SplitHostPort(addr.String()); err == nil {
		return host
	}
	return addr.String()
}

func (s *Server) root() string {
	if s.Root == "" {
		return "www"
	}
	return s.Root
}

func (s *Server) serverName() string {
	if s.ServerName == "" {
		return "bws"
	}
	return s.ServerName
}

func (s *Server) clock() time.Time {
	if s.now != nil {
		return s.now()
	}
	return time.Now()
}

func (s *Server) logf(level obs.Level, format string, args ...interface{}) {
	if s.Logger == nil {
		return
	}
	s.Logger.Logf(level, format, args...)
}

func (s *Server) meter() obs.Meter {
	if s.Meter == nil {
		return obs.NopMeter{}
	}
	return s.Meter
}
