package bws

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// LogTimeFormat stamps access log lines.
const LogTimeFormat = "02/Jan/2006 15:04:05"

// LogEntry is one access log line.
type LogEntry struct {
	Time        time.Time
	ClientIP    string
	RequestLine string // empty when nothing was parsed
	StatusLine  string // as sent, e.g. "HTTP/1.1 200 OK"
}

// Status returns the code and reason of the status line.
func (e LogEntry) Status() string {
	s := e.StatusLine
	if i := strings.IndexByte(s, ' '); i >= 0 {
		s = s[i+1:]
	}
	if i := strings.IndexAny(s, "\r\n"); i >= 0 {
		s = s[:i]
	}
	return s
}

func (e LogEntry) String() string {
	return fmt.Sprintf("%s - %s %q %s", e.Time.UTC().Format(LogTimeFormat), e.ClientIP, e.RequestLine, e.Status())
}

// AccessLog is an append-only sink shared by every connection. Appends are
// serialized so lines never interleave.
type AccessLog struct {
	mu   sync.Mutex
	path string
	w    io.Writer
}

// NewAccessLog appends to the file at path, creating it on first use. The
// file is opened and closed around every line.
func NewAccessLog(path string) *AccessLog {
	return &AccessLog{path: path}
}

// NewAccessLogWriter appends lines to w.
func NewAccessLogWriter(w io.Writer) *AccessLog {
	return &AccessLog{w: w}
}

func (l *AccessLog) Append(e LogEntry) error {
	line := e.String() + "\n"
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.w != nil {
		_, err := io.WriteString(l.w, line)
		return err
	}
	f, err := os.OpenFile(l.path, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0644)
	if err != nil {
		return fmt.Errorf("open access log: %w", err)
	}
	if _, err := f.WriteString(line); err != nil {
		f.Close()
		return fmt.Errorf("write access log: %w", err)
	}
	return f.Close()
}
