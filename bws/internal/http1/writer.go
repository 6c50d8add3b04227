package http1

import (
	"bufio"
	"fmt"
	"strings"
)

// Field is one response header line. Fields are written in slice order.
type Field struct {
	Name  string
	Value string
}

// StatusLine formats the HTTP/1.1 status line without its terminator.
func StatusLine(status int, reason string) string {
	if reason == "" {
		reason = DefaultReason(status)
	}
	return fmt.Sprintf("HTTP/1.1 %d %s", status, reason)
}

// WriteHeader writes the status line, the fields and the blank line that
// ends the header block. It does not write any body bytes.
func WriteHeader(bw *bufio.Writer, statusLine string, fields []Field) error {
	if _, err := fmt.Fprintf(bw, "%s\r\n", statusLine); err != nil {
		return err
	}
	for _, f := range fields {
		if _, err := fmt.Fprintf(bw, "%s: %s\r\n", f.Name, sanitizeHeaderValue(f.Value)); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprint(bw, "\r\n"); err != nil {
		return err
	}
	return nil
}

func DefaultReason(code int) string {
	switch code {
	case 200:
		return "OK"
	case 400:
		return "Bad Request"
	case 404:
		return "Not Found"
	case 500:
		return "Internal Server Error"
	case 501:
		return "Not Implemented"
	default:
		return ""
	}
}

func sanitizeHeaderValue(v string) string {
	if v == "" {
		return v
	}
	// Remove CR/LF and other control chars except HTAB
	var b strings.Builder
	b.Grow(len(v))
	for i := 0; i < len(v); i++ {
		c := v[i]
		if c == '\r' || c == '\n' || c == 0x7f {
			continue
		}
		if c < 0x20 && c != '\t' {
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}
