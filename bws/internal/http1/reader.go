package http1

import (
	"bufio"
	"errors"
	"fmt"
	"io"
)

const (
	// MaxLineBytes bounds a single request or header line.
	MaxLineBytes = 32768
	// MaxNulRun is the longest run of NUL bytes tolerated inside a line.
	MaxNulRun = 16
	// MaxHeaderLines caps how many lines of a header block are kept.
	MaxHeaderLines = 64
)

var (
	ErrLineTooLong = errors.New("http1: line exceeds buffer size")
	ErrFlood       = errors.New("http1: connection flooded with zeros")
)

type Reader struct {
	BR *bufio.Reader
	// MaxLineBytes overrides the package default when positive.
	MaxLineBytes int
}

// ReadLine returns the next line with its LF terminator and any CR bytes
// removed. An empty string is a blank line.
func (r *Reader) ReadLine() (string, error) {
	limit := r.MaxLineBytes
	if limit <= 0 {
		limit = MaxLineBytes
	}
	var line []byte
	nuls := 0
	for {
		b, err := r.BR.ReadByte()
		if err != nil {
			if err == io.EOF && len(line) > 0 {
				err = io.ErrUnexpectedEOF
			}
			return "", err
		}
		if b == '\n' {
			break
		}
		if b == '\r' {
			continue
		}
		if b == 0 {
			if nuls++; nuls > MaxNulRun {
				return "", ErrFlood
			}
		} else {
			nuls = 0
		}
		line = append(line, b)
		if len(line) > limit {
			return "", ErrLineTooLong
		}
	}
	return string(line), nil
}

// ReadHeaderBlock reads lines up to the blank line ending the header block,
// stopping early once MaxHeaderLines lines are held.
func (r *Reader) ReadHeaderBlock() ([]string, error) {
	var lines []string
	for len(lines) < MaxHeaderLines {
		line, err := r.ReadLine()
		if err != nil {
			return lines, fmt.Errorf("read header line %d: %w", len(lines), err)
		}
		if line == "" {
			break
		}
		lines = append(lines, line)
	}
	return lines, nil
}
