package http1

import (
	"bufio"
	"errors"
	"io"
	"strings"
	"testing"
)

func newReader(raw string) *Reader {
	return &Reader{BR: bufio.NewReader(strings.NewReader(raw))}
}

func TestReader_LineTerminators(t *testing.T) {
	r := newReader("GET / HTTP/1.0\r\nA: b\nC:\rd\r\n\r\n")
	want := []string{"GET / HTTP/1.0", "A: b", "C:d", ""}
	for i, w := range want {
		got, err := r.ReadLine()
		if err != nil {
			t.Fatalf("line %d: %v", i, err)
		}
		if got != w {
			t.Fatalf("line %d=%q want %q", i, got, w)
		}
	}
	if _, err := r.ReadLine(); err != io.EOF {
		t.Fatalf("err=%v want EOF", err)
	}
}

func TestReader_PartialLineEOF(t *testing.T) {
	if _, err := newReader("GET / HT").ReadLine(); !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Fatalf("err=%v", err)
	}
}

func TestReader_Overflow(t *testing.T) {
	ok := strings.Repeat("a", MaxLineBytes) + "\n"
	if got, err := newReader(ok).ReadLine(); err != nil || len(got) != MaxLineBytes {
		t.Fatalf("len=%d err=%v", len(got), err)
	}
	long := strings.Repeat("a", MaxLineBytes+1) + "\n"
	if _, err := newReader(long).ReadLine(); !errors.Is(err, ErrLineTooLong) {
		t.Fatalf("err=%v", err)
	}
}

func TestReader_OverflowCustomLimit(t *testing.T) {
	r := &Reader{BR: bufio.NewReader(strings.NewReader("abcdef\n")), MaxLineBytes: 4}
	if _, err := r.ReadLine(); !errors.Is(err, ErrLineTooLong) {
		t.Fatalf("err=%v", err)
	}
}

func TestReader_Flood(t *testing.T) {
	nuls := strings.Repeat("\x00", MaxNulRun)
	if _, err := newReader(nuls + "\n").ReadLine(); err != nil {
		t.Fatalf("%d NULs rejected: %v", MaxNulRun, err)
	}
	if _, err := newReader(nuls + "\x00").ReadLine(); !errors.Is(err, ErrFlood) {
		t.Fatalf("err=%v", err)
	}
	// a non-NUL byte resets the run
	if _, err := newReader(nuls + "x" + nuls + "\n").ReadLine(); err != nil {
		t.Fatalf("interrupted runs rejected: %v", err)
	}
}

func TestReader_HeaderBlock(t *testing.T) {
	lines, err := newReader("TRACE / HTTP/1.1\r\nHost: x\r\n\r\nignored").ReadHeaderBlock()
	if err != nil {
		t.Fatalf("ReadHeaderBlock: %v", err)
	}
	if len(lines) != 2 || lines[0] != "TRACE / HTTP/1.1" || lines[1] != "Host: x" {
		t.Fatalf("lines=%q", lines)
	}
}

func TestReader_HeaderBlockCap(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("GET / HTTP/1.0\r\n")
	for i := 0; i < 100; i++ {
		sb.WriteString("X-Pad: 1\r\n")
	}
	sb.WriteString("\r\n")
	r := newReader(sb.String())
	lines, err := r.ReadHeaderBlock()
	if err != nil {
		t.Fatalf("ReadHeaderBlock: %v", err)
	}
	if len(lines) != MaxHeaderLines {
		t.Fatalf("len=%d", len(lines))
	}
	// reading stopped at the cap; the rest is left unread
	if next, _ := r.ReadLine(); next != "X-Pad: 1" {
		t.Fatalf("next=%q", next)
	}
}

func TestReader_HeaderBlockTransportError(t *testing.T) {
	_, err := newReader(strings.Repeat("\x00", 40)).ReadHeaderBlock()
	if !errors.Is(err, ErrFlood) {
		t.Fatalf("err=%v", err)
	}
}
