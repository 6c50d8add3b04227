package obs

import (
	"bytes"
	"log"
	"strings"
	"testing"
)

func TestStdLogger_MinLevel(t *testing.T) {
	var buf bytes.Buffer
	l := StdLogger{L: log.New(&buf, "", 0), Min: Warn}
	l.Logf(Info, "dropped %d", 1)
	l.Logf(Error, "kept %d", 2)
	if got := buf.String(); got != "[ERROR] kept 2\n" {
		t.Fatalf("output=%q", got)
	}
}

func TestZeroLogger_LevelAndFields(t *testing.T) {
	var buf bytes.Buffer
	l := NewZeroLogger(&buf, Info, false).With("conn", "1")
	l.Logf(Debug, "hidden")
	l.Logf(Warn, "close failed: %s", "boom")
	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("debug line leaked: %q", out)
	}
	for _, want := range []string{`"level":"warn"`, `"conn":"1"`, `"message":"close failed: boom"`} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %s in %q", want, out)
		}
	}
}

func TestMemMeter(t *testing.T) {
	m := &MemMeter{}
	m.Counter("hits", 1, Label{"status", "200"})
	m.Counter("hits", 2, Label{"status", "200"})
	m.Histogram("bytes", 10)
	if got := m.Count("hits", Label{"status", "200"}); got != 3 {
		t.Fatalf("count=%v", got)
	}
	if got := m.Count("hits"); got != 0 {
		t.Fatalf("unlabelled count=%v", got)
	}
	if got := m.Samples("bytes"); len(got) != 1 || got[0] != 10 {
		t.Fatalf("samples=%v", got)
	}
}
