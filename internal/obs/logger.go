package obs

import (
	"fmt"
	"io"
	"log"
	"time"

	"github.com/rs/zerolog"
)

type Level int

const (
	Debug Level = iota
	Info
	Warn
	Error
)

func (l Level) String() string {
	switch l {
	case Debug:
		return "DEBUG"
	case Info:
		return "INFO"
	case Warn:
		return "WARN"
	case Error:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Logger is the operator diagnostic channel used by the server.
type Logger interface {
	Logf(level Level, format string, args ...interface{})
}

// NopLogger discards all logs.
type NopLogger struct{}

func (NopLogger) Logf(level Level, format string, args ...interface{}) {}

// StdLogger adapts the standard library logger.
type StdLogger struct {
	L    *log.Logger
	Min  Level
	Pref string // optional prefix per log line
}

func (s StdLogger) Logf(level Level, format string, args ...interface{}) {
	if s.L == nil {
		return
	}
	if level < s.Min {
		return
	}
	if s.Pref != "" {
		s.L.Printf("%s[%s] "+format, append([]interface{}{s.Pref, level.String()}, args...)...)
	} else {
		s.L.Printf("[%s] "+format, append([]interface{}{level.String()}, args...)...)
	}
}

// ZeroLogger writes leveled, structured lines through zerolog.
type ZeroLogger struct {
	zl zerolog.Logger
}

// NewZeroLogger returns a ZeroLogger writing to w. When console is true the
// output is human readable instead of JSON.
func NewZeroLogger(w io.Writer, min Level, console bool) *ZeroLogger {
	if console {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}
	zl := zerolog.New(w).Level(zeroLevel(min)).With().Timestamp().Logger()
	return &ZeroLogger{zl: zl}
}

// With returns a logger that tags every line with key=value.
func (z *ZeroLogger) With(key, value string) *ZeroLogger {
	return &ZeroLogger{zl: z.zl.With().Str(key, value).Logger()}
}

func (z *ZeroLogger) Logf(level Level, format string, args ...interface{}) {
	if z == nil {
		return
	}
	z.zl.WithLevel(zeroLevel(level)).Msg(fmt.Sprintf(format, args...))
}

func zeroLevel(l Level) zerolog.Level {
	switch l {
	case Debug:
		return zerolog.DebugLevel
	case Info:
		return zerolog.InfoLevel
	case Warn:
		return zerolog.WarnLevel
	default:
		return zerolog.ErrorLevel
	}
}
