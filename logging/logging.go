// Package logging provides a small leveled logfmt logger. The UI owns the
// terminal, so log output always goes to a file (or nowhere).
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"
)

type Level int

const (
	Debug Level = iota
	Info
	Warn
	Error
)

type Field struct {
	Key   string
	Value any
}

// F is shorthand for building a Field
func F(key string, value any) Field {
	return Field{Key: key, Value: value}
}

type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
	With(fields ...Field) Logger
	Enabled(level Level) bool
}

type logfmtLogger struct {
	out    io.Writer
	level  Level
	fields []Field
	mu     *sync.Mutex
}

// New creates a logger writing logfmt lines at or above level
func New(out io.Writer, level Level) Logger {
	if out == nil {
		out = io.Discard
	}
	return &logfmtLogger{out: out, level: level, mu: &sync.Mutex{}}
}

// Nop returns a logger that discards everything
func Nop() Logger {
	return &logfmtLogger{out: io.Discard, level: Error, mu: &sync.Mutex{}}
}

// OpenFile creates the state directory and opens the app log for append
func OpenFile(appName string) (*os.File, error) {
	dir := os.Getenv("XDG_STATE_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			dir = os.TempDir()
		} else {
			dir = filepath.Join(home, ".local", "state")
		}
	}
	dir = filepath.Join(dir, appName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	return os.OpenFile(filepath.Join(dir, appName+".log"),
		os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
}

func (l *logfmtLogger) Enabled(level Level) bool {
	if l == nil {
		return false
	}
	return level >= l.level
}

func (l *logfmtLogger) Debug(msg string, fields ...Field) { l.log(Debug, msg, fields) }
func (l *logfmtLogger) Info(msg string, fields ...Field)  { l.log(Info, msg, fields) }
func (l *logfmtLogger) Warn(msg string, fields ...Field)  { l.log(Warn, msg, fields) }
func (l *logfmtLogger) Error(msg string, fields ...Field) { l.log(Error, msg, fields) }

func (l *logfmtLogger) With(fields ...Field) Logger {
	combined := make([]Field, 0, len(l.fields)+len(fields))
	combined = append(combined, l.fields...)
	combined = append(combined, fields...)
	return &logfmtLogger{out: l.out, level: l.level, fields: combined, mu: l.mu}
}

func (l *logfmtLogger) log(level Level, msg string, fields []Field) {
	if !l.Enabled(level) {
		return
	}

	var b strings.Builder
	b.WriteString("ts=")
	b.WriteString(time.Now().Format(time.RFC3339))
	b.WriteString(" level=")
	b.WriteString(levelName(level))
	b.WriteString(" msg=")
	b.WriteString(quote(msg))
	for _, f := range l.fields {
		writeField(&b, f)
	}
	for _, f := range fields {
		writeField(&b, f)
	}
	b.WriteByte('\n')

	l.mu.Lock()
	defer l.mu.Unlock()
	io.WriteString(l.out, b.String())
}

func writeField(b *strings.Builder, f Field) {
	b.WriteByte(' ')
	b.WriteString(f.Key)
	b.WriteByte('=')
	switch v := f.Value.(type) {
	case string:
		b.WriteString(quote(v))
	case error:
		b.WriteString(quote(v.Error()))
	case int:
		b.WriteString(strconv.Itoa(v))
	case bool:
		b.WriteString(strconv.FormatBool(v))
	default:
		b.WriteString(quote(fmt.Sprint(v)))
	}
}

func quote(s string) string {
	if strings.ContainsAny(s, " \"=\n") {
		return strconv.Quote(s)
	}
	if s == "" {
		return `""`
	}
	return s
}

func levelName(l Level) string {
	switch l {
	case Debug:
		return "debug"
	case Info:
		return "info"
	case Warn:
		return "warn"
	default:
		return "error"
	}
}
