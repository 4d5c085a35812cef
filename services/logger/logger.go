package logger

import (
	"io"
	"log"
	"os"
	"path/filepath"
)

// Level is the minimum severity a logger writes.
type Level int

const (
	DebugLevel Level = iota
	InfoLevel
	ErrorLevel
)

// Logger is the printf-style logger shared by the server and the client packages.
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
	Debug(format string, v ...interface{})
}

// DefaultLogger writes through a standard library *log.Logger.
type DefaultLogger struct {
	level Level
	out   *log.Logger
}

// NewDefaultLogger logs to stderr with the standard flags.
func NewDefaultLogger(level Level) *DefaultLogger {
	return &DefaultLogger{
		level: level,
		out:   log.Default(),
	}
}

// NewWriterLogger logs to w.
func NewWriterLogger(w io.Writer, level Level) *DefaultLogger {
	return &DefaultLogger{
		level: level,
		out:   log.New(w, "", log.LstdFlags),
	}
}

// NewFileLogger appends to the file at path, creating its directory. The
// returned closer releases the file.
func NewFileLogger(path string, level Level) (*DefaultLogger, io.Closer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}
	return NewWriterLogger(f, level), f, nil
}

func (l *DefaultLogger) Info(format string, v ...interface{}) {
	if l.level <= InfoLevel {
		l.out.Printf("[INFO] "+format, v...)
	}
}

func (l *DefaultLogger) Error(format string, v ...interface{}) {
	if l.level <= ErrorLevel {
		l.out.Printf("[ERROR] "+format, v...)
	}
}

func (l *DefaultLogger) Debug(format string, v ...interface{}) {
	if l.level <= DebugLevel {
		l.out.Printf("[DEBUG] "+format, v...)
	}
}

// Nop discards everything.
type Nop struct{}

func (Nop) Info(string, ...interface{})  {}
func (Nop) Error(string, ...interface{}) {}
func (Nop) Debug(string, ...interface{}) {}
