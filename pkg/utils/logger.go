package utils

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/hashicorp/go-hclog"
)

// LogLevel represents the verbosity level of logging
type LogLevel int

const (
	ErrorLevel LogLevel = iota
	WarningLevel
	InfoLevel
	DebugLevel
	TraceLevel
)

// String returns a string representation of the log level
func (l LogLevel) String() string {
	switch l {
	case ErrorLevel:
		return "ERROR"
	case WarningLevel:
		return "WARNING"
	case InfoLevel:
		return "INFO"
	case DebugLevel:
		return "DEBUG"
	case TraceLevel:
		return "TRACE"
	default:
		return "UNKNOWN"
	}
}

// ParseLogLevel converts a level name such as "debug" to a LogLevel
func ParseLogLevel(name string) (LogLevel, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "ERROR":
		return ErrorLevel, nil
	case "WARNING", "WARN":
		return WarningLevel, nil
	case "INFO", "":
		return InfoLevel, nil
	case "DEBUG":
		return DebugLevel, nil
	case "TRACE":
		return TraceLevel, nil
	default:
		return InfoLevel, fmt.Errorf("unknown log level: %s", name)
	}
}

// Logger is a leveled, indentable logger writing through hclog
type Logger struct {
	Level      LogLevel
	IndentSize int

	output   io.Writer
	showTime bool
	prefix   string
	indent   int // Current indentation level
	backend  hclog.Logger
}

// NewLogger creates a new logger with the specified verbosity level
func NewLogger(level LogLevel) *Logger {
	l := &Logger{
		Level:      level,
		IndentSize: 2,
		output:     os.Stderr,
		showTime:   true,
	}
	l.rebuild()
	return l
}

// NewFileLogger creates a new logger that writes to a file
func NewFileLogger(level LogLevel, filename string) (*Logger, error) {
	file, err := os.Create(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to create log file: %w", err)
	}

	l := NewLogger(level)
	l.SetOutput(file)
	return l, nil
}

// rebuild recreates the hclog backend after an output setting changed.
// Filtering happens in log, so the backend accepts everything.
func (l *Logger) rebuild() {
	opts := &hclog.LoggerOptions{
		Name:        l.prefix,
		Level:       hclog.Trace,
		Output:      l.output,
		DisableTime: !l.showTime,
		TimeFormat:  "15:04:05.000",
	}
	l.backend = hclog.New(opts)
}

// SetOutput sets the output writer
func (l *Logger) SetOutput(w io.Writer) {
	l.output = w
	l.rebuild()
}

// SetPrefix sets a prefix for all log messages
func (l *Logger) SetPrefix(prefix string) {
	l.prefix = prefix
	l.rebuild()
}

// SetShowTime enables or disables timestamps
func (l *Logger) SetShowTime(show bool) {
	l.showTime = show
	l.rebuild()
}

// Indent increases the indentation level
func (l *Logger) Indent() {
	l.indent++
}

// Outdent decreases the indentation level
func (l *Logger) Outdent() {
	if l.indent > 0 {
		l.indent--
	}
}

// ResetIndent resets the indentation to zero
func (l *Logger) ResetIndent() {
	l.indent = 0
}

// log logs a message at the specified level
func (l *Logger) log(level LogLevel, format string, args ...interface{}) {
	if level > l.Level {
		return
	}

	msg := fmt.Sprintf(format, args...)
	if l.indent > 0 {
		msg = strings.Repeat(" ", l.indent*l.IndentSize) + msg
	}

	switch level {
	case ErrorLevel:
		l.backend.Error(msg)
	case WarningLevel:
		l.backend.Warn(msg)
	case InfoLevel:
		l.backend.Info(msg)
	case DebugLevel:
		l.backend.Debug(msg)
	default:
		l.backend.Trace(msg)
	}
}

// Error logs an error message
func (l *Logger) Error(format string, args ...interface{}) {
	l.log(ErrorLevel, format, args...)
}

// Warning logs a warning message
func (l *Logger) Warning(format string, args ...interface{}) {
	l.log(WarningLevel, format, args...)
}

// Info logs an informational message
func (l *Logger) Info(format string, args ...interface{}) {
	l.log(InfoLevel, format, args...)
}

// Debug logs a debug message
func (l *Logger) Debug(format string, args ...interface{}) {
	l.log(DebugLevel, format, args...)
}

// Trace logs a trace message (highest verbosity)
func (l *Logger) Trace(format string, args ...interface{}) {
	l.log(TraceLevel, format, args...)
}

// Circuit logs information about node and wiring changes
func (l *Logger) Circuit(format string, args ...interface{}) {
	l.log(DebugLevel, "CIRCUIT: "+format, args...)
}

// Graph logs information about dependency graph rebuilds
func (l *Logger) Graph(format string, args ...interface{}) {
	l.log(DebugLevel, "GRAPH: "+format, args...)
}

// Evaluation logs per-node evaluation steps
func (l *Logger) Evaluation(format string, args ...interface{}) {
	l.log(TraceLevel, "EVAL: "+format, args...)
}

// Trigger logs dirty flag changes
func (l *Logger) Trigger(format string, args ...interface{}) {
	l.log(TraceLevel, "TRIGGER: "+format, args...)
}

// DefaultLogger is the default logger instance
var DefaultLogger = NewLogger(InfoLevel)

// SetDefaultLogLevel sets the log level of the default logger
func SetDefaultLogLevel(level LogLevel) {
	DefaultLogger.Level = level
}
