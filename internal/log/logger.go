package log

import (
	"io"
	"os"
	"sync"

	"github.com/sirupsen/logrus"

	"cleanup/internal/errors"
)

var (
	mu     sync.RWMutex
	logger = NewLogger()
)

// Field is a single structured key/value pair attached to a log entry.
type Field struct {
	Key   string
	Value interface{}
}

// F builds a Field.
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

// Option configures a Logger.
type Option func(*logrus.Logger)

// WithOutput redirects log output.
func WithOutput(w io.Writer) Option {
	return func(l *logrus.Logger) {
		l.SetOutput(w)
	}
}

// WithLevel sets the minimum level that is written.
func WithLevel(level logrus.Level) Option {
	return func(l *logrus.Logger) {
		l.SetLevel(level)
	}
}

// Logger writes leveled, structured diagnostics. Output goes to stderr
// unless redirected, so it never mixes with the tool's stdout listing.
type Logger struct {
	entry *logrus.Entry
}

// NewLogger creates a Logger with text output on stderr at info level.
func NewLogger(opts ...Option) *Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetLevel(logrus.InfoLevel)
	l.SetFormatter(&logrus.TextFormatter{
		DisableColors:   true,
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	for _, opt := range opts {
		opt(l)
	}
	return &Logger{entry: logrus.NewEntry(l)}
}

// With returns a child logger carrying the given fields.
func (l *Logger) With(fields ...Field) *Logger {
	lf := make(logrus.Fields, len(fields))
	for _, f := range fields {
		lf[f.Key] = f.Value
	}
	return &Logger{entry: l.entry.WithFields(lf)}
}

func (l *Logger) Debug(msg string)                          { l.entry.Debug(msg) }
func (l *Logger) Debugf(format string, args ...interface{}) { l.entry.Debugf(format, args...) }
func (l *Logger) Warn(msg string)                           { l.entry.Warn(msg) }

// Configure replaces the package logger.
func Configure(opts ...Option) {
	mu.Lock()
	defer mu.Unlock()
	logger = NewLogger(opts...)
}

// Default returns the package logger.
func Default() *Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// LogWithFields returns the package logger with fields attached.
func LogWithFields(fields ...Field) *Logger {
	return Default().With(fields...)
}

// LogWithError attaches the error text plus whatever structured context
// the error type carries.
func LogWithError(err error) *Logger {
	fields := []Field{F("error", err.Error())}

	var fileErr *errors.FileError
	var configErr *errors.ConfigError
	var patternErr *errors.PatternError
	switch {
	case errors.As(err, &fileErr):
		fields = append(fields, F("error_kind", int(fileErr.Kind())), F("path", fileErr.Path()))
		if op := fileErr.Operation(); op != "" {
			fields = append(fields, F("op", string(op)))
		}
	case errors.As(err, &configErr):
		fields = append(fields, F("error_kind", int(configErr.Kind())), F("param", configErr.Param()))
	case errors.As(err, &patternErr):
		fields = append(fields, F("error_kind", int(patternErr.Kind())), F("pattern", patternErr.Pattern()))
	}
	return LogWithFields(fields...)
}
