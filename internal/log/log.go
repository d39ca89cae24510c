// Package log routes the player's diagnostics through logrus.
// Until Setup is called every entry is discarded.
package log

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

var logger = newDiscardLogger()

func newDiscardLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// Options controls where and how entries are written.
type Options struct {
	Enabled bool
	Level   string
	JSON    bool
	File    string // empty writes to stderr
}

// Setup configures the package logger. The returned closer releases the log file, if any.
func Setup(opts Options) (io.Closer, error) {
	if !opts.Enabled {
		logger.SetOutput(io.Discard)
		return io.NopCloser(nil), nil
	}

	var out io.Writer = os.Stderr
	var closer io.Closer = io.NopCloser(nil)
	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0755); err != nil {
			return nil, fmt.Errorf("create log directory: %w", err)
		}
		f, err := os.OpenFile(opts.File, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		out, closer = f, f
	}
	logger.SetOutput(out)

	if opts.JSON {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	level, err := logrus.ParseLevel(opts.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	return closer, nil
}

// SetOutput redirects entries to w at the given level. Used by tests.
func SetOutput(w io.Writer, level logrus.Level) {
	logger.SetOutput(w)
	logger.SetLevel(level)
}

// Logger returns the underlying logrus logger.
func Logger() *logrus.Logger {
	return logger
}

func WithField(key string, value any) *logrus.Entry {
	return logger.WithField(key, value)
}

func WithError(err error) *logrus.Entry {
	return logger.WithError(err)
}

func Debugf(format string, args ...any) { logger.Debugf(format, args...) }
func Infof(format string, args ...any)  { logger.Infof(format, args...) }
func Warnf(format string, args ...any)  { logger.Warnf(format, args...) }
func Errorf(format string, args ...any) { logger.Errorf(format, args...) }
