package logging

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

var logger *logrus.Logger

func init() {
	logger = logrus.New()

	// Set output to stderr to avoid mixing with MCP protocol on stdout
	logger.SetOutput(os.Stderr)
	logger.SetLevel(logrus.InfoLevel)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
		ForceColors:   false, // Don't force colors in server environment
	})
}

// Configure applies the level and format loaded at startup.
// Unknown levels fall back to info.
func Configure(level, format string) {
	switch strings.ToLower(level) {
	case "debug":
		logger.SetLevel(logrus.DebugLevel)
	case "warn", "warning":
		logger.SetLevel(logrus.WarnLevel)
	case "error":
		logger.SetLevel(logrus.ErrorLevel)
	default:
		logger.SetLevel(logrus.InfoLevel)
	}

	// Use JSON formatter for structured logging
	if strings.EqualFold(format, "json") {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
			ForceColors:   false,
		})
	}
}

// SetOutput redirects log output. Tests use it to capture entries.
func SetOutput(w io.Writer) {
	logger.SetOutput(w)
}

// GetLogger returns the configured logger instance
func GetLogger() *logrus.Logger {
	return logger
}

// WithField creates a new logger entry with a single field
func WithField(key string, value interface{}) *logrus.Entry {
	return logger.WithField(key, value)
}

// WithFields creates a new logger entry with multiple fields
func WithFields(fields logrus.Fields) *logrus.Entry {
	return logger.WithFields(fields)
}

// WithError creates a new logger entry carrying err
func WithError(err error) *logrus.Entry {
	return logger.WithError(err)
}
