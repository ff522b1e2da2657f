package logger

import (
	"os"
	"strings"

	"github.com/go-errors/errors"
	"github.com/sirupsen/logrus"
)

const (
	FORMAT_TEXT = "text"
	FORMAT_JSON = "json"
)

var Log = New("info", FORMAT_TEXT)

// New builds a logger writing to stderr. Unknown levels fall back to info.
func New(level string, format string) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	log.SetLevel(lvl)
	if strings.EqualFold(format, FORMAT_JSON) {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return log
}

// Init replaces the package logger.
func Init(level string, format string) *logrus.Logger {
	Log = New(level, format)
	return Log
}

// WithError attaches err and, for go-errors values, its stack at debug level.
func WithError(entry *logrus.Entry, err error) *logrus.Entry {
	entry = entry.WithError(err)
	var stackErr *errors.Error
	if errors.As(err, &stackErr) && entry.Logger.IsLevelEnabled(logrus.DebugLevel) {
		entry = entry.WithField("stack", string(stackErr.Stack()))
	}
	return entry
}
