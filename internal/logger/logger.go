// Package logger wraps github.com/cenkalti/log with the formatting used by all filecat components.
package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/cenkalti/log"
)

var handler log.Handler

func init() {
	SetHandler(log.NewFileHandler(os.Stderr))
}

// SetHandler changes the global logging handler.
func SetHandler(h log.Handler) {
	handler = h
	handler.SetFormatter(logFormatter{})
}

// SetLevel sets the logging level on the global handler.
func SetLevel(l log.Level) {
	handler.SetLevel(l)
}

var levels = map[string]log.Level{
	"debug":    log.DEBUG,
	"info":     log.INFO,
	"notice":   log.NOTICE,
	"warning":  log.WARNING,
	"error":    log.ERROR,
	"critical": log.CRITICAL,
}

// SetLevelName sets the logging level by its lowercase name, e.g. "warning".
func SetLevelName(name string) error {
	l, ok := levels[strings.ToLower(name)]
	if !ok {
		return fmt.Errorf("unknown log level: %q", name)
	}
	SetLevel(l)
	return nil
}

// Logger is for logging messages from inside of the program in various logging levels.
type Logger log.Logger

// New returns a new Logger with a name.
// Log messages are prefixed with this name by the default Handler.
func New(name string) Logger {
	l := log.NewLogger(name)
	l.SetLevel(log.DEBUG) // forward all messages to handler
	l.SetHandler(handler)
	return l
}

type logFormatter struct{}

// Format outputs a message like "2014-02-28 18:15:57 ERROR    [stream 1f0c9a2e] stream.go:201 seeking too far"
func (f logFormatter) Format(rec *log.Record) string {
	return fmt.Sprintf("%s %-8s [%s] %-8s %s",
		fmt.Sprint(rec.Time)[:19],
		rec.Level,
		rec.LoggerName,
		filepath.Base(rec.Filename)+":"+strconv.Itoa(rec.Line),
		rec.Message)
}
