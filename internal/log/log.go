// Package log wraps apex/log with a compact one-line handler. Reports go to
// stdout, so log lines are written to stderr.
package log

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/apex/log"
)

// EnvVar selects the log level (trace, debug, info, warn, error, fatal).
const EnvVar = "AWSKIT_LOG"

var traceEnabled bool

// InitLogger installs the handler and sets the level from AWSKIT_LOG.
func InitLogger() {
	InitLoggerWithWriter(os.Stderr, os.Getenv(EnvVar))
}

// InitLoggerWithWriter is InitLogger with an explicit sink and level name.
func InitLoggerWithWriter(w io.Writer, level string) {
	level = strings.ToLower(strings.TrimSpace(level))
	traceEnabled = level == "trace"
	log.SetHandler(&LineHandler{w: w})
	log.SetLevel(ParseLevel(level))
}

// ParseLevel maps a level name to an apex level. Unknown names fall back to
// error so a typo never floods the terminal.
func ParseLevel(level string) log.Level {
	switch level {
	case "trace", "debug":
		return log.DebugLevel
	case "info":
		return log.InfoLevel
	case "warn", "warning":
		return log.WarnLevel
	case "fatal":
		return log.FatalLevel
	default:
		return log.ErrorLevel
	}
}

// LineHandler formats entries as "timestamp L message key=value".
type LineHandler struct {
	mu sync.Mutex
	w  io.Writer
}

// HandleLog implements the log.Handler interface
func (h *LineHandler) HandleLog(e *log.Entry) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	message := e.Message
	level := "?"
	if strings.HasPrefix(message, "TRACE: ") {
		level = "T"
		message = message[7:]
	} else {
		switch e.Level {
		case log.DebugLevel:
			level = "D"
		case log.InfoLevel:
			level = "I"
		case log.WarnLevel:
			level = "W"
		case log.ErrorLevel:
			level = "E"
		case log.FatalLevel:
			level = "F"
		}
	}

	var b strings.Builder
	for _, name := range e.Fields.Names() {
		fmt.Fprintf(&b, " %s=%v", name, e.Fields.Get(name))
	}

	_, err := fmt.Fprintf(h.w, "%s %s %s%s\n", time.Now().Format("2006-01-02 15:04:05"), level, message, b.String())
	return err
}

// Tracef logs below Debug; only emitted when AWSKIT_LOG=trace.
func Tracef(format string, args ...interface{}) {
	if traceEnabled {
		log.Debug("TRACE: " + fmt.Sprintf(format, args...))
	}
}

// Debugf logs at Debug level.
func Debugf(format string, args ...interface{}) {
	log.Debugf(format, args...)
}

// Infof logs at Info level.
func Infof(format string, args ...interface{}) {
	log.Infof(format, args...)
}

// Warnf logs at Warn level.
func Warnf(format string, args ...interface{}) {
	log.Warnf(format, args...)
}

// Errorf logs at Error level.
func Errorf(format string, args ...interface{}) {
	log.Errorf(format, args...)
}

// WithError returns an entry with error.
func WithError(err error) *log.Entry {
	return log.WithError(err)
}

// WithField returns an entry with a single field.
func WithField(key string, value interface{}) *log.Entry {
	return log.WithField(key, value)
}
