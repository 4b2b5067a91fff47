package scandir

import (
	"io"
	"log"
	"sync/atomic"
)

// Logger receives diagnostics the package cannot return as errors: a failed
// close of a directory descriptor, a record released twice, or a [Result]
// reclaimed by the garbage collector without being closed.
type Logger interface {
	// Printf formats according to a format specifier and writes to the logger.
	// Arguments are handled in the manner of fmt.Printf.
	Printf(format string, args ...any)
}

var loggerInstance atomic.Pointer[Logger]

func init() {
	SetLogger(defaultLogger())
}

type defaultPrintLogger struct {
	l *log.Logger
}

func (dpl *defaultPrintLogger) Printf(format string, args ...any) {
	dpl.l.Printf(format, args...)
}

func defaultLogger() Logger {
	return &defaultPrintLogger{
		l: log.Default(),
	}
}

// DiscardLogger returns a Logger that drops everything.
func DiscardLogger() Logger {
	return &defaultPrintLogger{
		l: log.New(io.Discard, "", 0),
	}
}

// SetLogger sets the package logger. nil discards all diagnostics.
func SetLogger(logger Logger) {
	if logger == nil {
		logger = DiscardLogger()
	}

	loggerInstance.Store(&logger)
}

// GetLogger returns the package logger.
func GetLogger() Logger {
	return *loggerInstance.Load()
}
