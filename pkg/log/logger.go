// Package log provides the leveled diagnostic logger used by fvextract's
// CLI. Lines are prefixed INFO:/DEBUG:/ERROR: matching the extractor's
// long-standing output format.
package log

import (
	"log"
	"os"
)

// Logger describes a logger to be used in fvextract.
type Logger interface {
	// Debugf logs a debug message. Implementations may drop it unless
	// verbose mode is enabled.
	Debugf(format string, args ...interface{})

	// Infof logs an info message.
	Infof(format string, args ...interface{})

	// Errorf logs an error message.
	Errorf(format string, args ...interface{})

	// SetVerbose toggles whether Debugf lines are emitted.
	SetVerbose(verbose bool)
}

// DefaultLogger is the logger used by default everywhere within fvextract.
var DefaultLogger Logger

func init() {
	DefaultLogger = &logWrapper{Logger: log.New(os.Stderr, "", 0)}
}

type logWrapper struct {
	Logger  *log.Logger
	verbose bool
}

// SetVerbose implements Logger.
func (w *logWrapper) SetVerbose(verbose bool) { w.verbose = verbose }

// Debugf implements Logger.
func (w *logWrapper) Debugf(format string, args ...interface{}) {
	if !w.verbose {
		return
	}
	w.Logger.Printf("DEBUG: "+format, args...)
}

// Infof implements Logger.
func (w *logWrapper) Infof(format string, args ...interface{}) {
	w.Logger.Printf("INFO: "+format, args...)
}

// Errorf implements Logger.
func (w *logWrapper) Errorf(format string, args ...interface{}) {
	w.Logger.Printf("ERROR: "+format, args...)
}

// SetVerbose toggles whether Debugf lines reach DefaultLogger's output.
func SetVerbose(verbose bool) { DefaultLogger.SetVerbose(verbose) }

// Debugf logs a debug message on DefaultLogger.
func Debugf(format string, args ...interface{}) { DefaultLogger.Debugf(format, args...) }

// Infof logs an info message on DefaultLogger.
func Infof(format string, args ...interface{}) { DefaultLogger.Infof(format, args...) }

// Errorf logs an error message on DefaultLogger.
func Errorf(format string, args ...interface{}) { DefaultLogger.Errorf(format, args...) }
