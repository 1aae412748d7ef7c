// Package logger provides the console output helpers shared by the commands.
package logger

import (
	"fmt"
	"io"
)

// Logger splits user-facing text and diagnostics. Debug output goes to the
// error stream so stdout only ever carries what a pipeline consumes.
type Logger struct {
	out   io.Writer
	err   io.Writer
	quiet bool
	debug bool
}

func New(out io.Writer, err io.Writer, quiet bool, debug bool) *Logger {
	return &Logger{
		out:   out,
		err:   err,
		quiet: quiet,
		debug: debug,
	}
}

// Discard returns a logger that drops everything.
func Discard() *Logger {
	return New(io.Discard, io.Discard, true, false)
}

func (logger *Logger) Log(message string, forceShow bool) {
	if logger.quiet && !forceShow && !logger.debug {
		return
	}
	if _, err := fmt.Fprintln(logger.out, message); err != nil {
		return
	}
}

func (logger *Logger) Debug(message string) {
	if !logger.debug {
		return
	}
	if _, err := fmt.Fprintln(logger.err, message); err != nil {
		return
	}
}

func (logger *Logger) Debugf(format string, args ...any) {
	logger.Debug(fmt.Sprintf(format, args...))
}

func (logger *Logger) Error(message string) {
	if _, err := fmt.Fprintln(logger.err, message); err != nil {
		return
	}
}

func (logger *Logger) Errorf(format string, args ...any) {
	if _, err := fmt.Fprintf(logger.err, format, args...); err != nil {
		return
	}
}
