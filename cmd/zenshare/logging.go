package main

import (
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"
)

// cliLogger writes prefixed, colored diagnostics to stderr. Info and warn
// lines need --verbose; debug lines need --debug. Errors always print.
type cliLogger struct {
	mu      sync.Mutex
	out     io.Writer
	Verbose bool
	Debug   bool
}

func newLogger(out io.Writer, verbose, debug bool) *cliLogger {
	return &cliLogger{out: out, Verbose: verbose || debug, Debug: debug}
}

func (l *cliLogger) printf(prefix *color.Color, tag, msg string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.out, prefix.Sprint(tag)+" "+msg+"\n", args...)
}

func (l *cliLogger) Infof(msg string, args ...any) {
	if l.Verbose {
		l.printf(color.New(color.FgGreen), "[info]", msg, args...)
	}
}

func (l *cliLogger) Debugf(msg string, args ...any) {
	if l.Debug {
		l.printf(color.New(color.FgCyan), "[debug]", msg, args...)
	}
}

func (l *cliLogger) Warnf(msg string, args ...any) {
	if l.Verbose {
		l.printf(color.New(color.FgYellow), "[warn]", msg, args...)
	}
}

func (l *cliLogger) Errorf(msg string, args ...any) {
	l.printf(color.New(color.FgRed), "[error]", msg, args...)
}
