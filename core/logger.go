package core

import (
	"fmt"
	"os"
)

// Logger is the minimal sink the engine writes policy-gated diagnostics to.
// Callers needing structured or buffered logging can implement it without
// this repo adopting a logging framework of its own.
type Logger interface {
	Errorf(format string, args ...any)
	Warnf(format string, args ...any)
}

// StderrLogger writes every message to os.Stderr. It is the default Logger
// for the CLI and for tests that don't care about capturing output.
type StderrLogger struct{}

func (StderrLogger) Errorf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "ERROR: "+format+"\n", args...)
}

func (StderrLogger) Warnf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "WARN: "+format+"\n", args...)
}
