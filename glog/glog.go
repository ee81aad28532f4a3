// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package glog implements a rank-prefixed diagnostic sink for the
// ghost-fill, smoother, and cycle driver loops, in the style of
// gofem/inp/logging.go and gofem/fem/solver.go's Verbose-gated
// utl.Pf*/utl.Sf calls.
//
// Unlike gofem's logger, which is a package-level global (log.SetOutput,
// a package-level logFile) gated by a global.Verbose flag, a Logger here
// is an explicit value threaded in by the caller: spec §9 rules out
// global mutable state, so "no logger configured" is represented by a
// nil *Logger rather than a silenced global.
package glog

import (
	"fmt"
	"io"
)

// Logger writes rank-prefixed diagnostic lines to an io.Writer. The nil
// *Logger is valid and silently discards everything, so call sites never
// need a "logging enabled" branch of their own.
type Logger struct {
	w       io.Writer
	rank    int
	verbose bool
}

// New returns a Logger for the given rank, writing to w. Debugf is a
// no-op unless verbose is true; Printf and Errorf always write.
func New(w io.Writer, rank int, verbose bool) *Logger {
	return &Logger{w: w, rank: rank, verbose: verbose}
}

func (l *Logger) write(level, format string, args ...interface{}) {
	if l == nil || l.w == nil {
		return
	}
	fmt.Fprintf(l.w, "[rank %d] %s: %s\n", l.rank, level, fmt.Sprintf(format, args...))
}

// Printf always writes a diagnostic line.
func (l *Logger) Printf(format string, args ...interface{}) {
	l.write("info", format, args...)
}

// Errorf always writes an error line.
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.write("error", format, args...)
}

// Debugf writes only when the Logger was constructed with verbose=true;
// the cycle/smoother hot loops use this for per-iteration residual
// traces that would otherwise flood a production run's output, mirroring
// gofem/fem/solver.go's `if global.Verbose { utl.Pf(...) }` pattern.
func (l *Logger) Debugf(format string, args ...interface{}) {
	if l == nil || !l.verbose {
		return
	}
	l.write("debug", format, args...)
}

// LogErr writes msg and err's text as an error line if err is non-nil,
// returning whether it did, mirroring gofem/inp/logging.go's LogErr
// stop-flag convention for call sites that want to short-circuit on the
// first logged failure.
func (l *Logger) LogErr(err error, msg string) bool {
	if err == nil {
		return false
	}
	l.Errorf("%s: %v", msg, err)
	return true
}
