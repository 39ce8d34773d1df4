// SPDX-License-Identifier: Unlicense OR MIT

// Package diag carries the core's recoverable-error diagnostics (§7):
// degenerate transforms, refused focus requests and the like. These are
// never fatal, so they are surfaced through a narrow sink rather than a
// global logger, letting a host route them into its own logging
// pipeline (or discard them, the default).
package diag

import "fmt"

// Sink receives a formatted diagnostic line.
type Sink interface {
	Logf(format string, args ...any)
}

// Discard is a Sink that does nothing, the default for every core
// component until a host supplies one.
var Discard Sink = discard{}

type discard struct{}

func (discard) Logf(string, ...any) {}

// Func adapts a plain function to the Sink interface.
type Func func(format string, args ...any)

// Logf implements Sink.
func (f Func) Logf(format string, args ...any) { f(format, args...) }

// Text is a Sink that formats each diagnostic and records it verbatim,
// for use in tests that assert a particular diagnostic fired.
type Text struct {
	Lines []string
}

// Logf implements Sink.
func (t *Text) Logf(format string, args ...any) {
	t.Lines = append(t.Lines, fmt.Sprintf(format, args...))
}
