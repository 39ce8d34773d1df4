// SPDX-License-Identifier: Unlicense OR MIT

// Package sequencer declares the command sequencer as the core sees it:
// an external collaborator (§1, §6) that the core only ever *submits*
// batches to, in one of two modes. Its internal scheduling — ordering,
// async completion, interrupting normal-mode work — is entirely the
// host's concern; this package exists so the core has something
// concrete to call without depending on that implementation.
package sequencer

// Mode selects how a submitted Batch competes with other in-flight work
// (§4.4 "Pass-through modes").
type Mode uint8

const (
	// Fast mode runs a batch in parallel with any ongoing normal-mode
	// work: used for onDown/onMove/onUp/onCancel and SwipeAway's
	// onSwipeMove. The pager's per-tick Hook is a Go callback and is
	// not submitted to the sequencer.
	Fast Mode = iota
	// Normal mode resets the sequencer: used for onPress, onTap,
	// onLongPressStart/End, onSinglePress/onDoublePress, onSwipeDone
	// and author scroll/page-move commands.
	Normal
)

// Command is one author-authored action (e.g. SendEvent, SetValue).
// The core treats the contents as opaque; only the host-side sequencer
// interprets them.
type Command interface {
	ImplementsCommand()
}

// Batch is a sequence of Commands submitted together, along with the
// bound event variables (§9 "Author handlePageMove hook") a host may
// substitute into the commands before running them.
type Batch struct {
	Commands []Command
	Vars     map[string]any
}

// Empty reports whether the batch has no commands, letting callers skip
// a Submit entirely when an author never supplied a handler.
func (b Batch) Empty() bool { return len(b.Commands) == 0 }

// WithVars returns a copy of b with the given bound variables merged in,
// author values taking precedence only where b.Vars does not already
// set the key.
func (b Batch) WithVars(vars map[string]any) Batch {
	merged := make(map[string]any, len(b.Vars)+len(vars))
	for k, v := range vars {
		merged[k] = v
	}
	for k, v := range b.Vars {
		merged[k] = v
	}
	b.Vars = merged
	return b
}

// Sequencer is the host-provided command runner. The core calls Submit
// and never blocks on or inspects its result; completion, if observable
// at all, arrives through the host's own side channel (§5
// "Suspension points").
type Sequencer interface {
	Submit(batch Batch, mode Mode)
}

// Recording is a Sequencer that only records submissions, for use in
// tests.
type Recording struct {
	Submissions []Submission
}

// Submission is one recorded call to Submit.
type Submission struct {
	Batch Batch
	Mode  Mode
}

// Submit records the batch; it never runs commands.
func (r *Recording) Submit(batch Batch, mode Mode) {
	if batch.Empty() {
		return
	}
	r.Submissions = append(r.Submissions, Submission{Batch: batch, Mode: mode})
}

// Last returns the most recent submission, if any.
func (r *Recording) Last() (Submission, bool) {
	if len(r.Submissions) == 0 {
		return Submission{}, false
	}
	return r.Submissions[len(r.Submissions)-1], true
}

// Reset discards all recorded submissions.
func (r *Recording) Reset() { r.Submissions = nil }
