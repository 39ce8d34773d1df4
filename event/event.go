// SPDX-License-Identifier: Unlicense OR MIT

// Package event declares the minimal shared vocabulary used to pass
// events between the pointer pipeline, gesture recognizers and focus
// manager: a Tag identifying the component an event was routed to or
// from, and the Event marker interface itself.
package event

// Tag is an opaque identifier for whatever owns an event handler: in
// this module, a tree.Handle (see tree.Node.Tag). It exists as its own type so packages that
// only need to compare identities don't need to import tree.
type Tag interface{}

// Event is implemented by the module's event types: pointer.Event,
// key.Event and key.FocusEvent.
type Event interface {
	ImplementsEvent()
}
