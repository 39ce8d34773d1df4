// SPDX-License-Identifier: Unlicense OR MIT

// Package key implements the keyboard half of the wire contract in §6:
// a key-down/key-up marker plus a key record with a canonical name.
package key

// Name identifies a key by its canonical, layout-independent name. The
// constants below are exactly the names §6 enumerates; a host may still
// deliver any other string (e.g. character keys), which the Focus
// Manager and gesture layer simply ignore.
type Name string

const (
	NameArrowUp         Name = "ArrowUp"
	NameArrowDown       Name = "ArrowDown"
	NameArrowLeft       Name = "ArrowLeft"
	NameArrowRight      Name = "ArrowRight"
	NameTab             Name = "Tab"
	NameEnter           Name = "Enter"
	NameNumpadEnter     Name = "NumpadEnter"
	NameMediaPlayPause  Name = "MediaPlayPause"
)

// Modifiers is a bit-set of modifier keys held during an Event.
type Modifiers uint8

const (
	ModShift Modifiers = 1 << iota
	ModCtrl
	ModAlt
	ModSuper
)

// Contain reports whether m holds all the bits in o.
func (m Modifiers) Contain(o Modifiers) bool { return m&o == o }

// State is whether an Event reports a key going down or coming up.
type State uint8

const (
	// Press is a key-down transition.
	Press State = iota
	// Release is a key-up transition.
	Release
)

// Event is generated when a key transitions. The Focus Manager
// interprets only State==Press for directional/sequential navigation;
// Release events are delivered but otherwise unused by the core.
type Event struct {
	Name      Name
	Modifiers Modifiers
	State     State
}

// ImplementsEvent marks Event as an event.Event.
func (Event) ImplementsEvent() {}

// FocusEvent describes a component gaining or losing the focused state
// bit (I1). The Focus Manager does not emit it; it reports focus changes
// through focus.Event.
type FocusEvent struct {
	Focus bool
}

// ImplementsEvent marks FocusEvent as an event.Event.
func (FocusEvent) ImplementsEvent() {}
