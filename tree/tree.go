// SPDX-License-Identifier: Unlicense OR MIT

// Package tree implements the abstract component tree the Focus Manager
// and Pointer Pipeline share (§3 "Component"). Per the design notes in
// §9, nodes live in an arena and are addressed by 32-bit indices rather
// than shared pointers: the Focus Manager and the pointer pipeline hold
// plain Index values, never references to the Node itself. A Handle (an
// index plus a generation counter) additionally lets its holder detect,
// via HandleValid, that a slot was removed and reused.
package tree

import (
	"time"

	"github.com/fluxkit/interaction/event"
	"github.com/fluxkit/interaction/f32"
	"github.com/fluxkit/interaction/pointer"
	"github.com/fluxkit/interaction/sequencer"
)

// Index addresses a slot in a Tree's arena.
type Index uint32

// NoIndex is the zero-value sentinel meaning "no node".
const NoIndex Index = 0

// Handle is a non-owning reference to a Node: an Index plus the
// generation the node had when the Handle was taken. A Handle whose
// generation no longer matches the arena's refers to a removed node.
type Handle struct {
	Index      Index
	Generation uint32
}

// State is a bit-set drawn from §3's per-component state set.
type State uint16

const (
	Focused State = 1 << iota
	Pressed
	Disabled
	Checked
	Karaoke
	Hover
)

// Capability is a bit-set drawn from §3's capability set.
type Capability uint8

const (
	Focusable Capability = 1 << iota
	Touchable
	Scrollable
	Paged
	EditText
)

// Axis is a scroll or page axis.
type Axis uint8

const (
	Vertical Axis = iota
	Horizontal
)

// Snap is a scrollable's snap policy (§3).
type Snap uint8

const (
	SnapNone Snap = iota
	SnapStart
	SnapCenter
	SnapEnd
	SnapForceStart
	SnapForceCenter
	SnapForceEnd
)

// Force reports whether s is one of the non-negotiable snap variants.
func (s Snap) Force() bool {
	return s == SnapForceStart || s == SnapForceCenter || s == SnapForceEnd
}

// ReadingDirection affects which swipe direction counts as "forward"
// for a horizontal pager (§4.2).
type ReadingDirection uint8

const (
	LTR ReadingDirection = iota
	RTL
)

// PageNavigation is a paged component's navigation policy (§3).
type PageNavigation uint8

const (
	NavNormal PageNavigation = iota
	NavWrap
	NavNone
	NavForwardOnly
)

// HandlerKind keys a touchable's event-handler command batches (§3).
type HandlerKind uint8

const (
	HandlerDown HandlerKind = iota
	HandlerMove
	HandlerUp
	HandlerCancel
	HandlerPress
)

// GestureOutcome is what a GestureHandler reports after consuming one
// pointer event.
type GestureOutcome struct {
	// Triggered is true if the gesture is now (or remains) the active,
	// capture-owning gesture on its component.
	Triggered bool
	// PassThrough is true if, despite Triggered, this specific event
	// should still be delivered to the component's ordinary
	// Down/Move/Up/Cancel/Press handlers (§4.3.2 LongPress, §4.3.3
	// DoublePress's first Up — "so visual feedback runs").
	PassThrough bool
}

// GestureHandler is the dispatcher-facing view of a gesture recognizer
// (§4.3): something that consumes pointer events and tracks its own
// triggered state. The concrete state machines live in package gesture;
// Node only ever holds this interface, breaking what would otherwise be
// an import cycle between tree and gesture.
type GestureHandler interface {
	// Consume advances the gesture's state machine with ev.
	Consume(target Index, tr *Tree, ev pointer.Event, t time.Duration) GestureOutcome
	// Reset returns the gesture to Idle, discarding in-flight state.
	Reset()
	// Triggered reports whether the gesture currently owns capture.
	Triggered() bool
}

// Range is a closed integer interval (ported from the original's
// primitives Range helper). Nothing else in this module uses it.
type Range struct {
	Lower, Upper int
}

// Contains reports whether v lies within [Lower, Upper].
func (r Range) Contains(v int) bool { return v >= r.Lower && v <= r.Upper }

// Extend grows r to include v.
func (r Range) Extend(v int) Range {
	if v < r.Lower {
		r.Lower = v
	}
	if v > r.Upper {
		r.Upper = v
	}
	return r
}

// Node is one component in the tree.
type Node struct {
	handle   Handle
	parent   Index
	children []Index

	Bounds    f32.Rectangle // in parent coordinates
	Transform f32.Affine2D  // relative to parent
	States    State
	Caps      Capability

	// Touchable.
	Gestures []GestureHandler
	Handlers map[HandlerKind]sequencer.Batch

	// Scrollable.
	ScrollPos     f32.Point
	ScrollAxis    Axis
	ContentExtent f32.Point
	Snap          Snap
	Direction     ReadingDirection
	OnScroll      sequencer.Batch // scroll-triggered author command (§4.2 cascade)

	// Paged.
	Page        int
	PageCount   int
	Nav         PageNavigation
	PageAxis    Axis
	OnPageMove  sequencer.Batch

	// Visible is false when this node itself has opacity=0,
	// display=none, or is otherwise geometrically hidden. It does not
	// reflect ancestors; Tree.Reachable checks the ancestor chain (I6).
	Visible bool

	// RejectPointer, if set, vetoes a press at a given local point
	// before any gesture or handler sees it (original_source
	// TouchableComponent::shouldRejectTouch, supplemented per
	// SPEC_FULL.md).
	RejectPointer func(local f32.Point) bool

	// NextFocus holds static focus overrides (§4.5 "Next-focus
	// overrides"), keyed by direction name.
	NextFocus map[FocusDirection]Index
}

// FocusDirection names one of the six focus-move directions (§4.5).
type FocusDirection uint8

const (
	Up FocusDirection = iota
	Down
	Left
	Right
	Forward
	Backward
)

// Handle returns n's stable handle.
func (n *Node) Handle() Handle { return n.handle }

// Parent returns n's parent index, or NoIndex at the root.
func (n *Node) Parent() Index { return n.parent }

// Children returns n's children in document order. The returned slice
// must not be mutated by the caller.
func (n *Node) Children() []Index { return n.children }

// Has reports whether n's capability set contains c.
func (n *Node) Has(c Capability) bool { return n.Caps&c != 0 }

// Is reports whether n's state set contains s.
func (n *Node) Is(s State) bool { return n.States&s != 0 }

// Disabled reports whether n is disabled (I3).
func (n *Node) Disabled() bool { return n.Is(Disabled) }

// Tag returns n's handle as an event.Tag, for use as a map key in
// packages that only need identity.
func (n *Node) Tag() event.Tag { return n.handle }

// Tree is the arena of Nodes, addressed by Index.
type Tree struct {
	nodes []Node
	gens  []uint32
	free  []Index
	root  Index
}

// New returns an empty Tree. Index 0 (NoIndex) is never allocated.
func New() *Tree {
	t := &Tree{}
	t.nodes = append(t.nodes, Node{})
	t.gens = append(t.gens, 0)
	return t
}

// Root returns the tree's root index, or NoIndex if no node has been
// added yet.
func (t *Tree) Root() Index { return t.root }

// SetRoot designates idx as the tree's root.
func (t *Tree) SetRoot(idx Index) { t.root = idx }

// Add allocates a new node as a child of parent (NoIndex for a root
// node) and returns its Handle.
func (t *Tree) Add(parent Index, n Node) Handle {
	var idx Index
	if len(t.free) > 0 {
		idx = t.free[len(t.free)-1]
		t.free = t.free[:len(t.free)-1]
	} else {
		idx = Index(len(t.nodes))
		t.nodes = append(t.nodes, Node{})
		t.gens = append(t.gens, 0)
	}
	n.parent = parent
	n.handle = Handle{Index: idx, Generation: t.gens[idx]}
	if n.Handlers == nil {
		n.Handlers = map[HandlerKind]sequencer.Batch{}
	}
	if n.NextFocus == nil {
		n.NextFocus = map[FocusDirection]Index{}
	}
	n.Visible = true
	t.nodes[idx] = n
	if parent != NoIndex {
		p := &t.nodes[parent]
		p.children = append(p.children, idx)
	}
	if t.root == NoIndex {
		t.root = idx
	}
	return n.handle
}

// Remove deletes idx and its entire subtree, bumping the generation of
// every freed slot so stale Handles become detectable.
func (t *Tree) Remove(idx Index) {
	if !t.Valid(idx) {
		return
	}
	n := &t.nodes[idx]
	for _, c := range append([]Index(nil), n.children...) {
		t.Remove(c)
	}
	if p := n.parent; p != NoIndex && t.Valid(p) {
		parent := &t.nodes[p]
		for i, c := range parent.children {
			if c == idx {
				parent.children = append(parent.children[:i], parent.children[i+1:]...)
				break
			}
		}
	}
	t.gens[idx]++
	t.nodes[idx] = Node{}
	t.free = append(t.free, idx)
	if t.root == idx {
		t.root = NoIndex
	}
}

// Valid reports whether idx currently refers to a live node.
func (t *Tree) Valid(idx Index) bool {
	return idx != NoIndex && int(idx) < len(t.nodes) && !t.isFree(idx)
}

func (t *Tree) isFree(idx Index) bool {
	for _, f := range t.free {
		if f == idx {
			return true
		}
	}
	return false
}

// HandleValid reports whether h still refers to the node it was taken
// from (the node hasn't been removed and recreated in its slot since).
func (t *Tree) HandleValid(h Handle) bool {
	return t.Valid(h.Index) && t.gens[h.Index] == h.Generation
}

// Node returns a pointer to the live node at idx. The pointer is only
// valid until the next call to Add, which may reallocate the backing
// array; callers that need to retain identity across mutation should
// keep the Index, not the pointer.
func (t *Tree) Node(idx Index) *Node {
	if !t.Valid(idx) {
		return nil
	}
	return &t.nodes[idx]
}

// Transform returns the cumulative affine transform that maps idx's
// local space into the viewport (the root's parent space); its inverse
// maps viewport points into idx's local space.
func (t *Tree) Transform(idx Index) f32.Affine2D {
	var chain []Index
	for cur := idx; cur != NoIndex && t.Valid(cur); cur = t.nodes[cur].parent {
		chain = append(chain, cur)
	}
	var result f32.Affine2D
	for i := len(chain) - 1; i >= 0; i-- {
		n := &t.nodes[chain[i]]
		result = result.Multiply(f32.Affine2D{}.Offset(n.Bounds.Min)).Multiply(n.Transform)
	}
	return result
}

// GlobalBounds returns idx's bounding rectangle mapped into viewport
// coordinates via its ancestor chain's transforms.
func (t *Tree) GlobalBounds(idx Index) f32.Rectangle {
	n := t.Node(idx)
	if n == nil {
		return f32.Rectangle{}
	}
	parentToRoot := f32.Affine2D{}
	if n.parent != NoIndex {
		parentToRoot = t.Transform(n.parent)
	}
	local := f32.Rectangle{Min: f32.Point{}, Max: n.Bounds.Size()}
	toViewport := parentToRoot.Multiply(f32.Affine2D{}.Offset(n.Bounds.Min)).Multiply(n.Transform)
	p0 := toViewport.Transform(local.Min)
	p1 := toViewport.Transform(f32.Pt(local.Max.X, local.Min.Y))
	p2 := toViewport.Transform(local.Max)
	p3 := toViewport.Transform(f32.Pt(local.Min.X, local.Max.Y))
	minX, maxX := min4(p0.X, p1.X, p2.X, p3.X), max4(p0.X, p1.X, p2.X, p3.X)
	minY, maxY := min4(p0.Y, p1.Y, p2.Y, p3.Y), max4(p0.Y, p1.Y, p2.Y, p3.Y)
	return f32.Rect(minX, minY, maxX, maxY)
}

func min4(a, b, c, d float32) float32 {
	m := a
	for _, v := range []float32{b, c, d} {
		if v < m {
			m = v
		}
	}
	return m
}

func max4(a, b, c, d float32) float32 {
	m := a
	for _, v := range []float32{b, c, d} {
		if v > m {
			m = v
		}
	}
	return m
}

// Reachable reports whether idx is visible and every ancestor up to the
// root is also visible (I6).
func (t *Tree) Reachable(idx Index) bool {
	for cur := idx; cur != NoIndex; {
		n := t.Node(cur)
		if n == nil || !n.Visible {
			return false
		}
		cur = n.parent
	}
	return true
}

// WalkFunc is called once per node during a document-order walk.
// Returning false stops the walk.
type WalkFunc func(idx Index) bool

// Walk visits idx and its descendants depth-first, in document order.
func (t *Tree) Walk(idx Index, fn WalkFunc) bool {
	if idx == NoIndex || !t.Valid(idx) {
		return true
	}
	if !fn(idx) {
		return false
	}
	for _, c := range t.nodes[idx].children {
		if !t.Walk(c, fn) {
			return false
		}
	}
	return true
}

// Ancestors returns idx's ancestor chain starting with its immediate
// parent and ending at the root.
func (t *Tree) Ancestors(idx Index) []Index {
	var chain []Index
	for cur := t.nodes[idx].parent; cur != NoIndex && t.Valid(cur); cur = t.nodes[cur].parent {
		chain = append(chain, cur)
	}
	return chain
}

// NearestAncestor returns the closest ancestor of idx (exclusive) that
// has capability c, and true if one exists.
func (t *Tree) NearestAncestor(idx Index, c Capability) (Index, bool) {
	for _, a := range t.Ancestors(idx) {
		if t.nodes[a].Has(c) {
			return a, true
		}
	}
	return NoIndex, false
}
