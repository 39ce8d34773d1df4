// SPDX-License-Identifier: Unlicense OR MIT

// Package pointerpipeline implements the hit-testing and capture-handoff
// rules of §4.4: it turns a stream of pointer.Events into calls on the
// gestures and ordinary event handlers attached to tree.Nodes, mirroring
// the structure of gio's io/router pointerQueue (collect candidates at
// Down, then route every subsequent event for that pointer id to the
// same owner) adapted to this module's arena tree instead of an op list.
package pointerpipeline

import (
	"time"

	"github.com/fluxkit/interaction/diag"
	"github.com/fluxkit/interaction/f32"
	"github.com/fluxkit/interaction/pointer"
	"github.com/fluxkit/interaction/sequencer"
	"github.com/fluxkit/interaction/tree"
)

// stream tracks one in-flight pointer id's capture state across events.
type stream struct {
	target tree.Index // the node hit on Down

	captured     bool
	capturedNode tree.Index
	capturedGesture tree.GestureHandler

	downDelivered bool // true once onDown has reached target's handlers
	cancelSent    bool // synthetic Cancel already sent for this stream
}

// Pipeline dispatches pointer events against a tree (§4.4).
type Pipeline struct {
	Seq  sequencer.Sequencer
	Diag diag.Sink

	// PressHook, if set, is called whenever onPress synthesizes on a
	// target, independent of whether the target has an author-defined
	// onPress batch. package core wires this to drive the Edit-text
	// tap-to-focus feature (§4.5), which must fire even when the author
	// never attached an onPress handler.
	PressHook func(tr *tree.Tree, target tree.Index)

	streams map[pointer.ID]*stream
	// last is the most recently active stream; it is kept after Up/Cancel
	// removes it from streams so TimeUpdate can still reach its target.
	last *stream
}

// New returns a Pipeline delivering author command batches through seq
// and diagnostics through sink (diag.Discard if nil).
func New(seq sequencer.Sequencer, sink diag.Sink) *Pipeline {
	if sink == nil {
		sink = diag.Discard
	}
	return &Pipeline{Seq: seq, Diag: sink, streams: map[pointer.ID]*stream{}}
}

// HandlePointerEvent routes one event against tr rooted at root, per the
// hit-testing and capture-handoff rules of §4.4. It returns true iff a
// gesture consumed the event, per the §6 wire contract.
func (p *Pipeline) HandlePointerEvent(tr *tree.Tree, root tree.Index, ev pointer.Event, now time.Duration) bool {
	if ev.Kind == pointer.TimeUpdate {
		return p.routeTimeUpdate(tr, ev, now)
	}
	if ev.Kind == pointer.TargetChanged {
		delete(p.streams, ev.Pointer)
		return false
	}

	st := p.streams[ev.Pointer]
	if ev.Kind == pointer.Down || st == nil {
		hit := hitTest(tr, root, ev.Position)
		st = &stream{target: hit}
		p.streams[ev.Pointer] = st
	}
	p.last = st

	consumed := p.dispatch(tr, st, ev, now)

	if ev.Kind == pointer.Up || ev.Kind == pointer.Cancel {
		delete(p.streams, ev.Pointer)
	}
	return consumed
}

// dispatch advances one stream by one event, implementing the
// capture-handoff order: captured owner, else local gestures, else the
// nearest scrollable/paged ancestor's intrinsic gesture, else handlers.
func (p *Pipeline) dispatch(tr *tree.Tree, st *stream, ev pointer.Event, now time.Duration) bool {
	if st.target == tree.NoIndex {
		return false
	}

	if st.captured {
		out := st.capturedGesture.Consume(st.capturedNode, tr, ev, now)
		if !out.Triggered {
			st.captured = false
			st.capturedGesture = nil
		}
		if out.PassThrough {
			p.deliverToHandlers(tr, st, st.capturedNode, ev, now)
		}
		return out.Triggered || out.PassThrough
	}

	n := tr.Node(st.target)
	if n == nil {
		return false
	}

	if triggered, passThrough, g := tryGestures(n, st.target, tr, ev, now); triggered {
		p.captureStream(tr, st, st.target, g)
		if passThrough {
			p.deliverToHandlers(tr, st, st.target, ev, now)
		}
		return true
	}

	if aidx, ok := tr.NearestAncestor(st.target, tree.Scrollable|tree.Paged); ok {
		an := tr.Node(aidx)
		if an != nil {
			if triggered, passThrough, g := tryGestures(an, aidx, tr, ev, now); triggered {
				p.captureStream(tr, st, aidx, g)
				if passThrough {
					p.deliverToHandlers(tr, st, st.target, ev, now)
				}
				return true
			}
		}
	}

	p.deliverToHandlers(tr, st, st.target, ev, now)
	return false
}

// captureStream locks st to owner/g and, if a Down had already reached
// the target's ordinary handlers, emits the synthetic Cancel required by
// §4.4 before further events flow to the capturing owner.
func (p *Pipeline) captureStream(tr *tree.Tree, st *stream, owner tree.Index, g tree.GestureHandler) {
	st.captured = true
	st.capturedNode = owner
	st.capturedGesture = g
	if st.downDelivered && !st.cancelSent {
		st.cancelSent = true
		if n := tr.Node(st.target); n != nil {
			submitHandler(p.Seq, n, tree.HandlerCancel)
		}
	}
}

// tryGestures offers ev to each of n's gestures in declaration order,
// stopping at the first that reports Triggered (§4.4 rule 1/2).
func tryGestures(n *tree.Node, idx tree.Index, tr *tree.Tree, ev pointer.Event, now time.Duration) (triggered, passThrough bool, owner tree.GestureHandler) {
	for _, g := range n.Gestures {
		out := g.Consume(idx, tr, ev, now)
		if out.Triggered {
			return true, out.PassThrough, g
		}
	}
	return false, false, nil
}

// deliverToHandlers runs the ordinary onDown/onMove/onUp/onCancel
// handler for ev against target, and synthesizes onPress on Up per §4.4.
func (p *Pipeline) deliverToHandlers(tr *tree.Tree, st *stream, target tree.Index, ev pointer.Event, now time.Duration) {
	n := tr.Node(target)
	if n == nil {
		return
	}
	switch ev.Kind {
	case pointer.Down:
		submitHandler(p.Seq, n, tree.HandlerDown)
		st.downDelivered = true
	case pointer.Move:
		submitHandler(p.Seq, n, tree.HandlerMove)
	case pointer.Up:
		submitHandler(p.Seq, n, tree.HandlerUp)
		p.maybeSynthesizePress(tr, n, target, ev)
	case pointer.Cancel:
		submitHandler(p.Seq, n, tree.HandlerCancel)
	}
}

// maybeSynthesizePress fires onPress in normal mode when ev released
// inside target's local bounds and target isn't disabled (§4.4
// "onPress synthesis"). The "no ancestor stole capture" clause is
// satisfied structurally: this function is only reached when dispatch
// never handed the stream to an ancestor's intrinsic gesture.
func (p *Pipeline) maybeSynthesizePress(tr *tree.Tree, n *tree.Node, target tree.Index, ev pointer.Event) {
	if n.Disabled() {
		return
	}
	local := toLocal(tr, target, ev.Position, p.Diag)
	bounds := f32.Rectangle{Min: f32.Point{}, Max: n.Bounds.Size()}
	if !bounds.Contains(local) {
		return
	}
	if batch, ok := n.Handlers[tree.HandlerPress]; ok && !batch.Empty() && p.Seq != nil {
		p.Seq.Submit(batch, sequencer.Normal)
	}
	if p.PressHook != nil {
		p.PressHook(tr, target)
	}
}

// routeTimeUpdate delivers a host time tick to whichever stream currently
// owns the pointer, or the most recently active one if none is down
// (§4.4 "Time propagation").
func (p *Pipeline) routeTimeUpdate(tr *tree.Tree, ev pointer.Event, now time.Duration) bool {
	st := p.streams[ev.Pointer]
	if st == nil {
		st = p.last
	}
	if st == nil {
		return false
	}
	return p.dispatch(tr, st, ev, now)
}

func submitHandler(seq sequencer.Sequencer, n *tree.Node, kind tree.HandlerKind) {
	if seq == nil {
		return
	}
	batch, ok := n.Handlers[kind]
	if !ok || batch.Empty() {
		return
	}
	seq.Submit(batch, sequencer.Fast)
}

// toLocal maps a global point into idx's local frame via the inverse of
// its cumulative transform (§4.4 "Transforms"). A degenerate transform
// (zero determinant) is reported through sink and the global point is
// returned unconverted rather than panicking.
func toLocal(tr *tree.Tree, idx tree.Index, global f32.Point, sink diag.Sink) f32.Point {
	aff := tr.Transform(idx)
	inv, ok := aff.Invert()
	if !ok {
		sink.Logf("pointerpipeline: degenerate transform at node %v, using global coordinates", idx)
		return global
	}
	return inv.Transform(global)
}

// hitTest finds the deepest visible, non-disabled node whose global
// bounds contain p, preferring later siblings (drawn on top) and
// honoring RejectPointer vetoes (§4.4 "Hit-testing").
func hitTest(tr *tree.Tree, root tree.Index, p f32.Point) tree.Index {
	return hitTestNode(tr, root, p)
}

func hitTestNode(tr *tree.Tree, idx tree.Index, p f32.Point) tree.Index {
	n := tr.Node(idx)
	if n == nil || !n.Visible || n.Disabled() {
		return tree.NoIndex
	}
	children := n.Children()
	for i := len(children) - 1; i >= 0; i-- {
		if hit := hitTestNode(tr, children[i], p); hit != tree.NoIndex {
			return hit
		}
	}
	if !tr.GlobalBounds(idx).Contains(p) {
		return tree.NoIndex
	}
	if n.RejectPointer != nil {
		local := toLocal(tr, idx, p, diag.Discard)
		if n.RejectPointer(local) {
			return tree.NoIndex
		}
	}
	return idx
}
