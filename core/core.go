// SPDX-License-Identifier: Unlicense OR MIT

// Package core wires the Focus Manager, Pointer Pipeline, and the
// per-node Scroller/Pager animators into the single-threaded,
// cooperative-scheduling entry points of §5: handlePointerEvent,
// handleKeyboard, updateTime and clearPending. It owns no gesture or
// navigation logic of its own — that lives in packages gesture,
// scroller, pager and focus — only the registries and ordering rules
// that tie them to one component tree, mirroring the shape of gio's
// io/input.Router, which plays the identical "own nothing, route
// everything" role between gio's op list and its widget tree.
package core

import (
	"time"

	"github.com/fluxkit/interaction/config"
	"github.com/fluxkit/interaction/diag"
	"github.com/fluxkit/interaction/f32"
	"github.com/fluxkit/interaction/focus"
	"github.com/fluxkit/interaction/key"
	"github.com/fluxkit/interaction/pager"
	"github.com/fluxkit/interaction/pointer"
	"github.com/fluxkit/interaction/pointerpipeline"
	"github.com/fluxkit/interaction/scroller"
	"github.com/fluxkit/interaction/sequencer"
	"github.com/fluxkit/interaction/tree"
	"github.com/fluxkit/interaction/unit"
)

// Core is the interaction core: the single object a host constructs and
// drives through Handle*/Update*/ClearPending (§5 "Scheduling model").
type Core struct {
	cfg    config.Config
	metric unit.Metric
	diag   diag.Sink

	Pipeline *pointerpipeline.Pipeline
	Focus    *focus.Manager

	scrollers map[tree.Index]*scroller.Scroller
	pagers    map[tree.Index]*pager.Pager

	root    tree.Index
	lastNow time.Duration
}

// New constructs a Core. seq receives every author command batch the
// gesture and animation layers submit; focusSink and diagSink default
// to no-ops if nil.
func New(cfg config.Config, metric unit.Metric, seq sequencer.Sequencer, focusSink focus.Sink, diagSink diag.Sink) *Core {
	if diagSink == nil {
		diagSink = diag.Discard
	}
	c := &Core{
		cfg:       cfg,
		metric:    metric,
		diag:      diagSink,
		Pipeline:  pointerpipeline.New(seq, diagSink),
		Focus:     focus.New(cfg, focusSink, diagSink),
		scrollers: map[tree.Index]*scroller.Scroller{},
		pagers:    map[tree.Index]*pager.Pager{},
	}
	c.Pipeline.PressHook = func(tr *tree.Tree, target tree.Index) {
		c.Focus.FocusEditTextOnTap(tr, target, c.lastNow)
	}
	c.Focus.ScrollIntoView = c.scrollIntoView
	c.Focus.ScrollByViewport = c.scrollByViewport
	return c
}

// SetRoot designates the tree node HandlePointerEvent and UpdateTime hit
// test and walk from.
func (c *Core) SetRoot(root tree.Index) { c.root = root }

// NewScroller allocates and registers a Scroller for idx, for authors
// wiring up a Scrollable node's intrinsic Scroll gesture (§4.3.5) and
// its Tick participation in UpdateTime.
func (c *Core) NewScroller(idx tree.Index) *scroller.Scroller {
	s := scroller.New(c.cfg, c.metric, c.Pipeline.Seq)
	c.scrollers[idx] = s
	return s
}

// NewPager allocates and registers a Pager for idx, analogous to
// NewScroller.
func (c *Core) NewPager(idx tree.Index, hook pager.Hook) *pager.Pager {
	p := pager.New(c.cfg, c.Pipeline.Seq, hook)
	c.pagers[idx] = p
	return p
}

// HandlePointerEvent is §6's handlePointerEvent entry point.
func (c *Core) HandlePointerEvent(tr *tree.Tree, ev pointer.Event, now time.Duration) bool {
	c.lastNow = now
	if ev.Kind == pointer.Down {
		c.Focus.NotifyCompetingInput()
	}
	return c.Pipeline.HandlePointerEvent(tr, c.root, ev, now)
}

// HandleKeyboard is §6's handleKeyboard entry point: routed to the
// Focus Manager's navigation keys only (§4.5); a host wanting Enter to
// activate the focused component submits that component's onPress
// batch directly, the core does not infer it.
func (c *Core) HandleKeyboard(tr *tree.Tree, ev key.Event, now time.Duration) bool {
	c.lastNow = now
	if ev.State == key.Press {
		c.Focus.NotifyCompetingInput()
	}
	return c.Focus.HandleKey(tr, ev, now)
}

// UpdateTime is §6's updateTime(monotonic_ms) entry point, implementing
// §5's Ordering: (i) advance active animations, (ii) deliver a
// synthetic TimeUpdate to the active gesture target.
func (c *Core) UpdateTime(tr *tree.Tree, now time.Duration) {
	c.lastNow = now
	for idx, s := range c.scrollers {
		if s.Active() {
			s.Tick(tr, idx, now)
		}
	}
	for idx, p := range c.pagers {
		if p.Active() {
			p.Tick(tr, idx, now)
		}
	}
	c.Pipeline.HandlePointerEvent(tr, c.root, pointer.Event{Kind: pointer.TimeUpdate, Time: now}, now)
}

// ClearPending is §6's clearPending pump: (iii) drain pending command
// completions. The sequencer itself runs author commands outside the
// core (§5 "Suspension points"); the only state this core polls is the
// Focus Manager's outstanding release action.
func (c *Core) ClearPending(tr *tree.Tree) {
	c.Focus.PollPending(tr)
}

// RemoveNode removes idx (and its subtree) from tr, deregisters any
// Scroller/Pager owned by a removed node, and reconciles focus (§4.5
// "Tree-mutation semantics").
func (c *Core) RemoveNode(tr *tree.Tree, idx tree.Index) {
	tr.Walk(idx, func(i tree.Index) bool {
		delete(c.scrollers, i)
		delete(c.pagers, i)
		return true
	})
	tr.Remove(idx)
	c.Focus.ReconcileRemoved(tr)
}

// SetPage changes a paged node's current page programmatically (as
// opposed to via the intrinsic Paging gesture) and runs the focus
// transfer §4.5 requires when the departed page held the focus.
func (c *Core) SetPage(tr *tree.Tree, pagerIdx tree.Index, page int) {
	n := tr.Node(pagerIdx)
	if n == nil || page == n.Page {
		return
	}
	old := n.Page
	n.Page = page
	c.Focus.OnPagerPageChanged(tr, pagerIdx, old)
}

// axisValue/contentLengthOf/viewportExtentOf duplicate the handful of
// lines package scroller keeps unexported; core needs them only for the
// Focus Manager's scroll-into-view and scroll-by-viewport hooks, so a
// full dependency on scroller's internals isn't worth breaking its
// encapsulation over.
func axisValue(axis tree.Axis, p f32.Point) float32 {
	if axis == tree.Horizontal {
		return p.X
	}
	return p.Y
}

func contentLengthOf(n *tree.Node) float32 { return axisValue(n.ScrollAxis, n.ContentExtent) }

func viewportExtentOf(n *tree.Node, axis tree.Axis) float32 {
	if axis == tree.Horizontal {
		return n.Bounds.Dx()
	}
	return n.Bounds.Dy()
}

// scrollIntoView implements focus.ScrollIntoViewFunc: it brings
// target's bounds, expressed in scrollable's local space, into
// [0, viewportExtent] along the scrollable's axis.
func (c *Core) scrollIntoView(tr *tree.Tree, scrollable, target tree.Index, now time.Duration) {
	s := c.scrollers[scrollable]
	n := tr.Node(scrollable)
	if s == nil || n == nil {
		return
	}
	inv, ok := tr.Transform(scrollable).Invert()
	if !ok {
		c.diag.Logf("core: degenerate transform at scrollable %v, skipping scroll-into-view", scrollable)
		return
	}
	targetGlobal := tr.GlobalBounds(target)
	localMin := inv.Transform(targetGlobal.Min)
	localMax := inv.Transform(targetGlobal.Max)
	startLocal, endLocal := axisValue(n.ScrollAxis, localMin), axisValue(n.ScrollAxis, localMax)

	viewport := viewportExtentOf(n, n.ScrollAxis)
	cur := axisValue(n.ScrollAxis, n.ScrollPos)

	var target0 float32
	switch {
	case startLocal < cur:
		target0 = startLocal
	case endLocal > cur+viewport:
		target0 = endLocal - viewport
	default:
		return // already fully in view
	}
	delta := (target0 - cur) / viewport
	if delta == 0 {
		return
	}
	s.StartCommanded(tr, scrollable, now, delta, 0, viewport)
}

// scrollByViewport implements focus.ScrollByViewportFunc.
func (c *Core) scrollByViewport(tr *tree.Tree, scrollable tree.Index, axis tree.Axis, forward bool, now time.Duration) bool {
	s := c.scrollers[scrollable]
	n := tr.Node(scrollable)
	if s == nil || n == nil {
		return false
	}
	viewport := viewportExtentOf(n, axis)
	cur := axisValue(axis, n.ScrollPos)
	maxScroll := contentLengthOf(n) - viewport
	if maxScroll < 0 {
		maxScroll = 0
	}
	const epsilon = 0.5
	if forward && cur >= maxScroll-epsilon {
		return false
	}
	if !forward && cur <= epsilon {
		return false
	}
	delta := float32(1)
	if !forward {
		delta = -1
	}
	s.StartCommanded(tr, scrollable, now, delta, 0, viewport)
	return true
}
