// SPDX-License-Identifier: Unlicense OR MIT

package pointerpipeline

import (
	"testing"
	"time"

	"github.com/fluxkit/interaction/config"
	"github.com/fluxkit/interaction/f32"
	"github.com/fluxkit/interaction/gesture"
	"github.com/fluxkit/interaction/pointer"
	"github.com/fluxkit/interaction/scroller"
	"github.com/fluxkit/interaction/sequencer"
	"github.com/fluxkit/interaction/tree"
	"github.com/fluxkit/interaction/unit"
)

func TestHitTestPicksDeepestTopmostNode(t *testing.T) {
	tr := tree.New()
	root := tr.Add(tree.NoIndex, tree.Node{Bounds: f32.Rect(0, 0, 200, 200)})
	tr.Add(root.Index, tree.Node{Bounds: f32.Rect(0, 0, 100, 100)})
	back := tr.Add(root.Index, tree.Node{Bounds: f32.Rect(0, 0, 100, 100)})

	hit := hitTest(tr, root.Index, f32.Pt(10, 10))
	if hit != back.Index {
		t.Errorf("hitTest = %v, want the later (topmost) overlapping sibling %v", hit, back.Index)
	}
}

func TestHitTestSkipsInvisibleSubtree(t *testing.T) {
	tr := tree.New()
	root := tr.Add(tree.NoIndex, tree.Node{Bounds: f32.Rect(0, 0, 200, 200)})
	hidden := tr.Add(root.Index, tree.Node{Bounds: f32.Rect(0, 0, 100, 100), Visible: false})
	tr.Node(hidden.Index).Visible = false

	if hit := hitTest(tr, root.Index, f32.Pt(10, 10)); hit != root.Index {
		t.Errorf("hitTest = %v, want fallback to root %v", hit, root.Index)
	}
}

func TestAncestorScrollCaptureSendsSyntheticCancel(t *testing.T) {
	tr := tree.New()
	rec := &sequencer.Recording{}

	sc := scroller.New(config.Default(), unit.Metric{PxPerDp: 1, PxPerSp: 1}, rec)
	scrollGesture := scroller.NewScroll(tree.Vertical, 5*time.Millisecond, 10, 1.48, 0.64, sc, 0, 1200)

	scrollableNode := tree.Node{
		Caps:          tree.Scrollable,
		Bounds:        f32.Rect(0, 0, 100, 200),
		ContentExtent: f32.Pt(100, 1000),
		ScrollAxis:    tree.Vertical,
		Gestures:      []tree.GestureHandler{scrollGesture},
	}
	scrollHandle := tr.Add(tree.NoIndex, scrollableNode)

	item := tr.Add(scrollHandle.Index, tree.Node{
		Bounds: f32.Rect(0, 0, 100, 40),
		Caps:   tree.Touchable,
	})
	tr.Node(item.Index).Handlers[tree.HandlerDown] = sequencer.Batch{Commands: []sequencer.Command{recordingCommand{}}}
	tr.Node(item.Index).Handlers[tree.HandlerCancel] = sequencer.Batch{Commands: []sequencer.Command{recordingCommand{}}}

	p := New(rec, nil)
	p.HandlePointerEvent(tr, scrollHandle.Index, pointer.Event{Kind: pointer.Down, Position: f32.Pt(10, 10), Time: 0}, 0)
	p.HandlePointerEvent(tr, scrollHandle.Index, pointer.Event{Kind: pointer.Move, Position: f32.Pt(10, -40), Time: 20 * time.Millisecond}, 20*time.Millisecond)

	if got := tr.Node(scrollHandle.Index).ScrollPos.Y; got == 0 {
		t.Error("ancestor scroll gesture should have captured the stream and moved ScrollPos")
	}
	if len(rec.Submissions) != 2 {
		t.Fatalf("got %d submissions, want 2 (onDown, synthetic onCancel)", len(rec.Submissions))
	}
	if rec.Submissions[1].Mode != sequencer.Fast {
		t.Error("synthetic Cancel should submit in fast mode")
	}
}

func TestOnPressSynthesizedOnUpInsideBounds(t *testing.T) {
	tr := tree.New()
	rec := &sequencer.Recording{}
	item := tr.Add(tree.NoIndex, tree.Node{
		Bounds: f32.Rect(0, 0, 100, 40),
		Caps:   tree.Touchable,
	})
	n := tr.Node(item.Index)
	n.Handlers[tree.HandlerPress] = sequencer.Batch{Commands: []sequencer.Command{recordingCommand{}}}
	// The release travels about 2.8 units, past this Tap's 1-unit bound,
	// so the Tap resets without triggering and the stream stays uncaptured.
	n.Gestures = []tree.GestureHandler{gesture.NewTap(1, 1000, sequencer.Batch{}, rec)}

	p := New(rec, nil)
	p.HandlePointerEvent(tr, item.Index, pointer.Event{Kind: pointer.Down, Position: f32.Pt(10, 10), Time: 0}, 0)
	p.HandlePointerEvent(tr, item.Index, pointer.Event{Kind: pointer.Up, Position: f32.Pt(12, 12), Time: 10 * time.Millisecond}, 10*time.Millisecond)

	foundPress := false
	for _, s := range rec.Submissions {
		if s.Mode == sequencer.Normal {
			foundPress = true
		}
	}
	if !foundPress {
		t.Error("expected an onPress submission in normal mode")
	}
}

func TestOnPressNotSynthesizedOutsideBounds(t *testing.T) {
	tr := tree.New()
	rec := &sequencer.Recording{}
	item := tr.Add(tree.NoIndex, tree.Node{
		Bounds: f32.Rect(0, 0, 100, 40),
		Caps:   tree.Touchable,
	})
	n := tr.Node(item.Index)
	n.Handlers[tree.HandlerPress] = sequencer.Batch{Commands: []sequencer.Command{recordingCommand{}}}

	p := New(rec, nil)
	p.HandlePointerEvent(tr, item.Index, pointer.Event{Kind: pointer.Down, Position: f32.Pt(10, 10), Time: 0}, 0)
	// Released outside the target's own bounds (still hits the same node
	// because it's the only one in the tree, but the pipeline must still
	// check local containment independent of hit-testing).
	p.HandlePointerEvent(tr, item.Index, pointer.Event{Kind: pointer.Up, Position: f32.Pt(500, 500), Time: 10 * time.Millisecond}, 10*time.Millisecond)

	for _, s := range rec.Submissions {
		if s.Mode == sequencer.Normal {
			t.Error("onPress should not fire when Up lands outside the target's bounds")
		}
	}
}

type recordingCommand struct{}

func (recordingCommand) ImplementsCommand() {}
