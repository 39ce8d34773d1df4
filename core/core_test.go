// SPDX-License-Identifier: Unlicense OR MIT

package core

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

func newCore(rec sequencer.Sequencer) *Core {
	return New(config.Default(), unit.Metric{PxPerDp: 1, PxPerSp: 1}, rec, nil, nil)
}

// S2 "Tap vs. scroll": a touchable row inside a vertical scrollable. A
// short tap (small motion, released quickly) should synthesize onPress
// without moving the scroll position; a drag past slop should instead
// move ScrollPos and never reach onPress.
func TestTapVsScrollDispatchesToTheRightOwner(t *testing.T) {
	rec := &sequencer.Recording{}
	c := newCore(rec)

	tr := tree.New()
	scrollable := tr.Add(tree.NoIndex, tree.Node{
		Caps:          tree.Scrollable,
		Bounds:        f32.Rect(0, 0, 100, 200),
		ContentExtent: f32.Pt(100, 1000),
		ScrollAxis:    tree.Vertical,
	})
	realScroller := c.NewScroller(scrollable.Index)
	tr.Node(scrollable.Index).Gestures = []tree.GestureHandler{
		scroller.NewScroll(tree.Vertical, 100*time.Millisecond, 10, 1.48, 0.64, realScroller, 50, 1200),
	}
	c.SetRoot(scrollable.Index)

	row := tr.Add(scrollable.Index, tree.Node{Bounds: f32.Rect(0, 0, 100, 40), Caps: tree.Touchable})
	tr.Node(row.Index).Handlers[tree.HandlerPress] = sequencer.Batch{Commands: []sequencer.Command{noopCommand{}}}

	c.HandlePointerEvent(tr, pointer.Event{Kind: pointer.Down, Position: f32.Pt(10, 10), Time: 0}, 0)
	c.HandlePointerEvent(tr, pointer.Event{Kind: pointer.Up, Position: f32.Pt(12, 12), Time: 30 * time.Millisecond}, 30*time.Millisecond)

	if tr.Node(scrollable.Index).ScrollPos.Y != 0 {
		t.Errorf("a short tap must not move ScrollPos, got %v", tr.Node(scrollable.Index).ScrollPos.Y)
	}
	foundPress := false
	for _, s := range rec.Submissions {
		if s.Mode == sequencer.Normal {
			foundPress = true
		}
	}
	if !foundPress {
		t.Error("expected the tap to synthesize onPress")
	}

	rec.Submissions = nil
	c.HandlePointerEvent(tr, pointer.Event{Kind: pointer.Down, Position: f32.Pt(10, 10), Time: 0}, 0)
	c.HandlePointerEvent(tr, pointer.Event{Kind: pointer.Move, Position: f32.Pt(10, -40), Time: 20 * time.Millisecond}, 20*time.Millisecond)
	c.HandlePointerEvent(tr, pointer.Event{Kind: pointer.Up, Position: f32.Pt(10, -40), Time: 40 * time.Millisecond}, 40*time.Millisecond)

	if tr.Node(scrollable.Index).ScrollPos.Y == 0 {
		t.Error("a drag past slop should have captured the ancestor Scroll gesture and moved ScrollPos")
	}
	for _, s := range rec.Submissions {
		if s.Mode == sequencer.Normal {
			t.Error("a captured scroll drag must not also synthesize onPress")
		}
	}
}

// S5 "SwipeAway fulfill": Down, a slow drag past the fulfill threshold,
// Up, then enough synthetic TimeUpdates for the post-release animation
// to complete. onSwipeDone must fire once progress reaches 1.
func TestSwipeAwayFulfillRunsToCompletionViaUpdateTime(t *testing.T) {
	rec := &sequencer.Recording{}
	c := newCore(rec)

	tr := tree.New()
	onDone := sequencer.Batch{Commands: []sequencer.Command{noopCommand{}}}
	swipe := gesture.NewSwipeAway(gesture.DirLeft, gesture.ActionReveal, 350, gesture.SwipeConfig{
		AngleTolerance:           30,
		VelocityThreshold:        800,
		MaxVelocity:              4000,
		FulfillDistancePct:       0.5,
		DefaultAnimationDuration: 200 * time.Millisecond,
		MaxAnimationDuration:     300 * time.Millisecond,
	}, sequencer.Batch{}, onDone, rec)

	item := tr.Add(tree.NoIndex, tree.Node{
		Bounds:   f32.Rect(0, 0, 350, 80),
		Caps:     tree.Touchable,
		Gestures: []tree.GestureHandler{swipe},
	})
	c.SetRoot(item.Index)

	c.HandlePointerEvent(tr, pointer.Event{Kind: pointer.Down, Position: f32.Pt(340, 50), Time: 0}, 0)
	c.HandlePointerEvent(tr, pointer.Event{Kind: pointer.Move, Position: f32.Pt(50, 50), Time: 2000 * time.Millisecond}, 2000*time.Millisecond)
	c.HandlePointerEvent(tr, pointer.Event{Kind: pointer.Up, Position: f32.Pt(50, 50), Time: 2000 * time.Millisecond}, 2000*time.Millisecond)

	for ms := 2000; ms <= 4000; ms += 50 {
		c.UpdateTime(tr, time.Duration(ms)*time.Millisecond)
	}

	if got := swipe.Progress(); got != 1 {
		t.Errorf("Progress() = %v, want 1 after the post-release animation settles", got)
	}
	found := false
	for _, s := range rec.Submissions {
		if s.Mode == sequencer.Normal {
			found = true
		}
	}
	if !found {
		t.Error("expected onSwipeDone to submit in normal mode once the swipe fulfills")
	}
}

// Focus moving onto a row that sits below the current viewport must
// pull the ancestor scrollable into view via the injected
// ScrollIntoView hook, without the author wiring anything themselves.
func TestDirectionalFocusScrollsRowIntoView(t *testing.T) {
	c := newCore(nil)

	tr := tree.New()
	scrollable := tr.Add(tree.NoIndex, tree.Node{
		Caps:          tree.Scrollable,
		Bounds:        f32.Rect(0, 0, 100, 200),
		ContentExtent: f32.Pt(100, 1000),
		ScrollAxis:    tree.Vertical,
	})
	c.NewScroller(scrollable.Index)
	c.SetRoot(scrollable.Index)

	visible := tr.Add(scrollable.Index, tree.Node{Bounds: f32.Rect(0, 0, 100, 50), Caps: tree.Focusable})
	offscreen := tr.Add(scrollable.Index, tree.Node{Bounds: f32.Rect(0, 600, 100, 650), Caps: tree.Focusable})

	c.Focus.SetFocus(tr, visible.Index, tree.Forward, 0)
	if !c.Focus.NextFocus(tr, tree.Forward, 0) {
		t.Fatal("expected NextFocus to land on the offscreen row")
	}
	if c.Focus.GetFocus() != offscreen.Index {
		t.Fatalf("GetFocus() = %v, want %v", c.Focus.GetFocus(), offscreen.Index)
	}

	s := c.scrollers[scrollable.Index]
	for ms := 0; ms <= 1000; ms += 10 {
		c.UpdateTime(tr, time.Duration(ms)*time.Millisecond)
		if !s.Active() {
			break
		}
	}
	if got := tr.Node(scrollable.Index).ScrollPos.Y; got <= 0 {
		t.Errorf("ScrollPos.Y = %v, want scroll-into-view to have advanced it", got)
	}
}

type noopCommand struct{}

func (noopCommand) ImplementsCommand() {}
