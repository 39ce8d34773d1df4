// SPDX-License-Identifier: Unlicense OR MIT

package gesture

import (
	"testing"
	"time"

	"github.com/fluxkit/interaction/f32"
	"github.com/fluxkit/interaction/pointer"
	"github.com/fluxkit/interaction/sequencer"
	"github.com/fluxkit/interaction/tree"
)

func TestTapTriggersWithinTravelAndVelocityBounds(t *testing.T) {
	rec := &sequencer.Recording{}
	tap := NewTap(20, 2000, sequencer.Batch{Commands: []sequencer.Command{noop{}}}, rec)

	tap.Consume(0, nil, pointer.Event{Kind: pointer.Down, Position: f32.Pt(0, 0), Time: 0}, 0)
	out := tap.Consume(0, nil, pointer.Event{Kind: pointer.Up, Position: f32.Pt(5, 0), Time: 10 * time.Millisecond}, 10*time.Millisecond)

	if !out.Triggered {
		t.Fatal("expected Tap to trigger on a short, slow release")
	}
	if len(rec.Submissions) != 1 || rec.Submissions[0].Mode != sequencer.Normal {
		t.Errorf("expected one Normal-mode onTap submission, got %+v", rec.Submissions)
	}
}

func TestTapDoesNotTriggerPastMaxTravel(t *testing.T) {
	rec := &sequencer.Recording{}
	tap := NewTap(20, 2000, sequencer.Batch{Commands: []sequencer.Command{noop{}}}, rec)

	tap.Consume(0, nil, pointer.Event{Kind: pointer.Down, Position: f32.Pt(0, 0), Time: 0}, 0)
	tap.Consume(0, nil, pointer.Event{Kind: pointer.Move, Position: f32.Pt(100, 0), Time: 5 * time.Millisecond}, 5*time.Millisecond)
	out := tap.Consume(0, nil, pointer.Event{Kind: pointer.Up, Position: f32.Pt(100, 0), Time: 10 * time.Millisecond}, 10*time.Millisecond)

	if out.Triggered {
		t.Error("a drag past MaxTravel must reset the gesture before Up")
	}
	if len(rec.Submissions) != 0 {
		t.Errorf("expected no onTap submission, got %+v", rec.Submissions)
	}
}

func TestLongPressFiresStartAfterTimeoutThenEndOnUp(t *testing.T) {
	rec := &sequencer.Recording{}
	lp := NewLongPress(500*time.Millisecond, 10,
		sequencer.Batch{Commands: []sequencer.Command{noop{}}},
		sequencer.Batch{Commands: []sequencer.Command{noop{}}}, rec)

	lp.Consume(0, nil, pointer.Event{Kind: pointer.Down, Position: f32.Pt(0, 0), Time: 0}, 0)
	out := lp.Consume(0, nil, pointer.Event{Kind: pointer.TimeUpdate, Time: 400 * time.Millisecond}, 400*time.Millisecond)
	if out.Triggered {
		t.Error("LongPress must not trigger before its timeout elapses")
	}

	out = lp.Consume(0, nil, pointer.Event{Kind: pointer.TimeUpdate, Time: 600 * time.Millisecond}, 600*time.Millisecond)
	if !out.Triggered || !out.PassThrough {
		t.Fatalf("expected a triggered, pass-through outcome once the timeout elapses, got %+v", out)
	}
	if len(rec.Submissions) != 1 {
		t.Fatalf("expected onLongPressStart to submit, got %+v", rec.Submissions)
	}

	out = lp.Consume(0, nil, pointer.Event{Kind: pointer.Up, Position: f32.Pt(0, 0), Time: 700 * time.Millisecond}, 700*time.Millisecond)
	if !out.Triggered || !out.PassThrough {
		t.Fatalf("expected onLongPressEnd's outcome to remain pass-through, got %+v", out)
	}
	if len(rec.Submissions) != 2 {
		t.Fatalf("expected onLongPressEnd to submit, got %+v", rec.Submissions)
	}
}

func TestLongPressResetsOnExcessiveTravelBeforeTrigger(t *testing.T) {
	rec := &sequencer.Recording{}
	lp := NewLongPress(500*time.Millisecond, 10, sequencer.Batch{}, sequencer.Batch{}, rec)

	lp.Consume(0, nil, pointer.Event{Kind: pointer.Down, Position: f32.Pt(0, 0), Time: 0}, 0)
	lp.Consume(0, nil, pointer.Event{Kind: pointer.Move, Position: f32.Pt(50, 0), Time: 100 * time.Millisecond}, 100*time.Millisecond)
	out := lp.Consume(0, nil, pointer.Event{Kind: pointer.TimeUpdate, Time: 600 * time.Millisecond}, 600*time.Millisecond)

	if out.Triggered {
		t.Error("excessive travel before the timeout must reset LongPress, not trigger it")
	}
}

func TestDoublePressSecondTapWithinWindowFiresDoublePress(t *testing.T) {
	rec := &sequencer.Recording{}
	dp := NewDoublePress(300*time.Millisecond, 20,
		sequencer.Batch{Commands: []sequencer.Command{noop{}}},
		sequencer.Batch{Commands: []sequencer.Command{noop{}}}, rec)

	dp.Consume(0, nil, pointer.Event{Kind: pointer.Down, Position: f32.Pt(0, 0), Time: 0}, 0)
	dp.Consume(0, nil, pointer.Event{Kind: pointer.Up, Position: f32.Pt(0, 0), Time: 20 * time.Millisecond}, 20*time.Millisecond)
	dp.Consume(0, nil, pointer.Event{Kind: pointer.Down, Position: f32.Pt(5, 0), Time: 100 * time.Millisecond}, 100*time.Millisecond)
	out := dp.Consume(0, nil, pointer.Event{Kind: pointer.Up, Position: f32.Pt(5, 0), Time: 120 * time.Millisecond}, 120*time.Millisecond)

	if !out.Triggered {
		t.Fatal("expected the second press within the window to trigger")
	}
	if len(rec.Submissions) != 1 || rec.Submissions[0].Mode != sequencer.Normal {
		t.Errorf("expected exactly one Normal-mode onDoublePress submission, got %+v", rec.Submissions)
	}
}

func TestDoublePressCompletionSendsSyntheticCancel(t *testing.T) {
	rec := &sequencer.Recording{}
	dp := NewDoublePress(300*time.Millisecond, 20,
		sequencer.Batch{Commands: []sequencer.Command{noop{}}},
		sequencer.Batch{Commands: []sequencer.Command{noop{}}}, rec)

	tr := tree.New()
	target := tr.Add(tree.NoIndex, tree.Node{Bounds: f32.Rect(0, 0, 50, 50)})
	tr.Node(target.Index).Handlers[tree.HandlerCancel] = sequencer.Batch{Commands: []sequencer.Command{noop{}}}

	dp.Consume(target.Index, tr, pointer.Event{Kind: pointer.Down, Position: f32.Pt(0, 0), Time: 0}, 0)
	dp.Consume(target.Index, tr, pointer.Event{Kind: pointer.Up, Position: f32.Pt(0, 0), Time: 20 * time.Millisecond}, 20*time.Millisecond)
	dp.Consume(target.Index, tr, pointer.Event{Kind: pointer.Down, Position: f32.Pt(5, 0), Time: 100 * time.Millisecond}, 100*time.Millisecond)
	out := dp.Consume(target.Index, tr, pointer.Event{Kind: pointer.Up, Position: f32.Pt(5, 0), Time: 120 * time.Millisecond}, 120*time.Millisecond)

	if !out.Triggered {
		t.Fatal("expected the second press within the window to trigger")
	}
	if len(rec.Submissions) != 2 {
		t.Fatalf("expected onDoublePress plus a synthetic onCancel, got %+v", rec.Submissions)
	}
	if rec.Submissions[0].Mode != sequencer.Normal {
		t.Errorf("onDoublePress should submit in Normal mode, got %v", rec.Submissions[0].Mode)
	}
	if rec.Submissions[1].Mode != sequencer.Fast {
		t.Errorf("the synthetic Cancel should submit in Fast mode, got %v", rec.Submissions[1].Mode)
	}
}

func TestDoublePressTimeoutFallsBackToSinglePress(t *testing.T) {
	rec := &sequencer.Recording{}
	dp := NewDoublePress(100*time.Millisecond, 20,
		sequencer.Batch{Commands: []sequencer.Command{noop{}}},
		sequencer.Batch{Commands: []sequencer.Command{noop{}}}, rec)

	dp.Consume(0, nil, pointer.Event{Kind: pointer.Down, Position: f32.Pt(0, 0), Time: 0}, 0)
	dp.Consume(0, nil, pointer.Event{Kind: pointer.Up, Position: f32.Pt(0, 0), Time: 10 * time.Millisecond}, 10*time.Millisecond)
	dp.Consume(0, nil, pointer.Event{Kind: pointer.TimeUpdate, Time: 200 * time.Millisecond}, 200*time.Millisecond)

	if len(rec.Submissions) != 1 || rec.Submissions[0].Mode != sequencer.Normal {
		t.Fatalf("expected a single onSinglePress submission after the window lapses, got %+v", rec.Submissions)
	}
}

func TestDoublePressSecondTapOutsideTravelStartsOver(t *testing.T) {
	rec := &sequencer.Recording{}
	dp := NewDoublePress(300*time.Millisecond, 5,
		sequencer.Batch{Commands: []sequencer.Command{noop{}}},
		sequencer.Batch{Commands: []sequencer.Command{noop{}}}, rec)

	dp.Consume(0, nil, pointer.Event{Kind: pointer.Down, Position: f32.Pt(0, 0), Time: 0}, 0)
	dp.Consume(0, nil, pointer.Event{Kind: pointer.Up, Position: f32.Pt(0, 0), Time: 10 * time.Millisecond}, 10*time.Millisecond)
	// Second press lands far outside MaxTravel of the first.
	out := dp.Consume(0, nil, pointer.Event{Kind: pointer.Down, Position: f32.Pt(500, 500), Time: 50 * time.Millisecond}, 50*time.Millisecond)

	if out.Triggered {
		t.Error("a second press outside MaxTravel of the first must not resolve as a double press")
	}
}

func TestSwipeAwayFulfillsPastThresholdAndAnimatesToCompletion(t *testing.T) {
	rec := &sequencer.Recording{}
	swipe := NewSwipeAway(DirLeft, ActionReveal, 300, SwipeConfig{
		AngleTolerance:           0.5,
		VelocityThreshold:        1e9, // disable velocity-based fulfillment for this test
		MaxVelocity:              4000,
		FulfillDistancePct:       0.5,
		DefaultAnimationDuration: 100 * time.Millisecond,
		MaxAnimationDuration:     200 * time.Millisecond,
	}, sequencer.Batch{}, sequencer.Batch{Commands: []sequencer.Command{noop{}}}, rec)

	var tr *tree.Tree
	swipe.Consume(0, tr, pointer.Event{Kind: pointer.Down, Position: f32.Pt(300, 0), Time: 0}, 0)
	swipe.Consume(0, tr, pointer.Event{Kind: pointer.Move, Position: f32.Pt(100, 0), Time: 200 * time.Millisecond}, 200*time.Millisecond)
	swipe.Consume(0, tr, pointer.Event{Kind: pointer.Up, Position: f32.Pt(100, 0), Time: 200 * time.Millisecond}, 200*time.Millisecond)

	for ms := 200; ms <= 600; ms += 10 {
		swipe.Consume(0, tr, pointer.Event{Kind: pointer.TimeUpdate, Time: time.Duration(ms) * time.Millisecond}, time.Duration(ms)*time.Millisecond)
	}

	if got := swipe.Progress(); got != 1 {
		t.Errorf("Progress() = %v, want 1 once the fulfilled swipe's animation settles", got)
	}
	found := false
	for _, s := range rec.Submissions {
		if s.Mode == sequencer.Normal {
			found = true
		}
	}
	if !found {
		t.Error("expected onSwipeDone to submit once the swipe completes")
	}
}

func TestSwipeAwayBelowThresholdSpringsBackToZero(t *testing.T) {
	rec := &sequencer.Recording{}
	swipe := NewSwipeAway(DirLeft, ActionReveal, 300, SwipeConfig{
		AngleTolerance:           0.5,
		VelocityThreshold:        1e9,
		MaxVelocity:              4000,
		FulfillDistancePct:       0.8,
		DefaultAnimationDuration: 100 * time.Millisecond,
		MaxAnimationDuration:     200 * time.Millisecond,
	}, sequencer.Batch{}, sequencer.Batch{Commands: []sequencer.Command{noop{}}}, rec)

	var tr *tree.Tree
	swipe.Consume(0, tr, pointer.Event{Kind: pointer.Down, Position: f32.Pt(300, 0), Time: 0}, 0)
	swipe.Consume(0, tr, pointer.Event{Kind: pointer.Move, Position: f32.Pt(250, 0), Time: 50 * time.Millisecond}, 50*time.Millisecond)
	swipe.Consume(0, tr, pointer.Event{Kind: pointer.Up, Position: f32.Pt(250, 0), Time: 50 * time.Millisecond}, 50*time.Millisecond)

	for ms := 50; ms <= 400; ms += 10 {
		swipe.Consume(0, tr, pointer.Event{Kind: pointer.TimeUpdate, Time: time.Duration(ms) * time.Millisecond}, time.Duration(ms)*time.Millisecond)
	}

	if got := swipe.Progress(); got != 0 {
		t.Errorf("Progress() = %v, want 0 after an unfulfilled swipe springs back", got)
	}
	for _, s := range rec.Submissions {
		if s.Mode == sequencer.Normal {
			t.Error("onSwipeDone must not submit when the swipe springs back to rest")
		}
	}
}

type noop struct{}

func (noop) ImplementsCommand() {}
