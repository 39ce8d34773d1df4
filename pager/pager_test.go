// SPDX-License-Identifier: Unlicense OR MIT

package pager

import (
	"testing"
	"time"

	"github.com/fluxkit/interaction/config"
	"github.com/fluxkit/interaction/f32"
	"github.com/fluxkit/interaction/tree"
)

func newPaged(t *testing.T, pageCount int, nav tree.PageNavigation) (*tree.Tree, tree.Index) {
	t.Helper()
	tr := tree.New()
	parent := tr.Add(tree.NoIndex, tree.Node{
		Caps:      tree.Paged,
		Bounds:    f32.Rect(0, 0, 100, 200),
		PageCount: pageCount,
		PageAxis:  tree.Horizontal,
		Nav:       nav,
	})
	for i := 0; i < pageCount; i++ {
		tr.Add(parent.Index, tree.Node{Bounds: f32.Rect(0, 0, 100, 200)})
	}
	return tr, parent.Index
}

func TestPagerCommitAdvancesPage(t *testing.T) {
	tr, idx := newPaged(t, 3, tree.NavNormal)
	p := New(config.Default(), nil, nil)

	if !p.Start(tr, idx, 0, tree.Left) {
		t.Fatal("Start should succeed with a next page available")
	}
	p.SetProgress(tr, idx, 0.8)
	p.Commit(0)

	dur := p.cfg.DefaultPagerAnimationDuration
	active := true
	for tms := time.Duration(0); tms <= dur+20*time.Millisecond; tms += 10 * time.Millisecond {
		active = p.Tick(tr, idx, tms)
		if !active {
			break
		}
	}
	if active {
		t.Error("commit animation never settled")
	}
	if got := tr.Node(idx).Page; got != 1 {
		t.Errorf("Page = %d, want 1", got)
	}
}

func TestPagerAbortKeepsPage(t *testing.T) {
	tr, idx := newPaged(t, 3, tree.NavNormal)
	p := New(config.Default(), nil, nil)

	if !p.Start(tr, idx, 0, tree.Left) {
		t.Fatal("Start should succeed")
	}
	p.SetProgress(tr, idx, 0.2)
	p.Abort(0)

	dur := p.cfg.DefaultPagerAnimationDuration
	active := true
	for tms := time.Duration(0); tms <= dur+20*time.Millisecond; tms += 10 * time.Millisecond {
		active = p.Tick(tr, idx, tms)
		if !active {
			break
		}
	}
	if active {
		t.Error("abort animation never settled")
	}
	if got := tr.Node(idx).Page; got != 0 {
		t.Errorf("Page = %d, want unchanged 0", got)
	}
	n := tr.Node(idx)
	current, _ := p.pages(n)
	if cn := tr.Node(current); cn.Transform != (f32.Affine2D{}) {
		t.Error("aborted transition should restore the pre-transition transform")
	}
}

func TestPagerStartRejectsAtForwardOnlyBoundary(t *testing.T) {
	tr, idx := newPaged(t, 2, tree.NavForwardOnly)
	n := tr.Node(idx)
	n.Page = 1 // already at the last page
	p := New(config.Default(), nil, nil)

	if p.Start(tr, idx, 0, tree.Left) {
		t.Error("Start should refuse to advance past the last page under NavForwardOnly")
	}
}

func TestPagerStartWrapsAtBoundary(t *testing.T) {
	tr, idx := newPaged(t, 3, tree.NavWrap)
	n := tr.Node(idx)
	n.Page = 2 // last page, forward swipe should wrap to 0

	p := New(config.Default(), nil, nil)
	if !p.Start(tr, idx, 0, tree.Left) {
		t.Fatal("Start should succeed under NavWrap at the boundary")
	}
	if p.toPage != 0 {
		t.Errorf("toPage = %d, want wrap to 0", p.toPage)
	}
}

func TestPagerHookReceivesTicks(t *testing.T) {
	tr, idx := newPaged(t, 2, tree.NavNormal)
	var gotAmount float32
	var calls int
	hook := func(amount float32, dir tree.FocusDirection, forward bool, current, next tree.Index) {
		gotAmount = amount
		calls++
	}
	p := New(config.Default(), nil, hook)

	if !p.Start(tr, idx, 0, tree.Left) {
		t.Fatal("Start should succeed")
	}
	p.SetProgress(tr, idx, 0.5)
	if calls == 0 {
		t.Fatal("Hook should be invoked by SetProgress")
	}
	if gotAmount != 0.5 {
		t.Errorf("Hook amount = %v, want 0.5", gotAmount)
	}
}
