// SPDX-License-Identifier: Unlicense OR MIT

// Command termhost drives a core.Core from a real terminal via tcell,
// standing in for the rendering/layout host this module deliberately
// does not provide. It lays out a static 3x3 grid of cells — a
// scrollable column, a handful of touchable buttons, and a two-page
// pager — and paints focus, scroll and page state back onto the
// screen, giving every host-facing operation in §6 a real caller.
package main

import (
	"fmt"
	"log"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/fluxkit/interaction/config"
	"github.com/fluxkit/interaction/core"
	"github.com/fluxkit/interaction/f32"
	"github.com/fluxkit/interaction/focus"
	"github.com/fluxkit/interaction/key"
	"github.com/fluxkit/interaction/pager"
	"github.com/fluxkit/interaction/pointer"
	"github.com/fluxkit/interaction/scroller"
	"github.com/fluxkit/interaction/sequencer"
	"github.com/fluxkit/interaction/tree"
	"github.com/fluxkit/interaction/unit"
)

// cellSize is the width/height, in terminal cells, of every grid slot.
const cellSize = 10

// statusSink submits command batches by printing a one-line trace; a
// real host would run the batch's Commands against its own evaluation
// engine instead.
type statusSink struct {
	last string
}

func (s *statusSink) Submit(b sequencer.Batch, mode sequencer.Mode) {
	modeName := "fast"
	if mode == sequencer.Normal {
		modeName = "normal"
	}
	s.last = fmt.Sprintf("submit(%s, %d cmds, vars=%v)", modeName, len(b.Commands), b.Vars)
}

// printCommand is a sequencer.Command that only exists so the demo has
// something non-empty to submit.
type printCommand struct{ label string }

func (printCommand) ImplementsCommand() {}

// focusLog records focus/open-keyboard events for the status line.
type focusLog struct{ last string }

func (l *focusLog) OnFocus(ev focus.Event) {
	if ev.Released {
		l.last = "focus released"
		return
	}
	l.last = fmt.Sprintf("focus -> %v", ev.Target)
}

func (l *focusLog) OnOpenKeyboard(idx tree.Index) {
	l.last = fmt.Sprintf("open keyboard for %v", idx)
}

func main() {
	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatalf("termhost: %v", err)
	}
	if err := screen.Init(); err != nil {
		log.Fatalf("termhost: %v", err)
	}
	defer screen.Fini()
	screen.EnableMouse()
	screen.SetStyle(tcell.StyleDefault)

	status := &statusSink{}
	flog := &focusLog{}
	c := core.New(config.Default(), unit.Metric{PxPerDp: 1, PxPerSp: 1}, status, flog, nil)

	tr, root, scrollable, pagerIdx := buildDemoTree(c)
	c.SetRoot(root)

	events := make(chan tcell.Event, 16)
	go func() {
		for {
			events <- screen.PollEvent()
		}
	}()

	ticker := time.NewTicker(16 * time.Millisecond)
	defer ticker.Stop()
	start := time.Now()
	var lastButtons tcell.ButtonMask

	for {
		select {
		case ev := <-events:
			switch e := ev.(type) {
			case *tcell.EventResize:
				screen.Sync()
			case *tcell.EventKey:
				if e.Key() == tcell.KeyEscape || e.Key() == tcell.KeyCtrlC {
					return
				}
				if kev, ok := translateKey(e); ok {
					c.HandleKeyboard(tr, kev, time.Since(start))
				}
			case *tcell.EventMouse:
				x, y := e.Position()
				now := time.Since(start)
				buttons := e.Buttons()
				pos := f32.Pt(float32(x), float32(y)*2) // cells are roughly twice as tall as wide
				switch {
				case buttons&tcell.Button1 != 0 && lastButtons&tcell.Button1 == 0:
					c.HandlePointerEvent(tr, pointer.Event{Kind: pointer.Down, Position: pos, Pointer: 0, Source: pointer.Mouse, Time: now}, now)
				case buttons&tcell.Button1 != 0:
					c.HandlePointerEvent(tr, pointer.Event{Kind: pointer.Move, Position: pos, Pointer: 0, Source: pointer.Mouse, Time: now}, now)
				case lastButtons&tcell.Button1 != 0:
					c.HandlePointerEvent(tr, pointer.Event{Kind: pointer.Up, Position: pos, Pointer: 0, Source: pointer.Mouse, Time: now}, now)
				}
				lastButtons = buttons
			}
		case <-ticker.C:
			now := time.Since(start)
			c.UpdateTime(tr, now)
			c.ClearPending(tr)
		}
		render(screen, tr, root, scrollable, pagerIdx, c, status, flog)
	}
}

// buildDemoTree lays out the static 3x3 grid: row 0 is three touchable
// buttons, row 1 is a vertically scrollable list of five rows viewed
// through a one-row window, row 2 is a two-page pager.
func buildDemoTree(c *core.Core) (tr *tree.Tree, root, scrollable, pg tree.Index) {
	tr = tree.New()
	rootHandle := tr.Add(tree.NoIndex, tree.Node{Bounds: f32.Rect(0, 0, 3*cellSize, 3*cellSize)})
	root = rootHandle.Index

	for col := 0; col < 3; col++ {
		x0 := float32(col * cellSize)
		n := tree.Node{
			Bounds: f32.Rect(x0, 0, x0+cellSize, cellSize),
			Caps:   tree.Focusable | tree.Touchable,
		}
		h := tr.Add(root, n)
		tr.Node(h.Index).Handlers[tree.HandlerPress] = sequencer.Batch{
			Commands: []sequencer.Command{printCommand{label: fmt.Sprintf("button-%d", col)}},
		}
	}

	scrollHandle := tr.Add(root, tree.Node{
		Bounds:        f32.Rect(0, cellSize, 3*cellSize, 2*cellSize),
		Caps:          tree.Scrollable,
		ScrollAxis:    tree.Vertical,
		ContentExtent: f32.Pt(3*cellSize, 5*cellSize),
	})
	scrollable = scrollHandle.Index
	sc := c.NewScroller(scrollable)
	tr.Node(scrollable).Gestures = []tree.GestureHandler{
		scroller.NewScroll(tree.Vertical, 100*time.Millisecond, 10, 1.48, 0.64, sc, 50, 1200),
	}
	for row := 0; row < 5; row++ {
		y0 := float32(row * cellSize)
		tr.Add(scrollable, tree.Node{
			Bounds: f32.Rect(0, y0, 3*cellSize, y0+cellSize),
			Caps:   tree.Focusable,
		})
	}

	pagerHandle := tr.Add(root, tree.Node{
		Bounds:    f32.Rect(0, 2*cellSize, 3*cellSize, 3*cellSize),
		Caps:      tree.Paged,
		PageCount: 2,
		PageAxis:  tree.Horizontal,
	})
	pg = pagerHandle.Index
	hook := func(amount float32, dir tree.FocusDirection, forward bool, current, next tree.Index) {}
	pgAnim := c.NewPager(pg, hook)
	tr.Node(pg).Gestures = []tree.GestureHandler{
		pager.NewPaging(tree.Horizontal, 100*time.Millisecond, 10, 1.48, 0.64, 500, pgAnim, 50, 1200),
	}
	for page := 0; page < 2; page++ {
		tr.Add(pg, tree.Node{
			Bounds: f32.Rect(0, 0, 3*cellSize, cellSize),
			Caps:   tree.Focusable,
		})
	}

	return tr, root, scrollable, pg
}

func translateKey(e *tcell.EventKey) (key.Event, bool) {
	var name key.Name
	switch e.Key() {
	case tcell.KeyUp:
		name = key.NameArrowUp
	case tcell.KeyDown:
		name = key.NameArrowDown
	case tcell.KeyLeft:
		name = key.NameArrowLeft
	case tcell.KeyRight:
		name = key.NameArrowRight
	case tcell.KeyTab:
		name = key.NameTab
	case tcell.KeyEnter:
		name = key.NameEnter
	default:
		return key.Event{}, false
	}
	var mods key.Modifiers
	if e.Modifiers()&tcell.ModShift != 0 {
		mods |= key.ModShift
	}
	if e.Modifiers()&tcell.ModCtrl != 0 {
		mods |= key.ModCtrl
	}
	if e.Modifiers()&tcell.ModAlt != 0 {
		mods |= key.ModAlt
	}
	return key.Event{Name: name, Modifiers: mods, State: key.Press}, true
}

// render paints the grid: each cell's capability glyph, the focused cell
// reversed and marked with a '*' on a go-colorful background, and a
// status line with the scroll offset, pager page, last focus event and
// last submission. Press state is not painted.
func render(screen tcell.Screen, tr *tree.Tree, root, scrollable, pg tree.Index, c *core.Core, status *statusSink, flog *focusLog) {
	screen.Clear()
	focused := c.Focus.GetFocus()

	n := tr.Node(root)
	for _, child := range n.Children() {
		paintSubtree(screen, tr, child, focused)
	}

	ramp, _ := colorful.Hex("#3fb8af")
	r, g, b := ramp.RGB255()
	focusStyle := tcell.StyleDefault.Background(tcell.NewRGBColor(int32(r), int32(g), int32(b)))
	if focused != tree.NoIndex {
		bounds := tr.GlobalBounds(focused)
		screen.SetContent(int(bounds.Min.X), int(bounds.Min.Y/2), '*', nil, focusStyle)
	}

	scrollNode := tr.Node(scrollable)
	pagerNode := tr.Node(pg)
	line := fmt.Sprintf("scroll=%.0f page=%d focus=%s sink=%s", scrollNode.ScrollPos.Y, pagerNode.Page, flog.last, status.last)
	for i, r := range line {
		screen.SetContent(i, 3*cellSize+1, r, nil, tcell.StyleDefault)
	}
	screen.Show()
}

func paintSubtree(screen tcell.Screen, tr *tree.Tree, idx tree.Index, focused tree.Index) {
	n := tr.Node(idx)
	if n == nil || !n.Visible {
		return
	}
	bounds := tr.GlobalBounds(idx)
	style := tcell.StyleDefault
	if idx == focused {
		style = style.Reverse(true)
	}
	glyph := ' '
	if n.Has(tree.Touchable) {
		glyph = '#'
	}
	if n.Has(tree.Scrollable) {
		glyph = '|'
	}
	if n.Has(tree.Paged) {
		glyph = '='
	}
	x0, y0 := int(bounds.Min.X), int(bounds.Min.Y/2)
	x1, y1 := int(bounds.Max.X), int(bounds.Max.Y/2)
	for y := y0; y < y1 && y < y0+1; y++ {
		for x := x0; x < x1; x++ {
			screen.SetContent(x, y, glyph, nil, style)
		}
	}
	for _, child := range n.Children() {
		paintSubtree(screen, tr, child, focused)
	}
}
