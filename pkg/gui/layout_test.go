package gui

import (
	"testing"

	"github.com/go-drift/imui/pkg/rendering"
)

func at(x, y float32) rendering.Offset { return rendering.Offset{X: x, Y: y} }

func TestVerticalStackInWindow(t *testing.T) {
	f := newFixture(t, nil)
	f.frame(t, func(c *Context) {
		c.BeginWindow("w", "Title", WindowOptions{Position: at(10, 10), Size: rendering.Size{Width: 200, Height: 150}})
		c.Label("a", "ab")
		c.Label("b", "abcd")
		c.EndWindow()
	})
	win := windowID(f.ctx, "w")
	tests := []struct {
		name string
		id   WidgetID
		want rendering.Rect
	}{
		// Window padding is 8 and its title bar 20 high.
		{"window", win, rendering.RectFromLTWH(10, 10, 200, 150)},
		{"first label", lookup(f.ctx, TypeLabel, "a", win), rendering.RectFromLTWH(18, 38, 16, 10)},
		// 6 pixels of window spacing below the first label.
		{"second label", lookup(f.ctx, TypeLabel, "b", win), rendering.RectFromLTWH(18, 54, 32, 10)},
	}
	for _, tt := range tests {
		if got := globalRect(t, f.ctx, tt.id); got != tt.want {
			t.Errorf("%s rect = %+v, want %+v", tt.name, got, tt.want)
		}
	}
	w, _ := f.ctx.Widget(win)
	if want := (rendering.Size{Width: 32, Height: 26}); w.Props.Computed.ContentSize != want {
		t.Errorf("content size = %+v, want %+v", w.Props.Computed.ContentSize, want)
	}
}

func TestHorizontalContainer(t *testing.T) {
	f := newFixture(t, nil)
	f.frame(t, func(c *Context) {
		c.BeginWindow("w", "W", WindowOptions{Position: at(10, 10)})
		c.BeginContainer("row", ContainerOptions{Direction: DirectionHorizontal, Spacing: 4})
		c.Button("ok", "ok")
		c.Button("cancel", "cancel")
		c.EndContainer()
		c.EndWindow()
	})
	row := lookup(f.ctx, TypeContainer, "row", windowID(f.ctx, "w"))
	// Buttons are their text plus 4 pixels of padding on each side.
	if got, want := globalRect(t, f.ctx, lookup(f.ctx, TypeButton, "ok", row)), rendering.RectFromLTWH(18, 38, 24, 18); got != want {
		t.Errorf("ok rect = %+v, want %+v", got, want)
	}
	if got, want := globalRect(t, f.ctx, lookup(f.ctx, TypeButton, "cancel", row)), rendering.RectFromLTWH(46, 38, 56, 18); got != want {
		t.Errorf("cancel rect = %+v, want %+v", got, want)
	}
	if got, want := globalRect(t, f.ctx, row), rendering.RectFromLTWH(18, 38, 84, 18); got != want {
		t.Errorf("row rect = %+v, want %+v", got, want)
	}
}

func TestChildrenStayInsideBoundedParent(t *testing.T) {
	f := newFixture(t, nil)
	f.frame(t, func(c *Context) {
		c.BeginWindow("w", "W", WindowOptions{Position: at(10, 10)})
		c.BeginContainer("box", ContainerOptions{Size: rendering.Size{Width: 50, Height: 30}, Spacing: 4})
		for i := range 3 {
			c.Label(c.WithIndex("l", i), "abcdefghij")
		}
		c.EndContainer()
		c.EndWindow()
	})
	box := lookup(f.ctx, TypeContainer, "box", windowID(f.ctx, "w"))
	outer := globalRect(t, f.ctx, box)
	if outer.Width() != 50 || outer.Height() != 30 {
		t.Fatalf("box size = %vx%v, want 50x30", outer.Width(), outer.Height())
	}
	heights := []float32{10, 10, 2}
	for i, id := range f.ctx.Children(box) {
		r := globalRect(t, f.ctx, id)
		if !outer.ContainsRect(r) {
			t.Errorf("child %d rect %+v escapes parent %+v", i, r, outer)
		}
		if r.Height() != heights[i] {
			t.Errorf("child %d height = %v, want %v", i, r.Height(), heights[i])
		}
	}
}

func TestMinLargerThanMaxClampsToMax(t *testing.T) {
	f := newFixture(t, nil)
	f.frame(t, func(c *Context) {
		c.BeginWindow("w", "W", WindowOptions{Size: rendering.Size{Width: 200, Height: 150}})
		c.BeginContainer("wide", ContainerOptions{Size: rendering.Size{Width: 500, Height: 20}})
		c.EndContainer()
		c.EndWindow()
	})
	r := globalRect(t, f.ctx, lookup(f.ctx, TypeContainer, "wide", windowID(f.ctx, "w")))
	// 200 minus 8 padding left and 8 padding plus 8 scrollbar gutter right.
	if r.Width() != 176 {
		t.Errorf("width = %v, want 176", r.Width())
	}
}

func TestExpandFillsAvailableWidth(t *testing.T) {
	f := newFixture(t, nil)
	f.frame(t, func(c *Context) {
		c.BeginWindow("w", "W", WindowOptions{Size: rendering.Size{Width: 200, Height: 150}})
		c.BeginContainer("bar", ContainerOptions{ExpandWidth: true, ExpandPadding: rendering.Size{Width: 16}})
		c.EndContainer()
		c.EndWindow()
	})
	r := globalRect(t, f.ctx, lookup(f.ctx, TypeContainer, "bar", windowID(f.ctx, "w")))
	if r.Width() != 160 {
		t.Errorf("width = %v, want 160", r.Width())
	}
}

func TestUnboundedExpandIsIgnored(t *testing.T) {
	f := newFixture(t, nil)
	f.frame(t, func(c *Context) {
		c.BeginWindow("w", "W", WindowOptions{})
		c.BeginContainer("tall", ContainerOptions{ExpandHeight: true})
		c.Label("l", "x")
		c.EndContainer()
		c.EndWindow()
	})
	r := globalRect(t, f.ctx, lookup(f.ctx, TypeContainer, "tall", windowID(f.ctx, "w")))
	if r.Height() != 10 {
		t.Errorf("height = %v, want content height 10", r.Height())
	}
}

func TestFreeChildrenAreClampedToParent(t *testing.T) {
	f := newFixture(t, nil)
	f.frame(t, func(c *Context) {
		c.BeginWindow("w", "W", WindowOptions{Position: at(700, 550), Size: rendering.Size{Width: 200, Height: 150}})
		c.EndWindow()
	})
	win := windowID(f.ctx, "w")
	if got, want := globalRect(t, f.ctx, win), rendering.RectFromLTWH(600, 450, 200, 150); got != want {
		t.Errorf("window rect = %+v, want %+v", got, want)
	}
	w, _ := f.ctx.Widget(win)
	if w.Props.Layout.Position != at(600, 450) {
		t.Errorf("clamped position not kept: %+v", w.Props.Layout.Position)
	}
}

func TestDocking(t *testing.T) {
	f := newFixture(t, nil)
	f.frame(t, func(c *Context) {
		c.BeginWindow("w", "W", WindowOptions{Position: at(10, 10)})
		c.BeginContainer("free", ContainerOptions{Direction: DirectionFree, Size: rendering.Size{Width: 100, Height: 60}})
		c.BeginContainer("right", ContainerOptions{Dock: DockRight, Size: rendering.Size{Width: 20, Height: 20}})
		c.EndContainer()
		c.BeginContainer("bottom", ContainerOptions{Dock: DockBottom, Position: at(5, 0), Size: rendering.Size{Width: 30, Height: 10}})
		c.EndContainer()
		c.EndContainer()
		c.EndWindow()
	})
	free := lookup(f.ctx, TypeContainer, "free", windowID(f.ctx, "w"))
	origin := globalRect(t, f.ctx, free).TopLeft()
	tests := []struct {
		id   string
		want rendering.Offset
	}{
		{"right", at(80, 0)},
		{"bottom", at(5, 50)},
	}
	for _, tt := range tests {
		got := globalRect(t, f.ctx, lookup(f.ctx, TypeContainer, tt.id, free)).TopLeft().Sub(origin)
		if got != tt.want {
			t.Errorf("%s offset = %+v, want %+v", tt.id, got, tt.want)
		}
	}
}

func twoWindows(c *Context) {
	c.BeginWindow("a", "A", WindowOptions{Position: at(50, 50)})
	c.EndWindow()
	c.BeginWindow("b", "B", WindowOptions{Position: at(100, 100)})
	c.EndWindow()
}

func rootOrder(c *Context) []WidgetID {
	return c.Children(c.Root())
}

func TestBringToFrontRepeatedly(t *testing.T) {
	f := newFixture(t, nil)
	f.frame(t, twoWindows)
	a, b := windowID(f.ctx, "a"), windowID(f.ctx, "b")
	if got := rootOrder(f.ctx); len(got) != 2 || got[0] != a || got[1] != b {
		t.Fatalf("initial order = %v, want [%d %d]", got, a, b)
	}

	for round, front := range []WidgetID{a, b, a} {
		f.ctx.bringToFront(front)
		f.frame(t, twoWindows)
		got := rootOrder(f.ctx)
		if got[len(got)-1] != front {
			t.Fatalf("round %d: order = %v, want %d last", round, got, front)
		}
		for i, id := range got {
			w, _ := f.ctx.Widget(id)
			if w.Props.Layout.SortIndex != uint32(i+1) {
				t.Errorf("round %d: sort index of %d = %d, want %d", round, id, w.Props.Layout.SortIndex, i+1)
			}
		}
	}
}

func TestNewWindowOpensOnTop(t *testing.T) {
	f := newFixture(t, nil)
	f.frame(t, twoWindows)
	f.ctx.bringToFront(windowID(f.ctx, "a"))
	f.frame(t, twoWindows)
	f.frame(t, func(c *Context) {
		twoWindows(c)
		c.BeginWindow("c", "C", WindowOptions{})
		c.EndWindow()
	})
	got := rootOrder(f.ctx)
	if got[len(got)-1] != windowID(f.ctx, "c") {
		t.Errorf("order = %v, want new window last", got)
	}
}

func TestParentControlledChildIgnoresScroll(t *testing.T) {
	f := newFixture(t, nil)
	build := func(c *Context) {
		c.BeginWindow("w", "W", WindowOptions{Position: at(10, 10), Size: rendering.Size{Width: 200, Height: 100}})
		for i := range 10 {
			c.Label(c.WithIndex("l", i), "x")
		}
		c.EndWindow()
	}
	f.frame(t, build)
	f.frame(t, build)
	win := windowID(f.ctx, "w")
	sb := lookup(f.ctx, TypeScrollbar, "##scrollbar", win)
	if sb == NullID {
		t.Fatal("overflowing window should get a scrollbar")
	}
	children := f.ctx.Children(win)
	if children[len(children)-1] != sb {
		t.Errorf("scrollbar should be moved behind the in-flow children")
	}

	f.ctx.widgets[win].Props.ContentOffset.Y = 30
	f.frame(t, build)
	first := lookup(f.ctx, TypeLabel, "l#0", win)
	if got := globalRect(t, f.ctx, first).Top; got != 10+28-30 {
		t.Errorf("scrolled label top = %v, want %v", got, 10+28-30)
	}
	if got, want := globalRect(t, f.ctx, sb), rendering.RectFromLTWH(202, 30, 8, 80); got != want {
		t.Errorf("scrollbar rect = %+v, want %+v", got, want)
	}
}

func TestLayoutRunsOncePerFrame(t *testing.T) {
	f := newFixture(t, nil)
	f.frame(t, windowWithButton(true))
	for i := 1; i < len(f.ctx.widgets); i++ {
		w := &f.ctx.widgets[i]
		if w.Used() && w.Props.Computed.LaidOutFrame != f.ctx.Frame() {
			t.Errorf("widget %d laid out in frame %d, want %d", i, w.Props.Computed.LaidOutFrame, f.ctx.Frame())
		}
	}
}
