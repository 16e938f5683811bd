package gui

import (
	"testing"

	"github.com/go-drift/imui/pkg/config"
	guierrors "github.com/go-drift/imui/pkg/errors"
	"github.com/go-drift/imui/pkg/rendering"
)

func windowWithButton(withButton bool) func(c *Context) {
	return func(c *Context) {
		c.BeginWindow("w", "W", WindowOptions{Position: rendering.Offset{X: 10, Y: 10}})
		if withButton {
			c.Button("b", "ok")
		}
		c.EndWindow()
	}
}

func TestIdentityStableAcrossFrames(t *testing.T) {
	f := newFixture(t, nil)
	f.frame(t, windowWithButton(true))
	win := windowID(f.ctx, "w")
	btn := lookup(f.ctx, TypeButton, "b", win)
	if win == NullID || btn == NullID {
		t.Fatalf("window %d button %d, want both live", win, btn)
	}

	f.frame(t, windowWithButton(true))
	if got := windowID(f.ctx, "w"); got != win {
		t.Errorf("window id changed from %d to %d", win, got)
	}
	if got := lookup(f.ctx, TypeButton, "b", win); got != btn {
		t.Errorf("button id changed from %d to %d", btn, got)
	}
}

func TestSameIdentifierUnderDifferentParents(t *testing.T) {
	f := newFixture(t, nil)
	f.frame(t, func(c *Context) {
		for _, name := range []string{"a", "b"} {
			c.BeginWindow(name, name, WindowOptions{})
			c.Button("ok", "OK")
			c.EndWindow()
		}
	})
	a := lookup(f.ctx, TypeButton, "ok", windowID(f.ctx, "a"))
	b := lookup(f.ctx, TypeButton, "ok", windowID(f.ctx, "b"))
	if a == NullID || b == NullID || a == b {
		t.Fatalf("buttons = %d, %d, want two distinct live widgets", a, b)
	}
	wa, _ := f.ctx.Widget(a)
	wb, _ := f.ctx.Widget(b)
	if wa.Hash == wb.Hash {
		t.Errorf("both buttons hash to %#x", wa.Hash)
	}
}

func TestTypeIsPartOfIdentity(t *testing.T) {
	if identityHash(TypeButton, "x", 1) == identityHash(TypeLabel, "x", 1) {
		t.Error("button and label with the same identifier should hash differently")
	}
}

func TestDuplicateIdentifier(t *testing.T) {
	f := newFixture(t, nil)
	f.ctx.BeginFrame()
	f.ctx.BeginWindow("w", "W", WindowOptions{})
	f.ctx.Button("same", "one")
	f.ctx.Button("same", "two")
	f.ctx.EndWindow()
	err := f.ctx.EndFrame()

	var ge *guierrors.GUIError
	if !guierrors.As(err, &ge) {
		t.Fatalf("EndFrame() = %v, want *GUIError", err)
	}
	if ge.Kind != guierrors.KindDuplicate || !guierrors.Is(err, guierrors.ErrDuplicateID) {
		t.Errorf("error = %v, want duplicate identifier", err)
	}
}

func TestErrorClearedByNextFrame(t *testing.T) {
	f := newFixture(t, nil)
	f.ctx.BeginFrame()
	f.ctx.BeginWindow("w", "W", WindowOptions{})
	f.ctx.Button("same", "one")
	f.ctx.Button("same", "two")
	f.ctx.EndWindow()
	if err := f.ctx.EndFrame(); err == nil {
		t.Fatal("EndFrame() = nil, want duplicate identifier")
	}

	f.ctx.BeginFrame()
	f.ctx.BeginWindow("w", "W", WindowOptions{})
	f.ctx.Button("same", "one")
	f.ctx.EndWindow()
	if err := f.ctx.EndFrame(); err != nil {
		t.Errorf("EndFrame() = %v on a clean frame, want nil", err)
	}
	if err := f.ctx.Err(); err != nil {
		t.Errorf("Err() = %v, want nil", err)
	}
}

func TestFailedWindowDropsChildren(t *testing.T) {
	f := newFixture(t, nil)
	f.ctx.BeginFrame()
	f.ctx.BeginWindow("w", "W", WindowOptions{})
	f.ctx.EndWindow()
	live := f.ctx.live
	if f.ctx.BeginWindow("w", "again", WindowOptions{}) {
		t.Fatal("BeginWindow() with a duplicate identifier = true")
	}
	if f.ctx.Button("inner", "x") {
		t.Error("button in a failed window reported a click")
	}
	if f.ctx.live != live {
		t.Errorf("live = %d inside a failed window, want %d", f.ctx.live, live)
	}
	f.ctx.EndWindow()
	err := f.ctx.EndFrame()
	if !guierrors.Is(err, guierrors.ErrDuplicateID) {
		t.Errorf("EndFrame() = %v, want only the duplicate window error", err)
	}

	if id := lookup(f.ctx, TypeButton, "inner", NullID); id != NullID {
		t.Errorf("button in a failed window allocated slot %d", id)
	}
}

func TestDuplicatePanicsByDefault(t *testing.T) {
	f := newFixture(t, func(o *config.Options) { o.AssertBehaviour = guierrors.AssertPanic })
	f.ctx.BeginFrame()
	f.ctx.BeginWindow("w", "W", WindowOptions{})
	f.ctx.Label("l", "x")
	defer func() {
		if _, ok := recover().(*guierrors.GUIError); !ok {
			t.Fatal("expected *GUIError panic")
		}
	}()
	f.ctx.Label("l", "y")
	t.Fatal("expected panic")
}

func TestSweepDestroysUndeclaredWidgets(t *testing.T) {
	f := newFixture(t, nil)

	f.frame(t, windowWithButton(true))
	if s := f.ctx.Stats(); s.New != 3 || s.Reused != 0 || s.Destroyed != 0 {
		t.Fatalf("frame 1 stats = %+v, want 3 new", s)
	}
	win := windowID(f.ctx, "w")
	btn := lookup(f.ctx, TypeButton, "b", win)

	f.frame(t, windowWithButton(true))
	if s := f.ctx.Stats(); s.New != 0 || s.Reused != 3 || s.Destroyed != 0 {
		t.Fatalf("frame 2 stats = %+v, want 3 reused", s)
	}

	f.frame(t, windowWithButton(false))
	s := f.ctx.Stats()
	if s.Reused != 2 || s.Destroyed != 1 || s.Live != 2 {
		t.Fatalf("frame 3 stats = %+v, want 2 reused and 1 destroyed", s)
	}
	if f.ctx.Lookup(btn, TypeButton) {
		t.Error("button should be destroyed")
	}
	if f.ctx.firstFree != btn {
		t.Errorf("firstFree = %d, want recycled slot %d", f.ctx.firstFree, btn)
	}
	if got := f.ctx.Children(win); len(got) != 0 {
		t.Errorf("window children = %v, want none", got)
	}
	if err := f.ctx.checkArena(); err != nil {
		t.Error(err)
	}
}

func TestFreeListSurvivesChurn(t *testing.T) {
	f := newFixture(t, nil)
	counts := []int{8, 3, 0, 8, 8, 1}
	for _, n := range counts {
		f.frame(t, func(c *Context) {
			c.BeginWindow("w", "W", WindowOptions{})
			c.BeginContainer("box", c.ContainerStyle())
			for i := range n {
				c.Label(c.WithIndex("item", i), "x")
			}
			c.EndContainer()
			c.EndWindow()
		})
		if want := 3 + n; f.ctx.Stats().Live != want {
			t.Errorf("after %d labels live = %d, want %d", n, f.ctx.Stats().Live, want)
		}
		if err := f.ctx.checkArena(); err != nil {
			t.Fatalf("after %d labels: %v", n, err)
		}
	}
}

func TestDestroyParentOrphansChildren(t *testing.T) {
	f := newFixture(t, nil)
	build := func(inner bool) func(c *Context) {
		return func(c *Context) {
			c.BeginWindow("w", "W", WindowOptions{})
			if inner {
				c.BeginContainer("box", ContainerOptions{})
				c.Label("a", "a")
				c.Label("b", "b")
				c.EndContainer()
			}
			c.EndWindow()
		}
	}
	f.frame(t, build(true))
	f.frame(t, build(false))
	if s := f.ctx.Stats(); s.Destroyed != 3 {
		t.Errorf("Destroyed = %d, want 3", s.Destroyed)
	}
	if err := f.ctx.checkArena(); err != nil {
		t.Error(err)
	}
	f.frame(t, build(true))
	if s := f.ctx.Stats(); s.New != 3 {
		t.Errorf("New = %d, want 3 after rebuilding", s.New)
	}
}

func TestArenaFull(t *testing.T) {
	f := newFixture(t, func(o *config.Options) { o.MaxWidgets = 4 })
	f.ctx.BeginFrame()
	f.ctx.BeginWindow("w", "W", WindowOptions{})
	f.ctx.Button("a", "a")
	f.ctx.Button("b", "b")
	if f.ctx.Button("c", "c") {
		t.Error("a widget that could not be allocated should not report a click")
	}
	f.ctx.EndWindow()
	err := f.ctx.EndFrame()
	if !guierrors.Is(err, guierrors.ErrArenaFull) {
		t.Fatalf("EndFrame() = %v, want ErrArenaFull", err)
	}
}

func TestBuilderOutsideFrame(t *testing.T) {
	f := newFixture(t, nil)
	f.ctx.Label("l", "x")
	if err := f.ctx.Err(); !guierrors.Is(err, guierrors.ErrOutsideFrame) {
		t.Errorf("Err() = %v, want ErrOutsideFrame", err)
	}
}

func TestFrameErrors(t *testing.T) {
	tests := []struct {
		name string
		run  func(c *Context)
		want error
	}{
		{
			name: "nested begin",
			run: func(c *Context) {
				c.BeginFrame()
				c.BeginFrame()
				c.EndFrame()
			},
			want: guierrors.ErrNestedFrame,
		},
		{
			name: "end without begin",
			run:  func(c *Context) { c.EndFrame() },
			want: guierrors.ErrOutsideFrame,
		},
		{
			name: "window left open",
			run: func(c *Context) {
				c.BeginFrame()
				c.BeginWindow("w", "W", WindowOptions{})
				c.EndFrame()
			},
			want: guierrors.ErrUnbalanced,
		},
		{
			name: "mismatched end",
			run: func(c *Context) {
				c.BeginFrame()
				c.BeginWindow("w", "W", WindowOptions{})
				c.EndContainer()
				c.EndWindow()
				c.EndFrame()
			},
			want: guierrors.ErrUnbalanced,
		},
		{
			name: "end at root",
			run: func(c *Context) {
				c.BeginFrame()
				c.EndWindow()
				c.EndFrame()
			},
			want: guierrors.ErrUnbalanced,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, nil)
			tt.run(f.ctx)
			if err := f.ctx.Err(); !guierrors.Is(err, tt.want) {
				t.Errorf("Err() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestRootElementsGoToDebugWindow(t *testing.T) {
	f := newFixture(t, nil)
	f.frame(t, func(c *Context) { c.Label("orphan", "x") })
	dw := windowID(f.ctx, "##debug")
	if dw == NullID {
		t.Fatal("debug window was not created")
	}
	if lookup(f.ctx, TypeLabel, "orphan", dw) == NullID {
		t.Error("label should be a child of the debug window")
	}

	f = newFixture(t, func(o *config.Options) { o.DontNestNonWindowRootElementsIntoDebugWindow = true })
	f.frame(t, func(c *Context) { c.Label("orphan", "x") })
	if windowID(f.ctx, "##debug") != NullID {
		t.Error("debug window should not exist when nesting is disabled")
	}
	if lookup(f.ctx, TypeLabel, "orphan", f.ctx.Root()) == NullID {
		t.Error("label should be a child of the root")
	}
}

func TestSiblingOrderFollowsDeclaration(t *testing.T) {
	f := newFixture(t, nil)
	build := func(order ...string) func(c *Context) {
		return func(c *Context) {
			c.BeginWindow("w", "W", WindowOptions{})
			for _, id := range order {
				c.Label(id, id)
			}
			c.EndWindow()
		}
	}
	f.frame(t, build("a", "b", "c"))
	f.frame(t, build("c", "a", "b"))

	win := windowID(f.ctx, "w")
	var got []string
	for _, id := range f.ctx.Children(win) {
		w, _ := f.ctx.Widget(id)
		got = append(got, w.Props.Text)
	}
	want := []string{"c", "a", "b"}
	if len(got) != len(want) {
		t.Fatalf("children = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("children = %v, want %v", got, want)
		}
	}
}

func TestNewRejectsBadOptions(t *testing.T) {
	opts := config.Defaults()
	opts.MaxWidgets = -1
	if _, err := New(opts, Collaborators{}); err == nil {
		t.Fatal("expected error for negative max_widgets")
	}
}

func TestAddFontCapacity(t *testing.T) {
	f := newFixture(t, func(o *config.Options) { o.MaxFonts = 2 })
	face := f.ctx.face(0)
	if id := f.ctx.AddFont(face); id != 1 {
		t.Fatalf("AddFont() = %d, want 1", id)
	}
	if id := f.ctx.AddFont(face); id != 0 {
		t.Errorf("AddFont() on a full table = %d, want default 0", id)
	}
	if !guierrors.Is(f.ctx.Err(), guierrors.ErrFontTableFull) {
		t.Errorf("Err() = %v, want ErrFontTableFull", f.ctx.Err())
	}
}
