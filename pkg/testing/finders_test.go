package testing

import (
	"testing"

	"github.com/go-drift/imui/pkg/gui"
	"github.com/go-drift/imui/pkg/rendering"
)

func mountCounter(t *testing.T) (*Harness, *counter) {
	t.Helper()
	h := NewHarnessWithT(t)
	app := &counter{count: 42}
	if err := h.Mount(app.build); err != nil {
		t.Fatal(err)
	}
	return h, app
}

func TestByType(t *testing.T) {
	h, _ := mountCounter(t)

	tests := []struct {
		typ  gui.WidgetType
		want int
	}{
		{gui.TypeRoot, 1},
		{gui.TypeWindow, 1},
		{gui.TypeButton, 1},
		{gui.TypeLabel, 1},
		{gui.TypeScrollbar, 0},
	}
	for _, tt := range tests {
		if got := h.Find(ByType(tt.typ)).Count(); got != tt.want {
			t.Errorf("ByType(%s) found %d, want %d", tt.typ, got, tt.want)
		}
	}
}

func TestByText(t *testing.T) {
	h, _ := mountCounter(t)

	if !h.Find(ByText("42")).Exists() {
		t.Error("expected to find text '42'")
	}
	if h.Find(ByText("99")).Exists() {
		t.Error("should not find text '99'")
	}
	if got := h.Find(ByText("+")).Widget().Type; got != gui.TypeButton {
		t.Errorf("'+' is a %s, want button", got)
	}
}

func TestByTextContaining(t *testing.T) {
	h, _ := mountCounter(t)

	if got := h.Find(ByTextContaining("oun")).Count(); got != 1 {
		t.Errorf("expected one match for 'oun', got %d", got)
	}
	if h.Find(ByTextContaining("zz")).Exists() {
		t.Error("should not find text containing 'zz'")
	}
}

func TestByPredicate(t *testing.T) {
	h, _ := mountCounter(t)

	wide := h.Find(ByPredicate(func(w *gui.Widget) bool {
		return w.Props.Computed.GlobalRect.Width() >= 300
	}))
	// The root and the default-sized window.
	if wide.Count() != 2 {
		t.Errorf("expected 2 wide widgets, got %d", wide.Count())
	}
}

func TestDescendant(t *testing.T) {
	h, _ := mountCounter(t)

	labels := h.Find(Descendant(ByType(gui.TypeWindow), ByType(gui.TypeLabel)))
	if labels.Count() != 1 {
		t.Fatalf("expected 1 label in the window, got %d", labels.Count())
	}
	if h.Find(Descendant(ByType(gui.TypeLabel), ByType(gui.TypeButton))).Exists() {
		t.Error("labels have no children")
	}
	if h.Find(Descendant(ByType(gui.TypeWindow), ByType(gui.TypeWindow))).Exists() {
		t.Error("a widget is not its own descendant")
	}
}

func TestFinderResult_Rect(t *testing.T) {
	h, _ := mountCounter(t)

	// Window padding is 8 and the title 20; "+" plus 4 pixels of padding.
	want := rendering.RectFromLTWH(18, 38, 16, 18)
	if got := h.Find(ByText("+")).Rect(); got != want {
		t.Errorf("button rect = %+v, want %+v", got, want)
	}
}

func TestFinderResult_Empty(t *testing.T) {
	h, _ := mountCounter(t)
	r := h.Find(ByText("missing"))

	if r.FirstOrNull() != gui.NullID {
		t.Error("FirstOrNull should return NullID")
	}
	defer func() {
		if recover() == nil {
			t.Error("First should panic on an empty result")
		}
	}()
	r.First()
}

func TestFinderResult_At(t *testing.T) {
	h := NewHarnessWithT(t)
	h.Mount(func(c *gui.Context) {
		c.BeginWindow("w", "W", gui.WindowOptions{})
		c.Label("a", "a")
		c.Label("b", "b")
		c.EndWindow()
	})
	labels := h.Find(ByType(gui.TypeLabel))
	if labels.Count() != 2 {
		t.Fatalf("expected 2 labels, got %d", labels.Count())
	}
	w, _ := h.Context().Widget(labels.At(1))
	if w.Props.Text != "b" {
		t.Errorf("At(1) text = %q, want traversal order", w.Props.Text)
	}
}
