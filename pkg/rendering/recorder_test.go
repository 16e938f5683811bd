package rendering

import (
	"testing"

	"github.com/go-drift/imui/pkg/pool"
	"golang.org/x/image/font/basicfont"
)

func TestRecorderRecordsInOrder(t *testing.T) {
	r := NewRecorder(0, 64)
	r.BeginFrame(ColorBlack)
	r.PushClipRect(RectFromLTWH(0, 0, 10, 10))
	r.DrawRectangle(RectFromLTWH(1, 1, 2, 2), ColorRed)
	r.DrawText(Offset{X: 1, Y: 1}, "hi", basicfont.Face7x13, ColorWhite)
	r.PopClipRect()
	r.EndFrame()

	want := []CommandKind{CmdBeginFrame, CmdPushClip, CmdRectangle, CmdText, CmdPopClip, CmdEndFrame}
	got := r.Commands()
	if len(got) != len(want) {
		t.Fatalf("len(Commands()) = %d, want %d", len(got), len(want))
	}
	for i, k := range want {
		if got[i].Kind != k {
			t.Errorf("command %d = %v, want %v", i, got[i].Kind, k)
		}
	}
	if r.Depth() != 0 {
		t.Errorf("Depth() = %d, want 0", r.Depth())
	}
}

func TestRecorderLimit(t *testing.T) {
	r := NewRecorder(3, 0)
	r.BeginFrame(ColorBlack)
	for i := 0; i < 5; i++ {
		r.DrawRectangle(RectFromLTWH(0, 0, 1, 1), ColorRed)
	}
	if len(r.Commands()) != 3 {
		t.Errorf("len(Commands()) = %d, want 3", len(r.Commands()))
	}
	if r.Dropped() != 3 {
		t.Errorf("Dropped() = %d, want 3", r.Dropped())
	}
	r.BeginFrame(ColorBlack)
	if r.Dropped() != 0 || len(r.Commands()) != 1 {
		t.Errorf("BeginFrame should reset the queue, got %d commands %d dropped", len(r.Commands()), r.Dropped())
	}
}

func TestRecorderCopiesText(t *testing.T) {
	frame := pool.NewStringPool(16)
	r := NewRecorder(0, 64)
	r.BeginFrame(ColorBlack)
	r.DrawText(Offset{}, frame.Store("label"), nil, ColorWhite)
	frame.Reset()
	frame.Store("XXXXX")
	if got := r.Commands()[1].Text; got != "label" {
		t.Errorf("text = %q, want label", got)
	}
}

func TestRecorderReplay(t *testing.T) {
	src := NewRecorder(0, 64)
	src.BeginFrame(ColorBlue)
	src.DrawLine(Offset{}, Offset{X: 5, Y: 5}, 1, ColorRed)
	src.DrawBorder(RectFromLTWH(0, 0, 4, 4), 1, ColorGreen)
	src.EndFrame()

	dst := NewRecorder(0, 64)
	src.Replay(dst)
	a, b := src.Commands(), dst.Commands()
	if len(a) != len(b) {
		t.Fatalf("replayed %d commands, want %d", len(b), len(a))
	}
	for i := range a {
		if a[i].Kind != b[i].Kind || a[i].Color != b[i].Color || a[i].Rect != b[i].Rect {
			t.Errorf("command %d differs: %+v vs %+v", i, a[i], b[i])
		}
	}
}
