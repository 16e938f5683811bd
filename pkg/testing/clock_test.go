package testing

import (
	"testing"
	"time"

	"github.com/go-drift/imui/pkg/rendering"
)

func TestFakeClock_Advance(t *testing.T) {
	clk := NewFakeClock()
	start := clk.Now()

	clk.Advance(100 * time.Millisecond)
	elapsed := clk.Now().Sub(start)

	if elapsed != 100*time.Millisecond {
		t.Errorf("expected 100ms elapsed, got %v", elapsed)
	}
}

func TestFakeClock_Set(t *testing.T) {
	clk := NewFakeClock()
	target := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	clk.Set(target)
	if !clk.Now().Equal(target) {
		t.Errorf("expected %v, got %v", target, clk.Now())
	}
}

func TestFakePlatform_FollowsClock(t *testing.T) {
	clk := NewFakeClock()
	p := NewFakePlatform(clk)
	ms, ticks := p.TimeMilliseconds(), p.PerformanceCounter()

	clk.Advance(250 * time.Millisecond)
	if got := p.TimeMilliseconds() - ms; got != 250 {
		t.Errorf("TimeMilliseconds advanced %d, want 250", got)
	}
	if got := p.PerformanceCounter() - ticks; got != 250*p.PerformanceFrequency()/1000 {
		t.Errorf("PerformanceCounter advanced %d ticks", got)
	}
}

func TestFakePlatform_Clipboard(t *testing.T) {
	p := NewFakePlatform(NewFakeClock())
	p.CopyTextToClipboard("copied")
	if got := p.ClipboardText(); got != "copied" {
		t.Errorf("ClipboardText() = %q", got)
	}

	at := rendering.RectFromLTWH(1, 2, 3, 4)
	p.SetInputMethodEditor(true, at)
	if on, r := p.InputMethodEditor(); !on || r != at {
		t.Errorf("InputMethodEditor() = %v, %+v", on, r)
	}
}

func TestHarness_Clock(t *testing.T) {
	h := NewHarnessWithT(t)
	clk := h.Clock()

	start := clk.Now()
	clk.Advance(500 * time.Millisecond)
	if clk.Now().Sub(start) != 500*time.Millisecond {
		t.Error("clock advancement not reflected")
	}
	if h.Platform().TimeMilliseconds() != clk.Now().UnixMilli() {
		t.Error("platform does not read the harness clock")
	}
}

func TestFixedMeasurer(t *testing.T) {
	m := FixedMeasurer{Advance: 5, LineHeight: 12}
	if got := m.MeasureText("héllo", nil); got != (rendering.Size{Width: 25, Height: 12}) {
		t.Errorf("MeasureText() = %+v", got)
	}
	tests := []struct {
		index int
		want  float32
	}{
		{-1, 0},
		{0, 0},
		{2, 10},
		{9, 15},
	}
	for _, tt := range tests {
		if got := m.CharacterPosition("abc", nil, tt.index); got != tt.want {
			t.Errorf("CharacterPosition(%d) = %v, want %v", tt.index, got, tt.want)
		}
	}
}
