package theme

import "testing"

func TestEveryStyleHasAName(t *testing.T) {
	for s := Style(0); s < StyleCount; s++ {
		name := s.String()
		if name == "" {
			t.Errorf("style %d has no name", s)
			continue
		}
		got, ok := ParseStyle(name)
		if !ok || got != s {
			t.Errorf("ParseStyle(%q) = %v,%v want %v", name, got, ok, s)
		}
	}
}

func TestInteractiveSummedLookup(t *testing.T) {
	th := Default()
	tests := []struct {
		hovered, pressed bool
		want             Style
	}{
		{false, false, StyleButtonBackground},
		{true, false, StyleButtonBackgroundHovered},
		{true, true, StyleButtonBackgroundPressed},
		{false, true, StyleButtonBackgroundPressed},
	}
	for _, tt := range tests {
		if got := th.Interactive(StyleButtonBackground, tt.hovered, tt.pressed); got != th.Color(tt.want) {
			t.Errorf("Interactive(hovered=%v, pressed=%v) = %#08x, want %v", tt.hovered, tt.pressed, uint32(got), tt.want)
		}
	}
}

func TestSetIgnoresOutOfRange(t *testing.T) {
	th := &Theme{}
	th.Set(StyleCount, 5)
	th.Set(-1, 5)
	if th.Get(StyleCount) != 0 || th.Get(-1) != 0 {
		t.Error("out-of-range styles should read as zero")
	}
}

func TestDefaultWindowSize(t *testing.T) {
	th := Default()
	if th.Pixels(StyleWindowWidth) != 300 || th.Pixels(StyleWindowHeight) != 200 {
		t.Errorf("default window = %vx%v, want 300x200", th.Pixels(StyleWindowWidth), th.Pixels(StyleWindowHeight))
	}
}
