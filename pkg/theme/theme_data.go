// Package theme holds the style value table read by widget constructors and
// renderers.
//
// Each Style names one numeric slot. Colours are stored packed as ARGB,
// lengths as whole pixels. Interactive variants sit next to their base slot
// so renderers can look them up as base+State.
package theme

import (
	"fmt"

	"github.com/go-drift/imui/pkg/rendering"
)

// Style identifies one entry in the theme table.
type Style int

const (
	StyleBackground Style = iota

	StyleWindowBackground
	StyleWindowBorder
	StyleWindowBorderWidth
	StyleWindowPadding
	StyleWindowSpacing
	StyleWindowWidth
	StyleWindowHeight
	StyleWindowTitleBackground
	StyleWindowTitleText
	StyleWindowTitleHeight

	StyleContainerBackground
	StyleContainerPadding
	StyleContainerSpacing

	StyleButtonBackground
	StyleButtonBackgroundHovered
	StyleButtonBackgroundPressed
	StyleButtonText
	StyleButtonBorder
	StyleButtonPadding

	StyleLabelText

	StyleScrollbarTrack
	StyleScrollbarThumb
	StyleScrollbarThumbHovered
	StyleScrollbarThumbPressed
	StyleScrollbarWidth
	StyleScrollbarMinThumb

	StyleMouseTolerance

	StyleCount
)

// State offsets for summed lookups, e.g. StyleButtonBackground+StatePressed.
const (
	StateNormal Style = iota
	StateHovered
	StatePressed
)

var styleNames = [StyleCount]string{
	StyleBackground:              "background",
	StyleWindowBackground:        "window_background",
	StyleWindowBorder:            "window_border",
	StyleWindowBorderWidth:       "window_border_width",
	StyleWindowPadding:           "window_padding",
	StyleWindowSpacing:           "window_spacing",
	StyleWindowWidth:             "window_width",
	StyleWindowHeight:            "window_height",
	StyleWindowTitleBackground:   "window_title_background",
	StyleWindowTitleText:         "window_title_text",
	StyleWindowTitleHeight:       "window_title_height",
	StyleContainerBackground:     "container_background",
	StyleContainerPadding:        "container_padding",
	StyleContainerSpacing:        "container_spacing",
	StyleButtonBackground:        "button_background",
	StyleButtonBackgroundHovered: "button_background_hovered",
	StyleButtonBackgroundPressed: "button_background_pressed",
	StyleButtonText:              "button_text",
	StyleButtonBorder:            "button_border",
	StyleButtonPadding:           "button_padding",
	StyleLabelText:               "label_text",
	StyleScrollbarTrack:          "scrollbar_track",
	StyleScrollbarThumb:          "scrollbar_thumb",
	StyleScrollbarThumbHovered:   "scrollbar_thumb_hovered",
	StyleScrollbarThumbPressed:   "scrollbar_thumb_pressed",
	StyleScrollbarWidth:          "scrollbar_width",
	StyleScrollbarMinThumb:       "scrollbar_min_thumb",
	StyleMouseTolerance:          "mouse_tolerance",
}

func (s Style) String() string {
	if s >= 0 && s < StyleCount {
		return styleNames[s]
	}
	return fmt.Sprintf("Style(%d)", int(s))
}

// ParseStyle returns the style with the given name.
func ParseStyle(name string) (Style, bool) {
	for i, n := range styleNames {
		if n == name {
			return Style(i), true
		}
	}
	return 0, false
}

// Theme is one value per Style.
type Theme struct {
	values [StyleCount]uint32
}

// Get returns the raw value of s.
func (t *Theme) Get(s Style) uint32 {
	if s < 0 || s >= StyleCount {
		return 0
	}
	return t.values[s]
}

// Set stores the raw value of s. Out-of-range styles are ignored.
func (t *Theme) Set(s Style, v uint32) {
	if s < 0 || s >= StyleCount {
		return
	}
	t.values[s] = v
}

// Color returns s as a colour.
func (t *Theme) Color(s Style) rendering.Color {
	return rendering.Color(t.Get(s))
}

// Pixels returns s as a length.
func (t *Theme) Pixels(s Style) float32 {
	return float32(t.Get(s))
}

// Interactive returns base offset by the pressed/hovered state.
func (t *Theme) Interactive(base Style, hovered, pressed bool) rendering.Color {
	switch {
	case pressed:
		return t.Color(base + StatePressed)
	case hovered:
		return t.Color(base + StateHovered)
	default:
		return t.Color(base)
	}
}

// Default returns the built-in dark theme.
func Default() *Theme {
	t := &Theme{}
	t.Set(StyleBackground, 0xFF1E1E22)

	t.Set(StyleWindowBackground, 0xFF2B2B30)
	t.Set(StyleWindowBorder, 0xFF45454D)
	t.Set(StyleWindowBorderWidth, 1)
	t.Set(StyleWindowPadding, 8)
	t.Set(StyleWindowSpacing, 6)
	t.Set(StyleWindowWidth, 300)
	t.Set(StyleWindowHeight, 200)
	t.Set(StyleWindowTitleBackground, 0xFF3A3A44)
	t.Set(StyleWindowTitleText, 0xFFE8E8EE)
	t.Set(StyleWindowTitleHeight, 20)

	t.Set(StyleContainerBackground, 0x00000000)
	t.Set(StyleContainerPadding, 0)
	t.Set(StyleContainerSpacing, 4)

	t.Set(StyleButtonBackground, 0xFF3D5A80)
	t.Set(StyleButtonBackgroundHovered, 0xFF4A6B96)
	t.Set(StyleButtonBackgroundPressed, 0xFF2F4766)
	t.Set(StyleButtonText, 0xFFFFFFFF)
	t.Set(StyleButtonBorder, 0xFF5C7BA3)
	t.Set(StyleButtonPadding, 4)

	t.Set(StyleLabelText, 0xFFD0D0D8)

	t.Set(StyleScrollbarTrack, 0xFF26262B)
	t.Set(StyleScrollbarThumb, 0xFF55555F)
	t.Set(StyleScrollbarThumbHovered, 0xFF6A6A76)
	t.Set(StyleScrollbarThumbPressed, 0xFF7F7F8C)
	t.Set(StyleScrollbarWidth, 8)
	t.Set(StyleScrollbarMinThumb, 16)

	t.Set(StyleMouseTolerance, 0)
	return t
}
