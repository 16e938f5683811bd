package testing

import (
	"unicode/utf8"

	"github.com/go-drift/imui/pkg/rendering"
	"golang.org/x/image/font"
)

// FixedMeasurer measures every rune as Advance wide and every line as
// LineHeight tall, so expected rects can be worked out by hand.
type FixedMeasurer struct {
	Advance    float32
	LineHeight float32
}

// DefaultMeasurer is 8x10 per rune.
var DefaultMeasurer = FixedMeasurer{Advance: 8, LineHeight: 10}

func (m FixedMeasurer) MeasureText(s string, _ font.Face) rendering.Size {
	return rendering.Size{Width: m.Advance * float32(utf8.RuneCountInString(s)), Height: m.LineHeight}
}

func (m FixedMeasurer) CharacterPosition(s string, _ font.Face, index int) float32 {
	index = min(max(index, 0), utf8.RuneCountInString(s))
	return m.Advance * float32(index)
}
