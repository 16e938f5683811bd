// Package text measures strings with golang.org/x/image font faces.
//
// The engine never rasterizes glyphs itself; it asks a measurer for sizes
// during layout and hands the face to the render backend for drawing.
package text

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/go-drift/imui/pkg/rendering"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// DefaultFace is the bundled fallback face.
func DefaultFace() font.Face { return basicfont.Face7x13 }

// ParseFace builds a face from TrueType/OpenType data at the given pixel size.
func ParseFace(data []byte, sizePx float64) (font.Face, error) {
	ft, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	face, err := opentype.NewFace(ft, &opentype.FaceOptions{
		Size:    sizePx,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("new face: %w", err)
	}
	return face, nil
}

// Measurer measures text with the face it is given, falling back to
// DefaultFace when the face is nil.
type Measurer struct{}

// LineHeight returns the distance between baselines for face.
func LineHeight(face font.Face) float32 {
	if face == nil {
		face = DefaultFace()
	}
	return float32(face.Metrics().Height.Ceil())
}

// MeasureText returns the size of text. Lines are split on '\n'; the width
// is the widest line.
func (Measurer) MeasureText(text string, face font.Face) rendering.Size {
	if face == nil {
		face = DefaultFace()
	}
	if text == "" {
		return rendering.Size{}
	}
	var width fixed.Int26_6
	lines := 0
	for line := range strings.SplitSeq(text, "\n") {
		lines++
		if w := font.MeasureString(face, line); w > width {
			width = w
		}
	}
	return rendering.Size{
		Width:  float32(width.Ceil()),
		Height: LineHeight(face) * float32(lines),
	}
}

// CharacterPosition returns the x offset of the caret placed before the
// byte index in a single line of text.
func (Measurer) CharacterPosition(text string, face font.Face, index int) float32 {
	if face == nil {
		face = DefaultFace()
	}
	if index <= 0 {
		return 0
	}
	if index > len(text) {
		index = len(text)
	}
	for index > 0 && index < len(text) && !utf8.RuneStart(text[index]) {
		index--
	}
	return float32(font.MeasureString(face, text[:index]).Ceil())
}
