package rendering

import (
	"image"

	"golang.org/x/image/font"
)

// Backend receives the primitive draw calls issued by the render pipeline.
// All coordinates are global pixels. Implementations are supplied by the
// platform layer; Recorder and RasterBackend are provided here.
type Backend interface {
	// BeginFrame starts a frame and clears it to background.
	BeginFrame(background Color)

	// EndFrame finishes the frame.
	EndFrame()

	// DrawRectangle fills rect.
	DrawRectangle(rect Rect, color Color)

	// DrawBorder strokes the inside edge of rect with the given width.
	DrawBorder(rect Rect, width float32, color Color)

	// DrawText draws text with its top-left corner at position.
	DrawText(position Offset, text string, face font.Face, color Color)

	// DrawImage draws img scaled into rect.
	DrawImage(rect Rect, img image.Image)

	// DrawLine draws a line segment.
	DrawLine(from, to Offset, width float32, color Color)

	// PushClipRect restricts drawing to the intersection of rect and the
	// current clip.
	PushClipRect(rect Rect)

	// PopClipRect restores the previous clip.
	PopClipRect()
}
