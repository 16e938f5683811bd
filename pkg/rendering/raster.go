package rendering

import (
	"image"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// RasterBackend draws into an in-memory RGBA image. It is used by the CLI
// and by tests that inspect pixels.
type RasterBackend struct {
	img   *image.RGBA
	clips []image.Rectangle
}

// NewRasterBackend creates a backend with a width×height target.
func NewRasterBackend(width, height int) *RasterBackend {
	return &RasterBackend{img: image.NewRGBA(image.Rect(0, 0, width, height))}
}

// Image returns the render target.
func (b *RasterBackend) Image() *image.RGBA { return b.img }

// Resize replaces the target when the screen size changes.
func (b *RasterBackend) Resize(width, height int) {
	if b.img.Bounds().Dx() == width && b.img.Bounds().Dy() == height {
		return
	}
	b.img = image.NewRGBA(image.Rect(0, 0, width, height))
}

func (b *RasterBackend) clip() image.Rectangle {
	if len(b.clips) == 0 {
		return b.img.Bounds()
	}
	return b.clips[len(b.clips)-1]
}

func toImageRect(r Rect) image.Rectangle {
	return image.Rect(
		int(math.Floor(float64(r.Left))),
		int(math.Floor(float64(r.Top))),
		int(math.Ceil(float64(r.Right))),
		int(math.Ceil(float64(r.Bottom))),
	)
}

func (b *RasterBackend) fill(r image.Rectangle, c Color) {
	r = r.Intersect(b.clip())
	if r.Empty() || c.Alpha() == 0 {
		return
	}
	draw.Draw(b.img, r, image.NewUniform(c.NRGBA()), image.Point{}, draw.Over)
}

func (b *RasterBackend) BeginFrame(background Color) {
	b.clips = b.clips[:0]
	draw.Draw(b.img, b.img.Bounds(), image.NewUniform(background.NRGBA()), image.Point{}, draw.Src)
}

func (b *RasterBackend) EndFrame() {}

func (b *RasterBackend) DrawRectangle(rect Rect, color Color) {
	b.fill(toImageRect(rect), color)
}

func (b *RasterBackend) DrawBorder(rect Rect, width float32, color Color) {
	r := toImageRect(rect)
	w := int(math.Ceil(float64(width)))
	if w <= 0 {
		return
	}
	b.fill(image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+w), color)
	b.fill(image.Rect(r.Min.X, r.Max.Y-w, r.Max.X, r.Max.Y), color)
	b.fill(image.Rect(r.Min.X, r.Min.Y+w, r.Min.X+w, r.Max.Y-w), color)
	b.fill(image.Rect(r.Max.X-w, r.Min.Y+w, r.Max.X, r.Max.Y-w), color)
}

func (b *RasterBackend) DrawText(position Offset, text string, face font.Face, color Color) {
	if face == nil || text == "" {
		return
	}
	dst, ok := b.img.SubImage(b.clip()).(*image.RGBA)
	if !ok {
		return
	}
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(color.NRGBA()),
		Face: face,
		Dot: fixed.Point26_6{
			X: fixed.I(int(position.X)),
			Y: fixed.I(int(position.Y)) + face.Metrics().Ascent,
		},
	}
	d.DrawString(text)
}

func (b *RasterBackend) DrawImage(rect Rect, img image.Image) {
	if img == nil {
		return
	}
	dst, ok := b.img.SubImage(b.clip()).(*image.RGBA)
	if !ok {
		return
	}
	draw.ApproxBiLinear.Scale(dst, toImageRect(rect), img, img.Bounds(), draw.Over, nil)
}

func (b *RasterBackend) DrawLine(from, to Offset, width float32, color Color) {
	half := max(width/2, 0.5)
	dx := float64(to.X - from.X)
	dy := float64(to.Y - from.Y)
	steps := int(math.Ceil(math.Max(math.Abs(dx), math.Abs(dy))))
	if steps == 0 {
		steps = 1
	}
	for i := 0; i <= steps; i++ {
		t := float32(i) / float32(steps)
		x := from.X + float32(dx)*t
		y := from.Y + float32(dy)*t
		b.fill(toImageRect(Rect{Left: x - half, Top: y - half, Right: x + half, Bottom: y + half}), color)
	}
}

func (b *RasterBackend) PushClipRect(rect Rect) {
	b.clips = append(b.clips, toImageRect(rect).Intersect(b.clip()))
}

func (b *RasterBackend) PopClipRect() {
	if len(b.clips) > 0 {
		b.clips = b.clips[:len(b.clips)-1]
	}
}
