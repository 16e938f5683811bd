package rendering

// Offset represents a 2D point or vector in pixel coordinates.
type Offset struct {
	X float32
	Y float32
}

// Add returns o translated by d.
func (o Offset) Add(d Offset) Offset {
	return Offset{X: o.X + d.X, Y: o.Y + d.Y}
}

// Sub returns o minus d.
func (o Offset) Sub(d Offset) Offset {
	return Offset{X: o.X - d.X, Y: o.Y - d.Y}
}

// Size represents width and height dimensions in pixels.
type Size struct {
	Width  float32
	Height float32
}

// Axis returns the extent along axis 0 (x) or 1 (y).
func (s Size) Axis(axis int) float32 {
	if axis == 0 {
		return s.Width
	}
	return s.Height
}

// SetAxis sets the extent along axis 0 (x) or 1 (y).
func (s *Size) SetAxis(axis int, v float32) {
	if axis == 0 {
		s.Width = v
	} else {
		s.Height = v
	}
}

// Insets holds padding or margin on each edge.
type Insets struct {
	Left   float32
	Top    float32
	Right  float32
	Bottom float32
}

// UniformInsets returns insets with the same value on every edge.
func UniformInsets(v float32) Insets {
	return Insets{Left: v, Top: v, Right: v, Bottom: v}
}

// Horizontal returns Left+Right.
func (i Insets) Horizontal() float32 { return i.Left + i.Right }

// Vertical returns Top+Bottom.
func (i Insets) Vertical() float32 { return i.Top + i.Bottom }

// Axis returns the summed insets along axis 0 (x) or 1 (y).
func (i Insets) Axis(axis int) float32 {
	if axis == 0 {
		return i.Horizontal()
	}
	return i.Vertical()
}

// Rect represents a rectangle using left, top, right, bottom coordinates.
type Rect struct {
	Left   float32
	Top    float32
	Right  float32
	Bottom float32
}

// RectFromLTWH constructs a Rect from left, top, width, height values.
func RectFromLTWH(left, top, width, height float32) Rect {
	return Rect{
		Left:   left,
		Top:    top,
		Right:  left + width,
		Bottom: top + height,
	}
}

// RectFromOffsetSize constructs a Rect from its top-left corner and size.
func RectFromOffsetSize(o Offset, s Size) Rect {
	return RectFromLTWH(o.X, o.Y, s.Width, s.Height)
}

// Width returns the width of the rectangle.
func (r Rect) Width() float32 {
	return r.Right - r.Left
}

// Height returns the height of the rectangle.
func (r Rect) Height() float32 {
	return r.Bottom - r.Top
}

// Size returns the size of the rectangle.
func (r Rect) Size() Size {
	return Size{Width: r.Width(), Height: r.Height()}
}

// TopLeft returns the top-left corner.
func (r Rect) TopLeft() Offset {
	return Offset{X: r.Left, Y: r.Top}
}

// Center returns the midpoint of r.
func (r Rect) Center() Offset {
	return Offset{X: (r.Left + r.Right) / 2, Y: (r.Top + r.Bottom) / 2}
}

// Contains reports whether p lies inside r. The right and bottom edges are
// exclusive.
func (r Rect) Contains(p Offset) bool {
	return p.X >= r.Left && p.X < r.Right && p.Y >= r.Top && p.Y < r.Bottom
}

// ContainsRect reports whether other lies fully inside r.
func (r Rect) ContainsRect(other Rect) bool {
	return other.Left >= r.Left && other.Top >= r.Top && other.Right <= r.Right && other.Bottom <= r.Bottom
}

// Intersect returns the intersection of two rectangles.
// Returns empty rect if they don't overlap.
func (r Rect) Intersect(other Rect) Rect {
	left := max(r.Left, other.Left)
	top := max(r.Top, other.Top)
	right := min(r.Right, other.Right)
	bottom := min(r.Bottom, other.Bottom)
	if left >= right || top >= bottom {
		return Rect{}
	}
	return Rect{Left: left, Top: top, Right: right, Bottom: bottom}
}

// IsEmpty returns true if the rectangle has zero or negative area.
func (r Rect) IsEmpty() bool {
	return r.Right <= r.Left || r.Bottom <= r.Top
}

// Translate returns a new rect offset by d.
func (r Rect) Translate(d Offset) Rect {
	return Rect{
		Left:   r.Left + d.X,
		Top:    r.Top + d.Y,
		Right:  r.Right + d.X,
		Bottom: r.Bottom + d.Y,
	}
}

// Inflate grows the rect by d on every edge.
func (r Rect) Inflate(d float32) Rect {
	return Rect{Left: r.Left - d, Top: r.Top - d, Right: r.Right + d, Bottom: r.Bottom + d}
}

// Deflate shrinks the rect by the insets, never past zero size.
func (r Rect) Deflate(in Insets) Rect {
	out := Rect{
		Left:   r.Left + in.Left,
		Top:    r.Top + in.Top,
		Right:  r.Right - in.Right,
		Bottom: r.Bottom - in.Bottom,
	}
	if out.Right < out.Left {
		out.Right = out.Left
	}
	if out.Bottom < out.Top {
		out.Bottom = out.Top
	}
	return out
}

// Union returns the smallest rect containing both r and other.
func (r Rect) Union(other Rect) Rect {
	return Rect{
		Left:   min(r.Left, other.Left),
		Top:    min(r.Top, other.Top),
		Right:  max(r.Right, other.Right),
		Bottom: max(r.Bottom, other.Bottom),
	}
}
