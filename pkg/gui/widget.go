package gui

import (
	"github.com/go-drift/imui/pkg/rendering"
)

// WidgetID indexes the widget arena. Zero is the NULL sentinel and never
// names a live widget. An id may be stored across frames but must be
// revalidated with [Context.Lookup] before use, since slots are recycled.
type WidgetID int32

// NullID is the NULL widget.
const NullID WidgetID = 0

// WidgetType selects the behaviour table entry for a widget.
type WidgetType uint8

const (
	TypeNone WidgetType = iota
	TypeRoot
	TypeWindow
	TypeContainer
	TypeButton
	TypeLabel
	TypeScrollbar
	TypeSpacer
	TypeCustom

	typeCount
)

func (t WidgetType) String() string {
	switch t {
	case TypeRoot:
		return "root"
	case TypeWindow:
		return "window"
	case TypeContainer:
		return "container"
	case TypeButton:
		return "button"
	case TypeLabel:
		return "label"
	case TypeScrollbar:
		return "scrollbar"
	case TypeSpacer:
		return "spacer"
	case TypeCustom:
		return "custom"
	default:
		return "none"
	}
}

// Flags are per-widget state bits.
type Flags uint16

const (
	// FlagUsed marks a live slot.
	FlagUsed Flags = 1 << iota
	// FlagIgnore excludes the widget and its subtree from layout, hashing,
	// hit-testing and rendering.
	FlagIgnore
	// FlagForceRender is set when a scheduled forced render fires.
	FlagForceRender
	// FlagClicked is set by the input pass for the frame a button is clicked.
	FlagClicked
)

// transientFlags never contribute to the frame digest.
const transientFlags = FlagForceRender | FlagClicked

// Hierarchy is the intrusive tree record. A detached widget has all fields
// zero. Free slots chain through NextSibling.
type Hierarchy struct {
	Parent      WidgetID
	PrevSibling WidgetID
	NextSibling WidgetID
	FirstChild  WidgetID
	LastChild   WidgetID
}

// HashChain links widgets sharing a hash bucket.
type HashChain struct {
	Prev WidgetID
	Next WidgetID
}

// Direction controls how children are positioned.
type Direction uint8

const (
	DirectionVertical Direction = iota
	DirectionHorizontal
	DirectionFree
)

// IntrinsicMode selects how a widget sizes itself before constraints.
type IntrinsicMode uint8

const (
	IntrinsicNone IntrinsicMode = iota
	IntrinsicFixedPixels
	IntrinsicMeasureText
)

// Dock pins a free child to an edge of its parent.
type Dock uint8

const (
	DockNone Dock = iota
	DockLeft
	DockRight
	DockTop
	DockBottom
)

// LayoutFlags modify the layout of one widget.
type LayoutFlags uint16

const (
	// LayoutExpandWidth fills the remaining width minus ExpandPadding.
	LayoutExpandWidth LayoutFlags = 1 << iota
	// LayoutExpandHeight fills the remaining height minus ExpandPadding.
	LayoutExpandHeight
	// LayoutIntrinsicSizeIsMaxSize makes the intrinsic size an upper bound.
	LayoutIntrinsicSizeIsMaxSize
	// LayoutAllowOverflowX lets children extend past the padded width.
	LayoutAllowOverflowX
	// LayoutAllowOverflowY lets children extend past the padded height.
	LayoutAllowOverflowY
	// LayoutParentControlled takes the widget out of its parent's flow.
	LayoutParentControlled
)

func expandFlag(axis int) LayoutFlags {
	if axis == 0 {
		return LayoutExpandWidth
	}
	return LayoutExpandHeight
}

func overflowFlag(axis int) LayoutFlags {
	if axis == 0 {
		return LayoutAllowOverflowX
	}
	return LayoutAllowOverflowY
}

// MaxSortIndex brings a free child to the front at the next layout pass.
const MaxSortIndex = ^uint32(0)

// LayoutSpec is the caller-declared layout of a widget.
type LayoutSpec struct {
	Direction Direction
	Intrinsic IntrinsicMode
	// FixedSize is used by IntrinsicFixedPixels.
	FixedSize rendering.Size
	// Min and Max are the widget's own constraints. A zero Max means
	// unbounded on that axis.
	Min           rendering.Size
	Max           rendering.Size
	Padding       rendering.Insets
	Spacing       float32
	ExpandPadding rendering.Size
	Flags         LayoutFlags
	Dock          Dock
	// Position is the explicit parent-relative position of a free or
	// parent-controlled child.
	Position  rendering.Offset
	SortIndex uint32
}

// Computed holds layout results.
type Computed struct {
	// Position is relative to the parent's box.
	Position rendering.Offset
	Size     rendering.Size
	// ContentSize is the extent of the in-flow children, without padding.
	ContentSize  rendering.Size
	GlobalRect   rendering.Rect
	LaidOutFrame uint64
}

// InputFlags modify hit-testing and input handling.
type InputFlags uint8

const (
	// InputNoHit makes the widget transparent to hit-testing. Its children
	// are still tested.
	InputNoHit InputFlags = 1 << iota
	// InputDraggable lets the widget capture the pointer while pressed.
	InputDraggable
)

// FontID indexes the context font table. Zero is the default face.
type FontID uint8

// Properties is the widget payload. Builders decide per field whether to
// write it every frame or only when the widget is new.
type Properties struct {
	Layout   LayoutSpec
	Computed Computed

	Text string
	Font FontID

	Value float32
	Min   float32
	Max   float32

	Input          InputFlags
	MouseTolerance float32
	// ContentOffset scrolls in-flow children.
	ContentOffset rendering.Offset

	Background  rendering.Color
	Foreground  rendering.Color
	Border      rendering.Color
	BorderWidth float32

	// Custom is the widget's extension block from the custom-property pool.
	Custom []byte
	// Draw renders TypeCustom widgets.
	Draw func(rc *RenderContext)
}

// Widget is one arena slot.
type Widget struct {
	Hash            uint32
	LastUsedInFrame uint64
	Type            WidgetType
	Flags           Flags
	Hierarchy       Hierarchy
	HashChain       HashChain
	Props           Properties

	// buildCursor is the last child touched this frame.
	buildCursor WidgetID
}

// Used reports whether the slot is live.
func (w *Widget) Used() bool { return w.Flags&FlagUsed != 0 }

func (w *Widget) parentControlled() bool {
	return w.Props.Layout.Flags&LayoutParentControlled != 0
}

func (w *Widget) ignored() bool { return w.Flags&FlagIgnore != 0 }
