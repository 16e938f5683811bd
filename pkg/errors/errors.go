// Package errors provides structured error reporting for the imui engine.
//
// API misuse (calling a builder outside a frame, unbalanced begin/end pairs,
// duplicate identifiers, capacity exhaustion) is detected by the engine and
// turned into a [GUIError]. What happens next is decided once per context by
// its [AssertBehaviour], consulted by a [Reporter].
package errors

import (
	stderrors "errors"
	"fmt"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindUsage indicates public API misuse, such as a builder call outside
	// a frame or an unbalanced begin/end pair.
	KindUsage
	// KindCapacity indicates a fixed-size table or queue is full.
	KindCapacity
	// KindDuplicate indicates the same widget identity was requested twice
	// in one frame.
	KindDuplicate
	// KindClip indicates the clip stack did not return to balance.
	KindClip
	// KindInvariant indicates a broken internal structure. These are only
	// produced by builds with the imuidebug tag.
	KindInvariant
	// KindConfig indicates invalid init options.
	KindConfig
)

func (k ErrorKind) String() string {
	switch k {
	case KindUsage:
		return "usage"
	case KindCapacity:
		return "capacity"
	case KindDuplicate:
		return "duplicate"
	case KindClip:
		return "clip"
	case KindInvariant:
		return "invariant"
	case KindConfig:
		return "config"
	default:
		return "unknown"
	}
}

// Sentinel errors wrapped by GUIError.Err.
var (
	ErrOutsideFrame  = stderrors.New("called outside begin_frame/end_frame")
	ErrNestedFrame   = stderrors.New("begin_frame called twice without end_frame")
	ErrArenaFull     = stderrors.New("widget arena exhausted")
	ErrDuplicateID   = stderrors.New("identifier used twice in one frame")
	ErrUnbalanced    = stderrors.New("unbalanced begin/end")
	ErrClipStack     = stderrors.New("clip stack unbalanced at frame end")
	ErrQueueFull     = stderrors.New("queue full")
	ErrFontTableFull = stderrors.New("font table full")
	ErrSweep         = stderrors.New("destroy sweep count mismatch")
	ErrRenderInFrame = stderrors.New("render called inside a frame")
)

// GUIError represents a structured engine error.
type GUIError struct {
	// Op is the operation that failed (e.g., "gui.AddWidget").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Err is the underlying error.
	Err error
	// WidgetID is the widget involved, or zero.
	WidgetID int32
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *GUIError) Error() string {
	if e.WidgetID != 0 {
		return fmt.Sprintf("%s [%s] widget=%d: %v", e.Op, e.Kind, e.WidgetID, e.Err)
	}
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *GUIError) Unwrap() error {
	return e.Err
}

// New builds a GUIError with a captured stack.
func New(op string, kind ErrorKind, err error) *GUIError {
	return &GUIError{
		Op:         op,
		Kind:       kind,
		Err:        err,
		StackTrace: CaptureStack(),
	}
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool { return stderrors.Is(err, target) }

// As finds the first error in err's chain that matches target.
func As(err error, target any) bool { return stderrors.As(err, target) }
