package errors

import (
	"fmt"
	"runtime"
	"strings"
	"sync"
	"time"
)

// Handler receives errors reported under AssertLog.
type Handler interface {
	// HandleError is called when an error occurs.
	HandleError(err *GUIError)
}

var (
	// DefaultHandler is the global error handler.
	// It defaults to LogHandler with verbose=false.
	DefaultHandler Handler = &LogHandler{}

	handlerMu sync.RWMutex
)

// SetHandler configures the global error handler.
// Pass nil to restore the default LogHandler.
func SetHandler(h Handler) {
	handlerMu.Lock()
	defer handlerMu.Unlock()
	if h == nil {
		DefaultHandler = &LogHandler{}
	} else {
		DefaultHandler = h
	}
}

func getHandler() Handler {
	handlerMu.RLock()
	defer handlerMu.RUnlock()
	return DefaultHandler
}

// Report sends an error to the global handler.
// If err.Timestamp is zero, it is set to the current time.
func Report(err *GUIError) {
	if err == nil {
		return
	}
	if err.Timestamp.IsZero() {
		err.Timestamp = time.Now()
	}
	if h := getHandler(); h != nil {
		h.HandleError(err)
	}
}

// AssertBehaviour selects what a Reporter does with an error.
type AssertBehaviour int

const (
	// AssertPanic panics with the *GUIError.
	AssertPanic AssertBehaviour = iota
	// AssertError records the first error; the engine returns it from
	// EndFrame, Render and Err.
	AssertError
	// AssertLog forwards the error to the handler and continues.
	AssertLog
	// AssertNone drops the error.
	AssertNone
)

func (b AssertBehaviour) String() string {
	switch b {
	case AssertPanic:
		return "assert"
	case AssertError:
		return "exception"
	case AssertLog:
		return "console"
	case AssertNone:
		return "none"
	default:
		return fmt.Sprintf("AssertBehaviour(%d)", int(b))
	}
}

// ParseAssertBehaviour accepts the option names ASSERT, EXCEPTION, CONSOLE
// and NONE in any case.
func ParseAssertBehaviour(s string) (AssertBehaviour, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "assert":
		return AssertPanic, nil
	case "exception":
		return AssertError, nil
	case "console":
		return AssertLog, nil
	case "none":
		return AssertNone, nil
	}
	return AssertPanic, fmt.Errorf("unknown assert behaviour %q", s)
}

// Reporter applies an AssertBehaviour to errors. The zero value panics.
type Reporter struct {
	Behaviour AssertBehaviour
	// Handler overrides the global handler for AssertLog.
	Handler Handler

	first *GUIError
	count int
}

// Report handles err according to the behaviour. It returns err unchanged
// so callers can bail out with a single statement.
func (r *Reporter) Report(err *GUIError) *GUIError {
	if err == nil {
		return nil
	}
	if err.Timestamp.IsZero() {
		err.Timestamp = time.Now()
	}
	r.count++
	switch r.Behaviour {
	case AssertPanic:
		panic(err)
	case AssertError:
		if r.first == nil {
			r.first = err
		}
	case AssertLog:
		if r.Handler != nil {
			r.Handler.HandleError(err)
		} else {
			Report(err)
		}
	}
	return err
}

// Err returns the first error recorded under AssertError.
func (r *Reporter) Err() error {
	if r.first == nil {
		return nil
	}
	return r.first
}

// Clear forgets the recorded error.
func (r *Reporter) Clear() { r.first = nil }

// Count returns how many errors were reported in total.
func (r *Reporter) Count() int { return r.count }

// CaptureStack returns the current call stack as a string.
// It skips the first few frames to exclude the CaptureStack call itself.
func CaptureStack() string {
	const maxDepth = 32
	var pcs [maxDepth]uintptr
	n := runtime.Callers(3, pcs[:])
	if n == 0 {
		return ""
	}

	frames := runtime.CallersFrames(pcs[:n])
	var sb strings.Builder
	for {
		frame, more := frames.Next()
		sb.WriteString(frame.Function)
		sb.WriteString("\n\t")
		sb.WriteString(frame.File)
		sb.WriteString(":")
		fmt.Fprint(&sb, frame.Line)
		sb.WriteString("\n")
		if !more {
			break
		}
	}
	return sb.String()
}
