package errors

import (
	"fmt"
	"io"
	"os"
)

// LogHandler is a Handler that logs errors to stderr.
type LogHandler struct {
	// Verbose enables detailed output including stack traces.
	Verbose bool
	// Out overrides stderr.
	Out io.Writer
}

// HandleError logs a GUIError.
func (h *LogHandler) HandleError(err *GUIError) {
	if err == nil {
		return
	}
	out := h.Out
	if out == nil {
		out = os.Stderr
	}
	if h.Verbose {
		fmt.Fprintf(out, "[imui error] %s [%s]", err.Op, err.Kind)
		if err.WidgetID != 0 {
			fmt.Fprintf(out, " widget=%d", err.WidgetID)
		}
		fmt.Fprintf(out, ": %v\n", err.Err)
		if err.StackTrace != "" {
			fmt.Fprintf(out, "Stack trace:\n%s\n", err.StackTrace)
		}
	} else {
		fmt.Fprintf(out, "[imui error] %s: %v\n", err.Op, err.Err)
	}
}
