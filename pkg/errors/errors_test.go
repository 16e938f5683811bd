package errors

import (
	"bytes"
	"strings"
	"testing"
)

type testHandler struct {
	onError func(*GUIError)
}

func (h *testHandler) HandleError(err *GUIError) {
	if h.onError != nil {
		h.onError(err)
	}
}

func TestGUIErrorString(t *testing.T) {
	err := &GUIError{Op: "gui.AddWidget", Kind: KindCapacity, Err: ErrArenaFull}
	want := "gui.AddWidget [capacity]: widget arena exhausted"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestGUIErrorWithWidget(t *testing.T) {
	err := &GUIError{Op: "gui.AddWidget", Kind: KindDuplicate, Err: ErrDuplicateID, WidgetID: 7}
	if got := err.Error(); !strings.Contains(got, "widget=7") {
		t.Errorf("error string %q should contain widget id", got)
	}
	if !Is(err, ErrDuplicateID) {
		t.Error("expected GUIError to unwrap to ErrDuplicateID")
	}
}

func TestErrorKindString(t *testing.T) {
	tests := []struct {
		kind ErrorKind
		want string
	}{
		{KindUnknown, "unknown"},
		{KindUsage, "usage"},
		{KindCapacity, "capacity"},
		{KindDuplicate, "duplicate"},
		{KindClip, "clip"},
		{KindInvariant, "invariant"},
		{KindConfig, "config"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("ErrorKind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestParseAssertBehaviour(t *testing.T) {
	tests := []struct {
		in      string
		want    AssertBehaviour
		wantErr bool
	}{
		{"ASSERT", AssertPanic, false},
		{"", AssertPanic, false},
		{"exception", AssertError, false},
		{" Console ", AssertLog, false},
		{"NONE", AssertNone, false},
		{"abort", AssertPanic, true},
	}
	for _, tt := range tests {
		got, err := ParseAssertBehaviour(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseAssertBehaviour(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseAssertBehaviour(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestReporterPanics(t *testing.T) {
	r := &Reporter{Behaviour: AssertPanic}
	defer func() {
		v := recover()
		if _, ok := v.(*GUIError); !ok {
			t.Fatalf("expected *GUIError panic, got %T", v)
		}
	}()
	r.Report(New("test.op", KindUsage, ErrOutsideFrame))
	t.Fatal("expected panic")
}

func TestReporterRecordsFirstError(t *testing.T) {
	r := &Reporter{Behaviour: AssertError}
	r.Report(New("first", KindUsage, ErrOutsideFrame))
	r.Report(New("second", KindCapacity, ErrArenaFull))

	var ge *GUIError
	if !As(r.Err(), &ge) {
		t.Fatalf("Err() = %v, want *GUIError", r.Err())
	}
	if ge.Op != "first" {
		t.Errorf("Op = %q, want first", ge.Op)
	}
	if r.Count() != 2 {
		t.Errorf("Count() = %d, want 2", r.Count())
	}
	r.Clear()
	if r.Err() != nil {
		t.Error("expected Clear to drop recorded error")
	}
}

func TestReporterLogsToHandler(t *testing.T) {
	var captured *GUIError
	r := &Reporter{Behaviour: AssertLog, Handler: &testHandler{onError: func(e *GUIError) { captured = e }}}
	r.Report(New("test.op", KindClip, ErrClipStack))
	if captured == nil {
		t.Fatal("expected handler to be called")
	}
	if captured.Timestamp.IsZero() {
		t.Error("expected Timestamp to be set")
	}
	if r.Err() != nil {
		t.Error("AssertLog should not record the error")
	}
}

func TestReporterNone(t *testing.T) {
	r := &Reporter{Behaviour: AssertNone}
	if got := r.Report(New("test.op", KindUsage, ErrUnbalanced)); got == nil {
		t.Error("Report should return the error it was given")
	}
	if r.Err() != nil {
		t.Error("AssertNone should not record the error")
	}
}

func TestReportUsesGlobalHandler(t *testing.T) {
	var captured *GUIError
	old := DefaultHandler
	SetHandler(&testHandler{onError: func(e *GUIError) { captured = e }})
	defer SetHandler(old)

	r := &Reporter{Behaviour: AssertLog}
	r.Report(New("global", KindUsage, ErrOutsideFrame))
	if captured == nil || captured.Op != "global" {
		t.Fatalf("captured = %v, want op global", captured)
	}
}

func TestSetHandlerNil(t *testing.T) {
	old := DefaultHandler
	defer SetHandler(old)
	SetHandler(nil)
	if _, ok := DefaultHandler.(*LogHandler); !ok {
		t.Errorf("SetHandler(nil) should set LogHandler, got %T", DefaultHandler)
	}
}

func TestLogHandlerVerbose(t *testing.T) {
	var buf bytes.Buffer
	h := &LogHandler{Verbose: true, Out: &buf}
	h.HandleError(&GUIError{Op: "gui.Render", Kind: KindClip, Err: ErrClipStack, StackTrace: "frame\n"})
	out := buf.String()
	if !strings.Contains(out, "[imui error] gui.Render [clip]") {
		t.Errorf("unexpected output %q", out)
	}
	if !strings.Contains(out, "Stack trace:") {
		t.Errorf("verbose output should include stack, got %q", out)
	}
}

func TestCaptureStack(t *testing.T) {
	stack := CaptureStack()
	if !strings.Contains(stack, "testing") && !strings.Contains(stack, "runtime") {
		t.Errorf("stack trace should contain testing or runtime frames, got: %s", stack)
	}
}
