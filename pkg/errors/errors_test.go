package errors

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGUIErrorString(t *testing.T) {
	err := UnknownObject("window.Window.Child", "Root/Frame")
	got := err.Error()
	want := `window.Window.Child [unknown_object] "Root/Frame": unknown object`
	if got != want {
		t.Errorf("GUIError.Error() = %q, want %q", got, want)
	}
}

func TestGUIErrorWrapsCause(t *testing.T) {
	cause := fmt.Errorf("bad float")
	err := InvalidRequest("property.Typed.Set", "Alpha", cause)
	assert.Contains(t, err.Error(), "bad float")
	assert.ErrorIs(t, err, cause)
	assert.ErrorIs(t, err, ErrInvalidRequest)
	assert.NotErrorIs(t, err, ErrUnknownObject)
}

func TestErrorKindString(t *testing.T) {
	tests := []struct {
		kind ErrorKind
		want string
	}{
		{KindUnknown, "unknown"},
		{KindAlreadyExists, "already_exists"},
		{KindUnknownObject, "unknown_object"},
		{KindInvalidRequest, "invalid_request"},
		{KindFileIO, "file_io"},
		{KindRender, "render"},
		{KindPanic, "panic"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("ErrorKind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestKindOfWrapped(t *testing.T) {
	err := fmt.Errorf("loading scheme: %w", FileIO("resource.DirProvider.Load", "Taharez.scheme", stderrors.New("missing")))
	assert.Equal(t, KindFileIO, KindOf(err))
	assert.Equal(t, KindUnknown, KindOf(stderrors.New("plain")))
}

func TestPanicErrorString(t *testing.T) {
	err := &PanicError{Value: "test panic", Timestamp: time.Now()}
	assert.Equal(t, "panic: test panic", err.Error())

	err.Op = "event.Set.FireEvent"
	assert.Equal(t, "panic in event.Set.FireEvent: test panic", err.Error())
}

func TestReport(t *testing.T) {
	var captured *GUIError
	handler := &testHandler{onError: func(err *GUIError) { captured = err }}

	defer SetHandler(SetHandler(handler))

	Report(AlreadyExists("event.Set.AddEvent", "Clicked"))

	require.NotNil(t, captured)
	assert.Equal(t, "event.Set.AddEvent", captured.Op)
	assert.False(t, captured.Timestamp.IsZero())
}

func TestReportErrWrapsForeignErrors(t *testing.T) {
	var captured *GUIError
	handler := &testHandler{onError: func(err *GUIError) { captured = err }}

	defer SetHandler(SetHandler(handler))

	ReportErr("gui.System.LoadScheme", nil)
	assert.Nil(t, captured)

	ReportErr("gui.System.LoadScheme", stderrors.New("boom"))
	require.NotNil(t, captured)
	assert.Equal(t, KindUnknown, captured.Kind)
	assert.Equal(t, "gui.System.LoadScheme", captured.Op)
}

func TestRecover(t *testing.T) {
	var captured *PanicError
	handler := &testHandler{onPanic: func(err *PanicError) { captured = err }}

	defer SetHandler(SetHandler(handler))

	func() {
		defer Recover("test.recover")
		panic("intentional test panic")
	}()

	require.NotNil(t, captured)
	assert.Equal(t, "intentional test panic", captured.Value)
	assert.Equal(t, "test.recover", captured.Op)
	assert.NotEmpty(t, captured.StackTrace)
}

func TestRecoverWithCallback(t *testing.T) {
	defer SetHandler(SetHandler(&testHandler{}))

	var got any
	func() {
		defer RecoverWithCallback("test.callback", func(r any) { got = r })
		panic(42)
	}()
	assert.Equal(t, 42, got)
}

func TestCaptureStack(t *testing.T) {
	stack := CaptureStack()
	if !strings.Contains(stack, "testing") && !strings.Contains(stack, "runtime") {
		t.Errorf("stack trace should contain testing or runtime frames, got: %s", stack)
	}
}

func TestSetHandlerNil(t *testing.T) {
	custom := &testHandler{}
	prev := SetHandler(custom)
	assert.Same(t, custom, SetHandler(nil))
	assert.IsType(t, &LogHandler{}, Handler())
	SetHandler(prev)
}

func TestReportErrKeepsWrappedGUIError(t *testing.T) {
	var captured *GUIError
	defer SetHandler(SetHandler(&testHandler{onError: func(err *GUIError) { captured = err }}))

	inner := UnknownObject("font.Manager.Get", "Sans")
	ReportErr("gui.System.SetDefaultFont", fmt.Errorf("default font: %w", inner))
	assert.Same(t, inner, captured)
}

func TestLogHandlerWritesAttributes(t *testing.T) {
	var buf bytes.Buffer
	h := &LogHandler{Logger: slog.New(slog.NewTextHandler(&buf, nil))}

	h.HandleError(UnknownObject("skin.Manager.Get", "Taharez/Button"))
	out := buf.String()
	assert.Contains(t, out, "op=skin.Manager.Get")
	assert.Contains(t, out, "kind=unknown_object")
	assert.Contains(t, out, "Taharez/Button")

	buf.Reset()
	h.HandlePanic(&PanicError{Op: "input.Aggregator", Value: "boom"})
	assert.Contains(t, buf.String(), "value=boom")
}

type testHandler struct {
	onError func(*GUIError)
	onPanic func(*PanicError)
}

func (h *testHandler) HandleError(err *GUIError) {
	if h.onError != nil {
		h.onError(err)
	}
}

func (h *testHandler) HandlePanic(err *PanicError) {
	if h.onPanic != nil {
		h.onPanic(err)
	}
}
