package errors

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
	"sync/atomic"
	"time"
)

type handlerBox struct{ h ErrorHandler }

var current atomic.Pointer[handlerBox]

func init() { current.Store(&handlerBox{h: &LogHandler{}}) }

// Handler returns the handler receiving reports. It is a LogHandler
// writing to slog.Default() until SetHandler replaces it.
func Handler() ErrorHandler { return current.Load().h }

// SetHandler installs h and returns the handler it replaced. A nil h
// restores the default LogHandler.
func SetHandler(h ErrorHandler) ErrorHandler {
	if h == nil {
		h = &LogHandler{}
	}
	return current.Swap(&handlerBox{h: h}).h
}

// Report passes err to the handler, stamping it when it has no time.
func Report(err *GUIError) {
	if err == nil {
		return
	}
	if err.Timestamp.IsZero() {
		err.Timestamp = time.Now()
	}
	Handler().HandleError(err)
}

// ReportErr reports a non-nil err. The first GUIError in its chain is
// reported as is; other errors become KindUnknown under op.
func ReportErr(op string, err error) {
	if err == nil {
		return
	}
	var ge *GUIError
	if !errors.As(err, &ge) {
		ge = &GUIError{Op: op, Err: err}
	}
	Report(ge)
}

// Recover reports a panic in progress. It must be deferred directly:
//
//	defer errors.Recover("window.Window.Render")
func Recover(op string) {
	if r := recover(); r != nil {
		ReportPanic(newPanic(op, r))
	}
}

// RecoverWithCallback is Recover followed by callback(r) when a panic was
// recovered.
func RecoverWithCallback(op string, callback func(r any)) {
	r := recover()
	if r == nil {
		return
	}
	ReportPanic(newPanic(op, r))
	if callback != nil {
		callback(r)
	}
}

func newPanic(op string, r any) *PanicError {
	return &PanicError{Op: op, Value: r, StackTrace: CaptureStack(), Timestamp: time.Now()}
}

// ReportPanic passes a recovered panic to the handler.
func ReportPanic(err *PanicError) {
	if err == nil {
		return
	}
	if err.Timestamp.IsZero() {
		err.Timestamp = time.Now()
	}
	Handler().HandlePanic(err)
}

// CaptureStack formats the caller's stack, one "function (file:line)"
// per line.
func CaptureStack() string {
	pcs := make([]uintptr, 32)
	n := runtime.Callers(2, pcs)
	frames := runtime.CallersFrames(pcs[:n])
	var sb strings.Builder
	for {
		f, more := frames.Next()
		if f.Function != "" {
			fmt.Fprintf(&sb, "%s (%s:%d)\n", f.Function, f.File, f.Line)
		}
		if !more {
			break
		}
	}
	return sb.String()
}
