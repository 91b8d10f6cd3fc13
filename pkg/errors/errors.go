// Package errors provides structured error handling for facet.
//
// Every failure raised by the toolkit core is a *GUIError carrying the
// operation that failed, a Kind from the toolkit's error taxonomy and the
// identifier (event, window, property or file name) the failure is about.
// Callers match kinds with the standard library:
//
//	if errors.Is(err, guierrors.ErrUnknownObject) { ... }
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
	// KindAlreadyExists indicates a duplicate registration.
	KindAlreadyExists
	// KindUnknownObject indicates a lookup miss.
	KindUnknownObject
	// KindInvalidRequest indicates a malformed value or a disallowed change.
	KindInvalidRequest
	// KindFileIO indicates a resource load or decode failure.
	KindFileIO
	// KindRender indicates a failure reported by a renderer backend.
	KindRender
	// KindPanic indicates a recovered panic.
	KindPanic
)

func (k ErrorKind) String() string {
	switch k {
	case KindAlreadyExists:
		return "already_exists"
	case KindUnknownObject:
		return "unknown_object"
	case KindInvalidRequest:
		return "invalid_request"
	case KindFileIO:
		return "file_io"
	case KindRender:
		return "render"
	case KindPanic:
		return "panic"
	default:
		return "unknown"
	}
}

// Sentinel values matched by GUIError.Is.
var (
	ErrAlreadyExists  = stderrors.New("already exists")
	ErrUnknownObject  = stderrors.New("unknown object")
	ErrInvalidRequest = stderrors.New("invalid request")
	ErrFileIO         = stderrors.New("file i/o failure")
	ErrRender         = stderrors.New("renderer failure")
)

func (k ErrorKind) sentinel() error {
	switch k {
	case KindAlreadyExists:
		return ErrAlreadyExists
	case KindUnknownObject:
		return ErrUnknownObject
	case KindInvalidRequest:
		return ErrInvalidRequest
	case KindFileIO:
		return ErrFileIO
	case KindRender:
		return ErrRender
	}
	return nil
}

// GUIError represents a structured error in the toolkit core.
type GUIError struct {
	// Op is the operation that failed (e.g., "event.Set.AddEvent").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Name is the identifier the failure is about, if any.
	Name string
	// Err is the underlying error.
	Err error
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *GUIError) Error() string {
	msg := e.Kind.String()
	if s := e.Kind.sentinel(); s != nil {
		msg = s.Error()
	}
	if e.Err != nil {
		msg = e.Err.Error()
	}
	if e.Name != "" {
		return fmt.Sprintf("%s [%s] %q: %s", e.Op, e.Kind, e.Name, msg)
	}
	return fmt.Sprintf("%s [%s]: %s", e.Op, e.Kind, msg)
}

func (e *GUIError) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel for this error's kind.
func (e *GUIError) Is(target error) bool {
	s := e.Kind.sentinel()
	return s != nil && s == target
}

// KindOf returns the kind of the first GUIError in err's chain, or KindUnknown.
func KindOf(err error) ErrorKind {
	var ge *GUIError
	if stderrors.As(err, &ge) {
		return ge.Kind
	}
	return KindUnknown
}

// AlreadyExists reports a duplicate registration of name.
func AlreadyExists(op, name string) *GUIError {
	return &GUIError{Op: op, Kind: KindAlreadyExists, Name: name}
}

// UnknownObject reports a failed lookup of name.
func UnknownObject(op, name string) *GUIError {
	return &GUIError{Op: op, Kind: KindUnknownObject, Name: name}
}

// InvalidRequest reports a malformed value or disallowed change concerning name.
func InvalidRequest(op, name string, err error) *GUIError {
	return &GUIError{Op: op, Kind: KindInvalidRequest, Name: name, Err: err}
}

// InvalidRequestf is InvalidRequest with a formatted cause.
func InvalidRequestf(op, name, format string, args ...any) *GUIError {
	return InvalidRequest(op, name, fmt.Errorf(format, args...))
}

// FileIO reports a failure to load or decode the named resource.
func FileIO(op, name string, err error) *GUIError {
	return &GUIError{Op: op, Kind: KindFileIO, Name: name, Err: err}
}

// Render reports a failure raised by a renderer backend.
func Render(op, name string, err error) *GUIError {
	return &GUIError{Op: op, Kind: KindRender, Name: name, Err: err}
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "event.Set.FireEvent").
	Op string
	// Value is the value passed to panic().
	Value any
	// StackTrace contains the call stack at the time of the panic.
	StackTrace string
	// Timestamp is when the panic occurred.
	Timestamp time.Time
}

func (e *PanicError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("panic in %s: %v", e.Op, e.Value)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// ErrorHandler receives errors reported by the toolkit.
type ErrorHandler interface {
	// HandleError is called when an error is reported.
	HandleError(err *GUIError)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
}
