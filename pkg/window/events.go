package window

import (
	"github.com/go-drift/facet/pkg/event"
	"github.com/go-drift/facet/pkg/graphics"
)

// EventNamespace is the global event namespace for windows.
const EventNamespace = "Window"

// Window event names.
const (
	EventChildAdded          = "ChildAdded"
	EventChildRemoved        = "ChildRemoved"
	EventSized               = "Sized"
	EventMoved               = "Moved"
	EventShown               = "Shown"
	EventHidden              = "Hidden"
	EventEnabled             = "Enabled"
	EventDisabled            = "Disabled"
	EventTextChanged         = "TextChanged"
	EventFontChanged         = "FontChanged"
	EventAlphaChanged        = "AlphaChanged"
	EventActivated           = "Activated"
	EventDeactivated         = "Deactivated"
	EventZOrderChanged       = "ZOrderChanged"
	EventDestructionStarted  = "DestructionStarted"
	EventMouseEnters         = "MouseEnters"
	EventMouseLeaves         = "MouseLeaves"
	EventMouseMove           = "MouseMove"
	EventMouseWheel          = "MouseWheel"
	EventMouseButtonDown     = "MouseButtonDown"
	EventMouseButtonUp       = "MouseButtonUp"
	EventMouseClick          = "MouseClick"
	EventMouseDoubleClick    = "MouseDoubleClick"
	EventKeyDown             = "KeyDown"
	EventKeyUp               = "KeyUp"
	EventCharacter           = "Character"
	EventSemanticEvent       = "SemanticEvent"
	EventInputCaptureGained  = "InputCaptureGained"
	EventInputCaptureLost    = "InputCaptureLost"
	EventRendererAttached    = "RendererAttached"
	EventRendererDetached    = "RendererDetached"
	EventPropertyChanged     = "PropertyChanged"
	EventLookNFeelAssigned   = "LookNFeelAssigned"
	EventLookNFeelUnassigned = "LookNFeelUnassigned"
)

var windowEvents = []string{
	EventChildAdded, EventChildRemoved, EventSized, EventMoved, EventShown,
	EventHidden, EventEnabled, EventDisabled, EventTextChanged,
	EventFontChanged, EventAlphaChanged, EventActivated, EventDeactivated,
	EventZOrderChanged, EventDestructionStarted, EventMouseEnters,
	EventMouseLeaves, EventMouseMove, EventMouseWheel, EventMouseButtonDown,
	EventMouseButtonUp, EventMouseClick, EventMouseDoubleClick, EventKeyDown,
	EventKeyUp, EventCharacter, EventSemanticEvent, EventInputCaptureGained,
	EventInputCaptureLost, EventRendererAttached, EventRendererDetached,
	EventPropertyChanged, EventLookNFeelAssigned, EventLookNFeelUnassigned,
}

// bubbling reports whether unhandled input events propagate to parents.
func bubbling(name string) bool {
	switch name {
	case EventMouseEnters, EventMouseLeaves:
		return false
	}
	return true
}

// WindowEventArgs accompanies every window event.
type WindowEventArgs struct {
	event.EventArgs
	Window *Window
}

// WindowArgs returns the window part of the arguments.
func (a *WindowEventArgs) WindowArgs() *WindowEventArgs { return a }

// WindowArgs is implemented by every window event argument type.
type WindowArgs interface {
	event.Args
	WindowArgs() *WindowEventArgs
}

// ActivationEventArgs accompanies Activated and Deactivated.
type ActivationEventArgs struct {
	WindowEventArgs
	// Other is the window losing or gaining activation, if any.
	Other *Window
}

// PropertyEventArgs accompanies PropertyChanged.
type PropertyEventArgs struct {
	WindowEventArgs
	Property string
}

// MouseButton identifies a mouse button.
type MouseButton int

const (
	NoButton MouseButton = iota
	LeftButton
	RightButton
	MiddleButton
	X1Button
	X2Button
)

// String returns a human-readable representation of the button.
func (b MouseButton) String() string {
	switch b {
	case LeftButton:
		return "left"
	case RightButton:
		return "right"
	case MiddleButton:
		return "middle"
	case X1Button:
		return "x1"
	case X2Button:
		return "x2"
	}
	return "none"
}

// Modifiers is a bit set of held modifier keys and buttons.
type Modifiers uint

const (
	ModShift Modifiers = 1 << iota
	ModControl
	ModAlt
	ModLeftMouse
	ModRightMouse
	ModMiddleMouse
)

// Key is a keyboard scan code.
type Key int

const (
	KeyUnknown Key = iota
	KeyBackspace
	KeyTab
	KeyReturn
	KeyEscape
	KeyDelete
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyHome
	KeyEnd
	KeyLeftShift
	KeyRightShift
	KeyLeftControl
	KeyRightControl
	KeyLeftAlt
	KeyRightAlt
	KeyA
	KeyC
	KeyV
	KeyX
	KeyY
	KeyZ
)

// MouseEventArgs accompanies mouse events.
type MouseEventArgs struct {
	WindowEventArgs
	Position    graphics.Vec2
	MoveDelta   graphics.Vec2
	Button      MouseButton
	Modifiers   Modifiers
	WheelChange float32
	ClickCount  int
}

// KeyEventArgs accompanies KeyDown, KeyUp and Character.
type KeyEventArgs struct {
	WindowEventArgs
	Key       Key
	Char      rune
	Modifiers Modifiers
}

// SemanticEventArgs accompanies SemanticEvent: an input mapped to an
// editing action such as "Copy" or "Paste".
type SemanticEventArgs struct {
	WindowEventArgs
	Action    string
	Modifiers Modifiers
}
