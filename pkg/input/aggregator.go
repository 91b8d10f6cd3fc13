// Package input turns raw device input into window events: it tracks the
// pointer and modifier state, finds the target window, detects clicks and
// double clicks, and maps keyboard shortcuts to semantic actions.
package input

import (
	"log/slog"
	"time"

	"github.com/chewxy/math32"

	"github.com/go-drift/facet/pkg/graphics"
	"github.com/go-drift/facet/pkg/window"
)

// Action identifies what an injected input was translated to.
type Action int

const (
	ActionMouseMove Action = iota
	ActionMouseDown
	ActionMouseUp
	ActionClick
	ActionDoubleClick
	ActionKeyDown
	ActionKeyUp
	ActionChar
	ActionScroll
	ActionCopy
	ActionCut
	ActionPaste
	ActionUndo
	ActionSelectAll
)

var actionNames = [...]string{
	ActionMouseMove:   "MouseMove",
	ActionMouseDown:   "MouseDown",
	ActionMouseUp:     "MouseUp",
	ActionClick:       "Click",
	ActionDoubleClick: "DoubleClick",
	ActionKeyDown:     "KeyDown",
	ActionKeyUp:       "KeyUp",
	ActionChar:        "Char",
	ActionScroll:      "Scroll",
	ActionCopy:        "Copy",
	ActionCut:         "Cut",
	ActionPaste:       "Paste",
	ActionUndo:        "Undo",
	ActionSelectAll:   "SelectAll",
}

// String returns a human-readable representation of the action.
func (a Action) String() string {
	if a >= 0 && int(a) < len(actionNames) {
		return actionNames[a]
	}
	return "Unknown"
}

// eventFor maps pointer and key actions to the window event they fire.
var eventFor = map[Action]string{
	ActionMouseMove:   window.EventMouseMove,
	ActionMouseDown:   window.EventMouseButtonDown,
	ActionMouseUp:     window.EventMouseButtonUp,
	ActionClick:       window.EventMouseClick,
	ActionDoubleClick: window.EventMouseDoubleClick,
	ActionKeyDown:     window.EventKeyDown,
	ActionKeyUp:       window.EventKeyUp,
	ActionChar:        window.EventCharacter,
	ActionScroll:      window.EventMouseWheel,
}

// semanticFor maps editing actions to SemanticEvent action names.
var semanticFor = map[Action]string{
	ActionCopy:      window.ActionCopy,
	ActionCut:       window.ActionCut,
	ActionPaste:     window.ActionPaste,
	ActionUndo:      window.ActionUndo,
	ActionSelectAll: window.ActionSelectAll,
}

// Shortcut is a key together with the modifiers that must be held.
type Shortcut struct {
	Key       window.Key
	Modifiers window.Modifiers
}

// DefaultShortcuts are installed by New.
var DefaultShortcuts = map[Shortcut]Action{
	{window.KeyC, window.ModControl}: ActionCopy,
	{window.KeyX, window.ModControl}: ActionCut,
	{window.KeyV, window.ModControl}: ActionPaste,
	{window.KeyZ, window.ModControl}: ActionUndo,
	{window.KeyA, window.ModControl}: ActionSelectAll,
}

// Config controls click detection.
type Config struct {
	// ClickTimeout bounds the time between down and up for a click; zero
	// means no limit.
	ClickTimeout time.Duration
	// DoubleClickTimeout bounds the time between two downs of a double
	// click.
	DoubleClickTimeout time.Duration
	// MouseMoveTolerance is how far, in pixels, the pointer may travel
	// between the presses and releases that make up a click.
	MouseMoveTolerance float32
	Logger             *slog.Logger
}

// DefaultConfig returns the thresholds used when none are configured.
func DefaultConfig() Config {
	return Config{
		DoubleClickTimeout: 330 * time.Millisecond,
		MouseMoveTolerance: 12,
	}
}

type clickTracker struct {
	target *window.Window
	downAt time.Duration
	pos    graphics.Vec2
	count  int
}

// Aggregator injects input into the window tree of one root. The root is
// looked up on every inject so the owner may replace it at any time.
type Aggregator struct {
	root      func() *window.Window
	cfg       Config
	log       *slog.Logger
	pos       graphics.Vec2
	mods      window.Modifiers
	modKeys   map[window.Key]bool
	elapsed   time.Duration
	hover     *window.Window
	clicks    map[window.MouseButton]*clickTracker
	shortcuts map[Shortcut]Action
}

// New creates an aggregator delivering to the window returned by root.
func New(root func() *window.Window, cfg Config) *Aggregator {
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}
	a := &Aggregator{
		root:      root,
		cfg:       cfg,
		log:       log,
		clicks:    make(map[window.MouseButton]*clickTracker),
		modKeys:   make(map[window.Key]bool),
		shortcuts: make(map[Shortcut]Action, len(DefaultShortcuts)),
	}
	for s, act := range DefaultShortcuts {
		a.shortcuts[s] = act
	}
	return a
}

// Position returns the pointer position in screen pixels.
func (a *Aggregator) Position() graphics.Vec2 { return a.pos }

// Modifiers returns the held modifier keys and mouse buttons.
func (a *Aggregator) Modifiers() window.Modifiers { return a.mods }

// Elapsed returns the time accumulated by InjectTimePulse.
func (a *Aggregator) Elapsed() time.Duration { return a.elapsed }

// HoverWindow returns the window under the pointer as of the last inject.
func (a *Aggregator) HoverWindow() *window.Window { return a.hover }

// BindShortcut maps s to act, replacing any earlier binding. Only the
// editing actions may be bound.
func (a *Aggregator) BindShortcut(s Shortcut, act Action) bool {
	if _, ok := semanticFor[act]; !ok {
		return false
	}
	a.shortcuts[s] = act
	return true
}

// UnbindShortcut removes the binding for s.
func (a *Aggregator) UnbindShortcut(s Shortcut) { delete(a.shortcuts, s) }

// InjectMousePosition moves the pointer to the absolute position (x, y).
func (a *Aggregator) InjectMousePosition(x, y float32) bool {
	return a.moveTo(graphics.Vec2{X: x, Y: y})
}

// InjectMouseMove moves the pointer by (dx, dy).
func (a *Aggregator) InjectMouseMove(dx, dy float32) bool {
	return a.moveTo(graphics.Vec2{X: a.pos.X + dx, Y: a.pos.Y + dy})
}

func (a *Aggregator) moveTo(pos graphics.Vec2) bool {
	delta := graphics.Vec2{X: pos.X - a.pos.X, Y: pos.Y - a.pos.Y}
	if delta.X == 0 && delta.Y == 0 {
		return false
	}
	a.pos = pos
	a.updateHover()
	target := a.mouseTarget()
	if target == nil {
		return false
	}
	args := a.mouseArgs(window.NoButton)
	args.MoveDelta = delta
	return a.deliver(ActionMouseMove, target, args)
}

// InjectMouseButtonDown presses b. A press close enough in time and space
// to the previous press of b on the same window counts as a double click.
func (a *Aggregator) InjectMouseButtonDown(b window.MouseButton) bool {
	a.mods |= buttonModifier(b)
	a.updateHover()
	target := a.mouseTarget()
	if target == nil {
		return false
	}

	ct := a.clicks[b]
	if ct == nil {
		ct = &clickTracker{}
		a.clicks[b] = ct
	}
	if ct.count == 1 && ct.target == target &&
		a.elapsed-ct.downAt <= a.cfg.DoubleClickTimeout && a.withinTolerance(ct.pos) {
		ct.count = 2
	} else {
		ct.count = 1
	}
	ct.target, ct.downAt, ct.pos = target, a.elapsed, a.pos

	args := a.mouseArgs(b)
	args.ClickCount = ct.count
	handled := a.deliver(ActionMouseDown, target, args)
	if ct.count == 2 {
		args = a.mouseArgs(b)
		args.ClickCount = 2
		handled = a.deliver(ActionDoubleClick, target, args) || handled
	}
	return handled
}

// InjectMouseButtonUp releases b, firing MouseClick when the release
// completes a click on the window that received the press.
func (a *Aggregator) InjectMouseButtonUp(b window.MouseButton) bool {
	a.mods &^= buttonModifier(b)
	target := a.mouseTarget()
	if target == nil {
		return false
	}
	args := a.mouseArgs(b)
	handled := a.deliver(ActionMouseUp, target, args)

	ct := a.clicks[b]
	if ct == nil || ct.target != target || ct.count == 0 {
		return handled
	}
	if a.cfg.ClickTimeout > 0 && a.elapsed-ct.downAt > a.cfg.ClickTimeout {
		return handled
	}
	if !a.withinTolerance(ct.pos) {
		return handled
	}
	args = a.mouseArgs(b)
	args.ClickCount = ct.count
	return a.deliver(ActionClick, target, args) || handled
}

// InjectMouseWheel scrolls by delta notches.
func (a *Aggregator) InjectMouseWheel(delta float32) bool {
	target := a.mouseTarget()
	if target == nil {
		return false
	}
	args := a.mouseArgs(window.NoButton)
	args.WheelChange = delta
	return a.deliver(ActionScroll, target, args)
}

// InjectKeyDown presses k. Bound shortcuts are delivered as a
// SemanticEvent first; KeyDown follows when that goes unhandled.
func (a *Aggregator) InjectKeyDown(k window.Key) bool {
	a.trackModifierKey(k, true)
	target := a.keyTarget()
	if target == nil {
		return false
	}
	if act, ok := a.shortcuts[Shortcut{Key: k, Modifiers: a.mods & keyboardModifiers}]; ok {
		if a.deliverSemantic(act, target) {
			return true
		}
	}
	return a.deliver(ActionKeyDown, target, &window.KeyEventArgs{Key: k, Modifiers: a.mods})
}

// InjectKeyUp releases k.
func (a *Aggregator) InjectKeyUp(k window.Key) bool {
	a.trackModifierKey(k, false)
	target := a.keyTarget()
	if target == nil {
		return false
	}
	return a.deliver(ActionKeyUp, target, &window.KeyEventArgs{Key: k, Modifiers: a.mods})
}

// InjectChar delivers a typed character.
func (a *Aggregator) InjectChar(r rune) bool {
	target := a.keyTarget()
	if target == nil {
		return false
	}
	return a.deliver(ActionChar, target, &window.KeyEventArgs{Char: r, Modifiers: a.mods})
}

// InjectTimePulse advances the clock used for click detection.
func (a *Aggregator) InjectTimePulse(d time.Duration) bool {
	if d <= 0 {
		return false
	}
	a.elapsed += d
	return true
}

// InjectAction delivers an editing action to the active window directly.
func (a *Aggregator) InjectAction(act Action) bool {
	target := a.keyTarget()
	if target == nil {
		return false
	}
	return a.deliverSemantic(act, target)
}

func (a *Aggregator) deliver(act Action, target *window.Window, args window.WindowArgs) bool {
	handled := target.Inject(eventFor[act], args)
	a.log.Debug("input", "action", act.String(), "window", target.NamePath(), "handled", handled)
	return handled
}

func (a *Aggregator) deliverSemantic(act Action, target *window.Window) bool {
	name, ok := semanticFor[act]
	if !ok {
		return false
	}
	handled := target.Inject(window.EventSemanticEvent, &window.SemanticEventArgs{Action: name, Modifiers: a.mods})
	a.log.Debug("input", "action", act.String(), "window", target.NamePath(), "handled", handled)
	return handled
}

func (a *Aggregator) mouseArgs(b window.MouseButton) *window.MouseEventArgs {
	return &window.MouseEventArgs{Position: a.pos, Button: b, Modifiers: a.mods}
}

func (a *Aggregator) withinTolerance(p graphics.Vec2) bool {
	return math32.Abs(a.pos.X-p.X) <= a.cfg.MouseMoveTolerance &&
		math32.Abs(a.pos.Y-p.Y) <= a.cfg.MouseMoveTolerance
}

func (a *Aggregator) liveRoot() *window.Window {
	if a.root == nil {
		return nil
	}
	root := a.root()
	if root == nil || root.IsDestroyed() || !root.IsEffectiveVisible() {
		return nil
	}
	return root
}

// windowAt returns the front-most window accepting input at the pointer.
func (a *Aggregator) windowAt() *window.Window {
	root := a.liveRoot()
	if root == nil {
		return nil
	}
	if w := root.TargetChildAtPosition(a.pos, false); w != nil {
		return w
	}
	if !root.MousePassThroughEnabled() && root.IsHit(a.pos, false) {
		return root
	}
	return nil
}

// mouseTarget is the capture window, else the window under the pointer.
func (a *Aggregator) mouseTarget() *window.Window {
	root := a.liveRoot()
	if root == nil {
		return nil
	}
	if c := root.CaptureWindow(); c != nil && !c.IsDestroyed() {
		return c
	}
	return a.windowAt()
}

// keyTarget is the deepest active window.
func (a *Aggregator) keyTarget() *window.Window {
	root := a.liveRoot()
	if root == nil {
		return nil
	}
	return root.ActiveChild()
}

// updateHover fires MouseLeaves and MouseEnters when the window under
// the pointer changes.
func (a *Aggregator) updateHover() {
	next := a.windowAt()
	prev := a.hover
	if prev != nil && prev.IsDestroyed() {
		prev = nil
	}
	if next == prev {
		a.hover = next
		return
	}
	a.hover = next
	if prev != nil {
		prev.Inject(window.EventMouseLeaves, a.mouseArgs(window.NoButton))
	}
	if next != nil {
		next.Inject(window.EventMouseEnters, a.mouseArgs(window.NoButton))
	}
}

const keyboardModifiers = window.ModShift | window.ModControl | window.ModAlt

func buttonModifier(b window.MouseButton) window.Modifiers {
	switch b {
	case window.LeftButton:
		return window.ModLeftMouse
	case window.RightButton:
		return window.ModRightMouse
	case window.MiddleButton:
		return window.ModMiddleMouse
	}
	return 0
}

// trackModifierKey records a modifier key press or release. A modifier
// stays set while either of its left and right keys is held.
func (a *Aggregator) trackModifierKey(k window.Key, down bool) {
	if keyModifier(k) == 0 {
		return
	}
	if down {
		a.modKeys[k] = true
	} else {
		delete(a.modKeys, k)
	}
	var held window.Modifiers
	for key := range a.modKeys {
		held |= keyModifier(key)
	}
	a.mods = a.mods&^keyboardModifiers | held
}

func keyModifier(k window.Key) window.Modifiers {
	switch k {
	case window.KeyLeftShift, window.KeyRightShift:
		return window.ModShift
	case window.KeyLeftControl, window.KeyRightControl:
		return window.ModControl
	case window.KeyLeftAlt, window.KeyRightAlt:
		return window.ModAlt
	}
	return 0
}
