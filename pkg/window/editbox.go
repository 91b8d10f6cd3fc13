package window

import (
	"github.com/go-drift/facet/pkg/clipboard"
	"github.com/go-drift/facet/pkg/event"
	"github.com/go-drift/facet/pkg/property"
)

// Editbox event names.
const (
	EventCaretMoved           = "CaretMoved"
	EventTextSelectionChanged = "TextSelectionChanged"
	EventTextAccepted         = "TextAccepted"
	EventReadOnlyModeChanged  = "ReadOnlyModeChanged"
)

// Semantic actions carried by SemanticEvent. The editbox understands all
// but Undo.
const (
	ActionCopy      = "Copy"
	ActionCut       = "Cut"
	ActionPaste     = "Paste"
	ActionSelectAll = "SelectAll"
	ActionUndo      = "Undo"
)

const editboxOrigin = "Editbox"

// EditboxBehavior edits a single line of window text with a caret and a
// selection, and exchanges text with the manager's clipboard. Positions
// are rune indices.
type EditboxBehavior struct {
	w        *Window
	conns    event.ConnectionList
	caret    int
	selStart int
	selEnd   int
	anchor   int
	readOnly bool
	maxLen   int
}

var editboxProperties = []string{"ReadOnly", "MaxTextLength", "CaretIndex", "SelectionStart", "SelectionLength"}

func (e *EditboxBehavior) Attach(w *Window) {
	e.w = w
	w.events.AddEvents(EventCaretMoved, EventTextSelectionChanged, EventTextAccepted, EventReadOnlyModeChanged)
	props := []property.Property{
		property.New("ReadOnly", "Whether the text can be edited.", false, property.Bool,
			func(_ *Window, b bool) { e.SetReadOnly(b) },
			func(*Window) bool { return e.readOnly }).WithOrigin(editboxOrigin),
		property.New("MaxTextLength", "Maximum text length in characters; 0 is unlimited.", 0, property.Int,
			func(_ *Window, n int) { e.SetMaxTextLength(n) },
			func(*Window) int { return e.maxLen }).WithOrigin(editboxOrigin),
		property.New("CaretIndex", "Caret position in characters.", 0, property.Int,
			func(_ *Window, i int) { e.SetCaretIndex(i) },
			func(*Window) int { return e.caret }).WithOrigin(editboxOrigin).NoXML(),
		property.New("SelectionStart", "First selected character.", 0, property.Int,
			func(_ *Window, i int) { e.SetSelection(i, i+e.selEnd-e.selStart) },
			func(*Window) int { return e.selStart }).WithOrigin(editboxOrigin).NoXML(),
		property.New("SelectionLength", "Number of selected characters.", 0, property.Int,
			func(_ *Window, n int) { e.SetSelection(e.selStart, e.selStart+n) },
			func(*Window) int { return e.selEnd - e.selStart }).WithOrigin(editboxOrigin).NoXML(),
	}
	for _, p := range props {
		w.props.Replace(p)
	}
	e.conns.Add(w.SubscribeEvent(EventTextChanged, func(event.Args) bool {
		e.clamp()
		return false
	}))
}

func (e *EditboxBehavior) Detach(w *Window) {
	e.conns.DisconnectAll()
	for _, name := range editboxProperties {
		w.props.Remove(name)
	}
	e.w = nil
}

func (e *EditboxBehavior) runes() []rune { return []rune(e.w.text) }

func (e *EditboxBehavior) clamp() {
	n := len(e.runes())
	e.caret = min(e.caret, n)
	e.selStart = min(e.selStart, n)
	e.selEnd = min(e.selEnd, n)
	e.anchor = min(e.anchor, n)
}

// ReadOnly reports whether editing is disabled.
func (e *EditboxBehavior) ReadOnly() bool { return e.readOnly }

// SetReadOnly enables or disables editing.
func (e *EditboxBehavior) SetReadOnly(b bool) {
	if b == e.readOnly {
		return
	}
	e.readOnly = b
	e.w.Invalidate(false)
	e.w.fireSimple(EventReadOnlyModeChanged)
}

// MaxTextLength returns the length limit; 0 is unlimited.
func (e *EditboxBehavior) MaxTextLength() int { return e.maxLen }

// SetMaxTextLength sets the length limit, truncating longer text.
func (e *EditboxBehavior) SetMaxTextLength(n int) {
	e.maxLen = max(n, 0)
	if r := e.runes(); e.maxLen > 0 && len(r) > e.maxLen {
		e.w.SetText(string(r[:e.maxLen]))
	}
}

// CaretIndex returns the caret position.
func (e *EditboxBehavior) CaretIndex() int { return e.caret }

// SetCaretIndex moves the caret, clamped to the text.
func (e *EditboxBehavior) SetCaretIndex(i int) {
	i = min(max(i, 0), len(e.runes()))
	if i == e.caret {
		return
	}
	e.caret = i
	e.w.Invalidate(false)
	e.w.fireSimple(EventCaretMoved)
}

// Selection returns the selected range [start, end).
func (e *EditboxBehavior) Selection() (int, int) { return e.selStart, e.selEnd }

// SetSelection selects [start, end), clamped and ordered.
func (e *EditboxBehavior) SetSelection(start, end int) {
	n := len(e.runes())
	start = min(max(start, 0), n)
	end = min(max(end, 0), n)
	if start > end {
		start, end = end, start
	}
	if start == e.selStart && end == e.selEnd {
		return
	}
	e.selStart, e.selEnd = start, end
	e.w.Invalidate(false)
	e.w.fireSimple(EventTextSelectionChanged)
}

// SelectedText returns the selected text.
func (e *EditboxBehavior) SelectedText() string {
	return string(e.runes()[e.selStart:e.selEnd])
}

func (e *EditboxBehavior) hasSelection() bool { return e.selEnd > e.selStart }

func (e *EditboxBehavior) clearSelection() {
	e.anchor = e.caret
	e.SetSelection(e.caret, e.caret)
}

// replaceSelection inserts s in place of the selection or at the caret,
// honouring the length limit.
func (e *EditboxBehavior) replaceSelection(s string) bool {
	if e.readOnly {
		return false
	}
	r := e.runes()
	ins := []rune(s)
	start, end := e.selStart, e.selEnd
	if !e.hasSelection() {
		start, end = e.caret, e.caret
	}
	if e.maxLen > 0 && len(r)-(end-start)+len(ins) > e.maxLen {
		return false
	}
	out := make([]rune, 0, len(r)-(end-start)+len(ins))
	out = append(out, r[:start]...)
	out = append(out, ins...)
	out = append(out, r[end:]...)
	e.selStart, e.selEnd = start, start
	e.caret = start + len(ins)
	e.anchor = e.caret
	e.w.SetText(string(out))
	e.w.fireSimple(EventCaretMoved)
	return true
}

func (e *EditboxBehavior) clipboard() *clipboard.Clipboard {
	if e.w.manager == nil {
		return nil
	}
	return e.w.manager.clipboard
}

// InsertText types s at the caret, replacing any selection.
func (e *EditboxBehavior) InsertText(s string) bool {
	return e.replaceSelection(s)
}

// Copy puts the selection on the clipboard.
func (e *EditboxBehavior) Copy() bool {
	cb := e.clipboard()
	if cb == nil || !e.hasSelection() {
		return false
	}
	cb.SetText(e.SelectedText())
	return true
}

// Cut moves the selection to the clipboard.
func (e *EditboxBehavior) Cut() bool {
	if e.readOnly || !e.Copy() {
		return false
	}
	return e.replaceSelection("")
}

// Paste inserts the clipboard text at the caret.
func (e *EditboxBehavior) Paste() bool {
	cb := e.clipboard()
	if cb == nil {
		return false
	}
	text := cb.Text()
	if text == "" {
		return false
	}
	return e.replaceSelection(text)
}

func (e *EditboxBehavior) deleteBackward() bool {
	if e.readOnly {
		return false
	}
	if !e.hasSelection() {
		if e.caret == 0 {
			return true
		}
		e.selStart, e.selEnd = e.caret-1, e.caret
	}
	return e.replaceSelection("")
}

func (e *EditboxBehavior) deleteForward() bool {
	if e.readOnly {
		return false
	}
	if !e.hasSelection() {
		if e.caret >= len(e.runes()) {
			return true
		}
		e.selStart, e.selEnd = e.caret, e.caret+1
	}
	return e.replaceSelection("")
}

// moveCaret moves the caret, extending the selection from the anchor when
// extend is set.
func (e *EditboxBehavior) moveCaret(i int, extend bool) {
	if !e.hasSelection() {
		e.anchor = e.caret
	}
	e.SetCaretIndex(i)
	if extend {
		e.SetSelection(e.anchor, e.caret)
		return
	}
	e.clearSelection()
}

func (e *EditboxBehavior) HandleInput(w *Window, name string, args WindowArgs) bool {
	switch name {
	case EventCharacter:
		ka := args.(*KeyEventArgs)
		if ka.Modifiers&(ModControl|ModAlt) != 0 || ka.Char < ' ' {
			return false
		}
		e.replaceSelection(string(ka.Char))
		return true
	case EventKeyDown:
		return e.handleKey(args.(*KeyEventArgs))
	case EventSemanticEvent:
		switch args.(*SemanticEventArgs).Action {
		case ActionCopy:
			return e.Copy()
		case ActionCut:
			return e.Cut()
		case ActionPaste:
			return e.Paste()
		case ActionSelectAll:
			e.anchor = 0
			e.SetCaretIndex(len(e.runes()))
			e.SetSelection(0, e.caret)
			return true
		}
	case EventMouseButtonDown:
		ma := args.(*MouseEventArgs)
		if ma.Button != LeftButton {
			return false
		}
		w.Activate()
		if f := w.Font(); f != nil {
			x := ma.Position.X - w.UnclippedInnerRect().Left
			e.moveCaret(f.CharAtPixel(w.text, x), ma.Modifiers&ModShift != 0)
		}
		return true
	}
	return false
}

func (e *EditboxBehavior) handleKey(ka *KeyEventArgs) bool {
	shift := ka.Modifiers&ModShift != 0
	switch ka.Key {
	case KeyBackspace:
		e.deleteBackward()
	case KeyDelete:
		e.deleteForward()
	case KeyLeft:
		e.moveCaret(e.caret-1, shift)
	case KeyRight:
		e.moveCaret(e.caret+1, shift)
	case KeyHome:
		e.moveCaret(0, shift)
	case KeyEnd:
		e.moveCaret(len(e.runes()), shift)
	case KeyReturn:
		e.w.fireSimple(EventTextAccepted)
	default:
		return false
	}
	return true
}

var _ InputHandler = (*EditboxBehavior)(nil)
