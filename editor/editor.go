package editor

import (
	"github.com/memononen/skribidi/attr"
	"github.com/memononen/skribidi/layout"
	"github.com/memononen/skribidi/richtext"
)

// State is the editor's top-level interaction state (§4.I).
type State uint8

const (
	StateIdle State = iota
	StateSelecting
	StateComposing
)

// CaretMode names a horizontal caret-movement style (§4.I "Caret
// movement"). No movement method reads Editor.Mode: MoveCaret steps through
// the same CaretIterator stops in both modes, and no extra stop is added at
// a direction boundary in either.
type CaretMode uint8

const (
	// ModeSkribidi is the default caret mode.
	ModeSkribidi CaretMode = iota
	// ModeSimple is the alternative caret mode.
	ModeSimple
)

// Position is a codepoint offset into the rich text plus the affinity that
// disambiguates its caret placement (§4.I).
type Position struct {
	Offset   int
	Affinity Affinity
}

// Selection is a pair of text positions; Anchor is where the selection
// began (e.g. a mouse-down) and Caret is the live
// end the user is moving. Anchor can be after Caret.
type Selection struct {
	Anchor Position
	Caret  Position
}

// Collapsed reports whether the selection has zero length.
func (s Selection) Collapsed() bool { return s.Anchor.Offset == s.Caret.Offset }

// Range returns the selection's [start,end) codepoint range, ordered.
func (s Selection) Range() (start, end int) {
	if s.Anchor.Offset <= s.Caret.Offset {
		return s.Anchor.Offset, s.Caret.Offset
	}
	return s.Caret.Offset, s.Anchor.Offset
}

// InputFilter may rewrite a pending insertion before it is applied (§4.I
// "Text mutation... If an input filter is installed, the incoming rich-text
// is passed to it with the target range and may be freely mutated").
type InputFilter func(start, end int, incoming []rune) []rune

// Editor is the headless editable-text state machine (§4.I): selection,
// caret movement, mouse hit-testing, attribute toggling, undo/redo, IME
// composition, and rule-driven key processing, layered over a
// richtext.RichText. It holds no GUI op/event types -- the host drives it
// explicitly via its exported methods, generalizing widget.Editor's
// gio-op-coupled Layout/command loop (widget/editor.go) into a pure state
// machine.
type Editor struct {
	Text   *richtext.RichText
	Engine *layout.Engine
	Params layout.Parameters

	State     State
	Mode      CaretMode
	Selection Selection

	// activeAttrs holds the attributes a caller has toggled on an empty
	// selection, applied to the next inserted text (§4.I "Empty range...
	// toggles the active-attribute set instead").
	activeAttrs []attr.Attribute

	// DesiredX is the horizontal pixel position vertical arrow movement
	// tries to preserve across lines (§4.I "Vertical arrows preserve a
	// desired x").
	DesiredX int

	// ViewOffset is the scroll position maintained when Params.Overflow is
	// layout.OverflowScroll (§4.I "View offset").
	ViewOffset int
	ViewHeight int

	Filter InputFilter

	undo undoStack

	ime composition

	MaxUndoLevels int

	LastClickOffset int
	clickCount      int
	lastClickTime   int64
	DoubleClickNanos int64
}

// New constructs an editor over an existing rich text, laid out with
// engine/params.
func New(text *richtext.RichText, engine *layout.Engine, params layout.Parameters) *Editor {
	return &Editor{
		Text:             text,
		Engine:           engine,
		Params:           params,
		MaxUndoLevels:    100,
		DoubleClickNanos: int64(400 * 1_000_000),
	}
}

// Relayout rebuilds any dirty paragraph layouts; callers must invoke it
// after mutations and before any positional query (hit-testing, caret
// iteration) that depends on fresh geometry.
func (e *Editor) Relayout() {
	e.Text.Relayout(e.Engine, e.Params, false)
}

// ClearSelection collapses the selection to its caret end (§4.I, mirroring
// widget.Editor.ClearSelection).
func (e *Editor) ClearSelection() {
	e.Selection.Anchor = e.Selection.Caret
}

// SetSelection sets the selection explicitly, clamped to the text length.
func (e *Editor) SetSelection(anchor, caret Position) {
	n := e.Text.Len()
	anchor.Offset = clampInt(anchor.Offset, 0, n)
	caret.Offset = clampInt(caret.Offset, 0, n)
	e.Selection = Selection{Anchor: anchor, Caret: caret}
}

// SelectedText returns the codepoints covered by the current selection.
func (e *Editor) SelectedText() string {
	start, end := e.Selection.Range()
	return e.rangeText(start, end)
}

func (e *Editor) rangeText(start, end int) string {
	var out []rune
	base := 0
	for _, p := range e.Text.Paragraphs() {
		n := p.Buf.Len()
		lo, hi := maxInt(start, base), minInt(end, base+n)
		if lo < hi {
			out = append(out, p.Buf.RuneSlice(lo-base, hi-base)...)
		}
		base += n
	}
	return string(out)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
