package editor

import (
	"unicode"

	"golang.org/x/image/math/fixed"

	"github.com/memononen/skribidi/layout"
)

// selectionAction controls whether a movement extends or clears the
// selection, mirroring widget.selectionAction (widget/editor.go).
type selectionAction int

const (
	selectionClear selectionAction = iota
	selectionExtend
)

func (e *Editor) updateSelection(act selectionAction, newCaret Position) {
	anchor := e.Selection.Anchor
	if act == selectionClear {
		anchor = newCaret
	}
	e.Selection = Selection{Anchor: anchor, Caret: newCaret}
}

// lineContaining returns the index of the line whose [TextStart,TextEnd)
// covers local, or the last line if local is at or past the paragraph end.
func lineContaining(snap *layout.Snapshot, local int) int {
	for i, l := range snap.Lines {
		if local < l.TextEnd || i == len(snap.Lines)-1 {
			return i
		}
	}
	return -1
}

// MoveCaret moves the caret horizontally by one stop (§4.I "Horizontal
// arrows advance one caret stop"), stepping to the adjacent index of the
// line's CaretIterator stops. Editor.Mode is not consulted: the stops, and
// so the movement, are the same in ModeSkribidi and ModeSimple.
func (e *Editor) MoveCaret(forward bool, act selectionAction) {
	e.Relayout()
	paragraph, local := e.paragraphForOffset(e.Selection.Caret.Offset)
	snap := paragraph.Snapshot()
	if snap == nil || len(snap.Lines) == 0 {
		return
	}
	lineIdx := lineContaining(snap, local)
	it := NewCaretIterator(snap, lineIdx)
	stopIdx := it.ClosestToOffset(local)

	next := stopIdx
	if forward {
		next++
	} else {
		next--
	}
	if next < 0 {
		if lineIdx == 0 {
			next = 0
		} else {
			lineIdx--
			it = NewCaretIterator(snap, lineIdx)
			next = it.Len() - 1
		}
	} else if next >= it.Len() {
		if lineIdx == len(snap.Lines)-1 {
			next = it.Len() - 1
		} else {
			lineIdx++
			it = NewCaretIterator(snap, lineIdx)
			next = 0
		}
	}
	stop := it.At(next)
	offset := stop.Right.TextOffset
	if !forward {
		offset = stop.Left.TextOffset
	}
	e.DesiredX = 0
	base := e.paragraphBase(paragraph)
	e.updateSelection(act, Position{Offset: base + offset})
}

// MoveVertical moves the caret one line up (dy<0) or down (dy>0), trying to
// preserve DesiredX, rounding to the nearest caret stop on the destination
// line (§4.I "Vertical arrows preserve a desired x").
func (e *Editor) MoveVertical(dy int, act selectionAction) {
	e.Relayout()
	paragraph, local := e.paragraphForOffset(e.Selection.Caret.Offset)
	snap := paragraph.Snapshot()
	if snap == nil || len(snap.Lines) == 0 {
		return
	}
	lineIdx := lineContaining(snap, local)
	if lineIdx < 0 {
		return
	}
	it := NewCaretIterator(snap, lineIdx)
	stopIdx := it.ClosestToOffset(local)
	x := it.At(stopIdx).X
	if e.DesiredX != 0 {
		x = fixed.I(e.DesiredX)
	} else {
		e.DesiredX = x.Round()
	}

	target := lineIdx + dy
	if target < 0 || target >= len(snap.Lines) {
		return
	}
	targetIt := NewCaretIterator(snap, target)
	stop := targetIt.At(targetIt.ClosestToX(x))
	base := e.paragraphBase(paragraph)
	e.updateSelection(act, Position{Offset: base + stop.Right.TextOffset})
}

// MoveHome moves the caret to the start of its current line (§4.I "Home/End
// resolve to start-of-line / end-of-line affinity").
func (e *Editor) MoveHome(act selectionAction) {
	e.Relayout()
	paragraph, local := e.paragraphForOffset(e.Selection.Caret.Offset)
	snap := paragraph.Snapshot()
	if snap == nil || len(snap.Lines) == 0 {
		return
	}
	lineIdx := lineContaining(snap, local)
	if lineIdx < 0 {
		return
	}
	base := e.paragraphBase(paragraph)
	e.updateSelection(act, Position{Offset: base + snap.Lines[lineIdx].TextStart, Affinity: AffinityStartOfLine})
}

// MoveEnd moves the caret to the end of its current line (§4.I).
func (e *Editor) MoveEnd(act selectionAction) {
	e.Relayout()
	paragraph, local := e.paragraphForOffset(e.Selection.Caret.Offset)
	snap := paragraph.Snapshot()
	if snap == nil || len(snap.Lines) == 0 {
		return
	}
	lineIdx := lineContaining(snap, local)
	if lineIdx < 0 {
		return
	}
	base := e.paragraphBase(paragraph)
	e.updateSelection(act, Position{Offset: base + snap.Lines[lineIdx].TextEnd, Affinity: AffinityEndOfLine})
}

// MoveWord moves the caret by one word in the given direction, treating
// runs of whitespace as separators to skip over (§4.I, mirroring
// widget.Editor.moveWord, widget/editor.go).
func (e *Editor) MoveWord(forward bool, act selectionAction) {
	text := e.allRunes()
	pos := e.Selection.Caret.Offset
	if forward {
		for pos < len(text) && unicode.IsSpace(text[pos]) {
			pos++
		}
		for pos < len(text) && !unicode.IsSpace(text[pos]) {
			pos++
		}
	} else {
		for pos > 0 && unicode.IsSpace(text[pos-1]) {
			pos--
		}
		for pos > 0 && !unicode.IsSpace(text[pos-1]) {
			pos--
		}
	}
	e.updateSelection(act, Position{Offset: pos})
}

func (e *Editor) allRunes() []rune {
	return []rune(e.rangeText(0, e.Text.Len()))
}

// paragraphForOffset locates the paragraph owning global offset pos and the
// local offset within it.
func (e *Editor) paragraphForOffset(pos int) (*richtextParagraph, int) {
	base := 0
	paragraphs := e.Text.Paragraphs()
	for i, p := range paragraphs {
		n := p.Buf.Len()
		if pos < base+n || i == len(paragraphs)-1 {
			return p, pos - base
		}
		base += n
	}
	return paragraphs[len(paragraphs)-1], 0
}

func (e *Editor) paragraphBase(target *richtextParagraph) int {
	base := 0
	for _, p := range e.Text.Paragraphs() {
		if p == target {
			return base
		}
		base += p.Buf.Len()
	}
	return base
}
