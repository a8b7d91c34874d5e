package editor

import (
	"unicode"

	"golang.org/x/image/math/fixed"
)

// ClickType distinguishes single, double, and triple clicks (§4.I "Mouse").
type ClickType uint8

const (
	ClickSingle ClickType = iota
	ClickDouble
	ClickTriple
)

// HitTest returns the global codepoint offset closest to (x, y) in
// paragraph-stack coordinates, searching paragraphs by their y-offset range
// then lines within the owning paragraph by vertical position, and finally
// caret stops within that line by horizontal position (§4.I "Click sets
// selection anchor by hit-testing the layout at (x,y)").
func (e *Editor) HitTest(x, y fixed.Int26_6) int {
	e.Relayout()
	paragraphs := e.Text.Paragraphs()
	idx := e.Text.ParagraphAtY(y)
	if idx < 0 || idx >= len(paragraphs) {
		return 0
	}
	p := paragraphs[idx]
	snap := p.Snapshot()
	if snap == nil || len(snap.Lines) == 0 {
		return e.paragraphBaseIdx(idx)
	}
	localY := y - e.Text.YOffset(idx)
	lineIdx := 0
	for i, l := range snap.Lines {
		if localY < l.Bounds.Max.Y || i == len(snap.Lines)-1 {
			lineIdx = i
			break
		}
	}
	it := NewCaretIterator(snap, lineIdx)
	stop := it.At(it.ClosestToX(x))
	return e.paragraphBaseIdx(idx) + stop.Right.TextOffset
}

func (e *Editor) paragraphBaseIdx(idx int) int {
	base := 0
	for i, p := range e.Text.Paragraphs() {
		if i == idx {
			return base
		}
		base += p.Buf.Len()
	}
	return base
}

// Click processes a mouse click at the given hit-tested offset, updating
// the selection per §4.I: single click places the caret; double click
// selects the containing word; triple click selects the containing
// paragraph.
func (e *Editor) Click(kind ClickType, offset int, extend bool) {
	switch kind {
	case ClickDouble:
		start, end := e.wordAt(offset)
		e.SetSelection(Position{Offset: start}, Position{Offset: end})
	case ClickTriple:
		start, end := e.paragraphRangeAt(offset)
		e.SetSelection(Position{Offset: start}, Position{Offset: end})
	default:
		if extend {
			e.updateSelection(selectionExtend, Position{Offset: offset})
		} else {
			e.SetSelection(Position{Offset: offset}, Position{Offset: offset})
		}
	}
	e.State = StateSelecting
}

// Drag extends the selection end to offset while dragging (§4.I "Drag
// extends the selection end").
func (e *Editor) Drag(offset int) {
	e.updateSelection(selectionExtend, Position{Offset: offset})
}

// ReleaseDrag ends a selection drag, returning the editor to StateIdle.
func (e *Editor) ReleaseDrag() { e.State = StateIdle }

func (e *Editor) wordAt(offset int) (start, end int) {
	text := e.allRunes()
	offset = clampInt(offset, 0, len(text))
	start, end = offset, offset
	for start > 0 && !unicode.IsSpace(text[start-1]) {
		start--
	}
	for end < len(text) && !unicode.IsSpace(text[end]) {
		end++
	}
	return start, end
}

func (e *Editor) paragraphRangeAt(offset int) (start, end int) {
	base := 0
	for _, p := range e.Text.Paragraphs() {
		n := p.Buf.Len()
		if offset <= base+n {
			return base, base + n
		}
		base += n
	}
	return base, base
}
