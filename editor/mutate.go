package editor

// BeginTransaction opens an undo transaction; nested calls coalesce into
// the outermost one (§4.I).
func (e *Editor) BeginTransaction() { e.undo.beginTransaction() }

// EndTransaction closes one nesting level of the open undo transaction.
func (e *Editor) EndTransaction() { e.undo.endTransaction(e.MaxUndoLevels) }

// Replace is the single funnel every text mutation goes through (§4.I
// "Text mutation. All mutations funnel through replace(range, incoming)"):
// it runs the input filter if installed, applies the edit, records an undo
// entry (unless composition is active), and rebases the selection.
func (e *Editor) Replace(start, end int, incoming []rune) {
	n := e.Text.Len()
	start, end = clampInt(start, 0, n), clampInt(end, 0, n)
	if start > end {
		start, end = end, start
	}
	if e.Filter != nil {
		incoming = e.Filter(start, end, incoming)
	}

	removed := []rune(e.rangeText(start, end))
	selBefore := e.Selection

	e.Text.Replace(start, end, incoming)
	e.invalidateGeometry()

	newEnd := start + len(incoming)
	e.Selection = Selection{
		Anchor: Position{Offset: rebase(e.Selection.Anchor.Offset, start, end, newEnd)},
		Caret:  Position{Offset: rebase(e.Selection.Caret.Offset, start, end, newEnd)},
	}

	if e.State != StateComposing {
		e.undo.record(entry{
			start:     start,
			removed:   removed,
			inserted:  append([]rune(nil), incoming...),
			selBefore: selBefore,
			selAfter:  e.Selection,
		}, e.MaxUndoLevels)
	}
	tracer().Debugf("replace [%d,%d) with %d runes, composing=%v", start, end, len(incoming), e.State == StateComposing)
}

// rebase implements §4.I's "rebase after splice" rule: endpoints before the
// range are unchanged; endpoints after the range shift by
// len(incoming)-len(range); endpoints inside collapse to the end of the
// inserted text.
func rebase(pos, start, end, newEnd int) int {
	switch {
	case pos < start:
		return pos
	case pos >= end:
		return pos + (newEnd - end)
	default:
		return newEnd
	}
}

// invalidateGeometry marks affected paragraphs dirty (already done by
// richtext.RichText.Replace) and is the hook future caret-position caches
// would clear; the editor recomputes caret geometry from the rich text's
// next Relayout rather than caching it itself.
func (e *Editor) invalidateGeometry() {}

// Insert replaces the current selection (if any) with s, leaving the caret
// after it (mirroring widget.Editor.Insert / append, widget/editor.go).
func (e *Editor) Insert(s string) {
	start, end := e.Selection.Range()
	e.Replace(start, end, []rune(s))
}

// Delete removes runes codepoints from the caret position; positive is
// forward, negative is backward. A non-empty selection is deleted and
// counts as the single unit regardless of runes' magnitude (§4.I, mirroring
// widget.Editor.Delete).
func (e *Editor) Delete(runes int) {
	if runes == 0 {
		return
	}
	start, end := e.Selection.Range()
	if start != end {
		e.Replace(start, end, nil)
		return
	}
	if runes > 0 {
		end = start + runes
	} else {
		start = start + runes
	}
	e.Replace(start, end, nil)
}

// Undo reverses the most recent transaction, restoring the selection
// recorded before it (§4.I "Undo replays the inverse of each entry in
// reverse order... adjust selection to the recorded value").
func (e *Editor) Undo() bool {
	t, ok := e.undo.popUndo()
	if !ok {
		return false
	}
	for i := len(t.entries) - 1; i >= 0; i-- {
		en := t.entries[i]
		e.Text.Replace(en.start, en.start+len(en.inserted), en.removed)
	}
	e.invalidateGeometry()
	if n := len(t.entries); n > 0 {
		e.Selection = t.entries[0].selBefore
	}
	tracer().Debugf("undo: replayed %d entries", len(t.entries))
	return true
}

// Redo replays the most recently undone transaction (§4.I).
func (e *Editor) Redo() bool {
	t, ok := e.undo.popRedo()
	if !ok {
		return false
	}
	for _, en := range t.entries {
		e.Text.Replace(en.start, en.start+len(en.removed), en.inserted)
	}
	e.invalidateGeometry()
	if n := len(t.entries); n > 0 {
		e.Selection = t.entries[n-1].selAfter
	}
	return true
}
