package editor

// composition holds the pending IME composition buffer (§4.I "IME
// composition"): rendered as a styled overlay at the current selection end
// until committed or cancelled.
type composition struct {
	active bool
	text   []rune
	start  int // global offset the composition buffer replaces, once committed
	caret  int // caret offset within text, host-reported
}

// SetComposition stores a composition buffer rendered as a styled overlay
// at the current selection end (§4.I "set_composition(text, caret) stores a
// composition buffer..."). Undo transactions are suspended for the
// duration.
func (e *Editor) SetComposition(text string, caret int) {
	if !e.ime.active {
		e.ime.start, _ = e.Selection.Range()
		e.State = StateComposing
	}
	e.ime.active = true
	e.ime.text = []rune(text)
	e.ime.caret = clampInt(caret, 0, len(e.ime.text))
}

// CommitComposition replaces the composition with a final insertion and
// resumes undo recording (§4.I "committing replaces the composition with a
// final insertion").
func (e *Editor) CommitComposition() {
	if !e.ime.active {
		return
	}
	start := e.ime.start
	end := start + len(e.ime.text)
	// Leave composition state before Replace so the resulting edit is
	// recorded as a normal undo entry.
	text := e.ime.text
	e.ime = composition{}
	e.State = StateIdle
	e.SetSelection(Position{Offset: start}, Position{Offset: start})
	e.Replace(start, start, text)
	_ = end
}

// CancelComposition discards the composition buffer without touching the
// rich text (§4.I "cancelling discards the composition").
func (e *Editor) CancelComposition() {
	e.ime = composition{}
	e.State = StateIdle
}

// Composing reports whether an IME composition is in progress.
func (e *Editor) Composing() bool { return e.ime.active }

// CompositionText returns the current composition overlay text and its
// anchor offset in the rich text.
func (e *Editor) CompositionText() (text string, start int) {
	return string(e.ime.text), e.ime.start
}
