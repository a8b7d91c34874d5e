package editor

import "github.com/memononen/skribidi/layout"

// ScrollToCaret adjusts ViewOffset so the caret remains within the view
// bounds, clamped to [0, content-view] (§4.I "View offset. When overflow is
// scroll, after any caret-moving operation the editor adjusts the view
// offset so the caret remains within the view bounds, clamped to
// [-(content-view), 0]" -- ViewOffset here is the non-negative distance
// scrolled down from the top, the sign gio's scrollOff uses
// (widget/editor.go scrollToCaret), an equivalent representation of the
// same clamp). It is a no-op unless Params.Overflow is layout.OverflowScroll.
func (e *Editor) ScrollToCaret() {
	if e.Params.Overflow != layout.OverflowScroll {
		return
	}
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
	base := e.paragraphBaseY(paragraph)
	lineTop := base + snap.Lines[lineIdx].Bounds.Min.Y.Round()
	lineBottom := base + snap.Lines[lineIdx].Bounds.Max.Y.Round()

	if d := lineTop - e.ViewOffset; d < 0 {
		e.ViewOffset += d
	} else if d := lineBottom - (e.ViewOffset + e.ViewHeight); d > 0 {
		e.ViewOffset += d
	}
	e.clampViewOffset()
}

func (e *Editor) paragraphBaseY(target *richtextParagraph) int {
	for i, p := range e.Text.Paragraphs() {
		if p == target {
			return e.Text.YOffset(i).Round()
		}
	}
	return 0
}

func (e *Editor) clampViewOffset() {
	contentHeight := e.Text.TotalHeight().Round()
	max := contentHeight - e.ViewHeight
	if max < 0 {
		max = 0
	}
	if e.ViewOffset > max {
		e.ViewOffset = max
	}
	if e.ViewOffset < 0 {
		e.ViewOffset = 0
	}
}
