package layout

import "golang.org/x/image/math/fixed"

// applyOverflow implements §4.E step 8. clip and scroll leave the glyph
// stream untouched (the renderer/view-offset enforces the visible region);
// ellipsis replaces the tail of the last fitting line with the glyph of
// Parameters' ellipsis codepoint, looked up in the font of the line's last
// run (GID 0 when that font has none), and cuts the line's runs' glyph
// ranges back to the glyphs that fit, matching pango's ellipsize.go "shrink
// the last line from the break point" approach. The line's TextStart and
// TextEnd are left unchanged. The ellipsis glyph's advance is MaxWidth/10,
// or 8 px when that is zero.
func (e *Engine) applyOverflow(snap *Snapshot, text []rune, params Parameters) {
	if params.Overflow != OverflowEllipsis {
		return
	}
	if params.MaxLines <= 0 || len(snap.Lines) < params.MaxLines {
		return
	}
	lastIdx := params.MaxLines - 1
	if lastIdx >= len(snap.Lines) {
		lastIdx = len(snap.Lines) - 1
	}
	last := &snap.Lines[lastIdx]
	snap.Lines = snap.Lines[:lastIdx+1]
	last.Truncated = true

	maxWidth := fixed.I(params.MaxWidth)
	if maxWidth <= 0 || last.RunEnd <= last.RunStart {
		return
	}
	ellipsisAdvance := fixed.I(params.MaxWidth / 10)
	if ellipsisAdvance <= 0 {
		ellipsisAdvance = fixed.I(8)
	}
	budget := maxWidth - ellipsisAdvance

	glyphStart := snap.Runs[last.RunStart].GlyphStart
	glyphEnd := snap.Runs[last.RunEnd-1].GlyphEnd

	var width fixed.Int26_6
	cut := glyphStart
	for gi := glyphStart; gi < glyphEnd; gi++ {
		width += snap.Glyphs[gi].AdvanceX
		if width > budget {
			break
		}
		cut = gi + 1
	}
	ellipsis := Glyph{
		GID:      0,
		AdvanceX: ellipsisAdvance,
		Cluster:  last.TextEnd,
	}
	if e.Fonts != nil {
		if gid, ok := e.Fonts.NominalGlyph(snap.Runs[last.RunEnd-1].Font, params.ellipsis()); ok {
			ellipsis.GID = gid
		}
	}
	snap.Glyphs = append(snap.Glyphs[:cut], ellipsis)
	for i := last.RunStart; i < last.RunEnd; i++ {
		if snap.Runs[i].GlyphEnd > cut {
			snap.Runs[i].GlyphEnd = cut + 1
		}
	}
}
