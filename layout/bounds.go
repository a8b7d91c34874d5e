package layout

import (
	"golang.org/x/image/math/fixed"

	"github.com/memononen/skribidi/attr"
	"github.com/memononen/skribidi/uprops"
)

// computeBounds derives the snapshot's overall bounds and alignment width
// (§4.E step 6 vertical alignment needs the whole-box bounds; step 10
// "Emit" requires the immutable snapshot carry its own extent), mirroring
// the teacher's alignWidth/calculateYOffsets (text/gotext.go).
func (e *Engine) computeBounds(snap *Snapshot, params Parameters) {
	width := params.MinWidth
	var y fixed.Int26_6
	for i := range snap.Lines {
		line := &snap.Lines[i]
		lineWidth := lineAdvance(snap, line)
		if lineWidth.Ceil() > width {
			width = lineWidth.Ceil()
		}
		line.Bounds = fixed.Rectangle26_6{
			Min: fixed.Point26_6{X: 0, Y: y},
			Max: fixed.Point26_6{X: lineWidth, Y: y + line.Ascent + line.Descent},
		}
		line.CullingBounds = line.Bounds
		y += line.Ascent + line.Descent
	}
	snap.Width = width
	snap.Bounds = fixed.Rectangle26_6{Max: fixed.Point26_6{X: fixed.I(width), Y: y}}
	alignLines(snap, params)
}

// lineAdvance sums each of the line's runs' own (already line-clipped)
// glyph ranges individually, rather than assuming the first run's
// GlyphStart through the last run's GlyphEnd spans exactly the line's
// glyphs -- bidi reordering can place a lower-glyph-index run after a
// higher-glyph-index one within the same line.
func lineAdvance(snap *Snapshot, line *Line) fixed.Int26_6 {
	var total fixed.Int26_6
	for i := line.RunStart; i < line.RunEnd; i++ {
		r := snap.Runs[i]
		total += snap.AdvanceOf(r.GlyphStart, r.GlyphEnd)
	}
	return total
}

// alignLines implements §4.E step 6 horizontal alignment: start/center/end/
// left/right. Start and end follow Parameters.BaseDirection: for BaseRTL,
// start is the right edge and end the left edge. BaseAuto aligns as LTR, and
// a paragraph's text-base-direction attribute is not consulted here.
func alignLines(snap *Snapshot, params Parameters) {
	rtl := params.BaseDirection == uprops.BaseRTL
	for i := range snap.Lines {
		line := &snap.Lines[i]
		extra := fixed.I(snap.Width) - (line.Bounds.Max.X - line.Bounds.Min.X)
		if extra <= 0 {
			continue
		}
		var shift fixed.Int26_6
		switch params.HAlign {
		case attr.HAlignCenter:
			shift = extra / 2
		case attr.HAlignRight:
			shift = extra
		case attr.HAlignEnd:
			if !rtl {
				shift = extra
			}
		case attr.HAlignStart:
			if rtl {
				shift = extra
			}
		}
		if shift == 0 {
			continue
		}
		line.Bounds.Min.X += shift
		line.Bounds.Max.X += shift
	}
}
