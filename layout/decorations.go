package layout

import (
	"golang.org/x/image/math/fixed"

	"github.com/memononen/skribidi/attr"
	"github.com/memononen/skribidi/buffer"
)

// emitDecorations implements §4.E step 7: one decoration record per
// maximal run of codepoints sharing the same decoration spec, merging
// adjacent spans with identical style/paint/thickness into a single run
// the way the text buffer itself merges identical-value spans (§3).
func (e *Engine) emitDecorations(snap *Snapshot, buf *buffer.Buffer, paragraphAttrs *attr.Set) {
	var pending *attr.DecorationSpec
	var start int
	flush := func(end int) {
		if pending == nil || end <= start {
			pending = nil
			return
		}
		snap.Decorations = append(snap.Decorations, decorationFrom(*pending, snap, start, end))
		pending = nil
	}

	buf.IterateAttributeRuns(func(r buffer.AttributeRun) {
		var spec *attr.DecorationSpec
		for _, a := range r.Attrs {
			if a.Kind == attr.KindDecoration {
				if s, ok := a.Value.Payload.(attr.DecorationSpec); ok {
					spec = &s
				}
			}
		}
		switch {
		case spec == nil:
			flush(r.Start)
		case pending == nil:
			pending, start = spec, r.Start
		case *pending != *spec:
			flush(r.Start)
			pending, start = spec, r.Start
		}
	})
	flush(snap.boundsTextEnd())
}

func (s *Snapshot) boundsTextEnd() int {
	if len(s.Lines) == 0 {
		return 0
	}
	return s.Lines[len(s.Lines)-1].TextEnd
}

func decorationFrom(spec attr.DecorationSpec, snap *Snapshot, start, end int) Decoration {
	thickness := fixed.I(1)
	if spec.Thickness > 0 {
		thickness = fixed.Int26_6(spec.Thickness * 64)
	}
	lineY := fixed.Int26_6(spec.Offset * 64)
	return Decoration{
		Position:  spec.Style,
		Style:     spec.Line,
		Y:         lineY,
		Length:    snap.AdvanceOf(clusterGlyphStart(snap, start), clusterGlyphStart(snap, end)),
		Thickness: thickness,
		Paint:     attr.PaintTag{State: attr.PaintText, Ref: spec.PaintRef},
	}
}

func clusterGlyphStart(snap *Snapshot, textOffset int) int {
	for _, c := range snap.Clusters {
		if c.TextOffset >= textOffset {
			return c.GlyphOffset
		}
	}
	return len(snap.Glyphs)
}
