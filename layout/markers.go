package layout

import (
	"strconv"

	"golang.org/x/image/math/fixed"

	"github.com/memononen/skribidi/attr"
)

// emitListMarkers implements §4.E step 9: a marker glyph or counter is
// placed in the leading-edge padding region ahead of the paragraph's first
// line; indent-decoration attributes emit a vertical decoration quad
// spanning the paragraph's full height.
func (e *Engine) emitListMarkers(snap *Snapshot, paragraphAttrs *attr.Set, params Parameters) {
	if paragraphAttrs == nil || len(snap.Lines) == 0 {
		return
	}
	if a, ok := paragraphAttrs.Resolve(attr.KindListMarker); ok {
		if spec, ok := a.Value.Payload.(attr.ListMarkerSpec); ok {
			e.emitMarkerGlyph(snap, spec, params)
		}
	}
	if a, ok := paragraphAttrs.Resolve(attr.KindIndentDecoration); ok {
		if spec, ok := a.Value.Payload.(attr.DecorationSpec); ok {
			e.emitIndentDecoration(snap, spec, params)
		}
	}
}

func (e *Engine) emitMarkerGlyph(snap *Snapshot, spec attr.ListMarkerSpec, params Parameters) {
	first := &snap.Lines[0]
	cp := markerCodepoint(spec, params.IndentLevel)
	marker := Glyph{GID: 0, AdvanceX: fixed.I(int(spec.Gap + spec.Pad)), Cluster: first.TextStart}
	if e.Fonts != nil && first.RunStart < len(snap.Runs) {
		if gid, ok := e.Fonts.NominalGlyph(snap.Runs[first.RunStart].Font, cp); ok {
			marker.GID = gid
		}
	}
	glyphStart := first.RunStart
	if glyphStart < len(snap.Runs) {
		insertAt := snap.Runs[first.RunStart].GlyphStart
		snap.Glyphs = append(snap.Glyphs[:insertAt:insertAt], append([]Glyph{marker}, snap.Glyphs[insertAt:]...)...)
		for i := range snap.Runs {
			if snap.Runs[i].GlyphStart >= insertAt {
				snap.Runs[i].GlyphStart++
			}
			if snap.Runs[i].GlyphEnd >= insertAt {
				snap.Runs[i].GlyphEnd++
			}
		}
	}
}

// markerCodepoint resolves a marker spec to the rune it represents, using a
// decimal or lower-latin counter keyed by indent level when the spec is a
// counter variant rather than a literal codepoint.
func markerCodepoint(spec attr.ListMarkerSpec, ordinal int) rune {
	switch spec.Kind {
	case attr.MarkerCodepoint, attr.MarkerBulletCodepoint:
		return spec.Codepoint
	case attr.MarkerDecimalCounter:
		s := strconv.Itoa(ordinal + 1)
		return rune(s[0])
	case attr.MarkerLowerLatinCounter:
		return rune('a' + ordinal%26)
	}
	return spec.Codepoint
}

func (e *Engine) emitIndentDecoration(snap *Snapshot, spec attr.DecorationSpec, params Parameters) {
	if len(snap.Lines) == 0 {
		return
	}
	first, last := snap.Lines[0], snap.Lines[len(snap.Lines)-1]
	x := fixed.Int26_6(params.IndentLevel) * params.IndentIncrement
	snap.Decorations = append(snap.Decorations, Decoration{
		Position:  spec.Style,
		Style:     spec.Line,
		X:         x,
		Y:         first.Baseline - first.Ascent,
		Length:    last.Baseline + last.Descent - (first.Baseline - first.Ascent),
		Thickness: fixed.Int26_6(spec.Thickness * 64),
		Paint:     attr.PaintTag{State: attr.PaintIndentDecoration, Ref: spec.PaintRef},
	})
}
