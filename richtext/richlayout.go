package richtext

import (
	"golang.org/x/image/math/fixed"

	"github.com/memononen/skribidi/attr"
	"github.com/memononen/skribidi/layout"
	"github.com/memononen/skribidi/layoutcache"
)

// Relayout rebuilds the layout of every dirty paragraph (or every
// paragraph, if force is true for a resize) and recomputes
// paragraph_offsets_y by prefix-summing each paragraph's layout height
// (§4.F). Paragraphs whose text and attributes are unchanged keep their
// previous snapshot. Before calling engine.Build, each dirty paragraph is
// first looked up in rt.cache by its (text, attrs, params) fingerprint
// (§4.H), so that reverting an edit (undo/redo) or resizing back to a
// previously seen width reuses the prior snapshot instead of reshaping.
func (rt *RichText) Relayout(engine *layout.Engine, params layout.Parameters, force bool) {
	relaid, cached := 0, 0
	lp := layoutcache.Params{Parameters: params}
	for _, p := range rt.paragraphs {
		if !p.dirty && !force {
			continue
		}
		fp := rt.cache.Fingerprint(p.Buf.Runes(), p.Attrs, lp)
		// Fold in the inline attribute spans too, so a span-only edit does
		// not hit the entry of the paragraph's earlier span state.
		for _, s := range p.Buf.Spans() {
			fp = (fp ^ uint64(s.Start)<<32 ^ uint64(s.End)) * 1099511628211
			fp = (fp ^ attr.NewSet(s.Attr).Hash()) * 1099511628211
			for _, b := range s.Payload {
				fp = (fp ^ uint64(b)) * 1099511628211
			}
		}
		if snap, ok := rt.cache.Get(fp); ok {
			p.snap = snap
			p.dirty = false
			cached++
			continue
		}
		p.snap = engine.Build(p.Buf, p.Attrs, params)
		rt.cache.Put(fp, p.snap)
		p.dirty = false
		relaid++
	}
	tracer().Debugf("relaid %d/%d paragraphs (%d served from layout cache)", relaid, len(rt.paragraphs), cached)
	rt.recomputeOffsets()
}

// recomputeOffsets rebuilds yOffsets by prefix-summing each paragraph's
// current snapshot height, matching the teacher's calculateYOffsets
// (text/gotext.go) generalized across paragraph boundaries.
func (rt *RichText) recomputeOffsets() {
	rt.yOffsets = make([]fixed.Int26_6, len(rt.paragraphs)+1)
	var y fixed.Int26_6
	for i, p := range rt.paragraphs {
		rt.yOffsets[i] = y
		if p.snap != nil {
			y += p.snap.Bounds.Max.Y - p.snap.Bounds.Min.Y
		}
	}
	rt.yOffsets[len(rt.paragraphs)] = y
}

// YOffset returns the top y-coordinate of paragraph idx.
func (rt *RichText) YOffset(idx int) fixed.Int26_6 {
	if idx < 0 || idx >= len(rt.yOffsets) {
		return 0
	}
	return rt.yOffsets[idx]
}

// TotalHeight returns the sum of every paragraph's laid-out height.
func (rt *RichText) TotalHeight() fixed.Int26_6 {
	if len(rt.yOffsets) == 0 {
		return 0
	}
	return rt.yOffsets[len(rt.yOffsets)-1]
}

// ParagraphAtY returns the index of the paragraph containing y-coordinate y.
func (rt *RichText) ParagraphAtY(y fixed.Int26_6) int {
	for i := len(rt.paragraphs) - 1; i >= 0; i-- {
		if y >= rt.yOffsets[i] {
			return i
		}
	}
	return 0
}
