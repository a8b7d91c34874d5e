package editor

import "github.com/memononen/skribidi/attr"

// ToggleAttribute implements §4.I's toggle_attribute: if every codepoint in
// [start,end) already carries an attribute equal to a, it is cleared;
// otherwise it is set uniformly. An empty range toggles the active
// attribute set that the next insertion will carry instead.
func (e *Editor) ToggleAttribute(start, end int, a attr.Attribute) {
	if start == end {
		e.toggleActiveAttribute(a)
		return
	}
	if e.HasTextAttribute(start, end, a) {
		e.ClearAttribute(start, end, a.Kind)
	} else {
		e.SetAttribute(start, end, a)
	}
}

// SetAttribute unconditionally applies a across [start,end) (§4.I).
func (e *Editor) SetAttribute(start, end int, a attr.Attribute) {
	e.eachOverlap(start, end, func(p *overlapParagraph) {
		p.buf().AddAttribute(p.lo, p.hi, a)
		p.markDirty()
	})
}

// ClearAttribute unconditionally removes every span of kind k overlapping
// [start,end) (§4.I).
func (e *Editor) ClearAttribute(start, end int, k attr.Kind) {
	e.eachOverlap(start, end, func(p *overlapParagraph) {
		p.buf().ClearAttribute(p.lo, p.hi, k)
		p.markDirty()
	})
}

func (e *Editor) toggleActiveAttribute(a attr.Attribute) {
	if idx := indexOfKind(e.activeAttrs, a.Kind); idx >= 0 {
		if e.activeAttrs[idx].Equal(a) {
			e.activeAttrs = append(e.activeAttrs[:idx], e.activeAttrs[idx+1:]...)
			return
		}
		e.activeAttrs[idx] = a
		return
	}
	e.activeAttrs = append(e.activeAttrs, a)
}

func indexOfKind(attrs []attr.Attribute, k attr.Kind) int {
	for i, a := range attrs {
		if a.Kind == k {
			return i
		}
	}
	return -1
}

func (e *Editor) activeHas(a attr.Attribute) bool {
	idx := indexOfKind(e.activeAttrs, a.Kind)
	return idx >= 0 && e.activeAttrs[idx].Equal(a)
}

// ActiveSet builds an inline attribute set from the active toggles, for the
// editor to apply to its next insertion (§4.I).
func (e *Editor) ActiveSet() *attr.Set {
	return attr.NewSet(e.activeAttrs...)
}

// HasTextAttribute reports whether every codepoint in [start,end) carries
// an attribute equal to want (§4.I).
func (e *Editor) HasTextAttribute(start, end int, want attr.Attribute) bool {
	if start >= end {
		return false
	}
	ok := true
	e.eachOverlap(start, end, func(p *overlapParagraph) {
		if !p.buf().HasAttribute(p.lo, p.hi, want) {
			ok = false
		}
	})
	return ok
}

// HasAttribute mirrors HasTextAttribute but consults the active-attribute
// set when start==end (§4.I "for the empty-range case, consults the
// active-attribute set").
func (e *Editor) HasAttribute(start, end int, want attr.Attribute) bool {
	if start == end {
		return e.activeHas(want)
	}
	return e.HasTextAttribute(start, end, want)
}

// SetParagraphAttribute overrides the paragraph-level attribute of kind
// a.Kind for every paragraph the global range [start,end) touches (§4.I).
func (e *Editor) SetParagraphAttribute(start, end int, a attr.Attribute) {
	e.eachParagraphIn(start, end, func(p *richtextParagraph) {
		p.Attrs.Append(a)
		p.MarkDirty()
	})
}

// SetParagraphAttributeDelta adds delta to every touched paragraph's
// integer-level attribute of kind k, clamped below at 0 and, when max > 0,
// above at max (§4.I, used for indent-level changes).
func (e *Editor) SetParagraphAttributeDelta(start, end int, k attr.Kind, delta, max int) {
	e.eachParagraphIn(start, end, func(p *richtextParagraph) {
		cur := 0
		if got, ok := p.Attrs.Resolve(k); ok {
			cur = int(got.Value.Int)
		}
		next := cur + delta
		if next < 0 {
			next = 0
		}
		if max > 0 && next > max {
			next = max
		}
		p.Attrs.Append(attr.Attribute{Kind: k, Value: attr.Value{Int: int64(next)}})
		p.MarkDirty()
	})
}

// HasParagraphAttribute reports whether every paragraph touched by
// [start,end) resolves kind a.Kind to a value equal to a (§4.I).
func (e *Editor) HasParagraphAttribute(start, end int, a attr.Attribute) bool {
	ok, any := true, false
	e.eachParagraphIn(start, end, func(p *richtextParagraph) {
		any = true
		got, has := p.Attrs.Resolve(a.Kind)
		if !has || !got.Equal(a) {
			ok = false
		}
	})
	return any && ok
}
