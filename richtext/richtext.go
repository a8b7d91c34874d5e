// Package richtext implements the multi-paragraph container (§4.F): an
// ordered sequence of paragraphs, each owning a text buffer (§B) and a
// paragraph-level attribute set, separated by an explicit paragraph
// separator codepoint. It is grounded on the teacher's multi-paragraph
// shaping loop in text/gotext.go (LayoutString iterates paragraphs split on
// '\n') generalized to an explicitly mutable, editable container the way
// npillmayer/cords' styled.Paragraph models a styled text span tree.
package richtext

import (
	"golang.org/x/image/math/fixed"

	"github.com/memononen/skribidi/attr"
	"github.com/memononen/skribidi/buffer"
	"github.com/memononen/skribidi/layout"
	"github.com/memononen/skribidi/layoutcache"
)

// ParagraphSeparator is the codepoint stored as the last rune of every
// paragraph except the final one (§3). It is U+2029 PARAGRAPH
// SEPARATOR, a dedicated codepoint that never occurs in ordinary text,
// unlike an ASCII space or newline -- splitOnSeparator (edit.go) must
// never split on a character a real document could actually contain.
const ParagraphSeparator rune = '\u2029'

// Paragraph owns one text buffer, its paragraph-level attribute set, and
// its most recently computed layout snapshot (possibly stale if dirty).
type Paragraph struct {
	Buf   *buffer.Buffer
	Attrs *attr.Set
	snap  *layout.Snapshot
	dirty bool
}

// Snapshot returns the paragraph's current layout, or nil if it has never
// been laid out.
func (p *Paragraph) Snapshot() *layout.Snapshot { return p.snap }

// Dirty reports whether the paragraph's text or attributes changed (or its
// layout parameters were resized) since its last Build (§4.F: "only
// paragraphs whose text or attributes changed ... are re-laid").
func (p *Paragraph) Dirty() bool { return p.dirty }

// MarkDirty flags the paragraph for re-layout on the next Relayout call.
// Callers that mutate p.Buf's attribute spans directly (e.g. the editor's
// attribute toggles, which operate below Replace) must call this themselves.
func (p *Paragraph) MarkDirty() { p.dirty = true }

// defaultLayoutCacheSize bounds each RichText's layout cache, scaled down
// from the teacher's text/lru.go maxSize=1000 (glyph-run granularity) since
// entries here are whole paragraph snapshots.
const defaultLayoutCacheSize = 256

// RichText is an ordered sequence of paragraphs with global codepoint
// offsets computed by prefix-sum (§3).
type RichText struct {
	paragraphs []*Paragraph
	// yOffsets[i] is the y-coordinate of paragraph i's top edge, maintained
	// by recomputeOffsets (§4.F "paragraph_offsets_y").
	yOffsets []fixed.Int26_6
	cache    *layoutcache.Cache
}

// New constructs an empty rich text with a single empty paragraph.
func New(defaultAttrs *attr.Set) *RichText {
	rt := &RichText{cache: layoutcache.New(defaultLayoutCacheSize)}
	rt.paragraphs = []*Paragraph{{Buf: buffer.New(), Attrs: defaultAttrs, dirty: true}}
	return rt
}

// Paragraphs returns the paragraph slice in order. Callers must not retain
// pointers across a mutating call.
func (rt *RichText) Paragraphs() []*Paragraph { return rt.paragraphs }

// Len returns the total codepoint length across all paragraphs, including
// separators.
func (rt *RichText) Len() int {
	n := 0
	for _, p := range rt.paragraphs {
		n += p.Buf.Len()
	}
	return n
}

// paragraphAt locates the paragraph owning global offset pos and the local
// offset within it.
func (rt *RichText) paragraphAt(pos int) (idx, local int) {
	base := 0
	for i, p := range rt.paragraphs {
		n := p.Buf.Len()
		if pos < base+n || i == len(rt.paragraphs)-1 {
			return i, pos - base
		}
		base += n
	}
	return len(rt.paragraphs) - 1, 0
}

// GlobalOffset converts a paragraph index + local offset into a global
// codepoint offset.
func (rt *RichText) GlobalOffset(idx, local int) int {
	base := 0
	for i := 0; i < idx && i < len(rt.paragraphs); i++ {
		base += rt.paragraphs[i].Buf.Len()
	}
	return base + local
}
