// Package buffer implements the text buffer component (§4.B): a codepoint
// sequence paired with a sorted set of attribute spans, where every
// mutation preserves the span-sorted, merged-adjacent invariant from §3.
//
// Storage is grounded on widget/buffer.go's gap buffer (gapBuffer, in this
// package generalized to operate on codepoints rather than UTF-8 bytes).
package buffer

import (
	"sort"
	"unicode/utf8"

	"github.com/memononen/skribidi/attr"
)

// Buffer is one paragraph's mutable codepoint sequence plus its attribute
// spans (§3 "Paragraph... Owns a text buffer").
type Buffer struct {
	gap   gapBuffer
	spans spanSet
}

// New creates an empty buffer.
func New() *Buffer { return &Buffer{} }

// Len returns the number of codepoints currently stored.
func (b *Buffer) Len() int { return b.gap.len() }

// At returns the codepoint at offset i, clamped to the valid range (§4.B:
// "out-of-range inputs are clamped, not errors").
func (b *Buffer) At(i int) rune {
	i = b.clampOffset(i)
	if i >= b.gap.len() {
		if b.gap.len() == 0 {
			return 0
		}
		i = b.gap.len() - 1
	}
	return b.gap.at(i)
}

// Runes returns a copy of the full codepoint sequence.
func (b *Buffer) Runes() []rune { return b.gap.all() }

// RuneSlice returns a copy of the codepoints in the clamped range [start,end).
func (b *Buffer) RuneSlice(start, end int) []rune {
	start, end = b.clampRange(start, end)
	return b.gap.slice(start, end)
}

// Spans returns a copy of the sorted attribute spans.
func (b *Buffer) Spans() []Span {
	out := make([]Span, len(b.spans.spans))
	copy(out, b.spans.spans)
	return out
}

func (b *Buffer) clampOffset(i int) int {
	if i < 0 {
		return 0
	}
	if n := b.gap.len(); i > n {
		return n
	}
	return i
}

func (b *Buffer) clampRange(start, end int) (int, int) {
	start = b.clampOffset(start)
	end = b.clampOffset(end)
	if end < start {
		end = start
	}
	return start, end
}

// AppendRange appends codepoints to the end of the buffer, attributed with
// attrs applied uniformly across the appended range.
func (b *Buffer) AppendRange(runes []rune, attrs ...attr.Attribute) {
	n := b.gap.len()
	b.Replace(n, n, runes, attrs...)
}

// Replace substitutes the codepoints in [start,end) (clamped) with runes,
// applying attrs uniformly across the inserted range. This is the single
// funnel operation described in §3's mutation invariant and §8's length
// identity: len(after) = len(before) + len(runes) - (end-start).
func (b *Buffer) Replace(start, end int, runes []rune, attrs ...attr.Attribute) {
	start, end = b.clampRange(start, end)
	tracer().Debugf("replace [%d,%d) with %d runes", start, end, len(runes))
	if end > start {
		b.removeSpansAndGap(start, end)
	}
	if len(runes) > 0 {
		b.gap.insertAt(start, runes)
		b.spans.insertGap(start, len(runes))
		for _, a := range attrs {
			b.spans.addAttributeInRange(start, start+len(runes), a, nil)
		}
	}
	b.spans.mergeAdjacent()
}

// removeSpansAndGap is the shared core of Remove/Replace: delete codepoints
// in [start,end) from storage and update span bookkeeping accordingly.
func (b *Buffer) removeSpansAndGap(start, end int) {
	b.gap.deleteAt(start, end-start)
	b.spans.removeRange(start, end)
}

// Remove deletes the codepoints in the clamped range [start,end).
func (b *Buffer) Remove(start, end int) {
	start, end = b.clampRange(start, end)
	if end <= start {
		return
	}
	b.removeSpansAndGap(start, end)
}

// ReplaceUTF8 decodes bytes as UTF-8 and replaces [start,end) with the
// decoded codepoints, per the standard Unicode transformation conversion
// described in §3.
func (b *Buffer) ReplaceUTF8(start, end int, data []byte, attrs ...attr.Attribute) {
	runes := make([]rune, 0, utf8.RuneCount(data))
	for len(data) > 0 {
		r, size := utf8.DecodeRune(data)
		runes = append(runes, r)
		data = data[size:]
	}
	b.Replace(start, end, runes, attrs...)
}

// ReplaceUTF32 replaces [start,end) with the given codepoint slice
// (the buffer's native representation, so this is a thin alias of Replace).
func (b *Buffer) ReplaceUTF32(start, end int, runes []rune, attrs ...attr.Attribute) {
	b.Replace(start, end, runes, attrs...)
}

// TextUTF8 returns the buffer contents re-encoded as UTF-8, the public
// accessor mentioned by §6 ("get_text_utf8_in_range").
func (b *Buffer) TextUTF8(start, end int) string {
	start, end = b.clampRange(start, end)
	runes := b.gap.slice(start, end)
	return string(runes)
}

// AddAttribute clears any overlapping same-kind spans in the clamped range
// [start,end) and inserts a, per §4.B.
func (b *Buffer) AddAttribute(start, end int, a attr.Attribute) {
	start, end = b.clampRange(start, end)
	if end <= start {
		return
	}
	b.spans.addAttributeInRange(start, end, a, nil)
}

// AddAttributeWithPayload is AddAttribute carrying an opaque payload blob
// (used for object/icon content-run metadata, §3).
func (b *Buffer) AddAttributeWithPayload(start, end int, a attr.Attribute, payload []byte) {
	start, end = b.clampRange(start, end)
	if end <= start {
		return
	}
	b.spans.addAttributeInRange(start, end, a, payload)
}

// ClearAttribute removes every span of kind k overlapping [start,end),
// splitting spans that only partially overlap (§4.B).
func (b *Buffer) ClearAttribute(start, end int, k attr.Kind) {
	start, end = b.clampRange(start, end)
	if end <= start {
		return
	}
	b.spans.clearKindInRange(k, start, end)
}

// HasAttribute reports whether every codepoint in [start,end) carries an
// attribute equal to want (§4.I / §8).
func (b *Buffer) HasAttribute(start, end int, want attr.Attribute) bool {
	start, end = b.clampRange(start, end)
	return b.spans.hasAttribute(start, end, want)
}

// AttributeRun is one maximal run emitted by IterateAttributeRuns: a
// codepoint range over which the active attribute set is constant.
type AttributeRun struct {
	Start, End int
	Attrs      []attr.Attribute
}

// IterateAttributeRuns emits maximal runs where the active-span set is
// constant, splitting the text at every span start and end and reporting
// the spans active at each run's start (§4.B). Grounded on the
// "walk sorted boundaries, track the active set" discipline pango's
// AttrList iteration (pango/ellipsize.go advanceIteratorTo) follows.
func (b *Buffer) IterateAttributeRuns(callback func(AttributeRun)) {
	n := b.gap.len()
	if n == 0 {
		return
	}
	boundaries := map[int]bool{0: true, n: true}
	for _, sp := range b.spans.spans {
		boundaries[sp.Start] = true
		boundaries[sp.End] = true
	}
	offs := make([]int, 0, len(boundaries))
	for o := range boundaries {
		offs = append(offs, o)
	}
	sort.Ints(offs)
	for i := 0; i+1 < len(offs); i++ {
		start, end := offs[i], offs[i+1]
		if start >= end {
			continue
		}
		callback(AttributeRun{Start: start, End: end, Attrs: b.spans.attrsAt(start)})
	}
}
