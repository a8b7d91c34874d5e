package richtext

import (
	"github.com/memononen/skribidi/attr"
	"github.com/memononen/skribidi/buffer"
)

// Replace substitutes the codepoints in the global range [start,end) with
// runes, splitting or merging paragraphs as needed when the replacement
// text itself contains paragraph separators (§4.F, §3 "replace(range,
// new_text) preserves attribute spans outside range").
func (rt *RichText) Replace(start, end int, runes []rune, attrs ...attr.Attribute) {
	start, end = rt.clamp(start, end)
	rt.Remove(start, end)
	rt.insertAt(start, runes, attrs...)
}

// Remove deletes the global range [start,end), merging the paragraphs that
// become adjacent when a separator inside the range is deleted.
func (rt *RichText) Remove(start, end int) {
	start, end = rt.clamp(start, end)
	if start >= end {
		return
	}
	for end > start {
		idx, local := rt.paragraphAt(start)
		p := rt.paragraphs[idx]
		lenBefore := p.Buf.Len()
		localEnd := local + (end - start)
		if localEnd > lenBefore {
			localEnd = lenBefore
		}
		p.Buf.Remove(local, localEnd)
		p.dirty = true
		removed := localEnd - local
		end -= removed
		if p.Buf.Len() == 0 && len(rt.paragraphs) > 1 {
			rt.mergeAt(idx)
		} else if localEnd == lenBefore && idx+1 < len(rt.paragraphs) {
			// The removal reached the paragraph's tail, consuming its
			// separator: merge with the following paragraph.
			rt.mergeAt(idx)
		}
	}
}

// insertAt splits runes on ParagraphSeparator and distributes the pieces
// across new/existing paragraphs starting at global offset start.
func (rt *RichText) insertAt(start int, runes []rune, attrs ...attr.Attribute) {
	idx, local := rt.paragraphAt(start)
	pieces := splitOnSeparator(runes)
	if len(pieces) == 1 {
		rt.paragraphs[idx].Buf.Replace(local, local, pieces[0], attrs...)
		rt.paragraphs[idx].dirty = true
		return
	}
	tail := rt.paragraphs[idx]
	tailRunes := tail.Buf.RuneSlice(local, tail.Buf.Len())
	tail.Buf.Remove(local, tail.Buf.Len())
	tail.Buf.Replace(local, local, pieces[0], attrs...)
	tail.dirty = true

	newParagraphs := make([]*Paragraph, 0, len(pieces)-1)
	for i := 1; i < len(pieces); i++ {
		np := &Paragraph{Buf: buffer.New(), Attrs: tail.Attrs, dirty: true}
		np.Buf.Replace(0, 0, pieces[i], attrs...)
		if i == len(pieces)-1 {
			np.Buf.Replace(np.Buf.Len(), np.Buf.Len(), tailRunes)
		}
		newParagraphs = append(newParagraphs, np)
	}
	rt.paragraphs = append(rt.paragraphs[:idx+1], append(newParagraphs, rt.paragraphs[idx+1:]...)...)
}

// splitOnSeparator breaks runes at ParagraphSeparator boundaries, keeping
// the separator as the last rune of each piece but the last.
func splitOnSeparator(runes []rune) [][]rune {
	var pieces [][]rune
	start := 0
	for i, r := range runes {
		if r == ParagraphSeparator {
			pieces = append(pieces, runes[start:i+1])
			start = i + 1
		}
	}
	pieces = append(pieces, runes[start:])
	return pieces
}

// mergeAt merges paragraph idx with paragraph idx+1, concatenating their
// attribute spans with the first paragraph's length as the offset (§3:
// "removing it merges two paragraphs, concatenating their attribute spans
// with appropriate offset"). Replace appends the second paragraph's text
// without spans; each of its spans is then re-added shifted by that length.
func (rt *RichText) mergeAt(idx int) {
	if idx < 0 || idx+1 >= len(rt.paragraphs) {
		return
	}
	a, b := rt.paragraphs[idx], rt.paragraphs[idx+1]
	tailRunes := b.Buf.RuneSlice(0, b.Buf.Len())
	insertPos := a.Buf.Len()
	a.Buf.Replace(insertPos, insertPos, tailRunes)
	for _, s := range b.Buf.Spans() {
		a.Buf.AddAttributeWithPayload(insertPos+s.Start, insertPos+s.End, s.Attr, s.Payload)
	}
	a.dirty = true
	rt.paragraphs = append(rt.paragraphs[:idx+1], rt.paragraphs[idx+2:]...)
}

// clamp bounds a [start,end) range to the rich text's total length.
func (rt *RichText) clamp(start, end int) (int, int) {
	n := rt.Len()
	if start < 0 {
		start = 0
	}
	if end > n {
		end = n
	}
	if start > n {
		start = n
	}
	if end < start {
		end = start
	}
	return start, end
}
