package editor

import (
	"github.com/memononen/skribidi/buffer"
	"github.com/memononen/skribidi/richtext"
)

// richtextParagraph is an alias kept local to this package so attribute
// helpers can name the type without repeating the richtext qualifier.
type richtextParagraph = richtext.Paragraph

// overlapParagraph is one paragraph's [lo,hi) local overlap with a global
// codepoint range, handed to a callback by eachOverlap.
type overlapParagraph struct {
	p      *richtextParagraph
	lo, hi int
}

func (o *overlapParagraph) buf() *buffer.Buffer { return o.p.Buf }
func (o *overlapParagraph) markDirty()           { o.p.MarkDirty() }

// eachOverlap walks every paragraph whose codepoint span intersects the
// global range [start,end), invoking fn with the paragraph-local overlap.
func (e *Editor) eachOverlap(start, end int, fn func(*overlapParagraph)) {
	base := 0
	for _, p := range e.Text.Paragraphs() {
		n := p.Buf.Len()
		lo, hi := maxInt(start, base), minInt(end, base+n)
		if lo < hi {
			fn(&overlapParagraph{p: p, lo: lo - base, hi: hi - base})
		}
		base += n
	}
}

// eachParagraphIn walks every paragraph the global range [start,end)
// touches (including a zero-length range sitting inside one paragraph),
// invoking fn once per paragraph.
func (e *Editor) eachParagraphIn(start, end int, fn func(*richtextParagraph)) {
	if end < start {
		start, end = end, start
	}
	base := 0
	paragraphs := e.Text.Paragraphs()
	for i, p := range paragraphs {
		n := p.Buf.Len()
		lo, hi := base, base+n
		touches := (start < hi && end > lo) || (start == end && start >= lo && start <= hi)
		if i == len(paragraphs)-1 && end >= hi {
			touches = touches || start <= hi
		}
		if touches {
			fn(p)
		}
		base += n
	}
}
