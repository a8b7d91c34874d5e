package buffer

import (
	"sort"

	"github.com/memononen/skribidi/attr"
)

// Span is an attribute span: a half-open codepoint range carrying exactly
// one attribute value plus an optional opaque payload (§3).
type Span struct {
	Start, End int
	Attr       attr.Attribute
	Payload    []byte
}

func (s Span) len() int { return s.End - s.Start }

// equalValue reports whether two spans carry the same attribute kind, value
// and payload bytes -- the condition under which adjacent spans merge (§3).
func (s Span) equalValue(o Span) bool {
	if !s.Attr.Equal(o.Attr) {
		return false
	}
	if len(s.Payload) != len(o.Payload) {
		return false
	}
	for i := range s.Payload {
		if s.Payload[i] != o.Payload[i] {
			return false
		}
	}
	return true
}

// spanSet stores attribute spans sorted by Start, with the invariant that
// adjacent spans carrying an identical kind+value+payload are merged (§3,
// §8). It has no direct teacher analogue (gio has no attribute-span model);
// it is grounded on the same "sorted run list, merge identical neighbors"
// discipline used for lines/runs throughout text/gotext.go.
type spanSet struct {
	spans []Span
}

func (s *spanSet) sortedInsert(sp Span) {
	if sp.Start >= sp.End {
		return
	}
	i := sort.Search(len(s.spans), func(i int) bool { return s.spans[i].Start >= sp.Start })
	s.spans = append(s.spans, Span{})
	copy(s.spans[i+1:], s.spans[i:])
	s.spans[i] = sp
}

// mergeAdjacent coalesces any two spans of the same kind that are adjacent
// ([a,b) and [b,c)) or overlapping and carry an identical value+payload.
// Called after every mutation per the §3/§4.B invariant.
func (s *spanSet) mergeAdjacent() {
	if len(s.spans) < 2 {
		return
	}
	sort.SliceStable(s.spans, func(i, j int) bool { return s.spans[i].Start < s.spans[j].Start })
	out := s.spans[:1]
	for _, sp := range s.spans[1:] {
		merged := false
		// Compare with the most recent span of the same kind, skipping
		// spans of other kinds that may sit between the two.
		for j := len(out) - 1; j >= 0; j-- {
			prev := &out[j]
			if prev.Attr.Kind != sp.Attr.Kind {
				continue
			}
			if prev.equalValue(sp) && sp.Start <= prev.End {
				if sp.End > prev.End {
					prev.End = sp.End
				}
				merged = true
			}
			break
		}
		if !merged {
			out = append(out, sp)
		}
	}
	s.spans = out
}

// shift adds delta to every span boundary at or after at, clamping to at if
// the result would go negative (used when a mutation removes text before a
// span -- §3 "preserves attribute spans outside range, shifted by the
// length delta").
func (s *spanSet) shift(at, delta int) {
	for i := range s.spans {
		sp := &s.spans[i]
		if sp.Start >= at {
			sp.Start += delta
			if sp.Start < at {
				sp.Start = at
			}
		}
		if sp.End >= at {
			sp.End += delta
			if sp.End < at {
				sp.End = at
			}
		}
	}
}

// clip truncates/removes spans touching [start,end), used by remove() to
// drop the portion of every span that overlapped the removed range before
// shift() is applied to what remains.
func (s *spanSet) clip(start, end int) {
	out := s.spans[:0]
	for _, sp := range s.spans {
		switch {
		case sp.End <= start || sp.Start >= end:
			out = append(out, sp)
		case sp.Start < start && sp.End > end:
			// Span straddles the removed range on both sides: split into a
			// left remainder; the right remainder is re-added after shift
			// by the caller (removeRange).
			left := sp
			left.End = start
			out = append(out, left)
		case sp.Start < start:
			sp.End = start
			out = append(out, sp)
		case sp.End > end:
			sp.Start = end
			out = append(out, sp)
		}
	}
	s.spans = out
}

// removeRange deletes [start,end) from the span set, shifting everything
// after end back by (end-start) and clipping spans that overlapped the
// removed range. A span that fully straddled the range keeps both
// remainders: the right one is re-inserted after the shift and
// mergeAdjacent joins it to the left one, leaving a single span shortened by
// the removed length.
func (s *spanSet) removeRange(start, end int) {
	var straddlers []Span
	for _, sp := range s.spans {
		if sp.Start < start && sp.End > end {
			straddlers = append(straddlers, sp)
		}
	}
	s.clip(start, end)
	delta := -(end - start)
	s.shift(end, delta)
	for _, sp := range straddlers {
		right := sp
		right.Start = start
		right.End = sp.End + delta
		if right.End > right.Start {
			s.sortedInsert(right)
		}
	}
	s.mergeAdjacent()
}

// insertGap opens a codepoint-count-sized gap at offset at, shifting spans
// that start at or after at forward by count and extending spans that
// straddle at.
func (s *spanSet) insertGap(at, count int) {
	for i := range s.spans {
		sp := &s.spans[i]
		switch {
		case sp.Start >= at:
			sp.Start += count
			sp.End += count
		case sp.End > at:
			sp.End += count
		}
	}
}

// attrsAt returns every attribute active at codepoint offset pos, in
// declared (sorted-by-start, then insertion) order -- the "effective set"
// that §4.A's resolution scans back-to-front.
func (s *spanSet) attrsAt(pos int) []attr.Attribute {
	var out []attr.Attribute
	for _, sp := range s.spans {
		if pos >= sp.Start && pos < sp.End {
			out = append(out, sp.Attr)
		}
	}
	return out
}

// hasAttribute reports whether every codepoint in [start,end) is covered by
// a span with an attribute equal to want (§4.I has_attribute / §8).
func (s *spanSet) hasAttribute(start, end int, want attr.Attribute) bool {
	if start >= end {
		return false
	}
	covered := make([]bool, end-start)
	for _, sp := range s.spans {
		if sp.Attr.Kind != want.Kind || !sp.Attr.Equal(want) {
			continue
		}
		lo, hi := sp.Start, sp.End
		if lo < start {
			lo = start
		}
		if hi > end {
			hi = end
		}
		for i := lo; i < hi; i++ {
			covered[i-start] = true
		}
	}
	for _, c := range covered {
		if !c {
			return false
		}
	}
	return true
}

// clearKindInRange removes every span of kind k within [start,end),
// splitting spans that only partially overlap (§4.B clear_attribute).
func (s *spanSet) clearKindInRange(k attr.Kind, start, end int) {
	var out []Span
	for _, sp := range s.spans {
		if sp.Attr.Kind != k || sp.End <= start || sp.Start >= end {
			out = append(out, sp)
			continue
		}
		if sp.Start < start {
			left := sp
			left.End = start
			out = append(out, left)
		}
		if sp.End > end {
			right := sp
			right.Start = end
			out = append(out, right)
		}
	}
	s.spans = out
}

// addAttributeInRange clears any overlapping same-kind spans in
// [start,end) and inserts a is a single new span there (§4.B add_attribute:
// "clears same-kind overlapping spans then inserts").
func (s *spanSet) addAttributeInRange(start, end int, a attr.Attribute, payload []byte) {
	s.clearKindInRange(a.Kind, start, end)
	s.sortedInsert(Span{Start: start, End: end, Attr: a, Payload: payload})
	s.mergeAdjacent()
}
