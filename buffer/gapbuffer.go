package buffer

// gapBuffer is a gap buffer of Unicode scalar values (§3: "text is stored as
// a sequence of unsigned 32-bit scalar values"). It is grounded on the
// teacher's widget.editBuffer (widget/buffer.go), generalized from a
// byte-oriented UTF-8 gap buffer to a codepoint-oriented one: every offset
// here is already a codepoint offset, so callers never need to re-decode
// UTF-8 to find rune boundaries the way the teacher's moveGap/runeAt do.
type gapBuffer struct {
	gapstart, gapend int
	text             []rune
}

const minGap = 8

// len returns the number of codepoints currently stored.
func (g *gapBuffer) len() int { return len(g.text) - g.gapLen() }

func (g *gapBuffer) gapLen() int { return g.gapend - g.gapstart }

// moveGap relocates the gap to sit at offset pos, growing it to at least
// space codepoints if necessary. Mirrors editBuffer.moveGap.
func (g *gapBuffer) moveGap(pos, space int) {
	if g.gapLen() < space {
		if space < minGap {
			space = minGap
		}
		txt := make([]rune, g.len()+space)
		gaplen := len(txt) - g.len()
		if pos > g.gapstart {
			copy(txt, g.text[:g.gapstart])
			copy(txt[pos+gaplen:], g.text[pos+g.gapLen():])
			copy(txt[g.gapstart:], g.text[g.gapend:pos+g.gapLen()])
		} else {
			copy(txt, g.text[:pos])
			copy(txt[g.gapstart+gaplen:], g.text[g.gapend:])
			copy(txt[pos+gaplen:], g.text[pos:g.gapstart])
		}
		g.text = txt
		g.gapstart = pos
		g.gapend = g.gapstart + gaplen
		return
	}
	if pos > g.gapstart {
		copy(g.text[g.gapstart:], g.text[g.gapend:pos+g.gapLen()])
	} else {
		copy(g.text[pos+g.gapLen():], g.text[pos:g.gapstart])
	}
	l := g.gapLen()
	g.gapstart = pos
	g.gapend = g.gapstart + l
}

// at returns the codepoint logically at offset i (0 <= i < len()).
func (g *gapBuffer) at(i int) rune {
	if i >= g.gapstart {
		i += g.gapLen()
	}
	return g.text[i]
}

// slice returns the codepoints in [start,end) as a fresh slice.
func (g *gapBuffer) slice(start, end int) []rune {
	out := make([]rune, 0, end-start)
	for i := start; i < end; i++ {
		out = append(out, g.at(i))
	}
	return out
}

// insertAt inserts runes at offset pos.
func (g *gapBuffer) insertAt(pos int, runes []rune) {
	g.moveGap(pos, len(runes))
	copy(g.text[pos:], runes)
	g.gapstart += len(runes)
}

// deleteAt removes count codepoints starting at offset pos.
func (g *gapBuffer) deleteAt(pos, count int) {
	g.moveGap(pos, 0)
	g.gapend += count
}

// all materializes the full codepoint sequence.
func (g *gapBuffer) all() []rune {
	return g.slice(0, g.len())
}
