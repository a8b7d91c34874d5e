package uprops

import (
	"golang.org/x/text/unicode/bidi"
)

// ResolveBidi runs the Unicode Bidirectional Algorithm (UAX #9) over text
// parameterized by base, returning maximal same-level runs in logical
// order. Grounded directly on the teacher's shaperImpl.splitBidi
// (text/gotext.go), which drives golang.org/x/text/unicode/bidi.Paragraph
// the same way.
func ResolveBidi(text []rune, base BaseDirection) []BidiRun {
	if len(text) == 0 {
		return nil
	}
	def := bidi.LeftToRight
	switch base {
	case BaseRTL:
		def = bidi.RightToLeft
	case BaseAuto:
		def = bidi.Neutral
	}
	var p bidi.Paragraph
	p.SetString(string(text), bidi.DefaultDirection(def))
	ordering, err := p.Order()
	if err != nil {
		// §7 FontMatchFailed-style recovery: treat as a single run in the
		// requested base direction rather than failing the caller.
		dir := DirLTR
		if base == BaseRTL {
			dir = DirRTL
		}
		return []BidiRun{{Start: 0, End: len(text), Level: uint8(dir), Direction: dir}}
	}
	// Following the teacher's splitBidi (text/gotext.go): the end of
	// Run.Pos() is consumed as a rune offset into the []rune text, with
	// RunEnd = endRune+1 carried over as the run's exclusive end.
	//
	// golang.org/x/text/unicode/bidi's public API reports only each run's
	// resolved Direction, not its raw UAX #9 embedding level (Paragraph
	// keeps the level array internal to core.go). Levels are reconstructed
	// from that direction: a run in the paragraph's base direction gets the
	// base level (1 for BaseRTL, 0 otherwise) and a run in the opposite
	// direction gets the next level up. This matches UAX #9 for runs one
	// level away from the base, so Reorder's rule L2 puts L-R-L and R-L-R
	// sequences in visual order; deeper levels (explicit embeddings, numbers
	// inside right-to-left text of a left-to-right paragraph) are not
	// recovered.
	baseLevel := uint8(0)
	if def == bidi.RightToLeft {
		baseLevel = 1
	}
	var runs []BidiRun
	start := 0
	for i := 0; i < ordering.NumRuns(); i++ {
		run := ordering.Run(i)
		_, endRune := run.Pos()
		end := endRune + 1
		dir := DirLTR
		if run.Direction() == bidi.RightToLeft {
			dir = DirRTL
		}
		level := levelForParity(baseLevel, dir == DirRTL)
		runs = append(runs, BidiRun{Start: start, End: end, Level: level, Direction: dir})
		start = end
	}
	return runs
}

// levelForParity nudges level up by one if needed so its parity (even =
// LTR, odd = RTL per UAX #9) matches rtl.
func levelForParity(level uint8, rtl bool) uint8 {
	if (level%2 == 1) != rtl {
		level++
	}
	return level
}

// Reorder applies UBA rule L2 (reverse each level run from the highest
// level down) to produce a visual-order permutation of the logical run
// indices, matching the "Order" step of the layout engine pipeline (§4.E.5).
func Reorder(runs []BidiRun) []int {
	order := make([]int, len(runs))
	for i := range order {
		order[i] = i
	}
	if len(runs) == 0 {
		return order
	}
	maxLevel := uint8(0)
	minOdd := uint8(255)
	for _, r := range runs {
		if r.Level > maxLevel {
			maxLevel = r.Level
		}
		if r.Level%2 == 1 && r.Level < minOdd {
			minOdd = r.Level
		}
	}
	for level := maxLevel; level >= minOdd && level > 0; level-- {
		start := -1
		for i := 0; i <= len(order); i++ {
			atLevel := i < len(order) && runs[order[i]].Level >= level
			if atLevel && start == -1 {
				start = i
			} else if !atLevel && start != -1 {
				reverseInts(order[start:i])
				start = -1
			}
		}
	}
	return order
}

func reverseInts(a []int) {
	for i, j := 0, len(a)-1; i < j; i, j = i+1, j-1 {
		a[i], a[j] = a[j], a[i]
	}
}
