// Package editor implements the editor state machine and caret iterator
// (§4.I, §4.J): selection, mouse hit-testing, text mutation with undo/redo,
// IME composition, attribute toggling, and key-driven rule sets, layered on
// top of a richtext.RichText and its layout.Snapshot.
//
// It is grounded on widget/editor.go's Editor (selection/mouse/key state
// machine) and widget/index.go's glyphIndex (caret-position indexing),
// generalized from gio's flat text.Glyph stream to skribidi's
// cluster/run/line snapshot model, and from gio's GUI-op-coupled Layout
// method to a headless API the host drives explicitly.
package editor

import (
	"golang.org/x/image/math/fixed"

	"github.com/memononen/skribidi/layout"
	"github.com/memononen/skribidi/uprops"
)

// Affinity disambiguates caret placement at bidi boundaries and line wraps
// (§4.I "a text position is {codepoint offset, affinity}").
type Affinity uint8

const (
	AffinityNone Affinity = iota
	AffinityTrailing
	AffinityLeading
	AffinityStartOfLine
	AffinityEndOfLine
)

// Side is one edge of a caret stop: the text offset, affinity, and resolved
// direction on that side of the stop (§4.J).
type Side struct {
	TextOffset int
	Affinity   Affinity
	Direction  uprops.Direction
}

// Stop is one caret position along a line: its horizontal coordinate plus
// its logical left/right sides (§4.J "(x, advance, left-side, right-side)").
type Stop struct {
	X       fixed.Int26_6
	Advance fixed.Int26_6
	Left    Side
	Right   Side
}

// CaretIterator walks the glyphs of one line, producing caret stops,
// mirroring glyphIndex.Glyph's incremental position construction
// (widget/index.go) but operating over the already-assembled Cluster/Run
// records of a layout.Snapshot instead of a raw glyph stream.
type CaretIterator struct {
	snap  *layout.Snapshot
	line  layout.Line
	stops []Stop
}

// NewCaretIterator builds the full stop sequence for snap.Lines[lineIdx] in
// one pass (§4.J); the line's runs are already in visual order courtesy of
// the layout engine's bidi reordering (layout/wrap.go lineFor), so stops are
// produced by walking them start to end.
func NewCaretIterator(snap *layout.Snapshot, lineIdx int) *CaretIterator {
	it := &CaretIterator{snap: snap}
	if lineIdx < 0 || lineIdx >= len(snap.Lines) {
		return it
	}
	it.line = snap.Lines[lineIdx]
	it.build()
	return it
}

func (it *CaretIterator) build() {
	line := it.line
	x := line.Bounds.Min.X
	appendStop := func(s Stop) { it.stops = append(it.stops, s) }

	appendStop(Stop{
		X:     x,
		Left:  Side{TextOffset: line.TextStart, Affinity: AffinityStartOfLine},
		Right: Side{TextOffset: line.TextStart, Affinity: AffinityStartOfLine},
	})

	var prevDir uprops.Direction
	havePrevDir := false
	for ri := line.RunStart; ri < line.RunEnd; ri++ {
		run := it.snap.Runs[ri]
		if havePrevDir && run.Direction != prevDir {
			// Direction flip: the stop at this boundary already carries the
			// previous run's trailing side; give it a matching leading side
			// for the new run instead of merging into one ambiguous stop.
			if n := len(it.stops); n > 0 {
				it.stops[n-1].Right = Side{
					TextOffset: clusterTextStart(it.snap, run),
					Affinity:   AffinityLeading,
					Direction:  run.Direction,
				}
			}
		}
		prevDir, havePrevDir = run.Direction, true

		for ci := range it.snap.Clusters {
			c := it.snap.Clusters[ci]
			if c.GlyphOffset < run.GlyphStart || c.GlyphOffset >= run.GlyphEnd {
				continue
			}
			adv := it.snap.AdvanceOf(c.GlyphOffset, c.GlyphOffset+c.GlyphCount)
			leftOff, rightOff := c.TextOffset, c.TextOffset+c.TextCount
			if run.Direction == uprops.DirRTL {
				leftOff, rightOff = rightOff, leftOff
			}
			appendStop(Stop{
				X:       x,
				Advance: adv,
				Left:    Side{TextOffset: leftOff, Affinity: AffinityTrailing, Direction: run.Direction},
				Right:   Side{TextOffset: rightOff, Affinity: AffinityLeading, Direction: run.Direction},
			})
			x += adv
		}
	}

	appendStop(Stop{
		X:     x,
		Left:  Side{TextOffset: line.TextEnd, Affinity: AffinityEndOfLine},
		Right: Side{TextOffset: line.TextEnd, Affinity: AffinityEndOfLine},
	})
}

// clusterTextStart finds the text offset of run's first cluster, used to
// label the leading side of a direction-flip stop.
func clusterTextStart(snap *layout.Snapshot, run layout.Run) int {
	for _, c := range snap.Clusters {
		if c.GlyphOffset == run.GlyphStart {
			return c.TextOffset
		}
	}
	return run.TextStart
}

// Stops returns the full stop sequence for the iterated line.
func (it *CaretIterator) Stops() []Stop { return it.stops }

// Len returns the number of caret stops on the line.
func (it *CaretIterator) Len() int { return len(it.stops) }

// At returns stop i, or the zero Stop if out of range.
func (it *CaretIterator) At(i int) Stop {
	if i < 0 || i >= len(it.stops) {
		return Stop{}
	}
	return it.stops[i]
}

// ClosestToX returns the index of the stop whose X is nearest to x.
func (it *CaretIterator) ClosestToX(x fixed.Int26_6) int {
	best, bestDist := 0, fixed.Int26_6(1<<62)
	for i, s := range it.stops {
		d := s.X - x
		if d < 0 {
			d = -d
		}
		if d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

// ClosestToOffset returns the index of the first stop whose left or right
// side carries textOffset, or the nearest stop before it if none match
// exactly.
func (it *CaretIterator) ClosestToOffset(textOffset int) int {
	best, bestDist := 0, 1<<62
	for i, s := range it.stops {
		for _, side := range [2]Side{s.Left, s.Right} {
			d := side.TextOffset - textOffset
			if d < 0 {
				d = -d
			}
			if d < bestDist {
				best, bestDist = i, d
			}
		}
	}
	return best
}
