package layout

import (
	"golang.org/x/image/math/fixed"

	"github.com/memononen/skribidi/font"
	"github.com/memononen/skribidi/uprops"
)

// assembleRuns appends every prepared (shaped) run's glyphs to the
// snapshot's flat glyphs[] in logical (original-text) order and returns the
// logical run ledger (not yet stored in snap.Runs: line breaking below
// slices and reorders these per line, and only the per-line, visually
// reordered copies are appended to snap.Runs).
func (e *Engine) assembleRuns(snap *Snapshot, runs []preparedRun) []Run {
	logical := make([]Run, 0, len(runs))
	for _, pr := range runs {
		glyphStart := len(snap.Glyphs)
		for _, g := range pr.glyphs {
			snap.Glyphs = append(snap.Glyphs, Glyph{
				GID:      g.GID,
				AdvanceX: g.AdvanceX,
				OffsetX:  g.OffsetX,
				OffsetY:  g.OffsetY,
				Cluster:  g.Cluster,
			})
		}
		logical = append(logical, Run{
			Type:       RunText,
			Direction:  pr.boundary.Direction,
			Script:     pr.boundary.Script,
			Font:       pr.font,
			Size:       pr.size,
			AttrsRef:   pr.attrs,
			GlyphStart: glyphStart,
			GlyphEnd:   len(snap.Glyphs),
			TextStart:  pr.boundary.Start,
			TextEnd:    pr.boundary.End,
		})
	}
	return logical
}

// buildClusters groups the snapshot's flat glyphs[] into grapheme-level
// Cluster records (§3 clusters[]): glyphs are already grouped contiguously
// by cluster offset within a run, since shaping never interleaves clusters.
// It also records each run's own slice of snap.Clusters in ClusterStart/
// ClusterEnd, so that later per-line clipping (lineFor) can narrow a run's
// glyph/cluster range without rescanning the whole snapshot.
func (e *Engine) buildClusters(snap *Snapshot, logical []Run) {
	for ri := range logical {
		run := logical[ri]
		clusterStart := len(snap.Clusters)
		i := run.GlyphStart
		for i < run.GlyphEnd {
			cluster := snap.Glyphs[i].Cluster
			j := i
			for j < run.GlyphEnd && snap.Glyphs[j].Cluster == cluster {
				j++
			}
			textCount := 1
			if j < run.GlyphEnd {
				textCount = snap.Glyphs[j].Cluster - cluster
			} else {
				textCount = run.TextEnd - cluster
			}
			if textCount < 1 {
				textCount = 1
			}
			snap.Clusters = append(snap.Clusters, Cluster{
				TextOffset:  cluster,
				TextCount:   textCount,
				GlyphOffset: i,
				GlyphCount:  j - i,
			})
			i = j
		}
		logical[ri].ClusterStart = clusterStart
		logical[ri].ClusterEnd = len(snap.Clusters)
	}
}

// runeAdvances computes, for each codepoint offset, the sum of advances of
// glyphs whose cluster starts there -- used to decide line breaks at
// codepoint granularity regardless of how many glyphs a cluster expanded
// to (§4.E step 4 edge policy: "zero-width glyphs collapse in cluster width
// but retain cluster identity").
func (e *Engine) runeAdvances(snap *Snapshot, textLen int) []fixed.Int26_6 {
	widths := make([]fixed.Int26_6, textLen)
	for _, c := range snap.Clusters {
		var sum fixed.Int26_6
		for _, g := range snap.Glyphs[c.GlyphOffset : c.GlyphOffset+c.GlyphCount] {
			sum += g.AdvanceX
		}
		if c.TextOffset >= 0 && c.TextOffset < textLen {
			widths[c.TextOffset] += sum
		}
	}
	return widths
}

// computeLines implements §4.E steps 4-7, 9: breaks the logical-order runs
// into lines honoring the wrap mode and mandatory breaks, reorders each
// line's runs by bidi embedding level (UBA rule L2), and computes baseline
// metrics from the font metrics of the glyphs placed on the line.
func (e *Engine) computeLines(snap *Snapshot, logical []Run, text []rune, props []uprops.Property, params Parameters, maxWidth, indent fixed.Int26_6) {
	n := len(text)
	if n == 0 {
		snap.Lines = append(snap.Lines, e.emptyLine(params))
		return
	}
	advances := e.runeAdvances(snap, n)

	lineStart := 0
	width := indent
	lastBreak := -1
	lastBreakWidth := indent

	commit := func(end int) {
		snap.Lines = append(snap.Lines, e.lineFor(snap, logical, text, props, lineStart, end, params))
		lineStart = end
		width = indent
		lastBreak = -1
		lastBreakWidth = indent
	}

	for i := 0; i < n; i++ {
		width += advances[i]
		if props[i].Flags&uprops.FlagLineBreakMust != 0 {
			commit(i + 1)
			continue
		}
		if props[i].Flags&uprops.FlagLineBreakAllow != 0 {
			lastBreak = i + 1
			lastBreakWidth = width
		}
		if params.Wrap == WrapNone || params.MaxWidth <= 0 {
			continue
		}
		if width > maxWidth && i > lineStart {
			if lastBreak > lineStart {
				commit(lastBreak)
				_ = lastBreakWidth
			} else if params.Wrap == WrapWordChar {
				commit(i + 1)
			}
		}
		if params.MaxLines > 0 && len(snap.Lines) >= params.MaxLines {
			break
		}
	}
	if lineStart < n && (params.MaxLines == 0 || len(snap.Lines) < params.MaxLines) {
		commit(n)
	}
}

func (e *Engine) emptyLine(params Parameters) Line {
	return Line{TextStart: 0, TextEnd: 0}
}

// lineFor slices the logical runs overlapping [start,end), reorders them by
// bidi level (§4.E step 5), and computes ascent/descent/baseline from the
// matched fonts' metrics.
func (e *Engine) lineFor(snap *Snapshot, logical []Run, text []rune, props []uprops.Property, start, end int, params Parameters) Line {
	type lineRun struct {
		run   Run
		level uint8
	}
	var pieces []lineRun
	for _, r := range logical {
		s, en := r.TextStart, r.TextEnd
		if en <= start || s >= end {
			continue
		}
		clip := r
		if s < start {
			clip.TextStart = start
		}
		if en > end {
			clip.TextEnd = end
		}
		if clip.TextStart != r.TextStart || clip.TextEnd != r.TextEnd {
			clipRunToText(snap, &clip, r)
		}
		pieces = append(pieces, lineRun{run: clip, level: levelAt(props, clip.TextStart)})
	}

	bidiRuns := make([]uprops.BidiRun, len(pieces))
	for i, p := range pieces {
		bidiRuns[i] = uprops.BidiRun{Start: i, End: i + 1, Level: p.level}
	}
	order := uprops.Reorder(bidiRuns)

	runStart := len(snap.Runs)
	var ascent, descent fixed.Int26_6
	for _, idx := range order {
		p := pieces[idx]
		snap.Runs = append(snap.Runs, p.run)
		m := e.metricsFor(p.run)
		if m.Ascender > ascent {
			ascent = m.Ascender
		}
		if -m.Descender > descent {
			descent = -m.Descender
		}
	}
	runEnd := len(snap.Runs)

	if ascent == 0 {
		ascent = fixed.I(10)
	}
	if descent == 0 {
		descent = fixed.I(3)
	}

	return Line{
		TextStart:          start,
		TextEnd:            end,
		RunStart:           runStart,
		RunEnd:             runEnd,
		Ascent:             ascent,
		Descent:            descent,
		Baseline:           ascent,
		LastGraphemeOffset: lastGraphemeOffset(props, start, end),
	}
}

// clipRunToText narrows clip's GlyphStart/GlyphEnd and ClusterStart/
// ClusterEnd down to the glyphs/clusters whose cluster text offset falls in
// clip's (already-narrowed) [TextStart,TextEnd). original is the unclipped
// logical run clip was derived from, whose ClusterStart/ClusterEnd index
// snap.Clusters. Without this, a line's Run keeps the whole paragraph's
// glyph range, so anything that sums GlyphStart:GlyphEnd -- line-advance,
// ellipsis cut point, marker insertion -- measures the paragraph instead of
// the line.
func clipRunToText(snap *Snapshot, clip *Run, original Run) {
	glyphStart, glyphEnd := -1, -1
	clusterStart, clusterEnd := -1, -1
	for ci := original.ClusterStart; ci < original.ClusterEnd; ci++ {
		c := snap.Clusters[ci]
		if c.TextOffset < clip.TextStart || c.TextOffset >= clip.TextEnd {
			continue
		}
		if clusterStart == -1 {
			clusterStart = ci
		}
		clusterEnd = ci + 1
		if glyphStart == -1 || c.GlyphOffset < glyphStart {
			glyphStart = c.GlyphOffset
		}
		if gend := c.GlyphOffset + c.GlyphCount; glyphEnd == -1 || gend > glyphEnd {
			glyphEnd = gend
		}
	}
	if glyphStart == -1 {
		clip.GlyphStart, clip.GlyphEnd = original.GlyphStart, original.GlyphStart
		clip.ClusterStart, clip.ClusterEnd = original.ClusterStart, original.ClusterStart
		return
	}
	clip.GlyphStart, clip.GlyphEnd = glyphStart, glyphEnd
	clip.ClusterStart, clip.ClusterEnd = clusterStart, clusterEnd
}

func (e *Engine) metricsFor(r Run) font.Metrics {
	if e.Fonts == nil {
		return font.Metrics{}
	}
	return e.Fonts.Metrics(r.Font)
}

func levelAt(props []uprops.Property, i int) uint8 {
	if i < 0 || i >= len(props) {
		return 0
	}
	return props[i].Level
}

func lastGraphemeOffset(props []uprops.Property, start, end int) int {
	last := start
	for i := start; i < end; i++ {
		if props[i].Flags&uprops.FlagGraphemeBreak != 0 {
			last = i
		}
	}
	return last
}
