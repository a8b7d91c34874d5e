package layout

import (
	"testing"

	gofont "github.com/go-text/typesetting/font"
	"golang.org/x/image/math/fixed"

	"github.com/memononen/skribidi/attr"
	"github.com/memononen/skribidi/font"
	"github.com/memononen/skribidi/uprops"
)

// fakeProvider is a minimal font.Provider stub for tests that only need
// per-handle metrics, not real matching or shaping.
type fakeProvider struct {
	metrics map[font.Handle]font.Metrics
}

func (f fakeProvider) Match(family string, weight, style, stretch attr.Attribute, script uprops.Script, emoji bool) (font.Handle, bool) {
	return 0, false
}
func (f fakeProvider) Metrics(h font.Handle) font.Metrics { return f.metrics[h] }
func (f fakeProvider) GlyphBounds(h font.Handle, gid font.GID, size fixed.Int26_6) fixed.Rectangle26_6 {
	return fixed.Rectangle26_6{}
}
func (f fakeProvider) NominalGlyph(h font.Handle, cp rune) (font.GID, bool) { return 0, false }
func (f fakeProvider) Face(h font.Handle) gofont.Face                      { return nil }

func TestSnapshotAdvanceOf(t *testing.T) {
	snap := &Snapshot{Glyphs: []Glyph{
		{AdvanceX: fixed.I(5)},
		{AdvanceX: fixed.I(7)},
		{AdvanceX: fixed.I(3)},
	}}
	if got := snap.AdvanceOf(0, 3); got != fixed.I(15) {
		t.Fatalf("expected total advance 15, got %v", got)
	}
	if got := snap.AdvanceOf(1, 2); got != fixed.I(7) {
		t.Fatalf("expected advance 7 for middle glyph, got %v", got)
	}
}

func TestMarkerCodepointDecimalCounter(t *testing.T) {
	spec := attr.ListMarkerSpec{Kind: attr.MarkerDecimalCounter}
	if r := markerCodepoint(spec, 0); r != '1' {
		t.Fatalf("expected '1' for ordinal 0, got %q", r)
	}
}

func TestMarkerCodepointLowerLatinWrapsAtZ(t *testing.T) {
	spec := attr.ListMarkerSpec{Kind: attr.MarkerLowerLatinCounter}
	if r := markerCodepoint(spec, 26); r != 'a' {
		t.Fatalf("expected wraparound to 'a' at ordinal 26, got %q", r)
	}
}

func TestMarkerCodepointLiteral(t *testing.T) {
	spec := attr.ListMarkerSpec{Kind: attr.MarkerBulletCodepoint, Codepoint: '•'}
	if r := markerCodepoint(spec, 3); r != '•' {
		t.Fatalf("expected the literal bullet codepoint regardless of ordinal, got %q", r)
	}
}

func TestAlignLinesCentersShortLine(t *testing.T) {
	snap := &Snapshot{
		Width: 100,
		Lines: []Line{{Bounds: fixed.Rectangle26_6{Max: fixed.Point26_6{X: fixed.I(40)}}}},
	}
	alignLines(snap, Parameters{HAlign: attr.HAlignCenter})
	line := snap.Lines[0]
	width := line.Bounds.Max.X - line.Bounds.Min.X
	if width != fixed.I(40) {
		t.Fatalf("centering must not change line width, got %v", width)
	}
	if line.Bounds.Min.X != fixed.I(30) {
		t.Fatalf("expected the 40-wide line centered in a 100-wide box to start at 30, got %v", line.Bounds.Min.X)
	}
}

func TestAlignLinesStartDoesNotShift(t *testing.T) {
	snap := &Snapshot{
		Width: 100,
		Lines: []Line{{Bounds: fixed.Rectangle26_6{Max: fixed.Point26_6{X: fixed.I(40)}}}},
	}
	alignLines(snap, Parameters{HAlign: attr.HAlignStart})
	if snap.Lines[0].Bounds.Min.X != 0 {
		t.Fatalf("expected start alignment to leave the line at x=0, got %v", snap.Lines[0].Bounds.Min.X)
	}
}

func TestClipRunToTextNarrowsGlyphAndClusterRange(t *testing.T) {
	snap := &Snapshot{
		Glyphs: []Glyph{{AdvanceX: fixed.I(1)}, {AdvanceX: fixed.I(1)}, {AdvanceX: fixed.I(1)}, {AdvanceX: fixed.I(1)}},
		Clusters: []Cluster{
			{TextOffset: 0, TextCount: 1, GlyphOffset: 0, GlyphCount: 1},
			{TextOffset: 1, TextCount: 1, GlyphOffset: 1, GlyphCount: 1},
			{TextOffset: 2, TextCount: 1, GlyphOffset: 2, GlyphCount: 1},
			{TextOffset: 3, TextCount: 1, GlyphOffset: 3, GlyphCount: 1},
		},
	}
	original := Run{TextStart: 0, TextEnd: 4, GlyphStart: 0, GlyphEnd: 4, ClusterStart: 0, ClusterEnd: 4}
	clip := original
	clip.TextStart, clip.TextEnd = 2, 4
	clipRunToText(snap, &clip, original)
	if clip.GlyphStart != 2 || clip.GlyphEnd != 4 {
		t.Fatalf("expected glyph range [2,4), got [%d,%d)", clip.GlyphStart, clip.GlyphEnd)
	}
	if clip.ClusterStart != 2 || clip.ClusterEnd != 4 {
		t.Fatalf("expected cluster range [2,4), got [%d,%d)", clip.ClusterStart, clip.ClusterEnd)
	}
	if original.GlyphStart != 0 || original.GlyphEnd != 4 {
		t.Fatalf("clipRunToText must not mutate the original run")
	}
}

func TestLineForClipsSecondLineToItsOwnGlyphs(t *testing.T) {
	// Four single-glyph clusters, one uniform logical run spanning all of
	// them, wrapped into two two-codepoint lines. Before the clipping fix,
	// both lines' Run kept GlyphStart=0, GlyphEnd=4 (the whole paragraph).
	e := &Engine{Fonts: fakeProvider{metrics: map[font.Handle]font.Metrics{
		0: {Ascender: fixed.I(10), Descender: -fixed.I(2)},
	}}}
	snap := &Snapshot{
		Glyphs: []Glyph{
			{AdvanceX: fixed.I(1), Cluster: 0},
			{AdvanceX: fixed.I(1), Cluster: 1},
			{AdvanceX: fixed.I(1), Cluster: 2},
			{AdvanceX: fixed.I(1), Cluster: 3},
		},
	}
	logical := []Run{{TextStart: 0, TextEnd: 4, GlyphStart: 0, GlyphEnd: 4}}
	e.buildClusters(snap, logical)
	props := make([]uprops.Property, 4)
	line0 := e.lineFor(snap, logical, nil, props, 0, 2, Parameters{})
	line1 := e.lineFor(snap, logical, nil, props, 2, 4, Parameters{})

	r0 := snap.Runs[line0.RunStart]
	if r0.GlyphStart != 0 || r0.GlyphEnd != 2 {
		t.Fatalf("expected first line's run to cover glyphs [0,2), got [%d,%d)", r0.GlyphStart, r0.GlyphEnd)
	}
	r1 := snap.Runs[line1.RunStart]
	if r1.GlyphStart != 2 || r1.GlyphEnd != 4 {
		t.Fatalf("expected second line's run to cover glyphs [2,4), got [%d,%d)", r1.GlyphStart, r1.GlyphEnd)
	}
	if got := lineAdvance(snap, &line1); got != fixed.I(2) {
		t.Fatalf("expected second line's advance to be its own 2 glyphs (2px), got %v", got)
	}
}

func TestLineForTracksAscentAndDescentIndependently(t *testing.T) {
	// Font 0 sets the tallest ascender but a shallow descender; font 1 sets
	// a shallow ascender but the deepest descender. Both must be picked up
	// even though neither run alone maximizes both.
	e := &Engine{Fonts: fakeProvider{metrics: map[font.Handle]font.Metrics{
		0: {Ascender: fixed.I(20), Descender: -fixed.I(1)},
		1: {Ascender: fixed.I(2), Descender: -fixed.I(15)},
	}}}
	snap := &Snapshot{Glyphs: []Glyph{{AdvanceX: fixed.I(1), Cluster: 0}, {AdvanceX: fixed.I(1), Cluster: 1}}}
	logical := []Run{
		{TextStart: 0, TextEnd: 1, GlyphStart: 0, GlyphEnd: 1, Font: 0},
		{TextStart: 1, TextEnd: 2, GlyphStart: 1, GlyphEnd: 2, Font: 1},
	}
	e.buildClusters(snap, logical)
	props := make([]uprops.Property, 2)
	line := e.lineFor(snap, logical, nil, props, 0, 2, Parameters{})
	if line.Ascent != fixed.I(20) {
		t.Fatalf("expected ascent 20 from font 0, got %v", line.Ascent)
	}
	if line.Descent != fixed.I(15) {
		t.Fatalf("expected descent 15 from font 1, got %v", line.Descent)
	}
}
