// Package layout implements the layout engine (§4.E): it turns a paragraph's
// codepoints and attribute spans into an immutable layout snapshot of
// glyphs, clusters, runs, lines, and decorations, grounded on the teacher's
// text/gotext.go pipeline (splitByScript -> shapeText -> WrapParagraph ->
// toLine) and text/shaper.go's Glyph/Line data model, generalized from gio's
// fixed Font/Alignment type to the attribute-driven model of §3/§4.A.
package layout

import (
	"golang.org/x/image/math/fixed"

	"github.com/memononen/skribidi/attr"
	"github.com/memononen/skribidi/font"
	"github.com/memononen/skribidi/uprops"
)

// RunType distinguishes a shaped text run from an embedded object/icon run
// (§3 "Content run").
type RunType uint8

const (
	RunText RunType = iota
	RunObject
	RunIcon
)

// Glyph is one positioned glyph in the snapshot's flat glyphs[] array (§3).
type Glyph struct {
	GID      font.GID
	AdvanceX fixed.Int26_6
	OffsetX  fixed.Int26_6
	OffsetY  fixed.Int26_6
	Cluster  int // codepoint offset, into the paragraph, of this glyph's cluster
}

// Cluster maps a contiguous codepoint range to a contiguous glyph range, the
// grapheme-level mapping §3 describes.
type Cluster struct {
	TextOffset  int
	TextCount   int
	GlyphOffset int
	GlyphCount  int
}

// Run is a maximal run of glyphs/clusters sharing direction, script, font
// and size (§3 runs[]).
type Run struct {
	Type         RunType
	Direction    uprops.Direction
	Script       uprops.Script
	Font         font.Handle
	Size         fixed.Int26_6
	AttrsRef     *attr.Set
	Bounds       fixed.Rectangle26_6
	Padding      attr.PaddingBox
	GlyphStart   int
	GlyphEnd     int
	ClusterStart int
	ClusterEnd   int
	TextStart    int
	TextEnd      int
	// Object carries the {w,h,data-id} payload for RunObject/RunIcon runs.
	Object ObjectSpec
}

// ObjectSpec is the geometry of an embedded object or icon content run.
type ObjectSpec struct {
	Width, Height fixed.Int26_6
	DataID        uint64
	IconName      string
}

// Line is one laid-out visual line (§3 lines[]).
type Line struct {
	TextStart, TextEnd int
	RunStart, RunEnd   int
	Baseline           fixed.Int26_6
	Ascent, Descent    fixed.Int26_6
	Bounds             fixed.Rectangle26_6
	CullingBounds      fixed.Rectangle26_6
	LastGraphemeOffset int
	Truncated          bool
}

// Decoration is one emitted decoration record (§3 decorations[]): Position
// is which line is drawn (underline/overline/through/bottom-line), Style is
// its stroke pattern (solid/dashed/dotted/wavy).
type Decoration struct {
	Position      attr.DecorationStyle
	Style         attr.DecorationLineStyle
	Y             fixed.Int26_6
	X             fixed.Int26_6
	Length        fixed.Int26_6
	PatternOffset fixed.Int26_6
	Thickness     fixed.Int26_6
	Paint         attr.PaintTag
}

// Snapshot is the immutable layout result of one Build call (§3 "Layout").
type Snapshot struct {
	Glyphs         []Glyph
	Clusters       []Cluster
	Runs           []Run
	Lines          []Line
	Decorations    []Decoration
	TextProperties []uprops.Property
	Bounds         fixed.Rectangle26_6
	// Width is the resolved alignment width used for horizontal alignment
	// (the widest of MinWidth and the widest line), mirroring the teacher's
	// alignWidth (text/gotext.go).
	Width int
}

// AdvanceOf sums the advances of glyphs [start,end); line widths,
// decoration lengths and caret stops are measured with it.
func (s *Snapshot) AdvanceOf(start, end int) fixed.Int26_6 {
	var sum fixed.Int26_6
	for _, g := range s.Glyphs[start:end] {
		sum += g.AdvanceX
	}
	return sum
}
