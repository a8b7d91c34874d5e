// Package shape implements the shaper adapter (§4.D): it consumes a
// shaping library (github.com/go-text/typesetting/shaping, the same engine
// the teacher wraps in text/gotext.go's shaperImpl) to turn one shaping run
// into glyph clusters, grouping clusters and preserving logical-to-visual
// mapping the way the teacher's toGioGlyphs does.
package shape

import (
	"github.com/go-text/typesetting/di"
	gotextfont "github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/math/fixed"

	"github.com/memononen/skribidi/font"
	"github.com/memononen/skribidi/uprops"
)

// Glyph is one shaped glyph, in the codepoint-cluster representation §3
// describes for layout.glyphs[].
type Glyph struct {
	GID       font.GID
	AdvanceX  fixed.Int26_6
	OffsetX   fixed.Int26_6
	OffsetY   fixed.Int26_6
	Bounds    fixed.Rectangle26_6
	Cluster   int // codepoint offset, relative to the run, this glyph maps back to
	RuneCount int // runes represented by this glyph's cluster (0 unless cluster-final)
	GlyphCount int
}

// Run is a shaping run: a maximal substring sharing script, direction,
// language, font handle, size and features (§4.D, glossary "Shaping run").
type Run struct {
	Text      []rune // codepoints of this run only
	Script    uprops.Script
	Direction uprops.Direction
	Language  string
	Font      font.Handle
	Size      fixed.Int26_6
	Features  []FeatureValue
}

// FeatureValue is an OpenType feature tag + value pair (§3 font-feature).
type FeatureValue struct {
	Tag   uint32
	Value uint32
}

// Result is the adapter's output for one run.
type Result struct {
	Glyphs []Glyph
	// Notdef is true if any glyph in the result mapped to font.NotdefGID;
	// the layout engine then reshapes the whole run with each remaining
	// font of the fallback chain, without re-splitting it (§4.D, §4.E step 2).
	Notdef bool
}

// Adapter wraps the shaping engine. It holds no per-call state beyond the
// underlying shaping.HarfbuzzShaper's internal font cache, mirroring the
// teacher's shaperImpl which is reused across LayoutString calls
// (text/gotext.go).
type Adapter struct {
	shaper shaping.HarfbuzzShaper
}

// NewAdapter constructs a shaper adapter.
func NewAdapter() *Adapter { return &Adapter{} }

// Shape converts run into glyph clusters using provider to resolve the
// run's font handle to a shaping face.
func (a *Adapter) Shape(run Run, provider font.Provider) Result {
	if len(run.Text) == 0 {
		return Result{}
	}
	face := provider.Face(run.Font)
	input := shaping.Input{
		Text:      run.Text,
		RunStart:  0,
		RunEnd:    len(run.Text),
		Face:      face,
		Size:      run.Size,
		Script:    language.Script(run.Script),
		Language:  language.NewLanguage(run.Language),
		Direction: toDi(run.Direction),
	}
	if len(run.Features) > 0 {
		input.FontFeatures = toFontFeatures(run.Features)
	}
	out := a.shaper.Shape(input)
	return toResult(out)
}

func toFontFeatures(fv []FeatureValue) []gotextfont.Feature {
	out := make([]gotextfont.Feature, len(fv))
	for i, f := range fv {
		out[i] = gotextfont.Feature{Tag: gotextfont.Tag(f.Tag), Value: f.Value}
	}
	return out
}

func toResult(out shaping.Output) Result {
	res := Result{Glyphs: make([]Glyph, 0, len(out.Glyphs))}
	for _, g := range out.Glyphs {
		var bounds fixed.Rectangle26_6
		bounds.Min.X = g.XBearing
		bounds.Min.Y = -g.YBearing
		bounds.Max = bounds.Min.Add(fixed.Point26_6{X: g.Width, Y: -g.Height})
		res.Glyphs = append(res.Glyphs, Glyph{
			GID:        g.GlyphID,
			AdvanceX:   g.XAdvance,
			OffsetX:    g.XOffset,
			OffsetY:    g.YOffset,
			Bounds:     bounds,
			Cluster:    g.ClusterIndex,
			RuneCount:  g.RuneCount,
			GlyphCount: g.GlyphCount,
		})
		if g.GlyphID == font.NotdefGID {
			res.Notdef = true
		}
	}
	return res
}

func toDi(d uprops.Direction) di.Direction {
	if d == uprops.DirRTL {
		return di.DirectionRTL
	}
	return di.DirectionLTR
}
