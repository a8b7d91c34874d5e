package layout

import (
	"golang.org/x/image/math/fixed"

	"github.com/memononen/skribidi/attr"
	"github.com/memononen/skribidi/buffer"
	"github.com/memononen/skribidi/font"
	"github.com/memononen/skribidi/shape"
	"github.com/memononen/skribidi/uprops"
)

// Engine runs the layout pipeline (§4.E) against a paragraph buffer. It
// holds no per-paragraph state; callers keep one Engine per font provider
// and reuse it across paragraphs, mirroring the teacher's single shared
// shaperImpl (text/gotext.go).
type Engine struct {
	Fonts    font.Provider
	Shaper   *shape.Adapter
	Fallback font.Chain
}

// NewEngine constructs a layout engine bound to a font provider.
func NewEngine(fonts font.Provider, fallback font.Chain) *Engine {
	return &Engine{Fonts: fonts, Shaper: shape.NewAdapter(), Fallback: fallback}
}

// Build runs the full pipeline (steps 1-10 of §4.E) over one paragraph and
// produces its immutable layout snapshot.
func (e *Engine) Build(buf *buffer.Buffer, paragraphAttrs *attr.Set, params Parameters) *Snapshot {
	if paragraphAttrs == nil {
		paragraphAttrs = attr.NewSet()
	}
	text := buf.Runes()
	base := resolveBaseDirection(paragraphAttrs, params.BaseDirection)
	tracer().Debugf("building layout for %d codepoints, max width %d", len(text), params.MaxWidth)

	// Step 1: Scan.
	props := uprops.Scan(text, base)

	// Step 2+3: Partition into shaping runs at script/bidi-level/attribute
	// boundaries, then shape each (with .notdef fallback retry).
	spanBoundaries := attributeBoundaries(buf)
	boundaries := shape.SplitRuns(text, props, spanBoundaries)

	snap := &Snapshot{TextProperties: props}
	var runs []preparedRun
	for _, b := range boundaries {
		runs = append(runs, e.shapeBoundary(buf, paragraphAttrs, text, props, b)...)
	}

	logical := e.assembleRuns(snap, runs)
	e.buildClusters(snap, logical)

	indent := fixed.Int26_6(0)
	if params.IndentLevel > 0 {
		indent = fixed.Int26_6(params.IndentLevel) * params.IndentIncrement
	}
	e.computeLines(snap, logical, text, props, params, fixed.I(params.MaxWidth), indent)

	// Step 7: Decorations.
	e.emitDecorations(snap, buf, paragraphAttrs)
	// Step 8: Overflow.
	e.applyOverflow(snap, text, params)
	// Step 9: List markers / indent decorations.
	e.emitListMarkers(snap, paragraphAttrs, params)

	e.computeBounds(snap, params)
	return snap
}

// attributeBoundaries returns every span start/end offset so Partition never
// merges two spans with different font-affecting attributes into one run.
func attributeBoundaries(buf *buffer.Buffer) []int {
	var cuts []int
	buf.IterateAttributeRuns(func(r buffer.AttributeRun) {
		cuts = append(cuts, r.Start, r.End)
	})
	return cuts
}

// preparedRun is a shaped run still in logical order, prior to line
// breaking.
type preparedRun struct {
	boundary shape.Boundary
	font     font.Handle
	size     fixed.Int26_6
	attrs    *attr.Set
	glyphs   []shape.Glyph
}

// shapeBoundary shapes one partitioned boundary, matching a font via the
// fallback chain and retrying on .notdef (§4.E step 2).
func (e *Engine) shapeBoundary(buf *buffer.Buffer, paragraphAttrs *attr.Set, text []rune, props []uprops.Property, b shape.Boundary) []preparedRun {
	set := effectiveSet(buf, paragraphAttrs, b.Start)
	family := resolveString(set, attr.KindFontFamily, "")
	weight := resolveAttr(set, attr.KindFontWeight, attr.FontWeight(400))
	style := resolveAttr(set, attr.KindFontStyle, attr.FontStyleAttr(false))
	stretch := resolveAttr(set, attr.KindFontStretch, attr.FontStretch(100))
	sizeF := resolveFloat(set, attr.KindFontSize, 16)
	size := fixed.I(int(sizeF))

	emoji := props[b.Start].Flags&uprops.FlagEmoji != 0
	chain := append([]string{family}, e.Fallback.Candidates(b.Script, emoji)...)

	var handle font.Handle
	matched := false
	for _, fam := range chain {
		if h, ok := e.Fonts.Match(fam, weight, style, stretch, b.Script, emoji); ok {
			handle = h
			matched = true
			break
		}
	}

	var res shape.Result
	if !matched {
		// §7 FontMatchFailed: nothing in the fallback chain covers this
		// boundary. The boundary still gets a run -- one zero-width
		// .notdef glyph per codepoint -- so caret/selection offset
		// accounting never hits a gap in the text with no backing Run.
		res = shape.Result{Glyphs: notdefGlyphs(b), Notdef: true}
	} else {
		run := shape.Run{
			Text:      text[b.Start:b.End],
			Script:    b.Script,
			Direction: b.Direction,
			Language:  resolveString(set, attr.KindLanguage, ""),
			Font:      handle,
			Size:      size,
		}
		res = e.Shaper.Shape(run, e.Fonts)
		if res.Notdef && len(chain) > 1 {
			// Retry against the remainder of the fallback chain (§4.E step 2).
			for _, fam := range chain[1:] {
				if h, ok := e.Fonts.Match(fam, weight, style, stretch, b.Script, emoji); ok {
					run.Font = h
					alt := e.Shaper.Shape(run, e.Fonts)
					if !alt.Notdef {
						handle, res = h, alt
						break
					}
				}
			}
		}
	}
	for i := range res.Glyphs {
		res.Glyphs[i].Cluster += b.Start
	}
	return []preparedRun{{boundary: b, font: handle, size: size, attrs: set, glyphs: res.Glyphs}}
}

// notdefGlyphs synthesizes one run-relative, zero-width .notdef glyph per
// codepoint in b, used when no font in the fallback chain matches at all
// (§7 FontMatchFailed).
func notdefGlyphs(b shape.Boundary) []shape.Glyph {
	glyphs := make([]shape.Glyph, 0, b.End-b.Start)
	for i := b.Start; i < b.End; i++ {
		glyphs = append(glyphs, shape.Glyph{GID: font.NotdefGID, Cluster: i - b.Start, RuneCount: 1})
	}
	return glyphs
}

func effectiveSet(buf *buffer.Buffer, paragraphAttrs *attr.Set, at int) *attr.Set {
	attrs := buf.Spans()
	var inline []attr.Attribute
	for _, s := range attrs {
		if at >= s.Start && at < s.End {
			inline = append(inline, s.Attr)
		}
	}
	return attr.Compose(paragraphAttrs, attr.NewSet(inline...))
}

func resolveAttr(set *attr.Set, k attr.Kind, fallback attr.Attribute) attr.Attribute {
	if set == nil {
		return fallback
	}
	if a, ok := set.Resolve(k); ok {
		return a
	}
	return fallback
}

func resolveString(set *attr.Set, k attr.Kind, fallback string) string {
	if set == nil {
		return fallback
	}
	if a, ok := set.Resolve(k); ok {
		return a.Value.Str
	}
	return fallback
}

func resolveFloat(set *attr.Set, k attr.Kind, fallback float64) float64 {
	if set == nil {
		return fallback
	}
	if a, ok := set.Resolve(k); ok {
		return a.Value.Float
	}
	return fallback
}
