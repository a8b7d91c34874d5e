// Package attr implements the typed attribute model: tagged attribute
// values, named attribute sets, and attribute collections.
//
// It is grounded on the "AttrList" model in pango/ellipsize.go (an ordered,
// back-to-front-resolved list of typed attributes) and on the styled-text
// run model in npillmayer/cords' styled.Paragraph, generalized into a single
// tagged union the way the library's attribute model replaces a family of
// ad-hoc constructors (see DESIGN.md).
package attr

import (
	"hash/maphash"
)

// Kind identifies the semantic meaning of an Attribute's payload.
type Kind uint8

const (
	KindFontFamily Kind = iota
	KindFontSize
	KindFontSizeScaling
	KindFontWeight
	KindFontStyle
	KindFontStretch
	KindFontFeature
	KindLanguage
	KindLetterSpacing
	KindWordSpacing
	KindLineHeight
	KindFill
	KindDecoration
	KindBaselineAlign
	KindBaselineShift
	KindHorizontalAlign
	KindVerticalAlign
	KindVerticalTrim
	KindTextWrap
	KindTextOverflow
	KindTextBaseDirection
	KindTabStopIncrement
	KindIndentIncrement
	KindIndentLevel
	KindIndentDecoration
	KindListMarker
	KindParagraphPadding
	KindVerticalPadding
	KindHorizontalPadding
	KindInlinePadding
	KindCaretPadding
	KindPaintColor
	KindGroupTag
)

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(?)"
}

var kindNames = [...]string{
	"FontFamily", "FontSize", "FontSizeScaling", "FontWeight", "FontStyle",
	"FontStretch", "FontFeature", "Language", "LetterSpacing", "WordSpacing",
	"LineHeight", "Fill", "Decoration", "BaselineAlign", "BaselineShift",
	"HorizontalAlign", "VerticalAlign", "VerticalTrim", "TextWrap",
	"TextOverflow", "TextBaseDirection", "TabStopIncrement", "IndentIncrement",
	"IndentLevel", "IndentDecoration", "ListMarker", "ParagraphPadding",
	"VerticalPadding", "HorizontalPadding", "InlinePadding", "CaretPadding",
	"PaintColor", "GroupTag",
}

// PaintState discriminates which layer a KindPaintColor attribute paints:
// text glyphs, the text background, the paragraph background, or an
// indent-decoration quad.
type PaintState uint8

const (
	PaintText PaintState = iota
	PaintTextBackground
	PaintParagraphBackground
	PaintIndentDecoration
)

// Value is the tagged payload carried by an Attribute. Which fields are
// meaningful depends on Kind (usually one; FontFeature uses Tag and Int, and
// line height uses Float plus Int as its relative/absolute flag); this
// mirrors the "one discriminant + a payload union" replacement for
// overloaded constructors described in the design notes.
type Value struct {
	Int     int64
	Float   float64
	Str     string
	Bytes   []byte
	Tag     uint32 // OpenType feature tag, list-marker counter id, etc.
	Paint   PaintTag
	Payload any // opaque blob for object/icon metadata and similar
}

// PaintTag carries a paint reference plus the discriminator described in §3.
type PaintTag struct {
	State PaintState
	Ref   uint64 // opaque paint/paint-reference id resolved by the host renderer
}

// Attribute is one typed, tagged attribute value.
type Attribute struct {
	Kind  Kind
	Value Value
}

// Equal reports whether two attributes carry the same kind and value. Used
// by the text buffer to decide whether adjacent spans can merge (§3).
func (a Attribute) Equal(b Attribute) bool {
	if a.Kind != b.Kind {
		return false
	}
	av, bv := a.Value, b.Value
	if av.Int != bv.Int || av.Float != bv.Float || av.Str != bv.Str || av.Tag != bv.Tag || av.Paint != bv.Paint {
		return false
	}
	if len(av.Bytes) != len(bv.Bytes) {
		return false
	}
	for i := range av.Bytes {
		if av.Bytes[i] != bv.Bytes[i] {
			return false
		}
	}
	return av.Payload == bv.Payload
}

// Constructors. One per kind, matching the design note that the tagged
// union replaces a family of overloaded constructors.

func FontFamily(name string) Attribute { return Attribute{KindFontFamily, Value{Str: name}} }
func FontSize(size float64) Attribute  { return Attribute{KindFontSize, Value{Float: size}} }

// FontSizeScaling expresses a super/sub-script scale factor (1.0 = normal).
func FontSizeScaling(scale float64) Attribute {
	return Attribute{KindFontSizeScaling, Value{Float: scale}}
}

func FontWeight(weight int) Attribute   { return Attribute{KindFontWeight, Value{Int: int64(weight)}} }
func FontStyleAttr(italic bool) Attribute {
	v := int64(0)
	if italic {
		v = 1
	}
	return Attribute{KindFontStyle, Value{Int: v}}
}
func FontStretch(pct int) Attribute { return Attribute{KindFontStretch, Value{Int: int64(pct)}} }

// FontFeature is an OpenType feature tag ("liga", "smcp", ...) and its value.
func FontFeature(tag uint32, value int64) Attribute {
	return Attribute{KindFontFeature, Value{Tag: tag, Int: value}}
}

func Language(bcp47 string) Attribute { return Attribute{KindLanguage, Value{Str: bcp47}} }

func LetterSpacing(ems float64) Attribute { return Attribute{KindLetterSpacing, Value{Float: ems}} }
func WordSpacing(ems float64) Attribute   { return Attribute{KindWordSpacing, Value{Float: ems}} }

// LineHeightRelative and LineHeightAbsolute implement the "metric-relative
// or absolute" variants of line-height from §3.
func LineHeightRelative(multiple float64) Attribute {
	return Attribute{KindLineHeight, Value{Float: multiple, Int: 0}}
}
func LineHeightAbsolute(px float64) Attribute {
	return Attribute{KindLineHeight, Value{Float: px, Int: 1}}
}

func Fill(paintRef uint64) Attribute {
	return Attribute{KindFill, Value{Paint: PaintTag{State: PaintText, Ref: paintRef}}}
}

// DecorationStyle enumerates which line is drawn.
type DecorationStyle uint8

const (
	DecorationUnderline DecorationStyle = iota
	DecorationOverline
	DecorationThrough
	DecorationBottomLine
)

// DecorationLineStyle enumerates the stroke pattern.
type DecorationLineStyle uint8

const (
	LineSolid DecorationLineStyle = iota
	LineDashed
	LineDotted
	LineWavy
)

// DecorationSpec is the payload of a KindDecoration attribute.
type DecorationSpec struct {
	Style     DecorationStyle
	Line      DecorationLineStyle
	Thickness float64 // in pixels; 0 means one pixel
	Offset    float64 // offset from baseline, in pixels
	PaintRef  uint64
}

func Decoration(spec DecorationSpec) Attribute {
	return Attribute{KindDecoration, Value{Payload: spec}}
}

// BaselineMode enumerates the baseline-align / vertical-align kinds from §3.
type BaselineMode uint8

const (
	BaselineAlphabetic BaselineMode = iota
	BaselineIdeographic
	BaselineHanging
	BaselineCentral
)

func BaselineAlign(mode BaselineMode) Attribute {
	return Attribute{KindBaselineAlign, Value{Int: int64(mode)}}
}
func BaselineShift(ems float64) Attribute { return Attribute{KindBaselineShift, Value{Float: ems}} }

type HAlign uint8

const (
	HAlignStart HAlign = iota
	HAlignCenter
	HAlignEnd
	HAlignLeft
	HAlignRight
)

func HorizontalAlign(a HAlign) Attribute {
	return Attribute{KindHorizontalAlign, Value{Int: int64(a)}}
}

type VAlign uint8

const (
	VAlignTop VAlign = iota
	VAlignCenter
	VAlignBottom
	VAlignBaseline
)

func VerticalAlign(a VAlign) Attribute { return Attribute{KindVerticalAlign, Value{Int: int64(a)}} }

func VerticalTrim(trim bool) Attribute {
	v := int64(0)
	if trim {
		v = 1
	}
	return Attribute{KindVerticalTrim, Value{Int: v}}
}

type TextWrap uint8

const (
	WrapNone TextWrap = iota
	WrapWord
	WrapWordChar
)

func TextWrapAttr(w TextWrap) Attribute { return Attribute{KindTextWrap, Value{Int: int64(w)}} }

type TextOverflow uint8

const (
	OverflowNone TextOverflow = iota
	OverflowClip
	OverflowEllipsis
	OverflowScroll
)

func TextOverflowAttr(o TextOverflow) Attribute {
	return Attribute{KindTextOverflow, Value{Int: int64(o)}}
}

type BaseDirection uint8

const (
	DirectionLTR BaseDirection = iota
	DirectionRTL
	DirectionAuto
)

func TextBaseDirection(d BaseDirection) Attribute {
	return Attribute{KindTextBaseDirection, Value{Int: int64(d)}}
}

func TabStopIncrement(px float64) Attribute {
	return Attribute{KindTabStopIncrement, Value{Float: px}}
}
func IndentIncrement(px float64) Attribute {
	return Attribute{KindIndentIncrement, Value{Float: px}}
}
func IndentLevel(level int) Attribute { return Attribute{KindIndentLevel, Value{Int: int64(level)}} }

func IndentDecoration(spec DecorationSpec) Attribute {
	return Attribute{KindIndentDecoration, Value{Payload: spec}}
}

// MarkerKind enumerates list-marker kinds.
type MarkerKind uint8

const (
	MarkerCodepoint MarkerKind = iota
	MarkerDecimalCounter
	MarkerLowerLatinCounter
	MarkerBulletCodepoint
)

type ListMarkerSpec struct {
	Kind       MarkerKind
	Codepoint  rune
	Gap, Pad   float64
}

func ListMarker(spec ListMarkerSpec) Attribute {
	return Attribute{KindListMarker, Value{Payload: spec}}
}

// PaddingBox is the four-sided payload shared by the padding attribute
// kinds (§3).
type PaddingBox struct {
	Start, End, Top, Bottom float64
}

func ParagraphPadding(box PaddingBox) Attribute {
	return Attribute{KindParagraphPadding, Value{Payload: box}}
}
func VerticalPadding(box PaddingBox) Attribute {
	return Attribute{KindVerticalPadding, Value{Payload: box}}
}
func HorizontalPadding(box PaddingBox) Attribute {
	return Attribute{KindHorizontalPadding, Value{Payload: box}}
}
func InlinePadding(box PaddingBox) Attribute {
	return Attribute{KindInlinePadding, Value{Payload: box}}
}
func CaretPadding(box PaddingBox) Attribute {
	return Attribute{KindCaretPadding, Value{Payload: box}}
}

func PaintColor(state PaintState, ref uint64) Attribute {
	return Attribute{KindPaintColor, Value{Paint: PaintTag{State: state, Ref: ref}}}
}

func GroupTag(tag string) Attribute { return Attribute{KindGroupTag, Value{Str: tag}} }

// hashSeed is process-global, matching the teacher's text.pathCache use of a
// single lazily-initialized maphash.Seed shared by every hash computation.
var hashSeed = maphash.MakeSeed()
