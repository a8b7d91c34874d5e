package layout

import (
	"golang.org/x/image/math/fixed"

	"github.com/memononen/skribidi/attr"
	"github.com/memononen/skribidi/uprops"
)

// WrapMode selects the line-breaking policy (§4.E step 4).
type WrapMode uint8

const (
	WrapNone WrapMode = iota
	WrapWord
	WrapWordChar
)

// Overflow selects the overflow policy (§4.E step 8, §3 attribute
// text-overflow).
type Overflow uint8

const (
	OverflowNone Overflow = iota
	OverflowClip
	OverflowEllipsis
	OverflowScroll
)

// Parameters are the layout-affecting inputs outside of the text+attributes
// themselves, mirroring the teacher's text.Parameters (text/shaper.go) but
// generalized to the attribute-span model: font size and paint come from
// attributes, not from Parameters, and BaseDirection applies only when the
// paragraph attribute set has no base-direction attribute.
type Parameters struct {
	MinWidth, MaxWidth int
	MaxHeight          int // 0 means unbounded
	MaxLines           int // 0 means unbounded
	Wrap               WrapMode
	Overflow           Overflow
	EllipsisRune       rune // defaults to U+2026 HORIZONTAL ELLIPSIS
	BaseDirection      uprops.BaseDirection
	HAlign             attr.HAlign
	TabStopIncrement   fixed.Int26_6
	IndentIncrement    fixed.Int26_6
	IndentLevel        int
}

func (p Parameters) ellipsis() rune {
	if p.EllipsisRune != 0 {
		return p.EllipsisRune
	}
	return '…'
}

// resolveBaseDirection resolves the paragraph's base direction from the
// paragraph-level attribute set, falling back to the given Parameters value
// when the set has no base-direction attribute (§3 "paragraph-level and
// inline-level sets compose").
func resolveBaseDirection(set *attr.Set, fallback uprops.BaseDirection) uprops.BaseDirection {
	if set == nil {
		return fallback
	}
	if a, ok := set.Resolve(attr.KindTextBaseDirection); ok {
		switch attr.BaseDirection(a.Value.Int) {
		case attr.DirectionLTR:
			return uprops.BaseLTR
		case attr.DirectionRTL:
			return uprops.BaseRTL
		default:
			return uprops.BaseAuto
		}
	}
	return fallback
}
