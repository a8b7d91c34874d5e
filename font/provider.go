// Package font defines the opaque font-provider contract the core consumes
// (§6): the library never parses font files itself, only matches, measures,
// and shapes against faces handed to it by the host.
package font

import (
	gofont "github.com/go-text/typesetting/font"
	"golang.org/x/image/math/fixed"

	"github.com/memononen/skribidi/attr"
	"github.com/memononen/skribidi/uprops"
)

// Handle is an opaque, comparable reference to a matched font (§3: "Fonts
// are owned by a font collection and referenced by opaque handle; a layout
// snapshot holds handles, not font pointers").
type Handle uint32

// GID is a glyph index within a face, reusing the teacher's and
// go-text/typesetting's representation directly.
type GID = gofont.GID

// NotdefGID is the conventional "glyph not found" index every OpenType face
// reserves at position 0.
const NotdefGID GID = 0

// Metrics are the face-wide measurements the layout engine needs for line
// placement and baseline alignment (§6).
type Metrics struct {
	Ascender, Descender   fixed.Int26_6
	CapHeight, XHeight    fixed.Int26_6
	UnitsPerEm            int
	Alphabetic             fixed.Int26_6
	Ideographic            fixed.Int26_6
	Hanging                fixed.Int26_6
	Central                fixed.Int26_6
}

// Provider is the capability set the library depends on to match, measure,
// and shape text against host-owned fonts (§6, §9 "Dynamic dispatch over
// font/icon providers").
type Provider interface {
	// Match resolves a family/weight/style/stretch/script request (with an
	// emoji hint) to a concrete font handle, or ok=false if nothing in the
	// collection can serve the request (§7 FontMatchFailed).
	Match(family string, weight attr.Attribute, style attr.Attribute, stretch attr.Attribute, script uprops.Script, emoji bool) (Handle, bool)
	Metrics(h Handle) Metrics
	GlyphBounds(h Handle, gid GID, size fixed.Int26_6) fixed.Rectangle26_6
	NominalGlyph(h Handle, cp rune) (GID, bool)
	// Face returns the opaque go-text/typesetting face backing h, for the
	// shape.Adapter to hand to the shaping library.
	Face(h Handle) gofont.Face
}
