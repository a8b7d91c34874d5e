// Package uprops implements the Unicode property engine (§4.C): per
// codepoint, it resolves script, bidi embedding level, and
// grapheme/word/line break flags. The engine is pure -- same input, same
// output, no global state -- matching the teacher's text.shaperImpl, which
// recomputes script/bidi/wrap state fresh for every paragraph rather than
// caching it externally (text/gotext.go splitByScript/splitBidi).
package uprops

// Script identifies a Unicode script, following the teacher's use of
// github.com/go-text/typesetting/language.Script as the script identifier
// type threaded through shaping inputs (text/gotext.go toInput).
type Script = uint32

// Flags record the per-codepoint grapheme/word/line-break/emoji state that
// §3's text_properties[] array carries alongside each codepoint.
type Flags uint8

const (
	// FlagGraphemeBreak marks a codepoint after which a grapheme cluster
	// boundary falls (UAX #29).
	FlagGraphemeBreak Flags = 1 << iota
	// FlagWordBreak marks a codepoint after which a word boundary falls
	// (UAX #29 word rules).
	FlagWordBreak
	// FlagLineBreakAllow marks a codepoint after which a line break is
	// permitted but not required (UAX #14 break-opportunity classes).
	FlagLineBreakAllow
	// FlagLineBreakMust marks a codepoint after which a line break is
	// mandatory (UAX #14 BK/CR/LF/NL classes).
	FlagLineBreakMust
	// FlagEmoji marks a codepoint that participates in emoji presentation;
	// it changes font fallback selection (§4.C, §4.E).
	FlagEmoji
)

// Property is one entry of the text_properties[] array from §3.
type Property struct {
	Script Script
	Level  uint8 // bidi embedding level, UAX #9
	Flags  Flags
}

// Direction is the resolved run direction, mirroring the teacher's
// github.com/go-text/typesetting/di.Direction enum used throughout the
// shaping pipeline.
type Direction uint8

const (
	DirLTR Direction = iota
	DirRTL
)

// BaseDirection parameterizes bidi resolution with the paragraph's
// requested base direction (§4.C); Auto resolves per UAX #9 P2/P3 from the
// first strong directional codepoint.
type BaseDirection uint8

const (
	BaseLTR BaseDirection = iota
	BaseRTL
	BaseAuto
)

// ScriptRun is a maximal run of codepoints sharing one resolved script,
// mirroring splitByScript in the teacher's text/gotext.go.
type ScriptRun struct {
	Start, End int
	Script     Script
}

// BidiRun is a maximal run of codepoints at one resolved embedding level,
// mirroring splitBidi in text/gotext.go.
type BidiRun struct {
	Start, End int
	Level      uint8
	Direction  Direction
}
