package uprops

import (
	"strings"

	"github.com/npillmayer/uax/grapheme"
	"github.com/npillmayer/uax/segment"
	"github.com/npillmayer/uax/uax14"
	"github.com/npillmayer/uax/words"
)

// markBreaks runs the grapheme (UAX #29) and word (UAX #29 word rules)
// breakers from npillmayer/uax over text and ORs FlagGraphemeBreak /
// FlagWordBreak onto flags at the codepoint preceding each reported
// boundary. The segment.Segmenter combinator and per-algorithm
// NewBreaker() constructors are the same composition the npillmayer
// ecosystem (consumed transitively by the teacher's go-text/typesetting
// stack) uses to drive multiple UAX break algorithms over one input.
func markBreaks(text []rune, flags []Flags) {
	markWith(text, flags, grapheme.NewBreaker(0), FlagGraphemeBreak)
	markWith(text, flags, words.NewBreaker(0), FlagWordBreak)
	markLineBreaks(text, flags)
}

func markWith(text []rune, flags []Flags, breaker segment.UnicodeBreaker, flag Flags) {
	seg := segment.NewSegmenter(breaker)
	seg.Init(strings.NewReader(string(text)))
	pos := 0
	for seg.Next() {
		seg.Penalties()
		piece := seg.Bytes()
		n := len([]rune(string(piece)))
		pos += n
		if pos-1 >= 0 && pos-1 < len(flags) {
			flags[pos-1] |= flag
		}
	}
}

// mustBreakPenalty is the threshold below which a uax14 break opportunity is
// forced rather than optional, following the same Knuth-Plass-derived
// penalty convention (very negative = forced, matching TeX's -infinity
// glue) that npillmayer's uax breaker family uses throughout.
const mustBreakPenalty = -1000

// markLineBreaks applies UAX #14 break-opportunity flags using
// npillmayer/uax/uax14's line breaker, the same segment.UnicodeBreaker
// combinator markWith already drives for grapheme/word breaking (§4.E step
// 4: "Mandatory breaks are honored regardless of mode"). This replaces an
// earlier approximation (word-break boundaries plus a hardcoded ASCII
// break-character list); see DESIGN.md's Open Question decision 5.
func markLineBreaks(text []rune, flags []Flags) {
	seg := segment.NewSegmenter(uax14.NewBreaker(0))
	seg.Init(strings.NewReader(string(text)))
	pos := 0
	for seg.Next() {
		penalties := seg.Penalties()
		piece := seg.Bytes()
		n := len([]rune(string(piece)))
		pos += n
		i := pos - 1
		if i < 0 || i >= len(flags) {
			continue
		}
		must := false
		for _, p := range penalties {
			if p <= mustBreakPenalty {
				must = true
				break
			}
		}
		flags[i] |= FlagLineBreakAllow
		if must {
			flags[i] |= FlagLineBreakMust
		}
	}
}
