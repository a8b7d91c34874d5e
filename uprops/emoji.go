package uprops

// isEmoji is a flag-based emoji detector (§4.C: "Emoji detection is
// flag-based; it changes font fallback selection"). It recognizes the
// common emoji blocks without attempting full Unicode emoji-sequence
// grouping (variation selectors, ZWJ sequences), since the layout engine
// only needs the flag to steer font-fallback, not to reshape clusters.
func isEmoji(r rune) bool {
	switch {
	case r >= 0x1F300 && r <= 0x1FAFF:
		return true
	case r >= 0x2600 && r <= 0x27BF:
		return true
	case r >= 0x1F1E6 && r <= 0x1F1FF: // regional indicators (flags)
		return true
	case r == 0x203C || r == 0x2049:
		return true
	case r >= 0x2B00 && r <= 0x2BFF:
		return true
	default:
		return false
	}
}
