package font

import "github.com/memononen/skribidi/uprops"

// Chain is an ordered font-fallback list: the preferred family first, then
// script- and emoji-specific fallback families, matching §4.E step 2 ("the
// run is re-split and the substring retried against the fallback chain,
// including an emoji-family fallback when the emoji flag is set").
type Chain struct {
	Preferred string
	ByScript  map[uprops.Script]string
	Emoji     string
}

// Candidates returns the ordered list of family names to try for a run with
// the given script and emoji flag: preferred, then the script-specific
// fallback (if any), then the emoji family (if the run is emoji and an
// emoji family is configured).
func (c Chain) Candidates(script uprops.Script, emoji bool) []string {
	var out []string
	if c.Preferred != "" {
		out = append(out, c.Preferred)
	}
	if fam, ok := c.ByScript[script]; ok {
		out = append(out, fam)
	}
	if emoji && c.Emoji != "" {
		out = append(out, c.Emoji)
	}
	return out
}
