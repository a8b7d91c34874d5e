package uprops

import (
	"github.com/go-text/typesetting/language"
)

// ResolveScripts splits text into maximal script runs, following
// splitByScript in the teacher's text/gotext.go: codepoints of script
// language.Common inherit the script of the run they extend rather than
// starting a new run, so punctuation and whitespace don't fragment runs
// unnecessarily.
func ResolveScripts(text []rune) []ScriptRun {
	if len(text) == 0 {
		return nil
	}
	firstNonCommon := 0
	for firstNonCommon < len(text) && language.LookupScript(text[firstNonCommon]) == language.Common {
		firstNonCommon++
	}
	current := language.Common
	if firstNonCommon < len(text) {
		current = language.LookupScript(text[firstNonCommon])
	}
	var runs []ScriptRun
	start := 0
	for i := firstNonCommon + 1; i < len(text); i++ {
		s := language.LookupScript(text[i])
		if s == language.Common || s == current {
			continue
		}
		runs = append(runs, ScriptRun{Start: start, End: i, Script: Script(current)})
		start = i
		current = s
	}
	runs = append(runs, ScriptRun{Start: start, End: len(text), Script: Script(current)})
	return runs
}
