package uprops

// Scan populates the per-codepoint text_properties[] array for a paragraph
// (§3, §4.C step "Scan"): script id via script-run resolution, embedding
// level via UAX #9, and grapheme/word/line-break/emoji flags via the
// standard segmentation algorithms. Scan is pure: identical text and base
// always yield identical output, with no package-level state retained
// between calls.
func Scan(text []rune, base BaseDirection) []Property {
	props := make([]Property, len(text))
	if len(text) == 0 {
		return props
	}
	tracer().Debugf("scanning %d codepoints, base direction %v", len(text), base)

	for _, run := range ResolveScripts(text) {
		for i := run.Start; i < run.End; i++ {
			props[i].Script = run.Script
		}
	}

	for _, run := range ResolveBidi(text, base) {
		for i := run.Start; i < run.End && i < len(props); i++ {
			props[i].Level = run.Level
		}
	}

	flags := make([]Flags, len(text))
	markBreaks(text, flags)
	for i, r := range text {
		if isEmoji(r) {
			flags[i] |= FlagEmoji
		}
		props[i].Flags = flags[i]
	}
	return props
}

// ScriptRunsOf groups a Property slice back into maximal same-script runs.
func ScriptRunsOf(props []Property) []ScriptRun {
	if len(props) == 0 {
		return nil
	}
	var runs []ScriptRun
	start := 0
	current := props[0].Script
	for i := 1; i < len(props); i++ {
		if props[i].Script != current {
			runs = append(runs, ScriptRun{Start: start, End: i, Script: current})
			start = i
			current = props[i].Script
		}
	}
	runs = append(runs, ScriptRun{Start: start, End: len(props), Script: current})
	return runs
}

// BidiRunsOf groups a Property slice back into maximal same-level runs.
func BidiRunsOf(props []Property) []BidiRun {
	if len(props) == 0 {
		return nil
	}
	var runs []BidiRun
	start := 0
	current := props[0].Level
	for i := 1; i < len(props); i++ {
		if props[i].Level != current {
			dir := DirLTR
			if current%2 == 1 {
				dir = DirRTL
			}
			runs = append(runs, BidiRun{Start: start, End: i, Level: current, Direction: dir})
			start = i
			current = props[i].Level
		}
	}
	dir := DirLTR
	if current%2 == 1 {
		dir = DirRTL
	}
	runs = append(runs, BidiRun{Start: start, End: len(props), Level: current, Direction: dir})
	return runs
}
