package shape

import (
	"sort"

	"github.com/memononen/skribidi/uprops"
)

// SplitRuns partitions text into maximal runs sharing script and bidi
// level, then further splits at every offset in extra (attribute-span
// boundaries the caller supplies), the way §4.E step 1 ("Partition")
// describes. Offsets are absolute into text; the returned runs are sorted
// and contiguous, covering [0, len(text)).
func SplitRuns(text []rune, props []uprops.Property, extra []int) []Boundary {
	if len(text) == 0 {
		return nil
	}
	cuts := map[int]bool{0: true, len(text): true}
	for i := 1; i < len(props); i++ {
		if props[i].Script != props[i-1].Script || props[i].Level != props[i-1].Level {
			cuts[i] = true
		}
	}
	for _, c := range extra {
		if c >= 0 && c <= len(text) {
			cuts[c] = true
		}
	}
	offsets := make([]int, 0, len(cuts))
	for c := range cuts {
		offsets = append(offsets, c)
	}
	sort.Ints(offsets)

	runs := make([]Boundary, 0, len(offsets)-1)
	for i := 0; i+1 < len(offsets); i++ {
		start, end := offsets[i], offsets[i+1]
		runs = append(runs, Boundary{
			Start:     start,
			End:       end,
			Script:    props[start].Script,
			Direction: levelDirection(props[start].Level),
			Level:     props[start].Level,
		})
	}
	return runs
}

// Boundary describes one partitioned run prior to shaping (§4.D/§4.E).
type Boundary struct {
	Start, End int
	Script     uprops.Script
	Direction  uprops.Direction
	Level      uint8
}

func levelDirection(level uint8) uprops.Direction {
	if level%2 == 1 {
		return uprops.DirRTL
	}
	return uprops.DirLTR
}
