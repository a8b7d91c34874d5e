package shape

import (
	"testing"

	"github.com/memononen/skribidi/uprops"
)

func TestSplitRunsSingleRunForUniformText(t *testing.T) {
	text := []rune("hello")
	props := uprops.Scan(text, uprops.BaseLTR)
	runs := SplitRuns(text, props, nil)
	if len(runs) != 1 {
		t.Fatalf("expected a single run, got %d: %+v", len(runs), runs)
	}
	if runs[0].Start != 0 || runs[0].End != len(text) {
		t.Fatalf("expected run to cover the whole text, got %+v", runs[0])
	}
}

func TestSplitRunsCutsAtExtraBoundary(t *testing.T) {
	text := []rune("hello")
	props := uprops.Scan(text, uprops.BaseLTR)
	runs := SplitRuns(text, props, []int{2})
	if len(runs) != 2 {
		t.Fatalf("expected two runs split at the attribute boundary, got %d: %+v", len(runs), runs)
	}
	if runs[0].End != 2 || runs[1].Start != 2 {
		t.Fatalf("expected the split at offset 2, got %+v", runs)
	}
}

func TestSplitRunsEmptyText(t *testing.T) {
	if runs := SplitRuns(nil, nil, nil); runs != nil {
		t.Fatalf("expected nil runs for empty text, got %+v", runs)
	}
}
