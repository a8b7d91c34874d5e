package uprops

import "testing"

func TestScanEmptyText(t *testing.T) {
	props := Scan(nil, BaseLTR)
	if len(props) != 0 {
		t.Fatalf("expected no properties for empty text")
	}
}

func TestScanAssignsLineBreakOnNewline(t *testing.T) {
	props := Scan([]rune("ab\ncd"), BaseLTR)
	if props[2].Flags&FlagLineBreakMust == 0 {
		t.Fatalf("expected mandatory line break flag at the newline codepoint")
	}
}

func TestResolveScriptsSingleRunForLatin(t *testing.T) {
	runs := ResolveScripts([]rune("hello world"))
	if len(runs) != 1 {
		t.Fatalf("expected a single script run for plain Latin text, got %d: %+v", len(runs), runs)
	}
}

func TestReorderIdentityForPureLTR(t *testing.T) {
	runs := []BidiRun{{Start: 0, End: 5, Level: 0, Direction: DirLTR}}
	order := Reorder(runs)
	if len(order) != 1 || order[0] != 0 {
		t.Fatalf("expected identity order for a single LTR run, got %v", order)
	}
}
