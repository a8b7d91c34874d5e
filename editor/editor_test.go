package editor

import (
	"testing"

	"golang.org/x/image/math/fixed"

	"github.com/memononen/skribidi/attr"
	"github.com/memononen/skribidi/layout"
	"github.com/memononen/skribidi/richtext"
	"github.com/memononen/skribidi/uprops"
)

func newTestEditor(t *testing.T, text string) *Editor {
	t.Helper()
	rt := richtext.New(attr.NewSet())
	rt.Replace(0, 0, []rune(text))
	return New(rt, nil, layout.Parameters{})
}

func TestReplaceRebasesSelectionBeforeRange(t *testing.T) {
	e := newTestEditor(t, "hello world")
	e.SetSelection(Position{Offset: 1}, Position{Offset: 1})
	e.Replace(6, 11, []rune("there"))
	if e.Selection.Caret.Offset != 1 {
		t.Fatalf("expected selection before the edited range to stay put, got %d", e.Selection.Caret.Offset)
	}
}

func TestReplaceRebasesSelectionAfterRange(t *testing.T) {
	e := newTestEditor(t, "hello world")
	e.SetSelection(Position{Offset: 11}, Position{Offset: 11})
	e.Replace(6, 11, []rune("there!"))
	if want := 6 + len("there!"); e.Selection.Caret.Offset != want {
		t.Fatalf("expected selection after the edit to shift by the length delta, got %d want %d", e.Selection.Caret.Offset, want)
	}
}

func TestReplaceCollapsesSelectionInsideRange(t *testing.T) {
	e := newTestEditor(t, "hello world")
	e.SetSelection(Position{Offset: 8}, Position{Offset: 8})
	e.Replace(6, 11, []rune("x"))
	if want := 6 + 1; e.Selection.Caret.Offset != want {
		t.Fatalf("expected selection inside the replaced range to collapse to the insertion end, got %d want %d", e.Selection.Caret.Offset, want)
	}
}

func TestInsertThenUndoRestoresText(t *testing.T) {
	e := newTestEditor(t, "hello")
	e.SetSelection(Position{Offset: 5}, Position{Offset: 5})
	e.Insert(" world")
	if got := e.rangeText(0, e.Text.Len()); got != "hello world" {
		t.Fatalf("unexpected text after insert: %q", got)
	}
	if !e.Undo() {
		t.Fatalf("expected Undo to report a change was reverted")
	}
	if got := e.rangeText(0, e.Text.Len()); got != "hello" {
		t.Fatalf("expected undo to restore original text, got %q", got)
	}
	if e.Undo() {
		t.Fatalf("expected a second Undo with nothing left to revert to report false")
	}
}

func TestUndoThenRedoReappliesEdit(t *testing.T) {
	e := newTestEditor(t, "hello")
	e.SetSelection(Position{Offset: 5}, Position{Offset: 5})
	e.Insert(" world")
	e.Undo()
	if !e.Redo() {
		t.Fatalf("expected Redo to report a change was reapplied")
	}
	if got := e.rangeText(0, e.Text.Len()); got != "hello world" {
		t.Fatalf("expected redo to reapply the insertion, got %q", got)
	}
}

func TestNestedTransactionCoalescesIntoOneUndoStep(t *testing.T) {
	e := newTestEditor(t, "")
	e.BeginTransaction()
	e.BeginTransaction()
	e.Insert("a")
	e.Insert("b")
	e.EndTransaction()
	e.EndTransaction()
	if got := e.rangeText(0, e.Text.Len()); got != "ab" {
		t.Fatalf("unexpected text after nested transaction, got %q", got)
	}
	if !e.Undo() {
		t.Fatalf("expected one undo step to be available")
	}
	if got := e.rangeText(0, e.Text.Len()); got != "" {
		t.Fatalf("expected the whole nested transaction to undo in one step, got %q", got)
	}
}

func TestSetAttributeThenHasTextAttribute(t *testing.T) {
	e := newTestEditor(t, "hello world")
	bold := attr.Attribute{Kind: attr.KindFontWeight, Value: attr.Value{Int: 700}}
	e.SetAttribute(0, 5, bold)
	if !e.HasTextAttribute(0, 5, bold) {
		t.Fatalf("expected [0,5) to uniformly carry the attribute just set")
	}
	if e.HasTextAttribute(0, 11, bold) {
		t.Fatalf("expected the full range to not uniformly carry an attribute only set on a prefix")
	}
}

func TestToggleAttributeSetsThenClears(t *testing.T) {
	e := newTestEditor(t, "hello")
	italic := attr.Attribute{Kind: attr.KindFontStyle, Value: attr.Value{Int: 1}}
	e.ToggleAttribute(0, 5, italic)
	if !e.HasTextAttribute(0, 5, italic) {
		t.Fatalf("expected toggle on a range without the attribute to set it")
	}
	e.ToggleAttribute(0, 5, italic)
	if e.HasTextAttribute(0, 5, italic) {
		t.Fatalf("expected toggle on a range with the attribute uniformly set to clear it")
	}
}

func TestToggleAttributeEmptySelectionTracksActiveSet(t *testing.T) {
	e := newTestEditor(t, "hello")
	bold := attr.Attribute{Kind: attr.KindFontWeight, Value: attr.Value{Int: 700}}
	e.SetSelection(Position{Offset: 2}, Position{Offset: 2})
	if e.HasAttribute(2, 2, bold) {
		t.Fatalf("expected active attribute set to start empty")
	}
	e.ToggleAttribute(2, 2, bold)
	if !e.HasAttribute(2, 2, bold) {
		t.Fatalf("expected toggling on an empty selection to activate the attribute")
	}
	e.ToggleAttribute(2, 2, bold)
	if e.HasAttribute(2, 2, bold) {
		t.Fatalf("expected toggling again to deactivate the attribute")
	}
}

func TestSetParagraphAttributeDeltaClampsToMax(t *testing.T) {
	e := newTestEditor(t, "hello")
	e.SetParagraphAttributeDelta(0, 0, attr.KindIndentLevel, 5, 2)
	p, _ := e.paragraphForOffset(0)
	got, ok := p.Attrs.Resolve(attr.KindIndentLevel)
	if !ok || got.Value.Int != 2 {
		t.Fatalf("expected indent level clamped to max 2, got %v (ok=%v)", got.Value.Int, ok)
	}
	e.SetParagraphAttributeDelta(0, 0, attr.KindIndentLevel, -10, 2)
	got, ok = p.Attrs.Resolve(attr.KindIndentLevel)
	if !ok || got.Value.Int != 0 {
		t.Fatalf("expected indent level clamped to min 0, got %v (ok=%v)", got.Value.Int, ok)
	}
}

func TestMoveWordSkipsWhitespaceForward(t *testing.T) {
	e := newTestEditor(t, "hello   world")
	e.SetSelection(Position{Offset: 0}, Position{Offset: 0})
	e.MoveWord(true, selectionClear)
	if e.Selection.Caret.Offset != 5 {
		t.Fatalf("expected caret to stop at end of first word, got %d", e.Selection.Caret.Offset)
	}
	e.MoveWord(true, selectionClear)
	if e.Selection.Caret.Offset != 13 {
		t.Fatalf("expected caret to stop at end of second word, got %d", e.Selection.Caret.Offset)
	}
}

func TestMoveWordSkipsWhitespaceBackward(t *testing.T) {
	e := newTestEditor(t, "hello world")
	e.SetSelection(Position{Offset: 11}, Position{Offset: 11})
	e.MoveWord(false, selectionClear)
	if e.Selection.Caret.Offset != 6 {
		t.Fatalf("expected caret to stop at start of last word, got %d", e.Selection.Caret.Offset)
	}
}

func TestClickDoubleSelectsWord(t *testing.T) {
	e := newTestEditor(t, "hello world")
	e.Click(ClickDouble, 8, false)
	start, end := e.Selection.Range()
	if start != 6 || end != 11 {
		t.Fatalf("expected double click to select the containing word [6,11), got [%d,%d)", start, end)
	}
}

func TestClickTripleSelectsParagraph(t *testing.T) {
	e := newTestEditor(t, "hello world")
	e.Click(ClickTriple, 3, false)
	start, end := e.Selection.Range()
	if start != 0 || end != e.Text.Len() {
		t.Fatalf("expected triple click to select the whole paragraph [0,%d), got [%d,%d)", e.Text.Len(), start, end)
	}
}

func TestSelectionRangeOrdersEndpoints(t *testing.T) {
	s := Selection{Anchor: Position{Offset: 5}, Caret: Position{Offset: 2}}
	start, end := s.Range()
	if start != 2 || end != 5 {
		t.Fatalf("expected Range to order endpoints regardless of anchor/caret order, got [%d,%d)", start, end)
	}
	if s.Collapsed() {
		t.Fatalf("expected a non-empty selection to not be collapsed")
	}
}

func TestProcessAppliesFirstMatchingRule(t *testing.T) {
	e := newTestEditor(t, "hello")
	bold := attr.Attribute{Kind: attr.KindFontWeight, Value: attr.Value{Int: 700}}
	e.SetSelection(Position{Offset: 0}, Position{Offset: 5})
	rs := RuleSet{Rules: []Rule{
		{Key: Key{Name: "B", Mods: ModCtrl}, Action: ActionToggleAttribute, Attribute: bold},
		{Key: Key{Name: "B", Mods: ModCtrl}, Action: ActionBaseKey},
	}}
	handled := e.Process(rs, Key{Name: "B", Mods: ModCtrl})
	if !handled {
		t.Fatalf("expected the bold rule to handle the key")
	}
	if !e.HasTextAttribute(0, 5, bold) {
		t.Fatalf("expected the rule to have applied the bold attribute")
	}
}

func TestProcessFallsThroughWhenNoRuleMatches(t *testing.T) {
	e := newTestEditor(t, "hello")
	rs := RuleSet{Rules: []Rule{
		{Key: Key{Name: "B", Mods: ModCtrl}, Action: ActionToggleAttribute},
	}}
	if e.Process(rs, Key{Name: "X", Mods: 0}) {
		t.Fatalf("expected Process to report false when no rule matches")
	}
}

func TestCaretIteratorProducesBoundaryAndClusterStops(t *testing.T) {
	line := layout.Line{TextStart: 0, TextEnd: 3, RunStart: 0, RunEnd: 1}
	snap := &layout.Snapshot{
		Lines: []layout.Line{line},
		Runs: []layout.Run{
			{Direction: uprops.DirLTR, GlyphStart: 0, GlyphEnd: 3, TextStart: 0, TextEnd: 3},
		},
		Clusters: []layout.Cluster{
			{TextOffset: 0, TextCount: 1, GlyphOffset: 0, GlyphCount: 1},
			{TextOffset: 1, TextCount: 1, GlyphOffset: 1, GlyphCount: 1},
			{TextOffset: 2, TextCount: 1, GlyphOffset: 2, GlyphCount: 1},
		},
		Glyphs: []layout.Glyph{
			{AdvanceX: fixed.I(10)},
			{AdvanceX: fixed.I(10)},
			{AdvanceX: fixed.I(10)},
		},
	}
	it := NewCaretIterator(snap, 0)
	// one boundary stop before and after each of the 3 clusters: 5 stops total.
	if got := it.Len(); got != 5 {
		t.Fatalf("expected 5 caret stops (2 boundaries + 3 clusters), got %d", got)
	}
	first, last := it.At(0), it.At(it.Len()-1)
	if first.Left.TextOffset != 0 || first.Left.Affinity != AffinityStartOfLine {
		t.Fatalf("expected first stop to be start-of-line, got %+v", first.Left)
	}
	if last.Right.TextOffset != 3 || last.Right.Affinity != AffinityEndOfLine {
		t.Fatalf("expected last stop to be end-of-line, got %+v", last.Right)
	}
	if x := it.At(2).X; x != fixed.I(10) {
		t.Fatalf("expected the second cluster stop to sit at one advance in, got %v", x)
	}
}

func TestCaretIteratorClosestToX(t *testing.T) {
	line := layout.Line{TextStart: 0, TextEnd: 2, RunStart: 0, RunEnd: 1}
	snap := &layout.Snapshot{
		Lines: []layout.Line{line},
		Runs: []layout.Run{
			{Direction: uprops.DirLTR, GlyphStart: 0, GlyphEnd: 2, TextStart: 0, TextEnd: 2},
		},
		Clusters: []layout.Cluster{
			{TextOffset: 0, TextCount: 1, GlyphOffset: 0, GlyphCount: 1},
			{TextOffset: 1, TextCount: 1, GlyphOffset: 1, GlyphCount: 1},
		},
		Glyphs: []layout.Glyph{
			{AdvanceX: fixed.I(10)},
			{AdvanceX: fixed.I(10)},
		},
	}
	it := NewCaretIterator(snap, 0)
	if got := it.ClosestToX(fixed.I(21)); got != it.Len()-1 {
		t.Fatalf("expected x past the last stop to resolve to the final stop, got index %d", got)
	}
	if got := it.ClosestToX(fixed.I(-5)); got != 0 {
		t.Fatalf("expected a negative x to resolve to the first stop, got index %d", got)
	}
}
