package richtext

import "testing"

func TestNewHasOneEmptyParagraph(t *testing.T) {
	rt := New(nil)
	if len(rt.Paragraphs()) != 1 {
		t.Fatalf("expected exactly one paragraph, got %d", len(rt.Paragraphs()))
	}
}

func TestInsertParagraphSeparatorSplits(t *testing.T) {
	rt := New(nil)
	rt.Replace(0, 0, []rune("hello"))
	rt.Replace(2, 2, []rune{ParagraphSeparator})
	if len(rt.Paragraphs()) != 2 {
		t.Fatalf("expected the insert to split into two paragraphs, got %d", len(rt.Paragraphs()))
	}
	first := rt.Paragraphs()[0].Buf.Runes()
	second := rt.Paragraphs()[1].Buf.Runes()
	if string(first) != "he"+string(ParagraphSeparator) {
		t.Fatalf("unexpected first paragraph contents: %q", string(first))
	}
	if string(second) != "llo" {
		t.Fatalf("unexpected second paragraph contents: %q", string(second))
	}
}

func TestRemoveSeparatorMergesParagraphs(t *testing.T) {
	rt := New(nil)
	rt.Replace(0, 0, []rune("hello"))
	rt.Replace(2, 2, []rune{ParagraphSeparator})
	if len(rt.Paragraphs()) != 2 {
		t.Fatalf("setup expected a split, got %d paragraphs", len(rt.Paragraphs()))
	}
	rt.Remove(2, 3)
	if len(rt.Paragraphs()) != 1 {
		t.Fatalf("expected removing the separator to merge back to one paragraph, got %d", len(rt.Paragraphs()))
	}
	if string(rt.Paragraphs()[0].Buf.Runes()) != "hello" {
		t.Fatalf("expected merged text %q, got %q", "hello", string(rt.Paragraphs()[0].Buf.Runes()))
	}
}

func TestGlobalOffsetRoundTrip(t *testing.T) {
	rt := New(nil)
	rt.Replace(0, 0, []rune("ab"))
	rt.Replace(1, 1, []rune{ParagraphSeparator})
	idx, local := rt.paragraphAt(2)
	if got := rt.GlobalOffset(idx, local); got != 2 {
		t.Fatalf("expected round-tripped global offset 2, got %d", got)
	}
}

// TestOrdinarySpacesDoNotSplitParagraphs guards against ParagraphSeparator
// ever regressing to an ordinary ASCII space or newline: inserting real
// prose (which is full of spaces) must never implicitly split paragraphs.
func TestOrdinarySpacesDoNotSplitParagraphs(t *testing.T) {
	rt := New(nil)
	rt.Replace(0, 0, []rune("hello world, this is one paragraph"))
	if len(rt.Paragraphs()) != 1 {
		t.Fatalf("expected ordinary text with spaces to stay one paragraph, got %d", len(rt.Paragraphs()))
	}
	if got := string(rt.Paragraphs()[0].Buf.Runes()); got != "hello world, this is one paragraph" {
		t.Fatalf("unexpected paragraph contents: %q", got)
	}
}
