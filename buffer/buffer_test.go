package buffer

import (
	"testing"

	"github.com/memononen/skribidi/attr"
)

func TestReplaceInsideStyledWord(t *testing.T) {
	// Scenario 1 from the spec: "Hello" with font-size 15 on [0,5), replace
	// [1,3) with "Turb" carrying font-size 30.
	b := New()
	b.AppendRange([]rune("Hello"), attr.FontSize(15))
	b.Replace(1, 3, []rune("Turb"), attr.FontSize(30))

	if got := string(b.Runes()); got != "Turbo" {
		t.Fatalf("text = %q, want %q", got, "Turbo")
	}
	spans := b.Spans()
	want := []Span{
		{Start: 0, End: 4, Attr: attr.FontSize(30)},
		{Start: 4, End: 5, Attr: attr.FontSize(15)},
	}
	if len(spans) != len(want) {
		t.Fatalf("spans = %+v, want %+v", spans, want)
	}
	for i, w := range want {
		if spans[i].Start != w.Start || spans[i].End != w.End || !spans[i].Attr.Equal(w.Attr) {
			t.Fatalf("span[%d] = %+v, want %+v", i, spans[i], w)
		}
	}
}

func TestLengthInvariant(t *testing.T) {
	b := New()
	b.AppendRange([]rune("hello world"))
	before := b.Len()
	b.Replace(2, 5, []rune("XYZAB"))
	after := b.Len()
	if after != before+5-3 {
		t.Fatalf("len = %d, want %d", after, before+5-3)
	}
}

func TestAddAttributeThenHasAttribute(t *testing.T) {
	b := New()
	b.AppendRange([]rune("abcdef"))
	b.AddAttribute(1, 4, attr.FontWeight(700))
	if !b.HasAttribute(1, 4, attr.FontWeight(700)) {
		t.Fatalf("expected HasAttribute true after AddAttribute")
	}
	if b.HasAttribute(0, 4, attr.FontWeight(700)) {
		t.Fatalf("expected HasAttribute false when range exceeds the span")
	}
}

func TestClearAttribute(t *testing.T) {
	b := New()
	b.AppendRange([]rune("abcdef"), attr.FontWeight(700))
	b.ClearAttribute(0, b.Len(), attr.KindFontWeight)
	for _, sp := range b.Spans() {
		if sp.Attr.Kind == attr.KindFontWeight {
			t.Fatalf("expected no FontWeight spans remaining, found %+v", sp)
		}
	}
}

func TestOutOfRangeClamps(t *testing.T) {
	b := New()
	b.AppendRange([]rune("abc"))
	b.Replace(-5, 100, []rune("xyz"))
	if got := string(b.Runes()); got != "xyz" {
		t.Fatalf("text = %q, want %q after clamped replace", got, "xyz")
	}
}

func TestIterateAttributeRuns(t *testing.T) {
	b := New()
	b.AppendRange([]rune("abcdef"))
	b.AddAttribute(0, 3, attr.FontWeight(700))
	b.AddAttribute(3, 6, attr.FontWeight(400))

	var runs []AttributeRun
	b.IterateAttributeRuns(func(r AttributeRun) { runs = append(runs, r) })
	if len(runs) != 2 {
		t.Fatalf("got %d runs, want 2: %+v", len(runs), runs)
	}
	if runs[0].Start != 0 || runs[0].End != 3 || runs[1].Start != 3 || runs[1].End != 6 {
		t.Fatalf("unexpected run boundaries: %+v", runs)
	}
}
