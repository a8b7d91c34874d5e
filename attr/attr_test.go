package attr

import "testing"

func TestSetResolveBackToFront(t *testing.T) {
	s := NewSet(FontSize(12), FontWeight(400), FontSize(18))
	got, ok := s.Resolve(KindFontSize)
	if !ok || got.Value.Float != 18 {
		t.Fatalf("Resolve(FontSize) = %+v, %v; want 18, true", got, ok)
	}
}

func TestSetResolvePaintLastWins(t *testing.T) {
	s := NewSet(PaintColor(PaintText, 1), PaintColor(PaintTextBackground, 2), PaintColor(PaintText, 3))
	got, ok := s.ResolvePaint(PaintText)
	if !ok || got.Ref != 3 {
		t.Fatalf("ResolvePaint(PaintText) = %+v, %v; want ref 3, true", got, ok)
	}
}

func TestCollectionUnknownReference(t *testing.T) {
	c1 := NewCollection()
	named := NewSet(FontSize(10))
	c1.AddNamed("body", named, "")

	other := NewSetIn(NewCollection())
	other.AppendRef("body")
	if _, ok := other.Resolve(KindFontSize); ok {
		t.Fatalf("Resolve against mismatched collection should fail")
	}

	same := NewSetIn(c1)
	same.AppendRef("body")
	got, ok := same.Resolve(KindFontSize)
	if !ok || got.Value.Float != 10 {
		t.Fatalf("Resolve against owning collection failed: %+v, %v", got, ok)
	}
}

func TestComposeOverrideWins(t *testing.T) {
	base := NewSet(FontSize(12))
	override := NewSet(FontSize(24))
	composed := Compose(base, override)
	got, ok := composed.Resolve(KindFontSize)
	if !ok || got.Value.Float != 24 {
		t.Fatalf("Compose override should win, got %+v, %v", got, ok)
	}
}

func TestHashDeterministic(t *testing.T) {
	a := NewSet(FontSize(12), FontWeight(700))
	b := NewSet(FontSize(12), FontWeight(700))
	if a.Hash() != b.Hash() {
		t.Fatalf("identical sets hashed differently")
	}
	c := NewSet(FontWeight(700), FontSize(12))
	if a.Hash() == c.Hash() {
		t.Fatalf("declared-order-dependent hash unexpectedly matched a reordered set")
	}
}

func TestAttributeEqual(t *testing.T) {
	a := FontSize(12)
	b := FontSize(12)
	c := FontSize(13)
	if !a.Equal(b) {
		t.Fatalf("expected equal attributes")
	}
	if a.Equal(c) {
		t.Fatalf("expected distinct attributes")
	}
}
