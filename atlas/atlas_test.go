package atlas

import "testing"

func TestInsertThenLookupHitsSameHandle(t *testing.T) {
	a := New(4, 256)
	fp := GlyphFingerprint(1, 42, 16, ModeAlpha)
	h1, ok := a.Insert(fp, 10, 12, ModeAlpha)
	if !ok {
		t.Fatalf("expected insert to succeed")
	}
	h2, ok := a.Lookup(fp)
	if !ok || h1 != h2 {
		t.Fatalf("expected lookup to return the same handle, got %v vs %v", h1, h2)
	}
}

func TestEndFrameUnpinsUntouchedEntries(t *testing.T) {
	a := New(4, 256)
	fp := GlyphFingerprint(1, 1, 16, ModeAlpha)
	h, _ := a.Insert(fp, 8, 8, ModeAlpha)
	a.EndFrame()
	if a.entries[h].pinned {
		t.Fatalf("expected the entry to be unpinned after a frame it wasn't touched in")
	}
}

func TestEndFrameReportsDirtyRegion(t *testing.T) {
	a := New(4, 256)
	fp := GlyphFingerprint(1, 1, 16, ModeAlpha)
	a.Insert(fp, 8, 8, ModeAlpha)
	regions := a.EndFrame()
	if len(regions) != 1 {
		t.Fatalf("expected one dirty page after a fresh insert, got %d", len(regions))
	}
}

func TestEvictionSkipsPinnedEntries(t *testing.T) {
	a := New(1, 16)
	fpA := GlyphFingerprint(1, 1, 16, ModeAlpha)
	hA, ok := a.Insert(fpA, 8, 8, ModeAlpha)
	if !ok {
		t.Fatalf("expected first insert to succeed")
	}
	// hA stays pinned (looked up this frame); a same-sized second entry
	// should still fit alongside it without evicting the pinned one.
	a.Lookup(fpA)
	fpB := GlyphFingerprint(1, 2, 16, ModeAlpha)
	if _, ok := a.Insert(fpB, 8, 8, ModeAlpha); !ok {
		t.Fatalf("expected second insert to fit in the remaining page space")
	}
	// The page is now full and both entries are pinned: an insert that needs
	// an eviction must fail rather than evict either of them.
	fpC := GlyphFingerprint(1, 3, 16, ModeAlpha)
	if _, ok := a.Insert(fpC, 16, 16, ModeAlpha); ok {
		t.Fatalf("expected insert needing an eviction of pinned entries to fail")
	}
	if _, _, ok := a.Rect(hA); !ok {
		t.Fatalf("expected the pinned entry to remain resident")
	}
}

func TestIconFingerprintDistinctFromGlyph(t *testing.T) {
	g := GlyphFingerprint(1, 1, 16, ModeAlpha)
	i := IconFingerprint(1, 1, 1, ModeAlpha)
	if g == i {
		t.Fatalf("expected glyph and icon fingerprints over similar inputs to differ")
	}
}

func TestWritePixelsLandsInTexture(t *testing.T) {
	a := New(4, 16)
	fp := GlyphFingerprint(1, 1, 16, ModeAlpha)
	h, ok := a.Insert(fp, 2, 2, ModeAlpha)
	if !ok {
		t.Fatalf("expected insert to succeed")
	}
	_, rect, _ := a.Rect(h)
	data := []byte{1, 2, 3, 4}
	if !a.WritePixels(h, data) {
		t.Fatalf("expected WritePixels to find the entry")
	}
	if got := a.TextureCount(); got != 1 {
		t.Fatalf("expected one backing texture, got %d", got)
	}
	tex := a.Texture(0)
	if tex.Width != 16 || tex.Height != 16 || tex.BitsPerPixel != 8 {
		t.Fatalf("unexpected texture format: %+v", tex)
	}
	off := (rect.Min.Y*tex.Width + rect.Min.X)
	if got := tex.Pixels[off]; got != 1 {
		t.Fatalf("expected pixel 0 of the written rect to be 1, got %d", got)
	}
	off = (rect.Min.Y*tex.Width + rect.Min.X + 1)
	if got := tex.Pixels[off]; got != 2 {
		t.Fatalf("expected pixel 1 of the written rect to be 2, got %d", got)
	}
}

func TestRGBATextureHasFourBytesPerPixel(t *testing.T) {
	a := New(4, 8)
	fp := GlyphFingerprint(1, 1, 16, ModeRGBA)
	a.Insert(fp, 1, 1, ModeRGBA)
	tex := a.Texture(0)
	if tex.BitsPerPixel != 32 {
		t.Fatalf("expected 32 bits per pixel for ModeRGBA, got %d", tex.BitsPerPixel)
	}
	if len(tex.Pixels) != 8*8*4 {
		t.Fatalf("expected pixel buffer sized for a %dx%d RGBA page, got %d bytes", 8, 8, len(tex.Pixels))
	}
}
