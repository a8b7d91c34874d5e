package atlas

// GlyphFingerprint builds the fingerprint for a glyph entry: {font handle,
// gid, font size (quantized), rasterization mode} (§4.G).
func GlyphFingerprint(fontHandle uint64, gid uint32, size float64, mode Mode) Fingerprint {
	return Fingerprint{Handle: fontHandle, Sub: gid, Size: quantizeSize(size), Mode: mode}
}

// IconFingerprint builds the fingerprint for an icon entry: {icon handle,
// width, height (quantized), mode} (§4.G).
func IconFingerprint(iconHandle uint64, w, h int, mode Mode) Fingerprint {
	return Fingerprint{Handle: iconHandle, Sub: uint32(w)<<16 | uint32(h&0xffff), Size: 0, Mode: mode}
}

// quantizeSize rounds a font size to the nearest quarter-point, the way
// the atlas buckets near-identical sizes into the same cached rasterization
// rather than growing unboundedly for every float rounding difference.
func quantizeSize(size float64) int32 {
	return int32(size*4 + 0.5)
}
