package attr

import (
	"encoding/binary"
	"hash/maphash"
	"math"
)

// Hash computes a stable 64-bit hash over s's declared attribute order,
// grounded on the teacher's pathCache.hashGlyphs (text/lru.go), which hashes
// a slice field-by-field through a maphash.Hash with a process-wide seed.
// Order-independence for cascading-equivalent rewrites is explicitly not
// required (§4.A): two sets that resolve to the same properties but were
// declared in a different order may hash differently.
func (s *Set) Hash() uint64 {
	var h maphash.Hash
	h.SetSeed(hashSeed)
	attrs, _ := s.expand()
	var b [8]byte
	for _, a := range attrs {
		b[0] = byte(a.Kind)
		h.Write(b[:1])
		binary.LittleEndian.PutUint64(b[:], uint64(a.Value.Int))
		h.Write(b[:])
		binary.LittleEndian.PutUint64(b[:], math.Float64bits(a.Value.Float))
		h.Write(b[:])
		h.WriteString(a.Value.Str)
		h.Write(a.Value.Bytes)
		binary.LittleEndian.PutUint32(b[:4], a.Value.Tag)
		h.Write(b[:4])
		b[0] = byte(a.Value.Paint.State)
		h.Write(b[:1])
		binary.LittleEndian.PutUint64(b[:], a.Value.Paint.Ref)
		h.Write(b[:])
	}
	return h.Sum64()
}
