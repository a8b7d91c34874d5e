package attr

// Set is a read-only, ordered attribute list: either inline attributes or a
// named reference into a Collection. Resolution of a property scans the
// effective set back-to-front; the last matching attribute wins (§4.A),
// mirroring pango's AttrList iteration order in ellipsize.go.
type Set struct {
	// collection is the Collection a Ref (if any) must be resolved
	// against. A nil collection means every entry is inline.
	collection *Collection
	entries    []setEntry
}

type setEntry struct {
	inline Attribute
	ref    string
	isRef  bool
}

// NewSet builds an inline attribute set with no named references.
func NewSet(attrs ...Attribute) *Set {
	s := &Set{entries: make([]setEntry, len(attrs))}
	for i, a := range attrs {
		s.entries[i] = setEntry{inline: a}
	}
	return s
}

// NewSetIn builds an attribute set that may contain named references,
// resolved against collection.
func NewSetIn(collection *Collection) *Set {
	return &Set{collection: collection}
}

// Append adds an inline attribute to the end of the set (highest priority).
func (s *Set) Append(a Attribute) { s.entries = append(s.entries, setEntry{inline: a}) }

// AppendRef appends a named reference to the end of the set.
func (s *Set) AppendRef(name string) { s.entries = append(s.entries, setEntry{ref: name, isRef: true}) }

// ResolveError is the status Collection.Resolve reports (not a Go error,
// per §7's recovered failure semantics): UnknownReference when a name is not
// registered. Set.Resolve skips a named reference its collection cannot
// resolve, so a kind supplied only through such a reference reports ok=false.
type ResolveError uint8

const (
	ResolveOK ResolveError = iota
	UnknownReference
)

// expand flattens the set into inline attributes, resolving named
// references against collection. It is the "compose two sets" / "resolve a
// named reference to an inline set" operation of §4.A.
func (s *Set) expand() ([]Attribute, ResolveError) {
	if s == nil {
		return nil, ResolveOK
	}
	out := make([]Attribute, 0, len(s.entries))
	status := ResolveOK
	for _, e := range s.entries {
		if !e.isRef {
			out = append(out, e.inline)
			continue
		}
		if s.collection == nil {
			status = UnknownReference
			continue
		}
		named, ok := s.collection.named[e.ref]
		if !ok {
			status = UnknownReference
			continue
		}
		resolved, _ := named.expand()
		out = append(out, resolved...)
	}
	return out, status
}

// Resolve returns the effective value for kind by scanning the expanded set
// back-to-front, per §4.A. ok is false if kind is not present.
func (s *Set) Resolve(kind Kind) (Attribute, bool) {
	attrs, _ := s.expand()
	for i := len(attrs) - 1; i >= 0; i-- {
		if attrs[i].Kind == kind {
			return attrs[i], true
		}
	}
	return Attribute{}, false
}

// ResolvePaint is Resolve specialized for KindPaintColor / KindFill entries
// carrying a given PaintState discriminator: "for paint properties the last
// matching paint-tag wins" (§4.A).
func (s *Set) ResolvePaint(state PaintState) (PaintTag, bool) {
	attrs, _ := s.expand()
	for i := len(attrs) - 1; i >= 0; i-- {
		a := attrs[i]
		if a.Kind != KindPaintColor && a.Kind != KindFill {
			continue
		}
		if a.Value.Paint.State == state {
			return a.Value.Paint, true
		}
	}
	return PaintTag{}, false
}

// Compose returns a new set whose effective attributes are "base then
// override": base's (paragraph-level) defaults followed by override's
// (span-level) values, so override wins ties per §3 ("span values
// overriding").
func Compose(base, override *Set) *Set {
	out := &Set{collection: override.collection}
	if out.collection == nil {
		out.collection = base.collection
	}
	out.entries = append(out.entries, base.entries...)
	out.entries = append(out.entries, override.entries...)
	return out
}

// Len returns the number of raw (possibly unresolved) entries; it does not
// resolve named references.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.entries)
}
