// Package layoutcache implements the fingerprint->layout cache (§4.H),
// grounded on the teacher's text/lru.go layoutCache (a map keyed by
// shaping parameters plus a doubly-linked LRU list), generalized from
// lru.go's pointer-linked list to a dense array with a free list and a
// doubly-linked list indexed by slot, as the expanded spec requires.
package layoutcache

import (
	"hash/maphash"

	"github.com/memononen/skribidi/attr"
	"github.com/memononen/skribidi/layout"
)

// Params is the set of layout-affecting parameters folded into the
// fingerprint alongside the text and attribute set (§4.H).
type Params struct {
	layout.Parameters
	FontSize float64
}

const noSlot = -1

type slotEntry struct {
	fingerprint uint64
	snap        *layout.Snapshot
	lastUse     uint64
	next, prev  int
}

// Cache is a fingerprint -> *layout.Snapshot cache with LRU eviction over a
// dense, free-listed slot array (§4.H).
type Cache struct {
	slots      []slotEntry
	free       []int
	index      map[uint64]int
	head, tail int // most and least recently used slots; noSlot while empty
	maxSize    int
	stamp      uint64
	seed       maphash.Seed
}

// New constructs an empty cache holding at most maxSize entries.
func New(maxSize int) *Cache {
	return &Cache{
		index:   make(map[uint64]int),
		head:    noSlot,
		tail:    noSlot,
		maxSize: maxSize,
		seed:    maphash.MakeSeed(),
	}
}

// Fingerprint computes the 64-bit key for a (text, attribute set, params)
// triple (§3 "Layout cache. Fingerprint is computed from the text bytes,
// the layout parameters, and the attribute set").
func (c *Cache) Fingerprint(text []rune, attrs *attr.Set, p Params) uint64 {
	var h maphash.Hash
	h.SetSeed(c.seed)
	for _, r := range text {
		var b [4]byte
		b[0], b[1], b[2], b[3] = byte(r), byte(r>>8), byte(r>>16), byte(r>>24)
		h.Write(b[:])
	}
	writeInt := func(v int) {
		var b [8]byte
		u := uint64(v)
		for i := range b {
			b[i] = byte(u >> (8 * i))
		}
		h.Write(b[:])
	}
	writeInt(p.MinWidth)
	writeInt(p.MaxWidth)
	writeInt(p.MaxLines)
	writeInt(int(p.Wrap))
	writeInt(int(p.Overflow))
	writeInt(int(p.BaseDirection))
	writeInt(p.MaxHeight)
	writeInt(int(p.EllipsisRune))
	writeInt(int(p.HAlign))
	writeInt(int(p.TabStopIncrement))
	writeInt(int(p.IndentIncrement))
	writeInt(p.IndentLevel)
	writeInt(int(p.FontSize * 64))
	var fb [8]byte
	bits := uint64(attrs.Hash())
	for i := range fb {
		fb[i] = byte(bits >> (8 * i))
	}
	h.Write(fb[:])
	return h.Sum64()
}

// Get returns the cached snapshot for fingerprint, bumping its LRU
// position, or ok=false on a miss.
func (c *Cache) Get(fingerprint uint64) (*layout.Snapshot, bool) {
	slot, ok := c.index[fingerprint]
	if !ok {
		return nil, false
	}
	c.touch(slot)
	return c.slots[slot].snap, true
}

// Put inserts snap under fingerprint, evicting the least-recently-used
// entry if the cache is at capacity.
func (c *Cache) Put(fingerprint uint64, snap *layout.Snapshot) {
	if slot, ok := c.index[fingerprint]; ok {
		c.slots[slot].snap = snap
		c.touch(slot)
		return
	}
	if c.maxSize > 0 && len(c.index) >= c.maxSize {
		c.evictOldest()
	}
	slot := c.allocSlot()
	c.slots[slot] = slotEntry{fingerprint: fingerprint, snap: snap, lastUse: c.stamp, next: noSlot, prev: noSlot}
	c.index[fingerprint] = slot
	c.pushFront(slot)
	c.stamp++
}

func (c *Cache) allocSlot() int {
	if n := len(c.free); n > 0 {
		slot := c.free[n-1]
		c.free = c.free[:n-1]
		return slot
	}
	c.slots = append(c.slots, slotEntry{})
	return len(c.slots) - 1
}

// touch moves slot to the front of the LRU list and bumps its stamp.
func (c *Cache) touch(slot int) {
	c.unlink(slot)
	c.pushFront(slot)
	c.slots[slot].lastUse = c.stamp
	c.stamp++
}

func (c *Cache) pushFront(slot int) {
	c.slots[slot].prev = noSlot
	c.slots[slot].next = c.head
	if c.head != noSlot {
		c.slots[c.head].prev = slot
	}
	c.head = slot
	if c.tail == noSlot {
		c.tail = slot
	}
}

func (c *Cache) unlink(slot int) {
	e := c.slots[slot]
	if e.prev != noSlot {
		c.slots[e.prev].next = e.next
	} else if c.head == slot {
		c.head = e.next
	}
	if e.next != noSlot {
		c.slots[e.next].prev = e.prev
	} else if c.tail == slot {
		c.tail = e.prev
	}
}

func (c *Cache) evictOldest() {
	if c.tail == noSlot {
		return
	}
	slot := c.tail
	c.unlink(slot)
	delete(c.index, c.slots[slot].fingerprint)
	c.slots[slot] = slotEntry{}
	c.free = append(c.free, slot)
}

// Compact evicts every entry whose lastUse stamp is older than the
// configured staleness threshold (§4.H "compact()").
func (c *Cache) Compact(stalenessThreshold uint64) {
	evicted := 0
	for fp, slot := range c.index {
		if c.stamp-c.slots[slot].lastUse > stalenessThreshold {
			c.unlink(slot)
			delete(c.index, fp)
			c.slots[slot] = slotEntry{}
			c.free = append(c.free, slot)
			evicted++
		}
	}
	if evicted > 0 {
		tracer().Debugf("compacted layout cache, evicted %d stale entries", evicted)
	}
}

// Len reports the number of resident entries.
func (c *Cache) Len() int { return len(c.index) }
