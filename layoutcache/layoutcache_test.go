package layoutcache

import (
	"testing"

	"github.com/memononen/skribidi/attr"
	"github.com/memononen/skribidi/layout"
)

func TestFingerprintStableAcrossCalls(t *testing.T) {
	c := New(10)
	text := []rune("hello world")
	set := attr.NewSet()
	p := Params{Parameters: layout.Parameters{MaxWidth: 200}, FontSize: 12}
	f1 := c.Fingerprint(text, set, p)
	f2 := c.Fingerprint(text, set, p)
	if f1 != f2 {
		t.Fatalf("expected fingerprint to be deterministic, got %d vs %d", f1, f2)
	}
}

func TestFingerprintDiffersOnWidth(t *testing.T) {
	c := New(10)
	text := []rune("hello world")
	set := attr.NewSet()
	f1 := c.Fingerprint(text, set, Params{Parameters: layout.Parameters{MaxWidth: 200}})
	f2 := c.Fingerprint(text, set, Params{Parameters: layout.Parameters{MaxWidth: 400}})
	if f1 == f2 {
		t.Fatalf("expected different max widths to produce different fingerprints")
	}
}

func TestPutThenGetHits(t *testing.T) {
	c := New(10)
	snap := &layout.Snapshot{}
	c.Put(42, snap)
	got, ok := c.Get(42)
	if !ok || got != snap {
		t.Fatalf("expected a cache hit returning the same snapshot pointer")
	}
}

func TestGetMissOnUnknownFingerprint(t *testing.T) {
	c := New(10)
	if _, ok := c.Get(99); ok {
		t.Fatalf("expected a miss on an empty cache")
	}
}

func TestPutEvictsLeastRecentlyUsedAtCapacity(t *testing.T) {
	c := New(2)
	c.Put(1, &layout.Snapshot{})
	c.Put(2, &layout.Snapshot{})
	c.Get(1) // bump 1 to the front; 2 becomes the LRU victim
	c.Put(3, &layout.Snapshot{})

	if _, ok := c.Get(2); ok {
		t.Fatalf("expected entry 2 to have been evicted as least-recently-used")
	}
	if _, ok := c.Get(1); !ok {
		t.Fatalf("expected entry 1 to survive (recently touched)")
	}
	if _, ok := c.Get(3); !ok {
		t.Fatalf("expected entry 3 to be resident (just inserted)")
	}
	if c.Len() != 2 {
		t.Fatalf("expected cache to hold exactly maxSize entries, got %d", c.Len())
	}
}

func TestCompactEvictsStaleEntries(t *testing.T) {
	c := New(10)
	c.Put(1, &layout.Snapshot{})
	c.Put(2, &layout.Snapshot{})
	// touch 2 repeatedly so its stamp stays ahead of 1's.
	for i := 0; i < 5; i++ {
		c.Get(2)
	}
	c.Compact(1)
	if _, ok := c.Get(1); ok {
		t.Fatalf("expected the stale entry to be evicted by Compact")
	}
	if _, ok := c.Get(2); !ok {
		t.Fatalf("expected the recently-touched entry to survive Compact")
	}
}

func TestReusedSlotAfterEvictionStaysConsistent(t *testing.T) {
	c := New(1)
	c.Put(1, &layout.Snapshot{})
	c.Put(2, &layout.Snapshot{}) // evicts 1, reuses its slot
	if _, ok := c.Get(1); ok {
		t.Fatalf("expected entry 1 to be gone")
	}
	got, ok := c.Get(2)
	if !ok || got == nil {
		t.Fatalf("expected entry 2 to be resident after reusing the freed slot")
	}
}
