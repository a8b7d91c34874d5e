package arena

import "testing"

func TestAllocReturnsZeroedDistinctSlices(t *testing.T) {
	a := New(64)
	x := a.Alloc(8)
	y := a.Alloc(8)
	for i, b := range x {
		if b != 0 {
			t.Fatalf("expected zeroed allocation, byte %d = %d", i, b)
		}
	}
	x[0] = 1
	if y[0] == 1 {
		t.Fatalf("expected distinct backing regions, writing to x affected y")
	}
}

func TestStatsTracksUsedAndAllocated(t *testing.T) {
	a := New(64)
	a.Alloc(10)
	a.Alloc(5)
	used, allocated := a.Stats()
	if used != 15 {
		t.Fatalf("expected used=15, got %d", used)
	}
	if allocated != 64 {
		t.Fatalf("expected allocated=64 (no growth needed), got %d", allocated)
	}
}

func TestAllocGrowsBackingBufferWhenExceeded(t *testing.T) {
	a := New(8)
	a.Alloc(4)
	a.Alloc(16)
	_, allocated := a.Stats()
	if allocated < 20 {
		t.Fatalf("expected backing buffer to grow to at least 20 bytes, got %d", allocated)
	}
}

func TestResetReclaimsUsedSpaceButKeepsCapacity(t *testing.T) {
	a := New(64)
	a.Alloc(40)
	before, allocated := a.Stats()
	if before != 40 {
		t.Fatalf("expected used=40 before reset, got %d", before)
	}
	a.Reset()
	used, allocatedAfter := a.Stats()
	if used != 0 {
		t.Fatalf("expected used=0 after reset, got %d", used)
	}
	if allocatedAfter != allocated {
		t.Fatalf("expected backing capacity to persist across reset, got %d want %d", allocatedAfter, allocated)
	}
}

func TestPeakUsedTracksHighWaterMarkAcrossResets(t *testing.T) {
	a := New(64)
	a.Alloc(30)
	a.Reset()
	a.Alloc(10)
	if got := a.PeakUsed(); got != 30 {
		t.Fatalf("expected peak used to remember the highest watermark, got %d", got)
	}
}

func TestAllocZeroOrNegativeReturnsNil(t *testing.T) {
	a := New(16)
	if got := a.Alloc(0); got != nil {
		t.Fatalf("expected Alloc(0) to return nil, got %v", got)
	}
	if got := a.Alloc(-1); got != nil {
		t.Fatalf("expected Alloc(-1) to return nil, got %v", got)
	}
}
