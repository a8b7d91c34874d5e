// Package atlas implements the image atlas (§4.G): 2D bin-packed pages of
// rasterized glyphs/icons with LRU eviction, pinning, and dirty-region
// tracking, grounded on gio's gpu.packer (gpu/compute.go's tryAdd/newPage,
// shape confirmed against gpu/pack_test.go) for the packing algorithm and
// gpu.resourceCache/opCache's "res/newRes frame()" double buffering
// (gpu/caches.go) for the pin/end_frame/eviction model.
package atlas

import (
	"image"
)

// Mode selects a page's pixel format.
type Mode uint8

const (
	ModeAlpha Mode = iota
	ModeRGBA
)

// Fingerprint identifies an atlas entry's content for cache lookups (§4.G):
// glyph entries key on {font handle, gid, quantized size, mode}; icon
// entries on {icon handle, quantized w/h, mode}.
type Fingerprint struct {
	Handle   uint64
	Sub      uint32 // gid, or packed width<<16|height for icons
	Size     int32  // quantized font size, or 0 for icons
	Mode     Mode
}

// Handle is an opaque, stable reference to an atlas entry: stable across
// page rebuilds as long as the entry is not evicted (§4.G).
type Handle uint64

type entry struct {
	handle      Handle
	fingerprint Fingerprint
	page        int
	rect        image.Rectangle
	lastUse     uint64
	pinned      bool
}

// Atlas owns a set of pages and the LRU/fingerprint indices over their
// entries.
type Atlas struct {
	pages      []*page
	entries    map[Handle]*entry
	byPrint    map[Fingerprint]Handle
	nextHandle Handle
	frameStamp uint64
	maxPages   int
	maxPageDim int
}

// New constructs an atlas bounded by maxPages pages of at most
// maxPageDim x maxPageDim each (§4.G: "bounded by max page count + max page
// size").
func New(maxPages, maxPageDim int) *Atlas {
	return &Atlas{
		entries:    make(map[Handle]*entry),
		byPrint:    make(map[Fingerprint]Handle),
		maxPages:   maxPages,
		maxPageDim: maxPageDim,
	}
}

// Lookup returns the handle for fingerprint if already resident, bumping
// its LRU stamp (§4.G: "the same fingerprint hit bumps the LRU").
func (a *Atlas) Lookup(fp Fingerprint) (Handle, bool) {
	h, ok := a.byPrint[fp]
	if !ok {
		return 0, false
	}
	e := a.entries[h]
	e.lastUse = a.frameStamp
	e.pinned = true
	return h, true
}

// Insert allocates room for a w x h rectangle tagged with fingerprint and
// records its pixel mode, trying each existing page before creating a new
// one (bounded by maxPages), matching gpu.compute's tryAdd/newPage retry
// loop.
func (a *Atlas) Insert(fp Fingerprint, w, h int, mode Mode) (Handle, bool) {
	if existing, ok := a.Lookup(fp); ok {
		return existing, true
	}
	size := image.Pt(w, h)
	for pi, p := range a.pages {
		if p.mode != mode {
			continue
		}
		if rect, ok := p.tryAdd(size); ok {
			return a.commit(fp, pi, rect, mode), true
		}
	}
	if len(a.pages) >= a.maxPages {
		if a.evictOldest() {
			return a.Insert(fp, w, h, mode)
		}
		return 0, false
	}
	p := newPage(a.maxPageDim, mode)
	a.pages = append(a.pages, p)
	tracer().Debugf("opened atlas page %d (%dx%d, mode %d)", len(a.pages)-1, a.maxPageDim, a.maxPageDim, mode)
	if rect, ok := p.tryAdd(size); ok {
		return a.commit(fp, len(a.pages)-1, rect, mode), true
	}
	return 0, false
}

func (a *Atlas) commit(fp Fingerprint, pageIdx int, rect image.Rectangle, mode Mode) Handle {
	a.nextHandle++
	h := a.nextHandle
	e := &entry{handle: h, fingerprint: fp, page: pageIdx, rect: rect, lastUse: a.frameStamp, pinned: true}
	a.entries[h] = e
	a.byPrint[fp] = h
	a.pages[pageIdx].markDirty(rect)
	return h
}

// Rect returns the sub-rectangle and owning page index of a resident entry.
func (a *Atlas) Rect(h Handle) (pageIdx int, rect image.Rectangle, ok bool) {
	e, ok := a.entries[h]
	if !ok {
		return 0, image.Rectangle{}, false
	}
	return e.page, e.rect, true
}

// WritePixels copies data into the page region backing h and marks that
// region dirty for the next flush.
func (a *Atlas) WritePixels(h Handle, data []byte) bool {
	e, ok := a.entries[h]
	if !ok {
		return false
	}
	a.pages[e.page].write(e.rect, data)
	return true
}

// EndFrame unpins every entry and advances the frame stamp, mirroring
// resourceCache.frame()'s res/newRes swap (gpu/caches.go): entries looked up
// or inserted during a frame stay pinned only until that frame's EndFrame,
// after which every entry is evictable until it is touched again.
func (a *Atlas) EndFrame() []DirtyRegion {
	for _, e := range a.entries {
		e.pinned = false
	}
	a.frameStamp++
	var regions []DirtyRegion
	for i, p := range a.pages {
		if r, ok := p.flushDirty(); ok {
			regions = append(regions, DirtyRegion{Page: i, Rect: r})
		}
	}
	return regions
}

// DirtyRegion is one page's accumulated write region since the last flush
// (§4.G "the external renderer reads it and acknowledges via end_frame").
type DirtyRegion struct {
	Page int
	Rect image.Rectangle
}

// Texture describes one atlas page's backing pixel buffer, the shape a host
// renderer needs to allocate and upload a GPU texture (§6 upload contract:
// "texture(i) -> {width, height, bits-per-pixel, pixel pointer}").
type Texture struct {
	Width, Height int
	BitsPerPixel  int
	Pixels        []byte
}

// TextureCount returns the number of backing pages, i.e. the number of
// textures a host renderer must keep allocated (§6 "texture_count()").
func (a *Atlas) TextureCount() int { return len(a.pages) }

// Texture returns page i's pixel buffer and format (§6 "texture(i)"). The
// returned Pixels slice aliases the page's storage; callers must not retain
// it across a call that could grow or evict the page.
func (a *Atlas) Texture(i int) Texture {
	p := a.pages[i]
	return Texture{
		Width:        p.maxDim,
		Height:       p.maxDim,
		BitsPerPixel: p.bpp * 8,
		Pixels:       p.pix,
	}
}

// evictOldest removes the least-recently-used, unpinned entry across all
// pages, returning its rectangle to that page's free list, and returns
// false if nothing is evictable (every entry pinned).
func (a *Atlas) evictOldest() bool {
	var oldest Handle
	var oldestStamp uint64 = ^uint64(0)
	for h, e := range a.entries {
		if e.pinned {
			continue
		}
		if e.lastUse < oldestStamp {
			oldest, oldestStamp = h, e.lastUse
		}
	}
	if oldest == 0 {
		return false
	}
	a.evict(oldest)
	return true
}

func (a *Atlas) evict(h Handle) {
	e, ok := a.entries[h]
	if !ok {
		return
	}
	delete(a.entries, h)
	delete(a.byPrint, e.fingerprint)
	a.pages[e.page].freeRect(e.rect)
}

// Compact evicts every unpinned entry whose last use is more than
// stalenessThreshold frames old, then coalesces each page's free list
// (§4.G "evict cold entries, coalesce free space"). Resident entries are not
// moved, so no page is marked dirty.
func (a *Atlas) Compact(stalenessThreshold uint64) {
	for h, e := range a.entries {
		if e.pinned {
			continue
		}
		if a.frameStamp-e.lastUse > stalenessThreshold {
			a.evict(h)
		}
	}
	for _, p := range a.pages {
		p.coalesce()
	}
}
