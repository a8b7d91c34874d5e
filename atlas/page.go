package atlas

import "image"

// page is one atlas page: a shelf/bin packer over a maxDim x maxDim image,
// grounded on gio's gpu.packer (gpu/compute.go) -- tryAdd places a rect on
// the first shelf with room, or opens a new shelf; newPage starts a fresh
// packer instance. Evicted rectangles are tracked as a free-rectangle list
// per §4.G ("free-rectangle list; best-fit by shortest-side"), consulted
// before falling back to shelf growth.
type page struct {
	mode     Mode
	maxDim   int
	bpp      int
	pix      []byte
	shelves  []shelf
	free     []image.Rectangle
	dirty    image.Rectangle
	hasDirty bool
}

type shelf struct {
	y, height int
	used      int // width used so far
}

func newPage(maxDim int, mode Mode) *page {
	bpp := bytesPerPixel(mode)
	return &page{mode: mode, maxDim: maxDim, bpp: bpp, pix: make([]byte, maxDim*maxDim*bpp)}
}

// bytesPerPixel returns a mode's pixel stride: one byte for the alpha-only
// coverage masks glyphs rasterize to, four for packed color icons.
func bytesPerPixel(mode Mode) int {
	if mode == ModeRGBA {
		return 4
	}
	return 1
}

// tryAdd places a w x h rectangle, preferring a best-fit free rectangle
// (shortest-side heuristic, §4.G) before extending or opening a shelf.
func (p *page) tryAdd(size image.Point) (image.Rectangle, bool) {
	if rect, ok := p.tryFreeList(size); ok {
		return rect, true
	}
	for i := range p.shelves {
		s := &p.shelves[i]
		if size.Y > s.height {
			continue
		}
		if s.used+size.X > p.maxDim {
			continue
		}
		rect := image.Rect(s.used, s.y, s.used+size.X, s.y+size.Y)
		s.used += size.X
		return rect, true
	}
	return p.newShelf(size)
}

func (p *page) newShelf(size image.Point) (image.Rectangle, bool) {
	y := 0
	if n := len(p.shelves); n > 0 {
		last := p.shelves[n-1]
		y = last.y + last.height
	}
	if y+size.Y > p.maxDim || size.X > p.maxDim {
		return image.Rectangle{}, false
	}
	p.shelves = append(p.shelves, shelf{y: y, height: size.Y, used: size.X})
	return image.Rect(0, y, size.X, y+size.Y), true
}

// tryFreeList finds the best fit among freed rectangles large enough for
// size: the one with the shortest side (first found on ties).
func (p *page) tryFreeList(size image.Point) (image.Rectangle, bool) {
	best := -1
	for i, r := range p.free {
		if r.Dx() < size.X || r.Dy() < size.Y {
			continue
		}
		if best == -1 || shortestSide(r) < shortestSide(p.free[best]) {
			best = i
		}
	}
	if best == -1 {
		return image.Rectangle{}, false
	}
	r := p.free[best]
	p.free = append(p.free[:best], p.free[best+1:]...)
	placed := image.Rect(r.Min.X, r.Min.Y, r.Min.X+size.X, r.Min.Y+size.Y)
	return placed, true
}

func shortestSide(r image.Rectangle) int {
	if r.Dx() < r.Dy() {
		return r.Dx()
	}
	return r.Dy()
}

// freeRect returns a rectangle's space to the free list for reuse by a
// later allocation (§4.G).
func (p *page) freeRect(r image.Rectangle) { p.free = append(p.free, r) }

func (p *page) markDirty(r image.Rectangle) {
	if !p.hasDirty {
		p.dirty = r
		p.hasDirty = true
		return
	}
	p.dirty = p.dirty.Union(r)
}

// write copies a tightly-packed w*h*bpp pixel rectangle into the page's own
// backing buffer at r, row by row to account for the page's full-width
// stride, and marks r dirty for the next upload (§6 atlas upload contract:
// the host renderer reads pixels back via Atlas.Texture, it does not own
// storage itself).
func (p *page) write(r image.Rectangle, data []byte) {
	w, h := r.Dx(), r.Dy()
	rowBytes := w * p.bpp
	for row := 0; row < h; row++ {
		srcOff := row * rowBytes
		if srcOff+rowBytes > len(data) {
			break
		}
		dstY := r.Min.Y + row
		dstOff := (dstY*p.maxDim + r.Min.X) * p.bpp
		copy(p.pix[dstOff:dstOff+rowBytes], data[srcOff:srcOff+rowBytes])
	}
	p.markDirty(r)
}

func (p *page) flushDirty() (image.Rectangle, bool) {
	if !p.hasDirty {
		return image.Rectangle{}, false
	}
	r := p.dirty
	p.hasDirty = false
	p.dirty = image.Rectangle{}
	return r, true
}

// coalesce merges adjacent free rectangles on the same shelf row into one,
// reducing free-list fragmentation (§4.G "coalesce free space").
func (p *page) coalesce() {
	if len(p.free) < 2 {
		return
	}
	var merged []image.Rectangle
	used := make([]bool, len(p.free))
	for i, a := range p.free {
		if used[i] {
			continue
		}
		cur := a
		for j := i + 1; j < len(p.free); j++ {
			if used[j] {
				continue
			}
			b := p.free[j]
			if cur.Min.Y == b.Min.Y && cur.Max.Y == b.Max.Y && cur.Max.X == b.Min.X {
				cur.Max.X = b.Max.X
				used[j] = true
			}
		}
		merged = append(merged, cur)
	}
	p.free = merged
}
