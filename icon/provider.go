// Package icon defines the opaque icon-provider contract (§6). The SVG icon
// parser is explicitly an external collaborator (§1); the core only
// consumes rasterized pixels and proportional sizing through this
// interface.
package icon

// Handle is an opaque reference to a named icon resource.
type Handle uint32

// AlphaMode selects whether Rasterize produces a single-channel alpha mask
// (for monochrome icons tinted by the caller's paint) or full RGBA (for
// color icons), mirroring the atlas's RGBA-vs-alpha page distinction (§3).
type AlphaMode uint8

const (
	AlphaMask AlphaMode = iota
	AlphaColor
)

// Provider is the capability set the library depends on for icon content
// runs (§3 content-run variant "icon") and list markers (§4.E step 9).
type Provider interface {
	Find(name string) (Handle, bool)
	// ProportionalSize returns the rasterization size that preserves the
	// icon's aspect ratio within a w x h box.
	ProportionalSize(h Handle, w, height int) (int, int)
	Rasterize(h Handle, w, height int, mode AlphaMode) ([]byte, error)
	IsColor(h Handle) bool
}
