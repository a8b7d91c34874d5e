package buffer

import "github.com/npillmayer/schuko/tracing"

// tracer writes to trace with key 'skribidi.buffer', mirroring the
// teacher's per-package tracer() accessor (npillmayer/opentype's font.go).
func tracer() tracing.Trace {
	return tracing.Select("skribidi.buffer")
}
