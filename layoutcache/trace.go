package layoutcache

import "github.com/npillmayer/schuko/tracing"

func tracer() tracing.Trace {
	return tracing.Select("skribidi.layoutcache")
}
