// Package emit renders the build artifacts for a namespace's jobs: one
// command file per job, the shaders.h constant header, the namespace
// depfile and the optional cross-namespace aggregate depfile.
//
// Renderers return bytes and writers go through an fsutil.Sink, so the same
// output can be written to disk or captured in memory.
package emit

const (
	// HeaderName is the per-namespace constant header.
	HeaderName = "shaders.h"
	// DepfileName is the per-namespace dependency file.
	DepfileName = "agrb_shaders.d"
	// AggregateDepfileName is written to the build root when an aggregate
	// target is requested.
	AggregateDepfileName = "agrb_shaders_all.d"
	// SymbolPrefix starts every header constant.
	SymbolPrefix = "AS_"
)
