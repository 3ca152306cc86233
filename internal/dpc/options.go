// Package dpc implements the container codec for DPC archives: the
// sector-aligned block/pool layout, chunk-index accounting, and the
// extract/create/validate orchestration built on top of internal/lz and
// internal/fuelfmt.
package dpc

// Options gathers every flag the CLI front-end accepts into a single value
// passed by value into the codec, per the original's scattered global-flag
// reads — SPEC_FULL.md's design notes call for this to be threaded
// explicitly instead.
type Options struct {
	Input  string
	Output string
	Game   string

	Quiet  bool
	Force  bool
	Unsafe bool

	Extract bool
	Create  bool

	LZ           bool
	Optimization bool
	Recursive    bool

	NoPool           bool
	UnoptimizedPool  bool
}
