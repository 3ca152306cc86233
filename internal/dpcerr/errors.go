// Package dpcerr defines the error taxonomy shared by the lz, schema,
// fuelfmt and dpc packages. Every sentinel here is meant to be matched with
// errors.Is after a call into the codec has failed; callers that need the
// offending block index or object crc32 find it in the wrapped message, not
// in a separate structured field, mirroring how the rest of this codebase
// annotates errors through xerrors.Errorf("%w: ...").
package dpcerr

import "errors"

var (
	// ErrMalformedContainer covers primary/block header schema failures:
	// block_count > 64, unconsumed trailing bytes in strict mode, or a
	// size invariant violated while walking block objects.
	ErrMalformedContainer = errors.New("dpc: malformed container")

	// ErrUnknownVersion is returned when version_string isn't in the known
	// version table and Options.Unsafe is false.
	ErrUnknownVersion = errors.New("dpc: unknown version string")

	// ErrMalformedStream covers LZ decode overruns/underruns.
	ErrMalformedStream = errors.New("dpc: malformed lz stream")

	// ErrMalformedObject covers a typed-format schema rejecting a body.
	ErrMalformedObject = errors.New("dpc: malformed object")

	// ErrInconsistentManifest covers manifest/object-tree mismatches found
	// while creating: a referenced object file is missing, or compress
	// flags diverge for the same pooled object across blocks. Manifest
	// entries that share a crc32 are not compared with each other.
	ErrInconsistentManifest = errors.New("dpc: inconsistent manifest")

	// ErrIOFailure wraps an underlying file operation failure. Most I/O
	// errors are returned as-is (they already satisfy errors.Is against
	// os/io sentinels); this exists for call sites that want to fold an
	// I/O failure into the taxonomy explicitly.
	ErrIOFailure = errors.New("dpc: io failure")
)
