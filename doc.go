// Package statestore persists and restores ordered collections of opaque,
// fixed-layout states produced by an abstract state space, and exposes the
// restored collections as precomputed samplers.
//
// Motion-planning and search systems use it to cache expensive-to-generate
// sample sets (e.g. precomputed valid configurations) across runs.
//
// # Quick Start
//
//	space := realvector.New("arm", 6, -1, 1)
//	arch := statestore.New(space)
//	arch.GenerateSamples(10000)
//	_ = arch.StoreFile("arm.samples")
//
//	// Later, possibly in another process:
//	arch := statestore.New(space)
//	_ = arch.LoadFile("arm.samples")
//	alloc := arch.SamplerAllocator()
//	sampler, err := alloc(space) // re-validates the space signature
//
// # Compatibility
//
// Every archive embeds the signature of the state space it was written for.
// Loading an archive into a structurally different space reports a
// signature mismatch and leaves the archive empty; allocating a precomputed
// sampler against a mismatched space returns an error callers must treat as
// fatal. Both paths apply the same exact-equality rule.
//
// # Storage
//
// Archives write to streams, files (atomically), compressed containers
// (zstd or lz4 with a CRC32 of the raw bytes), and object storage through
// the blobstore subpackages (local disk, memory, MinIO, AWS S3).
package statestore
