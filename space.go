package statestore

import "io"

// State is an opaque, fixed-length encoded configuration. States are
// produced and consumed only through the StateSpace that allocated them.
type State any

// Sampler draws states from a state space.
type Sampler interface {
	// SampleUniform overwrites dst with a uniformly drawn state.
	SampleUniform(dst State)
}

// SamplerAllocator produces a sampler bound to the given state space.
//
// Allocators returned by Archive.SamplerAllocator re-validate the space's
// signature on every invocation. A returned error means the candidate space
// is incompatible with the stored states; callers must treat it as fatal
// rather than falling back to a degraded sampler.
type SamplerAllocator func(space StateSpace) (Sampler, error)

// StateSpace describes the abstract state space an Archive persists states
// for. Implementations own state allocation and the per-state byte layout;
// the archive never inspects state contents.
//
// Implementations must keep Signature stable for an unchanged space, and
// Serialize/Deserialize must be exact inverses over SerializationLength
// bytes.
type StateSpace interface {
	// Name identifies the space in logs and error messages.
	Name() string

	// Signature returns the layout fingerprint of the space, including the
	// leading declared-length element.
	Signature() Signature

	// SerializationLength returns the fixed number of bytes a single
	// serialized state occupies.
	SerializationLength() int

	// AllocState returns a new state owned by the caller.
	AllocState() State

	// FreeState releases a state previously returned by AllocState.
	FreeState(s State)

	// CopyState copies src into dst.
	CopyState(dst, src State)

	// Serialize encodes src into dst, which holds at least
	// SerializationLength bytes.
	Serialize(dst []byte, src State)

	// Deserialize decodes SerializationLength bytes from src into dst.
	Deserialize(dst State, src []byte)

	// AllocSampler returns a live sampler for the space.
	AllocSampler() Sampler

	// PrintState writes a human-readable rendering of s to w.
	PrintState(w io.Writer, s State)
}
