package statestore

import (
	"fmt"
	"math/rand"
)

// SamplerAllocator returns an allocator that builds precomputed samplers
// backed by this archive's collection.
//
// The allocator captures the archive's current signature and a reference to
// the collection, not a copy: states added to the archive after the
// allocator (or a sampler) was created are visible to sampling. On every
// invocation the candidate space's signature is recomputed and compared
// against the captured one; a mismatch is an error the caller must treat as
// fatal, since proceeding would silently sample from incompatible data.
func (a *Archive) SamplerAllocator() SamplerAllocator {
	return a.samplerAllocator(0, -1)
}

// SamplerAllocatorRange is like SamplerAllocator but restricts sampling to
// states with indices in [from, to). A negative to tracks the collection
// end as it grows.
func (a *Archive) SamplerAllocatorRange(from, to int) SamplerAllocator {
	if from < 0 {
		from = 0
	}
	return a.samplerAllocator(from, to)
}

func (a *Archive) samplerAllocator(from, to int) SamplerAllocator {
	expected := a.space.Signature().Clone()
	return func(space StateSpace) (Sampler, error) {
		sig := space.Signature()
		if !sig.Equal(expected) {
			return nil, fmt.Errorf(
				"%w: cannot allocate state sampler for space %q: expected signature %s but space has signature %s",
				ErrSignatureMismatch, space.Name(), expected, sig)
		}
		lo, hi := a.sampleBounds(from, to)
		if hi <= lo {
			return nil, fmt.Errorf("empty set of states to sample from in space %q", space.Name())
		}
		return &precomputedSampler{
			space: space,
			arch:  a,
			from:  from,
			to:    to,
			rng:   rand.New(rand.NewSource(a.seed + a.seq.Add(1))),
		}, nil
	}
}

// sampleBounds clamps a configured [from, to) window to the current
// collection size.
func (a *Archive) sampleBounds(from, to int) (int, int) {
	n := len(a.states)
	if to < 0 || to > n {
		to = n
	}
	if from > to {
		from = to
	}
	return from, to
}

// precomputedSampler draws uniformly, with replacement, from the states an
// archive holds at sampling time. It keeps a non-owning reference to the
// collection and must not outlive a Clear of the archive.
type precomputedSampler struct {
	space StateSpace
	arch  *Archive
	from  int
	to    int
	rng   *rand.Rand
}

// SampleUniform copies a uniformly chosen stored state into dst.
func (s *precomputedSampler) SampleUniform(dst State) {
	lo, hi := s.arch.sampleBounds(s.from, s.to)
	idx := lo + s.rng.Intn(hi-lo)
	s.space.CopyState(dst, s.arch.states[idx])
}
