// Package realvector provides a bounded R^n state space whose states
// serialize to a fixed number of little-endian float64 words.
package realvector

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/plankit/statestore"
)

// spaceType is the signature type code for real vector spaces.
const spaceType = 1

// State is a point in R^n.
type State struct {
	Values []float64
}

// Space is a bounded real vector state space.
type Space struct {
	name string
	low  []float64
	high []float64

	seed       int64
	samplerSeq atomic.Int64

	pool sync.Pool
}

// Option configures a Space.
type Option func(*Space)

// WithSeed fixes the seed from which sampler streams are derived, making
// sample generation reproducible.
func WithSeed(seed int64) Option {
	return func(s *Space) {
		s.seed = seed
	}
}

// New creates a dim-dimensional space with the same bounds on every axis.
func New(name string, dim int, low, high float64, optFns ...Option) *Space {
	lo := make([]float64, dim)
	hi := make([]float64, dim)
	for i := range lo {
		lo[i] = low
		hi[i] = high
	}
	return NewWithBounds(name, lo, hi, optFns...)
}

// NewWithBounds creates a space with per-axis bounds. low and high must
// have equal length and low[i] <= high[i] for every axis.
func NewWithBounds(name string, low, high []float64, optFns ...Option) *Space {
	if len(low) != len(high) {
		panic(fmt.Sprintf("realvector: bounds length mismatch: %d vs %d", len(low), len(high)))
	}
	s := &Space{
		name: name,
		low:  low,
		high: high,
		seed: time.Now().UnixNano(),
	}
	s.pool.New = func() any {
		return &State{Values: make([]float64, len(low))}
	}
	for _, fn := range optFns {
		fn(s)
	}
	return s
}

// Name returns the space name.
func (s *Space) Name() string {
	return s.name
}

// Dimension returns the number of axes.
func (s *Space) Dimension() int {
	return len(s.low)
}

// Signature returns the layout fingerprint: type code plus dimension.
func (s *Space) Signature() statestore.Signature {
	return statestore.MakeSignature(spaceType, int32(len(s.low)))
}

// SerializationLength returns 8 bytes per axis.
func (s *Space) SerializationLength() int {
	return len(s.low) * 8
}

// AllocState returns a state from the pool.
func (s *Space) AllocState() statestore.State {
	return s.pool.Get().(*State)
}

// FreeState returns a state to the pool.
func (s *Space) FreeState(st statestore.State) {
	if rs, ok := st.(*State); ok && len(rs.Values) == len(s.low) {
		s.pool.Put(rs)
	}
}

// CopyState copies src into dst.
func (s *Space) CopyState(dst, src statestore.State) {
	copy(dst.(*State).Values, src.(*State).Values)
}

// Serialize encodes src as little-endian float64 bits.
func (s *Space) Serialize(dst []byte, src statestore.State) {
	for i, v := range src.(*State).Values {
		binary.LittleEndian.PutUint64(dst[i*8:], math.Float64bits(v))
	}
}

// Deserialize decodes little-endian float64 bits into dst.
func (s *Space) Deserialize(dst statestore.State, src []byte) {
	values := dst.(*State).Values
	for i := range values {
		values[i] = math.Float64frombits(binary.LittleEndian.Uint64(src[i*8:]))
	}
}

// AllocSampler returns a uniform sampler over the space bounds. Each
// sampler draws from its own stream derived from the space seed.
func (s *Space) AllocSampler() statestore.Sampler {
	return &sampler{
		space: s,
		rng:   rand.New(rand.NewSource(s.seed + s.samplerSeq.Add(1))),
	}
}

// PrintState writes the state values, space-separated, in brackets.
func (s *Space) PrintState(w io.Writer, st statestore.State) {
	fmt.Fprint(w, "RealVectorState [")
	for i, v := range st.(*State).Values {
		if i > 0 {
			fmt.Fprint(w, " ")
		}
		fmt.Fprintf(w, "%g", v)
	}
	fmt.Fprintln(w, "]")
}

// sampler draws uniformly within the per-axis bounds.
type sampler struct {
	space *Space
	rng   *rand.Rand
}

func (sp *sampler) SampleUniform(dst statestore.State) {
	values := dst.(*State).Values
	for i := range values {
		lo, hi := sp.space.low[i], sp.space.high[i]
		values[i] = lo + sp.rng.Float64()*(hi-lo)
	}
}
