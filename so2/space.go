// Package so2 provides a planar-rotation state space: a single angle in
// [-pi, pi), wrapped on copy and sampling.
package so2

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"math/rand"
	"sync/atomic"
	"time"

	"github.com/plankit/statestore"
)

// spaceType is the signature type code for planar rotation spaces.
const spaceType = 2

// State is an orientation in the plane.
type State struct {
	Angle float64
}

// Space is the SO(2) state space.
type Space struct {
	name       string
	seed       int64
	samplerSeq atomic.Int64
}

// New creates a planar-rotation space.
func New(name string) *Space {
	return &Space{
		name: name,
		seed: time.Now().UnixNano(),
	}
}

// WithSeed fixes the seed from which sampler streams are derived.
func (s *Space) WithSeed(seed int64) *Space {
	s.seed = seed
	return s
}

// Name returns the space name.
func (s *Space) Name() string {
	return s.name
}

// Signature returns the layout fingerprint: type code plus dimension.
func (s *Space) Signature() statestore.Signature {
	return statestore.MakeSignature(spaceType, 1)
}

// SerializationLength returns the fixed state size of one float64 word.
func (s *Space) SerializationLength() int {
	return 8
}

// AllocState returns a fresh state.
func (s *Space) AllocState() statestore.State {
	return &State{}
}

// FreeState releases a state. States are small enough that pooling is not
// worth the bookkeeping here.
func (s *Space) FreeState(statestore.State) {}

// CopyState copies src into dst, normalizing the angle.
func (s *Space) CopyState(dst, src statestore.State) {
	dst.(*State).Angle = wrap(src.(*State).Angle)
}

// Serialize encodes the angle as little-endian float64 bits.
func (s *Space) Serialize(dst []byte, src statestore.State) {
	binary.LittleEndian.PutUint64(dst, math.Float64bits(src.(*State).Angle))
}

// Deserialize decodes little-endian float64 bits into dst.
func (s *Space) Deserialize(dst statestore.State, src []byte) {
	dst.(*State).Angle = math.Float64frombits(binary.LittleEndian.Uint64(src))
}

// AllocSampler returns a uniform sampler over [-pi, pi).
func (s *Space) AllocSampler() statestore.Sampler {
	return &sampler{
		rng: rand.New(rand.NewSource(s.seed + s.samplerSeq.Add(1))),
	}
}

// PrintState writes the angle in radians.
func (s *Space) PrintState(w io.Writer, st statestore.State) {
	fmt.Fprintf(w, "SO2State [%g]\n", st.(*State).Angle)
}

type sampler struct {
	rng *rand.Rand
}

func (sp *sampler) SampleUniform(dst statestore.State) {
	dst.(*State).Angle = -math.Pi + sp.rng.Float64()*2*math.Pi
}

// wrap normalizes an angle to [-pi, pi).
func wrap(a float64) float64 {
	a = math.Mod(a+math.Pi, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a - math.Pi
}
