package realvector

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plankit/statestore"
)

func TestSignature(t *testing.T) {
	s := New("arm", 6, -1, 1)
	assert.Equal(t, statestore.Signature{2, 1, 6}, s.Signature())
	assert.True(t, s.Signature().Equal(New("other", 6, 0, 10).Signature()),
		"signature depends on structure, not name or bounds")
	assert.False(t, s.Signature().Equal(New("arm", 7, -1, 1).Signature()))
}

func TestSerializeRoundTrip(t *testing.T) {
	s := New("test", 4, -1, 1, WithSeed(7))

	src := s.AllocState().(*State)
	copy(src.Values, []float64{0.5, -0.25, 1, -1})

	buf := make([]byte, s.SerializationLength())
	s.Serialize(buf, src)

	dst := s.AllocState().(*State)
	s.Deserialize(dst, buf)
	assert.Equal(t, src.Values, dst.Values)
}

func TestSamplerWithinBounds(t *testing.T) {
	s := NewWithBounds("test", []float64{-1, 0, 5}, []float64{1, 2, 5}, WithSeed(7))
	sampler := s.AllocSampler()

	st := s.AllocState().(*State)
	for i := 0; i < 100; i++ {
		sampler.SampleUniform(st)
		for axis, v := range st.Values {
			assert.GreaterOrEqual(t, v, s.low[axis])
			assert.LessOrEqual(t, v, s.high[axis])
		}
	}
}

func TestSamplerDeterministicWithSeed(t *testing.T) {
	draw := func() []float64 {
		s := New("test", 3, -1, 1, WithSeed(42))
		sampler := s.AllocSampler()
		st := s.AllocState().(*State)
		sampler.SampleUniform(st)
		return append([]float64(nil), st.Values...)
	}
	assert.Equal(t, draw(), draw())
}

func TestStatePoolRecycles(t *testing.T) {
	s := New("test", 3, -1, 1)

	st := s.AllocState().(*State)
	require.Len(t, st.Values, 3)
	s.FreeState(st)

	st2 := s.AllocState().(*State)
	require.Len(t, st2.Values, 3)
}

func TestCopyState(t *testing.T) {
	s := New("test", 2, -1, 1)

	src := s.AllocState().(*State)
	src.Values[0], src.Values[1] = 0.1, 0.2
	dst := s.AllocState().(*State)

	s.CopyState(dst, src)
	assert.Equal(t, src.Values, dst.Values)

	src.Values[0] = 0.9
	assert.Equal(t, 0.1, dst.Values[0], "copies do not alias")
}

func TestPrintState(t *testing.T) {
	s := New("test", 2, -1, 1)
	st := s.AllocState().(*State)
	st.Values[0], st.Values[1] = 0.5, -0.5

	var sb strings.Builder
	s.PrintState(&sb, st)
	assert.Equal(t, "RealVectorState [0.5 -0.5]\n", sb.String())
}

func TestNewWithBoundsMismatchPanics(t *testing.T) {
	assert.Panics(t, func() {
		NewWithBounds("bad", []float64{0}, []float64{1, 2})
	})
}
