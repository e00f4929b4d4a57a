package statestore_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plankit/statestore"
	"github.com/plankit/statestore/realvector"
)

func containsValues(t *testing.T, a *statestore.Archive, got []float64) bool {
	t.Helper()
	for i := 0; i < a.Len(); i++ {
		if assert.ObjectsAreEqual(a.State(i).(*realvector.State).Values, got) {
			return true
		}
	}
	return false
}

func TestSamplerAllocator(t *testing.T) {
	a := newTestArchive(t, 3, statestore.WithSamplerSeed(1))
	a.GenerateSamples(10)

	alloc := a.SamplerAllocator()
	sampler, err := alloc(a.Space())
	require.NoError(t, err)

	dst := a.Space().AllocState()
	for i := 0; i < 50; i++ {
		sampler.SampleUniform(dst)
		assert.True(t, containsValues(t, a, dst.(*realvector.State).Values),
			"every sample must be a stored state")
	}
}

func TestSamplerAllocatorSignatureMismatch(t *testing.T) {
	a := newTestArchive(t, 3)
	a.GenerateSamples(10)

	alloc := a.SamplerAllocator()
	other := realvector.New("other", 4, -1, 1)

	sampler, err := alloc(other)
	require.ErrorIs(t, err, statestore.ErrSignatureMismatch)
	assert.Nil(t, sampler)
	assert.Contains(t, err.Error(), `"other"`, "the error names the offending space")
}

func TestSamplerAllocatorEmptyArchive(t *testing.T) {
	a := newTestArchive(t, 3)

	sampler, err := a.SamplerAllocator()(a.Space())
	require.Error(t, err)
	assert.Nil(t, sampler)
	assert.Contains(t, err.Error(), "empty set of states")
}

func TestSamplerSeesStatesAddedAfterAllocation(t *testing.T) {
	a := newTestArchive(t, 1, statestore.WithSamplerSeed(1))
	s := a.Space().AllocState()
	s.(*realvector.State).Values[0] = 0.25
	a.AddState(s)

	sampler, err := a.SamplerAllocator()(a.Space())
	require.NoError(t, err)

	s2 := a.Space().AllocState()
	s2.(*realvector.State).Values[0] = 0.75
	a.AddState(s2)

	// With two states and many draws, both must show up.
	seen := map[float64]bool{}
	dst := a.Space().AllocState()
	for i := 0; i < 200; i++ {
		sampler.SampleUniform(dst)
		seen[dst.(*realvector.State).Values[0]] = true
	}
	assert.True(t, seen[0.25])
	assert.True(t, seen[0.75], "growth after allocation is visible to the sampler")
}

func TestSamplerAllocatorRange(t *testing.T) {
	a := newTestArchive(t, 1, statestore.WithSamplerSeed(1))
	for i := 0; i < 10; i++ {
		s := a.Space().AllocState()
		s.(*realvector.State).Values[0] = float64(i)
		a.AddState(s)
	}

	sampler, err := a.SamplerAllocatorRange(3, 6)(a.Space())
	require.NoError(t, err)

	dst := a.Space().AllocState()
	for i := 0; i < 100; i++ {
		sampler.SampleUniform(dst)
		v := dst.(*realvector.State).Values[0]
		assert.GreaterOrEqual(t, v, 3.0)
		assert.Less(t, v, 6.0)
	}
}

func TestSamplerAllocatorRangeEmptyWindow(t *testing.T) {
	a := newTestArchive(t, 1)
	a.GenerateSamples(10)

	sampler, err := a.SamplerAllocatorRange(5, 5)(a.Space())
	require.Error(t, err)
	assert.Nil(t, sampler)
}

func TestSamplerAllocatorAfterLoad(t *testing.T) {
	src := newTestArchive(t, 2)
	src.GenerateSamples(10)
	var buf bytes.Buffer
	require.NoError(t, src.Store(&buf))

	dst := newTestArchive(t, 2)
	require.NoError(t, dst.Load(&buf))

	// The loaded archive yields a working sampler for a structurally equal
	// space, the same equality rule the load itself applied.
	sampler, err := dst.SamplerAllocator()(newTestSpace(t, 2))
	require.NoError(t, err)

	out := dst.Space().AllocState()
	sampler.SampleUniform(out)
	assert.True(t, containsValues(t, dst, out.(*realvector.State).Values))
}

func TestSamplerDeterministicWithSeed(t *testing.T) {
	build := func() []float64 {
		a := newTestArchive(t, 1, statestore.WithSamplerSeed(99))
		for i := 0; i < 10; i++ {
			s := a.Space().AllocState()
			s.(*realvector.State).Values[0] = float64(i)
			a.AddState(s)
		}
		sampler, err := a.SamplerAllocator()(a.Space())
		require.NoError(t, err)

		var draws []float64
		dst := a.Space().AllocState()
		for i := 0; i < 20; i++ {
			sampler.SampleUniform(dst)
			draws = append(draws, dst.(*realvector.State).Values[0])
		}
		return draws
	}

	assert.Equal(t, build(), build())
}
