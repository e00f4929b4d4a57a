package statestore

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMakeSignature(t *testing.T) {
	sig := MakeSignature(1, 6)
	assert.Equal(t, Signature{2, 1, 6}, sig)

	empty := MakeSignature()
	assert.Equal(t, Signature{0}, empty)
}

func TestSignatureEqual(t *testing.T) {
	a := MakeSignature(1, 6)
	b := MakeSignature(1, 6)
	c := MakeSignature(1, 7)
	d := MakeSignature(1)

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.False(t, a.Equal(d))
	assert.True(t, Signature(nil).Equal(Signature{}))
}

func TestSignatureClone(t *testing.T) {
	a := MakeSignature(2, 3)
	b := a.Clone()
	b[1] = 99

	assert.Equal(t, int32(2), a[1])
	assert.Nil(t, Signature(nil).Clone())
}

func TestSignatureString(t *testing.T) {
	assert.Equal(t, "2 1 6", MakeSignature(1, 6).String())
	assert.Equal(t, "", Signature(nil).String())
}
