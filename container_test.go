package statestore_test

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plankit/statestore"
)

func TestContainerRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		opts statestore.ContainerOptions
	}{
		{name: "defaults"},
		{name: "zstd", opts: statestore.ContainerOptions{Compression: statestore.CompressionZstd, Level: 9}},
		{name: "lz4", opts: statestore.ContainerOptions{Compression: statestore.CompressionLZ4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := newTestArchive(t, 3)
			src.GenerateSamples(200)
			want := stateValues(src)

			var buf bytes.Buffer
			require.NoError(t, src.StoreContainer(&buf, tt.opts))

			dst := newTestArchive(t, 3)
			require.NoError(t, dst.LoadContainer(&buf))
			assert.Equal(t, want, stateValues(dst))
		})
	}
}

func TestContainerCompresses(t *testing.T) {
	src := newTestArchive(t, 8)
	for i := 0; i < 1000; i++ {
		s := src.Space().AllocState()
		src.AddState(s)
	}

	var raw, packed bytes.Buffer
	require.NoError(t, src.Store(&raw))
	require.NoError(t, src.StoreContainer(&packed, statestore.ContainerOptions{}))

	assert.Less(t, packed.Len(), raw.Len())
}

func TestContainerChecksumMismatch(t *testing.T) {
	src := newTestArchive(t, 2)
	src.GenerateSamples(10)

	var buf bytes.Buffer
	require.NoError(t, src.StoreContainer(&buf, statestore.ContainerOptions{}))
	data := buf.Bytes()
	// Flip a checksum byte in the envelope; the compressed stream itself
	// stays valid.
	data[8] ^= 0xFF

	dst := newTestArchive(t, 2)
	err := dst.LoadContainer(bytes.NewReader(data))
	assert.ErrorIs(t, err, statestore.ErrChecksumMismatch)
	assert.Zero(t, dst.Len())
}

func TestContainerInvalidMarker(t *testing.T) {
	src := newTestArchive(t, 2)
	src.GenerateSamples(5)

	var buf bytes.Buffer
	require.NoError(t, src.StoreContainer(&buf, statestore.ContainerOptions{}))
	data := buf.Bytes()
	data[0] = 'X'

	dst := newTestArchive(t, 2)
	err := dst.LoadContainer(bytes.NewReader(data))
	assert.ErrorIs(t, err, statestore.ErrInvalidMarker)
	assert.Zero(t, dst.Len())
}

func TestContainerTruncated(t *testing.T) {
	src := newTestArchive(t, 2)
	src.GenerateSamples(50)

	var buf bytes.Buffer
	require.NoError(t, src.StoreContainer(&buf, statestore.ContainerOptions{}))
	data := buf.Bytes()

	dst := newTestArchive(t, 2)

	err := dst.LoadContainer(bytes.NewReader(data[:10]))
	assert.ErrorIs(t, err, statestore.ErrTruncatedHeader)

	err = dst.LoadContainer(bytes.NewReader(data[:len(data)-20]))
	assert.ErrorIs(t, err, statestore.ErrTruncatedData)
	assert.Zero(t, dst.Len())
}

func TestContainerFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "states.stsc")

	src := newTestArchive(t, 3)
	src.GenerateSamples(100)
	want := stateValues(src)
	require.NoError(t, src.StoreContainerFile(path, statestore.ContainerOptions{Compression: statestore.CompressionLZ4}))

	dst := newTestArchive(t, 3)
	require.NoError(t, dst.LoadContainerFile(path))
	assert.Equal(t, want, stateValues(dst))
}

func TestContainerSignatureMismatch(t *testing.T) {
	src := newTestArchive(t, 3)
	src.GenerateSamples(10)

	var buf bytes.Buffer
	require.NoError(t, src.StoreContainer(&buf, statestore.ContainerOptions{}))

	dst := newTestArchive(t, 4)
	err := dst.LoadContainer(&buf)
	assert.ErrorIs(t, err, statestore.ErrSignatureMismatch)
	assert.Zero(t, dst.Len())
}
