package statestore

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// A container wraps the exact archive encoding in a compressed envelope.
// The inner layout is unchanged; the envelope adds a codec tag and a CRC32
// of the raw archive bytes so storage corruption is caught before header
// decoding runs.
//
// Envelope layout (little-endian, no padding):
//
//	marker      [4]byte  "STSC"
//	version     uint16
//	codec       uint8    1=zstd, 2=lz4
//	level       uint8    codec-specific level (zstd only)
//	checksum    uint32   CRC32 (IEEE) of the raw archive bytes
//	raw_length  uint64   size of the raw archive bytes
//
// followed by the compressed stream.

// Compression selects the container codec.
type Compression uint8

const (
	// CompressionZstd compresses with zstd. Level maps to zstd levels 1-22.
	CompressionZstd Compression = 1
	// CompressionLZ4 compresses with lz4 frame encoding.
	CompressionLZ4 Compression = 2
)

// ErrChecksumMismatch is returned when a container's payload does not match
// its recorded checksum.
var ErrChecksumMismatch = errors.New("container checksum mismatch")

var containerMagic = [4]byte{'S', 'T', 'S', 'C'}

const containerVersion = uint16(1)

// ContainerOptions configures container writing.
type ContainerOptions struct {
	// Compression selects the codec. Defaults to zstd.
	Compression Compression
	// Level sets the zstd compression level (1-22). Default 3.
	Level int
}

func (o *ContainerOptions) defaults() {
	if o.Compression == 0 {
		o.Compression = CompressionZstd
	}
	if o.Level == 0 {
		o.Level = 3 // zstd default level
	}
}

// StoreContainer writes the archive to w inside a compressed container.
func (a *Archive) StoreContainer(w io.Writer, opts ContainerOptions) error {
	opts.defaults()

	var raw bytes.Buffer
	if err := a.Store(&raw); err != nil {
		return err
	}

	var fixed [20]byte
	copy(fixed[0:4], containerMagic[:])
	binary.LittleEndian.PutUint16(fixed[4:6], containerVersion)
	fixed[6] = uint8(opts.Compression)
	fixed[7] = uint8(opts.Level)
	binary.LittleEndian.PutUint32(fixed[8:12], crc32.ChecksumIEEE(raw.Bytes()))
	binary.LittleEndian.PutUint64(fixed[12:], uint64(raw.Len()))
	if _, err := w.Write(fixed[:]); err != nil {
		return fmt.Errorf("failed to write container header: %w", err)
	}

	switch opts.Compression {
	case CompressionZstd:
		level := zstd.EncoderLevelFromZstd(opts.Level)
		enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(level))
		if err != nil {
			return fmt.Errorf("failed to create zstd writer: %w", err)
		}
		if _, err := enc.Write(raw.Bytes()); err != nil {
			_ = enc.Close()
			return fmt.Errorf("failed to compress archive: %w", err)
		}
		return enc.Close()
	case CompressionLZ4:
		enc := lz4.NewWriter(w)
		if _, err := enc.Write(raw.Bytes()); err != nil {
			_ = enc.Close()
			return fmt.Errorf("failed to compress archive: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported container codec: %d", opts.Compression)
	}
}

// StoreContainerFile writes a compressed container to path atomically.
func (a *Archive) StoreContainerFile(path string, opts ContainerOptions) error {
	return saveToFile(path, func(w io.Writer) error {
		return a.StoreContainer(w, opts)
	})
}

// LoadContainer replaces the archive contents with the states stored in a
// compressed container read from r. Failure semantics match Load.
func (a *Archive) LoadContainer(r io.Reader) error {
	a.Clear()

	raw, err := readContainer(r)
	if err != nil {
		a.logger.LogLoad(0, err)
		return err
	}
	return a.Load(bytes.NewReader(raw))
}

// LoadContainerFile opens path and delegates to LoadContainer.
func (a *Archive) LoadContainerFile(path string) error {
	f, err := openFile(path)
	if err != nil {
		a.Clear()
		a.logger.LogLoad(0, err)
		return err
	}
	defer f.Close()

	return a.LoadContainer(f)
}

// readContainer decodes the envelope and returns the verified raw archive
// bytes.
func readContainer(r io.Reader) ([]byte, error) {
	var fixed [20]byte
	if _, err := io.ReadFull(r, fixed[:]); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTruncatedHeader, err)
	}
	if [4]byte(fixed[0:4]) != containerMagic {
		return nil, fmt.Errorf("%w: got %q", ErrInvalidMarker, fixed[0:4])
	}
	if v := binary.LittleEndian.Uint16(fixed[4:6]); v != containerVersion {
		return nil, fmt.Errorf("unsupported container version: %d", v)
	}
	codec := Compression(fixed[6])
	checksum := binary.LittleEndian.Uint32(fixed[8:12])
	rawLen := binary.LittleEndian.Uint64(fixed[12:])
	if rawLen > maxPayloadBytes {
		return nil, fmt.Errorf("%w: implausible raw length %d", ErrTruncatedData, rawLen)
	}

	var dr io.Reader
	switch codec {
	case CompressionZstd:
		dec, err := zstd.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("failed to create zstd reader: %w", err)
		}
		defer dec.Close()
		dr = dec
	case CompressionLZ4:
		dr = lz4.NewReader(r)
	default:
		return nil, fmt.Errorf("unsupported container codec: %d", codec)
	}

	raw := make([]byte, rawLen)
	if _, err := io.ReadFull(dr, raw); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTruncatedData, err)
	}
	if got := crc32.ChecksumIEEE(raw); got != checksum {
		return nil, fmt.Errorf("%w: expected 0x%08x, got 0x%08x", ErrChecksumMismatch, checksum, got)
	}
	return raw, nil
}
