package statestore

import (
	"encoding/binary"
	"fmt"
	"io"
)

// archiveMagic identifies statestore archives (ASCII: "STS0").
var archiveMagic = [4]byte{'S', 'T', 'S', '0'}

// Header carries the counts decoded from an archive header.
//
// The on-disk layout, in order, little-endian, no padding:
//
//	marker            [4]byte   fixed constant "STS0"
//	signature_length  int32     count of following signature elements
//	signature_body    int32 x signature_length
//	state_count       uint64
//	metadata_size     uint64    reserved per-state auxiliary bytes
//
// followed by state_count records of
// (serialization_length + metadata_size) bytes each.
type Header struct {
	StateCount   uint64
	MetadataSize uint64
}

// encodeHeader writes the archive header for the given signature and counts.
func encodeHeader(w io.Writer, sig Signature, stateCount, metadataSize uint64) error {
	if _, err := w.Write(archiveMagic[:]); err != nil {
		return fmt.Errorf("failed to write archive marker: %w", err)
	}
	// The signature is written whole: its first element already is the
	// declared body length.
	for _, v := range sig {
		if err := binary.Write(w, binary.LittleEndian, v); err != nil {
			return fmt.Errorf("failed to write signature: %w", err)
		}
	}
	if err := binary.Write(w, binary.LittleEndian, stateCount); err != nil {
		return fmt.Errorf("failed to write state count: %w", err)
	}
	if err := binary.Write(w, binary.LittleEndian, metadataSize); err != nil {
		return fmt.Errorf("failed to write metadata size: %w", err)
	}
	return nil
}

// decodeHeader reads and validates an archive header against the live
// signature.
//
// On a signature mismatch it returns early without consuming the remaining
// signature elements or any state payload; callers must treat that as
// "nothing loaded", never as a partial load. A short read at any field maps
// to ErrTruncatedHeader so the comparison never runs against zero values.
func decodeHeader(r io.Reader, live Signature) (Header, error) {
	var marker [4]byte
	if _, err := io.ReadFull(r, marker[:]); err != nil {
		return Header{}, fmt.Errorf("%w: %w", ErrTruncatedHeader, err)
	}
	if marker != archiveMagic {
		return Header{}, fmt.Errorf("%w: got %q", ErrInvalidMarker, marker[:])
	}

	var sigLen int32
	if err := binary.Read(r, binary.LittleEndian, &sigLen); err != nil {
		return Header{}, fmt.Errorf("%w: %w", ErrTruncatedHeader, err)
	}
	if len(live) == 0 || live[0] != sigLen {
		return Header{}, fmt.Errorf("%w: stored signature length %d, live signature %s",
			ErrSignatureMismatch, sigLen, live)
	}
	for i := int32(0); i < sigLen; i++ {
		var v int32
		if err := binary.Read(r, binary.LittleEndian, &v); err != nil {
			return Header{}, fmt.Errorf("%w: %w", ErrTruncatedHeader, err)
		}
		if v != live[i+1] {
			return Header{}, fmt.Errorf("%w: stored element %d is %d, live signature %s",
				ErrSignatureMismatch, i, v, live)
		}
	}

	var hdr Header
	if err := binary.Read(r, binary.LittleEndian, &hdr.StateCount); err != nil {
		return Header{}, fmt.Errorf("%w: expected state count: %w", ErrTruncatedHeader, err)
	}
	if err := binary.Read(r, binary.LittleEndian, &hdr.MetadataSize); err != nil {
		return Header{}, fmt.Errorf("%w: expected metadata size: %w", ErrTruncatedHeader, err)
	}
	return hdr, nil
}

// headerSize returns the encoded size of a header carrying sig.
func headerSize(sig Signature) int {
	return len(archiveMagic) + len(sig)*4 + 8 + 8
}
