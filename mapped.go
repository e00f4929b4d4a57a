package statestore

import (
	"bytes"
	"fmt"

	"github.com/plankit/statestore/internal/mmap"
)

// LoadMapped replaces the archive contents with the states stored at path,
// deserializing directly from a read-only memory mapping instead of a
// scratch buffer. The mapping is released before returning; states are
// decoded into freshly allocated handles, so nothing references the file
// afterward.
//
// Failure semantics match Load: the archive is left empty and the taxonomy
// error is returned.
func (a *Archive) LoadMapped(path string) error {
	a.Clear()

	m, err := mmap.Open(path)
	if err != nil {
		err = fmt.Errorf("%w: %w", ErrUnavailable, err)
		a.logger.LogLoad(0, err)
		return err
	}
	defer m.Close()

	data := m.Bytes()
	br := bytes.NewReader(data)
	hdr, err := decodeHeader(br, a.space.Signature())
	if err != nil {
		a.logger.LogLoad(0, err)
		return err
	}
	payload := data[len(data)-br.Len():]

	stride := uint64(a.space.SerializationLength()) + hdr.MetadataSize
	if stride > 0 && hdr.StateCount > maxPayloadBytes/stride {
		err = fmt.Errorf("%w: implausible state count %d", ErrTruncatedData, hdr.StateCount)
		a.logger.LogLoad(0, err)
		return err
	}
	total := hdr.StateCount * stride
	if total > uint64(len(payload)) {
		err = fmt.Errorf("%w: payload holds %d of %d declared bytes", ErrTruncatedData, len(payload), total)
		a.logger.LogLoad(0, err)
		return err
	}

	a.deserializeRecords(payload[:total], hdr)
	a.logger.LogLoad(len(a.states), nil)
	return nil
}
