package statestore

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/plankit/statestore/internal/mem"
)

// maxPayloadBytes caps the payload size computed from header counts.
// A corrupted count field would otherwise drive a huge allocation before
// the bulk read has a chance to fail.
const maxPayloadBytes = 1 << 40

// Archive owns an ordered collection of states bound to a single state
// space and persists them in the binary layout documented on Header.
//
// The collection order is significant: it is preserved across store and
// load and acts as the public iteration/index contract.
//
// An Archive is not safe for concurrent use with any mutating operation
// (Load, Store, AddState, GenerateSamples, Clear); callers needing
// concurrent access must serialize externally.
type Archive struct {
	space    StateSpace
	logger   *Logger
	metaSize int
	seed     int64
	seq      atomic.Int64

	states []State
	metas  [][]byte
}

// New creates an empty archive bound to space.
func New(space StateSpace, optFns ...Option) *Archive {
	a := &Archive{
		space:  space,
		logger: NewLogger(nil),
		seed:   time.Now().UnixNano(),
	}
	for _, fn := range optFns {
		fn(a)
	}
	a.logger = a.logger.WithSpace(space.Name())
	return a
}

// Space returns the bound state space.
func (a *Archive) Space() StateSpace {
	return a.space
}

// Len returns the number of states currently held.
func (a *Archive) Len() int {
	return len(a.states)
}

// State returns the state at index i.
func (a *Archive) State(i int) State {
	return a.states[i]
}

// StateMetadata returns the auxiliary bytes recorded for the state at
// index i, or nil when the archive carries no metadata.
func (a *Archive) StateMetadata(i int) []byte {
	if a.metaSize == 0 {
		return nil
	}
	return a.metas[i]
}

// MetadataSize returns the per-state auxiliary byte count.
func (a *Archive) MetadataSize() int {
	return a.metaSize
}

// AddState appends a state to the end of the collection. The archive takes
// ownership: the state must have been allocated by the bound space and is
// freed through it on Clear. The state is not copied or validated.
func (a *Archive) AddState(s State) {
	a.addState(s, nil)
}

// AddStateWithMetadata appends a state together with its auxiliary bytes.
// meta is copied; it is truncated or zero-padded to the configured
// metadata size.
func (a *Archive) AddStateWithMetadata(s State, meta []byte) {
	a.addState(s, meta)
}

func (a *Archive) addState(s State, meta []byte) {
	a.states = append(a.states, s)
	if a.metaSize > 0 {
		m := make([]byte, a.metaSize)
		copy(m, meta)
		a.metas = append(a.metas, m)
	}
}

// GenerateSamples draws count states uniformly from the space's live
// sampler and appends them in generation order.
func (a *Archive) GenerateSamples(count int) {
	sampler := a.space.AllocSampler()
	for i := 0; i < count; i++ {
		s := a.space.AllocState()
		sampler.SampleUniform(s)
		a.AddState(s)
	}
}

// Clear frees every owned state through the bound space and empties the
// collection. Safe to call on an already-empty archive.
//
// Precomputed samplers allocated from this archive must not be used after
// Clear: they hold non-owning references to the freed states.
func (a *Archive) Clear() {
	for _, s := range a.states {
		a.space.FreeState(s)
	}
	a.states = nil
	a.metas = nil
}

// Print writes a human-readable rendering of every state, in collection
// order, through the space's per-state printer.
func (a *Archive) Print(w io.Writer) {
	for _, s := range a.states {
		a.space.PrintState(w, s)
	}
}

// Load replaces the archive contents with the states decoded from r.
//
// Any failure (bad marker, signature mismatch, truncation) leaves the
// archive empty and returns the corresponding taxonomy error; the archive
// object itself stays valid. Callers that need to distinguish "empty file"
// from "incompatible file" inspect the returned error, or just Len().
func (a *Archive) Load(r io.Reader) error {
	a.Clear()

	if r == nil {
		a.logger.Warn("unable to load states", "error", ErrUnavailable)
		return ErrUnavailable
	}

	hdr, err := decodeHeader(r, a.space.Signature())
	if err != nil {
		a.logger.LogLoad(0, err)
		return err
	}
	return a.loadPayload(r, hdr)
}

// LoadFile opens path in binary mode and delegates to Load, closing the
// file afterward regardless of outcome.
func (a *Archive) LoadFile(path string) error {
	f, err := openFile(path)
	if err != nil {
		a.Clear()
		a.logger.LogLoad(0, err)
		return err
	}
	defer f.Close()

	return a.Load(bufio.NewReaderSize(f, 256*1024))
}

// openFile opens path for reading, mapping failures to ErrUnavailable.
func openFile(path string) (*os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return f, nil
}

// loadPayload bulk-reads and deserializes the state records that follow a
// successfully decoded header.
func (a *Archive) loadPayload(r io.Reader, hdr Header) error {
	stateLen := a.space.SerializationLength()
	stride := uint64(stateLen) + hdr.MetadataSize

	// Checked before multiplying: a corrupt count must not wrap total
	// below the cap.
	if stride > 0 && hdr.StateCount > maxPayloadBytes/stride {
		err := fmt.Errorf("%w: implausible state count %d", ErrTruncatedData, hdr.StateCount)
		a.logger.LogLoad(0, err)
		return err
	}
	total := hdr.StateCount * stride
	if total == 0 {
		a.metaSize = int(hdr.MetadataSize)
		a.logger.LogLoad(0, nil)
		return nil
	}

	buf := mem.Acquire(int(total))
	defer buf.Release()

	if _, err := io.ReadFull(r, buf.Bytes()); err != nil {
		err = fmt.Errorf("%w: %w", ErrTruncatedData, err)
		a.logger.LogLoad(0, err)
		return err
	}

	a.deserializeRecords(buf.Bytes(), hdr)
	a.logger.LogLoad(len(a.states), nil)
	return nil
}

// deserializeRecords decodes state records from data, which holds exactly
// StateCount records. Metadata bytes are retained faithfully when the
// header declares them.
func (a *Archive) deserializeRecords(data []byte, hdr Header) {
	stateLen := a.space.SerializationLength()
	stride := stateLen + int(hdr.MetadataSize)

	a.metaSize = int(hdr.MetadataSize)
	a.states = make([]State, 0, hdr.StateCount)
	if a.metaSize > 0 {
		a.metas = make([][]byte, 0, hdr.StateCount)
	}

	for i := uint64(0); i < hdr.StateCount; i++ {
		rec := data[int(i)*stride : int(i+1)*stride]
		s := a.space.AllocState()
		a.space.Deserialize(s, rec[:stateLen])
		a.addState(s, rec[stateLen:])
	}
}

// Store writes the header (live signature, current state count, metadata
// size) followed by every owned state serialized at its fixed offset, as
// one contiguous payload write.
func (a *Archive) Store(w io.Writer) error {
	if w == nil {
		a.logger.Warn("unable to store states", "error", ErrUnavailable)
		return ErrUnavailable
	}

	sig := a.space.Signature()
	if err := encodeHeader(w, sig, uint64(len(a.states)), uint64(a.metaSize)); err != nil {
		a.logger.LogStore(0, err)
		return err
	}

	stateLen := a.space.SerializationLength()
	stride := stateLen + a.metaSize

	buf := mem.Acquire(stride * len(a.states))
	defer buf.Release()

	data := buf.Bytes()
	for i, s := range a.states {
		rec := data[i*stride : (i+1)*stride]
		a.space.Serialize(rec[:stateLen], s)
		if a.metaSize > 0 {
			copy(rec[stateLen:], a.metas[i])
		}
	}

	if len(data) > 0 {
		if _, err := w.Write(data); err != nil {
			err = fmt.Errorf("failed to write state payload: %w", err)
			a.logger.LogStore(0, err)
			return err
		}
	}

	a.logger.LogStore(len(a.states), nil)
	return nil
}

// StoreFile writes the archive to path atomically: the encoding goes to a
// temp file in the same directory which then replaces the target.
func (a *Archive) StoreFile(path string) error {
	return saveToFile(path, a.Store)
}

// saveToFile writes through writeFunc into a temp file and atomically
// renames it over filename.
func saveToFile(filename string, writeFunc func(io.Writer) error) error {
	dir := filepath.Dir(filename)
	base := filepath.Base(filename)

	tmp, err := os.CreateTemp(dir, base+".tmp-*")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	tmpName := tmp.Name()
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
	}()

	_ = tmp.Chmod(0644)

	buf := bufio.NewWriterSize(tmp, 256*1024)
	if err := writeFunc(buf); err != nil {
		return err
	}
	if err := buf.Flush(); err != nil {
		return err
	}
	if err := tmp.Sync(); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	if err := os.Rename(tmpName, filename); err != nil {
		return err
	}

	// Best-effort: fsync the directory so the rename is durable on POSIX.
	if d, err := os.Open(dir); err == nil {
		_ = d.Sync()
		_ = d.Close()
	}

	// Success: prevent deferred cleanup from removing the final file.
	tmpName = ""
	return nil
}
