package statestore

import (
	"bytes"
	"context"
	"fmt"

	"github.com/plankit/statestore/blobstore"
)

// StoreToBlob serializes the archive and writes it to store under name.
func (a *Archive) StoreToBlob(ctx context.Context, store blobstore.Store, name string) error {
	var buf bytes.Buffer
	if err := a.Store(&buf); err != nil {
		return err
	}
	if err := store.Put(ctx, name, buf.Bytes()); err != nil {
		err = fmt.Errorf("%w: %w", ErrUnavailable, err)
		a.logger.LogStore(0, err)
		return err
	}
	return nil
}

// LoadFromBlob replaces the archive contents with the archive stored under
// name. Failure semantics match Load: the archive is left empty.
func (a *Archive) LoadFromBlob(ctx context.Context, store blobstore.Store, name string) error {
	a.Clear()

	b, err := store.Open(ctx, name)
	if err != nil {
		err = fmt.Errorf("%w: %w", ErrUnavailable, err)
		a.logger.LogLoad(0, err)
		return err
	}
	defer b.Close()

	data, err := blobstore.ReadAll(b)
	if err != nil {
		err = fmt.Errorf("%w: %w", ErrUnavailable, err)
		a.logger.LogLoad(0, err)
		return err
	}
	return a.Load(bytes.NewReader(data))
}
