package blobstore

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// copyConcurrency limits parallel transfers to avoid FD exhaustion or
// object-store rate limits.
const copyConcurrency = 8

// Copy transfers the named blobs from src to dst in parallel. If names is
// empty, every blob in src is copied. The first failure cancels the
// remaining transfers.
func Copy(ctx context.Context, dst, src Store, names ...string) error {
	if len(names) == 0 {
		var err error
		names, err = src.List(ctx, "")
		if err != nil {
			return fmt.Errorf("failed to list source blobs: %w", err)
		}
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(copyConcurrency)

	for _, name := range names {
		name := name
		g.Go(func() error {
			b, err := src.Open(ctx, name)
			if err != nil {
				return fmt.Errorf("failed to open %q: %w", name, err)
			}
			data, err := ReadAll(b)
			closeErr := b.Close()
			if err != nil {
				return fmt.Errorf("failed to read %q: %w", name, err)
			}
			if closeErr != nil {
				return fmt.Errorf("failed to close %q: %w", name, closeErr)
			}
			if err := dst.Put(ctx, name, data); err != nil {
				return fmt.Errorf("failed to put %q: %w", name, err)
			}
			return nil
		})
	}
	return g.Wait()
}
