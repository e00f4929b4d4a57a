// Package manifest maintains a versioned catalog of stored archives on top
// of a blob store. Each catalog version is an immutable JSON document; a
// CURRENT pointer names the live version so updates are atomic on stores
// with atomic single-object writes.
package manifest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/plankit/statestore/blobstore"
)

const (
	// CatalogFileName is the base name of versioned catalog documents.
	CatalogFileName = "MANIFEST"
	// CurrentFileName holds the name of the live catalog document.
	CurrentFileName = "CURRENT"
	// CurrentVersion is the catalog document format version.
	CurrentVersion = 1
)

// ErrNotFound is returned when no catalog exists yet.
var ErrNotFound = errors.New("manifest not found")

// Entry describes one stored archive.
type Entry struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Blob         string    `json:"blob"`
	Signature    []int32   `json:"signature"`
	StateCount   uint64    `json:"state_count"`
	MetadataSize uint64    `json:"metadata_size"`
	CreatedAt    time.Time `json:"created_at"`
}

// Catalog is one immutable version of the archive catalog.
type Catalog struct {
	Version   int       `json:"version"`
	ID        uint64    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Entries   []Entry   `json:"entries"`
}

// New creates an empty catalog.
func New() *Catalog {
	return &Catalog{
		Version:   CurrentVersion,
		CreatedAt: time.Now(),
	}
}

// Find returns the entry with the given name, or false.
func (c *Catalog) Find(name string) (Entry, bool) {
	for _, e := range c.Entries {
		if e.Name == name {
			return e, true
		}
	}
	return Entry{}, false
}

// Upsert adds an entry or replaces the one with the same name. A new entry
// gets a fresh ID; a replaced entry keeps its ID.
func (c *Catalog) Upsert(e Entry) {
	for i, existing := range c.Entries {
		if existing.Name == e.Name {
			e.ID = existing.ID
			c.Entries[i] = e
			return
		}
	}
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	c.Entries = append(c.Entries, e)
	sort.Slice(c.Entries, func(i, j int) bool {
		return c.Entries[i].Name < c.Entries[j].Name
	})
}

// Remove deletes the entry with the given name. It reports whether an
// entry was removed.
func (c *Catalog) Remove(name string) bool {
	for i, e := range c.Entries {
		if e.Name == name {
			c.Entries = append(c.Entries[:i], c.Entries[i+1:]...)
			return true
		}
	}
	return false
}

// Store manages catalog persistence and atomic updates.
type Store struct {
	store blobstore.Store
	mu    sync.Mutex
}

// NewStore creates a catalog store on top of a blob store.
func NewStore(store blobstore.Store) *Store {
	return &Store{store: store}
}

// Load loads the live catalog. A store that has never been written returns
// ErrNotFound.
func (s *Store) Load(ctx context.Context) (*Catalog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.store.Open(ctx, CurrentFileName)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	name, err := blobstore.ReadAll(current)
	_ = current.Close()
	if err != nil {
		return nil, err
	}

	return s.readCatalog(ctx, string(name))
}

// LoadVersion loads a specific catalog version.
func (s *Store) LoadVersion(ctx context.Context, versionID uint64) (*Catalog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.readCatalog(ctx, versionFileName(versionID))
}

func (s *Store) readCatalog(ctx context.Context, name string) (*Catalog, error) {
	b, err := s.store.Open(ctx, name)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to open catalog %s: %w", name, err)
	}
	defer b.Close()

	data, err := blobstore.ReadAll(b)
	if err != nil {
		return nil, err
	}
	c := &Catalog{}
	if err := json.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("failed to decode catalog %s: %w", name, err)
	}
	return c, nil
}

// ListVersions returns every readable catalog version, oldest first.
// Corrupted documents are skipped.
func (s *Store) ListVersions(ctx context.Context) ([]*Catalog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	files, err := s.store.List(ctx, CatalogFileName)
	if err != nil {
		return nil, err
	}

	var catalogs []*Catalog
	for _, f := range files {
		b, err := s.store.Open(ctx, f)
		if err != nil {
			continue
		}
		data, err := blobstore.ReadAll(b)
		_ = b.Close()
		if err != nil {
			continue
		}
		c := &Catalog{}
		if err := json.Unmarshal(data, c); err != nil {
			continue
		}
		catalogs = append(catalogs, c)
	}
	sort.Slice(catalogs, func(i, j int) bool {
		return catalogs[i].ID < catalogs[j].ID
	})
	return catalogs, nil
}

// Save writes c as a new catalog version and repoints CURRENT at it.
func (s *Store) Save(ctx context.Context, c *Catalog) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c.Version = CurrentVersion
	c.ID++
	c.CreatedAt = time.Now()

	filename := versionFileName(c.ID)

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	if err := s.store.Put(ctx, filename, data); err != nil {
		return err
	}
	return s.store.Put(ctx, CurrentFileName, []byte(filename))
}

// DeleteVersion removes the document for one catalog version. The CURRENT
// pointer is left untouched.
func (s *Store) DeleteVersion(ctx context.Context, versionID uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.store.Delete(ctx, versionFileName(versionID))
}

func versionFileName(versionID uint64) string {
	return fmt.Sprintf("%s-%06d.json", CatalogFileName, versionID)
}
