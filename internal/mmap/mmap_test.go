package mmap

import (
	"os"
	"path/filepath"
	"testing"
)

func TestOpenReadClose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blob.bin")
	content := []byte("mapped archive bytes")
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatal(err)
	}

	m, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	if got := string(m.Bytes()); got != string(content) {
		t.Errorf("Bytes() = %q, want %q", got, content)
	}
	if m.Size() != len(content) {
		t.Errorf("Size() = %d, want %d", m.Size(), len(content))
	}

	if err := m.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if m.Bytes() != nil {
		t.Error("Bytes() after Close should be nil")
	}
	// Close is idempotent.
	if err := m.Close(); err != nil {
		t.Fatalf("second Close failed: %v", err)
	}
}

func TestOpenEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.bin")
	if err := os.WriteFile(path, nil, 0644); err != nil {
		t.Fatal(err)
	}

	m, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer m.Close()

	if m.Size() != 0 {
		t.Errorf("Size() = %d, want 0", m.Size())
	}
}

func TestOpenMissingFile(t *testing.T) {
	if _, err := Open(filepath.Join(t.TempDir(), "missing.bin")); err == nil {
		t.Fatal("Open of missing file should fail")
	}
}
