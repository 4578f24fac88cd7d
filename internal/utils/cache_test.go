package utils

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFileCache_InvalidatesOnChange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.txt")
	if err := os.WriteFile(path, []byte("one"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cache := NewFileCache[string]()
	cache.Put(path, "one")

	value, ok := cache.Get(path)
	assert.True(t, ok)
	assert.Equal(t, "one", value)

	later := time.Now().Add(2 * time.Second)
	if err := os.WriteFile(path, []byte("three"), 0644); err != nil {
		t.Fatalf("rewrite: %v", err)
	}
	if err := os.Chtimes(path, later, later); err != nil {
		t.Fatalf("chtimes: %v", err)
	}

	_, ok = cache.Get(path)
	assert.False(t, ok)
	assert.Equal(t, 0, cache.Len())
}

func TestFileCache_MissingFileIsNotStored(t *testing.T) {
	cache := NewFileCache[int]()
	cache.Put(filepath.Join(t.TempDir(), "missing"), 1)
	assert.Equal(t, 0, cache.Len())
}

func TestFileCache_Clear(t *testing.T) {
	dir := t.TempDir()
	cache := NewFileCache[int]()
	for i, name := range []string{"a", "b"} {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, nil, 0644); err != nil {
			t.Fatalf("write: %v", err)
		}
		cache.Put(path, i)
	}

	assert.Equal(t, 2, cache.Len())
	cache.Clear()
	assert.Equal(t, 0, cache.Len())
}
