package main

import (
	"crypto/sha256"
	"os"
	"path/filepath"
	"testing"

	"wu/internal/driver"
)

func writeSource(t *testing.T, dir, name, src string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestStoreCacheResultSkipsFilesWithErrors(t *testing.T) {
	cache, err := driver.OpenDiskCacheAt(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	dirty := driver.ParseBytes("dirty.wu", []byte("let x = ;\n"), 100)
	if dirty.Bag.ErrorCount() == 0 {
		t.Fatal("fixture did not produce errors")
	}
	clean := driver.ParseBytes("clean.wu", []byte("let x = 1;\n"), 100)
	if clean.Bag.ErrorCount() != 0 {
		t.Fatalf("fixture produced errors: %v", clean.Bag.Items())
	}

	storeCacheResult(cache, dirty.File.Hash, "dirty.wu", dirty, dirty.Bag.ErrorCount())
	storeCacheResult(cache, clean.File.Hash, "clean.wu", clean, clean.Bag.ErrorCount())

	var payload driver.CheckPayload
	if hit, _ := cache.Get(dirty.File.Hash, &payload); hit {
		t.Fatal("result with errors was cached")
	}
	if hit, _ := cache.Get(clean.File.Hash, &payload); !hit {
		t.Fatal("clean result was not cached")
	}
	if payload.ErrorCount != 0 {
		t.Fatalf("cached ErrorCount = %d, want 0", payload.ErrorCount)
	}
}

func TestResolveCacheHitsIgnoresDirtyEntries(t *testing.T) {
	dir := t.TempDir()
	cleanPath := writeSource(t, dir, "clean.wu", "let x = 1;\n")
	dirtyPath := writeSource(t, dir, "dirty.wu", "let x = ;\n")
	freshPath := writeSource(t, dir, "fresh.wu", "let y = 2;\n")

	cache, err := driver.OpenDiskCacheAt(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	// Seed the cache as a previous run would have: clean entry stored,
	// dirty entry written with errors to pin that such entries are ignored.
	cleanSrc, _ := os.ReadFile(cleanPath)
	if err := cache.Put(sha256.Sum256(cleanSrc), &driver.CheckPayload{
		Path: cleanPath, ErrorCount: 0,
	}); err != nil {
		t.Fatal(err)
	}
	dirtySrc, _ := os.ReadFile(dirtyPath)
	if err := cache.Put(sha256.Sum256(dirtySrc), &driver.CheckPayload{
		Path: dirtyPath, ErrorCount: 1, Codes: []uint16{2003},
	}); err != nil {
		t.Fatal(err)
	}

	files := []string{cleanPath, dirtyPath, freshPath}
	keys := make(map[string]driver.Digest, len(files))
	hits, toParse := resolveCacheHits(cache, files, keys)

	if len(hits) != 1 || hits[0] != cleanPath {
		t.Errorf("hits = %v, want [%s]", hits, cleanPath)
	}
	if len(toParse) != 2 || toParse[0] != dirtyPath || toParse[1] != freshPath {
		t.Errorf("toParse = %v, want [%s %s]", toParse, dirtyPath, freshPath)
	}
	for _, path := range files {
		if _, ok := keys[path]; !ok {
			t.Errorf("no digest recorded for %s", path)
		}
	}
}
