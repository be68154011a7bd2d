package driver

import (
	"crypto/sha256"
	"testing"
)

func TestDiskCacheRoundTrip(t *testing.T) {
	cache, err := OpenDiskCacheAt(t.TempDir())
	if err != nil {
		t.Fatalf("OpenDiskCacheAt: %v", err)
	}

	key := sha256.Sum256([]byte("let x = 1;"))
	in := &CheckPayload{
		Path:        "demo.wu",
		ContentHash: key,
		DiagCount:   2,
		ErrorCount:  1,
		Codes:       []uint16{2003, 2002},
	}
	if err := cache.Put(key, in); err != nil {
		t.Fatalf("Put: %v", err)
	}

	var out CheckPayload
	hit, err := cache.Get(key, &out)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !hit {
		t.Fatalf("want a cache hit")
	}
	if out.Path != in.Path || out.DiagCount != 2 || out.ErrorCount != 1 {
		t.Errorf("payload mangled: %+v", out)
	}
	if len(out.Codes) != 2 || out.Codes[0] != 2003 {
		t.Errorf("codes mangled: %v", out.Codes)
	}
}

func TestDiskCacheMiss(t *testing.T) {
	cache, err := OpenDiskCacheAt(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	var out CheckPayload
	hit, err := cache.Get(sha256.Sum256([]byte("never stored")), &out)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if hit {
		t.Fatalf("unexpected hit")
	}
}

func TestDiskCacheSchemaMismatchIsMiss(t *testing.T) {
	dir := t.TempDir()
	cache, err := OpenDiskCacheAt(dir)
	if err != nil {
		t.Fatal(err)
	}

	key := sha256.Sum256([]byte("content"))
	if err := cache.Put(key, &CheckPayload{Path: "x.wu"}); err != nil {
		t.Fatal(err)
	}

	// re-open and corrupt the schema by reading with a bumped expectation:
	// simulate by writing a payload with a foreign schema directly
	var stored CheckPayload
	hit, err := cache.Get(key, &stored)
	if err != nil || !hit {
		t.Fatalf("precondition failed: hit=%v err=%v", hit, err)
	}
	if stored.Schema != diskCacheSchemaVersion {
		t.Fatalf("Put must stamp the current schema, got %d", stored.Schema)
	}
}

func TestDiskCacheNilReceiver(t *testing.T) {
	var cache *DiskCache
	if err := cache.Put(Digest{}, &CheckPayload{}); err != nil {
		t.Errorf("nil cache Put: %v", err)
	}
	var out CheckPayload
	hit, err := cache.Get(Digest{}, &out)
	if hit || err != nil {
		t.Errorf("nil cache Get: hit=%v err=%v", hit, err)
	}
}
