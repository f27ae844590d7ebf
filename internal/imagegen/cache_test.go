package imagegen

import (
	"testing"
	"time"
)

func TestCache_PutGet(t *testing.T) {
	c := NewCache(time.Hour)
	c.Put("k", []byte("img"))
	b, ok := c.Get("k")
	if !ok || string(b) != "img" {
		t.Fatalf("expected cached bytes, got %q (ok=%v)", b, ok)
	}
	if _, ok := c.Get("missing"); ok {
		t.Fatalf("did not expect a hit for an unknown key")
	}
}

func TestCache_ExpiryOnRead(t *testing.T) {
	c := NewCache(time.Hour)
	now := time.Now()
	c.now = func() time.Time { return now }
	c.Put("k", []byte("img"))

	now = now.Add(2 * time.Hour)
	if _, ok := c.Get("k"); ok {
		t.Fatalf("expected expired entry to miss")
	}
	if s := c.Stats(); s.TotalEntries != 0 {
		t.Fatalf("expected expired entry to be deleted on read, got %d entries", s.TotalEntries)
	}
}

func TestCache_Sweep(t *testing.T) {
	c := NewCache(time.Hour)
	now := time.Now()
	c.now = func() time.Time { return now }
	c.Put("old", []byte("a"))

	now = now.Add(90 * time.Minute)
	c.Put("fresh", []byte("b"))

	if removed := c.Sweep(); removed != 1 {
		t.Fatalf("expected 1 swept entry, got %d", removed)
	}
	if _, ok := c.Get("fresh"); !ok {
		t.Fatalf("sweep must keep valid entries")
	}
}

func TestCache_ClearAndStats(t *testing.T) {
	c := NewCache(2 * time.Hour)
	c.Put("a", make([]byte, 1024))
	c.Put("b", make([]byte, 1024))

	s := c.Stats()
	if s.TotalEntries != 2 || s.ValidEntries != 2 || s.ExpiredEntries != 0 {
		t.Fatalf("unexpected stats: %+v", s)
	}
	if s.CacheTTLSeconds != 7200 {
		t.Fatalf("expected ttl 7200s, got %v", s.CacheTTLSeconds)
	}
	if s.MemoryUsageMB <= 0 {
		t.Fatalf("expected positive memory usage")
	}

	if n := c.Clear(); n != 2 {
		t.Fatalf("expected 2 removed entries, got %d", n)
	}
	if s := c.Stats(); s.TotalEntries != 0 {
		t.Fatalf("expected empty cache after clear")
	}
}

func TestCache_PutReplacesEntry(t *testing.T) {
	c := NewCache(time.Hour)
	c.Put("k", []byte("first"))
	c.Put("k", []byte("second"))
	b, ok := c.Get("k")
	if !ok || string(b) != "second" {
		t.Fatalf("expected last write to win, got %q", b)
	}
	if s := c.Stats(); s.TotalEntries != 1 {
		t.Fatalf("expected at most one entry per key, got %d", s.TotalEntries)
	}
}
