package address

import (
	"testing"
	"time"
)

func TestNewCache(t *testing.T) {
	ttl := 30 * time.Second
	cache := NewCache(ttl)

	if cache == nil {
		t.Fatal("Cache is nil")
	}

	if cache.ttl != ttl {
		t.Errorf("Expected TTL %v, got %v", ttl, cache.ttl)
	}

	if cache.entries == nil {
		t.Error("Entries map should be initialized")
	}
}

func TestCacheSetAndGet(t *testing.T) {
	cache := NewCache(30 * time.Second)

	if _, found := cache.Get("01310100"); found {
		t.Error("Expected cache miss for new postal code")
	}

	cache.Set("01310100", Address{Street: "Avenida Paulista", City: "São Paulo", UF: "SP"})

	cached, found := cache.Get("01310100")
	if !found {
		t.Fatal("Expected cache hit after setting")
	}

	if cached.Street != "Avenida Paulista" {
		t.Errorf("Expected street 'Avenida Paulista', got '%s'", cached.Street)
	}

	if cached.LastUpdated.IsZero() {
		t.Error("LastUpdated should be set on insert")
	}
}

func TestCacheExpiration(t *testing.T) {
	cache := NewCache(100 * time.Millisecond)
	cache.Set("01310100", Address{City: "São Paulo"})

	if _, found := cache.Get("01310100"); !found {
		t.Error("Expected cache hit immediately after setting")
	}

	time.Sleep(150 * time.Millisecond)

	if _, found := cache.Get("01310100"); found {
		t.Error("Expected cache miss after expiration")
	}

	cache.Cleanup()
	if cache.Size() != 0 {
		t.Errorf("Expected expired entry to be evicted, size is %d", cache.Size())
	}
}

func TestCacheCleanupKeepsFreshEntries(t *testing.T) {
	cache := NewCache(100 * time.Millisecond)
	cache.Set("01310100", Address{City: "São Paulo"})

	time.Sleep(150 * time.Millisecond)
	cache.Set("20040002", Address{City: "Rio de Janeiro"})

	cache.Cleanup()
	if cache.Size() != 1 {
		t.Errorf("Expected 1 entry after cleanup, got %d", cache.Size())
	}
	if _, found := cache.Get("20040002"); !found {
		t.Error("Expected the fresh entry to survive cleanup")
	}
}
