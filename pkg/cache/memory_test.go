package cache

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestMemoryCacheSetGet(t *testing.T) {
	c := NewMemoryCache()
	defer c.Close()
	ctx := context.Background()

	if err := c.Set(ctx, "rate", 0.2723, time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}

	var got float64
	if err := c.Get(ctx, "rate", &got); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != 0.2723 {
		t.Fatalf("got %v, want 0.2723", got)
	}
}

func TestMemoryCacheMiss(t *testing.T) {
	c := NewMemoryCache()
	defer c.Close()

	var got string
	err := c.Get(context.Background(), "nope", &got)
	if !errors.Is(err, ErrCacheMiss) {
		t.Fatalf("expected ErrCacheMiss, got %v", err)
	}
}

func TestMemoryCacheExpiry(t *testing.T) {
	c := NewMemoryCache()
	defer c.Close()
	ctx := context.Background()

	if err := c.Set(ctx, "k", "v", time.Millisecond); err != nil {
		t.Fatalf("Set: %v", err)
	}
	time.Sleep(5 * time.Millisecond)

	var got string
	if err := c.Get(ctx, "k", &got); !errors.Is(err, ErrCacheMiss) {
		t.Fatalf("expired entry must miss, got %v", err)
	}
}

func TestMemoryCacheDeleteAndExists(t *testing.T) {
	c := NewMemoryCache()
	defer c.Close()
	ctx := context.Background()

	if err := c.Set(ctx, "k", 1, time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if ok, err := c.Exists(ctx, "k"); err != nil || !ok {
		t.Fatalf("Exists before delete: %v/%v", ok, err)
	}
	if err := c.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if ok, err := c.Exists(ctx, "k"); err != nil || ok {
		t.Fatalf("Exists after delete: %v/%v", ok, err)
	}
}

func TestMemoryCacheEvictsLRU(t *testing.T) {
	c := NewMemoryCache(WithMemoryMaxSize(2))
	defer c.Close()
	ctx := context.Background()

	c.Set(ctx, "a", 1, time.Minute)
	time.Sleep(time.Millisecond)
	c.Set(ctx, "b", 2, time.Minute)
	time.Sleep(time.Millisecond)

	// Touch "a" so "b" becomes the least recently used.
	var v int
	if err := c.Get(ctx, "a", &v); err != nil {
		t.Fatalf("Get a: %v", err)
	}
	time.Sleep(time.Millisecond)

	c.Set(ctx, "c", 3, time.Minute)

	if ok, _ := c.Exists(ctx, "b"); ok {
		t.Fatalf("expected b evicted")
	}
	if ok, _ := c.Exists(ctx, "a"); !ok {
		t.Fatalf("a must survive after recent access")
	}
}
