package cache

import (
	"context"
	"os"
	"testing"
	"time"
)

func TestSetAndGet(t *testing.T) {
	ctx := context.Background()
	c := NewMemory()
	if err := c.Set(ctx, "key1", []byte("value1"), time.Second); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	val, ok, err := c.Get(ctx, "key1")
	if err != nil || !ok || string(val) != "value1" {
		t.Fatalf("expected value1, got %q, exists=%v, err=%v", val, ok, err)
	}
}

func TestExpiration(t *testing.T) {
	ctx := context.Background()
	c := NewMemory()
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	_ = c.Set(ctx, "key1", []byte("value1"), time.Minute)
	now = now.Add(time.Minute)
	if _, ok, _ := c.Get(ctx, "key1"); ok {
		t.Fatalf("expected expired key to return false")
	}
}

func TestNonPositiveTTLDeletes(t *testing.T) {
	ctx := context.Background()
	c := NewMemory()
	_ = c.Set(ctx, "key1", []byte("value1"), time.Minute)
	_ = c.Set(ctx, "key1", []byte("value2"), 0)
	if _, ok, _ := c.Get(ctx, "key1"); ok {
		t.Fatalf("expected key to be deleted by zero TTL")
	}
}

func TestInvalidate(t *testing.T) {
	ctx := context.Background()
	c := NewMemory()
	_ = c.Set(ctx, "clients:all", []byte("c"), time.Minute)
	_ = c.Set(ctx, "clients:other", []byte("c2"), time.Minute)
	_ = c.Set(ctx, "federal-states:all", []byte("f"), time.Minute)

	if err := c.Invalidate(ctx, "clients:"); err != nil {
		t.Fatalf("Invalidate() error = %v", err)
	}
	_, ok1, _ := c.Get(ctx, "clients:all")
	_, ok2, _ := c.Get(ctx, "clients:other")
	_, ok3, _ := c.Get(ctx, "federal-states:all")
	if ok1 || ok2 {
		t.Fatalf("expected client keys to be invalidated")
	}
	if !ok3 {
		t.Fatalf("expected federal-states:all to still exist")
	}
}

func TestJSONRoundTrip(t *testing.T) {
	ctx := context.Background()
	c := NewMemory()
	type item struct {
		Name string `json:"name"`
	}
	if err := SetJSON(ctx, c, "items", []item{{Name: "a"}, {Name: "b"}}, time.Minute); err != nil {
		t.Fatalf("SetJSON() error = %v", err)
	}
	got, ok, err := GetJSON[[]item](ctx, c, "items")
	if err != nil || !ok || len(got) != 2 || got[1].Name != "b" {
		t.Fatalf("GetJSON() = %v, %v, %v", got, ok, err)
	}

	if _, ok, err := GetJSON[[]item](ctx, c, "missing"); ok || err != nil {
		t.Fatalf("GetJSON(missing) = ok %v err %v", ok, err)
	}
}

func TestRedisInvalidate(t *testing.T) {
	url := os.Getenv("REDIS_TEST_URL")
	if url == "" {
		t.Skip("REDIS_TEST_URL not set")
	}
	ctx := context.Background()
	c, err := NewRedis(url, "care_scheduler_test:")
	if err != nil {
		t.Fatalf("NewRedis() error = %v", err)
	}
	defer c.Close()

	_ = c.Set(ctx, "clients:all", []byte("c"), time.Minute)
	_ = c.Set(ctx, "federal-states:all", []byte("f"), time.Minute)
	if err := c.Invalidate(ctx, "clients:"); err != nil {
		t.Fatalf("Invalidate() error = %v", err)
	}
	if _, ok, _ := c.Get(ctx, "clients:all"); ok {
		t.Error("clients:all survived invalidate")
	}
	if _, ok, _ := c.Get(ctx, "federal-states:all"); !ok {
		t.Error("federal-states:all was removed")
	}
	_ = c.Invalidate(ctx, "")
}
