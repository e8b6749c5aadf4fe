package cache

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	// Get always returns miss
	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit {
		t.Error("NullCache.Get should always return miss")
	}
	if data != nil {
		t.Error("NullCache.Get should return nil data")
	}

	// Set does nothing (no error)
	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}

	// Still a miss after Set
	_, hit, _ = c.Get(ctx, "key")
	if hit {
		t.Error("NullCache should not store data")
	}

	// Delete does nothing (no error)
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestFileCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()

	if err := c.Set(ctx, "placement:abc", []byte("layout-bytes"), time.Hour); err != nil {
		t.Fatalf("Set: %v", err)
	}

	data, hit, err := c.Get(ctx, "placement:abc")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !hit {
		t.Fatal("expected a hit after Set")
	}
	if !bytes.Equal(data, []byte("layout-bytes")) {
		t.Errorf("Get returned %q", data)
	}

	if err := c.Delete(ctx, "placement:abc"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "placement:abc"); hit {
		t.Error("key survived Delete")
	}
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()

	if err := c.Set(ctx, "k", []byte("v"), time.Millisecond); err != nil {
		t.Fatalf("Set: %v", err)
	}
	time.Sleep(10 * time.Millisecond)

	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("expired entry still readable")
	}
}

func TestFileCacheMissingKey(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()

	if _, hit, err := c.Get(ctx, "never-set"); hit || err != nil {
		t.Errorf("Get(missing) = hit=%v err=%v, want miss without error", hit, err)
	}
	if err := c.Delete(ctx, "never-set"); err != nil {
		t.Errorf("Delete(missing): %v", err)
	}
}

func TestFileCacheGroupsEntriesByStage(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	c, err := NewFileCache(dir)
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()

	if err := c.Set(ctx, "placement:aaa", []byte("p"), 0); err != nil {
		t.Fatalf("Set placement: %v", err)
	}
	if err := c.Set(ctx, "layout:bbb", []byte("l"), 0); err != nil {
		t.Fatalf("Set layout: %v", err)
	}

	for _, stage := range []string{"placement", "layout"} {
		entries, err := os.ReadDir(filepath.Join(dir, stage))
		if err != nil {
			t.Fatalf("stage dir %q missing: %v", stage, err)
		}
		if len(entries) != 1 {
			t.Errorf("stage %q holds %d entries, want 1", stage, len(entries))
		}
	}
}

func TestStageOf(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"placement:ab12", "placement"},
		{"layout:cd34", "layout"},
		{"bare-key", "misc"},
		{":no-stage", "misc"},
	}
	for _, tt := range tests {
		if got := stageOf(tt.key); got != tt.want {
			t.Errorf("stageOf(%q) = %q, want %q", tt.key, got, tt.want)
		}
	}
}

func TestHash(t *testing.T) {
	// Test determinism
	h1 := Hash([]byte("hello"))
	h2 := Hash([]byte("hello"))
	if h1 != h2 {
		t.Error("Hash should be deterministic")
	}

	// Test different inputs produce different hashes
	h3 := Hash([]byte("world"))
	if h1 == h3 {
		t.Error("Different inputs should produce different hashes")
	}

	// Test hash length (SHA-256 produces 64 hex chars)
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	// Same inputs, same key
	p1 := k.PlacementKey("design-hash", PlacementKeyOpts{Method: "anneal", Iterations: 1000, Seed: 1})
	p2 := k.PlacementKey("design-hash", PlacementKeyOpts{Method: "anneal", Iterations: 1000, Seed: 1})
	if p1 != p2 {
		t.Error("PlacementKey should be deterministic")
	}
	if !strings.HasPrefix(p1, "placement:") {
		t.Errorf("PlacementKey missing stage prefix: %s", p1)
	}

	// Options participate in the key
	p3 := k.PlacementKey("design-hash", PlacementKeyOpts{Method: "anneal", Iterations: 1000, Seed: 2})
	if p1 == p3 {
		t.Error("Different seeds should produce different keys")
	}

	// LayoutKey
	l1 := k.LayoutKey("design-hash", LayoutKeyOpts{Resolution: 0.1, Layers: 1})
	l2 := k.LayoutKey("design-hash", LayoutKeyOpts{Resolution: 0.2, Layers: 1})
	if l1 == l2 {
		t.Error("Different LayoutKeyOpts should produce different keys")
	}
	if !strings.HasPrefix(l1, "layout:") {
		t.Errorf("LayoutKey missing stage prefix: %s", l1)
	}
}

func TestScopedKeyer(t *testing.T) {
	inner := NewDefaultKeyer()
	scoped := NewScopedKeyer(inner, "proj:demo:")

	key := scoped.PlacementKey("h", PlacementKeyOpts{})
	if !strings.HasPrefix(key, "proj:demo:placement:") {
		t.Errorf("ScopedKeyer PlacementKey should be prefixed: %s", key)
	}

	layoutKey := scoped.LayoutKey("h", LayoutKeyOpts{})
	if !strings.HasPrefix(layoutKey, "proj:demo:layout:") {
		t.Errorf("ScopedKeyer LayoutKey should be prefixed: %s", layoutKey)
	}
}

func TestScopedKeyerNilInner(t *testing.T) {
	// Should use DefaultKeyer when inner is nil
	scoped := NewScopedKeyer(nil, "prefix:")
	key := scoped.PlacementKey("h", PlacementKeyOpts{})
	if !strings.HasPrefix(key, "prefix:placement:") {
		t.Errorf("Unexpected key with nil inner: %s", key)
	}
}

func TestRetryableError(t *testing.T) {
	// Retryable(nil) returns nil
	if Retryable(nil) != nil {
		t.Error("Retryable(nil) should return nil")
	}

	// Non-nil error is wrapped
	err := Retryable(ErrNetwork)
	if err == nil {
		t.Fatal("Retryable should return wrapped error")
	}
	if !IsRetryable(err) {
		t.Error("IsRetryable should return true for wrapped error")
	}

	// Error message is preserved
	if err.Error() != ErrNetwork.Error() {
		t.Errorf("Error message should be preserved: %s", err.Error())
	}

	// Non-wrapped errors are not retryable
	if IsRetryable(errors.New("plain")) {
		t.Error("IsRetryable should return false for unwrapped error")
	}
}

func TestRetryWithBackoff(t *testing.T) {
	ctx := context.Background()

	// Success on first try
	calls := 0
	err := RetryWithBackoff(ctx, func() error {
		calls++
		return nil
	})
	if err != nil {
		t.Errorf("Should succeed: %v", err)
	}
	if calls != 1 {
		t.Errorf("Should call once: %d", calls)
	}

	// Non-retryable error fails fast
	plain := errors.New("fatal")
	calls = 0
	err = RetryWithBackoff(ctx, func() error {
		calls++
		return plain
	})
	if err != plain {
		t.Errorf("Should return non-retryable error: %v", err)
	}
	if calls != 1 {
		t.Errorf("Should not retry non-retryable error: %d", calls)
	}
}

func TestRetryWithBackoffContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel() // Cancel immediately

	err := RetryWithBackoff(ctx, func() error {
		return Retryable(ErrNetwork)
	})
	if err != context.Canceled {
		t.Errorf("Should return context error: %v", err)
	}
}
