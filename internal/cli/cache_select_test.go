package cli

import (
	"io"
	"strings"
	"testing"

	charmlog "github.com/charmbracelet/log"

	"github.com/pcbforge/pcbforge/pkg/cache"
)

func testCacheLogger() *charmlog.Logger {
	return newLogger(io.Discard, charmlog.ErrorLevel)
}

func TestOpenCacheDisabled(t *testing.T) {
	c, keyer, err := openCache(true, "", testCacheLogger())
	if err != nil {
		t.Fatalf("openCache: %v", err)
	}
	defer c.Close()

	if _, ok := c.(cache.NullCache); !ok {
		t.Errorf("disabled cache is %T, want cache.NullCache", c)
	}
	if keyer != nil {
		t.Error("disabled cache should not carry a keyer")
	}
}

func TestOpenCacheDirectory(t *testing.T) {
	c, keyer, err := openCache(false, t.TempDir(), testCacheLogger())
	if err != nil {
		t.Fatalf("openCache: %v", err)
	}
	defer c.Close()

	if _, ok := c.(*cache.FileCache); !ok {
		t.Errorf("directory backend is %T, want *cache.FileCache", c)
	}
	if keyer != nil {
		t.Error("file cache should use the runner's default keyer")
	}
}

func TestOpenCacheRedisURL(t *testing.T) {
	// Opening a Redis cache only parses the URL; nothing connects until
	// the first operation.
	c, keyer, err := openCache(false, "redis://localhost:6379/0", testCacheLogger())
	if err != nil {
		t.Fatalf("openCache: %v", err)
	}
	defer c.Close()

	if _, ok := c.(*cache.RedisCache); !ok {
		t.Errorf("redis backend is %T, want *cache.RedisCache", c)
	}
	if keyer == nil {
		t.Fatal("redis backend should namespace its keys")
	}
	key := keyer.PlacementKey("h", cache.PlacementKeyOpts{})
	if !strings.HasPrefix(key, "pcbforge:placement:") {
		t.Errorf("namespaced key = %q, want pcbforge:placement: prefix", key)
	}
}

func TestOpenCacheRedisFromEnvironment(t *testing.T) {
	t.Setenv(cacheEnvVar, "redis://example:6379")

	c, _, err := openCache(false, "", testCacheLogger())
	if err != nil {
		t.Fatalf("openCache: %v", err)
	}
	defer c.Close()

	if _, ok := c.(*cache.RedisCache); !ok {
		t.Errorf("env-selected backend is %T, want *cache.RedisCache", c)
	}
}

func TestOpenCacheRejectsBadRedisURL(t *testing.T) {
	if _, _, err := openCache(false, "redis://bad url with spaces", testCacheLogger()); err == nil {
		t.Error("malformed redis URL should be rejected")
	}
}
