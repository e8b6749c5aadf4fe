package cache

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// FileCache stores stage results as JSON files under one directory, with a
// subdirectory per pipeline stage so cached placements and layouts can be
// inspected or cleared independently.
type FileCache struct {
	dir string
}

// NewFileCache opens a file cache rooted at dir, creating the directory if
// it does not exist.
func NewFileCache(dir string) (Cache, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &FileCache{dir: dir}, nil
}

// fileEntry is the on-disk envelope around one cached stage result.
type fileEntry struct {
	Stage     string    `json:"stage"`
	SavedAt   time.Time `json:"saved_at"`
	ExpiresAt time.Time `json:"expires_at,omitempty"`
	Payload   []byte    `json:"payload"`
}

// Get returns the cached payload for key. Expired and unreadable entries
// are removed and reported as misses.
func (c *FileCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	path := c.path(key)

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var entry fileEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		_ = os.Remove(path)
		return nil, false, nil
	}
	if !entry.ExpiresAt.IsZero() && time.Now().After(entry.ExpiresAt) {
		_ = os.Remove(path)
		return nil, false, nil
	}
	return entry.Payload, true, nil
}

// Set stores data under key. A non-positive ttl keeps the entry until it
// is deleted or the cache is cleared.
func (c *FileCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	entry := fileEntry{
		Stage:   stageOf(key),
		SavedAt: time.Now(),
		Payload: data,
	}
	if ttl > 0 {
		entry.ExpiresAt = entry.SavedAt.Add(ttl)
	}

	encoded, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	path := c.path(key)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, encoded, 0644)
}

// Delete removes the entry for key. Missing entries are not an error.
func (c *FileCache) Delete(ctx context.Context, key string) error {
	err := os.Remove(c.path(key))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Close releases nothing; the file cache holds no open handles.
func (c *FileCache) Close() error {
	return nil
}

// path maps a key to <dir>/<stage>/<sha256(key)>.json. Grouping by stage
// keeps placement and layout entries apart on disk.
func (c *FileCache) path(key string) string {
	return filepath.Join(c.dir, stageOf(key), Hash([]byte(key))+".json")
}

var _ Cache = (*FileCache)(nil)
