package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"
)

// hashKey builds a stage-prefixed cache key: the stage name, a colon, and
// the hex SHA-256 of the JSON-encoded parts. The full 256-bit digest is
// kept so distinct designs cannot collide.
func hashKey(stage string, parts ...any) string {
	h := sha256.New()
	enc := json.NewEncoder(h)
	for _, p := range parts {
		// Key parts are plain option structs; encoding them cannot fail.
		_ = enc.Encode(p)
	}
	return stage + ":" + hex.EncodeToString(h.Sum(nil))
}

// Hash returns the hex SHA-256 of data. Design documents are hashed this
// way before keying their cached stages.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// stageOf extracts the stage prefix from a key: "placement:ab12..." is
// stage "placement". Keys without a prefix fall under "misc".
func stageOf(key string) string {
	stage, _, ok := strings.Cut(key, ":")
	if !ok || stage == "" {
		return "misc"
	}
	return stage
}
