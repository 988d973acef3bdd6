// Package cache stores model responses keyed by the exact prompt that
// produced them, so repeated questions skip the model call.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
)

// Store is the response cache backend.
type Store interface {
	// Get returns the cached response for key, and whether one exists.
	Get(ctx context.Context, key string) (string, bool, error)
	// Put stores a response under key, replacing any existing value.
	Put(ctx context.Context, key string, response string) error
	// Purge removes all cached responses.
	Purge(ctx context.Context) error
	// Len returns the number of cached responses.
	Len(ctx context.Context) (int64, error)
}

// Key derives the cache key for a rendered prompt sent to a specific
// provider and model.
func Key(provider, model, prompt string) string {
	h := sha256.New()
	h.Write([]byte(provider))
	h.Write([]byte{0})
	h.Write([]byte(model))
	h.Write([]byte{0})
	h.Write([]byte(prompt))
	return hex.EncodeToString(h.Sum(nil))
}
