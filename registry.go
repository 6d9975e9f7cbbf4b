package jsonutil

import (
	"sync"
)

var (
	registry   = make(map[Config]*Codec)
	registryMu sync.RWMutex
)

// Use returns a cached codec for cfg or compiles a new one.
// Sharing is sound because compilation is deterministic and codecs are
// immutable.
func Use(cfg Config) *Codec {
	// Fast path: read-lock cache check
	registryMu.RLock()
	if cached, ok := registry[cfg]; ok {
		registryMu.RUnlock()
		return cached
	}
	registryMu.RUnlock()

	// Slow path: compile and cache with write-lock
	registryMu.Lock()
	defer registryMu.Unlock()

	// Double-check pattern
	if cached, ok := registry[cfg]; ok {
		return cached
	}

	codec := Compile(cfg)
	registry[cfg] = codec
	return codec
}

// Reset clears the codec registry.
// This is primarily useful for test isolation.
func Reset() {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry = make(map[Config]*Codec)
}
