package cache

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// KeyedStore is a directory of per-key JSON files, one durable value
// per key, with no expiry. Reads and writes are best-effort: a miss is
// just a miss, and a failed write leaves the caller's value untouched.
type KeyedStore[T any] struct {
	dir    string
	logger zerolog.Logger
}

// NewKeyedStore creates a keyed store rooted at dir.
func NewKeyedStore[T any](dir string) *KeyedStore[T] {
	return &KeyedStore[T]{
		dir:    dir,
		logger: log.With().Str("component", "cache").Str("dir", dir).Logger(),
	}
}

// Get reads the value stored under key. Absent or corrupt files report
// a miss.
func (s *KeyedStore[T]) Get(key string) (T, bool) {
	var zero T

	data, err := os.ReadFile(s.keyPath(key))
	if err != nil {
		if !os.IsNotExist(err) {
			CacheErrors.WithLabelValues("load").Inc()
			s.logger.Warn().Err(err).Str("key", key).Msg("Keyed cache file unreadable")
		}
		CacheMisses.Inc()
		return zero, false
	}

	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		CacheErrors.WithLabelValues("load").Inc()
		s.logger.Warn().Err(err).Str("key", key).Msg("Keyed cache file corrupt")
		CacheMisses.Inc()
		return zero, false
	}

	CacheHits.WithLabelValues("file").Inc()
	return v, true
}

// Put writes the value under key, best-effort.
func (s *KeyedStore[T]) Put(key string, v T) {
	data, err := json.Marshal(v)
	if err != nil {
		CacheErrors.WithLabelValues("save").Inc()
		s.logger.Warn().Err(err).Str("key", key).Msg("Keyed cache value not serializable")
		return
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		CacheErrors.WithLabelValues("save").Inc()
		s.logger.Warn().Err(err).Str("key", key).Msg("Keyed cache directory not writable")
		return
	}

	if err := os.WriteFile(s.keyPath(key), data, 0o644); err != nil {
		CacheErrors.WithLabelValues("save").Inc()
		s.logger.Warn().Err(err).Str("key", key).Msg("Keyed cache write failed")
	}
}

// Delete removes the value stored under key, if any.
func (s *KeyedStore[T]) Delete(key string) {
	_ = os.Remove(s.keyPath(key))
}

// keyPath maps a key to its file, sanitized so identifiers can never
// escape the store directory.
func (s *KeyedStore[T]) keyPath(key string) string {
	sanitized := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, key)
	return filepath.Join(s.dir, sanitized+".json")
}
