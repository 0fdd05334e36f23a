package cache

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Entry is the persisted cache unit: the payload plus the epoch it was
// fetched at.
type Entry[T any] struct {
	Payload   T         `json:"payload"`
	FetchedAt time.Time `json:"epoch_timestamp"`
}

// Store is a single-value persistent cache: the current entry held in
// memory, mirrored to one JSON file.
type Store[T any] struct {
	path   string
	logger zerolog.Logger
	now    func() time.Time

	mu    sync.RWMutex
	entry *Entry[T]
}

// NewStore creates a store backed by the given file path. Call Load to
// populate it from disk.
func NewStore[T any](path string) *Store[T] {
	return &Store[T]{
		path:   path,
		logger: log.With().Str("component", "cache").Str("file", path).Logger(),
		now:    time.Now,
	}
}

// SetClock overrides the store's clock (for testing).
func (s *Store[T]) SetClock(now func() time.Time) {
	s.now = now
}

// Load reads the cache file into memory. A missing or corrupt file is
// not an error: the store just starts empty.
func (s *Store[T]) Load() {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			CacheErrors.WithLabelValues("load").Inc()
			s.logger.Warn().Err(err).Msg("Cache file unreadable, starting empty")
		}
		return
	}

	var entry Entry[T]
	if err := json.Unmarshal(data, &entry); err != nil {
		CacheErrors.WithLabelValues("load").Inc()
		s.logger.Warn().Err(err).Msg("Cache file corrupt, starting empty")
		return
	}

	s.mu.Lock()
	s.entry = &entry
	s.mu.Unlock()

	s.logger.Debug().Time("fetched_at", entry.FetchedAt).Msg("Cache loaded")
}

// IsFresh reports whether a value exists and its age is strictly below
// ttl. A zero or negative ttl disables caching entirely.
func (s *Store[T]) IsFresh(ttl time.Duration) bool {
	if ttl <= 0 {
		return false
	}

	s.mu.RLock()
	entry := s.entry
	s.mu.RUnlock()

	if entry == nil {
		CacheMisses.Inc()
		return false
	}
	if s.now().Sub(entry.FetchedAt) >= ttl {
		CacheMisses.Inc()
		return false
	}

	CacheHits.WithLabelValues("memory").Inc()
	return true
}

// Get returns the in-memory payload, if any.
func (s *Store[T]) Get() (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.entry == nil {
		var zero T
		return zero, false
	}
	return s.entry.Payload, true
}

// Put stores the payload stamped with the current time and mirrors it
// to disk. The write is best-effort: a failure is logged and the
// in-memory state stays valid.
func (s *Store[T]) Put(payload T) {
	entry := &Entry[T]{Payload: payload, FetchedAt: s.now()}

	s.mu.Lock()
	s.entry = entry
	s.mu.Unlock()

	s.save(entry)
}

func (s *Store[T]) save(entry *Entry[T]) {
	data, err := json.Marshal(entry)
	if err != nil {
		CacheErrors.WithLabelValues("save").Inc()
		s.logger.Warn().Err(err).Msg("Cache entry not serializable, skipping save")
		return
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		CacheErrors.WithLabelValues("save").Inc()
		s.logger.Warn().Err(err).Msg("Cache directory not writable, skipping save")
		return
	}

	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		CacheErrors.WithLabelValues("save").Inc()
		s.logger.Warn().Err(err).Msg("Cache write failed")
		return
	}

	s.logger.Debug().Int("bytes", len(data)).Msg("Cache saved")
}
