// Package snapshot memoizes raw source snapshots outside the engine.
// The cache key is content-addressed from (source identifier, refresh
// interval); the value is the immutable raw byte snapshot. The engine
// itself stays pure and cache-agnostic.
package snapshot

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/maypok86/otter/v2"

	"github.com/bmoura/tempotrack/internal/util"
)

const maxEntries = 64

// Entry is one cached snapshot.
type Entry struct {
	SourceID  string    `json:"sourceId"`
	FetchedAt time.Time `json:"fetchedAt"`
	ExpiresAt time.Time `json:"expiresAt"`
	Data      []byte    `json:"data"`
}

// Store is a two-tier snapshot cache: an in-memory TTL cache backed by
// one JSON file per entry so snapshots survive process restarts.
type Store struct {
	cache *otter.Cache[string, Entry]
	dir   string
	ttl   time.Duration
}

// NewStore creates a store rooted at dir with the given refresh
// interval as TTL.
func NewStore(dir string, ttl time.Duration) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating snapshot directory: %w", err)
	}

	cache := otter.Must(&otter.Options[string, Entry]{
		MaximumSize:      maxEntries,
		ExpiryCalculator: otter.ExpiryWriting[string, Entry](ttl),
	})

	s := &Store{
		cache: cache,
		dir:   dir,
		ttl:   ttl,
	}

	if err := s.preload(); err != nil {
		util.LogWarnf("Snapshot preload failed: %v", err)
	}
	return s, nil
}

// Key derives the content-addressed cache key for a source under this
// store's refresh interval.
func (s *Store) Key(sourceID string) string {
	h := sha256.New()
	h.Write([]byte(sourceID))
	h.Write([]byte(s.ttl.String()))
	return hex.EncodeToString(h.Sum(nil))
}

// Get returns the cached snapshot bytes for the source, if fresh.
func (s *Store) Get(sourceID string) ([]byte, bool) {
	key := s.Key(sourceID)
	entry, found := s.cache.GetIfPresent(key)
	if !found {
		util.LogDebugf("Snapshot miss for %s", sourceID)
		return nil, false
	}

	// The TTL cache evicts on its own schedule; double-check before
	// handing out stale data.
	if time.Now().After(entry.ExpiresAt) {
		s.cache.Invalidate(key)
		util.LogDebugf("Snapshot expired for %s", sourceID)
		return nil, false
	}

	util.LogDebugf("Snapshot hit for %s (%d bytes)", sourceID, len(entry.Data))
	return entry.Data, true
}

// Set stores a fresh snapshot in memory and on disk.
func (s *Store) Set(sourceID string, data []byte) error {
	key := s.Key(sourceID)
	entry := Entry{
		SourceID:  sourceID,
		FetchedAt: time.Now(),
		ExpiresAt: time.Now().Add(s.ttl),
		Data:      data,
	}
	s.cache.Set(key, entry)

	raw, err := sonic.Marshal(entry)
	if err != nil {
		return err
	}
	return os.WriteFile(s.entryPath(key), raw, 0644)
}

// Clear removes all cached snapshots, memory and disk.
func (s *Store) Clear() error {
	s.cache.InvalidateAll()

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".json") {
			if err := os.Remove(filepath.Join(s.dir, e.Name())); err != nil {
				return err
			}
		}
	}
	return nil
}

// preload loads unexpired disk entries into memory.
func (s *Store) preload() error {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return err
	}

	loaded := 0
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		raw, err := os.ReadFile(filepath.Join(s.dir, e.Name()))
		if err != nil {
			continue
		}
		var entry Entry
		if err := sonic.Unmarshal(raw, &entry); err != nil {
			util.LogDebugf("Skip unreadable snapshot file %s: %v", e.Name(), err)
			continue
		}
		if time.Now().After(entry.ExpiresAt) {
			// Expired on disk; drop the file too.
			_ = os.Remove(filepath.Join(s.dir, e.Name()))
			continue
		}
		s.cache.Set(s.Key(entry.SourceID), entry)
		loaded++
	}

	util.LogDebugf("Snapshot store preloaded %d entries from %s", loaded, s.dir)
	return nil
}

func (s *Store) entryPath(key string) string {
	return filepath.Join(s.dir, key+".json")
}
