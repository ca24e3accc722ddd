package workcache

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"scribe/internal/logging"
	"scribe/internal/textutil"
	"scribe/internal/works"
)

// ErrNotFound is returned when removing a key the cache does not hold.
var ErrNotFound = errors.New("work not found in cache")

// Entry is a cached resolution.
type Entry struct {
	Key      works.Key      `json:"key"`
	URL      string         `json:"url"`
	Metadata works.Metadata `json:"metadata"`
	CachedAt time.Time      `json:"cached_at"`
}

// Cache provides thread-safe access to the work cache.
type Cache struct {
	path    string
	logger  *slog.Logger
	mu      sync.RWMutex
	entries map[string]Entry
}

// NewCache loads the cache at path. An empty path yields a cache whose
// operations are no-ops. A corrupt file is logged and the cache starts empty.
func NewCache(path string, logger *slog.Logger) *Cache {
	if logger == nil {
		logger = logging.NewNop()
	}
	logger = logging.NewComponentLogger(logger, "workcache")

	c := &Cache{
		path:    path,
		logger:  logger,
		entries: make(map[string]Entry),
	}
	if path == "" {
		return c
	}
	if err := c.load(); err != nil {
		logging.WarnWithContext(logger, "failed to load work cache", "workcache_load_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "cache will start empty"),
			logging.String(logging.FieldImpact, "previously resolved works will be searched again"),
		)
	}
	return c
}

func cacheKey(key works.Key) string {
	return textutil.FoldKey(string(key.Field), key.Author, key.Title)
}

// Enabled reports whether the cache is backed by a file.
func (c *Cache) Enabled() bool {
	return c != nil && c.path != ""
}

// Lookup returns the entry for key if present.
func (c *Cache) Lookup(key works.Key) (Entry, bool) {
	if !c.Enabled() || strings.TrimSpace(key.Title) == "" {
		return Entry{}, false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, ok := c.entries[cacheKey(key)]
	return entry, ok
}

// Store adds or replaces an entry and persists the cache. Entries without
// usable metadata are rejected.
func (c *Cache) Store(entry Entry) error {
	if strings.TrimSpace(entry.Key.Title) == "" || strings.TrimSpace(entry.Key.Author) == "" {
		return errors.New("work key cannot be empty")
	}
	if !entry.Metadata.Usable() {
		return errors.New("refusing to cache metadata without a style")
	}
	if !c.Enabled() {
		return nil
	}
	if entry.CachedAt.IsZero() {
		entry.CachedAt = time.Now().UTC()
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[cacheKey(entry.Key)] = entry
	if err := c.save(); err != nil {
		return fmt.Errorf("persist cache: %w", err)
	}
	c.logger.Debug("cached work",
		logging.String(logging.FieldWork, entry.Key.String()),
		logging.String("url", entry.URL),
		logging.String("style", entry.Metadata.Style),
	)
	return nil
}

// Remove deletes the entry for key and persists the change.
func (c *Cache) Remove(key works.Key) error {
	if !c.Enabled() {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	k := cacheKey(key)
	if _, ok := c.entries[k]; !ok {
		return fmt.Errorf("%s: %w", key, ErrNotFound)
	}
	delete(c.entries, k)
	if err := c.save(); err != nil {
		return fmt.Errorf("persist cache: %w", err)
	}
	c.logger.Debug("removed work from cache", logging.String(logging.FieldWork, key.String()))
	return nil
}

// List returns all entries, newest first.
func (c *Cache) List() []Entry {
	if !c.Enabled() {
		return nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.sorted()
}

// Clear removes all entries and persists the empty cache.
func (c *Cache) Clear() error {
	if !c.Enabled() {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]Entry)
	if err := c.save(); err != nil {
		return fmt.Errorf("persist cache: %w", err)
	}
	c.logger.Debug("cleared work cache")
	return nil
}

// Count returns the number of entries.
func (c *Cache) Count() int {
	if !c.Enabled() {
		return 0
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *Cache) sorted() []Entry {
	entries := make([]Entry, 0, len(c.entries))
	for _, entry := range c.entries {
		entries = append(entries, entry)
	}
	sort.Slice(entries, func(i, j int) bool {
		if !entries[i].CachedAt.Equal(entries[j].CachedAt) {
			return entries[i].CachedAt.After(entries[j].CachedAt)
		}
		return cacheKey(entries[i].Key) < cacheKey(entries[j].Key)
	})
	return entries
}

func (c *Cache) load() error {
	data, err := os.ReadFile(c.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read cache file: %w", err)
	}
	if len(data) == 0 {
		return nil
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return fmt.Errorf("parse cache file: %w", err)
	}
	c.entries = make(map[string]Entry, len(entries))
	for _, entry := range entries {
		if strings.TrimSpace(entry.Key.Title) != "" && entry.Metadata.Usable() {
			c.entries[cacheKey(entry.Key)] = entry
		}
	}
	c.logger.Debug("loaded work cache",
		logging.Int("entry_count", len(c.entries)),
		logging.String("cache_path", c.path),
	)
	return nil
}

// save writes the cache atomically via a temp file.
func (c *Cache) save() error {
	data, err := json.MarshalIndent(c.sorted(), "", "  ")
	if err != nil {
		return fmt.Errorf("marshal cache: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return fmt.Errorf("create cache directory: %w", err)
	}
	tmpPath := c.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmpPath, c.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}
