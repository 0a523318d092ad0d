package mcpserver

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/erraggy/oas2puml/parser"
)

// specInput is a Swagger document handed to a tool.
// Exactly one of File, URL, or Content must be set.
type specInput struct {
	File    string `json:"file,omitempty"    jsonschema:"Path to a Swagger 2.0 file on disk"`
	URL     string `json:"url,omitempty"     jsonschema:"URL to fetch a Swagger 2.0 document from"`
	Content string `json:"content,omitempty" jsonschema:"Inline Swagger 2.0 document content (JSON or YAML)"`
}

// sourceKind identifies which field of a specInput is set.
type sourceKind int

const (
	sourceNone sourceKind = iota
	sourceFile
	sourceURL
	sourceContent
)

// kind returns the single populated source, or an error when zero or
// several fields are set.
func (s specInput) kind() (sourceKind, error) {
	kind, count := sourceNone, 0
	for k, set := range map[sourceKind]bool{
		sourceFile:    s.File != "",
		sourceURL:     s.URL != "",
		sourceContent: s.Content != "",
	} {
		if set {
			kind = k
			count++
		}
	}
	if count != 1 {
		return sourceNone, fmt.Errorf("exactly one of file, url, or content must be provided (got %d)", count)
	}
	return kind, nil
}

// ttl is how long a parsed document of this kind stays cached.
func (k sourceKind) ttl() time.Duration {
	switch k {
	case sourceFile:
		return cfg.CacheFileTTL
	case sourceURL:
		return cfg.CacheURLTTL
	default:
		return cfg.CacheContentTTL
	}
}

// cacheEntry holds a cached parse result. lastUsed orders eviction.
type cacheEntry struct {
	result    *parser.ParseResult
	lastUsed  time.Time
	expiresAt time.Time
}

// specCacheStore caches parsed documents for the lifetime of the server.
// Files are keyed by absolute path and modification time, content by its
// SHA-256 and URLs by the URL itself.
type specCacheStore struct {
	mu             sync.Mutex
	entries        map[string]*cacheEntry
	maxSize        int
	sweeperStarted atomic.Bool
}

var specCache = &specCacheStore{
	entries: make(map[string]*cacheEntry),
	maxSize: cfg.CacheMaxSize,
}

// get returns a cached result or nil. Expired entries are dropped on access.
func (c *specCacheStore) get(key string) *parser.ParseResult {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return nil
	}
	now := time.Now()
	if now.After(e.expiresAt) {
		delete(c.entries, key)
		return nil
	}
	e.lastUsed = now
	return e.result
}

// put stores a result for ttl, evicting the least recently used entry when
// the cache is full.
func (c *specCacheStore) put(key string, result *parser.ParseResult, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	if _, ok := c.entries[key]; !ok && len(c.entries) >= c.maxSize {
		c.evictLocked()
	}
	c.entries[key] = &cacheEntry{result: result, lastUsed: now, expiresAt: now.Add(ttl)}
}

func (c *specCacheStore) evictLocked() {
	var victim string
	var oldest time.Time
	for k, e := range c.entries {
		if victim == "" || e.lastUsed.Before(oldest) {
			victim, oldest = k, e.lastUsed
		}
	}
	delete(c.entries, victim)
}

// sweep removes all expired entries.
func (c *specCacheStore) sweep() {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := time.Now()
	for k, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, k)
		}
	}
}

// startSweeper removes expired entries every interval until ctx is done.
// Only the first call starts a goroutine.
func (c *specCacheStore) startSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 || !c.sweeperStarted.CompareAndSwap(false, true) {
		return
	}
	go func() {
		defer c.sweeperStarted.Store(false)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				c.sweep()
			}
		}
	}()
}

// reset clears all cached entries. Used in tests.
func (c *specCacheStore) reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*cacheEntry)
}

// size returns the number of cached entries.
func (c *specCacheStore) size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// cacheKey returns the key for s, or "" when s cannot be cached.
func (s specInput) cacheKey(kind sourceKind) string {
	switch kind {
	case sourceFile:
		abs, err := filepath.Abs(s.File)
		if err != nil {
			return ""
		}
		info, err := os.Stat(abs)
		if err != nil {
			return ""
		}
		return fmt.Sprintf("file:%s:%d", abs, info.ModTime().UnixNano())
	case sourceURL:
		return "url:" + s.URL
	case sourceContent:
		sum := sha256.Sum256([]byte(s.Content))
		return "content:" + hex.EncodeToString(sum[:])
	}
	return ""
}

// resolve parses the document, serving repeated inputs from the cache.
func (s specInput) resolve() (*parser.ParseResult, error) {
	kind, err := s.kind()
	if err != nil {
		return nil, err
	}
	if kind == sourceContent && int64(len(s.Content)) > cfg.MaxInlineSize {
		return nil, fmt.Errorf("inline content size %d bytes exceeds maximum %d bytes; use file input instead, or set OAS2PUML_MAX_INLINE_SIZE to increase",
			len(s.Content), cfg.MaxInlineSize)
	}

	var key string
	if cfg.CacheEnabled {
		key = s.cacheKey(kind)
	}
	if key != "" {
		if cached := specCache.get(key); cached != nil {
			return cached, nil
		}
	}

	var opts []parser.Option
	switch kind {
	case sourceFile:
		opts = append(opts, parser.WithFilePath(s.File))
	case sourceURL:
		opts = append(opts, parser.WithFilePath(s.URL))
		if !cfg.AllowPrivateIPs {
			opts = append(opts, parser.WithHTTPClient(newSafeHTTPClient()))
		}
	case sourceContent:
		opts = append(opts, parser.WithReader(strings.NewReader(s.Content)), parser.WithSourceName("content"))
	}

	result, err := parser.ParseWithOptions(opts...)
	if err != nil {
		return nil, err
	}
	if key != "" {
		specCache.put(key, result, kind.ttl())
	}
	return result, nil
}
