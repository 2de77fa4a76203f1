package scanner

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/gnana997/propschema/pkg/schema"
)

// DefaultModuleCacheSize is the number of file schemas kept by default.
const DefaultModuleCacheSize = 1000

// ModuleCache keeps extracted file schemas keyed by path and content hash,
// so unchanged files are not re-parsed across scans. Least recently used
// entries are evicted. Safe for concurrent use.
//
// Cached schemas are shared between callers and must be treated as
// read-only.
type ModuleCache struct {
	entries *lru.Cache[string, *schema.SchemaType]

	hits      atomic.Int64
	misses    atomic.Int64
	evictions atomic.Int64
}

// ModuleCacheStats reports cache effectiveness.
type ModuleCacheStats struct {
	Entries int
	Hits    int64
	Misses  int64
	// Evictions counts entries dropped for capacity or by Remove.
	Evictions int64
}

// NewModuleCache creates a cache holding at most size schemas. size <= 0
// uses DefaultModuleCacheSize.
func NewModuleCache(size int, logger *slog.Logger) *ModuleCache {
	if size <= 0 {
		size = DefaultModuleCacheSize
	}
	if logger == nil {
		logger = slog.Default()
	}

	mc := &ModuleCache{}
	entries, err := lru.NewWithEvict(size, func(key string, _ *schema.SchemaType) {
		mc.evictions.Add(1)
		logger.Debug("module cache evicting", "key", key)
	})
	if err != nil {
		// Only returned for non-positive sizes.
		panic(fmt.Sprintf("failed to create module cache: %v", err))
	}
	mc.entries = entries
	return mc
}

// ContentHash returns the hex SHA-256 of source.
func ContentHash(source []byte) string {
	sum := sha256.Sum256(source)
	return hex.EncodeToString(sum[:])
}

func cacheKey(path, hash string) string {
	return path + "\x00" + hash
}

// Get returns the schema extracted from path when its content hashed to
// hash.
func (mc *ModuleCache) Get(path, hash string) (*schema.SchemaType, bool) {
	s, ok := mc.entries.Get(cacheKey(path, hash))
	if ok {
		mc.hits.Add(1)
	} else {
		mc.misses.Add(1)
	}
	return s, ok
}

// Add stores the schema extracted from path at content hash.
func (mc *ModuleCache) Add(path, hash string, s *schema.SchemaType) {
	mc.entries.Add(cacheKey(path, hash), s)
}

// Remove drops every entry for path.
func (mc *ModuleCache) Remove(path string) int {
	prefix := path + "\x00"
	removed := 0
	for _, key := range mc.entries.Keys() {
		if strings.HasPrefix(key, prefix) {
			if mc.entries.Remove(key) {
				removed++
			}
		}
	}
	return removed
}

// Len returns the number of cached schemas.
func (mc *ModuleCache) Len() int {
	return mc.entries.Len()
}

// Stats returns cache metrics.
func (mc *ModuleCache) Stats() ModuleCacheStats {
	return ModuleCacheStats{
		Entries:   mc.entries.Len(),
		Hits:      mc.hits.Load(),
		Misses:    mc.misses.Load(),
		Evictions: mc.evictions.Load(),
	}
}
