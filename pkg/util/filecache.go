package util

import (
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/edsrzf/mmap-go"
)

// FileCache serves source files from read-only memory maps.
//
// Files are mapped on first Read and stay mapped until Invalidate or Close.
// Files that cannot be mapped fall back to os.ReadFile. Safe for concurrent
// use.
type FileCache interface {
	// Read returns the content of filePath. The returned slice aliases the
	// mapping and is valid until the path is invalidated or the cache is
	// closed; callers must not modify it.
	Read(filePath string) ([]byte, error)

	// Invalidate drops filePath so the next Read sees the current content.
	Invalidate(filePath string) error

	// Size returns the number of cached files.
	Size() int

	// Stats returns cache metrics.
	Stats() FileCacheStats

	// Close unmaps every file.
	Close() error
}

// FileCacheConfig controls FileCache limits.
type FileCacheConfig struct {
	// MaxFiles caps the number of cached files. 0 means unlimited.
	MaxFiles int

	// MaxMemoryMB caps the mapped size in MB. This bounds address space,
	// not resident memory. 0 means unlimited.
	MaxMemoryMB int

	// Logger for warnings. If nil, uses slog.Default().
	Logger *slog.Logger
}

// DefaultFileCacheConfig returns limits suited to a React Native monorepo.
func DefaultFileCacheConfig() *FileCacheConfig {
	return &FileCacheConfig{
		MaxFiles:    10000,
		MaxMemoryMB: 1024,
	}
}

// FileCacheStats tracks cache performance.
type FileCacheStats struct {
	// FilesLoaded is the cumulative number of files loaded
	FilesLoaded int64

	// FilesCached is the current number of cached files
	FilesCached int

	// CacheHits is the cumulative number of reads served from cache
	CacheHits int64

	// CacheMisses is the cumulative number of failed loads
	CacheMisses int64

	// MmapFailures is the cumulative number of files read through the fallback
	MmapFailures int64

	// Invalidations is the cumulative number of dropped entries
	Invalidations int64

	// TotalMappedMB is the current mapped size
	TotalMappedMB float64
}

// NewFileCache creates a FileCache. If config is nil, uses
// DefaultFileCacheConfig().
func NewFileCache(config *FileCacheConfig) FileCache {
	if config == nil {
		config = DefaultFileCacheConfig()
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &fileCacheImpl{
		config: config,
		cache:  make(map[string]*mappedFile),
		logger: logger,
	}
}

// mappedFile is one cache entry. file is nil for fallback entries.
type mappedFile struct {
	data   mmap.MMap
	file   *os.File
	mapped bool
}

func (mf *mappedFile) release() error {
	var err error
	if mf.mapped && mf.data != nil {
		err = mf.data.Unmap()
	}
	if mf.file != nil {
		if cerr := mf.file.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

type fileCacheImpl struct {
	config *FileCacheConfig
	logger *slog.Logger

	// mu protects cache
	mu    sync.RWMutex
	cache map[string]*mappedFile

	// statsMu protects stats
	statsMu sync.Mutex
	stats   FileCacheStats
}

func (fc *fileCacheImpl) Read(filePath string) ([]byte, error) {
	fc.mu.RLock()
	if mf, ok := fc.cache[filePath]; ok {
		fc.mu.RUnlock()
		fc.record(func(s *FileCacheStats) { s.CacheHits++ })
		return mf.data, nil
	}
	fc.mu.RUnlock()

	fc.mu.Lock()
	defer fc.mu.Unlock()

	// Another goroutine may have loaded it.
	if mf, ok := fc.cache[filePath]; ok {
		fc.record(func(s *FileCacheStats) { s.CacheHits++ })
		return mf.data, nil
	}

	mf, err := fc.load(filePath)
	if err != nil {
		fc.record(func(s *FileCacheStats) { s.CacheMisses++ })
		return nil, err
	}

	fc.cache[filePath] = mf
	fc.record(func(s *FileCacheStats) { s.FilesLoaded++ })

	return mf.data, nil
}

// load maps filePath. Must be called while holding mu.Lock.
func (fc *fileCacheImpl) load(filePath string) (*mappedFile, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file %q: %w", filePath, err)
	}

	stat, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to stat file %q: %w", filePath, err)
	}

	if err := fc.checkLimits(stat.Size()); err != nil {
		file.Close()
		return nil, err
	}

	// Zero-length files cannot be mapped.
	if stat.Size() == 0 {
		file.Close()
		return &mappedFile{data: mmap.MMap{}}, nil
	}

	data, err := mmap.Map(file, mmap.RDONLY, 0)
	if err != nil {
		fc.logger.Warn("mmap failed, using fallback",
			"file", filePath,
			"size", stat.Size(),
			"error", err)
		file.Close()

		content, readErr := os.ReadFile(filePath)
		if readErr != nil {
			return nil, fmt.Errorf("mmap failed and fallback failed for %q: mmap error: %v, read error: %w",
				filePath, err, readErr)
		}
		fc.record(func(s *FileCacheStats) { s.MmapFailures++ })
		return &mappedFile{data: mmap.MMap(content)}, nil
	}

	return &mappedFile{data: data, file: file, mapped: true}, nil
}

// checkLimits must be called while holding mu.Lock.
func (fc *fileCacheImpl) checkLimits(newFileSize int64) error {
	if fc.config.MaxFiles > 0 && len(fc.cache) >= fc.config.MaxFiles {
		return fmt.Errorf("FileCache limit reached: %d files (limit: %d files)",
			len(fc.cache), fc.config.MaxFiles)
	}

	if fc.config.MaxMemoryMB > 0 {
		currentMB := fc.totalMappedMBLocked()
		total := currentMB + float64(newFileSize)/(1024*1024)
		if total >= float64(fc.config.MaxMemoryMB) {
			return fmt.Errorf("FileCache memory limit reached: %.2f MB (limit: %d MB)",
				total, fc.config.MaxMemoryMB)
		}
	}

	return nil
}

func (fc *fileCacheImpl) Invalidate(filePath string) error {
	fc.mu.Lock()
	defer fc.mu.Unlock()

	mf, ok := fc.cache[filePath]
	if !ok {
		return nil
	}
	delete(fc.cache, filePath)
	fc.record(func(s *FileCacheStats) { s.Invalidations++ })

	if err := mf.release(); err != nil {
		return fmt.Errorf("release %q: %w", filePath, err)
	}
	return nil
}

func (fc *fileCacheImpl) Size() int {
	fc.mu.RLock()
	defer fc.mu.RUnlock()
	return len(fc.cache)
}

func (fc *fileCacheImpl) Stats() FileCacheStats {
	fc.mu.RLock()
	cached := len(fc.cache)
	mappedMB := fc.totalMappedMBLocked()
	fc.mu.RUnlock()

	fc.statsMu.Lock()
	defer fc.statsMu.Unlock()

	stats := fc.stats
	stats.FilesCached = cached
	stats.TotalMappedMB = mappedMB
	return stats
}

// totalMappedMBLocked must be called while holding mu.
func (fc *fileCacheImpl) totalMappedMBLocked() float64 {
	var total int64
	for _, mf := range fc.cache {
		total += int64(len(mf.data))
	}
	return float64(total) / (1024 * 1024)
}

func (fc *fileCacheImpl) Close() error {
	fc.mu.Lock()
	defer fc.mu.Unlock()

	var errs []error
	for path, mf := range fc.cache {
		if err := mf.release(); err != nil {
			fc.logger.Warn("failed to release file", "path", path, "error", err)
			errs = append(errs, fmt.Errorf("release %q: %w", path, err))
		}
	}
	fc.cache = make(map[string]*mappedFile)

	fc.statsMu.Lock()
	fc.logger.Debug("FileCache closed",
		"files_loaded", fc.stats.FilesLoaded,
		"cache_hits", fc.stats.CacheHits,
		"mmap_failures", fc.stats.MmapFailures)
	fc.statsMu.Unlock()

	if len(errs) > 0 {
		return fmt.Errorf("errors during close: %v", errs)
	}
	return nil
}

func (fc *fileCacheImpl) record(update func(*FileCacheStats)) {
	fc.statsMu.Lock()
	update(&fc.stats)
	fc.statsMu.Unlock()
}
