package scanner

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gnana997/propschema/pkg/component"
	"github.com/gnana997/propschema/pkg/parser"
	"github.com/gnana997/propschema/pkg/parser/queries"
	"github.com/gnana997/propschema/pkg/schema"
	"github.com/gnana997/propschema/pkg/util"
)

// Scanner orchestrates discovery, extraction and merging.
type Scanner struct {
	pm      *parser.ParserManager
	qm      *queries.QueryManager
	parser  *component.Parser
	files   util.FileCache
	modules *ModuleCache
	log     *slog.Logger

	// mu keeps file mappings alive while a worker parses them; Invalidate
	// takes it exclusively.
	mu sync.RWMutex

	cacheSize  int
	fileCfg    *util.FileCacheConfig
	parserOpts []parser.Option
}

// Option configures a Scanner.
type Option func(*Scanner)

// WithModuleCacheSize sets the number of file schemas kept between scans.
func WithModuleCacheSize(n int) Option {
	return func(s *Scanner) { s.cacheSize = n }
}

// WithFileCacheConfig sets the source file cache limits.
func WithFileCacheConfig(cfg *util.FileCacheConfig) Option {
	return func(s *Scanner) { s.fileCfg = cfg }
}

// WithParserOptions passes options to the parser manager.
func WithParserOptions(opts ...parser.Option) Option {
	return func(s *Scanner) { s.parserOpts = append(s.parserOpts, opts...) }
}

// NewScanner creates a scanner with all required dependencies.
func NewScanner(logger *slog.Logger, opts ...Option) *Scanner {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Scanner{log: logger}
	for _, opt := range opts {
		opt(s)
	}

	fileCfg := util.DefaultFileCacheConfig()
	if s.fileCfg != nil {
		fileCfg = s.fileCfg
	}
	if fileCfg.Logger == nil {
		fileCfg.Logger = logger
	}

	s.pm = parser.NewParserManager(logger, s.parserOpts...)
	s.qm = queries.NewQueryManager(s.pm, logger)
	s.parser = component.NewParser(s.pm, s.qm, nil, logger)
	s.files = util.NewFileCache(fileCfg)
	s.modules = NewModuleCache(s.cacheSize, logger)
	return s
}

// ExtractFile extracts the schema of the file at path, reusing the cached
// schema when the content is unchanged.
func (s *Scanner) ExtractFile(path string) (FileResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	source, err := s.files.Read(path)
	if err != nil {
		return FileResult{}, err
	}

	hash := ContentHash(source)
	if cached, ok := s.modules.Get(path, hash); ok {
		return FileResult{FilePath: path, Schema: cached, Cached: true}, nil
	}

	out, err := s.parser.ParseFile(path, source)
	if err != nil {
		return FileResult{}, err
	}
	s.modules.Add(path, hash, out)

	return FileResult{FilePath: path, Schema: out}, nil
}

// ExtractSource extracts the schema of in-memory source. path selects the
// dialect and module name; nothing is read from disk or cached.
func (s *Scanner) ExtractSource(path string, source []byte) (*schema.SchemaType, error) {
	return s.parser.ParseFile(path, source)
}

// Invalidate drops the cached mapping and schema of path so the next
// ExtractFile re-reads it.
func (s *Scanner) Invalidate(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.files.Invalidate(path); err != nil {
		s.log.Warn("file cache invalidation failed", "file", path, "error", err)
	}
	removed := s.modules.Remove(path)
	s.log.Debug("invalidated file", "file", path, "schemas", removed)
}

// Run discovers files under rootDir, extracts them and merges the file
// schemas. Files that fail extraction are logged and counted in the stats.
// An error is returned when discovery fails or two files produce the same
// module name.
func (s *Scanner) Run(rootDir string, cfg ScanConfig) (*schema.SchemaType, *ScanStats, error) {
	totalStart := time.Now()
	stats := &ScanStats{}

	// Discovery
	discoveryStart := time.Now()
	files, err := DiscoverFiles(rootDir, cfg)
	if err != nil {
		return nil, stats, fmt.Errorf("discovery failed: %w", err)
	}
	stats.FilesDiscovered = len(files)
	stats.DiscoveryTimeMs = time.Since(discoveryStart).Milliseconds()

	s.log.Info("discovery complete", "files", len(files), "ms", stats.DiscoveryTimeMs)

	out := schema.NewSchema()
	if len(files) == 0 {
		stats.TotalTimeMs = time.Since(totalStart).Milliseconds()
		return out, stats, nil
	}

	// Extraction
	extractionStart := time.Now()
	results, failed := ExtractAll(files, s, cfg.Workers, s.log)
	stats.FilesExtracted = len(results)
	stats.FilesFailed = len(failed)
	stats.Failures = failed
	stats.ExtractionTimeMs = time.Since(extractionStart).Milliseconds()

	var mergeErrs []error
	for _, r := range results {
		if r.Cached {
			stats.CacheHits++
		}
		if err := out.Merge(r.Schema); err != nil {
			mergeErrs = append(mergeErrs, fmt.Errorf("%s: %w", r.FilePath, err))
		}
	}

	stats.Modules = len(out.Modules)
	stats.Components = out.ComponentCount()
	for _, m := range out.Modules {
		for _, c := range m.Components {
			stats.Props += len(c.Props)
		}
	}
	stats.TotalTimeMs = time.Since(totalStart).Milliseconds()

	s.log.Info("extraction complete",
		"extracted", stats.FilesExtracted,
		"failed", stats.FilesFailed,
		"cached", stats.CacheHits,
		"components", stats.Components,
		"props", stats.Props,
		"ms", stats.ExtractionTimeMs)

	if len(mergeErrs) > 0 {
		return out, stats, errors.Join(mergeErrs...)
	}
	return out, stats, nil
}

// CacheStats returns the module cache and file cache metrics.
func (s *Scanner) CacheStats() (ModuleCacheStats, util.FileCacheStats) {
	return s.modules.Stats(), s.files.Stats()
}

// Close releases the file cache, parser and query manager resources.
func (s *Scanner) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return errors.Join(s.files.Close(), s.qm.Close(), s.pm.Close())
}
