// Package parser wraps tree-sitter TypeScript parsing behind per-dialect
// parser pools.
package parser

import (
	"fmt"
	"log/slog"
	"sync"

	ts "github.com/tree-sitter/go-tree-sitter"
	ts_typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"
)

// ParserManager hands out pooled tree-sitter parsers for TypeScript and TSX.
//
// Pools are created lazily on first use per dialect. The manager owns the
// pools and must be closed via Close(); callers own the returned trees and
// must call tree.Close() after use.
//
// Safe for concurrent use. Up to the pool size, goroutines parsing the same
// dialect do so in parallel.
//
// Example:
//
//	manager := NewParserManager(logger)
//	defer manager.Close()
//
//	tree, err := manager.ParseFile(source, "MyViewNativeComponent.ts")
//	if err != nil {
//	    return err
//	}
//	defer tree.Close()
type ParserManager struct {
	pools    map[Dialect]*parserPool
	poolSize int
	mutex    sync.RWMutex
	logger   *slog.Logger

	stats struct {
		parsesCalled int
	}
}

// NewParserManager creates a new ParserManager. Logger can be nil (uses
// slog.Default()).
func NewParserManager(logger *slog.Logger, opts ...Option) *ParserManager {
	if logger == nil {
		logger = slog.Default()
	}

	pm := &ParserManager{
		pools:  make(map[Dialect]*parserPool),
		logger: logger,
	}
	for _, opt := range opts {
		opt(pm)
	}
	pm.poolSize = getPoolSize(pm.poolSize)

	return pm
}

// Parse parses source with the grammar for dialect.
//
// Trees with syntax errors are still returned; the error nodes are logged
// at warn level and left for the caller to skip over.
func (pm *ParserManager) Parse(source []byte, dialect Dialect) (*ts.Tree, error) {
	if dialect == DialectUnknown {
		return nil, fmt.Errorf("cannot parse unknown dialect")
	}

	pm.mutex.Lock()
	pm.stats.parsesCalled++
	pm.mutex.Unlock()

	pool, err := pm.getOrCreatePool(dialect)
	if err != nil {
		return nil, fmt.Errorf("failed to get pool for %s: %w", dialect, err)
	}

	p, err := pool.acquire()
	if err != nil {
		return nil, fmt.Errorf("failed to acquire parser: %w", err)
	}
	tree := p.Parse(source, nil)
	pool.release(p)

	if tree == nil {
		return nil, fmt.Errorf("parser.Parse returned nil tree")
	}

	if tree.RootNode().HasError() {
		pm.logger.Warn("parse tree contains errors",
			"dialect", dialect.String())
	}

	return tree, nil
}

// ParseFile parses source using the dialect implied by filePath.
func (pm *ParserManager) ParseFile(source []byte, filePath string) (*ts.Tree, error) {
	dialect := DetectDialect(filePath)
	if dialect == DialectUnknown {
		return nil, fmt.Errorf("unsupported file extension: %s", filePath)
	}
	return pm.Parse(source, dialect)
}

// Language returns the tree-sitter grammar for dialect. Used to compile
// queries against the same grammar trees are parsed with.
func (pm *ParserManager) Language(dialect Dialect) (*ts.Language, error) {
	switch dialect {
	case DialectTypeScript:
		return ts.NewLanguage(ts_typescript.LanguageTypescript()), nil
	case DialectTSX:
		return ts.NewLanguage(ts_typescript.LanguageTSX()), nil
	default:
		return nil, fmt.Errorf("unsupported dialect: %s", dialect)
	}
}

// Close releases all parser pools. The manager cannot be used afterwards.
func (pm *ParserManager) Close() error {
	pm.mutex.Lock()
	defer pm.mutex.Unlock()

	created := 0
	for _, pool := range pm.pools {
		created += pool.getCreatedCount()
	}
	pm.logger.Debug("closing ParserManager",
		"parsers_created", created,
		"parses_called", pm.stats.parsesCalled)

	for _, pool := range pm.pools {
		pool.close()
	}
	pm.pools = make(map[Dialect]*parserPool)

	return nil
}

// getOrCreatePool returns the pool for dialect, creating it on first use.
func (pm *ParserManager) getOrCreatePool(dialect Dialect) (*parserPool, error) {
	pm.mutex.RLock()
	pool, exists := pm.pools[dialect]
	pm.mutex.RUnlock()
	if exists {
		return pool, nil
	}

	pm.mutex.Lock()
	defer pm.mutex.Unlock()

	// Another goroutine may have created it.
	if pool, exists = pm.pools[dialect]; exists {
		return pool, nil
	}

	lang, err := pm.Language(dialect)
	if err != nil {
		return nil, err
	}

	pool = newParserPool(dialect, lang, pm.poolSize, pm.logger)
	pm.pools[dialect] = pool

	pm.logger.Debug("created new parser pool",
		"dialect", dialect.String(),
		"maxSize", pm.poolSize)

	return pool, nil
}

// GetStats returns parser usage statistics.
func (pm *ParserManager) GetStats() ParserStats {
	pm.mutex.RLock()
	defer pm.mutex.RUnlock()

	totalParsers := 0
	for _, pool := range pm.pools {
		totalParsers += pool.getCreatedCount()
	}

	return ParserStats{
		ParsersCreated: totalParsers,
		ParsesCalled:   pm.stats.parsesCalled,
		PoolSize:       pm.poolSize,
	}
}

// ParserStats contains parser usage statistics.
type ParserStats struct {
	// ParsersCreated is the total number of parser instances created
	ParsersCreated int

	// ParsesCalled is the total number of Parse() calls
	ParsesCalled int

	// PoolSize is the per-dialect parser limit
	PoolSize int
}
