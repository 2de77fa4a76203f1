package parser

import (
	"github.com/gnana997/propschema/pkg/util"
)

// Option configures a ParserManager.
type Option func(*ParserManager)

// WithPoolSize caps the number of parsers per dialect. Zero or less keeps
// the CPU-derived default.
//
// The parser limit should match the scanner's worker count, otherwise
// workers block waiting for a free parser.
func WithPoolSize(n int) Option {
	return func(pm *ParserManager) {
		pm.poolSize = n
	}
}

// getPoolSize resolves an override against util.GetOptimalPoolSize.
func getPoolSize(override int) int {
	return util.GetOptimalPoolSizeWithOverride(override)
}
