// Package scanner discovers native component source files under a directory,
// extracts their component schemas in parallel and merges them into one
// codegen schema.
package scanner

import (
	"github.com/gnana997/propschema/pkg/schema"
)

// ScanConfig configures file discovery and extraction.
type ScanConfig struct {
	// Include glob patterns for file matching, relative to the scan root.
	Include []string
	// Exclude glob patterns. Matching directories are not descended.
	Exclude []string
	// Workers is the extraction worker count. 0 uses util.GetOptimalPoolSize.
	Workers int
}

// DefaultScanConfig returns the default scan configuration: native
// component specs only, skipping dependencies, build output and tests.
func DefaultScanConfig() ScanConfig {
	return ScanConfig{
		Include: []string{
			"**/*NativeComponent.ts",
			"**/*NativeComponent.tsx",
		},
		Exclude: []string{
			"node_modules/**",
			"**/node_modules/**",
			".git/**",
			"dist/**",
			"build/**",
			"lib/**",
			"coverage/**",
			"android/**",
			"ios/**",
			".propschema/**",
			"**/*.test.*",
			"**/*.spec.*",
			"__tests__/**",
			"**/__tests__/**",
			"**/__mocks__/**",
			"**/__fixtures__/**",
		},
	}
}

// FileResult is the extraction output of one file.
type FileResult struct {
	FilePath string
	Schema   *schema.SchemaType
	// Cached is set when Schema came from the module cache.
	Cached bool
}

// FileError records a file that failed extraction.
type FileError struct {
	FilePath string
	Err      error
}

// Error returns the underlying error, which already names the file.
func (e FileError) Error() string {
	return e.Err.Error()
}

func (e FileError) Unwrap() error {
	return e.Err
}

// ScanStats tracks scan results and performance.
type ScanStats struct {
	FilesDiscovered  int
	FilesExtracted   int
	FilesFailed      int
	CacheHits        int
	Modules          int
	Components       int
	Props            int
	DiscoveryTimeMs  int64
	ExtractionTimeMs int64
	TotalTimeMs      int64

	// Failures lists the files that failed extraction, sorted by path.
	Failures []FileError
}
