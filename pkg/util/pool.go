package util

import "runtime"

// GetOptimalPoolSize returns the worker and parser count for CPU-bound work:
// twice the CPU count, clamped to [4, 32].
//
// Parsing is CGO-heavy, so two goroutines per core keep cores busy while
// others cross the CGO boundary. The parser pool and the scanner worker
// pool both use this value so workers never wait on parsers.
func GetOptimalPoolSize() int {
	poolSize := runtime.NumCPU() * 2

	if poolSize < 4 {
		poolSize = 4
	}
	if poolSize > 32 {
		poolSize = 32
	}

	return poolSize
}

// GetOptimalPoolSizeWithOverride returns override when positive and
// GetOptimalPoolSize() otherwise.
func GetOptimalPoolSizeWithOverride(override int) int {
	if override > 0 {
		return override
	}
	return GetOptimalPoolSize()
}
