package scanner

import (
	"log/slog"
	"sort"
	"sync"

	"github.com/gnana997/propschema/pkg/util"
)

// FileExtractor extracts the schema of one file.
type FileExtractor interface {
	ExtractFile(path string) (FileResult, error)
}

// ExtractAll runs ext.ExtractFile on each file in parallel with workers
// goroutines (0 uses util.GetOptimalPoolSize). Results and failures are
// sorted by path. Errors on individual files are logged but don't stop the
// pipeline.
func ExtractAll(
	files []string,
	ext FileExtractor,
	workers int,
	logger *slog.Logger,
) ([]FileResult, []FileError) {
	if len(files) == 0 {
		return nil, nil
	}
	if logger == nil {
		logger = slog.Default()
	}

	numWorkers := util.GetOptimalPoolSizeWithOverride(workers)
	if numWorkers > len(files) {
		numWorkers = len(files)
	}

	paths := make(chan string, numWorkers*2)
	type resultOrError struct {
		result FileResult
		err    error
		file   string
	}
	results := make(chan resultOrError, numWorkers)

	// Start workers.
	var wg sync.WaitGroup
	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range paths {
				res, err := ext.ExtractFile(path)
				results <- resultOrError{result: res, err: err, file: path}
			}
		}()
	}

	// Submit jobs.
	go func() {
		for _, f := range files {
			paths <- f
		}
		close(paths)
		wg.Wait()
		close(results)
	}()

	// Collect results.
	var extracted []FileResult
	var failed []FileError
	for r := range results {
		if r.err != nil {
			logger.Warn("extraction failed", "file", r.file, "error", r.err)
			failed = append(failed, FileError{FilePath: r.file, Err: r.err})
			continue
		}
		extracted = append(extracted, r.result)
	}

	sort.Slice(extracted, func(i, j int) bool { return extracted[i].FilePath < extracted[j].FilePath })
	sort.Slice(failed, func(i, j int) bool { return failed[i].FilePath < failed[j].FilePath })

	return extracted, failed
}
