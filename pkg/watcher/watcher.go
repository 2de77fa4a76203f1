// Package watcher re-extracts native component files as they change on disk.
package watcher

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/gnana997/propschema/pkg/scanner"
	"github.com/gnana997/propschema/pkg/schema"
)

// ErrStopped is returned by Start after Stop.
var ErrStopped = errors.New("watcher already stopped")

// Extractor re-extracts single files. *scanner.Scanner implements it.
type Extractor interface {
	ExtractFile(path string) (scanner.FileResult, error)
	Invalidate(path string)
}

// ChangeKind tells whether a file was rewritten or went away.
type ChangeKind int

const (
	// FileChanged is reported for created and modified files.
	FileChanged ChangeKind = iota
	// FileRemoved is reported for removed and renamed-away files.
	FileRemoved
)

func (k ChangeKind) String() string {
	if k == FileRemoved {
		return "removed"
	}
	return "changed"
}

// Change is one debounced file change. Schema is set for FileChanged when
// extraction succeeded; Err is set when it failed.
type Change struct {
	Path   string
	Kind   ChangeKind
	Schema *schema.SchemaType
	Err    error
}

// Options configures watching.
type Options struct {
	// Debounce groups rapid events for one path. Default: 200ms.
	Debounce time.Duration
	// Config selects the files to re-extract, as for a scan.
	Config scanner.ScanConfig
}

// DefaultOptions returns the recommended options.
func DefaultOptions() Options {
	return Options{
		Debounce: 200 * time.Millisecond,
		Config:   scanner.DefaultScanConfig(),
	}
}

// Watcher watches a directory tree and re-extracts matching files after
// they settle.
//
//	w, err := watcher.New(s, watcher.DefaultOptions(), onChange, logger)
//	if err != nil {
//	    return err
//	}
//	defer w.Stop()
//	err = w.Start(root)
type Watcher struct {
	watcher   *fsnotify.Watcher
	extractor Extractor
	onChange  func(Change)
	logger    *slog.Logger
	options   Options
	root      string

	// Debouncing
	debounceTimers map[string]*time.Timer
	debounceMu     sync.Mutex

	// processMu serializes onChange calls.
	processMu sync.Mutex

	// Lifecycle
	stopChan chan struct{}
	stopped  bool
	mu       sync.Mutex
	done     sync.WaitGroup
}

// New creates a watcher. onChange is called from a timer goroutine, one
// call at a time.
func New(ext Extractor, options Options, onChange func(Change), logger *slog.Logger) (*Watcher, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := scanner.ValidatePatterns(options.Config); err != nil {
		return nil, err
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	if options.Debounce <= 0 {
		options.Debounce = 200 * time.Millisecond
	}
	if onChange == nil {
		onChange = func(Change) {}
	}

	return &Watcher{
		watcher:        fw,
		extractor:      ext,
		onChange:       onChange,
		logger:         logger,
		options:        options,
		debounceTimers: make(map[string]*time.Timer),
		stopChan:       make(chan struct{}),
	}, nil
}

// Start watches rootPath and every non-excluded directory below it, then
// processes events in the background.
func (w *Watcher) Start(rootPath string) error {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return ErrStopped
	}
	w.mu.Unlock()

	root, err := filepath.Abs(rootPath)
	if err != nil {
		return fmt.Errorf("failed to resolve root path: %w", err)
	}
	w.root = root

	if err := w.addTree(root); err != nil {
		return err
	}

	w.logger.Info("file watcher started", "root", root)

	w.done.Add(1)
	go w.eventLoop()

	return nil
}

// addTree adds dir and its non-excluded subdirectories.
func (w *Watcher) addTree(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == dir {
				return fmt.Errorf("failed to watch %s: %w", path, err)
			}
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != w.root && scanner.Excluded(w.options.Config, scanner.RelPath(w.root, path)) {
			return filepath.SkipDir
		}
		if err := w.watcher.Add(path); err != nil {
			if path == dir {
				return fmt.Errorf("failed to watch %s: %w", path, err)
			}
			w.logger.Warn("failed to watch directory", "path", path, "error", err)
		}
		return nil
	})
}

// Stop stops the watcher and cancels pending re-extractions. Safe to call
// more than once.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return nil
	}
	w.stopped = true
	close(w.stopChan)
	w.mu.Unlock()

	w.debounceMu.Lock()
	for _, timer := range w.debounceTimers {
		timer.Stop()
	}
	w.debounceTimers = make(map[string]*time.Timer)
	w.debounceMu.Unlock()

	err := w.watcher.Close()
	w.done.Wait()
	w.logger.Info("file watcher stopped")
	return err
}

func (w *Watcher) eventLoop() {
	defer w.done.Done()
	for {
		select {
		case <-w.stopChan:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("file watcher error", "error", err)
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	path := event.Name
	rel := scanner.RelPath(w.root, path)

	if event.Op.Has(fsnotify.Create) && isDir(path) {
		if !scanner.Excluded(w.options.Config, rel) {
			if err := w.addTree(path); err != nil {
				w.logger.Warn("failed to watch new directory", "path", path, "error", err)
			}
		}
		return
	}

	if !scanner.Included(w.options.Config, rel) {
		return
	}

	w.logger.Debug("file event", "op", event.Op.String(), "file", path)

	switch {
	case event.Op.Has(fsnotify.Write), event.Op.Has(fsnotify.Create):
		w.debounce(path, FileChanged)
	case event.Op.Has(fsnotify.Remove), event.Op.Has(fsnotify.Rename):
		w.debounce(path, FileRemoved)
	}
}

// debounce schedules processing of path after the debounce delay. Only the
// last event in the window is processed.
func (w *Watcher) debounce(path string, kind ChangeKind) {
	w.debounceMu.Lock()
	defer w.debounceMu.Unlock()

	if timer, exists := w.debounceTimers[path]; exists {
		timer.Stop()
	}

	w.debounceTimers[path] = time.AfterFunc(w.options.Debounce, func() {
		w.debounceMu.Lock()
		delete(w.debounceTimers, path)
		w.debounceMu.Unlock()

		w.process(path, kind)
	})
}

func (w *Watcher) process(path string, kind ChangeKind) {
	w.processMu.Lock()
	defer w.processMu.Unlock()

	w.mu.Lock()
	stopped := w.stopped
	w.mu.Unlock()
	if stopped {
		return
	}

	w.extractor.Invalidate(path)

	change := Change{Path: path, Kind: kind}
	if kind == FileChanged {
		res, err := w.extractor.ExtractFile(path)
		if err != nil {
			w.logger.Warn("re-extraction failed", "file", path, "error", err)
			change.Err = err
		} else {
			change.Schema = res.Schema
			w.logger.Debug("file re-extracted", "file", path, "components", res.Schema.ComponentCount())
		}
	}

	w.onChange(change)
}

// Stats reports watcher state.
type Stats struct {
	Pending   int
	IsRunning bool
}

// Stats returns the number of pending re-extractions and whether the
// watcher is running.
func (w *Watcher) Stats() Stats {
	w.debounceMu.Lock()
	pending := len(w.debounceTimers)
	w.debounceMu.Unlock()

	w.mu.Lock()
	defer w.mu.Unlock()
	return Stats{Pending: pending, IsRunning: !w.stopped}
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
