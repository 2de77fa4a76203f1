package util

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestFileCache_Read(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "MyNativeComponent.ts", "export interface NativeProps {}\n")

	fc := NewFileCache(nil)
	defer fc.Close()

	data, err := fc.Read(path)
	require.NoError(t, err)
	assert.Equal(t, "export interface NativeProps {}\n", string(data))

	_, err = fc.Read(path)
	require.NoError(t, err)

	stats := fc.Stats()
	assert.Equal(t, int64(1), stats.FilesLoaded)
	assert.Equal(t, int64(1), stats.CacheHits)
	assert.Equal(t, 1, stats.FilesCached)
	assert.Greater(t, stats.TotalMappedMB, 0.0)
}

func TestFileCache_EmptyFile(t *testing.T) {
	path := writeFile(t, t.TempDir(), "empty.ts", "")

	fc := NewFileCache(nil)
	defer fc.Close()

	data, err := fc.Read(path)
	require.NoError(t, err)
	assert.Empty(t, data)
	assert.Equal(t, 1, fc.Size())
}

func TestFileCache_Missing(t *testing.T) {
	fc := NewFileCache(nil)
	defer fc.Close()

	_, err := fc.Read(filepath.Join(t.TempDir(), "missing.ts"))
	require.Error(t, err)
	assert.Equal(t, int64(1), fc.Stats().CacheMisses)
	assert.Equal(t, 0, fc.Size())
}

func TestFileCache_Invalidate(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "A.ts", "type A = 1;")

	fc := NewFileCache(nil)
	defer fc.Close()

	data, err := fc.Read(path)
	require.NoError(t, err)
	assert.Equal(t, "type A = 1;", string(data))

	require.NoError(t, fc.Invalidate(path))
	assert.Equal(t, 0, fc.Size())

	writeFile(t, dir, "A.ts", "type A = 'changed';")
	data, err = fc.Read(path)
	require.NoError(t, err)
	assert.Equal(t, "type A = 'changed';", string(data))

	// Unknown paths are a no-op.
	require.NoError(t, fc.Invalidate(filepath.Join(dir, "other.ts")))
	assert.Equal(t, int64(1), fc.Stats().Invalidations)
}

func TestFileCache_MaxFiles(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.ts", "a")
	b := writeFile(t, dir, "b.ts", "b")

	fc := NewFileCache(&FileCacheConfig{MaxFiles: 1})
	defer fc.Close()

	_, err := fc.Read(a)
	require.NoError(t, err)

	_, err = fc.Read(b)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "limit reached")

	// Cached files are still served.
	_, err = fc.Read(a)
	require.NoError(t, err)
}

func TestFileCache_MaxMemory(t *testing.T) {
	path := writeFile(t, t.TempDir(), "big.ts", strings.Repeat("x", 2*1024*1024))

	fc := NewFileCache(&FileCacheConfig{MaxMemoryMB: 1})
	defer fc.Close()

	_, err := fc.Read(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "memory limit")
}

func TestFileCache_Concurrent(t *testing.T) {
	dir := t.TempDir()
	var paths []string
	for _, name := range []string{"a.ts", "b.ts", "c.ts", "d.ts"} {
		paths = append(paths, writeFile(t, dir, name, "content of "+name))
	}

	fc := NewFileCache(nil)
	defer fc.Close()

	var wg sync.WaitGroup
	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			p := paths[i%len(paths)]
			data, err := fc.Read(p)
			assert.NoError(t, err)
			assert.Equal(t, "content of "+filepath.Base(p), string(data))
		}(i)
	}
	wg.Wait()

	stats := fc.Stats()
	assert.Equal(t, int64(len(paths)), stats.FilesLoaded)
	assert.Equal(t, len(paths), stats.FilesCached)
}

func TestFileCache_Close(t *testing.T) {
	path := writeFile(t, t.TempDir(), "a.ts", "a")

	fc := NewFileCache(nil)
	_, err := fc.Read(path)
	require.NoError(t, err)

	require.NoError(t, fc.Close())
	assert.Equal(t, 0, fc.Size())
}

func TestGetOptimalPoolSize(t *testing.T) {
	size := GetOptimalPoolSize()
	assert.GreaterOrEqual(t, size, 4)
	assert.LessOrEqual(t, size, 32)

	assert.Equal(t, 3, GetOptimalPoolSizeWithOverride(3))
	assert.Equal(t, size, GetOptimalPoolSizeWithOverride(0))
}
