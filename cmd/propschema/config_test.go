package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnana997/propschema/pkg/scanner"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadProjectConfig(t *testing.T) {
	path := writeConfig(t, `include:
  - packages/**/*NativeComponent.ts
exclude:
  - "**/legacy/**"
output: build/schema.json
log_level: debug
log_format: json
mcp_log: .propschema/mcp.jsonl
workers: 4
`)

	cfg, err := loadProjectConfig(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"packages/**/*NativeComponent.ts"}, cfg.Include)
	assert.Equal(t, []string{"**/legacy/**"}, cfg.Exclude)
	assert.Equal(t, "build/schema.json", cfg.Output)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, ".propschema/mcp.jsonl", cfg.MCPLog)
	assert.Equal(t, 4, cfg.Workers)
}

func TestLoadProjectConfig_MissingDefault(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := loadProjectConfig("")
	require.NoError(t, err)
	assert.Equal(t, &ProjectConfig{}, cfg)
}

func TestLoadProjectConfig_DefaultPath(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, ".propschema"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, defaultConfigPath), []byte("output: out.json\n"), 0644))
	t.Chdir(dir)

	cfg, err := loadProjectConfig("")
	require.NoError(t, err)
	assert.Equal(t, "out.json", cfg.Output)
}

func TestLoadProjectConfig_Errors(t *testing.T) {
	_, err := loadProjectConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config")

	_, err = loadProjectConfig(writeConfig(t, "include: [unclosed\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse")
}

func TestProjectConfig_ScanConfig(t *testing.T) {
	defaults := scanner.DefaultScanConfig()

	t.Run("empty config keeps defaults", func(t *testing.T) {
		cfg := (&ProjectConfig{}).scanConfig()
		assert.Equal(t, defaults.Include, cfg.Include)
		assert.Equal(t, defaults.Exclude, cfg.Exclude)
		assert.Zero(t, cfg.Workers)
	})

	t.Run("include replaces and exclude extends", func(t *testing.T) {
		cfg := (&ProjectConfig{
			Include: []string{"src/**/*.ts"},
			Exclude: []string{"**/legacy/**"},
			Workers: 2,
		}).scanConfig()

		assert.Equal(t, []string{"src/**/*.ts"}, cfg.Include)
		assert.Len(t, cfg.Exclude, len(defaults.Exclude)+1)
		assert.Contains(t, cfg.Exclude, "**/legacy/**")
		assert.Contains(t, cfg.Exclude, "node_modules/**")
		assert.Equal(t, 2, cfg.Workers)
	})
}

func TestScanFlags_Resolve(t *testing.T) {
	cfg := &ProjectConfig{Include: []string{"a/**"}, Workers: 8}

	f := scanFlags{include: []string{"b/**"}, exclude: []string{"c/**"}, workers: 3}
	sc := f.resolve(cfg)
	assert.Equal(t, []string{"b/**"}, sc.Include)
	assert.Contains(t, sc.Exclude, "c/**")
	assert.Equal(t, 3, sc.Workers)

	sc = (&scanFlags{}).resolve(cfg)
	assert.Equal(t, []string{"a/**"}, sc.Include)
	assert.Equal(t, 8, sc.Workers)
}
