package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gnana997/propschema/pkg/scanner"
)

// defaultConfigPath is read when --config is not given.
const defaultConfigPath = ".propschema/config.yaml"

// ProjectConfig holds the contents of .propschema/config.yaml.
type ProjectConfig struct {
	Include   []string `yaml:"include"`
	Exclude   []string `yaml:"exclude"`
	Output    string   `yaml:"output"`
	LogLevel  string   `yaml:"log_level"`
	LogFormat string   `yaml:"log_format"`
	MCPLog    string   `yaml:"mcp_log"`
	Workers   int      `yaml:"workers"`
}

// loadProjectConfig reads the config file at path. A missing file at the
// default path yields an empty config; a missing explicit path is an error.
func loadProjectConfig(path string) (*ProjectConfig, error) {
	explicit := path != ""
	if !explicit {
		path = defaultConfigPath
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) && !explicit {
		return &ProjectConfig{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &cfg, nil
}

// scanConfig applies the project config to the default scan config.
// include replaces the default globs; exclude extends them.
func (c *ProjectConfig) scanConfig() scanner.ScanConfig {
	cfg := scanner.DefaultScanConfig()
	if len(c.Include) > 0 {
		cfg.Include = c.Include
	}
	cfg.Exclude = append(cfg.Exclude, c.Exclude...)
	cfg.Workers = c.Workers
	return cfg
}
