package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadReportConfig reads a report bundle from a YAML file on top of Default().
// Keys missing from the file keep their default values.
func LoadReportConfig(path string) (*ReportConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read report config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse report config: %w", err)
	}
	return cfg, nil
}

// LoadDataSourceConfig loads a data source configuration from a YAML file.
func LoadDataSourceConfig(path string) (*DataSourceConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read data source config file: %w", err)
	}

	var cfg DataSourceConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse data source config: %w", err)
	}

	return &cfg, nil
}

// LoadConfigBundle loads and validates a report bundle. An empty path yields
// the validated defaults.
func LoadConfigBundle(path string) (*ReportConfig, *MemoryConfigRegistry, error) {
	cfg := Default()
	if path != "" {
		loaded, err := LoadReportConfig(path)
		if err != nil {
			return nil, nil, err
		}
		cfg = loaded
	}

	registry := NewMemoryConfigRegistry(cfg.DataSources)
	if err := NewValidator(registry).ValidateReport(cfg); err != nil {
		return nil, nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, registry, nil
}
