package config

import "fmt"

// Provider defines the interface for retrieving configurations.
type Provider interface {
	GetDataSourceConfig(name string) (*DataSourceConfig, error)
}

// MemoryConfigRegistry implements Provider using an in-memory map.
type MemoryConfigRegistry struct {
	dataSources map[string]*DataSourceConfig
}

// NewMemoryConfigRegistry creates a new registry with the given data sources.
func NewMemoryConfigRegistry(sources []DataSourceConfig) *MemoryConfigRegistry {
	m := make(map[string]*DataSourceConfig, len(sources))
	for i := range sources {
		m[sources[i].Name] = &sources[i]
	}
	return &MemoryConfigRegistry{
		dataSources: m,
	}
}

// GetDataSourceConfig retrieves a DataSourceConfig by name.
func (r *MemoryConfigRegistry) GetDataSourceConfig(name string) (*DataSourceConfig, error) {
	if conf, ok := r.dataSources[name]; ok {
		return conf, nil
	}
	return nil, fmt.Errorf("data source config not found: %s", name)
}
