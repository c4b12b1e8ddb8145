package config

import "testing"

func TestMemoryConfigRegistry_GetDataSourceConfig(t *testing.T) {
	registry := NewMemoryConfigRegistry([]DataSourceConfig{
		{Name: "ds1", Driver: "mysql", DSN: "dsn"},
	})

	conf, err := registry.GetDataSourceConfig("ds1")
	if err != nil {
		t.Fatalf("expected config, got error: %v", err)
	}
	if conf.Driver != "mysql" {
		t.Fatalf("unexpected driver: %s", conf.Driver)
	}
}

func TestMemoryConfigRegistry_GetDataSourceConfig_NotFound(t *testing.T) {
	registry := NewMemoryConfigRegistry(nil)
	if _, err := registry.GetDataSourceConfig("missing"); err == nil {
		t.Fatalf("expected error for missing config")
	}
}
