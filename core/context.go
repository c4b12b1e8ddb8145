package core

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"rotagen/config"
)

// GenerationContext holds the state for the current generation process.
type GenerationContext struct {
	Config     *config.ReportConfig
	Layout     Layout
	Parameters map[string]string
	Reader     TableReader

	mu    sync.Mutex
	table *Table
}

// NewGenerationContext creates a new context.
func NewGenerationContext(cfg *config.ReportConfig, reader TableReader, params map[string]string) *GenerationContext {
	mergedParams := make(map[string]string)
	for k, v := range cfg.Parameters {
		mergedParams[k] = v
	}
	for k, v := range params {
		mergedParams[k] = v
	}

	ExpandParameters(mergedParams, time.Now())

	return &GenerationContext{
		Config:     cfg,
		Layout:     LayoutFromConfig(cfg.Layout),
		Parameters: mergedParams,
		Reader:     reader,
	}
}

// GetTable reads the input once and serves the cached table afterwards.
func (c *GenerationContext) GetTable(ctx context.Context) (*Table, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.table != nil {
		return c.table, nil
	}
	if c.Reader == nil {
		return nil, fmt.Errorf("no input reader configured")
	}
	t, err := c.Reader.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	slog.Debug("Input loaded", "rows", t.RowCount(), "columns", t.Width())
	c.table = t
	return t, nil
}

// OutputDir returns the configured output directory with parameters applied.
func (c *GenerationContext) OutputDir() string {
	return replacePlaceholders(c.Config.Output.Dir, c.Parameters)
}

func replacePlaceholders(input string, params map[string]string) string {
	output := input
	for k, v := range params {
		placeholder := fmt.Sprintf("${%s}", k)
		output = strings.ReplaceAll(output, placeholder, v)
	}
	return output
}
