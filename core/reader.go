package core

import (
	"context"
	"fmt"
	"strings"
)

// TableReader loads tabular input.
type TableReader interface {
	Read(ctx context.Context) (*Table, error)
}

// tableFromGrid treats the first row as the header. The header is widened to
// the longest row so positional columns past the last named one stay
// addressable.
func tableFromGrid(grid [][]string) *Table {
	for len(grid) > 1 && isBlankRow(grid[len(grid)-1]) {
		grid = grid[:len(grid)-1]
	}
	if len(grid) == 0 {
		return NewTable(nil, nil)
	}
	width := 0
	for _, r := range grid {
		if len(r) > width {
			width = len(r)
		}
	}
	header := padRow(grid[0], width)
	if len(grid[0]) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}
	return NewTable(header, grid[1:])
}

func isBlankRow(r []string) bool {
	for _, v := range r {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// stringify renders a driver or attribute value the way it reads in a sheet.
func stringify(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case []byte:
		return string(val)
	case string:
		return val
	default:
		return fmt.Sprintf("%v", val)
	}
}

// MemoryTableReader serves a fixed table. Useful for tests.
type MemoryTableReader struct {
	Table *Table
	Err   error
}

func (m *MemoryTableReader) Read(ctx context.Context) (*Table, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Table, nil
}
