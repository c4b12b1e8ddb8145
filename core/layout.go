package core

import (
	"errors"

	"rotagen/config"
)

// BlockHeight is the number of rows in one record block.
const BlockHeight = 4

// MaxFields is the number of positional fields a record can carry.
const MaxFields = 12

var (
	// ErrStructuralTemplate reports a template whose block structure cannot be
	// measured or grown safely.
	ErrStructuralTemplate = errors.New("structural template error")
	// ErrCapacityExceeded reports a write past the last synthesized block.
	ErrCapacityExceeded = errors.New("write past last synthesized block")
)

// Layout is the grid geometry the engine works with.
type Layout struct {
	FirstDataRow    int
	BaseColumn      int
	ColumnMargin    int
	LookaheadBlocks int
	SafetyRows      int
	WidthPadding    float64
	Marker          config.BlockMarker
}

// LayoutFromConfig converts the YAML layout section.
func LayoutFromConfig(c config.LayoutConfig) Layout {
	return Layout{
		FirstDataRow:    c.FirstDataRow,
		BaseColumn:      c.BaseColumn,
		ColumnMargin:    c.ColumnMargin,
		LookaheadBlocks: c.LookaheadBlocks,
		SafetyRows:      c.SafetyRows,
		WidthPadding:    c.WidthPadding,
		Marker:          c.BlockMarker,
	}
}

// BlockRow returns the first row of the n-th block (0-based).
func (l Layout) BlockRow(n int) int {
	return l.FirstDataRow + n*BlockHeight
}
