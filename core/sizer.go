package core

import (
	"fmt"
	"log/slog"
)

// Capacity describes the block grid after sizing.
type Capacity struct {
	Existing    int
	Synthesized int
}

// Blocks is the number of formatted blocks available for writing.
func (c Capacity) Blocks() int { return c.Existing + c.Synthesized }

// GridSizer measures the template's block grid and grows it so that a given
// number of records fits.
type GridSizer struct {
	ws         *Worksheet
	layout     Layout
	probe      BlockProbe
	replicator *BlockReplicator
}

func NewGridSizer(ws *Worksheet, layout Layout) *GridSizer {
	return &GridSizer{
		ws:         ws,
		layout:     layout,
		probe:      NewBlockProbe(layout.Marker),
		replicator: NewBlockReplicator(ws),
	}
}

// CountBlocks returns the number of formatted blocks starting at the first data row.
func (g *GridSizer) CountBlocks() (int, error) {
	return g.probe.Count(g.ws, g.layout)
}

// EnsureCapacity grows the grid to totalRecords plus the lookahead. Existing
// blocks are re-counted on every call, so sizing a grown sheet again adds
// nothing.
func (g *GridSizer) EnsureCapacity(totalRecords int) (Capacity, error) {
	existing, err := g.CountBlocks()
	if err != nil {
		return Capacity{}, err
	}
	capacity := Capacity{Existing: existing}
	if totalRecords <= 0 {
		return capacity, nil
	}
	if existing == 0 {
		return capacity, fmt.Errorf("%w: no formatted block at row %d column %d of %s",
			ErrStructuralTemplate, g.layout.FirstDataRow, g.layout.BaseColumn, g.ws.Name())
	}

	target := totalRecords + g.layout.LookaheadBlocks
	if existing >= target {
		return capacity, nil
	}

	tpl, err := g.replicator.Capture(g.layout.FirstDataRow, BlockHeight)
	if err != nil {
		return capacity, fmt.Errorf("capture source block: %w", err)
	}
	for n := existing; n < target; n++ {
		if err := g.replicator.Stamp(tpl, g.layout.BlockRow(n)); err != nil {
			return capacity, fmt.Errorf("replicate block %d: %w", n, err)
		}
		capacity.Synthesized++
	}
	slog.Debug("Grew block grid", "sheet", g.ws.Name(), "existing", existing, "synthesized", capacity.Synthesized)

	if err := g.Mark(capacity.Blocks()); err != nil {
		return capacity, err
	}
	return capacity, nil
}

// Mark records the current block count with the configured marker.
func (g *GridSizer) Mark(blocks int) error {
	return g.probe.Record(g.ws, g.layout, blocks)
}
