package core

import (
	"fmt"
	"log/slog"
	"strings"

	"rotagen/config"

	"github.com/xuri/excelize/v2"
)

// blockMarkerName is the sheet-scoped defined name covering the base column
// of every formatted block.
const blockMarkerName = "RotaGenBlocks"

// BlockProbe detects how many formatted blocks a sheet already has and
// persists the count after the grid changes.
type BlockProbe interface {
	Count(ws *Worksheet, layout Layout) (int, error)
	Record(ws *Worksheet, layout Layout, blocks int) error
}

// NewBlockProbe returns the probe for a marker kind.
func NewBlockProbe(marker config.BlockMarker) BlockProbe {
	if marker == config.MarkerBorder {
		return BorderProbe{}
	}
	return DefinedNameProbe{}
}

// BorderProbe treats a left border on the base column of a block's first row
// as the sign that the block exists.
type BorderProbe struct{}

// Count walks down in block steps and stops at the first row without the
// border. Past MaxRow only the cell's own style counts, so a bordered column
// or row default does not read as endless blocks. A bordered block past
// MaxRow+SafetyRows means the extent is wrong.
func (BorderProbe) Count(ws *Worksheet, layout Layout) (int, error) {
	limit := ws.MaxRow() + layout.SafetyRows
	count := 0
	for row := layout.FirstDataRow; ; row += BlockHeight {
		style, err := ws.OwnStyle(row, layout.BaseColumn)
		if err != nil {
			return count, err
		}
		if !style.HasLeftBorder() {
			return count, nil
		}
		if row > limit {
			return count, fmt.Errorf("%w: formatted block at row %d past row %d (max row %d)",
				ErrStructuralTemplate, row, limit, ws.MaxRow())
		}
		count++
	}
}

// Record is a no-op: the border itself is the marker.
func (BorderProbe) Record(*Worksheet, Layout, int) error { return nil }

// DefinedNameProbe keeps the block count in a defined name and falls back to
// border probing when the name is missing or does not match the sheet.
type DefinedNameProbe struct{}

func (DefinedNameProbe) Count(ws *Worksheet, layout Layout) (int, error) {
	dn, ok := findBlockMarker(ws)
	if !ok {
		return BorderProbe{}.Count(ws, layout)
	}
	blocks, err := blocksFromRef(dn.RefersTo, layout)
	if err != nil || (blocks > 0 && layout.BlockRow(blocks-1) > ws.MaxRow()) {
		slog.Warn("Stale block marker, probing borders", "sheet", ws.Name(), "refersTo", dn.RefersTo)
		return BorderProbe{}.Count(ws, layout)
	}
	return blocks, nil
}

func (DefinedNameProbe) Record(ws *Worksheet, layout Layout, blocks int) error {
	if dn, ok := findBlockMarker(ws); ok {
		if err := ws.File().DeleteDefinedName(&excelize.DefinedName{Name: dn.Name, Scope: dn.Scope}); err != nil {
			return fmt.Errorf("delete block marker: %w", err)
		}
	}
	if blocks <= 0 {
		return nil
	}
	col, err := excelize.ColumnNumberToName(layout.BaseColumn)
	if err != nil {
		return err
	}
	ref := fmt.Sprintf("%s!$%s$%d:$%s$%d", quoteSheet(ws.Name()), col, layout.FirstDataRow,
		col, layout.BlockRow(blocks)-1)
	if err := ws.File().SetDefinedName(&excelize.DefinedName{
		Name:     blockMarkerName,
		RefersTo: ref,
		Scope:    ws.Name(),
	}); err != nil {
		return fmt.Errorf("write block marker %s: %w", ref, err)
	}
	return nil
}

func findBlockMarker(ws *Worksheet) (excelize.DefinedName, bool) {
	for _, dn := range ws.File().GetDefinedName() {
		if dn.Name == blockMarkerName && dn.Scope == ws.Name() {
			return dn, true
		}
	}
	return excelize.DefinedName{}, false
}

// blocksFromRef derives the block count from "'Sheet'!$B$7:$B$54".
func blocksFromRef(refersTo string, layout Layout) (int, error) {
	ref := strings.TrimPrefix(refersTo, "=")
	if i := strings.LastIndex(ref, "!"); i >= 0 {
		ref = ref[i+1:]
	}
	ref = strings.ReplaceAll(ref, "$", "")
	_, r1, _, r2, err := parseRange(ref)
	if err != nil {
		return 0, err
	}
	height := r2 - r1 + 1
	if r1 != layout.FirstDataRow || height%BlockHeight != 0 {
		return 0, fmt.Errorf("marker %s does not align with blocks of %d rows at row %d", refersTo, BlockHeight, layout.FirstDataRow)
	}
	return height / BlockHeight, nil
}

func quoteSheet(name string) string {
	return "'" + strings.ReplaceAll(name, "'", "''") + "'"
}
