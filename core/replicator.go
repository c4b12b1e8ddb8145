package core

import (
	"fmt"
	"log/slog"

	"github.com/xuri/excelize/v2"
)

// BlockTemplate is the captured formatting of one block: style ids per cell,
// row heights and the merges wholly inside the block, rows relative to 0.
type BlockTemplate struct {
	StartRow int
	Height   int
	Width    int
	Styles   [][]int // [row][col-1]
	Heights  []float64
	Merges   []MergeRange
}

// BlockReplicator clones a block's formatting to other row ranges of the same sheet.
type BlockReplicator struct {
	ws *Worksheet
}

func NewBlockReplicator(ws *Worksheet) *BlockReplicator {
	return &BlockReplicator{ws: ws}
}

// Capture reads the block starting at start. Merges that cross the block
// boundary are left out.
func (r *BlockReplicator) Capture(start, height int) (*BlockTemplate, error) {
	if start < 1 || height < 1 {
		return nil, fmt.Errorf("invalid block start %d height %d", start, height)
	}
	width := r.ws.MaxCol()
	tpl := &BlockTemplate{
		StartRow: start,
		Height:   height,
		Width:    width,
		Styles:   make([][]int, height),
		Heights:  make([]float64, height),
	}

	for i := range height {
		row := start + i
		tpl.Styles[i] = make([]int, width)
		for col := 1; col <= width; col++ {
			style, err := r.ws.Style(row, col)
			if err != nil {
				return nil, err
			}
			tpl.Styles[i][col-1] = style.ID()
		}
		h, err := r.ws.RowHeight(row)
		if err != nil {
			return nil, fmt.Errorf("read height of row %d: %w", row, err)
		}
		tpl.Heights[i] = h
	}

	idx, err := r.ws.Merges()
	if err != nil {
		return nil, err
	}
	for _, m := range idx.Ranges() {
		switch {
		case m.WithinRows(start, height):
			tpl.Merges = append(tpl.Merges, m.Shift(-start))
		case m.TouchesRows(start, height):
			slog.Warn("Ignoring merge across block boundary", "sheet", r.ws.Name(), "merge", m.String(), "blockStart", start)
		}
	}
	return tpl, nil
}

// Stamp applies a captured block at dest. Values are never copied. The
// destination must not overlap the template's own rows.
func (r *BlockReplicator) Stamp(tpl *BlockTemplate, dest int) error {
	if dest < tpl.StartRow+tpl.Height && dest+tpl.Height > tpl.StartRow {
		return fmt.Errorf("destination row %d overlaps source block at row %d", dest, tpl.StartRow)
	}
	if dest+tpl.Height-1 > excelize.TotalRows {
		return fmt.Errorf("%w: block at row %d exceeds sheet row limit", ErrStructuralTemplate, dest)
	}

	for i, styles := range tpl.Styles {
		row := dest + i
		// Coalesce runs of the same style into one range call.
		for from := 0; from < len(styles); {
			to := from
			for to+1 < len(styles) && styles[to+1] == styles[from] {
				to++
			}
			if styles[from] != 0 {
				if err := r.ws.SetStyle(row, from+1, to+1, styles[from]); err != nil {
					return err
				}
			}
			from = to + 1
		}

		current, err := r.ws.RowHeight(row)
		if err != nil {
			return fmt.Errorf("read height of row %d: %w", row, err)
		}
		if current != tpl.Heights[i] {
			if err := r.ws.SetRowHeight(row, tpl.Heights[i]); err != nil {
				return fmt.Errorf("set height of row %d: %w", row, err)
			}
		}
	}

	for _, m := range tpl.Merges {
		if err := r.ws.Merge(m.Shift(dest)); err != nil {
			return err
		}
	}
	return nil
}

// Replicate copies the formatting of the block at src to dst.
func (r *BlockReplicator) Replicate(src, dst, height int) error {
	tpl, err := r.Capture(src, height)
	if err != nil {
		return err
	}
	return r.Stamp(tpl, dst)
}
