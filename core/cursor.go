package core

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// CursorWriter places record fields left to right on a block's first row,
// skipping the covered cells of merged ranges.
type CursorWriter struct {
	ws       *Worksheet
	layout   Layout
	capacity int

	records int
	maxCol  int
}

// NewCursorWriter writes into at most capacity blocks.
func NewCursorWriter(ws *Worksheet, layout Layout, capacity int) *CursorWriter {
	return &CursorWriter{
		ws:       ws,
		layout:   layout,
		capacity: capacity,
		maxCol:   layout.BaseColumn,
	}
}

// WriteValue writes value at the first writable cell at or after (row, col)
// and returns the column following what the value occupied. A merge anchor
// takes the value and the cursor jumps past the merge; a covered cell is
// skipped together with the rest of its merge.
func (w *CursorWriter) WriteValue(row, col int, value interface{}) (int, error) {
	for {
		if col > excelize.MaxColumns {
			return col, fmt.Errorf("%w: no writable cell left on row %d", ErrCapacityExceeded, row)
		}
		m, ok, err := w.ws.FindMerge(row, col)
		if err != nil {
			return col, err
		}
		if !ok {
			if err := w.ws.SetValue(row, col, value); err != nil {
				return col, err
			}
			return col + 1, nil
		}
		if m.IsAnchor(row, col) {
			if err := w.ws.SetValue(m.MinRow, m.MinCol, value); err != nil {
				return col, err
			}
			return m.MaxCol + 1, nil
		}
		col = m.MaxCol + 1
	}
}

// WriteRecord writes a record into the next block and returns the block's row.
func (w *CursorWriter) WriteRecord(rec Record) (int, error) {
	if w.records >= w.capacity {
		return 0, fmt.Errorf("%w: record %d with %d blocks", ErrCapacityExceeded, w.records+1, w.capacity)
	}
	row := w.layout.BlockRow(w.records)
	col := w.layout.BaseColumn
	for _, v := range rec.Values() {
		next, err := w.WriteValue(row, col, v)
		if err != nil {
			return row, fmt.Errorf("write record %d: %w", w.records+1, err)
		}
		col = next
	}
	if used := col - 1; used > w.maxCol {
		w.maxCol = used
	}
	w.records++
	return row, nil
}

// Records returns the number of records written.
func (w *CursorWriter) Records() int { return w.records }

// MaxColumn returns the widest column any record reached, at least the base column.
func (w *CursorWriter) MaxColumn() int { return w.maxCol }

// LastRow returns the first row of the last written block. With no records
// it is one block above the first data row.
func (w *CursorWriter) LastRow() int {
	return w.layout.BlockRow(w.records - 1)
}
