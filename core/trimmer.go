package core

import "fmt"

// TrimResult reports what a trim removed.
type TrimResult struct {
	RowsRemoved int
	ColsRemoved int
}

// Trim deletes every row below the last written block and every column past
// lastUsedCol plus the column margin.
func Trim(ws *Worksheet, layout Layout, lastUsedRow, lastUsedCol int) (TrimResult, error) {
	var res TrimResult

	rows, err := ws.RemoveRowsFrom(lastUsedRow + BlockHeight)
	res.RowsRemoved = rows
	if err != nil {
		return res, fmt.Errorf("trim rows: %w", err)
	}

	cols, err := ws.RemoveColsFrom(lastUsedCol + layout.ColumnMargin + 1)
	res.ColsRemoved = cols
	if err != nil {
		return res, fmt.Errorf("trim columns: %w", err)
	}
	return res, nil
}
