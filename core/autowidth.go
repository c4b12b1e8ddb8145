package core

import "unicode/utf8"

// AutoFitColumns sets every column that holds text to its longest value plus
// padding. Columns without text keep their width.
func AutoFitColumns(ws *Worksheet, padding float64) error {
	rows, err := ws.Rows()
	if err != nil {
		return err
	}
	widths := map[int]int{}
	maxCol := 0
	for _, row := range rows {
		for i, v := range row {
			if n := utf8.RuneCountInString(v); n > widths[i+1] {
				widths[i+1] = n
			}
			if i+1 > maxCol {
				maxCol = i + 1
			}
		}
	}
	for col := 1; col <= maxCol; col++ {
		if widths[col] == 0 {
			continue
		}
		if err := ws.SetColWidth(col, float64(widths[col])+padding); err != nil {
			return err
		}
	}
	return nil
}
