package core

import (
	"context"
	"fmt"

	"github.com/shakinm/xlsReader/xls"
)

// XlsTableReader reads the first sheet of a legacy .xls workbook.
type XlsTableReader struct {
	Path string
}

func NewXlsTableReader(path string) *XlsTableReader {
	return &XlsTableReader{Path: path}
}

func (r *XlsTableReader) Read(ctx context.Context) (*Table, error) {
	workbook, err := xls.OpenFile(r.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open xls file %s: %w", r.Path, err)
	}
	if workbook.GetNumberSheets() == 0 {
		return nil, fmt.Errorf("%w: workbook %s has no sheets", ErrSheetNotFound, r.Path)
	}
	sheet, err := workbook.GetSheet(0)
	if err != nil {
		return nil, fmt.Errorf("failed to read first sheet of %s: %w", r.Path, err)
	}
	if sheet == nil {
		return nil, fmt.Errorf("%w: first sheet of %s", ErrSheetNotFound, r.Path)
	}

	var grid [][]string
	for i := 0; i <= int(sheet.GetNumberRows()); i++ {
		row, err := sheet.GetRow(i)
		if err != nil || row == nil {
			grid = append(grid, nil)
			continue
		}
		var cells []string
		for _, col := range row.GetCols() {
			if col != nil {
				cells = append(cells, col.GetString())
			} else {
				cells = append(cells, "")
			}
		}
		grid = append(grid, cells)
	}
	return tableFromGrid(grid), nil
}
