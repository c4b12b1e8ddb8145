package core

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// XlsxTableReader reads one sheet of an .xlsx workbook; the first sheet when
// Sheet is empty.
type XlsxTableReader struct {
	Path    string
	Sheet   string
	Options excelize.Options
}

func NewXlsxTableReader(path, sheet string) *XlsxTableReader {
	return &XlsxTableReader{Path: path, Sheet: sheet}
}

func (r *XlsxTableReader) Read(ctx context.Context) (table *Table, err error) {
	f, err := openExcelFile(r.Path, r.Options)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s: %w", r.Path, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close workbook %s: %w", r.Path, closeErr)
		}
	}()

	sheet := r.Sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("%w: workbook %s has no sheets", ErrSheetNotFound, r.Path)
		}
		sheet = sheets[0]
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s of %s: %w", sheet, r.Path, err)
	}
	return tableFromGrid(rows), nil
}
