package core

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ErrSheetNotFound is returned when a workbook has no usable sheet.
var ErrSheetNotFound = errors.New("sheet not found")

// Worksheet owns one sheet of an open workbook for a processing session. It
// tracks the grid extent (styled empty cells included) and keeps the merge
// index in step with merges added or removed through it.
type Worksheet struct {
	file   ExcelFile
	sheet  string
	maxRow int
	maxCol int
	merges *MergeIndex // nil when stale
}

// OpenWorksheet picks the first candidate sheet present in the workbook and
// falls back to the active sheet.
func OpenWorksheet(f ExcelFile, candidates []string) (*Worksheet, error) {
	for _, name := range candidates {
		if idx, err := f.GetSheetIndex(name); err == nil && idx != -1 {
			return NewWorksheet(f, name)
		}
	}

	active := f.GetSheetName(f.GetActiveSheetIndex())
	if active == "" {
		if sheets := f.GetSheetList(); len(sheets) > 0 {
			active = sheets[0]
		}
	}
	if active == "" {
		return nil, ErrSheetNotFound
	}
	if len(candidates) > 0 {
		slog.Warn("Template sheet not found, using active sheet", "candidates", candidates, "sheet", active)
	}
	return NewWorksheet(f, active)
}

// NewWorksheet wraps a named sheet and measures its extent.
func NewWorksheet(f ExcelFile, sheet string) (*Worksheet, error) {
	if idx, err := f.GetSheetIndex(sheet); err != nil || idx == -1 {
		return nil, fmt.Errorf("%w: %s", ErrSheetNotFound, sheet)
	}
	ws := &Worksheet{file: f, sheet: sheet}

	if dim, err := f.GetSheetDimension(sheet); err == nil && dim != "" {
		if _, _, c2, r2, err := parseRange(dim); err == nil {
			ws.grow(r2, c2)
		}
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read rows of %s: %w", sheet, err)
	}
	for i, row := range rows {
		for c := len(row) - 1; c >= 0; c-- {
			if row[c] != "" {
				ws.grow(i+1, c+1)
				break
			}
		}
	}

	idx, err := ws.Merges()
	if err != nil {
		return nil, err
	}
	for _, m := range idx.Ranges() {
		ws.grow(m.MaxRow, m.MaxCol)
	}
	return ws, nil
}

func (ws *Worksheet) grow(row, col int) {
	if row > ws.maxRow {
		ws.maxRow = row
	}
	if col > ws.maxCol {
		ws.maxCol = col
	}
}

// Name returns the sheet name.
func (ws *Worksheet) Name() string { return ws.sheet }

// File returns the underlying workbook.
func (ws *Worksheet) File() ExcelFile { return ws.file }

// MaxRow returns the last row that carries a value, a style or a merge.
func (ws *Worksheet) MaxRow() int { return ws.maxRow }

// MaxCol returns the last column that carries a value, a style or a merge.
func (ws *Worksheet) MaxCol() int { return ws.maxCol }

// Style captures the style of one cell.
func (ws *Worksheet) Style(row, col int) (StyleSnapshot, error) {
	return CaptureStyle(ws.file, ws.sheet, row, col)
}

// OwnStyle is Style without the row and column defaults excelize resolves
// unstyled cells to. Inside the extent the resolved style counts as the
// cell's own.
func (ws *Worksheet) OwnStyle(row, col int) (StyleSnapshot, error) {
	style, err := ws.Style(row, col)
	if err != nil || style.IsZero() || row <= ws.maxRow {
		return style, err
	}
	colID, rowID, err := ws.defaultStyles(row, col)
	if err != nil {
		return StyleSnapshot{}, err
	}
	if style.ID() == colID || style.ID() == rowID {
		return StyleSnapshot{}, nil
	}
	return style, nil
}

// defaultStyles returns the column style of col and the row style of row.
// excelize has no row style getter, so the row style is read from the first
// column past the extent, less that column's own default.
func (ws *Worksheet) defaultStyles(row, col int) (colID, rowID int, err error) {
	if colID, err = ws.colStyle(col); err != nil {
		return 0, 0, err
	}
	spare := ws.maxCol + 1
	cell, err := excelize.CoordinatesToCellName(spare, row)
	if err != nil {
		return 0, 0, err
	}
	id, err := ws.file.GetCellStyle(ws.sheet, cell)
	if err != nil {
		return 0, 0, fmt.Errorf("read style of %s: %w", cell, err)
	}
	spareID, err := ws.colStyle(spare)
	if err != nil {
		return 0, 0, err
	}
	if id != spareID {
		rowID = id
	}
	return colID, rowID, nil
}

func (ws *Worksheet) colStyle(col int) (int, error) {
	name, err := excelize.ColumnNumberToName(col)
	if err != nil {
		return 0, err
	}
	id, err := ws.file.GetColStyle(ws.sheet, name)
	if err != nil {
		return 0, fmt.Errorf("read style of column %s: %w", name, err)
	}
	return id, nil
}

// SetStyle applies a style id to cells (row, fromCol)..(row, toCol).
func (ws *Worksheet) SetStyle(row, fromCol, toCol, styleID int) error {
	start, err := excelize.CoordinatesToCellName(fromCol, row)
	if err != nil {
		return err
	}
	end, err := excelize.CoordinatesToCellName(toCol, row)
	if err != nil {
		return err
	}
	if err := ws.file.SetCellStyle(ws.sheet, start, end, styleID); err != nil {
		return fmt.Errorf("set style %s:%s: %w", start, end, err)
	}
	ws.grow(row, toCol)
	return nil
}

// Value returns the formatted value of one cell.
func (ws *Worksheet) Value(row, col int) (string, error) {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return "", err
	}
	return ws.file.GetCellValue(ws.sheet, cell)
}

// SetValue writes a value into one cell. It does not look at merges; use
// CursorWriter for merge-aware placement.
func (ws *Worksheet) SetValue(row, col int, value interface{}) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	if err := ws.file.SetCellValue(ws.sheet, cell, value); err != nil {
		return fmt.Errorf("set value %s: %w", cell, err)
	}
	ws.grow(row, col)
	return nil
}

// Rows returns the formatted values of the sheet.
func (ws *Worksheet) Rows() ([][]string, error) {
	return ws.file.GetRows(ws.sheet)
}

// Merges returns the merge index of the current merge set.
func (ws *Worksheet) Merges() (*MergeIndex, error) {
	if ws.merges != nil {
		return ws.merges, nil
	}
	cells, err := ws.file.GetMergeCells(ws.sheet)
	if err != nil {
		return nil, fmt.Errorf("read merges of %s: %w", ws.sheet, err)
	}
	ranges := make([]MergeRange, 0, len(cells))
	for _, mc := range cells {
		m, err := mergeRangeFromCell(mc)
		if err != nil {
			slog.Warn("Skipping unreadable merge", "sheet", ws.sheet, "start", mc.GetStartAxis(), "end", mc.GetEndAxis())
			continue
		}
		ranges = append(ranges, m)
	}
	ws.merges = NewMergeIndex(ranges)
	return ws.merges, nil
}

// FindMerge returns the merge containing (row, col) in the current merge set.
func (ws *Worksheet) FindMerge(row, col int) (MergeRange, bool, error) {
	idx, err := ws.Merges()
	if err != nil {
		return MergeRange{}, false, err
	}
	m, ok := idx.FindContaining(row, col)
	return m, ok, nil
}

// Merge adds a merge range and invalidates the merge index.
func (ws *Worksheet) Merge(m MergeRange) error {
	start, end, err := m.Cells()
	if err != nil {
		return err
	}
	ws.merges = nil
	if err := ws.file.MergeCell(ws.sheet, start, end); err != nil {
		return fmt.Errorf("merge %s:%s: %w", start, end, err)
	}
	ws.grow(m.MaxRow, m.MaxCol)
	return nil
}

// RowHeight returns the height of a row.
func (ws *Worksheet) RowHeight(row int) (float64, error) {
	return ws.file.GetRowHeight(ws.sheet, row)
}

// SetRowHeight sets the height of a row.
func (ws *Worksheet) SetRowHeight(row int, height float64) error {
	return ws.file.SetRowHeight(ws.sheet, row, height)
}

// SetColWidth sets the width of one column.
func (ws *Worksheet) SetColWidth(col int, width float64) error {
	name, err := excelize.ColumnNumberToName(col)
	if err != nil {
		return err
	}
	return ws.file.SetColWidth(ws.sheet, name, name, width)
}

// RemoveRowsFrom deletes rows start..MaxRow and returns how many were removed.
// Rows go bottom-up so excelize never shifts rows that are about to be deleted.
func (ws *Worksheet) RemoveRowsFrom(start int) (int, error) {
	if start < 1 {
		start = 1
	}
	if start > ws.maxRow {
		return 0, nil
	}
	ws.merges = nil
	removed := 0
	for r := ws.maxRow; r >= start; r-- {
		if err := ws.file.RemoveRow(ws.sheet, r); err != nil {
			ws.maxRow = r
			return removed, fmt.Errorf("remove row %d: %w", r, err)
		}
		removed++
	}
	ws.maxRow = start - 1
	return removed, nil
}

// RemoveColsFrom deletes columns start..MaxCol and returns how many were removed.
func (ws *Worksheet) RemoveColsFrom(start int) (int, error) {
	if start < 1 {
		start = 1
	}
	if start > ws.maxCol {
		return 0, nil
	}
	ws.merges = nil
	removed := 0
	for c := ws.maxCol; c >= start; c-- {
		name, err := excelize.ColumnNumberToName(c)
		if err != nil {
			return removed, err
		}
		if err := ws.file.RemoveCol(ws.sheet, name); err != nil {
			ws.maxCol = c
			return removed, fmt.Errorf("remove column %s: %w", name, err)
		}
		removed++
	}
	ws.maxCol = start - 1
	return removed, nil
}

// SyncDimension writes the tracked extent back as the sheet's used range.
func (ws *Worksheet) SyncDimension() error {
	if ws.maxRow < 1 || ws.maxCol < 1 {
		return nil
	}
	end, err := excelize.CoordinatesToCellName(ws.maxCol, ws.maxRow)
	if err != nil {
		return err
	}
	return ws.file.SetSheetDimension(ws.sheet, "A1:"+end)
}

// parseRange parses "A1:B2" or a single cell "A1".
func parseRange(ref string) (int, int, int, int, error) {
	parts := strings.Split(ref, ":")
	if len(parts) == 1 {
		parts = append(parts, parts[0])
	}
	if len(parts) != 2 {
		return 0, 0, 0, 0, fmt.Errorf("invalid range: %s", ref)
	}
	c1, r1, err := excelize.CellNameToCoordinates(parts[0])
	if err != nil {
		return 0, 0, 0, 0, err
	}
	c2, r2, err := excelize.CellNameToCoordinates(parts[1])
	if err != nil {
		return 0, 0, 0, 0, err
	}
	return c1, r1, c2, r2, nil
}
