package core

import (
	"bytes"
	"io"

	"github.com/xuri/excelize/v2"
)

// ExcelFile abstracts workbook operations to decouple the grid engine from excelize.
type ExcelFile interface {
	Close() error
	GetActiveSheetIndex() int
	GetSheetName(index int) string
	GetSheetIndex(name string) (int, error)
	GetSheetList() []string
	GetSheetDimension(sheet string) (string, error)
	SetSheetDimension(sheet, rangeRef string) error
	GetRows(sheet string) ([][]string, error)
	GetCellStyle(sheet, cell string) (int, error)
	GetColStyle(sheet, col string) (int, error)
	GetStyle(styleID int) (*excelize.Style, error)
	SetCellStyle(sheet, hcell, vcell string, styleID int) error
	GetCellValue(sheet, cell string) (string, error)
	SetCellValue(sheet, cell string, value interface{}) error
	MergeCell(sheet, hcell, vcell string) error
	GetMergeCells(sheet string) ([]excelize.MergeCell, error)
	RemoveRow(sheet string, row int) error
	RemoveCol(sheet, col string) error
	GetRowHeight(sheet string, row int) (float64, error)
	SetRowHeight(sheet string, row int, height float64) error
	SetColWidth(sheet, startCol, endCol string, width float64) error
	GetDefinedName() []excelize.DefinedName
	SetDefinedName(definedName *excelize.DefinedName) error
	DeleteDefinedName(definedName *excelize.DefinedName) error
	SaveAs(name string) error
	Write(w io.Writer) error
	SetActiveSheet(index int)
	SetSelection(sheetName, cell string) error
}

type ExcelizeFile struct {
	file *excelize.File
}

func openExcelFile(path string, opts excelize.Options) (ExcelFile, error) {
	file, err := excelize.OpenFile(path, opts)
	if err != nil {
		return nil, err
	}
	return &ExcelizeFile{file: file}, nil
}

// openExcelBytes opens an independent workbook over the template bytes. The
// bytes are only read, so concurrent units can share them.
func openExcelBytes(data []byte, opts excelize.Options) (ExcelFile, error) {
	file, err := excelize.OpenReader(bytes.NewReader(data), opts)
	if err != nil {
		return nil, err
	}
	return &ExcelizeFile{file: file}, nil
}

func (e *ExcelizeFile) Close() error {
	return e.file.Close()
}

func (e *ExcelizeFile) GetActiveSheetIndex() int {
	return e.file.GetActiveSheetIndex()
}

func (e *ExcelizeFile) GetSheetName(index int) string {
	return e.file.GetSheetName(index)
}

func (e *ExcelizeFile) GetSheetIndex(name string) (int, error) {
	return e.file.GetSheetIndex(name)
}

func (e *ExcelizeFile) GetSheetList() []string {
	return e.file.GetSheetList()
}

func (e *ExcelizeFile) GetSheetDimension(sheet string) (string, error) {
	return e.file.GetSheetDimension(sheet)
}

func (e *ExcelizeFile) SetSheetDimension(sheet, rangeRef string) error {
	return e.file.SetSheetDimension(sheet, rangeRef)
}

func (e *ExcelizeFile) GetRows(sheet string) ([][]string, error) {
	return e.file.GetRows(sheet)
}

func (e *ExcelizeFile) GetCellStyle(sheet, cell string) (int, error) {
	return e.file.GetCellStyle(sheet, cell)
}

func (e *ExcelizeFile) GetColStyle(sheet, col string) (int, error) {
	return e.file.GetColStyle(sheet, col)
}

func (e *ExcelizeFile) GetStyle(styleID int) (*excelize.Style, error) {
	return e.file.GetStyle(styleID)
}

func (e *ExcelizeFile) SetCellStyle(sheet, hcell, vcell string, styleID int) error {
	return e.file.SetCellStyle(sheet, hcell, vcell, styleID)
}

func (e *ExcelizeFile) GetCellValue(sheet, cell string) (string, error) {
	return e.file.GetCellValue(sheet, cell)
}

func (e *ExcelizeFile) SetCellValue(sheet, cell string, value interface{}) error {
	return e.file.SetCellValue(sheet, cell, value)
}

func (e *ExcelizeFile) MergeCell(sheet, hcell, vcell string) error {
	return e.file.MergeCell(sheet, hcell, vcell)
}

func (e *ExcelizeFile) GetMergeCells(sheet string) ([]excelize.MergeCell, error) {
	return e.file.GetMergeCells(sheet)
}

func (e *ExcelizeFile) RemoveRow(sheet string, row int) error {
	return e.file.RemoveRow(sheet, row)
}

func (e *ExcelizeFile) RemoveCol(sheet, col string) error {
	return e.file.RemoveCol(sheet, col)
}

func (e *ExcelizeFile) GetRowHeight(sheet string, row int) (float64, error) {
	return e.file.GetRowHeight(sheet, row)
}

func (e *ExcelizeFile) SetRowHeight(sheet string, row int, height float64) error {
	return e.file.SetRowHeight(sheet, row, height)
}

func (e *ExcelizeFile) SetColWidth(sheet, startCol, endCol string, width float64) error {
	return e.file.SetColWidth(sheet, startCol, endCol, width)
}

func (e *ExcelizeFile) GetDefinedName() []excelize.DefinedName {
	return e.file.GetDefinedName()
}

func (e *ExcelizeFile) SetDefinedName(definedName *excelize.DefinedName) error {
	return e.file.SetDefinedName(definedName)
}

func (e *ExcelizeFile) DeleteDefinedName(definedName *excelize.DefinedName) error {
	return e.file.DeleteDefinedName(definedName)
}

func (e *ExcelizeFile) SaveAs(name string) error {
	return e.file.SaveAs(name)
}

func (e *ExcelizeFile) Write(w io.Writer) error {
	return e.file.Write(w)
}

func (e *ExcelizeFile) SetActiveSheet(index int) {
	e.file.SetActiveSheet(index)
}

func (e *ExcelizeFile) SetSelection(sheetName, cell string) error {
	// Keep frozen/split panes, only move the selection.
	panes, err := e.file.GetPanes(sheetName)
	if err == nil {
		panes.Selection = []excelize.Selection{
			{
				ActiveCell: cell,
				SQRef:      cell,
			},
		}
		return e.file.SetPanes(sheetName, &panes)
	}

	return e.file.SetPanes(sheetName, &excelize.Panes{
		Freeze: false,
		Split:  false,
		Selection: []excelize.Selection{
			{
				ActiveCell: cell,
				SQRef:      cell,
			},
		},
	})
}
