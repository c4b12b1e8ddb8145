package core

import (
	"bytes"
	"fmt"
	"testing"

	"rotagen/config"

	"github.com/xuri/excelize/v2"
)

const fixtureSheet = "MODELO"

// newTemplateFile builds a MODELO sheet with the given number of formatted
// blocks at rows 7, 11, ... Each block has a bordered first row B:J, three
// body rows and the merges C:D, F:G (two rows) and I:J.
func newTemplateFile(t *testing.T, blocks int) *excelize.File {
	t.Helper()
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", fixtureSheet); err != nil {
		t.Fatalf("rename sheet: %v", err)
	}

	title, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 14}})
	if err != nil {
		t.Fatalf("title style: %v", err)
	}
	marker, err := f.NewStyle(&excelize.Style{
		Border: []excelize.Border{
			{Type: "left", Color: "1F4E78", Style: 2},
			{Type: "top", Color: "1F4E78", Style: 2},
		},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"DDEBF7"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		t.Fatalf("marker style: %v", err)
	}
	body, err := f.NewStyle(&excelize.Style{
		Border: []excelize.Border{{Type: "bottom", Color: "1F4E78", Style: 1}},
	})
	if err != nil {
		t.Fatalf("body style: %v", err)
	}

	mustDo(t, f.SetCellValue(fixtureSheet, "A1", "PREVISÃO DE DESCARGA"))
	mustDo(t, f.SetCellStyle(fixtureSheet, "A1", "A1", title))
	for k := 0; k < blocks; k++ {
		top := 7 + k*BlockHeight
		mustDo(t, f.SetCellStyle(fixtureSheet, cellName(2, top), cellName(10, top), marker))
		mustDo(t, f.SetCellStyle(fixtureSheet, cellName(2, top+1), cellName(10, top+3), body))
		mustDo(t, f.MergeCell(fixtureSheet, cellName(3, top), cellName(4, top)))
		mustDo(t, f.MergeCell(fixtureSheet, cellName(6, top), cellName(7, top+1)))
		mustDo(t, f.MergeCell(fixtureSheet, cellName(9, top), cellName(10, top)))
		mustDo(t, f.SetRowHeight(fixtureSheet, top, 24))
	}
	mustDo(t, f.SetSheetDimension(fixtureSheet, fmt.Sprintf("A1:J%d", 6+blocks*BlockHeight)))
	return f
}

// openFixture wraps a fresh template in a Worksheet.
func openFixture(t *testing.T, blocks int) (*Worksheet, *excelize.File) {
	t.Helper()
	f := newTemplateFile(t, blocks)
	ws, err := NewWorksheet(&ExcelizeFile{file: f}, fixtureSheet)
	if err != nil {
		t.Fatalf("NewWorksheet: %v", err)
	}
	return ws, f
}

func templateBytes(t *testing.T, blocks int) []byte {
	t.Helper()
	f := newTemplateFile(t, blocks)
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("write template: %v", err)
	}
	return bytes.Clone(buf.Bytes())
}

func testLayout(marker config.BlockMarker) Layout {
	l := LayoutFromConfig(config.Default().Layout)
	l.Marker = marker
	return l
}

func cellName(col, row int) string {
	name, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		panic(err)
	}
	return name
}

func mustDo(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatal(err)
	}
}

func cellValue(t *testing.T, f *excelize.File, sheet, cell string) string {
	t.Helper()
	v, err := f.GetCellValue(sheet, cell)
	if err != nil {
		t.Fatalf("GetCellValue %s: %v", cell, err)
	}
	return v
}

func hasLeftBorder(t *testing.T, ws *Worksheet, row, col int) bool {
	t.Helper()
	s, err := ws.Style(row, col)
	if err != nil {
		t.Fatalf("Style(%d,%d): %v", row, col, err)
	}
	return s.HasLeftBorder()
}
