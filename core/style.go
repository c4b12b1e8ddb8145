package core

import (
	"fmt"
	"reflect"

	"github.com/tiendc/go-deepcopy"
	"github.com/xuri/excelize/v2"
)

// StyleSnapshot is an immutable capture of a cell's visual attributes: the
// workbook style id plus a private deep copy of its definition (font, border,
// fill, number format, protection, alignment).
type StyleSnapshot struct {
	id  int
	def *excelize.Style
}

// CaptureStyle reads the style of one cell.
func CaptureStyle(f ExcelFile, sheet string, row, col int) (StyleSnapshot, error) {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return StyleSnapshot{}, err
	}
	id, err := f.GetCellStyle(sheet, cell)
	if err != nil {
		return StyleSnapshot{}, fmt.Errorf("read style of %s: %w", cell, err)
	}
	if id == 0 {
		return StyleSnapshot{}, nil
	}
	def, err := f.GetStyle(id)
	if err != nil {
		return StyleSnapshot{}, fmt.Errorf("resolve style %d of %s: %w", id, cell, err)
	}
	return newStyleSnapshot(id, def)
}

func newStyleSnapshot(id int, def *excelize.Style) (StyleSnapshot, error) {
	if def == nil {
		return StyleSnapshot{id: id}, nil
	}
	var copied *excelize.Style
	if err := deepcopy.Copy(&copied, def); err != nil {
		return StyleSnapshot{}, fmt.Errorf("copy style %d: %w", id, err)
	}
	return StyleSnapshot{id: id, def: copied}, nil
}

// ID returns the workbook style id, 0 for the default style.
func (s StyleSnapshot) ID() int { return s.id }

// IsZero reports whether the cell carries no style of its own.
func (s StyleSnapshot) IsZero() bool { return s.id == 0 }

// Definition returns a fresh copy of the style definition, or nil.
func (s StyleSnapshot) Definition() *excelize.Style {
	c, err := s.Clone()
	if err != nil {
		return nil
	}
	return c.def
}

// Clone returns a snapshot that shares no mutable state with s.
func (s StyleSnapshot) Clone() (StyleSnapshot, error) {
	return newStyleSnapshot(s.id, s.def)
}

// HasLeftBorder reports whether a left border line style is set.
func (s StyleSnapshot) HasLeftBorder() bool {
	if s.def == nil {
		return false
	}
	for _, b := range s.def.Border {
		if b.Type == "left" && b.Style != 0 {
			return true
		}
	}
	return false
}

// Equal compares the visual attributes of two snapshots.
func (s StyleSnapshot) Equal(o StyleSnapshot) bool {
	if s.def == nil || o.def == nil {
		return s.def == nil && o.def == nil && s.id == o.id
	}
	return reflect.DeepEqual(s.def, o.def)
}
