package core

import (
	"fmt"
	"sort"

	"github.com/xuri/excelize/v2"
)

// MergeRange is a rectangular merged region. Only the anchor (top-left) cell
// holds a value.
type MergeRange struct {
	MinRow, MaxRow int
	MinCol, MaxCol int
}

// Contains reports whether (row, col) lies inside the range.
func (m MergeRange) Contains(row, col int) bool {
	return row >= m.MinRow && row <= m.MaxRow && col >= m.MinCol && col <= m.MaxCol
}

// IsAnchor reports whether (row, col) is the top-left cell.
func (m MergeRange) IsAnchor(row, col int) bool {
	return row == m.MinRow && col == m.MinCol
}

// WithinRows reports whether the range lies entirely inside [first, first+height).
func (m MergeRange) WithinRows(first, height int) bool {
	return m.MinRow >= first && m.MaxRow < first+height
}

// TouchesRows reports whether the range shares at least one row with [first, first+height).
func (m MergeRange) TouchesRows(first, height int) bool {
	return m.MaxRow >= first && m.MinRow < first+height
}

// Shift returns the range moved down by rows.
func (m MergeRange) Shift(rows int) MergeRange {
	m.MinRow += rows
	m.MaxRow += rows
	return m
}

// Cells returns the top-left and bottom-right cell names, e.g. "C7", "D7".
func (m MergeRange) Cells() (string, string, error) {
	start, err := excelize.CoordinatesToCellName(m.MinCol, m.MinRow)
	if err != nil {
		return "", "", err
	}
	end, err := excelize.CoordinatesToCellName(m.MaxCol, m.MaxRow)
	if err != nil {
		return "", "", err
	}
	return start, end, nil
}

func (m MergeRange) String() string {
	start, end, err := m.Cells()
	if err != nil {
		return fmt.Sprintf("R%dC%d:R%dC%d", m.MinRow, m.MinCol, m.MaxRow, m.MaxCol)
	}
	return start + ":" + end
}

// mergeRangeFromCell converts an excelize merge into a MergeRange.
func mergeRangeFromCell(mc excelize.MergeCell) (MergeRange, error) {
	c1, r1, err := excelize.CellNameToCoordinates(mc.GetStartAxis())
	if err != nil {
		return MergeRange{}, err
	}
	c2, r2, err := excelize.CellNameToCoordinates(mc.GetEndAxis())
	if err != nil {
		return MergeRange{}, err
	}
	if c1 > c2 {
		c1, c2 = c2, c1
	}
	if r1 > r2 {
		r1, r2 = r2, r1
	}
	return MergeRange{MinRow: r1, MaxRow: r2, MinCol: c1, MaxCol: c2}, nil
}

// MergeIndex answers which merge range contains a coordinate. It is built
// for one version of the merge set; Worksheet rebuilds it after every change.
type MergeIndex struct {
	ranges []MergeRange
	byRow  map[int][]int // row -> indexes into ranges, in (MinRow, MinCol) order
}

// NewMergeIndex indexes ranges. Overlapping ranges (a malformed template)
// resolve to the lowest MinRow, then lowest MinCol.
func NewMergeIndex(ranges []MergeRange) *MergeIndex {
	sorted := make([]MergeRange, len(ranges))
	copy(sorted, ranges)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].MinRow != sorted[j].MinRow {
			return sorted[i].MinRow < sorted[j].MinRow
		}
		return sorted[i].MinCol < sorted[j].MinCol
	})

	byRow := make(map[int][]int)
	for i, m := range sorted {
		for r := m.MinRow; r <= m.MaxRow; r++ {
			byRow[r] = append(byRow[r], i)
		}
	}
	return &MergeIndex{ranges: sorted, byRow: byRow}
}

// FindContaining returns the merge containing (row, col), if any.
func (idx *MergeIndex) FindContaining(row, col int) (MergeRange, bool) {
	for _, i := range idx.byRow[row] {
		if m := idx.ranges[i]; m.Contains(row, col) {
			return m, true
		}
	}
	return MergeRange{}, false
}

// Ranges returns the indexed ranges in (MinRow, MinCol) order.
func (idx *MergeIndex) Ranges() []MergeRange {
	out := make([]MergeRange, len(idx.ranges))
	copy(out, idx.ranges)
	return out
}
