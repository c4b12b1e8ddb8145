package core

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode"

	"rotagen/config"

	"github.com/schollz/closestmatch"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// ErrColumnNotFound is returned when no header matches a column hint.
var ErrColumnNotFound = errors.New("column not found")

// Table is tabular input: one normalized header row and string rows padded to
// the header width.
type Table struct {
	Header []string
	Rows   [][]string
}

// NewTable normalizes headers to trimmed lower case and pads short rows.
func NewTable(header []string, rows [][]string) *Table {
	t := &Table{Header: make([]string, len(header))}
	for i, h := range header {
		t.Header[i] = NormalizeHeader(h)
	}
	t.Rows = make([][]string, 0, len(rows))
	for _, r := range rows {
		t.Rows = append(t.Rows, padRow(r, len(header)))
	}
	return t
}

func padRow(r []string, width int) []string {
	if len(r) >= width {
		return r
	}
	out := make([]string, width)
	copy(out, r)
	return out
}

// NormalizeHeader trims and lower-cases a column header.
func NormalizeHeader(h string) string {
	return strings.ToLower(strings.TrimSpace(h))
}

// foldText lower-cases and strips accents so "Transportadora" and
// "TRANSPORTADORA " compare equal to "transportadora".
func foldText(s string) string {
	t := transform.Chain(norm.NFD, transform.RemoveFunc(func(r rune) bool {
		return unicode.Is(unicode.Mn, r)
	}), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	return NormalizeHeader(folded)
}

// RowCount returns the number of data rows.
func (t *Table) RowCount() int { return len(t.Rows) }

// Width returns the number of columns.
func (t *Table) Width() int { return len(t.Header) }

// Value returns the cell at a 0-based row and column, "" when out of range.
func (t *Table) Value(row, col int) string {
	if row < 0 || row >= len(t.Rows) || col < 0 || col >= len(t.Rows[row]) {
		return ""
	}
	return t.Rows[row][col]
}

// ColumnIndex returns the 0-based index of an exact (normalized) header, or -1.
func (t *Table) ColumnIndex(name string) int {
	name = NormalizeHeader(name)
	for i, h := range t.Header {
		if h == name {
			return i
		}
	}
	return -1
}

// LocateColumn finds the first header containing hint. Accents and case are
// ignored; when nothing contains the hint the closest header by character
// n-grams is taken if it is similar enough.
func (t *Table) LocateColumn(hint string) (int, error) {
	want := foldText(hint)
	if want == "" {
		return -1, fmt.Errorf("%w: empty hint", ErrColumnNotFound)
	}
	folded := make([]string, len(t.Header))
	for i, h := range t.Header {
		folded[i] = foldText(h)
		if strings.Contains(folded[i], want) {
			return i, nil
		}
	}
	if len(folded) == 0 {
		return -1, fmt.Errorf("%w: %q", ErrColumnNotFound, hint)
	}

	cm := closestmatch.New(folded, []int{2, 3})
	best := cm.Closest(want)
	if best == "" || trigramCoverage(want, best) < 0.5 {
		return -1, fmt.Errorf("%w: %q", ErrColumnNotFound, hint)
	}
	for i, f := range folded {
		if f == best {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: %q", ErrColumnNotFound, hint)
}

// trigramCoverage is the share of want's trigrams that also appear in got.
func trigramCoverage(want, got string) float64 {
	w, g := []rune(want), []rune(got)
	if len(w) < 3 {
		if strings.Contains(got, want) {
			return 1
		}
		return 0
	}
	have := make(map[string]struct{}, len(g))
	for i := 0; i+3 <= len(g); i++ {
		have[string(g[i:i+3])] = struct{}{}
	}
	hits, total := 0, 0
	for i := 0; i+3 <= len(w); i++ {
		total++
		if _, ok := have[string(w[i:i+3])]; ok {
			hits++
		}
	}
	return float64(hits) / float64(total)
}

// Group is the subset of rows sharing one key.
type Group struct {
	Key   string
	Table *Table
}

// GroupBy partitions rows by the trimmed value of col, so "ACME " and "ACME"
// share a group. Groups are sorted by key. Rows whose key is empty or only
// whitespace belong to no group.
func (t *Table) GroupBy(col int) []Group {
	index := make(map[string]int)
	var groups []Group
	for _, row := range t.Rows {
		key := ""
		if col >= 0 && col < len(row) {
			key = strings.TrimSpace(row[col])
		}
		if key == "" {
			continue
		}
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, Group{Key: key, Table: &Table{Header: t.Header}})
		}
		groups[i].Table.Rows = append(groups[i].Table.Rows, row)
	}
	sort.Slice(groups, func(a, b int) bool { return groups[a].Key < groups[b].Key })
	return groups
}

// Records builds one record per row from the pattern columns, formatting
// each value with FormatCity. Pattern columns missing from the header are
// skipped.
func (t *Table) Records(rc config.RecordConfig) []Record {
	cols := make([]int, 0, rc.FieldCount)
	for i := 1; i <= rc.FieldCount; i++ {
		if idx := t.ColumnIndex(fmt.Sprintf(rc.FieldPattern, i)); idx >= 0 {
			cols = append(cols, idx)
		}
	}

	records := make([]Record, 0, len(t.Rows))
	for r := range t.Rows {
		rec := Record{Fields: make([]Field, 0, len(cols))}
		for _, c := range cols {
			v, ok := FormatCity(t.Value(r, c))
			rec.Fields = append(rec.Fields, Field{Value: v, Present: ok})
		}
		records = append(records, rec)
	}
	return records
}
