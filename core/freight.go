package core

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"rotagen/config"

	"github.com/olekukonko/tablewriter"
)

// Advisory flags an input row whose postal code appears in the freight-return
// reference.
type Advisory struct {
	Postal    string // as written in the input
	Line      int    // spreadsheet line, header is line 1
	Suppliers []string
}

func (a Advisory) String() string {
	return fmt.Sprintf("CEP %s (line %d) -> supplier: %s", a.Postal, a.Line, strings.Join(a.Suppliers, ", "))
}

var nonDigits = regexp.MustCompile(`\D`)

// CleanPostal keeps only the digits of a postal code.
func CleanPostal(s string) string {
	return nonDigits.ReplaceAllString(s, "")
}

// FreightIndex maps a digits-only postal code to the suppliers serving it.
type FreightIndex map[string]map[string]struct{}

// NewFreightIndex indexes the reference table. Columns are 1-based.
func NewFreightIndex(ref *Table, fc config.FreightReturnConfig) (FreightIndex, error) {
	need := max(fc.SupplierColumn, fc.PostalColumn)
	if ref.Width() < need {
		return nil, fmt.Errorf("freight reference has %d columns, need %d", ref.Width(), need)
	}
	idx := make(FreightIndex)
	for r := range ref.Rows {
		postal := CleanPostal(ref.Value(r, fc.PostalColumn-1))
		if postal == "" {
			continue
		}
		if idx[postal] == nil {
			idx[postal] = make(map[string]struct{})
		}
		idx[postal][ref.Value(r, fc.SupplierColumn-1)] = struct{}{}
	}
	return idx, nil
}

// Check returns an advisory for every input row whose postal code, in the
// 1-based column col, is in the index. Inputs narrower than col yield none.
func (fi FreightIndex) Check(t *Table, col int) []Advisory {
	if col < 1 || t.Width() < col {
		return nil
	}
	var out []Advisory
	for r := range t.Rows {
		raw := t.Value(r, col-1)
		suppliers, ok := fi[CleanPostal(raw)]
		if !ok {
			continue
		}
		names := make([]string, 0, len(suppliers))
		for s := range suppliers {
			names = append(names, s)
		}
		sort.Strings(names)
		out = append(out, Advisory{Postal: raw, Line: r + 2, Suppliers: names})
	}
	return out
}

// CheckFreightReturn compares the input against the reference workbook. A
// missing reference skips the check.
func CheckFreightReturn(ctx context.Context, fc config.FreightReturnConfig, input *Table) ([]Advisory, error) {
	if fc.Reference == "" {
		return nil, nil
	}
	if _, err := os.Stat(fc.Reference); errors.Is(err, fs.ErrNotExist) {
		slog.Info("Freight-return reference not found, skipping check", "reference", fc.Reference)
		return nil, nil
	}
	ref, err := NewXlsxTableReader(fc.Reference, "").Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("read freight-return reference: %w", err)
	}
	idx, err := NewFreightIndex(ref, fc)
	if err != nil {
		return nil, err
	}
	advisories := idx.Check(input, fc.InputPostalColumn)
	for _, a := range advisories {
		slog.Warn("Freight return identified", "cep", a.Postal, "line", a.Line, "suppliers", a.Suppliers)
	}
	return advisories, nil
}

// RenderAdvisories prints advisories as a table.
func RenderAdvisories(w io.Writer, advisories []Advisory) error {
	table := tablewriter.NewWriter(w)
	table.Header("CEP", "Line", "Supplier")
	for _, a := range advisories {
		if err := table.Append([]string{a.Postal, strconv.Itoa(a.Line), strings.Join(a.Suppliers, ", ")}); err != nil {
			return err
		}
	}
	return table.Render()
}
