package core

import (
	"bytes"
	"context"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"rotagen/config"

	"github.com/xuri/excelize/v2"
)

func freightConfig() config.FreightReturnConfig {
	return config.FreightReturnConfig{SupplierColumn: 1, PostalColumn: 2, InputPostalColumn: 2}
}

func TestCleanPostal(t *testing.T) {
	if got := CleanPostal(" 13.000-000 "); got != "13000000" {
		t.Errorf("CleanPostal = %q", got)
	}
	if got := CleanPostal("n/a"); got != "" {
		t.Errorf("CleanPostal = %q, want empty", got)
	}
}

func TestFreightIndex_Check(t *testing.T) {
	ref := NewTable([]string{"fornecedor", "cep"}, [][]string{
		{"Zeta", "13000-000"},
		{"Beta", "13000000"},
		{"Gama", "70000-000"},
		{"Sem CEP", ""},
	})
	idx, err := NewFreightIndex(ref, freightConfig())
	if err != nil {
		t.Fatalf("NewFreightIndex: %v", err)
	}
	if len(idx) != 2 {
		t.Errorf("index has %d postal codes, want 2", len(idx))
	}

	input := NewTable([]string{"transportadora", "cep"}, [][]string{
		{"Trans Sul", "11000-000"},
		{"Alfa Log", "13.000-000"},
		{"Trans Sul", "70000000"},
	})
	got := idx.Check(input, 2)
	want := []Advisory{
		{Postal: "13.000-000", Line: 3, Suppliers: []string{"Beta", "Zeta"}},
		{Postal: "70000000", Line: 4, Suppliers: []string{"Gama"}},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Check = %+v, want %+v", got, want)
	}
	if s := got[0].String(); s != "CEP 13.000-000 (line 3) -> supplier: Beta, Zeta" {
		t.Errorf("String = %q", s)
	}

	if got := idx.Check(input, 5); got != nil {
		t.Errorf("input narrower than the postal column gave %v", got)
	}
}

func TestNewFreightIndex_NarrowReference(t *testing.T) {
	ref := NewTable([]string{"fornecedor"}, [][]string{{"Zeta"}})
	if _, err := NewFreightIndex(ref, freightConfig()); err == nil {
		t.Error("expected an error for a reference narrower than the postal column")
	}
}

func TestCheckFreightReturn(t *testing.T) {
	input := NewTable([]string{"transportadora", "cep"}, [][]string{{"Trans Sul", "13000-000"}})

	t.Run("missing reference is skipped", func(t *testing.T) {
		fc := freightConfig()
		fc.Reference = filepath.Join(t.TempDir(), "MODELO(2).xlsx")
		got, err := CheckFreightReturn(context.Background(), fc, input)
		if err != nil || got != nil {
			t.Errorf("CheckFreightReturn = %v, %v; want nil, nil", got, err)
		}
	})

	t.Run("reference workbook", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "ref.xlsx")
		f := excelize.NewFile()
		mustDo(t, f.SetSheetRow("Sheet1", "A1", &[]interface{}{"Fornecedor", "CEP"}))
		mustDo(t, f.SetSheetRow("Sheet1", "A2", &[]interface{}{"Zeta", "13000-000"}))
		mustDo(t, f.SaveAs(path))
		f.Close()

		fc := freightConfig()
		fc.Reference = path
		got, err := CheckFreightReturn(context.Background(), fc, input)
		if err != nil {
			t.Fatalf("CheckFreightReturn: %v", err)
		}
		if len(got) != 1 || got[0].Line != 2 || got[0].Suppliers[0] != "Zeta" {
			t.Errorf("advisories = %+v", got)
		}
	})
}

func TestRenderAdvisories(t *testing.T) {
	var buf bytes.Buffer
	err := RenderAdvisories(&buf, []Advisory{
		{Postal: "13000-000", Line: 3, Suppliers: []string{"Beta", "Zeta"}},
	})
	if err != nil {
		t.Fatalf("RenderAdvisories: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"CEP", "13000-000", "Beta, Zeta"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}
