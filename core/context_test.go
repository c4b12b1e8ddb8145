package core

import (
	"context"
	"strings"
	"testing"
	"time"

	"rotagen/config"
)

type countingReader struct {
	calls int
	table *Table
}

func (r *countingReader) Read(ctx context.Context) (*Table, error) {
	r.calls++
	return r.table, nil
}

func TestNewGenerationContext_Parameters(t *testing.T) {
	cfg := config.Default()
	cfg.Parameters = map[string]string{"region": "sul", "day": "$date:iso:day:0"}
	cfg.Output.Dir = "out/${region}/${day}"

	gc := NewGenerationContext(cfg, nil, map[string]string{"region": "norte"})

	if gc.Parameters["region"] != "norte" {
		t.Errorf("region = %q, want the explicit parameter to win", gc.Parameters["region"])
	}
	today := time.Now().Format("2006-01-02")
	if gc.Parameters["day"] != today {
		t.Errorf("day = %q, want %q", gc.Parameters["day"], today)
	}
	if got := gc.OutputDir(); got != "out/norte/"+today {
		t.Errorf("OutputDir = %q", got)
	}
	if gc.Layout.FirstDataRow != 7 || gc.Layout.BaseColumn != 2 {
		t.Errorf("Layout = %+v", gc.Layout)
	}
}

func TestNewGenerationContext_InvalidDateKept(t *testing.T) {
	cfg := config.Default()
	gc := NewGenerationContext(cfg, nil, map[string]string{"d": "$date:br:fortnight:1"})
	if !strings.HasPrefix(gc.Parameters["d"], "$date:") {
		t.Errorf("invalid date rewritten to %q", gc.Parameters["d"])
	}
}

func TestGenerationContext_GetTable(t *testing.T) {
	reader := &countingReader{table: NewTable([]string{"a"}, [][]string{{"1"}})}
	gc := NewGenerationContext(config.Default(), reader, nil)

	for i := 0; i < 3; i++ {
		tbl, err := gc.GetTable(context.Background())
		if err != nil {
			t.Fatalf("GetTable: %v", err)
		}
		if tbl.RowCount() != 1 {
			t.Errorf("RowCount = %d", tbl.RowCount())
		}
	}
	if reader.calls != 1 {
		t.Errorf("reader called %d times, want 1", reader.calls)
	}

	if _, err := NewGenerationContext(config.Default(), nil, nil).GetTable(context.Background()); err == nil {
		t.Error("expected an error without a reader")
	}
}
