package core

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/xuri/excelize/v2"
)

// UnitError reports a failure while producing one document.
type UnitError struct {
	Unit  string
	Stage string // "open", "render", "save"
	Err   error
}

func (e *UnitError) Error() string {
	return fmt.Sprintf("unit %q failed at %s: %v", e.Unit, e.Stage, e.Err)
}

func (e *UnitError) Unwrap() error {
	return e.Err
}

// RenderStats describes one processed sheet.
type RenderStats struct {
	Sheet    string
	Capacity Capacity
	Records  int
	LastRow  int
	MaxCol   int
	Trim     TrimResult
}

// UnitResult is the outcome of one unit. Err is nil on success.
type UnitResult struct {
	Unit  Unit
	Path  string
	Stats RenderStats
	Err   error
}

// RunSummary is the outcome of a whole run.
type RunSummary struct {
	OutputDir  string
	Advisories []Advisory
	Results    []UnitResult
	Archive    string
}

// Failed returns the results that carry an error.
func (s *RunSummary) Failed() []UnitResult {
	var out []UnitResult
	for _, r := range s.Results {
		if r.Err != nil {
			out = append(out, r)
		}
	}
	return out
}

// Paths returns the documents written successfully.
func (s *RunSummary) Paths() []string {
	var out []string
	for _, r := range s.Results {
		if r.Err == nil {
			out = append(out, r.Path)
		}
	}
	return out
}

// Assembler fills copies of the template workbook with records.
type Assembler struct {
	Context  *GenerationContext
	template []byte
}

func NewAssembler(ctx *GenerationContext) *Assembler {
	return &Assembler{Context: ctx}
}

// LoadTemplate reads the template workbook into memory. Every unit opens its
// own copy from these bytes.
func (a *Assembler) LoadTemplate(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read template %s: %w", path, err)
	}
	a.template = data
	return nil
}

// SetTemplate uses an in-memory template.
func (a *Assembler) SetTemplate(data []byte) {
	a.template = data
}

func (a *Assembler) openOptions() excelize.Options {
	tc := a.Context.Config.Template
	return excelize.Options{Password: tc.Password, UnzipSizeLimit: tc.UnzipSizeLimit}
}

// Render sizes the template sheet for records, writes them, trims the
// leftovers and fits the column widths.
func (a *Assembler) Render(f ExcelFile, records []Record) (RenderStats, error) {
	layout := a.Context.Layout
	ws, err := OpenWorksheet(f, a.Context.Config.Template.Sheets)
	if err != nil {
		return RenderStats{}, err
	}
	stats := RenderStats{Sheet: ws.Name()}

	sizer := NewGridSizer(ws, layout)
	stats.Capacity, err = sizer.EnsureCapacity(len(records))
	if err != nil {
		return stats, err
	}

	writer := NewCursorWriter(ws, layout, stats.Capacity.Blocks())
	for _, rec := range records {
		if _, err := writer.WriteRecord(rec); err != nil {
			return stats, err
		}
	}
	stats.Records = writer.Records()
	stats.LastRow = writer.LastRow()
	stats.MaxCol = writer.MaxColumn()

	stats.Trim, err = Trim(ws, layout, stats.LastRow, stats.MaxCol)
	if err != nil {
		return stats, err
	}
	if err := sizer.Mark(stats.Records); err != nil {
		return stats, err
	}
	if err := AutoFitColumns(ws, layout.WidthPadding); err != nil {
		return stats, fmt.Errorf("fit column widths: %w", err)
	}
	if err := ws.SyncDimension(); err != nil {
		return stats, fmt.Errorf("update used range: %w", err)
	}

	resetView(f)
	return stats, nil
}

// resetView selects A1 on every sheet and activates the first one.
func resetView(f ExcelFile) {
	if sheets := f.GetSheetList(); len(sheets) > 0 {
		for _, sheet := range sheets {
			_ = f.SetSelection(sheet, "A1")
		}
		f.SetActiveSheet(0)
	}
}

// GenerateUnit writes one document into outputDir.
func (a *Assembler) GenerateUnit(unit Unit, outputDir string) (result UnitResult) {
	result = UnitResult{Unit: unit, Path: filepath.Join(outputDir, unit.FileName)}
	fail := func(stage string, err error) UnitResult {
		result.Err = &UnitError{Unit: unit.Name, Stage: stage, Err: err}
		return result
	}

	if a.template == nil {
		return fail("open", fmt.Errorf("template not loaded"))
	}
	f, err := openExcelBytes(a.template, a.openOptions())
	if err != nil {
		return fail("open", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			if result.Err == nil {
				result.Err = &UnitError{Unit: unit.Name, Stage: "close", Err: closeErr}
			} else {
				result.Err = fmt.Errorf("%w; (cleanup error: %v)", result.Err, closeErr)
			}
		}
	}()

	result.Stats, err = a.Render(f, unit.Records)
	if err != nil {
		return fail("render", err)
	}
	if err := f.SaveAs(result.Path); err != nil {
		return fail("save", err)
	}
	slog.Info("Document written", "unit", unit.Name, "path", result.Path,
		"records", result.Stats.Records, "synthesized", result.Stats.Capacity.Synthesized)
	return result
}

// GenerateAll produces every unit on a bounded pool of workers. Results keep
// unit order and one unit failing does not stop the others.
func (a *Assembler) GenerateAll(ctx context.Context, units []Unit, outputDir string) []UnitResult {
	results := make([]UnitResult, len(units))
	workers := a.Context.Config.Output.Workers
	if workers < 1 {
		workers = 1
	}

	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup
	for i, u := range units {
		wg.Add(1)
		go func(i int, u Unit) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			if err := ctx.Err(); err != nil {
				results[i] = UnitResult{Unit: u, Err: &UnitError{Unit: u.Name, Stage: "open", Err: err}}
				return
			}
			results[i] = a.GenerateUnit(u, outputDir)
			if results[i].Err != nil {
				slog.Error("Document failed", "unit", u.Name, "error", results[i].Err)
			}
		}(i, u)
	}
	wg.Wait()
	return results
}

// Generate runs the whole pipeline: read input, check freight returns, split
// into units, write every document and package them when configured.
func (a *Assembler) Generate(ctx context.Context) (*RunSummary, error) {
	cfg := a.Context.Config
	summary := &RunSummary{OutputDir: a.Context.OutputDir()}

	table, err := a.Context.GetTable(ctx)
	if err != nil {
		return summary, err
	}

	summary.Advisories, err = CheckFreightReturn(ctx, cfg.FreightReturn, table)
	if err != nil {
		slog.Error("Freight-return check failed", "error", err)
	}

	units, err := BuildUnits(table, cfg)
	if err != nil {
		return summary, err
	}

	if a.template == nil {
		if err := a.LoadTemplate(cfg.Template.Path); err != nil {
			return summary, err
		}
	}
	if err := os.MkdirAll(summary.OutputDir, 0755); err != nil {
		return summary, fmt.Errorf("failed to create output directory: %w", err)
	}

	summary.Results = a.GenerateAll(ctx, units, summary.OutputDir)

	if cfg.Output.Archive != "" {
		dest := replacePlaceholders(cfg.Output.Archive, a.Context.Parameters)
		if !filepath.IsAbs(dest) {
			dest = filepath.Join(summary.OutputDir, dest)
		}
		if err := Archive(dest, summary.Paths()); err != nil {
			return summary, fmt.Errorf("package documents: %w", err)
		}
		summary.Archive = dest
	}
	return summary, nil
}
