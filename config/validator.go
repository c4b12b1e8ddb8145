package config

import (
	"fmt"
	"strings"
)

// Validator validates the configuration objects.
type Validator struct {
	Provider Provider
}

// NewValidator creates a new Validator.
func NewValidator(provider Provider) *Validator {
	return &Validator{Provider: provider}
}

// ValidateReport validates the ReportConfig.
func (v *Validator) ValidateReport(cfg *ReportConfig) error {
	if err := v.ValidateTemplate(&cfg.Template); err != nil {
		return fmt.Errorf("template error: %w", err)
	}
	if err := v.ValidateLayout(&cfg.Layout); err != nil {
		return fmt.Errorf("layout error: %w", err)
	}
	if err := v.ValidateRecords(&cfg.Records); err != nil {
		return fmt.Errorf("records error: %w", err)
	}
	for i := range cfg.DataSources {
		if err := v.ValidateDataSource(&cfg.DataSources[i]); err != nil {
			return fmt.Errorf("data source %d error: %w", i, err)
		}
	}
	if err := v.ValidateInput(&cfg.Input); err != nil {
		return fmt.Errorf("input error: %w", err)
	}
	if cfg.Output.Workers < 0 {
		return fmt.Errorf("output workers must not be negative")
	}
	if cfg.Output.AllRecordsName == "" {
		return fmt.Errorf("output all-records name is required")
	}
	return nil
}

// ValidateTemplate validates the TemplateConfig.
func (v *Validator) ValidateTemplate(t *TemplateConfig) error {
	if t.Path == "" {
		return fmt.Errorf("template path is required")
	}
	if t.UnzipSizeLimit < 0 {
		return fmt.Errorf("template unzip size limit must not be negative")
	}
	return nil
}

// ValidateLayout validates the LayoutConfig.
func (v *Validator) ValidateLayout(l *LayoutConfig) error {
	if l.FirstDataRow < 1 {
		return fmt.Errorf("first data row must be >= 1, got %d", l.FirstDataRow)
	}
	if l.BaseColumn < 1 {
		return fmt.Errorf("base column must be >= 1, got %d", l.BaseColumn)
	}
	if l.ColumnMargin < 0 {
		return fmt.Errorf("column margin must not be negative")
	}
	if l.LookaheadBlocks < 0 {
		return fmt.Errorf("lookahead blocks must not be negative")
	}
	if l.SafetyRows < 0 {
		return fmt.Errorf("safety rows must not be negative")
	}
	if l.WidthPadding < 0 {
		return fmt.Errorf("width padding must not be negative")
	}
	switch l.BlockMarker {
	case MarkerBorder, MarkerDefinedName:
	default:
		return fmt.Errorf("invalid block marker '%s'", l.BlockMarker)
	}
	return nil
}

// ValidateRecords validates the RecordConfig.
func (v *Validator) ValidateRecords(r *RecordConfig) error {
	if r.FieldCount < 1 || r.FieldCount > 12 {
		return fmt.Errorf("field count must be between 1 and 12, got %d", r.FieldCount)
	}
	if strings.Count(r.FieldPattern, "%d") != 1 {
		return fmt.Errorf("field pattern '%s' must contain exactly one %%d", r.FieldPattern)
	}
	if r.CarrierColumn == "" {
		return fmt.Errorf("carrier column is required")
	}
	return nil
}

// ValidateInput validates the InputConfig.
func (v *Validator) ValidateInput(in *InputConfig) error {
	switch in.Reader {
	case ReaderXlsx, ReaderXls, ReaderCsv:
		// path may still come from the command line
	case ReaderMySQL, ReaderPostgres:
		if in.Table == "" {
			return fmt.Errorf("reader '%s' requires a table", in.Reader)
		}
	case ReaderDynamoDB:
		if in.Table == "" {
			return fmt.Errorf("reader '%s' requires a table", in.Reader)
		}
	default:
		return fmt.Errorf("invalid reader '%s'", in.Reader)
	}

	if in.Reader == ReaderCsv && len([]rune(in.Comma)) > 1 {
		return fmt.Errorf("csv comma must be a single character, got '%s'", in.Comma)
	}

	if in.DataSource != "" && v.Provider != nil {
		if _, err := v.Provider.GetDataSourceConfig(in.DataSource); err != nil {
			return fmt.Errorf("input references unknown DataSource '%s'", in.DataSource)
		}
	}
	return nil
}

// ValidateDataSource validates the DataSourceConfig.
func (v *Validator) ValidateDataSource(ds *DataSourceConfig) error {
	if ds.Name == "" {
		return fmt.Errorf("data source name is required")
	}
	if ds.Driver == "" {
		return fmt.Errorf("data source '%s' driver is required", ds.Name)
	}
	if ds.DSN == "" {
		return fmt.Errorf("data source '%s' DSN is required", ds.Name)
	}
	return nil
}
