package config

type ReaderKind string

const (
	ReaderXlsx     ReaderKind = "xlsx"
	ReaderXls      ReaderKind = "xls"
	ReaderCsv      ReaderKind = "csv"
	ReaderMySQL    ReaderKind = "mysql"
	ReaderPostgres ReaderKind = "postgres"
	ReaderDynamoDB ReaderKind = "dynamodb"
)

type BlockMarker string

const (
	MarkerBorder      BlockMarker = "border"      // left border of the base column
	MarkerDefinedName BlockMarker = "definedName" // sheet-scoped defined name, border fallback
)

// DataSourceConfig：datasource config
type DataSourceConfig struct {
	Name   string `json:"name"   yaml:"name"`
	Driver string `json:"driver" yaml:"driver"` // "mysql", "postgres"
	DSN    string `json:"dsn"    yaml:"dsn"`
}

// TemplateConfig：styled template workbook
type TemplateConfig struct {
	Path           string   `json:"path"                     yaml:"path"`
	Sheets         []string `json:"sheets"                   yaml:"sheets"` // candidates, first match wins
	Password       string   `json:"password,omitempty"       yaml:"password,omitempty"`
	UnzipSizeLimit int64    `json:"unzipSizeLimit,omitempty" yaml:"unzipSizeLimit,omitempty"`
}

// LayoutConfig：grid geometry of the record blocks
type LayoutConfig struct {
	FirstDataRow    int         `json:"firstDataRow"    yaml:"firstDataRow"`
	BaseColumn      int         `json:"baseColumn"      yaml:"baseColumn"`
	ColumnMargin    int         `json:"columnMargin"    yaml:"columnMargin"`
	LookaheadBlocks int         `json:"lookaheadBlocks" yaml:"lookaheadBlocks"`
	SafetyRows      int         `json:"safetyRows"      yaml:"safetyRows"`
	WidthPadding    float64     `json:"widthPadding"    yaml:"widthPadding"`
	BlockMarker     BlockMarker `json:"blockMarker"     yaml:"blockMarker"`
}

// RecordConfig：how input columns become record fields
type RecordConfig struct {
	FieldPattern  string `json:"fieldPattern"  yaml:"fieldPattern"` // e.g. "filial%d/cubagem"
	FieldCount    int    `json:"fieldCount"    yaml:"fieldCount"`
	CarrierColumn string `json:"carrierColumn" yaml:"carrierColumn"`
}

// InputConfig：tabular input source
type InputConfig struct {
	Reader     ReaderKind `json:"reader"               yaml:"reader"`
	Path       string     `json:"path,omitempty"       yaml:"path,omitempty"`
	Sheet      string     `json:"sheet,omitempty"      yaml:"sheet,omitempty"`
	Encoding   string     `json:"encoding,omitempty"   yaml:"encoding,omitempty"` // csv only
	Comma      string     `json:"comma,omitempty"      yaml:"comma,omitempty"`    // csv only
	DataSource string     `json:"dataSource,omitempty" yaml:"dataSource,omitempty"`
	Table      string     `json:"table,omitempty"      yaml:"table,omitempty"`
}

// FreightReturnConfig：postal-code advisory check, columns are 1-based
type FreightReturnConfig struct {
	Reference         string `json:"reference"         yaml:"reference"`
	SupplierColumn    int    `json:"supplierColumn"    yaml:"supplierColumn"`
	PostalColumn      int    `json:"postalColumn"      yaml:"postalColumn"`
	InputPostalColumn int    `json:"inputPostalColumn" yaml:"inputPostalColumn"`
}

// OutputConfig：where and how documents are written
type OutputConfig struct {
	Dir            string `json:"dir"                yaml:"dir"`
	AllRecordsName string `json:"allRecordsName"     yaml:"allRecordsName"`
	Workers        int    `json:"workers"            yaml:"workers"`
	Archive        string `json:"archive,omitempty"  yaml:"archive,omitempty"`
	S3Bucket       string `json:"s3Bucket,omitempty" yaml:"s3Bucket,omitempty"`
	S3Prefix       string `json:"s3Prefix,omitempty" yaml:"s3Prefix,omitempty"`
}

// ReportConfig：the whole bundle
type ReportConfig struct {
	Template      TemplateConfig      `json:"template"      yaml:"template"`
	Layout        LayoutConfig        `json:"layout"        yaml:"layout"`
	Records       RecordConfig        `json:"records"       yaml:"records"`
	Input         InputConfig         `json:"input"         yaml:"input"`
	FreightReturn FreightReturnConfig `json:"freightReturn" yaml:"freightReturn"`
	Output        OutputConfig        `json:"output"        yaml:"output"`
	Parameters    map[string]string   `json:"parameters,omitempty" yaml:"parameters,omitempty"`
	DataSources   []DataSourceConfig  `json:"dataSources,omitempty" yaml:"dataSources,omitempty"`
}

// Default returns the layout of the stock MODELO.xlsx template.
func Default() *ReportConfig {
	return &ReportConfig{
		Template: TemplateConfig{
			Path:   "MODELO.xlsx",
			Sheets: []string{"MODELO", "IMPRESSÃO"},
		},
		Layout: LayoutConfig{
			FirstDataRow:    7,
			BaseColumn:      2,
			ColumnMargin:    2,
			LookaheadBlocks: 10,
			SafetyRows:      100,
			WidthPadding:    3,
			BlockMarker:     MarkerDefinedName,
		},
		Records: RecordConfig{
			FieldPattern:  "filial%d/cubagem",
			FieldCount:    12,
			CarrierColumn: "transportadora",
		},
		Input: InputConfig{
			Reader: ReaderXlsx,
			Comma:  ",",
		},
		FreightReturn: FreightReturnConfig{
			Reference:         "MODELO(2).xlsx",
			SupplierColumn:    4,
			PostalColumn:      5,
			InputPostalColumn: 27,
		},
		Output: OutputConfig{
			Dir:            "./output",
			AllRecordsName: "GERAL_ROTAS",
			Workers:        4,
			S3Prefix:       "rotagen-output",
		},
	}
}
